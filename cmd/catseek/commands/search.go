package commands

import (
	"log/slog"
	"os"
	"strings"

	"catseek/lib/catalog"
	"catseek/lib/configutil"
	"catseek/lib/histstore"
	"catseek/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <query>...",
	Short: "Searches the catalog and prints matching line items.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := configutil.ReadConfig[Config]("config.json5")
		if err != nil {
			serviceutil.Fatal("failed to read config", err)
		}

		client, err := catalog.NewClient(catalog.ClientOptions{
			BaseUrl:   cfg.BaseUrl,
			Transport: cfg.TransportOptions(),
			Redirects: cfg.RedirectConfig(),
		})
		if err != nil {
			serviceutil.Fatal("failed to initialize catalog client", err)
		}

		query := strings.Join(args, " ")
		items, err := client.Search(cmd.Context(), query)
		if err != nil {
			serviceutil.Fatal("search failed", err)
		}
		slog.Info("search finished", "query", query, "hits", len(items))

		recordSearch(cmd, cfg, query, len(items))

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"SKU", "Title", "Price", "Availability"})
		for _, item := range items {
			t.AppendRow(table.Row{item.SKU, item.Title, item.Price, item.Availability})
		}
		t.Render()
	},
}

func recordSearch(cmd *cobra.Command, cfg Config, query string, hits int) {
	store, err := histstore.Open(historyDbPath(cfg))
	if err != nil {
		slog.Warn("failed to open history db", "err", err)
		return
	}
	defer store.Close()

	err = store.Record(cmd.Context(), query, hits)
	if err != nil {
		slog.Warn("failed to record search", "err", err)
	}
}

func historyDbPath(cfg Config) string {
	if cfg.HistoryDb != "" {
		return cfg.HistoryDb
	}
	return "history.db"
}
