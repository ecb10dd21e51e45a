package commands

import (
	"os"
	"time"

	"catseek/lib/configutil"
	"catseek/lib/histstore"
	"catseek/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var historyLimit *int

func init() {
	historyLimit = historyCmd.Flags().IntP("limit", "n", 20, "Maximum number of entries to show.")
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history [-n <limit>]",
	Short: "Lists recent searches, newest first.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := configutil.ReadConfig[Config]("config.json5")
		if err != nil && !os.IsNotExist(err) {
			serviceutil.Fatal("failed to read config", err)
		}

		store, err := histstore.Open(historyDbPath(cfg))
		if err != nil {
			serviceutil.Fatal("failed to open history db", err)
		}
		defer store.Close()

		entries, err := store.Recent(cmd.Context(), *historyLimit)
		if err != nil {
			serviceutil.Fatal("failed to list history", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"When", "Query", "Hits"})
		for _, e := range entries {
			t.AppendRow(table.Row{e.Time.Format(time.ANSIC), e.Query, e.Hits})
		}
		t.Render()
	},
}
