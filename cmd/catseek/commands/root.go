package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"catseek/lib/fetch"
	"catseek/lib/fetch/redirect"
	"catseek/lib/telemetry"

	"github.com/spf13/cobra"
)

type Config struct {
	BaseUrl   string `json:"base_url"`
	Proxy     string `json:"proxy"`
	UserAgent string `json:"user_agent"`
	Redirects struct {
		Limit              int    `json:"limit"`
		StandardsCompliant bool   `json:"standards_compliant"`
		Cookies            string `json:"cookies"`
	} `json:"redirects"`
	HistoryDb string `json:"history_db"`
}

func (c Config) TransportOptions() fetch.TransportOptions {
	return fetch.TransportOptions{
		Proxy:     c.Proxy,
		UserAgent: c.UserAgent,
	}
}

func (c Config) RedirectConfig() redirect.Config {
	cookies := redirect.CookieAll
	if c.Redirects.Cookies == "none" {
		cookies = redirect.CookieNone
	}
	return redirect.Config{
		Limit:              c.Redirects.Limit,
		StandardsCompliant: c.Redirects.StandardsCompliant,
		Cookies:            cookies,
	}
}

var verbose *bool

var rootCmd = &cobra.Command{
	Use:   "catseek",
	Short: "catseek searches a remote catalog and prints its line items.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(*verbose)
		err := telemetry.SetupFromEnv(cmd.Context(), "catseek")
		if err != nil && !os.IsNotExist(err) {
			slog.Warn("failed to setup telemetry", "err", err)
		}
	},
}

func init() {
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging.")
}

func ExecuteContext(ctx context.Context) {
	err := rootCmd.ExecuteContext(ctx)
	telemetry.Shutdown(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
