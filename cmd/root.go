package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tsurispot/geoaudit/internal/config"
	"github.com/tsurispot/geoaudit/internal/resilience"
	"github.com/tsurispot/geoaudit/pkg/nominatim"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "geoaudit",
	Short: "Coordinate integrity tooling for the fishing-spot catalog",
	Long:  "Audits catalog coordinates against prefecture bounds, flags precision and duplicate problems, and verifies locations against OpenStreetMap.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// newNominatimClient builds the shared geocoding client from config.
func newNominatimClient() (nominatim.Client, error) {
	retry := resilience.DefaultRetryConfig()
	retry.MaxAttempts = cfg.Nominatim.MaxAttempts

	return nominatim.NewClient(cfg.Nominatim.UserAgent,
		nominatim.WithBaseURL(cfg.Nominatim.BaseURL),
		nominatim.WithAcceptLanguage(cfg.Nominatim.AcceptLanguage),
		nominatim.WithRetryConfig(retry),
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
