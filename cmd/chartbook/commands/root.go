package commands

import (
	"github.com/spf13/cobra"

	"github.com/wonny/chartbook/pkg/config"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "chartbook",
	Short: "Chartbook - technical analysis chart reports for screened equities",
	Long: `Chartbook Unified CLI

Screens equities from the database, fetches daily price history, computes
moving averages and the RSI oscillator, and renders one candlestick chart
page per symbol into a single PDF report.

Usage:
  go run ./cmd/chartbook [command]

Examples:
  go run ./cmd/chartbook report
  go run ./cmd/chartbook report --rec-key buy --min-market-cap 50
  go run ./cmd/chartbook screen
  go run ./cmd/chartbook schedule start`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
}

// loadConfig loads the environment configuration and applies global flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}
