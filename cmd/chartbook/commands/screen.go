package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/chartbook/internal/contracts"
	"github.com/wonny/chartbook/internal/screener"
	"github.com/wonny/chartbook/pkg/database"
	"github.com/wonny/chartbook/pkg/logger"
)

// screenCmd represents the screen command
var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "Run the candidate screen and print the matches",
	Long: `Queries the stocks table with the report filter and prints the matching
candidates without fetching history or rendering charts.

Example:
  go run ./cmd/chartbook screen
  go run ./cmd/chartbook screen --rec-key buy --min-market-cap 50`,
	RunE: runScreen,
}

var (
	// Flags
	screenRecKey string
	screenMinCap float64
)

func init() {
	rootCmd.AddCommand(screenCmd)

	// Flags
	screenCmd.Flags().StringVar(&screenRecKey, "rec-key", "", "recommendation key filter")
	screenCmd.Flags().Float64Var(&screenMinCap, "min-market-cap", 0, "minimum market cap in billions")
}

func runScreen(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Chartbook Screen ===")

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg)

	filter := contracts.ScreenFilter{
		RecommendationKey: cfg.Report.RecommendationKey,
		MinMarketCap:      cfg.Report.MinMarketCap,
	}
	if screenRecKey != "" {
		filter.RecommendationKey = screenRecKey
	}
	if cmd.Flags().Changed("min-market-cap") {
		filter.MinMarketCap = screenMinCap
	}
	filter = filter.WithDefaults()

	if err := cfg.RequireDatabase(); err != nil {
		return err
	}
	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	repo := screener.NewRepository(db.Pool, log)
	candidates, err := repo.Fetch(context.Background(), filter)
	if err != nil {
		PrintError(fmt.Sprintf("Screen failed: %v", err))
		return err
	}

	fmt.Printf("\n📊 rec_key=%s, market_cap>%.1f, country=%s\n\n",
		filter.RecommendationKey, filter.MinMarketCap, filter.Country)

	if len(candidates) == 0 {
		PrintWarning("No candidates matched the screen.")
		return nil
	}

	printCandidateTable(candidates)
	fmt.Println()
	PrintSuccess(fmt.Sprintf("%d candidates matched", len(candidates)))
	return nil
}

func printCandidateTable(candidates []contracts.Candidate) {
	headers := []string{"SYMBOL", "SECTOR", "ANLSTS", "REC_MEAN", "MKT_CAP", "TGT_LOW", "TGT_MEAN", "MTD%", "YTD%"}
	widths := []int{8, 22, 7, 9, 9, 9, 9, 8, 8}

	PrintTableHeader(headers, widths)
	for _, c := range candidates {
		PrintTableRow([]string{
			c.Symbol,
			c.Sector,
			fmt.Sprintf("%.0f", c.Analysts),
			fmt.Sprintf("%.2f", c.RecMean),
			fmt.Sprintf("%.1f", c.MarketCap),
			fmt.Sprintf("%.1f", c.TargetLow),
			fmt.Sprintf("%.1f", c.TargetMean),
			fmt.Sprintf("%+.2f", c.MTDChange),
			fmt.Sprintf("%+.2f", c.YTDChange),
		}, widths)
	}
}
