package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/chartbook/internal/chart"
	"github.com/wonny/chartbook/internal/contracts"
	"github.com/wonny/chartbook/internal/history"
	"github.com/wonny/chartbook/internal/indicators"
	"github.com/wonny/chartbook/internal/report"
	"github.com/wonny/chartbook/internal/screener"
	"github.com/wonny/chartbook/pkg/config"
	"github.com/wonny/chartbook/pkg/database"
	"github.com/wonny/chartbook/pkg/httputil"
	"github.com/wonny/chartbook/pkg/logger"
	"github.com/wonny/chartbook/pkg/redis"
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate the multi-page chart report PDF",
	Long: `Screens the stocks table, fetches daily history for every candidate and
renders one two-panel chart page per symbol into a single PDF.

Flags:
  --rec-key         recommendation key filter (default: REPORT_REC_KEY)
  --min-market-cap  minimum market cap in billions (default: REPORT_MIN_MARKET_CAP)
  --start           history start date YYYY-MM-DD (default: REPORT_HISTORY_START)
  --output          output PDF path (default: dated name in REPORT_OUTPUT_DIR)
  --dry-run         screen and fetch only, write no PDF

Example:
  go run ./cmd/chartbook report
  go run ./cmd/chartbook report --rec-key buy --min-market-cap 50
  go run ./cmd/chartbook report --start 2023-06-01 --output /tmp/charts.pdf
  go run ./cmd/chartbook report --dry-run`,
	RunE: runReport,
}

var (
	// Flags
	reportRecKey string
	reportMinCap float64
	reportStart  string
	reportOutput string
	reportDryRun bool
)

func init() {
	rootCmd.AddCommand(reportCmd)

	// Flags
	reportCmd.Flags().StringVar(&reportRecKey, "rec-key", "", "recommendation key filter")
	reportCmd.Flags().Float64Var(&reportMinCap, "min-market-cap", 0, "minimum market cap in billions")
	reportCmd.Flags().StringVar(&reportStart, "start", "", "history start date (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&reportOutput, "output", "", "output PDF path")
	reportCmd.Flags().BoolVar(&reportDryRun, "dry-run", false, "screen and fetch only, write no PDF")
}

func runReport(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Chartbook Report ===")

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg)

	recKey := cfg.Report.RecommendationKey
	if reportRecKey != "" {
		recKey = reportRecKey
	}

	minCap := cfg.Report.MinMarketCap
	if cmd.Flags().Changed("min-market-cap") {
		minCap = reportMinCap
	}

	start := cfg.Report.HistoryStart
	if reportStart != "" {
		start, err = time.Parse("2006-01-02", reportStart)
		if err != nil {
			return fmt.Errorf("invalid start date: %w", err)
		}
	}

	output := reportOutput
	if output == "" {
		output = filepath.Join(cfg.Report.OutputDir, report.DefaultOutputName(recKey, time.Now()))
	}

	fmt.Printf("\n📊 Screen: rec_key=%s, market_cap>%.1f\n", recKey, minCap)
	fmt.Printf("📅 History from %s via %s\n", start.Format("2006-01-02"), cfg.MarketData.Source)
	fmt.Printf("📄 Output: %s\n\n", output)

	deps, err := initPipeline(cfg, log, recKey)
	if err != nil {
		return err
	}
	defer deps.Close()

	summary, err := deps.assembler.Run(context.Background(), report.RunConfig{
		Filter: contracts.ScreenFilter{
			RecommendationKey: recKey,
			MinMarketCap:      minCap,
		},
		HistoryStart: start,
		OutputPath:   output,
		DryRun:       reportDryRun,
	})
	if err != nil {
		PrintError(fmt.Sprintf("Report run failed: %v", err))
		return err
	}

	printRunSummary(summary, reportDryRun)
	return nil
}

func printRunSummary(summary *contracts.RunSummary, dryRun bool) {
	fmt.Println()
	PrintDoubleSeparator()
	PrintKeyValue("Candidates", fmt.Sprintf("%d", summary.Total), 10)
	PrintKeyValue("Pages", fmt.Sprintf("%d", summary.Pages), 10)
	PrintKeyValue("Skipped", fmt.Sprintf("%d", summary.Skipped), 10)
	PrintKeyValue("Failed", fmt.Sprintf("%d", summary.Failed), 10)
	PrintKeyValue("Duration", summary.Duration().Round(time.Millisecond).String(), 10)
	PrintDoubleSeparator()

	if summary.Failed > 0 {
		fmt.Println()
		widths := []int{8, 14, 44}
		PrintTableHeader([]string{"SYMBOL", "STATUS", "REASON"}, widths)
		for _, r := range summary.Results {
			if r.Failed() {
				PrintTableRow([]string{r.Symbol, string(r.Status), r.Reason}, widths)
			}
		}
	}

	fmt.Println()
	switch {
	case summary.Total == 0:
		PrintWarning("No candidates matched the screen. Nothing to plot.")
	case dryRun:
		PrintInfo("Dry run completed. No report written.")
	default:
		PrintSuccess(fmt.Sprintf("PDF report created: %s", summary.OutputPath))
	}
}

// pipeline bundles the wired report dependencies and their teardown.
type pipeline struct {
	db        *database.DB
	redis     *redis.Client
	repo      *screener.Repository
	provider  *history.Provider
	assembler *report.Assembler
}

// Close releases the pipeline's connections.
func (p *pipeline) Close() {
	if p.redis != nil {
		p.redis.Close()
	}
	if p.db != nil {
		p.db.Close()
	}
}

// initPipeline builds the full report pipeline from configuration.
func initPipeline(cfg *config.Config, log *logger.Logger, recKey string) (*pipeline, error) {
	// 1. Database (candidate screen)
	if err := cfg.RequireDatabase(); err != nil {
		return nil, err
	}
	db, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	// 2. HTTP client, rate limited for the public market data API
	httpClient := httputil.New(log)
	if cfg.MarketData.Source == "yahoo" {
		httpClient = httpClient.WithRateLimit(cfg.MarketData.YahooRequestsPerSec)
	}

	// 3. Optional Redis cache; a dead Redis never blocks a report run
	redisClient, err := redis.New(cfg)
	if err != nil {
		log.WithError(err).Warn("Redis unavailable, continuing without cache")
		redisClient = &redis.Client{}
	}
	cache := redis.NewCache(redisClient, "chartbook")

	// 4. History provider for the configured source
	provider, err := history.NewProvider(cfg, httpClient, cache, log)
	if err != nil {
		db.Close()
		return nil, err
	}

	// 5. Screen, indicators, chart and assembler
	repo := screener.NewRepository(db.Pool, log)
	engine := indicators.NewEngine(log)
	composer := chart.NewComposer(log).WithRecommendationKey(recKey)
	assembler := report.NewAssembler(repo, provider, engine, composer, log)

	return &pipeline{
		db:        db,
		redis:     redisClient,
		repo:      repo,
		provider:  provider,
		assembler: assembler,
	}, nil
}
