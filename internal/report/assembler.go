package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wonny/chartbook/internal/chart"
	"github.com/wonny/chartbook/internal/contracts"
	"github.com/wonny/chartbook/pkg/logger"
)

// IndicatorEngine derives the overlay series for one symbol's history.
type IndicatorEngine interface {
	Compute(series *contracts.PriceSeries) *contracts.IndicatorSet
}

// PageRenderer draws one candidate's chart page onto the document.
type PageRenderer interface {
	Render(sink chart.PageSink, candidate contracts.Candidate, series *contracts.PriceSeries, ind *contracts.IndicatorSet) error
}

var _ PageRenderer = (*chart.Composer)(nil)

// RunConfig carries one report run's inputs.
type RunConfig struct {
	Filter       contracts.ScreenFilter
	HistoryStart time.Time
	OutputPath   string
	DryRun       bool
}

// Assembler drives one screening run end to end: screen, then per candidate
// fetch, compute and render, strictly in input order. One candidate's
// failure costs only its page. Only an output failure aborts the run.
// SSOT: report pipeline orchestration
type Assembler struct {
	candidates contracts.CandidateSource
	history    contracts.HistorySource
	engine     IndicatorEngine
	renderer   PageRenderer
	logger     *logger.Logger
}

// NewAssembler creates the report pipeline orchestrator.
func NewAssembler(candidates contracts.CandidateSource, history contracts.HistorySource, engine IndicatorEngine, renderer PageRenderer, log *logger.Logger) *Assembler {
	return &Assembler{
		candidates: candidates,
		history:    history,
		engine:     engine,
		renderer:   renderer,
		logger:     log,
	}
}

// Run produces one report. With zero candidates no file is created at all.
// With candidates but zero rendered pages the run still completes and the
// summary reports zero pages.
func (a *Assembler) Run(ctx context.Context, cfg RunConfig) (*contracts.RunSummary, error) {
	filter := cfg.Filter.WithDefaults()
	summary := &contracts.RunSummary{
		OutputPath: cfg.OutputPath,
		StartedAt:  time.Now(),
	}

	a.logger.WithFields(map[string]interface{}{
		"rec_key":        filter.RecommendationKey,
		"min_market_cap": filter.MinMarketCap,
		"history_start":  cfg.HistoryStart.Format("2006-01-02"),
		"output":         cfg.OutputPath,
		"dry_run":        cfg.DryRun,
	}).Info("Report run started")

	candidates, err := a.candidates.Fetch(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("candidate screen failed: %w", err)
	}
	if len(candidates) == 0 {
		a.logger.WithField("rec_key", filter.RecommendationKey).Warn("No candidates matched the screen, nothing to plot")
		summary.FinishedAt = time.Now()
		return summary, nil
	}

	var doc *Document
	if !cfg.DryRun {
		doc = NewDocument(cfg.OutputPath, a.logger)
		if err := doc.Open(); err != nil {
			return nil, err
		}
		defer doc.Close()
	}

	for _, candidate := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		summary.Add(a.processCandidate(ctx, doc, candidate, cfg))
	}

	summary.FinishedAt = time.Now()
	summary.Pages = summary.Rendered

	if cfg.DryRun {
		a.logger.WithFields(map[string]interface{}{
			"total":   summary.Total,
			"fetched": summary.Total - summary.Skipped - summary.Failed,
			"skipped": summary.Skipped,
			"failed":  summary.Failed,
		}).Info("Dry run completed, no report written")
		return summary, nil
	}

	if err := doc.Finalize(); err != nil {
		return nil, err
	}

	a.logger.WithFields(map[string]interface{}{
		"path":     summary.OutputPath,
		"pages":    summary.Pages,
		"skipped":  summary.Skipped,
		"failed":   summary.Failed,
		"duration": summary.Duration().String(),
	}).Info(fmt.Sprintf("PDF report created: %s", summary.OutputPath))

	return summary, nil
}

// processCandidate walks one candidate through fetch, compute and render and
// returns its terminal state. Never returns a run-fatal error: bad rows and
// dead symbols cost one page each.
func (a *Assembler) processCandidate(ctx context.Context, doc *Document, candidate contracts.Candidate, cfg RunConfig) contracts.CandidateResult {
	result := contracts.CandidateResult{
		Symbol: candidate.Symbol,
		Status: contracts.PageStatusFetching,
	}
	log := a.logger.WithField("symbol", candidate.Symbol)

	series, err := a.history.FetchDaily(ctx, candidate.Symbol, cfg.HistoryStart)
	if err != nil {
		if contracts.IsEmptyData(err) {
			result.Status = contracts.PageStatusFetchEmpty
			result.Reason = "no price data"
			log.Info(fmt.Sprintf("Skipping %s: no price data.", candidate.Symbol))
			return result
		}
		result.Status = contracts.PageStatusFetchError
		result.Err = err
		result.Reason = err.Error()
		log.WithError(err).WithField("transient", contracts.IsTransient(err)).Warn("Error processing candidate, market data fetch failed")
		return result
	}

	result.Status = contracts.PageStatusFetched
	result.Bars = series.Len()

	if cfg.DryRun {
		log.WithField("bars", result.Bars).Info("Dry run, fetch verified, render skipped")
		return result
	}

	ind := a.engine.Compute(series)

	if err := a.renderer.Render(doc, candidate, series, ind); err != nil {
		if errors.Is(err, chart.ErrNoPriceData) {
			result.Status = contracts.PageStatusFetchEmpty
			result.Reason = "no price data"
			log.Info(fmt.Sprintf("Skipping %s: no price data.", candidate.Symbol))
			return result
		}
		result.Status = contracts.PageStatusRenderError
		result.Err = err
		result.Reason = err.Error()
		log.WithError(err).Warn("Error processing candidate, chart render failed")
		return result
	}

	result.Status = contracts.PageStatusRendered
	log.WithField("bars", result.Bars).Info(fmt.Sprintf("Added %s page to %s", candidate.Symbol, cfg.OutputPath))
	return result
}
