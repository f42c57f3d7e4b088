package jobs

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/wonny/chartbook/internal/contracts"
	"github.com/wonny/chartbook/internal/report"
	"github.com/wonny/chartbook/pkg/config"
	"github.com/wonny/chartbook/pkg/logger"
)

// ReportJob renders the screened chart report on a schedule. Each firing is
// one complete run with a dated output filename.
// SSOT: the report schedule lives in this job only
type ReportJob struct {
	assembler *report.Assembler
	config    *config.Config
	logger    *logger.Logger
}

// NewReportJob creates a new report job
func NewReportJob(assembler *report.Assembler, cfg *config.Config, log *logger.Logger) *ReportJob {
	return &ReportJob{
		assembler: assembler,
		config:    cfg,
		logger:    log,
	}
}

// Name returns the job name
func (j *ReportJob) Name() string {
	return "chart_report"
}

// Schedule returns the cron schedule from configuration.
func (j *ReportJob) Schedule() string {
	return j.config.Report.Schedule
}

// Run executes one report generation
func (j *ReportJob) Run(ctx context.Context) error {
	j.logger.Info("Starting scheduled chart report")

	rep := j.config.Report
	outputPath := filepath.Join(rep.OutputDir, report.DefaultOutputName(rep.RecommendationKey, time.Now()))

	summary, err := j.assembler.Run(ctx, report.RunConfig{
		Filter: contracts.ScreenFilter{
			RecommendationKey: rep.RecommendationKey,
			MinMarketCap:      rep.MinMarketCap,
		},
		HistoryStart: rep.HistoryStart,
		OutputPath:   outputPath,
	})
	if err != nil {
		return fmt.Errorf("report run: %w", err)
	}

	j.logger.WithFields(map[string]interface{}{
		"output":   summary.OutputPath,
		"pages":    summary.Pages,
		"skipped":  summary.Skipped,
		"failed":   summary.Failed,
		"duration": summary.Duration().String(),
	}).Info("Scheduled chart report completed successfully")

	return nil
}
