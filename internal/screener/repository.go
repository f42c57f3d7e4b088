package screener

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/chartbook/internal/contracts"
	"github.com/wonny/chartbook/pkg/logger"
)

// Compile-time check: the repository is a usable candidate source.
var _ contracts.CandidateSource = (*Repository)(nil)

// Repository reads screened equities from the stocks table.
// SSOT: candidate queries happen only here.
type Repository struct {
	pool   *pgxpool.Pool
	logger *logger.Logger
}

// NewRepository creates a new screener repository
func NewRepository(pool *pgxpool.Pool, log *logger.Logger) *Repository {
	return &Repository{pool: pool, logger: log}
}

// candidateRow mirrors one row before normalization. Numeric columns are
// nullable in the table, the pointers make the NULLs visible.
type candidateRow struct {
	Symbol     *string
	Sector     *string
	TargetLow  *float64
	TargetMean *float64
	Analysts   *float64
	RecMean    *float64
	MarketCap  *float64
	MTDChange  *float64
	YTDChange  *float64
}

// Fetch returns candidates matching the filter, ordered by symbol so a run
// over the same table state always yields the same report. Rows that cannot
// be normalized are skipped with a warning, they never abort the query.
func (r *Repository) Fetch(ctx context.Context, filter contracts.ScreenFilter) ([]contracts.Candidate, error) {
	filter = filter.WithDefaults()

	query := `
		SELECT symbol, sector, target_low, target_mean, analysts, rec_mean, market_cap, mtd_change, ytd_change
		FROM stocks
		WHERE rec_key = $1 AND country = $2 AND market_cap > $3
		ORDER BY symbol ASC
	`

	rows, err := r.pool.Query(ctx, query, filter.RecommendationKey, filter.Country, filter.MinMarketCap)
	if err != nil {
		return nil, fmt.Errorf("candidate query failed: %w", err)
	}
	defer rows.Close()

	var candidates []contracts.Candidate
	skipped := 0

	for rows.Next() {
		var row candidateRow
		if err := rows.Scan(
			&row.Symbol, &row.Sector,
			&row.TargetLow, &row.TargetMean,
			&row.Analysts, &row.RecMean, &row.MarketCap,
			&row.MTDChange, &row.YTDChange,
		); err != nil {
			return nil, fmt.Errorf("candidate scan failed: %w", err)
		}

		candidate, err := normalizeRow(row)
		if err != nil {
			skipped++
			r.logger.WithError(err).Warn("Skipping candidate row")
			continue
		}

		candidates = append(candidates, candidate)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("candidate rows failed: %w", err)
	}

	r.logger.WithFields(map[string]interface{}{
		"rec_key":        filter.RecommendationKey,
		"min_market_cap": filter.MinMarketCap,
		"country":        filter.Country,
		"candidates":     len(candidates),
		"skipped_rows":   skipped,
	}).Info("Screening completed")

	return candidates, nil
}

// normalizeRow converts a nullable row into a candidate. Missing numerics
// become 0.0, a missing symbol invalidates the row.
func normalizeRow(row candidateRow) (contracts.Candidate, error) {
	candidate := contracts.Candidate{
		Symbol:     strOrEmpty(row.Symbol),
		Sector:     strOrEmpty(row.Sector),
		TargetLow:  floatOrZero(row.TargetLow),
		TargetMean: floatOrZero(row.TargetMean),
		Analysts:   floatOrZero(row.Analysts),
		RecMean:    floatOrZero(row.RecMean),
		MarketCap:  floatOrZero(row.MarketCap),
		MTDChange:  floatOrZero(row.MTDChange),
		YTDChange:  floatOrZero(row.YTDChange),
	}

	if err := candidate.Validate(); err != nil {
		return contracts.Candidate{}, err
	}

	return candidate, nil
}

func strOrEmpty(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func floatOrZero(v *float64) float64 {
	if v == nil {
		return 0.0
	}
	return *v
}
