package contracts

import (
	"context"
	"time"
)

// CandidateSource yields screened equities for a report run.
// SSOT: candidate query interface
type CandidateSource interface {
	Fetch(ctx context.Context, filter ScreenFilter) ([]Candidate, error)
}

// HistorySource yields one symbol's daily bars from the start date to now.
// An empty series is returned as an *EmptyDataError, never as a nil series.
// SSOT: market data interface
type HistorySource interface {
	FetchDaily(ctx context.Context, symbol string, start time.Time) (*PriceSeries, error)
}
