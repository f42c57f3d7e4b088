package contracts

import (
	"errors"
	"testing"
	"time"
)

func TestCandidateResult_Status(t *testing.T) {
	tests := []struct {
		name         string
		status       PageStatus
		wantRendered bool
		wantSkipped  bool
		wantFailed   bool
	}{
		{"rendered", PageStatusRendered, true, false, false},
		{"fetch empty", PageStatusFetchEmpty, false, true, false},
		{"fetch error", PageStatusFetchError, false, false, true},
		{"render error", PageStatusRenderError, false, false, true},
		{"pending", PageStatusPending, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := CandidateResult{Symbol: "AAPL", Status: tt.status}
			if got := r.Rendered(); got != tt.wantRendered {
				t.Errorf("Rendered() = %v, want %v", got, tt.wantRendered)
			}
			if got := r.Skipped(); got != tt.wantSkipped {
				t.Errorf("Skipped() = %v, want %v", got, tt.wantSkipped)
			}
			if got := r.Failed(); got != tt.wantFailed {
				t.Errorf("Failed() = %v, want %v", got, tt.wantFailed)
			}
		})
	}
}

func TestRunSummary_Add(t *testing.T) {
	var s RunSummary
	s.Add(CandidateResult{Symbol: "AAPL", Status: PageStatusRendered, Bars: 252})
	s.Add(CandidateResult{Symbol: "GHST", Status: PageStatusFetchEmpty})
	s.Add(CandidateResult{Symbol: "BRKN", Status: PageStatusFetchError, Err: errors.New("boom")})
	s.Add(CandidateResult{Symbol: "MSFT", Status: PageStatusRendered, Bars: 252})

	if s.Total != 4 {
		t.Errorf("Total = %d, want 4", s.Total)
	}
	if s.Rendered != 2 {
		t.Errorf("Rendered = %d, want 2", s.Rendered)
	}
	if s.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", s.Skipped)
	}
	if s.Failed != 1 {
		t.Errorf("Failed = %d, want 1", s.Failed)
	}

	// Input order must be preserved
	wantOrder := []string{"AAPL", "GHST", "BRKN", "MSFT"}
	for i, sym := range wantOrder {
		if s.Results[i].Symbol != sym {
			t.Errorf("Results[%d].Symbol = %s, want %s", i, s.Results[i].Symbol, sym)
		}
	}
}

func TestRunSummary_Duration(t *testing.T) {
	s := RunSummary{
		StartedAt:  time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
		FinishedAt: time.Date(2024, 6, 1, 10, 0, 42, 0, time.UTC),
	}

	if got := s.Duration(); got != 42*time.Second {
		t.Errorf("Duration() = %v, want 42s", got)
	}
}
