package contracts

import "time"

// PageStatus tracks one candidate through the report pipeline.
type PageStatus string

const (
	PageStatusPending     PageStatus = "PENDING"
	PageStatusFetching    PageStatus = "FETCHING"
	PageStatusFetched     PageStatus = "FETCHED"
	PageStatusFetchEmpty  PageStatus = "FETCH_EMPTY"
	PageStatusFetchError  PageStatus = "FETCH_ERROR"
	PageStatusRendered    PageStatus = "RENDERED"
	PageStatusRenderError PageStatus = "RENDER_ERROR"
)

// CandidateResult records what happened to one candidate during a run.
// Results keep the input order of the candidates.
// SSOT: assembler -> run summary per-candidate outcome
type CandidateResult struct {
	Symbol string     `json:"symbol"`
	Status PageStatus `json:"status"`
	Bars   int        `json:"bars"`
	Reason string     `json:"reason,omitempty"`
	Err    error      `json:"-"`
}

// Rendered checks if the candidate produced a page
func (r *CandidateResult) Rendered() bool {
	return r.Status == PageStatusRendered
}

// Skipped checks if the candidate was skipped for lack of data
func (r *CandidateResult) Skipped() bool {
	return r.Status == PageStatusFetchEmpty
}

// Failed checks if the candidate hit a fetch or render error
func (r *CandidateResult) Failed() bool {
	return r.Status == PageStatusFetchError || r.Status == PageStatusRenderError
}

// RunSummary describes one complete report run.
type RunSummary struct {
	OutputPath string            `json:"output_path"`
	Total      int               `json:"total"`
	Rendered   int               `json:"rendered"`
	Skipped    int               `json:"skipped"`
	Failed     int               `json:"failed"`
	Pages      int               `json:"pages"`
	StartedAt  time.Time         `json:"started_at"`
	FinishedAt time.Time         `json:"finished_at"`
	Results    []CandidateResult `json:"results"`
}

// Duration returns the wall time of the run
func (s *RunSummary) Duration() time.Duration {
	return s.FinishedAt.Sub(s.StartedAt)
}

// Add appends a result and updates the counters.
func (s *RunSummary) Add(r CandidateResult) {
	s.Results = append(s.Results, r)
	s.Total++
	switch {
	case r.Rendered():
		s.Rendered++
	case r.Skipped():
		s.Skipped++
	case r.Failed():
		s.Failed++
	}
}
