package contracts

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorClassification(t *testing.T) {
	validation := &ValidationError{Field: "symbol", Reason: "must not be empty"}
	empty := &EmptyDataError{Symbol: "GHST"}
	transient := &ProviderError{Symbol: "AAPL", Transient: true, Err: errors.New("503")}
	permanent := &ProviderError{Symbol: "AAPL", Transient: false, Err: errors.New("bad symbol")}
	output := &OutputError{Path: "/report.pdf", Err: errors.New("permission denied")}

	tests := []struct {
		name           string
		err            error
		wantValidation bool
		wantEmpty      bool
		wantTransient  bool
		wantOutput     bool
	}{
		{"validation", validation, true, false, false, false},
		{"empty data", empty, false, true, false, false},
		{"transient provider", transient, false, false, true, false},
		{"permanent provider", permanent, false, false, false, false},
		{"output", output, false, false, false, true},
		{"wrapped empty data", fmt.Errorf("fetch: %w", empty), false, true, false, false},
		{"wrapped output", fmt.Errorf("finalize: %w", output), false, false, false, true},
		{"plain error", errors.New("boom"), false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidation(tt.err); got != tt.wantValidation {
				t.Errorf("IsValidation() = %v, want %v", got, tt.wantValidation)
			}
			if got := IsEmptyData(tt.err); got != tt.wantEmpty {
				t.Errorf("IsEmptyData() = %v, want %v", got, tt.wantEmpty)
			}
			if got := IsTransient(tt.err); got != tt.wantTransient {
				t.Errorf("IsTransient() = %v, want %v", got, tt.wantTransient)
			}
			if got := IsOutput(tt.err); got != tt.wantOutput {
				t.Errorf("IsOutput() = %v, want %v", got, tt.wantOutput)
			}
		})
	}
}

func TestProviderError_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := &ProviderError{Symbol: "AAPL", Transient: true, Err: cause}

	if !errors.Is(err, cause) {
		t.Error("ProviderError should unwrap to its cause")
	}
}

func TestOutputError_Message(t *testing.T) {
	err := &OutputError{Path: "strong_buy_strong_buy_2024-06-01.pdf", Err: errors.New("file locked")}
	want := "report output strong_buy_strong_buy_2024-06-01.pdf: file locked"

	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
