package contracts

import (
	"errors"
	"fmt"
)

// The pipeline distinguishes four failure classes. Bad rows and empty
// histories cost one candidate, provider failures cost one candidate and are
// logged as warnings, and output failures abort the run.

// ValidationError marks a candidate row the screener could not normalize.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid candidate: %s: %s", e.Field, e.Reason)
}

// EmptyDataError marks a symbol with no price history in the window.
// It is a skip signal, not a run failure.
type EmptyDataError struct {
	Symbol string
}

func (e *EmptyDataError) Error() string {
	return fmt.Sprintf("no price data for %s", e.Symbol)
}

// ProviderError wraps an upstream market data failure for one symbol.
type ProviderError struct {
	Symbol    string
	Transient bool
	Err       error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider error for %s: %v", e.Symbol, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// OutputError wraps a failure to create, lock or write the report file.
// It aborts the whole run.
type OutputError struct {
	Path string
	Err  error
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("report output %s: %v", e.Path, e.Err)
}

func (e *OutputError) Unwrap() error {
	return e.Err
}

// IsValidation checks if err is a candidate validation error
func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

// IsEmptyData checks if err is an empty history notice
func IsEmptyData(err error) bool {
	var e *EmptyDataError
	return errors.As(err, &e)
}

// IsTransient checks if err is a retryable provider error
func IsTransient(err error) bool {
	var e *ProviderError
	return errors.As(err, &e) && e.Transient
}

// IsOutput checks if err is a run-fatal output error
func IsOutput(err error) bool {
	var e *OutputError
	return errors.As(err, &e)
}
