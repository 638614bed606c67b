package model

import "fmt"

// ValidationError means the document could not be analyzed at all
// (empty or too short after segmentation). It is distinct from a clean
// result with no matches.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Reason
}

// ProviderError records a failure inside one provider adapter. It is
// always absorbed by the retrieval coordinator and never reaches the
// caller of an analysis.
type ProviderError struct {
	Provider string
	Query    string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// InternalError wraps an unexpected failure in scoring or aggregation.
// It aborts the analysis for the one document it occurred in.
type InternalError struct {
	Stage string
	Err   error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal: %s: %v", e.Stage, e.Err)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}
