package weather

import (
	"errors"
	"fmt"
)

// FailureKind classifies why a combined fetch could not produce a result.
type FailureKind string

const (
	// FailureValidation rejects bad input before any network call is made.
	FailureValidation FailureKind = "validation"
	// FailureNotFound means the provider confirmed no match for the query.
	FailureNotFound FailureKind = "not_found"
	// FailureNetwork covers transport failures and undecodable bodies.
	FailureNetwork FailureKind = "network"
	// FailurePartialData means current conditions succeeded but the forecast
	// call failed (or vice versa); the combined fetch is treated as a total
	// failure, never a partial render.
	FailurePartialData FailureKind = "partial_data"
)

// FetchError carries the failure classification through the pipeline.
type FetchError struct {
	Kind FailureKind
	Err  error
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError wraps err with a failure classification.
func NewFetchError(kind FailureKind, err error) *FetchError {
	return &FetchError{Kind: kind, Err: err}
}

// ErrEmptyQuery is returned for an empty or whitespace-only city query,
// before any network call.
var ErrEmptyQuery = &FetchError{Kind: FailureValidation, Err: errors.New("city query must not be empty")}

// KindOf extracts the failure classification from err. Unclassified errors
// report as FailureNetwork, the catch-all for transport-level trouble.
func KindOf(err error) FailureKind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return FailureNetwork
}
