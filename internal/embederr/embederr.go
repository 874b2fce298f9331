// Package embederr defines the error kinds callers can distinguish via
// errors.Is.
package embederr

import "errors"

var (
	// ErrInvalidArgument covers empty input text, K=0, malformed
	// dictionary/import JSON, and mismatched import schema versions.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrRetrainInProgress is returned (not panicked) when
	// StartBackgroundRetrain is called while the controller is not idle.
	ErrRetrainInProgress = errors.New("retrain already in progress")

	// ErrNumericFailure marks an SVD that failed to converge. The
	// live model is left untouched when this occurs.
	ErrNumericFailure = errors.New("numeric failure during svd")

	// ErrCapacityExceeded marks a vocabulary observation that dropped at
	// least one previously-unseen surface because V_max was already
	// reached. Ingestion still succeeds; this only signals that the
	// document's full token set was not represented in the vocabulary.
	ErrCapacityExceeded = errors.New("vocabulary capacity exceeded")
)

// ModelUntrained is not an error kind — querying an untrained model
// returns a zero vector, not a failure. No sentinel is defined for it;
// callers inspect Controller.IsTrained.
