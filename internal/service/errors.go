package service

import "errors"

// Failure taxonomy surfaced to callers. Everything is an explicit
// return; the only automatic recovery is the compensating credit issued
// when a scan fails after its debit succeeded.
var (
	// ErrInvalidInput covers empty or malformed request fields,
	// detected before any state change.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInsufficientCredits means the debit was refused; no state changed.
	ErrInsufficientCredits = errors.New("insufficient credits")

	// ErrStorageFailure wraps corpus, history, or archive collaborator
	// failures.
	ErrStorageFailure = errors.New("storage failure")

	// ErrNotFound is returned for unknown document or user IDs.
	ErrNotFound = errors.New("not found")

	// ErrIDRequired is returned when a lookup is attempted with an empty ID.
	ErrIDRequired = errors.New("id is required")
)
