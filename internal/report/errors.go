package report

import "errors"

// Precondition errors abort a run before any fetch happens.
var (
	ErrMissingTestID     = errors.New("report: missing test id")
	ErrMissingDateFilter = errors.New("report: missing date filter")
	ErrMissingTest       = errors.New("report: missing test")
)

// ErrLoadSubmissions wraps session fetch failures. The underlying cause is
// attached for logs; callers surface only the generic message and never
// retry.
var ErrLoadSubmissions = errors.New("report: failed to load submissions")
