package database

import "errors"

// Run store errors.
var (
	// ErrStoreNotFound is returned when opening a store read-only and the
	// database file does not exist yet.
	ErrStoreNotFound = errors.New("run store does not exist")

	// ErrNoRuns is returned when the store holds no matching run.
	ErrNoRuns = errors.New("no runs in store")
)
