package store

import "errors"

// Sentinel errors for store operations
var (
	// ErrConnectionFailed indicates the database could not be opened
	ErrConnectionFailed = errors.New("store: connection failed")

	// ErrMigrationFailed indicates the schema could not be created
	ErrMigrationFailed = errors.New("store: migration failed")

	// ErrRunNotFound indicates that no run has the requested id
	ErrRunNotFound = errors.New("store: run not found")

	// ErrWriteFailed indicates an insert or update failed
	ErrWriteFailed = errors.New("store: write failed")
)
