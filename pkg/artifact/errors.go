package artifact

import "errors"

var (
	// ErrWrite is returned when the dataset file cannot be written
	ErrWrite = errors.New("artifact: write dataset failed")
	// ErrRead is returned when the dataset file cannot be loaded
	ErrRead = errors.New("artifact: read dataset failed")
)
