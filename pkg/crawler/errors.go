package crawler

import "errors"

var (
	// ErrSnapshot is returned when the expanded page cannot be serialized
	ErrSnapshot = errors.New("crawler: page snapshot failed")
	// ErrExtract is returned when the snapshot cannot be parsed
	ErrExtract = errors.New("crawler: extraction failed")
)
