package extract

import "errors"

var (
	// ErrDocument is returned when the page snapshot cannot be parsed at all
	ErrDocument = errors.New("extract: parse document failed")
	// ErrCandidate marks a single container that could not be turned into a record
	ErrCandidate = errors.New("extract: candidate parse failed")
)
