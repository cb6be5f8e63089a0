package detail

import "errors"

var (
	// ErrFetch indicates a detail page could not be loaded or serialized
	ErrFetch = errors.New("detail page fetch failed")
	// ErrParse indicates a detail page could not be parsed
	ErrParse = errors.New("detail page parse failed")
)
