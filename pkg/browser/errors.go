package browser

import "errors"

var (
	// ErrLaunch indicates the browser process could not be started
	ErrLaunch = errors.New("browser launch failed")

	// ErrNavigation indicates the initial navigation did not complete in time
	ErrNavigation = errors.New("navigation failed")

	// ErrEvaluate indicates a script evaluation against the page failed
	ErrEvaluate = errors.New("page evaluation failed")

	// ErrClosed indicates the session was used after Close
	ErrClosed = errors.New("browser session closed")
)
