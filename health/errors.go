package health

import "errors"

var (
	// ErrCheckFailed indicates a health check found a component unable
	// to serve calls.
	ErrCheckFailed = errors.New("health: check failed")

	// ErrCheckTimeout indicates a health check did not finish within
	// the aggregator timeout.
	ErrCheckTimeout = errors.New("health: check timeout")

	// ErrCheckerNotFound indicates no checker is registered under the
	// requested name.
	ErrCheckerNotFound = errors.New("health: checker not found")

	// ErrCheckPanicked indicates a checker panicked while running. The
	// panic is recovered and reported as an unhealthy result so one bad
	// checker cannot take down the process.
	ErrCheckPanicked = errors.New("health: check panicked")
)
