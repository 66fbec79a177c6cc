package core

import "errors"

var (
	// ErrConfiguration reports a malformed grid: non-positive dimensions or
	// a cell count that does not match width*height.
	ErrConfiguration = errors.New("invalid grid configuration")

	// ErrInvalidEndpoint reports a start or goal that is outside the grid or
	// on a blocked cell.
	ErrInvalidEndpoint = errors.New("invalid endpoint")

	// ErrOutOfRange reports a cell lookup outside the grid bounds.
	ErrOutOfRange = errors.New("coordinate out of range")
)
