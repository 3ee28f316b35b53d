package source

import "errors"

// Sentinel kinds for snapshot loading errors.
var (
	ErrParse = errors.New("document parse failed")
)
