package api

import (
	"errors"
	"fmt"
)

// ErrBadRequest is the kind shared by rejected request parameters, so
// callers can match the whole family with errors.Is.
var ErrBadRequest = errors.New("bad request")

// ErrUnknownOffice rejects an office filter with no configured mapping.
var ErrUnknownOffice = fmt.Errorf("%w: unknown office", ErrBadRequest)
