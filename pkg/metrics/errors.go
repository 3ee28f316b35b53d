package metrics

import (
	"errors"
)

// ErrObserveFailed marks an observation the manager could not record.
var ErrObserveFailed = errors.New("metrics observe failed")
