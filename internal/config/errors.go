package config

import (
	"errors"
)

// Kinds separating a malformed configuration from a failed load, matched
// by callers with errors.Is.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)
