package service

import "errors"

// Sentinel kinds for service lifecycle errors.
var (
	ErrNoFetcher  = errors.New("no document fetcher configured")
	ErrNotStarted = errors.New("service not started")
)
