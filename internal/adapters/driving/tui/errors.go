package tui

import "errors"

// ErrMissingFetchService is returned when the fetch service is not provided.
var ErrMissingFetchService = errors.New("tui: fetch service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")

// ErrNotFinished is returned by Result when the dashboard exited before
// the fetch returned.
var ErrNotFinished = errors.New("tui: fetch did not finish")
