package domain

import "errors"

// Domain errors represent pipeline failures.
// Feed-level errors abort a run; item-level errors are counted and skipped.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidConfig indicates a configuration value is out of range.
	ErrInvalidConfig = errors.New("invalid configuration")

	// Feed Errors.

	// ErrFeedUnavailable indicates the feed file is missing or cannot be parsed.
	ErrFeedUnavailable = errors.New("feed unavailable")

	// ErrNoItems indicates the feed parsed but yielded no usable items.
	ErrNoItems = errors.New("no changelog items found")

	// Item Errors.

	// ErrFetchFailed indicates an entry's markdown could not be downloaded.
	ErrFetchFailed = errors.New("fetch failed")

	// ErrEmptyContent indicates an entry's markdown body was empty.
	ErrEmptyContent = errors.New("empty content")

	// ErrWriteFailed indicates an entry file could not be written.
	ErrWriteFailed = errors.New("write failed")

	// Stage Errors.

	// ErrNothingFetched indicates no entry was downloaded successfully.
	ErrNothingFetched = errors.New("no files were successfully downloaded")

	// ErrHistoryUnavailable indicates run history is not configured.
	ErrHistoryUnavailable = errors.New("run history unavailable")
)
