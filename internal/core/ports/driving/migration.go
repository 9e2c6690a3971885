package driving

import (
	"context"

	"github.com/custodia-labs/changelog-migrate/internal/core/domain"
)

// FeedService exposes the parsed changelog feed.
type FeedService interface {
	// Items parses the configured feed. Returns an error wrapping
	// domain.ErrFeedUnavailable or domain.ErrNoItems when there is
	// nothing to migrate.
	Items(ctx context.Context) ([]domain.ChangelogItem, error)
}

// FetchService downloads every feed entry into the markdown directory.
type FetchService interface {
	// Fetch downloads all entries. Per-item failures are counted in the
	// summary; the returned error is non-nil only for feed-level failures
	// or when nothing was downloaded (domain.ErrNothingFetched).
	Fetch(ctx context.Context, progress FetchProgress) (*domain.FetchSummary, error)
}

// FetchProgress receives one event per processed entry. It may be nil.
type FetchProgress func(FetchEvent)

// FetchEvent describes the outcome of one entry download.
type FetchEvent struct {
	// Index is the 1-based position of the item in the feed.
	Index int

	// Total is the number of items in the feed.
	Total int

	// Item is the entry processed.
	Item domain.ChangelogItem

	// Path is the file written on success.
	Path string

	// Err is the failure cause, nil on success.
	Err error
}

// CombineService builds the combined changelog document.
type CombineService interface {
	// Combine groups entries by month and writes the combined document.
	// Missing entry files and undated items are counted, not fatal.
	Combine(ctx context.Context) (*domain.CombineSummary, error)
}
