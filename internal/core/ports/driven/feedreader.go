package driven

import (
	"context"

	"github.com/custodia-labs/changelog-migrate/internal/core/domain"
)

// FeedReader parses a changelog feed into items.
type FeedReader interface {
	// Read returns the feed's items in document order.
	// Items lacking a link or pubDate are skipped without error.
	// A missing or malformed feed returns an error wrapping
	// domain.ErrFeedUnavailable and no items.
	Read(ctx context.Context, path string) ([]domain.ChangelogItem, error)
}
