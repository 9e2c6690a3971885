// Package rss reads the changelog feed exported by the old platform.
package rss

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	gofeedrss "github.com/mmcdole/gofeed/rss"

	"github.com/custodia-labs/changelog-migrate/internal/core/domain"
	"github.com/custodia-labs/changelog-migrate/internal/core/ports/driven"
	"github.com/custodia-labs/changelog-migrate/internal/logger"
)

// Ensure Reader implements the interface.
var _ driven.FeedReader = (*Reader)(nil)

// Reader parses RSS 2.0 feeds from local files.
type Reader struct{}

// New creates a feed reader.
func New() *Reader {
	return &Reader{}
}

// Read parses the feed at path and returns its items in document order.
// Items without a link or pubDate are skipped. The document root must be
// <rss> or <rdf>; a bare <channel> document is rejected with
// domain.ErrFeedUnavailable.
func (r *Reader) Read(ctx context.Context, path string) ([]domain.ChangelogItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: RSS feed file not found: %s", domain.ErrFeedUnavailable, path)
		}
		return nil, fmt.Errorf("%w: opening %s: %w", domain.ErrFeedUnavailable, path, err)
	}
	defer f.Close()

	// The parser keeps per-document state, so use a fresh one per read.
	parser := &gofeedrss.Parser{}
	feed, err := parser.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %w", domain.ErrFeedUnavailable, path, err)
	}

	items := make([]domain.ChangelogItem, 0, len(feed.Items))
	for i, entry := range feed.Items {
		if entry == nil {
			continue
		}
		link := strings.TrimSpace(entry.Link)
		pubDate := strings.TrimSpace(entry.PubDate)
		if link == "" || pubDate == "" {
			logger.Debug("skipping feed item %d: missing link or pubDate", i+1)
			continue
		}
		items = append(items, domain.NewChangelogItem(link, pubDate))
	}

	logger.Info("parsed %d changelog items from %s", len(items), path)
	return items, nil
}
