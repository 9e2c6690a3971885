package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/changelog-migrate/internal/core/domain"
	"github.com/custodia-labs/changelog-migrate/internal/core/ports/driven"
	"github.com/custodia-labs/changelog-migrate/internal/core/ports/driving"
)

// Ensure FeedService implements the interface.
var _ driving.FeedService = (*FeedService)(nil)

// FeedService reads the changelog feed. Every stage parses the feed itself
// rather than sharing state with a previous stage.
type FeedService struct {
	reader driven.FeedReader
	path   string
}

// NewFeedService creates a feed service reading the feed at path.
func NewFeedService(reader driven.FeedReader, path string) *FeedService {
	return &FeedService{reader: reader, path: path}
}

// Items parses the feed. An empty feed is an error: there is nothing to
// migrate.
func (s *FeedService) Items(ctx context.Context) ([]domain.ChangelogItem, error) {
	items, err := s.reader.Read(ctx, s.path)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w in %s", domain.ErrNoItems, s.path)
	}
	return items, nil
}
