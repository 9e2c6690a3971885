package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/changelog-migrate/internal/core/domain"
)

// mockFeedReader implements driven.FeedReader for testing.
type mockFeedReader struct {
	items []domain.ChangelogItem
	err   error
	reads int
	path  string
}

func (m *mockFeedReader) Read(ctx context.Context, path string) ([]domain.ChangelogItem, error) {
	m.reads++
	m.path = path
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.items, nil
}

// mockFetcher implements driven.ContentFetcher for testing.
type mockFetcher struct {
	mu     sync.Mutex
	bodies map[string]string
	errs   map[string]error
	calls  []string
}

func newMockFetcher() *mockFetcher {
	return &mockFetcher{
		bodies: make(map[string]string),
		errs:   make(map[string]error),
	}
}

func (m *mockFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, url)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := m.errs[url]; ok {
		return nil, err
	}
	return []byte(m.bodies[url]), nil
}

func (m *mockFetcher) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// mockPacer implements driven.Pacer and counts calls.
type mockPacer struct {
	mu       sync.Mutex
	pauses   int
	waits    int
	pauseErr error
	onPause  func()
}

func (m *mockPacer) Pause(ctx context.Context) error {
	m.mu.Lock()
	m.pauses++
	hook := m.onPause
	m.mu.Unlock()

	if hook != nil {
		hook()
	}
	if m.pauseErr != nil {
		return m.pauseErr
	}
	return ctx.Err()
}

func (m *mockPacer) Wait(ctx context.Context) error {
	m.mu.Lock()
	m.waits++
	m.mu.Unlock()
	return ctx.Err()
}

func item(link, pubDate string) domain.ChangelogItem {
	return domain.NewChangelogItem(link, pubDate)
}
