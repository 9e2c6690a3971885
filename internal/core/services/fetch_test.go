package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/changelog-migrate/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/changelog-migrate/internal/core/domain"
	"github.com/custodia-labs/changelog-migrate/internal/core/ports/driving"
)

type fetchFixture struct {
	reader  *mockFeedReader
	fetcher *mockFetcher
	entries *memory.EntryStore
	pacer   *mockPacer
	history *memory.HistoryStore
}

func newFetchFixture(n int) *fetchFixture {
	f := &fetchFixture{
		reader:  &mockFeedReader{},
		fetcher: newMockFetcher(),
		entries: memory.NewEntryStore("markdown"),
		pacer:   &mockPacer{},
		history: memory.NewHistoryStore(),
	}
	for i := 1; i <= n; i++ {
		it := item(fmt.Sprintf("https://example.com/changelog/entry-%d", i), "Mon, 15 Jan 2024 10:00:00 GMT")
		f.reader.items = append(f.reader.items, it)
		f.fetcher.bodies[it.MarkdownURL()] = fmt.Sprintf("# Entry %d", i)
	}
	return f
}

func (f *fetchFixture) service(concurrency int) *FetchService {
	return NewFetchService(
		NewFeedService(f.reader, "changelog.rss"),
		f.fetcher, f.entries, f.pacer, f.history, concurrency,
	)
}

func TestNewFetchService_ClampsConcurrency(t *testing.T) {
	f := newFetchFixture(0)

	assert.Equal(t, 1, f.service(0).concurrency)
	assert.Equal(t, 1, f.service(-5).concurrency)
	assert.Equal(t, 3, f.service(3).concurrency)
}

func TestFetch_Sequential_StoresEveryEntry(t *testing.T) {
	f := newFetchFixture(3)

	var events []driving.FetchEvent
	summary, err := f.service(1).Fetch(context.Background(), func(e driving.FetchEvent) {
		events = append(events, e)
	})

	require.NoError(t, err)
	require.NotNil(t, summary)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 3, summary.Succeeded)
	assert.Equal(t, 0, summary.Failed)
	assert.Equal(t, "markdown", summary.OutputDir)
	assert.True(t, summary.OK())

	content, err := f.entries.Read("entry-2")
	require.NoError(t, err)
	assert.Equal(t, "# Entry 2", string(content))

	require.Len(t, events, 3)
	for i, e := range events {
		assert.Equal(t, i+1, e.Index)
		assert.Equal(t, 3, e.Total)
		assert.NoError(t, e.Err)
	}
	assert.Equal(t, "markdown/entry-1.mdx", events[0].Path)
}

func TestFetch_Sequential_PausesBetweenItemsOnly(t *testing.T) {
	f := newFetchFixture(4)

	_, err := f.service(1).Fetch(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, 3, f.pacer.pauses)
	assert.Equal(t, 0, f.pacer.waits)
}

func TestFetch_SingleItem_NoPause(t *testing.T) {
	f := newFetchFixture(1)

	_, err := f.service(1).Fetch(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, 0, f.pacer.pauses)
}

func TestFetch_RequestsMarkdownURL(t *testing.T) {
	f := newFetchFixture(1)

	_, err := f.service(1).Fetch(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/changelog/entry-1.md"}, f.fetcher.calls)
}

func TestFetch_FailuresAreCountedAndSkipped(t *testing.T) {
	f := newFetchFixture(3)
	f.fetcher.errs["https://example.com/changelog/entry-2.md"] = fmt.Errorf("%w: 404", domain.ErrFetchFailed)
	f.fetcher.bodies["https://example.com/changelog/entry-3.md"] = ""

	summary, err := f.service(1).Fetch(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Succeeded)
	assert.Equal(t, 2, summary.Failed)
	require.Len(t, summary.Failures, 2)
	assert.Equal(t, "entry-2", summary.Failures[0].Slug)
	assert.ErrorIs(t, summary.Failures[0], domain.ErrFetchFailed)
	assert.ErrorIs(t, summary.Failures[1], domain.ErrEmptyContent)

	// Every item is still attempted and paced
	assert.Equal(t, 3, f.fetcher.callCount())
	assert.Equal(t, 2, f.pacer.pauses)
	assert.Equal(t, 1, f.entries.Len())
}

func TestFetch_NothingFetched(t *testing.T) {
	f := newFetchFixture(2)
	for url := range f.fetcher.bodies {
		f.fetcher.errs[url] = domain.ErrFetchFailed
	}

	summary, err := f.service(1).Fetch(context.Background(), nil)

	assert.ErrorIs(t, err, domain.ErrNothingFetched)
	require.NotNil(t, summary)
	assert.Equal(t, 2, summary.Failed)
	assert.False(t, summary.OK())
}

func TestFetch_FeedUnavailable(t *testing.T) {
	f := newFetchFixture(0)
	f.reader.err = domain.ErrFeedUnavailable

	summary, err := f.service(1).Fetch(context.Background(), nil)

	assert.ErrorIs(t, err, domain.ErrFeedUnavailable)
	assert.Nil(t, summary)
	assert.Equal(t, 0, f.fetcher.callCount())

	runs, _ := f.history.ListRuns(context.Background(), 5)
	require.Len(t, runs, 1)
	assert.Contains(t, runs[0].Error, domain.ErrFeedUnavailable.Error())
}

func TestFetch_NoItems(t *testing.T) {
	f := newFetchFixture(0)

	_, err := f.service(1).Fetch(context.Background(), nil)

	assert.ErrorIs(t, err, domain.ErrNoItems)
}

func TestFetch_CancelledDuringPause(t *testing.T) {
	f := newFetchFixture(5)
	ctx, cancel := context.WithCancel(context.Background())
	f.pacer.onPause = cancel

	summary, err := f.service(1).Fetch(ctx, nil)

	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, summary)
	assert.Equal(t, 1, summary.Succeeded)
	assert.Equal(t, 1, f.fetcher.callCount())
}

func TestFetch_RecordsHistory(t *testing.T) {
	f := newFetchFixture(2)
	f.fetcher.errs["https://example.com/changelog/entry-1.md"] = domain.ErrFetchFailed

	_, err := f.service(1).Fetch(context.Background(), nil)
	require.NoError(t, err)

	ctx := context.Background()
	runs, err := f.history.ListRuns(ctx, 5)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, domain.StageFetch, runs[0].Stage)
	assert.Equal(t, 1, runs[0].Succeeded)
	assert.Equal(t, 1, runs[0].Failed)
	assert.Empty(t, runs[0].Error)

	items, err := f.history.ListItems(ctx, runs[0].ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, domain.ItemFailed, items[0].Status)
	assert.Equal(t, domain.ItemSucceeded, items[1].Status)
}

func TestFetch_HistoryFailureDoesNotFailRun(t *testing.T) {
	f := newFetchFixture(1)
	f.history.FailWith(errors.New("database is locked"))

	summary, err := f.service(1).Fetch(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Succeeded)
}

func TestFetch_WithoutHistory(t *testing.T) {
	f := newFetchFixture(1)
	service := NewFetchService(NewFeedService(f.reader, "changelog.rss"), f.fetcher, f.entries, f.pacer, nil, 1)

	_, err := service.Fetch(context.Background(), nil)

	require.NoError(t, err)
}

func TestFetch_Concurrent(t *testing.T) {
	f := newFetchFixture(10)
	f.fetcher.errs["https://example.com/changelog/entry-7.md"] = domain.ErrFetchFailed

	var (
		mu      sync.Mutex
		indexes []int
	)
	summary, err := f.service(4).Fetch(context.Background(), func(e driving.FetchEvent) {
		mu.Lock()
		defer mu.Unlock()
		indexes = append(indexes, e.Index)
	})

	require.NoError(t, err)
	assert.Equal(t, 9, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, "entry-7", summary.Failures[0].Slug)

	// Each request waits on the rate limiter; no fixed pauses
	assert.Equal(t, 10, f.pacer.waits)
	assert.Equal(t, 0, f.pacer.pauses)
	assert.Equal(t, 9, f.entries.Len())

	sort.Ints(indexes)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, indexes)
}

func TestFetch_ConcurrentCancelled(t *testing.T) {
	f := newFetchFixture(6)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := f.service(3).Fetch(ctx, nil)

	// The feed read itself observes the cancellation
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, summary)
}
