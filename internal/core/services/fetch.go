package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/changelog-migrate/internal/core/domain"
	"github.com/custodia-labs/changelog-migrate/internal/core/ports/driven"
	"github.com/custodia-labs/changelog-migrate/internal/core/ports/driving"
	"github.com/custodia-labs/changelog-migrate/internal/logger"
)

// Ensure FetchService implements the interface.
var _ driving.FetchService = (*FetchService)(nil)

// FetchService downloads each feed entry's markdown and stores it as
// <slug>.mdx.
type FetchService struct {
	feed        driving.FeedService
	fetcher     driven.ContentFetcher
	entries     driven.EntryStore
	pacer       driven.Pacer
	history     driven.HistoryStore
	concurrency int
}

// NewFetchService creates a fetch service.
// history is optional; concurrency values below 2 fetch sequentially.
func NewFetchService(
	feed driving.FeedService,
	fetcher driven.ContentFetcher,
	entries driven.EntryStore,
	pacer driven.Pacer,
	history driven.HistoryStore,
	concurrency int,
) *FetchService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &FetchService{
		feed:        feed,
		fetcher:     fetcher,
		entries:     entries,
		pacer:       pacer,
		history:     history,
		concurrency: concurrency,
	}
}

// fetchOutcome is the result for one feed item.
type fetchOutcome struct {
	attempted bool
	path      string
	err       error
}

// Fetch downloads every entry of the feed. One entry failing never stops
// the others. The stage fails when the feed is unusable, when no entry was
// stored, or when ctx is cancelled.
func (s *FetchService) Fetch(ctx context.Context, progress driving.FetchProgress) (*domain.FetchSummary, error) {
	started := time.Now()

	items, err := s.feed.Items(ctx)
	if err != nil {
		recordRun(s.history, domain.StageFetch, started, nil, err)
		return nil, err
	}

	logger.Section("Fetch")
	logger.Info("processing %d changelog items into %s", len(items), s.entries.Dir())

	var outcomes []fetchOutcome
	if s.concurrency > 1 && len(items) > 1 {
		outcomes, err = s.fetchConcurrent(ctx, items, progress)
	} else {
		outcomes, err = s.fetchSequential(ctx, items, progress)
	}

	summary := summariseFetch(items, outcomes, s.entries.Dir())
	if err == nil && !summary.OK() {
		err = domain.ErrNothingFetched
	}
	recordRun(s.history, domain.StageFetch, started, fetchItemRecords(items, outcomes), err)

	return summary, err
}

// fetchSequential processes items one at a time with a fixed pause after
// every item except the last.
func (s *FetchService) fetchSequential(
	ctx context.Context,
	items []domain.ChangelogItem,
	progress driving.FetchProgress,
) ([]fetchOutcome, error) {
	outcomes := make([]fetchOutcome, len(items))

	for i, item := range items {
		path, err := s.fetchOne(ctx, item)
		outcomes[i] = fetchOutcome{attempted: true, path: path, err: err}
		report(progress, i, len(items), item, path, err)

		if i < len(items)-1 {
			if err := s.pacer.Pause(ctx); err != nil {
				return outcomes, err
			}
		}
	}

	return outcomes, nil
}

// fetchConcurrent processes items with a bounded worker pool. Request starts
// are paced by the pacer; outcomes keep feed order.
func (s *FetchService) fetchConcurrent(
	ctx context.Context,
	items []domain.ChangelogItem,
	progress driving.FetchProgress,
) ([]fetchOutcome, error) {
	outcomes := make([]fetchOutcome, len(items))
	jobs := make(chan int)

	var (
		wg         sync.WaitGroup
		progressMu sync.Mutex
	)

	workers := min(s.concurrency, len(items))
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if err := s.pacer.Wait(ctx); err != nil {
					continue
				}
				path, err := s.fetchOne(ctx, items[i])
				outcomes[i] = fetchOutcome{attempted: true, path: path, err: err}

				progressMu.Lock()
				report(progress, i, len(items), items[i], path, err)
				progressMu.Unlock()
			}
		}()
	}

dispatch:
	for i := range items {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	return outcomes, ctx.Err()
}

// fetchOne downloads and stores a single entry.
func (s *FetchService) fetchOne(ctx context.Context, item domain.ChangelogItem) (string, error) {
	url := item.MarkdownURL()
	logger.Debug("fetching %s (slug %s)", url, item.Slug)

	body, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		logger.Warn("error fetching %s: %v", url, err)
		return "", err
	}
	if len(body) == 0 {
		logger.Warn("empty body for %s", url)
		return "", fmt.Errorf("%w: %s", domain.ErrEmptyContent, url)
	}

	path, err := s.entries.Write(item.Slug, body)
	if err != nil {
		logger.Warn("error saving %s: %v", item.Slug, err)
		return "", err
	}

	logger.Debug("saved %s", path)
	return path, nil
}

func report(progress driving.FetchProgress, i, total int, item domain.ChangelogItem, path string, err error) {
	if progress == nil {
		return
	}
	progress(driving.FetchEvent{
		Index: i + 1,
		Total: total,
		Item:  item,
		Path:  path,
		Err:   err,
	})
}

func summariseFetch(items []domain.ChangelogItem, outcomes []fetchOutcome, dir string) *domain.FetchSummary {
	summary := &domain.FetchSummary{
		Total:     len(items),
		OutputDir: dir,
	}

	for i, outcome := range outcomes {
		if !outcome.attempted {
			continue
		}
		if outcome.err != nil {
			summary.Failed++
			summary.Failures = append(summary.Failures, domain.ItemFailure{
				Slug: items[i].Slug,
				URL:  items[i].MarkdownURL(),
				Err:  outcome.err,
			})
			continue
		}
		summary.Succeeded++
	}

	return summary
}

func fetchItemRecords(items []domain.ChangelogItem, outcomes []fetchOutcome) []domain.ItemRecord {
	records := make([]domain.ItemRecord, 0, len(outcomes))
	for i, outcome := range outcomes {
		if !outcome.attempted {
			continue
		}
		record := domain.ItemRecord{
			Slug:   items[i].Slug,
			URL:    items[i].MarkdownURL(),
			Status: domain.ItemSucceeded,
		}
		if outcome.err != nil {
			record.Status = domain.ItemFailed
			record.Error = outcome.err.Error()
		}
		records = append(records, record)
	}
	return records
}
