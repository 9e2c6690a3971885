package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/changelog-migrate/internal/core/domain"
	"github.com/custodia-labs/changelog-migrate/internal/core/ports/driven"
	"github.com/custodia-labs/changelog-migrate/internal/core/ports/driving"
	"github.com/custodia-labs/changelog-migrate/internal/logger"
)

// Ensure CombineService implements the interface.
var _ driving.CombineService = (*CombineService)(nil)

// CombineOptions configures the combined document.
type CombineOptions struct {
	OutputPath  string
	Title       string
	Description string
}

// CombineService concatenates stored entries into one document grouped by
// month.
type CombineService struct {
	feed       driving.FeedService
	entries    driven.EntryStore
	writer     driven.DocumentWriter
	normaliser driven.Normaliser
	history    driven.HistoryStore
	opts       CombineOptions
}

// NewCombineService creates a combine service. history is optional.
func NewCombineService(
	feed driving.FeedService,
	entries driven.EntryStore,
	writer driven.DocumentWriter,
	normaliser driven.Normaliser,
	history driven.HistoryStore,
	opts CombineOptions,
) *CombineService {
	return &CombineService{
		feed:       feed,
		entries:    entries,
		writer:     writer,
		normaliser: normaliser,
		history:    history,
		opts:       opts,
	}
}

// Combine re-reads the feed, renders every stored entry under its month
// and writes the document in one step. Undated items and entries without
// a stored file are left out.
func (s *CombineService) Combine(ctx context.Context) (*domain.CombineSummary, error) {
	started := time.Now()

	items, err := s.feed.Items(ctx)
	if err != nil {
		recordRun(s.history, domain.StageCombine, started, nil, err)
		return nil, err
	}

	logger.Section("Combine")
	groups, undated := GroupByMonth(items)

	records := make([]domain.ItemRecord, 0, len(items))
	for _, item := range undated {
		logger.Warn("skipping %s: unparseable pubDate %q", item.Slug, item.PubDate)
		records = append(records, domain.ItemRecord{
			Slug:   item.Slug,
			URL:    item.Link,
			Status: domain.ItemSkipped,
			Error:  "unparseable pubDate",
		})
	}

	doc, summary, rendered, err := s.render(ctx, groups)
	records = append(records, rendered...)
	if err != nil {
		recordRun(s.history, domain.StageCombine, started, records, err)
		return nil, err
	}
	summary.Undated = len(undated)
	summary.OutputPath = s.opts.OutputPath

	if err := s.writer.WriteDocument(s.opts.OutputPath, []byte(doc)); err != nil {
		err = fmt.Errorf("writing %s: %w", s.opts.OutputPath, err)
		recordRun(s.history, domain.StageCombine, started, records, err)
		return nil, err
	}

	logger.Info("wrote %s: %d entries in %d months", s.opts.OutputPath, summary.Rendered, summary.Months)
	recordRun(s.history, domain.StageCombine, started, records, nil)
	return summary, nil
}

// render builds the full document in memory.
func (s *CombineService) render(
	ctx context.Context,
	groups []domain.MonthGroup,
) (string, *domain.CombineSummary, []domain.ItemRecord, error) {
	summary := &domain.CombineSummary{}
	var records []domain.ItemRecord

	header, err := s.normaliser.Frontmatter(s.opts.Title, s.opts.Description)
	if err != nil {
		return "", nil, records, err
	}

	wrappers := make([]string, 0, len(groups))
	for _, group := range groups {
		if err := ctx.Err(); err != nil {
			return "", nil, records, err
		}

		entries := make([]string, 0, len(group.Items))
		for _, item := range group.Items {
			content, err := s.readEntry(item)
			if err != nil {
				logger.Warn("skipping %s: %v", item.Slug, err)
				summary.Missing++
				records = append(records, domain.ItemRecord{
					Slug:   item.Slug,
					URL:    item.Link,
					Status: domain.ItemSkipped,
					Error:  err.Error(),
				})
				continue
			}

			logger.Debug("rendering %s into %s", item.Slug, group.Key)
			entries = append(entries, s.normaliser.Normalise(content, item.Published))
			summary.Rendered++
			records = append(records, domain.ItemRecord{
				Slug:   item.Slug,
				URL:    item.Link,
				Status: domain.ItemSucceeded,
			})
		}

		if len(entries) == 0 {
			continue
		}
		wrappers = append(wrappers, renderWrapper(group.Label(), entries))
		summary.Months++
	}

	return header + "\n" + strings.Join(wrappers, "\n"), summary, records, nil
}

func (s *CombineService) readEntry(item domain.ChangelogItem) (string, error) {
	data, err := s.entries.Read(item.Slug)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: %s", domain.ErrEmptyContent, item.FileName())
	}
	return string(data), nil
}

// renderWrapper wraps one month of rendered entries in an Update block.
// Entries are separated by a blank line.
func renderWrapper(label string, entries []string) string {
	var b strings.Builder
	b.WriteString(`<Update label="`)
	b.WriteString(label)
	b.WriteString("\">\n")
	b.WriteString(strings.Join(entries, "\n\n"))
	b.WriteString("\n</Update>\n")
	return b.String()
}
