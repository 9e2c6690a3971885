package memory

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/custodia-labs/changelog-migrate/internal/core/domain"
	"github.com/custodia-labs/changelog-migrate/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.HistoryStore = (*HistoryStore)(nil)

// HistoryStore keeps runs in insertion order.
type HistoryStore struct {
	mu    sync.RWMutex
	runs  []domain.RunRecord
	items map[string][]domain.ItemRecord
	err   error
}

// NewHistoryStore creates an empty history store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{
		items: make(map[string][]domain.ItemRecord),
	}
}

// FailWith makes every later RecordRun return err.
func (s *HistoryStore) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// RecordRun stores run and its items. Runs without an ID get a sequential one.
func (s *HistoryStore) RecordRun(ctx context.Context, run domain.RunRecord, items []domain.ItemRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return s.err
	}
	if run.ID == "" {
		run.ID = "run-" + strconv.Itoa(len(s.runs)+1)
	}

	recorded := make([]domain.ItemRecord, len(items))
	for i, item := range items {
		item.RunID = run.ID
		recorded[i] = item
	}

	s.runs = append(s.runs, run)
	s.items[run.ID] = recorded
	return nil
}

// ListRuns returns up to limit runs, most recent first.
func (s *HistoryStore) ListRuns(_ context.Context, limit int) ([]domain.RunRecord, error) {
	if limit <= 0 {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]domain.RunRecord, 0, min(limit, len(s.runs)))
	for i := len(s.runs) - 1; i >= 0 && len(runs) < limit; i-- {
		runs = append(runs, s.runs[i])
	}
	return runs, nil
}

// ListItems returns the items recorded for runID.
func (s *HistoryStore) ListItems(_ context.Context, runID string) ([]domain.ItemRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items, ok := s.items[runID]
	if !ok {
		return nil, fmt.Errorf("%w: run %s", domain.ErrNotFound, runID)
	}
	return append([]domain.ItemRecord(nil), items...), nil
}

// Close is a no-op.
func (s *HistoryStore) Close() error {
	return nil
}
