package services

import (
	"context"
	"errors"
	"time"

	"github.com/custodia-labs/changelog-migrate/internal/core/domain"
	"github.com/custodia-labs/changelog-migrate/internal/core/ports/driven"
	"github.com/custodia-labs/changelog-migrate/internal/core/ports/driving"
	"github.com/custodia-labs/changelog-migrate/internal/logger"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// DefaultHistoryLimit is the number of runs listed when no limit is given.
const DefaultHistoryLimit = 20

// HistoryService reads the run history. The store is optional.
type HistoryService struct {
	store driven.HistoryStore
}

// NewHistoryService creates a history service. store may be nil.
func NewHistoryService(store driven.HistoryStore) *HistoryService {
	return &HistoryService{store: store}
}

// Recent returns the most recent runs.
func (s *HistoryService) Recent(ctx context.Context, limit int) ([]domain.RunRecord, error) {
	if s.store == nil {
		return nil, domain.ErrHistoryUnavailable
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return s.store.ListRuns(ctx, limit)
}

// Items returns the entry outcomes of a run.
func (s *HistoryService) Items(ctx context.Context, runID string) ([]domain.ItemRecord, error) {
	if s.store == nil {
		return nil, domain.ErrHistoryUnavailable
	}
	if runID == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.store.ListItems(ctx, runID)
}

// recordRun stores a finished run when history is enabled. A failing store
// never fails the pipeline.
func recordRun(
	store driven.HistoryStore,
	stage domain.Stage,
	started time.Time,
	items []domain.ItemRecord,
	runErr error,
) {
	if store == nil {
		return
	}

	run := domain.RunRecord{
		Stage:     stage,
		StartedAt: started,
		EndedAt:   time.Now(),
	}
	for _, item := range items {
		switch item.Status {
		case domain.ItemSucceeded:
			run.Succeeded++
		case domain.ItemFailed, domain.ItemSkipped:
			run.Failed++
		}
	}
	if runErr != nil {
		run.Error = runErr.Error()
	}

	// Recording must survive a cancelled run context.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := store.RecordRun(ctx, run, items); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("recording %s run in history: %v", stage, err)
	}
}
