package driving

import (
	"context"

	"github.com/custodia-labs/changelog-migrate/internal/core/domain"
)

// HistoryService reads recorded runs.
type HistoryService interface {
	// Recent returns up to limit runs, most recent first.
	Recent(ctx context.Context, limit int) ([]domain.RunRecord, error)

	// Items returns the per-entry outcomes of a run.
	Items(ctx context.Context, runID string) ([]domain.ItemRecord, error)
}
