package driven

import (
	"context"

	"github.com/custodia-labs/changelog-migrate/internal/core/domain"
)

// HistoryStore records stage runs and per-item outcomes.
// History is an audit log; nothing reads it back to skip work.
type HistoryStore interface {
	// RecordRun stores a completed run with its item outcomes.
	RecordRun(ctx context.Context, run domain.RunRecord, items []domain.ItemRecord) error

	// ListRuns returns recent runs, most recent first.
	ListRuns(ctx context.Context, limit int) ([]domain.RunRecord, error)

	// ListItems returns the item outcomes of one run in recorded order.
	ListItems(ctx context.Context, runID string) ([]domain.ItemRecord, error)

	// Close releases resources.
	Close() error
}
