package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/changelog-migrate/internal/core/domain"
)

func TestHistoryCmd_Use(t *testing.T) {
	assert.Equal(t, "history [run-id]", historyCmd.Use)
	assert.NotNil(t, historyCmd.Flags().Lookup("limit"))
}

func TestHistoryCmd_ListsRuns(t *testing.T) {
	started := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	history := &mockHistoryService{runs: []domain.RunRecord{
		{
			ID: "2b1f", Stage: domain.StageFetch,
			StartedAt: started, EndedAt: started.Add(1500 * time.Millisecond),
			Succeeded: 9, Failed: 1,
		},
		{
			ID: "9c3e", Stage: domain.StageCombine,
			StartedAt: started, EndedAt: started,
			Error: "writing changelog.mdx: write failed",
		},
	}}
	setupServices(t, &Services{History: history})

	out, err := execute(t, "history", "--limit", "5")

	require.NoError(t, err)
	assert.Equal(t, 5, history.limit)
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "STAGE")
	assert.Contains(t, out, "2b1f")
	assert.Contains(t, out, "fetch")
	assert.Contains(t, out, "1.5s")
	assert.Contains(t, out, "writing changelog.mdx: write failed")
}

func TestHistoryCmd_Empty(t *testing.T) {
	setupServices(t, &Services{History: &mockHistoryService{}})

	out, err := execute(t, "history")

	require.NoError(t, err)
	assert.Contains(t, out, "No runs recorded.")
}

func TestHistoryCmd_Unavailable(t *testing.T) {
	setupServices(t, &Services{History: &mockHistoryService{err: domain.ErrHistoryUnavailable}})

	_, err := execute(t, "history")

	assert.ErrorIs(t, err, domain.ErrHistoryUnavailable)
}

func TestHistoryCmd_RunItems(t *testing.T) {
	setupServices(t, &Services{History: &mockHistoryService{items: []domain.ItemRecord{
		{RunID: "2b1f", Slug: "v1-2-0", Status: domain.ItemSucceeded},
		{RunID: "2b1f", Slug: "v1-1-0", Status: domain.ItemFailed, Error: "404"},
	}}})

	out, err := execute(t, "history", "2b1f")

	require.NoError(t, err)
	assert.Contains(t, out, "SLUG")
	assert.Contains(t, out, "v1-2-0")
	assert.Contains(t, out, "succeeded")
	assert.Contains(t, out, "404")
}

func TestHistoryCmd_RunNotFound(t *testing.T) {
	setupServices(t, &Services{History: &mockHistoryService{err: domain.ErrNotFound}})

	_, err := execute(t, "history", "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
