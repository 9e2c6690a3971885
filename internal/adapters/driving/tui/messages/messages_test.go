package messages

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/changelog-migrate/internal/core/domain"
	"github.com/custodia-labs/changelog-migrate/internal/core/ports/driving"
)

func TestItemFetched_Failed(t *testing.T) {
	assert.False(t, ItemFetched{Event: driving.FetchEvent{Path: "markdown/a.mdx"}}.Failed())
	assert.True(t, ItemFetched{Event: driving.FetchEvent{Err: errors.New("404")}}.Failed())
}

func TestFetchDone_Cancelled(t *testing.T) {
	tests := []struct {
		name    string
		summary *domain.FetchSummary
		want    bool
	}{
		{"no summary", nil, false},
		{"all attempted", &domain.FetchSummary{Total: 3, Succeeded: 2, Failed: 1}, false},
		{"stopped early", &domain.FetchSummary{Total: 3, Succeeded: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FetchDone{Summary: tt.summary}.Cancelled())
		})
	}
}
