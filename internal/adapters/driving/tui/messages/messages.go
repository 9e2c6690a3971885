// Package messages defines Bubbletea message types for the TUI.
// Messages carry fetch progress from the worker goroutine into the model.
package messages

import (
	"github.com/custodia-labs/changelog-migrate/internal/core/domain"
	"github.com/custodia-labs/changelog-migrate/internal/core/ports/driving"
)

// ItemFetched is sent once per processed feed entry.
type ItemFetched struct {
	Event driving.FetchEvent
}

// Failed reports whether the entry was skipped.
func (m ItemFetched) Failed() bool {
	return m.Event.Err != nil
}

// FetchDone is sent when the fetch stage returns.
type FetchDone struct {
	Summary *domain.FetchSummary
	Err     error
}

// Cancelled reports whether the run stopped before every entry was tried.
func (m FetchDone) Cancelled() bool {
	if m.Summary == nil {
		return false
	}
	return m.Summary.Succeeded+m.Summary.Failed < m.Summary.Total
}
