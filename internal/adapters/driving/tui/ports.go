// Package tui provides an interactive fetch dashboard for changelog-migrate.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"fmt"

	"github.com/custodia-labs/changelog-migrate/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the TUI.
type Ports struct {
	// Fetch downloads the feed entries.
	Fetch driving.FetchService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(fetch driving.FetchService) *Ports {
	return &Ports{Fetch: fetch}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Fetch == nil {
		return fmt.Errorf("%w: %w", ErrInvalidPorts, ErrMissingFetchService)
	}
	return nil
}
