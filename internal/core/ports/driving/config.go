package driving

import "github.com/custodia-labs/changelog-migrate/internal/core/domain"

// ConfigService resolves the effective pipeline configuration.
type ConfigService interface {
	// Load returns defaults overlaid with stored values, validated.
	Load() (domain.Config, error)

	// Save persists cfg to the backing store.
	Save(cfg domain.Config) error
}
