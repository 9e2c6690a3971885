package services

import (
	"fmt"
	"time"

	"github.com/custodia-labs/changelog-migrate/internal/core/domain"
	"github.com/custodia-labs/changelog-migrate/internal/core/ports/driven"
	"github.com/custodia-labs/changelog-migrate/internal/core/ports/driving"
)

// Ensure ConfigService implements the interface.
var _ driving.ConfigService = (*ConfigService)(nil)

// Config keys, as written in the TOML file.
const (
	keyFeedPath          = "feed_path"
	keyMarkdownDir       = "markdown_dir"
	keyOutputPath        = "output_path"
	keyRequestTimeout    = "request_timeout"
	keyInterRequestDelay = "inter_request_delay"
	keyIndentWidth       = "indent_width"
	keyConcurrency       = "concurrency"
	keyUserAgent         = "user_agent"
	keyMaxBodyBytes      = "max_body_bytes"
	keyTitle             = "title"
	keyDescription       = "description"
	keyHistoryDB         = "history_db"
)

// ConfigService maps the config store onto domain.Config.
type ConfigService struct {
	configStore driven.ConfigStore
}

// NewConfigService creates a new config service.
func NewConfigService(configStore driven.ConfigStore) *ConfigService {
	return &ConfigService{configStore: configStore}
}

// Load builds the configuration. Keys absent from the store keep their
// defaults. The result is validated.
func (s *ConfigService) Load() (domain.Config, error) {
	cfg := domain.DefaultConfig()

	textKeys := []struct {
		key string
		dst *string
	}{
		{keyFeedPath, &cfg.FeedPath},
		{keyMarkdownDir, &cfg.MarkdownDir},
		{keyOutputPath, &cfg.OutputPath},
		{keyUserAgent, &cfg.UserAgent},
		{keyTitle, &cfg.Title},
		{keyDescription, &cfg.Description},
		{keyHistoryDB, &cfg.HistoryDB},
	}
	for _, f := range textKeys {
		v, err := s.getString(f.key, *f.dst)
		if err != nil {
			return cfg, err
		}
		*f.dst = v
	}

	var err error
	if cfg.IndentWidth, err = s.getInt(keyIndentWidth, cfg.IndentWidth); err != nil {
		return cfg, err
	}
	if cfg.Concurrency, err = s.getInt(keyConcurrency, cfg.Concurrency); err != nil {
		return cfg, err
	}
	maxBody, err := s.getInt(keyMaxBodyBytes, int(cfg.MaxBodyBytes))
	if err != nil {
		return cfg, err
	}
	cfg.MaxBodyBytes = int64(maxBody)

	if cfg.RequestTimeout, err = s.getDuration(keyRequestTimeout, cfg.RequestTimeout); err != nil {
		return cfg, err
	}
	if cfg.InterRequestDelay, err = s.getDuration(keyInterRequestDelay, cfg.InterRequestDelay); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save validates cfg and persists every field.
func (s *ConfigService) Save(cfg domain.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{keyFeedPath, cfg.FeedPath},
		{keyMarkdownDir, cfg.MarkdownDir},
		{keyOutputPath, cfg.OutputPath},
		{keyRequestTimeout, cfg.RequestTimeout.String()},
		{keyInterRequestDelay, cfg.InterRequestDelay.String()},
		{keyIndentWidth, cfg.IndentWidth},
		{keyConcurrency, cfg.Concurrency},
		{keyUserAgent, cfg.UserAgent},
		{keyMaxBodyBytes, cfg.MaxBodyBytes},
		{keyTitle, cfg.Title},
		{keyDescription, cfg.Description},
		{keyHistoryDB, cfg.HistoryDB},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("setting %s: %w", v.key, err)
		}
	}

	return s.configStore.Save()
}

// getString returns a string setting or the default if not set.
// A present value of another type is rejected.
func (s *ConfigService) getString(key, defaultVal string) (string, error) {
	val, ok := s.configStore.Get(key)
	if !ok {
		return defaultVal, nil
	}
	v, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string, got %T", domain.ErrInvalidConfig, key, val)
	}
	return v, nil
}

// getInt returns an integer setting or the default if not set.
// A present value of another type is rejected.
func (s *ConfigService) getInt(key string, defaultVal int) (int, error) {
	val, ok := s.configStore.Get(key)
	if !ok {
		return defaultVal, nil
	}
	switch v := val.(type) {
	case int64:
		return int(v), nil
	case int:
		return v, nil
	default:
		return 0, fmt.Errorf("%w: %s must be an integer, got %T", domain.ErrInvalidConfig, key, val)
	}
}

// getDuration accepts a Go duration string ("30s") or a whole number of
// seconds.
func (s *ConfigService) getDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val, ok := s.configStore.Get(key)
	if !ok {
		return defaultVal, nil
	}

	switch v := val.(type) {
	case string:
		d, err := time.ParseDuration(v)
		if err != nil {
			return 0, fmt.Errorf("%w: %s: %q is not a duration", domain.ErrInvalidConfig, key, v)
		}
		return d, nil
	case int64:
		return time.Duration(v) * time.Second, nil
	case int:
		return time.Duration(v) * time.Second, nil
	default:
		return 0, fmt.Errorf("%w: %s has unsupported type %T", domain.ErrInvalidConfig, key, val)
	}
}
