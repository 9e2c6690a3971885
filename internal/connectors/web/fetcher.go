// Package web downloads changelog entries over HTTP.
package web

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/custodia-labs/changelog-migrate/internal/core/domain"
	"github.com/custodia-labs/changelog-migrate/internal/core/ports/driven"
	"github.com/custodia-labs/changelog-migrate/internal/logger"
)

// Ensure Fetcher implements the interface.
var _ driven.ContentFetcher = (*Fetcher)(nil)

// Config configures the fetcher.
type Config struct {
	Timeout   time.Duration // HTTP timeout. Default: 30s.
	MaxBytes  int64         // Max response body size. Default: 10MB.
	UserAgent string        // Sent with every request.
}

func (c *Config) defaults() {
	if c.Timeout <= 0 {
		c.Timeout = domain.DefaultRequestTimeout
	}
	if c.MaxBytes <= 0 {
		c.MaxBytes = domain.DefaultMaxBodyBytes
	}
	if c.UserAgent == "" {
		c.UserAgent = domain.DefaultUserAgent
	}
}

// Fetcher performs plain HTTP GETs. There are no retries.
type Fetcher struct {
	client *http.Client
	config Config
}

// New creates a Fetcher.
func New(cfg Config) *Fetcher {
	cfg.defaults()
	return &Fetcher{
		client: &http.Client{Timeout: cfg.Timeout},
		config: cfg,
	}
}

// Fetch retrieves url and returns the body verbatim.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: new request: %w", domain.ErrFetchFailed, err)
	}
	req.Header.Set("User-Agent", f.config.UserAgent)

	logger.Debug("GET %s", url)
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %w", domain.ErrFetchFailed, &StatusError{URL: url, StatusCode: resp.StatusCode})
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.config.MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", domain.ErrFetchFailed, err)
	}
	if int64(len(body)) > f.config.MaxBytes {
		return nil, fmt.Errorf("%w: body exceeds %d bytes", domain.ErrFetchFailed, f.config.MaxBytes)
	}

	logger.Debug("GET %s -> %d (%d bytes)", url, resp.StatusCode, len(body))
	return body, nil
}
