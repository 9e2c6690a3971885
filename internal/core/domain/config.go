package domain

import (
	"fmt"
	"time"
)

// Default configuration values.
const (
	DefaultFeedPath          = "changelog.rss"
	DefaultMarkdownDir       = "markdown"
	DefaultOutputPath        = "changelog.mdx"
	DefaultRequestTimeout    = 30 * time.Second
	DefaultInterRequestDelay = 1 * time.Second
	DefaultIndentWidth       = 2
	DefaultConcurrency       = 1
	DefaultUserAgent         = "changelog-migrate/1.0"
	DefaultMaxBodyBytes      = 10 * 1024 * 1024
	DefaultTitle             = "Changelog"
	DefaultDescription       = "Product updates and announcements"

	// MaxIndentWidth bounds IndentWidth.
	MaxIndentWidth = 16
)

// Config holds everything the pipeline stages need. It is built once by the
// driving layer and passed into each stage.
type Config struct {
	// FeedPath is the RSS document to read.
	FeedPath string

	// MarkdownDir holds one <slug>.mdx file per entry.
	MarkdownDir string

	// OutputPath is the combined document.
	OutputPath string

	// RequestTimeout bounds each markdown download.
	RequestTimeout time.Duration

	// InterRequestDelay is the pause between downloads.
	InterRequestDelay time.Duration

	// IndentWidth is the number of spaces entry content is indented by
	// inside a month wrapper.
	IndentWidth int

	// Concurrency is the number of parallel downloads. 1 keeps the fetch
	// strictly sequential.
	Concurrency int

	// UserAgent is sent with every download.
	UserAgent string

	// MaxBodyBytes caps a single downloaded body.
	MaxBodyBytes int64

	// Title and Description fill the combined document's frontmatter.
	Title       string
	Description string

	// HistoryDB is the SQLite run history file. Empty disables history.
	HistoryDB string
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		FeedPath:          DefaultFeedPath,
		MarkdownDir:       DefaultMarkdownDir,
		OutputPath:        DefaultOutputPath,
		RequestTimeout:    DefaultRequestTimeout,
		InterRequestDelay: DefaultInterRequestDelay,
		IndentWidth:       DefaultIndentWidth,
		Concurrency:       DefaultConcurrency,
		UserAgent:         DefaultUserAgent,
		MaxBodyBytes:      DefaultMaxBodyBytes,
		Title:             DefaultTitle,
		Description:       DefaultDescription,
	}
}

// Validate reports the first invalid field, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	switch {
	case c.FeedPath == "":
		return fmt.Errorf("%w: feed_path is empty", ErrInvalidConfig)
	case c.MarkdownDir == "":
		return fmt.Errorf("%w: markdown_dir is empty", ErrInvalidConfig)
	case c.OutputPath == "":
		return fmt.Errorf("%w: output_path is empty", ErrInvalidConfig)
	case c.RequestTimeout <= 0:
		return fmt.Errorf("%w: request_timeout must be positive", ErrInvalidConfig)
	case c.InterRequestDelay < 0:
		return fmt.Errorf("%w: inter_request_delay must not be negative", ErrInvalidConfig)
	case c.IndentWidth < 0 || c.IndentWidth > MaxIndentWidth:
		return fmt.Errorf("%w: indent_width must be between 0 and %d", ErrInvalidConfig, MaxIndentWidth)
	case c.Concurrency < 1:
		return fmt.Errorf("%w: concurrency must be at least 1", ErrInvalidConfig)
	case c.MaxBodyBytes <= 0:
		return fmt.Errorf("%w: max_body_bytes must be positive", ErrInvalidConfig)
	}
	return nil
}
