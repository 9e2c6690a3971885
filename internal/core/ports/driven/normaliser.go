package driven

import "time"

// Normaliser rewrites fetched entries into the combined document's format.
type Normaliser interface {
	// Normalise shifts every heading one level deeper, stamps published
	// under the first heading and indents the entry.
	Normalise(content string, published time.Time) string

	// Frontmatter renders the document header block, including the
	// closing delimiter line.
	Frontmatter(title, description string) (string, error)
}
