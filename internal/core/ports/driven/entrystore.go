package driven

// EntryStore persists one markdown file per changelog entry.
type EntryStore interface {
	// Write stores content under slug, replacing any existing entry.
	// Returns the path written.
	Write(slug string, content []byte) (string, error)

	// Read returns the content stored under slug.
	// Returns an error wrapping domain.ErrNotFound if there is none.
	Read(slug string) ([]byte, error)

	// Dir returns the directory entries are stored in.
	Dir() string
}

// DocumentWriter writes the combined changelog document.
type DocumentWriter interface {
	// WriteDocument replaces the document at path with content in a single
	// step, so readers never observe a partial file.
	WriteDocument(path string, content []byte) error
}
