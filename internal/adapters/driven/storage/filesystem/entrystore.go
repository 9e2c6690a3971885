package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/custodia-labs/changelog-migrate/internal/core/domain"
	"github.com/custodia-labs/changelog-migrate/internal/core/ports/driven"
)

// Ensure EntryStore implements the interfaces.
var (
	_ driven.EntryStore     = (*EntryStore)(nil)
	_ driven.DocumentWriter = (*EntryStore)(nil)
)

// EntryExt is the extension of entry files.
const EntryExt = ".mdx"

// EntryStore reads and writes entry files under a directory.
type EntryStore struct {
	dir string
}

// NewEntryStore creates a store rooted at dir. The directory is created on
// first write.
func NewEntryStore(dir string) *EntryStore {
	return &EntryStore{dir: dir}
}

// Dir returns the entry directory.
func (s *EntryStore) Dir() string {
	return s.dir
}

// Path returns the file path for slug.
func (s *EntryStore) Path(slug string) string {
	return filepath.Join(s.dir, slug+EntryExt)
}

// Write stores content for slug, replacing any existing file.
func (s *EntryStore) Write(slug string, content []byte) (string, error) {
	if slug == "" {
		return "", fmt.Errorf("%w: empty slug", domain.ErrInvalidInput)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: creating %s: %w", domain.ErrWriteFailed, s.dir, err)
	}

	path := s.Path(slug)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrWriteFailed, err)
	}
	return path, nil
}

// Read returns the content stored for slug.
func (s *EntryStore) Read(slug string) ([]byte, error) {
	path := s.Path(slug)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: file not found: %s", domain.ErrNotFound, path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// WriteDocument atomically replaces the file at path with content.
func (s *EntryStore) WriteDocument(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: creating %s: %w", domain.ErrWriteFailed, dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrWriteFailed, err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %w", domain.ErrWriteFailed, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %w", domain.ErrWriteFailed, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrWriteFailed, err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrWriteFailed, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrWriteFailed, err)
	}

	committed = true
	return nil
}
