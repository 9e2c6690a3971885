package memory

import (
	"fmt"
	"path"
	"sync"

	"github.com/custodia-labs/changelog-migrate/internal/core/domain"
	"github.com/custodia-labs/changelog-migrate/internal/core/ports/driven"
)

// Ensure EntryStore implements the interfaces.
var (
	_ driven.EntryStore     = (*EntryStore)(nil)
	_ driven.DocumentWriter = (*EntryStore)(nil)
)

// EntryStore keeps entries and written documents in maps.
type EntryStore struct {
	mu        sync.RWMutex
	dir       string
	entries   map[string][]byte
	documents map[string][]byte
}

// NewEntryStore creates an empty store reporting dir as its location.
func NewEntryStore(dir string) *EntryStore {
	return &EntryStore{
		dir:       dir,
		entries:   make(map[string][]byte),
		documents: make(map[string][]byte),
	}
}

// Dir returns the nominal entry directory.
func (s *EntryStore) Dir() string {
	return s.dir
}

// Write stores a copy of content under slug.
func (s *EntryStore) Write(slug string, content []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[slug] = append([]byte(nil), content...)
	return path.Join(s.dir, slug+".mdx"), nil
}

// Read returns the content stored under slug.
func (s *EntryStore) Read(slug string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, ok := s.entries[slug]
	if !ok {
		return nil, fmt.Errorf("%w: entry %s", domain.ErrNotFound, slug)
	}
	return append([]byte(nil), content...), nil
}

// Len returns how many entries are stored.
func (s *EntryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// WriteDocument stores a copy of content under p.
func (s *EntryStore) WriteDocument(p string, content []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[p] = append([]byte(nil), content...)
	return nil
}

// Document returns the document written at p.
func (s *EntryStore) Document(p string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, ok := s.documents[p]
	return string(content), ok
}
