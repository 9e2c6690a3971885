package filesystem

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/changelog-migrate/internal/logger"
)

// DefaultDebounce is the quiet period before a batch is emitted.
const DefaultDebounce = 300 * time.Millisecond

// ErrWatcherClosed is returned by Watch after Close.
var ErrWatcherClosed = errors.New("watcher is closed")

// WatchConfig selects what a Watcher reports.
type WatchConfig struct {
	// Dir is the entry directory. Files in it with Ext are watched.
	Dir string

	// Ext is the entry file extension, including the dot.
	Ext string

	// Files are individual files to watch, such as the feed.
	Files []string

	// Ignore lists files never reported, such as the combined document.
	Ignore []string

	// Debounce is the quiet period before a batch is emitted.
	Debounce time.Duration
}

// Watcher reports batches of changed entry and feed files.
type Watcher struct {
	dir      string
	ext      string
	files    map[string]struct{}
	ignore   map[string]struct{}
	debounce time.Duration

	mu     sync.Mutex
	closed bool
	fsw    *fsnotify.Watcher
}

// NewWatcher creates a watcher. Nothing is watched until Watch is called.
func NewWatcher(cfg WatchConfig) *Watcher {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}

	w := &Watcher{
		dir:      absPath(cfg.Dir),
		ext:      cfg.Ext,
		files:    make(map[string]struct{}, len(cfg.Files)),
		ignore:   make(map[string]struct{}, len(cfg.Ignore)),
		debounce: cfg.Debounce,
	}
	for _, f := range cfg.Files {
		w.files[absPath(f)] = struct{}{}
	}
	for _, f := range cfg.Ignore {
		w.ignore[absPath(f)] = struct{}{}
	}
	return w
}

// Watch starts watching. The returned channel receives the sorted paths that
// changed during each burst and is closed when ctx is done.
func (w *Watcher) Watch(ctx context.Context) (<-chan []string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil, ErrWatcherClosed
	}
	if w.fsw != nil {
		return nil, errors.New("watcher already started")
	}

	// The entry directory may not exist before the first fetch
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", w.dir, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	// Files are watched through their directory so editors that replace the
	// file on save are still seen.
	dirs := map[string]struct{}{w.dir: {}}
	for f := range w.files {
		dirs[filepath.Dir(f)] = struct{}{}
	}
	for d := range dirs {
		if err := fsw.Add(d); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watching %s: %w", d, err)
		}
		logger.Debug("watching %s", d)
	}

	w.fsw = fsw
	out := make(chan []string)
	go w.loop(ctx, fsw, out)

	return out, nil
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	if w.fsw != nil {
		return w.fsw.Close()
	}
	return nil
}

func (w *Watcher) loop(ctx context.Context, fsw *fsnotify.Watcher, out chan<- []string) {
	defer close(out)

	pending := make(map[string]struct{})
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			path, relevant := w.handleFsEvent(event)
			if !relevant {
				continue
			}
			logger.Debug("change detected: %s %s", event.Op, path)
			pending[path] = struct{}{}
			timer.Reset(w.debounce)
			fire = timer.C

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("watch error: %v", err)

		case <-fire:
			fire = nil
			batch := make([]string, 0, len(pending))
			for p := range pending {
				batch = append(batch, p)
			}
			sort.Strings(batch)
			clear(pending)

			select {
			case out <- batch:
			case <-ctx.Done():
				return
			}
		}
	}
}

// handleFsEvent reports whether event concerns a watched file and returns
// its absolute path.
func (w *Watcher) handleFsEvent(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return "", false
	}

	path := absPath(event.Name)
	if isHidden(path) {
		return "", false
	}
	if _, ignored := w.ignore[path]; ignored {
		return "", false
	}
	if _, watched := w.files[path]; watched {
		return path, true
	}

	if filepath.Dir(path) != w.dir || !strings.HasSuffix(path, w.ext) {
		return "", false
	}
	// Directories named like entries are not entries
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return "", false
	}
	return path, true
}

// isHidden reports whether the file name starts with a dot. Editors use
// such names for swap and backup files.
func isHidden(path string) bool {
	name := filepath.Base(path)
	return name != "." && name != ".." && strings.HasPrefix(name, ".")
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}
