// Package watcher turns library database changes into index cache
// invalidations. A filesystem watch on the snapshot database feeds a
// debouncer that coalesces the write bursts sqlite produces into a single
// invalidation per quiet period.
package watcher

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// AllLibraries is the event id meaning "every library changed". The
// database file is shared by all libraries, so file-level events always
// carry it; finer-grained notifiers can invalidate a single library.
const AllLibraries int64 = 0

// Event is one library-changed notification.
type Event struct {
	// LibraryID identifies the changed library; AllLibraries when the
	// change cannot be attributed to one library.
	LibraryID int64

	// Timestamp is when the change was detected.
	Timestamp time.Time
}

// Invalidator is the cache surface the watcher drives.
type Invalidator interface {
	Invalidate(libraryID int64)
	InvalidateAll()
}

// Options configures the watcher.
type Options struct {
	// DebounceWindow is the quiet period before coalesced events fire.
	// Default: 200ms.
	DebounceWindow time.Duration
}

// WithDefaults returns options with defaults applied for zero values.
func (o Options) WithDefaults() Options {
	if o.DebounceWindow == 0 {
		o.DebounceWindow = 200 * time.Millisecond
	}
	return o
}

// LibraryWatcher watches the library database file and invalidates the
// index cache when it changes.
type LibraryWatcher struct {
	path      string
	cache     Invalidator
	debouncer *Debouncer

	mu      sync.Mutex
	fsw     *fsnotify.Watcher
	stopped bool
	done    chan struct{}
}

// New creates a watcher for the library database at path.
func New(path string, cache Invalidator, opts Options) (*LibraryWatcher, error) {
	if cache == nil {
		return nil, errors.New("nil invalidator")
	}
	opts = opts.WithDefaults()
	return &LibraryWatcher{
		path:      path,
		cache:     cache,
		debouncer: NewDebouncer(opts.DebounceWindow),
		done:      make(chan struct{}),
	}, nil
}

// Start begins watching. It returns once the watch is established; event
// handling continues until Stop is called or the context is cancelled.
func (w *LibraryWatcher) Start(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	// Watch the directory rather than the file: sqlite WAL checkpoints
	// and atomic replaces swap the inode under a file-level watch.
	dir := filepath.Dir(w.path)
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return err
	}

	w.mu.Lock()
	w.fsw = fsw
	w.mu.Unlock()

	go w.run(ctx, fsw)
	go w.invalidateLoop()
	return nil
}

// run forwards relevant filesystem events into the debouncer.
func (w *LibraryWatcher) run(ctx context.Context, fsw *fsnotify.Watcher) {
	base := filepath.Base(w.path)
	for {
		select {
		case <-ctx.Done():
			w.debouncer.Stop()
			return
		case ev, ok := <-fsw.Events:
			if !ok {
				w.debouncer.Stop()
				return
			}
			name := filepath.Base(ev.Name)
			// The -wal and -shm sidecars change on every write.
			if name != base && name != base+"-wal" && name != base+"-shm" {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			w.debouncer.Add(Event{LibraryID: AllLibraries, Timestamp: time.Now()})
		case err, ok := <-fsw.Errors:
			if !ok {
				w.debouncer.Stop()
				return
			}
			slog.Warn("library watch error", slog.String("error", err.Error()))
		}
	}
}

// invalidateLoop applies debounced events to the cache.
func (w *LibraryWatcher) invalidateLoop() {
	defer close(w.done)
	for events := range w.debouncer.Output() {
		for _, ev := range events {
			if ev.LibraryID == AllLibraries {
				slog.Debug("library changed, invalidating all indexes")
				w.cache.InvalidateAll()
			} else {
				slog.Debug("library changed, invalidating index",
					slog.Int64("library_id", ev.LibraryID))
				w.cache.Invalidate(ev.LibraryID)
			}
		}
	}
}

// Notify injects a change notification directly, bypassing the filesystem
// watch. Used by callers that receive change events from the host
// application instead.
func (w *LibraryWatcher) Notify(libraryID int64) {
	w.debouncer.Add(Event{LibraryID: libraryID, Timestamp: time.Now()})
}

// Stop stops the watcher. Safe to call multiple times.
func (w *LibraryWatcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return nil
	}
	w.stopped = true
	var err error
	if w.fsw != nil {
		err = w.fsw.Close()
		w.fsw = nil
	}
	w.debouncer.Stop()
	return err
}
