package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockInvalidator struct {
	mu          sync.Mutex
	invalidated []int64
	allCalls    int
	notify      chan struct{}
}

func newMockInvalidator() *mockInvalidator {
	return &mockInvalidator{notify: make(chan struct{}, 16)}
}

func (m *mockInvalidator) Invalidate(libraryID int64) {
	m.mu.Lock()
	m.invalidated = append(m.invalidated, libraryID)
	m.mu.Unlock()
	m.notify <- struct{}{}
}

func (m *mockInvalidator) InvalidateAll() {
	m.mu.Lock()
	m.allCalls++
	m.mu.Unlock()
	m.notify <- struct{}{}
}

func (m *mockInvalidator) wait(t *testing.T) {
	t.Helper()
	select {
	case <-m.notify:
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for invalidation")
	}
}

func TestNew_NilInvalidator(t *testing.T) {
	_, err := New("/tmp/library.db", nil, Options{})
	assert.Error(t, err)
}

func TestWatcher_FileWriteInvalidatesAll(t *testing.T) {
	// Given: a watcher on a database file in a temp directory
	dir := t.TempDir()
	path := filepath.Join(dir, "library.db")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

	cache := newMockInvalidator()
	w, err := New(path, cache, Options{DebounceWindow: 30 * time.Millisecond})
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer func() { _ = w.Stop() }()

	// When: the database file is rewritten
	require.NoError(t, os.WriteFile(path, []byte("v2"), 0o644))

	// Then: the whole cache is invalidated
	cache.wait(t)
	cache.mu.Lock()
	defer cache.mu.Unlock()
	assert.GreaterOrEqual(t, cache.allCalls, 1)
	assert.Empty(t, cache.invalidated)
}

func TestWatcher_WALSidecarTriggersInvalidation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "library.db")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

	cache := newMockInvalidator()
	w, err := New(path, cache, Options{DebounceWindow: 30 * time.Millisecond})
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer func() { _ = w.Stop() }()

	require.NoError(t, os.WriteFile(path+"-wal", []byte("frames"), 0o644))

	cache.wait(t)
	cache.mu.Lock()
	defer cache.mu.Unlock()
	assert.GreaterOrEqual(t, cache.allCalls, 1)
}

func TestWatcher_UnrelatedFileIsIgnored(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "library.db")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

	cache := newMockInvalidator()
	w, err := New(path, cache, Options{DebounceWindow: 20 * time.Millisecond})
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer func() { _ = w.Stop() }()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	select {
	case <-cache.notify:
		t.Fatal("unrelated file change triggered an invalidation")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcher_NotifyInvalidatesOneLibrary(t *testing.T) {
	// Given: a started watcher driven by direct notifications
	dir := t.TempDir()
	path := filepath.Join(dir, "library.db")

	cache := newMockInvalidator()
	w, err := New(path, cache, Options{DebounceWindow: 20 * time.Millisecond})
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer func() { _ = w.Stop() }()

	// When: a single library is reported changed
	w.Notify(7)

	// Then: only that library's index is invalidated
	cache.wait(t)
	cache.mu.Lock()
	defer cache.mu.Unlock()
	assert.Equal(t, []int64{7}, cache.invalidated)
	assert.Zero(t, cache.allCalls)
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "library.db")

	cache := newMockInvalidator()
	w, err := New(path, cache, Options{})
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))

	assert.NoError(t, w.Stop())
	assert.NoError(t, w.Stop())
}

func TestOptions_WithDefaults(t *testing.T) {
	opts := Options{}.WithDefaults()
	assert.Equal(t, 200*time.Millisecond, opts.DebounceWindow)

	opts = Options{DebounceWindow: time.Second}.WithDefaults()
	assert.Equal(t, time.Second, opts.DebounceWindow)
}
