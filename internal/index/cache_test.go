package index_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paperdex/paperdex/internal/index"
	"github.com/paperdex/paperdex/internal/library"
	"github.com/paperdex/paperdex/internal/storage/memory"
)

func newCache(t *testing.T, store *memory.Store, size int) *index.Cache {
	t.Helper()
	c, err := index.NewCache(newBuilder(t, store), size)
	require.NoError(t, err)
	return c
}

func seedLibrary(store *memory.Store, libraryID int64) {
	store.AddDocument(libraryID, memory.Document{
		DocID: libraryID * 100, IsRegular: true, Title: "Doc",
		Attachments: []library.Attachment{pdf(libraryID*100+1, "a.pdf")},
	})
}

func TestNewCache_NilBuilder(t *testing.T) {
	c, err := index.NewCache(nil, 4)
	require.ErrorIs(t, err, index.ErrNilStore)
	assert.Nil(t, c)
}

func TestCache_GetBuildsOnceAcrossCalls(t *testing.T) {
	// Given: a populated store behind a cache
	store := memory.NewStore()
	seedLibrary(store, 1)
	cache := newCache(t, store, 4)
	ctx := context.Background()

	// When: the same library is fetched three times
	first, err := cache.Get(ctx, 1)
	require.NoError(t, err)
	second, err := cache.Get(ctx, 1)
	require.NoError(t, err)
	third, err := cache.Get(ctx, 1)
	require.NoError(t, err)

	// Then: one snapshot read served all three, returning the same index
	assert.Equal(t, int64(1), store.Reads())
	assert.Same(t, first, second)
	assert.Same(t, second, third)
	assert.Equal(t, 1, cache.Len())
}

func TestCache_LibrariesAreIndependent(t *testing.T) {
	store := memory.NewStore()
	seedLibrary(store, 1)
	seedLibrary(store, 2)
	cache := newCache(t, store, 4)
	ctx := context.Background()

	idx1, err := cache.Get(ctx, 1)
	require.NoError(t, err)
	idx2, err := cache.Get(ctx, 2)
	require.NoError(t, err)

	assert.Equal(t, int64(2), store.Reads())
	assert.NotSame(t, idx1, idx2)
	assert.Equal(t, int64(1), idx1.LibraryID)
	assert.Equal(t, int64(2), idx2.LibraryID)
}

func TestCache_InvalidateForcesRebuild(t *testing.T) {
	// Given: a cached index
	store := memory.NewStore()
	seedLibrary(store, 1)
	cache := newCache(t, store, 4)
	ctx := context.Background()

	before, err := cache.Get(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, int64(1), store.Reads())

	// When: the library changes and is invalidated
	store.AddDocument(1, memory.Document{
		DocID: 42, IsRegular: true, Title: "New arrival",
		Attachments: []library.Attachment{pdf(420, "n.pdf")},
	})
	cache.Invalidate(1)
	assert.Equal(t, 0, cache.Len())

	// Then: the next Get rebuilds and sees the new document
	after, err := cache.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), store.Reads())
	assert.NotSame(t, before, after)
	assert.Len(t, after.Candidates, 2)
}

func TestCache_InvalidateAll(t *testing.T) {
	store := memory.NewStore()
	seedLibrary(store, 1)
	seedLibrary(store, 2)
	cache := newCache(t, store, 4)
	ctx := context.Background()

	_, err := cache.Get(ctx, 1)
	require.NoError(t, err)
	_, err = cache.Get(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, 2, cache.Len())

	cache.InvalidateAll()
	assert.Equal(t, 0, cache.Len())

	_, err = cache.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), store.Reads())
}

func TestCache_ConcurrentGetsShareOneBuild(t *testing.T) {
	// Given: many goroutines racing on a cold cache
	store := memory.NewStore()
	seedLibrary(store, 1)
	cache := newCache(t, store, 4)
	ctx := context.Background()

	const goroutines = 16
	var wg sync.WaitGroup
	indexes := make([]*index.Index, goroutines)
	errs := make([]error, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			indexes[n], errs[n] = cache.Get(ctx, 1)
		}(i)
	}
	wg.Wait()

	// Then: everyone got an index and the store saw at most one read per
	// membership wave (singleflight dedup)
	for i := 0; i < goroutines; i++ {
		require.NoError(t, errs[i])
		require.NotNil(t, indexes[i])
	}
	assert.LessOrEqual(t, store.Reads(), int64(2))
}

func TestCache_EmptyIndexIsStillCached(t *testing.T) {
	// An unknown library builds an empty index; repeat lookups must not
	// hammer the store.
	store := memory.NewStore()
	cache := newCache(t, store, 4)
	ctx := context.Background()

	idx, err := cache.Get(ctx, 9)
	require.NoError(t, err)
	assert.True(t, idx.Empty())

	_, err = cache.Get(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, int64(1), store.Reads())
}
