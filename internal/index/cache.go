package index

import (
	"context"
	"strconv"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// DefaultCacheSize is the default number of library indexes kept in memory.
// A group library runs a few thousand candidates per index; a handful of
// libraries fits comfortably.
const DefaultCacheSize = 32

// Cache owns one built Index per library id. Indexes are built lazily,
// shared across concurrent callers, and dropped only by explicit
// invalidation or LRU pressure.
//
// Concurrent Get calls for the same library attach to a single in-flight
// build via singleflight, so rapid typing never issues redundant snapshot
// reads against the store.
//
// Invalidation does not cancel an in-flight build: the running build
// completes and may briefly re-populate the cache after the invalidation.
// The next Get after Invalidate always starts a fresh build because the
// in-flight key is forgotten. A stricter design would tag builds with a
// generation counter and discard stale results.
type Cache struct {
	builder *Builder
	indexes *lru.Cache[int64, *Index]

	group singleflight.Group

	mu       sync.Mutex
	inflight map[int64]struct{}
}

// NewCache creates an index cache over the given builder.
func NewCache(builder *Builder, size int) (*Cache, error) {
	if builder == nil {
		return nil, ErrNilStore
	}
	if size <= 0 {
		size = DefaultCacheSize
	}
	indexes, err := lru.New[int64, *Index](size)
	if err != nil {
		return nil, err
	}
	return &Cache{
		builder:  builder,
		indexes:  indexes,
		inflight: make(map[int64]struct{}),
	}, nil
}

// Get returns the library's index, building it on first access. All callers
// arriving before the first build finishes share that build's result.
func (c *Cache) Get(ctx context.Context, libraryID int64) (*Index, error) {
	if idx, ok := c.indexes.Get(libraryID); ok {
		return idx, nil
	}

	key := strconv.FormatInt(libraryID, 10)
	c.trackInflight(libraryID)
	v, err, _ := c.group.Do(key, func() (any, error) {
		defer c.untrackInflight(libraryID)
		idx, err := c.builder.Build(ctx, libraryID)
		if err != nil {
			return nil, err
		}
		c.indexes.Add(libraryID, idx)
		return idx, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Index), nil
}

// Invalidate drops the library's finished index and forgets any in-flight
// build so the next Get starts fresh. Must be called whenever documents,
// attachments, or folders of the library change.
func (c *Cache) Invalidate(libraryID int64) {
	c.indexes.Remove(libraryID)
	c.group.Forget(strconv.FormatInt(libraryID, 10))
	c.untrackInflight(libraryID)
}

// InvalidateAll drops every cached index and forgets all in-flight builds.
func (c *Cache) InvalidateAll() {
	c.indexes.Purge()
	c.mu.Lock()
	ids := make([]int64, 0, len(c.inflight))
	for id := range c.inflight {
		ids = append(ids, id)
	}
	c.inflight = make(map[int64]struct{})
	c.mu.Unlock()
	for _, id := range ids {
		c.group.Forget(strconv.FormatInt(id, 10))
	}
}

// Len returns the number of finished indexes currently cached.
func (c *Cache) Len() int {
	return c.indexes.Len()
}

func (c *Cache) trackInflight(libraryID int64) {
	c.mu.Lock()
	c.inflight[libraryID] = struct{}{}
	c.mu.Unlock()
}

func (c *Cache) untrackInflight(libraryID int64) {
	c.mu.Lock()
	delete(c.inflight, libraryID)
	c.mu.Unlock()
}
