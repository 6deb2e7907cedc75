package cmd

import (
	"fmt"

	"github.com/paperdex/paperdex/internal/config"
	"github.com/paperdex/paperdex/internal/index"
	"github.com/paperdex/paperdex/internal/search"
	"github.com/paperdex/paperdex/internal/storage/sqlite"
)

// app bundles the wired dependencies every command needs: config, the
// library store, the index cache and the search engine on top.
type app struct {
	cfg    *config.Config
	store  *sqlite.Store
	cache  *index.Cache
	engine *search.Engine
}

// newApp loads configuration and wires the storage, cache and engine layers.
func newApp() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	store, err := sqlite.Open(cfg.Library.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open library at %s: %w", cfg.Library.Path, err)
	}

	builder, err := index.NewBuilder(store)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	cache, err := index.NewCache(builder, cfg.Search.CacheSize)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	engine, err := search.NewEngine(cache)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	return &app{cfg: cfg, store: store, cache: cache, engine: engine}, nil
}

// libraryID resolves the library to operate on: flag first, then config.
func (a *app) libraryID() int64 {
	if libraryFlag > 0 {
		return libraryFlag
	}
	return a.cfg.Library.DefaultID
}

// Close releases the underlying store.
func (a *app) Close() error {
	return a.store.Close()
}
