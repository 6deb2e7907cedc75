// Package config loads and validates the paperdex configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the complete paperdex configuration.
type Config struct {
	Library LibraryConfig `yaml:"library"`
	Search  SearchConfig  `yaml:"search"`
	Logging LoggingConfig `yaml:"logging"`
	Watch   WatchConfig   `yaml:"watch"`
}

// LibraryConfig locates the library snapshot database.
type LibraryConfig struct {
	// Path is the sqlite library database file.
	Path string `yaml:"path"`

	// DefaultID is the library queried when no --library flag is given.
	DefaultID int64 `yaml:"default_id"`
}

// SearchConfig tunes query behavior.
type SearchConfig struct {
	// MaxResults caps the number of search results per query.
	MaxResults int `yaml:"max_results"`

	// CacheSize is the number of library indexes kept in memory.
	CacheSize int `yaml:"cache_size"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// WatchConfig configures change-notification handling.
type WatchConfig struct {
	// Debounce is the window for coalescing change notifications before
	// the index cache is invalidated.
	Debounce time.Duration `yaml:"debounce"`
}

// NewConfig returns the hardcoded defaults.
func NewConfig() *Config {
	return &Config{
		Library: LibraryConfig{
			Path:      DefaultLibraryPath(),
			DefaultID: 1,
		},
		Search: SearchConfig{
			MaxResults: 20,
			CacheSize:  32,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Watch: WatchConfig{
			Debounce: 200 * time.Millisecond,
		},
	}
}

// DefaultConfigPath returns ~/.paperdex/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(baseDir(), "config.yaml")
}

// DefaultLibraryPath returns ~/.paperdex/library.db.
func DefaultLibraryPath() string {
	return filepath.Join(baseDir(), "library.db")
}

func baseDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".paperdex")
	}
	return filepath.Join(home, ".paperdex")
}

// Load reads the config file at path, applying defaults for anything unset.
// A missing file is not an error; defaults are returned.
func Load(path string) (*Config, error) {
	cfg := NewConfig()
	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config as YAML, creating the directory if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = DefaultConfigPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// applyDefaults fills zero values left by a partial config file.
func (c *Config) applyDefaults() {
	def := NewConfig()
	if c.Library.Path == "" {
		c.Library.Path = def.Library.Path
	}
	if c.Library.DefaultID == 0 {
		c.Library.DefaultID = def.Library.DefaultID
	}
	if c.Search.MaxResults == 0 {
		c.Search.MaxResults = def.Search.MaxResults
	}
	if c.Search.CacheSize == 0 {
		c.Search.CacheSize = def.Search.CacheSize
	}
	if c.Logging.Level == "" {
		c.Logging.Level = def.Logging.Level
	}
	if c.Watch.Debounce == 0 {
		c.Watch.Debounce = def.Watch.Debounce
	}
}

// Validate rejects configurations that cannot work.
func (c *Config) Validate() error {
	if c.Search.MaxResults < 1 {
		return fmt.Errorf("search.max_results must be at least 1, got %d", c.Search.MaxResults)
	}
	if c.Search.CacheSize < 1 {
		return fmt.Errorf("search.cache_size must be at least 1, got %d", c.Search.CacheSize)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative, got %s", c.Watch.Debounce)
	}
	return nil
}
