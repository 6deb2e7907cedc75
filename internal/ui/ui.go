// Package ui provides the interactive terminal search interface.
package ui

import (
	"context"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/paperdex/paperdex/internal/search"
)

// Config configures the UI.
type Config struct {
	Output     io.Writer
	ForcePlain bool
	NoColor    bool

	// LibraryID is the library to search.
	LibraryID int64

	// LibraryName is shown in the header; may be empty.
	LibraryName string
}

// ConfigOption is a function that modifies Config.
type ConfigOption func(*Config)

// WithForcePlain forces plain text output.
func WithForcePlain(force bool) ConfigOption {
	return func(c *Config) {
		c.ForcePlain = force
	}
}

// WithNoColor disables color output.
func WithNoColor(noColor bool) ConfigOption {
	return func(c *Config) {
		c.NoColor = noColor
	}
}

// WithLibraryName sets the library name shown in the header.
func WithLibraryName(name string) ConfigOption {
	return func(c *Config) {
		c.LibraryName = name
	}
}

// NewConfig creates a new Config with the given output and options.
func NewConfig(output io.Writer, libraryID int64, opts ...ConfigOption) Config {
	cfg := Config{
		Output:    output,
		LibraryID: libraryID,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Run starts the appropriate interface for the environment: the interactive
// picker for terminals, a one-shot plain listing for pipes and CI.
// For plain mode, query is the search executed immediately; in interactive
// mode it seeds the input.
func Run(ctx context.Context, service search.Service, cfg Config, query string) error {
	if cfg.ForcePlain || !IsTTY(cfg.Output) || DetectCI() {
		return RunPlain(ctx, service, cfg, query)
	}
	return RunPicker(ctx, service, cfg, query)
}

// IsTTY checks if output is a terminal.
func IsTTY(w io.Writer) bool {
	if w == nil {
		return false
	}
	if f, ok := w.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return false
}

// DetectNoColor checks if the NO_COLOR environment variable is set.
func DetectNoColor() bool {
	_, exists := os.LookupEnv("NO_COLOR")
	return exists
}

// DetectCI checks if running in a CI environment.
func DetectCI() bool {
	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "TRAVIS"}
	for _, v := range ciVars {
		if _, exists := os.LookupEnv(v); exists {
			return true
		}
	}
	return false
}
