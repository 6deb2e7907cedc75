package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/paperdex/paperdex/internal/logging"
	"github.com/paperdex/paperdex/internal/mcp"
	"github.com/paperdex/paperdex/internal/watcher"
)

func newServeCmd() *cobra.Command {
	var noWatch bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server over stdio",
		Long: `Run the Model Context Protocol server, exposing search_papers and
browse_library tools to AI clients over stdio.

The library database is watched for changes; cached indexes are
invalidated automatically so results stay fresh.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), noWatch)
		},
	}

	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "Disable library change watching")

	return cmd
}

func runServe(ctx context.Context, noWatch bool) error {
	// Stdout carries JSON-RPC exclusively in stdio mode, so logs go to the
	// file only.
	logCfg := logging.DefaultConfig()
	logCfg.WriteToStderr = false
	if logger, cleanup, err := logging.Setup(logCfg); err == nil {
		slog.SetDefault(logger)
		defer cleanup()
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	if !noWatch {
		w, err := watcher.New(a.cfg.Library.Path, a.cache, watcher.Options{
			DebounceWindow: a.cfg.Watch.Debounce,
		})
		if err != nil {
			return fmt.Errorf("failed to create watcher: %w", err)
		}
		if err := w.Start(ctx); err != nil {
			slog.Warn("library watch unavailable, indexes may go stale",
				slog.String("error", err.Error()))
		} else {
			defer func() { _ = w.Stop() }()
		}
	}

	server, err := mcp.NewServer(a.engine, a.libraryID())
	if err != nil {
		return err
	}

	return server.Serve(ctx, "stdio")
}
