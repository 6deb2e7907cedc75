// Package cmd provides the CLI commands for paperdex.
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/paperdex/paperdex/internal/logging"
	"github.com/paperdex/paperdex/pkg/version"
)

// Persistent flags shared by all commands.
var (
	configPath  string
	libraryFlag int64
	debugMode   bool

	loggingCleanup func()
)

// NewRootCmd creates the root command for the paperdex CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "paperdex",
		Short: "Fast search over your paper library",
		Long: `Paperdex indexes a reference-manager library snapshot and serves
instant search over titles, creators, citation keys, DOIs, venues and
PDF attachments.

Just run 'paperdex' for the interactive picker, or use the subcommands
for scripted access.`,
		Version: version.Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), cmd, args, tuiOptions{})
		},
	}

	cmd.SetVersionTemplate("paperdex version {{.Version}}\n")

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.paperdex/config.yaml)")
	cmd.PersistentFlags().Int64Var(&libraryFlag, "library", 0, "Library id to operate on (default from config)")
	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging to ~/.paperdex/logs/")

	cmd.PersistentPreRunE = startLogging
	cmd.PersistentPostRunE = stopLogging

	cmd.AddCommand(newSearchCmd())
	cmd.AddCommand(newBrowseCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newTUICmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// startLogging enables debug logging when the flag is set.
func startLogging(_ *cobra.Command, _ []string) error {
	if !debugMode {
		return nil
	}
	cleanup, err := logging.SetupDefault()
	if err != nil {
		return fmt.Errorf("failed to setup debug logging: %w", err)
	}
	loggingCleanup = cleanup
	slog.Info("Debug logging enabled",
		slog.String("log_file", logging.DefaultLogPath()),
		slog.String("version", version.Version))
	return nil
}

// stopLogging flushes and closes the debug log.
func stopLogging(_ *cobra.Command, _ []string) error {
	if loggingCleanup != nil {
		loggingCleanup()
		loggingCleanup = nil
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
