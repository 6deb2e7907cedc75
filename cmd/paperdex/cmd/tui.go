package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/paperdex/paperdex/internal/ui"
)

// tuiOptions holds CLI flags for the interactive picker.
type tuiOptions struct {
	plain   bool
	noColor bool
}

func newTUICmd() *cobra.Command {
	var opts tuiOptions

	cmd := &cobra.Command{
		Use:   "tui [query]",
		Short: "Interactive search picker",
		Long: `Open the interactive picker: type to search, arrows to select,
enter to print the selection as "citationkey<TAB>title".

A /token inside the input is treated as the active query, so a search
can be embedded mid-sentence while drafting notes.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.plain, "plain", false, "Print results once instead of the interactive picker")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "Disable colors")

	return cmd
}

func runTUI(ctx context.Context, cmd *cobra.Command, args []string, opts tuiOptions) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	libraryID := a.libraryID()
	libraryName, err := a.store.LibraryName(ctx, libraryID)
	if err != nil {
		libraryName = ""
	}

	cfg := ui.NewConfig(cmd.OutOrStdout(), libraryID,
		ui.WithForcePlain(opts.plain),
		ui.WithNoColor(opts.noColor),
		ui.WithLibraryName(libraryName),
	)

	return ui.Run(ctx, a.engine, cfg, strings.Join(args, " "))
}
