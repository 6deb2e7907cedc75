package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/paperdex/paperdex/internal/search"
)

// browseOptions holds CLI flags for browse.
type browseOptions struct {
	format string // "text", "json"
}

func newBrowseCmd() *cobra.Command {
	var opts browseOptions

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Show the library's collection tree",
		Long: `Print the library's collections as a tree, with the documents
filed in each. Documents outside every collection appear under a
final entry named after the library.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBrowse(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "Output format: text, json")

	return cmd
}

func runBrowse(ctx context.Context, cmd *cobra.Command, opts browseOptions) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	forest, err := a.engine.Browse(ctx, a.libraryID(), search.Options{})
	if err != nil {
		return fmt.Errorf("browse failed: %w", err)
	}

	if opts.format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(forest)
	}

	if len(forest) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "The library is empty.")
		return nil
	}
	for _, node := range forest {
		printNode(cmd, node, 0)
	}
	return nil
}

// printNode prints one folder and its contents, indented by depth.
func printNode(cmd *cobra.Command, node *search.FolderNode, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(cmd.OutOrStdout(), "%s%s/\n", indent, node.Name)
	for _, doc := range node.Documents {
		title := doc.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", indent, title)
	}
	for _, child := range node.Folders {
		printNode(cmd, child, depth+1)
	}
}
