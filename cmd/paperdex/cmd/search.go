package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/paperdex/paperdex/internal/output"
	"github.com/paperdex/paperdex/internal/search"
)

// searchOptions holds CLI flags for search.
type searchOptions struct {
	limit             int
	format            string // "text", "json"
	excludeAttachment int64
}

func newSearchCmd() *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the paper library",
		Long: `Search the paper library with weighted multi-field scoring.

Queries match titles, short titles, creators, citation keys, DOIs,
venues, years and PDF attachment titles. Diacritics and punctuation
are ignored.

Examples:
  paperdex search "garcia marquez"
  paperdex search doe2021 --limit 5
  paperdex search "working memory" --format json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			return runSearch(cmd.Context(), cmd, query, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 0, "Maximum number of results (default from config)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "Output format: text, json")
	cmd.Flags().Int64Var(&opts.excludeAttachment, "exclude-attachment", 0, "Hide this attachment id from results")

	return cmd
}

func runSearch(ctx context.Context, cmd *cobra.Command, query string, opts searchOptions) error {
	out := output.New(cmd.OutOrStdout())

	a, err := newApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	limit := opts.limit
	if limit <= 0 {
		limit = a.cfg.Search.MaxResults
	}
	searchOpts := search.Options{
		Limit:               limit,
		ExcludeAttachmentID: opts.excludeAttachment,
	}

	libraryID := a.libraryID()
	slog.Info("search_started",
		slog.Int64("library_id", libraryID),
		slog.String("query", query),
		slog.Int("limit", limit))

	results, err := a.engine.Search(ctx, libraryID, query, searchOpts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	slog.Info("search_complete", slog.Int("results", len(results)))

	if len(results) == 0 {
		out.Status("", fmt.Sprintf("No results found for %q", query))
		return nil
	}

	switch opts.format {
	case "json":
		return formatJSON(cmd, results)
	default:
		return formatText(out, query, results)
	}
}

// formatText outputs results in human-readable format.
func formatText(out *output.Writer, query string, results []search.Result) error {
	out.Statusf("🔍", "Found %d results for %q:", len(results), query)
	out.Newline()

	for i, r := range results {
		title := r.Title
		if title == "" {
			title = "(untitled)"
		}

		var meta []string
		if r.CitationKey != "" {
			meta = append(meta, "["+r.CitationKey+"]")
		}
		if r.FirstCreator != "" {
			meta = append(meta, r.FirstCreator)
		}
		if r.Year != "" {
			meta = append(meta, r.Year)
		}

		line := fmt.Sprintf("%d. %s (score: %d)", i+1, title, r.Score)
		out.Status("", line)
		if len(meta) > 0 {
			out.Status("", "   "+strings.Join(meta, " "))
		}
		for _, att := range r.Attachments {
			out.Status("", "   📄 "+att.Title)
		}
		out.Newline()
	}

	return nil
}

// formatJSON outputs results in JSON format.
func formatJSON(cmd *cobra.Command, results []search.Result) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}
