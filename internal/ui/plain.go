package ui

import (
	"context"
	"fmt"

	"github.com/paperdex/paperdex/internal/search"
)

// RunPlain executes a single search and prints a tab-separated listing.
// Used for pipes and CI where the interactive picker cannot run.
func RunPlain(ctx context.Context, service search.Service, cfg Config, query string) error {
	results, err := service.Search(ctx, cfg.LibraryID, query, search.Options{})
	if err != nil {
		return err
	}

	for _, r := range results {
		key := r.CitationKey
		if key == "" {
			key = fmt.Sprintf("#%d", r.DocumentID)
		}
		fmt.Fprintf(cfg.Output, "%s\t%s\t%s\t%s\t%d\n",
			key, r.Title, r.FirstCreator, r.Year, r.Score)
	}
	return nil
}
