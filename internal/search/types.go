// Package search implements the query entry points of paperdex: weighted
// multi-field scoring over the cached library index, and collection-forest
// assembly for browse mode.
package search

import (
	"context"
)

// Result is a per-query view of one document candidate. It is derived fresh
// on every call and never aliases cached index state.
type Result struct {
	DocumentID   int64  `json:"document_id"`
	Title        string `json:"title"`
	CitationKey  string `json:"citation_key,omitempty"`
	FirstCreator string `json:"first_creator,omitempty"`
	Year         string `json:"year,omitempty"`

	// Score is the summed relevance score; zero in browse mode.
	Score int `json:"score"`

	// MatchedTokens is the number of distinct query tokens this candidate
	// matched.
	MatchedTokens int `json:"matched_tokens,omitempty"`

	// ModifiedAt is epoch milliseconds; the final sort tie-break.
	ModifiedAt int64 `json:"modified_at,omitempty"`

	Attachments []ResultAttachment `json:"attachments"`
}

// ResultAttachment is one visible attachment of a result.
type ResultAttachment struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Score int    `json:"score,omitempty"`
}

// FolderNode is one node of the browse forest.
type FolderNode struct {
	ID        int64         `json:"id"`
	Name      string        `json:"name"`
	Folders   []*FolderNode `json:"folders,omitempty"`
	Documents []Result      `json:"documents,omitempty"`
}

// Service is the query surface exposed to the CLI, TUI, and MCP layers.
type Service interface {
	// Search ranks the library's candidates against a free-text query.
	Search(ctx context.Context, libraryID int64, query string, opts Options) ([]Result, error)

	// Browse returns the library's collection forest with every visible
	// document attached to its folders.
	Browse(ctx context.Context, libraryID int64, opts Options) ([]*FolderNode, error)
}
