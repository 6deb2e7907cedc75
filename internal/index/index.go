// Package index builds and caches the per-library search index. An Index is
// an immutable snapshot: a flat list of normalized document candidates plus
// the library's folder records. Any library change invalidates the whole
// index and triggers a full rebuild; nothing is patched in place.
package index

import (
	"github.com/paperdex/paperdex/internal/library"
)

// Field holds the canonical and compact forms of one candidate field. Both
// are computed once at build time so that per-keystroke scoring never
// re-normalizes text.
type Field struct {
	Canon   string
	Compact string
}

// Normalized holds the precomputed comparable forms of every scorable field.
type Normalized struct {
	Title       Field
	ShortTitle  Field
	CitationKey Field
	DOI         Field
	Creators    Field
	Venue       Field
	Year        Field
}

// Attachment is one indexed attachment of a candidate.
type Attachment struct {
	ID    int64
	Title string

	// NormTitle is the precomputed comparable form of Title.
	NormTitle Field
}

// Candidate is one query-ready document. Invariant: Attachments is never
// empty; documents without an eligible attachment are excluded from the
// index entirely.
type Candidate struct {
	DocumentID   int64
	Title        string
	CitationKey  string
	FirstCreator string
	Year         string

	Attachments []Attachment

	// ModifiedAt is epoch milliseconds, 0 if the store's timestamp field
	// was unparseable. Used only as a sort tie-break, never to filter.
	ModifiedAt int64

	FolderIDs map[int64]struct{}

	Norm Normalized
}

// InFolder reports whether the candidate belongs to the given folder.
func (c *Candidate) InFolder(folderID int64) bool {
	_, ok := c.FolderIDs[folderID]
	return ok
}

// Unfiled reports whether the candidate belongs to no folder.
func (c *Candidate) Unfiled() bool {
	return len(c.FolderIDs) == 0
}

// Index is the immutable per-library search index. Owned by the Cache;
// callers receive derived views and must not mutate it.
type Index struct {
	LibraryID   int64
	LibraryName string
	Candidates  []Candidate
	Folders     []library.Folder
}

// Empty reports whether the index holds no candidates.
func (idx *Index) Empty() bool {
	return len(idx.Candidates) == 0
}
