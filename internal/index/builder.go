package index

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/paperdex/paperdex/internal/library"
	"github.com/paperdex/paperdex/internal/textnorm"
)

// ErrNilStore is returned when a Builder is constructed without a store.
var ErrNilStore = errors.New("nil store")

// yearPattern matches a four-digit year at the start of a date field.
var yearPattern = regexp.MustCompile(`^(19|20)\d{2}`)

// modifiedLayouts are tried in order when parsing the store's modification
// timestamp field.
var modifiedLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Builder converts raw store records into query-ready candidates.
type Builder struct {
	store library.Store
}

// NewBuilder creates an index builder over the injected store.
func NewBuilder(store library.Store) (*Builder, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: library store is required", ErrNilStore)
	}
	return &Builder{store: store}, nil
}

// Build fetches the library's documents and folders in one snapshot pass and
// produces an immutable Index. Indexing is all-or-nothing: a store access
// failure degrades to an empty index for the whole library, never a partial
// one. Build itself does not fail; callers of an empty index simply see no
// results.
func (b *Builder) Build(ctx context.Context, libraryID int64) (*Index, error) {
	start := time.Now()
	idx := &Index{
		LibraryID:   libraryID,
		LibraryName: b.libraryName(ctx, libraryID),
	}

	docs, err := b.store.Documents(ctx, libraryID)
	if err != nil {
		slog.Error("library snapshot read failed",
			slog.Int64("library_id", libraryID),
			slog.String("error", err.Error()))
		return idx, nil
	}
	folders, err := b.store.Folders(ctx, libraryID)
	if err != nil {
		slog.Error("library folder read failed",
			slog.Int64("library_id", libraryID),
			slog.String("error", err.Error()))
		return idx, nil
	}

	candidates := make([]Candidate, 0, len(docs))
	for _, doc := range docs {
		if !doc.Regular() {
			continue
		}
		cand, ok, err := buildCandidate(doc)
		if err != nil {
			// All-or-nothing per call: one unreadable document spoils
			// the snapshot.
			slog.Error("document read failed, dropping index",
				slog.Int64("library_id", libraryID),
				slog.Int64("document_id", doc.ID()),
				slog.String("error", err.Error()))
			return &Index{LibraryID: libraryID, LibraryName: idx.LibraryName}, nil
		}
		if !ok {
			continue
		}
		candidates = append(candidates, cand)
	}
	idx.Candidates = candidates
	idx.Folders = normalizeFolders(folders)

	slog.Debug("library index built",
		slog.Int64("library_id", libraryID),
		slog.Int("candidates", len(idx.Candidates)),
		slog.Int("folders", len(idx.Folders)),
		slog.Duration("elapsed", time.Since(start)))
	return idx, nil
}

// libraryName resolves the display name, falling back to the fixed default.
func (b *Builder) libraryName(ctx context.Context, libraryID int64) string {
	name, err := b.store.LibraryName(ctx, libraryID)
	if err != nil || strings.TrimSpace(name) == "" {
		return library.DefaultLibraryName
	}
	return name
}

// buildCandidate derives one query-ready candidate. ok is false when the
// document has no eligible attachment and must be excluded.
func buildCandidate(doc library.Document) (Candidate, bool, error) {
	attachments, err := doc.Attachments()
	if err != nil {
		return Candidate{}, false, err
	}
	eligible := make([]library.Attachment, 0, len(attachments))
	for _, a := range attachments {
		if a.Eligible() {
			eligible = append(eligible, a)
		}
	}
	if len(eligible) == 0 {
		return Candidate{}, false, nil
	}

	title := textnorm.Normalize(doc.Title())
	creators, firstCreator := resolveCreators(doc)
	venue := resolveVenue(doc.VenueFields())
	year := resolveYear(doc.Date())

	cand := Candidate{
		DocumentID:   doc.ID(),
		Title:        title,
		CitationKey:  textnorm.Normalize(doc.CitationKey()),
		FirstCreator: firstCreator,
		Year:         year,
		Attachments:  resolveAttachments(eligible),
		ModifiedAt:   parseModified(doc.Modified()),
		FolderIDs:    positiveIDSet(doc.FolderIDs()),
		Norm: Normalized{
			Title:       makeField(title),
			ShortTitle:  makeField(doc.ShortTitle()),
			CitationKey: makeField(doc.CitationKey()),
			DOI:         makeField(doc.DOI()),
			Creators:    makeField(creators),
			Venue:       makeField(venue),
			Year:        makeField(year),
		},
	}
	return cand, true, nil
}

// makeField precomputes the canonical and compact forms of a raw value.
func makeField(raw string) Field {
	canon := textnorm.Canonicalize(raw)
	return Field{Canon: canon, Compact: textnorm.Compact(canon)}
}

// resolveAttachments maps eligible attachments to indexed ones, applying the
// title fallback chain: attachment title, then filename, then a positional
// "PDF" label.
func resolveAttachments(eligible []library.Attachment) []Attachment {
	out := make([]Attachment, 0, len(eligible))
	for i, a := range eligible {
		title := textnorm.Normalize(a.Title)
		if title == "" {
			title = textnorm.Normalize(a.Filename)
		}
		if title == "" {
			if len(eligible) > 1 {
				title = fmt.Sprintf("PDF %d", i+1)
			} else {
				title = "PDF"
			}
		}
		out = append(out, Attachment{
			ID:        a.ID,
			Title:     title,
			NormTitle: makeField(title),
		})
	}
	return out
}

// resolveCreators builds the concatenated creator-name field, de-duplicated
// by canonical form in first-seen order, with the designated first creator
// promoted to the front. A failing creator lookup degrades to whatever the
// first-creator field alone provides.
func resolveCreators(doc library.Document) (joined, first string) {
	first = textnorm.Normalize(doc.FirstCreator())

	creators, err := doc.Creators()
	if err != nil {
		slog.Debug("creator lookup failed",
			slog.Int64("document_id", doc.ID()),
			slog.String("error", err.Error()))
		creators = nil
	}

	names := make([]string, 0, len(creators)+1)
	seen := make(map[string]struct{}, len(creators)+1)
	add := func(name string) {
		name = textnorm.Normalize(name)
		if name == "" {
			return
		}
		key := textnorm.Canonicalize(name)
		if key == "" {
			return
		}
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		names = append(names, name)
	}

	add(first)
	for _, c := range creators {
		add(c.DisplayName())
	}

	if first == "" && len(names) > 0 {
		first = names[0]
	}
	return strings.Join(names, " "), first
}

// resolveVenue concatenates the venue-like fields, de-duplicated by
// canonical form.
func resolveVenue(fields []string) string {
	parts := make([]string, 0, len(fields))
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		f = textnorm.Normalize(f)
		if f == "" {
			continue
		}
		key := textnorm.Canonicalize(f)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		parts = append(parts, f)
	}
	return strings.Join(parts, " ")
}

// resolveYear extracts a leading four-digit 19xx/20xx year from the raw
// date field.
func resolveYear(date string) string {
	return yearPattern.FindString(strings.TrimSpace(date))
}

// parseModified parses the modification timestamp into epoch milliseconds,
// best-effort. Unparseable values degrade to 0.
func parseModified(raw string) int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	for _, layout := range modifiedLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UnixMilli()
		}
	}
	// Numeric epoch values: treat anything past year ~2100 in seconds as
	// milliseconds already.
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil && n > 0 {
		if n < 4_102_444_800 {
			return n * 1000
		}
		return n
	}
	return 0
}

// positiveIDSet keeps only positive ids.
func positiveIDSet(ids []int64) map[int64]struct{} {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if id > 0 {
			set[id] = struct{}{}
		}
	}
	return set
}

// normalizeFolders maps store folder records 1:1, dropping non-positive ids
// from the record itself and from its child lists.
func normalizeFolders(folders []library.Folder) []library.Folder {
	out := make([]library.Folder, 0, len(folders))
	for _, f := range folders {
		if f.ID <= 0 {
			continue
		}
		nf := library.Folder{
			ID:   f.ID,
			Name: f.Name,
		}
		if f.ParentID > 0 {
			nf.ParentID = f.ParentID
		}
		nf.ChildFolderIDs = positiveIDs(f.ChildFolderIDs)
		nf.ChildDocumentIDs = positiveIDs(f.ChildDocumentIDs)
		out = append(out, nf)
	}
	return out
}

func positiveIDs(ids []int64) []int64 {
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id > 0 {
			out = append(out, id)
		}
	}
	return out
}
