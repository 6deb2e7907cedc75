package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/paperdex/paperdex/internal/index"
	"github.com/paperdex/paperdex/internal/textnorm"
)

// ErrNilDependency is returned when a required dependency is nil.
var ErrNilDependency = errors.New("nil dependency")

// Engine is the query orchestrator. It normalizes queries, obtains the
// cached library index, scores every candidate, and orders the survivors.
type Engine struct {
	cache *index.Cache
}

// Ensure Engine implements the Service interface.
var _ Service = (*Engine)(nil)

// NewEngine creates a search engine over the given index cache.
func NewEngine(cache *index.Cache) (*Engine, error) {
	if cache == nil {
		return nil, fmt.Errorf("%w: index cache is required", ErrNilDependency)
	}
	return &Engine{cache: cache}, nil
}

// Search ranks the library's candidates against a free-text query. An
// invalid library id or a query that normalizes to nothing returns an empty
// result without touching the store.
func (e *Engine) Search(ctx context.Context, libraryID int64, rawQuery string, opts Options) ([]Result, error) {
	if libraryID <= 0 {
		return nil, nil
	}
	canon := textnorm.Canonicalize(textnorm.Normalize(rawQuery))
	tokens := textnorm.Tokenize(canon)
	if len(tokens) == 0 {
		return nil, nil
	}
	q := query{
		canon:   canon,
		compact: textnorm.Compact(canon),
		tokens:  tokens,
	}

	start := time.Now()
	idx, err := e.cache.Get(ctx, libraryID)
	if err != nil {
		return nil, err
	}

	coll := newCollator()
	results := make([]Result, 0, opts.limit())
	for i := range idx.Candidates {
		cand := &idx.Candidates[i]
		visible := visibleAttachments(cand, opts.ExcludeAttachmentID)
		if len(visible) == 0 {
			continue
		}
		m, ok := scoreCandidate(cand, visible, q)
		if !ok {
			continue
		}
		r := makeResult(cand, visible, m)
		sortAttachments(r.Attachments, coll)
		results = append(results, r)
	}

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.MatchedTokens != b.MatchedTokens {
			return a.MatchedTokens > b.MatchedTokens
		}
		if a.ModifiedAt != b.ModifiedAt {
			return a.ModifiedAt > b.ModifiedAt
		}
		return a.DocumentID < b.DocumentID
	})
	if limit := opts.limit(); len(results) > limit {
		results = results[:limit]
	}

	slog.Debug("search complete",
		slog.Int64("library_id", libraryID),
		slog.String("query", canon),
		slog.Int("results", len(results)),
		slog.Duration("elapsed", time.Since(start)))
	return results, nil
}

// visibleAttachments filters the candidate's attachments against the
// excluded attachment id. The returned slice aliases index state and must
// not be mutated.
func visibleAttachments(cand *index.Candidate, excludeID int64) []index.Attachment {
	if excludeID <= 0 {
		return cand.Attachments
	}
	visible := make([]index.Attachment, 0, len(cand.Attachments))
	for _, a := range cand.Attachments {
		if a.ID != excludeID {
			visible = append(visible, a)
		}
	}
	return visible
}

// makeResult projects a candidate plus its scoring outcome into a Result.
// m may be the zero match in browse mode.
func makeResult(cand *index.Candidate, visible []index.Attachment, m match) Result {
	attachments := make([]ResultAttachment, len(visible))
	for i, a := range visible {
		ra := ResultAttachment{ID: a.ID, Title: a.Title}
		if i < len(m.attachmentScores) {
			ra.Score = m.attachmentScores[i]
		}
		attachments[i] = ra
	}
	return Result{
		DocumentID:    cand.DocumentID,
		Title:         cand.Title,
		CitationKey:   cand.CitationKey,
		FirstCreator:  cand.FirstCreator,
		Year:          cand.Year,
		Score:         m.score,
		MatchedTokens: m.matchedTokens,
		ModifiedAt:    cand.ModifiedAt,
		Attachments:   attachments,
	}
}

// sortAttachments orders attachments by per-query score descending, then by
// title, locale-aware and case-insensitive.
func sortAttachments(attachments []ResultAttachment, coll *collate.Collator) {
	sort.SliceStable(attachments, func(i, j int) bool {
		if attachments[i].Score != attachments[j].Score {
			return attachments[i].Score > attachments[j].Score
		}
		return coll.CompareString(attachments[i].Title, attachments[j].Title) < 0
	})
}

// newCollator builds the locale-aware, case-insensitive collator used for
// title ordering. Collators are stateful, so one is created per call rather
// than shared.
func newCollator() *collate.Collator {
	return collate.New(language.Und, collate.IgnoreCase)
}
