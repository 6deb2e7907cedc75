package search

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/text/collate"

	"github.com/paperdex/paperdex/internal/index"
)

// Browse assembles the library's collection forest. Every visible document
// is attached to each folder it belongs to; documents with no folder are
// collected into one synthetic top-level node carrying the library's display
// name and id 0, appended after all real top-level folders.
func (e *Engine) Browse(ctx context.Context, libraryID int64, opts Options) ([]*FolderNode, error) {
	if libraryID <= 0 {
		return nil, nil
	}

	start := time.Now()
	idx, err := e.cache.Get(ctx, libraryID)
	if err != nil {
		return nil, err
	}

	coll := newCollator()

	// Visible candidates, in index order. No query filtering in browse
	// mode; only attachment exclusion applies.
	type visibleDoc struct {
		cand   *index.Candidate
		result Result
	}
	visible := make([]visibleDoc, 0, len(idx.Candidates))
	for i := range idx.Candidates {
		cand := &idx.Candidates[i]
		atts := visibleAttachments(cand, opts.ExcludeAttachmentID)
		if len(atts) == 0 {
			continue
		}
		r := makeResult(cand, atts, match{})
		sortAttachments(r.Attachments, coll)
		visible = append(visible, visibleDoc{cand: cand, result: r})
	}

	// One node per folder record.
	nodes := make(map[int64]*FolderNode, len(idx.Folders))
	for _, f := range idx.Folders {
		nodes[f.ID] = &FolderNode{ID: f.ID, Name: f.Name}
	}

	// Attach documents by folder membership.
	for _, v := range visible {
		for folderID := range v.cand.FolderIDs {
			if node, ok := nodes[folderID]; ok {
				node.Documents = append(node.Documents, v.result)
			}
		}
	}

	// Wire child folders. A folder is attached as a child at most once,
	// never to itself, and never in a way that closes a cycle: if the
	// parent is already reachable below the child, the store reported a
	// folder loop and the edge is dropped.
	attached := make(map[int64]struct{}, len(idx.Folders))
	for _, f := range idx.Folders {
		parent := nodes[f.ID]
		for _, childID := range f.ChildFolderIDs {
			if childID == f.ID {
				continue
			}
			child, ok := nodes[childID]
			if !ok {
				continue
			}
			if _, dup := attached[childID]; dup {
				continue
			}
			if reaches(child, parent, make(map[int64]struct{})) {
				continue
			}
			attached[childID] = struct{}{}
			parent.Folders = append(parent.Folders, child)
		}
	}

	// A folder is top-level if it has no parent or its parent does not
	// resolve to a known folder; broken parent references are roots, not
	// errors.
	forest := make([]*FolderNode, 0, len(idx.Folders)+1)
	for _, f := range idx.Folders {
		if f.ParentID != 0 {
			if _, known := nodes[f.ParentID]; known {
				continue
			}
		}
		forest = append(forest, nodes[f.ID])
	}

	var unfiled []Result
	for _, v := range visible {
		if v.cand.Unfiled() {
			unfiled = append(unfiled, v.result)
		}
	}
	if node := unfiledNode(idx.LibraryName, unfiled, coll); node != nil {
		forest = append(forest, node)
	}

	slog.Debug("browse complete",
		slog.Int64("library_id", libraryID),
		slog.Int("folders", len(idx.Folders)),
		slog.Int("documents", len(visible)),
		slog.Duration("elapsed", time.Since(start)))
	return forest, nil
}

// reaches reports whether target is in the subtree below from.
func reaches(from, target *FolderNode, seen map[int64]struct{}) bool {
	if from == target {
		return true
	}
	if _, done := seen[from.ID]; done {
		return false
	}
	seen[from.ID] = struct{}{}
	for _, child := range from.Folders {
		if reaches(child, target, seen) {
			return true
		}
	}
	return false
}

// unfiledNode builds the synthetic top-level node for documents with no
// folder membership. Returns nil when every document is filed.
func unfiledNode(libraryName string, unfiled []Result, coll *collate.Collator) *FolderNode {
	if len(unfiled) == 0 {
		return nil
	}
	sort.SliceStable(unfiled, func(i, j int) bool {
		return coll.CompareString(unfiled[i].Title, unfiled[j].Title) < 0
	})
	return &FolderNode{
		ID:        0,
		Name:      libraryName,
		Documents: unfiled,
	}
}
