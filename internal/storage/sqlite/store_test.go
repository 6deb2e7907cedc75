package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paperdex/paperdex/internal/library"
)

func openSeeded(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "library.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	db := store.DB()
	exec := func(query string, args ...any) {
		t.Helper()
		_, err := db.Exec(query, args...)
		require.NoError(t, err)
	}

	exec(`INSERT INTO libraries (id, name) VALUES (1, 'My Library')`)
	exec(`INSERT INTO documents
		(id, library_id, regular, title, short_title, citation_key, doi, date,
		 publication, conference, proceedings, first_creator, modified)
		VALUES
		(10, 1, 1, 'Attention Is All You Need', 'Attention', 'vaswani2017',
		 '10.5555/3295222', '2017-06-12', 'NeurIPS', '', '', 'Vaswani et al.',
		 '2021-06-01 00:00:00'),
		(11, 1, 0, 'Standalone note', '', '', '', '', '', '', '', '', '')`)
	exec(`INSERT INTO creators (document_id, position, first_name, last_name)
		VALUES (10, 0, 'Ashish', 'Vaswani'), (10, 1, 'Noam', 'Shazeer')`)
	exec(`INSERT INTO attachments (id, document_id, content_type, title, filename)
		VALUES (100, 10, 'application/pdf', 'Preprint', 'attention.pdf'),
		       (101, 10, 'text/html', 'Snapshot', 'attention.html')`)
	exec(`INSERT INTO folders (id, library_id, name, parent_id)
		VALUES (1, 1, 'Neural Networks', 0), (2, 1, 'Transformers', 1)`)
	exec(`INSERT INTO folder_documents (folder_id, document_id) VALUES (2, 10)`)

	return store
}

func TestStore_Documents(t *testing.T) {
	store := openSeeded(t)

	docs, err := store.Documents(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	doc := docs[0]
	assert.Equal(t, int64(10), doc.ID())
	assert.Equal(t, library.KindReal, doc.Kind())
	assert.True(t, doc.Regular())
	assert.Equal(t, "Attention Is All You Need", doc.Title())
	assert.Equal(t, "Attention", doc.ShortTitle())
	assert.Equal(t, "vaswani2017", doc.CitationKey())
	assert.Equal(t, "10.5555/3295222", doc.DOI())
	assert.Equal(t, "2017-06-12", doc.Date())
	assert.Equal(t, "Vaswani et al.", doc.FirstCreator())
	assert.Equal(t, "2021-06-01 00:00:00", doc.Modified())
	assert.Equal(t, []string{"NeurIPS", "", ""}, doc.VenueFields())
	assert.Equal(t, []int64{2}, doc.FolderIDs())

	creators, err := doc.Creators()
	require.NoError(t, err)
	require.Len(t, creators, 2)
	assert.Equal(t, "Ashish Vaswani", creators[0].DisplayName())

	atts, err := doc.Attachments()
	require.NoError(t, err)
	require.Len(t, atts, 2)
	assert.True(t, atts[0].Eligible())
	assert.False(t, atts[1].Eligible())

	assert.False(t, docs[1].Regular())
}

func TestStore_Documents_OtherLibraryIsEmpty(t *testing.T) {
	store := openSeeded(t)

	docs, err := store.Documents(context.Background(), 99)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestStore_Folders(t *testing.T) {
	store := openSeeded(t)

	folders, err := store.Folders(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, folders, 2)

	parent := folders[0]
	assert.Equal(t, "Neural Networks", parent.Name)
	assert.Equal(t, []int64{2}, parent.ChildFolderIDs)
	assert.Empty(t, parent.ChildDocumentIDs)

	child := folders[1]
	assert.Equal(t, "Transformers", child.Name)
	assert.Equal(t, int64(1), child.ParentID)
	assert.Equal(t, []int64{10}, child.ChildDocumentIDs)
}

func TestStore_LibraryName(t *testing.T) {
	store := openSeeded(t)

	name, err := store.LibraryName(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "My Library", name)

	_, err = store.LibraryName(context.Background(), 99)
	assert.ErrorIs(t, err, library.ErrLibraryNotFound)
}
