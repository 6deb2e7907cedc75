// Package sqlite provides the production library.Store, reading a library
// snapshot database via the pure-Go modernc.org/sqlite driver. Each
// enumeration runs inside a single read transaction so one Build observes
// one consistent state of the library.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/paperdex/paperdex/internal/library"
)

// Ensure Store implements the port.
var _ library.Store = (*Store)(nil)

// Store is a sqlite-backed library.Store.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the library database at path and ensures the
// schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open library database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply library schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB exposes the underlying handle for seeding and maintenance tooling.
func (s *Store) DB() *sql.DB {
	return s.db
}

// document is the fully-loaded row backing the library.Document capability
// interface. All sub-lists are read eagerly inside the snapshot
// transaction, so the accessors never touch the database again.
type document struct {
	id           int64
	regular      bool
	title        string
	shortTitle   string
	citationKey  string
	doi          string
	date         string
	publication  string
	conference   string
	proceedings  string
	firstCreator string
	modified     string

	creators    []library.Creator
	folders     []int64
	attachments []library.Attachment
}

var _ library.Document = (*document)(nil)

func (d *document) ID() int64                  { return d.id }
func (d *document) Kind() library.DocumentKind { return library.KindReal }
func (d *document) Regular() bool              { return d.regular }
func (d *document) Title() string              { return d.title }
func (d *document) ShortTitle() string         { return d.shortTitle }
func (d *document) CitationKey() string        { return d.citationKey }
func (d *document) DOI() string                { return d.doi }
func (d *document) Date() string               { return d.date }
func (d *document) FirstCreator() string       { return d.firstCreator }
func (d *document) Modified() string           { return d.modified }
func (d *document) FolderIDs() []int64         { return d.folders }

func (d *document) VenueFields() []string {
	return []string{d.publication, d.conference, d.proceedings}
}

func (d *document) Creators() ([]library.Creator, error) {
	return d.creators, nil
}

func (d *document) Attachments() ([]library.Attachment, error) {
	return d.attachments, nil
}

// Documents implements library.Store.
func (s *Store) Documents(ctx context.Context, libraryID int64) ([]library.Document, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to begin snapshot read: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	docs, byID, err := s.readDocuments(ctx, tx, libraryID)
	if err != nil {
		return nil, err
	}
	if err := s.readCreators(ctx, tx, libraryID, byID); err != nil {
		return nil, err
	}
	if err := s.readAttachments(ctx, tx, libraryID, byID); err != nil {
		return nil, err
	}
	if err := s.readMemberships(ctx, tx, libraryID, byID); err != nil {
		return nil, err
	}

	out := make([]library.Document, len(docs))
	for i, d := range docs {
		out[i] = d
	}
	return out, nil
}

func (s *Store) readDocuments(ctx context.Context, tx *sql.Tx, libraryID int64) ([]*document, map[int64]*document, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT id, regular, title, short_title, citation_key, doi, date,
		       publication, conference, proceedings, first_creator, modified
		FROM documents
		WHERE library_id = ?
		ORDER BY id`, libraryID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read documents: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var docs []*document
	byID := make(map[int64]*document)
	for rows.Next() {
		d := &document{}
		var regular int
		if err := rows.Scan(&d.id, &regular, &d.title, &d.shortTitle,
			&d.citationKey, &d.doi, &d.date, &d.publication, &d.conference,
			&d.proceedings, &d.firstCreator, &d.modified); err != nil {
			return nil, nil, fmt.Errorf("failed to scan document: %w", err)
		}
		d.regular = regular != 0
		docs = append(docs, d)
		byID[d.id] = d
	}
	return docs, byID, rows.Err()
}

func (s *Store) readCreators(ctx context.Context, tx *sql.Tx, libraryID int64, byID map[int64]*document) error {
	rows, err := tx.QueryContext(ctx, `
		SELECT c.document_id, c.first_name, c.last_name
		FROM creators c
		JOIN documents d ON d.id = c.document_id
		WHERE d.library_id = ?
		ORDER BY c.document_id, c.position`, libraryID)
	if err != nil {
		return fmt.Errorf("failed to read creators: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var docID int64
		var c library.Creator
		if err := rows.Scan(&docID, &c.FirstName, &c.LastName); err != nil {
			return fmt.Errorf("failed to scan creator: %w", err)
		}
		if d, ok := byID[docID]; ok {
			d.creators = append(d.creators, c)
		}
	}
	return rows.Err()
}

func (s *Store) readAttachments(ctx context.Context, tx *sql.Tx, libraryID int64, byID map[int64]*document) error {
	rows, err := tx.QueryContext(ctx, `
		SELECT a.id, a.document_id, a.content_type, a.title, a.filename
		FROM attachments a
		JOIN documents d ON d.id = a.document_id
		WHERE d.library_id = ?
		ORDER BY a.document_id, a.id`, libraryID)
	if err != nil {
		return fmt.Errorf("failed to read attachments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var docID int64
		var a library.Attachment
		if err := rows.Scan(&a.ID, &docID, &a.ContentType, &a.Title, &a.Filename); err != nil {
			return fmt.Errorf("failed to scan attachment: %w", err)
		}
		if d, ok := byID[docID]; ok {
			d.attachments = append(d.attachments, a)
		}
	}
	return rows.Err()
}

func (s *Store) readMemberships(ctx context.Context, tx *sql.Tx, libraryID int64, byID map[int64]*document) error {
	rows, err := tx.QueryContext(ctx, `
		SELECT fd.document_id, fd.folder_id
		FROM folder_documents fd
		JOIN folders f ON f.id = fd.folder_id
		WHERE f.library_id = ?
		ORDER BY fd.document_id, fd.folder_id`, libraryID)
	if err != nil {
		return fmt.Errorf("failed to read folder memberships: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var docID, folderID int64
		if err := rows.Scan(&docID, &folderID); err != nil {
			return fmt.Errorf("failed to scan folder membership: %w", err)
		}
		if d, ok := byID[docID]; ok {
			d.folders = append(d.folders, folderID)
		}
	}
	return rows.Err()
}

// Folders implements library.Store.
func (s *Store) Folders(ctx context.Context, libraryID int64) ([]library.Folder, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to begin snapshot read: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	rows, err := tx.QueryContext(ctx, `
		SELECT id, name, parent_id
		FROM folders
		WHERE library_id = ?
		ORDER BY id`, libraryID)
	if err != nil {
		return nil, fmt.Errorf("failed to read folders: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var folders []library.Folder
	byID := make(map[int64]int)
	for rows.Next() {
		var f library.Folder
		if err := rows.Scan(&f.ID, &f.Name, &f.ParentID); err != nil {
			return nil, fmt.Errorf("failed to scan folder: %w", err)
		}
		byID[f.ID] = len(folders)
		folders = append(folders, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Child-folder lists are derived from parent pointers.
	for i := range folders {
		if idx, ok := byID[folders[i].ParentID]; ok {
			folders[idx].ChildFolderIDs = append(folders[idx].ChildFolderIDs, folders[i].ID)
		}
	}

	// Child-document lists come from the membership table.
	memberRows, err := tx.QueryContext(ctx, `
		SELECT fd.folder_id, fd.document_id
		FROM folder_documents fd
		JOIN folders f ON f.id = fd.folder_id
		WHERE f.library_id = ?
		ORDER BY fd.folder_id, fd.document_id`, libraryID)
	if err != nil {
		return nil, fmt.Errorf("failed to read folder documents: %w", err)
	}
	defer func() { _ = memberRows.Close() }()

	for memberRows.Next() {
		var folderID, docID int64
		if err := memberRows.Scan(&folderID, &docID); err != nil {
			return nil, fmt.Errorf("failed to scan folder document: %w", err)
		}
		if idx, ok := byID[folderID]; ok {
			folders[idx].ChildDocumentIDs = append(folders[idx].ChildDocumentIDs, docID)
		}
	}
	return folders, memberRows.Err()
}

// LibraryName implements library.Store.
func (s *Store) LibraryName(ctx context.Context, libraryID int64) (string, error) {
	var name string
	err := s.db.QueryRowContext(ctx,
		`SELECT name FROM libraries WHERE id = ?`, libraryID).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", library.ErrLibraryNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read library name: %w", err)
	}
	return name, nil
}
