// Package memory provides an in-memory library.Store. It backs tests and
// the demo data path, and counts snapshot reads so cache behavior is
// observable.
package memory

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/paperdex/paperdex/internal/library"
)

// Ensure Store implements the port.
var _ library.Store = (*Store)(nil)

// Document is the concrete record held by the memory store. Field access
// never fails; CreatorsErr and AttachmentsErr can be set by tests to
// exercise degradation paths.
type Document struct {
	DocID       int64
	IsRegular   bool
	Title       string
	ShortTitle  string
	CitationKey string
	DOI         string
	Date        string
	Venues      []string
	First       string
	Creators    []library.Creator
	Modified    string
	Folders     []int64
	Attachments []library.Attachment

	CreatorsErr    error
	AttachmentsErr error
}

// docRecord adapts Document to the library.Document capability interface.
type docRecord struct {
	d Document
}

var _ library.Document = docRecord{}

func (r docRecord) ID() int64                  { return r.d.DocID }
func (r docRecord) Kind() library.DocumentKind { return library.KindReal }
func (r docRecord) Regular() bool              { return r.d.IsRegular }
func (r docRecord) Title() string              { return r.d.Title }
func (r docRecord) ShortTitle() string         { return r.d.ShortTitle }
func (r docRecord) CitationKey() string        { return r.d.CitationKey }
func (r docRecord) DOI() string                { return r.d.DOI }
func (r docRecord) Date() string               { return r.d.Date }
func (r docRecord) VenueFields() []string      { return r.d.Venues }
func (r docRecord) FirstCreator() string       { return r.d.First }
func (r docRecord) Modified() string           { return r.d.Modified }
func (r docRecord) FolderIDs() []int64         { return r.d.Folders }

func (r docRecord) Creators() ([]library.Creator, error) {
	if r.d.CreatorsErr != nil {
		return nil, r.d.CreatorsErr
	}
	return r.d.Creators, nil
}

func (r docRecord) Attachments() ([]library.Attachment, error) {
	if r.d.AttachmentsErr != nil {
		return nil, r.d.AttachmentsErr
	}
	return r.d.Attachments, nil
}

// Store is an in-memory library.Store.
type Store struct {
	mu        sync.RWMutex
	documents map[int64][]Document
	folders   map[int64][]library.Folder
	names     map[int64]string

	// reads counts Documents calls; one per index build.
	reads atomic.Int64

	// DocumentsErr, when set, fails every Documents call. Used to test
	// all-or-nothing index degradation.
	DocumentsErr error
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		documents: make(map[int64][]Document),
		folders:   make(map[int64][]library.Folder),
		names:     make(map[int64]string),
	}
}

// AddDocument registers a document in the given library.
func (s *Store) AddDocument(libraryID int64, doc Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[libraryID] = append(s.documents[libraryID], doc)
}

// AddFolder registers a folder in the given library.
func (s *Store) AddFolder(libraryID int64, folder library.Folder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.folders[libraryID] = append(s.folders[libraryID], folder)
}

// SetLibraryName sets the display name for a library.
func (s *Store) SetLibraryName(libraryID int64, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.names[libraryID] = name
}

// Reads returns the number of Documents snapshot reads performed so far.
func (s *Store) Reads() int64 {
	return s.reads.Load()
}

// Documents implements library.Store.
func (s *Store) Documents(_ context.Context, libraryID int64) ([]library.Document, error) {
	s.reads.Add(1)
	if s.DocumentsErr != nil {
		return nil, s.DocumentsErr
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := s.documents[libraryID]
	out := make([]library.Document, 0, len(docs))
	for _, d := range docs {
		out = append(out, docRecord{d: d})
	}
	return out, nil
}

// Folders implements library.Store.
func (s *Store) Folders(_ context.Context, libraryID int64) ([]library.Folder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]library.Folder, len(s.folders[libraryID]))
	copy(out, s.folders[libraryID])
	return out, nil
}

// LibraryName implements library.Store.
func (s *Store) LibraryName(_ context.Context, libraryID int64) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	name, ok := s.names[libraryID]
	if !ok {
		return "", library.ErrLibraryNotFound
	}
	return name, nil
}
