// Package library defines the read-only port to the document store and the
// record types paperdex consumes through it. The indexer and cache never
// reach into ambient global state; a Store implementation is injected at
// construction time.
package library

// DocumentKind distinguishes real store records from synthesized "portal"
// records that satisfy the same capability set with sentinel identifiers.
type DocumentKind int

const (
	// KindReal is a document backed by an actual store record.
	KindReal DocumentKind = iota
	// KindSynthetic is a synthesized record, such as the whole-library
	// conversation target. Synthetic documents carry negative ids and no
	// attachments, so they are never indexed.
	KindSynthetic
)

// Document is the read-only capability set the indexer consumes. Both real
// and synthetic records implement it; the indexer and scorer never
// distinguish the two beyond Kind.
type Document interface {
	// ID is the stable identity assigned by the store. Negative for
	// synthetic records.
	ID() int64

	// Kind reports whether this is a real or synthetic record.
	Kind() DocumentKind

	// Regular reports whether this is a primary document record rather
	// than an attachment or note masquerading as a document.
	Regular() bool

	Title() string
	ShortTitle() string
	CitationKey() string
	DOI() string

	// Date is the raw date field; a four-digit year is extracted from a
	// leading 19xx/20xx pattern during indexing.
	Date() string

	// VenueFields returns the venue-like fields in precedence order
	// (publication title, conference name, proceedings title, ...).
	VenueFields() []string

	// FirstCreator is the store's designated display creator, promoted to
	// the front of the creator list during indexing.
	FirstCreator() string

	// Creators returns the full creator list. A failing lookup degrades
	// that one field; the rest of the candidate is still built.
	Creators() ([]Creator, error)

	// Modified is the raw modification timestamp field; parsed best-effort
	// into epoch milliseconds during indexing (0 if unparseable).
	Modified() string

	// FolderIDs returns the folders this document belongs to. Empty means
	// unfiled.
	FolderIDs() []int64

	// Attachments returns the document's attachments.
	Attachments() ([]Attachment, error)
}

// Attachment is one sub-resource of a document, such as a PDF.
type Attachment struct {
	ID          int64
	ContentType string
	Title       string
	Filename    string
}

// PDFContentType marks an attachment as an indexable document.
const PDFContentType = "application/pdf"

// Eligible reports whether the attachment should be indexed.
func (a Attachment) Eligible() bool {
	return a.ContentType == PDFContentType
}

// Creator is one author/editor entry on a document.
type Creator struct {
	FirstName string
	LastName  string
}

// DisplayName renders the creator as "First Last", tolerating partial names.
func (c Creator) DisplayName() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	default:
		return c.FirstName + " " + c.LastName
	}
}

// Folder is one grouping node in a library's collection forest.
type Folder struct {
	ID       int64
	Name     string
	ParentID int64 // 0 = root

	ChildFolderIDs   []int64
	ChildDocumentIDs []int64
}

// DefaultLibraryName is the display-name fallback when the store cannot
// resolve a library name.
const DefaultLibraryName = "My Library"
