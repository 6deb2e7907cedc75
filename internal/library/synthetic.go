package library

// Sentinel ids for synthetic records. Kept negative so they can never
// collide with store-assigned identities.
const (
	// WholeLibraryID identifies the synthetic record standing in for "the
	// entire library" as a conversation target.
	WholeLibraryID int64 = -1
)

// SyntheticDocument is a synthesized record that satisfies the Document
// capability set without a backing store row. It carries no attachments, so
// the indexer excludes it by construction.
type SyntheticDocument struct {
	DocID     int64
	DocTitle  string
	LibraryID int64
}

// NewWholeLibraryDocument builds the aggregate conversation target for a
// library.
func NewWholeLibraryDocument(libraryID int64, name string) *SyntheticDocument {
	if name == "" {
		name = DefaultLibraryName
	}
	return &SyntheticDocument{
		DocID:     WholeLibraryID,
		DocTitle:  name,
		LibraryID: libraryID,
	}
}

var _ Document = (*SyntheticDocument)(nil)

func (d *SyntheticDocument) ID() int64                      { return d.DocID }
func (d *SyntheticDocument) Kind() DocumentKind             { return KindSynthetic }
func (d *SyntheticDocument) Regular() bool                  { return true }
func (d *SyntheticDocument) Title() string                  { return d.DocTitle }
func (d *SyntheticDocument) ShortTitle() string             { return "" }
func (d *SyntheticDocument) CitationKey() string            { return "" }
func (d *SyntheticDocument) DOI() string                    { return "" }
func (d *SyntheticDocument) Date() string                   { return "" }
func (d *SyntheticDocument) VenueFields() []string          { return nil }
func (d *SyntheticDocument) FirstCreator() string           { return "" }
func (d *SyntheticDocument) Creators() ([]Creator, error)   { return nil, nil }
func (d *SyntheticDocument) Modified() string               { return "" }
func (d *SyntheticDocument) FolderIDs() []int64             { return nil }
func (d *SyntheticDocument) Attachments() ([]Attachment, error) { return nil, nil }
