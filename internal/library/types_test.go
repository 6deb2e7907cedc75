package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttachmentEligible(t *testing.T) {
	assert.True(t, Attachment{ContentType: PDFContentType}.Eligible())
	assert.False(t, Attachment{ContentType: "text/html"}.Eligible())
	assert.False(t, Attachment{}.Eligible())
}

func TestCreatorDisplayName(t *testing.T) {
	tests := []struct {
		creator Creator
		want    string
	}{
		{Creator{FirstName: "Ada", LastName: "Lovelace"}, "Ada Lovelace"},
		{Creator{LastName: "Lovelace"}, "Lovelace"},
		{Creator{FirstName: "Ada"}, "Ada"},
		{Creator{}, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.creator.DisplayName())
	}
}

func TestSyntheticWholeLibraryDocument(t *testing.T) {
	doc := NewWholeLibraryDocument(7, "Lab Shared")

	assert.Equal(t, WholeLibraryID, doc.ID())
	assert.Equal(t, KindSynthetic, doc.Kind())
	assert.Equal(t, "Lab Shared", doc.Title())

	// Synthetic records carry no attachments, so they can never satisfy
	// the indexing invariant and are excluded from every index.
	atts, err := doc.Attachments()
	assert.NoError(t, err)
	assert.Empty(t, atts)

	creators, err := doc.Creators()
	assert.NoError(t, err)
	assert.Empty(t, creators)
}
