package search

// DefaultLimit is the default maximum number of search results.
const DefaultLimit = 20

// Options configures one Search or Browse call.
type Options struct {
	// ExcludeAttachmentID removes a single attachment from every result,
	// typically the one matching an in-progress edit target. A document
	// whose only attachment is excluded disappears from the result set.
	ExcludeAttachmentID int64

	// Limit is the maximum number of search results. Zero means
	// DefaultLimit; values below one are clamped to one. Ignored by
	// Browse.
	Limit int
}

// limit resolves the effective result limit.
func (o Options) limit() int {
	switch {
	case o.Limit == 0:
		return DefaultLimit
	case o.Limit < 1:
		return 1
	default:
		return o.Limit
	}
}
