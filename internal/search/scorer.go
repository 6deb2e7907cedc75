package search

import (
	"strings"

	"github.com/paperdex/paperdex/internal/index"
)

// fieldWeights holds the score awarded per match tier for one field.
type fieldWeights struct {
	exact  int
	prefix int
	substr int
	token  int
}

// Field weight table, highest precedence first. A citation key is the most
// deliberate thing a user can type, so it outranks everything; venue and
// year only ever contribute supporting evidence.
var (
	citationKeyWeights = fieldWeights{exact: 1200, prefix: 1050, substr: 900, token: 110}
	doiWeights         = fieldWeights{exact: 1150, prefix: 1000, substr: 850, token: 110}
	titleWeights       = fieldWeights{exact: 900, prefix: 820, substr: 720, token: 90}
	// Creators and venue award one flat phrase score however the query
	// sits inside the field.
	creatorWeights = fieldWeights{exact: 450, prefix: 450, substr: 450, token: 70}
	venueWeights   = fieldWeights{exact: 280, prefix: 280, substr: 280, token: 45}
	attachmentWeights  = fieldWeights{exact: 640, prefix: 600, substr: 560, token: 65}
)

const (
	// shortTitleScore is awarded once if the short title matches at all.
	shortTitleScore = 500

	// yearExactScore is awarded when the whole query equals the year;
	// otherwise each query token found in the year earns yearTokenScore.
	yearExactScore = 220
	yearTokenScore = 40

	// allTokensBonus is added when every query token matched somewhere on
	// the candidate.
	allTokensBonus = 260

	// importantFieldsBonus is added on top when title, short title, and
	// creators alone already cover every token.
	importantFieldsBonus = 120
)

// query carries the precomputed forms of one normalized query.
type query struct {
	canon   string
	compact string
	tokens  []string
}

// match is the scoring outcome for one candidate.
type match struct {
	score         int
	matchedTokens int

	// attachmentScores holds the per-attachment score, parallel to the
	// visible attachment list handed to scoreCandidate.
	attachmentScores []int
}

// scoreField computes the phrase score of one field: exact, prefix, or
// substring, tried against both the canonical and the compact forms so that
// "workingmemory" matches "working memory". The best tier wins.
func scoreField(f index.Field, q query, w fieldWeights) int {
	best := phraseScore(f.Canon, q.canon, w)
	if s := phraseScore(f.Compact, q.compact, w); s > best {
		best = s
	}
	return best
}

func phraseScore(value, q string, w fieldWeights) int {
	if value == "" || q == "" {
		return 0
	}
	switch {
	case value == q:
		return w.exact
	case strings.HasPrefix(value, q):
		return w.prefix
	case strings.Contains(value, q):
		return w.substr
	default:
		return 0
	}
}

// fieldTokens marks every query token that appears in the field, directly or
// in compact form, returning the per-token hit mask.
func fieldTokens(f index.Field, q query) []bool {
	hits := make([]bool, len(q.tokens))
	if f.Canon == "" {
		return hits
	}
	for i, tok := range q.tokens {
		if strings.Contains(f.Canon, tok) || strings.Contains(f.Compact, tok) {
			hits[i] = true
		}
	}
	return hits
}

// scoreCandidate scores one candidate against the query. visible holds the
// attachments that survived exclusion filtering; their scores are reported
// back for attachment ordering. ok is false when the candidate matches
// nothing and must be dropped.
func scoreCandidate(cand *index.Candidate, visible []index.Attachment, q query) (match, bool) {
	total := 0
	matched := make([]bool, len(q.tokens))
	important := make([]bool, len(q.tokens))

	mark := func(hits []bool, dst ...[]bool) int {
		n := 0
		for i, hit := range hits {
			if !hit {
				continue
			}
			n++
			matched[i] = true
			for _, d := range dst {
				d[i] = true
			}
		}
		return n
	}

	// Citation key and DOI: the high-precision identifier fields.
	total += scoreField(cand.Norm.CitationKey, q, citationKeyWeights)
	total += mark(fieldTokens(cand.Norm.CitationKey, q)) * citationKeyWeights.token

	total += scoreField(cand.Norm.DOI, q, doiWeights)
	total += mark(fieldTokens(cand.Norm.DOI, q)) * doiWeights.token

	// Title.
	total += scoreField(cand.Norm.Title, q, titleWeights)
	total += mark(fieldTokens(cand.Norm.Title, q), important) * titleWeights.token

	// Short title: flat score on any match; its token hits count toward
	// coverage but carry no per-token score.
	shortHits := fieldTokens(cand.Norm.ShortTitle, q)
	shortPhrase := scoreField(cand.Norm.ShortTitle, q, fieldWeights{exact: 1, prefix: 1, substr: 1})
	if n := mark(shortHits, important); n > 0 || shortPhrase > 0 {
		total += shortTitleScore
	}

	// Creators and venue: substring-only fields.
	total += scoreField(cand.Norm.Creators, q, creatorWeights)
	total += mark(fieldTokens(cand.Norm.Creators, q), important) * creatorWeights.token

	total += scoreField(cand.Norm.Venue, q, venueWeights)
	total += mark(fieldTokens(cand.Norm.Venue, q)) * venueWeights.token

	// Year: exact query match or per-token credit, never both.
	if cand.Norm.Year.Canon != "" && cand.Norm.Year.Canon == q.canon {
		total += yearExactScore
		mark(fieldTokens(cand.Norm.Year, q))
	} else {
		total += mark(fieldTokens(cand.Norm.Year, q)) * yearTokenScore
	}

	// Attachment titles: every attachment is scored; the candidate is
	// credited with the best one.
	attachmentScores := make([]int, len(visible))
	bestAttachment := 0
	for i := range visible {
		s := scoreField(visible[i].NormTitle, q, attachmentWeights)
		s += mark(fieldTokens(visible[i].NormTitle, q)) * attachmentWeights.token
		attachmentScores[i] = s
		if s > bestAttachment {
			bestAttachment = s
		}
	}
	total += bestAttachment

	if total <= 0 {
		return match{}, false
	}

	matchedCount := countTrue(matched)
	if matchedCount == len(q.tokens) {
		total += allTokensBonus
		if countTrue(important) == len(q.tokens) {
			total += importantFieldsBonus
		}
	}

	return match{
		score:            total,
		matchedTokens:    matchedCount,
		attachmentScores: attachmentScores,
	}, true
}

func countTrue(bits []bool) int {
	n := 0
	for _, b := range bits {
		if b {
			n++
		}
	}
	return n
}
