// Package textnorm provides the text canonicalization rules used by the
// library index and the scorer. All comparison in paperdex happens on
// canonical forms computed here, never on raw display strings.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize trims surrounding whitespace. It is the minimal cleanup applied
// to raw query input before tokenization.
func Normalize(text string) string {
	return strings.TrimSpace(text)
}

// Canonicalize converts text into the canonical comparable form:
// NFKD decomposition, combining marks stripped, lowercased, with every run
// of punctuation, symbols, and whitespace collapsed to a single space.
//
// The function is total and idempotent: it never fails, and
// Canonicalize(Canonicalize(x)) == Canonicalize(x).
func Canonicalize(text string) string {
	if text == "" {
		return ""
	}

	decomposed := decompose(text)

	var b strings.Builder
	b.Grow(len(decomposed))
	pendingSpace := false
	for _, r := range decomposed {
		switch {
		case unicode.Is(unicode.Mn, r):
			// Combining marks are dropped entirely so that "García"
			// and "Garcia" compare equal.
		case unicode.IsPunct(r) || unicode.IsSymbol(r) || unicode.IsSpace(r):
			pendingSpace = true
		default:
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// Compact removes all whitespace from text. Comparing compact forms lets a
// glued query like "workingmemory" match the title "working memory".
func Compact(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if !unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Tokenize splits an already-canonicalized query into its distinct tokens.
// Order is not significant to the scorer, but first-seen order is preserved
// for deterministic iteration.
func Tokenize(canonical string) []string {
	fields := strings.Fields(canonical)
	if len(fields) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(fields))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		tokens = append(tokens, f)
	}
	return tokens
}

// decompose applies NFKD normalization, falling back to the input untouched
// if the normalizer cannot process it. Canonicalize must never propagate a
// normalization failure.
func decompose(text string) (out string) {
	out = text
	defer func() { _ = recover() }()
	out = norm.NFKD.String(text)
	return out
}
