// Package trigger detects an in-progress "/query" token inside free text.
// It lets the UI layer tell an inline search trigger apart from a slash that
// is merely part of a URL or word.
package trigger

import (
	"unicode"
	"unicode/utf8"
)

// Token describes an active slash-triggered query at a caret position.
type Token struct {
	// Query is the text between the slash and the caret.
	Query string

	// SlashStart is the byte offset of the triggering slash.
	SlashStart int

	// CaretEnd is the clamped caret position the query runs to.
	CaretEnd int
}

// ParseSlashToken scans backward from the caret for the nearest slash that
// starts a token: one at position 0 or immediately preceded by whitespace.
// A slash embedded in a URL or word never triggers. Returns ok=false when
// the caret is not inside an active token, including when the user has
// typed past the token's natural end into a new word.
func ParseSlashToken(text string, caret int) (Token, bool) {
	if caret < 0 {
		caret = 0
	}
	if caret > len(text) {
		caret = len(text)
	}

	slash := -1
	for i := caret - 1; i >= 0; i-- {
		if text[i] != '/' {
			continue
		}
		if i == 0 || isSpaceBefore(text, i) {
			slash = i
			break
		}
	}
	if slash == -1 {
		return Token{}, false
	}

	// The token's natural end is the next whitespace after the slash, or
	// end of text.
	end := len(text)
	for i := slash + 1; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if unicode.IsSpace(r) {
			end = i
			break
		}
		i += size
	}
	if caret > end {
		return Token{}, false
	}

	return Token{
		Query:      text[slash+1 : caret],
		SlashStart: slash,
		CaretEnd:   caret,
	}, true
}

// isSpaceBefore reports whether the rune immediately before byte offset i is
// whitespace.
func isSpaceBefore(text string, i int) bool {
	r, size := utf8.DecodeLastRuneInString(text[:i])
	if size == 0 {
		return false
	}
	return unicode.IsSpace(r)
}
