package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "lowercases",
			input: "Working Memory",
			want:  "working memory",
		},
		{
			name:  "strips diacritics",
			input: "García Márquez",
			want:  "garcia marquez",
		},
		{
			name:  "collapses punctuation runs to one space",
			input: "deep-learning: a survey!!",
			want:  "deep learning a survey",
		},
		{
			name:  "doi separators become spaces",
			input: "10.1000/xyz123",
			want:  "10 1000 xyz123",
		},
		{
			name:  "no leading or trailing separator residue",
			input: "  (hello)  ",
			want:  "hello",
		},
		{
			name:  "symbols treated like punctuation",
			input: "C++ = fun",
			want:  "c fun",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "only punctuation",
			input: "...!?",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Canonicalize(tt.input))
		})
	}
}

func TestCanonicalize_Idempotent(t *testing.T) {
	inputs := []string{
		"García Márquez",
		"Working-Memory: Überblick",
		"10.1000/xyz123",
		"ＦＵＬＬＷＩＤＴＨ text",
	}
	for _, in := range inputs {
		once := Canonicalize(in)
		assert.Equal(t, once, Canonicalize(once), "input %q", in)
	}
}

func TestCompact(t *testing.T) {
	assert.Equal(t, "workingmemory", Compact("working memory"))
	assert.Equal(t, "abc", Compact(" a b\tc\n"))
	assert.Equal(t, "", Compact("   "))
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "splits on spaces",
			input: "working memory model",
			want:  []string{"working", "memory", "model"},
		},
		{
			name:  "deduplicates preserving first-seen order",
			input: "deep deep learning deep",
			want:  []string{"deep", "learning"},
		},
		{
			name:  "empty yields nil",
			input: "",
			want:  nil,
		},
		{
			name:  "whitespace only yields nil",
			input: "   ",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.input))
		})
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "hello world", Normalize("  hello world\n"))
	assert.Equal(t, "", Normalize("\t "))
}
