package token

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		word string
		want Kind
	}{
		{"let", Let},
		{"which", Which},
		{"alias", Alias},
		{"lets", Identifier},
		{"true", Identifier},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			t.Parallel()
			got := Lookup(tt.word)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want != Identifier, got.IsKeyword())
		})
	}
}

func TestTokenString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		tok  Token
		want string
	}{
		{"integer", Token{Kind: Integer, Int: 123}, "123"},
		{"float", Token{Kind: Float, Float: 3.14}, "3.14"},
		{"integral float", Token{Kind: Float, Float: 500}, "500"},
		{"imaginary", Token{Kind: Imaginary, Float: 0.016}, "0.016i"},
		{"bit", Token{Kind: Bit, Width: 16, Bytes: []byte{0x08, 0xcd}}, "16'x08cd"},
		{"boolean", Token{Kind: Boolean, Bool: true}, "true"},
		{"char", Token{Kind: Char, Char: 'a', Text: "a"}, "'a'"},
		{"string", Token{Kind: String, Text: "foo"}, `"foo"`},
		{"raw string", Token{Kind: RawString, Text: "foo"}, `"""foo"""`},
		{"template", Token{Kind: TemplateString, Text: "foo"}, "`foo`"},
		{"hash", Token{Kind: HashString, Text: "foo"}, "#foo"},
		{"named operator", Token{Kind: NamedOperator, Text: "foo"}, ":foo:"},
		{"attribute", Token{Kind: Attribute, Text: "test"}, "#[test]"},
		{"keyword", Token{Kind: Match}, "match"},
		{"symbol", Token{Kind: IntervalInclusive}, "..="},
		{"newline", Token{Kind: NewLine}, "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.tok.String())
		})
	}
}

func TestRangeJoin(t *testing.T) {
	t.Parallel()

	r := Range{Start: 4, End: 9}.Join(Range{Start: 1, End: 6})
	assert.Equal(t, Range{Start: 1, End: 9}, r)
}

func TestError(t *testing.T) {
	t.Parallel()

	var err error = NewParserError(Range{Start: 2, End: 3}, "expected the specified symbol %q", ")")
	assert.EqualError(t, err, `parser error: expected the specified symbol ")"`)

	var tokErr *Error
	require.True(t, errors.As(err, &tokErr))
	assert.Equal(t, ParserError, tokErr.Kind)
	assert.Equal(t, 2, tokErr.Range.Start)
}
