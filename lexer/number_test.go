package lexer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnolang/xuan/token"
)

func TestNumbers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		kind  token.Kind
		want  string
	}{
		{"123", token.Integer, "123"},
		{"1_234", token.Integer, "1234"},
		{"0", token.Integer, "0"},
		{"3.14", token.Float, "3.14"},
		{"0.5", token.Float, "0.5"},
		{"1_000.000_1", token.Float, "1000.0001"},
		{"5e2", token.Float, "500"},
		{"3.14e2", token.Float, "314"},
		{"1.6e-2", token.Float, "0.016"},
		{"5i", token.Imaginary, "5i"},
		{"3.14i", token.Imaginary, "3.14i"},
		{"1.6e-2i", token.Imaginary, "0.016i"},
		{"0x1F", token.Integer, "31"},
		{"0xff_ff", token.Integer, "65535"},
		{"0b101", token.Integer, "5"},
		{"16'x08cd", token.Bit, "16'x08cd"},
		{"8'b10000001", token.Bit, "8'x81"},
		{"4'b1", token.Bit, "4'x01"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			tokens, err := Tokenize(tt.input)
			require.NoError(t, err)
			require.Len(t, tokens, 1)
			assert.Equal(t, tt.kind, tokens[0].Kind)
			assert.Equal(t, tt.want, tokens[0].String())
			assert.Equal(t, len([]rune(tt.input)), tokens[0].Range.End)
		})
	}
}

func TestNumberFollowedByRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  []string
	}{
		{"1..10", []string{"1", "..", "10"}},
		{"0..5", []string{"0", "..", "5"}},
		{"1..=9", []string{"1", "..=", "9"}},
		{"1.5..2", []string{"1.5", "..", "2"}},
		{"1e2..3", []string{"100", "..", "3"}},
		{"1+2i", []string{"1", "+", "2i"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			tokens, err := Tokenize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, tokenStrings(tokens))
		})
	}
}

func TestBitBytes(t *testing.T) {
	t.Parallel()

	tokens, err := Tokenize("12'xabc")
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, 12, tokens[0].Width)
	assert.Equal(t, []byte{0x0a, 0xbc}, tokens[0].Bytes)
}

func TestNumberErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		message string
	}{
		{"01", "invalid identifier"},
		{"0abc", "invalid identifier"},
		{"1.2.3", "invalid float number"},
		{"1.2'x1", "invalid bit number"},
		{"1e2.5", "invalid float exponent"},
		{"1e2e3", "invalid exponent number"},
		{"1e-2-3", "invalid exponent number"},
		{"5e", "invalid float number"},
		{"99999999999999999999", "invalid integer number"},
		{"0x", "invalid hex number"},
		{"0xfg", "invalid hex number"},
		{"0b12", "invalid binary number"},
		{"8'q1", "invalid bit number"},
		{"8'x", "invalid bit number"},
		{"4'b11111", "bit number overflows its width"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			_, err := Tokenize(tt.input)
			require.Error(t, err)

			var tokErr *token.Error
			require.True(t, errors.As(err, &tokErr))
			assert.Equal(t, tt.message, tokErr.Message)
		})
	}
}
