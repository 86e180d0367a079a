package parser

import (
	"github.com/gnolang/xuan/ast"
	"github.com/gnolang/xuan/token"
)

// cursor is a read-only view over the tokens that remain to be parsed.
// Parse functions take a cursor and return the cursor positioned after what
// they consumed, so backtracking is keeping an earlier cursor.
type cursor struct {
	tokens []token.Token
	pos    int
}

func (c cursor) done() bool { return c.pos >= len(c.tokens) }

// peek returns the current token. At the end of input it returns an Invalid
// token located just after the last token.
func (c cursor) peek() token.Token {
	if c.done() {
		return token.Token{Kind: token.Invalid, Range: c.endRange()}
	}
	return c.tokens[c.pos]
}

func (c cursor) endRange() token.Range {
	if len(c.tokens) == 0 {
		return token.Range{}
	}
	last := c.tokens[len(c.tokens)-1].Range
	return token.Range{FileID: last.FileID, Start: last.End, End: last.End}
}

func (c cursor) next() cursor {
	if !c.done() {
		c.pos++
	}
	return c
}

func (c cursor) is(kind token.Kind) bool {
	return !c.done() && c.tokens[c.pos].Kind == kind
}

func (c cursor) isAny(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if c.is(k) {
			return true
		}
	}
	return false
}

func (c cursor) skipNewLines() cursor {
	for c.is(token.NewLine) {
		c.pos++
	}
	return c
}

func (c cursor) isIgnoringNewLines(kind token.Kind) bool {
	return c.skipNewLines().is(kind)
}

// consume expects the current token to be of kind and steps over it.
func (c cursor) consume(kind token.Kind) (cursor, error) {
	if !c.is(kind) {
		return c, c.errorf("expected the specified symbol %q", kind.String())
	}
	return c.next(), nil
}

// consumeIgnoringNewLines skips newlines and then consumes kind.
func (c cursor) consumeIgnoringNewLines(kind token.Kind) (cursor, error) {
	return c.skipNewLines().consume(kind)
}

// errorf returns a parser error located at the current token.
func (c cursor) errorf(format string, args ...any) error {
	return token.NewParserError(c.peek().Range, format, args...)
}

// loc returns the location covering the tokens between from and c.
func loc(from, c cursor) ast.Loc {
	if c.pos <= from.pos {
		return ast.Loc{Range: from.peek().Range}
	}
	first := from.tokens[from.pos].Range
	return ast.Loc{Range: first.Join(from.tokens[c.pos-1].Range)}
}
