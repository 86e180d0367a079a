package parser

import (
	"github.com/gnolang/xuan/ast"
	"github.com/gnolang/xuan/token"
)

// parseLiteral parses a single literal token. An integer or float followed
// by `+` and an imaginary is fused into one complex literal.
func parseLiteral(c cursor) (ast.Expression, cursor, error) {
	start := c
	tok := c.peek()
	c = c.next()

	if tok.Kind == token.Integer || tok.Kind == token.Float {
		if c.is(token.Plus) && c.next().is(token.Imaginary) {
			re := tok.Float
			if tok.Kind == token.Integer {
				re = float64(tok.Int)
			}
			im := c.next().peek().Float
			c = c.next().next()
			return &ast.ComplexLiteral{Loc: loc(start, c), Real: re, Imaginary: im}, c, nil
		}
	}

	l := loc(start, c)
	switch tok.Kind {
	case token.Integer:
		return &ast.IntegerLiteral{Loc: l, Value: tok.Int}, c, nil
	case token.Float:
		return &ast.FloatLiteral{Loc: l, Value: tok.Float}, c, nil
	case token.Imaginary:
		return &ast.ComplexLiteral{Loc: l, Imaginary: tok.Float}, c, nil
	case token.Bit:
		return &ast.BitLiteral{Loc: l, Width: tok.Width, Bytes: tok.Bytes}, c, nil
	case token.Boolean:
		return &ast.BooleanLiteral{Loc: l, Value: tok.Bool}, c, nil
	case token.Char:
		return &ast.CharLiteral{Loc: l, Value: tok.Char, Text: tok.Text}, c, nil
	case token.String:
		return &ast.StringLiteral{Loc: l, Value: tok.Text}, c, nil
	case token.RawString:
		return &ast.StringLiteral{Loc: l, Value: tok.Text, Raw: true}, c, nil
	case token.TemplateString:
		tmpl, err := parseTemplateString(tok)
		if err != nil {
			return nil, c, err
		}
		return tmpl, c, nil
	case token.HashString:
		return &ast.HashStringLiteral{Loc: l, Value: tok.Text}, c, nil
	case token.NamedOperator:
		return &ast.NamedOperatorLiteral{Loc: l, Value: tok.Text}, c, nil
	}
	return nil, start, start.errorf("invalid literal")
}
