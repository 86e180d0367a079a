// Package parser builds the syntax tree of a xuan program from its tokens.
//
// The parser is a set of mutually recursive functions of the shape
//
//	func(c cursor) (node, cursor, error)
//
// Each function reads from an immutable cursor and returns the cursor left
// after the tokens it consumed. The first error aborts the whole parse; the
// only failure that is recovered is the speculative generic list after an
// identifier, which falls back to a less-than comparison.
package parser

import (
	"github.com/gnolang/xuan/ast"
	"github.com/gnolang/xuan/lexer"
	"github.com/gnolang/xuan/token"
)

// Parse builds a program from tokens.
func Parse(tokens []token.Token) (*ast.Program, error) {
	c := cursor{tokens: tokens}
	start := c

	var statements []ast.Statement
	for {
		c = c.skipNewLines()
		if c.done() {
			break
		}

		stmt, next, err := parseStatement(c)
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
		c = next
	}

	return &ast.Program{Loc: loc(start, c), Statements: statements}, nil
}

// ParseSource tokenizes and parses source as file 0.
func ParseSource(source string) (*ast.Program, error) {
	return ParseFile(0, source)
}

// ParseFile tokenizes and parses source, locating every node in fileID.
func ParseFile(fileID int, source string) (*ast.Program, error) {
	tokens, err := lexer.TokenizeFile(fileID, source)
	if err != nil {
		return nil, err
	}
	return Parse(tokens)
}

func parseStatement(c cursor) (ast.Statement, cursor, error) {
	attrs, c := parseAttributes(c)

	var (
		stmt ast.Statement
		err  error
	)
	switch c.peek().Kind {
	case token.Function, token.Empty, token.Pattern:
		stmt, c, err = parseFunctionDeclaration(c, attrs)
	case token.Use:
		stmt, c, err = parseUseDeclaration(c, attrs)
	case token.Const:
		stmt, c, err = parseConstDeclaration(c, attrs)
	case token.Struct:
		stmt, c, err = parseStructDeclaration(c, attrs)
	case token.Union:
		stmt, c, err = parseUnionDeclaration(c, attrs)
	case token.Trait:
		stmt, c, err = parseTraitDeclaration(c, attrs)
	case token.Impl:
		stmt, c, err = parseImplDeclaration(c, attrs)
	case token.Alias:
		stmt, c, err = parseAliasDeclaration(c, attrs)
	default:
		if len(attrs) > 0 {
			return nil, c, c.errorf("attribute must be followed by a declaration")
		}
		stmt, c, err = parseExpressionStatement(c)
	}
	if err != nil {
		return nil, c, err
	}

	c, err = consumeNewLineOrEOF(c)
	if err != nil {
		return nil, c, err
	}
	return stmt, c, nil
}

// parseAttributes collects the #[...] markers in front of a declaration.
func parseAttributes(c cursor) ([]string, cursor) {
	var attrs []string
	for c.is(token.Attribute) {
		attrs = append(attrs, c.peek().Text)
		c = c.next().skipNewLines()
	}
	return attrs, c
}

func parseExpressionStatement(c cursor) (ast.Statement, cursor, error) {
	start := c
	expr, c, err := parseExpression(c)
	if err != nil {
		return nil, c, err
	}
	return &ast.ExpressionStatement{Loc: loc(start, c), Expression: expr}, c, nil
}

func consumeNewLineOrEOF(c cursor) (cursor, error) {
	switch {
	case c.done():
		return c, nil
	case c.is(token.NewLine):
		return c.next(), nil
	default:
		return c, c.errorf("expected the new-line symbol")
	}
}
