package parser

import (
	"errors"
	"strings"

	"github.com/gnolang/xuan/ast"
	"github.com/gnolang/xuan/lexer"
	"github.com/gnolang/xuan/token"
)

const (
	placeholderOpen  = "{{"
	placeholderClose = "}}"
)

// parseTemplateString splits a template string token into its text
// fragments and the expressions of its {{...}} placeholders. Each
// placeholder is tokenized on its own and must hold exactly one expression.
func parseTemplateString(tok token.Token) (*ast.TemplateStringLiteral, error) {
	lit := &ast.TemplateStringLiteral{Loc: ast.Loc{Range: tok.Range}, Value: tok.Text}

	text := []rune(tok.Text)
	base := tok.Range.Start + 1 // after the opening backquote
	fragmentStart := 0
	for {
		open := indexRunes(text, fragmentStart, placeholderOpen)
		if open < 0 {
			break
		}
		inner := open + len(placeholderOpen)
		end := indexRunes(text, inner, placeholderClose)
		if end < 0 {
			r := token.Range{FileID: tok.Range.FileID, Start: base + open, End: base + len(text)}
			return nil, token.NewParserError(r, "expected template placeholder ending symbol")
		}

		expr, err := parsePlaceholder(tok.Range.FileID, string(text[inner:end]), base+inner)
		if err != nil {
			return nil, err
		}
		lit.Fragments = append(lit.Fragments, string(text[fragmentStart:open]))
		lit.Expressions = append(lit.Expressions, expr)
		fragmentStart = end + len(placeholderClose)
	}
	lit.Fragments = append(lit.Fragments, string(text[fragmentStart:]))

	return lit, nil
}

// parsePlaceholder parses src as one expression whose ranges start at
// offset in the enclosing file.
func parsePlaceholder(fileID int, src string, offset int) (ast.Expression, error) {
	tokens, err := lexer.TokenizeFile(fileID, src)
	if err != nil {
		var tokErr *token.Error
		if errors.As(err, &tokErr) {
			shifted := *tokErr
			shifted.Range = shift(shifted.Range, offset)
			return nil, &shifted
		}
		return nil, err
	}
	for i := range tokens {
		tokens[i].Range = shift(tokens[i].Range, offset)
	}

	c := cursor{tokens: tokens}.skipNewLines()
	if c.done() {
		r := token.Range{FileID: fileID, Start: offset, End: offset + len([]rune(src))}
		return nil, token.NewParserError(r, "expected template placeholder expression")
	}

	expr, c, err := parseExpression(c)
	if err != nil {
		return nil, err
	}
	if c = c.skipNewLines(); !c.done() {
		return nil, c.errorf("expected template placeholder ending symbol")
	}
	return expr, nil
}

func shift(r token.Range, offset int) token.Range {
	r.Start += offset
	r.End += offset
	return r
}

func indexRunes(text []rune, from int, needle string) int {
	if from > len(text) {
		return -1
	}
	i := strings.Index(string(text[from:]), needle)
	if i < 0 {
		return -1
	}
	return from + len([]rune(string(text[from:])[:i]))
}
