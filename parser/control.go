package parser

import (
	"github.com/gnolang/xuan/ast"
	"github.com/gnolang/xuan/token"
)

// parseBlock parses `do {...}` and `join {...}`.
func parseBlock(c cursor, kind ast.BlockKind) (ast.Expression, cursor, error) {
	start := c
	items, c, err := parseBlockItems(c.next().skipNewLines())
	if err != nil {
		return nil, c, err
	}
	return &ast.BlockExpression{Loc: loc(start, c), Kind: kind, Expressions: items}, c, nil
}

// parseBlockItems parses {a, b \n c}. Items are separated by commas or
// newlines.
func parseBlockItems(c cursor) ([]ast.Expression, cursor, error) {
	c, err := c.consume(token.LeftBrace)
	if err != nil {
		return nil, c, err
	}
	c = c.skipNewLines()

	var items []ast.Expression
	for !c.is(token.RightBrace) {
		if c.done() {
			return nil, c, c.errorf(`expected the right brace symbol "}"`)
		}

		var item ast.Expression
		if item, c, err = parseExpression(c); err != nil {
			return nil, c, err
		}
		items = append(items, item)

		switch {
		case c.is(token.Comma):
			c = c.next()
		case c.isAny(token.NewLine, token.RightBrace):
		default:
			return nil, c, c.errorf("expected the new-line symbol")
		}
		c = c.skipNewLines()
	}

	return items, c.next(), nil
}

// parseBlockOrExpression parses the body of then, else, where, only, loops,
// cases and functions: a brace opens an implicit block rather than a map.
func parseBlockOrExpression(c cursor) (ast.Expression, cursor, error) {
	switch {
	case c.done():
		return nil, c, c.errorf("expected an expression or an expression block")
	case c.is(token.LeftBrace):
		start := c
		items, c, err := parseBlockItems(c)
		if err != nil {
			return nil, c, err
		}
		return &ast.BlockExpression{Loc: loc(start, c), Kind: ast.ImplicitBlock, Expressions: items}, c, nil
	}
	return parseExpression(c)
}

func parseLet(c cursor) (ast.Expression, cursor, error) {
	return parseBinding(c, parseExpression)
}

// parseBinding parses `let [Type] pattern = value`, reading the value with
// parseValue. A type is present when the first mono expression is not
// followed by `=`.
func parseBinding(c cursor, parseValue parseFunc) (*ast.LetExpression, cursor, error) {
	start := c
	c, err := c.consume(token.Let)
	if err != nil {
		return nil, c, err
	}
	c = c.skipNewLines()

	let := &ast.LetExpression{}
	lhsStart := c
	if let.Left, c, err = parseMono(c); err != nil {
		return nil, c, err
	}
	if !c.isIgnoringNewLines(token.Assign) {
		if let.Type, err = toDataType(lhsStart, let.Left); err != nil {
			return nil, c, err
		}
		lhsStart = c
		if let.Left, c, err = parsePrimary(c); err != nil {
			return nil, c, err
		}
	}
	if !isPattern(let.Left) {
		return nil, c, lhsStart.errorf("invalid left-hand-side value")
	}

	if c, err = c.consumeIgnoringNewLines(token.Assign); err != nil {
		return nil, c, err
	}
	if let.Right, c, err = parseValue(c.skipNewLines()); err != nil {
		return nil, c, err
	}

	let.Loc = loc(start, c)
	return let, c, nil
}

// parseSubject parses the expression in front of a loop or match body. A
// bare identifier followed by `{` stays a plain identifier so that the brace
// opens the body instead of a constructor.
func parseSubject(c cursor) (ast.Expression, cursor, error) {
	if c.is(token.Identifier) {
		if id, next, err := parseIdentifier(c); err == nil && next.is(token.LeftBrace) {
			return id, next, nil
		}
	}
	return parseExpression(c)
}

// parseIf parses if test [where guard] then consequent [else alternative].
func parseIf(c cursor) (ast.Expression, cursor, error) {
	start := c
	expr := &ast.IfExpression{}

	var err error
	if expr.Test, c, err = parseExpression(c.next().skipNewLines()); err != nil {
		return nil, c, err
	}
	if c.isIgnoringNewLines(token.Where) {
		if expr.Where, c, err = parseGuard(c.skipNewLines()); err != nil {
			return nil, c, err
		}
	}

	if c, err = c.consumeIgnoringNewLines(token.Then); err != nil {
		return nil, c, err
	}
	if expr.Consequent, c, err = parseBlockOrExpression(c.skipNewLines()); err != nil {
		return nil, c, err
	}

	if c.isIgnoringNewLines(token.Else) {
		c = c.skipNewLines().next().skipNewLines()
		if expr.Alternative, c, err = parseBlockOrExpression(c); err != nil {
			return nil, c, err
		}
	}

	expr.Loc = loc(start, c)
	return expr, c, nil
}

// parseGuard parses the `where` or `only` keyword and the expression or
// block after it.
func parseGuard(c cursor) (ast.Expression, cursor, error) {
	return parseBlockOrExpression(c.next().skipNewLines())
}

// parseFor parses for let [Type] pattern = value body.
func parseFor(c cursor) (ast.Expression, cursor, error) {
	start := c
	expr := &ast.ForExpression{}

	var err error
	if expr.Initializer, c, err = parseBinding(c.next().skipNewLines(), parseSubject); err != nil {
		return nil, c, err
	}
	if expr.Body, c, err = parseBlockOrExpression(c.skipNewLines()); err != nil {
		return nil, c, err
	}

	expr.Loc = loc(start, c)
	return expr, c, nil
}

func parseNext(c cursor) (ast.Expression, cursor, error) {
	start := c
	value, c, err := parseExpression(c.next().skipNewLines())
	if err != nil {
		return nil, c, err
	}
	return &ast.NextExpression{Loc: loc(start, c), Value: value}, c, nil
}

// parseEach parses each variable in object body.
func parseEach(c cursor) (ast.Expression, cursor, error) {
	start := c
	expr := &ast.EachExpression{}
	c = c.next().skipNewLines()

	varStart := c
	var err error
	if expr.Variable, c, err = parseMono(c); err != nil {
		return nil, c, err
	}
	if !isPattern(expr.Variable) {
		return nil, c, varStart.errorf("invalid left-hand-side value")
	}

	if c, err = c.consumeIgnoringNewLines(token.In); err != nil {
		return nil, c, err
	}
	if expr.Object, c, err = parseSubject(c.skipNewLines()); err != nil {
		return nil, c, err
	}
	if expr.Body, c, err = parseBlockOrExpression(c.skipNewLines()); err != nil {
		return nil, c, err
	}

	expr.Loc = loc(start, c)
	return expr, c, nil
}

// parseBranch parses branch [where guard] { case test [where guard]: c ... default: d }.
func parseBranch(c cursor) (ast.Expression, cursor, error) {
	start := c
	expr := &ast.BranchExpression{}
	c = c.next().skipNewLines()

	var err error
	if c.is(token.Where) {
		if expr.Where, c, err = parseGuard(c); err != nil {
			return nil, c, err
		}
		c = c.skipNewLines()
	}

	c, err = parseCaseList(c, "invalid branch expression", func(c cursor) (cursor, error) {
		bc, c, err := parseBranchCase(c)
		if err != nil {
			return c, err
		}
		expr.Cases = append(expr.Cases, bc)
		return c, nil
	}, &expr.Default)
	if err != nil {
		return nil, c, err
	}

	expr.Loc = loc(start, c)
	return expr, c, nil
}

func parseBranchCase(c cursor) (*ast.BranchCase, cursor, error) {
	start := c
	bc := &ast.BranchCase{}

	var err error
	if bc.Test, c, err = parseExpression(c.next().skipNewLines()); err != nil {
		return nil, c, err
	}
	if c.isIgnoringNewLines(token.Where) {
		if bc.Where, c, err = parseGuard(c.skipNewLines()); err != nil {
			return nil, c, err
		}
	}
	if c, err = c.consumeIgnoringNewLines(token.Colon); err != nil {
		return nil, c, err
	}
	if bc.Consequent, c, err = parseBlockOrExpression(c.skipNewLines()); err != nil {
		return nil, c, err
	}

	bc.Loc = loc(start, c)
	return bc, c, nil
}

// parseCaseList parses the braced case list shared by branch and match.
// parseCase is called on each `case` token; the consequent of `default` is
// stored in def. No case may follow the default.
func parseCaseList(c cursor, invalid string, parseCase func(cursor) (cursor, error), def *ast.Expression) (cursor, error) {
	c, err := c.consume(token.LeftBrace)
	if err != nil {
		return c, err
	}
	c = c.skipNewLines()

	expectEnd := false
	for !c.is(token.RightBrace) {
		if c.done() || expectEnd {
			return c, c.errorf(`expected the right brace symbol "}"`)
		}

		switch {
		case c.is(token.Case):
			c, err = parseCase(c)
		case c.is(token.Default):
			c, err = c.next().consume(token.Colon)
			if err == nil {
				*def, c, err = parseBlockOrExpression(c.skipNewLines())
			}
			expectEnd = true
		default:
			return c, c.errorf("%s", invalid)
		}
		if err != nil {
			return c, err
		}

		if c.is(token.Comma) {
			c = c.next()
		}
		c = c.skipNewLines()
	}

	return c.next(), nil
}
