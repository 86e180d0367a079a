package parser

import (
	"github.com/gnolang/xuan/ast"
	"github.com/gnolang/xuan/token"
)

// parseMatch parses match object [where guard] { case ...: ... default: ... }.
func parseMatch(c cursor) (ast.Expression, cursor, error) {
	start := c
	expr := &ast.MatchExpression{}

	var err error
	if expr.Object, c, err = parseSubject(c.next().skipNewLines()); err != nil {
		return nil, c, err
	}
	c = c.skipNewLines()

	if c.is(token.Where) {
		if expr.Where, c, err = parseGuard(c); err != nil {
			return nil, c, err
		}
		c = c.skipNewLines()
	}

	c, err = parseCaseList(c, "invalid match expression", func(c cursor) (cursor, error) {
		mc, c, err := parseMatchCase(c)
		if err != nil {
			return c, err
		}
		expr.Cases = append(expr.Cases, mc)
		return c, nil
	}, &expr.Default)
	if err != nil {
		return nil, c, err
	}

	expr.Loc = loc(start, c)
	return expr, c, nil
}

// parseMatchCase parses
//
//	case [name @] [pattern] [only guard] [where guard]: consequent
func parseMatchCase(c cursor) (*ast.MatchCase, cursor, error) {
	start := c
	mc := &ast.MatchCase{}
	c = c.next().skipNewLines()

	if c.isAny(token.Only, token.Where) {
		return nil, c, c.errorf("invalid match case expression")
	}

	if c.is(token.Identifier) {
		if id, next, err := parseIdentifier(c); err == nil && isPlainName(id) && next.is(token.At) {
			mc.Variable = id.Name
			c = next.next().skipNewLines()
		}
	}

	var err error
	if !c.isAny(token.Only, token.Where, token.Colon) {
		if mc.Pattern, c, err = parsePattern(c); err != nil {
			return nil, c, err
		}
	}
	c = c.skipNewLines()

	for c.isAny(token.Only, token.Where) {
		guard := &mc.Where
		if c.is(token.Only) {
			guard = &mc.Only
		}
		if *guard, c, err = parseGuard(c); err != nil {
			return nil, c, err
		}
		c = c.skipNewLines()
	}

	if c, err = c.consume(token.Colon); err != nil {
		return nil, c, err
	}
	if mc.Consequent, c, err = parseBlockOrExpression(c.skipNewLines()); err != nil {
		return nil, c, err
	}

	mc.Loc = loc(start, c)
	return mc, c, nil
}

func parsePattern(c cursor) (ast.Pattern, cursor, error) {
	switch c.peek().Kind {
	case token.In:
		return parseInPattern(c)
	case token.Into:
		return parseIntoPattern(c)
	case token.Regular:
		return parseRegularPattern(c)
	case token.Template:
		return parseTemplatePattern(c)
	}

	start := c
	value, c, err := parseMono(c)
	if err != nil {
		return nil, c, err
	}
	if !isCasePattern(value) {
		return nil, c, start.errorf("invalid pattern expression")
	}
	return &ast.PrimaryPattern{Loc: loc(start, c), Value: value}, c, nil
}

func parseInPattern(c cursor) (ast.Pattern, cursor, error) {
	start := c
	object, c, err := parsePrimary(c.next().skipNewLines())
	if err != nil {
		return nil, c, err
	}
	return &ast.InPattern{Loc: loc(start, c), Object: object}, c, nil
}

// parseIntoPattern parses into Type name.
func parseIntoPattern(c cursor) (ast.Pattern, cursor, error) {
	start := c
	typ, c, err := parseDataType(c.next().skipNewLines())
	if err != nil {
		return nil, c, err
	}

	at := c
	name, c, err := parsePrimary(c)
	if err != nil {
		return nil, c, err
	}
	id, ok := name.(*ast.Identifier)
	if !ok || !isPlainName(id) {
		return nil, c, at.errorf("invalid into pattern expression")
	}
	return &ast.IntoPattern{Loc: loc(start, c), Type: typ, Name: id.Name}, c, nil
}

// parseRegularPattern parses regular "text" (captures,).
func parseRegularPattern(c cursor) (ast.Pattern, cursor, error) {
	start := c
	text, c, err := parsePatternString(c.next().skipNewLines(),
		"invalid regular string", "invalid regular pattern expression")
	if err != nil {
		return nil, c, err
	}

	at := c.skipNewLines()
	captures, c, err := parsePrimary(at)
	if err != nil {
		return nil, c, err
	}
	tuple, ok := captures.(*ast.TupleExpression)
	if !ok {
		return nil, c, at.errorf("invalid regular pattern expression")
	}
	return &ast.RegularPattern{Loc: loc(start, c), Pattern: text, Captures: tuple}, c, nil
}

func parseTemplatePattern(c cursor) (ast.Pattern, cursor, error) {
	start := c
	text, c, err := parsePatternString(c.next().skipNewLines(),
		"invalid template string", "invalid template pattern expression")
	if err != nil {
		return nil, c, err
	}
	return &ast.TemplatePattern{Loc: loc(start, c), Template: text}, c, nil
}

// parsePatternString reads the text of a regular or template pattern: a
// plain string, or a template string without placeholders.
func parsePatternString(c cursor, invalidTemplate, invalid string) (string, cursor, error) {
	start := c
	e, c, err := parsePrimary(c)
	if err != nil {
		return "", c, err
	}

	switch s := e.(type) {
	case *ast.StringLiteral:
		return s.Value, c, nil
	case *ast.TemplateStringLiteral:
		if len(s.Expressions) > 0 {
			return "", c, start.errorf("%s", invalidTemplate)
		}
		return s.Value, c, nil
	}
	return "", c, start.errorf("%s", invalid)
}
