package parser

import (
	"github.com/gnolang/xuan/ast"
	"github.com/gnolang/xuan/token"
)

func parsePrimary(c cursor) (ast.Expression, cursor, error) {
	switch c.peek().Kind {
	case token.Invalid:
		return nil, c, c.errorf("expected primary expression")
	case token.Fn:
		return parseAnonymousFunction(c)
	case token.LeftParen:
		return parseTupleOrParenthesized(c)
	case token.LeftBracket:
		return parseList(c)
	case token.LeftBrace:
		return parseMap(c)
	case token.Exclamation:
		return parsePrefixIdentifier(c)
	case token.Identifier:
		return parseIdentifier(c)
	case token.Sign:
		return parseSign(c)
	}
	return parseLiteral(c)
}

// parseIdentifier parses a name with an optional dir::dir:: path and an
// optional generic list. The generic list is speculative: when it does not
// parse, the `<` is left for the relational tier.
func parseIdentifier(c cursor) (*ast.Identifier, cursor, error) {
	start := c
	if !c.is(token.Identifier) {
		return nil, c, c.errorf("expected identifier")
	}

	names := []string{c.peek().Text}
	c = c.next()
	for c.is(token.Separator) {
		c = c.next()
		if !c.is(token.Identifier) {
			return nil, c, c.errorf("expected identifier")
		}
		names = append(names, c.peek().Text)
		c = c.next()
	}

	id := &ast.Identifier{Dirs: names[:len(names)-1], Name: names[len(names)-1]}
	if len(id.Dirs) == 0 {
		id.Dirs = nil
	}
	// A < that does not open a well-formed generic list is left to the
	// relational tier, so a malformed list reports its error there.
	if c.is(token.LessThan) {
		if generics, next, err := parseGenerics(c); err == nil {
			id.Generics = generics
			c = next
		}
	}

	id.Loc = loc(start, c)
	return id, c, nil
}

// parseGenerics parses <Type, Type>.
func parseGenerics(c cursor) ([]ast.DataType, cursor, error) {
	c, err := c.consume(token.LessThan)
	if err != nil {
		return nil, c, err
	}
	c = c.skipNewLines()

	var (
		generics  []ast.DataType
		expectEnd bool
	)
	for !c.is(token.GreaterThan) {
		if c.done() || expectEnd {
			return nil, c, c.errorf(`expected the right angle bracket symbol ">"`)
		}

		var typ ast.DataType
		if typ, c, err = parseDataType(c); err != nil {
			return nil, c, err
		}
		generics = append(generics, typ)

		if c.is(token.Comma) {
			c = c.next()
		} else {
			expectEnd = true
		}
		c = c.skipNewLines()
	}

	return generics, c.next(), nil
}

// parsePrefixIdentifier parses !name.
func parsePrefixIdentifier(c cursor) (ast.Expression, cursor, error) {
	start := c
	id, c, err := parseIdentifier(c.next())
	if err != nil {
		return nil, c, err
	}
	id.Prefix = true
	id.Loc = loc(start, c)
	return id, c, nil
}

// parseDataType parses a primary expression and checks that it names a
// type.
func parseDataType(c cursor) (ast.DataType, cursor, error) {
	start := c
	e, c, err := parsePrimary(c)
	if err != nil {
		return nil, c, err
	}
	typ, err := toDataType(start, e)
	if err != nil {
		return nil, c, err
	}
	return typ, c, nil
}

func toDataType(at cursor, e ast.Expression) (ast.DataType, error) {
	if typ, ok := e.(ast.DataType); ok {
		return typ, nil
	}
	return nil, at.errorf("invalid data type")
}

// isPlainName reports whether id is a single unqualified name.
func isPlainName(id *ast.Identifier) bool {
	return len(id.Dirs) == 0 && len(id.Generics) == 0 && !id.Prefix
}

// parseTupleOrParenthesized parses (a) as a, and (a,), (a, b) and () as
// tuples. A trailing ellipsis also makes a tuple.
func parseTupleOrParenthesized(c cursor) (ast.Expression, cursor, error) {
	start := c
	c = c.next().skipNewLines()

	var (
		elements  []ast.Expression
		isTuple   bool
		expectEnd bool
		err       error
	)
	for !c.is(token.RightParen) {
		if c.done() || expectEnd {
			return nil, c, c.errorf(`expected the right paren symbol ")"`)
		}

		var elem ast.Expression
		if c.is(token.Ellipsis) {
			elem, c = parseEllipsis(c)
			isTuple, expectEnd = true, true
			if c.is(token.Comma) {
				c = c.next()
			}
		} else {
			if elem, c, err = parseExpression(c); err != nil {
				return nil, c, err
			}
			if c.is(token.Comma) {
				isTuple = true
				c = c.next()
			} else {
				expectEnd = true
			}
		}
		elements = append(elements, elem)
		c = c.skipNewLines()
	}
	c = c.next()

	if len(elements) == 1 && !isTuple {
		return elements[0], c, nil
	}
	return &ast.TupleExpression{Loc: loc(start, c), Elements: elements}, c, nil
}

// parseList parses [a, b, ...rest] and [from..to]. An ellipsis or an
// interval must be the last element.
func parseList(c cursor) (ast.Expression, cursor, error) {
	start := c
	c = c.next().skipNewLines()

	var (
		elements  []ast.Expression
		expectEnd bool
		err       error
	)
	for !c.is(token.RightBracket) {
		if c.done() || expectEnd {
			return nil, c, c.errorf(`expected the right bracket symbol "]"`)
		}

		var elem ast.Expression
		if c.is(token.Ellipsis) {
			elem, c = parseEllipsis(c)
			expectEnd = true
		} else {
			from := c
			if elem, c, err = parseExpression(c); err != nil {
				return nil, c, err
			}
			if c.isAny(token.Interval, token.IntervalInclusive) {
				if elem, c, err = parseIntervalTail(from, c, elem); err != nil {
					return nil, c, err
				}
				expectEnd = true
			}
		}
		elements = append(elements, elem)

		if c.is(token.Comma) {
			c = c.next()
		} else {
			expectEnd = true
		}
		c = c.skipNewLines()
	}
	c = c.next()

	return &ast.ListExpression{Loc: loc(start, c), Elements: elements}, c, nil
}

// parseEllipsis parses ... or ...name.
func parseEllipsis(c cursor) (*ast.EllipsisExpression, cursor) {
	start := c
	e := &ast.EllipsisExpression{}
	c = c.next()
	if c.is(token.Identifier) {
		e.Name = c.peek().Text
		c = c.next()
	}
	e.Loc = loc(start, c)
	return e, c
}

// parseMap parses {key: value, shorthand, ...rest}. Entries are separated by
// commas or newlines.
func parseMap(c cursor) (*ast.MapExpression, cursor, error) {
	start := c
	c, err := c.consume(token.LeftBrace)
	if err != nil {
		return nil, c, err
	}
	c = c.skipNewLines()

	var (
		entries   []*ast.MapEntry
		expectEnd bool
	)
	for !c.is(token.RightBrace) {
		if c.done() || expectEnd {
			return nil, c, c.errorf(`expected the right brace symbol "}"`)
		}

		entryStart := c
		entry := &ast.MapEntry{}
		if c.is(token.Ellipsis) {
			entry.Key, c = parseEllipsis(c)
			entry.Loc = loc(entryStart, c)
			entries = append(entries, entry)
			expectEnd = true
			if c.is(token.Comma) {
				c = c.next()
			}
			c = c.skipNewLines()
			continue
		}

		if entry.Key, c, err = parseExpression(c); err != nil {
			return nil, c, err
		}
		if c.is(token.Colon) {
			if entry.Value, c, err = parseExpression(c.next().skipNewLines()); err != nil {
				return nil, c, err
			}
		}
		entry.Loc = loc(entryStart, c)
		entries = append(entries, entry)

		c, expectEnd = skipSeparator(c)
	}
	c = c.next()

	return &ast.MapExpression{Loc: loc(start, c), Entries: entries}, c, nil
}

// parseAnonymousFunction parses
//
//	fn (a, Type b) [type T] [which ...] [=] body
//	fn a [=] body
func parseAnonymousFunction(c cursor) (ast.Expression, cursor, error) {
	start := c
	fn := &ast.AnonymousFunction{}
	c = c.next().skipNewLines()

	var err error
	switch {
	case c.is(token.LeftParen):
		if fn.Parameters, c, err = parseAnonymousParameters(c); err != nil {
			return nil, c, err
		}
	case c.is(token.Identifier):
		fn.Parameters = []*ast.Parameter{{Loc: loc(c, c.next()), Name: c.peek().Text}}
		c = c.next()
	default:
		return nil, c, c.errorf("expected anonymous function parameter")
	}

	if fn.ReturnType, fn.Which, c, err = parseSignatureTail(c); err != nil {
		return nil, c, err
	}
	if fn.Body, c, err = parseFunctionBody(c); err != nil {
		return nil, c, err
	}

	fn.Loc = loc(start, c)
	return fn, c, nil
}

// parseAnonymousParameters parses (a, Type b). The type of a parameter is
// optional.
func parseAnonymousParameters(c cursor) ([]*ast.Parameter, cursor, error) {
	c = c.next().skipNewLines()

	var (
		params    []*ast.Parameter
		expectEnd bool
	)
	for !c.is(token.RightParen) {
		if c.done() || expectEnd {
			return nil, c, c.errorf(`expected the right paren symbol ")"`)
		}

		start := c
		head, next, err := parseExpression(c)
		if err != nil {
			return nil, next, err
		}
		c = next

		param := &ast.Parameter{}
		switch {
		case c.isAny(token.Comma, token.RightParen):
			id, ok := head.(*ast.Identifier)
			if !ok || !isPlainName(id) {
				return nil, c, start.errorf("invalid anonymous function parameter name")
			}
			param.Name = id.Name
		case c.is(token.Identifier):
			if param.Type, err = toDataType(start, head); err != nil {
				return nil, c, err
			}
			param.Name = c.peek().Text
			c = c.next()
		default:
			return nil, c, c.errorf("incomplete anonymous function parameter")
		}
		param.Loc = loc(start, c)
		params = append(params, param)

		if c.is(token.Comma) {
			c = c.next()
		} else {
			expectEnd = true
		}
		c = c.skipNewLines()
	}

	return params, c.next(), nil
}

// parseSign parses a function type: sign <T> (Type [name], ...) [type T] [which ...].
func parseSign(c cursor) (ast.Expression, cursor, error) {
	start := c
	sign := &ast.SignExpression{}
	c = c.next().skipNewLines()

	var err error
	if c.is(token.LessThan) {
		if sign.Generics, c, err = parseGenerics(c); err != nil {
			return nil, c, err
		}
		c = c.skipNewLines()
	}

	if c, err = c.consume(token.LeftParen); err != nil {
		return nil, c, err
	}
	c = c.skipNewLines()

	expectEnd := false
	for !c.is(token.RightParen) {
		if c.done() || expectEnd {
			return nil, c, c.errorf(`expected the right paren symbol ")"`)
		}

		paramStart := c
		param := &ast.Parameter{}
		var typ ast.Expression
		if typ, c, err = parseExpression(c); err != nil {
			return nil, c, err
		}
		if param.Type, err = toDataType(paramStart, typ); err != nil {
			return nil, c, err
		}

		switch {
		case c.isAny(token.Comma, token.RightParen):
		case c.is(token.Identifier):
			param.Name = c.peek().Text
			c = c.next()
		default:
			return nil, c, c.errorf("incomplete function parameter")
		}
		param.Loc = loc(paramStart, c)
		sign.Parameters = append(sign.Parameters, param)

		if c.is(token.Comma) {
			c = c.next()
		} else {
			expectEnd = true
		}
		c = c.skipNewLines()
	}
	c = c.next()

	if sign.ReturnType, sign.Which, c, err = parseSignatureTail(c); err != nil {
		return nil, c, err
	}

	sign.Loc = loc(start, c)
	return sign, c, nil
}

// isPattern reports whether e may stand on the left of a binding or as a
// match case pattern.
func isPattern(e ast.Expression) bool {
	switch e := e.(type) {
	case *ast.Identifier, ast.Literal, *ast.EllipsisExpression:
		return true
	case *ast.TupleExpression:
		return allPatterns(e.Elements)
	case *ast.ListExpression:
		return allPatterns(e.Elements)
	case *ast.MapExpression:
		return isMapPattern(e)
	case *ast.ConstructorExpression:
		return isMapPattern(e.Value)
	case *ast.CallExpression:
		if _, ok := e.Callee.(*ast.Identifier); !ok {
			return false
		}
		for _, a := range e.Arguments {
			if !isPattern(a.Value) {
				return false
			}
		}
		return true
	}
	return false
}

// isCasePattern reports whether e may stand as a match case pattern. On top
// of binding patterns, a case may name a qualified variant such as
// Color.Red, or destructure one as in Shape.Circle(r).
func isCasePattern(e ast.Expression) bool {
	if isPattern(e) || isQualifiedName(e) {
		return true
	}
	call, ok := e.(*ast.CallExpression)
	if !ok || !isQualifiedName(call.Callee) {
		return false
	}
	for _, a := range call.Arguments {
		if !isCasePattern(a.Value) {
			return false
		}
	}
	return true
}

// isQualifiedName reports whether e is an identifier or a chain of
// property accesses on one, like a.b.c.
func isQualifiedName(e ast.Expression) bool {
	switch e := e.(type) {
	case *ast.Identifier:
		return true
	case *ast.MemberExpression:
		if e.Index {
			return false
		}
		if _, ok := e.Property.(*ast.Identifier); !ok {
			return false
		}
		return isQualifiedName(e.Object)
	}
	return false
}

func allPatterns(elements []ast.Expression) bool {
	for _, e := range elements {
		if _, ok := e.(*ast.IntervalExpression); ok {
			continue
		}
		if !isPattern(e) {
			return false
		}
	}
	return true
}

func isMapPattern(m *ast.MapExpression) bool {
	for _, entry := range m.Entries {
		v := entry.Value
		if v == nil {
			v = entry.Key
		}
		if !isPattern(v) {
			return false
		}
	}
	return true
}
