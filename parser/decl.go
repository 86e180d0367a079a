package parser

import (
	"github.com/gnolang/xuan/ast"
	"github.com/gnolang/xuan/token"
)

// parseFunctionDeclaration parses
//
//	[empty|pattern] function name<T> (Type a, Type b = default) [type T] [which ...] [=] body
//
// An empty function has no body.
func parseFunctionDeclaration(c cursor, attrs []string) (*ast.FunctionDeclaration, cursor, error) {
	start := c
	decl := &ast.FunctionDeclaration{Attributes: attrs, Kind: ast.RegularFunction}

	switch {
	case c.is(token.Empty):
		decl.Kind = ast.EmptyFunction
		c = c.next().skipNewLines()
	case c.is(token.Pattern):
		decl.Kind = ast.PatternFunction
		c = c.next().skipNewLines()
	}

	var err error
	if c, err = c.consume(token.Function); err != nil {
		return nil, c, err
	}
	c = c.skipNewLines()

	if decl.Name, c, err = parseIdentifier(c); err != nil {
		return nil, c, err
	}
	c = c.skipNewLines()

	if decl.Parameters, c, err = parseParameters(c); err != nil {
		return nil, c, err
	}
	if decl.ReturnType, decl.Which, c, err = parseSignatureTail(c); err != nil {
		return nil, c, err
	}

	if decl.Kind != ast.EmptyFunction {
		if decl.Body, c, err = parseFunctionBody(c); err != nil {
			return nil, c, err
		}
	}

	decl.Loc = loc(start, c)
	return decl, c, nil
}

// parseParameters parses the parenthesized parameter list of a declared
// function. Every parameter is a data type followed by a name.
func parseParameters(c cursor) ([]*ast.Parameter, cursor, error) {
	c, err := c.consume(token.LeftParen)
	if err != nil {
		return nil, c, err
	}
	c = c.skipNewLines()

	var (
		params    []*ast.Parameter
		expectEnd bool
	)
	for !c.is(token.RightParen) {
		if c.done() || expectEnd {
			return nil, c, c.errorf(`expected the right paren symbol ")"`)
		}

		start := c
		param := &ast.Parameter{}
		var typ ast.Expression
		if typ, c, err = parseExpression(c); err != nil {
			return nil, c, err
		}
		if param.Type, err = toDataType(start, typ); err != nil {
			return nil, c, err
		}

		if !c.is(token.Identifier) {
			return nil, c, c.errorf("incomplete function parameter")
		}
		param.Name = c.peek().Text
		c = c.next()

		if c.is(token.Assign) {
			if param.Default, c, err = parseExpression(c.next().skipNewLines()); err != nil {
				return nil, c, err
			}
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

// parseSignatureTail parses the optional `type T` and `which ...` clauses
// that follow a parameter list, in any order.
func parseSignatureTail(c cursor) (ret ast.DataType, which *ast.WhichClause, _ cursor, err error) {
	for {
		switch {
		case c.isIgnoringNewLines(token.Type):
			ret, c, err = parseTypeAnnotation(c.skipNewLines())
		case c.isIgnoringNewLines(token.Which):
			which, c, err = parseWhich(c.skipNewLines())
		default:
			return ret, which, c, nil
		}
		if err != nil {
			return nil, nil, c, err
		}
	}
}

func parseTypeAnnotation(c cursor) (ast.DataType, cursor, error) {
	c, err := c.consume(token.Type)
	if err != nil {
		return nil, c, err
	}
	return parseDataType(c.skipNewLines())
}

// parseFunctionBody parses `= expression`, `= {...}` or `{...}`.
func parseFunctionBody(c cursor) (ast.Expression, cursor, error) {
	if c.isIgnoringNewLines(token.Assign) {
		c = c.skipNewLines().next()
	}
	return parseBlockOrExpression(c.skipNewLines())
}

func parseUseDeclaration(c cursor, attrs []string) (*ast.UseDeclaration, cursor, error) {
	start := c
	c, err := c.consume(token.Use)
	if err != nil {
		return nil, c, err
	}

	path, c, err := parseIdentifier(c.skipNewLines())
	if err != nil {
		return nil, c, err
	}
	return &ast.UseDeclaration{Loc: loc(start, c), Attributes: attrs, Path: path}, c, nil
}

// parseConstDeclaration parses `const [Type] NAME = value`. The type is
// present when the first expression is not directly followed by `=`.
func parseConstDeclaration(c cursor, attrs []string) (*ast.ConstDeclaration, cursor, error) {
	start := c
	c, err := c.consume(token.Const)
	if err != nil {
		return nil, c, err
	}
	c = c.skipNewLines()

	decl := &ast.ConstDeclaration{Attributes: attrs}
	first := c
	head, c, err := parseMono(c)
	if err != nil {
		return nil, c, err
	}

	if c.isIgnoringNewLines(token.Assign) {
		id, ok := head.(*ast.Identifier)
		if !ok || !isPlainName(id) {
			return nil, c, first.errorf("invalid constant name")
		}
		decl.Name = id.Name
	} else {
		if decl.Type, err = toDataType(first, head); err != nil {
			return nil, c, err
		}
		if !c.is(token.Identifier) {
			return nil, c, c.errorf("invalid constant name")
		}
		decl.Name = c.peek().Text
		c = c.next()
	}

	if c, err = c.consumeIgnoringNewLines(token.Assign); err != nil {
		return nil, c, err
	}
	if decl.Value, c, err = parseExpression(c.skipNewLines()); err != nil {
		return nil, c, err
	}

	decl.Loc = loc(start, c)
	return decl, c, nil
}

func parseStructDeclaration(c cursor, attrs []string) (*ast.StructDeclaration, cursor, error) {
	start := c
	c, err := c.consume(token.Struct)
	if err != nil {
		return nil, c, err
	}

	decl, c, err := parseStructShape(start, c.skipNewLines())
	if err != nil {
		return nil, c, err
	}
	decl.Attributes = attrs
	return decl, c, nil
}

// parseStructShape parses a struct name followed by its member list, its
// tuple element list or nothing. Union variants share the same shape.
func parseStructShape(start, c cursor) (*ast.StructDeclaration, cursor, error) {
	decl := &ast.StructDeclaration{Kind: ast.UnitStruct}

	var err error
	if decl.Name, c, err = parseIdentifier(c); err != nil {
		return nil, c, err
	}

	switch {
	case c.is(token.LeftBrace):
		decl.Kind = ast.MemberStruct
		decl.Members, c, err = parseStructMembers(c)
	case c.is(token.LeftParen):
		decl.Kind = ast.TupleStruct
		decl.Elements, c, err = parseStructElements(c)
	}
	if err != nil {
		return nil, c, err
	}

	decl.Loc = loc(start, c)
	return decl, c, nil
}

// parseStructMembers parses {Type name, ...}. Members are separated by
// commas or newlines.
func parseStructMembers(c cursor) ([]*ast.Parameter, cursor, error) {
	c = c.next().skipNewLines()

	var (
		members   []*ast.Parameter
		expectEnd bool
		err       error
	)
	for !c.is(token.RightBrace) {
		if c.done() || expectEnd {
			return nil, c, c.errorf(`expected the right brace symbol "}"`)
		}

		start := c
		member := &ast.Parameter{}
		if member.Type, c, err = parseDataType(c); err != nil {
			return nil, c, err
		}
		if !c.is(token.Identifier) {
			return nil, c, c.errorf("incomplete struct member")
		}
		member.Name = c.peek().Text
		c = c.next()
		member.Loc = loc(start, c)
		members = append(members, member)

		c, expectEnd = skipSeparator(c)
	}

	return members, c.next(), nil
}

// parseStructElements parses the (Type, Type) element list of a tuple
// struct.
func parseStructElements(c cursor) ([]ast.DataType, cursor, error) {
	c = c.next().skipNewLines()

	var (
		elements  []ast.DataType
		expectEnd bool
	)
	for !c.is(token.RightParen) {
		if c.done() || expectEnd {
			return nil, c, c.errorf(`expected the right paren symbol ")"`)
		}

		elem, next, err := parseDataType(c)
		if err != nil {
			return nil, next, err
		}
		elements = append(elements, elem)
		c = next

		if c.is(token.Comma) {
			c = c.next()
		} else {
			expectEnd = true
		}
		c = c.skipNewLines()
	}

	return elements, c.next(), nil
}

// parseUnionDeclaration parses union Name<T> { Variant, Variant (T,), ... }.
func parseUnionDeclaration(c cursor, attrs []string) (*ast.UnionDeclaration, cursor, error) {
	start := c
	c, err := c.consume(token.Union)
	if err != nil {
		return nil, c, err
	}

	decl := &ast.UnionDeclaration{Attributes: attrs}
	if decl.Name, c, err = parseIdentifier(c.skipNewLines()); err != nil {
		return nil, c, err
	}
	if c, err = c.consumeIgnoringNewLines(token.LeftBrace); err != nil {
		return nil, c, err
	}
	c = c.skipNewLines()

	expectEnd := false
	for !c.is(token.RightBrace) {
		if c.done() || expectEnd {
			return nil, c, c.errorf(`expected the right brace symbol "}"`)
		}
		if !c.is(token.Identifier) {
			return nil, c, c.errorf("invalid union variant")
		}

		var variant *ast.StructDeclaration
		if variant, c, err = parseStructShape(c, c); err != nil {
			return nil, c, err
		}
		decl.Variants = append(decl.Variants, variant)

		c, expectEnd = skipSeparator(c)
	}

	c = c.next()
	decl.Loc = loc(start, c)
	return decl, c, nil
}

// parseTraitDeclaration parses trait Name<T> [which ...] { functions }.
func parseTraitDeclaration(c cursor, attrs []string) (*ast.TraitDeclaration, cursor, error) {
	start := c
	c, err := c.consume(token.Trait)
	if err != nil {
		return nil, c, err
	}

	decl := &ast.TraitDeclaration{Attributes: attrs}
	if decl.Name, c, err = parseIdentifier(c.skipNewLines()); err != nil {
		return nil, c, err
	}
	if c.isIgnoringNewLines(token.Which) {
		if decl.Which, c, err = parseWhich(c.skipNewLines()); err != nil {
			return nil, c, err
		}
	}
	if decl.Functions, c, err = parseFunctionList(c.skipNewLines()); err != nil {
		return nil, c, err
	}

	decl.Loc = loc(start, c)
	return decl, c, nil
}

// parseImplDeclaration parses impl Name<T> [for Target] { functions }.
func parseImplDeclaration(c cursor, attrs []string) (*ast.ImplDeclaration, cursor, error) {
	start := c
	c, err := c.consume(token.Impl)
	if err != nil {
		return nil, c, err
	}

	decl := &ast.ImplDeclaration{Attributes: attrs}
	if decl.Name, c, err = parseIdentifier(c.skipNewLines()); err != nil {
		return nil, c, err
	}
	if c.isIgnoringNewLines(token.For) {
		if decl.Target, c, err = parseIdentifier(c.skipNewLines().next().skipNewLines()); err != nil {
			return nil, c, err
		}
	}
	if decl.Functions, c, err = parseFunctionList(c.skipNewLines()); err != nil {
		return nil, c, err
	}

	decl.Loc = loc(start, c)
	return decl, c, nil
}

// parseFunctionList parses the braced function items of a trait or impl.
// Each item ends with a newline or the closing brace.
func parseFunctionList(c cursor) ([]*ast.FunctionDeclaration, cursor, error) {
	c, err := c.consume(token.LeftBrace)
	if err != nil {
		return nil, c, err
	}
	c = c.skipNewLines()

	var functions []*ast.FunctionDeclaration
	for !c.is(token.RightBrace) {
		if c.done() {
			return nil, c, c.errorf(`expected the right brace symbol "}"`)
		}

		var attrs []string
		attrs, c = parseAttributes(c)
		if !c.isAny(token.Function, token.Empty, token.Pattern) {
			return nil, c, c.errorf("expected function declaration")
		}

		var fn *ast.FunctionDeclaration
		if fn, c, err = parseFunctionDeclaration(c, attrs); err != nil {
			return nil, c, err
		}
		functions = append(functions, fn)

		if !c.is(token.RightBrace) {
			if c, err = c.consume(token.NewLine); err != nil {
				return nil, c, c.errorf("expected the new-line symbol")
			}
		}
		c = c.skipNewLines()
	}

	return functions, c.next(), nil
}

// parseAliasDeclaration parses alias Name<T> = DataType.
func parseAliasDeclaration(c cursor, attrs []string) (*ast.AliasDeclaration, cursor, error) {
	start := c
	c, err := c.consume(token.Alias)
	if err != nil {
		return nil, c, err
	}

	decl := &ast.AliasDeclaration{Attributes: attrs}
	if decl.Name, c, err = parseIdentifier(c.skipNewLines()); err != nil {
		return nil, c, err
	}
	if c, err = c.consumeIgnoringNewLines(token.Assign); err != nil {
		return nil, c, err
	}
	if decl.Value, c, err = parseDataType(c.skipNewLines()); err != nil {
		return nil, c, err
	}

	decl.Loc = loc(start, c)
	return decl, c, nil
}

// skipSeparator steps over the comma or newline after a list item. It
// reports whether the list must end next.
func skipSeparator(c cursor) (cursor, bool) {
	switch {
	case c.is(token.Comma):
		return c.next().skipNewLines(), false
	case c.is(token.NewLine):
		return c.skipNewLines(), false
	default:
		return c, true
	}
}
