package parser

import (
	"github.com/gnolang/xuan/ast"
	"github.com/gnolang/xuan/token"
)

type parseFunc func(c cursor) (ast.Expression, cursor, error)

// parseExpression dispatches keyword-led expressions and otherwise enters
// the binary operator chain at its loosest tier.
func parseExpression(c cursor) (ast.Expression, cursor, error) {
	if c.done() {
		return nil, c, c.errorf("expected expression")
	}

	switch c.peek().Kind {
	case token.Do:
		return parseBlock(c, ast.DoBlock)
	case token.Join:
		return parseBlock(c, ast.JoinBlock)
	case token.Let:
		return parseLet(c)
	case token.If:
		return parseIf(c)
	case token.For:
		return parseFor(c)
	case token.Next:
		return parseNext(c)
	case token.Each:
		return parseEach(c)
	case token.Branch:
		return parseBranch(c)
	case token.Match:
		return parseMatch(c)
	}
	return parsePipe(c)
}

// parseBinary parses a left-associative tier: operands from next joined by
// any of ops. A newline may follow each operator.
func parseBinary(c cursor, next parseFunc, ops ...token.Kind) (ast.Expression, cursor, error) {
	start := c
	left, c, err := next(c)
	if err != nil {
		return nil, c, err
	}

	for c.isAny(ops...) {
		op := c.peek().Kind
		var right ast.Expression
		if right, c, err = next(c.next().skipNewLines()); err != nil {
			return nil, c, err
		}
		left = &ast.BinaryExpression{Loc: loc(start, c), Operator: op, Left: left, Right: right}
	}
	return left, c, nil
}

func parsePipe(c cursor) (ast.Expression, cursor, error) {
	return parseBinary(c, parseLogicOr, token.Pipe)
}

func parseLogicOr(c cursor) (ast.Expression, cursor, error) {
	return parseBinary(c, parseLogicAnd, token.LogicOr)
}

func parseLogicAnd(c cursor) (ast.Expression, cursor, error) {
	return parseBinary(c, parseEquality, token.LogicAnd)
}

func parseEquality(c cursor) (ast.Expression, cursor, error) {
	return parseBinary(c, parseRelational, token.Equal, token.NotEqual)
}

func parseRelational(c cursor) (ast.Expression, cursor, error) {
	return parseBinary(c, parseNamedOperator,
		token.GreaterThan, token.GreaterThanOrEqual, token.LessThan, token.LessThanOrEqual)
}

// parseNamedOperator applies at most one :name: operator.
func parseNamedOperator(c cursor) (ast.Expression, cursor, error) {
	start := c
	left, c, err := parseConcat(c)
	if err != nil || !c.is(token.NamedOperator) {
		return left, c, err
	}

	name := c.peek().Text
	right, c, err := parseConcat(c.next().skipNewLines())
	if err != nil {
		return nil, c, err
	}
	return &ast.BinaryExpression{
		Loc:      loc(start, c),
		Operator: token.NamedOperator,
		Name:     name,
		Left:     left,
		Right:    right,
	}, c, nil
}

func parseConcat(c cursor) (ast.Expression, cursor, error) {
	return parseBinary(c, parseAdditive, token.Concat)
}

func parseAdditive(c cursor) (ast.Expression, cursor, error) {
	return parseBinary(c, parseMultiplicative, token.Plus, token.Minus)
}

func parseMultiplicative(c cursor) (ast.Expression, cursor, error) {
	return parseBinary(c, parseOptionalOr, token.Asterisk, token.Slash)
}

func parseOptionalOr(c cursor) (ast.Expression, cursor, error) {
	return parseBinary(c, parseOptionalAnd, token.OptionalOr)
}

func parseOptionalAnd(c cursor) (ast.Expression, cursor, error) {
	return parseBinary(c, parseCombine, token.OptionalAnd)
}

// parseCombine is right-associative: the right operand is a full
// expression.
func parseCombine(c cursor) (ast.Expression, cursor, error) {
	start := c
	left, c, err := parseCast(c)
	if err != nil || !c.is(token.Combine) {
		return left, c, err
	}

	right, c, err := parseExpression(c.next().skipNewLines())
	if err != nil {
		return nil, c, err
	}
	return &ast.BinaryExpression{Loc: loc(start, c), Operator: token.Combine, Left: left, Right: right}, c, nil
}

func parseCast(c cursor) (ast.Expression, cursor, error) {
	return parsePostfix(c, parseNegative, token.Cast)
}

func parseNegative(c cursor) (ast.Expression, cursor, error) {
	if !c.is(token.Minus) {
		return parseUnwrap(c)
	}

	start := c
	operand, c, err := parseUnwrap(c.next())
	if err != nil {
		return nil, c, err
	}
	return &ast.UnaryExpression{Loc: loc(start, c), Operator: token.Minus, Operand: operand}, c, nil
}

func parseUnwrap(c cursor) (ast.Expression, cursor, error) {
	return parsePostfix(c, parseMono, token.Unwrap)
}

func parsePostfix(c cursor, next parseFunc, op token.Kind) (ast.Expression, cursor, error) {
	start := c
	operand, c, err := next(c)
	if err != nil {
		return nil, c, err
	}
	for c.is(op) {
		c = c.next()
		operand = &ast.UnaryExpression{Loc: loc(start, c), Operator: op, Operand: operand}
	}
	return operand, c, nil
}

// parseMono parses a member chain followed by any number of call argument
// lists.
func parseMono(c cursor) (ast.Expression, cursor, error) {
	start := c
	callee, c, err := parseMember(c)
	if err != nil || !isCallable(callee) {
		return callee, c, err
	}

	for c.is(token.LeftParen) {
		var args []*ast.Argument
		if args, c, err = parseArguments(c); err != nil {
			return nil, c, err
		}
		callee = &ast.CallExpression{Loc: loc(start, c), Callee: callee, Arguments: args}
	}
	return callee, c, nil
}

func isCallable(e ast.Expression) bool {
	switch e.(type) {
	case *ast.TupleExpression, *ast.ListExpression, *ast.MapExpression, *ast.SignExpression, ast.Literal:
		return false
	}
	return true
}

// parseArguments parses (a, name=b, ...). A trailing comma is allowed.
func parseArguments(c cursor) ([]*ast.Argument, cursor, error) {
	c = c.next().skipNewLines()

	var (
		args      []*ast.Argument
		expectEnd bool
		err       error
	)
	for !c.is(token.RightParen) {
		if c.done() || expectEnd {
			return nil, c, c.errorf(`expected the right paren symbol ")"`)
		}

		start := c
		arg := &ast.Argument{}
		if arg.Value, c, err = parseExpression(c); err != nil {
			return nil, c, err
		}
		if c.is(token.Assign) {
			name, ok := arg.Value.(*ast.Identifier)
			if !ok || !isPlainName(name) {
				return nil, c, start.errorf("invalid argument name")
			}
			arg.Name = name.Name
			if arg.Value, c, err = parseExpression(c.next().skipNewLines()); err != nil {
				return nil, c, err
			}
		}
		arg.Loc = loc(start, c)
		args = append(args, arg)

		if c.is(token.Comma) {
			c = c.next()
		} else {
			expectEnd = true
		}
		c = c.skipNewLines()
	}

	return args, c.next(), nil
}

// parseMember parses obj[index], obj[from..to] and obj.property chains. A
// newline may precede the dot.
func parseMember(c cursor) (ast.Expression, cursor, error) {
	start := c
	object, c, err := parseConstructor(c)
	if err != nil {
		return nil, c, err
	}

	for {
		var property ast.Expression
		switch {
		case c.is(token.LeftBracket):
			if property, c, err = parseIndex(c); err != nil {
				return nil, c, err
			}
			object = &ast.MemberExpression{Loc: loc(start, c), Object: object, Property: property, Index: true}

		case c.isIgnoringNewLines(token.Dot):
			c = c.skipNewLines().next()
			at := c
			if property, c, err = parsePrimary(c); err != nil {
				return nil, c, err
			}
			switch property.(type) {
			case *ast.Identifier, *ast.IntegerLiteral:
			default:
				return nil, c, at.errorf("invalid property name")
			}
			object = &ast.MemberExpression{Loc: loc(start, c), Object: object, Property: property}

		default:
			return object, c, nil
		}
	}
}

func parseIndex(c cursor) (ast.Expression, cursor, error) {
	c = c.next().skipNewLines()

	start := c
	index, c, err := parseExpression(c)
	if err != nil {
		return nil, c, err
	}
	if c.isAny(token.Interval, token.IntervalInclusive) {
		if index, c, err = parseIntervalTail(start, c, index); err != nil {
			return nil, c, err
		}
	}

	if c, err = c.consumeIgnoringNewLines(token.RightBracket); err != nil {
		return nil, c, err
	}
	return index, c, nil
}

// parseIntervalTail parses the `..to`, `..` or `..=to` after from. An open
// end is only allowed for the exclusive form.
func parseIntervalTail(start, c cursor, from ast.Expression) (ast.Expression, cursor, error) {
	interval := &ast.IntervalExpression{From: from, Inclusive: c.is(token.IntervalInclusive)}
	c = c.next().skipNewLines()

	if c.isAny(token.Comma, token.RightBracket) {
		if interval.Inclusive {
			return nil, c, c.errorf("expected inclusive range end")
		}
	} else {
		var err error
		if interval.To, c, err = parseExpression(c); err != nil {
			return nil, c, err
		}
	}

	interval.Loc = loc(start, c)
	return interval, c, nil
}

// parseConstructor turns `Name {...}` into a constructor when the primary
// expression was written as a bare identifier.
func parseConstructor(c cursor) (ast.Expression, cursor, error) {
	start := c
	named := c.is(token.Identifier)
	object, c, err := parsePrimary(c)
	if err != nil {
		return nil, c, err
	}

	id, ok := object.(*ast.Identifier)
	if !ok || !named || !c.is(token.LeftBrace) {
		return object, c, nil
	}

	value, c, err := parseMap(c)
	if err != nil {
		return nil, c, err
	}
	return &ast.ConstructorExpression{Loc: loc(start, c), Object: id, Value: value}, c, nil
}
