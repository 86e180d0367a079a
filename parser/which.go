package parser

import (
	"github.com/gnolang/xuan/ast"
	"github.com/gnolang/xuan/token"
)

// parseWhich parses the generic constraints of a signature:
//
//	which T: Int
//	which {
//	    T: limit Display + Eq
//	    U: String
//	}
func parseWhich(c cursor) (*ast.WhichClause, cursor, error) {
	start := c
	c = c.next().skipNewLines()
	if c.done() {
		return nil, c, c.errorf(`expected "which" expression`)
	}

	which := &ast.WhichClause{}
	if !c.is(token.LeftBrace) {
		entry, c, err := parseWhichEntry(c)
		if err != nil {
			return nil, c, err
		}
		which.Entries = append(which.Entries, entry)
		which.Loc = loc(start, c)
		return which, c, nil
	}

	c = c.next().skipNewLines()
	expectEnd := false
	for !c.is(token.RightBrace) {
		if c.done() || expectEnd {
			return nil, c, c.errorf(`expected the right brace symbol "}"`)
		}

		var (
			entry *ast.WhichEntry
			err   error
		)
		if entry, c, err = parseWhichEntry(c); err != nil {
			return nil, c, err
		}
		which.Entries = append(which.Entries, entry)
		c, expectEnd = skipSeparator(c)
	}
	c = c.next()

	which.Loc = loc(start, c)
	return which, c, nil
}

// parseWhichEntry parses `Name: Type` or `Name: limit Type + Type`.
func parseWhichEntry(c cursor) (*ast.WhichEntry, cursor, error) {
	start := c
	if !c.is(token.Identifier) {
		return nil, c, c.errorf("invalid name of which expression entry")
	}
	entry := &ast.WhichEntry{Name: c.peek().Text}

	c, err := c.next().consume(token.Colon)
	if err != nil {
		return nil, c, err
	}
	if c = c.skipNewLines(); c.done() {
		return nil, c, c.errorf("expected which expression entry value")
	}

	var typ ast.DataType
	if !c.is(token.Limit) {
		if typ, c, err = parseDataType(c); err != nil {
			return nil, c, err
		}
		entry.Types = []ast.DataType{typ}
		entry.Loc = loc(start, c)
		return entry, c, nil
	}

	entry.Limit = true
	c = c.next().skipNewLines()
	for {
		if typ, c, err = parseDataType(c); err != nil {
			return nil, c, err
		}
		entry.Types = append(entry.Types, typ)
		if !c.is(token.Plus) {
			break
		}
		c = c.next().skipNewLines()
	}

	entry.Loc = loc(start, c)
	return entry, c, nil
}
