package lexer

import (
	"github.com/gnolang/xuan/token"
)

// lexChar scans 'x'. Escapes are kept verbatim and only the first codepoint
// of the content becomes the char value.
func (l *lexer) lexChar(s scanner) (scanner, error) {
	start := s.pos
	end := s.index(start+1, "'", true)
	if end < 0 {
		return s, l.errorf(start, len(s.src), "expected char literal ending symbol")
	}
	if end == start+1 {
		return s, l.errorf(start, end+1, "empty char literal")
	}

	text := s.text(start+1, end)
	l.emit(token.Token{Kind: token.Char, Char: s.src[start+1], Text: text}, start, end+1)
	return s.advance(end + 1 - start), nil
}

// lexString scans "...". A backslash escapes the closing quote; escape
// processing is left to later passes.
func (l *lexer) lexString(s scanner) (scanner, error) {
	start := s.pos
	end := s.index(start+1, `"`, true)
	if end < 0 {
		return s, l.errorf(start, len(s.src), "expected string literal ending symbol")
	}
	l.emit(token.Token{Kind: token.String, Text: s.text(start+1, end)}, start, end+1)
	return s.advance(end + 1 - start), nil
}

// lexRawString scans """...""" with no escape processing.
func (l *lexer) lexRawString(s scanner) (scanner, error) {
	start := s.pos
	end := s.index(start+3, `"""`, true)
	if end < 0 {
		return s, l.errorf(start, len(s.src), "expected raw string literal ending symbol")
	}
	l.emit(token.Token{Kind: token.RawString, Text: s.text(start+3, end)}, start, end+3)
	return s.advance(end + 3 - start), nil
}

// lexTemplateString scans `...`. Placeholders are left in the text and
// parsed later.
func (l *lexer) lexTemplateString(s scanner) (scanner, error) {
	start := s.pos
	end := s.index(start+1, "`", true)
	if end < 0 {
		return s, l.errorf(start, len(s.src), "expected template string literal ending symbol")
	}
	l.emit(token.Token{Kind: token.TemplateString, Text: s.text(start+1, end)}, start, end+1)
	return s.advance(end + 1 - start), nil
}

// lexHash scans #name hash strings and #[...] attributes.
func (l *lexer) lexHash(s scanner) (scanner, error) {
	start := s.pos
	switch next := s.peek(1); {
	case next == '[':
		end := s.index(start+2, "]", false)
		if end < 0 {
			return s, l.errorf(start, len(s.src), "expected attribute ending symbol")
		}
		l.emit(token.Token{Kind: token.Attribute, Text: s.text(start+2, end)}, start, end+1)
		return s.advance(end + 1 - start), nil
	case isIdentifierStart(next):
		end := scanIdentifier(s, start+1)
		l.emit(token.Token{Kind: token.HashString, Text: s.text(start+1, end)}, start, end)
		return s.advance(end - start), nil
	default:
		return s, l.errorf(start, start+1, "invalid char '#'")
	}
}

// lexColon scans ::, :name: and plain colons. Once an identifier starts after
// the colon the named operator must be closed.
func (l *lexer) lexColon(s scanner) (scanner, error) {
	start := s.pos
	next := s.peek(1)
	if next == ':' {
		return l.symbol(s, token.Separator, 2)
	}
	if !isIdentifierStart(next) {
		return l.symbol(s, token.Colon, 1)
	}

	end := scanIdentifier(s, start+1)
	switch c := s.advance(end - start).peek(0); {
	case c == ':':
		l.emit(token.Token{Kind: token.NamedOperator, Text: s.text(start+1, end)}, start, end+1)
		return s.advance(end + 1 - start), nil
	case c == eof:
		return s, l.errorf(start, end, "expected named operator ending symbol")
	default:
		return s, l.errorf(end, end+1, "invalid identifier letter")
	}
}
