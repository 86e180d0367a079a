// Package lexer converts xuan source text into a flat token sequence.
//
// The lexer is a single forward pass over the codepoints of the source. Each
// scan function receives a scanner value and returns the scanner positioned
// after what it consumed, so no scan step mutates shared position state.
package lexer

import (
	"github.com/gnolang/xuan/token"
)

const eof = -1

// scanner is a read-only view over the source codepoints.
type scanner struct {
	src []rune
	pos int
}

func (s scanner) done() bool { return s.pos >= len(s.src) }

// peek returns the codepoint n places ahead, or eof.
func (s scanner) peek(n int) rune {
	if i := s.pos + n; i < len(s.src) {
		return s.src[i]
	}
	return eof
}

func (s scanner) advance(n int) scanner {
	s.pos += n
	if s.pos > len(s.src) {
		s.pos = len(s.src)
	}
	return s
}

func (s scanner) hasPrefix(prefix string) bool {
	i := s.pos
	for _, r := range prefix {
		if i >= len(s.src) || s.src[i] != r {
			return false
		}
		i++
	}
	return true
}

// index returns the offset of the first occurrence of needle at or after
// from, skipping occurrences preceded by a backslash when escaped is set.
func (s scanner) index(from int, needle string, escaped bool) int {
	n := []rune(needle)
	for i := from; i+len(n) <= len(s.src); i++ {
		if escaped && s.src[i] == '\\' {
			i++
			continue
		}
		match := true
		for j, r := range n {
			if s.src[i+j] != r {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

func (s scanner) text(start, end int) string {
	return string(s.src[start:end])
}

type lexer struct {
	fileID int
	tokens []token.Token
}

// Tokenize converts source into tokens located in file 0.
func Tokenize(source string) ([]token.Token, error) {
	return TokenizeFile(0, source)
}

// TokenizeFile converts source into tokens whose ranges refer to fileID.
// The first lexical error aborts the call.
func TokenizeFile(fileID int, source string) ([]token.Token, error) {
	l := &lexer{fileID: fileID}
	s := scanner{src: []rune(source)}

	var err error
	for !s.done() {
		s, err = l.lexNext(s)
		if err != nil {
			return nil, err
		}
	}
	return l.tokens, nil
}

func (l *lexer) rangeOf(start, end int) token.Range {
	return token.Range{FileID: l.fileID, Start: start, End: end}
}

func (l *lexer) emit(tok token.Token, start, end int) {
	tok.Range = l.rangeOf(start, end)
	l.tokens = append(l.tokens, tok)
}

// symbol emits a token of kind spanning width codepoints.
func (l *lexer) symbol(s scanner, kind token.Kind, width int) (scanner, error) {
	l.emit(token.Token{Kind: kind}, s.pos, s.pos+width)
	return s.advance(width), nil
}

func (l *lexer) errorf(start, end int, format string, args ...any) error {
	return token.NewLexerError(l.rangeOf(start, end), format, args...)
}

// choose emits long when the codepoint after the current one is next,
// otherwise short.
func (l *lexer) choose(s scanner, next rune, long, short token.Kind) (scanner, error) {
	if s.peek(1) == next {
		return l.symbol(s, long, 2)
	}
	return l.symbol(s, short, 1)
}

func (l *lexer) lexNext(s scanner) (scanner, error) {
	c := s.peek(0)
	switch {
	case c == ' ' || c == '\t':
		return s.advance(1), nil
	case c == '\r':
		if s.peek(1) == '\n' {
			return l.symbol(s, token.NewLine, 2)
		}
		return l.symbol(s, token.NewLine, 1)
	case c == '\n' || c == ';':
		return l.symbol(s, token.NewLine, 1)
	case c == '/':
		switch s.peek(1) {
		case '/':
			return skipLineComment(s), nil
		case '*':
			return l.skipBlockComment(s)
		}
		return l.symbol(s, token.Slash, 1)
	case c == '\'':
		if s.hasPrefix("'''") {
			return l.skipDocumentComment(s)
		}
		return l.lexChar(s)
	case c == '"':
		if s.hasPrefix(`"""`) {
			return l.lexRawString(s)
		}
		return l.lexString(s)
	case c == '`':
		return l.lexTemplateString(s)
	case c == '#':
		return l.lexHash(s)
	case c == ':':
		return l.lexColon(s)
	case c == '=':
		return l.choose(s, '=', token.Equal, token.Assign)
	case c == '>':
		return l.choose(s, '=', token.GreaterThanOrEqual, token.GreaterThan)
	case c == '<':
		return l.choose(s, '=', token.LessThanOrEqual, token.LessThan)
	case c == '|':
		return l.choose(s, '|', token.LogicOr, token.Pipe)
	case c == '&':
		return l.choose(s, '&', token.LogicAnd, token.Combine)
	case c == '!':
		return l.choose(s, '=', token.NotEqual, token.Exclamation)
	case c == '+':
		return l.choose(s, '+', token.Concat, token.Plus)
	case c == '-':
		return l.choose(s, '>', token.OptionalAnd, token.Minus)
	case c == '?':
		return l.choose(s, '?', token.OptionalOr, token.Unwrap)
	case c == '*':
		return l.symbol(s, token.Asterisk, 1)
	case c == '^':
		return l.symbol(s, token.Cast, 1)
	case c == '@':
		return l.symbol(s, token.At, 1)
	case c == '.':
		switch {
		case s.hasPrefix("..."):
			return l.symbol(s, token.Ellipsis, 3)
		case s.hasPrefix("..="):
			return l.symbol(s, token.IntervalInclusive, 3)
		case s.hasPrefix(".."):
			return l.symbol(s, token.Interval, 2)
		}
		return l.symbol(s, token.Dot, 1)
	case c == ',':
		return l.symbol(s, token.Comma, 1)
	case c == '(':
		return l.symbol(s, token.LeftParen, 1)
	case c == ')':
		return l.symbol(s, token.RightParen, 1)
	case c == '[':
		return l.symbol(s, token.LeftBracket, 1)
	case c == ']':
		return l.symbol(s, token.RightBracket, 1)
	case c == '{':
		return l.symbol(s, token.LeftBrace, 1)
	case c == '}':
		return l.symbol(s, token.RightBrace, 1)
	case c >= '1' && c <= '9':
		return l.lexNumber(s)
	case c == '0':
		return l.lexZero(s)
	case isIdentifierStart(c):
		return l.lexIdentifier(s)
	default:
		return s, l.errorf(s.pos, s.pos+1, "invalid char '%c'", c)
	}
}

func (l *lexer) lexIdentifier(s scanner) (scanner, error) {
	start := s.pos
	end := scanIdentifier(s, start)
	word := s.text(start, end)

	switch word {
	case "true", "false":
		l.emit(token.Token{Kind: token.Boolean, Bool: word == "true"}, start, end)
	default:
		kind := token.Lookup(word)
		tok := token.Token{Kind: kind}
		if kind == token.Identifier {
			tok.Text = word
		}
		l.emit(tok, start, end)
	}
	return s.advance(end - start), nil
}

// scanIdentifier returns the offset just after the identifier characters
// starting at from.
func scanIdentifier(s scanner, from int) int {
	i := from
	for i < len(s.src) && isIdentifierLetter(s.src[i]) {
		i++
	}
	return i
}

func isIdentifierStart(c rune) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentifierLetter(c rune) bool {
	return isIdentifierStart(c) || isDigit(c)
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}
