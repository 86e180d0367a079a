package lexer

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/gnolang/xuan/token"
)

// The number scanners cooperate as a state machine. Each state receives the
// digits accumulated so far (underscores already dropped, separators such as
// '.' and 'e' re-inserted) and either keeps scanning or finishes the token.

// lexNumber scans a decimal number starting with 1-9.
func (l *lexer) lexNumber(s scanner) (scanner, error) {
	start := s.pos
	var digits strings.Builder

	for {
		c := s.peek(0)
		switch {
		case isDigit(c):
			digits.WriteRune(c)
			s = s.advance(1)
		case c == '_':
			s = s.advance(1)
		case c == '.':
			if s.peek(1) == '.' {
				// 1..10 is a range, not a float
				return l.finishInteger(start, s, digits.String())
			}
			return l.lexFloat(start, s.advance(1), digits.String()+".")
		case c == '\'':
			if s.peek(1) == '\'' && s.peek(2) == '\'' {
				// a document comment follows
				return l.finishInteger(start, s, digits.String())
			}
			return l.lexBit(start, s.advance(1), digits.String())
		case c == 'i':
			return l.finishImaginary(start, s.advance(1), digits.String())
		case c == 'e':
			return l.lexExponent(start, s.advance(1), digits.String()+"e")
		default:
			return l.finishInteger(start, s, digits.String())
		}
	}
}

// lexFloat scans the fraction digits after the decimal point.
func (l *lexer) lexFloat(start int, s scanner, buf string) (scanner, error) {
	digits := strings.Builder{}
	digits.WriteString(buf)

	for {
		c := s.peek(0)
		switch {
		case isDigit(c):
			digits.WriteRune(c)
			s = s.advance(1)
		case c == '_':
			s = s.advance(1)
		case c == '.':
			if s.peek(1) == '.' {
				return l.finishFloat(start, s, digits.String())
			}
			return s, l.errorf(start, s.pos+1, "invalid float number")
		case c == '\'':
			return s, l.errorf(start, s.pos+1, "invalid bit number")
		case c == 'i':
			return l.finishImaginary(start, s.advance(1), digits.String())
		case c == 'e':
			return l.lexExponent(start, s.advance(1), digits.String()+"e")
		default:
			return l.finishFloat(start, s, digits.String())
		}
	}
}

// lexExponent scans the exponent digits after 'e'. A single leading minus
// sign is allowed.
func (l *lexer) lexExponent(start int, s scanner, buf string) (scanner, error) {
	digits := strings.Builder{}
	digits.WriteString(buf)

	if s.peek(0) == '-' {
		digits.WriteRune('-')
		s = s.advance(1)
	}

	for {
		c := s.peek(0)
		switch {
		case isDigit(c):
			digits.WriteRune(c)
			s = s.advance(1)
		case c == '_':
			s = s.advance(1)
		case c == '.':
			if s.peek(1) == '.' {
				return l.finishFloat(start, s, digits.String())
			}
			return s, l.errorf(start, s.pos+1, "invalid float exponent")
		case c == '\'':
			return s, l.errorf(start, s.pos+1, "invalid bit number")
		case c == 'e' || c == '-':
			return s, l.errorf(start, s.pos+1, "invalid exponent number")
		case c == 'i':
			return l.finishImaginary(start, s.advance(1), digits.String())
		default:
			return l.finishFloat(start, s, digits.String())
		}
	}
}

// lexBit scans the value part of a bit literal: width'x0f or width'b0101.
func (l *lexer) lexBit(start int, s scanner, width string) (scanner, error) {
	var base int
	switch s.peek(0) {
	case 'x':
		base = 16
	case 'b':
		base = 2
	default:
		return s, l.errorf(start, s.pos+1, "invalid bit number")
	}
	s = s.advance(1)

	digits, s := scanRadixDigits(s, base)
	w, err := strconv.Atoi(width)
	if err != nil || w <= 0 || digits == "" {
		return s, l.errorf(start, s.pos, "invalid bit number")
	}

	value, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return s, l.errorf(start, s.pos, "invalid bit number")
	}
	if value.BitLen() > w {
		return s, l.errorf(start, s.pos, "bit number overflows its width")
	}

	bytes := value.FillBytes(make([]byte, (w+7)/8))
	l.emit(token.Token{Kind: token.Bit, Width: w, Bytes: bytes}, start, s.pos)
	return s, nil
}

// lexZero scans numbers with a leading zero: 0, 0.5, 0x1f, 0b101.
func (l *lexer) lexZero(s scanner) (scanner, error) {
	start := s.pos
	switch next := s.peek(1); {
	case next == 'x':
		return l.lexRadix(start, s.advance(2), 16, "invalid hex number")
	case next == 'b':
		return l.lexRadix(start, s.advance(2), 2, "invalid binary number")
	case next == '.':
		if s.peek(2) == '.' {
			return l.finishInteger(start, s.advance(1), "0")
		}
		return l.lexFloat(start, s.advance(2), "0.")
	case isIdentifierLetter(next):
		return s, l.errorf(start, start+2, "invalid identifier")
	default:
		return l.finishInteger(start, s.advance(1), "0")
	}
}

func (l *lexer) lexRadix(start int, s scanner, base int, message string) (scanner, error) {
	digits, s := scanRadixDigits(s, base)
	if digits == "" || isIdentifierLetter(s.peek(0)) {
		return s, l.errorf(start, s.pos, message)
	}
	v, err := strconv.ParseInt(digits, base, 64)
	if err != nil {
		return s, l.errorf(start, s.pos, message)
	}
	l.emit(token.Token{Kind: token.Integer, Int: v}, start, s.pos)
	return s, nil
}

// scanRadixDigits collects the digits valid in base, dropping underscores.
func scanRadixDigits(s scanner, base int) (string, scanner) {
	var digits strings.Builder
	for {
		c := s.peek(0)
		switch {
		case c == '_':
		case base == 2 && (c == '0' || c == '1'):
			digits.WriteRune(c)
		case base == 16 && isHexDigit(c):
			digits.WriteRune(c)
		default:
			return digits.String(), s
		}
		s = s.advance(1)
	}
}

func isHexDigit(c rune) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func (l *lexer) finishInteger(start int, s scanner, digits string) (scanner, error) {
	v, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return s, l.errorf(start, s.pos, "invalid integer number")
	}
	l.emit(token.Token{Kind: token.Integer, Int: v}, start, s.pos)
	return s, nil
}

func (l *lexer) finishFloat(start int, s scanner, digits string) (scanner, error) {
	v, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return s, l.errorf(start, s.pos, "invalid float number")
	}
	l.emit(token.Token{Kind: token.Float, Float: v}, start, s.pos)
	return s, nil
}

func (l *lexer) finishImaginary(start int, s scanner, digits string) (scanner, error) {
	v, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return s, l.errorf(start, s.pos, "invalid imaginary number")
	}
	l.emit(token.Token{Kind: token.Imaginary, Float: v}, start, s.pos)
	return s, nil
}
