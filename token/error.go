package token

import "fmt"

// ErrorKind tells which phase produced an Error.
type ErrorKind int

const (
	LexerError ErrorKind = iota
	ParserError
)

func (k ErrorKind) String() string {
	switch k {
	case LexerError:
		return "lexer error"
	case ParserError:
		return "parser error"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is the terminal failure of a lex or parse call.
type Error struct {
	Kind    ErrorKind
	Message string
	Range   Range
}

func (e *Error) Error() string {
	return e.Kind.String() + ": " + e.Message
}

// NewLexerError returns a lexer error located at r.
func NewLexerError(r Range, format string, args ...any) *Error {
	return &Error{Kind: LexerError, Message: fmt.Sprintf(format, args...), Range: r}
}

// NewParserError returns a parser error located at r.
func NewParserError(r Range, format string, args ...any) *Error {
	return &Error{Kind: ParserError, Message: fmt.Sprintf(format, args...), Range: r}
}
