// Package token defines the lexical tokens of the xuan language together with
// the source ranges and error values shared by the lexer and the parser.
package token

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the category of a token.
type Kind int

const (
	Invalid Kind = iota

	// literals
	Integer        // 123, 0x7b, 0b1111011
	Float          // 3.14, 1.6e-2
	Imaginary      // 4i, 2.5i
	Bit            // 16'x08cd, 8'b10000001
	Boolean        // true, false
	Char           // 'a'
	String         // "foo"
	RawString      // """foo"""
	TemplateString // `foo {{bar}}`
	HashString     // #foo
	NamedOperator  // :foo:
	Attribute      // #[test]
	Identifier     // foo

	// keywords
	keywordBegin
	Do
	Join
	Let
	Fn
	Sign
	If
	Then
	Else
	For
	Next
	Each
	In
	Branch
	Match
	Case
	Default
	Where
	Only
	Into
	Regular
	Template
	Function
	Type
	Which
	Empty
	Pattern
	Limit
	Use
	Const
	Enum
	Struct
	Union
	Trait
	Impl
	Alias
	keywordEnd

	// symbols
	Pipe               // |
	LogicOr            // ||
	LogicAnd           // &&
	Equal              // ==
	NotEqual           // !=
	GreaterThan        // >
	GreaterThanOrEqual // >=
	LessThan           // <
	LessThanOrEqual    // <=
	Concat             // ++
	Plus               // +
	Minus              // -
	Asterisk           // *
	Slash              // /
	OptionalOr         // ??
	OptionalAnd        // ->
	Combine            // &
	Cast               // ^
	Unwrap             // ?
	Exclamation        // !
	At                 // @
	Assign             // =
	Ellipsis           // ...
	Interval           // ..
	IntervalInclusive  // ..=
	Dot                // .
	Comma              // ,
	Colon              // :
	Separator          // ::
	LeftParen          // (
	RightParen         // )
	LeftBracket        // [
	RightBracket       // ]
	LeftBrace          // {
	RightBrace         // }
	NewLine            // \n, \r\n, \r, ;
)

var kindNames = map[Kind]string{
	Invalid:        "invalid",
	Integer:        "integer",
	Float:          "float",
	Imaginary:      "imaginary",
	Bit:            "bit",
	Boolean:        "boolean",
	Char:           "char",
	String:         "string",
	RawString:      "raw string",
	TemplateString: "template string",
	HashString:     "hash string",
	NamedOperator:  "named operator",
	Attribute:      "attribute",
	Identifier:     "identifier",

	Pipe:               "|",
	LogicOr:            "||",
	LogicAnd:           "&&",
	Equal:              "==",
	NotEqual:           "!=",
	GreaterThan:        ">",
	GreaterThanOrEqual: ">=",
	LessThan:           "<",
	LessThanOrEqual:    "<=",
	Concat:             "++",
	Plus:               "+",
	Minus:              "-",
	Asterisk:           "*",
	Slash:              "/",
	OptionalOr:         "??",
	OptionalAnd:        "->",
	Combine:            "&",
	Cast:               "^",
	Unwrap:             "?",
	Exclamation:        "!",
	At:                 "@",
	Assign:             "=",
	Ellipsis:           "...",
	Interval:           "..",
	IntervalInclusive:  "..=",
	Dot:                ".",
	Comma:              ",",
	Colon:              ":",
	Separator:          "::",
	LeftParen:          "(",
	RightParen:         ")",
	LeftBracket:        "[",
	RightBracket:       "]",
	LeftBrace:          "{",
	RightBrace:         "}",
	NewLine:            "\n",
}

// keywords maps reserved words to their kinds. Boolean literals are
// resolved separately by the lexer.
var keywords = map[string]Kind{
	"do":       Do,
	"join":     Join,
	"let":      Let,
	"fn":       Fn,
	"sign":     Sign,
	"if":       If,
	"then":     Then,
	"else":     Else,
	"for":      For,
	"next":     Next,
	"each":     Each,
	"in":       In,
	"branch":   Branch,
	"match":    Match,
	"case":     Case,
	"default":  Default,
	"where":    Where,
	"only":     Only,
	"into":     Into,
	"regular":  Regular,
	"template": Template,
	"function": Function,
	"type":     Type,
	"which":    Which,
	"empty":    Empty,
	"pattern":  Pattern,
	"limit":    Limit,
	"use":      Use,
	"const":    Const,
	"enum":     Enum,
	"struct":   Struct,
	"union":    Union,
	"trait":    Trait,
	"impl":     Impl,
	"alias":    Alias,
}

func init() {
	for word, kind := range keywords {
		kindNames[kind] = word
	}
}

// Lookup returns the keyword kind for word, or Identifier.
func Lookup(word string) Kind {
	if kind, ok := keywords[word]; ok {
		return kind
	}
	return Identifier
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool {
	return k > keywordBegin && k < keywordEnd
}

// IsLiteral reports whether k carries a literal value.
func (k Kind) IsLiteral() bool {
	return k >= Integer && k <= NamedOperator
}

// Range locates a token or node in a source file. Start and End are
// codepoint offsets, End is exclusive.
type Range struct {
	FileID int
	Start  int
	End    int
}

// Join returns the smallest range covering r and other.
func (r Range) Join(other Range) Range {
	if other.Start < r.Start {
		r.Start = other.Start
	}
	if other.End > r.End {
		r.End = other.End
	}
	return r
}

func (r Range) String() string {
	return fmt.Sprintf("%d:%d-%d", r.FileID, r.Start, r.End)
}

// Token is a single lexical unit. Only the payload field matching Kind is
// meaningful.
type Token struct {
	Kind Kind

	Text  string  // identifier, string, hash string, named operator, attribute
	Int   int64   // Integer
	Float float64 // Float, Imaginary
	Bool  bool    // Boolean
	Char  rune    // Char
	Width int     // Bit
	Bytes []byte  // Bit, big-endian

	Range Range
}

// String renders the token close to its source form.
func (t Token) String() string {
	switch t.Kind {
	case Integer:
		return strconv.FormatInt(t.Int, 10)
	case Float:
		return FormatFloat(t.Float)
	case Imaginary:
		return FormatFloat(t.Float) + "i"
	case Bit:
		return FormatBit(t.Width, t.Bytes)
	case Boolean:
		return strconv.FormatBool(t.Bool)
	case Char:
		return "'" + t.Text + "'"
	case String:
		return `"` + t.Text + `"`
	case RawString:
		return `"""` + t.Text + `"""`
	case TemplateString:
		return "`" + t.Text + "`"
	case HashString:
		return "#" + t.Text
	case NamedOperator:
		return ":" + t.Text + ":"
	case Attribute:
		return "#[" + t.Text + "]"
	case Identifier:
		return t.Text
	default:
		return t.Kind.String()
	}
}

// FormatFloat prints f in the shortest decimal form without an exponent.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// FormatBit prints a bit literal as width'x followed by its hex digits.
func FormatBit(width int, bytes []byte) string {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(width))
	sb.WriteString("'x")
	for _, b := range bytes {
		fmt.Fprintf(&sb, "%02x", b)
	}
	return sb.String()
}
