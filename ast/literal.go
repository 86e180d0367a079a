package ast

import (
	"strconv"
	"strings"

	"github.com/gnolang/xuan/token"
)

type IntegerLiteral struct {
	Loc
	Value int64
}

func (l *IntegerLiteral) String() string { return strconv.FormatInt(l.Value, 10) }

// FloatLiteral always prints with a decimal point so that it reads back as
// a float.
type FloatLiteral struct {
	Loc
	Value float64
}

func (l *FloatLiteral) String() string {
	s := token.FormatFloat(l.Value)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// ComplexLiteral is real+imaginary i, fused by the parser from 3+4i.
type ComplexLiteral struct {
	Loc
	Real      float64
	Imaginary float64
}

func (l *ComplexLiteral) String() string {
	return token.FormatFloat(l.Real) + "+" + token.FormatFloat(l.Imaginary) + "i"
}

// BitLiteral is a fixed width bit pattern stored big-endian.
type BitLiteral struct {
	Loc
	Width int
	Bytes []byte
}

func (l *BitLiteral) String() string { return token.FormatBit(l.Width, l.Bytes) }

type BooleanLiteral struct {
	Loc
	Value bool
}

func (l *BooleanLiteral) String() string { return strconv.FormatBool(l.Value) }

// CharLiteral keeps the source text of the char alongside its value.
type CharLiteral struct {
	Loc
	Value rune
	Text  string
}

func (l *CharLiteral) String() string { return "'" + l.Text + "'" }

// StringLiteral is a quoted or raw string. Escapes are kept verbatim.
type StringLiteral struct {
	Loc
	Value string
	Raw   bool
}

func (l *StringLiteral) String() string {
	if l.Raw {
		return `"""` + l.Value + `"""`
	}
	return `"` + l.Value + `"`
}

// TemplateStringLiteral is a backquoted string with {{expr}} placeholders.
// Fragments has one more element than Expressions; the text is
// Fragments[0] Expressions[0] Fragments[1] ...
type TemplateStringLiteral struct {
	Loc
	Value       string
	Fragments   []string
	Expressions []Expression
}

func (l *TemplateStringLiteral) String() string { return "`" + l.Value + "`" }

type HashStringLiteral struct {
	Loc
	Value string
}

func (l *HashStringLiteral) String() string { return "#" + l.Value }

// NamedOperatorLiteral is a :name: token used as a value.
type NamedOperatorLiteral struct {
	Loc
	Value string
}

func (l *NamedOperatorLiteral) String() string { return ":" + l.Value + ":" }

func (l *IntegerLiteral) expressionNode()        {}
func (l *FloatLiteral) expressionNode()          {}
func (l *ComplexLiteral) expressionNode()        {}
func (l *BitLiteral) expressionNode()            {}
func (l *BooleanLiteral) expressionNode()        {}
func (l *CharLiteral) expressionNode()           {}
func (l *StringLiteral) expressionNode()         {}
func (l *TemplateStringLiteral) expressionNode() {}
func (l *HashStringLiteral) expressionNode()     {}
func (l *NamedOperatorLiteral) expressionNode()  {}

func (l *IntegerLiteral) literalNode()        {}
func (l *FloatLiteral) literalNode()          {}
func (l *ComplexLiteral) literalNode()        {}
func (l *BitLiteral) literalNode()            {}
func (l *BooleanLiteral) literalNode()        {}
func (l *CharLiteral) literalNode()           {}
func (l *StringLiteral) literalNode()         {}
func (l *TemplateStringLiteral) literalNode() {}
func (l *HashStringLiteral) literalNode()     {}
func (l *NamedOperatorLiteral) literalNode()  {}
