// Package ast declares the syntax tree produced by the xuan parser.
//
// The tree has two tiers, statements and expressions. Every composite node
// owns its children exclusively. Each node records the source range of the
// tokens it was built from, and String renders its canonical form: the
// printed program lexes and parses back into an equal tree.
package ast

import (
	"strings"

	"github.com/gnolang/xuan/token"
)

// Node is implemented by every syntax tree element.
type Node interface {
	Span() token.Range
	String() string
}

// Statement is a top level program item.
type Statement interface {
	Node
	statementNode()
}

// Expression is a node that evaluates to a value.
type Expression interface {
	Node
	expressionNode()
}

// DataType is an expression usable in type position: an identifier, a sign
// or a tuple.
type DataType interface {
	Expression
	dataTypeNode()
}

// Literal is a constant expression.
type Literal interface {
	Expression
	literalNode()
}

// Pattern is the selector of a match case.
type Pattern interface {
	Node
	patternNode()
}

// Loc carries the source range of a node.
type Loc struct {
	Range token.Range
}

func (l Loc) Span() token.Range { return l.Range }

// Program is the root of a parsed source file.
type Program struct {
	Loc
	Statements []Statement
}

func (p *Program) String() string {
	var sb strings.Builder
	for _, s := range p.Statements {
		sb.WriteString(s.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ExpressionStatement is an expression used as a statement.
type ExpressionStatement struct {
	Loc
	Expression Expression
}

func (s *ExpressionStatement) statementNode() {}
func (s *ExpressionStatement) String() string {
	return s.Expression.String()
}

var (
	_ Statement = (*ExpressionStatement)(nil)
	_ Statement = (*FunctionDeclaration)(nil)
	_ Statement = (*UseDeclaration)(nil)
	_ Statement = (*ConstDeclaration)(nil)
	_ Statement = (*StructDeclaration)(nil)
	_ Statement = (*UnionDeclaration)(nil)
	_ Statement = (*TraitDeclaration)(nil)
	_ Statement = (*ImplDeclaration)(nil)
	_ Statement = (*AliasDeclaration)(nil)

	_ DataType = (*Identifier)(nil)
	_ DataType = (*SignExpression)(nil)
	_ DataType = (*TupleExpression)(nil)

	_ Pattern = (*PrimaryPattern)(nil)
	_ Pattern = (*InPattern)(nil)
	_ Pattern = (*IntoPattern)(nil)
	_ Pattern = (*RegularPattern)(nil)
	_ Pattern = (*TemplatePattern)(nil)
)
