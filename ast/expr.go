package ast

import (
	"strings"

	"github.com/gnolang/xuan/token"
)

// BlockKind tells how a block was introduced.
type BlockKind int

const (
	ImplicitBlock BlockKind = iota // {...} in body position
	DoBlock                        // do {...}
	JoinBlock                      // join {...}
)

// BlockExpression is a sequence of expressions evaluated in order.
type BlockExpression struct {
	Loc
	Kind        BlockKind
	Expressions []Expression
}

func (e *BlockExpression) String() string {
	var sb strings.Builder
	switch e.Kind {
	case DoBlock:
		sb.WriteString("do ")
	case JoinBlock:
		sb.WriteString("join ")
	}
	sb.WriteString("{\n")
	for _, item := range e.Expressions {
		sb.WriteString(item.String())
		sb.WriteByte('\n')
	}
	sb.WriteByte('}')
	return sb.String()
}

// LetExpression binds the right hand side to a pattern.
type LetExpression struct {
	Loc
	Type  DataType
	Left  Expression
	Right Expression
}

func (e *LetExpression) String() string {
	return e.binding(e.Right.String())
}

func (e *LetExpression) binding(right string) string {
	var sb strings.Builder
	sb.WriteString("let ")
	if e.Type != nil {
		sb.WriteString(e.Type.String())
		sb.WriteByte(' ')
		sb.WriteString(primary(e.Left))
	} else {
		sb.WriteString(e.Left.String())
	}
	sb.WriteString(" = ")
	sb.WriteString(right)
	return sb.String()
}

// IfExpression is a conditional with an optional where guard and else arm.
type IfExpression struct {
	Loc
	Test        Expression
	Where       Expression
	Consequent  Expression
	Alternative Expression
}

func (e *IfExpression) String() string {
	var sb strings.Builder
	sb.WriteString("if ")
	sb.WriteString(ifPart(e.Test))
	if e.Where != nil {
		sb.WriteString(" where ")
		sb.WriteString(ifPart(e.Where))
	}
	sb.WriteString(" then ")
	sb.WriteString(ifPart(e.Consequent))
	if e.Alternative != nil {
		sb.WriteString(" else ")
		sb.WriteString(ifPart(e.Alternative))
	}
	return sb.String()
}

// ForExpression is a loop whose initializer binds the loop state.
type ForExpression struct {
	Loc
	Initializer *LetExpression
	Body        Expression
}

func (e *ForExpression) String() string {
	return "for " + e.Initializer.binding(subject(e.Initializer.Right)) + loopBody(e.Body)
}

// NextExpression restarts the enclosing for loop with a new value.
type NextExpression struct {
	Loc
	Value Expression
}

func (e *NextExpression) String() string {
	return "next " + e.Value.String()
}

// EachExpression iterates over the elements of an object.
type EachExpression struct {
	Loc
	Variable Expression
	Object   Expression
	Body     Expression
}

func (e *EachExpression) String() string {
	return "each " + e.Variable.String() + " in " + subject(e.Object) + loopBody(e.Body)
}

// BranchCase is one arm of a branch expression.
type BranchCase struct {
	Loc
	Test       Expression
	Where      Expression
	Consequent Expression
}

func (c *BranchCase) String() string {
	var sb strings.Builder
	sb.WriteString("case ")
	sb.WriteString(c.Test.String())
	if c.Where != nil {
		sb.WriteString(" where ")
		sb.WriteString(body(c.Where))
	}
	sb.WriteString(": ")
	sb.WriteString(body(c.Consequent))
	return sb.String()
}

// BranchExpression selects the first case whose test holds.
type BranchExpression struct {
	Loc
	Where   Expression
	Cases   []*BranchCase
	Default Expression
}

func (e *BranchExpression) String() string {
	var sb strings.Builder
	sb.WriteString("branch")
	sb.WriteString(headerGuard(e.Where))
	sb.WriteString(" {\n")
	for _, c := range e.Cases {
		sb.WriteString(c.String())
		sb.WriteByte('\n')
	}
	sb.WriteString(defaultCase(e.Default))
	sb.WriteByte('}')
	return sb.String()
}

// MatchCase is one arm of a match expression. Variable is the optional
// name bound with `name @`.
type MatchCase struct {
	Loc
	Variable   string
	Pattern    Pattern
	Only       Expression
	Where      Expression
	Consequent Expression
}

func (c *MatchCase) String() string {
	var sb strings.Builder
	sb.WriteString("case")
	if c.Variable != "" {
		sb.WriteString(" " + c.Variable + " @")
	}
	if c.Pattern != nil {
		sb.WriteString(" " + c.Pattern.String())
	}
	if c.Only != nil {
		sb.WriteString(" only " + body(c.Only))
	}
	if c.Where != nil {
		sb.WriteString(" where " + body(c.Where))
	}
	sb.WriteString(": ")
	sb.WriteString(body(c.Consequent))
	return sb.String()
}

// MatchExpression destructures an object against case patterns.
type MatchExpression struct {
	Loc
	Object  Expression
	Where   Expression
	Cases   []*MatchCase
	Default Expression
}

func (e *MatchExpression) String() string {
	var sb strings.Builder
	sb.WriteString("match ")
	sb.WriteString(subject(e.Object))
	sb.WriteString(headerGuard(e.Where))
	sb.WriteString(" {\n")
	for _, c := range e.Cases {
		sb.WriteString(c.String())
		sb.WriteByte('\n')
	}
	sb.WriteString(defaultCase(e.Default))
	sb.WriteByte('}')
	return sb.String()
}

// BinaryExpression applies an infix operator. Name holds the operator name
// when Operator is token.NamedOperator.
type BinaryExpression struct {
	Loc
	Operator token.Kind
	Name     string
	Left     Expression
	Right    Expression
}

func (e *BinaryExpression) String() string {
	op := e.Operator.String()
	if e.Operator == token.NamedOperator {
		op = ":" + e.Name + ":"
	}
	return "(" + operand(e.Left) + " " + op + " " + operand(e.Right) + ")"
}

// UnaryExpression applies prefix negation or a postfix cast or unwrap.
type UnaryExpression struct {
	Loc
	Operator token.Kind
	Operand  Expression
}

func (e *UnaryExpression) String() string {
	if e.Operator == token.Minus {
		return "(-" + operand(e.Operand) + ")"
	}
	return "(" + operand(e.Operand) + e.Operator.String() + ")"
}

// Argument is a call argument, optionally named: foo(1, count=2).
type Argument struct {
	Loc
	Name  string
	Value Expression
}

func (a *Argument) String() string {
	if a.Name != "" {
		return a.Name + "=" + a.Value.String()
	}
	return a.Value.String()
}

// CallExpression calls a function value.
type CallExpression struct {
	Loc
	Callee    Expression
	Arguments []*Argument
}

func (e *CallExpression) String() string {
	args := make([]string, len(e.Arguments))
	for i, a := range e.Arguments {
		args[i] = a.String()
	}
	return "(" + e.Callee.String() + ")(" + strings.Join(args, ", ") + ")"
}

// MemberExpression reads a property (obj.name, obj.0) or an index or slice
// (obj[i], obj[1..3]).
type MemberExpression struct {
	Loc
	Object   Expression
	Property Expression
	Index    bool
}

func (e *MemberExpression) String() string {
	if e.Index {
		return "(" + operand(e.Object) + "[" + e.Property.String() + "])"
	}
	return "(" + operand(e.Object) + "." + e.Property.String() + ")"
}

// ConstructorExpression builds a struct value: User {id: 1}.
type ConstructorExpression struct {
	Loc
	Object *Identifier
	Value  *MapExpression
}

func (e *ConstructorExpression) String() string {
	return e.Object.String() + " " + e.Value.String()
}

// AnonymousFunction is a function literal: fn (a, b) = a + b.
type AnonymousFunction struct {
	Loc
	Parameters []*Parameter
	ReturnType DataType
	Which      *WhichClause
	Body       Expression
}

func (e *AnonymousFunction) String() string {
	return "fn " + parameterList(e.Parameters) + signatureTail(e.ReturnType, e.Which) + functionBody(e.Body)
}

// SignExpression is a function type: sign <T> (T a) type T.
type SignExpression struct {
	Loc
	Generics   []DataType
	Parameters []*Parameter
	ReturnType DataType
	Which      *WhichClause
}

func (e *SignExpression) dataTypeNode() {}
func (e *SignExpression) String() string {
	var sb strings.Builder
	sb.WriteString("sign ")
	if len(e.Generics) > 0 {
		sb.WriteString(genericList(e.Generics))
		sb.WriteByte(' ')
	}
	sb.WriteString(parameterList(e.Parameters))
	sb.WriteString(signatureTail(e.ReturnType, e.Which))
	return sb.String()
}

// WhichEntry constrains one generic name.
type WhichEntry struct {
	Loc
	Name  string
	Limit bool // name: limit A + B
	Types []DataType
}

func (w *WhichEntry) String() string {
	if !w.Limit {
		return w.Name + ": " + w.Types[0].String()
	}
	items := make([]string, len(w.Types))
	for i, t := range w.Types {
		items[i] = t.String()
	}
	return w.Name + ": limit " + strings.Join(items, " + ")
}

// WhichClause is the generic constraint list of a function or sign.
type WhichClause struct {
	Loc
	Entries []*WhichEntry
}

func (w *WhichClause) String() string {
	var sb strings.Builder
	sb.WriteString("which {\n")
	for _, e := range w.Entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	sb.WriteByte('}')
	return sb.String()
}

// TupleExpression is (a, b,). A single element needs the trailing comma.
type TupleExpression struct {
	Loc
	Elements []Expression
}

func (e *TupleExpression) dataTypeNode() {}
func (e *TupleExpression) String() string {
	return sequence("(", e.Elements, ")")
}

// ListExpression is [a, b].
type ListExpression struct {
	Loc
	Elements []Expression
}

func (e *ListExpression) String() string {
	return sequence("[", e.Elements, "]")
}

// MapEntry is key: value. Value is nil for shorthand and ellipsis entries.
type MapEntry struct {
	Loc
	Key   Expression
	Value Expression
}

func (m *MapEntry) String() string {
	if m.Value == nil {
		return m.Key.String()
	}
	return m.Key.String() + ": " + m.Value.String()
}

// MapExpression is {key: value, ...}.
type MapExpression struct {
	Loc
	Entries []*MapEntry
}

func (e *MapExpression) String() string {
	if len(e.Entries) == 0 {
		return "{}"
	}
	var sb strings.Builder
	sb.WriteString("{\n")
	for _, entry := range e.Entries {
		sb.WriteString(entry.String())
		sb.WriteByte('\n')
	}
	sb.WriteByte('}')
	return sb.String()
}

// IntervalExpression is from..to or from..=to. To may be nil for an open
// exclusive interval.
type IntervalExpression struct {
	Loc
	From      Expression
	To        Expression
	Inclusive bool
}

func (e *IntervalExpression) String() string {
	op := ".."
	if e.Inclusive {
		op = "..="
	}
	s := e.From.String() + op
	if e.To != nil {
		s += e.To.String()
	}
	return s
}

// EllipsisExpression is ... or ...name inside a tuple, list or map.
type EllipsisExpression struct {
	Loc
	Name string
}

func (e *EllipsisExpression) String() string {
	return "..." + e.Name
}

// Identifier is a possibly qualified, possibly generic name:
// std::Result<T, E>. Prefix marks the !name form.
type Identifier struct {
	Loc
	Dirs     []string
	Name     string
	Generics []DataType
	Prefix   bool
}

func (e *Identifier) dataTypeNode() {}
func (e *Identifier) String() string {
	var sb strings.Builder
	if e.Prefix {
		sb.WriteByte('!')
	}
	for _, d := range e.Dirs {
		sb.WriteString(d)
		sb.WriteString("::")
	}
	sb.WriteString(e.Name)
	if len(e.Generics) > 0 {
		sb.WriteString(genericList(e.Generics))
	}
	return sb.String()
}

func (e *BlockExpression) expressionNode()       {}
func (e *LetExpression) expressionNode()         {}
func (e *IfExpression) expressionNode()          {}
func (e *ForExpression) expressionNode()         {}
func (e *NextExpression) expressionNode()        {}
func (e *EachExpression) expressionNode()        {}
func (e *BranchExpression) expressionNode()      {}
func (e *MatchExpression) expressionNode()       {}
func (e *BinaryExpression) expressionNode()      {}
func (e *UnaryExpression) expressionNode()       {}
func (e *CallExpression) expressionNode()        {}
func (e *MemberExpression) expressionNode()      {}
func (e *ConstructorExpression) expressionNode() {}
func (e *AnonymousFunction) expressionNode()     {}
func (e *SignExpression) expressionNode()        {}
func (e *TupleExpression) expressionNode()       {}
func (e *ListExpression) expressionNode()        {}
func (e *MapExpression) expressionNode()         {}
func (e *IntervalExpression) expressionNode()    {}
func (e *EllipsisExpression) expressionNode()    {}
func (e *Identifier) expressionNode()            {}
