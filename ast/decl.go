package ast

import (
	"strings"
)

// FunctionKind distinguishes the function declaration forms.
type FunctionKind int

const (
	RegularFunction FunctionKind = iota // function name(...) = body
	EmptyFunction                       // empty function name(...), no body
	PatternFunction                     // pattern function name(...) = body
)

// Parameter is a function, anonymous function or sign parameter. Type is nil
// for untyped anonymous function parameters and Name is empty for unnamed
// sign parameters.
type Parameter struct {
	Loc
	Type    DataType
	Name    string
	Default Expression
}

func (p *Parameter) String() string {
	var parts []string
	if p.Type != nil {
		parts = append(parts, p.Type.String())
	}
	if p.Name != "" {
		parts = append(parts, p.Name)
	}
	s := strings.Join(parts, " ")
	if p.Default != nil {
		s += " = " + p.Default.String()
	}
	return s
}

func parameterList(params []*Parameter) string {
	items := make([]string, len(params))
	for i, p := range params {
		items[i] = p.String()
	}
	return "(" + strings.Join(items, ", ") + ")"
}

// FunctionDeclaration declares a named function.
type FunctionDeclaration struct {
	Loc
	Attributes []string
	Kind       FunctionKind
	Name       *Identifier
	Parameters []*Parameter
	ReturnType DataType
	Which      *WhichClause
	Body       Expression // nil for EmptyFunction
}

func (d *FunctionDeclaration) statementNode() {}
func (d *FunctionDeclaration) String() string {
	var sb strings.Builder
	sb.WriteString(attributes(d.Attributes))
	switch d.Kind {
	case EmptyFunction:
		sb.WriteString("empty ")
	case PatternFunction:
		sb.WriteString("pattern ")
	}
	sb.WriteString("function ")
	sb.WriteString(d.Name.String())
	sb.WriteByte(' ')
	sb.WriteString(parameterList(d.Parameters))
	sb.WriteString(signatureTail(d.ReturnType, d.Which))
	if d.Body != nil {
		sb.WriteString(functionBody(d.Body))
	}
	return sb.String()
}

// UseDeclaration imports a name: use std::io::File.
type UseDeclaration struct {
	Loc
	Attributes []string
	Path       *Identifier
}

func (d *UseDeclaration) statementNode() {}
func (d *UseDeclaration) String() string {
	return attributes(d.Attributes) + "use " + d.Path.String()
}

// ConstDeclaration binds a constant: const Int MAX = 100.
type ConstDeclaration struct {
	Loc
	Attributes []string
	Type       DataType
	Name       string
	Value      Expression
}

func (d *ConstDeclaration) statementNode() {}
func (d *ConstDeclaration) String() string {
	var sb strings.Builder
	sb.WriteString(attributes(d.Attributes))
	sb.WriteString("const ")
	if d.Type != nil {
		sb.WriteString(d.Type.String())
		sb.WriteByte(' ')
	}
	sb.WriteString(d.Name)
	sb.WriteString(" = ")
	sb.WriteString(d.Value.String())
	return sb.String()
}

// StructKind is the shape of a struct body.
type StructKind int

const (
	UnitStruct   StructKind = iota // struct Empty
	TupleStruct                    // struct Pair (Int, Int,)
	MemberStruct                   // struct Point {Int x, Int y}
)

// StructDeclaration declares a struct. Union variants share this shape.
type StructDeclaration struct {
	Loc
	Attributes []string
	Name       *Identifier
	Kind       StructKind
	Members    []*Parameter // MemberStruct
	Elements   []DataType   // TupleStruct
}

func (d *StructDeclaration) statementNode() {}
func (d *StructDeclaration) String() string {
	return attributes(d.Attributes) + "struct " + d.shape()
}

func (d *StructDeclaration) shape() string {
	var sb strings.Builder
	sb.WriteString(d.Name.String())
	switch d.Kind {
	case TupleStruct:
		sb.WriteByte(' ')
		sb.WriteString(sequence("(", d.Elements, ")"))
	case MemberStruct:
		sb.WriteString(" {\n")
		for _, m := range d.Members {
			sb.WriteString(m.String())
			sb.WriteByte('\n')
		}
		sb.WriteByte('}')
	}
	return sb.String()
}

// UnionDeclaration declares a tagged union of struct shaped variants.
type UnionDeclaration struct {
	Loc
	Attributes []string
	Name       *Identifier
	Variants   []*StructDeclaration
}

func (d *UnionDeclaration) statementNode() {}
func (d *UnionDeclaration) String() string {
	var sb strings.Builder
	sb.WriteString(attributes(d.Attributes))
	sb.WriteString("union ")
	sb.WriteString(d.Name.String())
	sb.WriteString(" {\n")
	for _, v := range d.Variants {
		sb.WriteString(v.shape())
		sb.WriteByte('\n')
	}
	sb.WriteByte('}')
	return sb.String()
}

// TraitDeclaration declares a set of function signatures and defaults.
type TraitDeclaration struct {
	Loc
	Attributes []string
	Name       *Identifier
	Which      *WhichClause
	Functions  []*FunctionDeclaration
}

func (d *TraitDeclaration) statementNode() {}
func (d *TraitDeclaration) String() string {
	var sb strings.Builder
	sb.WriteString(attributes(d.Attributes))
	sb.WriteString("trait ")
	sb.WriteString(d.Name.String())
	if d.Which != nil {
		sb.WriteString(" " + d.Which.String())
	}
	sb.WriteString(functionList(d.Functions))
	return sb.String()
}

// ImplDeclaration attaches functions to a type, optionally for a trait:
// impl Display for User {...}.
type ImplDeclaration struct {
	Loc
	Attributes []string
	Name       *Identifier
	Target     *Identifier
	Functions  []*FunctionDeclaration
}

func (d *ImplDeclaration) statementNode() {}
func (d *ImplDeclaration) String() string {
	var sb strings.Builder
	sb.WriteString(attributes(d.Attributes))
	sb.WriteString("impl ")
	sb.WriteString(d.Name.String())
	if d.Target != nil {
		sb.WriteString(" for ")
		sb.WriteString(d.Target.String())
	}
	sb.WriteString(functionList(d.Functions))
	return sb.String()
}

// AliasDeclaration names a data type: alias Users = List<User>.
type AliasDeclaration struct {
	Loc
	Attributes []string
	Name       *Identifier
	Value      DataType
}

func (d *AliasDeclaration) statementNode() {}
func (d *AliasDeclaration) String() string {
	return attributes(d.Attributes) + "alias " + d.Name.String() + " = " + d.Value.String()
}

func attributes(attrs []string) string {
	var sb strings.Builder
	for _, a := range attrs {
		sb.WriteString("#[")
		sb.WriteString(a)
		sb.WriteString("]\n")
	}
	return sb.String()
}

func functionList(fns []*FunctionDeclaration) string {
	var sb strings.Builder
	sb.WriteString(" {\n")
	for _, f := range fns {
		sb.WriteString(f.String())
		sb.WriteByte('\n')
	}
	sb.WriteByte('}')
	return sb.String()
}
