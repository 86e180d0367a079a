package ast

import "strings"

// PrimaryPattern matches against a destructuring expression:
// case (a, b,): ..., case User {id: 1}: ...
type PrimaryPattern struct {
	Loc
	Value Expression
}

func (p *PrimaryPattern) String() string { return p.Value.String() }

// InPattern matches when the subject is an element of Object.
type InPattern struct {
	Loc
	Object Expression
}

func (p *InPattern) String() string { return "in " + primary(p.Object) }

// IntoPattern casts the subject to Type and binds it to Name.
type IntoPattern struct {
	Loc
	Type DataType
	Name string
}

func (p *IntoPattern) String() string { return "into " + p.Type.String() + " " + p.Name }

// RegularPattern matches a regular expression and binds its captures.
type RegularPattern struct {
	Loc
	Pattern  string
	Captures *TupleExpression
}

func (p *RegularPattern) String() string {
	return "regular " + quote(p.Pattern) + " " + p.Captures.String()
}

// TemplatePattern matches a template with {name} holes.
type TemplatePattern struct {
	Loc
	Template string
}

func (p *TemplatePattern) String() string { return "template " + quote(p.Template) }

// quote prefers a quoted string and falls back to the raw form when the
// text holds an unescaped quote.
func quote(s string) string {
	if strings.Contains(s, `"`) && !strings.Contains(s, `\"`) && !strings.Contains(s, `"""`) {
		return `"""` + s + `"""`
	}
	return `"` + s + `"`
}

func (p *PrimaryPattern) patternNode()  {}
func (p *InPattern) patternNode()       {}
func (p *IntoPattern) patternNode()     {}
func (p *RegularPattern) patternNode()  {}
func (p *TemplatePattern) patternNode() {}
