package ast

import "strings"

// Helpers shared by the String methods. They add the parentheses and line
// breaks needed for the printed form to read back as the same tree.

func sequence[T Node](open string, items []T, close string) string {
	if len(items) == 0 {
		return open + close
	}
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = item.String()
	}
	return open + strings.Join(parts, ", ") + "," + close
}

func genericList(types []DataType) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = t.String()
	}
	return "<" + strings.Join(parts, ", ") + ">"
}

func signatureTail(ret DataType, which *WhichClause) string {
	var s string
	if ret != nil {
		s += " type " + ret.String()
	}
	if which != nil {
		s += " " + which.String()
	}
	return s
}

func isImplicitBlock(e Expression) bool {
	b, ok := e.(*BlockExpression)
	return ok && b.Kind == ImplicitBlock
}

// isKeywordLed reports whether e starts with a keyword that greedily
// consumes what follows it.
func isKeywordLed(e Expression) bool {
	switch e := e.(type) {
	case *BlockExpression:
		return e.Kind != ImplicitBlock
	case *LetExpression, *IfExpression, *ForExpression, *NextExpression,
		*EachExpression, *BranchExpression, *MatchExpression, *AnonymousFunction:
		return true
	}
	return false
}

// operand prints an operator argument.
func operand(e Expression) string {
	if isKeywordLed(e) {
		return "(" + e.String() + ")"
	}
	return e.String()
}

// primary prints an expression in a position that only reads a primary
// expression back.
func primary(e Expression) string {
	switch e.(type) {
	case *Identifier, *TupleExpression, *ListExpression, *MapExpression, *SignExpression, Literal:
		return e.String()
	}
	return "(" + e.String() + ")"
}

// body prints an expression in expression-or-block position, where a bare
// brace would open an implicit block rather than a map.
func body(e Expression) string {
	if _, ok := e.(*MapExpression); ok {
		return "(" + e.String() + ")"
	}
	return e.String()
}

func functionBody(e Expression) string {
	if isImplicitBlock(e) {
		return " " + e.String()
	}
	return " = " + body(e)
}

func loopBody(e Expression) string {
	if isImplicitBlock(e) {
		return " " + e.String()
	}
	return "\n" + body(e)
}

// ifPart keeps a nested if from claiming the else arm of its parent.
func ifPart(e Expression) string {
	if _, ok := e.(*IfExpression); ok {
		return "(" + e.String() + ")"
	}
	return body(e)
}

// subject prints an expression that is directly followed by a body brace.
func subject(e Expression) string {
	if _, ok := e.(*ConstructorExpression); ok {
		return "(" + e.String() + ")"
	}
	return operand(e)
}

func headerGuard(e Expression) string {
	switch {
	case e == nil:
		return ""
	case isImplicitBlock(e):
		return " where " + e.String()
	default:
		return " where (" + e.String() + ")"
	}
}

func defaultCase(e Expression) string {
	if e == nil {
		return ""
	}
	return "default: " + body(e) + "\n"
}
