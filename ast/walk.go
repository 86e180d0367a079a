package ast

// Inspect traverses the tree rooted at node in depth-first order. It calls
// f(node); if f returns true, Inspect visits each non-nil child of node.
func Inspect(node Node, f func(Node) bool) {
	if isNil(node) || !f(node) {
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, s := range n.Statements {
			Inspect(s, f)
		}
	case *ExpressionStatement:
		Inspect(n.Expression, f)

	case *FunctionDeclaration:
		Inspect(n.Name, f)
		inspectParameters(n.Parameters, f)
		inspectOptional(n.ReturnType, f)
		inspectWhich(n.Which, f)
		inspectOptional(n.Body, f)
	case *UseDeclaration:
		Inspect(n.Path, f)
	case *ConstDeclaration:
		inspectOptional(n.Type, f)
		Inspect(n.Value, f)
	case *StructDeclaration:
		Inspect(n.Name, f)
		inspectParameters(n.Members, f)
		for _, e := range n.Elements {
			Inspect(e, f)
		}
	case *UnionDeclaration:
		Inspect(n.Name, f)
		for _, v := range n.Variants {
			Inspect(v, f)
		}
	case *TraitDeclaration:
		Inspect(n.Name, f)
		inspectWhich(n.Which, f)
		for _, fn := range n.Functions {
			Inspect(fn, f)
		}
	case *ImplDeclaration:
		Inspect(n.Name, f)
		if n.Target != nil {
			Inspect(n.Target, f)
		}
		for _, fn := range n.Functions {
			Inspect(fn, f)
		}
	case *AliasDeclaration:
		Inspect(n.Name, f)
		Inspect(n.Value, f)

	case *Parameter:
		inspectOptional(n.Type, f)
		inspectOptional(n.Default, f)
	case *WhichClause:
		for _, e := range n.Entries {
			Inspect(e, f)
		}
	case *WhichEntry:
		for _, t := range n.Types {
			Inspect(t, f)
		}

	case *BlockExpression:
		for _, e := range n.Expressions {
			Inspect(e, f)
		}
	case *LetExpression:
		inspectOptional(n.Type, f)
		Inspect(n.Left, f)
		Inspect(n.Right, f)
	case *IfExpression:
		Inspect(n.Test, f)
		inspectOptional(n.Where, f)
		Inspect(n.Consequent, f)
		inspectOptional(n.Alternative, f)
	case *ForExpression:
		Inspect(n.Initializer, f)
		Inspect(n.Body, f)
	case *NextExpression:
		Inspect(n.Value, f)
	case *EachExpression:
		Inspect(n.Variable, f)
		Inspect(n.Object, f)
		Inspect(n.Body, f)
	case *BranchExpression:
		inspectOptional(n.Where, f)
		for _, c := range n.Cases {
			Inspect(c, f)
		}
		inspectOptional(n.Default, f)
	case *BranchCase:
		Inspect(n.Test, f)
		inspectOptional(n.Where, f)
		Inspect(n.Consequent, f)
	case *MatchExpression:
		Inspect(n.Object, f)
		inspectOptional(n.Where, f)
		for _, c := range n.Cases {
			Inspect(c, f)
		}
		inspectOptional(n.Default, f)
	case *MatchCase:
		if n.Pattern != nil {
			Inspect(n.Pattern, f)
		}
		inspectOptional(n.Only, f)
		inspectOptional(n.Where, f)
		Inspect(n.Consequent, f)
	case *BinaryExpression:
		Inspect(n.Left, f)
		Inspect(n.Right, f)
	case *UnaryExpression:
		Inspect(n.Operand, f)
	case *CallExpression:
		Inspect(n.Callee, f)
		for _, a := range n.Arguments {
			Inspect(a, f)
		}
	case *Argument:
		Inspect(n.Value, f)
	case *MemberExpression:
		Inspect(n.Object, f)
		Inspect(n.Property, f)
	case *ConstructorExpression:
		Inspect(n.Object, f)
		Inspect(n.Value, f)
	case *AnonymousFunction:
		inspectParameters(n.Parameters, f)
		inspectOptional(n.ReturnType, f)
		inspectWhich(n.Which, f)
		Inspect(n.Body, f)
	case *SignExpression:
		for _, g := range n.Generics {
			Inspect(g, f)
		}
		inspectParameters(n.Parameters, f)
		inspectOptional(n.ReturnType, f)
		inspectWhich(n.Which, f)
	case *TupleExpression:
		for _, e := range n.Elements {
			Inspect(e, f)
		}
	case *ListExpression:
		for _, e := range n.Elements {
			Inspect(e, f)
		}
	case *MapExpression:
		for _, e := range n.Entries {
			Inspect(e, f)
		}
	case *MapEntry:
		Inspect(n.Key, f)
		inspectOptional(n.Value, f)
	case *IntervalExpression:
		Inspect(n.From, f)
		inspectOptional(n.To, f)
	case *Identifier:
		for _, g := range n.Generics {
			Inspect(g, f)
		}
	case *TemplateStringLiteral:
		for _, e := range n.Expressions {
			Inspect(e, f)
		}

	case *PrimaryPattern:
		Inspect(n.Value, f)
	case *InPattern:
		Inspect(n.Object, f)
	case *IntoPattern:
		Inspect(n.Type, f)
	case *RegularPattern:
		Inspect(n.Captures, f)
	}
}

func inspectOptional[T Node](n T, f func(Node) bool) {
	if !isNil(n) {
		Inspect(n, f)
	}
}

func inspectParameters(params []*Parameter, f func(Node) bool) {
	for _, p := range params {
		Inspect(p, f)
	}
}

func inspectWhich(w *WhichClause, f func(Node) bool) {
	if w != nil {
		Inspect(w, f)
	}
}

// isNil reports whether n is nil or a typed nil pointer.
func isNil(n Node) bool {
	if n == nil {
		return true
	}
	switch v := n.(type) {
	case *Identifier:
		return v == nil
	case *WhichClause:
		return v == nil
	case *LetExpression:
		return v == nil
	case *MapExpression:
		return v == nil
	case *TupleExpression:
		return v == nil
	case *SignExpression:
		return v == nil
	}
	return false
}
