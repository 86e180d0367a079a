package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnolang/xuan/ast"
	"github.com/gnolang/xuan/token"
)

type parseCase struct {
	name  string
	input string
	want  string
}

var expressionCases = []parseCase{
	{"multiplication binds tighter", "1+2*3", "(1 + (2 * 3))\n"},
	{"multiplication first", "1*2+3", "((1 * 2) + 3)\n"},
	{"subtraction is left associative", "1-2-3", "((1 - 2) - 3)\n"},
	{"combine is right associative", "1&2&3", "(1 & (2 & 3))\n"},
	{"pipe", "a | f | g", "((a | f) | g)\n"},
	{"logic", "a || b && c", "(a || (b && c))\n"},
	{"equality over relational", "a == b < c", "(a == (b < c))\n"},
	{"concat over additive", "a ++ b + c", "(a ++ (b + c))\n"},
	{"optional or binds tighter than multiplication", "a * b ?? c", "(a * (b ?? c))\n"},
	{"optional and binds tighter than optional or", "a ?? b -> c", "(a ?? (b -> c))\n"},
	{"named operator", "a :add: b + c", "(a :add: (b + c))\n"},
	{"newline after operator", "1 +\n2", "(1 + 2)\n"},
	{"cast after negation", "-x^", "((-x)^)\n"},
	{"negation of unwrap", "-x?", "(-(x?))\n"},
	{"call", "f(1, b=2)", "(f)(1, b=2)\n"},
	{"trailing comma in call", "f(1,\n2,\n)", "(f)(1, 2)\n"},
	{"chained calls", "f(1)(2)", "((f)(1))(2)\n"},
	{"member chain", "a.b.0", "((a.b).0)\n"},
	{"member on next line", "a\n.b", "(a.b)\n"},
	{"index", "a[1]", "(a[1])\n"},
	{"slice", "a[1..3]", "(a[1..3])\n"},
	{"open slice", "a[1..]", "(a[1..])\n"},
	{"list with rest", "[1, 2, ...rest]", "[1, 2, ...rest,]\n"},
	{"list range", "[1..=10]", "[1..=10,]\n"},
	{"empty list", "[]", "[]\n"},
	{"parenthesized", "(1)", "1\n"},
	{"single tuple", "(1,)", "(1,)\n"},
	{"empty tuple", "()", "()\n"},
	{"ellipsis tuple", "(...)", "(...,)\n"},
	{"complex", "3+4i", "3+4i\n"},
	{"imaginary", "5i", "0+5i\n"},
	{"float complex", "1.5+2i", "1.5+2i\n"},
	{"integral float", "314.0", "314.0\n"},
	{"generic identifier", "Point<Int>", "Point<Int>\n"},
	{"nested generics", "Map<String, List<Int>>", "Map<String, List<Int>>\n"},
	{"less than", "a<b", "(a < b)\n"},
	{"qualified name", "std::io::File", "std::io::File\n"},
	{"prefix identifier", "!foo", "!foo\n"},
	{"constructor", "User {id: 1, name}", "User {\nid: 1\nname\n}\n"},
	{"constructor with rest", "User {id: 1, ...}", "User {\nid: 1\n...\n}\n"},
	{"map", "{a: 1}", "{\na: 1\n}\n"},
	{"map with new lines", "{\na: 1\nb: 2\n}", "{\na: 1\nb: 2\n}\n"},
	{"empty map", "{}", "{}\n"},
	{"literals", "[true, 'a', \"s\", #tag, :op:, 8'xff]", "[true, 'a', \"s\", #tag, :op:, 8'xff,]\n"},
	{"raw string", `"""a"b"""`, `"""a"b"""` + "\n"},
	{"template string", "`a {{x}} b`", "`a {{x}} b`\n"},
	{"anonymous function", "fn x = x + 1", "fn (x) = (x + 1)\n"},
	{"anonymous function with types", "fn (Int a, b) type Int = a", "fn (Int a, b) type Int = a\n"},
	{"anonymous function block", "fn (a) {a}", "fn (a) {\na\n}\n"},
	{"sign", "sign (Int, String s) type Int", "sign (Int, String s) type Int\n"},
	{"generic sign", "sign <T> (T) type T", "sign <T> (T) type T\n"},
	{"do block", "do {1, 2}", "do {\n1\n2\n}\n"},
	{"join block", "join {\na\nb\n}", "join {\na\nb\n}\n"},
	{"let", "let x = 1", "let x = 1\n"},
	{"typed let", "let Int x = 1", "let Int x = 1\n"},
	{"let tuple", "let (a, b) = t", "let (a, b,) = t\n"},
	{"let constructor", "let Point {x, y} = p", "let Point {\nx\ny\n} = p\n"},
	{"if", "if a then b else c", "if a then b else c\n"},
	{"if across lines", "if a\nthen b\nelse c", "if a then b else c\n"},
	{"if with where", "if a where b then c", "if a where b then c\n"},
	{"if with blocks", "if a then {b} else {c}", "if a then {\nb\n} else {\nc\n}\n"},
	{"for", "for let i = 0 {next i + 1}", "for let i = 0 {\nnext (i + 1)\n}\n"},
	{"for over identifier", "for let i = user {i}", "for let i = user {\ni\n}\n"},
	{"each", "each x in list {x}", "each x in list {\nx\n}\n"},
	{"each over member", "each x in a.b {x}", "each x in (a.b) {\nx\n}\n"},
	{
		"branch",
		"branch {\ncase a: 1,\ncase b where c: 2\ndefault: 3\n}",
		"branch {\ncase a: 1\ncase b where c: 2\ndefault: 3\n}\n",
	},
	{
		"branch with guard",
		"branch where (x) {\ncase a: 1\n}",
		"branch where (x) {\ncase a: 1\n}\n",
	},
	{
		"match",
		"match x {\ncase 1: a\ncase v @ (a, b): b\ncase in [1, 2]: c\ncase into Email e: d\n" +
			"case regular \"[0-9]+\" (n,): e\ncase template \"a{b}\": f\ndefault: g\n}",
		"match x {\ncase 1: a\ncase v @ (a, b,): b\ncase in [1, 2,]: c\ncase into Email e: d\n" +
			"case regular \"[0-9]+\" (n,): e\ncase template \"a{b}\": f\ndefault: g\n}\n",
	},
	{
		"match guards",
		"match x {\ncase y\nonly y > 0\nwhere z: y\n}",
		"match x {\ncase y only (y > 0) where z: y\n}\n",
	},
	{
		"match constructor pattern",
		"match p {\ncase Point {x, y: 0}: x\n}",
		"match p {\ncase Point {\nx\ny: 0\n}: x\n}\n",
	},
}

var declarationCases = []parseCase{
	{
		"function",
		"function add(Int a, Int b) type Int = a + b",
		"function add (Int a, Int b) type Int = (a + b)\n",
	},
	{"function with default", "function f(Int a = 1) = a", "function f (Int a = 1) = a\n"},
	{"empty function", "empty function f() type Int", "empty function f () type Int\n"},
	{"pattern function", "pattern function f(Int a) {a}", "pattern function f (Int a) {\na\n}\n"},
	{
		"generic function",
		"function id<T>(T x) type T which T: Display = x",
		"function id<T> (T x) type T which {\nT: Display\n} = x\n",
	},
	{
		"which block",
		"function f<T, U>(T t, U u)\nwhich {T: limit Display + Eq, U: Int}\n= t",
		"function f<T, U> (T t, U u) which {\nT: limit Display + Eq\nU: Int\n} = t\n",
	},
	{"use", "use std::io", "use std::io\n"},
	{"const", "const MAX = 100", "const MAX = 100\n"},
	{"typed const", "const Int MAX = 100", "const Int MAX = 100\n"},
	{"member struct", "struct Point {Int x, Int y}", "struct Point {\nInt x\nInt y\n}\n"},
	{"tuple struct", "struct Pair (Int, Int)", "struct Pair (Int, Int,)\n"},
	{"unit struct", "struct Unit", "struct Unit\n"},
	{"union", "union Option<T> {None, Some(T)}", "union Option<T> {\nNone\nSome (T,)\n}\n"},
	{
		"trait",
		"trait Show {\nempty function show(Self s) type String\n}",
		"trait Show {\nempty function show (Self s) type String\n}\n",
	},
	{
		"impl",
		"impl Show for User {\nfunction show(User u) = u.name\n}",
		"impl Show for User {\nfunction show (User u) = (u.name)\n}\n",
	},
	{"alias", "alias Users = List<User>", "alias Users = List<User>\n"},
	{"attribute", "#[test]\nfunction f() = 1", "#[test]\nfunction f () = 1\n"},
	{"statements", "use a\n\nlet x = 1\nx", "use a\nlet x = 1\nx\n"},
}

func TestParseExpressions(t *testing.T) {
	t.Parallel()
	runParseCases(t, expressionCases)
}

func TestParseDeclarations(t *testing.T) {
	t.Parallel()
	runParseCases(t, declarationCases)
}

func runParseCases(t *testing.T, cases []parseCase) {
	t.Helper()

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			program, err := ParseSource(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, program.String())
		})
	}
}

// The printed form of every program must parse back into the same tree.
func TestPrintedFormParsesBack(t *testing.T) {
	t.Parallel()

	cases := append(append([]parseCase{}, expressionCases...), declarationCases...)
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			first, err := ParseSource(tt.input)
			require.NoError(t, err)

			printed := first.String()
			second, err := ParseSource(printed)
			require.NoError(t, err, "reparsing %q", printed)
			assert.Equal(t, printed, second.String())
		})
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		message string
	}{
		{"let with member target", "let x.y = 1", "invalid left-hand-side value"},
		{"let with literal type", "let 1 + 2 = x", "invalid data type"},
		{"let without value", "let x", "expected primary expression"},
		{"let without assign", "let x 1", `expected the specified symbol "="`},
		{"each with member variable", "each x.y in z {1}", "invalid left-hand-side value"},
		{"argument name", "f(a.b=1)", "invalid argument name"},
		{"unclosed tuple", "(1, 2", `expected the right paren symbol ")"`},
		{"unclosed list", "[1 2]", `expected the right bracket symbol "]"`},
		{"unclosed block", "do {\n1\n", `expected the right brace symbol "}"`},
		{"case after default", "match x {\ndefault: 1\ncase 2: 3\n}", `expected the right brace symbol "}"`},
		{"branch item", "branch {\nfoo\n}", "invalid branch expression"},
		{"match item", "match x {\nfoo\n}", "invalid match expression"},
		{"match case starting with guard", "match x {\ncase where y: 1\n}", "invalid match case expression"},
		{"indexed member pattern", "match x {\ncase x[0]: 1\n}", "invalid pattern expression"},
		{"computed member pattern", "match x {\ncase (a + b).y: 1\n}", "invalid pattern expression"},
		{"into without name", "match x {\ncase into Int 1: 1\n}", "invalid into pattern expression"},
		{"regular with placeholder", "match x {\ncase regular `a{{b}}` (c,): 1\n}", "invalid regular string"},
		{"regular without string", "match x {\ncase regular 1 (c,): 1\n}", "invalid regular pattern expression"},
		{"regular without tuple", "match x {\ncase regular \"a\" c: 1\n}", "invalid regular pattern expression"},
		{"template with placeholder", "match x {\ncase template `{{a}}`: 1\n}", "invalid template string"},
		{"property", "a.[1]", "invalid property name"},
		{"inclusive range end", "[1..=]", "expected inclusive range end"},
		{"block items", "do {1 2}", "expected the new-line symbol"},
		{"statement end", "1 2", "expected the new-line symbol"},
		{"attribute target", "#[test]\n1", "attribute must be followed by a declaration"},
		{"placeholder end", "`a {{b}`", "expected template placeholder ending symbol"},
		{"empty placeholder", "`a {{}} b`", "expected template placeholder expression"},
		{"placeholder with two expressions", "`a {{1 2}}`", "expected template placeholder ending symbol"},
		{"missing then body", "if a then", "expected an expression or an expression block"},
		{"anonymous function parameter", "fn 1 = 1", "expected anonymous function parameter"},
		{"struct member name", "struct Point {Int}", "incomplete struct member"},
		{"union variant", "union U {1}", "invalid union variant"},
		{"trait item", "trait T {\nlet x = 1\n}", "expected function declaration"},
		{"constant name", "const a.b = 1", "invalid constant name"},
		{"function parameter name", "function f(Int) = 1", "incomplete function parameter"},
		{"empty which", "function f() which", `expected "which" expression`},
		{"which entry name", "function f() which {1: Int}", "invalid name of which expression entry"},
		{"which entry value", "function f() which T:", "expected which expression entry value"},
		{"missing expression", "let x =", "expected expression"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			program, err := ParseSource(tt.input)
			require.Error(t, err)
			assert.Nil(t, program)

			var tokErr *token.Error
			require.True(t, errors.As(err, &tokErr))
			assert.Equal(t, token.ParserError, tokErr.Kind)
			assert.Equal(t, tt.message, tokErr.Message)
		})
	}
}

func TestLexerErrorPassesThrough(t *testing.T) {
	t.Parallel()

	_, err := ParseSource("let x = $")
	var tokErr *token.Error
	require.True(t, errors.As(err, &tokErr))
	assert.Equal(t, token.LexerError, tokErr.Kind)
}

func TestErrorRange(t *testing.T) {
	t.Parallel()

	_, err := ParseFile(2, "let x.y = 1")
	var tokErr *token.Error
	require.True(t, errors.As(err, &tokErr))
	assert.Equal(t, token.Range{FileID: 2, Start: 4, End: 5}, tokErr.Range)
}

func TestNodeRanges(t *testing.T) {
	t.Parallel()

	program, err := ParseFile(1, "let x = 1 + 2\n")
	require.NoError(t, err)
	require.Len(t, program.Statements, 1)

	stmt := program.Statements[0].(*ast.ExpressionStatement)
	let := stmt.Expression.(*ast.LetExpression)
	assert.Equal(t, token.Range{FileID: 1, Start: 0, End: 13}, let.Span())
	assert.Equal(t, token.Range{FileID: 1, Start: 4, End: 5}, let.Left.Span())
	assert.Equal(t, token.Range{FileID: 1, Start: 8, End: 13}, let.Right.Span())
}

func TestTemplatePlaceholders(t *testing.T) {
	t.Parallel()

	program, err := ParseSource("`a {{x + 1}} b {{y}}`")
	require.NoError(t, err)

	lit := program.Statements[0].(*ast.ExpressionStatement).Expression.(*ast.TemplateStringLiteral)
	assert.Equal(t, []string{"a ", " b ", ""}, lit.Fragments)
	require.Len(t, lit.Expressions, 2)
	assert.Equal(t, "(x + 1)", lit.Expressions[0].String())
	assert.Equal(t, "y", lit.Expressions[1].String())

	// x starts after the backquote and "a {{".
	assert.Equal(t, token.Range{Start: 5, End: 10}, lit.Expressions[0].Span())
}

func TestGenericsFallBackToComparison(t *testing.T) {
	t.Parallel()

	program, err := ParseSource("a < b")
	require.NoError(t, err)

	bin := program.Statements[0].(*ast.ExpressionStatement).Expression.(*ast.BinaryExpression)
	assert.Equal(t, token.LessThan, bin.Operator)

	program, err = ParseSource("n < 10")
	require.NoError(t, err)
	bin = program.Statements[0].(*ast.ExpressionStatement).Expression.(*ast.BinaryExpression)
	assert.Equal(t, token.LessThan, bin.Operator)

	program, err = ParseSource("Point<Int")
	require.NoError(t, err)
	bin = program.Statements[0].(*ast.ExpressionStatement).Expression.(*ast.BinaryExpression)
	assert.Equal(t, token.LessThan, bin.Operator)
	assert.Equal(t, "Point", bin.Left.String())

	program, err = ParseSource("Point<Int>")
	require.NoError(t, err)
	id := program.Statements[0].(*ast.ExpressionStatement).Expression.(*ast.Identifier)
	require.Len(t, id.Generics, 1)
	assert.Equal(t, "Int", id.Generics[0].String())
}

func TestQualifiedCasePatterns(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		member string
	}{
		{"variant", "match c {\ncase Color.Red: 1\ndefault: 0\n}", "(Color.Red)"},
		{"nested path", "match c {\ncase a.b.C: 1\n}", "((a.b).C)"},
		{"destructured variant", "match s {\ncase Shape.Circle(r): r\n}", "(Shape.Circle)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			program, err := ParseSource(tt.input)
			require.NoError(t, err)

			match := program.Statements[0].(*ast.ExpressionStatement).Expression.(*ast.MatchExpression)
			require.Len(t, match.Cases, 1)
			value := match.Cases[0].Pattern.(*ast.PrimaryPattern).Value
			if call, ok := value.(*ast.CallExpression); ok {
				value = call.Callee
			}
			member, ok := value.(*ast.MemberExpression)
			require.True(t, ok, "pattern %T", value)
			assert.Equal(t, tt.member, member.String())

			reparsed, err := ParseSource(program.String())
			require.NoError(t, err)
			assert.Equal(t, program.String(), reparsed.String())
		})
	}
}

func TestComplexLiteralValues(t *testing.T) {
	t.Parallel()

	program, err := ParseSource("3+4i")
	require.NoError(t, err)

	lit := program.Statements[0].(*ast.ExpressionStatement).Expression.(*ast.ComplexLiteral)
	assert.Equal(t, 3.0, lit.Real)
	assert.Equal(t, 4.0, lit.Imaginary)
}

func TestParseEmpty(t *testing.T) {
	t.Parallel()

	program, err := ParseSource("\n\n// nothing\n")
	require.NoError(t, err)
	assert.Empty(t, program.Statements)
	assert.Equal(t, "", program.String())
}
