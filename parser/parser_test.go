package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/willowmere/scribe/ast"
	"github.com/willowmere/scribe/errz"
)

func parseStmts(t *testing.T, src string) []ast.Stmt {
	t.Helper()
	program, err := Parse(src)
	require.Nil(t, err)
	return program.Stmts
}

func TestParseExpression(t *testing.T) {
	stmts := parseStmts(t, "1 + 2")
	require.Len(t, stmts, 1)
	stmt, ok := stmts[0].(*ast.ExprStmt)
	require.True(t, ok)
	infix, ok := stmt.X.(*ast.Infix)
	require.True(t, ok)
	require.Equal(t, "+", infix.Op)
}

func TestPrecedence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"a + b * 2", "(a + (b * 2))"},
		{"a * b + 2", "((a * b) + 2)"},
		{"(a + b) * 2", "((a + b) * 2)"},
		{"a + b - c", "((a + b) - c)"},
		{"a / b / c", "((a / b) / c)"},
		{"-a + b", "((-a) + b)"},
		{"a < b == c", "((a < b) == c)"},
		{"not a and b", "((not a) and b)"},
		{"a and b or c and d", "((a and b) or (c and d))"},
		{"not a == b", "(not (a == b))"},
	}
	for _, tt := range tests {
		program, err := Parse(tt.input)
		require.Nil(t, err, tt.input)
		require.Len(t, program.Stmts, 1, tt.input)
		stmt := program.Stmts[0].(*ast.ExprStmt)
		require.Equal(t, tt.want, stmt.X.String(), tt.input)
	}
}

func TestAssignment(t *testing.T) {
	stmts := parseStmts(t, "count = count + 1")
	require.Len(t, stmts, 1)
	assign, ok := stmts[0].(*ast.Assign)
	require.True(t, ok)
	require.Equal(t, "count", assign.Name)
	require.Equal(t, "(count + 1)", assign.Value.String())
}

func TestProgram(t *testing.T) {
	stmts := parseStmts(t, "a = 2\nb = 3\nc = a + b * 2")
	require.Len(t, stmts, 3)
	for _, stmt := range stmts {
		_, ok := stmt.(*ast.Assign)
		require.True(t, ok)
	}
}

func TestBlankLinesAndComments(t *testing.T) {
	stmts := parseStmts(t, "\n\na = 1\n# a comment line\n\nb = 2\n")
	require.Len(t, stmts, 2)
}

func TestIfStatement(t *testing.T) {
	stmts := parseStmts(t, "if x > 1\n  y = 2\nend")
	require.Len(t, stmts, 1)
	stmt, ok := stmts[0].(*ast.If)
	require.True(t, ok)
	require.Equal(t, "(x > 1)", stmt.Cond.String())
	require.Len(t, stmt.Consequence, 1)
	require.Nil(t, stmt.Alternative)
}

func TestIfElse(t *testing.T) {
	stmts := parseStmts(t, "if ready\n  x = 1\nelse\n  x = 2\n  y = 3\nend")
	stmt := stmts[0].(*ast.If)
	require.Len(t, stmt.Consequence, 1)
	require.Len(t, stmt.Alternative, 2)
}

func TestNestedIf(t *testing.T) {
	stmts := parseStmts(t, "if a\n  if b\n    x = 1\n  end\nelse\n  x = 2\nend")
	outer := stmts[0].(*ast.If)
	require.Len(t, outer.Consequence, 1)
	_, ok := outer.Consequence[0].(*ast.If)
	require.True(t, ok)
	require.Len(t, outer.Alternative, 1)
}

func TestWhileStatement(t *testing.T) {
	stmts := parseStmts(t, "while n < 10\n  n = n + 1\nend")
	stmt, ok := stmts[0].(*ast.While)
	require.True(t, ok)
	require.Equal(t, "(n < 10)", stmt.Cond.String())
	require.Len(t, stmt.Body, 1)
}

func TestCalls(t *testing.T) {
	stmts := parseStmts(t, `say("hello", name, 1 + 2)`)
	stmt := stmts[0].(*ast.ExprStmt)
	call, ok := stmt.X.(*ast.Call)
	require.True(t, ok)
	require.Equal(t, "say", call.Name)
	require.Len(t, call.Args, 3)
}

func TestCallNoArgs(t *testing.T) {
	stmts := parseStmts(t, "poll()")
	call := stmts[0].(*ast.ExprStmt).X.(*ast.Call)
	require.Equal(t, "poll", call.Name)
	require.Empty(t, call.Args)
}

func TestDottedCall(t *testing.T) {
	stmts := parseStmts(t, "character.heal(5)")
	call, ok := stmts[0].(*ast.ExprStmt).X.(*ast.Call)
	require.True(t, ok)
	require.Equal(t, "character.heal", call.Name)
	require.Len(t, call.Args, 1)
}

func TestAttributeAccess(t *testing.T) {
	stmts := parseStmts(t, "hp = character.stats.health")
	assign := stmts[0].(*ast.Assign)
	outer, ok := assign.Value.(*ast.GetAttr)
	require.True(t, ok)
	require.Equal(t, "health", outer.Name)
	inner, ok := outer.Object.(*ast.GetAttr)
	require.True(t, ok)
	require.Equal(t, "stats", inner.Name)
}

// Parsing the same source twice yields identical trees: the grammar has
// no hidden state.
func TestParseIdempotent(t *testing.T) {
	src := "a = 1\nif a > 0\n  say(\"yes\")\nelse\n  say(\"no\")\nend\nwhile a < 3\n  a = a + 1\nend"
	first, err := Parse(src)
	require.Nil(t, err)
	second, err := Parse(src)
	require.Nil(t, err)
	require.Equal(t, first.String(), second.String())
}

func TestIncompleteOperand(t *testing.T) {
	// A trailing operator is malformed, not merely unfinished.
	_, err := Parse("1 +")
	require.NotNil(t, err)
	var parseErr *errz.ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, 1, parseErr.Line)
}

func TestUnclosedBlockNeedsMore(t *testing.T) {
	for _, src := range []string{
		"if x > 1",
		"if x > 1\n  y = 2",
		"if x > 1\n  y = 2\nelse",
		"while n < 3\n  n = n + 1",
	} {
		_, err := Parse(src)
		require.NotNil(t, err, src)
		var needMore *errz.NeedMore
		require.ErrorAs(t, err, &needMore, src)
	}
}

func TestDanglingEnd(t *testing.T) {
	_, err := Parse("x = 1\nend")
	require.NotNil(t, err)
	var parseErr *errz.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestFailurePointsAtOffendingLine(t *testing.T) {
	_, err := Parse("a = 1\nb = = 2\nc = 3")
	require.NotNil(t, err)
	var parseErr *errz.ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, 2, parseErr.Line)
	require.Equal(t, "b = = 2", parseErr.LineText)
	require.Contains(t, parseErr.Message, "unexpected token")
}

func TestEmptyProgram(t *testing.T) {
	for _, src := range []string{"", "\n\n", "# just a comment\n"} {
		program, err := Parse(src)
		require.Nil(t, err, src)
		require.Empty(t, program.Stmts, src)
	}
}
