package ir

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContainingOp(t *testing.T) {
	require := require.New(t)

	g := NewIR()
	src, err := g.CreateMemorySource(testAst(), "cpu", nil, nil, nil)
	require.NoError(err)
	pred := g.CreateColumn(testAst(), "count", 0)
	filter, err := g.CreateFilter(testAst(), src, pred)
	require.NoError(err)

	op, ok := g.ContainingOp(pred)
	require.True(ok)
	require.Same(Operator(filter), op)

	stray := g.CreateIntLiteral(testAst(), 1)
	_, ok = g.ContainingOp(stray)
	require.False(ok)
}

func TestContainingOpFindsNestedArgs(t *testing.T) {
	require := require.New(t)

	g := NewIR()
	src, err := g.CreateMemorySource(testAst(), "cpu", nil, nil, nil)
	require.NoError(err)
	inner := g.CreateColumn(testAst(), "cpu0", 0)
	outer := g.CreateFunc(testAst(), "add", []Expression{inner, g.CreateLiteral(testAst(), Float64, 1.0)})
	m, err := g.CreateMap(testAst(), src, []ColumnExpression{{Name: "x", Expr: outer}}, false)
	require.NoError(err)

	op, ok := g.ContainingOp(inner)
	require.True(ok)
	require.Same(Operator(m), op)
}

func TestReplaceExprInFilter(t *testing.T) {
	require := require.New(t)

	g := NewIR()
	src, err := g.CreateMemorySource(testAst(), "cpu", nil, nil, nil)
	require.NoError(err)
	old := g.CreateColumn(testAst(), "count", 0)
	filter, err := g.CreateFilter(testAst(), src, old)
	require.NoError(err)

	repl := g.CreateFunc(testAst(), "equal", []Expression{g.CreateIntLiteral(testAst(), 1), g.CreateIntLiteral(testAst(), 1)})
	require.True(g.ReplaceExpr(filter, old, repl))
	require.Same(Expression(repl), filter.Expr)

	// Replacing an expression that is not present reports no change.
	require.False(g.ReplaceExpr(filter, old, repl))
}

func TestReplaceExprInsideFuncArgs(t *testing.T) {
	require := require.New(t)

	g := NewIR()
	src, err := g.CreateMemorySource(testAst(), "cpu", nil, nil, nil)
	require.NoError(err)
	inner := g.CreateMetadata(testAst(), "pod_name", 0)
	outer := g.CreateFunc(testAst(), "equal", []Expression{inner, g.CreateStringLiteral(testAst(), "web")})
	filter, err := g.CreateFilter(testAst(), src, outer)
	require.NoError(err)

	repl := g.CreateColumn(testAst(), "_attr_pod_name", 0)
	require.True(g.ReplaceExpr(filter, inner, repl))
	require.Same(Expression(repl), outer.FuncArgs[0])
	require.Same(Expression(outer), filter.Expr)
}

func TestReplaceExprGroupColumnRequiresColumnRef(t *testing.T) {
	require := require.New(t)

	g := NewIR()
	src, err := g.CreateMemorySource(testAst(), "cpu", nil, nil, nil)
	require.NoError(err)
	group := g.CreateColumn(testAst(), "count", 0)
	agg, err := g.CreateBlockingAgg(testAst(), src, []*ColumnRef{group}, nil)
	require.NoError(err)

	// Group slots only take column references; a literal cannot land there.
	require.False(g.ReplaceExpr(agg, group, g.CreateIntLiteral(testAst(), 1)))

	repl := g.CreateColumn(testAst(), "cpu0", 0)
	require.True(g.ReplaceExpr(agg, group, repl))
	require.Same(repl, agg.Groups[0])
}
