package analyzer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flowscope/flowscope/ir"
)

func TestCombineConsecutiveMaps(t *testing.T) {
	require := require.New(t)

	g := ir.NewIR()
	src := makeSource(t, g, cpuRelation())
	parent, err := g.CreateMap(testAst(), src, []ir.ColumnExpression{
		{Name: "sum", Expr: g.CreateFunc(testAst(), "add", []ir.Expression{
			makeColumn(g, "cpu0", 0), makeColumn(g, "cpu1", 0),
		})},
	}, true)
	require.NoError(err)
	child, err := g.CreateMap(testAst(), parent, []ir.ColumnExpression{
		{Name: "count2", Expr: makeColumn(g, "count", 0)},
	}, true)
	require.NoError(err)
	sink, err := g.CreateMemorySink(testAst(), child, "out", nil)
	require.NoError(err)

	changed, err := (CombineConsecutiveMapsRule{}).Execute(g)
	require.NoError(err)
	require.True(changed)

	require.False(g.HasNode(child.ID()))
	require.Equal([]int64{parent.ID()}, sink.ParentIDs())
	names := make([]string, len(parent.ColExprs))
	for i, ce := range parent.ColExprs {
		names[i] = ce.Name
	}
	require.Equal([]string{"sum", "count2"}, names)
	// the surviving map keeps its own pass-through behavior
	require.True(parent.KeepInputColumns)
}

func TestCombineConsecutiveMapsChildWinsCollision(t *testing.T) {
	require := require.New(t)

	g := ir.NewIR()
	src := makeSource(t, g, cpuRelation())
	parent, err := g.CreateMap(testAst(), src, []ir.ColumnExpression{
		{Name: "v", Expr: makeColumn(g, "cpu0", 0)},
	}, true)
	require.NoError(err)
	_, err = g.CreateMap(testAst(), parent, []ir.ColumnExpression{
		{Name: "v", Expr: makeColumn(g, "cpu1", 0)},
	}, true)
	require.NoError(err)

	changed, err := (CombineConsecutiveMapsRule{}).Execute(g)
	require.NoError(err)
	require.True(changed)

	require.Len(parent.ColExprs, 1)
	col, ok := parent.ColExprs[0].Expr.(*ir.ColumnRef)
	require.True(ok)
	require.Equal("cpu1", col.Name)
}

func TestCombineConsecutiveMapsBlockedByDependency(t *testing.T) {
	require := require.New(t)

	g := ir.NewIR()
	src := makeSource(t, g, cpuRelation())
	parent, err := g.CreateMap(testAst(), src, []ir.ColumnExpression{
		{Name: "sum", Expr: makeColumn(g, "cpu0", 0)},
	}, false)
	require.NoError(err)
	child, err := g.CreateMap(testAst(), parent, []ir.ColumnExpression{
		{Name: "double", Expr: g.CreateFunc(testAst(), "add", []ir.Expression{
			makeColumn(g, "sum", 0), makeColumn(g, "sum", 0),
		})},
	}, true)
	require.NoError(err)

	changed, err := (CombineConsecutiveMapsRule{}).Execute(g)
	require.NoError(err)
	require.False(changed)
	require.True(g.HasNode(child.ID()))
}

func TestCombineConsecutiveMapsNotOnlyChild(t *testing.T) {
	require := require.New(t)

	g := ir.NewIR()
	src := makeSource(t, g, cpuRelation())
	parent, err := g.CreateMap(testAst(), src, []ir.ColumnExpression{
		{Name: "sum", Expr: makeColumn(g, "cpu0", 0)},
	}, true)
	require.NoError(err)
	_, err = g.CreateMap(testAst(), parent, []ir.ColumnExpression{
		{Name: "count2", Expr: makeColumn(g, "count", 0)},
	}, true)
	require.NoError(err)
	// a second consumer of the parent blocks fusion
	_, err = g.CreateMemorySink(testAst(), parent, "other", nil)
	require.NoError(err)

	changed, err := (CombineConsecutiveMapsRule{}).Execute(g)
	require.NoError(err)
	require.False(changed)
}
