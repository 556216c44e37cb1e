package analyzer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flowscope/flowscope/ir"
)

func TestCleanUpStrayIRNodes(t *testing.T) {
	require := require.New(t)

	g := ir.NewIR()
	src := makeSource(t, g, cpuRelation())
	kept := makeColumn(g, "cpu0", 0)
	_, err := g.CreateMap(testAst(), src, []ir.ColumnExpression{{Name: "v", Expr: kept}}, false)
	require.NoError(err)

	stray := makeColumn(g, "cpu1", 0)
	strayFn := g.CreateFunc(testAst(), "add", []ir.Expression{stray, makeColumn(g, "count", 0)})

	changed, err := (CleanUpStrayIRNodesRule{}).Execute(g)
	require.NoError(err)
	require.True(changed)

	require.True(g.HasNode(kept.ID()))
	require.False(g.HasNode(stray.ID()))
	require.False(g.HasNode(strayFn.ID()))
}

func TestPruneUnconnectedOperators(t *testing.T) {
	require := require.New(t)

	g := ir.NewIR()
	src := makeSource(t, g, cpuRelation())
	m, err := g.CreateMap(testAst(), src, []ir.ColumnExpression{
		{Name: "v", Expr: makeColumn(g, "cpu0", 0)},
	}, false)
	require.NoError(err)
	_, err = g.CreateMemorySink(testAst(), m, "out", nil)
	require.NoError(err)

	// a dangling branch off the same source, with no sink below it
	deadCol := makeColumn(g, "cpu1", 0)
	dead, err := g.CreateMap(testAst(), src, []ir.ColumnExpression{{Name: "w", Expr: deadCol}}, false)
	require.NoError(err)

	changed, err := (PruneUnconnectedOperatorsRule{}).Execute(g)
	require.NoError(err)
	require.True(changed)

	require.False(g.HasNode(dead.ID()))
	require.False(g.HasNode(deadCol.ID()))
	require.True(g.HasNode(src.ID()))
	require.True(g.HasNode(m.ID()))

	changed, err = (PruneUnconnectedOperatorsRule{}).Execute(g)
	require.NoError(err)
	require.False(changed)
}
