package ir

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func clonableGraph(t *testing.T) (*IR, *MemorySource, *Filter) {
	t.Helper()
	g := NewIR()
	src, err := g.CreateMemorySource(testAst(), "cpu", nil, nil, nil)
	require.NoError(t, err)
	require.NoError(t, src.SetRelation(testRelation()))

	col := g.CreateColumn(testAst(), "count", 0)
	col.Resolve(0, Int64)
	pred := g.CreateFunc(testAst(), "equal", []Expression{col, g.CreateIntLiteral(testAst(), 2)})
	filter, err := g.CreateFilter(testAst(), src, pred)
	require.NoError(t, err)
	_, err = g.CreateMemorySink(testAst(), filter, "out", nil)
	require.NoError(t, err)
	return g, src, filter
}

func TestClonePreservesIDsAndAdjacency(t *testing.T) {
	require := require.New(t)

	g, src, filter := clonableGraph(t)
	c := g.Clone()

	require.Equal(g.DAG().Nodes(), c.DAG().Nodes())
	for _, id := range g.DAG().Nodes() {
		require.Equal(g.DAG().Children(id), c.DAG().Children(id))
	}

	csrc, ok := c.Get(src.ID()).(*MemorySource)
	require.True(ok)
	require.NotSame(src, csrc)
	require.Equal("cpu", csrc.TableName)
	require.True(csrc.RelationSet())
	require.True(csrc.Relation().Equals(src.Relation()))

	cfilter, ok := c.Get(filter.ID()).(*Filter)
	require.True(ok)
	cpred, ok := cfilter.Expr.(*Func)
	require.True(ok)
	require.Equal("equal", cpred.Name)
	ccol, ok := cpred.FuncArgs[0].(*ColumnRef)
	require.True(ok)
	require.True(ccol.Resolved())
	require.Equal(0, ccol.ColumnIndex())
}

func TestCloneIsIndependent(t *testing.T) {
	require := require.New(t)

	g, src, _ := clonableGraph(t)
	c := g.Clone()

	c.DeleteOrphansInSubtree(src.ID())
	require.Empty(c.Operators())
	require.Len(g.Operators(), 3)
	require.True(g.HasNode(src.ID()))
}

func TestCloneSharesNoExpressionPointers(t *testing.T) {
	require := require.New(t)

	g, _, filter := clonableGraph(t)
	c := g.Clone()

	cfilter := c.Get(filter.ID()).(*Filter)
	require.NotSame(filter.Expr, cfilter.Expr)

	// Mutating the clone's expression must not leak into the original.
	cfilter.Expr.(*Func).Name = "not_equal"
	require.Equal("equal", filter.Expr.(*Func).Name)
}

func TestCopyColumnKeepsResolution(t *testing.T) {
	require := require.New(t)

	g := NewIR()
	col := g.CreateColumn(testAst(), "cpu0", 1)
	col.Resolve(3, Float64)
	col.SetAnnotations(Annotations{MetadataType: STPodName})

	cp := g.CopyColumn(col)
	require.NotSame(col, cp)
	require.NotEqual(col.ID(), cp.ID())
	require.Equal("cpu0", cp.Name)
	require.Equal(1, cp.ParentOpIdx)
	require.Equal(3, cp.ColumnIndex())
	require.Equal(Float64, cp.DataType())
	require.Equal(STPodName, cp.Annotations().MetadataType)
}
