package analyzer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flowscope/flowscope/ir"
)

func TestMergeGroupByIntoAgg(t *testing.T) {
	require := require.New(t)

	g := ir.NewIR()
	src := makeSource(t, g, cpuRelation())
	gb, err := g.CreateGroupBy(testAst(), src, []*ir.ColumnRef{makeColumn(g, "cpu0", 0)})
	require.NoError(err)
	agg, err := g.CreateBlockingAgg(testAst(), gb, nil, []ir.ColumnExpression{
		{Name: "count", Expr: g.CreateFunc(testAst(), "count", []ir.Expression{makeColumn(g, "count", 0)})},
	})
	require.NoError(err)

	changed, err := NewMergeGroupByIntoAggRule().Execute(g)
	require.NoError(err)
	require.True(changed)

	require.Equal([]int64{src.ID()}, agg.ParentIDs())
	require.Len(agg.Groups, 1)
	require.Equal("cpu0", agg.Groups[0].Name)
	// the copy must not alias the groupby's column
	require.NotEqual(gb.Groups[0].ID(), agg.Groups[0].ID())

	changed, err = (RemoveGroupByRule{}).Execute(g)
	require.NoError(err)
	require.True(changed)
	require.False(g.HasNode(gb.ID()))
}

func TestMergeGroupBySharedByTwoAggs(t *testing.T) {
	require := require.New(t)

	g := ir.NewIR()
	src := makeSource(t, g, cpuRelation())
	gb, err := g.CreateGroupBy(testAst(), src, []*ir.ColumnRef{makeColumn(g, "cpu0", 0)})
	require.NoError(err)
	agg1, err := g.CreateBlockingAgg(testAst(), gb, nil, []ir.ColumnExpression{
		{Name: "c", Expr: g.CreateFunc(testAst(), "count", []ir.Expression{makeColumn(g, "count", 0)})},
	})
	require.NoError(err)
	agg2, err := g.CreateBlockingAgg(testAst(), gb, nil, []ir.ColumnExpression{
		{Name: "m", Expr: g.CreateFunc(testAst(), "mean", []ir.Expression{makeColumn(g, "cpu1", 0)})},
	})
	require.NoError(err)

	_, err = NewMergeGroupByIntoAggRule().Execute(g)
	require.NoError(err)
	require.Equal([]int64{src.ID()}, agg1.ParentIDs())
	require.Equal([]int64{src.ID()}, agg2.ParentIDs())

	_, err = (RemoveGroupByRule{}).Execute(g)
	require.NoError(err)
	require.False(g.HasNode(gb.ID()))
}

func TestRemoveGroupByRejectsNonGroupingChild(t *testing.T) {
	require := require.New(t)

	g := ir.NewIR()
	src := makeSource(t, g, cpuRelation())
	gb, err := g.CreateGroupBy(testAst(), src, []*ir.ColumnRef{makeColumn(g, "cpu0", 0)})
	require.NoError(err)
	_, err = g.CreateMap(testAst(), gb, []ir.ColumnExpression{
		{Name: "cpu0", Expr: makeColumn(g, "cpu0", 0)},
	}, false)
	require.NoError(err)

	_, err = (RemoveGroupByRule{}).Execute(g)
	require.Error(err)
	require.True(ir.ErrGroupByUnsupportedChild.Is(errUnwrap(err)))
}

func errUnwrap(err error) error {
	if ce, ok := err.(*ir.CompileError); ok {
		return ce.Err
	}
	return err
}
