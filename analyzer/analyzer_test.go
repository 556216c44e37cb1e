package analyzer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flowscope/flowscope/ir"
)

func TestAnalyzeEndToEnd(t *testing.T) {
	require := require.New(t)

	g := ir.NewIR()
	src, err := g.CreateMemorySource(testAst(), "cpu", nil,
		g.CreateStringLiteral(testAst(), "-5m"), nil)
	require.NoError(err)
	gb, err := g.CreateGroupBy(testAst(), src, []*ir.ColumnRef{makeColumn(g, "count", 0)})
	require.NoError(err)
	agg, err := g.CreateBlockingAgg(testAst(), gb, nil, []ir.ColumnExpression{
		{Name: "mean_cpu", Expr: g.CreateFunc(testAst(), "mean", []ir.Expression{makeColumn(g, "cpu0", 0)})},
	})
	require.NoError(err)
	sink, err := g.CreateMemorySink(testAst(), agg, "out", nil)
	require.NoError(err)

	a := New(newTestState())
	require.NoError(a.Analyze(g))

	// groupby merged and removed
	require.False(g.HasNode(gb.ID()))
	require.Equal([]int64{src.ID()}, agg.ParentIDs())

	require.True(src.TimeSet)
	require.Equal(ir.Relation{
		{Name: "count", Type: ir.Int64},
		{Name: "mean_cpu", Type: ir.Float64},
	}, sink.Relation())

	// unused source columns pruned
	require.Equal([]string{"count", "cpu0"}, src.ColumnNames)

	for _, op := range g.Operators() {
		require.True(op.RelationSet(), "relation not set for %s", op.DebugString())
	}
}

func TestAnalyzeWithRowCapAndRename(t *testing.T) {
	require := require.New(t)

	g := ir.NewIR()
	src, err := g.CreateMemorySource(testAst(), "cpu", nil, nil, nil)
	require.NoError(err)
	m, err := g.CreateMap(testAst(), src, []ir.ColumnExpression{
		{Name: "pod", Expr: g.CreateMetadata(testAst(), "pod_name", 0)},
	}, false)
	require.NoError(err)
	sink, err := g.CreateMemorySink(testAst(), m, "out", nil)
	require.NoError(err)

	a := New(newTestStateMaxRows(500))
	require.NoError(a.Analyze(g))

	// metadata lowered to a tagged conversion function
	fn, ok := m.ColExprs[0].Expr.(*ir.Func)
	require.True(ok)
	require.Equal("upid_to_pod_name", fn.Name)
	require.Equal(ir.STPodName, fn.Annotations().MetadataType)

	// row cap enforced below the source
	limit, ok := m.Parents()[0].(*ir.Limit)
	require.True(ok)
	require.Equal(int64(500), limit.LimitValue)

	require.Equal(ir.Relation{
		{Name: "pod", Type: ir.String, SemanticType: ir.STPodName},
	}, sink.Relation())
}

func TestAnalyzeTableFunctionSource(t *testing.T) {
	require := require.New(t)

	state := newTestState()
	spec, ok := state.Registry().GetUDTF("cluster_status")
	require.True(ok)

	g := ir.NewIR()
	src, err := g.CreateUDTFSource(testAst(), spec, nil)
	require.NoError(err)
	filter, err := g.CreateFilter(testAst(), src, makeColumn(g, "healthy", 0))
	require.NoError(err)
	sink, err := g.CreateMemorySink(testAst(), filter, "out", nil)
	require.NoError(err)

	require.NoError(New(state).Analyze(g))

	// the declared relation flows from the source through the filter
	require.Equal(ir.Relation{
		{Name: "node", Type: ir.String},
		{Name: "healthy", Type: ir.Boolean},
	}, sink.Relation())
	for _, op := range g.Operators() {
		require.True(op.RelationSet(), "relation not set for %s", op.DebugString())
	}
}

func TestAnalyzeMissingTable(t *testing.T) {
	require := require.New(t)

	g := ir.NewIR()
	src, err := g.CreateMemorySource(testAst(), "missing_table", nil, nil, nil)
	require.NoError(err)
	_, err = g.CreateMemorySink(testAst(), src, "out", nil)
	require.NoError(err)

	err = New(newTestState()).Analyze(g)
	require.Error(err)
	require.Contains(err.Error(), "missing_table")

	ce, ok := err.(*ir.CompileError)
	require.True(ok)
	require.Equal(1, ce.Line)
}

func TestBatchHitsIterationCap(t *testing.T) {
	require := require.New(t)

	b := &Batch{
		Desc:       "never-converges",
		Iterations: 5,
		Rules:      []Rule{alwaysChanges{}},
	}
	err := b.Eval(New(newTestState()), ir.NewIR())
	require.Error(err)
	require.True(ErrMaxAnalysisIters.Is(err))
}

type alwaysChanges struct{}

func (alwaysChanges) Name() string                 { return "always_changes" }
func (alwaysChanges) Execute(*ir.IR) (bool, error) { return true, nil }
