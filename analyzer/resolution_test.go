package analyzer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flowscope/flowscope/ir"
)

func TestSourceRelationSelectAll(t *testing.T) {
	require := require.New(t)

	g := ir.NewIR()
	src, err := g.CreateMemorySource(testAst(), "cpu", nil, nil, nil)
	require.NoError(err)

	changed, err := (&SourceRelationRule{state: newTestState()}).Execute(g)
	require.NoError(err)
	require.True(changed)

	require.Equal(cpuRelation(), src.Relation())
	require.Len(src.Columns, 4)
	require.Equal(1, src.Columns[1].ColumnIndex())
	require.True(src.Columns[1].Resolved())
}

func TestSourceRelationSubsetKeepsRequestedOrder(t *testing.T) {
	require := require.New(t)

	g := ir.NewIR()
	src, err := g.CreateMemorySource(testAst(), "cpu", []string{"cpu1", "count"}, nil, nil)
	require.NoError(err)

	_, err = (&SourceRelationRule{state: newTestState()}).Execute(g)
	require.NoError(err)

	require.Equal(ir.Relation{
		{Name: "cpu1", Type: ir.Float64},
		{Name: "count", Type: ir.Int64},
	}, src.Relation())
	// the refs still index the catalog relation
	require.Equal(2, src.Columns[0].ColumnIndex())
	require.Equal(0, src.Columns[1].ColumnIndex())
}

func TestSourceRelationMissingTable(t *testing.T) {
	require := require.New(t)

	g := ir.NewIR()
	_, err := g.CreateMemorySource(testAst(), "nonexistent", nil, nil, nil)
	require.NoError(err)

	_, err = (&SourceRelationRule{state: newTestState()}).Execute(g)
	require.Error(err)
	require.True(ir.ErrTableNotFound.Is(errUnwrap(err)))
	require.Contains(err.Error(), "nonexistent")
}

func TestSourceRelationMissingColumns(t *testing.T) {
	require := require.New(t)

	g := ir.NewIR()
	_, err := g.CreateMemorySource(testAst(), "cpu", []string{"cpu0", "bogus"}, nil, nil)
	require.NoError(err)

	_, err = (&SourceRelationRule{state: newTestState()}).Execute(g)
	require.Error(err)
	require.True(ir.ErrColumnsNotFound.Is(errUnwrap(err)))
	require.Contains(err.Error(), "bogus")
}

func TestDataTypeRuleResolvesColumnsAndFuncs(t *testing.T) {
	require := require.New(t)

	g := ir.NewIR()
	src := makeSource(t, g, cpuRelation())
	fn := g.CreateFunc(testAst(), "add", []ir.Expression{
		makeColumn(g, "cpu0", 0), makeColumn(g, "cpu1", 0),
	})
	m, err := g.CreateMap(testAst(), src, []ir.ColumnExpression{{Name: "sum", Expr: fn}}, false)
	require.NoError(err)

	rule := &DataTypeRule{state: newTestState()}
	changed, err := rule.Execute(g)
	require.NoError(err)
	require.True(changed)

	require.True(fn.TypeResolved())
	require.Equal(ir.Float64, fn.DataType())
	require.Equal([]ir.DataType{ir.Float64, ir.Float64}, fn.ArgTypes())

	// converged: nothing more to do
	changed, err = rule.Execute(g)
	require.NoError(err)
	require.False(changed)
	_ = m
}

func TestDataTypeRuleAggregateUsesUDA(t *testing.T) {
	require := require.New(t)

	g := ir.NewIR()
	src := makeSource(t, g, cpuRelation())
	// mean is only registered as an aggregate
	fn := g.CreateFunc(testAst(), "mean", []ir.Expression{makeColumn(g, "cpu0", 0)})
	_, err := g.CreateBlockingAgg(testAst(), src, []*ir.ColumnRef{makeColumn(g, "count", 0)},
		[]ir.ColumnExpression{{Name: "mean_cpu", Expr: fn}})
	require.NoError(err)

	_, err = (&DataTypeRule{state: newTestState()}).Execute(g)
	require.NoError(err)
	require.True(fn.TypeResolved())
	require.Equal(ir.Float64, fn.DataType())
}

func TestDataTypeRuleUnknownFunction(t *testing.T) {
	require := require.New(t)

	g := ir.NewIR()
	src := makeSource(t, g, cpuRelation())
	fn := g.CreateFunc(testAst(), "no_such_func", []ir.Expression{makeColumn(g, "cpu0", 0)})
	_, err := g.CreateMap(testAst(), src, []ir.ColumnExpression{{Name: "v", Expr: fn}}, false)
	require.NoError(err)

	_, err = (&DataTypeRule{state: newTestState()}).Execute(g)
	require.Error(err)
	require.Contains(err.Error(), "no_such_func")
}

func TestDataTypeRuleColumnNotInRelation(t *testing.T) {
	require := require.New(t)

	g := ir.NewIR()
	src := makeSource(t, g, cpuRelation())
	_, err := g.CreateMap(testAst(), src, []ir.ColumnExpression{
		{Name: "v", Expr: makeColumn(g, "bogus", 0)},
	}, false)
	require.NoError(err)

	_, err = (&DataTypeRule{state: newTestState()}).Execute(g)
	require.Error(err)
	require.True(ir.ErrColumnNotFoundInRelation.Is(errUnwrap(err)))
}

func TestOperatorRelationAggGroupsFirst(t *testing.T) {
	require := require.New(t)

	g := ir.NewIR()
	src := makeSource(t, g, cpuRelation())
	agg, err := g.CreateBlockingAgg(testAst(), src, []*ir.ColumnRef{makeColumn(g, "count", 0)},
		[]ir.ColumnExpression{
			{Name: "mean_cpu", Expr: g.CreateFunc(testAst(), "mean", []ir.Expression{makeColumn(g, "cpu0", 0)})},
		})
	require.NoError(err)

	state := newTestState()
	_, err = (&DataTypeRule{state: state}).Execute(g)
	require.NoError(err)
	changed, err := (&OperatorRelationRule{state: state}).Execute(g)
	require.NoError(err)
	require.True(changed)

	require.Equal(ir.Relation{
		{Name: "count", Type: ir.Int64},
		{Name: "mean_cpu", Type: ir.Float64},
	}, agg.Relation())
}

func TestOperatorRelationKeepInputMapExpands(t *testing.T) {
	require := require.New(t)

	g := ir.NewIR()
	src := makeSource(t, g, cpuRelation())
	m, err := g.CreateMap(testAst(), src, []ir.ColumnExpression{
		{Name: "sum", Expr: g.CreateFunc(testAst(), "add", []ir.Expression{
			makeColumn(g, "cpu0", 0), makeColumn(g, "cpu1", 0),
		})},
	}, true)
	require.NoError(err)

	state := newTestState()
	_, err = (&DataTypeRule{state: state}).Execute(g)
	require.NoError(err)
	_, err = (&OperatorRelationRule{state: state}).Execute(g)
	require.NoError(err)

	require.False(m.KeepInputColumns)
	require.Len(m.ColExprs, 5)
	require.Equal(ir.Relation{
		{Name: "count", Type: ir.Int64},
		{Name: "cpu0", Type: ir.Float64},
		{Name: "cpu1", Type: ir.Float64},
		{Name: "upid", Type: ir.UInt128},
		{Name: "sum", Type: ir.Float64},
	}, m.Relation())
}

func TestOperatorRelationUnion(t *testing.T) {
	require := require.New(t)

	g := ir.NewIR()
	a := makeSource(t, g, ir.Relation{
		{Name: "x", Type: ir.Int64},
		{Name: "y", Type: ir.String},
	})
	// same columns, different order
	b := makeSource(t, g, ir.Relation{
		{Name: "y", Type: ir.String},
		{Name: "x", Type: ir.Int64},
	})
	u, err := g.CreateUnion(testAst(), []ir.Operator{a, b})
	require.NoError(err)

	changed, err := (&OperatorRelationRule{state: newTestState()}).Execute(g)
	require.NoError(err)
	require.True(changed)

	// canonical order is the first input's
	require.Equal(ir.Relation{
		{Name: "x", Type: ir.Int64},
		{Name: "y", Type: ir.String},
	}, u.Relation())
	require.Equal([][]int64{{0, 1}, {1, 0}}, u.ColumnMappings)
}

func TestOperatorRelationUnionMismatch(t *testing.T) {
	require := require.New(t)

	g := ir.NewIR()
	a := makeSource(t, g, ir.Relation{{Name: "x", Type: ir.Int64}})
	b := makeSource(t, g, ir.Relation{{Name: "x", Type: ir.String}})
	_, err := g.CreateUnion(testAst(), []ir.Operator{a, b})
	require.NoError(err)

	_, err = (&OperatorRelationRule{state: newTestState()}).Execute(g)
	require.Error(err)
	require.True(ir.ErrUnionMismatch.Is(errUnwrap(err)))
}

func TestOperatorRelationJoinSuffixes(t *testing.T) {
	require := require.New(t)

	g := ir.NewIR()
	left := makeSource(t, g, ir.Relation{
		{Name: "key", Type: ir.Int64},
		{Name: "latency", Type: ir.Float64},
	})
	right := makeSource(t, g, ir.Relation{
		{Name: "key", Type: ir.Int64},
		{Name: "cpu_usage", Type: ir.Float64},
	})
	join, err := g.CreateJoin(testAst(), left, right, ir.InnerJoin,
		[]*ir.ColumnRef{makeColumn(g, "key", 0)},
		[]*ir.ColumnRef{makeColumn(g, "key", 1)},
		[2]string{"_x", "_y"})
	require.NoError(err)

	_, err = (&OperatorRelationRule{state: newTestState()}).Execute(g)
	require.NoError(err)

	require.Equal([]string{"key_x", "latency", "key_y", "cpu_usage"}, join.ColumnNames)
}

func TestOperatorRelationJoinDuplicateAfterSuffix(t *testing.T) {
	require := require.New(t)

	g := ir.NewIR()
	left := makeSource(t, g, ir.Relation{{Name: "key", Type: ir.Int64}})
	right := makeSource(t, g, ir.Relation{{Name: "key", Type: ir.Int64}})
	// empty suffixes leave the collision in place
	_, err := g.CreateJoin(testAst(), left, right, ir.InnerJoin,
		[]*ir.ColumnRef{makeColumn(g, "key", 0)},
		[]*ir.ColumnRef{makeColumn(g, "key", 1)},
		[2]string{"", ""})
	require.NoError(err)

	_, err = (&OperatorRelationRule{state: newTestState()}).Execute(g)
	require.Error(err)
	require.True(ir.ErrDuplicateJoinColumn.Is(errUnwrap(err)))
}

func TestOperatorRelationSinkSubset(t *testing.T) {
	require := require.New(t)

	g := ir.NewIR()
	src := makeSource(t, g, cpuRelation())
	sink, err := g.CreateMemorySink(testAst(), src, "out", []string{"cpu0"})
	require.NoError(err)

	_, err = (&OperatorRelationRule{state: newTestState()}).Execute(g)
	require.NoError(err)
	require.Equal(ir.Relation{{Name: "cpu0", Type: ir.Float64}}, sink.Relation())
}

func TestVerifyFilterExpression(t *testing.T) {
	require := require.New(t)

	g := ir.NewIR()
	src := makeSource(t, g, cpuRelation())
	fn := g.CreateFunc(testAst(), "add", []ir.Expression{
		makeColumn(g, "cpu0", 0), makeColumn(g, "cpu1", 0),
	})
	_, err := g.CreateFilter(testAst(), src, fn)
	require.NoError(err)

	state := newTestState()
	_, err = (&DataTypeRule{state: state}).Execute(g)
	require.NoError(err)

	_, err = (VerifyFilterExpressionRule{}).Execute(g)
	require.Error(err)
	require.True(ir.ErrFilterNotBoolean.Is(errUnwrap(err)))
}

func TestCheckTypesResolvedReportsBlocker(t *testing.T) {
	require := require.New(t)

	g := ir.NewIR()
	src, err := g.CreateMemorySource(testAst(), "cpu", nil, nil, nil)
	require.NoError(err)
	_ = src

	_, err = (CheckTypesResolvedRule{}).Execute(g)
	require.Error(err)
	require.True(ErrUnresolvedRelation.Is(errUnwrap(err)))
}
