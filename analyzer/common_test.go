package analyzer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/flowscope/flowscope/ir"
	"github.com/flowscope/flowscope/planpb"
)

var testNow = time.Date(2020, 6, 1, 12, 0, 0, 0, time.UTC)

func testAst() ir.Ast { return ir.Ast{Line: 1, Col: 2} }

func cpuRelation() ir.Relation {
	return ir.Relation{
		{Name: "count", Type: ir.Int64},
		{Name: "cpu0", Type: ir.Float64},
		{Name: "cpu1", Type: ir.Float64},
		{Name: "upid", Type: ir.UInt128},
	}
}

func networkRelation() ir.Relation {
	return ir.Relation{
		{Name: "bytes_in", Type: ir.Int64},
		{Name: "bytes_out", Type: ir.Int64},
	}
}

func testRegistry() *ir.RegistryInfo {
	r := ir.NewRegistryInfo()
	r.AddUDF("equal", []ir.DataType{ir.Int64, ir.Int64}, ir.Boolean)
	r.AddUDF("add", []ir.DataType{ir.Float64, ir.Float64}, ir.Float64)
	r.AddUDF("add", []ir.DataType{ir.Int64, ir.Int64}, ir.Int64)
	r.AddUDF("upid_to_pod_name", []ir.DataType{ir.UInt128}, ir.String)
	r.AddUDF("upid_to_service_name", []ir.DataType{ir.UInt128}, ir.String)
	r.AddUDA("mean", []ir.DataType{ir.Float64}, ir.Float64)
	r.AddUDA("count", []ir.DataType{ir.Int64}, ir.Int64)
	r.AddUDTF(&planpb.UDTFSourceSpec{
		Name:     "cluster_status",
		Executor: planpb.UDTF_ALL_COORDINATORS,
		Relation: &planpb.Relation{Columns: []*planpb.Column{
			{ColumnName: "node", ColumnType: planpb.STRING},
			{ColumnName: "healthy", ColumnType: planpb.BOOLEAN},
		}},
	})
	return r
}

func newTestState() *ir.CompilerState {
	return newTestStateMaxRows(0)
}

func newTestStateMaxRows(n int64) *ir.CompilerState {
	relations := map[string]ir.Relation{
		"cpu":     cpuRelation(),
		"network": networkRelation(),
	}
	return ir.NewCompilerState(relations, testRegistry(), testNow, n)
}

// makeSource builds a source with its relation already fixed, for rules
// that only care about downstream resolution.
func makeSource(t *testing.T, g *ir.IR, rel ir.Relation) *ir.MemorySource {
	t.Helper()
	src, err := g.CreateMemorySource(testAst(), "cpu", nil, nil, nil)
	require.NoError(t, err)
	require.NoError(t, src.SetRelation(rel))
	return src
}

func makeColumn(g *ir.IR, name string, parentIdx int) *ir.ColumnRef {
	return g.CreateColumn(testAst(), name, parentIdx)
}
