// Package compiler ties the planning stages together: a script builds an IR
// graph through the lang surface, the analyzer validates and rewrites it,
// and the result is serialized as an executable plan, either single-node or
// split across a cluster. Callers get either a complete plan or a positioned
// error group, never a partial plan.
package compiler

import (
	"github.com/flowscope/flowscope/analyzer"
	"github.com/flowscope/flowscope/distributed"
	"github.com/flowscope/flowscope/ir"
	"github.com/flowscope/flowscope/lang"
	"github.com/flowscope/flowscope/planpb"
)

// BuildFn constructs a graph through the dataframe surface. It stands in
// for the external script parser: the parser walks its AST and makes these
// same calls.
type BuildFn func(m *lang.Module) error

// Compiler compiles scripts against one immutable compiler state. A
// Compiler may be shared; each Compile call works on its own graph.
type Compiler struct {
	state *ir.CompilerState
}

// New returns a Compiler over state.
func New(state *ir.CompilerState) *Compiler {
	return &Compiler{state: state}
}

// compileIR runs build and the analyzer, returning the finished graph.
func (c *Compiler) compileIR(build BuildFn) (*ir.IR, *ErrorGroup) {
	m := lang.NewModule(c.state)
	if err := build(m); err != nil {
		return nil, asGroup(err)
	}
	g := m.IR()
	if err := analyzer.New(c.state).Analyze(g); err != nil {
		return nil, asGroup(err)
	}
	return g, nil
}

// Compile turns a script into one executable plan.
func (c *Compiler) Compile(build BuildFn) (*planpb.Plan, *ErrorGroup) {
	g, errg := c.compileIR(build)
	if errg != nil {
		return nil, errg
	}
	pb, err := g.ToPlanProto()
	if err != nil {
		return nil, asGroup(err)
	}
	return pb, nil
}

// CompileDistributed turns a script into a per-node plan set for the
// cluster described by nodes.
func (c *Compiler) CompileDistributed(build BuildFn, nodes []*planpb.ExecutorInfo) (*planpb.DistributedPlan, *ErrorGroup) {
	g, errg := c.compileIR(build)
	if errg != nil {
		return nil, errg
	}
	p, err := distributed.NewPlanner().Plan(nodes, g)
	if err != nil {
		return nil, asGroup(err)
	}
	pb, err := p.ToProto()
	if err != nil {
		return nil, asGroup(err)
	}
	return pb, nil
}

// ExprFn builds one bare expression over a dataframe's columns.
type ExprFn func(m *lang.Module, df *lang.DataFrame) (ir.Expression, error)

// CompileExpression type-checks a single expression against a table's
// columns, for flag and default-value evaluation outside a full script. It
// returns the expression's resolved data type.
func (c *Compiler) CompileExpression(table string, build ExprFn) (ir.DataType, *ErrorGroup) {
	const exprCol = "expr_out"
	g, errg := c.compileIR(func(m *lang.Module) error {
		df, err := m.DataFrame(ir.Ast{Line: 1, Col: 1}, table, lang.DataFrameArgs{})
		if err != nil {
			return err
		}
		expr, err := build(m, df)
		if err != nil {
			return err
		}
		df, err = df.Map(ir.Ast{Line: 1, Col: 1}, []ir.ColumnExpression{{Name: exprCol, Expr: expr}})
		if err != nil {
			return err
		}
		return df.Display(ir.Ast{Line: 1, Col: 1}, "expr")
	})
	if errg != nil {
		return ir.UnknownType, errg
	}
	for _, op := range g.Operators() {
		sink, ok := op.(*ir.MemorySink)
		if !ok {
			continue
		}
		for _, col := range sink.Relation() {
			if col.Name == exprCol {
				return col.Type, nil
			}
		}
	}
	return ir.UnknownType, nil
}
