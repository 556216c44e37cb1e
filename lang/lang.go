// Package lang is the script-facing builder surface: dataframe-style method
// calls that translate into IR node construction, carrying source positions
// into any compile error they raise.
package lang

import (
	errors "gopkg.in/src-d/go-errors.v1"

	"github.com/flowscope/flowscope/ir"
)

var (
	// ErrInvalidJoinType is raised for a merge how= value outside
	// inner/left/right/outer.
	ErrInvalidJoinType = errors.NewKind("'%s' is not a supported join type")
	// ErrMergeOnMismatch is raised when left_on and right_on differ in length.
	ErrMergeOnMismatch = errors.NewKind("left_on (%d columns) and right_on (%d columns) must have the same length")
	// ErrUDTFNotFound is raised for a call to an unregistered table function.
	ErrUDTFNotFound = errors.NewKind("no table function named '%s'")
)

// Module owns one IR graph under construction and the compiler state the
// script compiles against.
type Module struct {
	g     *ir.IR
	state *ir.CompilerState
}

// NewModule starts an empty graph against state.
func NewModule(state *ir.CompilerState) *Module {
	return &Module{g: ir.NewIR(), state: state}
}

// IR returns the graph built so far.
func (m *Module) IR() *ir.IR { return m.g }

// DataFrameArgs are the optional arguments of a DataFrame call. A nil Select
// means every table column; nil times leave the source unwindowed.
type DataFrameArgs struct {
	Select []string
	Start  ir.Expression
	Stop   ir.Expression
}

// DataFrame opens a table as a dataframe.
func (m *Module) DataFrame(ast ir.Ast, table string, args DataFrameArgs) (*DataFrame, error) {
	src, err := m.g.CreateMemorySource(ast, table, args.Select, args.Start, args.Stop)
	if err != nil {
		return nil, err
	}
	return &DataFrame{m: m, op: src}, nil
}

// TableFunc opens a registered table function call as a dataframe.
func (m *Module) TableFunc(ast ir.Ast, name string, args ...*ir.Literal) (*DataFrame, error) {
	spec, ok := m.state.Registry().GetUDTF(name)
	if !ok {
		return nil, &ir.CompileError{Line: ast.Line, Col: ast.Col, Err: ErrUDTFNotFound.New(name)}
	}
	src, err := m.g.CreateUDTFSource(ast, spec, args)
	if err != nil {
		return nil, err
	}
	return &DataFrame{m: m, op: src}, nil
}

// Int builds an integer constant.
func (m *Module) Int(ast ir.Ast, v int64) *ir.Literal { return m.g.CreateIntLiteral(ast, v) }

// Float builds a float constant.
func (m *Module) Float(ast ir.Ast, v float64) *ir.Literal {
	return m.g.CreateLiteral(ast, ir.Float64, v)
}

// Str builds a string constant. Time-valued arguments (start/stop times,
// rolling windows) take strings like "-5m" here and are folded to absolute
// nanoseconds during analysis.
func (m *Module) Str(ast ir.Ast, v string) *ir.Literal { return m.g.CreateStringLiteral(ast, v) }

// Bool builds a boolean constant.
func (m *Module) Bool(ast ir.Ast, v bool) *ir.Literal {
	return m.g.CreateLiteral(ast, ir.Boolean, v)
}

// Fn builds a function call expression.
func (m *Module) Fn(ast ir.Ast, name string, args ...ir.Expression) *ir.Func {
	return m.g.CreateFunc(ast, name, args)
}
