package ir

import (
	"fmt"

	"github.com/flowscope/flowscope/planpb"
)

// MemorySource reads a table from the node-local data store. ColumnNames is
// the user-requested subset; empty means every catalog column. Columns is
// populated by the source relation rule.
type MemorySource struct {
	baseOperator
	TableName   string
	ColumnNames []string
	Columns     []*ColumnRef

	StartTimeExpr Expression
	StopTimeExpr  Expression
	TimeStartNS   int64
	TimeStopNS    int64
	TimeSet       bool
}

func (m *MemorySource) DebugString() string { return fmt.Sprintf("MemorySource(%s)", m.TableName) }
func (m *MemorySource) IsSource() bool      { return true }

// SelectAll reports whether the source takes every catalog column.
func (m *MemorySource) SelectAll() bool { return len(m.ColumnNames) == 0 }

// SetTimesNS records the resolved absolute time window.
func (m *MemorySource) SetTimesNS(start, stop int64) {
	m.TimeStartNS = start
	m.TimeStopNS = stop
	m.TimeSet = true
	m.StartTimeExpr = nil
	m.StopTimeExpr = nil
}

func (m *MemorySource) Expressions() []Expression {
	var out []Expression
	for _, c := range m.Columns {
		out = append(out, c)
	}
	if m.StartTimeExpr != nil {
		out = append(out, m.StartTimeExpr)
	}
	if m.StopTimeExpr != nil {
		out = append(out, m.StopTimeExpr)
	}
	return out
}

// MemorySink terminates a chain and names the result table sent back to the
// client.
type MemorySink struct {
	baseOperator
	SinkName       string
	OutColumnNames []string
}

func (m *MemorySink) DebugString() string { return fmt.Sprintf("MemorySink(%s)", m.SinkName) }

// Map evaluates named expressions over each input row. With
// KeepInputColumns set, the output is the parent's columns followed by the
// declared expressions.
type Map struct {
	baseOperator
	ColExprs         []ColumnExpression
	KeepInputColumns bool
}

func (m *Map) DebugString() string { return fmt.Sprintf("Map(%s)", debugExprList(m.ColExprs)) }

func (m *Map) Expressions() []Expression {
	out := make([]Expression, 0, len(m.ColExprs))
	for _, ce := range m.ColExprs {
		out = append(out, ce.Expr)
	}
	return out
}

// Filter keeps rows for which Expr evaluates true.
type Filter struct {
	baseOperator
	Expr Expression
}

func (f *Filter) DebugString() string { return "Filter" }

func (f *Filter) Expressions() []Expression { return []Expression{f.Expr} }

// Limit caps the number of rows passed through.
type Limit struct {
	baseOperator
	LimitValue int64
}

func (l *Limit) DebugString() string { return fmt.Sprintf("Limit(%d)", l.LimitValue) }

// BlockingAgg aggregates its input, optionally grouped. Groups may be merged
// in from an upstream GroupBy.
type BlockingAgg struct {
	baseOperator
	Groups     []*ColumnRef
	Aggregates []ColumnExpression
}

func (a *BlockingAgg) DebugString() string {
	return fmt.Sprintf("BlockingAgg(%s)", debugExprList(a.Aggregates))
}

func (a *BlockingAgg) Expressions() []Expression {
	var out []Expression
	for _, g := range a.Groups {
		out = append(out, g)
	}
	for _, ce := range a.Aggregates {
		out = append(out, ce.Expr)
	}
	return out
}

// GroupBy only records group columns; it is always absorbed into a
// downstream aggregating consumer before plan emission.
type GroupBy struct {
	baseOperator
	Groups []*ColumnRef
}

func (g *GroupBy) DebugString() string { return "GroupBy" }

func (g *GroupBy) Expressions() []Expression {
	out := make([]Expression, 0, len(g.Groups))
	for _, c := range g.Groups {
		out = append(out, c)
	}
	return out
}

// JoinType is the user-visible join orientation.
type JoinType int

const (
	InnerJoin JoinType = iota
	LeftJoin
	OuterJoin
	RightJoin
)

func (t JoinType) String() string {
	switch t {
	case InnerJoin:
		return "inner"
	case LeftJoin:
		return "left"
	case OuterJoin:
		return "outer"
	case RightJoin:
		return "right"
	}
	return "unknown"
}

// Join combines two parents on equality columns. Right joins are rewritten
// into left joins with swapped parents before relation inference;
// SpecifiedType keeps the orientation the user asked for so output column
// order can be restored.
type Join struct {
	baseOperator
	Type          JoinType
	SpecifiedType JoinType
	LeftOn        []*ColumnRef
	RightOn       []*ColumnRef
	Suffixes      [2]string

	// Filled by the relation rule: the ordered output projection.
	OutputColumns []*ColumnRef
	ColumnNames   []string
}

func (j *Join) DebugString() string { return fmt.Sprintf("Join(%s)", j.Type) }

// FlipParents swaps the join's parent order and repoints the equality
// columns at their new parent positions. The DAG edges do not change.
func (j *Join) FlipParents() {
	j.parents[0], j.parents[1] = j.parents[1], j.parents[0]
	for _, c := range j.LeftOn {
		c.ParentOpIdx = 1 - c.ParentOpIdx
	}
	for _, c := range j.RightOn {
		c.ParentOpIdx = 1 - c.ParentOpIdx
	}
}

func (j *Join) Expressions() []Expression {
	var out []Expression
	for _, c := range j.LeftOn {
		out = append(out, c)
	}
	for _, c := range j.RightOn {
		out = append(out, c)
	}
	for _, c := range j.OutputColumns {
		out = append(out, c)
	}
	return out
}

// Union concatenates any number of parents that share a column set. The
// relation rule records, per parent, the mapping from the canonical output
// order to that parent's column order.
type Union struct {
	baseOperator
	ColumnMappings [][]int64
}

func (u *Union) DebugString() string { return "Union" }

// Rolling aggregates over a sliding time window on WindowCol.
type Rolling struct {
	baseOperator
	WindowCol      *ColumnRef
	WindowSizeExpr Expression
	WindowSizeNS   int64
	WindowSet      bool
	Groups         []*ColumnRef
}

func (r *Rolling) DebugString() string { return "Rolling" }

// SetWindowSizeNS records the folded window size.
func (r *Rolling) SetWindowSizeNS(ns int64) {
	r.WindowSizeNS = ns
	r.WindowSet = true
	r.WindowSizeExpr = nil
}

func (r *Rolling) Expressions() []Expression {
	var out []Expression
	if r.WindowCol != nil {
		out = append(out, r.WindowCol)
	}
	if r.WindowSizeExpr != nil {
		out = append(out, r.WindowSizeExpr)
	}
	for _, g := range r.Groups {
		out = append(out, g)
	}
	return out
}

// Drop removes named columns and passes the rest through. It is lowered into
// a Map before plan emission.
type Drop struct {
	baseOperator
	ColNames []string
}

func (d *Drop) DebugString() string { return fmt.Sprintf("Drop(%v)", d.ColNames) }

// UDTFSource produces rows from a user-defined table function; its placement
// across execution nodes follows the declared executor policy.
type UDTFSource struct {
	baseOperator
	FuncName  string
	Spec      *planpb.UDTFSourceSpec
	ArgValues []*Literal
}

func (u *UDTFSource) DebugString() string { return fmt.Sprintf("UDTFSource(%s)", u.FuncName) }
func (u *UDTFSource) IsSource() bool      { return true }

func (u *UDTFSource) Expressions() []Expression {
	out := make([]Expression, 0, len(u.ArgValues))
	for _, a := range u.ArgValues {
		out = append(out, a)
	}
	return out
}
