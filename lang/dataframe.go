package lang

import (
	"github.com/flowscope/flowscope/ir"
)

// DataFrame wraps the operator at the tip of one script-visible table
// expression. Methods append operators to the graph and return a new
// DataFrame; the receiver stays valid and may be branched from again.
type DataFrame struct {
	m  *Module
	op ir.Operator
}

// Op exposes the underlying operator, mainly for tests.
func (df *DataFrame) Op() ir.Operator { return df.op }

// Col references one of the dataframe's columns.
func (df *DataFrame) Col(ast ir.Ast, name string) *ir.ColumnRef {
	return df.m.g.CreateColumn(ast, name, 0)
}

// Meta references a semantic metadata property of the dataframe, resolved
// during analysis into a conversion over one of the real columns.
func (df *DataFrame) Meta(ast ir.Ast, name string) *ir.MetadataRef {
	return df.m.g.CreateMetadata(ast, name, 0)
}

// Map projects the dataframe to exactly the given named expressions.
func (df *DataFrame) Map(ast ir.Ast, exprs []ir.ColumnExpression) (*DataFrame, error) {
	op, err := df.m.g.CreateMap(ast, df.op, exprs, false)
	if err != nil {
		return nil, err
	}
	return &DataFrame{m: df.m, op: op}, nil
}

// Assign adds or replaces one column, keeping everything else. Consecutive
// assignments build a chain of single-column maps that analysis fuses back
// into one.
func (df *DataFrame) Assign(ast ir.Ast, name string, expr ir.Expression) (*DataFrame, error) {
	op, err := df.m.g.CreateMap(ast, df.op, []ir.ColumnExpression{{Name: name, Expr: expr}}, true)
	if err != nil {
		return nil, err
	}
	return &DataFrame{m: df.m, op: op}, nil
}

// Filter keeps the rows where pred is true.
func (df *DataFrame) Filter(ast ir.Ast, pred ir.Expression) (*DataFrame, error) {
	op, err := df.m.g.CreateFilter(ast, df.op, pred)
	if err != nil {
		return nil, err
	}
	return &DataFrame{m: df.m, op: op}, nil
}

// Head keeps the first n rows.
func (df *DataFrame) Head(ast ir.Ast, n int64) (*DataFrame, error) {
	op, err := df.m.g.CreateLimit(ast, df.op, n)
	if err != nil {
		return nil, err
	}
	return &DataFrame{m: df.m, op: op}, nil
}

// GroupBy groups the dataframe by the named columns. The grouping takes
// effect on the next Agg or Rolling call.
func (df *DataFrame) GroupBy(ast ir.Ast, cols ...string) (*DataFrame, error) {
	groups := make([]*ir.ColumnRef, len(cols))
	for i, c := range cols {
		groups[i] = df.m.g.CreateColumn(ast, c, 0)
	}
	op, err := df.m.g.CreateGroupBy(ast, df.op, groups)
	if err != nil {
		return nil, err
	}
	return &DataFrame{m: df.m, op: op}, nil
}

// Agg aggregates the dataframe into the given named aggregate expressions,
// grouped by any GroupBy directly upstream.
func (df *DataFrame) Agg(ast ir.Ast, aggs ...ir.ColumnExpression) (*DataFrame, error) {
	op, err := df.m.g.CreateBlockingAgg(ast, df.op, nil, aggs)
	if err != nil {
		return nil, err
	}
	return &DataFrame{m: df.m, op: op}, nil
}

// Rolling aggregates the dataframe over sliding windows of the given size on
// the named time column.
func (df *DataFrame) Rolling(ast ir.Ast, on string, window ir.Expression) (*DataFrame, error) {
	col := df.m.g.CreateColumn(ast, on, 0)
	op, err := df.m.g.CreateRolling(ast, df.op, col, window)
	if err != nil {
		return nil, err
	}
	return &DataFrame{m: df.m, op: op}, nil
}

// MergeArgs are the arguments of a Merge call.
type MergeArgs struct {
	How      string
	LeftOn   []string
	RightOn  []string
	Suffixes [2]string
}

var joinTypes = map[string]ir.JoinType{
	"inner": ir.InnerJoin,
	"left":  ir.LeftJoin,
	"right": ir.RightJoin,
	"outer": ir.OuterJoin,
}

// Merge joins the dataframe with right on equality of the named columns.
func (df *DataFrame) Merge(ast ir.Ast, right *DataFrame, args MergeArgs) (*DataFrame, error) {
	typ, ok := joinTypes[args.How]
	if !ok {
		return nil, &ir.CompileError{Line: ast.Line, Col: ast.Col, Err: ErrInvalidJoinType.New(args.How)}
	}
	if len(args.LeftOn) != len(args.RightOn) {
		return nil, &ir.CompileError{Line: ast.Line, Col: ast.Col, Err: ErrMergeOnMismatch.New(len(args.LeftOn), len(args.RightOn))}
	}
	leftOn := make([]*ir.ColumnRef, len(args.LeftOn))
	rightOn := make([]*ir.ColumnRef, len(args.RightOn))
	for i := range args.LeftOn {
		leftOn[i] = df.m.g.CreateColumn(ast, args.LeftOn[i], 0)
		rightOn[i] = df.m.g.CreateColumn(ast, args.RightOn[i], 1)
	}
	op, err := df.m.g.CreateJoin(ast, df.op, right.op, typ, leftOn, rightOn, args.Suffixes)
	if err != nil {
		return nil, err
	}
	return &DataFrame{m: df.m, op: op}, nil
}

// Append unions the dataframe with the others. Column order may differ
// between inputs; the result takes this dataframe's order.
func (df *DataFrame) Append(ast ir.Ast, others ...*DataFrame) (*DataFrame, error) {
	parents := make([]ir.Operator, 0, len(others)+1)
	parents = append(parents, df.op)
	for _, o := range others {
		parents = append(parents, o.op)
	}
	op, err := df.m.g.CreateUnion(ast, parents)
	if err != nil {
		return nil, err
	}
	return &DataFrame{m: df.m, op: op}, nil
}

// Drop removes the named columns.
func (df *DataFrame) Drop(ast ir.Ast, cols ...string) (*DataFrame, error) {
	op, err := df.m.g.CreateDrop(ast, df.op, cols)
	if err != nil {
		return nil, err
	}
	return &DataFrame{m: df.m, op: op}, nil
}

// Display materializes the dataframe as a result table. A nil cols selects
// every column.
func (df *DataFrame) Display(ast ir.Ast, name string, cols ...string) error {
	_, err := df.m.g.CreateMemorySink(ast, df.op, name, cols)
	return err
}
