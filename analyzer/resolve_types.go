package analyzer

import "github.com/flowscope/flowscope/ir"

// DataTypeRule resolves expression types bottom-up. Column references look
// themselves up in the relation of the parent operand they point at, and
// function calls whose argument types are all known get their signature
// from the registry. A function used as a top-level aggregate resolves as
// an aggregate function; everywhere else it is a scalar one.
type DataTypeRule struct {
	state *ir.CompilerState
}

func (DataTypeRule) Name() string { return "resolve_data_types" }

func (r *DataTypeRule) Execute(g *ir.IR) (bool, error) {
	return executeTopDown(g, func(n ir.Node) (bool, error) {
		switch t := n.(type) {
		case *ir.ColumnRef:
			return r.resolveColumn(g, t)
		case *ir.Func:
			return r.resolveFunc(g, t)
		}
		return false, nil
	})
}

func (r *DataTypeRule) resolveColumn(g *ir.IR, c *ir.ColumnRef) (bool, error) {
	if c.Resolved() {
		return false, nil
	}
	op, ok := g.ContainingOp(c)
	if !ok {
		// stray; the cleanup rule collects it
		return false, nil
	}
	parents := op.Parents()
	if c.ParentOpIdx >= len(parents) {
		return false, ir.NodeError(c, ir.ErrNoParent.New(op.DebugString(), op.ID(), c.Name))
	}
	parent := parents[c.ParentOpIdx]
	if !parent.RelationSet() {
		return false, nil
	}
	rel := parent.Relation()
	idx := rel.ColumnIndex(c.Name)
	if idx < 0 {
		return false, ir.NodeError(c, ir.ErrColumnNotFoundInRelation.New(c.Name, parent.DebugString(), parent.ID()))
	}
	c.Resolve(idx, rel[idx].Type)
	return true, nil
}

func (r *DataTypeRule) resolveFunc(g *ir.IR, f *ir.Func) (bool, error) {
	if f.TypeResolved() || f.Name == "" {
		return false, nil
	}
	argTypes := make([]ir.DataType, len(f.FuncArgs))
	for i, a := range f.FuncArgs {
		if !a.TypeResolved() {
			return false, nil
		}
		argTypes[i] = a.DataType()
	}

	var ret ir.DataType
	var err error
	if r.isAggregate(g, f) {
		ret, err = r.state.Registry().GetUDA(f.Name, argTypes)
	} else {
		ret, err = r.state.Registry().GetUDF(f.Name, argTypes)
	}
	if err != nil {
		return false, ir.NodeError(f, err)
	}
	f.ResolveFunc(ret, argTypes)
	return true, nil
}

// isAggregate reports whether f is a top-level aggregate expression of a
// blocking aggregate. Functions nested inside aggregate arguments are
// scalar.
func (r *DataTypeRule) isAggregate(g *ir.IR, f *ir.Func) bool {
	op, ok := g.ContainingOp(f)
	if !ok {
		return false
	}
	agg, ok := op.(*ir.BlockingAgg)
	if !ok {
		return false
	}
	for _, ce := range agg.Aggregates {
		if ce.Expr != nil && ce.Expr.ID() == f.ID() {
			return true
		}
	}
	return false
}
