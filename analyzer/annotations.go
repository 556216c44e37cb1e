package analyzer

import "github.com/flowscope/flowscope/ir"

// PropagateExpressionAnnotationsRule pushes semantic annotations forward
// through the graph: a column reference inherits the annotation of the
// parent output column it reads, operators publish the annotations of the
// columns they emit, and a union output keeps an annotation only when every
// input agrees on it.
type PropagateExpressionAnnotationsRule struct{}

func (PropagateExpressionAnnotationsRule) Name() string { return "propagate_expression_annotations" }

func (PropagateExpressionAnnotationsRule) Execute(g *ir.IR) (bool, error) {
	changed := false
	outAnns := make(map[int64]map[string]ir.Annotations)

	for _, op := range g.TopoOperators() {
		parents := op.Parents()

		// pull annotations into this operator's column references
		for _, root := range op.Expressions() {
			visitColumnRefs(root, func(c *ir.ColumnRef) {
				if c.ParentOpIdx >= len(parents) {
					return
				}
				a, ok := outAnns[parents[c.ParentOpIdx].ID()][c.Name]
				if ok && !c.Annotations().Equal(a) {
					c.SetAnnotations(a)
					changed = true
				}
			})
		}

		out := make(map[string]ir.Annotations)
		parentOut := func(idx int) map[string]ir.Annotations {
			if idx >= len(parents) {
				return nil
			}
			return outAnns[parents[idx].ID()]
		}
		switch t := op.(type) {
		case *ir.Map:
			for _, ce := range t.ColExprs {
				if a := ce.Expr.Annotations(); a.IsSet() {
					out[ce.Name] = a
				}
			}
		case *ir.BlockingAgg:
			for _, c := range t.Groups {
				if a := c.Annotations(); a.IsSet() {
					out[c.Name] = a
				}
			}
			for _, ce := range t.Aggregates {
				if a := ce.Expr.Annotations(); a.IsSet() {
					out[ce.Name] = a
				}
			}
		case *ir.Join:
			for i, c := range t.OutputColumns {
				if a := c.Annotations(); a.IsSet() {
					out[t.ColumnNames[i]] = a
				}
			}
		case *ir.Union:
			if !t.RelationSet() {
				break
			}
			for _, col := range t.Relation() {
				agree := true
				var common ir.Annotations
				for pi := range parents {
					a, ok := parentOut(pi)[col.Name]
					if !ok || (pi > 0 && !a.Equal(common)) {
						agree = false
						break
					}
					common = a
				}
				if agree && common.IsSet() {
					out[col.Name] = common
				}
			}
		case *ir.MemorySource, *ir.UDTFSource:
			// storage columns carry no annotations
		default:
			// pass-through operators: Filter, Limit, Rolling, MemorySink
			for name, a := range parentOut(0) {
				out[name] = a
			}
		}
		outAnns[op.ID()] = out
	}
	return changed, nil
}

func visitColumnRefs(e ir.Expression, fn func(*ir.ColumnRef)) {
	if e == nil {
		return
	}
	if c, ok := e.(*ir.ColumnRef); ok {
		fn(c)
		return
	}
	for _, a := range e.Args() {
		visitColumnRefs(a, fn)
	}
}
