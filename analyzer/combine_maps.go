package analyzer

import "github.com/flowscope/flowscope/ir"

// CombineConsecutiveMapsRule fuses a map into its parent map when the child
// is the parent's only consumer and keeps its input columns. On a name
// collision the child's definition wins. Fusion is skipped when any child
// expression reads a column the parent map defines, since that would need
// substitution rather than concatenation.
type CombineConsecutiveMapsRule struct{}

func (CombineConsecutiveMapsRule) Name() string { return "combine_consecutive_maps" }

func (CombineConsecutiveMapsRule) Execute(g *ir.IR) (bool, error) {
	return executeTopDown(g, func(n ir.Node) (bool, error) {
		child, ok := n.(*ir.Map)
		if !ok || !child.KeepInputColumns {
			return false, nil
		}
		parents := child.Parents()
		if len(parents) != 1 {
			return false, nil
		}
		parent, ok := parents[0].(*ir.Map)
		if !ok || parent.RelationSet() || child.RelationSet() {
			return false, nil
		}
		if len(g.Children(parent)) != 1 {
			return false, nil
		}

		declared := make(map[string]bool, len(parent.ColExprs))
		for _, ce := range parent.ColExprs {
			declared[ce.Name] = true
		}
		for _, ce := range child.ColExprs {
			if exprReadsColumns(ce.Expr, declared) {
				return false, nil
			}
		}

		childNames := make(map[string]bool, len(child.ColExprs))
		for _, ce := range child.ColExprs {
			childNames[ce.Name] = true
		}
		merged := make([]ir.ColumnExpression, 0, len(parent.ColExprs)+len(child.ColExprs))
		for _, ce := range parent.ColExprs {
			if !childNames[ce.Name] {
				merged = append(merged, ce)
			}
		}
		merged = append(merged, child.ColExprs...)
		parent.ColExprs = merged

		for _, cc := range g.Children(child) {
			g.ReplaceParent(cc, child, parent)
		}
		g.DeleteNode(child.ID())
		return true, nil
	})
}

func exprReadsColumns(e ir.Expression, names map[string]bool) bool {
	if e == nil {
		return false
	}
	if c, ok := e.(*ir.ColumnRef); ok {
		return names[c.Name]
	}
	for _, a := range e.Args() {
		if exprReadsColumns(a, names) {
			return true
		}
	}
	return false
}
