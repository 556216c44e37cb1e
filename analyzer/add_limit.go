package analyzer

import "github.com/flowscope/flowscope/ir"

// AddLimitToMemorySinkRule enforces the configured result row cap: every
// memory source gets a limit directly below it. Existing limits above the
// cap are lowered; limits already at or under it are left alone, so a
// user-specified tighter head() survives.
type AddLimitToMemorySinkRule struct {
	state *ir.CompilerState
}

func (AddLimitToMemorySinkRule) Name() string { return "add_limit_to_memory_sink" }

func (r *AddLimitToMemorySinkRule) Execute(g *ir.IR) (bool, error) {
	rowCap := r.state.MaxOutputRows()
	if rowCap <= 0 {
		return false, nil
	}
	changed := false
	for _, op := range g.TopoOperators() {
		src, ok := op.(*ir.MemorySource)
		if !ok {
			continue
		}
		children := g.Children(src)
		var rewire []ir.Operator
		for _, c := range children {
			if l, isLimit := c.(*ir.Limit); isLimit {
				if l.LimitValue > rowCap {
					l.LimitValue = rowCap
					changed = true
				}
				continue
			}
			rewire = append(rewire, c)
		}
		if len(rewire) == 0 {
			continue
		}
		limit, err := g.CreateLimit(src.Ast(), src, rowCap)
		if err != nil {
			return false, err
		}
		if src.RelationSet() {
			limit.UpdateRelation(src.Relation().Copy())
		}
		for _, c := range rewire {
			g.ReplaceParent(c, src, limit)
		}
		changed = true
	}
	return changed, nil
}
