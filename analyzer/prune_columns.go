package analyzer

import "github.com/flowscope/flowscope/ir"

// PruneUnusedColumnsRule removes columns nothing downstream reads. A
// backward pass collects, per operator, the output columns its consumers
// require; a forward pass then narrows projections, aggregate outputs,
// join outputs, unions and source column lists to those sets. Pass-through
// operators (filter, limit, rolling) emit exactly their parent's columns,
// so they forward requirements and mirror the parent's pruned relation.
type PruneUnusedColumnsRule struct{}

func (PruneUnusedColumnsRule) Name() string { return "prune_unused_columns" }

func (r PruneUnusedColumnsRule) Execute(g *ir.IR) (bool, error) {
	ops := g.TopoOperators()
	required := make(map[int64]map[string]bool)

	need := func(op ir.Operator, names ...string) {
		m := required[op.ID()]
		if m == nil {
			m = make(map[string]bool)
			required[op.ID()] = m
		}
		for _, n := range names {
			m[n] = true
		}
	}
	// reqOrAll treats an operator nothing recorded requirements for (a sink,
	// or a disconnected tail) as fully required.
	reqOrAll := func(op ir.Operator) map[string]bool {
		if m := required[op.ID()]; m != nil {
			return m
		}
		m := make(map[string]bool)
		for _, col := range op.Relation() {
			m[col.Name] = true
		}
		required[op.ID()] = m
		return m
	}

	// backward: collect requirements
	for i := len(ops) - 1; i >= 0; i-- {
		op := ops[i]
		parents := op.Parents()
		switch t := op.(type) {
		case *ir.MemorySink:
			need(parents[0], t.Relation().ColumnNames()...)
		case *ir.Map:
			req := reqOrAll(t)
			for _, ce := range t.ColExprs {
				if req[ce.Name] {
					need(parents[0], exprColumnNames(ce.Expr)...)
				}
			}
		case *ir.BlockingAgg:
			req := reqOrAll(t)
			for _, c := range t.Groups {
				need(parents[0], c.Name)
			}
			for _, ce := range t.Aggregates {
				if req[ce.Name] {
					need(parents[0], exprColumnNames(ce.Expr)...)
				}
			}
		case *ir.Join:
			req := reqOrAll(t)
			for i, c := range t.OutputColumns {
				if req[t.ColumnNames[i]] {
					need(parents[c.ParentOpIdx], c.Name)
				}
			}
			for _, c := range t.LeftOn {
				need(parents[c.ParentOpIdx], c.Name)
			}
			for _, c := range t.RightOn {
				need(parents[c.ParentOpIdx], c.Name)
			}
		case *ir.Union:
			req := reqOrAll(t)
			for _, p := range parents {
				for name := range req {
					need(p, name)
				}
			}
		case *ir.Filter:
			req := reqOrAll(t)
			names := exprColumnNames(t.Expr)
			for name := range req {
				names = append(names, name)
			}
			need(parents[0], names...)
		case *ir.Rolling:
			req := reqOrAll(t)
			names := []string{}
			if t.WindowCol != nil {
				names = append(names, t.WindowCol.Name)
			}
			for _, c := range t.Groups {
				names = append(names, c.Name)
			}
			for name := range req {
				names = append(names, name)
			}
			need(parents[0], names...)
		case *ir.Limit:
			req := reqOrAll(t)
			for name := range req {
				need(parents[0], name)
			}
		case *ir.MemorySource, *ir.UDTFSource:
			// no inputs
		}
	}

	// forward: narrow outputs to what is required
	changed := false
	narrowed := func(oldRel, newRel ir.Relation) bool {
		if oldRel.Equals(newRel) {
			return false
		}
		changed = true
		return true
	}
	for _, op := range ops {
		parents := op.Parents()
		switch t := op.(type) {
		case *ir.MemorySource:
			req := required[t.ID()]
			if req == nil {
				continue
			}
			rel := t.Relation()
			newRel := make(ir.Relation, 0, len(rel))
			var names []string
			var cols []*ir.ColumnRef
			for i, col := range rel {
				if !req[col.Name] {
					continue
				}
				newRel = append(newRel, col)
				names = append(names, col.Name)
				if i < len(t.Columns) {
					cols = append(cols, t.Columns[i])
				}
			}
			if len(newRel) > 0 && narrowed(rel, newRel) {
				t.ColumnNames = names
				t.Columns = cols
				t.UpdateRelation(newRel)
			}
		case *ir.Map:
			req := required[t.ID()]
			if req == nil {
				continue
			}
			kept := make([]ir.ColumnExpression, 0, len(t.ColExprs))
			newRel := make(ir.Relation, 0, len(t.ColExprs))
			for _, ce := range t.ColExprs {
				if req[ce.Name] {
					kept = append(kept, ce)
					newRel = append(newRel, exprColumn(ce.Name, ce.Expr))
				}
			}
			if len(kept) > 0 && narrowed(t.Relation(), newRel) {
				t.ColExprs = kept
				t.UpdateRelation(newRel)
			}
		case *ir.BlockingAgg:
			req := required[t.ID()]
			if req == nil {
				continue
			}
			kept := make([]ir.ColumnExpression, 0, len(t.Aggregates))
			newRel := make(ir.Relation, 0, len(t.Groups)+len(t.Aggregates))
			for _, c := range t.Groups {
				newRel = append(newRel, exprColumn(c.Name, c))
			}
			for _, ce := range t.Aggregates {
				if req[ce.Name] {
					kept = append(kept, ce)
					newRel = append(newRel, exprColumn(ce.Name, ce.Expr))
				}
			}
			if len(kept) > 0 && narrowed(t.Relation(), newRel) {
				t.Aggregates = kept
				t.UpdateRelation(newRel)
			}
		case *ir.Join:
			req := required[t.ID()]
			if req == nil {
				continue
			}
			var (
				cols   []*ir.ColumnRef
				names  []string
				newRel ir.Relation
			)
			rel := t.Relation()
			for i, c := range t.OutputColumns {
				if !req[t.ColumnNames[i]] {
					continue
				}
				cols = append(cols, c)
				names = append(names, t.ColumnNames[i])
				newRel = append(newRel, rel[i])
			}
			if len(newRel) > 0 && narrowed(rel, newRel) {
				t.OutputColumns = cols
				t.ColumnNames = names
				t.UpdateRelation(newRel)
			}
		case *ir.Union:
			req := required[t.ID()]
			if req == nil {
				continue
			}
			rel := t.Relation()
			newRel := make(ir.Relation, 0, len(rel))
			for _, col := range rel {
				if req[col.Name] {
					newRel = append(newRel, col)
				}
			}
			if len(newRel) > 0 && narrowed(rel, newRel) {
				t.UpdateRelation(newRel)
			}
		case *ir.MemorySink:
			prel := parents[0].Relation()
			if len(t.OutColumnNames) == 0 {
				if narrowed(t.Relation(), prel) {
					t.UpdateRelation(prel.Copy())
				}
				continue
			}
			newRel := make(ir.Relation, 0, len(t.OutColumnNames))
			for _, name := range t.OutColumnNames {
				if idx := prel.ColumnIndex(name); idx >= 0 {
					newRel = append(newRel, prel[idx])
				}
			}
			if narrowed(t.Relation(), newRel) {
				t.UpdateRelation(newRel)
			}
		case *ir.Filter, *ir.Limit, *ir.Rolling:
			prel := parents[0].Relation()
			if narrowed(t.Relation(), prel) {
				t.UpdateRelation(prel.Copy())
			}
		}
	}

	// column references resolve to positional indexes in a parent relation;
	// narrowing shifts those positions
	for _, op := range ops {
		if _, ok := op.(*ir.MemorySource); ok {
			// source columns index the catalog table, not a parent
			continue
		}
		parents := op.Parents()
		for _, root := range op.Expressions() {
			visitColumnRefs(root, func(c *ir.ColumnRef) {
				if c.ParentOpIdx >= len(parents) {
					return
				}
				prel := parents[c.ParentOpIdx].Relation()
				if idx := prel.ColumnIndex(c.Name); idx >= 0 && idx != c.ColumnIndex() {
					c.Resolve(idx, prel[idx].Type)
				}
			})
		}
	}

	// union column mappings reference parent relation indexes, which the
	// narrowing above may have shifted
	for _, op := range ops {
		u, ok := op.(*ir.Union)
		if !ok || required[u.ID()] == nil {
			continue
		}
		parents := u.Parents()
		mappings := make([][]int64, len(parents))
		for pi, p := range parents {
			prel := p.Relation()
			m := make([]int64, len(u.Relation()))
			for i, col := range u.Relation() {
				m[i] = int64(prel.ColumnIndex(col.Name))
			}
			mappings[pi] = m
		}
		u.ColumnMappings = mappings
	}
	return changed, nil
}

func exprColumnNames(e ir.Expression) []string {
	var names []string
	visitColumnRefs(e, func(c *ir.ColumnRef) {
		names = append(names, c.Name)
	})
	return names
}
