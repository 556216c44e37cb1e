package analyzer

import "github.com/flowscope/flowscope/ir"

// OperatorRelationRule computes output relations for every non-source
// operator whose inputs have resolved. Progress is incremental: an operator
// whose parents or expressions are not ready yet simply reports no change
// and is retried on the next batch iteration.
type OperatorRelationRule struct {
	state *ir.CompilerState
}

func (OperatorRelationRule) Name() string { return "resolve_operator_relation" }

func (r *OperatorRelationRule) Execute(g *ir.IR) (bool, error) {
	return executeTopDown(g, func(n ir.Node) (bool, error) {
		op, ok := n.(ir.Operator)
		if !ok || op.RelationSet() {
			return false, nil
		}
		switch t := op.(type) {
		case *ir.MemorySource, *ir.UDTFSource, *ir.GroupBy:
			return false, nil
		case *ir.BlockingAgg:
			return r.setAgg(t)
		case *ir.Map:
			return r.setMap(g, t)
		case *ir.Union:
			return r.setUnion(t)
		case *ir.Join:
			return r.setJoin(g, t)
		case *ir.Drop:
			return r.setDrop(t)
		case *ir.MemorySink:
			return r.setSink(t)
		case *ir.Rolling:
			return r.setRolling(t)
		default:
			return r.setPassthrough(op)
		}
	})
}

func setRelation(op ir.Operator, rel ir.Relation) (bool, error) {
	if err := op.SetRelation(rel); err != nil {
		return false, ir.NodeError(op, err)
	}
	return true, nil
}

func exprColumn(name string, e ir.Expression) ir.Column {
	return ir.Column{Name: name, Type: e.DataType(), SemanticType: e.Annotations().MetadataType}
}

func (r *OperatorRelationRule) setAgg(agg *ir.BlockingAgg) (bool, error) {
	rel := make(ir.Relation, 0, len(agg.Groups)+len(agg.Aggregates))
	for _, c := range agg.Groups {
		if !c.Resolved() {
			return false, nil
		}
		rel = append(rel, exprColumn(c.Name, c))
	}
	for _, ce := range agg.Aggregates {
		if !ce.Expr.TypeResolved() {
			return false, nil
		}
		rel = append(rel, exprColumn(ce.Name, ce.Expr))
	}
	return setRelation(agg, rel)
}

// setMap resolves a projection. Maps that keep their input columns are
// expanded here: the unshadowed parent columns become explicit leading
// expressions, so downstream rules and emission see one uniform shape.
func (r *OperatorRelationRule) setMap(g *ir.IR, m *ir.Map) (bool, error) {
	parents := m.Parents()
	if len(parents) != 1 || !parents[0].RelationSet() {
		return false, nil
	}
	for _, ce := range m.ColExprs {
		if !ce.Expr.TypeResolved() {
			return false, nil
		}
	}
	if m.KeepInputColumns {
		declared := make(map[string]bool, len(m.ColExprs))
		for _, ce := range m.ColExprs {
			declared[ce.Name] = true
		}
		prel := parents[0].Relation()
		kept := make([]ir.ColumnExpression, 0, len(prel)+len(m.ColExprs))
		for i, col := range prel {
			if declared[col.Name] {
				continue
			}
			c := g.CreateColumn(m.Ast(), col.Name, 0)
			c.Resolve(i, col.Type)
			c.SetAnnotations(ir.Annotations{MetadataType: col.SemanticType})
			kept = append(kept, ir.ColumnExpression{Name: col.Name, Expr: c})
		}
		m.ColExprs = append(kept, m.ColExprs...)
		m.KeepInputColumns = false
	}
	rel := make(ir.Relation, 0, len(m.ColExprs))
	for _, ce := range m.ColExprs {
		rel = append(rel, exprColumn(ce.Name, ce.Expr))
	}
	return setRelation(m, rel)
}

// setUnion checks that every input carries the same column set and records,
// per input, the positional mapping onto the canonical order of the first
// input.
func (r *OperatorRelationRule) setUnion(u *ir.Union) (bool, error) {
	parents := u.Parents()
	for _, p := range parents {
		if !p.RelationSet() {
			return false, nil
		}
	}
	base := parents[0].Relation()
	mappings := make([][]int64, len(parents))
	for pi, p := range parents {
		prel := p.Relation()
		if len(prel) != len(base) {
			return false, ir.NodeError(u, ir.ErrUnionMismatch.New("column count", base.String(), prel.String()))
		}
		m := make([]int64, len(base))
		for i, col := range base {
			idx := prel.ColumnIndex(col.Name)
			if idx < 0 {
				return false, ir.NodeError(u, ir.ErrUnionMismatch.New("column names", base.String(), prel.String()))
			}
			if prel[idx].Type != col.Type {
				return false, ir.NodeError(u, ir.ErrUnionMismatch.New("column types", base.String(), prel.String()))
			}
			m[i] = int64(idx)
		}
		mappings[pi] = m
	}
	u.ColumnMappings = mappings
	return setRelation(u, base.Copy())
}

// setJoin builds the joined output: all left columns then all right
// columns, a side's suffix applied wherever the bare name also exists on
// the other side. A join specified as right was rewritten to a left join
// with swapped parents, so "left" for naming purposes is then the second
// parent.
func (r *OperatorRelationRule) setJoin(g *ir.IR, j *ir.Join) (bool, error) {
	parents := j.Parents()
	if len(parents) != 2 || !parents[0].RelationSet() || !parents[1].RelationSet() {
		return false, nil
	}
	leftIdx, rightIdx := 0, 1
	if j.SpecifiedType == ir.RightJoin {
		leftIdx, rightIdx = 1, 0
	}
	lrel := parents[leftIdx].Relation()
	rrel := parents[rightIdx].Relation()

	type side struct {
		parentIdx int
		rel       ir.Relation
		other     ir.Relation
		suffix    string
	}
	sides := []side{
		{leftIdx, lrel, rrel, j.Suffixes[0]},
		{rightIdx, rrel, lrel, j.Suffixes[1]},
	}

	var (
		names []string
		cols  []*ir.ColumnRef
		rel   ir.Relation
	)
	seen := make(map[string]bool)
	for _, s := range sides {
		for i, col := range s.rel {
			name := col.Name
			if s.other.HasColumn(name) {
				name += s.suffix
			}
			if seen[name] {
				return false, ir.NodeError(j, ir.ErrDuplicateJoinColumn.New(name, j.Suffixes[0], j.Suffixes[1]))
			}
			seen[name] = true
			c := g.CreateColumn(j.Ast(), col.Name, s.parentIdx)
			c.Resolve(i, col.Type)
			c.SetAnnotations(ir.Annotations{MetadataType: col.SemanticType})
			names = append(names, name)
			cols = append(cols, c)
			rel = append(rel, ir.Column{Name: name, Type: col.Type, SemanticType: col.SemanticType})
		}
	}
	j.OutputColumns = cols
	j.ColumnNames = names
	return setRelation(j, rel)
}

func (r *OperatorRelationRule) setDrop(d *ir.Drop) (bool, error) {
	parents := d.Parents()
	if len(parents) != 1 || !parents[0].RelationSet() {
		return false, nil
	}
	prel := parents[0].Relation()
	dropped := make(map[string]bool, len(d.ColNames))
	for _, name := range d.ColNames {
		if !prel.HasColumn(name) {
			return false, ir.NodeError(d, ir.ErrColumnNotFoundInRelation.New(name, parents[0].DebugString(), parents[0].ID()))
		}
		dropped[name] = true
	}
	rel := make(ir.Relation, 0, len(prel)-len(dropped))
	for _, col := range prel {
		if !dropped[col.Name] {
			rel = append(rel, col)
		}
	}
	return setRelation(d, rel)
}

func (r *OperatorRelationRule) setSink(s *ir.MemorySink) (bool, error) {
	parents := s.Parents()
	if len(parents) != 1 || !parents[0].RelationSet() {
		return false, nil
	}
	prel := parents[0].Relation()
	if len(s.OutColumnNames) == 0 {
		return setRelation(s, prel.Copy())
	}
	rel := make(ir.Relation, 0, len(s.OutColumnNames))
	for _, name := range s.OutColumnNames {
		idx := prel.ColumnIndex(name)
		if idx < 0 {
			return false, ir.NodeError(s, ir.ErrColumnNotFoundInRelation.New(name, parents[0].DebugString(), parents[0].ID()))
		}
		rel = append(rel, prel[idx])
	}
	return setRelation(s, rel)
}

func (r *OperatorRelationRule) setRolling(roll *ir.Rolling) (bool, error) {
	if roll.WindowCol != nil && !roll.WindowCol.Resolved() {
		return false, nil
	}
	for _, c := range roll.Groups {
		if !c.Resolved() {
			return false, nil
		}
	}
	return r.setPassthrough(roll)
}

func (r *OperatorRelationRule) setPassthrough(op ir.Operator) (bool, error) {
	parents := op.Parents()
	if len(parents) != 1 || !parents[0].RelationSet() {
		return false, nil
	}
	return setRelation(op, parents[0].Relation().Copy())
}
