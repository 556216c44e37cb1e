package analyzer

import "github.com/flowscope/flowscope/ir"

// DropToMapRule lowers every Drop into an equivalent Map projecting the
// parent relation minus the dropped columns. Plan emission only understands
// maps.
type DropToMapRule struct{}

func (DropToMapRule) Name() string { return "drop_to_map" }

func (DropToMapRule) Execute(g *ir.IR) (bool, error) {
	return executeTopDown(g, func(n ir.Node) (bool, error) {
		d, ok := n.(*ir.Drop)
		if !ok {
			return false, nil
		}
		parents := d.Parents()
		if len(parents) != 1 || !parents[0].RelationSet() {
			return false, nil
		}
		parent := parents[0]
		prel := parent.Relation()
		dropped := make(map[string]bool, len(d.ColNames))
		for _, name := range d.ColNames {
			dropped[name] = true
		}

		exprs := make([]ir.ColumnExpression, 0, len(prel))
		for i, col := range prel {
			if dropped[col.Name] {
				continue
			}
			c := g.CreateColumn(d.Ast(), col.Name, 0)
			c.Resolve(i, col.Type)
			c.SetAnnotations(ir.Annotations{MetadataType: col.SemanticType})
			exprs = append(exprs, ir.ColumnExpression{Name: col.Name, Expr: c})
		}
		m, err := g.CreateMap(d.Ast(), parent, exprs, false)
		if err != nil {
			return false, err
		}
		if d.RelationSet() {
			m.UpdateRelation(d.Relation().Copy())
		}
		for _, child := range g.Children(d) {
			g.ReplaceParent(child, d, m)
		}
		g.DeleteNode(d.ID())
		return true, nil
	})
}
