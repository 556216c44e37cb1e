package ir

import "fmt"

// Clone deep-copies the graph, preserving node ids, adjacency order and all
// resolution state. The distributed splitter clones the logical plan once
// per execution node before pruning.
func (g *IR) Clone() *IR {
	out := NewIR()
	out.nextID = g.nextID

	memo := make(map[int64]Expression)
	var ce func(Expression) Expression
	ce = func(e Expression) Expression {
		if e == nil {
			return nil
		}
		if c, ok := memo[e.ID()]; ok {
			return c
		}
		var c Expression
		switch t := e.(type) {
		case *ColumnRef:
			cp := *t
			c = &cp
		case *Literal:
			cp := *t
			c = &cp
		case *MetadataRef:
			cp := *t
			c = &cp
		case *Func:
			cp := *t
			cp.argTypes = append([]DataType(nil), t.argTypes...)
			cp.FuncArgs = make([]Expression, len(t.FuncArgs))
			memo[e.ID()] = &cp
			for i, a := range t.FuncArgs {
				cp.FuncArgs[i] = ce(a)
			}
			c = &cp
		case *Tuple:
			cp := *t
			cp.Exprs = make([]Expression, len(t.Exprs))
			memo[e.ID()] = &cp
			for i, a := range t.Exprs {
				cp.Exprs[i] = ce(a)
			}
			c = &cp
		default:
			panic(fmt.Sprintf("ir: unknown expression type %T", e))
		}
		memo[e.ID()] = c
		c.setGraph(out)
		out.nodes[c.ID()] = c
		return c
	}

	cloneCols := func(cols []*ColumnRef) []*ColumnRef {
		if cols == nil {
			return nil
		}
		cp := make([]*ColumnRef, len(cols))
		for i, c := range cols {
			cp[i] = ce(c).(*ColumnRef)
		}
		return cp
	}
	cloneColExprs := func(exprs []ColumnExpression) []ColumnExpression {
		if exprs == nil {
			return nil
		}
		cp := make([]ColumnExpression, len(exprs))
		for i, e := range exprs {
			cp[i] = ColumnExpression{Name: e.Name, Expr: ce(e.Expr)}
		}
		return cp
	}

	for _, id := range g.dag.Nodes() {
		op := g.nodes[id].(Operator)
		var c Operator
		switch t := op.(type) {
		case *MemorySource:
			cp := *t
			cp.ColumnNames = append([]string(nil), t.ColumnNames...)
			cp.Columns = cloneCols(t.Columns)
			cp.StartTimeExpr = ce(t.StartTimeExpr)
			cp.StopTimeExpr = ce(t.StopTimeExpr)
			c = &cp
		case *MemorySink:
			cp := *t
			cp.OutColumnNames = append([]string(nil), t.OutColumnNames...)
			c = &cp
		case *Map:
			cp := *t
			cp.ColExprs = cloneColExprs(t.ColExprs)
			c = &cp
		case *Filter:
			cp := *t
			cp.Expr = ce(t.Expr)
			c = &cp
		case *Limit:
			cp := *t
			c = &cp
		case *BlockingAgg:
			cp := *t
			cp.Groups = cloneCols(t.Groups)
			cp.Aggregates = cloneColExprs(t.Aggregates)
			c = &cp
		case *GroupBy:
			cp := *t
			cp.Groups = cloneCols(t.Groups)
			c = &cp
		case *Join:
			cp := *t
			cp.LeftOn = cloneCols(t.LeftOn)
			cp.RightOn = cloneCols(t.RightOn)
			cp.OutputColumns = cloneCols(t.OutputColumns)
			cp.ColumnNames = append([]string(nil), t.ColumnNames...)
			c = &cp
		case *Union:
			cp := *t
			cp.ColumnMappings = make([][]int64, len(t.ColumnMappings))
			for i, m := range t.ColumnMappings {
				cp.ColumnMappings[i] = append([]int64(nil), m...)
			}
			c = &cp
		case *Rolling:
			cp := *t
			if t.WindowCol != nil {
				cp.WindowCol = ce(t.WindowCol).(*ColumnRef)
			}
			cp.WindowSizeExpr = ce(t.WindowSizeExpr)
			cp.Groups = cloneCols(t.Groups)
			c = &cp
		case *Drop:
			cp := *t
			cp.ColNames = append([]string(nil), t.ColNames...)
			c = &cp
		case *UDTFSource:
			cp := *t
			cp.ArgValues = make([]*Literal, len(t.ArgValues))
			for i, a := range t.ArgValues {
				cp.ArgValues[i] = ce(a).(*Literal)
			}
			c = &cp
		default:
			panic(fmt.Sprintf("ir: unknown operator type %T", op))
		}

		// Copy the shared operator state the value copy aliased.
		base := operatorBase(c)
		base.parents = append([]int64(nil), operatorBase(op).parents...)
		base.relation = operatorBase(op).relation.Copy()

		c.setGraph(out)
		out.nodes[c.ID()] = c
		out.dag.AddNode(c.ID())
	}

	for _, id := range g.dag.Nodes() {
		for _, child := range g.dag.Children(id) {
			out.dag.AddEdge(id, child)
		}
	}
	return out
}

func operatorBase(op Operator) *baseOperator {
	switch t := op.(type) {
	case *MemorySource:
		return &t.baseOperator
	case *MemorySink:
		return &t.baseOperator
	case *Map:
		return &t.baseOperator
	case *Filter:
		return &t.baseOperator
	case *Limit:
		return &t.baseOperator
	case *BlockingAgg:
		return &t.baseOperator
	case *GroupBy:
		return &t.baseOperator
	case *Join:
		return &t.baseOperator
	case *Union:
		return &t.baseOperator
	case *Rolling:
		return &t.baseOperator
	case *Drop:
		return &t.baseOperator
	case *UDTFSource:
		return &t.baseOperator
	}
	panic(fmt.Sprintf("ir: unknown operator type %T", op))
}

// CopyExpr deep-copies an expression tree into the same graph under fresh
// ids. Rules use it when one expression must feed two consumers without
// aliasing.
func (g *IR) CopyExpr(e Expression) Expression {
	switch t := e.(type) {
	case *ColumnRef:
		cp := *t
		g.register(&cp)
		return &cp
	case *Literal:
		cp := *t
		g.register(&cp)
		return &cp
	case *MetadataRef:
		cp := *t
		g.register(&cp)
		return &cp
	case *Func:
		cp := *t
		cp.argTypes = append([]DataType(nil), t.argTypes...)
		cp.FuncArgs = make([]Expression, len(t.FuncArgs))
		for i, a := range t.FuncArgs {
			cp.FuncArgs[i] = g.CopyExpr(a)
		}
		g.register(&cp)
		return &cp
	case *Tuple:
		cp := *t
		cp.Exprs = make([]Expression, len(t.Exprs))
		for i, a := range t.Exprs {
			cp.Exprs[i] = g.CopyExpr(a)
		}
		g.register(&cp)
		return &cp
	}
	panic(fmt.Sprintf("ir: unknown expression type %T", e))
}

// CopyColumn deep-copies a column reference under a fresh id.
func (g *IR) CopyColumn(c *ColumnRef) *ColumnRef {
	return g.CopyExpr(c).(*ColumnRef)
}
