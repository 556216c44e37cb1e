package ir

// ContainingOp returns the operator whose expression trees include e.
// Expressions are owned by at most one operator at a time; a stray
// expression (deleted from its owner but not yet collected) has none.
func (g *IR) ContainingOp(e Expression) (Operator, bool) {
	for _, op := range g.Operators() {
		for _, root := range op.Expressions() {
			if exprContains(root, e.ID()) {
				return op, true
			}
		}
	}
	return nil, false
}

func exprContains(root Expression, id int64) bool {
	if root == nil {
		return false
	}
	if root.ID() == id {
		return true
	}
	for _, a := range root.Args() {
		if exprContains(a, id) {
			return true
		}
	}
	return false
}

// ReplaceExpr swaps old for new in op's expression slots, recursing into
// function arguments. Column-only slots (group lists, join equality lists)
// accept only column replacements. It reports whether a slot was rewritten;
// the old expression itself is left in the graph for the cleanup rule.
func (g *IR) ReplaceExpr(op Operator, old, new Expression) bool {
	replaced := false
	rep := func(e Expression) Expression {
		if e == nil {
			return nil
		}
		if e.ID() == old.ID() {
			replaced = true
			return new
		}
		replaceInArgs(e, old, new, &replaced)
		return e
	}
	switch t := op.(type) {
	case *MemorySource:
		t.StartTimeExpr = rep(t.StartTimeExpr)
		t.StopTimeExpr = rep(t.StopTimeExpr)
	case *Map:
		for i := range t.ColExprs {
			t.ColExprs[i].Expr = rep(t.ColExprs[i].Expr)
		}
	case *Filter:
		t.Expr = rep(t.Expr)
	case *BlockingAgg:
		for i := range t.Aggregates {
			t.Aggregates[i].Expr = rep(t.Aggregates[i].Expr)
		}
		replaceColumns(t.Groups, old, new, &replaced)
	case *GroupBy:
		replaceColumns(t.Groups, old, new, &replaced)
	case *Join:
		replaceColumns(t.LeftOn, old, new, &replaced)
		replaceColumns(t.RightOn, old, new, &replaced)
		replaceColumns(t.OutputColumns, old, new, &replaced)
	case *Rolling:
		if c, ok := new.(*ColumnRef); ok && t.WindowCol != nil && t.WindowCol.ID() == old.ID() {
			t.WindowCol = c
			replaced = true
		}
		t.WindowSizeExpr = rep(t.WindowSizeExpr)
		replaceColumns(t.Groups, old, new, &replaced)
	}
	return replaced
}

func replaceInArgs(e, old, new Expression, replaced *bool) {
	switch t := e.(type) {
	case *Func:
		for i, a := range t.FuncArgs {
			if a.ID() == old.ID() {
				t.UpdateArg(i, new)
				*replaced = true
			} else {
				replaceInArgs(a, old, new, replaced)
			}
		}
	case *Tuple:
		for i, a := range t.Exprs {
			if a.ID() == old.ID() {
				t.Exprs[i] = new
				*replaced = true
			} else {
				replaceInArgs(a, old, new, replaced)
			}
		}
	}
}

func replaceColumns(cols []*ColumnRef, old, new Expression, replaced *bool) {
	c, ok := new.(*ColumnRef)
	if !ok {
		return
	}
	for i, cur := range cols {
		if cur.ID() == old.ID() {
			cols[i] = c
			*replaced = true
		}
	}
}
