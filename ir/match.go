package ir

// Matcher is a composable node predicate, usable from rules and tests alike.
type Matcher func(Node) bool

// And matches when every matcher matches.
func And(ms ...Matcher) Matcher {
	return func(n Node) bool {
		for _, m := range ms {
			if !m(n) {
				return false
			}
		}
		return true
	}
}

// Or matches when any matcher matches.
func Or(ms ...Matcher) Matcher {
	return func(n Node) bool {
		for _, m := range ms {
			if m(n) {
				return true
			}
		}
		return false
	}
}

// MatchOperator matches any operator node.
func MatchOperator() Matcher {
	return func(n Node) bool {
		_, ok := n.(Operator)
		return ok
	}
}

// MatchExpression matches any expression node.
func MatchExpression() Matcher {
	return func(n Node) bool {
		_, ok := n.(Expression)
		return ok
	}
}

// MatchSource matches source operators.
func MatchSource() Matcher {
	return func(n Node) bool {
		op, ok := n.(Operator)
		return ok && op.IsSource()
	}
}

// MatchUnresolvedRelation matches operators whose relation is not yet set.
func MatchUnresolvedRelation() Matcher {
	return func(n Node) bool {
		op, ok := n.(Operator)
		return ok && !op.RelationSet()
	}
}

// MatchResolvedExpression matches expressions with a resolved data type.
func MatchResolvedExpression() Matcher {
	return func(n Node) bool {
		e, ok := n.(Expression)
		return ok && e.TypeResolved()
	}
}

// MatchFuncAllArgsResolved matches unresolved function calls whose arguments
// have all resolved.
func MatchFuncAllArgsResolved() Matcher {
	return func(n Node) bool {
		f, ok := n.(*Func)
		if !ok || f.TypeResolved() {
			return false
		}
		for _, a := range f.FuncArgs {
			if !a.TypeResolved() {
				return false
			}
		}
		return true
	}
}

// MatchMemorySink matches sink operators.
func MatchMemorySink() Matcher {
	return func(n Node) bool {
		_, ok := n.(*MemorySink)
		return ok
	}
}

// MatchGroupBy matches groupby operators.
func MatchGroupBy() Matcher {
	return func(n Node) bool {
		_, ok := n.(*GroupBy)
		return ok
	}
}
