package analyzer

import "github.com/flowscope/flowscope/ir"

// CleanUpStrayIRNodesRule deletes expression nodes no live operator
// references. Rewrites leave their discarded expressions in the arena;
// this sweeps them before emission.
type CleanUpStrayIRNodesRule struct{}

func (CleanUpStrayIRNodesRule) Name() string { return "cleanup_stray_ir_nodes" }

func (CleanUpStrayIRNodesRule) Execute(g *ir.IR) (bool, error) {
	return sweepStrayExpressions(g), nil
}

func sweepStrayExpressions(g *ir.IR) bool {
	live := g.ReachableExpressions()
	changed := false
	for _, n := range g.FindNodesThatMatch(ir.MatchExpression()) {
		if !live[n.ID()] {
			g.DeleteNode(n.ID())
			changed = true
		}
	}
	return changed
}

// PruneUnconnectedOperatorsRule deletes operators from which no sink is
// reachable, then sweeps the expressions they owned.
type PruneUnconnectedOperatorsRule struct{}

func (PruneUnconnectedOperatorsRule) Name() string { return "prune_unconnected_operators" }

func (PruneUnconnectedOperatorsRule) Execute(g *ir.IR) (bool, error) {
	keep := make(map[int64]bool)
	var mark func(op ir.Operator)
	mark = func(op ir.Operator) {
		if keep[op.ID()] {
			return
		}
		keep[op.ID()] = true
		for _, p := range op.Parents() {
			mark(p)
		}
	}
	for _, n := range g.FindNodesThatMatch(ir.MatchMemorySink()) {
		mark(n.(ir.Operator))
	}

	changed := false
	for _, op := range g.Operators() {
		if !keep[op.ID()] {
			g.DeleteNode(op.ID())
			changed = true
		}
	}
	if changed {
		sweepStrayExpressions(g)
	}
	return changed, nil
}
