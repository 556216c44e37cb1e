package analyzer

import "github.com/flowscope/flowscope/ir"

// MergeGroupByIntoGroupAcceptorRule folds a standalone GroupBy into a
// grouping consumer directly below it: the group columns are copied into
// the consumer and the consumer is rewired to the groupby's own parent.
// The groupby node stays behind for RemoveGroupByRule, so several
// consumers can share one groupby.
type MergeGroupByIntoGroupAcceptorRule struct {
	name    string
	matches func(ir.Node) bool
}

// NewMergeGroupByIntoAggRule merges groupbys into aggregates.
func NewMergeGroupByIntoAggRule() *MergeGroupByIntoGroupAcceptorRule {
	return &MergeGroupByIntoGroupAcceptorRule{
		name: "merge_group_by_into_agg",
		matches: func(n ir.Node) bool {
			_, ok := n.(*ir.BlockingAgg)
			return ok
		},
	}
}

// NewMergeGroupByIntoRollingRule merges groupbys into rolling windows.
func NewMergeGroupByIntoRollingRule() *MergeGroupByIntoGroupAcceptorRule {
	return &MergeGroupByIntoGroupAcceptorRule{
		name: "merge_group_by_into_rolling",
		matches: func(n ir.Node) bool {
			_, ok := n.(*ir.Rolling)
			return ok
		},
	}
}

func (r *MergeGroupByIntoGroupAcceptorRule) Name() string { return r.name }

func (r *MergeGroupByIntoGroupAcceptorRule) Execute(g *ir.IR) (bool, error) {
	return executeTopDown(g, func(n ir.Node) (bool, error) {
		if !r.matches(n) {
			return false, nil
		}
		op := n.(ir.Operator)
		parents := op.Parents()
		if len(parents) != 1 {
			return false, nil
		}
		gb, ok := parents[0].(*ir.GroupBy)
		if !ok {
			return false, nil
		}
		groups := make([]*ir.ColumnRef, 0, len(gb.Groups))
		for _, c := range gb.Groups {
			groups = append(groups, g.CopyColumn(c))
		}
		switch t := op.(type) {
		case *ir.BlockingAgg:
			t.Groups = append(groups, t.Groups...)
		case *ir.Rolling:
			t.Groups = append(groups, t.Groups...)
		}
		g.ReplaceParent(op, gb, gb.Parents()[0])
		return true, nil
	})
}

// RemoveGroupByRule deletes groupby nodes once every grouping consumer has
// absorbed them. A groupby that still has a child at this point was consumed
// by something that cannot group, which is a user error.
type RemoveGroupByRule struct{}

func (RemoveGroupByRule) Name() string { return "remove_group_by" }

func (RemoveGroupByRule) Execute(g *ir.IR) (bool, error) {
	changed := false
	for _, n := range g.FindNodesThatMatch(ir.MatchGroupBy()) {
		gb := n.(*ir.GroupBy)
		if len(g.Children(gb)) > 0 {
			return false, ir.NodeError(gb, ir.ErrGroupByUnsupportedChild.New())
		}
		for _, c := range gb.Groups {
			g.DeleteNode(c.ID())
		}
		g.DeleteNode(gb.ID())
		changed = true
	}
	return changed, nil
}
