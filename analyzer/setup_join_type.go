package analyzer

import "github.com/flowscope/flowscope/ir"

// SetupJoinTypeRule rewrites right joins into left joins with the parents
// swapped. Execution only implements the left orientation; the join keeps
// its specified type so the relation rule can restore the column order the
// user asked for.
type SetupJoinTypeRule struct{}

func (SetupJoinTypeRule) Name() string { return "setup_join_type" }

func (SetupJoinTypeRule) Execute(g *ir.IR) (bool, error) {
	return executeTopDown(g, func(n ir.Node) (bool, error) {
		j, ok := n.(*ir.Join)
		if !ok || j.Type != ir.RightJoin {
			return false, nil
		}
		j.FlipParents()
		j.Type = ir.LeftJoin
		return true, nil
	})
}
