package analyzer

import (
	errors "gopkg.in/src-d/go-errors.v1"

	"github.com/flowscope/flowscope/ir"
)

// ErrUnresolvedExpression is returned when the resolution batch converges
// with a reachable expression still untyped.
var ErrUnresolvedExpression = errors.NewKind("type of %s(id=%d) could not be resolved")

// ErrUnresolvedRelation is returned when the resolution batch converges
// with an operator relation still unset.
var ErrUnresolvedRelation = errors.NewKind("could not resolve relation for %s(id=%d)")

// CheckTypesResolvedRule errors on the first reachable node the resolution
// batch failed to resolve. Visiting in rule order reports the deepest
// unresolved expression, which is the actual blocker.
type CheckTypesResolvedRule struct{}

func (CheckTypesResolvedRule) Name() string { return "check_types_resolved" }

func (CheckTypesResolvedRule) Execute(g *ir.IR) (bool, error) {
	for _, n := range g.NodesInRuleOrder() {
		switch t := n.(type) {
		case ir.Expression:
			if !t.TypeResolved() {
				return false, ir.NodeError(t, ErrUnresolvedExpression.New(t.DebugString(), t.ID()))
			}
		case ir.Operator:
			if !t.RelationSet() {
				return false, ir.NodeError(t, ErrUnresolvedRelation.New(t.DebugString(), t.ID()))
			}
		}
	}
	return false, nil
}

// VerifyFilterExpressionRule rejects filters whose predicate is not
// boolean.
type VerifyFilterExpressionRule struct{}

func (VerifyFilterExpressionRule) Name() string { return "verify_filter_expression" }

func (VerifyFilterExpressionRule) Execute(g *ir.IR) (bool, error) {
	return executeTopDown(g, func(n ir.Node) (bool, error) {
		f, ok := n.(*ir.Filter)
		if !ok {
			return false, nil
		}
		if f.Expr.DataType() != ir.Boolean {
			return false, ir.NodeError(f, ir.ErrFilterNotBoolean.New(f.Expr.DataType()))
		}
		return false, nil
	})
}
