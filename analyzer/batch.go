package analyzer

import (
	"github.com/flowscope/flowscope/ir"
)

// Rule is one unit of graph analysis or rewrite. Execute reports whether the
// pass changed the graph; it must be idempotent at fixed point, i.e. once a
// pass reports no change, re-running must report no change again.
type Rule interface {
	Name() string
	Execute(g *ir.IR) (bool, error)
}

// Batch executes a set of rules until they reach a fixed point, up to a
// maximum number of iterations. A Batch with Iterations of 1 runs exactly
// one pass.
type Batch struct {
	Desc       string
	Iterations int
	Rules      []Rule
}

// Eval runs the batch's rules on g. If the iteration cap is hit while rules
// still report changes, ErrMaxAnalysisIters is returned.
func (b *Batch) Eval(a *Analyzer, g *ir.IR) error {
	if b.Iterations == 0 {
		return nil
	}
	for i := 0; ; i++ {
		if i >= b.Iterations {
			return ErrMaxAnalysisIters.New(b.Iterations)
		}
		changed, err := b.evalOnce(a, g)
		if err != nil {
			return err
		}
		if b.Iterations == 1 || !changed {
			return nil
		}
	}
}

func (b *Batch) evalOnce(a *Analyzer, g *ir.IR) (bool, error) {
	changed := false
	for _, rule := range b.Rules {
		c, err := rule.Execute(g)
		if err != nil {
			return false, err
		}
		if c {
			a.Log("%s: rule %s changed the graph", b.Desc, rule.Name())
		}
		changed = changed || c
	}
	return changed, nil
}

// executeTopDown applies fn to every node in rule order (operators
// topologically, expressions bottom-up before their operator), skipping
// nodes a previous application deleted.
func executeTopDown(g *ir.IR, fn func(ir.Node) (bool, error)) (bool, error) {
	changed := false
	for _, n := range g.NodesInRuleOrder() {
		if !g.HasNode(n.ID()) {
			continue
		}
		c, err := fn(n)
		if err != nil {
			return false, err
		}
		changed = changed || c
	}
	return changed, nil
}
