package analyzer

import (
	"fmt"

	"github.com/flowscope/flowscope/ir"
)

// UniqueSinkNameRule disambiguates duplicate sink names. The first sink
// with a name keeps it; later ones get a numeric suffix per base name.
type UniqueSinkNameRule struct{}

func (UniqueSinkNameRule) Name() string { return "unique_sink_names" }

func (UniqueSinkNameRule) Execute(g *ir.IR) (bool, error) {
	seen := make(map[string]int)
	changed := false
	for _, n := range g.FindNodesThatMatch(ir.MatchMemorySink()) {
		sink := n.(*ir.MemorySink)
		base := sink.SinkName
		count := seen[base]
		seen[base] = count + 1
		if count > 0 {
			sink.SinkName = fmt.Sprintf("%s_%d", base, count)
			changed = true
		}
	}
	return changed, nil
}
