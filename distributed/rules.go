package distributed

import (
	uuid "github.com/satori/go.uuid"

	"github.com/flowscope/flowscope/ir"
	"github.com/flowscope/flowscope/planpb"
)

// Rule transforms a distributed plan in place. Rules report whether they
// changed anything so the planner can log its work.
type Rule interface {
	Name() string
	Apply(p *Plan) (bool, error)
}

// PruneUnavailableSourcesRule removes, from each node's plan copy, the source
// operators that cannot run on that node. Memory sources only run where the
// table data lives; table-function sources run where their declared executor
// policy places them. Operators left without any live input are deleted with
// the dead source.
type PruneUnavailableSourcesRule struct{}

func (PruneUnavailableSourcesRule) Name() string { return "prune_unavailable_sources" }

func (PruneUnavailableSourcesRule) Apply(p *Plan) (bool, error) {
	changed := false
	for _, inst := range p.Instances() {
		for _, op := range inst.Plan.Operators() {
			if !inst.Plan.HasNode(op.ID()) || !op.IsSource() {
				continue
			}
			if sourceRunsOn(op, inst) {
				continue
			}
			inst.Plan.DeleteOrphansInSubtree(op.ID())
			changed = true
		}
	}
	return changed, nil
}

func sourceRunsOn(op ir.Operator, inst *ExecutorInstance) bool {
	switch t := op.(type) {
	case *ir.MemorySource:
		return inst.IsDataStore()
	case *ir.UDTFSource:
		return udtfRunsOn(t, inst)
	default:
		return true
	}
}

func udtfRunsOn(u *ir.UDTFSource, inst *ExecutorInstance) bool {
	if !inst.Info.ProcessesData {
		return false
	}
	switch u.Spec.Executor {
	case planpb.UDTF_ALL_AGENTS:
		return true
	case planpb.UDTF_ALL_DATA_NODES:
		return inst.IsDataStore()
	case planpb.UDTF_ALL_COORDINATORS:
		return inst.IsCoordinator()
	case planpb.UDTF_SUBSET:
		return udtfSubsetMatches(u, inst)
	default:
		return false
	}
}

// udtfSubsetMatches decides subset placement from the call's identity
// arguments. A UPID argument pins the call to the node whose stream id the
// UPID embeds; an agent-uid argument pins it to the node with that agent id.
// Every identity argument present must match.
func udtfSubsetMatches(u *ir.UDTFSource, inst *ExecutorInstance) bool {
	for i, arg := range u.Spec.Args {
		if i >= len(u.ArgValues) {
			break
		}
		val := u.ArgValues[i]
		switch arg.SemanticType {
		case planpb.ST_UPID:
			up, ok := val.Value.(*planpb.UInt128)
			if !ok || asidOf(up) != inst.Info.Asid {
				return false
			}
		case planpb.ST_AGENT_UID:
			s, ok := val.Value.(string)
			if !ok {
				return false
			}
			aid, err := uuid.FromString(s)
			if err != nil || !uuid.Equal(aid, inst.AgentID) {
				return false
			}
		}
	}
	return true
}

// asidOf extracts the stream id embedded in the high word of a UPID.
func asidOf(u *planpb.UInt128) uint32 {
	return uint32(u.High >> 32)
}

// PruneEmptyPlansRule drops nodes whose plan copies were pruned down to
// nothing, removing them from the coordination graph.
type PruneEmptyPlansRule struct{}

func (PruneEmptyPlansRule) Name() string { return "prune_empty_plans" }

func (PruneEmptyPlansRule) Apply(p *Plan) (bool, error) {
	changed := false
	for _, inst := range p.Instances() {
		if len(inst.Plan.Operators()) > 0 {
			continue
		}
		p.RemoveInstance(inst.ID)
		changed = true
	}
	return changed, nil
}
