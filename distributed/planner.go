package distributed

import (
	"os"

	opentracing "github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"

	"github.com/flowscope/flowscope/ir"
	"github.com/flowscope/flowscope/planpb"
)

const debugDistributedKey = "DEBUG_DISTRIBUTED_PLANNER"

// Planner splits one logical plan across a cluster described by ExecutorInfo
// node descriptors.
type Planner struct {
	Debug bool
	Rules []Rule
}

// NewPlanner returns a Planner with the default rule list.
func NewPlanner() *Planner {
	_, debug := os.LookupEnv(debugDistributedKey)
	return &Planner{
		Debug: debug,
		Rules: []Rule{
			PruneUnavailableSourcesRule{},
			PruneEmptyPlansRule{},
		},
	}
}

// Plan builds the distributed plan for g over the given cluster state. Every
// node gets its own clone of g; the rules then prune each clone down to the
// work that node can actually do, and nodes with nothing left are dropped.
func (pl *Planner) Plan(state []*planpb.ExecutorInfo, g *ir.IR) (*Plan, error) {
	span := opentracing.StartSpan("distributed_plan")
	defer span.Finish()

	p := NewPlan()
	var producers, coordinators []*ExecutorInstance
	for _, info := range state {
		inst, err := p.AddInstance(info, g.Clone())
		if err != nil {
			return nil, err
		}
		if inst.IsCoordinator() {
			coordinators = append(coordinators, inst)
		} else if inst.Info.ProcessesData {
			producers = append(producers, inst)
		}
	}
	if len(coordinators) == 0 {
		return nil, ErrNoExecutionNodes.New()
	}
	for _, from := range producers {
		for _, to := range coordinators {
			p.AddEdge(from, to)
		}
	}

	for _, rule := range pl.Rules {
		changed, err := rule.Apply(p)
		if err != nil {
			return nil, err
		}
		if changed {
			pl.log("distributed rule %s changed the plan", rule.Name())
		}
	}

	stitch(p)
	return p, nil
}

// stitch assigns a result-stream id to every surviving coordination edge.
// Both endpoints of an edge refer to the stream by the same id.
func stitch(p *Plan) {
	var next int64
	for _, from := range p.Instances() {
		for _, to := range p.dag.Children(from.ID) {
			p.bridgeIDs[[2]int64{from.ID, to}] = next
			next++
		}
	}
}

func (pl *Planner) log(msg string, args ...interface{}) {
	if pl.Debug {
		logrus.Infof(msg, args...)
	}
}
