// Package distributed splits a compiled logical plan across the execution
// nodes of a cluster. Every node receives its own pruned copy of the plan;
// the coordination graph records which nodes stream results to which.
package distributed

import (
	"sort"

	"github.com/mitchellh/hashstructure"
	uuid "github.com/satori/go.uuid"
	errors "gopkg.in/src-d/go-errors.v1"

	"github.com/flowscope/flowscope/dag"
	"github.com/flowscope/flowscope/ir"
	"github.com/flowscope/flowscope/planpb"
)

var (
	// ErrNoExecutionNodes is returned when the cluster state contains no node
	// able to coordinate a query.
	ErrNoExecutionNodes = errors.NewKind("distributed state has no node able to coordinate queries")
	// ErrBadAgentID is returned when a node descriptor carries an unparseable
	// agent id.
	ErrBadAgentID = errors.NewKind("invalid agent id %q for node %s")
)

// ExecutorInstance is one execution node participating in a query, paired with
// that node's private copy of the plan.
type ExecutorInstance struct {
	ID      int64
	Info    *planpb.ExecutorInfo
	AgentID uuid.UUID
	Plan    *ir.IR
}

// IsDataStore reports whether this node holds table data locally.
func (c *ExecutorInstance) IsDataStore() bool {
	return c.Info.HasDataStore && c.Info.ProcessesData
}

// IsCoordinator reports whether this node accepts streams from other nodes
// and runs the blocking portion of a query.
func (c *ExecutorInstance) IsCoordinator() bool {
	return c.Info.HasGrpcServer && c.Info.ProcessesData
}

// Plan is a distributed plan: one ExecutorInstance per participating node plus
// a coordination graph whose edges point from data producers to the
// coordinators that consume their output.
type Plan struct {
	dag       *dag.DAG
	instances map[int64]*ExecutorInstance
	nextID    int64

	bridgeIDs map[[2]int64]int64
}

// NewPlan returns an empty distributed plan.
func NewPlan() *Plan {
	return &Plan{
		dag:       dag.New(),
		instances: make(map[int64]*ExecutorInstance),
		bridgeIDs: make(map[[2]int64]int64),
	}
}

// AddInstance registers a node with its own clone of the logical plan and
// returns the new instance.
func (p *Plan) AddInstance(info *planpb.ExecutorInfo, plan *ir.IR) (*ExecutorInstance, error) {
	aid, err := uuid.FromString(info.AgentId)
	if err != nil {
		return nil, ErrBadAgentID.New(info.AgentId, info.QueryBrokerAddress)
	}
	inst := &ExecutorInstance{ID: p.nextID, Info: info, AgentID: aid, Plan: plan}
	p.nextID++
	p.dag.AddNode(inst.ID)
	p.instances[inst.ID] = inst
	return inst, nil
}

// AddEdge records that the plan running on from streams its output to the
// plan running on to.
func (p *Plan) AddEdge(from, to *ExecutorInstance) {
	p.dag.AddEdge(from.ID, to.ID)
}

// RemoveInstance drops a node from the plan along with its coordination
// edges.
func (p *Plan) RemoveInstance(id int64) {
	p.dag.DeleteNode(id)
	delete(p.instances, id)
}

// Get returns the instance with the given id, or nil.
func (p *Plan) Get(id int64) *ExecutorInstance { return p.instances[id] }

// DAG exposes the coordination graph.
func (p *Plan) DAG() *dag.DAG { return p.dag }

// Instances returns the participating nodes in ascending id order.
func (p *Plan) Instances() []*ExecutorInstance {
	out := make([]*ExecutorInstance, 0, len(p.instances))
	for _, inst := range p.instances {
		out = append(out, inst)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// BridgeID returns the result-stream id assigned to the coordination edge
// from one instance to another. Ids are assigned by the stitcher.
func (p *Plan) BridgeID(from, to *ExecutorInstance) (int64, bool) {
	id, ok := p.bridgeIDs[[2]int64{from.ID, to.ID}]
	return id, ok
}

// ToProto serializes the distributed plan. Nodes whose pruned plans came out
// identical share a single serialized plan message; identity is decided by a
// structural fingerprint of the plan proto.
func (p *Plan) ToProto() (*planpb.DistributedPlan, error) {
	out := &planpb.DistributedPlan{
		QbAddressToPlan:  make(map[string]*planpb.Plan),
		QbAddressToDagId: make(map[string]int64),
		Dag:              p.dag.ToProto(),
	}
	byFingerprint := make(map[uint64]*planpb.Plan)
	for _, inst := range p.Instances() {
		pb, err := inst.Plan.ToPlanProto()
		if err != nil {
			return nil, err
		}
		fp, err := hashstructure.Hash(pb, nil)
		if err != nil {
			return nil, err
		}
		if shared, ok := byFingerprint[fp]; ok {
			pb = shared
		} else {
			byFingerprint[fp] = pb
		}
		out.QbAddressToPlan[inst.Info.QueryBrokerAddress] = pb
		out.QbAddressToDagId[inst.Info.QueryBrokerAddress] = inst.ID
	}
	return out, nil
}
