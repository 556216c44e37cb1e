// Package dag implements the directed acyclic graph that backs the planner's
// intermediate representation. Nodes are integer ids; adjacency lists keep
// insertion order so that structural rewrites preserve sibling ordering.
package dag

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/flowscope/flowscope/planpb"
)

// DAG tracks a set of integer node ids and ordered forward/reverse edges
// between them. Methods that would corrupt the structure (duplicate node
// insertion, edges to missing nodes, cycles where acyclicity is required)
// panic: they indicate a bug in the caller, not bad user input.
type DAG struct {
	nodes   map[int64]bool
	forward map[int64][]int64
	reverse map[int64][]int64
}

// New returns an empty DAG.
func New() *DAG {
	return &DAG{
		nodes:   make(map[int64]bool),
		forward: make(map[int64][]int64),
		reverse: make(map[int64][]int64),
	}
}

// AddNode inserts a new node. Inserting an id that is already present is a
// programming error and panics.
func (d *DAG) AddNode(id int64) {
	if d.nodes[id] {
		panic(fmt.Sprintf("dag: node %d already exists", id))
	}
	d.nodes[id] = true
	d.forward[id] = nil
	d.reverse[id] = nil
}

// HasNode reports whether id is present.
func (d *DAG) HasNode(id int64) bool {
	return d.nodes[id]
}

// HasEdge reports whether the edge (from, to) is present.
func (d *DAG) HasEdge(from, to int64) bool {
	for _, c := range d.forward[from] {
		if c == to {
			return true
		}
	}
	return false
}

// Nodes returns all node ids in ascending order.
func (d *DAG) Nodes() []int64 {
	out := make([]int64, 0, len(d.nodes))
	for id := range d.nodes {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// NumNodes returns the number of nodes present.
func (d *DAG) NumNodes() int {
	return len(d.nodes)
}

// AddEdge appends to to forward[from] and from to reverse[to]. Both nodes
// must already exist.
func (d *DAG) AddEdge(from, to int64) {
	if !d.nodes[from] {
		panic(fmt.Sprintf("dag: edge from missing node %d", from))
	}
	if !d.nodes[to] {
		panic(fmt.Sprintf("dag: edge to missing node %d", to))
	}
	d.forward[from] = append(d.forward[from], to)
	d.reverse[to] = append(d.reverse[to], from)
}

// DeleteEdge removes the edge (from, to) from both adjacency lists. Removing
// an absent edge is a no-op.
func (d *DAG) DeleteEdge(from, to int64) {
	d.forward[from] = removeID(d.forward[from], to)
	d.reverse[to] = removeID(d.reverse[to], from)
}

// DeleteNode removes all edges incident to id, then the node itself. Deleting
// a node that is not present logs a warning and returns.
func (d *DAG) DeleteNode(id int64) {
	if !d.nodes[id] {
		logrus.Warnf("dag: deleting nonexistent node %d", id)
		return
	}
	for _, child := range append([]int64(nil), d.forward[id]...) {
		d.DeleteEdge(id, child)
	}
	for _, parent := range append([]int64(nil), d.reverse[id]...) {
		d.DeleteEdge(parent, id)
	}
	delete(d.forward, id)
	delete(d.reverse, id)
	delete(d.nodes, id)
}

// ReplaceChildEdge swaps oldChild for newChild in forward[parent], keeping the
// original position, and fixes up the reverse lists of both children.
func (d *DAG) ReplaceChildEdge(parent, oldChild, newChild int64) {
	if !d.nodes[newChild] {
		panic(fmt.Sprintf("dag: replacement child %d does not exist", newChild))
	}
	replaced := false
	for i, c := range d.forward[parent] {
		if c == oldChild {
			d.forward[parent][i] = newChild
			replaced = true
			break
		}
	}
	if !replaced {
		panic(fmt.Sprintf("dag: no edge (%d, %d) to replace", parent, oldChild))
	}
	d.reverse[oldChild] = removeID(d.reverse[oldChild], parent)
	d.reverse[newChild] = append(d.reverse[newChild], parent)
}

// ReplaceParentEdge swaps oldParent for newParent in reverse[child], keeping
// the original position, and fixes up the forward lists of both parents.
func (d *DAG) ReplaceParentEdge(child, oldParent, newParent int64) {
	if !d.nodes[newParent] {
		panic(fmt.Sprintf("dag: replacement parent %d does not exist", newParent))
	}
	replaced := false
	for i, p := range d.reverse[child] {
		if p == oldParent {
			d.reverse[child][i] = newParent
			replaced = true
			break
		}
	}
	if !replaced {
		panic(fmt.Sprintf("dag: no edge (%d, %d) to replace", oldParent, child))
	}
	d.forward[oldParent] = removeID(d.forward[oldParent], child)
	d.forward[newParent] = append(d.forward[newParent], child)
}

// Children returns the ordered child list of id.
func (d *DAG) Children(id int64) []int64 {
	return append([]int64(nil), d.forward[id]...)
}

// Parents returns the ordered parent list of id.
func (d *DAG) Parents(id int64) []int64 {
	return append([]int64(nil), d.reverse[id]...)
}

// TopologicalSort returns a permutation of all node ids such that every edge
// (a, b) places a before b. A cycle is a programming error and panics.
func (d *DAG) TopologicalSort() []int64 {
	indegree := make(map[int64]int, len(d.nodes))
	for id := range d.nodes {
		indegree[id] = len(d.reverse[id])
	}
	var queue []int64
	for _, id := range d.Nodes() {
		if indegree[id] == 0 {
			queue = append(queue, id)
		}
	}
	if len(queue) == 0 && len(d.nodes) > 0 {
		panic("dag: topological sort on graph with no sources (cycle)")
	}
	out := make([]int64, 0, len(d.nodes))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		out = append(out, id)
		for _, child := range d.forward[id] {
			indegree[child]--
			if indegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}
	if len(out) != len(d.nodes) {
		panic("dag: topological sort did not visit all nodes (cycle)")
	}
	return out
}

const (
	white = iota
	gray
	black
)

// TransitiveDepsFrom returns every node reachable from id through forward
// edges, not including id itself. Revisiting an in-progress node means the
// graph has a cycle, which panics.
func (d *DAG) TransitiveDepsFrom(id int64) []int64 {
	if !d.nodes[id] {
		panic(fmt.Sprintf("dag: node %d does not exist", id))
	}
	color := make(map[int64]int)
	var out []int64
	// Iterative DFS; a nil marker on the stack closes the gray frame below it.
	type frame struct {
		id   int64
		exit bool
	}
	stack := []frame{{id: id}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.exit {
			color[f.id] = black
			continue
		}
		switch color[f.id] {
		case gray:
			panic(fmt.Sprintf("dag: cycle detected through node %d", f.id))
		case black:
			continue
		}
		color[f.id] = gray
		if f.id != id {
			out = append(out, f.id)
		}
		stack = append(stack, frame{id: f.id, exit: true})
		children := d.forward[f.id]
		for i := len(children) - 1; i >= 0; i-- {
			c := children[i]
			if color[c] == gray {
				panic(fmt.Sprintf("dag: cycle detected through node %d", c))
			}
			if color[c] == white {
				stack = append(stack, frame{id: c})
			}
		}
	}
	return out
}

// Orphans returns the set of nodes with no edges in either direction.
func (d *DAG) Orphans() map[int64]bool {
	out := make(map[int64]bool)
	for id := range d.nodes {
		if len(d.forward[id]) == 0 && len(d.reverse[id]) == 0 {
			out[id] = true
		}
	}
	return out
}

// IndependentGraphs partitions the nodes into weakly-connected components.
// Each component is found by walking forward reachability from every
// zero-indegree source and merging sources that reach a common node.
func (d *DAG) IndependentGraphs() []map[int64]bool {
	parent := make(map[int64]int64, len(d.nodes))
	for id := range d.nodes {
		parent[id] = id
	}
	var find func(int64) int64
	find = func(x int64) int64 {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}
	union := func(a, b int64) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[ra] = rb
		}
	}

	seen := make(map[int64]int64) // node -> source that first reached it
	for _, src := range d.Nodes() {
		if len(d.reverse[src]) != 0 {
			continue
		}
		stack := []int64{src}
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if prev, ok := seen[n]; ok {
				union(prev, src)
				if n != src {
					continue
				}
			}
			seen[n] = src
			stack = append(stack, d.forward[n]...)
		}
	}

	groups := make(map[int64]map[int64]bool)
	for id := range d.nodes {
		root := find(seen[id])
		if groups[root] == nil {
			groups[root] = make(map[int64]bool)
		}
		groups[root][id] = true
	}
	roots := make([]int64, 0, len(groups))
	for r := range groups {
		roots = append(roots, r)
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i] < roots[j] })
	out := make([]map[int64]bool, 0, len(groups))
	for _, r := range roots {
		out = append(out, groups[r])
	}
	return out
}

// ToProto serializes the DAG with sorted parent/child lists per node.
func (d *DAG) ToProto() *planpb.DAG {
	return d.ToProtoIgnoring(nil)
}

// ToProtoIgnoring serializes the DAG, dropping the ignored nodes and every
// edge that touches them.
func (d *DAG) ToProtoIgnoring(ignore map[int64]bool) *planpb.DAG {
	pb := &planpb.DAG{}
	for _, id := range d.Nodes() {
		if ignore[id] {
			continue
		}
		node := &planpb.DAGNode{Id: id}
		for _, c := range d.forward[id] {
			if !ignore[c] {
				node.SortedChildren = append(node.SortedChildren, c)
			}
		}
		for _, p := range d.reverse[id] {
			if !ignore[p] {
				node.SortedParents = append(node.SortedParents, p)
			}
		}
		sortIDs(node.SortedChildren)
		sortIDs(node.SortedParents)
		pb.Nodes = append(pb.Nodes, node)
	}
	return pb
}

// Init replaces the DAG's contents with the graph described by pb. Edges are
// restored from the child lists only; the parent lists are redundant.
func (d *DAG) Init(pb *planpb.DAG) {
	d.nodes = make(map[int64]bool)
	d.forward = make(map[int64][]int64)
	d.reverse = make(map[int64][]int64)
	for _, n := range pb.Nodes {
		d.AddNode(n.Id)
	}
	for _, n := range pb.Nodes {
		for _, c := range n.SortedChildren {
			d.AddEdge(n.Id, c)
		}
	}
}

func sortIDs(ids []int64) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}

func removeID(list []int64, id int64) []int64 {
	for i, v := range list {
		if v == id {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
