package dag

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// diamond builds 1 -> {2, 3} -> 4 with an extra isolated node 5.
func diamond() *DAG {
	d := New()
	for id := int64(1); id <= 5; id++ {
		d.AddNode(id)
	}
	d.AddEdge(1, 2)
	d.AddEdge(1, 3)
	d.AddEdge(2, 4)
	d.AddEdge(3, 4)
	return d
}

func TestAddNodeDuplicatePanics(t *testing.T) {
	require := require.New(t)

	d := New()
	d.AddNode(1)
	require.Panics(func() { d.AddNode(1) })
}

func TestAddEdgeRequiresNodes(t *testing.T) {
	require := require.New(t)

	d := New()
	d.AddNode(1)
	require.Panics(func() { d.AddEdge(1, 2) })
	require.Panics(func() { d.AddEdge(2, 1) })
}

func TestDeleteNodeRemovesIncidentEdges(t *testing.T) {
	require := require.New(t)

	d := diamond()
	d.DeleteNode(2)
	require.False(d.HasNode(2))
	require.Equal([]int64{3}, d.Children(1))
	require.Equal([]int64{3}, d.Parents(4))
	require.False(d.HasEdge(1, 2))
	require.False(d.HasEdge(2, 4))

	// Deleting again warns but does not panic.
	require.NotPanics(func() { d.DeleteNode(2) })
}

func TestTopologicalSortOrdersEveryEdge(t *testing.T) {
	require := require.New(t)

	d := diamond()
	order := d.TopologicalSort()
	require.Len(order, 5)

	pos := make(map[int64]int)
	for i, id := range order {
		pos[id] = i
	}
	for _, e := range [][2]int64{{1, 2}, {1, 3}, {2, 4}, {3, 4}} {
		require.Less(pos[e[0]], pos[e[1]], "edge (%d,%d)", e[0], e[1])
	}
}

func TestTopologicalSortCyclePanics(t *testing.T) {
	require := require.New(t)

	d := New()
	d.AddNode(1)
	d.AddNode(2)
	d.AddEdge(1, 2)
	d.AddEdge(2, 1)
	require.Panics(func() { d.TopologicalSort() })
}

func TestTransitiveDepsFrom(t *testing.T) {
	require := require.New(t)

	d := diamond()
	require.ElementsMatch([]int64{2, 3, 4}, d.TransitiveDepsFrom(1))
	require.ElementsMatch([]int64{4}, d.TransitiveDepsFrom(2))
	require.Empty(d.TransitiveDepsFrom(4))
	require.Panics(func() { d.TransitiveDepsFrom(99) })
}

func TestReplaceChildEdgeKeepsPosition(t *testing.T) {
	require := require.New(t)

	d := diamond()
	d.AddNode(6)
	d.ReplaceChildEdge(1, 2, 6)
	require.Equal([]int64{6, 3}, d.Children(1))
	require.Equal([]int64{1}, d.Parents(6))
	require.Empty(d.Parents(2))

	require.Panics(func() { d.ReplaceChildEdge(1, 2, 6) })
}

func TestReplaceParentEdgeKeepsPosition(t *testing.T) {
	require := require.New(t)

	d := diamond()
	d.AddNode(6)
	d.ReplaceParentEdge(4, 2, 6)
	require.Equal([]int64{6, 3}, d.Parents(4))
	require.Equal([]int64{4}, d.Children(6))
	require.Empty(d.Children(2))
}

func TestOrphans(t *testing.T) {
	require := require.New(t)

	d := diamond()
	require.Equal(map[int64]bool{5: true}, d.Orphans())
}

func TestIndependentGraphsPartition(t *testing.T) {
	require := require.New(t)

	// Two sources converging on one node form a single component; a disjoint
	// chain and an isolated node form their own.
	d := New()
	for id := int64(1); id <= 7; id++ {
		d.AddNode(id)
	}
	d.AddEdge(1, 3)
	d.AddEdge(2, 3)
	d.AddEdge(4, 5)
	d.AddEdge(5, 6)

	groups := d.IndependentGraphs()
	require.Len(groups, 3)

	covered := make(map[int64]bool)
	for _, g := range groups {
		for id := range g {
			require.False(covered[id])
			covered[id] = true
		}
	}
	require.Len(covered, 7)

	byMember := func(id int64) map[int64]bool {
		for _, g := range groups {
			if g[id] {
				return g
			}
		}
		return nil
	}
	require.Equal(map[int64]bool{1: true, 2: true, 3: true}, byMember(1))
	require.Equal(map[int64]bool{4: true, 5: true, 6: true}, byMember(4))
	require.Equal(map[int64]bool{7: true}, byMember(7))
}

func TestProtoRoundTrip(t *testing.T) {
	require := require.New(t)

	d := diamond()
	pb := d.ToProto()

	restored := New()
	restored.Init(pb)
	require.Equal(d.Nodes(), restored.Nodes())
	for _, id := range d.Nodes() {
		require.Equal(d.Children(id), restored.Children(id), "children of %d", id)
		require.Equal(d.Parents(id), restored.Parents(id), "parents of %d", id)
	}
}

func TestToProtoIgnoring(t *testing.T) {
	require := require.New(t)

	d := diamond()
	pb := d.ToProtoIgnoring(map[int64]bool{2: true})
	for _, n := range pb.Nodes {
		require.NotEqual(int64(2), n.Id)
		require.NotContains(n.SortedChildren, int64(2))
		require.NotContains(n.SortedParents, int64(2))
	}
}
