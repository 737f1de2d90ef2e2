package component

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/graphia-app/graphia-sub005/graph"
	"github.com/graphia-app/graphia-sub005/ids"
)

// harness wires a *graph.MutableGraph and *ComponentManager together the
// way package document does, without pulling in the rest of the document
// wiring, so ComponentManager can be exercised in isolation.
type harness struct {
	g  *graph.MutableGraph
	cm *ComponentManager
}

func newHarness() *harness {
	g := graph.New()
	return &harness{g: g, cm: New(g)}
}

func (h *harness) addNode() ids.NodeId {
	n := h.g.AddNode()
	h.cm.OnNodeAdded(n)
	return n
}

func (h *harness) addEdge(u, v ids.NodeId) ids.EdgeId {
	e := h.g.AddEdge(u, v)
	h.cm.OnEdgeAdded(u, v)
	return e
}

func (h *harness) removeEdge(e ids.EdgeId) error {
	u, v := h.g.Endpoints(e)
	h.g.RemoveEdge(e)
	neighbors := func(n ids.NodeId) []ids.NodeId {
		var out []ids.NodeId
		for _, oe := range h.g.OutEdges(n) {
			_, t := h.g.Endpoints(oe)
			out = append(out, t)
		}
		for _, ie := range h.g.InEdges(n) {
			s, _ := h.g.Endpoints(ie)
			out = append(out, s)
		}
		return out
	}
	return h.cm.OnEdgeRemoved(context.Background(), u, v, neighbors)
}

func TestTriangleScenario(t *testing.T) {
	h := newHarness()
	a := h.addNode()
	b := h.addNode()
	c := h.addNode()
	ab := h.addEdge(a, b)
	bc := h.addEdge(b, c)
	h.addEdge(c, a)

	require.Equal(t, 3, h.g.NumNodes())
	require.Equal(t, 3, h.g.NumEdges())
	require.Len(t, h.cm.ComponentIds(), 1)

	require.NoError(t, h.removeEdge(bc))
	require.Len(t, h.cm.ComponentIds(), 1, "still connected via c-a-b")

	// Find the remaining edge between a and c (added last) to remove it too.
	var ca ids.EdgeId
	for _, e := range h.g.EdgeIds() {
		if e != ab {
			ca = e
		}
	}
	require.NoError(t, h.removeEdge(ca))
	require.Len(t, h.cm.ComponentIds(), 2, "removing a-c isolates c")
}

func TestFilterByDegreeScenarioComponents(t *testing.T) {
	h := newHarness()
	n := make([]ids.NodeId, 5)
	for i := range n {
		n[i] = h.addNode()
	}
	for i := 0; i < 4; i++ {
		h.addEdge(n[i], n[i+1])
	}
	require.Len(t, h.cm.ComponentIds(), 1)
}

func TestBarbellSplitScenario(t *testing.T) {
	h := newHarness()
	cliqueA := make([]ids.NodeId, 10)
	cliqueB := make([]ids.NodeId, 10)
	for i := range cliqueA {
		cliqueA[i] = h.addNode()
	}
	for i := range cliqueB {
		cliqueB[i] = h.addNode()
	}
	for i := 0; i < 10; i++ {
		for j := i + 1; j < 10; j++ {
			h.addEdge(cliqueA[i], cliqueA[j])
			h.addEdge(cliqueB[i], cliqueB[j])
		}
	}
	bridge := h.addEdge(cliqueA[0], cliqueB[0])

	require.Len(t, h.cm.ComponentIds(), 1)

	var splitOld ids.ComponentId
	var splitChildren []ids.ComponentId
	h.cm.OnComponentSplit(func(old ids.ComponentId, children []ids.ComponentId) {
		splitOld = old
		splitChildren = children
	})

	require.NoError(t, h.removeEdge(bridge))

	require.Len(t, h.cm.ComponentIds(), 2)
	require.Len(t, splitChildren, 2)
	require.Contains(t, splitChildren, splitOld)

	total := 0
	for _, c := range h.cm.ComponentIds() {
		total += h.cm.Size(c)
	}
	require.Equal(t, 20, total)
}

func TestRemoveNodeReducesComponentCount(t *testing.T) {
	h := newHarness()
	n := make([]ids.NodeId, 3)
	for i := range n {
		n[i] = h.addNode()
	}
	require.Len(t, h.cm.ComponentIds(), 3)

	h.g.RemoveNode(n[0])
	h.cm.OnNodeRemoved(n[0])
	require.Len(t, h.cm.ComponentIds(), 2)
}

func TestMergeTieBreakPrefersSmallerComponentId(t *testing.T) {
	h := newHarness()
	a := h.addNode() // component 0
	b := h.addNode() // component 1
	h.addEdge(a, b)
	require.Len(t, h.cm.ComponentIds(), 1)
	winner := h.cm.ComponentIds()[0]
	require.Equal(t, ids.ComponentId(0), winner)
}
