package graph

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/graphia-app/graphia-sub005/ids"
)

func TestAddNodeAddEdgeInvariant(t *testing.T) {
	g := New()
	a := g.AddNode()
	b := g.AddNode()
	e := g.AddEdge(a, b)

	src, tgt := g.Endpoints(e)
	require.Equal(t, a, src)
	require.Equal(t, b, tgt)
	require.Contains(t, g.OutEdges(a), e)
	require.Contains(t, g.InEdges(b), e)
	require.Equal(t, 2, g.NumNodes())
	require.Equal(t, 1, g.NumEdges())
}

func TestRemoveNodeRemovesIncidentEdgesFirst(t *testing.T) {
	g := New()
	a := g.AddNode()
	b := g.AddNode()
	e := g.AddEdge(a, b)

	g.RemoveNode(a)

	require.False(t, g.HasNode(a))
	require.False(t, g.HasEdge(e))
	require.Equal(t, 1, g.NumNodes())
}

func TestChangeBatchingFiresOnceAtDepthZero(t *testing.T) {
	g := New()
	willChangeCount := 0
	changedCount := 0
	g.OnGraphWillChange(func() { willChangeCount++ })
	g.OnGraphChanged(func() { changedCount++ })

	g.Transaction(func() {
		g.AddNode()
		g.AddNode()
		g.Transaction(func() {
			g.AddNode()
		})
	})

	require.Equal(t, 1, willChangeCount)
	require.Equal(t, 1, changedCount)
}

func TestContractEdgesMergesLowWeightEdge(t *testing.T) {
	// Scenario 3: nodes A,B,C with edges A-B, B-C; contract A-B.
	g := New()
	a := g.AddNode()
	b := g.AddNode()
	c := g.AddNode()
	ab := g.AddEdge(a, b)
	bc := g.AddEdge(b, c)

	g.ContractEdges([]ids.EdgeId{ab})

	require.Equal(t, 2, g.NumNodes(), "one node remains merged")
	require.True(t, g.HasEdge(bc))
	require.False(t, g.HasEdge(ab))

	head := g.HeadOf(a)
	require.Equal(t, head, g.HeadOf(b))
	require.Contains(t, g.Tails(head), func() ids.NodeId {
		if head == a {
			return b
		}
		return a
	}())
}

func TestContractEdgesPreservesMultiEdges(t *testing.T) {
	g := New()
	a := g.AddNode()
	b := g.AddNode()
	x := g.AddNode()
	ab := g.AddEdge(a, b)
	ax := g.AddEdge(a, x)
	bx := g.AddEdge(b, x) // after contracting a-b, this duplicates a(head)-x

	g.ContractEdges([]ids.EdgeId{ab})

	head := g.HeadOf(a)
	require.True(t, g.HasEdge(ax))
	require.True(t, g.HasEdge(bx))
	outEdges := g.OutEdges(head)
	require.Len(t, outEdges, 2) // ax and bx both now originate at head
}

func TestMergeOfAMergeTreatsHeadOfHeadAsItself(t *testing.T) {
	g := New()
	a := g.AddNode()
	b := g.AddNode()
	c := g.AddNode()

	firstHead := g.MergeNodes([]ids.NodeId{a, b})
	secondHead := g.MergeNodes([]ids.NodeId{firstHead, c})

	require.Equal(t, secondHead, g.HeadOf(a))
	require.Equal(t, secondHead, g.HeadOf(b))
	require.Equal(t, secondHead, g.HeadOf(c))
	require.ElementsMatch(t, []ids.NodeId{a, b, c}, appendAllTails(g, secondHead))
}

func appendAllTails(g *MutableGraph, head ids.NodeId) []ids.NodeId {
	out := []ids.NodeId{head}
	out = append(out, g.Tails(head)...)
	return out
}

func TestStaleIdPanics(t *testing.T) {
	g := New()
	a := g.AddNode()
	g.RemoveNode(a)

	require.Panics(t, func() {
		g.AddEdge(a, a)
	})
}

func TestVacatedIdReissuedWithinTransaction(t *testing.T) {
	g := New()
	a := g.AddNode()
	g.RemoveNode(a)
	b := g.AddNode()

	require.Equal(t, a, b, "vacated id queue reissues ids after removal")
}
