package view

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/graphia-app/graphia-sub005/graph"
	"github.com/graphia-app/graphia-sub005/ids"
)

func TestFilteredViewRestrictsToInducedSubgraph(t *testing.T) {
	g := graph.New()
	a := g.AddNode()
	b := g.AddNode()
	c := g.AddNode()
	ab := g.AddEdge(a, b)
	g.AddEdge(b, c)

	v := NewFiltered(g, []ids.NodeId{a, b})

	require.ElementsMatch(t, []ids.NodeId{a, b}, v.NodeIds())
	require.ElementsMatch(t, []ids.EdgeId{ab}, v.EdgeIds())
	require.Equal(t, 2, v.NumNodes())
	require.Equal(t, 1, v.NumEdges())
}

func TestTransformedGraphTracksAddedNodesAndFiresGraphChangedOnce(t *testing.T) {
	tg := New()
	fired := 0
	tg.OnGraphChanged(func() { fired++ })

	n1 := tg.Internal().AddNode()
	tg.CommitTopology()
	require.Equal(t, 1, fired)
	require.Equal(t, Added, tg.NodeState(n1))

	n2 := tg.Internal().AddNode()
	tg.CommitTopology()
	require.Equal(t, 2, fired)
	require.Equal(t, Unchanged, tg.NodeState(n1), "no longer new on the second commit")
	require.Equal(t, Added, tg.NodeState(n2))
}

func TestAttributeValuesChangedDoesNotRequireTopologyCommit(t *testing.T) {
	tg := New()
	var gotNames []string
	tg.OnAttributeValuesChanged(func(names []string) { gotNames = names })

	tg.EmitAttributeValuesChanged([]string{"PageRank"})
	require.Equal(t, []string{"PageRank"}, gotNames)
}
