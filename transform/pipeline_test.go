package transform

import (
	"context"
	"testing"

	"github.com/graphia-app/graphia-sub005/attribute"
	"github.com/graphia-app/graphia-sub005/graph"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildStar creates a 1-hub, 4-leaf star graph: hub has degree 4, each leaf
// degree 1.
func buildStar(t *testing.T) *graph.MutableGraph {
	t.Helper()
	g := graph.New()
	hub := g.AddNode()
	for i := 0; i < 4; i++ {
		leaf := g.AddNode()
		g.AddEdge(hub, leaf)
	}
	return g
}

// buildPath creates the N1-N2-N3-N4-N5 path graph from §8 scenario 2:
// N1 and N5 have degree 1, N2/N3/N4 have degree 2.
func buildPath(t *testing.T) *graph.MutableGraph {
	t.Helper()
	g := graph.New()
	prev := g.AddNode()
	for i := 0; i < 4; i++ {
		next := g.AddNode()
		g.AddEdge(prev, next)
		prev = next
	}
	return g
}

// TestPipelineFilterNodeByDegree follows §8 scenario 2 literally:
// "filter node where $degree < 2" removes the nodes the condition
// matches (N1, N5), leaving the N2-N3-N4 path.
func TestPipelineFilterNodeByDegree(t *testing.T) {
	g := buildPath(t)
	reg := attribute.NewRegistry()
	pipeline := NewPipeline(reg, zerolog.Nop())
	pipeline.Steps = []TransformConfig{
		{
			Action: ActionFilterNode,
			Condition: AttrCompare{
				Attribute: "$degree",
				Op:        OpLT,
				Literal:   attribute.IntValue(2),
			},
		},
	}

	out, alerts, err := pipeline.Run(context.Background(), g, nil)
	require.NoError(t, err)
	assert.False(t, alerts.HasError())
	assert.Equal(t, 3, out.NumNodes())
}

func TestPipelineCachesRepeatedApplication(t *testing.T) {
	g := buildStar(t)
	reg := attribute.NewRegistry()
	pipeline := NewPipeline(reg, zerolog.Nop())
	pipeline.Steps = []TransformConfig{
		{Action: ActionRemoveLeaves},
	}

	_, _, err := pipeline.Run(context.Background(), g, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, pipeline.Cache.HitCount())
	assert.Equal(t, 1, pipeline.Cache.MissCount())

	_, _, err = pipeline.Run(context.Background(), g, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, pipeline.Cache.HitCount())
}

func TestPipelineSynthesiseBooleanAttribute(t *testing.T) {
	g := buildStar(t)
	reg := attribute.NewRegistry()
	pipeline := NewPipeline(reg, zerolog.Nop())
	pipeline.Steps = []TransformConfig{
		{
			Action:           ActionSynthesise,
			NewAttributeName: "is_hub",
			Condition: AttrCompare{
				Attribute: "$degree",
				Op:        OpGE,
				Literal:   attribute.IntValue(2),
			},
		},
	}

	_, alerts, err := pipeline.Run(context.Background(), g, nil)
	require.NoError(t, err)
	assert.False(t, alerts.HasError())

	attr, err := reg.Get("is_hub")
	require.NoError(t, err)
	assert.Equal(t, attribute.Int, attr.ValueType)
}

func TestPipelineGiantComponentKeepsLargestOnly(t *testing.T) {
	g := graph.New()
	a, b, c := g.AddNode(), g.AddNode(), g.AddNode()
	g.AddEdge(a, b)
	g.AddEdge(b, c)
	_ = g.AddNode() // isolated, smaller component

	reg := attribute.NewRegistry()
	pipeline := NewPipeline(reg, zerolog.Nop())
	pipeline.Steps = []TransformConfig{{Action: ActionGiantComponent}}

	out, _, err := pipeline.Run(context.Background(), g, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, out.NumNodes())
}

func TestPipelinePageRankRegistersAttributeSummingToOne(t *testing.T) {
	g := buildStar(t)
	reg := attribute.NewRegistry()
	pipeline := NewPipeline(reg, zerolog.Nop())
	pipeline.Steps = []TransformConfig{{Action: ActionPageRank}}

	_, _, err := pipeline.Run(context.Background(), g, nil)
	require.NoError(t, err)

	attr, err := reg.Get("pagerank")
	require.NoError(t, err)
	total := 0.0
	for _, n := range g.NodeIds() {
		total += attr.Value(uint32(n)).AsFloat()
	}
	assert.InDelta(t, 1.0, total, 0.05)
}
