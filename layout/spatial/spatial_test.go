package spatial

import (
	"context"
	"testing"

	"github.com/graphia-app/graphia-sub005/graph"
	"github.com/graphia-app/graphia-sub005/ids"
	"github.com/graphia-app/graphia-sub005/internal/workerpool"
	"github.com/graphia-app/graphia-sub005/layout/positions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreeBuildSeparatesDistantClusters(t *testing.T) {
	g := graph.New()
	a := g.AddNode()
	b := g.AddNode()
	c := g.AddNode()
	d := g.AddNode()
	pos := positions.New(g)
	layout := positions.NewLayout(pos)
	layout.Set(a, positions.Vec3{X: -10, Y: -10})
	layout.Set(b, positions.Vec3{X: -9, Y: -9})
	layout.Set(c, positions.Vec3{X: 10, Y: 10})
	layout.Set(d, positions.Vec3{X: 9, Y: 9})

	tree := New(2)
	err := tree.Build(context.Background(), workerpool.NewSized(2), []ids.NodeId{a, b, c, d}, layout)
	require.NoError(t, err)

	total := tree.AccumulateForce(positions.Vec3{X: -10, Y: -10}, 0,
		func(from, to positions.Vec3, mass float64) positions.Vec3 {
			return to.Sub(from).Scale(mass)
		})

	// Exact (theta=0) accumulation should reach toward the other three
	// nodes, i.e. a positive net displacement away from a's own corner.
	assert.Greater(t, total.X, 0.0)
	assert.Greater(t, total.Y, 0.0)
}

func TestTreeBuildEmptyIsNoop(t *testing.T) {
	tree := New(2)
	err := tree.Build(context.Background(), workerpool.New(), nil, positions.NodeLayoutPositions{})
	require.NoError(t, err)
	assert.Equal(t, 0, tree.DepthFirstTraversalStackSize())
}
