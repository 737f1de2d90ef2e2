package positions

import (
	"testing"

	"github.com/graphia-app/graphia-sub005/graph"
	"github.com/graphia-app/graphia-sub005/ids"
	"github.com/stretchr/testify/assert"
)

func TestNodeLayoutPositionsSetGetRoundTrip(t *testing.T) {
	g := graph.New()
	n := g.AddNode()
	p := New(g)
	layout := NewLayout(p)

	layout.Set(n, Vec3{X: 1, Y: 2, Z: 3})
	assert.Equal(t, Vec3{X: 1, Y: 2, Z: 3}, layout.Get(n))
}

func TestNodePositionsSmoothingAveragesHistory(t *testing.T) {
	g := graph.New()
	n := g.AddNode()
	p := New(g)
	p.SetSmoothing(2)
	layout := NewLayout(p)

	layout.Set(n, Vec3{X: 0})
	layout.Set(n, Vec3{X: 10})

	assert.InDelta(t, 5, p.Get(n).X, 1e-9)
}

func TestNodePositionsScaleAppliesToGet(t *testing.T) {
	g := graph.New()
	n := g.AddNode()
	p := New(g)
	p.SetScale(2)
	layout := NewLayout(p)
	layout.Set(n, Vec3{X: 3})

	assert.InDelta(t, 6, p.Get(n).X, 1e-9)
}

func TestNodePositionsCentreOfMass(t *testing.T) {
	g := graph.New()
	a := g.AddNode()
	b := g.AddNode()
	p := New(g)
	layout := NewLayout(p)
	layout.Set(a, Vec3{X: 0})
	layout.Set(b, Vec3{X: 10})

	com := p.CentreOfMass([]ids.NodeId{a, b})
	assert.InDelta(t, 5, com.X, 1e-9)
}
