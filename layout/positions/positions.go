// Package positions implements NodePositions/NodeLayoutPositions
// (component G): per-node smoothed positions backed by a small ring
// buffer of recent raw positions, the scale/smoothing knobs the
// visualisation layer reads through, and a raw, unlocked fast path
// (NodeLayoutPositions) for the layout engine's own inner loop.
package positions

import (
	"sync"

	"github.com/graphia-app/graphia-sub005/graph"
	"github.com/graphia-app/graphia-sub005/ids"
)

// MaxSmoothing bounds the ring buffer depth (original_source:
// nodepositions.h's MAX_SMOOTHING).
const MaxSmoothing = 8

// meanPosition is a small fixed-capacity ring buffer of recent raw
// positions for one node.
type meanPosition struct {
	buf   [MaxSmoothing]Vec3
	count int
	next  int
}

func (m *meanPosition) pushBack(v Vec3) {
	m.buf[m.next] = v
	m.next = (m.next + 1) % MaxSmoothing
	if m.count < MaxSmoothing {
		m.count++
	}
}

// newest returns the most recently pushed raw position, or the zero
// Vec3 if nothing has been pushed yet.
func (m *meanPosition) newest() Vec3 {
	if m.count == 0 {
		return Vec3{}
	}
	idx := (m.next - 1 + MaxSmoothing) % MaxSmoothing
	return m.buf[idx]
}

// mean averages the last n entries (n clamped to [1, count]).
func (m *meanPosition) mean(n int) Vec3 {
	if m.count == 0 {
		return Vec3{}
	}
	if n > m.count {
		n = m.count
	}
	if n < 1 {
		n = 1
	}
	var sum Vec3
	idx := (m.next - 1 + MaxSmoothing) % MaxSmoothing
	for i := 0; i < n; i++ {
		sum = sum.Add(m.buf[idx])
		idx = (idx - 1 + MaxSmoothing) % MaxSmoothing
	}
	return sum.Scale(1 / float64(n))
}

// NodePositions holds the smoothed, scaled position of every node,
// guarded by a lock that the rendering/query side takes per read; layout
// algorithms write through the unlocked NodeLayoutPositions instead. The original C++ type uses a
// recursive mutex so the owning thread can re-enter; idiomatic Go favors
// a plain sync.Mutex with non-reentrant Lock/Unlock, so reentrant call
// chains must restructure instead (see DESIGN.md).
type NodePositions struct {
	mu        sync.Mutex
	positions *graph.NodeArray[meanPosition]

	scale     float64
	smoothing int
}

// New creates a NodePositions registered against g, so it auto-resizes as
// nodes are added.
func New(g *graph.MutableGraph) *NodePositions {
	return &NodePositions{
		positions: graph.NewNodeArray[meanPosition](g),
		scale:     1,
		smoothing: 1,
	}
}

func (p *NodePositions) Lock()   { p.mu.Lock() }
func (p *NodePositions) Unlock() { p.mu.Unlock() }

func (p *NodePositions) SetScale(s float64) { p.mu.Lock(); p.scale = s; p.mu.Unlock() }
func (p *NodePositions) Scale() float64     { p.mu.Lock(); defer p.mu.Unlock(); return p.scale }

func (p *NodePositions) SetSmoothing(n int) {
	if n > MaxSmoothing {
		n = MaxSmoothing
	}
	if n < 1 {
		n = 1
	}
	p.mu.Lock()
	p.smoothing = n
	p.mu.Unlock()
}
func (p *NodePositions) Smoothing() int { p.mu.Lock(); defer p.mu.Unlock(); return p.smoothing }

// Get returns the smoothed, scaled position of nodeId.
func (p *NodePositions) Get(nodeId ids.NodeId) Vec3 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.getLocked(nodeId)
}

func (p *NodePositions) getLocked(nodeId ids.NodeId) Vec3 {
	mp := p.positions.Get(nodeId)
	return mp.mean(p.smoothing).Scale(p.scale)
}

// GetAll returns the smoothed positions of nodeIds, in the same order.
func (p *NodePositions) GetAll(nodeIds []ids.NodeId) []Vec3 {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Vec3, len(nodeIds))
	for i, n := range nodeIds {
		out[i] = p.getLocked(n)
	}
	return out
}

// push records a new raw position for nodeId, shifting the smoothing
// buffer. Layout algorithms call this once per settling iteration.
func (p *NodePositions) push(nodeId ids.NodeId, v Vec3) {
	mp := p.positions.Get(nodeId)
	mp.pushBack(v)
	p.positions.Set(nodeId, mp)
}

// Flatten collapses every node's smoothing history down to its current
// mean, so the next pushed position starts a fresh average instead of
// blending with older, now-irrelevant history (original_source: called
// after a layout pause/resume or a structural change).
func (p *NodePositions) Flatten() {
	p.mu.Lock()
	defer p.mu.Unlock()
	// positions.Range visits every slot of the array, including ids of
	// removed nodes.
	p.positions.Range(func(n ids.NodeId, mp meanPosition) {
		flat := meanPosition{}
		flat.pushBack(mp.mean(p.smoothing))
		p.positions.Set(n, flat)
	})
}

// CentreOfMass returns the unweighted average position of nodeIds.
func (p *NodePositions) CentreOfMass(nodeIds []ids.NodeId) Vec3 {
	if len(nodeIds) == 0 {
		return Vec3{}
	}
	positions := p.GetAll(nodeIds)
	var sum Vec3
	for _, v := range positions {
		sum = sum.Add(v)
	}
	return sum.Scale(1 / float64(len(nodeIds)))
}

// NodeLayoutPositions is the raw, unlocked fast path a Layout algorithm's
// own inner loop uses: it reads/writes the newest pushed position
// directly, bypassing the scale/smoothing math NodePositions.Get applies,
// matching original_source's "interface to the Layout algorithms only,
// without needing to lock" note. The layout engine is expected to hold
// exclusive ownership of the graph while iterating, so no additional
// locking is introduced here.
type NodeLayoutPositions struct {
	*NodePositions
}

// NewLayout wraps positions for unlocked raw access by a running layout.
func NewLayout(p *NodePositions) NodeLayoutPositions {
	return NodeLayoutPositions{NodePositions: p}
}

// Get returns the newest raw (unscaled, unsmoothed) position.
func (l NodeLayoutPositions) Get(nodeId ids.NodeId) Vec3 {
	return l.positions.Get(nodeId).newest()
}

// Set pushes a new raw position for nodeId.
func (l NodeLayoutPositions) Set(nodeId ids.NodeId, v Vec3) {
	l.push(nodeId, v)
}

// BoundingBox computes the axis-aligned bounds of nodeIds' raw positions.
func (l NodeLayoutPositions) BoundingBox(nodeIds []ids.NodeId) BoundingBox {
	if len(nodeIds) == 0 {
		return BoundingBox{}
	}
	first := l.Get(nodeIds[0])
	box := BoundingBox{Min: first, Max: first}
	for _, n := range nodeIds[1:] {
		v := l.Get(n)
		if v.X < box.Min.X {
			box.Min.X = v.X
		}
		if v.Y < box.Min.Y {
			box.Min.Y = v.Y
		}
		if v.Z < box.Min.Z {
			box.Min.Z = v.Z
		}
		if v.X > box.Max.X {
			box.Max.X = v.X
		}
		if v.Y > box.Max.Y {
			box.Max.Y = v.Y
		}
		if v.Z > box.Max.Z {
			box.Max.Z = v.Z
		}
	}
	return box
}
