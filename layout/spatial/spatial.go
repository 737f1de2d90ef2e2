// Package spatial implements the spatial indexing component (H): an
// octree/quadtree over node positions, built level-by-level in parallel via
// the shared worker pool, and walked Barnes-Hut style to approximate
// long-range force contributions in O(V log V) instead of O(V^2).
package spatial

import (
	"context"

	"github.com/graphia-app/graphia-sub005/ids"
	"github.com/graphia-app/graphia-sub005/internal/workerpool"
	"github.com/graphia-app/graphia-sub005/layout/positions"
)

// defaultMaxNodesPerLeaf mirrors original_source's default _maxNodesPerLeaf of 1:
// a leaf subdivides further as long as it holds more than one node and its
// bounding box can still be halved without losing floating point
// precision.
const defaultMaxNodesPerLeaf = 1

type node struct {
	box      positions.BoundingBox
	nodeIds  []ids.NodeId
	children []*node // len 0 for a leaf, else one per non-empty sub-volume (at most 4 or 8)
	leaf     bool

	// Aggregate used by the Barnes-Hut walk: the centre of mass and total
	// mass (node count) of every node beneath this subtree.
	centreOfMass positions.Vec3
	mass         float64
}

// Tree is a built spatial index, either a quadtree (Dimensions==2) or an
// octree (Dimensions==3).
type Tree struct {
	Dimensions      int
	maxNodesPerLeaf int
	root            *node
}

// New creates an empty Tree for the given dimensionality (2 or 3).
func New(dimensions int) *Tree {
	return &Tree{Dimensions: dimensions, maxNodesPerLeaf: defaultMaxNodesPerLeaf}
}

// Build (re)constructs the tree from the current positions of nodeIds.
// Subdivision proceeds level by level; all subtrees at a given level are
// independent of each other, so each level's subdivision work is
// distributed over pool.
func (t *Tree) Build(ctx context.Context, pool *workerpool.Pool, nodeIds []ids.NodeId, layoutPositions positions.NodeLayoutPositions) error {
	if len(nodeIds) == 0 {
		t.root = nil
		return nil
	}
	box := layoutPositions.BoundingBox(nodeIds)
	t.root = &node{box: box, nodeIds: nodeIds}

	frontier := []*node{t.root}
	for len(frontier) > 0 {
		children := make([][]*node, len(frontier))
		err := pool.ForEachIndex(ctx, len(frontier), func(_ context.Context, i int) error {
			children[i] = t.subdivide(frontier[i], layoutPositions)
			return nil
		})
		if err != nil {
			return err
		}
		var next []*node
		for _, cs := range children {
			next = append(next, cs...)
		}
		frontier = next
	}

	t.computeAggregates(t.root, layoutPositions)
	return nil
}

// subdivide distributes n's nodeIds over 2^Dimensions sub-volumes; a
// sub-volume with more than maxNodesPerLeaf distinct-position nodes, whose
// box is still divisible, becomes an internal node whose own subdivision
// is returned for the caller to enqueue as the next frontier.
func (t *Tree) subdivide(n *node, layoutPositions positions.NodeLayoutPositions) []*node {
	if len(n.nodeIds) <= t.maxNodesPerLeaf || !divisible(n.box) || !distinctPositions(n.nodeIds, layoutPositions) {
		n.leaf = true
		return nil
	}

	numSub := 1 << uint(t.Dimensions)
	buckets := make([][]ids.NodeId, numSub)
	centre := n.box.Centre()
	for _, id := range n.nodeIds {
		buckets[octant(layoutPositions.Get(id), centre, t.Dimensions)] = append(buckets[octant(layoutPositions.Get(id), centre, t.Dimensions)], id)
	}

	var pending []*node
	for i, bucket := range buckets {
		if len(bucket) == 0 {
			continue
		}
		child := &node{box: subBox(n.box, i, t.Dimensions), nodeIds: bucket}
		n.children = append(n.children, child)
		pending = append(pending, child)
	}
	return pending
}

func divisible(box positions.BoundingBox) bool {
	c := box.Centre()
	half := box.Max.Sub(box.Min).Scale(0.5)
	if c.X+half.X == c.X || c.X-half.X == c.X {
		return false
	}
	if c.Y+half.Y == c.Y || c.Y-half.Y == c.Y {
		return false
	}
	return true
}

func distinctPositions(nodeIds []ids.NodeId, layoutPositions positions.NodeLayoutPositions) bool {
	if len(nodeIds) == 0 {
		return false
	}
	first := layoutPositions.Get(nodeIds[0])
	for _, id := range nodeIds[1:] {
		if layoutPositions.Get(id) != first {
			return true
		}
	}
	return false
}

func octant(p, centre positions.Vec3, dimensions int) int {
	i := 0
	if dimensions == 3 && p.Z >= centre.Z {
		i += 4
	}
	if p.Y >= centre.Y {
		i += 2
	}
	if p.X >= centre.X {
		i += 1
	}
	return i
}

func subBox(box positions.BoundingBox, octantIndex, dimensions int) positions.BoundingBox {
	c := box.Centre()
	min, max := box.Min, box.Max
	var out positions.BoundingBox
	if octantIndex&1 != 0 {
		out.Min.X, out.Max.X = c.X, max.X
	} else {
		out.Min.X, out.Max.X = min.X, c.X
	}
	if octantIndex&2 != 0 {
		out.Min.Y, out.Max.Y = c.Y, max.Y
	} else {
		out.Min.Y, out.Max.Y = min.Y, c.Y
	}
	if dimensions == 3 {
		if octantIndex&4 != 0 {
			out.Min.Z, out.Max.Z = c.Z, max.Z
		} else {
			out.Min.Z, out.Max.Z = min.Z, c.Z
		}
	}
	return out
}

func (t *Tree) computeAggregates(n *node, layoutPositions positions.NodeLayoutPositions) {
	if n == nil {
		return
	}
	if n.leaf || len(n.children) == 0 {
		n.mass = float64(len(n.nodeIds))
		var sum positions.Vec3
		for _, id := range n.nodeIds {
			sum = sum.Add(layoutPositions.Get(id))
		}
		if n.mass > 0 {
			n.centreOfMass = sum.Scale(1 / n.mass)
		}
		return
	}
	var sum positions.Vec3
	total := 0.0
	for _, c := range n.children {
		t.computeAggregates(c, layoutPositions)
		sum = sum.Add(c.centreOfMass.Scale(c.mass))
		total += c.mass
	}
	n.mass = total
	if total > 0 {
		n.centreOfMass = sum.Scale(1 / total)
	}
}

// ForceFunc computes the force vector a body at from should feel due to a
// mass of weight mass located at to.
type ForceFunc func(from, to positions.Vec3, mass float64) positions.Vec3

// AccumulateForce walks the tree Barnes-Hut style: a subtree is treated as
// a single body (its centre of mass) whenever its bounding box's size
// divided by its distance from at is below theta (the standard
// s/d < theta opening criterion); otherwise its children are visited
// individually. theta == 0 degenerates to an exact O(V) sum.
func (t *Tree) AccumulateForce(at positions.Vec3, theta float64, force ForceFunc) positions.Vec3 {
	if t.root == nil {
		return positions.Vec3{}
	}
	var total positions.Vec3
	var walk func(n *node)
	walk = func(n *node) {
		if n == nil || n.mass == 0 {
			return
		}
		diff := at.Sub(n.centreOfMass)
		distance := diff.Length()
		if distance == 0 {
			if n.leaf {
				return
			}
		} else if n.leaf || len(n.children) == 0 {
			total = total.Add(force(at, n.centreOfMass, n.mass))
			return
		} else {
			size := n.box.Max.Sub(n.box.Min).Length()
			if size/distance < theta {
				total = total.Add(force(at, n.centreOfMass, n.mass))
				return
			}
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(t.root)
	return total
}

// DepthFirstTraversalStackSize reports the maximum stack depth a manual
// depth-first traversal of this tree would require, matching
// original_source's pre-flight sizing of its explicit traversal stack.
func (t *Tree) DepthFirstTraversalStackSize() int {
	if t.root == nil {
		return 0
	}
	var depth func(n *node) int
	depth = func(n *node) int {
		best := 0
		for _, c := range n.children {
			if d := depth(c); d > best {
				best = d
			}
		}
		return best + 1
	}
	return depth(t.root)
}
