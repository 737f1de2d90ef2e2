package transform

import (
	"github.com/graphia-app/graphia-sub005/graph"
	"github.com/graphia-app/graphia-sub005/ids"
)

// runKCore repeatedly removes nodes with degree below k until no more
// qualify, leaving the k-core of the graph (a standard structural
// transform; original_source's sibling GiantComponent/K-Core transforms
// both work by repeated filtering to a fixed point).
func runKCore(g *graph.MutableGraph, k int) {
	for {
		var toRemove []ids.NodeId
		for _, n := range g.NodeIds() {
			if g.Degree(n) < k {
				toRemove = append(toRemove, n)
			}
		}
		if len(toRemove) == 0 {
			return
		}
		g.Transaction(func() {
			for _, n := range toRemove {
				if g.HasNode(n) {
					g.RemoveNode(n)
				}
			}
		})
	}
}

// runRemoveLeaves removes nodes of degree <= 1. When repeat is true
// (TransformConfig's Repeating flag), it iterates to a fixed point,
// peeling successive leaf layers; otherwise it strips exactly one layer.
func runRemoveLeaves(g *graph.MutableGraph, repeat bool) {
	for {
		var toRemove []ids.NodeId
		for _, n := range g.NodeIds() {
			if g.Degree(n) <= 1 {
				toRemove = append(toRemove, n)
			}
		}
		if len(toRemove) == 0 {
			return
		}
		g.Transaction(func() {
			for _, n := range toRemove {
				if g.HasNode(n) {
					g.RemoveNode(n)
				}
			}
		})
		if !repeat {
			return
		}
	}
}

// runGiantComponent keeps only the nodes of the single largest connected
// component (by undirected reachability), removing everything else.
// Components are found with a local union-find rather than a borrowed
// component.ComponentManager, since a pipeline step operates on a scratch
// working graph that generally has no incrementally-maintained manager
// attached (§4.3: transforms run against a disposable copy).
func runGiantComponent(g *graph.MutableGraph) {
	nodeIds := g.NodeIds()
	n := len(nodeIds)
	if n == 0 {
		return
	}
	index := make(map[ids.NodeId]int, n)
	for i, id := range nodeIds {
		index[id] = i
	}
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		if parent[x] != x {
			parent[x] = find(parent[x])
		}
		return parent[x]
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[ra] = rb
		}
	}
	for _, e := range g.EdgeIds() {
		src, tgt := g.Endpoints(e)
		union(index[g.HeadOf(src)], index[g.HeadOf(tgt)])
	}

	size := make(map[int]int)
	for i := range parent {
		size[find(i)]++
	}
	bestRoot, bestSize := -1, -1
	for root, s := range size {
		if s > bestSize {
			bestRoot, bestSize = root, s
		}
	}

	var toRemove []ids.NodeId
	for i, id := range nodeIds {
		if find(i) != bestRoot {
			toRemove = append(toRemove, id)
		}
	}
	g.Transaction(func() {
		for _, n := range toRemove {
			if g.HasNode(n) {
				g.RemoveNode(n)
			}
		}
	})
}
