package graph

import (
	"sort"

	"github.com/graphia-app/graphia-sub005/ids"
)

// MergeNodes merges the given set of NodeIds into a single head: the
// canonical choice is the smallest id (§4.1). Every other node becomes a
// tail, hidden from default iteration but remembered so that its attributes
// survive. Pre-existing tails of any merged node are absorbed transitively
// (Open Question decision, SPEC_FULL.md §4.1: "the head of a head is
// itself"). Emitted as a single change batch.
func (g *MutableGraph) MergeNodes(nodeSet []ids.NodeId) ids.NodeId {
	g.beginBatch()
	defer g.endBatch()

	g.mu.Lock()
	defer g.mu.Unlock()

	resolved := make([]ids.NodeId, 0, len(nodeSet))
	seen := make(map[ids.NodeId]bool, len(nodeSet))
	for _, n := range nodeSet {
		g.assertLiveNode(n)
		h := g.headOfLocked(n)
		if !seen[h] {
			seen[h] = true
			resolved = append(resolved, h)
		}
	}
	sort.Slice(resolved, func(i, j int) bool { return resolved[i] < resolved[j] })
	if len(resolved) == 0 {
		return 0
	}
	head := resolved[0]

	for _, tail := range resolved[1:] {
		g.mergeOneLocked(head, tail)
	}
	g.markChanged()

	return head
}

// mergeOneLocked makes tail a tail of head, absorbing any of tail's own
// pre-existing tails transparently. Caller holds g.mu.
func (g *MutableGraph) mergeOneLocked(head, tail ids.NodeId) {
	g.nodes[tail].head = head
	g.tailsOf[head] = append(g.tailsOf[head], tail)
	if grandTails, ok := g.tailsOf[tail]; ok {
		for _, gt := range grandTails {
			g.nodes[gt].head = head
			g.tailsOf[head] = append(g.tailsOf[head], gt)
		}
		delete(g.tailsOf, tail)
	}
}

// ContractEdges contracts every edge in edgeSet: for edge (u,v), the
// canonical (smallest-id) endpoint becomes the head; every other edge
// incident to the other endpoint is re-targeted to the head, preserving
// direction; the contracted edge itself is removed. Self-loops or
// duplicates introduced by re-targeting are preserved (multigraph, §4.1).
// Emitted as a single change batch.
func (g *MutableGraph) ContractEdges(edgeSet []ids.EdgeId) {
	g.beginBatch()
	defer g.endBatch()

	g.mu.Lock()
	defer g.mu.Unlock()

	ordered := append([]ids.EdgeId{}, edgeSet...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })

	for _, e := range ordered {
		if !g.edges[e].live {
			continue
		}
		rec := g.edges[e]
		u := g.headOfLocked(rec.src)
		v := g.headOfLocked(rec.tgt)
		if u == v {
			// Already the same node (prior contraction in this batch, or a
			// self-loop); just drop this edge.
			g.removeEdgeLocked(e)
			g.markChanged()
			continue
		}

		head, tail := u, v
		if tail < head {
			head, tail = tail, head
		}

		g.retargetIncidentLocked(tail, head, e)
		g.removeEdgeLocked(e)
		g.mergeOneLocked(head, tail)
		g.markChanged()
	}
}

// retargetIncidentLocked re-points every live edge incident to tail (other
// than skip) so that it is incident to head instead, preserving direction.
func (g *MutableGraph) retargetIncidentLocked(tail, head ids.NodeId, skip ids.EdgeId) {
	out := append([]ids.EdgeId{}, g.nodes[tail].out...)
	for _, e := range out {
		if e == skip || !g.edges[e].live {
			continue
		}
		g.edges[e].src = head
		g.nodes[tail].out = removeEdgeFromSlice(g.nodes[tail].out, e)
		g.nodes[head].out = append(g.nodes[head].out, e)
	}

	in := append([]ids.EdgeId{}, g.nodes[tail].in...)
	for _, e := range in {
		if e == skip || !g.edges[e].live {
			continue
		}
		g.edges[e].tgt = head
		g.nodes[tail].in = removeEdgeFromSlice(g.nodes[tail].in, e)
		g.nodes[head].in = append(g.nodes[head].in, e)
	}
}
