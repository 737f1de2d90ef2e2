package graph

import "github.com/graphia-app/graphia-sub005/ids"

// AddNode creates a new NodeId and adds it to the live set. Complexity O(1)
// amortised.
func (g *MutableGraph) AddNode() ids.NodeId {
	g.beginBatch()
	defer g.endBatch()

	g.mu.Lock()
	raw := g.nodeAlloc.Acquire()
	g.growNodesTo(int(g.nodeAlloc.HighWater()))
	n := ids.NodeId(raw)
	g.nodes[n] = nodeRecord{live: true, head: n}
	g.liveNodes = append(g.liveNodes, n)
	g.markChanged()
	g.mu.Unlock()

	return n
}

// AddEdge creates a new directed EdgeId from src to tgt. Both must be live
// NodeIds (debug assert). Edge ordering between the same (source,target) is
// insertion order (invariant 5, §3).
func (g *MutableGraph) AddEdge(src, tgt ids.NodeId) ids.EdgeId {
	g.beginBatch()
	defer g.endBatch()

	g.mu.Lock()
	g.assertLiveNode(src)
	g.assertLiveNode(tgt)

	raw := g.edgeAlloc.Acquire()
	g.growEdgesTo(int(g.edgeAlloc.HighWater()))
	e := ids.EdgeId(raw)
	g.edges[e] = edgeRecord{live: true, src: src, tgt: tgt}
	g.liveEdges = append(g.liveEdges, e)
	g.nodes[src].out = append(g.nodes[src].out, e)
	g.nodes[tgt].in = append(g.nodes[tgt].in, e)
	g.markChanged()
	g.mu.Unlock()

	return e
}

// RemoveEdge deletes e. Invariant 1 (§3) is restored by removing e from both
// endpoints' adjacency lists before marking it dead.
func (g *MutableGraph) RemoveEdge(e ids.EdgeId) {
	g.beginBatch()
	defer g.endBatch()

	g.mu.Lock()
	g.assertLiveEdge(e)
	g.removeEdgeLocked(e)
	g.markChanged()
	g.mu.Unlock()
}

func (g *MutableGraph) removeEdgeLocked(e ids.EdgeId) {
	rec := g.edges[e]
	g.nodes[rec.src].out = removeEdgeFromSlice(g.nodes[rec.src].out, e)
	g.nodes[rec.tgt].in = removeEdgeFromSlice(g.nodes[rec.tgt].in, e)
	g.edges[e].live = false
	g.liveEdges = removeEdgeFromSlice(g.liveEdges, e)
	g.edgeAlloc.Release(uint32(e))
}

// RemoveNode deletes n and, per invariant 2 (§3), removes all incident edges
// first.
func (g *MutableGraph) RemoveNode(n ids.NodeId) {
	g.beginBatch()
	defer g.endBatch()

	g.mu.Lock()
	g.assertLiveNode(n)

	incident := make([]ids.EdgeId, 0, len(g.nodes[n].out)+len(g.nodes[n].in))
	incident = append(incident, g.nodes[n].out...)
	incident = append(incident, g.nodes[n].in...)
	seen := make(map[ids.EdgeId]bool, len(incident))
	for _, e := range incident {
		if seen[e] {
			continue
		}
		seen[e] = true
		g.removeEdgeLocked(e)
	}

	// Any tails merged into n lose their head; spec leaves unmerge
	// unsupported, so we simply drop the bookkeeping along with n.
	delete(g.tailsOf, n)

	g.nodes[n].live = false
	g.liveNodes = removeNodeFromSlice(g.liveNodes, n)
	g.nodeAlloc.Release(uint32(n))
	g.markChanged()
	g.mu.Unlock()
}

func removeEdgeFromSlice(s []ids.EdgeId, target ids.EdgeId) []ids.EdgeId {
	for i, e := range s {
		if e == target {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}

func removeNodeFromSlice(s []ids.NodeId, target ids.NodeId) []ids.NodeId {
	for i, n := range s {
		if n == target {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}
