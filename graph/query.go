package graph

import "github.com/graphia-app/graphia-sub005/ids"

func (g *MutableGraph) growNodesTo(size int) {
	if size <= len(g.nodes) {
		return
	}
	grown := make([]nodeRecord, size)
	copy(grown, g.nodes)
	g.nodes = grown
	for _, arr := range g.registeredNodeArrays {
		arr.Resize(size)
	}
}

func (g *MutableGraph) growEdgesTo(size int) {
	if size <= len(g.edges) {
		return
	}
	grown := make([]edgeRecord, size)
	copy(grown, g.edges)
	g.edges = grown
	for _, arr := range g.registeredEdgeArrays {
		arr.Resize(size)
	}
}

// RegisterNodeArray adds arr to the set resized whenever the node id space
// grows (mirrors original_source/graph/grapharray.h's NodeArray
// constructor registering itself with the owning graph).
func (g *MutableGraph) RegisterNodeArray(arr ids.Resizable) {
	g.mu.Lock()
	defer g.mu.Unlock()
	arr.Resize(len(g.nodes))
	g.registeredNodeArrays = append(g.registeredNodeArrays, arr)
}

// DeregisterNodeArray removes arr from the resize set.
func (g *MutableGraph) DeregisterNodeArray(arr ids.Resizable) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i, a := range g.registeredNodeArrays {
		if a == arr {
			g.registeredNodeArrays = append(g.registeredNodeArrays[:i], g.registeredNodeArrays[i+1:]...)
			return
		}
	}
}

// RegisterEdgeArray is the EdgeId analogue of RegisterNodeArray.
func (g *MutableGraph) RegisterEdgeArray(arr ids.Resizable) {
	g.mu.Lock()
	defer g.mu.Unlock()
	arr.Resize(len(g.edges))
	g.registeredEdgeArrays = append(g.registeredEdgeArrays, arr)
}

// DeregisterEdgeArray removes arr from the resize set.
func (g *MutableGraph) DeregisterEdgeArray(arr ids.Resizable) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i, a := range g.registeredEdgeArrays {
		if a == arr {
			g.registeredEdgeArrays = append(g.registeredEdgeArrays[:i], g.registeredEdgeArrays[i+1:]...)
			return
		}
	}
}

// NumNodes returns the number of live, non-tail nodes.
func (g *MutableGraph) NumNodes() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	count := 0
	for _, n := range g.liveNodes {
		if g.nodes[n].head == n {
			count++
		}
	}
	return count
}

// NumEdges returns the number of live edges.
func (g *MutableGraph) NumEdges() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.liveEdges)
}

// NodeIds returns the live, non-tail NodeIds in insertion order. Tails are
// hidden from iteration by default (§3 glossary: Multi-element/Merge).
func (g *MutableGraph) NodeIds() []ids.NodeId {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]ids.NodeId, 0, len(g.liveNodes))
	for _, n := range g.liveNodes {
		if g.nodes[n].head == n {
			out = append(out, n)
		}
	}
	return out
}

// EdgeIds returns the live EdgeIds in insertion order.
func (g *MutableGraph) EdgeIds() []ids.EdgeId {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]ids.EdgeId, len(g.liveEdges))
	copy(out, g.liveEdges)
	return out
}

// HasNode reports whether n is a currently live node (tail or head).
func (g *MutableGraph) HasNode(n ids.NodeId) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return uint32(n) < uint32(len(g.nodes)) && g.nodes[n].live
}

// HasEdge reports whether e is currently live.
func (g *MutableGraph) HasEdge(e ids.EdgeId) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return uint32(e) < uint32(len(g.edges)) && g.edges[e].live
}

// Endpoints returns e's source and target NodeIds.
func (g *MutableGraph) Endpoints(e ids.EdgeId) (src, tgt ids.NodeId) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	g.assertLiveEdge(e)
	rec := g.edges[e]
	return rec.src, rec.tgt
}

// OutEdges returns the multiset of edges leaving n, aggregated across n's
// tails (merged nodes expose aggregated degree, §3).
func (g *MutableGraph) OutEdges(n ids.NodeId) []ids.EdgeId {
	g.mu.RLock()
	defer g.mu.RUnlock()
	g.assertLiveNode(n)
	head := g.headOfLocked(n)
	out := append([]ids.EdgeId{}, g.nodes[head].out...)
	for _, t := range g.tailsOf[head] {
		out = append(out, g.nodes[t].out...)
	}
	return out
}

// InEdges returns the multiset of edges entering n, aggregated across n's
// tails.
func (g *MutableGraph) InEdges(n ids.NodeId) []ids.EdgeId {
	g.mu.RLock()
	defer g.mu.RUnlock()
	g.assertLiveNode(n)
	head := g.headOfLocked(n)
	in := append([]ids.EdgeId{}, g.nodes[head].in...)
	for _, t := range g.tailsOf[head] {
		in = append(in, g.nodes[t].in...)
	}
	return in
}

// Degree returns the aggregated in+out degree of n (or its head if n is a
// tail). A self-loop contributes 2 to degree, since it appears once in out
// and once in in.
func (g *MutableGraph) Degree(n ids.NodeId) int {
	return len(g.OutEdges(n)) + len(g.InEdges(n))
}

// EdgeBetween reports the first live edge (in insertion order) from u to v,
// and whether one was found. Only u's outgoing edges are searched, so an
// edge from v to u is not reported.
func (g *MutableGraph) EdgeBetween(u, v ids.NodeId) (ids.EdgeId, bool) {
	for _, e := range g.OutEdges(u) {
		src, tgt := g.Endpoints(e)
		_ = src
		if tgt == v || g.headOf(tgt) == g.headOf(v) {
			return e, true
		}
	}
	return 0, false
}

func (g *MutableGraph) headOf(n ids.NodeId) ids.NodeId {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.headOfLocked(n)
}

// headOfLocked resolves n to its live head, transitively and with path
// compression, per the spec's Open Question decision: "the head of a head
// is itself" (merge-of-a-merge treated transparently).
func (g *MutableGraph) headOfLocked(n ids.NodeId) ids.NodeId {
	h := n
	for g.nodes[h].head != h {
		h = g.nodes[h].head
	}
	// Path-compress every node visited along the way.
	cur := n
	for g.nodes[cur].head != h {
		next := g.nodes[cur].head
		g.nodes[cur].head = h
		cur = next
	}
	return h
}

// HeadOf is the public, locking form of headOfLocked.
func (g *MutableGraph) HeadOf(n ids.NodeId) ids.NodeId {
	return g.headOf(n)
}

// IsTail reports whether n has been merged into another node.
func (g *MutableGraph) IsTail(n ids.NodeId) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.nodes[n].head != n
}

// Tails returns the NodeIds merged into head, in merge order.
func (g *MutableGraph) Tails(head ids.NodeId) []ids.NodeId {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]ids.NodeId, len(g.tailsOf[head]))
	copy(out, g.tailsOf[head])
	return out
}
