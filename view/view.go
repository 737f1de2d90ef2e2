// Package view implements the read-only IGraph-style view type (component
// F of the spec) and TransformedGraph, the pipeline's output graph.
//
// Design Notes §9 replaces the source's virtual-inheritance
// IGraph/IGraphComponent hierarchy with a single concrete read-only view
// type (GraphView) plus the operations needed by algorithms. Both
// TransformedGraph and a component's sub-graph are GraphView instances.
package view

import (
	"sort"

	"github.com/graphia-app/graphia-sub005/graph"
	"github.com/graphia-app/graphia-sub005/ids"
)

// GraphView is a read-only, possibly-filtered window onto a
// *graph.MutableGraph: nodeIds/edgeIds restrict iteration to a subset
// (nil means "no restriction", i.e. the whole graph), used both by
// TransformedGraph and by per-component sub-graphs.
type GraphView struct {
	g         *graph.MutableGraph
	nodeScope map[ids.NodeId]bool // nil == unrestricted
	edgeScope map[ids.EdgeId]bool // nil == unrestricted
}

// NewUnrestricted returns a GraphView exposing the whole of g.
func NewUnrestricted(g *graph.MutableGraph) *GraphView {
	return &GraphView{g: g}
}

// NewFiltered returns a GraphView restricted to nodeIds and the edges
// between them (InducedSubgraph semantics, mirroring core/view.go's
// InducedSubgraph in the teacher).
func NewFiltered(g *graph.MutableGraph, nodeIds []ids.NodeId) *GraphView {
	nodeScope := make(map[ids.NodeId]bool, len(nodeIds))
	for _, n := range nodeIds {
		nodeScope[n] = true
	}
	edgeScope := make(map[ids.EdgeId]bool)
	for _, n := range nodeIds {
		for _, e := range g.OutEdges(n) {
			_, tgt := g.Endpoints(e)
			if nodeScope[tgt] {
				edgeScope[e] = true
			}
		}
	}
	return &GraphView{g: g, nodeScope: nodeScope, edgeScope: edgeScope}
}

// NodeIds returns the in-scope NodeIds, sorted for determinism.
func (v *GraphView) NodeIds() []ids.NodeId {
	var out []ids.NodeId
	if v.nodeScope == nil {
		out = v.g.NodeIds()
	} else {
		for n := range v.nodeScope {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// EdgeIds returns the in-scope EdgeIds, sorted for determinism.
func (v *GraphView) EdgeIds() []ids.EdgeId {
	var out []ids.EdgeId
	if v.edgeScope == nil {
		out = v.g.EdgeIds()
	} else {
		for e := range v.edgeScope {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (v *GraphView) inScopeNode(n ids.NodeId) bool {
	return v.nodeScope == nil || v.nodeScope[n]
}

func (v *GraphView) inScopeEdge(e ids.EdgeId) bool {
	return v.edgeScope == nil || v.edgeScope[e]
}

// Degree returns n's in-scope degree.
func (v *GraphView) Degree(n ids.NodeId) int {
	return len(v.OutEdges(n)) + len(v.InEdges(n))
}

// OutEdges returns n's in-scope outgoing edges.
func (v *GraphView) OutEdges(n ids.NodeId) []ids.EdgeId {
	var out []ids.EdgeId
	for _, e := range v.g.OutEdges(n) {
		if v.inScopeEdge(e) {
			out = append(out, e)
		}
	}
	return out
}

// InEdges returns n's in-scope incoming edges.
func (v *GraphView) InEdges(n ids.NodeId) []ids.EdgeId {
	var out []ids.EdgeId
	for _, e := range v.g.InEdges(n) {
		if v.inScopeEdge(e) {
			out = append(out, e)
		}
	}
	return out
}

// Endpoints delegates to the underlying graph.
func (v *GraphView) Endpoints(e ids.EdgeId) (src, tgt ids.NodeId) {
	return v.g.Endpoints(e)
}

// EdgeBetween reports an in-scope edge between u and v, if any.
func (v *GraphView) EdgeBetween(u, v2 ids.NodeId) (ids.EdgeId, bool) {
	for _, e := range v.OutEdges(u) {
		_, t := v.Endpoints(e)
		if t == v2 {
			return e, true
		}
	}
	return 0, false
}

// NumNodes returns the count of in-scope nodes.
func (v *GraphView) NumNodes() int { return len(v.NodeIds()) }

// NumEdges returns the count of in-scope edges.
func (v *GraphView) NumEdges() int { return len(v.EdgeIds()) }

// Underlying exposes the backing MutableGraph for operations (contract,
// merge) that only make sense against the mutable store itself; transforms
// use this to mutate the pipeline's internal working graph.
func (v *GraphView) Underlying() *graph.MutableGraph { return v.g }
