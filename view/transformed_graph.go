package view

import (
	"github.com/graphia-app/graphia-sub005/graph"
	"github.com/graphia-app/graphia-sub005/ids"
)

// ElementState classifies a node or edge relative to the previous pipeline
// output, so the layout engine can initialise positions only for new
// elements (§4.4).
type ElementState int

const (
	Unchanged ElementState = iota
	Added
	Removed
)

// TransformedGraph is the read-only view-graph produced by the transform
// pipeline (component F): it owns an internal *graph.MutableGraph that the
// pipeline writes into between re-runs, exposes it as a GraphView, and
// tracks each element's state relative to the previous output.
type TransformedGraph struct {
	*GraphView
	internal *graph.MutableGraph

	nodeState map[ids.NodeId]ElementState
	edgeState map[ids.EdgeId]ElementState

	onAttributeValuesChanged []func(names []string)
	onGraphChanged           []func()
}

// New creates an empty TransformedGraph with its own internal working
// graph, not shared with the source MutableGraph (the document swaps in
// each pipeline run's output graph via ReplaceInternal).
func New() *TransformedGraph {
	g := graph.New()
	return &TransformedGraph{
		GraphView: NewUnrestricted(g),
		internal:  g,
		nodeState: make(map[ids.NodeId]ElementState),
		edgeState: make(map[ids.EdgeId]ElementState),
	}
}

// Internal exposes the mutable working graph, the most recent pipeline
// output installed by ReplaceInternal.
func (tg *TransformedGraph) Internal() *graph.MutableGraph { return tg.internal }

// ReplaceInternal swaps in g as the working graph, called by the document
// owner after a pipeline run returns a new (cloned) output graph. The
// GraphView wrapper is rebuilt over g; node/edge state is left untouched
// here so CommitTopology can still diff against the previous snapshot.
func (tg *TransformedGraph) ReplaceInternal(g *graph.MutableGraph) {
	tg.internal = g
	tg.GraphView = NewUnrestricted(g)
}

// OnAttributeValuesChanged registers an observer fired when a
// synthesise-attribute transform changes values without altering topology.
func (tg *TransformedGraph) OnAttributeValuesChanged(fn func(names []string)) {
	tg.onAttributeValuesChanged = append(tg.onAttributeValuesChanged, fn)
}

// OnGraphChanged registers an observer fired once per CommitTopology call,
// whether or not that commit altered topology.
func (tg *TransformedGraph) OnGraphChanged(fn func()) {
	tg.onGraphChanged = append(tg.onGraphChanged, fn)
}

// EmitAttributeValuesChanged is called by the pipeline after a
// synthesise-attribute step that left topology untouched.
func (tg *TransformedGraph) EmitAttributeValuesChanged(names []string) {
	for _, fn := range tg.onAttributeValuesChanged {
		fn(names)
	}
}

// CommitTopology recomputes nodeState/edgeState relative to the previous
// snapshot (everything previously present but now absent is Removed,
// everything newly present is Added, the rest Unchanged) and fires
// graphChanged exactly once, per §4.4: "re-emits graphChanged once, after
// the full pipeline has run to completion or has been cancelled back to a
// consistent state."
func (tg *TransformedGraph) CommitTopology() {
	newNodeState := make(map[ids.NodeId]ElementState)
	for _, n := range tg.internal.NodeIds() {
		if _, existed := tg.nodeState[n]; existed {
			newNodeState[n] = Unchanged
		} else {
			newNodeState[n] = Added
		}
	}
	newEdgeState := make(map[ids.EdgeId]ElementState)
	for _, e := range tg.internal.EdgeIds() {
		if _, existed := tg.edgeState[e]; existed {
			newEdgeState[e] = Unchanged
		} else {
			newEdgeState[e] = Added
		}
	}
	tg.nodeState = newNodeState
	tg.edgeState = newEdgeState

	for _, fn := range tg.onGraphChanged {
		fn()
	}
}

// NodeState reports n's state relative to the previous pipeline output.
func (tg *TransformedGraph) NodeState(n ids.NodeId) ElementState {
	if s, ok := tg.nodeState[n]; ok {
		return s
	}
	return Removed
}

// EdgeState reports e's state relative to the previous pipeline output.
func (tg *TransformedGraph) EdgeState(e ids.EdgeId) ElementState {
	if s, ok := tg.edgeState[e]; ok {
		return s
	}
	return Removed
}

// AddedNodes returns the NodeIds that are new since the previous pipeline
// output, letting the layout engine initialise only their positions.
func (tg *TransformedGraph) AddedNodes() []ids.NodeId {
	var out []ids.NodeId
	for n, s := range tg.nodeState {
		if s == Added {
			out = append(out, n)
		}
	}
	return out
}
