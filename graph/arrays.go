package graph

import "github.com/graphia-app/graphia-sub005/ids"

// NodeArray is a GraphArray<NodeId, E> that auto-registers with its owning
// graph so it is resized whenever the node id space grows (§3), mirroring
// original_source/graph/grapharray.h's NodeArray constructor/destructor
// pair; call Close to deregister.
type NodeArray[E any] struct {
	*ids.GraphArray[ids.NodeId, E]
	owner *MutableGraph
}

// NewNodeArray creates a NodeArray sized to g's current node capacity and
// registers it for automatic resize.
func NewNodeArray[E any](g *MutableGraph) *NodeArray[E] {
	a := &NodeArray[E]{GraphArray: ids.NewGraphArray[ids.NodeId, E](0), owner: g}
	g.RegisterNodeArray(a.GraphArray)
	return a
}

// Close deregisters the array from its owning graph's resize set.
func (a *NodeArray[E]) Close() {
	a.owner.DeregisterNodeArray(a.GraphArray)
}

// EdgeArray is the EdgeId analogue of NodeArray.
type EdgeArray[E any] struct {
	*ids.GraphArray[ids.EdgeId, E]
	owner *MutableGraph
}

// NewEdgeArray creates an EdgeArray sized to g's current edge capacity and
// registers it for automatic resize.
func NewEdgeArray[E any](g *MutableGraph) *EdgeArray[E] {
	a := &EdgeArray[E]{GraphArray: ids.NewGraphArray[ids.EdgeId, E](0), owner: g}
	g.RegisterEdgeArray(a.GraphArray)
	return a
}

// Close deregisters the array from its owning graph's resize set.
func (a *EdgeArray[E]) Close() {
	a.owner.DeregisterEdgeArray(a.GraphArray)
}
