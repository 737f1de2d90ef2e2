// Package component implements ComponentManager (component C of the
// spec): incremental connected-component partitioning maintained under
// graph edits, with split/merge/add/remove events.
//
// ComponentManager holds a borrowed reference to a *graph.MutableGraph, not
// ownership (Design Notes §9): the single owner of both is package document.
// Document invokes OnNode{Added,Removed} / OnEdge{Added,Removed} right after
// performing the corresponding MutableGraph mutation.
package component

import (
	"context"
	"sort"
	"sync"

	"github.com/graphia-app/graphia-sub005/graph"
	"github.com/graphia-app/graphia-sub005/ids"
)

// State is the ComponentManager's repartitioning state machine (§4.2).
type State int

const (
	// Idle: the component table is consistent with the graph.
	Idle State = iota
	// Repartitioning: a bounded BFS repartition is in progress.
	Repartitioning
)

type componentRecord struct {
	nodes map[ids.NodeId]bool
}

func (r *componentRecord) size() int { return len(r.nodes) }

// ComponentManager maintains, for each live NodeId, its ComponentId, and an
// ordered list of live ComponentIds.
type ComponentManager struct {
	mu sync.RWMutex

	g     *graph.MutableGraph
	alloc *ids.Allocator

	nodeComponent *graph.NodeArray[ids.ComponentId]
	components    map[ids.ComponentId]*componentRecord
	order         []ids.ComponentId

	state State

	onComponentAdded       []func(ids.ComponentId)
	onComponentsWillMerge   []func(losers []ids.ComponentId, winner ids.ComponentId)
	onComponentSplit        []func(old ids.ComponentId, children []ids.ComponentId)
	onComponentRemoved      []func(ids.ComponentId)
}

// New constructs a ComponentManager bound to g, with no components yet
// (callers typically seed it by calling OnNodeAdded for any pre-existing
// nodes, or build the graph and manager together from empty).
func New(g *graph.MutableGraph) *ComponentManager {
	cm := &ComponentManager{
		g:          g,
		alloc:      ids.NewComponentAllocator(),
		components: make(map[ids.ComponentId]*componentRecord),
	}
	cm.nodeComponent = graph.NewNodeArray[ids.ComponentId](g)
	cm.nodeComponent.Fill(ids.ComponentId(ids.Null))
	return cm
}

// OnComponentAdded registers an observer fired for every wholly new
// singleton component (not for merge winners).
func (cm *ComponentManager) OnComponentAdded(fn func(ids.ComponentId)) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.onComponentAdded = append(cm.onComponentAdded, fn)
}

// OnComponentsWillMerge registers an observer fired before nodes are
// reassigned from losers into winner.
func (cm *ComponentManager) OnComponentsWillMerge(fn func(losers []ids.ComponentId, winner ids.ComponentId)) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.onComponentsWillMerge = append(cm.onComponentsWillMerge, fn)
}

// OnComponentSplit registers an observer fired when removing a bridge edge
// partitions a component into old+new children.
func (cm *ComponentManager) OnComponentSplit(fn func(old ids.ComponentId, children []ids.ComponentId)) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.onComponentSplit = append(cm.onComponentSplit, fn)
}

// OnComponentRemoved registers an observer fired when a component becomes
// empty and is retired.
func (cm *ComponentManager) OnComponentRemoved(fn func(ids.ComponentId)) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.onComponentRemoved = append(cm.onComponentRemoved, fn)
}

// State reports the current repartitioning state.
func (cm *ComponentManager) State() State {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.state
}

// ComponentOf returns the ComponentId owning n.
func (cm *ComponentManager) ComponentOf(n ids.NodeId) ids.ComponentId {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.nodeComponent.Get(n)
}

// ComponentIds returns the live ComponentIds in their maintained order.
func (cm *ComponentManager) ComponentIds() []ids.ComponentId {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	out := make([]ids.ComponentId, len(cm.order))
	copy(out, cm.order)
	return out
}

// NodesOf returns the NodeIds belonging to component c, in no particular
// order.
func (cm *ComponentManager) NodesOf(c ids.ComponentId) []ids.NodeId {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	rec, ok := cm.components[c]
	if !ok {
		return nil
	}
	out := make([]ids.NodeId, 0, len(rec.nodes))
	for n := range rec.nodes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Size returns the number of nodes in component c, or 0 if it does not
// exist.
func (cm *ComponentManager) Size(c ids.ComponentId) int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	rec, ok := cm.components[c]
	if !ok {
		return 0
	}
	return rec.size()
}

// LargestComponent returns the ComponentId with the most nodes, breaking
// ties toward the smaller id; the spec tracks this as "the largest
// component id".
func (cm *ComponentManager) LargestComponent() (ids.ComponentId, bool) {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	var best ids.ComponentId
	bestSize := -1
	found := false
	for _, c := range cm.order {
		size := cm.components[c].size()
		if size > bestSize || (size == bestSize && c < best) {
			best = c
			bestSize = size
			found = true
		}
	}
	return best, found
}

func (cm *ComponentManager) newComponent() ids.ComponentId {
	raw := cm.alloc.Acquire()
	c := ids.ComponentId(raw)
	cm.components[c] = &componentRecord{nodes: make(map[ids.NodeId]bool)}
	cm.order = append(cm.order, c)
	sort.Slice(cm.order, func(i, j int) bool { return cm.order[i] < cm.order[j] })
	return c
}

func (cm *ComponentManager) retireComponent(c ids.ComponentId) {
	delete(cm.components, c)
	for i, id := range cm.order {
		if id == c {
			cm.order = append(cm.order[:i], cm.order[i+1:]...)
			break
		}
	}
	cm.alloc.Release(uint32(c))
}

// cancelledErr describes a cancelled repartition. Nothing in this package
// returns it: OnEdgeRemoved reports cancellation as context.Canceled.
type cancelledErr struct{}

func (cancelledErr) Error() string { return "component: repartition cancelled" }

// A cancelled OnEdgeRemoved returns context.Canceled and leaves the
// component table as it was before the walk started.
var _ = context.Canceled
