// Package graph implements MutableGraph, the source-of-truth labelled
// multigraph (component B of the spec): add/remove/contract/merge
// operations, change batching, and merge-table bookkeeping for heads/tails.
//
// MutableGraph is single-writer: the spec's locking discipline (§5) assigns
// it to the main/UI thread with no internal lock. We still guard it with a
// mutex so that concurrent misuse is a detected race rather than silent
// corruption; see DESIGN.md.
package graph

import (
	"sort"
	"sync"

	"github.com/graphia-app/graphia-sub005/ids"
)

// observerHandle identifies a registered callback so it can be disconnected.
type observerHandle int

// Handle is returned by the On* methods; call Disconnect to unregister.
type Handle struct {
	id   observerHandle
	kind observerKind
	g    *MutableGraph
}

// Disconnect removes the observer associated with this handle. Safe to call
// more than once; subsequent calls are no-ops.
func (h Handle) Disconnect() {
	if h.g == nil {
		return
	}
	h.g.mu.Lock()
	defer h.g.mu.Unlock()
	switch h.kind {
	case kindWillChange:
		delete(h.g.willChangeObservers, h.id)
	case kindChanged:
		delete(h.g.changedObservers, h.id)
	}
}

type observerKind int

const (
	kindWillChange observerKind = iota
	kindChanged
)

type nodeRecord struct {
	live bool
	head ids.NodeId // itself when this node is not a tail
	in   []ids.EdgeId
	out  []ids.EdgeId
}

type edgeRecord struct {
	live bool
	src  ids.NodeId
	tgt  ids.NodeId
}

// MutableGraph is the source-of-truth labelled multigraph described in §3/§4.1
// of the spec: ordered live NodeIds/EdgeIds, in/out edge multisets per node,
// a change-batching depth counter, and a merge table of heads/tails.
type MutableGraph struct {
	mu sync.RWMutex

	nodeAlloc *ids.Allocator
	edgeAlloc *ids.Allocator

	nodes []nodeRecord
	edges []edgeRecord

	liveNodes []ids.NodeId
	liveEdges []ids.EdgeId

	// tailsOf maps a live head NodeId to the ordered set of NodeIds merged
	// into it (tails). Absent entries mean "no tails".
	tailsOf map[ids.NodeId][]ids.NodeId

	batchDepth     int
	pendingChanged bool

	nextObserverID     observerHandle
	willChangeObservers map[observerHandle]func()
	changedObservers    map[observerHandle]func()

	registeredNodeArrays []ids.Resizable
	registeredEdgeArrays []ids.Resizable
}

// New creates an empty MutableGraph.
func New() *MutableGraph {
	return &MutableGraph{
		nodeAlloc:           ids.NewNodeAllocator(),
		edgeAlloc:           ids.NewEdgeAllocator(),
		tailsOf:             make(map[ids.NodeId][]ids.NodeId),
		willChangeObservers: make(map[observerHandle]func()),
		changedObservers:    make(map[observerHandle]func()),
	}
}

// OnGraphWillChange registers fn to be called exactly once when a batch of
// mutating operations begins (batching depth 0 -> 1).
func (g *MutableGraph) OnGraphWillChange(fn func()) Handle {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := g.nextObserverID
	g.nextObserverID++
	g.willChangeObservers[id] = fn
	return Handle{id: id, kind: kindWillChange, g: g}
}

// OnGraphChanged registers fn to be called exactly once when a batch of
// mutating operations completes (batching depth 1 -> 0), provided the batch
// actually mutated something.
func (g *MutableGraph) OnGraphChanged(fn func()) Handle {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := g.nextObserverID
	g.nextObserverID++
	g.changedObservers[id] = fn
	return Handle{id: id, kind: kindChanged, g: g}
}

// Transaction wraps fn in a change-batching transaction. Nested
// transactions (including those implied by individual operations like
// AddNode) simply increment the depth counter; graphWillChange/graphChanged
// fire only at depth zero, per §4.1.
func (g *MutableGraph) Transaction(fn func()) {
	g.beginBatch()
	defer g.endBatch()
	fn()
}

func (g *MutableGraph) beginBatch() {
	g.mu.Lock()
	g.batchDepth++
	fire := g.batchDepth == 1
	var observers []func()
	if fire {
		observers = collectObservers(g.willChangeObservers)
	}
	g.mu.Unlock()
	for _, fn := range observers {
		fn()
	}
}

func (g *MutableGraph) endBatch() {
	g.mu.Lock()
	g.batchDepth--
	fire := g.batchDepth == 0 && g.pendingChanged
	var observers []func()
	if fire {
		g.pendingChanged = false
		observers = collectObservers(g.changedObservers)
	}
	g.mu.Unlock()
	for _, fn := range observers {
		fn()
	}
}

// markChanged flags that the current (or an implicit, depth-1) transaction
// mutated observable state. Must be called with g.mu held by the caller's
// operation, which is itself wrapped in beginBatch/endBatch.
func (g *MutableGraph) markChanged() {
	g.pendingChanged = true
}

func collectObservers(m map[observerHandle]func()) []func() {
	out := make([]func(), 0, len(m))
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, int(id))
	}
	sort.Ints(ids)
	for _, id := range ids {
		out = append(out, m[observerHandle(id)])
	}
	return out
}
