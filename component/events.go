package component

import (
	"context"

	"github.com/graphia-app/graphia-sub005/ids"
)

// OnNodeAdded must be called by the owning Document immediately after
// g.AddNode() returns n. It creates a new singleton component for n and
// emits componentAdded.
func (cm *ComponentManager) OnNodeAdded(n ids.NodeId) {
	cm.mu.Lock()
	c := cm.newComponent()
	cm.components[c].nodes[n] = true
	cm.nodeComponent.Set(n, c)
	observers := append([]func(ids.ComponentId){}, cm.onComponentAdded...)
	cm.mu.Unlock()

	for _, fn := range observers {
		fn(c)
	}
}

// OnEdgeAdded must be called after g.AddEdge(u, v) returns. If u and v are
// already in the same component this is a no-op; otherwise the smaller
// component is merged into the larger (ties broken toward the smaller
// ComponentId), emitting componentsWillMerge before reassignment.
func (cm *ComponentManager) OnEdgeAdded(u, v ids.NodeId) {
	cm.mu.Lock()

	cu := cm.nodeComponent.Get(u)
	cv := cm.nodeComponent.Get(v)
	if cu == cv {
		cm.mu.Unlock()
		return
	}

	winner, loser := cu, cv
	sizeWinner, sizeLoser := cm.components[cu].size(), cm.components[cv].size()
	if sizeLoser > sizeWinner || (sizeLoser == sizeWinner && cv < cu) {
		winner, loser = cv, cu
	}

	observers := append([]func(losers []ids.ComponentId, winner ids.ComponentId){}, cm.onComponentsWillMerge...)
	loserID := loser
	winnerID := winner
	cm.mu.Unlock()

	for _, fn := range observers {
		fn([]ids.ComponentId{loserID}, winnerID)
	}

	cm.mu.Lock()
	loserRec := cm.components[loserID]
	for n := range loserRec.nodes {
		cm.components[winnerID].nodes[n] = true
		cm.nodeComponent.Set(n, winnerID)
	}
	cm.retireComponent(loserID)
	cm.mu.Unlock()
}

// OnEdgeRemoved must be called after g.RemoveEdge has taken effect. u and v
// are the edge's former endpoints and neighbors gives the caller-supplied
// adjacency lookup used to walk the remaining graph (passed in rather than
// re-derived from *graph.MutableGraph so tests can exercise
// ComponentManager in isolation). If the edge was a bridge, a bounded BFS
// (alternating frontiers from u and v, ctx-cancellable) determines the
// split; the nodes no longer reachable from u (v's side) get a new
// ComponentId whichever side is larger, and componentSplit is emitted.
func (cm *ComponentManager) OnEdgeRemoved(ctx context.Context, u, v ids.NodeId, neighbors func(ids.NodeId) []ids.NodeId) error {
	cm.mu.Lock()
	c := cm.nodeComponent.Get(u)
	rec := cm.components[c]
	all := make(map[ids.NodeId]bool, len(rec.nodes))
	for n := range rec.nodes {
		all[n] = true
	}
	cm.state = Repartitioning
	cm.mu.Unlock()

	reachableFromU, cancelled := cm.boundedDualBFS(ctx, u, v, all, neighbors)

	cm.mu.Lock()
	defer func() { cm.state = Idle }()
	if cancelled {
		cm.mu.Unlock()
		return context.Canceled
	}

	if reachableFromU[v] {
		// Not a bridge: component is unchanged.
		cm.mu.Unlock()
		return nil
	}

	// A bridge: the side containing v is carved out into a new component.
	newSide := make(map[ids.NodeId]bool)
	for n := range all {
		if !reachableFromU[n] {
			newSide[n] = true
		}
	}

	newID := cm.newComponent()
	for n := range newSide {
		delete(cm.components[c].nodes, n)
		cm.components[newID].nodes[n] = true
		cm.nodeComponent.Set(n, newID)
	}

	observers := append([]func(ids.ComponentId, []ids.ComponentId){}, cm.onComponentSplit...)
	oldID := c
	children := []ids.ComponentId{c, newID}
	cm.mu.Unlock()

	for _, fn := range observers {
		fn(oldID, children)
	}
	return nil
}

// boundedDualBFS expands two frontiers, one from u and one from v, one step
// at a time, restricted to nodes in scope; the smaller side exhausts first,
// bounding the work to O(size of smaller side) as described in §4.2. It
// returns the full set reachable from u within scope (continuing the u-side
// expansion alone once the v-side is known unreachable, or vice versa) and
// whether ctx was cancelled mid-walk.
func (cm *ComponentManager) boundedDualBFS(ctx context.Context, u, v ids.NodeId, scope map[ids.NodeId]bool, neighbors func(ids.NodeId) []ids.NodeId) (map[ids.NodeId]bool, bool) {
	visitedU := map[ids.NodeId]bool{u: true}
	visitedV := map[ids.NodeId]bool{v: true}
	frontierU := []ids.NodeId{u}
	frontierV := []ids.NodeId{v}

	step := func(visited map[ids.NodeId]bool, frontier []ids.NodeId) []ids.NodeId {
		var next []ids.NodeId
		for _, n := range frontier {
			for _, nb := range neighbors(n) {
				if !scope[nb] || visited[nb] {
					continue
				}
				visited[nb] = true
				next = append(next, nb)
			}
		}
		return next
	}

	for len(frontierU) > 0 && len(frontierV) > 0 {
		select {
		case <-ctx.Done():
			return nil, true
		default:
		}
		if visitedU[v] {
			return visitedU, false
		}
		if visitedV[u] {
			// Same component; mirror visitedV into "reachable from u" shape
			// by reporting everything in scope as reachable.
			all := make(map[ids.NodeId]bool, len(scope))
			for n := range scope {
				all[n] = true
			}
			return all, false
		}
		frontierU = step(visitedU, frontierU)
		frontierV = step(visitedV, frontierV)
	}

	// One side exhausted without finding the other: finish expanding
	// whichever side is still growing isn't necessary, since exhaustion
	// means that side's component is exactly what's been visited.
	if len(frontierU) == 0 && !visitedU[v] {
		return visitedU, false
	}
	if len(frontierV) == 0 && !visitedV[u] {
		// The component containing u is everything NOT reached from v.
		reachableFromU := make(map[ids.NodeId]bool, len(scope))
		for n := range scope {
			if !visitedV[n] {
				reachableFromU[n] = true
			}
		}
		return reachableFromU, false
	}

	return visitedU, false
}

// OnNodeRemoved must be called after g.RemoveNode(n) has taken effect and
// all of its incident edges' OnEdgeRemoved calls have already run. It
// removes n from its (now-singleton, or otherwise unaffected) component,
// retiring the component if it becomes empty.
func (cm *ComponentManager) OnNodeRemoved(n ids.NodeId) {
	cm.mu.Lock()
	c := cm.nodeComponent.Get(n)
	rec, ok := cm.components[c]
	if !ok {
		cm.mu.Unlock()
		return
	}
	delete(rec.nodes, n)
	cm.nodeComponent.Set(n, ids.ComponentId(ids.Null))

	empty := rec.size() == 0
	if empty {
		cm.retireComponent(c)
	}
	var observers []func(ids.ComponentId)
	if empty {
		observers = append([]func(ids.ComponentId){}, cm.onComponentRemoved...)
	}
	cm.mu.Unlock()

	for _, fn := range observers {
		fn(c)
	}
}
