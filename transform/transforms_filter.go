package transform

import (
	"github.com/graphia-app/graphia-sub005/graph"
	"github.com/graphia-app/graphia-sub005/ids"
)

// runFilterNode removes every node for which predicate returns true
// (Invert flips the sense), then cascades to incident edges via
// g.RemoveNode. Matches scenario 2 of §8 ("filter node where $degree < 2"
// removes the nodes the condition matches).
func runFilterNode(g *graph.MutableGraph, predicate Predicate, invert bool) error {
	var toRemove []ids.NodeId
	for _, n := range g.NodeIds() {
		matches, err := predicate(uint32(n))
		if err != nil {
			return err
		}
		if invert {
			matches = !matches
		}
		if matches {
			toRemove = append(toRemove, n)
		}
	}
	g.Transaction(func() {
		for _, n := range toRemove {
			if g.HasNode(n) {
				g.RemoveNode(n)
			}
		}
	})
	return nil
}

// runFilterEdge removes every edge for which predicate returns true.
func runFilterEdge(g *graph.MutableGraph, predicate Predicate, invert bool) error {
	var toRemove []ids.EdgeId
	for _, e := range g.EdgeIds() {
		matches, err := predicate(uint32(e))
		if err != nil {
			return err
		}
		if invert {
			matches = !matches
		}
		if matches {
			toRemove = append(toRemove, e)
		}
	}
	g.Transaction(func() {
		for _, e := range toRemove {
			if g.HasEdge(e) {
				g.RemoveEdge(e)
			}
		}
	})
	return nil
}

// runFilterComponent removes every node whose component matches predicate,
// where predicate is evaluated once per component id and applied to every
// member node. componentOf maps a node to its current ComponentId.
func runFilterComponent(g *graph.MutableGraph, componentOf func(ids.NodeId) uint32, predicate Predicate, invert bool) error {
	decided := make(map[uint32]bool)
	var toRemove []ids.NodeId
	for _, n := range g.NodeIds() {
		comp := componentOf(n)
		matches, ok := decided[comp]
		if !ok {
			var err error
			matches, err = predicate(comp)
			if err != nil {
				return err
			}
			if invert {
				matches = !matches
			}
			decided[comp] = matches
		}
		if matches {
			toRemove = append(toRemove, n)
		}
	}
	g.Transaction(func() {
		for _, n := range toRemove {
			if g.HasNode(n) {
				g.RemoveNode(n)
			}
		}
	})
	return nil
}

// runContractEdges contracts every edge that satisfies predicate.
func runContractEdges(g *graph.MutableGraph, predicate Predicate) error {
	var toContract []ids.EdgeId
	for _, e := range g.EdgeIds() {
		match, err := predicate(uint32(e))
		if err != nil {
			return err
		}
		if match {
			toContract = append(toContract, e)
		}
	}
	if len(toContract) > 0 {
		g.ContractEdges(toContract)
	}
	return nil
}
