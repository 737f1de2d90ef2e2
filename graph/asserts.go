package graph

import (
	"fmt"

	"github.com/graphia-app/graphia-sub005/ids"
)

// Using a stale id is a programming error (§4.1: "must be detected (debug
// assert)"). We panic with a diagnostic rather than return an error, mirroring
// the spec's "invariant violation -> terminate with diagnostic" error kind
// (§7.1). Nothing in this module recovers the panic; an unrecovered Go panic
// ends the process with exit status 2.

func (g *MutableGraph) assertLiveNode(n ids.NodeId) {
	if uint32(n) >= uint32(len(g.nodes)) || !g.nodes[n].live {
		panic(fmt.Sprintf("graph: invariant violation: stale or unknown NodeId %v", n))
	}
}

func (g *MutableGraph) assertLiveEdge(e ids.EdgeId) {
	if uint32(e) >= uint32(len(g.edges)) || !g.edges[e].live {
		panic(fmt.Sprintf("graph: invariant violation: stale or unknown EdgeId %v", e))
	}
}
