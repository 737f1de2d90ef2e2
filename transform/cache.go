package transform

import (
	"crypto/sha256"
	"encoding/binary"
	"sort"

	"github.com/graphia-app/graphia-sub005/graph"
	"github.com/graphia-app/graphia-sub005/ids"
)

// Digest is the 128-bit graph fingerprint described in §4.3: a cheap,
// incrementally-maintainable hash over (sorted NodeId list, sorted
// (EdgeId, src, tgt) list, merge table).
type Digest [16]byte

// ComputeDigest fingerprints g's current topology and merge table.
// Complexity O(V log V + E log E); acceptable because it runs once per
// pipeline step, not per iteration.
func ComputeDigest(g *graph.MutableGraph) Digest {
	h := sha256.New()

	nodeIds := g.NodeIds()
	sort.Slice(nodeIds, func(i, j int) bool { return nodeIds[i] < nodeIds[j] })
	for _, n := range nodeIds {
		writeUint32(h, uint32(n))
		tails := g.Tails(n)
		sort.Slice(tails, func(i, j int) bool { return tails[i] < tails[j] })
		for _, t := range tails {
			writeUint32(h, uint32(t))
		}
	}

	type edgeTriple struct {
		id       ids.EdgeId
		src, tgt ids.NodeId
	}
	edgeIds := g.EdgeIds()
	triples := make([]edgeTriple, 0, len(edgeIds))
	for _, e := range edgeIds {
		src, tgt := g.Endpoints(e)
		triples = append(triples, edgeTriple{id: e, src: src, tgt: tgt})
	}
	sort.Slice(triples, func(i, j int) bool { return triples[i].id < triples[j].id })
	for _, tr := range triples {
		writeUint32(h, uint32(tr.id))
		writeUint32(h, uint32(tr.src))
		writeUint32(h, uint32(tr.tgt))
	}

	sum := h.Sum(nil)
	var d Digest
	copy(d[:], sum[:16])
	return d
}

func writeUint32(h interface{ Write([]byte) (int, error) }, v uint32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, _ = h.Write(buf[:])
}

// cacheEntry is what TransformCache stores for one pipeline position.
type cacheEntry struct {
	config           TransformConfig
	inputDigest      Digest
	outputGraph      *graph.MutableGraph
	outputDigest     Digest
	addedAttributes  []string
	changedAttribute []string
}

// Cache stores, for each pipeline position, the tuple described in §4.3
// and serves cache hits when both config and input digest match.
type Cache struct {
	entries    []*cacheEntry
	hits       int
	misses     int
}

// NewCache creates an empty transform cache.
func NewCache() *Cache { return &Cache{} }

// HitCount / MissCount expose the cache-hit counter used by the
// idempotence test in §8 ("hit the cache on the second application").
func (c *Cache) HitCount() int  { return c.hits }
func (c *Cache) MissCount() int { return c.misses }

// Lookup checks position's cached entry against config and inputDigest. On
// a match it returns a deep copy of the cached output graph (§4.3: "reused
// (deep copy of output-graph)") plus the attributes the step added/changed,
// and records a hit. On any mismatch — including a shorter cache than
// position — it truncates the cache from position onward (the first
// mismatch invalidates this and all subsequent positions) and records a
// miss.
func (c *Cache) Lookup(position int, config TransformConfig, inputDigest Digest) (*graph.MutableGraph, []string, []string, bool) {
	if position >= len(c.entries) {
		c.misses++
		return nil, nil, nil, false
	}
	entry := c.entries[position]
	if !entry.config.Equal(config) || entry.inputDigest != inputDigest {
		c.truncateFrom(position)
		c.misses++
		return nil, nil, nil, false
	}
	c.hits++
	return cloneGraph(entry.outputGraph), entry.addedAttributes, entry.changedAttribute, true
}

// Store records position's result, overwriting (and truncating anything
// beyond it, since a fresh computation here invalidates whatever followed).
func (c *Cache) Store(position int, config TransformConfig, inputDigest Digest, output *graph.MutableGraph, added, changed []string) {
	c.truncateFrom(position)
	c.entries = append(c.entries, &cacheEntry{
		config:           config,
		inputDigest:      inputDigest,
		outputGraph:      cloneGraph(output),
		outputDigest:     ComputeDigest(output),
		addedAttributes:  append([]string{}, added...),
		changedAttribute: append([]string{}, changed...),
	})
}

// OutputDigestAt returns the cached output digest at position, for feeding
// into the next position's Lookup as its inputDigest.
func (c *Cache) OutputDigestAt(position int) (Digest, bool) {
	if position >= len(c.entries) {
		return Digest{}, false
	}
	return c.entries[position].outputDigest, true
}

func (c *Cache) truncateFrom(position int) {
	if position < len(c.entries) {
		c.entries = c.entries[:position]
	}
}

// cloneGraph produces an independent copy of g's topology (nodes, edges,
// merge table), the deep copy the spec requires on cache reuse.
func cloneGraph(g *graph.MutableGraph) *graph.MutableGraph {
	out := graph.New()
	nodeMap := make(map[ids.NodeId]ids.NodeId, g.NumNodes())
	for _, n := range g.NodeIds() {
		nodeMap[n] = out.AddNode()
	}
	// Tails aren't returned by NodeIds(); add a stand-in node for each
	// (after every head, so each head keeps the smallest id of its merge
	// set) and map it, so edges attached to a tail are copied too.
	for _, n := range g.NodeIds() {
		for _, t := range g.Tails(n) {
			nodeMap[t] = out.AddNode()
		}
	}
	for _, e := range g.EdgeIds() {
		src, tgt := g.Endpoints(e)
		out.AddEdge(nodeMap[src], nodeMap[tgt])
	}
	for _, n := range g.NodeIds() {
		tails := g.Tails(n)
		if len(tails) == 0 {
			continue
		}
		merged := []ids.NodeId{nodeMap[n]}
		for _, t := range tails {
			merged = append(merged, nodeMap[t])
		}
		out.MergeNodes(merged)
	}
	return out
}
