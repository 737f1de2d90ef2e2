// Package selection implements the node selection set (component K):
// select/deselect/toggle/selectAll/clear/invert over a NodeIdSet, batched
// selectionChanged notification, and regex-based node search.
package selection

import (
	"regexp"
	"sort"
	"strings"

	"github.com/graphia-app/graphia-sub005/attribute"
	"github.com/graphia-app/graphia-sub005/graph"
	"github.com/graphia-app/graphia-sub005/ids"
)

// NodeIdSet is a mutating, observable set of selected NodeIds. Mutating
// calls made inside a Batch are coalesced into a single selectionChanged
// notification when the batch ends, mirroring MutableGraph's change
// batching (graph.Transaction) so that selection changes triggered by a
// graph edit don't fire a storm of individual notifications.
type NodeIdSet struct {
	members map[ids.NodeId]bool

	batchDepth int
	dirty      bool

	observers []func([]ids.NodeId)
}

// New creates an empty NodeIdSet.
func New() *NodeIdSet {
	return &NodeIdSet{members: make(map[ids.NodeId]bool)}
}

// OnSelectionChanged registers fn to be called, with the current selected
// NodeIds in ascending order, after a mutating call (or batch). Select,
// Deselect and Clear notify only when membership actually changed;
// SelectAll and Invert notify on every call.
func (s *NodeIdSet) OnSelectionChanged(fn func([]ids.NodeId)) {
	s.observers = append(s.observers, fn)
}

// Batch coalesces every mutating call inside fn into a single
// selectionChanged notification, fired after fn returns (if anything
// actually changed). Nested batches behave like graph.Transaction: only
// the outermost batch fires.
func (s *NodeIdSet) Batch(fn func()) {
	s.batchDepth++
	fn()
	s.batchDepth--
	if s.batchDepth == 0 && s.dirty {
		s.dirty = false
		s.notify()
	}
}

func (s *NodeIdSet) markDirty() {
	if s.batchDepth > 0 {
		s.dirty = true
		return
	}
	s.notify()
}

func (s *NodeIdSet) notify() {
	snapshot := s.All()
	for _, fn := range s.observers {
		fn(snapshot)
	}
}

// Select adds nodeIds to the selection.
func (s *NodeIdSet) Select(nodeIds []ids.NodeId) {
	changed := false
	for _, n := range nodeIds {
		if !s.members[n] {
			s.members[n] = true
			changed = true
		}
	}
	if changed {
		s.markDirty()
	}
}

// Deselect removes nodeIds from the selection.
func (s *NodeIdSet) Deselect(nodeIds []ids.NodeId) {
	changed := false
	for _, n := range nodeIds {
		if s.members[n] {
			delete(s.members, n)
			changed = true
		}
	}
	if changed {
		s.markDirty()
	}
}

// Toggle flips each of nodeIds' membership independently.
func (s *NodeIdSet) Toggle(nodeIds []ids.NodeId) {
	if len(nodeIds) == 0 {
		return
	}
	for _, n := range nodeIds {
		if s.members[n] {
			delete(s.members, n)
		} else {
			s.members[n] = true
		}
	}
	s.markDirty()
}

// SelectAll replaces the selection with every live node in g.
func (s *NodeIdSet) SelectAll(g *graph.MutableGraph) {
	s.members = make(map[ids.NodeId]bool)
	for _, n := range g.NodeIds() {
		s.members[n] = true
	}
	s.markDirty()
}

// Clear empties the selection.
func (s *NodeIdSet) Clear() {
	if len(s.members) == 0 {
		return
	}
	s.members = make(map[ids.NodeId]bool)
	s.markDirty()
}

// Invert replaces the selection with its complement within g's live
// nodes.
func (s *NodeIdSet) Invert(g *graph.MutableGraph) {
	next := make(map[ids.NodeId]bool)
	for _, n := range g.NodeIds() {
		if !s.members[n] {
			next[n] = true
		}
	}
	s.members = next
	s.markDirty()
}

// Contains reports whether n is selected.
func (s *NodeIdSet) Contains(n ids.NodeId) bool { return s.members[n] }

// Size returns the number of selected nodes.
func (s *NodeIdSet) Size() int { return len(s.members) }

// All returns the selected NodeIds in ascending order.
func (s *NodeIdSet) All() []ids.NodeId {
	out := make([]ids.NodeId, 0, len(s.members))
	for n := range s.members {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ExpandToMergeSets expands nodeIds to include every tail merged into
// each, and vice versa resolves any tail to its head plus that head's
// other tails — the uniform head-plus-its-merge-set expansion the spec's
// Open Question decision applies to both findNodes(..., All) and
// zoom-to-selection, replacing the original's two diverging behaviours.
func ExpandToMergeSets(g *graph.MutableGraph, nodeIds []ids.NodeId) []ids.NodeId {
	seen := make(map[ids.NodeId]bool, len(nodeIds))
	var out []ids.NodeId
	add := func(n ids.NodeId) {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	for _, n := range nodeIds {
		head := g.HeadOf(n)
		add(head)
		for _, tail := range g.Tails(head) {
			add(tail)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// SearchOptions configures FindNodes.
type SearchOptions struct {
	// CaseSensitive, if false (the default), lower-cases both pattern and
	// candidate string values before matching.
	CaseSensitive bool
	// AttributeNames restricts the search to these attribute names; empty
	// means every Searchable-flagged attribute.
	AttributeNames []string
	// MatchUsingRegex treats Pattern as a regular expression instead of a
	// literal substring.
	MatchUsingRegex bool
}

// FindNodes returns the NodeIds whose value for any in-scope searchable
// attribute matches pattern, expanded to each match's full merge set per
// the Open Question decision (ExpandToMergeSets), in ascending order.
func FindNodes(g *graph.MutableGraph, reg *attribute.Registry, pattern string, opts SearchOptions) ([]ids.NodeId, error) {
	names := opts.AttributeNames
	if len(names) == 0 {
		for _, name := range reg.NamesFor(attribute.Node) {
			attr, err := reg.Get(name)
			if err == nil && attr.HasFlag(attribute.Searchable) {
				names = append(names, name)
			}
		}
	}

	var matcher func(string) bool
	if opts.MatchUsingRegex {
		flags := ""
		if !opts.CaseSensitive {
			flags = "(?i)"
		}
		re, err := regexp.Compile(flags + pattern)
		if err != nil {
			return nil, err
		}
		matcher = re.MatchString
	} else {
		needle := pattern
		if !opts.CaseSensitive {
			needle = strings.ToLower(needle)
		}
		matcher = func(s string) bool {
			if !opts.CaseSensitive {
				s = strings.ToLower(s)
			}
			return strings.Contains(s, needle)
		}
	}

	var matched []ids.NodeId
	for _, n := range g.NodeIds() {
		for _, name := range names {
			attr, err := reg.Get(name)
			if err != nil {
				continue
			}
			if matcher(attr.Value(uint32(n)).String2()) {
				matched = append(matched, n)
				break
			}
		}
	}
	return ExpandToMergeSets(g, matched), nil
}
