package selection

import (
	"testing"

	"github.com/graphia-app/graphia-sub005/attribute"
	"github.com/graphia-app/graphia-sub005/graph"
	"github.com/graphia-app/graphia-sub005/ids"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectDeselectToggle(t *testing.T) {
	g := graph.New()
	a, b := g.AddNode(), g.AddNode()
	s := New()

	s.Select([]ids.NodeId{a, b})
	assert.Equal(t, 2, s.Size())

	s.Deselect([]ids.NodeId{a})
	assert.False(t, s.Contains(a))
	assert.True(t, s.Contains(b))

	s.Toggle([]ids.NodeId{a, b})
	assert.True(t, s.Contains(a))
	assert.False(t, s.Contains(b))
}

func TestBatchCoalescesNotifications(t *testing.T) {
	g := graph.New()
	a, b := g.AddNode(), g.AddNode()
	s := New()

	calls := 0
	s.OnSelectionChanged(func([]ids.NodeId) { calls++ })

	s.Batch(func() {
		s.Select([]ids.NodeId{a})
		s.Select([]ids.NodeId{b})
	})

	assert.Equal(t, 1, calls)
}

func TestInvertAndSelectAll(t *testing.T) {
	g := graph.New()
	a, b, c := g.AddNode(), g.AddNode(), g.AddNode()
	s := New()
	s.Select([]ids.NodeId{a})

	s.Invert(g)
	assert.False(t, s.Contains(a))
	assert.True(t, s.Contains(b))
	assert.True(t, s.Contains(c))

	s.SelectAll(g)
	assert.Equal(t, 3, s.Size())
}

func TestExpandToMergeSetsIncludesTails(t *testing.T) {
	g := graph.New()
	a, b, c := g.AddNode(), g.AddNode(), g.AddNode()
	head := g.MergeNodes([]ids.NodeId{a, b, c})

	expanded := ExpandToMergeSets(g, []ids.NodeId{head})
	assert.Len(t, expanded, 3)
}

func TestFindNodesMatchesSearchableAttribute(t *testing.T) {
	g := graph.New()
	a := g.AddNode()
	b := g.AddNode()
	reg := attribute.NewRegistry()
	labels := map[uint32]string{uint32(a): "Apple", uint32(b): "Banana"}
	_, err := reg.Register(attribute.NewAttribute("Label", attribute.Node, attribute.String).
		WithValueFunc(func(id uint32) attribute.Value { return attribute.StringValue(labels[id]) }).
		WithFlags(attribute.Searchable))
	require.NoError(t, err)

	found, err := FindNodes(g, reg, "app", SearchOptions{})
	require.NoError(t, err)
	assert.Equal(t, []ids.NodeId{a}, found)
}
