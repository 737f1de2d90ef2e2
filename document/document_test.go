package document

import (
	"context"
	"testing"

	"github.com/graphia-app/graphia-sub005/attribute"
	"github.com/graphia-app/graphia-sub005/ids"
	"github.com/graphia-app/graphia-sub005/internal/config"
	"github.com/graphia-app/graphia-sub005/selection"
	"github.com/graphia-app/graphia-sub005/transform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddNodeAndEdgeCreatesComponent(t *testing.T) {
	d := New(config.Defaults{})
	a := d.AddNode()
	b := d.AddNode()
	d.AddEdge(a, b)

	assert.Equal(t, 1, len(d.Components().ComponentIds()))
	c := d.Components().ComponentOf(a)
	assert.Equal(t, c, d.Components().ComponentOf(b))
}

func TestRemoveNodeDeselectsIt(t *testing.T) {
	d := New(config.Defaults{})
	a := d.AddNode()
	d.Selection().Select([]ids.NodeId{a})

	d.RemoveNode(a)
	assert.False(t, d.Selection().Contains(a))
}

func TestApplyTransformCommitsIntoView(t *testing.T) {
	d := New(config.Defaults{})
	hub := d.AddNode()
	for i := 0; i < 3; i++ {
		leaf := d.AddNode()
		d.AddEdge(hub, leaf)
	}
	isolated := d.AddNode()
	_ = isolated

	cfg := transform.TransformConfig{Action: transform.ActionGiantComponent}
	_, err := d.ApplyTransform(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, 4, d.View().Internal().NumNodes())
}

func TestCameraForCreatesOnePerComponent(t *testing.T) {
	d := New(config.Defaults{})
	a := d.AddNode()

	c := d.Components().ComponentOf(a)
	cam1 := d.CameraFor(c)
	cam2 := d.CameraFor(c)
	assert.Same(t, cam1, cam2)
}

func TestFindSelectsMatchingNodes(t *testing.T) {
	d := New(config.Defaults{})
	a := d.AddNode()
	b := d.AddNode()
	labels := map[uint32]string{uint32(a): "Router", uint32(b): "Switch"}
	_, err := d.Registry().Register(attribute.NewAttribute("Label", attribute.Node, attribute.String).
		WithValueFunc(func(id uint32) attribute.Value { return attribute.StringValue(labels[id]) }).
		WithFlags(attribute.Searchable))
	require.NoError(t, err)

	found, err := d.Find("rout", selection.SearchOptions{})
	require.NoError(t, err)
	assert.Equal(t, []ids.NodeId{a}, found)
	assert.True(t, d.Selection().Contains(a))
}
