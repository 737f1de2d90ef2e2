package main

import (
	"bytes"
	"testing"

	"github.com/graphia-app/graphia-sub005/adapter"
	"github.com/graphia-app/graphia-sub005/graph"
	"github.com/graphia-app/graphia-sub005/ids"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinarySaveFormatRoundTrip(t *testing.T) {
	g := graph.New()
	a := g.AddNode()
	b := g.AddNode()
	c := g.AddNode()
	g.AddEdge(a, b)
	g.AddEdge(b, c)

	snapshot := adapter.Snapshot{
		Graph: g,
		NodePosition: map[ids.NodeId][3]float64{
			a: {0, 0, 0},
			b: {1, 2, 3},
			c: {-1, -2, -3},
		},
		NodeAttributes: adapter.UserData{
			uint32(a): {"Label": "alpha"},
			uint32(b): {"Label": "beta"},
		},
		TransformPipeline: []map[string]any{
			transformConfigToMap(sampleTransformConfig()),
		},
		Selection: []ids.NodeId{a, c},
		DefaultCamera: adapter.CameraSnapshot{
			FocusX: 1, FocusY: 2, FocusZ: 3,
			RotW: 1, Distance: 5,
		},
		Cameras: map[uint32]adapter.CameraSnapshot{
			0: {RotW: 1, Distance: 2},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, (binarySaveFormat{}).Write(&buf, snapshot))

	got, err := (binarySaveFormat{}).Read(&buf)
	require.NoError(t, err)

	assert.Equal(t, 3, got.Graph.NumNodes())
	assert.Equal(t, 2, got.Graph.NumEdges())
	assert.Len(t, got.TransformPipeline, 1)
	assert.Equal(t, "filter-node", got.TransformPipeline[0]["action"])
	assert.Len(t, got.Selection, 2)
	assert.Equal(t, 5.0, got.DefaultCamera.Distance)
	assert.Equal(t, 2.0, got.Cameras[0].Distance)
}

func TestBinarySaveFormatRejectsBadMagic(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("nope")
	_, err := (binarySaveFormat{}).Read(&buf)
	assert.ErrorIs(t, err, errBadMagic)
}

func TestLoadSessionMissingFileReturnsEmptyDocument(t *testing.T) {
	d, err := loadSession("", testConfigDefaults())
	require.NoError(t, err)
	assert.Equal(t, 0, d.Graph().NumNodes())

	d2, err := loadSession("/nonexistent/path/session.gph", testConfigDefaults())
	require.NoError(t, err)
	assert.Equal(t, 0, d2.Graph().NumNodes())
}
