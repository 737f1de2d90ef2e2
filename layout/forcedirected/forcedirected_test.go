package forcedirected

import (
	"context"
	"testing"

	"github.com/graphia-app/graphia-sub005/graph"
	"github.com/graphia-app/graphia-sub005/internal/workerpool"
	"github.com/graphia-app/graphia-sub005/layout/positions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutExecuteMovesOverlappingNodesApart(t *testing.T) {
	g := graph.New()
	a := g.AddNode()
	b := g.AddNode()
	g.AddEdge(a, b)

	pos := positions.New(g)
	pos.SetSmoothing(1)
	layout := positions.NewLayout(pos)
	layout.Set(a, positions.Vec3{X: 0, Y: 0})
	layout.Set(b, positions.Vec3{X: 0.001, Y: 0})

	fd := New(pos, DefaultSettings(), TwoDee)
	pool := workerpool.NewSized(2)
	edges := EdgesOf(g)

	for i := 0; i < 5; i++ {
		err := fd.Execute(context.Background(), pool, g.NodeIds(), edges, i == 0, TwoDee)
		require.NoError(t, err)
	}

	apos := pos.Get(a)
	bpos := pos.Get(b)
	dist := apos.Sub(bpos).Length()
	assert.Greater(t, dist, 0.001)
}

func TestLayoutUnfinishResetsState(t *testing.T) {
	fd := New(positions.New(graph.New()), DefaultSettings(), ThreeDee)
	fd.phase = Finished
	assert.True(t, fd.Finished())
	fd.Unfinish()
	assert.False(t, fd.Finished())
}

// TestLayoutOscillationGuardTerminates reproduces a layout whose long-window
// force std-dev never drops under the Oscillate threshold: it must still
// reach Finished once that average has increased for oscillationGuardRounds
// consecutive iterations, rather than running forever.
func TestLayoutOscillationGuardTerminates(t *testing.T) {
	fd := New(positions.New(graph.New()), DefaultSettings(), ThreeDee)
	fd.phase = Oscillate

	const n = 3
	for i := 0; i < oscillateSampleSize+oscillationGuardRounds; i++ {
		target := float64(i + 1) // strictly increasing: never settles
		fd.updateChangeDetection(n, 0, float64(n)*target*target)
		if fd.Finished() {
			break
		}
	}

	assert.True(t, fd.Finished())
}
