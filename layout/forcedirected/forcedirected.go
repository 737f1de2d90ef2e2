// Package forcedirected implements the layout engine's outer loop
// (component I): a Barnes-Hut accelerated force-directed layout that
// settles iteratively, its own change-detection state machine deciding
// when to stop (Initial -> FineTune -> Oscillate -> Finished), cancellable
// mid-run and able to switch between 2D and 3D on the fly.
package forcedirected

import (
	"context"
	"math"

	"github.com/graphia-app/graphia-sub005/graph"
	"github.com/graphia-app/graphia-sub005/ids"
	"github.com/graphia-app/graphia-sub005/internal/workerpool"
	"github.com/graphia-app/graphia-sub005/layout/positions"
	"github.com/graphia-app/graphia-sub005/layout/spatial"
)

// Dimensionality selects whether settling happens in 2D or 3D; Z is pinned
// to 0 in the 2D case.
type Dimensionality int

const (
	ThreeDee Dimensionality = iota
	TwoDee
)

// Phase is the change-detection state machine's current stage.
type Phase int

const (
	Initial Phase = iota
	FineTune
	Oscillate
	Finished
)

// Settings are the tunable constants of the force model, mirroring
// original_source's LayoutSettings-backed repulsive/attractive force
// sliders.
type Settings struct {
	RepulsiveForce  float64
	AttractiveForce float64
	MaxForce        float64
	Theta           float64 // Barnes-Hut opening angle
}

// DefaultSettings matches the teacher-adjacent reasonable defaults used
// throughout the corpus's physics-sim examples: moderate repulsion,
// gentle springs, a conservative opening angle.
func DefaultSettings() Settings {
	return Settings{RepulsiveForce: 200, AttractiveForce: 0.02, MaxForce: 4, Theta: 0.8}
}

const (
	fineTuneSampleSize     = 50
	oscillateSampleSize    = 500
	unstableStdDevRatio    = 1.15
	oscillationGuardRounds = 150
)

// Edge is the minimal edge shape the layout needs: its two (graph-level,
// head-resolved) endpoints.
type Edge struct {
	Src, Tgt ids.NodeId
}

// Layout runs one component's worth of force-directed settling.
type Layout struct {
	positions      *positions.NodePositions
	settings       Settings
	dimensionality Dimensionality

	phase Phase

	stdDevHistory  []float64
	forceHistory   []float64
	captureHistory []float64

	prevUnstableStdDev  float64
	prevOscillateStdDev float64
	unstableIterations  int
	increasingStdDevs   int
	oscillateIncreasing int

	flattenedFor2D bool
}

// New creates a Layout writing into positions, in the given dimensionality.
func New(p *positions.NodePositions, settings Settings, dimensionality Dimensionality) *Layout {
	return &Layout{positions: p, settings: settings, dimensionality: dimensionality}
}

// Finished reports whether the change-detection state machine has decided
// further iterations would do no useful work.
func (l *Layout) Finished() bool { return l.phase == Finished }

// Dimensionality reports the dimensionality Execute last ran (or was
// constructed with, before any Execute call).
func (l *Layout) Dimensionality() Dimensionality { return l.dimensionality }

// Unfinish resets the state machine so Finished no longer returns true,
// e.g. after the underlying graph changes (original_source: "Resets the
// state of the algorithm such that finished() no longer returns true").
func (l *Layout) Unfinish() {
	l.phase = Initial
	l.stdDevHistory = nil
	l.forceHistory = nil
	l.captureHistory = nil
	l.unstableIterations = 0
	l.increasingStdDevs = 0
	l.prevOscillateStdDev = 0
	l.oscillateIncreasing = 0
}

// Execute runs one settling iteration over nodeIds/edges. firstIteration
// disables displacement damping (original_source: the first step has no
// "previous" displacement to damp against). dimensionality may change
// between calls (e.g. a 3D->2D toggle mid-layout); when it does, existing
// Z components are flattened to 0 once.
func (l *Layout) Execute(ctx context.Context, pool *workerpool.Pool, nodeIds []ids.NodeId, edges []Edge, firstIteration bool, dimensionality Dimensionality) error {
	l.dimensionality = dimensionality
	layout := positions.NewLayout(l.positions)

	if dimensionality == TwoDee && !l.flattenedFor2D {
		for _, n := range nodeIds {
			v := layout.Get(n)
			v.Z = 0
			layout.Set(n, v)
		}
		l.flattenedFor2D = true
	} else if dimensionality == ThreeDee {
		l.flattenedFor2D = false
	}

	dims := 3
	if dimensionality == TwoDee {
		dims = 2
	}

	tree := spatial.New(dims)
	if err := tree.Build(ctx, pool, nodeIds, layout); err != nil {
		return err
	}

	displacement := make(map[ids.NodeId]positions.Vec3, len(nodeIds))
	var mu nodeDisplacementGuard
	mu.init(len(nodeIds))

	index := make(map[ids.NodeId]int, len(nodeIds))
	for i, n := range nodeIds {
		index[n] = i
	}

	err := pool.ForEachIndex(ctx, len(nodeIds), func(_ context.Context, i int) error {
		n := nodeIds[i]
		at := layout.Get(n)
		repulsive := tree.AccumulateForce(at, l.settings.Theta, func(from, to positions.Vec3, mass float64) positions.Vec3 {
			diff := from.Sub(to)
			dist := diff.Length()
			if dist < 1e-6 {
				return positions.Vec3{}
			}
			magnitude := l.settings.RepulsiveForce * mass / (dist * dist)
			return diff.Normalized().Scale(magnitude)
		})
		mu.set(i, repulsive)
		return nil
	})
	if err != nil {
		return err
	}
	for i, n := range nodeIds {
		displacement[n] = mu.get(i)
	}

	for _, e := range edges {
		a, b := layout.Get(e.Src), layout.Get(e.Tgt)
		diff := b.Sub(a)
		dist := diff.Length()
		if dist < 1e-6 {
			continue
		}
		magnitude := l.settings.AttractiveForce * dist
		attractive := diff.Normalized().Scale(magnitude)
		displacement[e.Src] = displacement[e.Src].Add(attractive)
		displacement[e.Tgt] = displacement[e.Tgt].Sub(attractive)
	}

	var sumForce, sumSquares float64
	for _, n := range nodeIds {
		d := displacement[n]
		if length := d.Length(); length > l.settings.MaxForce {
			d = d.Normalized().Scale(l.settings.MaxForce)
		}
		if !firstIteration {
			d = d.Scale(0.5) // damp against oscillation, no "previous" term tracked per-node here
		}
		layout.Set(n, layout.Get(n).Add(d))

		length := d.Length()
		sumForce += length
		sumSquares += length * length
	}

	l.updateChangeDetection(len(nodeIds), sumForce, sumSquares)
	return nil
}

// nodeDisplacementGuard is a slim fixed-size concurrent write target: each
// worker owns a disjoint index, so no locking is needed per write, only a
// backing slice sized once up front.
type nodeDisplacementGuard struct {
	values []positions.Vec3
}

func (g *nodeDisplacementGuard) init(n int) { g.values = make([]positions.Vec3, n) }
func (g *nodeDisplacementGuard) set(i int, v positions.Vec3) { g.values[i] = v }
func (g *nodeDisplacementGuard) get(i int) positions.Vec3 { return g.values[i] }

// updateChangeDetection advances the Initial -> FineTune -> Oscillate ->
// Finished state machine from this iteration's force statistics,
// mirroring original_source's std-deviation-of-recent-forces heuristic:
// settling is declared finished once the average standard deviation of
// applied force across a long sampling window drops below 0.005, or once
// that long-window average has increased for oscillationGuardRounds
// consecutive iterations (a layout that never settles below the
// threshold still terminates instead of running forever).
func (l *Layout) updateChangeDetection(n int, sumForce, sumSquares float64) {
	if n == 0 {
		l.phase = Finished
		return
	}
	mean := sumForce / float64(n)
	variance := sumSquares/float64(n) - mean*mean
	if variance < 0 {
		variance = 0
	}
	stdDev := math.Sqrt(variance)

	switch l.phase {
	case Initial:
		l.stdDevHistory = append(l.stdDevHistory, stdDev)
		l.forceHistory = append(l.forceHistory, mean)
		if len(l.stdDevHistory) >= fineTuneSampleSize {
			l.phase = FineTune
		}
	case FineTune:
		l.stdDevHistory = appendBounded(l.stdDevHistory, stdDev, fineTuneSampleSize)
		avg := average(l.stdDevHistory)
		if avg > l.prevUnstableStdDev*unstableStdDevRatio {
			l.increasingStdDevs++
		} else {
			l.increasingStdDevs = 0
		}
		l.prevUnstableStdDev = avg
		if l.increasingStdDevs == 0 && mean < 0.01 {
			l.phase = Oscillate
		}
	case Oscillate:
		l.captureHistory = appendBounded(l.captureHistory, stdDev, oscillateSampleSize)
		if len(l.captureHistory) < oscillateSampleSize {
			break
		}
		avg := average(l.captureHistory)
		if avg > l.prevOscillateStdDev {
			l.oscillateIncreasing++
		} else {
			l.oscillateIncreasing = 0
		}
		l.prevOscillateStdDev = avg
		if avg < 0.005 || l.oscillateIncreasing >= oscillationGuardRounds {
			l.phase = Finished
		}
	case Finished:
		// No further work; a caller wanting to resume must call Unfinish.
	}
}

func appendBounded(buf []float64, v float64, max int) []float64 {
	buf = append(buf, v)
	if len(buf) > max {
		buf = buf[len(buf)-max:]
	}
	return buf
}

func average(buf []float64) float64 {
	if len(buf) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range buf {
		sum += v
	}
	return sum / float64(len(buf))
}

// EdgesOf converts a MutableGraph's current edge set into the Edge shape
// Execute consumes, head-resolving both endpoints so merged nodes settle
// as one body.
func EdgesOf(g *graph.MutableGraph) []Edge {
	edgeIds := g.EdgeIds()
	out := make([]Edge, 0, len(edgeIds))
	for _, e := range edgeIds {
		src, tgt := g.Endpoints(e)
		out = append(out, Edge{Src: g.HeadOf(src), Tgt: g.HeadOf(tgt)})
	}
	return out
}
