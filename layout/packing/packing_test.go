package packing

import (
	"testing"

	"github.com/graphia-app/graphia-sub005/ids"
	"github.com/stretchr/testify/assert"
)

func TestCirclePackProducesNonOverlappingCircles(t *testing.T) {
	sizes := map[ids.ComponentId]int{1: 50, 2: 20, 3: 10, 4: 5, 5: 5}
	componentIds := []ids.ComponentId{1, 2, 3, 4, 5}
	placement := CirclePack(componentIds, func(c ids.ComponentId) int { return sizes[c] })

	for i := 0; i < len(componentIds); i++ {
		for j := i + 1; j < len(componentIds); j++ {
			a := placement[componentIds[i]]
			b := placement[componentIds[j]]
			assert.LessOrEqual(t, -packEpsilon, a.distanceToSq(b),
				"circles %d and %d overlap", componentIds[i], componentIds[j])
		}
	}
}

func TestPowerOfTwoGridSpreadsComponents(t *testing.T) {
	componentIds := []ids.ComponentId{1, 2, 3, 4, 5}
	placement := PowerOfTwoGrid(componentIds, func(ids.ComponentId) int { return 1 })
	assert.Len(t, placement, 5)

	seen := map[Circle]bool{}
	for _, c := range componentIds {
		pos := Circle{X: placement[c].X, Y: placement[c].Y}
		assert.False(t, seen[pos], "grid cell reused")
		seen[pos] = true
	}
}

func TestInterpolateBlendsTowardTarget(t *testing.T) {
	from := Placement{1: {X: 0, Y: 0, Radius: 1}}
	to := Placement{1: {X: 10, Y: 0, Radius: 1}}

	mid := Interpolate(from, to, 0.5)
	assert.InDelta(t, 5, mid[1].X, 1e-9)
}

func TestInterpolateNewComponentAppearsAtTarget(t *testing.T) {
	from := Placement{}
	to := Placement{2: {X: 3, Y: 4, Radius: 1}}

	mid := Interpolate(from, to, 0.5)
	assert.Equal(t, to[2], mid[2])
}
