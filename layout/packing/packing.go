package packing

import (
	"math"
	"sort"

	"github.com/graphia-app/graphia-sub005/ids"
)

// MinimumComponentRadius floors a component's disc so that even a
// single-node component is visible, mirroring original_source's
// "visuals/minimumComponentRadius" preference.
const MinimumComponentRadius = 2.0

// Placement is one component's final circle, keyed by ComponentId.
type Placement map[ids.ComponentId]Circle

// CirclePack lays out components by their relative size (radius
// proportional to membership, scaled against the largest component) via
// the d3-style circle-packing algorithm in circle.go.
func CirclePack(componentIds []ids.ComponentId, sizeOf func(ids.ComponentId) int) Placement {
	out := make(Placement, len(componentIds))
	if len(componentIds) == 0 {
		return out
	}

	maxSize := 1
	for _, c := range componentIds {
		if s := sizeOf(c); s > maxSize {
			maxSize = s
		}
	}

	sorted := append([]ids.ComponentId{}, componentIds...)
	radiusOf := make(map[ids.ComponentId]float64, len(sorted))
	for _, c := range sorted {
		r := float64(sizeOf(c)) * 100 / float64(maxSize)
		if r < MinimumComponentRadius {
			r = MinimumComponentRadius
		}
		radiusOf[c] = r
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if radiusOf[sorted[i]] == radiusOf[sorted[j]] {
			return sorted[i] < sorted[j]
		}
		return radiusOf[sorted[i]] > radiusOf[sorted[j]]
	})

	radii := make([]float64, len(sorted))
	for i, c := range sorted {
		radii[i] = radiusOf[c]
	}
	circles := Pack(radii)
	for i, c := range sorted {
		out[c] = circles[i]
	}
	return out
}

// PowerOfTwoGrid is the fallback packer for when circle packing would be
// too slow or isn't wanted (original_source: powerof2gridcomponentlayout):
// components are placed on a square grid whose side is the next power of
// two at least sqrt(len(componentIds)), spaced by the largest component's
// diameter so nothing overlaps.
func PowerOfTwoGrid(componentIds []ids.ComponentId, sizeOf func(ids.ComponentId) int) Placement {
	out := make(Placement, len(componentIds))
	n := len(componentIds)
	if n == 0 {
		return out
	}

	side := nextPowerOfTwo(int(math.Ceil(math.Sqrt(float64(n)))))
	maxRadius := MinimumComponentRadius
	for _, c := range componentIds {
		r := float64(sizeOf(c)) * 100 / float64(n)
		if r > maxRadius {
			maxRadius = r
		}
	}
	spacing := maxRadius * 2.5

	for i, c := range componentIds {
		row := i / side
		col := i % side
		out[c] = Circle{
			X:      float64(col) * spacing,
			Y:      float64(row) * spacing,
			Radius: maxRadius,
		}
	}
	return out
}

func nextPowerOfTwo(n int) int {
	if n < 1 {
		return 1
	}
	p := 1
	for p < n {
		p *= 2
	}
	return p
}

// Interpolate blends a previous Placement toward a target Placement by
// fraction t in [0,1], so that adding/removing a component doesn't snap
// every other component's position instantly (original_source:
// ComponentLayout's change-interpolation between successive layouts).
// Components present only in to fade in at their target position
// (fraction 0 treated as already-there, since they have no previous
// placement to interpolate from).
func Interpolate(from, to Placement, t float64) Placement {
	if t <= 0 {
		return from
	}
	if t >= 1 {
		return to
	}
	out := make(Placement, len(to))
	for c, target := range to {
		prev, ok := from[c]
		if !ok {
			out[c] = target
			continue
		}
		out[c] = Circle{
			X:      prev.X + (target.X-prev.X)*t,
			Y:      prev.Y + (target.Y-prev.Y)*t,
			Radius: prev.Radius + (target.Radius-prev.Radius)*t,
		}
	}
	return out
}
