package positions

import "math"

// Vec3 is a 3D point/vector, dimensionality switching (2D layouts simply
// leave Z at 0) handled by the layout engine rather than this type.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

func (v Vec3) Normalized() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// BoundingBox is the axis-aligned extent of a set of points.
type BoundingBox struct {
	Min, Max Vec3
}

func (b BoundingBox) Centre() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}
