package camera

import (
	"math"

	"github.com/graphia-app/graphia-sub005/layout/positions"
)

// Quaternion is a unit rotation, used instead of Euler angles so camera
// rotation interpolation (Transition) has no gimbal lock.
type Quaternion struct {
	W, X, Y, Z float64
}

// Identity is the zero-rotation quaternion.
func Identity() Quaternion { return Quaternion{W: 1} }

// FromAxisAngle builds a unit quaternion rotating by angle radians around
// axis (which need not be pre-normalised).
func FromAxisAngle(axis positions.Vec3, angle float64) Quaternion {
	axis = axis.Normalized()
	half := angle / 2
	s := math.Sin(half)
	return Quaternion{W: math.Cos(half), X: axis.X * s, Y: axis.Y * s, Z: axis.Z * s}
}

func (q Quaternion) Normalized() Quaternion {
	l := math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
	if l == 0 {
		return Identity()
	}
	return Quaternion{W: q.W / l, X: q.X / l, Y: q.Y / l, Z: q.Z / l}
}

func (q Quaternion) Conjugate() Quaternion {
	return Quaternion{W: q.W, X: -q.X, Y: -q.Y, Z: -q.Z}
}

func (q Quaternion) Mul(o Quaternion) Quaternion {
	return Quaternion{
		W: q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
		X: q.W*o.X + q.X*o.W + q.Y*o.Z - q.Z*o.Y,
		Y: q.W*o.Y - q.X*o.Z + q.Y*o.W + q.Z*o.X,
		Z: q.W*o.Z + q.X*o.Y - q.Y*o.X + q.Z*o.W,
	}
}

// RotateVector applies q's rotation to v.
func (q Quaternion) RotateVector(v positions.Vec3) positions.Vec3 {
	p := Quaternion{X: v.X, Y: v.Y, Z: v.Z}
	r := q.Mul(p).Mul(q.Conjugate())
	return positions.Vec3{X: r.X, Y: r.Y, Z: r.Z}
}

// Slerp spherically interpolates between a and b by t in [0,1].
func Slerp(a, b Quaternion, t float64) Quaternion {
	dot := a.W*b.W + a.X*b.X + a.Y*b.Y + a.Z*b.Z
	if dot < 0 {
		b = Quaternion{W: -b.W, X: -b.X, Y: -b.Y, Z: -b.Z}
		dot = -dot
	}
	if dot > 0.9995 {
		return Quaternion{
			W: a.W + (b.W-a.W)*t,
			X: a.X + (b.X-a.X)*t,
			Y: a.Y + (b.Y-a.Y)*t,
			Z: a.Z + (b.Z-a.Z)*t,
		}.Normalized()
	}
	theta0 := math.Acos(dot)
	theta := theta0 * t
	sinTheta := math.Sin(theta)
	sinTheta0 := math.Sin(theta0)
	s0 := math.Cos(theta) - dot*sinTheta/sinTheta0
	s1 := sinTheta / sinTheta0
	return Quaternion{
		W: a.W*s0 + b.W*s1,
		X: a.X*s0 + b.X*s1,
		Y: a.Y*s0 + b.Y*s1,
		Z: a.Z*s0 + b.Z*s1,
	}
}
