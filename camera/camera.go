// Package camera implements the viewpoint (component L): focus, rotation,
// distance, projection type, zoom/autoZoom toward a selection or
// component, and smoothly-eased Transitions between two viewpoints.
package camera

import (
	"math"

	"github.com/graphia-app/graphia-sub005/layout/positions"
)

// ProjectionType selects how the viewpoint projects the scene.
type ProjectionType int

const (
	OrthogonalProjection ProjectionType = iota
	PerspectiveProjection
)

// Camera is a single, independently addressable viewpoint (the document
// owns one per component, per §9's single-owner design, plus one default).
type Camera struct {
	focus    positions.Vec3
	rotation Quaternion
	distance float64

	projectionType ProjectionType

	fieldOfView, aspectRatio, nearPlane, farPlane float64
	left, right, bottom, top                      float64

	autoZoom bool
}

// New creates a Camera looking at the origin from a default distance,
// orthogonal projection, auto-zoom enabled (original_source's default).
func New() *Camera {
	return &Camera{
		rotation:       Identity(),
		distance:       1,
		projectionType: OrthogonalProjection,
		fieldOfView:    60,
		aspectRatio:    1,
		nearPlane:      0.1,
		farPlane:       1024,
		left:           -0.5, right: 0.5, bottom: -0.5, top: 0.5,
		autoZoom: true,
	}
}

func (c *Camera) Focus() positions.Vec3   { return c.focus }
func (c *Camera) Rotation() Quaternion    { return c.rotation }
func (c *Camera) Distance() float64       { return c.distance }
func (c *Camera) Valid() bool             { return c.distance > 0 }
func (c *Camera) ProjectionType() ProjectionType { return c.projectionType }
func (c *Camera) AutoZoom() bool          { return c.autoZoom }

func (c *Camera) SetFocus(focus positions.Vec3)    { c.focus = focus }
func (c *Camera) SetRotation(rotation Quaternion)  { c.rotation = rotation }
func (c *Camera) SetDistance(distance float64)     { c.distance = distance }
func (c *Camera) SetAutoZoom(enabled bool)         { c.autoZoom = enabled }

func (c *Camera) SetOrthographicProjection(left, right, bottom, top, nearPlane, farPlane float64) {
	c.projectionType = OrthogonalProjection
	c.left, c.right, c.bottom, c.top = left, right, bottom, top
	c.nearPlane, c.farPlane = nearPlane, farPlane
}

func (c *Camera) SetPerspectiveProjection(fieldOfView, aspectRatio, nearPlane, farPlane float64) {
	c.projectionType = PerspectiveProjection
	c.fieldOfView, c.aspectRatio = fieldOfView, aspectRatio
	c.nearPlane, c.farPlane = nearPlane, farPlane
}

// ViewVector is the normalised direction the camera looks, derived from
// its rotation (the unrotated camera looks down -Z, matching
// original_source's OpenGL convention).
func (c *Camera) ViewVector() positions.Vec3 {
	return c.rotation.RotateVector(positions.Vec3{Z: -1}).Normalized()
}

// Position is the camera's world-space eye point: distance back along the
// view vector from its focus.
func (c *Camera) Position() positions.Vec3 {
	return c.focus.Sub(c.ViewVector().Scale(c.distance))
}

// ZoomToFit sets distance so that a sphere of the given radius centred on
// centre entirely fills the viewport at the current field of view (or, in
// orthogonal projection, the current ortho half-extent), and moves focus
// to centre. This backs both zoom-to-selection and zoom-to-component.
func (c *Camera) ZoomToFit(centre positions.Vec3, radius float64) {
	c.focus = centre
	if radius <= 0 {
		radius = 1
	}
	switch c.projectionType {
	case PerspectiveProjection:
		halfFovRad := (c.fieldOfView / 2) * (math.Pi / 180)
		c.distance = radius / math.Sin(halfFovRad)
	default:
		extent := (c.right - c.left) / 2
		if extent <= 0 {
			extent = 0.5
		}
		c.distance = radius / extent
	}
}
