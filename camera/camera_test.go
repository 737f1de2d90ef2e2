package camera

import (
	"testing"

	"github.com/graphia-app/graphia-sub005/layout/positions"
	"github.com/stretchr/testify/assert"
)

func TestNewCameraIsValidAndLooksDownNegativeZ(t *testing.T) {
	c := New()
	assert.True(t, c.Valid())
	v := c.ViewVector()
	assert.InDelta(t, -1, v.Z, 1e-9)
}

func TestZoomToFitMovesFocusAndSetsDistance(t *testing.T) {
	c := New()
	c.SetPerspectiveProjection(60, 1, 0.1, 1024)
	c.ZoomToFit(positions.Vec3{X: 1, Y: 2, Z: 3}, 10)
	assert.Equal(t, positions.Vec3{X: 1, Y: 2, Z: 3}, c.Focus())
	assert.Greater(t, c.Distance(), 0.0)
}

func TestTransitionReachesFinalKeyframe(t *testing.T) {
	c := New()
	tr := NewTransition(c)
	target := positions.Vec3{X: 5, Y: 0, Z: 0}
	tr.To(target, Identity(), 2, 1.0, EaseLinear)

	finished := false
	tr.OnFinished(func() { finished = true })

	for i := 0; i < 10 && !tr.Finished(); i++ {
		tr.Advance(0.2)
	}

	assert.True(t, tr.Finished())
	assert.True(t, finished)
	assert.InDelta(t, target.X, c.Focus().X, 1e-6)
	assert.InDelta(t, 2, c.Distance(), 1e-6)
}

func TestTransitionIntermediateFractionInterpolates(t *testing.T) {
	c := New()
	tr := NewTransition(c)
	tr.To(positions.Vec3{X: 10}, Identity(), 1, 1.0, EaseLinear)

	tr.Advance(0.5)
	assert.InDelta(t, 5, c.Focus().X, 1e-6)
	assert.False(t, tr.Finished())
}
