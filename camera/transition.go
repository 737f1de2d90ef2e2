package camera

import "github.com/graphia-app/graphia-sub005/layout/positions"

// Easing is a normalised time-remapping function: Easing(0) == 0,
// Easing(1) == 1.
type Easing func(t float64) float64

func EaseLinear(t float64) float64 { return t }

func EaseInEaseOut(t float64) float64 {
	return t * t * (3 - 2*t)
}

func EaseOut(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// keyframe is one waypoint of a Transition: a focus/rotation/distance
// triple plus the easing used to approach it from the previous keyframe.
type keyframe struct {
	focus    positions.Vec3
	rotation Quaternion
	distance float64
	easing   Easing
	duration float64 // seconds
}

// Transition animates a Camera through a sequence of keyframes over
// time, one Advance(dt) call per frame, matching the original rendering
// layer's frame-driven camera animation rather than a single blocking
// call.
type Transition struct {
	camera    *Camera
	keyframes []keyframe
	index     int
	elapsed   float64

	start keyframe

	onFinished []func()
}

// NewTransition creates a Transition that will animate camera through
// keyframes added via To.
func NewTransition(cam *Camera) *Transition {
	return &Transition{
		camera: cam,
		start: keyframe{
			focus:    cam.Focus(),
			rotation: cam.Rotation(),
			distance: cam.Distance(),
		},
	}
}

// To appends a keyframe to animate toward, reached over duration seconds
// using easing (EaseInEaseOut if nil).
func (t *Transition) To(focus positions.Vec3, rotation Quaternion, distance float64, duration float64, easing Easing) {
	if easing == nil {
		easing = EaseInEaseOut
	}
	t.keyframes = append(t.keyframes, keyframe{
		focus: focus, rotation: rotation, distance: distance,
		duration: duration, easing: easing,
	})
}

// OnFinished registers fn to be called once, when the final keyframe
// completes.
func (t *Transition) OnFinished(fn func()) { t.onFinished = append(t.onFinished, fn) }

// Finished reports whether every keyframe has been reached.
func (t *Transition) Finished() bool { return t.index >= len(t.keyframes) }

// Advance steps the transition forward by dt seconds, writing the
// interpolated viewpoint into the bound Camera. Calling Advance after
// Finished is a no-op.
func (t *Transition) Advance(dt float64) {
	if t.Finished() {
		return
	}
	kf := t.keyframes[t.index]
	t.elapsed += dt
	duration := kf.duration
	if duration <= 0 {
		duration = 1e-9
	}
	frac := t.elapsed / duration
	if frac >= 1 {
		frac = 1
	}
	eased := kf.easing(frac)

	from := t.start
	t.camera.SetFocus(lerpVec3(from.focus, kf.focus, eased))
	t.camera.SetRotation(Slerp(from.rotation, kf.rotation, eased))
	t.camera.SetDistance(lerpFloat(from.distance, kf.distance, eased))

	if frac >= 1 {
		t.start = kf
		t.elapsed = 0
		t.index++
		if t.Finished() {
			for _, fn := range t.onFinished {
				fn()
			}
		}
	}
}

func lerpVec3(a, b positions.Vec3, t float64) positions.Vec3 {
	return a.Add(b.Sub(a).Scale(t))
}

func lerpFloat(a, b, t float64) float64 {
	return a + (b-a)*t
}
