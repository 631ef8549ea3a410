package kenburns

import (
	"image"
	"time"
)

// Observer receives presentation notifications. All callbacks run on the
// tick loop.
type Observer interface {
	// StateChanged fires on every tick during which the camera moved.
	StateChanged(state CameraState)
	// AnimationStarted fires when the camera starts moving.
	AnimationStarted()
	// AnimationStopped fires when the camera comes to rest.
	AnimationStopped()
	// ImageChanged fires when the displayed image is replaced.
	ImageChanged(img image.Image)
}

// Animator moves a CameraState linearly towards a target over wall-clock time.
// It is driven by calling Update once per tick and is not safe for
// concurrent use.
type Animator struct {
	clock func() time.Time

	image    image.Image
	imageSeq uint64

	current  CameraState
	lastTick CameraState
	start    CameraState
	target   CameraState

	startTime  time.Time
	targetTime time.Time

	moving   bool
	observer Observer
}

// NewAnimator creates an animator at rest at the origin with zoom 1. A nil
// clock uses time.Now.
func NewAnimator(clock func() time.Time) *Animator {
	if clock == nil {
		clock = time.Now
	}
	initial := NewCameraState(0, 0)
	return &Animator{
		clock:    clock,
		current:  initial,
		lastTick: initial,
		start:    initial,
		target:   initial,
	}
}

// SetObserver registers the notification receiver. Pass nil to remove it.
func (a *Animator) SetObserver(o Observer) {
	a.observer = o
}

// State returns the current camera state.
func (a *Animator) State() CameraState {
	return a.current
}

// Target returns the state the animator is heading to.
func (a *Animator) Target() CameraState {
	return a.target
}

// IsAnimating reports whether the camera moved during the last tick.
func (a *Animator) IsAnimating() bool {
	return a.moving
}

// Image returns the displayed image.
func (a *Animator) Image() image.Image {
	return a.image
}

// ChangeImage replaces the displayed image and notifies the observer.
func (a *Animator) ChangeImage(img image.Image) {
	a.image = img
	a.imageSeq++
	if a.observer != nil {
		a.observer.ImageChanged(img)
	}
}

// AnimateTo starts a linear move from the current state to target lasting d.
// A non-positive d behaves like MoveTo.
func (a *Animator) AnimateTo(target CameraState, d time.Duration) {
	if d <= 0 {
		a.MoveTo(target)
		return
	}
	now := a.clock()
	a.start = a.current
	a.target = target
	a.startTime = now
	a.targetTime = now.Add(d)
}

// MoveTo jumps to state immediately. Observers learn about the jump on the
// next tick.
func (a *Animator) MoveTo(state CameraState) {
	now := a.clock()
	a.start = state
	a.target = state
	a.current = state
	a.startTime = now
	a.targetTime = now
}

// Update advances the animation to the current clock time and fires
// notifications. Once the target time has passed the state equals the target
// exactly.
func (a *Animator) Update() {
	if a.current != a.target {
		now := a.clock()
		if !now.Before(a.targetTime) {
			a.current = a.target
		} else {
			span := a.targetTime.Sub(a.startTime)
			r := float64(now.Sub(a.startTime)) / float64(span)
			a.current = a.start.Interpolate(a.target, r)
		}
	}

	moving := a.current != a.lastTick
	a.lastTick = a.current

	if moving && !a.moving {
		a.moving = true
		if a.observer != nil {
			a.observer.AnimationStarted()
		}
	}
	if moving && a.observer != nil {
		a.observer.StateChanged(a.current)
	}
	if !moving && a.moving {
		a.moving = false
		if a.observer != nil {
			a.observer.AnimationStopped()
		}
	}
}
