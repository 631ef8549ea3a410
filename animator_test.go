package kenburns

import (
	"image"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// recordingObserver logs notifications in order.
type recordingObserver struct {
	events []string
	states []CameraState
	images []image.Image
}

func (o *recordingObserver) StateChanged(s CameraState) {
	o.events = append(o.events, "changed")
	o.states = append(o.states, s)
}
func (o *recordingObserver) AnimationStarted() { o.events = append(o.events, "started") }
func (o *recordingObserver) AnimationStopped() { o.events = append(o.events, "stopped") }
func (o *recordingObserver) ImageChanged(img image.Image) {
	o.events = append(o.events, "image")
	o.images = append(o.images, img)
}

func TestAnimatorStartsAtRest(t *testing.T) {
	a := NewAnimator(newFakeClock().Now)
	a.Update()
	assert.False(t, a.IsAnimating())
	assert.Equal(t, NewCameraState(0, 0), a.State())
	assert.Nil(t, a.Image())
}

func TestAnimatorReachesTargetExactly(t *testing.T) {
	clock := newFakeClock()
	a := NewAnimator(clock.Now)
	target := CameraState{CenterX: 100.1, CenterY: 33.3, Angle: 0.17, Zoom: 1.7}

	a.AnimateTo(target, time.Second)
	clock.Advance(250 * time.Millisecond)
	a.Update()
	assert.True(t, a.IsAnimating())
	assertNear(t, "quarter X", a.State().CenterX, 25.025)

	clock.Advance(2 * time.Second)
	a.Update()
	assert.Equal(t, target, a.State(), "the final state is bit-identical to the target")
	assert.True(t, a.IsAnimating(), "the last step still counts as motion")

	a.Update()
	assert.False(t, a.IsAnimating())
}

func TestAnimatorNotifiesOnEdges(t *testing.T) {
	clock := newFakeClock()
	a := NewAnimator(clock.Now)
	obs := &recordingObserver{}
	a.SetObserver(obs)

	a.AnimateTo(CameraState{CenterX: 10, Zoom: 1}, 100*time.Millisecond)
	for range 5 {
		clock.Advance(25 * time.Millisecond)
		a.Update()
	}
	// 4 moving ticks, then one at rest.
	assert.Equal(t, []string{"started", "changed", "changed", "changed", "changed", "stopped"}, obs.events)
	require.Len(t, obs.states, 4)
	assert.Equal(t, CameraState{CenterX: 10, Zoom: 1}, obs.states[3])

	// Idle ticks fire nothing.
	a.Update()
	a.Update()
	assert.Len(t, obs.events, 6)
}

func TestAnimatorStopMidMotion(t *testing.T) {
	clock := newFakeClock()
	a := NewAnimator(clock.Now)
	obs := &recordingObserver{}
	a.SetObserver(obs)

	target := CameraState{CenterX: 1000, Zoom: 1}
	a.AnimateTo(target, 10*time.Second)
	clock.Advance(time.Second)
	a.Update()
	require.True(t, a.IsAnimating())
	mid := a.State()

	// Snap to the current state, not the target.
	a.MoveTo(a.State())
	clock.Advance(time.Second)
	a.Update()

	assert.False(t, a.IsAnimating())
	assert.Equal(t, mid, a.State())
	assert.Equal(t, mid, a.Target())
	assert.Equal(t, "stopped", obs.events[len(obs.events)-1])
}

func TestAnimatorMoveToJumps(t *testing.T) {
	clock := newFakeClock()
	a := NewAnimator(clock.Now)
	obs := &recordingObserver{}
	a.SetObserver(obs)

	s := CameraState{CenterX: 50, CenterY: 60, Zoom: 2}
	a.MoveTo(s)
	assert.Equal(t, s, a.State())

	a.Update()
	a.Update()
	assert.Equal(t, []string{"started", "changed", "stopped"}, obs.events)
}

func TestAnimatorZeroDurationIsMoveTo(t *testing.T) {
	a := NewAnimator(newFakeClock().Now)
	s := CameraState{CenterX: 5, Zoom: 1}
	a.AnimateTo(s, 0)
	assert.Equal(t, s, a.State())
}

func TestAnimatorChangeImage(t *testing.T) {
	a := NewAnimator(newFakeClock().Now)
	obs := &recordingObserver{}
	a.SetObserver(obs)

	img := image.NewGray(image.Rect(0, 0, 4, 4))
	a.ChangeImage(img)
	assert.Same(t, img, a.Image())
	assert.Equal(t, []string{"image"}, obs.events)
	require.Len(t, obs.images, 1)
	assert.Same(t, img, obs.images[0])
}

func TestAnimatorRetarget(t *testing.T) {
	clock := newFakeClock()
	a := NewAnimator(clock.Now)

	a.AnimateTo(CameraState{CenterX: 100, Zoom: 1}, time.Second)
	clock.Advance(500 * time.Millisecond)
	a.Update()
	assertNear(t, "half", a.State().CenterX, 50)

	// A new target starts from wherever the camera is now.
	a.AnimateTo(CameraState{CenterX: 0, Zoom: 1}, time.Second)
	clock.Advance(500 * time.Millisecond)
	a.Update()
	assertNear(t, "back", a.State().CenterX, 25)
}
