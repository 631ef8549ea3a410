package kenburns

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func constEvaluator(score float64) PathEvaluator {
	return EvaluatorFunc(func(CameraPath) float64 { return score })
}

func horizontalPath(dx, zoom float64) CameraPath {
	return NewCameraPath(
		CameraState{CenterX: 500, CenterY: 500, Zoom: zoom},
		CameraState{CenterX: 500 + dx, CenterY: 500, Zoom: zoom},
		true,
	)
}

func TestInsidenessEvaluator(t *testing.T) {
	var e InsidenessEvaluator
	assert.Equal(t, 1.0, e.EvaluatePath(CameraPath{StaysInsideImage: true}))
	assert.Equal(t, Reject, e.EvaluatePath(CameraPath{StaysInsideImage: false}))
}

func TestDistanceEvaluatorRejectsBelowFloor(t *testing.T) {
	viewport := Size{Width: 500, Height: 500}
	images := []Size{{1000, 1000}, {200, 200}, {10000, 300}}
	for _, img := range images {
		e := NewDistanceEvaluator(img, viewport, DefaultDistanceFloorFactor)
		assert.InDelta(t, 200, e.Floor(), epsilon)
		for _, zoom := range []float64{0.25, 1, 4} {
			// View-space distance just under the floor.
			p := horizontalPath(199.9/zoom, zoom)
			assert.Equal(t, Reject, e.EvaluatePath(p), "image %v zoom %v", img, zoom)
		}
	}
}

func TestDistanceEvaluatorNormalizes(t *testing.T) {
	viewport := Size{Width: 500, Height: 500}
	e := NewDistanceEvaluator(Size{Width: 2000, Height: 2000}, viewport, DefaultDistanceFloorFactor)
	maxDist := math.Hypot(1500, 1500)

	assert.InDelta(t, 0, e.EvaluatePath(horizontalPath(200, 1)), epsilon)
	assert.InDelta(t, 1, e.EvaluatePath(horizontalPath(maxDist, 1)), epsilon)
	assert.InDelta(t, 0.5, e.EvaluatePath(horizontalPath(200+(maxDist-200)/2, 1)), 1e-9)
	assert.Equal(t, 1.0, e.EvaluatePath(horizontalPath(10*maxDist, 1)), "clamped to 1")
}

func TestDistanceEvaluatorDegenerateRange(t *testing.T) {
	// The image barely covers the viewport, so the pannable extent is below
	// the floor. Anything that clears the floor scores 1.
	e := NewDistanceEvaluator(Size{Width: 550, Height: 550}, Size{Width: 500, Height: 500}, DefaultDistanceFloorFactor)
	assert.Equal(t, 1.0, e.EvaluatePath(horizontalPath(250, 1)))
}

func TestAngleEvaluatorUnrotated(t *testing.T) {
	var e AngleEvaluator
	p := NewCameraPath(CameraState{Zoom: 1}, CameraState{CenterX: 30, CenterY: 30, Zoom: 1}, true)
	assert.Equal(t, 1.0, e.EvaluatePath(p))
}

func TestAngleEvaluatorAlongAndDiagonal(t *testing.T) {
	var e AngleEvaluator
	a := degToRad(30)
	mk := func(dx, dy float64) CameraPath {
		return NewCameraPath(
			CameraState{Angle: a, Zoom: 1},
			CameraState{CenterX: dx, CenterY: dy, Angle: a, Zoom: 1},
			true,
		)
	}

	// Along the rotated horizontal axis.
	assert.InDelta(t, 1, e.EvaluatePath(mk(100*math.Cos(a), -100*math.Sin(a))), 1e-9)
	// Along the rotated vertical axis.
	assert.InDelta(t, 1, e.EvaluatePath(mk(100*math.Sin(a), 100*math.Cos(a))), 1e-9)
	// Halfway between the axes.
	d := math.Pi/4 - a
	assert.InDelta(t, 0, e.EvaluatePath(mk(100*math.Cos(d), 100*math.Sin(d))), 1e-9)
	// No translation.
	assert.Equal(t, 0.0, e.EvaluatePath(mk(0, 0)))
}

func TestAngleEvaluatorAxisAlignedIsExact(t *testing.T) {
	var e AngleEvaluator
	for _, deg := range []float64{-40, -30, -10, 10, 20, 30, 40} {
		a := degToRad(deg)
		sin, cos := math.Sincos(a)
		along := NewCameraPath(
			CameraState{Angle: a, Zoom: 1},
			CameraState{CenterX: 100 * cos, CenterY: -100 * sin, Angle: a, Zoom: 1},
			true,
		)
		across := NewCameraPath(
			CameraState{Angle: a, Zoom: 1},
			CameraState{CenterX: 100 * sin, CenterY: 100 * cos, Angle: a, Zoom: 1},
			true,
		)
		assert.InDelta(t, 1, e.EvaluatePath(along), 1e-12, "along at %v°", deg)
		assert.InDelta(t, 1, e.EvaluatePath(across), 1e-12, "across at %v°", deg)
	}
}

func TestWeightedEvaluatorMean(t *testing.T) {
	w := NewWeightedScorePathEvaluator().
		Add(constEvaluator(0.5), 1).
		Add(constEvaluator(1), 3)
	assert.Equal(t, 2, w.Len())
	assert.InDelta(t, 0.875, w.EvaluatePath(CameraPath{}), epsilon)
}

func TestWeightedEvaluatorVeto(t *testing.T) {
	weights := []float64{0, 0.1, 1, 1000}
	for _, weight := range weights {
		w := NewWeightedScorePathEvaluator().
			Add(constEvaluator(1), weight).
			Add(constEvaluator(Reject), 0).
			Add(constEvaluator(0.9), weight)
		assert.Equal(t, Reject, w.EvaluatePath(CameraPath{}), "weight %v", weight)
	}
}

func TestWeightedEvaluatorStopsAtVeto(t *testing.T) {
	called := false
	w := NewWeightedScorePathEvaluator().
		Add(constEvaluator(Reject), 1).
		Add(EvaluatorFunc(func(CameraPath) float64 { called = true; return 1 }), 1)
	assert.Equal(t, Reject, w.EvaluatePath(CameraPath{}))
	assert.False(t, called)
}

func TestWeightedEvaluatorZeroWeights(t *testing.T) {
	w := NewWeightedScorePathEvaluator().Add(constEvaluator(0.7), 0)
	assert.Equal(t, 0.0, w.EvaluatePath(CameraPath{}))
	assert.Equal(t, 0.0, NewWeightedScorePathEvaluator().EvaluatePath(CameraPath{}))
}

func TestWeightedEvaluatorNegativeWeightPanics(t *testing.T) {
	assert.Panics(t, func() {
		NewWeightedScorePathEvaluator().Add(constEvaluator(1), -1)
	})
	assert.Panics(t, func() {
		NewWeightedScorePathEvaluator().Add(constEvaluator(1), math.NaN())
	})

	// Configured weights are rejected before they reach Add.
	cfg := DefaultConfig()
	assert.ErrorIs(t, cfg.SetWeights(Weights{Angle: -1}), ErrInvalidConfig)
	cfg.Weights.Entropy = math.NaN()
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}

func TestWeightedEvaluatorConcurrentUse(t *testing.T) {
	w := NewWeightedScorePathEvaluator().
		Add(EvaluatorFunc(func(p CameraPath) float64 { return p.Translation().X / 100 }), 1).
		Add(constEvaluator(1), 1)

	var wg sync.WaitGroup
	results := make([]float64, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p := horizontalPath(float64(i*10), 1)
			for range 1000 {
				results[i] = w.EvaluatePath(p)
			}
		}()
	}
	wg.Wait()

	for i, got := range results {
		assert.InDelta(t, (float64(i*10)/100+1)/2, got, epsilon, "goroutine %d", i)
	}
}
