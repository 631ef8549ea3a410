package kenburns

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCameraPathDistances(t *testing.T) {
	p := NewCameraPath(
		CameraState{CenterX: 100, CenterY: 100, Zoom: 2},
		CameraState{CenterX: 130, CenterY: 140, Zoom: 2},
		true,
	)
	assert.Equal(t, Vec2{X: 30, Y: 40}, p.Translation())
	assert.InDelta(t, 50, p.DistanceInImageSpace(), epsilon)
	assert.InDelta(t, 100, p.DistanceInViewSpace(), epsilon)
	assert.True(t, p.StaysInsideImage)
}

func TestCameraPathAverages(t *testing.T) {
	p := NewCameraPath(
		CameraState{Angle: 0.2, Zoom: 1},
		CameraState{Angle: 0.4, Zoom: 3},
		false,
	)
	assert.InDelta(t, 0.3, p.AverageAngle(), epsilon)
	assert.InDelta(t, 2, p.AverageZoom(), epsilon)
	assert.False(t, p.StaysInsideImage)
}

func TestCameraPathAt(t *testing.T) {
	start := CameraState{CenterX: 0, CenterY: 0, Zoom: 1}
	end := CameraState{CenterX: 10, CenterY: -10, Zoom: 1}
	p := NewCameraPath(start, end, true)

	assert.Equal(t, start, p.At(0))
	assert.Equal(t, end, p.At(1))
	mid := p.At(0.25)
	assertNear(t, "CenterX", mid.CenterX, 2.5)
	assertNear(t, "CenterY", mid.CenterY, -2.5)
}

func TestZeroLengthPath(t *testing.T) {
	s := NewCameraState(5, 5)
	p := NewCameraPath(s, s, true)
	assert.Zero(t, p.DistanceInImageSpace())
	assert.False(t, math.IsNaN(p.DistanceInViewSpace()))
}
