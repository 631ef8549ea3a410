package kenburns

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFadeOverlayStartsOpaque(t *testing.T) {
	o := NewFadeOverlay()
	assert.True(t, o.IsFullyOpaque())
	assert.Equal(t, 1.0, o.Alpha())
	assert.Equal(t, ColorBlack, o.Color)
	assert.False(t, o.Fading())
}

func TestFadeOverlayFadesLinearly(t *testing.T) {
	o := NewFadeOverlay()
	o.AnimateToFullTranslucency(2 * time.Second)
	assert.True(t, o.Fading())
	assert.False(t, o.IsFullyOpaque())

	o.Update(0.5)
	assert.InDelta(t, 0.75, o.Alpha(), 1e-6)
	o.Update(0.5)
	assert.InDelta(t, 0.5, o.Alpha(), 1e-6)

	o.Update(5)
	assert.Equal(t, 0.0, o.Alpha(), "the end value is exact")
	assert.False(t, o.Fading())

	o.AnimateToFullOpacity(time.Second)
	o.Update(0.25)
	assert.InDelta(t, 0.25, o.Alpha(), 1e-6)
	o.Update(1)
	assert.True(t, o.IsFullyOpaque())
}

func TestFadeOverlayMakeFullyOpaqueCancels(t *testing.T) {
	o := NewFadeOverlay()
	o.AnimateToFullTranslucency(time.Second)
	o.Update(0.5)
	o.MakeFullyOpaque()
	assert.True(t, o.IsFullyOpaque())

	// The cancelled fade does not resume.
	o.Update(0.5)
	assert.Equal(t, 1.0, o.Alpha())
}

func TestFadeOverlayZeroDuration(t *testing.T) {
	o := NewFadeOverlay()
	o.AnimateToFullTranslucency(0)
	assert.Equal(t, 0.0, o.Alpha())
	assert.False(t, o.Fading())
}

func TestFadeOverlayUpdateIdle(t *testing.T) {
	o := NewFadeOverlay()
	o.Update(1)
	assert.Equal(t, 1.0, o.Alpha())
}
