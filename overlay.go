package kenburns

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// FadeOverlay is a full-screen curtain drawn over the surface to hide cuts
// between images. Its opacity is animated with linear tweens; call Update(dt)
// every tick.
type FadeOverlay struct {
	// Color is the curtain color. Its alpha is multiplied with the animated
	// opacity.
	Color Color

	alpha  float64
	to     float64
	tween  *gween.Tween
	pixel  *ebiten.Image
	easeFn ease.TweenFunc
}

// NewFadeOverlay creates a fully opaque black curtain.
func NewFadeOverlay() *FadeOverlay {
	return &FadeOverlay{
		Color:  ColorBlack,
		alpha:  1,
		to:     1,
		easeFn: ease.Linear,
	}
}

// Alpha returns the current opacity in [0, 1].
func (o *FadeOverlay) Alpha() float64 {
	return o.alpha
}

// Fading reports whether a tween is in progress.
func (o *FadeOverlay) Fading() bool {
	return o.tween != nil
}

// AnimateToFullOpacity fades the curtain in over d.
func (o *FadeOverlay) AnimateToFullOpacity(d time.Duration) {
	o.animateTo(1, d)
}

// AnimateToFullTranslucency fades the curtain out over d.
func (o *FadeOverlay) AnimateToFullTranslucency(d time.Duration) {
	o.animateTo(0, d)
}

// MakeFullyOpaque stops any fade and covers the surface at once.
func (o *FadeOverlay) MakeFullyOpaque() {
	o.tween = nil
	o.alpha = 1
	o.to = 1
}

// IsFullyOpaque reports whether the curtain fully covers the surface and is
// not fading.
func (o *FadeOverlay) IsFullyOpaque() bool {
	return o.tween == nil && o.alpha >= 1
}

func (o *FadeOverlay) animateTo(to float64, d time.Duration) {
	o.to = to
	if d <= 0 {
		o.tween = nil
		o.alpha = to
		return
	}
	o.tween = gween.New(float32(o.alpha), float32(to), float32(d.Seconds()), o.easeFn)
}

// Update advances the fade by dt seconds. The final value is set exactly.
func (o *FadeOverlay) Update(dt float32) {
	if o.tween == nil {
		return
	}
	val, finished := o.tween.Update(dt)
	o.alpha = float64(val)
	if finished {
		o.alpha = o.to
		o.tween = nil
	}
}

// Draw paints the curtain over the whole screen.
func (o *FadeOverlay) Draw(screen *ebiten.Image) {
	a := o.alpha * o.Color.A
	if a <= 0 {
		return
	}
	if o.pixel == nil {
		o.pixel = ebiten.NewImage(1, 1)
		o.pixel.Fill(ColorWhite.toRGBA())
	}
	b := screen.Bounds()
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(float64(b.Dx()), float64(b.Dy()))
	op.GeoM.Translate(float64(b.Min.X), float64(b.Min.Y))
	// Premultiplied: the white source times (r*a, g*a, b*a, a).
	op.ColorScale.Scale(float32(o.Color.R*a), float32(o.Color.G*a), float32(o.Color.B*a), float32(a))
	screen.DrawImage(o.pixel, &op)
}
