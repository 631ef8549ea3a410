package kenburns

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Surface presents the current image through the animated camera. It embeds
// an Animator, which provides the Presentation methods the scheduler uses.
type Surface struct {
	*Animator

	// Viewport is the on-screen size the camera frames.
	Viewport Size
	// Filter is the sampling filter used when drawing the image.
	Filter ebiten.Filter

	img      *ebiten.Image
	imgSeq   uint64
	ownedImg bool
}

// NewSurface creates a surface for the given viewport. A nil clock uses time.Now.
func NewSurface(viewport Size, clock func() time.Time) *Surface {
	return &Surface{
		Animator: NewAnimator(clock),
		Viewport: viewport,
		Filter:   ebiten.FilterLinear,
	}
}

// VisibleBounds returns the image-space bounding rect of what the camera shows.
func (s *Surface) VisibleBounds() Rect {
	return s.State().Footprint(s.Viewport)
}

// GeoM returns the draw transform for the current state: the camera's view
// matrix followed by a translation to the viewport centre.
func (s *Surface) GeoM() ebiten.GeoM {
	st := s.State()
	var g ebiten.GeoM
	g.Translate(-st.CenterX, -st.CenterY)
	g.Rotate(st.Angle)
	g.Scale(st.Zoom, st.Zoom)
	g.Translate(s.Viewport.Width/2, s.Viewport.Height/2)
	return g
}

// Draw renders the current image. The GPU copy of the image is created on
// the first draw after ChangeImage.
func (s *Surface) Draw(screen *ebiten.Image) {
	if !s.syncImage() {
		return
	}
	op := &ebiten.DrawImageOptions{Filter: s.Filter}
	op.GeoM = s.GeoM()
	screen.DrawImage(s.img, op)
}

// syncImage uploads the animator's image when it changed. It reports whether
// there is anything to draw.
func (s *Surface) syncImage() bool {
	if s.imgSeq == s.imageSeq {
		return s.img != nil
	}
	if s.img != nil && s.ownedImg {
		s.img.Deallocate()
	}
	s.img, s.ownedImg = nil, false
	s.imgSeq = s.imageSeq

	src := s.Image()
	if src == nil {
		return false
	}
	if e, ok := src.(*ebiten.Image); ok {
		s.img = e
	} else {
		s.img = ebiten.NewImageFromImage(src)
		s.ownedImg = true
	}
	return true
}
