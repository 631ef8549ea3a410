package kenburns

import "math"

// CameraState describes how the viewport frames a region of a source image.
//
// A point p in image space maps to viewport space (relative to the viewport
// centre) as
//
//	v = Zoom * Rotate(Angle) * (p - Center)
//
// CameraState is a value type: create new states instead of mutating shared
// ones. Two states are equal when every field is equal, which is how the
// animator detects that the camera is at rest.
type CameraState struct {
	// CenterX and CenterY are the image-space point shown at the viewport centre.
	CenterX, CenterY float64
	// Angle is the rotation in radians.
	Angle float64
	// Zoom is the scale factor from image pixels to viewport pixels (> 0).
	Zoom float64
}

// NewCameraState returns a state centred on (x, y) with no rotation and zoom 1.
func NewCameraState(x, y float64) CameraState {
	return CameraState{CenterX: x, CenterY: y, Zoom: 1}
}

// Center returns the image-space centre as a vector.
func (s CameraState) Center() Vec2 {
	return Vec2{X: s.CenterX, Y: s.CenterY}
}

// Interpolate returns the state at ratio r between s (r = 0) and other
// (r = 1). Every field is interpolated independently and linearly; the angle
// is interpolated in radians, not along the shorter arc, so a move from
// 350° to 10° turns the long way round.
//
// The endpoints are returned as-is so that Interpolate(o, 0) == s and
// Interpolate(o, 1) == o hold exactly.
func (s CameraState) Interpolate(other CameraState, r float64) CameraState {
	if r <= 0 {
		return s
	}
	if r >= 1 {
		return other
	}
	return CameraState{
		CenterX: lerp(s.CenterX, other.CenterX, r),
		CenterY: lerp(s.CenterY, other.CenterY, r),
		Angle:   lerp(s.Angle, other.Angle, r),
		Zoom:    lerp(s.Zoom, other.Zoom, r),
	}
}

// ViewMatrix returns Scale(Zoom) * Rotate(Angle) * Translate(-Center), the
// affine transform from image space to viewport-centred space.
func (s CameraState) ViewMatrix() [6]float64 {
	return multiplyAffine(scaleRotateAffine(s.Zoom, s.Angle), translateAffine(-s.CenterX, -s.CenterY))
}

// InverseViewMatrix returns the transform from viewport-centred space back to
// image space.
func (s CameraState) InverseViewMatrix() [6]float64 {
	return invertAffine(s.ViewMatrix())
}

// ImageToView converts an image-space point to viewport-centred coordinates.
func (s CameraState) ImageToView(x, y float64) (vx, vy float64) {
	return transformPoint(s.ViewMatrix(), x, y)
}

// ViewToImage converts a viewport-centred point to image-space coordinates.
func (s CameraState) ViewToImage(vx, vy float64) (x, y float64) {
	return transformPoint(s.InverseViewMatrix(), vx, vy)
}

// Footprint returns the axis-aligned bounding rect, in image space, of the
// area the viewport shows in this state.
func (s CameraState) Footprint(viewport Size) Rect {
	return boundsOf(s.InverseViewMatrix(), viewport.Width, viewport.Height)
}

func lerp(a, b, r float64) float64 {
	return a + (b-a)*r
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
