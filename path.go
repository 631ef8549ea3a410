package kenburns

// CameraPath is one continuous camera move between two states. Paths built
// by RandomPathGenerator keep Zoom and Angle identical at both ends so only
// the centre translates.
type CameraPath struct {
	Start, End CameraState

	// StaysInsideImage is fixed when the path is created: true when every
	// state along the path shows only pixels that exist in the source image.
	StaysInsideImage bool
}

// NewCameraPath creates a path between start and end.
func NewCameraPath(start, end CameraState, staysInside bool) CameraPath {
	return CameraPath{Start: start, End: end, StaysInsideImage: staysInside}
}

// Translation returns the image-space vector from the start centre to the end centre.
func (p CameraPath) Translation() Vec2 {
	return Vec2{X: p.End.CenterX - p.Start.CenterX, Y: p.End.CenterY - p.Start.CenterY}
}

// DistanceInImageSpace returns how far the centre travels, in image pixels.
func (p CameraPath) DistanceInImageSpace() float64 {
	return p.Translation().Len()
}

// DistanceInViewSpace returns the travel distance as seen on screen.
func (p CameraPath) DistanceInViewSpace() float64 {
	return p.DistanceInImageSpace() * p.AverageZoom()
}

// AverageAngle returns the mean of the start and end angles.
func (p CameraPath) AverageAngle() float64 {
	return (p.Start.Angle + p.End.Angle) / 2
}

// AverageZoom returns the mean of the start and end zoom factors.
func (p CameraPath) AverageZoom() float64 {
	return (p.Start.Zoom + p.End.Zoom) / 2
}

// At returns the state at ratio r along the path.
func (p CameraPath) At(r float64) CameraState {
	return p.Start.Interpolate(p.End, r)
}
