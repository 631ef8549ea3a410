package kenburns

import (
	"math"
	"math/rand/v2"
)

// minZoomMargin keeps the smallest zoom slightly above the value that would
// exactly cover the viewport, leaving room to pan.
const minZoomMargin = 1.1

// PathGenerator produces candidate camera paths.
type PathGenerator interface {
	GeneratePath() CameraPath
}

// GeneratorOptions tunes the random draw of angles and zoom factors.
type GeneratorOptions struct {
	// AngleRange is the permitted rotation in degrees.
	AngleRange Range `yaml:"angle_range"`
	// AngleStep quantizes drawn angles, in degrees. Zero disables quantization.
	AngleStep float64 `yaml:"angle_step"`
	// FavorZeroAngle is the probability of choosing 0° outright.
	FavorZeroAngle float64 `yaml:"favor_zero_angle"`
	// ZoomRatio is maxZoom / minZoom (>= 1).
	ZoomRatio float64 `yaml:"zoom_ratio"`
	// FavorUnityZoom is the probability of choosing zoom 1.0 outright when it
	// lies within the zoom range.
	//
	// Angle and zoom draws are not uniform over their ranges. Each draw picks
	// the part below or above the favoured value (0° or zoom 1.0) with equal
	// probability, so a range with 1.0 near one end gets half of its zoom
	// draws from that short end. Ranges that exclude the favoured value are
	// split at their midpoint instead.
	FavorUnityZoom float64 `yaml:"favor_unity_zoom"`
}

// RandomPathGenerator draws paths whose viewport footprint stays inside the
// image whenever the image can cover the viewport at the drawn angle and zoom.
type RandomPathGenerator struct {
	imageSize Size
	viewport  Size
	opts      GeneratorOptions
	zooms     Range
	rng       *rand.Rand
}

// NewRandomPathGenerator creates a generator for one image and viewport size.
func NewRandomPathGenerator(imageSize, viewport Size, opts GeneratorOptions, rng *rand.Rand) *RandomPathGenerator {
	return &RandomPathGenerator{
		imageSize: imageSize,
		viewport:  viewport,
		opts:      opts,
		zooms:     ZoomRange(imageSize, viewport, opts.ZoomRatio),
		rng:       rng,
	}
}

// ZoomRange returns [minZoom, minZoom*ratio] where minZoom is 1.1 times the
// smallest zoom at which the image covers the viewport.
func ZoomRange(imageSize, viewport Size, ratio float64) Range {
	if imageSize.Width <= 0 || imageSize.Height <= 0 {
		return Range{Min: 1, Max: ratio}
	}
	minZoom := minZoomMargin * math.Max(viewport.Width/imageSize.Width, viewport.Height/imageSize.Height)
	return Range{Min: minZoom, Max: minZoom * ratio}
}

// ZoomRange returns the zoom range this generator draws from.
func (g *RandomPathGenerator) ZoomRange() Range {
	return g.zooms
}

// FeasibleCenters returns the rectangle of centre positions for which the
// viewport, rotated by angle and scaled by zoom, stays fully inside the
// image. The result is empty when no such position exists.
func (g *RandomPathGenerator) FeasibleCenters(angle, zoom float64) Rect {
	fp := CameraState{Angle: angle, Zoom: zoom}.Footprint(g.viewport)
	img := Rect{Width: g.imageSize.Width, Height: g.imageSize.Height}
	return img.Inset(fp.Width/2, fp.Height/2)
}

// GeneratePath draws one candidate path.
func (g *RandomPathGenerator) GeneratePath() CameraPath {
	angle := g.drawAngle()
	zoom := g.drawZoom()
	rect := g.FeasibleCenters(angle, zoom)

	sx, sy := g.drawPoint(rect)
	ex, ey := g.drawPoint(rect)

	start := CameraState{CenterX: sx, CenterY: sy, Angle: angle, Zoom: zoom}
	end := CameraState{CenterX: ex, CenterY: ey, Angle: angle, Zoom: zoom}
	return NewCameraPath(start, end, !rect.Empty())
}

// drawAngle returns an angle in radians.
func (g *RandomPathGenerator) drawAngle() float64 {
	r := g.opts.AngleRange
	if r.Contains(0) && g.rng.Float64() < g.opts.FavorZeroAngle {
		return 0
	}
	deg := drawSplit(g.rng, r, 0)
	if step := g.opts.AngleStep; step > 0 {
		deg = math.Round(deg/step) * step
		if deg > r.Max {
			deg -= step
		}
		if deg < r.Min {
			deg += step
		}
		deg = r.Clamp(deg)
	}
	return degToRad(deg)
}

func (g *RandomPathGenerator) drawZoom() float64 {
	if g.zooms.Contains(1) && g.rng.Float64() < g.opts.FavorUnityZoom {
		return 1
	}
	return drawSplit(g.rng, g.zooms, 1)
}

// drawPoint picks a uniform point in rect. An empty axis collapses to its
// midpoint.
func (g *RandomPathGenerator) drawPoint(rect Rect) (x, y float64) {
	x = rect.X + rect.Width/2
	if rect.Width >= 0 {
		x = rect.X + g.rng.Float64()*rect.Width
	}
	y = rect.Y + rect.Height/2
	if rect.Height >= 0 {
		y = rect.Y + g.rng.Float64()*rect.Height
	}
	return x, y
}

// drawSplit picks the lower or upper part of r with equal probability and
// returns a uniform value inside it. The parts meet at split when split lies
// strictly inside r, otherwise at the midpoint.
func drawSplit(rng *rand.Rand, r Range, split float64) float64 {
	if split <= r.Min || split >= r.Max {
		split = (r.Min + r.Max) / 2
	}
	if rng.Float64() < 0.5 {
		return r.Min + rng.Float64()*(split-r.Min)
	}
	return split + rng.Float64()*(r.Max-split)
}
