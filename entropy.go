package kenburns

import (
	"image"
	"math"

	"golang.org/x/image/draw"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	// DefaultThumbnailPixels is the approximate pixel count of the rendered
	// frame thumbnails.
	DefaultThumbnailPixels = 100
	// entropyMaxZoom is the largest zoom the luminance copy keeps detail for.
	entropyMaxZoom = 4.0
	// entropyFrames is the number of frames sampled along a path, endpoints included.
	entropyFrames = 7
	// entropyLevels is the number of luminance levels after 4-bit quantization.
	entropyLevels = 16
)

var logLevels = math.Log(entropyLevels)

// EntropyEvaluator rewards paths that show detailed frames and visibly change
// along the way. It renders a handful of tiny frames from a downsampled
// grayscale copy of the image and measures histogram entropy.
//
// An EntropyEvaluator reuses internal buffers and is not safe for concurrent use.
type EntropyEvaluator struct {
	viewport Size
	thumbW   int
	thumbH   int

	lum    *image.Gray
	scaleX float64
	scaleY float64

	frames [entropyFrames][]uint8
	hist   [entropyLevels]float64
}

// NewEntropyEvaluator precomputes the luminance copy of img. thumbnailPixels
// is the approximate size of each rendered frame; values <= 0 use
// DefaultThumbnailPixels.
func NewEntropyEvaluator(img image.Image, viewport Size, thumbnailPixels int) *EntropyEvaluator {
	if thumbnailPixels <= 0 {
		thumbnailPixels = DefaultThumbnailPixels
	}
	aspect := viewport.Aspect()
	if aspect <= 0 {
		aspect = 1
	}
	e := &EntropyEvaluator{
		viewport: viewport,
		thumbW:   max(1, int(math.Round(math.Sqrt(float64(thumbnailPixels)*aspect)))),
		thumbH:   max(1, int(math.Round(math.Sqrt(float64(thumbnailPixels)/aspect)))),
	}
	for i := range e.frames {
		e.frames[i] = make([]uint8, e.thumbW*e.thumbH)
	}

	// Never upscale: the copy only needs enough detail for a thumbnail viewed
	// at the maximum zoom.
	scale := 1.0
	if viewport.Width > 0 {
		scale = math.Min(1, float64(e.thumbW)/viewport.Width*entropyMaxZoom)
	}
	src := SizeOf(img)
	w := max(1, int(math.Round(src.Width*scale)))
	h := max(1, int(math.Round(src.Height*scale)))
	e.lum = image.NewGray(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(e.lum, e.lum.Bounds(), img, img.Bounds(), draw.Src, nil)
	if src.Width > 0 && src.Height > 0 {
		e.scaleX = float64(w) / src.Width
		e.scaleY = float64(h) / src.Height
	}
	return e
}

// ThumbnailSize returns the frame thumbnail dimensions.
func (e *EntropyEvaluator) ThumbnailSize() (w, h int) {
	return e.thumbW, e.thumbH
}

// Luminance returns the downsampled grayscale copy of the source image.
func (e *EntropyEvaluator) Luminance() *image.Gray {
	return e.lum
}

// EvaluatePath returns the mean of the normalized entropies of the interior
// frames and the squared normalized entropies of consecutive-frame
// differences. A flat image scores 0.
func (e *EntropyEvaluator) EvaluatePath(path CameraPath) float64 {
	for k := range e.frames {
		e.renderFrame(path.At(float64(k)/float64(entropyFrames-1)), e.frames[k])
	}

	var sum float64
	terms := 0
	for k := 1; k < entropyFrames-1; k++ {
		e.clearHist()
		for _, q := range e.frames[k] {
			e.hist[q]++
		}
		sum += normalizedEntropy(e.hist[:])
		terms++
	}
	for k := 0; k < entropyFrames-1; k++ {
		e.clearHist()
		a, b := e.frames[k], e.frames[k+1]
		for i := range a {
			d := int(a[i]) - int(b[i])
			if d < 0 {
				d = -d
			}
			e.hist[d]++
		}
		h := normalizedEntropy(e.hist[:])
		sum += h * h
		terms++
	}
	return sum / float64(terms)
}

// renderFrame samples the luminance copy at every thumbnail pixel for state s
// and stores 4-bit levels in dst.
func (e *EntropyEvaluator) renderFrame(s CameraState, dst []uint8) {
	inv := s.InverseViewMatrix()
	b := e.lum.Bounds()
	stepX := e.viewport.Width / float64(e.thumbW)
	stepY := e.viewport.Height / float64(e.thumbH)
	for ty := 0; ty < e.thumbH; ty++ {
		vy := (float64(ty)+0.5)*stepY - e.viewport.Height/2
		for tx := 0; tx < e.thumbW; tx++ {
			vx := (float64(tx)+0.5)*stepX - e.viewport.Width/2
			px, py := transformPoint(inv, vx, vy)
			lx := clampInt(int(math.Floor(px*e.scaleX)), b.Min.X, b.Max.X-1)
			ly := clampInt(int(math.Floor(py*e.scaleY)), b.Min.Y, b.Max.Y-1)
			dst[ty*e.thumbW+tx] = e.lum.Pix[e.lum.PixOffset(lx, ly)] >> 4
		}
	}
}

func (e *EntropyEvaluator) clearHist() {
	for i := range e.hist {
		e.hist[i] = 0
	}
}

// normalizedEntropy turns a histogram into a probability distribution in
// place and returns its Shannon entropy divided by ln(binCount).
func normalizedEntropy(hist []float64) float64 {
	total := floats.Sum(hist)
	if total == 0 {
		return 0
	}
	floats.Scale(1/total, hist)
	return stat.Entropy(hist) / logLevels
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
