package kenburns

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Reject is the score evaluators return to veto a path outright.
const Reject = -1.0

// PathEvaluator scores a path. Scores lie in [0, 1], higher is better; a
// negative score rejects the path.
type PathEvaluator interface {
	EvaluatePath(path CameraPath) float64
}

// EvaluatorFunc adapts a plain function to PathEvaluator.
type EvaluatorFunc func(path CameraPath) float64

// EvaluatePath calls f(path).
func (f EvaluatorFunc) EvaluatePath(path CameraPath) float64 {
	return f(path)
}

// InsidenessEvaluator rejects paths that would show pixels outside the image.
type InsidenessEvaluator struct{}

// EvaluatePath returns 1 for paths that stay inside the image and Reject otherwise.
func (InsidenessEvaluator) EvaluatePath(path CameraPath) float64 {
	if path.StaysInsideImage {
		return 1
	}
	return Reject
}

// DistanceEvaluator favours long moves and rejects moves too short to read as
// intentional.
type DistanceEvaluator struct {
	imageSize Size
	viewport  Size
	floor     float64
}

// DefaultDistanceFloorFactor scales (viewport width + height) into the
// shortest acceptable view-space travel.
const DefaultDistanceFloorFactor = 0.2

// NewDistanceEvaluator creates a DistanceEvaluator whose floor is
// floorFactor * (viewport.Width + viewport.Height).
func NewDistanceEvaluator(imageSize, viewport Size, floorFactor float64) *DistanceEvaluator {
	return &DistanceEvaluator{
		imageSize: imageSize,
		viewport:  viewport,
		floor:     floorFactor * (viewport.Width + viewport.Height),
	}
}

// Floor returns the minimum view-space distance a path must travel.
func (e *DistanceEvaluator) Floor() float64 {
	return e.floor
}

// EvaluatePath normalizes the view-space distance between the floor and the
// diagonal of the pannable extent at the path's average zoom.
func (e *DistanceEvaluator) EvaluatePath(path CameraPath) float64 {
	d := path.DistanceInViewSpace()
	if d < e.floor {
		return Reject
	}
	z := path.AverageZoom()
	maxDist := math.Hypot(
		math.Max(0, z*e.imageSize.Width-e.viewport.Width),
		math.Max(0, z*e.imageSize.Height-e.viewport.Height),
	)
	if maxDist <= e.floor {
		return 1
	}
	return math.Min(1, (d-e.floor)/(maxDist-e.floor))
}

// AngleEvaluator prefers moves that run along or across the rotated
// viewport's axes over diagonal ones.
type AngleEvaluator struct{}

// EvaluatePath scores the angle θ between the translation and the viewport's
// horizontal axis as (2*max(t, 1-t) - 1)^3 with t = acos(|cos θ|)/π*2,
// computed through atan2 so moves exactly along an axis score exactly 1.
// Unrotated paths score 1.
func (AngleEvaluator) EvaluatePath(path CameraPath) float64 {
	angle := path.AverageAngle()
	if angle == 0 {
		return 1
	}
	d := path.Translation()
	length := d.Len()
	if length == 0 {
		return 0
	}
	sin, cos := math.Sincos(angle)
	// Components along the rotated x-axis (cos a, -sin a) and its normal.
	along := d.X*cos - d.Y*sin
	across := d.X*sin + d.Y*cos
	t := math.Atan2(math.Abs(across), math.Abs(along)) / (math.Pi / 2)
	return math.Pow(2*math.Max(t, 1-t)-1, 3)
}

// WeightedScorePathEvaluator combines several evaluators into a weighted
// mean. Evaluation stops at the first negative score, which is returned
// unchanged; later evaluators are not consulted.
//
// EvaluatePath is safe for concurrent use when every added evaluator is.
// Add must not run concurrently with EvaluatePath.
type WeightedScorePathEvaluator struct {
	evaluators []PathEvaluator
	weights    []float64
}

// NewWeightedScorePathEvaluator creates an empty composite evaluator.
func NewWeightedScorePathEvaluator() *WeightedScorePathEvaluator {
	return &WeightedScorePathEvaluator{}
}

// Add appends an evaluator with the given weight and returns the receiver
// for chaining. A zero weight makes the evaluator veto-only.
//
// Add panics on a negative or NaN weight. Callers taking weights from user
// input validate them first; Config.SetWeights and Config.Validate return
// ErrInvalidConfig for the weights used by NewDefaultEvaluator.
func (w *WeightedScorePathEvaluator) Add(e PathEvaluator, weight float64) *WeightedScorePathEvaluator {
	if weight < 0 || math.IsNaN(weight) {
		panic("kenburns: evaluator weight must be >= 0")
	}
	w.evaluators = append(w.evaluators, e)
	w.weights = append(w.weights, weight)
	return w
}

// Len returns the number of evaluators.
func (w *WeightedScorePathEvaluator) Len() int {
	return len(w.evaluators)
}

// EvaluatePath returns Σ(weight*score) / Σ(weight), or the first negative
// score encountered. A zero total weight yields 0.
func (w *WeightedScorePathEvaluator) EvaluatePath(path CameraPath) float64 {
	scores := make([]float64, len(w.evaluators))
	for i, e := range w.evaluators {
		s := e.EvaluatePath(path)
		if s < 0 {
			return s
		}
		scores[i] = s
	}
	total := floats.Sum(w.weights)
	if total == 0 {
		return 0
	}
	return floats.Dot(w.weights, scores) / total
}
