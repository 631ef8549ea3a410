package kenburns

import (
	"context"
	"image"
	"math/rand/v2"
)

const (
	// DefaultPlannerTrials is the number of candidates scored per plan.
	DefaultPlannerTrials = 10
	// DefaultAcceptProbability is the chance that a strictly better candidate
	// replaces the retained one.
	DefaultAcceptProbability = 0.8
)

// GeneratorFactory builds the path generator for one image.
type GeneratorFactory func(img image.Image, viewport Size, rng *rand.Rand) PathGenerator

// EvaluatorFactory builds the path evaluator for one image.
type EvaluatorFactory func(img image.Image, viewport Size) PathEvaluator

// PlannedPath is a path together with the score that selected it.
type PlannedPath struct {
	Path  CameraPath
	Score float64
}

// PathPlanner picks the best of a small number of random candidates.
type PathPlanner struct {
	Generator PathGenerator
	Evaluator PathEvaluator
	// Trials is the number of candidates per Plan call.
	Trials int
	// AcceptProbability is the chance a strictly better candidate replaces
	// the retained best.
	AcceptProbability float64

	rng *rand.Rand
}

// NewPathPlanner creates a planner with the default trial count and
// acceptance probability.
func NewPathPlanner(gen PathGenerator, eval PathEvaluator, rng *rand.Rand) *PathPlanner {
	return &PathPlanner{
		Generator:         gen,
		Evaluator:         eval,
		Trials:            DefaultPlannerTrials,
		AcceptProbability: DefaultAcceptProbability,
		rng:               rng,
	}
}

// Plan scores Trials candidates and returns the retained best. The first
// non-negative candidate is always retained; afterwards a strictly higher
// score replaces it with probability AcceptProbability. ok is false when
// every candidate was rejected or ctx was cancelled.
func (p *PathPlanner) Plan(ctx context.Context) (best PlannedPath, ok bool) {
	for i := 0; i < p.Trials; i++ {
		if ctx.Err() != nil {
			return PlannedPath{}, false
		}
		path := p.Generator.GeneratePath()
		score := p.Evaluator.EvaluatePath(path)
		if score < 0 {
			continue
		}
		if !ok {
			best, ok = PlannedPath{Path: path, Score: score}, true
			continue
		}
		if score > best.Score && p.rng.Float64() < p.AcceptProbability {
			best = PlannedPath{Path: path, Score: score}
		}
	}
	return best, ok
}
