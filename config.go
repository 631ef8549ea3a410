package kenburns

import (
	"errors"
	"fmt"
	"image"
	"math"
	"math/rand/v2"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig indicates an invalid slideshow configuration value.
var ErrInvalidConfig = errors.New("kenburns: invalid configuration")

// Weights are the per-evaluator weights of the default composite evaluator.
// A zero weight keeps the evaluator's veto without letting it score.
type Weights struct {
	Insideness float64 `yaml:"insideness"`
	Distance   float64 `yaml:"distance"`
	Angle      float64 `yaml:"angle"`
	Entropy    float64 `yaml:"entropy"`
}

// Config holds every tunable of the slideshow. Use DefaultConfig and the
// Set methods, which validate their input and return an error wrapping
// ErrInvalidConfig instead of clamping. Configs loaded from YAML are
// validated as a whole by LoadConfig.
type Config struct {
	Viewport  Size             `yaml:"viewport"`
	Generator GeneratorOptions `yaml:"generator"`
	Weights   Weights          `yaml:"weights"`

	// SlidingVelocity is the on-screen pan speed in pixels per second.
	SlidingVelocity float64       `yaml:"sliding_velocity"`
	MinDisplayTime  time.Duration `yaml:"min_display_time"`
	MaxDisplayTime  time.Duration `yaml:"max_display_time"`
	FadeInTime      time.Duration `yaml:"fade_in_time"`
	FadeOutTime     time.Duration `yaml:"fade_out_time"`
	InterImageDelay time.Duration `yaml:"inter_image_delay"`

	// AttemptsPerImage is how many plans are tried on one image before
	// moving on to the next.
	AttemptsPerImage int `yaml:"attempts_per_image"`
	// TickRate is the number of ticks per second of the animation loop.
	TickRate int `yaml:"tick_rate"`

	PlannerTrials       int     `yaml:"planner_trials"`
	AcceptProbability   float64 `yaml:"accept_probability"`
	DistanceFloorFactor float64 `yaml:"distance_floor_factor"`
	ThumbnailPixels     int     `yaml:"thumbnail_pixels"`
}

// DefaultConfig returns the standard slideshow settings.
func DefaultConfig() Config {
	return Config{
		Viewport: Size{Width: 800, Height: 600},
		Generator: GeneratorOptions{
			AngleRange:     Range{Min: -40, Max: 40},
			AngleStep:      10,
			FavorZeroAngle: 0.3,
			ZoomRatio:      2,
			FavorUnityZoom: 0.3,
		},
		Weights: Weights{
			Insideness: 0,
			Distance:   0.3,
			Angle:      0.2,
			Entropy:    0.5,
		},
		SlidingVelocity:     40,
		MinDisplayTime:      12 * time.Second,
		MaxDisplayTime:      16 * time.Second,
		FadeInTime:          2 * time.Second,
		FadeOutTime:         2 * time.Second,
		InterImageDelay:     time.Second,
		AttemptsPerImage:    3,
		TickRate:            60,
		PlannerTrials:       DefaultPlannerTrials,
		AcceptProbability:   DefaultAcceptProbability,
		DistanceFloorFactor: DefaultDistanceFloorFactor,
		ThumbnailPixels:     DefaultThumbnailPixels,
	}
}

// LoadConfig parses YAML over DefaultConfig and validates the result.
// Durations are written as Go duration strings, e.g. "12s" or "1500ms".
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("kenburns: unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfigFile reads and parses a YAML config file.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("kenburns: load %s: %w", path, err)
	}
	return LoadConfig(data)
}

// Marshal encodes the config as YAML.
func (c Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("kenburns: marshal config: %w", err)
	}
	return data, nil
}

// Validate checks every field.
func (c Config) Validate() error {
	checks := []error{
		checkViewport(c.Viewport.Width, c.Viewport.Height),
		checkZoomRatio(c.Generator.ZoomRatio),
		checkAngles(c.Generator.AngleRange, c.Generator.AngleStep),
		checkProbability("favor zero angle", c.Generator.FavorZeroAngle),
		checkProbability("favor unity zoom", c.Generator.FavorUnityZoom),
		checkWeights(c.Weights),
		checkPositive("sliding velocity", c.SlidingVelocity),
		checkDisplayTimes(c.MinDisplayTime, c.MaxDisplayTime),
		checkNonNegativeDuration("fade-in time", c.FadeInTime),
		checkNonNegativeDuration("fade-out time", c.FadeOutTime),
		checkNonNegativeDuration("inter-image delay", c.InterImageDelay),
		checkPositiveInt("attempts per image", c.AttemptsPerImage),
		checkPositiveInt("tick rate", c.TickRate),
		checkPositiveInt("planner trials", c.PlannerTrials),
		checkProbability("accept probability", c.AcceptProbability),
		checkNonNegative("distance floor factor", c.DistanceFloorFactor),
		checkPositiveInt("thumbnail pixels", c.ThumbnailPixels),
	}
	return errors.Join(checks...)
}

// SetViewport sets the viewport size in pixels.
func (c *Config) SetViewport(width, height float64) error {
	if err := checkViewport(width, height); err != nil {
		return err
	}
	c.Viewport = Size{Width: width, Height: height}
	return nil
}

// SetZoomRatio sets maxZoom/minZoom. The ratio must be at least 1.
func (c *Config) SetZoomRatio(ratio float64) error {
	if err := checkZoomRatio(ratio); err != nil {
		return err
	}
	c.Generator.ZoomRatio = ratio
	return nil
}

// SetAngleRange sets the permitted rotation range and quantization step, in degrees.
func (c *Config) SetAngleRange(r Range, step float64) error {
	if err := checkAngles(r, step); err != nil {
		return err
	}
	c.Generator.AngleRange = r
	c.Generator.AngleStep = step
	return nil
}

// SetFavorProbabilities sets the chance of drawing 0° and zoom 1.0 outright.
func (c *Config) SetFavorProbabilities(zeroAngle, unityZoom float64) error {
	if err := errors.Join(
		checkProbability("favor zero angle", zeroAngle),
		checkProbability("favor unity zoom", unityZoom),
	); err != nil {
		return err
	}
	c.Generator.FavorZeroAngle = zeroAngle
	c.Generator.FavorUnityZoom = unityZoom
	return nil
}

// SetWeights sets the default composite evaluator weights.
func (c *Config) SetWeights(w Weights) error {
	if err := checkWeights(w); err != nil {
		return err
	}
	c.Weights = w
	return nil
}

// SetSlidingVelocity sets the pan speed in pixels per second.
func (c *Config) SetSlidingVelocity(v float64) error {
	if err := checkPositive("sliding velocity", v); err != nil {
		return err
	}
	c.SlidingVelocity = v
	return nil
}

// SetDisplayTimes sets the shortest and longest time one image stays on screen.
func (c *Config) SetDisplayTimes(minTime, maxTime time.Duration) error {
	if err := checkDisplayTimes(minTime, maxTime); err != nil {
		return err
	}
	c.MinDisplayTime = minTime
	c.MaxDisplayTime = maxTime
	return nil
}

// SetFadeTimes sets the fade-in and fade-out durations.
func (c *Config) SetFadeTimes(fadeIn, fadeOut time.Duration) error {
	if err := errors.Join(
		checkNonNegativeDuration("fade-in time", fadeIn),
		checkNonNegativeDuration("fade-out time", fadeOut),
	); err != nil {
		return err
	}
	c.FadeInTime = fadeIn
	c.FadeOutTime = fadeOut
	return nil
}

// SetInterImageDelay sets the minimum pause between two images.
func (c *Config) SetInterImageDelay(d time.Duration) error {
	if err := checkNonNegativeDuration("inter-image delay", d); err != nil {
		return err
	}
	c.InterImageDelay = d
	return nil
}

// SetAttemptsPerImage sets how many plans are tried per image.
func (c *Config) SetAttemptsPerImage(n int) error {
	if err := checkPositiveInt("attempts per image", n); err != nil {
		return err
	}
	c.AttemptsPerImage = n
	return nil
}

// SetTickRate sets the animation ticks per second.
func (c *Config) SetTickRate(tps int) error {
	if err := checkPositiveInt("tick rate", tps); err != nil {
		return err
	}
	c.TickRate = tps
	return nil
}

// DisplayDuration returns how long path is shown: the time it takes to travel
// at SlidingVelocity, clamped to [MinDisplayTime, MaxDisplayTime].
func (c Config) DisplayDuration(path CameraPath) time.Duration {
	secs := path.DistanceInViewSpace() / c.SlidingVelocity
	d := time.Duration(math.Min(secs*float64(time.Second), float64(math.MaxInt64)))
	return min(max(d, c.MinDisplayTime), c.MaxDisplayTime)
}

// GeneratorFactory returns a factory for RandomPathGenerators using these settings.
func (c Config) GeneratorFactory() GeneratorFactory {
	opts := c.Generator
	return func(img image.Image, viewport Size, rng *rand.Rand) PathGenerator {
		return NewRandomPathGenerator(SizeOf(img), viewport, opts, rng)
	}
}

// EvaluatorFactory returns a factory for the default weighted evaluator:
// insideness, distance, angle and entropy.
func (c Config) EvaluatorFactory() EvaluatorFactory {
	return func(img image.Image, viewport Size) PathEvaluator {
		return c.NewDefaultEvaluator(img, viewport)
	}
}

// NewDefaultEvaluator combines the insideness, distance, angle and entropy
// evaluators for img with the configured weights.
func (c Config) NewDefaultEvaluator(img image.Image, viewport Size) *WeightedScorePathEvaluator {
	w := c.Weights
	return NewWeightedScorePathEvaluator().
		Add(InsidenessEvaluator{}, w.Insideness).
		Add(NewDistanceEvaluator(SizeOf(img), viewport, c.DistanceFloorFactor), w.Distance).
		Add(AngleEvaluator{}, w.Angle).
		Add(NewEntropyEvaluator(img, viewport, c.ThumbnailPixels), w.Entropy)
}

func checkViewport(width, height float64) error {
	if !(width > 0 && height > 0) || math.IsInf(width, 0) || math.IsInf(height, 0) {
		return fmt.Errorf("%w: viewport must be positive, got %vx%v", ErrInvalidConfig, width, height)
	}
	return nil
}

func checkZoomRatio(ratio float64) error {
	if !(ratio >= 1) || math.IsInf(ratio, 0) {
		return fmt.Errorf("%w: zoom ratio must be >= 1, got %v", ErrInvalidConfig, ratio)
	}
	return nil
}

func checkAngles(r Range, step float64) error {
	if !(r.Min <= r.Max) {
		return fmt.Errorf("%w: angle range min %v exceeds max %v", ErrInvalidConfig, r.Min, r.Max)
	}
	if !(step >= 0) {
		return fmt.Errorf("%w: angle step must be >= 0, got %v", ErrInvalidConfig, step)
	}
	return nil
}

func checkWeights(w Weights) error {
	return errors.Join(
		checkNonNegative("insideness weight", w.Insideness),
		checkNonNegative("distance weight", w.Distance),
		checkNonNegative("angle weight", w.Angle),
		checkNonNegative("entropy weight", w.Entropy),
	)
}

func checkDisplayTimes(minTime, maxTime time.Duration) error {
	if minTime <= 0 || maxTime <= 0 {
		return fmt.Errorf("%w: display times must be positive, got %v..%v", ErrInvalidConfig, minTime, maxTime)
	}
	if minTime > maxTime {
		return fmt.Errorf("%w: min display time %v exceeds max %v", ErrInvalidConfig, minTime, maxTime)
	}
	return nil
}

func checkPositive(name string, v float64) error {
	if !(v > 0) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidConfig, name, v)
	}
	return nil
}

func checkNonNegative(name string, v float64) error {
	if !(v >= 0) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be >= 0, got %v", ErrInvalidConfig, name, v)
	}
	return nil
}

func checkProbability(name string, p float64) error {
	if !(p >= 0 && p <= 1) {
		return fmt.Errorf("%w: %s must be in [0, 1], got %v", ErrInvalidConfig, name, p)
	}
	return nil
}

func checkPositiveInt(name string, n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidConfig, name, n)
	}
	return nil
}

func checkNonNegativeDuration(name string, d time.Duration) error {
	if d < 0 {
		return fmt.Errorf("%w: %s must be >= 0, got %v", ErrInvalidConfig, name, d)
	}
	return nil
}
