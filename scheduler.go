package kenburns

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math/rand/v2"
	"sync/atomic"
	"time"
)

// ErrNoCandidate is the outcome of a search cycle that used up its attempt
// budget without accepting a path.
var ErrNoCandidate = errors.New("kenburns: no acceptable camera path")

// Presentation is the surface the scheduler drives. *Surface and *Animator
// implement it.
type Presentation interface {
	ChangeImage(img image.Image)
	AnimateTo(target CameraState, d time.Duration)
	MoveTo(target CameraState)
	State() CameraState
	IsAnimating() bool
	SetObserver(o Observer)
}

// Overlay is the curtain that hides cuts between images. *FadeOverlay
// implements it.
type Overlay interface {
	AnimateToFullOpacity(d time.Duration)
	AnimateToFullTranslucency(d time.Duration)
	MakeFullyOpaque()
	IsFullyOpaque() bool
}

// SchedulerState is the lifecycle state of a ShowScheduler.
type SchedulerState uint8

const (
	StateNotStarted SchedulerState = iota // StartAnimating has not been called
	StateRunning                          // images are searched and shown
	StatePaused                           // the camera is frozen
)

func (s SchedulerState) String() string {
	switch s {
	case StateNotStarted:
		return "not-started"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// Status is a snapshot of the scheduler for display and tests.
type Status struct {
	State SchedulerState
	// Searching is true while a background search is in flight.
	Searching bool
	// Idle is true after a cycle failed; StartAnimating retries.
	Idle bool
	// Shown counts the images displayed so far.
	Shown        int
	LastScore    float64
	LastDuration time.Duration
}

// plannedSlide is the single value handed from a search to the tick loop.
// It is published with one atomic store and never modified afterwards.
type plannedSlide struct {
	gen      uint64
	image    image.Image
	planned  PlannedPath
	duration time.Duration
}

// search tracks one background search. err and stats are written before done
// is closed.
type search struct {
	gen    uint64
	cancel context.CancelFunc
	done   chan struct{}
	err    error
	stats  searchStats
}

func (sr *search) finished() bool {
	select {
	case <-sr.done:
		return true
	default:
		return false
	}
}

// ShowScheduler runs the slideshow: it searches camera paths for upcoming
// images in the background and, on the tick loop, shows them on the
// presentation surface with fades in between.
//
// Every method must be called from the tick loop.
type ShowScheduler struct {
	cfg        Config
	source     ImageSource
	surface    Presentation
	overlay    Overlay
	sink       EventSink
	generators GeneratorFactory
	evaluators EvaluatorFactory
	clock      func() time.Time

	ctx    context.Context
	cancel context.CancelFunc

	state   SchedulerState
	gen     uint64
	pending atomic.Pointer[plannedSlide]
	search  *search
	idle    bool

	displaying     bool
	current        *plannedSlide
	notBefore      time.Time
	fadeOutAt      time.Time
	fadeOut        time.Duration
	fadeOutPending bool

	shown int
}

// NewShowScheduler validates cfg and wires the scheduler to its
// collaborators. It registers itself as the surface's observer.
func NewShowScheduler(cfg Config, source ImageSource, surface Presentation, overlay Overlay) (*ShowScheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if source == nil || surface == nil || overlay == nil {
		return nil, fmt.Errorf("kenburns: scheduler needs a source, a surface and an overlay")
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &ShowScheduler{
		cfg:        cfg,
		source:     source,
		surface:    surface,
		overlay:    overlay,
		generators: cfg.GeneratorFactory(),
		evaluators: cfg.EvaluatorFactory(),
		clock:      time.Now,
		ctx:        ctx,
		cancel:     cancel,
	}
	surface.SetObserver(schedulerObserver{s})
	return s, nil
}

// SetClock replaces the time source. A nil clock restores time.Now.
func (s *ShowScheduler) SetClock(clock func() time.Time) {
	if clock == nil {
		clock = time.Now
	}
	s.clock = clock
}

// SetFactories replaces the generator and evaluator factories used for
// subsequent searches. Nil arguments keep the current factory.
func (s *ShowScheduler) SetFactories(gen GeneratorFactory, eval EvaluatorFactory) {
	if gen != nil {
		s.generators = gen
	}
	if eval != nil {
		s.evaluators = eval
	}
}

// SetEventSink sets the optional lifecycle event receiver.
func (s *ShowScheduler) SetEventSink(sink EventSink) {
	s.sink = sink
}

// Config returns the scheduler's configuration.
func (s *ShowScheduler) Config() Config {
	return s.cfg
}

// Status returns a snapshot of the scheduler.
func (s *ShowScheduler) Status() Status {
	st := Status{
		State:     s.state,
		Searching: s.search != nil && !s.search.finished(),
		Idle:      s.idle,
		Shown:     s.shown,
	}
	if s.current != nil {
		st.LastScore = s.current.planned.Score
		st.LastDuration = s.current.duration
	}
	return st
}

// SetImageSource switches to a new source. An in-flight search for the old
// source is cancelled and any result it already published is discarded.
func (s *ShowScheduler) SetImageSource(src ImageSource) {
	s.source = src
	s.gen++
	if s.search != nil {
		s.search.cancel()
		s.search = nil
	}
	s.pending.Store(nil)
	if s.state == StateRunning {
		s.requestNext()
	}
}

// StartAnimating starts the show, resumes it after StopAnimating, or retries
// after a failed cycle.
func (s *ShowScheduler) StartAnimating() {
	switch s.state {
	case StateNotStarted:
		s.state = StateRunning
		s.requestNext()
	case StatePaused:
		s.state = StateRunning
		s.displaying = false
		s.fadeOutPending = false
		s.emit(ShowEvent{Type: EventResumed})
		s.requestNext()
	case StateRunning:
		if s.idle {
			s.requestNext()
		}
	}
}

// StopAnimating pauses a running show and freezes the camera where it is.
// A search already in flight keeps running; its result is used after the
// show resumes.
func (s *ShowScheduler) StopAnimating() {
	if s.state != StateRunning {
		return
	}
	s.state = StatePaused
	s.surface.MoveTo(s.surface.State())
	s.emit(ShowEvent{Type: EventPaused})
}

// Close cancels any search in flight. The scheduler must not be used afterwards.
func (s *ShowScheduler) Close() {
	s.cancel()
	if s.search != nil {
		s.search.cancel()
	}
}

// Update is called once per tick. It collects finished searches and shows
// the next image once it is ready and the inter-image delay has passed.
func (s *ShowScheduler) Update() {
	s.collectSearch()
	if s.state != StateRunning || s.displaying {
		return
	}
	now := s.clock()
	if now.Before(s.notBefore) {
		return
	}
	slide := s.pending.Swap(nil)
	if slide == nil {
		return
	}
	if slide.gen != s.gen {
		// A search cancelled by SetImageSource published after the switch,
		// possibly over the current result.
		s.requestNext()
		return
	}
	s.display(slide, now)
}

// requestNext makes sure a path for the next image is on its way.
func (s *ShowScheduler) requestNext() {
	s.idle = false
	if p := s.pending.Load(); p != nil && p.gen == s.gen {
		return
	}
	if s.search != nil && !s.search.finished() {
		return
	}
	s.startSearch()
}

func (s *ShowScheduler) startSearch() {
	ctx, cancel := context.WithCancel(s.ctx)
	sr := &search{gen: s.gen, cancel: cancel, done: make(chan struct{})}
	s.search = sr

	job := searchJob{
		cfg:        s.cfg,
		source:     s.source,
		generators: s.generators,
		evaluators: s.evaluators,
		rng:        rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	go func() {
		defer close(sr.done)
		defer cancel()
		slide, err := job.run(ctx, &sr.stats)
		if err == nil {
			err = ctx.Err()
		}
		if err != nil {
			sr.err = err
			return
		}
		slide.gen = sr.gen
		s.pending.Store(slide)
	}()
}

// collectSearch reports the outcome of a finished search.
func (s *ShowScheduler) collectSearch() {
	sr := s.search
	if sr == nil || !sr.finished() {
		return
	}
	s.search = nil
	debugLogSearch(sr.stats, sr.err)
	if sr.err == nil || sr.gen != s.gen || errors.Is(sr.err, context.Canceled) {
		return
	}
	s.idle = true
	s.emit(ShowEvent{Type: EventCycleFailed, Err: sr.err})
}

func (s *ShowScheduler) display(slide *plannedSlide, now time.Time) {
	d := slide.duration
	path := slide.planned.Path

	s.current = slide
	s.displaying = true
	s.shown++

	s.surface.ChangeImage(slide.image)
	s.surface.MoveTo(path.Start)
	s.surface.AnimateTo(path.End, d)

	s.overlay.MakeFullyOpaque()
	s.overlay.AnimateToFullTranslucency(min(s.cfg.FadeInTime, d))

	s.fadeOut = max(0, min(s.cfg.FadeOutTime, d-s.cfg.FadeInTime))
	s.fadeOutAt = now.Add(d - s.fadeOut)
	s.fadeOutPending = true
}

func (s *ShowScheduler) stateChanged() {
	if !s.fadeOutPending || s.clock().Before(s.fadeOutAt) {
		return
	}
	s.fadeOutPending = false
	s.overlay.AnimateToFullOpacity(s.fadeOut)
	s.emit(ShowEvent{Type: EventFadeOutStarted, Duration: s.fadeOut})
}

func (s *ShowScheduler) panStopped() {
	s.emitSlide(EventPanStopped, nil)
	if s.state != StateRunning || !s.displaying {
		return
	}
	s.displaying = false
	s.fadeOutPending = false
	s.overlay.MakeFullyOpaque()
	s.notBefore = s.clock().Add(s.cfg.InterImageDelay)
	s.requestNext()
}

func (s *ShowScheduler) emit(ev ShowEvent) {
	if s.sink != nil {
		s.sink.EmitEvent(ev)
	}
}

// emitSlide sends an event describing the slide on screen.
func (s *ShowScheduler) emitSlide(t ShowEventType, img image.Image) {
	if s.sink == nil {
		return
	}
	ev := ShowEvent{Type: t, Image: img}
	if s.current != nil {
		ev.Path = s.current.planned.Path
		ev.Score = s.current.planned.Score
		ev.Duration = s.current.duration
	}
	s.sink.EmitEvent(ev)
}

// schedulerObserver forwards presentation notifications to the scheduler
// without exporting the handlers on ShowScheduler itself.
type schedulerObserver struct {
	s *ShowScheduler
}

func (o schedulerObserver) StateChanged(CameraState)     { o.s.stateChanged() }
func (o schedulerObserver) AnimationStarted()            { o.s.emitSlide(EventPanStarted, nil) }
func (o schedulerObserver) AnimationStopped()            { o.s.panStopped() }
func (o schedulerObserver) ImageChanged(img image.Image) { o.s.emitSlide(EventImageChanged, img) }

// searchJob is the state a background search needs. It is copied out of the
// scheduler when the search starts so the goroutine shares nothing mutable
// with the tick loop.
type searchJob struct {
	cfg        Config
	source     ImageSource
	generators GeneratorFactory
	evaluators EvaluatorFactory
	rng        *rand.Rand
}

// run walks the source until a path is accepted or the budget of
// AttemptsPerImage plans per unique image is spent.
func (j searchJob) run(ctx context.Context, stats *searchStats) (*plannedSlide, error) {
	start := time.Now()
	defer func() { stats.elapsed = time.Since(start) }()

	perImage := j.cfg.AttemptsPerImage
	stats.budget = perImage * j.source.UniqueImageCount()
	attempts := 0
	for attempts < stats.budget {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !j.source.HasNext() {
			return nil, ErrSourceExhausted
		}
		img, err := j.source.Next()
		if err != nil {
			if errors.Is(err, ErrSourceExhausted) {
				return nil, err
			}
			debugLogf("skipping image: %v", err)
			stats.skipped++
			attempts += perImage
			continue
		}
		stats.images++

		planner := NewPathPlanner(j.generators(img, j.cfg.Viewport, j.rng), j.evaluators(img, j.cfg.Viewport), j.rng)
		planner.Trials = j.cfg.PlannerTrials
		planner.AcceptProbability = j.cfg.AcceptProbability

		for i := 0; i < perImage && attempts < stats.budget; i++ {
			attempts++
			stats.plans++
			best, ok := planner.Plan(ctx)
			if !ok {
				continue
			}
			stats.accepted = true
			stats.score = best.Score
			return &plannedSlide{
				image:    img,
				planned:  best,
				duration: j.cfg.DisplayDuration(best.Path),
			}, nil
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return nil, ErrNoCandidate
}
