package kenburns

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Show is the top-level object that owns the surface, the curtain and the
// scheduler. It implements ebiten.Game, so it can be run directly with
// ebiten.RunGame or through Run.
type Show struct {
	// ClearColor fills the screen behind the image. Rotated or zoomed-out
	// frames can reveal it.
	ClearColor Color
	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string

	cfg       Config
	surface   *Surface
	overlay   *FadeOverlay
	scheduler *ShowScheduler
	clock     func() time.Time
	lastTick  time.Time

	hud             *hud
	updateFunc      func() error
	screenshotQueue []string
	testRunner      *TestRunner
}

// NewShow validates cfg and assembles a show over source.
func NewShow(cfg Config, source ImageSource) (*Show, error) {
	surface := NewSurface(cfg.Viewport, nil)
	overlay := NewFadeOverlay()
	sched, err := NewShowScheduler(cfg, source, surface, overlay)
	if err != nil {
		return nil, err
	}
	return &Show{
		ClearColor:    ColorBlack,
		ScreenshotDir: "screenshots",
		cfg:           cfg,
		surface:       surface,
		overlay:       overlay,
		scheduler:     sched,
		clock:         time.Now,
	}, nil
}

// Scheduler returns the show's scheduler.
func (s *Show) Scheduler() *ShowScheduler { return s.scheduler }

// Surface returns the presentation surface.
func (s *Show) Surface() *Surface { return s.surface }

// Overlay returns the fade curtain.
func (s *Show) Overlay() *FadeOverlay { return s.overlay }

// SetClock replaces the time source of the show, its camera and its
// scheduler. A nil clock restores time.Now.
func (s *Show) SetClock(clock func() time.Time) {
	if clock == nil {
		clock = time.Now
	}
	s.clock = clock
	s.surface.clock = clock
	s.scheduler.SetClock(clock)
}

// SetUpdateFunc registers a callback run at the start of every Update, e.g.
// for keyboard handling. A non-nil error ends the game loop.
func (s *Show) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// SetHUDVisible shows or hides the debug HUD.
func (s *Show) SetHUDVisible(visible bool) {
	if !visible {
		s.hud = nil
		return
	}
	if s.hud == nil {
		s.hud = newHUD()
	}
}

// Update advances the camera, the curtain and the scheduler by one tick.
func (s *Show) Update() error {
	now := s.clock()
	var dt time.Duration
	if !s.lastTick.IsZero() {
		dt = now.Sub(s.lastTick)
	}
	s.lastTick = now

	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	if s.updateFunc != nil {
		if err := s.updateFunc(); err != nil {
			return err
		}
	}

	s.surface.Update()
	s.overlay.Update(float32(dt.Seconds()))
	s.scheduler.Update()

	if s.hud != nil {
		s.hud.update(dt, s.scheduler.Status())
	}
	return nil
}

// Draw renders the image through the camera, then the curtain on top.
func (s *Show) Draw(screen *ebiten.Image) {
	screen.Fill(s.ClearColor.toRGBA())
	s.surface.Draw(screen)
	s.overlay.Draw(screen)
	if s.hud != nil {
		s.hud.draw(screen)
	}
	s.flushScreenshots(screen)
}

// Layout returns the viewport size; ebiten scales it to the window.
func (s *Show) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(s.cfg.Viewport.Width), int(s.cfg.Viewport.Height)
}

// RunConfig configures the window created by Run.
type RunConfig struct {
	Title      string
	Resizable  bool
	Fullscreen bool
	ShowHUD    bool
}

// Run opens a window sized to the viewport, starts the show and blocks until
// the window closes.
func Run(show *Show, cfg RunConfig) error {
	defer show.scheduler.Close()

	ebiten.SetWindowSize(int(show.cfg.Viewport.Width), int(show.cfg.Viewport.Height))
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetTPS(show.cfg.TickRate)
	ebiten.SetFullscreen(cfg.Fullscreen)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	show.SetHUDVisible(cfg.ShowHUD)
	show.scheduler.StartAnimating()
	return ebiten.RunGame(show)
}

var _ ebiten.Game = (*Show)(nil)
