package kenburns

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// hudRefresh is how often the HUD text is redrawn.
const hudRefresh = 500 * time.Millisecond

// hud is the debug overlay showing frame rates and scheduler status.
type hud struct {
	img     *ebiten.Image
	elapsed time.Duration
	text    string
	dirty   bool
}

func newHUD() *hud {
	return &hud{elapsed: hudRefresh}
}

// update refreshes the text about twice a second.
func (h *hud) update(dt time.Duration, st Status) {
	h.elapsed += dt
	if h.elapsed < hudRefresh {
		return
	}
	h.elapsed = 0
	h.text = hudText(ebiten.ActualFPS(), ebiten.ActualTPS(), st)
	h.dirty = true
}

func hudText(fps, tps float64, st Status) string {
	search := "idle"
	switch {
	case st.Searching:
		search = "searching"
	case st.Idle:
		search = "stalled"
	}
	return fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nshow: %s (%s)\nshown: %d\nscore: %.3f\nshot: %v",
		fps, tps, st.State, search, st.Shown, st.LastScore, st.LastDuration.Round(100*time.Millisecond))
}

func (h *hud) draw(screen *ebiten.Image) {
	if h.text == "" {
		return
	}
	if h.img == nil {
		// Six lines of the debug font.
		h.img = ebiten.NewImage(180, 96)
	}
	if h.dirty {
		h.img.Clear()
		// Semi-transparent background for readability
		h.img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(h.img, h.text)
		h.dirty = false
	}
	screen.DrawImage(h.img, nil)
}
