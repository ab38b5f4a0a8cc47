package texticles

import (
	"fmt"
	"image/color"

	"github.com/charmbracelet/harmonica"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	toastDuration = 1.5 // seconds
	hudMargin     = 8
	hudLine       = 16
)

// HUD draws the FPS and particle-count overlays and a short-lived toast
// naming the most recent mode or palette change.
type HUD struct {
	ShowFPS   bool
	ShowCount bool

	spring harmonica.Spring
	fps    float64
	fpsVel float64
	count  int

	toast      string
	toastTween *gween.Tween
	toastAlpha float32
	toastImg   *ebiten.Image
}

// NewHUD creates a HUD. The displayed frame rate follows the measured one
// through a critically damped spring so the readout does not jump.
func NewHUD(showFPS, showCount bool) *HUD {
	return &HUD{
		ShowFPS:   showFPS,
		ShowCount: showCount,
		spring:    harmonica.NewSpring(harmonica.FPS(60), 4.0, 1.0),
		fps:       60,
	}
}

// Notify shows msg and fades it out.
func (h *HUD) Notify(msg string) {
	h.toast = msg
	h.toastAlpha = 1
	h.toastTween = gween.New(1, 0, toastDuration, ease.InQuad)
}

// Toast returns the current toast text and its opacity.
func (h *HUD) Toast() (string, float32) {
	return h.toast, h.toastAlpha
}

// DisplayedFPS returns the smoothed frame rate shown on screen.
func (h *HUD) DisplayedFPS() float64 {
	return h.fps
}

// Update advances the smoothing spring and the toast fade by dt seconds.
func (h *HUD) Update(stats Stats, dt float32) {
	h.fps, h.fpsVel = h.spring.Update(h.fps, h.fpsVel, stats.FPS)
	h.count = stats.Particles

	if h.toastTween == nil {
		return
	}
	alpha, done := h.toastTween.Update(dt)
	h.toastAlpha = alpha
	if done {
		h.toastTween = nil
		h.toast = ""
		h.toastAlpha = 0
	}
}

// Draw renders the overlays on top of screen.
func (h *HUD) Draw(screen *ebiten.Image) {
	y := hudMargin
	if h.ShowFPS {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.0f", h.fps), hudMargin, y)
		y += hudLine
	}
	if h.ShowCount {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Particles: %d", h.count), hudMargin, y)
	}

	if h.toast == "" || h.toastAlpha <= 0 {
		return
	}
	if h.toastImg == nil {
		h.toastImg = ebiten.NewImage(240, hudLine+4)
	}
	h.toastImg.Clear()
	h.toastImg.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrintAt(h.toastImg, h.toast, 4, 2)

	b := screen.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(b.Dx()-240-hudMargin), float64(b.Dy()-hudLine-4-hudMargin))
	op.ColorScale.ScaleAlpha(h.toastAlpha)
	screen.DrawImage(h.toastImg, op)
}
