package texticles

import (
	"fmt"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// RunConfig holds optional parameters for Run.
type RunConfig struct {
	// Title sets the window title.
	Title string
	// Width and Height set the initial window size in device-independent
	// pixels.
	Width, Height int
	// ShowFPS and ShowCount enable the FPS and particle-count overlays.
	ShowFPS   bool
	ShowCount bool
	// Fullscreen starts the window fullscreen.
	Fullscreen bool
}

const (
	densityStep = 0.5
	sizeStep    = 0.2
)

// Game adapts a Simulation to ebiten.Game. Update commits input and
// integrates; Draw renders; Layout tracks the surface size and the capped
// device-pixel ratio.
type Game struct {
	sim    *Simulation
	hud    *HUD
	canvas EbitenCanvas
	scale  float64

	clock     func() time.Time
	lastFrame time.Time

	cursorX, cursorY int
	cursorIn         bool
	touchIDs         []ebiten.TouchID
}

// NewGame wraps sim for ebiten.RunGame.
func NewGame(sim *Simulation, cfg RunConfig) *Game {
	return &Game{
		sim:   sim,
		hud:   NewHUD(cfg.ShowFPS, cfg.ShowCount),
		scale: 1,
		clock: time.Now,
	}
}

// Run creates a window and runs sim until the window is closed.
func Run(sim *Simulation, cfg RunConfig) error {
	if cfg.Title == "" {
		cfg.Title = "texticles"
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		s := sim.Surface()
		cfg.Width, cfg.Height = s.X, s.Y
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(cfg.Fullscreen)
	// One Update per displayed frame, like a per-refresh callback.
	ebiten.SetTPS(ebiten.SyncWithFPS)

	if err := ebiten.RunGame(NewGame(sim, cfg)); err != nil {
		return fmt.Errorf("texticles: run: %w", err)
	}
	return nil
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	now := g.clock()
	dt := float32(1.0 / 60)
	if !g.lastFrame.IsZero() {
		dt = float32(now.Sub(g.lastFrame).Seconds())
	}
	g.lastFrame = now

	g.handleKeys()
	g.handlePointer()
	g.sim.Step(now)
	g.hud.Update(g.sim.Stats(), dt)
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.canvas.Target = screen
	g.canvas.Scale = g.scale
	g.sim.Render(&g.canvas)
	g.hud.Draw(screen)
}

// Layout implements ebiten.Game. The screen is oversampled by the device
// scale factor, capped at DPRLimit; the simulation works in the outside size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := 1.0
	if m := ebiten.Monitor(); m != nil {
		scale = math.Min(m.DeviceScaleFactor(), DPRLimit)
	}
	if scale <= 0 {
		scale = 1
	}
	g.scale = scale
	g.sim.Resize(outsideWidth, outsideHeight, g.clock())
	return int(float64(outsideWidth) * scale), int(float64(outsideHeight) * scale)
}

// handlePointer feeds cursor or first-touch positions to the simulation.
// Ebitengine reports no leave event, so leaving the surface or losing focus
// is detected here.
func (g *Game) handlePointer() {
	g.touchIDs = ebiten.AppendTouchIDs(g.touchIDs[:0])
	var x, y int
	if len(g.touchIDs) > 0 {
		x, y = ebiten.TouchPosition(g.touchIDs[0])
	} else {
		x, y = ebiten.CursorPosition()
	}

	surface := g.sim.Surface()
	sx, sy := float64(x)/g.scale, float64(y)/g.scale
	bounds := Rect{Width: float64(surface.X), Height: float64(surface.Y)}
	inside := ebiten.IsFocused() && bounds.Contains(sx, sy)

	switch {
	case !inside:
		if g.cursorIn {
			g.sim.PointerLeave()
		}
	case !g.cursorIn || x != g.cursorX || y != g.cursorY:
		g.sim.PointerMove(sx, sy)
	}
	g.cursorIn = inside
	g.cursorX, g.cursorY = x, y
}

// handleKeys maps keyboard shortcuts to simulation controls.
func (g *Game) handleKeys() {
	s := g.sim.Settings()
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.sim.Scatter()
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		g.setMode(cycle(s.Mode, modeCount, 1))
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		g.setMode(cycle(s.Mode, modeCount, -1))
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		g.setPalette(cycle(s.Palette, paletteCount, 1))
	case inpututil.IsKeyJustPressed(ebiten.KeyO):
		g.setPalette(cycle(s.Palette, paletteCount, -1))
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		g.setDensity(s.Density + densityStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		g.setDensity(s.Density - densityStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual), inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd):
		g.sim.SetSize(s.Size + sizeStep)
		g.hud.Notify(fmt.Sprintf("size: %.1f", g.sim.Settings().Size))
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus), inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract):
		g.sim.SetSize(s.Size - sizeStep)
		g.hud.Notify(fmt.Sprintf("size: %.1f", g.sim.Settings().Size))
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		on := !g.hud.ShowFPS
		g.hud.ShowFPS, g.hud.ShowCount = on, on
	}
}

func (g *Game) setMode(m Mode) {
	g.sim.SetMode(m)
	g.hud.Notify("mode: " + m.String())
}

func (g *Game) setPalette(p Palette) {
	if err := g.sim.SetPalette(p); err != nil {
		logf("%v", err)
	}
	g.hud.Notify("palette: " + p.String())
}

func (g *Game) setDensity(d float64) {
	if err := g.sim.SetDensity(d); err != nil {
		logf("%v", err)
	}
	g.hud.Notify(fmt.Sprintf("density: %.1f (%d particles)", g.sim.Settings().Density, g.sim.ParticleCount()))
}

// cycle steps v by delta through [0, n), wrapping at both ends.
func cycle[T ~uint8](v T, n T, delta int) T {
	return T((int(v) + delta + int(n)) % int(n))
}
