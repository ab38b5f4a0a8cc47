// Stress drives the particle ceiling: dense multi-line text at maximum
// density, drawn from a hand-written ebiten.Game instead of texticles.Run.
// Frame-rate windows are printed to stdout through a StatsSink.
package main

import (
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/phanxgames/texticles"
)

const (
	screenW = 1280
	screenH = 720
)

type printSink struct{}

func (printSink) EmitStats(s texticles.Stats) {
	fmt.Printf("fps %.0f  particles %d\n", s.FPS, s.Particles)
}

type game struct {
	sim    *texticles.Simulation
	canvas texticles.EbitenCanvas
}

func (g *game) Update() error {
	x, y := ebiten.CursorPosition()
	g.sim.PointerMove(float64(x), float64(y))
	g.sim.Step(time.Now())
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.canvas.Target = screen
	g.sim.Render(&g.canvas)
	ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f  particles: %d", ebiten.ActualFPS(), g.sim.ParticleCount()))
}

func (g *game) Layout(w, h int) (int, int) {
	return screenW, screenH
}

func main() {
	settings := texticles.DefaultSettings()
	settings.Text = "STRESS\nTEST\n25000"
	settings.Density = 20
	settings.Size = 1
	settings.Mode = texticles.ModeNeural
	settings.Palette = texticles.PaletteNeon

	sim, err := texticles.New(screenW, screenH,
		texticles.WithSettings(settings),
		texticles.WithStatsSink(printSink{}),
	)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowTitle("Texticles — Stress")
	ebiten.SetWindowSize(screenW, screenH)
	ebiten.SetTPS(ebiten.SyncWithFPS)
	if err := ebiten.RunGame(&game{sim: sim}); err != nil {
		log.Fatal(err)
	}
}
