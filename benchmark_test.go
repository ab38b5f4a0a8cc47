package texticles

import (
	"testing"
	"time"
)

func benchPool(b *testing.B, n int) *Pool {
	b.Helper()
	p := NewPool(1280, 720, 1.6)
	p.Rebuild(gridRaster(n*DensityNormalization), 1, false)
	if p.Len() != n {
		b.Fatalf("pool size = %d, want %d", p.Len(), n)
	}
	return p
}

func BenchmarkIntegrate_25000(b *testing.B) {
	p := benchPool(b, MaxParticles)
	s := Step{DT: 1, Speed: 1, Pointer: AbsentPointer()}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Integrate(p.Particles(), s)
	}
}

func BenchmarkIntegrate_25000_Pointer(b *testing.B) {
	for _, m := range []Mode{ModeRepel, ModeGravity, ModeChaos} {
		b.Run(m.String(), func(b *testing.B) {
			p := benchPool(b, MaxParticles)
			s := Step{DT: 1, Speed: 1, Strength: 1, Mode: m, Pointer: PointerState{Pos: Vec2{200, 40}}}
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				s.Millis = float64(i) * 16.666
				Integrate(p.Particles(), s)
			}
		})
	}
}

func BenchmarkRendererDraw_25000(b *testing.B) {
	p := benchPool(b, MaxParticles)
	r := NewRenderer()
	c := &recordingCanvas{}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.circles, c.lines = c.circles[:0], c.lines[:0]
		r.Draw(c, p.Particles(), PaletteLava, float64(i))
	}
}

func BenchmarkImageCanvas_5000(b *testing.B) {
	p := benchPool(b, 5000)
	p.Scatter()
	c := NewImageCanvas(1280, 720, DefaultBackground)
	r := NewRenderer()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Clear()
		r.Draw(c, p.Particles(), PaletteGradient, 0)
	}
}

func BenchmarkRasterize(b *testing.B) {
	rz, err := NewRasterizer(RasterizerConfig{})
	if err != nil {
		b.Fatal(err)
	}
	for _, tc := range []struct {
		name  string
		color bool
	}{{"plain", false}, {"color", true}} {
		b.Run(tc.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := rz.Rasterize("Hello\nWorld", 1280, 720, tc.color); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkSimulationStep(b *testing.B) {
	sim, err := New(1280, 720, WithSettings(Settings{Text: "Hello", Density: 20, Size: 1, Speed: 1, Strength: 1, Mode: ModeSwirl}))
	if err != nil {
		b.Fatal(err)
	}
	now := time.Unix(0, 0)
	sim.PointerMove(640, 360)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		now = now.Add(time.Second / 60)
		sim.Step(now)
	}
}
