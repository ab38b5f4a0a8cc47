package texticles

import (
	"image"
	"math"
	"testing"
	"time"
)

type countingSink struct {
	stats []Stats
}

func (s *countingSink) EmitStats(st Stats) { s.stats = append(s.stats, st) }

func newTestSim(t *testing.T, opts ...Option) *Simulation {
	t.Helper()
	sim, err := New(800, 600, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return sim
}

func TestNewSimulation(t *testing.T) {
	sim := newTestSim(t)
	if sim.Settings() != DefaultSettings() {
		t.Errorf("settings = %+v", sim.Settings())
	}
	if sim.Surface() != image.Pt(800, 600) {
		t.Errorf("surface = %v", sim.Surface())
	}
	want := DesiredCount(len(sim.Raster().Points), DefaultSettings().Density)
	if sim.ParticleCount() != want {
		t.Errorf("particles = %d, want %d", sim.ParticleCount(), want)
	}
	if sim.State() != DriverIdle {
		t.Errorf("state = %v, want idle", sim.State())
	}
	if sim.Pointer().Present() {
		t.Error("pointer present before any move")
	}
}

func TestNewSimulationSanitizes(t *testing.T) {
	sim := newTestSim(t, WithSettings(Settings{Text: "x", Density: math.NaN(), Size: -1, Speed: 99, Strength: 1, Mode: Mode(99)}))
	st := sim.Settings()
	if st.Density != DefaultSettings().Density || st.Size != 0.3 || st.Speed != 10 || st.Mode != ModeNone {
		t.Errorf("settings = %+v", st)
	}
}

func TestNewSimulationBadFont(t *testing.T) {
	if _, err := New(800, 600, WithFont([]byte{1, 2, 3})); err == nil {
		t.Error("expected a font error")
	}
}

func TestSimulationSetText(t *testing.T) {
	sim := newTestSim(t)
	if err := sim.SetText("HI"); err != nil {
		t.Fatal(err)
	}
	hi := sim.ParticleCount()
	if hi != DesiredCount(len(sim.Raster().Points), 4) {
		t.Errorf("particles = %d", hi)
	}

	if err := sim.SetText("   "); err != nil {
		t.Fatal(err)
	}
	if sim.ParticleCount() != MinParticles {
		t.Errorf("blank text particles = %d, want %d", sim.ParticleCount(), MinParticles)
	}
	center := Vec2{400, 300}
	for _, p := range sim.Pool().Particles() {
		if p.Target != center {
			t.Fatalf("blank text target = %v, want %v", p.Target, center)
		}
	}
}

func TestSimulationSetDensity(t *testing.T) {
	sim := newTestSim(t)
	prev := 0
	for _, d := range []float64{0.5, 2, 8, 16} {
		if err := sim.SetDensity(d); err != nil {
			t.Fatal(err)
		}
		if sim.ParticleCount() < prev {
			t.Fatalf("count decreased at density %v", d)
		}
		prev = sim.ParticleCount()
	}
	if err := sim.SetDensity(math.NaN()); err != nil {
		t.Fatal(err)
	}
	if sim.Settings().Density != DefaultSettings().Density {
		t.Errorf("NaN density = %v, want default", sim.Settings().Density)
	}
	if err := sim.SetDensity(-4); err != nil {
		t.Fatal(err)
	}
	if sim.ParticleCount() < MinParticles {
		t.Errorf("negative density produced %d particles", sim.ParticleCount())
	}
}

func TestSimulationSetSize(t *testing.T) {
	sim := newTestSim(t)
	n := sim.ParticleCount()
	sim.SetSize(20)
	sim.SetSize(20)
	if sim.ParticleCount() != n {
		t.Errorf("SetSize changed the pool size")
	}
	for _, p := range sim.Pool().Particles() {
		if p.Size != 20 {
			t.Fatalf("size = %v, want 20", p.Size)
		}
	}
	sim.SetSize(math.NaN())
	if sim.Settings().Size != DefaultSettings().Size {
		t.Errorf("NaN size = %v", sim.Settings().Size)
	}
}

func TestSimulationSetPaletteSamples(t *testing.T) {
	sim := newTestSim(t)
	if sim.Raster().Colors != nil {
		t.Fatal("gradient palette should not sample colors")
	}
	if err := sim.SetPalette(PaletteSample); err != nil {
		t.Fatal(err)
	}
	if sim.Raster().Colors.Len() == 0 {
		t.Fatal("emoji palette should sample colors")
	}
	overrides := 0
	for _, p := range sim.Pool().Particles() {
		if p.HasOverride {
			overrides++
		}
	}
	if overrides == 0 {
		t.Error("no particle picked up a sampled color")
	}
}

func TestSimulationControls(t *testing.T) {
	sim := newTestSim(t)
	sim.SetSpeed(-2)
	sim.SetStrength(3)
	sim.SetMode(ModeGravity)
	st := sim.Settings()
	if st.Speed != 0 || st.Strength != 3 || st.Mode != ModeGravity {
		t.Errorf("settings = %+v", st)
	}
}

func TestSimulationResizeDebounced(t *testing.T) {
	sim := newTestSim(t)
	t0 := time.Unix(100, 0)
	sim.Step(t0)

	sim.Resize(1024, 768, t0)
	sim.Resize(1200, 800, t0.Add(20*time.Millisecond))
	sim.Step(t0.Add(60 * time.Millisecond))
	if sim.Surface() != image.Pt(800, 600) {
		t.Fatalf("surface changed before the debounce: %v", sim.Surface())
	}
	sim.Step(t0.Add(130 * time.Millisecond))
	if sim.Surface() != image.Pt(1200, 800) {
		t.Fatalf("surface = %v, want the last requested size", sim.Surface())
	}
	if sim.Raster().Surface != image.Pt(1200, 800) {
		t.Errorf("raster not rebuilt for the new surface")
	}
}

func TestSimulationResizeSameSizeNoop(t *testing.T) {
	sink := &countingSink{}
	sim := newTestSim(t, WithStatsSink(sink))
	t0 := time.Unix(100, 0)
	sim.Resize(800, 600, t0)
	sim.Step(t0.Add(time.Second))
	if len(sink.stats) != 1 {
		t.Errorf("stats emitted %d times, want only the initial rebuild", len(sink.stats))
	}
}

func TestSimulationPointer(t *testing.T) {
	sim := newTestSim(t)
	t0 := time.Unix(100, 0)
	sim.PointerMove(100, 100)
	sim.PointerMove(200, 150)
	if sim.Pointer().Present() {
		t.Fatal("pointer committed before a step")
	}
	sim.Step(t0)
	if sim.Pointer().Pos != (Vec2{200, 150}) {
		t.Errorf("pointer = %v", sim.Pointer().Pos)
	}
	sim.PointerLeave()
	sim.Step(t0.Add(16 * time.Millisecond))
	if sim.Pointer().Present() {
		t.Error("pointer present after leave")
	}
}

func TestSimulationStatsSink(t *testing.T) {
	sink := &countingSink{}
	sim := newTestSim(t, WithStatsSink(sink))
	if len(sink.stats) != 1 || sink.stats[0].Particles != sim.ParticleCount() {
		t.Fatalf("initial stats = %+v", sink.stats)
	}
	t0 := time.Unix(100, 0)
	for i := 0; i <= 60; i++ {
		sim.Step(t0.Add(time.Duration(i) * time.Second / 60))
	}
	if len(sink.stats) != 2 {
		t.Fatalf("stats emitted %d times, want one window rollover", len(sink.stats))
	}
	if sink.stats[1].FPS != sim.FPS() {
		t.Errorf("emitted FPS %v != %v", sink.stats[1].FPS, sim.FPS())
	}
}

func TestSimulationTickRenders(t *testing.T) {
	sim := newTestSim(t, WithRenderer(&Renderer{}))
	c := &recordingCanvas{}
	sim.Tick(time.Unix(100, 0), c)
	if c.clears != 1 || len(c.circles) != sim.ParticleCount() {
		t.Errorf("clears=%d circles=%d, want 1 and %d", c.clears, len(c.circles), sim.ParticleCount())
	}
	if sim.State() != DriverRunning {
		t.Errorf("state = %v", sim.State())
	}
}

func TestSimulationSettlesOnText(t *testing.T) {
	sim, err := New(400, 300, WithSettings(Settings{Text: "A", Density: 1, Size: 1, Speed: 1, Strength: 1, Mode: ModeNone}))
	if err != nil {
		t.Fatal(err)
	}
	t0 := time.Unix(100, 0)
	for i := 0; i < 1500; i++ {
		sim.Step(t0.Add(time.Duration(i) * time.Second / 60))
	}
	for i, p := range sim.Pool().Particles() {
		if d := p.Target.Sub(p.Pos).Len(); d > 1 {
			t.Fatalf("particle %d still %v from its target", i, d)
		}
	}
}

func TestSimulationResizeRepeatedEveryFrame(t *testing.T) {
	sim := newTestSim(t)
	t0 := time.Unix(100, 0)
	// Layout reports the new size on every frame.
	for i := 0; i <= 12; i++ {
		now := t0.Add(time.Duration(i) * 16 * time.Millisecond)
		sim.Resize(640, 480, now)
		sim.Step(now)
	}
	if sim.Surface() != image.Pt(640, 480) {
		t.Errorf("surface = %v, want 640x480 after the delay", sim.Surface())
	}
}

func TestSimulationResizeBackToOriginal(t *testing.T) {
	sink := &countingSink{}
	sim := newTestSim(t, WithStatsSink(sink))
	t0 := time.Unix(100, 0)
	sim.Resize(640, 480, t0)
	sim.Resize(800, 600, t0.Add(10*time.Millisecond))
	sim.Step(t0.Add(200 * time.Millisecond))
	if sim.Surface() != image.Pt(800, 600) {
		t.Errorf("surface = %v", sim.Surface())
	}
	if len(sink.stats) != 1 {
		t.Errorf("rebuilt %d times, want no rebuild beyond the initial one", len(sink.stats)-1)
	}
}
