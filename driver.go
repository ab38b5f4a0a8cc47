package texticles

import (
	"math"
	"time"
)

// DriverState is the FrameDriver lifecycle state.
type DriverState uint8

const (
	DriverIdle    DriverState = iota // no tick has run yet
	DriverRunning                    // ticking once per display refresh
)

func (s DriverState) String() string {
	if s == DriverRunning {
		return "running"
	}
	return "idle"
}

const fpsWindow = time.Second

// Stats is the live readout produced for the UI.
type Stats struct {
	Particles int
	FPS       float64
}

// StatsSink receives stats whenever the frame-rate window rolls over or the
// pool is rebuilt.
type StatsSink interface {
	EmitStats(Stats)
}

// fpsCounter counts frames over a one-second window.
type fpsCounter struct {
	frames     int
	windowFrom time.Time
	fps        float64
}

// tick counts one frame and reports whether the window rolled over.
func (f *fpsCounter) tick(now time.Time) bool {
	if f.windowFrom.IsZero() {
		f.windowFrom = now
	}
	f.frames++
	elapsed := now.Sub(f.windowFrom)
	if elapsed < fpsWindow {
		return false
	}
	f.fps = math.Round(float64(f.frames) * float64(time.Second) / float64(elapsed))
	f.frames = 0
	f.windowFrom = now
	return true
}

// Driver runs one simulation tick per display refresh: timestep
// normalization, frame-rate accounting, integration, then rendering.
type Driver struct {
	state    DriverState
	last     time.Time
	fps      fpsCounter
	renderer *Renderer
	lastStep Step
}

// NewDriver returns an idle driver.
func NewDriver(r *Renderer) *Driver {
	if r == nil {
		r = NewRenderer()
	}
	return &Driver{renderer: r, fps: fpsCounter{fps: 60}}
}

// State returns the lifecycle state.
func (d *Driver) State() DriverState {
	return d.state
}

// FPS returns the frame rate measured over the last full window.
func (d *Driver) FPS() float64 {
	return d.fps.fps
}

// LastStep returns the context used by the most recent Step.
func (d *Driver) LastStep() Step {
	return d.lastStep
}

// Step advances the pool by one tick at wall-clock time now. The first call
// moves the driver to DriverRunning and integrates with dt = 1. It reports
// whether the frame-rate window rolled over.
func (d *Driver) Step(now time.Time, particles []Particle, s Step) bool {
	if d.state == DriverIdle {
		d.state = DriverRunning
		s.DT = 1
	} else {
		s.DT = NormalizeDelta(now.Sub(d.last))
	}
	d.last = now
	s.Millis = float64(now.UnixNano()) / float64(time.Millisecond)

	rolled := d.fps.tick(now)
	Integrate(particles, s)
	d.lastStep = s
	return rolled
}

// Render clears the canvas and draws the pool with the given palette.
func (d *Driver) Render(c Canvas, particles []Particle, pal Palette) {
	c.Clear()
	d.renderer.Draw(c, particles, pal, d.lastStep.Millis)
}
