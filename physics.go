package texticles

import (
	"math"
	"time"
)

const (
	// maxFrameDelta bounds a single step after a stall.
	maxFrameDelta = 48 * time.Millisecond
	// nominalFrame is the frame period at which dt == 1.
	nominalFrame = 16.666

	springStiffness = 0.015
	damping         = 0.92
	// springFalloff is the distance over which the spring speed doubles.
	springFalloff = 200.0
)

// NormalizeDelta converts a raw inter-tick delta into dt: clamped to
// [0, 48ms] and divided by the nominal 60 Hz frame period.
func NormalizeDelta(raw time.Duration) float64 {
	if raw < 0 {
		raw = 0
	}
	if raw > maxFrameDelta {
		raw = maxFrameDelta
	}
	return float64(raw) / float64(time.Millisecond) / nominalFrame
}

// Step is the simulation context for one tick.
type Step struct {
	DT       float64
	Millis   float64
	Speed    float64
	Strength float64
	Mode     Mode
	Pointer  PointerState
}

// Integrate advances every particle by one tick: spring toward the target,
// apply the pointer field, damp, then move.
func Integrate(particles []Particle, s Step) {
	interactive := s.Mode != ModeNone && s.Pointer.Present()
	for i := range particles {
		p := &particles[i]

		tv := p.Target.Sub(p.Pos)
		dist := tv.Len()
		sf := p.Speed * s.Speed * s.DT * (0.5 + dist/springFalloff)
		p.Vel = p.Vel.Add(tv.Scale(springStiffness * sf))

		if interactive {
			ApplyField(p, s.Mode, s.Pointer.Pos, s.Strength, s.DT, s.Millis)
		}

		p.Vel = p.Vel.Scale(damping)
		p.Pos = p.Pos.Add(p.Vel)
	}
}

// finite reports whether v is neither NaN nor infinite.
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
