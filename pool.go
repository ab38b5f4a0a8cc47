package texticles

import (
	"math"
	"math/rand/v2"
)

const (
	// scatterSpread is the scatter region size relative to the surface.
	scatterSpread = 1.6
	// spawnVelocity is the half-range of a new particle's velocity per axis.
	spawnVelocity = 1.5
	// scatterVelocity is the half-range of a scattered particle's velocity.
	scatterVelocity = 3.0
	maxLifePhase    = 100.0
)

// Particle holds per-particle simulation state.
type Particle struct {
	Pos    Vec2
	Vel    Vec2
	Target Vec2

	Size     float64
	BaseSize float64
	Hue      float64 // degrees

	// Override replaces the palette color when HasOverride is set and the
	// direct-sample palette is active.
	Override    Color
	HasOverride bool

	Life  float64 // phase offset in [0, 100)
	Speed float64 // per-particle spring multiplier in [0.5, 1)

	// Energy is accumulated by the pulse field, capped at 1.
	Energy float64
}

// Pool owns the particle slice. Slots are stable: a particle keeps its index
// for as long as the pool does not shrink below it.
type Pool struct {
	particles []Particle
	surface   Vec2
	size      float64
}

// NewPool creates an empty pool for a width×height surface whose particles
// are drawn at the given size.
func NewPool(width, height int, size float64) *Pool {
	p := &Pool{size: size}
	p.SetSurface(width, height)
	return p
}

// SetSurface records the display surface dimensions used for scattering and
// for the blank-text fallback target.
func (p *Pool) SetSurface(width, height int) {
	p.surface = Vec2{float64(width), float64(height)}
}

// Center returns the display-surface center.
func (p *Pool) Center() Vec2 {
	return p.surface.Scale(0.5)
}

// Len returns the number of particles in the pool.
func (p *Pool) Len() int {
	return len(p.particles)
}

// Particles returns the pool's backing slice. Callers may mutate particle
// fields but MUST NOT append to or reslice it.
func (p *Pool) Particles() []Particle {
	return p.particles
}

// DesiredCount returns the pool size for a target count and density.
func DesiredCount(points int, density float64) int {
	n := math.Floor(float64(points) * density / DensityNormalization)
	if math.IsNaN(n) || n < MinParticles {
		return MinParticles
	}
	if n > MaxParticles {
		return MaxParticles
	}
	return int(n)
}

// Rebuild resizes the pool for the raster and density, then assigns every
// particle a fresh random target. When sampled is set, each particle takes the
// color recorded under its target's offscreen cell, if any.
func (p *Pool) Rebuild(r Raster, density float64, sampled bool) {
	if r.Surface.X > 0 && r.Surface.Y > 0 {
		p.SetSurface(r.Surface.X, r.Surface.Y)
	}

	want := DesiredCount(len(r.Points), density)
	if cur := len(p.particles); cur < want {
		for i := cur; i < want; i++ {
			p.particles = append(p.particles, p.spawn())
		}
	} else if cur > want {
		clear(p.particles[want:])
		p.particles = p.particles[:want]
	}

	center := p.Center()
	for i := range p.particles {
		pt := &p.particles[i]
		if len(r.Points) == 0 {
			pt.Target = center
			pt.HasOverride = false
			pt.Hue = rand.Float64() * 360
			continue
		}
		tp := r.Points[rand.IntN(len(r.Points))]
		pt.Target = tp.Pos

		if sampled {
			if c, ok := r.Colors.Lookup(tp.Cell); ok {
				pt.Override = c
				pt.HasOverride = true
				continue
			}
		}
		pt.HasOverride = false
		pt.Hue = rand.Float64() * 360
	}
}

// spawn creates a particle scattered around the surface center.
func (p *Pool) spawn() Particle {
	center := p.Center()
	return Particle{
		Pos:      p.scatterPoint(),
		Vel:      Vec2{Range{-spawnVelocity, spawnVelocity}.Random(), Range{-spawnVelocity, spawnVelocity}.Random()},
		Target:   center,
		Size:     p.size,
		BaseSize: p.size,
		Hue:      rand.Float64() * 360,
		Life:     rand.Float64() * maxLifePhase,
		Speed:    Range{0.5, 1}.Random(),
	}
}

func (p *Pool) scatterPoint() Vec2 {
	c := p.Center()
	return Vec2{
		X: c.X + (rand.Float64()-0.5)*p.surface.X*scatterSpread,
		Y: c.Y + (rand.Float64()-0.5)*p.surface.Y*scatterSpread,
	}
}

// Scatter throws every particle to a random point around the surface center
// with a fresh velocity and life phase. Targets are left alone.
func (p *Pool) Scatter() {
	for i := range p.particles {
		pt := &p.particles[i]
		pt.Pos = p.scatterPoint()
		pt.Vel = Vec2{
			X: Range{-scatterVelocity, scatterVelocity}.Random(),
			Y: Range{-scatterVelocity, scatterVelocity}.Random(),
		}
		pt.Life = rand.Float64() * maxLifePhase
	}
}

// Resize sets every particle's base and current size. Nothing else changes.
func (p *Pool) Resize(size float64) {
	p.size = size
	for i := range p.particles {
		p.particles[i].BaseSize = size
		p.particles[i].Size = size
	}
}

// Random returns a random float64 in [Min, Max].
func (r Range) Random() float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rand.Float64()*(r.Max-r.Min)
}
