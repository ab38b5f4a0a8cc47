package texticles

import (
	"math"
	"math/rand/v2"
)

const (
	// trailLength is how many frames of velocity the trail extrapolates back.
	trailLength = 2.0
	trailWidth  = 0.15
	minTrail    = 0.3
)

// Renderer draws the pool onto a Canvas.
type Renderer struct {
	// TrailRatio draws a trail for every TrailRatio-th particle. Zero
	// disables trails.
	TrailRatio int
	// TrailSkip is the chance a trail candidate is skipped each frame.
	TrailSkip float64

	// chance returns a value in [0, 1). Defaults to rand.Float64.
	chance func() float64
}

// NewRenderer returns a Renderer with the default trail sampling.
func NewRenderer() *Renderer {
	return &Renderer{TrailRatio: TrailRatio, TrailSkip: TrailSkip}
}

// Draw paints every particle as a disc and a sampled subset with a short
// trail back-extrapolated from its velocity.
func (r *Renderer) Draw(c Canvas, particles []Particle, pal Palette, millis float64) {
	chance := r.chance
	if chance == nil {
		chance = rand.Float64
	}
	for i := range particles {
		p := &particles[i]
		col := Resolve(p, i, pal, millis)
		c.FillCircle(p.Pos.X, p.Pos.Y, p.Size, col)

		if r.TrailRatio <= 0 || i%r.TrailRatio != 0 || chance() <= r.TrailSkip {
			continue
		}
		from := p.Pos.Sub(p.Vel.Scale(trailLength))
		c.StrokeLine(from.X, from.Y, p.Pos.X, p.Pos.Y,
			math.Max(minTrail, p.Size*trailWidth), Trail(col))
	}
}
