package texticles

import (
	"image/color"
	"math"
	"time"
)

const (
	// MaxParticles is the pool size ceiling.
	MaxParticles = 25000
	// MinParticles is the pool size floor, kept even for blank text.
	MinParticles = 100
	// DensityNormalization divides targetCount×density to get the pool size.
	DensityNormalization = 5

	// DPRLimit caps the device-pixel ratio used for the display surface.
	DPRLimit = 1.5
	// InteractionRadius is the pointer radius R inside which force fields act.
	InteractionRadius = 150.0
	// ResizeDelay debounces surface-size changes.
	ResizeDelay = 100 * time.Millisecond

	// TrailRatio draws trails only for every TrailRatio-th particle.
	TrailRatio = 16
	// TrailSkip is the probability a trail candidate is skipped this frame.
	TrailSkip = 0.3
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is opaque white.
var ColorWhite = Color{1, 1, 1, 1}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// RGBA implements color.Color, returning premultiplied 16-bit components.
func (c Color) RGBA() (r, g, b, a uint32) {
	al := clamp01(c.A)
	r = uint32(clamp01(c.R)*al*0xffff + 0.5)
	g = uint32(clamp01(c.G)*al*0xffff + 0.5)
	b = uint32(clamp01(c.B)*al*0xffff + 0.5)
	a = uint32(al*0xffff + 0.5)
	return
}

var _ color.Color = Color{}

// Vec2 is a 2D vector used for positions, offsets and velocities.
type Vec2 struct {
	X, Y float64
}

// Add returns v+o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v-o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v*s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y) }

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}

// Range is a general-purpose min/max range.
type Range struct {
	Min, Max float64
}

// Clamp limits v to [Min, Max].
func (r Range) Clamp(v float64) float64 {
	return math.Max(r.Min, math.Min(r.Max, v))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
