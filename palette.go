package texticles

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette selects how particle colors are resolved each frame.
type Palette uint8

const (
	PaletteSample     Palette = iota // sampled glyph colors, hue ramp otherwise
	PaletteMonochrome                // constant white
	PaletteGradient                  // hue ramp by pool index
	PaletteFire
	PaletteIce
	PaletteNeon
	PalettePastel
	PaletteGalaxy
	PaletteForest
	PaletteOcean
	PaletteLava
	paletteCount
)

var paletteNames = [paletteCount]string{
	"emoji", "monochrome", "gradient", "fire", "ice", "neon",
	"pastel", "galaxy", "forest", "ocean", "lava",
}

// String returns the identifier ParsePalette accepts.
func (p Palette) String() string {
	if p < paletteCount {
		return paletteNames[p]
	}
	return paletteNames[PaletteGradient]
}

// ParsePalette maps an identifier to a Palette. Unknown identifiers yield
// PaletteGradient and ok=false.
func ParsePalette(s string) (p Palette, ok bool) {
	for i, name := range paletteNames {
		if name == s {
			return Palette(i), true
		}
	}
	return PaletteGradient, false
}

// Palettes returns every palette in cycling order.
func Palettes() []Palette {
	out := make([]Palette, paletteCount)
	for i := range out {
		out[i] = Palette(i)
	}
	return out
}

// Sampled reports whether the palette needs per-pixel glyph colors.
func (p Palette) Sampled() bool {
	return p == PaletteSample
}

const (
	particleAlpha = 0.9
	trailAlpha    = 0.3
)

// Resolve returns the color of particle p at pool index i under palette pal.
// millis is the shared wall-clock time in milliseconds.
func Resolve(p *Particle, i int, pal Palette, millis float64) Color {
	fi := float64(i)
	switch pal {
	case PaletteSample:
		if p.HasOverride {
			return p.Override
		}
		return hueRamp(p, i)
	case PaletteMonochrome:
		return ColorWhite.WithAlpha(particleAlpha)
	case PaletteGradient:
		return hueRamp(p, i)
	case PaletteFire:
		return hsla(20+math.Mod(p.Hue, 40), (80+math.Sin(millis*0.005+fi)*20)/100, 0.6, particleAlpha)
	case PaletteIce:
		return hsla(180+math.Mod(p.Hue, 60), 0.7, (70+math.Cos(millis*0.003+fi)*15)/100, particleAlpha)
	case PaletteNeon:
		pulse := math.Sin(millis*0.01+fi*0.1)*0.3 + 0.7
		return hsla(math.Mod(p.Hue*3, 360), 1, (50+pulse*20)/100, particleAlpha)
	case PalettePastel:
		return hsla(math.Mod(p.Hue, 360), 0.6, 0.75, 0.8)
	case PaletteGalaxy:
		twinkle := math.Sin(millis*0.002+fi*0.5)*0.4 + 0.6
		return hsla(270+math.Mod(p.Hue, 90), 0.8, (40+twinkle*30)/100, particleAlpha)
	case PaletteForest:
		variation := math.Cos(millis*0.001+fi) * 15
		return hsla(90+math.Mod(p.Hue, 60), 0.8, (35+variation)/100, particleAlpha)
	case PaletteOcean:
		wave := math.Sin(millis*0.004+p.Pos.X*0.01+p.Pos.Y*0.01) * 10
		return hsla(160+math.Mod(p.Hue, 80), 0.85, (45+wave)/100, particleAlpha)
	case PaletteLava:
		hue := 10 + math.Sin(millis*0.005+fi*0.2)*10
		glow := math.Sin(millis*0.01+fi)*0.5 + 0.5
		return hsla(hue, 1, (40+glow*20)/100, particleAlpha)
	default:
		return hueRamp(p, i)
	}
}

func hueRamp(p *Particle, i int) Color {
	return hsla(p.Hue+float64(i%50), 1, 0.6, particleAlpha)
}

// Trail returns the faded variant of c used for motion trails.
func Trail(c Color) Color {
	return c.WithAlpha(trailAlpha)
}

// hsla converts hue in degrees plus saturation, lightness and alpha in [0, 1]
// to a Color. Hue wraps; the other channels clamp.
func hsla(h, s, l, a float64) Color {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := colorful.Hsl(h, clamp01(s), clamp01(l)).Clamped()
	return Color{R: c.R, G: c.G, B: c.B, A: clamp01(a)}
}
