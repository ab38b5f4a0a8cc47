package texticles

import "math"

// Settings is the configuration supplied by the UI. Numeric fields are
// untrusted until Sanitize has run.
type Settings struct {
	Text     string
	Density  float64
	Size     float64
	Speed    float64
	Strength float64
	Mode     Mode
	Palette  Palette
}

var (
	densityRange  = Range{0.1, 20}
	sizeRange     = Range{0.3, 20}
	speedRange    = Range{0, 10}
	strengthRange = Range{0, 10}
)

// DefaultSettings returns the settings a fresh simulation starts with.
func DefaultSettings() Settings {
	return Settings{
		Text:     "Hello",
		Density:  4,
		Size:     1.6,
		Speed:    1,
		Strength: 1,
		Mode:     ModeRepel,
		Palette:  PaletteGradient,
	}
}

// Sanitize returns s with every numeric field clamped to its range and
// non-finite values replaced by the default. Unknown modes and palettes fall
// back to their defaults.
func (s Settings) Sanitize() Settings {
	def := DefaultSettings()
	s.Density = sanitize(s.Density, def.Density, densityRange)
	s.Size = sanitize(s.Size, def.Size, sizeRange)
	s.Speed = sanitize(s.Speed, def.Speed, speedRange)
	s.Strength = sanitize(s.Strength, def.Strength, strengthRange)
	if s.Mode >= modeCount {
		s.Mode = ModeNone
	}
	if s.Palette >= paletteCount {
		s.Palette = PaletteGradient
	}
	return s
}

func sanitize(v, def float64, r Range) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return r.Clamp(v)
}
