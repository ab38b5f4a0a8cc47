package texticles

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"
	"unicode"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/norm"
)

const (
	// scanStride is the pixel gap between sampled offscreen cells.
	scanStride = 3
	// scanThreshold is the brightness (plain) or alpha (color) cut-off.
	scanThreshold = 50

	fontWidthFactor  = 2.0 // k1: font size per column of the longest line
	fontHeightFactor = 0.7 // k2: vertical share per line
	linePitch        = 0.9 // line advance as a fraction of the font size
	linePadding      = "  "

	offscreenWidthRatio  = 0.95
	offscreenHeightRatio = 0.85
	offscreenMinWidth    = 400
	offscreenMinHeight   = 200
)

// TargetPoint is a foreground location a particle steers toward.
type TargetPoint struct {
	// Pos is the location in display-surface coordinates.
	Pos Vec2
	// Cell is the offscreen scan coordinate Pos was derived from. Color
	// samples are keyed by it.
	Cell image.Point
}

// ColorSample maps offscreen scan cells to the RGB color found there. It is a
// directly indexed grid; cells that never qualified report no color.
type ColorSample struct {
	width, height int
	cells         []uint32 // 0x01RRGGBB when present, 0 otherwise
	count         int
}

const samplePresent = 1 << 24

func newColorSample(w, h int) *ColorSample {
	return &ColorSample{width: w, height: h, cells: make([]uint32, w*h)}
}

func (s *ColorSample) set(x, y int, r, g, b uint8) {
	i := y*s.width + x
	if s.cells[i] == 0 {
		s.count++
	}
	s.cells[i] = samplePresent | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// Lookup returns the sampled color at the offscreen cell p.
func (s *ColorSample) Lookup(p image.Point) (Color, bool) {
	if s == nil || p.X < 0 || p.Y < 0 || p.X >= s.width || p.Y >= s.height {
		return Color{}, false
	}
	v := s.cells[p.Y*s.width+p.X]
	if v&samplePresent == 0 {
		return Color{}, false
	}
	return Color{
		R: float64(v>>16&0xff) / 255,
		G: float64(v>>8&0xff) / 255,
		B: float64(v&0xff) / 255,
		A: 1,
	}, true
}

// Len returns the number of sampled cells.
func (s *ColorSample) Len() int {
	if s == nil {
		return 0
	}
	return s.count
}

// Raster is the result of rasterizing one text string.
type Raster struct {
	Points []TargetPoint
	// Colors is nil unless color sampling was requested.
	Colors *ColorSample
	// Offscreen is the size of the offscreen surface that was scanned.
	Offscreen image.Point
	// Surface is the display size the points were centered on.
	Surface  image.Point
	FontSize float64
	Lines    int
}

// Center returns the display-surface center the raster was built for.
func (r Raster) Center() Vec2 {
	return Vec2{float64(r.Surface.X) / 2, float64(r.Surface.Y) / 2}
}

// RasterizerConfig controls how text is turned into target points.
type RasterizerConfig struct {
	// FontData is a TTF/OTF font. Defaults to Go Bold.
	FontData []byte
	// Tint colors each rune in the color pass. Defaults to GlyphTint.
	Tint func(r rune) color.Color
}

// Rasterizer renders text offscreen and extracts target points from it. The
// offscreen buffers are reused between calls while their size is unchanged.
type Rasterizer struct {
	font  *opentype.Font
	tint  func(rune) color.Color
	plain *image.RGBA
	color *image.RGBA
}

// NewRasterizer parses the configured font and returns a ready Rasterizer.
func NewRasterizer(cfg RasterizerConfig) (*Rasterizer, error) {
	data := cfg.FontData
	if data == nil {
		data = gobold.TTF
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("texticles: parse font: %w", err)
	}
	tint := cfg.Tint
	if tint == nil {
		tint = GlyphTint
	}
	return &Rasterizer{font: f, tint: tint}, nil
}

// GlyphTint is the default color-pass tint. The outline fonts used here carry
// no color tables, so pictographic runes get a stable hue derived from the
// code point and everything else renders white.
func GlyphTint(r rune) color.Color {
	if !isPictographic(r) {
		return color.White
	}
	h := float64((uint32(r) * 2654435761) % 360)
	return colorful.Hsl(h, 0.85, 0.55).Clamped()
}

func isPictographic(r rune) bool {
	return r >= 0x1F000 || unicode.Is(unicode.So, r)
}

// SplitLines breaks text on runs of line breaks, drops blank lines, and pads
// what remains. The result is empty for blank or whitespace-only text.
func SplitLines(text string) []string {
	text = norm.NFC.String(text)
	raw := strings.FieldsFunc(text, func(r rune) bool { return r == '\n' || r == '\r' })
	lines := raw[:0]
	for _, l := range raw {
		if strings.TrimSpace(l) == "" {
			continue
		}
		lines = append(lines, linePadding+l+linePadding)
	}
	return lines
}

// FontSize returns the single font size shared by all lines.
func FontSize(lines []string, width, height float64) float64 {
	if len(lines) == 0 {
		return 0
	}
	longest := 1
	for _, l := range lines {
		if n := uniseg.GraphemeClusterCount(l); n > longest {
			longest = n
		}
	}
	size := math.Min(
		width/float64(longest)*fontWidthFactor,
		height/(float64(len(lines))*fontHeightFactor),
	)
	if math.IsNaN(size) || size < 1 {
		return 1
	}
	return size
}

// offscreenSize returns the offscreen surface size for a display surface.
// It follows the visible area only, never the device resolution.
func offscreenSize(width, height int) image.Point {
	return image.Pt(
		max(offscreenMinWidth, int(math.Floor(float64(width)*offscreenWidthRatio))),
		max(offscreenMinHeight, int(math.Floor(float64(height)*offscreenHeightRatio))),
	)
}

// Rasterize turns text into target points for a width×height display surface.
// When withColor is set a second pass records glyph colors per cell.
func (rz *Rasterizer) Rasterize(text string, width, height int, withColor bool) (Raster, error) {
	out := Raster{Surface: image.Pt(width, height)}
	lines := SplitLines(text)
	if len(lines) == 0 {
		if withColor {
			out.Colors = newColorSample(0, 0)
		}
		return out, nil
	}

	size := FontSize(lines, float64(width), float64(height))
	off := offscreenSize(width, height)
	face, err := opentype.NewFace(rz.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return out, fmt.Errorf("texticles: font face at %.1fpx: %w", size, err)
	}
	defer face.Close()

	out.Offscreen = off
	out.FontSize = size
	out.Lines = len(lines)

	rz.plain = reuseRGBA(rz.plain, off)
	draw.Draw(rz.plain, rz.plain.Bounds(), image.Black, image.Point{}, draw.Src)
	layoutLines(lines, face, size, off, func(d *font.Drawer, line string) {
		d.Dst = rz.plain
		d.Src = image.White
		d.DrawString(line)
	})

	halfOff := Vec2{float64(off.X) / 2, float64(off.Y) / 2}
	center := out.Center()
	pix, stride := rz.plain.Pix, rz.plain.Stride
	for y := 0; y < off.Y; y += scanStride {
		for x := 0; x < off.X; x += scanStride {
			i := y*stride + x*4
			brightness := (int(pix[i]) + int(pix[i+1]) + int(pix[i+2])) / 3
			if brightness <= scanThreshold {
				continue
			}
			out.Points = append(out.Points, TargetPoint{
				Pos: Vec2{
					X: float64(x) - halfOff.X + center.X,
					Y: float64(y) - halfOff.Y + center.Y,
				},
				Cell: image.Pt(x, y),
			})
		}
	}

	if withColor {
		out.Colors = rz.sampleColors(lines, face, size, off)
	}
	return out, nil
}

// sampleColors renders the lines with their true tints onto a transparent
// surface and records the RGB of every cell whose alpha qualifies.
func (rz *Rasterizer) sampleColors(lines []string, face font.Face, size float64, off image.Point) *ColorSample {
	rz.color = reuseRGBA(rz.color, off)
	draw.Draw(rz.color, rz.color.Bounds(), image.Transparent, image.Point{}, draw.Src)
	layoutLines(lines, face, size, off, func(d *font.Drawer, line string) {
		d.Dst = rz.color
		prev := rune(-1)
		for _, r := range line {
			if prev >= 0 {
				d.Dot.X += face.Kern(prev, r)
			}
			d.Src = image.NewUniform(rz.tint(r))
			d.DrawString(string(r))
			prev = r
		}
	})

	sample := newColorSample(off.X, off.Y)
	pix, stride := rz.color.Pix, rz.color.Stride
	for y := 0; y < off.Y; y += scanStride {
		for x := 0; x < off.X; x += scanStride {
			i := y*stride + x*4
			a := pix[i+3]
			if a <= scanThreshold {
				continue
			}
			// Pix is premultiplied; recover the straight glyph color.
			r, g, b := unpremultiply(pix[i], a), unpremultiply(pix[i+1], a), unpremultiply(pix[i+2], a)
			sample.set(x, y, r, g, b)
		}
	}
	return sample
}

// layoutLines positions each line centered horizontally and stacked
// vertically around the middle of the offscreen surface, then calls draw with
// the drawer's dot on the line's baseline.
func layoutLines(lines []string, face font.Face, size float64, off image.Point, drawLine func(*font.Drawer, string)) {
	m := face.Metrics()
	// Shift from the vertical middle of a line to its baseline.
	middle := float64(m.Ascent-m.Descent) / 64 / 2

	total := size * float64(len(lines)) * linePitch
	startY := float64(off.Y)/2 - total/2 + size/2

	d := &font.Drawer{Face: face}
	for i, line := range lines {
		w := float64(d.MeasureString(line)) / 64
		x := float64(off.X)/2 - w/2
		y := startY + float64(i)*size*linePitch + middle
		d.Dot = fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)}
		drawLine(d, line)
	}
}

func reuseRGBA(img *image.RGBA, size image.Point) *image.RGBA {
	if img != nil && img.Rect.Dx() == size.X && img.Rect.Dy() == size.Y {
		return img
	}
	return image.NewRGBA(image.Rectangle{Max: size})
}

func unpremultiply(c, a uint8) uint8 {
	if a == 0 || a == 255 {
		return c
	}
	return uint8(min(int(c)*255/int(a), 255))
}
