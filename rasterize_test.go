package texticles

import (
	"image"
	"image/color"
	"math"
	"testing"
)

func newTestRasterizer(t *testing.T) *Rasterizer {
	t.Helper()
	rz, err := NewRasterizer(RasterizerConfig{})
	if err != nil {
		t.Fatalf("NewRasterizer: %v", err)
	}
	return rz
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"whitespace", "  \n\t ", nil},
		{"single", "HI", []string{"  HI  "}},
		{"blank lines dropped", "a\n\n\nb", []string{"  a  ", "  b  "}},
		{"crlf", "a\r\nb\r\n", []string{"  a  ", "  b  "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitLines(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("SplitLines(%q) = %q, want %q", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("line %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSplitLinesNormalizes(t *testing.T) {
	// e + combining acute composes to a single rune.
	got := SplitLines("e\u0301")
	if len(got) != 1 || got[0] != "  \u00e9  " {
		t.Errorf("SplitLines = %q, want composed é", got)
	}
}

func TestFontSize(t *testing.T) {
	lines := []string{"  HI  "}
	got := FontSize(lines, 800, 600)
	want := 800.0 / 6 * 2
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("FontSize = %v, want %v", got, want)
	}

	// Height bound: many lines.
	many := make([]string, 10)
	for i := range many {
		many[i] = "  x  "
	}
	got = FontSize(many, 800, 600)
	want = 600 / (10 * 0.7)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("FontSize(10 lines) = %v, want %v", got, want)
	}

	if FontSize(nil, 800, 600) != 0 {
		t.Error("FontSize(nil) should be 0")
	}
	if got := FontSize([]string{"  x  "}, 0, 0); got != 1 {
		t.Errorf("FontSize on empty surface = %v, want 1", got)
	}
}

func TestFontSizeCountsGraphemes(t *testing.T) {
	// A skin-toned emoji is two code points but one grapheme.
	a := FontSize([]string{"  \U0001F44D\U0001F3FD  "}, 800, 600)
	b := FontSize([]string{"  x  "}, 800, 600)
	if a != b {
		t.Errorf("emoji line size %v != single-char line size %v", a, b)
	}
}

func TestOffscreenSize(t *testing.T) {
	tests := []struct {
		w, h int
		want image.Point
	}{
		{100, 100, image.Pt(400, 200)},
		{1000, 1000, image.Pt(950, 850)},
		{800, 600, image.Pt(760, 510)},
	}
	for _, tt := range tests {
		if got := offscreenSize(tt.w, tt.h); got != tt.want {
			t.Errorf("offscreenSize(%d, %d) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestRasterizeEmpty(t *testing.T) {
	rz := newTestRasterizer(t)
	for _, text := range []string{"", "   ", "\n\n"} {
		r, err := rz.Rasterize(text, 800, 600, true)
		if err != nil {
			t.Fatalf("Rasterize(%q): %v", text, err)
		}
		if len(r.Points) != 0 {
			t.Errorf("Rasterize(%q) points = %d, want 0", text, len(r.Points))
		}
		if r.Colors.Len() != 0 {
			t.Errorf("Rasterize(%q) color samples = %d, want 0", text, r.Colors.Len())
		}
	}
}

func TestRasterizeText(t *testing.T) {
	rz := newTestRasterizer(t)
	r, err := rz.Rasterize("HI", 800, 600, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(r.Points) == 0 {
		t.Fatal("no target points for HI")
	}
	if r.Colors != nil {
		t.Error("Colors should be nil without color sampling")
	}
	if r.Offscreen != image.Pt(760, 510) {
		t.Errorf("Offscreen = %v", r.Offscreen)
	}
	if r.Lines != 1 {
		t.Errorf("Lines = %d, want 1", r.Lines)
	}
	for _, p := range r.Points {
		if p.Cell.X%scanStride != 0 || p.Cell.Y%scanStride != 0 {
			t.Fatalf("cell %v not on the scan grid", p.Cell)
		}
		if p.Pos.X < 0 || p.Pos.X > 800 || p.Pos.Y < 0 || p.Pos.Y > 600 {
			t.Fatalf("point %v outside the 800x600 surface", p.Pos)
		}
	}
}

func TestRasterizeCentered(t *testing.T) {
	rz := newTestRasterizer(t)
	r, err := rz.Rasterize("HI", 800, 600, false)
	if err != nil {
		t.Fatal(err)
	}
	var sum Vec2
	for _, p := range r.Points {
		sum = sum.Add(p.Pos)
	}
	mean := sum.Scale(1 / float64(len(r.Points)))
	if math.Abs(mean.X-400) > 40 || math.Abs(mean.Y-300) > 60 {
		t.Errorf("point centroid = %v, want near (400, 300)", mean)
	}
}

func TestRasterizeMoreLinesMorePoints(t *testing.T) {
	rz := newTestRasterizer(t)
	one, err := rz.Rasterize("AB", 800, 600, false)
	if err != nil {
		t.Fatal(err)
	}
	two, err := rz.Rasterize("AB\nCD", 800, 600, false)
	if err != nil {
		t.Fatal(err)
	}
	if two.Lines != 2 {
		t.Errorf("Lines = %d, want 2", two.Lines)
	}
	if two.FontSize > one.FontSize {
		t.Errorf("two-line font %v larger than one-line %v", two.FontSize, one.FontSize)
	}
}

func TestRasterizeColorSample(t *testing.T) {
	rz := newTestRasterizer(t)
	r, err := rz.Rasterize("HI", 800, 600, true)
	if err != nil {
		t.Fatal(err)
	}
	if r.Colors.Len() == 0 {
		t.Fatal("no color samples")
	}
	hits := 0
	for _, p := range r.Points {
		c, ok := r.Colors.Lookup(p.Cell)
		if !ok {
			continue
		}
		hits++
		if c.R < 0.9 || c.G < 0.9 || c.B < 0.9 {
			t.Fatalf("plain glyph sampled as %+v, want white", c)
		}
	}
	if hits < len(r.Points)/2 {
		t.Errorf("only %d of %d points have a color sample", hits, len(r.Points))
	}
}

func TestRasterizeCustomTint(t *testing.T) {
	rz, err := NewRasterizer(RasterizerConfig{
		Tint: func(rune) color.Color { return color.RGBA{255, 0, 0, 255} },
	})
	if err != nil {
		t.Fatal(err)
	}
	r, err := rz.Rasterize("HI", 800, 600, true)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range r.Points {
		if c, ok := r.Colors.Lookup(p.Cell); ok {
			if c.R < 0.9 || c.G > 0.1 || c.B > 0.1 {
				t.Fatalf("tinted sample = %+v, want red", c)
			}
			return
		}
	}
	t.Fatal("no sampled point found")
}

func TestColorSampleLookupOutOfRange(t *testing.T) {
	s := newColorSample(4, 4)
	s.set(1, 2, 255, 128, 0)
	if _, ok := s.Lookup(image.Pt(-1, 0)); ok {
		t.Error("negative lookup should miss")
	}
	if _, ok := s.Lookup(image.Pt(4, 0)); ok {
		t.Error("out-of-range lookup should miss")
	}
	if _, ok := s.Lookup(image.Pt(0, 0)); ok {
		t.Error("unset cell should miss")
	}
	c, ok := s.Lookup(image.Pt(1, 2))
	if !ok || c.R != 1 || c.B != 0 || c.A != 1 {
		t.Errorf("Lookup = %+v, %v", c, ok)
	}
	s.set(1, 2, 0, 0, 0)
	if s.Len() != 1 {
		t.Errorf("Len after overwrite = %d, want 1", s.Len())
	}
	if _, ok := s.Lookup(image.Pt(1, 2)); !ok {
		t.Error("black sample should still be present")
	}

	var nilSample *ColorSample
	if nilSample.Len() != 0 {
		t.Error("nil sample Len should be 0")
	}
	if _, ok := nilSample.Lookup(image.Pt(0, 0)); ok {
		t.Error("nil sample lookup should miss")
	}
}

func TestGlyphTint(t *testing.T) {
	if GlyphTint('A') != color.White {
		t.Error("letters should tint white")
	}
	smile := GlyphTint('\U0001F600')
	if smile == color.White {
		t.Error("pictographs should not tint white")
	}
	if GlyphTint('\U0001F600') != smile {
		t.Error("pictograph tint should be stable")
	}
}

func TestNewRasterizerBadFont(t *testing.T) {
	if _, err := NewRasterizer(RasterizerConfig{FontData: []byte("not a font")}); err == nil {
		t.Error("expected error for invalid font data")
	}
}
