package texticles

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	ebvector "github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// Canvas is the raster surface the Renderer draws on. Coordinates are in
// display-surface units.
type Canvas interface {
	Clear()
	FillCircle(cx, cy, r float64, c Color)
	StrokeLine(x0, y0, x1, y1, width float64, c Color)
}

// --- EbitenCanvas ---

// EbitenCanvas draws onto an ebiten image. Scale maps display-surface units
// to image pixels (the capped device-pixel ratio).
type EbitenCanvas struct {
	Target *ebiten.Image
	Scale  float64
}

func (c *EbitenCanvas) scale() float32 {
	if c.Scale <= 0 {
		return 1
	}
	return float32(c.Scale)
}

// Clear fills the image with transparent black.
func (c *EbitenCanvas) Clear() {
	c.Target.Clear()
}

// FillCircle draws an antialiased disc.
func (c *EbitenCanvas) FillCircle(cx, cy, r float64, col Color) {
	s := c.scale()
	ebvector.DrawFilledCircle(c.Target, float32(cx)*s, float32(cy)*s, float32(r)*s, col, true)
}

// StrokeLine draws an antialiased line segment.
func (c *EbitenCanvas) StrokeLine(x0, y0, x1, y1, width float64, col Color) {
	s := c.scale()
	ebvector.StrokeLine(c.Target,
		float32(x0)*s, float32(y0)*s, float32(x1)*s, float32(y1)*s,
		float32(width)*s, col, true)
}

// --- ImageCanvas ---

// ImageCanvas draws onto an in-memory RGBA image with source-over
// compositing. It needs no graphics device, so it backs headless snapshots.
type ImageCanvas struct {
	img        *image.RGBA
	background Color
	z          vector.Rasterizer
}

// NewImageCanvas creates a w×h canvas cleared to background.
func NewImageCanvas(w, h int, background Color) *ImageCanvas {
	c := &ImageCanvas{
		img:        image.NewRGBA(image.Rect(0, 0, w, h)),
		background: background,
	}
	c.z.DrawOp = draw.Over
	c.Clear()
	return c
}

// Image returns the backing image.
func (c *ImageCanvas) Image() *image.RGBA {
	return c.img
}

// Clear fills the canvas with its background color.
func (c *ImageCanvas) Clear() {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(c.background), image.Point{}, draw.Src)
}

// circleSegments returns the polygon vertex count used for a disc of radius r.
func circleSegments(r float64) int {
	return clampInt(int(r*4), 8, 48)
}

// FillCircle draws a disc approximated by a polygon.
func (c *ImageCanvas) FillCircle(cx, cy, r float64, col Color) {
	if r <= 0 || col.A <= 0 {
		return
	}
	box, ok := c.clip(cx-r, cy-r, cx+r, cy+r)
	if !ok {
		return
	}
	ox, oy := float32(box.Min.X), float32(box.Min.Y)
	c.z.Reset(box.Dx(), box.Dy())
	c.z.DrawOp = draw.Over
	n := circleSegments(r)
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		x := float32(cx+math.Cos(a)*r) - ox
		y := float32(cy+math.Sin(a)*r) - oy
		if i == 0 {
			c.z.MoveTo(x, y)
		} else {
			c.z.LineTo(x, y)
		}
	}
	c.z.ClosePath()
	c.z.Draw(c.img, box, image.NewUniform(col), image.Point{})
}

// StrokeLine draws a line segment as a quad of the given width.
func (c *ImageCanvas) StrokeLine(x0, y0, x1, y1, width float64, col Color) {
	if width <= 0 || col.A <= 0 {
		return
	}
	dx, dy := x1-x0, y1-y0
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	nx, ny := -dy/l*width/2, dx/l*width/2
	box, ok := c.clip(
		math.Min(x0, x1)-width, math.Min(y0, y1)-width,
		math.Max(x0, x1)+width, math.Max(y0, y1)+width,
	)
	if !ok {
		return
	}
	ox, oy := float32(box.Min.X), float32(box.Min.Y)
	c.z.Reset(box.Dx(), box.Dy())
	c.z.DrawOp = draw.Over
	c.z.MoveTo(float32(x0+nx)-ox, float32(y0+ny)-oy)
	c.z.LineTo(float32(x1+nx)-ox, float32(y1+ny)-oy)
	c.z.LineTo(float32(x1-nx)-ox, float32(y1-ny)-oy)
	c.z.LineTo(float32(x0-nx)-ox, float32(y0-ny)-oy)
	c.z.ClosePath()
	c.z.Draw(c.img, box, image.NewUniform(col), image.Point{})
}

// clip returns the integer bounding box of a shape intersected with the
// canvas, or false when nothing of it is visible.
func (c *ImageCanvas) clip(x0, y0, x1, y1 float64) (image.Rectangle, bool) {
	if !finite(x0) || !finite(y0) || !finite(x1) || !finite(y1) {
		return image.Rectangle{}, false
	}
	box := image.Rect(
		int(math.Floor(x0)), int(math.Floor(y0)),
		int(math.Ceil(x1))+1, int(math.Ceil(y1))+1,
	).Intersect(c.img.Bounds())
	return box, !box.Empty()
}

// WritePNG encodes the canvas as PNG.
func (c *ImageCanvas) WritePNG(w io.Writer) error {
	if err := png.Encode(w, c.img); err != nil {
		return fmt.Errorf("texticles: encode png: %w", err)
	}
	return nil
}
