package texticles

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultBackground is the snapshot background color.
var DefaultBackground = Color{R: 0.04, G: 0.04, B: 0.07, A: 1}

// Headless drives a Simulation without a window, on a fixed 60 Hz clock,
// drawing into an ImageCanvas. Used for snapshots and scripted runs.
type Headless struct {
	Sim    *Simulation
	Canvas *ImageCanvas
	// ScreenshotDir receives PNG snapshots. Defaults to the working directory.
	ScreenshotDir string

	now   time.Time
	frame time.Duration
	stamp string
}

// NewHeadless creates a headless driver for sim.
func NewHeadless(sim *Simulation) *Headless {
	size := sim.Surface()
	now := time.Now()
	return &Headless{
		Sim:           sim,
		Canvas:        NewImageCanvas(size.X, size.Y, DefaultBackground),
		ScreenshotDir: ".",
		now:           now,
		frame:         time.Second / 60,
		stamp:         now.Format("20060102_150405"),
	}
}

// Now returns the simulated clock.
func (h *Headless) Now() time.Time {
	return h.now
}

// Frames advances n ticks of the simulated clock, rendering each one.
func (h *Headless) Frames(n int) {
	for i := 0; i < n; i++ {
		h.now = h.now.Add(h.frame)
		h.Sim.Tick(h.now, h.Canvas)
	}
}

// Snapshot writes the current canvas as a PNG named after label and returns
// its path.
func (h *Headless) Snapshot(label string) (string, error) {
	if err := os.MkdirAll(h.ScreenshotDir, 0o755); err != nil {
		return "", fmt.Errorf("texticles: snapshot: mkdir %s: %w", h.ScreenshotDir, err)
	}
	path := filepath.Join(h.ScreenshotDir, fmt.Sprintf("%s_%s.png", h.stamp, sanitizeLabel(label)))
	if err := writePNG(path, h.Canvas); err != nil {
		return "", fmt.Errorf("texticles: snapshot: %w", err)
	}
	return path, nil
}

// writePNG encodes the canvas to a PNG file at the given path.
func writePNG(path string, c *ImageCanvas) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := c.WritePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
