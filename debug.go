package texticles

import (
	"fmt"
	"os"
	"time"
)

// rebuildStats holds timing and size metrics for one rebuild.
// Only collected when the simulation runs with WithDebug.
type rebuildStats struct {
	rasterTime  time.Duration
	rebuildTime time.Duration
	points      int
	samples     int
	particles   int
	fontSize    float64
}

// logf prints a prefixed line to stderr.
func logf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[texticles] "+format+"\n", args...)
}

// debugLogRebuild prints rebuild timing and pool metrics to stderr.
func debugLogRebuild(stats rebuildStats) {
	logf("raster: %v | rebuild: %v | total: %v",
		stats.rasterTime, stats.rebuildTime, stats.rasterTime+stats.rebuildTime)
	logf("points: %d | color samples: %d | particles: %d | font: %.1fpx",
		stats.points, stats.samples, stats.particles, stats.fontSize)
}

// debugLogFrame prints the frame-rate window readout to stderr.
func debugLogFrame(stats Stats) {
	logf("fps: %.0f | particles: %d", stats.FPS, stats.Particles)
}
