package texticles

import (
	"fmt"
	"image"
	"image/color"
	"time"
)

// Simulation is the explicit context that owns the settings, the rasterizer,
// the particle pool, pointer state, and the frame driver. All methods must be
// called from one goroutine; Ebitengine's Update/Draw goroutine in practice.
type Simulation struct {
	settings Settings
	surface  image.Point

	rasterizer *Rasterizer
	raster     Raster
	pool       *Pool
	pointer    *PointerTracker
	driver     *Driver
	resize     Debouncer[image.Point]
	requested  image.Point

	sink  StatsSink
	debug bool
}

type config struct {
	settings Settings
	raster   RasterizerConfig
	renderer *Renderer
	sink     StatsSink
	debug    bool
}

// Option configures a Simulation.
type Option func(*config)

// WithSettings sets the initial settings.
func WithSettings(s Settings) Option {
	return func(c *config) { c.settings = s }
}

// WithFont sets the TTF/OTF font used for rasterizing text.
func WithFont(data []byte) Option {
	return func(c *config) { c.raster.FontData = data }
}

// WithGlyphTint sets the color-pass tint used by the emoji palette.
func WithGlyphTint(fn func(rune) color.Color) Option {
	return func(c *config) { c.raster.Tint = fn }
}

// WithRenderer replaces the default renderer.
func WithRenderer(r *Renderer) Option {
	return func(c *config) { c.renderer = r }
}

// WithStatsSink forwards live stats to sink.
func WithStatsSink(sink StatsSink) Option {
	return func(c *config) { c.sink = sink }
}

// WithDebug enables per-rebuild and per-window timing logs on stderr.
func WithDebug(enabled bool) Option {
	return func(c *config) { c.debug = enabled }
}

// New creates a simulation for a width×height display surface and builds the
// initial pool.
func New(width, height int, opts ...Option) (*Simulation, error) {
	cfg := config{settings: DefaultSettings()}
	for _, opt := range opts {
		opt(&cfg)
	}
	rz, err := NewRasterizer(cfg.raster)
	if err != nil {
		return nil, err
	}
	s := &Simulation{
		settings:   cfg.settings.Sanitize(),
		surface:    image.Pt(max(width, 1), max(height, 1)),
		rasterizer: rz,
		pointer:    NewPointerTracker(),
		driver:     NewDriver(cfg.renderer),
		resize:     Debouncer[image.Point]{Delay: ResizeDelay},
		sink:       cfg.sink,
		debug:      cfg.debug,
	}
	s.requested = s.surface
	s.pool = NewPool(s.surface.X, s.surface.Y, s.settings.Size)
	if err := s.rebuild(); err != nil {
		return nil, err
	}
	return s, nil
}

// rebuild rasterizes the current text and reassigns the pool. On error the
// previous pool is left untouched.
func (s *Simulation) rebuild() error {
	t0 := time.Now()
	sampled := s.settings.Palette.Sampled()
	r, err := s.rasterizer.Rasterize(s.settings.Text, s.surface.X, s.surface.Y, sampled)
	if err != nil {
		return fmt.Errorf("texticles: rebuild: %w", err)
	}
	rasterTime := time.Since(t0)

	t0 = time.Now()
	s.raster = r
	s.pool.Rebuild(r, s.settings.Density, sampled)

	if s.debug {
		debugLogRebuild(rebuildStats{
			rasterTime:  rasterTime,
			rebuildTime: time.Since(t0),
			points:      len(r.Points),
			samples:     r.Colors.Len(),
			particles:   s.pool.Len(),
			fontSize:    r.FontSize,
		})
	}
	s.emit()
	return nil
}

func (s *Simulation) emit() {
	if s.sink != nil {
		s.sink.EmitStats(s.Stats())
	}
}

// SetText replaces the text and rebuilds the pool.
func (s *Simulation) SetText(text string) error {
	s.settings.Text = text
	return s.rebuild()
}

// SetDensity changes the particles-per-point multiplier and rebuilds.
func (s *Simulation) SetDensity(density float64) error {
	s.settings.Density = sanitize(density, DefaultSettings().Density, densityRange)
	return s.rebuild()
}

// SetPalette changes the palette. The pool is rebuilt because the emoji
// palette needs color samples the others do not.
func (s *Simulation) SetPalette(p Palette) error {
	s.settings.Palette = p
	s.settings = s.settings.Sanitize()
	return s.rebuild()
}

// SetSize changes every particle's size in place.
func (s *Simulation) SetSize(size float64) {
	s.settings.Size = sanitize(size, DefaultSettings().Size, sizeRange)
	s.pool.Resize(s.settings.Size)
}

// SetSpeed changes the global spring speed.
func (s *Simulation) SetSpeed(speed float64) {
	s.settings.Speed = sanitize(speed, DefaultSettings().Speed, speedRange)
}

// SetStrength changes the pointer interaction strength.
func (s *Simulation) SetStrength(strength float64) {
	s.settings.Strength = sanitize(strength, DefaultSettings().Strength, strengthRange)
}

// SetMode changes the pointer force field.
func (s *Simulation) SetMode(m Mode) {
	s.settings.Mode = m
	s.settings = s.settings.Sanitize()
}

// Scatter throws every particle away from its target.
func (s *Simulation) Scatter() {
	s.pool.Scatter()
}

// Resize requests a new surface size. Requests are debounced so a burst of
// resizes causes a single rebuild once the surface has settled. Repeating the
// most recent request does not re-arm the delay, so it is safe to call every
// frame.
func (s *Simulation) Resize(width, height int, now time.Time) {
	size := image.Pt(max(width, 1), max(height, 1))
	if size == s.requested {
		return
	}
	s.requested = size
	s.resize.Request(size, now)
}

// PointerMove records a raw pointer position in surface coordinates.
func (s *Simulation) PointerMove(x, y float64) {
	s.pointer.Move(x, y)
}

// PointerLeave records that the pointer left the surface.
func (s *Simulation) PointerLeave() {
	s.pointer.Leave()
}

// Step runs the non-drawing half of a tick: a due resize, the coalesced
// pointer update, then integration.
func (s *Simulation) Step(now time.Time) {
	if size, ok := s.resize.Due(now); ok && size != s.surface {
		s.surface = size
		if err := s.rebuild(); err != nil {
			logf("%v", err)
		}
	}
	ptr := s.pointer.Apply()
	rolled := s.driver.Step(now, s.pool.Particles(), Step{
		Speed:    s.settings.Speed,
		Strength: s.settings.Strength,
		Mode:     s.settings.Mode,
		Pointer:  ptr,
	})
	if rolled {
		if s.debug {
			debugLogFrame(s.Stats())
		}
		s.emit()
	}
}

// Render draws the current pool.
func (s *Simulation) Render(c Canvas) {
	s.driver.Render(c, s.pool.Particles(), s.settings.Palette)
}

// Tick runs Step then Render.
func (s *Simulation) Tick(now time.Time, c Canvas) {
	s.Step(now)
	s.Render(c)
}

// Settings returns the sanitized settings in effect.
func (s *Simulation) Settings() Settings {
	return s.settings
}

// Surface returns the display surface size.
func (s *Simulation) Surface() image.Point {
	return s.surface
}

// Pool returns the particle pool.
func (s *Simulation) Pool() *Pool {
	return s.pool
}

// Raster returns the result of the most recent rasterization.
func (s *Simulation) Raster() Raster {
	return s.raster
}

// Pointer returns the committed pointer state.
func (s *Simulation) Pointer() PointerState {
	return s.pointer.State()
}

// ParticleCount returns the live pool size.
func (s *Simulation) ParticleCount() int {
	return s.pool.Len()
}

// FPS returns the measured frame rate.
func (s *Simulation) FPS() float64 {
	return s.driver.FPS()
}

// State returns the frame driver state.
func (s *Simulation) State() DriverState {
	return s.driver.State()
}

// Stats returns the live readout.
func (s *Simulation) Stats() Stats {
	return Stats{Particles: s.pool.Len(), FPS: s.driver.FPS()}
}
