// Package quantum is the particle and wave background engine. A Canvas owns
// two batches of particles, the shared pointer and palette, and a
// self-rescheduling frame callback that updates and draws everything.
package quantum

import (
	"errors"
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/iburimskiy/quantum-backdrop/internal/frame"
)

var (
	ErrMissingSurface   = errors.New("quantum: missing target surface")
	ErrMissingScheduler = errors.New("quantum: missing frame scheduler")
)

// Config holds the engine constants.
type Config struct {
	ParticleCount            int     `yaml:"particle_count"`
	WaveParticleCount        int     `yaml:"wave_particle_count"`
	MaxConnectionDistance    float64 `yaml:"max_connection_distance"`
	ParticleSpeed            float64 `yaml:"particle_speed"`
	PointerInteractionRadius float64 `yaml:"pointer_interaction_radius"`
}

func DefaultConfig() Config {
	return Config{
		ParticleCount:            100,
		WaveParticleCount:        50,
		MaxConnectionDistance:    150,
		ParticleSpeed:            0.5,
		PointerInteractionRadius: 150,
	}
}

// Phase names reported to a PhaseTimer.
const (
	PhaseField       = "field"
	PhaseWave        = "wave"
	PhaseParticles   = "particles"
	PhaseConnections = "connections"
	PhaseWaveDots    = "wave_particles"
)

// PhaseTimer receives tick timing. telemetry.PerfCollector implements it.
type PhaseTimer interface {
	StartTick()
	StartPhase(name string)
	EndTick()
}

type nopTimer struct{}

func (nopTimer) StartTick()        {}
func (nopTimer) StartPhase(string) {}
func (nopTimer) EndTick()          {}

// Options configures NewCanvas. Zero values get sensible defaults.
type Options struct {
	Config Config
	Width  int
	Height int
	Theme  Theme
	// Rand drives every random parameter. Seed it for reproducible batches.
	Rand *rand.Rand
	// Now is the wall clock used for the particle pulse.
	Now    func() time.Time
	Logger *zap.Logger
	Timer  PhaseTimer
}

// State is the lifecycle state of a Canvas.
type State int

const (
	Uninitialized State = iota
	Running
	Stopped
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	}
	return "uninitialized"
}

// FrameStats describes the most recently rendered frame.
type FrameStats struct {
	Frame       int
	Particles   int
	Waves       int
	Connections int
}

// Canvas is the scene engine.
type Canvas struct {
	cfg     Config
	surface Surface
	sched   frame.Scheduler
	rng     *rand.Rand
	now     func() time.Time
	log     *zap.Logger
	timer   PhaseTimer

	width, height float64
	theme         Theme
	palette       Palette

	particles []*Particle
	waves     []*WaveParticle
	pointer   *Pointer

	time    int
	request frame.ID
	state   State
	last    FrameStats

	wavePath []Point
}

// NewCanvas sizes the canvas, builds both particle batches and schedules
// the first frame. Negative particle counts are treated as zero.
func NewCanvas(surface Surface, sched frame.Scheduler, opts Options) (*Canvas, error) {
	if surface == nil {
		return nil, ErrMissingSurface
	}
	if sched == nil {
		return nil, ErrMissingScheduler
	}

	cfg := opts.Config
	if cfg == (Config{}) {
		cfg = DefaultConfig()
	}
	cfg.ParticleCount = max(cfg.ParticleCount, 0)
	cfg.WaveParticleCount = max(cfg.WaveParticleCount, 0)
	c := &Canvas{
		cfg:     cfg,
		surface: surface,
		sched:   sched,
		rng:     opts.Rand,
		now:     opts.Now,
		log:     opts.Logger,
		timer:   opts.Timer,
		theme:   opts.Theme,
		palette: PaletteFor(opts.Theme),
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	if c.timer == nil {
		c.timer = nopTimer{}
	}

	c.width, c.height = clampSize(opts.Width, opts.Height)
	c.populate()
	c.state = Running
	c.request = c.sched.RequestFrame(c.tick)

	c.log.Info("quantum canvas started",
		zap.Float64("width", c.width),
		zap.Float64("height", c.height),
		zap.Stringer("theme", c.theme),
		zap.Int("particles", len(c.particles)),
		zap.Int("wave_particles", len(c.waves)),
	)
	return c, nil
}

// Resize stores the new size and rebuilds both batches. Prior positions are
// not carried over.
func (c *Canvas) Resize(width, height int) {
	c.width, c.height = clampSize(width, height)
	c.populate()
	c.log.Debug("quantum canvas resized", zap.Float64("width", c.width), zap.Float64("height", c.height))
}

// SetTheme swaps the palette and rebuilds both batches, since colors are
// baked into each particle when it is created.
func (c *Canvas) SetTheme(t Theme) {
	c.theme = t
	c.palette = PaletteFor(t)
	c.populate()
	c.log.Debug("quantum canvas theme changed", zap.Stringer("theme", t))
}

func (c *Canvas) PointerMove(x, y float64) {
	c.pointer = &Pointer{X: x, Y: y}
}

func (c *Canvas) PointerLeave() {
	c.pointer = nil
}

// Stop cancels the pending frame. No further ticks run.
func (c *Canvas) Stop() {
	if c.state != Running {
		return
	}
	c.sched.CancelFrame(c.request)
	c.request = 0
	c.state = Stopped
	c.log.Info("quantum canvas stopped", zap.Int("frames", c.time))
}

func (c *Canvas) State() State         { return c.state }
func (c *Canvas) Theme() Theme         { return c.theme }
func (c *Canvas) Palette() Palette     { return c.palette }
func (c *Canvas) Time() int            { return c.time }
func (c *Canvas) LastFrame() FrameStats { return c.last }
func (c *Canvas) Config() Config       { return c.cfg }

func (c *Canvas) Size() (width, height float64) { return c.width, c.height }

// Particles exposes the current free-particle batch.
func (c *Canvas) Particles() []*Particle { return c.particles }

// Waves exposes the current wave-particle batch.
func (c *Canvas) Waves() []*WaveParticle { return c.waves }

// populate builds fresh batches and swaps them in together.
func (c *Canvas) populate() {
	particles := make([]*Particle, c.cfg.ParticleCount)
	for i := range particles {
		particles[i] = newParticle(c.rng, c.width, c.height, c.cfg.ParticleSpeed, &c.palette)
	}
	waves := make([]*WaveParticle, c.cfg.WaveParticleCount)
	for i := range waves {
		waves[i] = newWaveParticle(c.rng, i, len(waves), c.width, c.height, &c.palette)
	}
	c.particles, c.waves = particles, waves
}

func (c *Canvas) tick() {
	if c.state != Running {
		return
	}
	c.timer.StartTick()
	c.surface.Clear()

	c.timer.StartPhase(PhaseField)
	c.drawField()

	c.timer.StartPhase(PhaseWave)
	c.drawWave()

	c.timer.StartPhase(PhaseParticles)
	nowMs := float64(c.now().UnixNano()) / float64(time.Millisecond)
	for _, p := range c.particles {
		p.Update(c.pointer, c.cfg.PointerInteractionRadius, c.width, c.height)
		p.Draw(c.surface, nowMs)
	}

	c.timer.StartPhase(PhaseConnections)
	connections := c.drawConnections()

	c.timer.StartPhase(PhaseWaveDots)
	for _, w := range c.waves {
		w.Update(c.time, c.width)
		w.Draw(c.surface)
	}
	c.timer.EndTick()

	c.last = FrameStats{
		Frame:       c.time,
		Particles:   len(c.particles),
		Waves:       len(c.waves),
		Connections: connections,
	}
	c.time++
	c.request = c.sched.RequestFrame(c.tick)
}

func (c *Canvas) drawField() {
	cx, cy := c.width/2, c.height/2
	c.surface.FillRadialGradient(cx, cy, c.width/2, []GradientStop{
		{Offset: 0, Color: c.palette.Field[0]},
		{Offset: 0.5, Color: c.palette.Field[1]},
		{Offset: 1, Color: c.palette.Field[2]},
	})
}

// drawWave strokes the decorative double sine across the full width.
func (c *Canvas) drawWave() {
	c.wavePath = c.wavePath[:0]
	t := float64(c.time)
	for x := 0.0; x < c.width; x += 5 {
		y := c.height/2 +
			math.Sin(x*0.01+t*0.02)*50 +
			math.Sin(x*0.02+t*0.03)*30
		c.wavePath = append(c.wavePath, Point{X: x, Y: y})
	}
	c.surface.StrokePath(c.wavePath, 2, c.palette.Wave)
}

// drawConnections links every unordered pair closer than the max distance
// and returns how many lines were drawn.
func (c *Canvas) drawConnections() int {
	n := 0
	forEachConnection(c.particles, c.cfg.MaxConnectionDistance, func(a, b *Particle, opacity float64) {
		c.surface.StrokeLine(a.X, a.Y, b.X, b.Y, 1, Fade(c.palette.Connection, opacity))
		n++
	})
	return n
}

// forEachConnection visits each pair i<j whose distance is below maxDist.
// TODO: bucket particles into a grid of maxDist cells once counts grow past
// a few hundred; this pass is O(n²).
func forEachConnection(ps []*Particle, maxDist float64, fn func(a, b *Particle, opacity float64)) {
	if maxDist <= 0 {
		return
	}
	for i := 0; i < len(ps); i++ {
		for j := i + 1; j < len(ps); j++ {
			d := math.Hypot(ps[i].X-ps[j].X, ps[i].Y-ps[j].Y)
			if d < maxDist {
				fn(ps[i], ps[j], (1-d/maxDist)*0.5)
			}
		}
	}
}

func clampSize(w, h int) (float64, float64) {
	return float64(max(w, 1)), float64(max(h, 1))
}
