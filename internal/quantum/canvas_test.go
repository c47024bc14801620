package quantum

import (
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/iburimskiy/quantum-backdrop/internal/frame"
)

func newTestCanvas(t *testing.T, cfg Config, w, h int) (*Canvas, *recorder, *frame.Loop) {
	t.Helper()
	rec := &recorder{}
	loop := frame.NewLoop()
	c, err := NewCanvas(rec, loop, Options{
		Config: cfg,
		Width:  w,
		Height: h,
		Rand:   rand.New(rand.NewSource(42)),
		Now:    func() time.Time { return time.UnixMilli(1_700_000_000_000) },
		Logger: zaptest.NewLogger(t),
	})
	if err != nil {
		t.Fatalf("NewCanvas: %v", err)
	}
	return c, rec, loop
}

func TestNewCanvasRequiresTargets(t *testing.T) {
	if _, err := NewCanvas(nil, frame.NewLoop(), Options{}); !errors.Is(err, ErrMissingSurface) {
		t.Errorf("nil surface err = %v, want ErrMissingSurface", err)
	}
	if _, err := NewCanvas(&recorder{}, nil, Options{}); !errors.Is(err, ErrMissingScheduler) {
		t.Errorf("nil scheduler err = %v, want ErrMissingScheduler", err)
	}
}

func TestNewCanvasDefaults(t *testing.T) {
	c, _, loop := newTestCanvas(t, Config{}, 1024, 768)

	if c.State() != Running {
		t.Errorf("state = %v, want running", c.State())
	}
	if got := len(c.Particles()); got != 100 {
		t.Errorf("particles = %d, want 100", got)
	}
	if got := len(c.Waves()); got != 50 {
		t.Errorf("waves = %d, want 50", got)
	}
	if loop.Pending() != 1 {
		t.Errorf("pending frames = %d, want 1", loop.Pending())
	}
}

func TestCanvasTickWithoutPointerMovesByVelocity(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ParticleCount = 2
	c, _, loop := newTestCanvas(t, cfg, 800, 600)

	type pos struct{ x, y, vx, vy float64 }
	before := make([]pos, 0, 2)
	for i, p := range c.Particles() {
		// Keep clear of the edges so no wrap is involved.
		p.X, p.Y = 200+float64(i)*300, 300
		before = append(before, pos{p.X, p.Y, p.VX, p.VY})
	}

	loop.Run()

	for i, p := range c.Particles() {
		b := before[i]
		if math.Abs(p.X-(b.x+b.vx)) > 1e-9 || math.Abs(p.Y-(b.y+b.vy)) > 1e-9 {
			t.Errorf("particle %d at (%v, %v), want (%v, %v)", i, p.X, p.Y, b.x+b.vx, b.y+b.vy)
		}
	}
	if c.Time() != 1 {
		t.Errorf("time = %d, want 1", c.Time())
	}
}

func TestCanvasTickDrawOrder(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ParticleCount = 4
	cfg.WaveParticleCount = 3
	c, rec, loop := newTestCanvas(t, cfg, 400, 300)

	loop.Run()

	if rec.clears != 1 || rec.gradients != 1 {
		t.Errorf("clears=%d gradients=%d, want 1 and 1", rec.clears, rec.gradients)
	}
	if len(rec.paths) != 1 || len(rec.paths[0]) != 80 {
		t.Errorf("wave path = %d paths, want one of 80 points", len(rec.paths))
	}
	// one glow per particle and per wave particle, one core per particle
	if rec.glows != 7 || rec.circles != 4 {
		t.Errorf("glows=%d circles=%d, want 7 and 4", rec.glows, rec.circles)
	}
	if got := c.LastFrame(); got.Particles != 4 || got.Waves != 3 || got.Connections != len(rec.lines) {
		t.Errorf("LastFrame = %+v, lines drawn = %d", got, len(rec.lines))
	}
	if loop.Pending() != 1 {
		t.Errorf("next frame not requested")
	}
}

func TestCanvasConnectionsSymmetricWithoutSelfPairs(t *testing.T) {
	ps := []*Particle{
		{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 0, Y: 100}, {X: 500, Y: 500}, {X: 0, Y: 0},
	}
	seen := map[[2]*Particle]int{}
	forEachConnection(ps, 150, func(a, b *Particle, opacity float64) {
		if a == b {
			t.Fatalf("self pair drawn for %p", a)
		}
		d := math.Hypot(a.X-b.X, a.Y-b.Y)
		if want := (1 - d/150) * 0.5; math.Abs(opacity-want) > 1e-9 {
			t.Errorf("opacity = %v, want %v", opacity, want)
		}
		seen[[2]*Particle{a, b}]++
	})

	for pair, n := range seen {
		if n != 1 {
			t.Errorf("pair drawn %d times", n)
		}
		if seen[[2]*Particle{pair[1], pair[0]}] != 0 {
			t.Error("pair drawn in both orders")
		}
	}
	// (0,1) (0,2) (0,4) (1,2) (1,4) (2,4); particle 3 is isolated
	if len(seen) != 6 {
		t.Errorf("connections = %d, want 6", len(seen))
	}
}

func TestCanvasBatchesRebuiltAtomically(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ParticleCount = 12
	cfg.WaveParticleCount = 5
	c, _, loop := newTestCanvas(t, cfg, 800, 600)
	first := c.Particles()[0]

	ops := []func(){
		func() { c.Resize(1280, 720) },
		func() { c.SetTheme(Dark) },
		func() { c.Resize(0, -10) },
		func() { c.SetTheme(Light) },
	}
	for i, op := range ops {
		op()
		if len(c.Particles()) != 12 || len(c.Waves()) != 5 {
			t.Fatalf("op %d: particles=%d waves=%d", i, len(c.Particles()), len(c.Waves()))
		}
		loop.Run()
	}
	if c.Particles()[0] == first {
		t.Error("particle batch was not recreated")
	}
}

func TestCanvasResizeClampsToMinimum(t *testing.T) {
	c, _, loop := newTestCanvas(t, Config{ParticleCount: 3, WaveParticleCount: 2}, 800, 600)
	c.Resize(0, -5)

	if w, h := c.Size(); w != 1 || h != 1 {
		t.Errorf("size = %vx%v, want 1x1", w, h)
	}
	loop.Run()
	if c.State() != Running || loop.Pending() != 1 {
		t.Error("loop stopped after degenerate resize")
	}
	for _, p := range c.Particles() {
		if p.X < 0 || p.X >= 1 || p.Y < 0 || p.Y >= 1 {
			t.Errorf("particle outside 1x1 canvas: (%v, %v)", p.X, p.Y)
		}
	}
}

func TestCanvasSetThemeDarkTwice(t *testing.T) {
	c, _, _ := newTestCanvas(t, DefaultConfig(), 800, 600)
	c.SetTheme(Dark)
	c.SetTheme(Dark)

	dark := PaletteFor(Dark)
	light := PaletteFor(Light)
	for i, p := range c.Particles() {
		if !dark.Has(p.Color) || light.Has(p.Color) {
			t.Fatalf("particle %d color %v not from dark set", i, p.Color)
		}
	}
	for i, w := range c.Waves() {
		if w.Color != dark.Secondary() {
			t.Fatalf("wave particle %d color %v, want dark secondary", i, w.Color)
		}
	}
}

func TestCanvasPointerLifecycle(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ParticleCount = 1
	c, _, loop := newTestCanvas(t, cfg, 800, 600)
	p := c.Particles()[0]
	p.X, p.Y, p.VX, p.VY = 400, 300, 0, 0

	c.PointerMove(390, 300)
	loop.Run()
	if p.X <= 400 {
		t.Errorf("particle not pushed away: x = %v", p.X)
	}

	x := p.X
	c.PointerLeave()
	loop.Run()
	if p.X != x {
		t.Errorf("particle moved with pointer absent: %v -> %v", x, p.X)
	}
}

func TestCanvasStop(t *testing.T) {
	c, rec, loop := newTestCanvas(t, Config{ParticleCount: 5, WaveParticleCount: 5}, 300, 300)
	loop.Run()
	c.Stop()
	c.Stop()

	clears := rec.clears
	for i := 0; i < 3; i++ {
		loop.Run()
	}
	if c.State() != Stopped {
		t.Errorf("state = %v, want stopped", c.State())
	}
	if rec.clears != clears || c.Time() != 1 {
		t.Errorf("ticks ran after Stop: clears %d -> %d, time %d", clears, rec.clears, c.Time())
	}
	if loop.Pending() != 0 {
		t.Errorf("pending = %d after Stop", loop.Pending())
	}
}

func TestCanvasSeededBatchesAreReproducible(t *testing.T) {
	a, _, _ := newTestCanvas(t, Config{ParticleCount: 8, WaveParticleCount: 4}, 640, 480)
	b, _, _ := newTestCanvas(t, Config{ParticleCount: 8, WaveParticleCount: 4}, 640, 480)
	for i := range a.Particles() {
		if *a.Particles()[i] != *b.Particles()[i] {
			t.Fatalf("particle %d differs between identically seeded canvases", i)
		}
	}
}

func TestNewCanvasClampsNegativeCounts(t *testing.T) {
	c, _, loop := newTestCanvas(t, Config{ParticleCount: -1, WaveParticleCount: 5}, 400, 300)
	if got := len(c.Particles()); got != 0 {
		t.Errorf("particles = %d, want 0", got)
	}
	if got := len(c.Waves()); got != 5 {
		t.Errorf("waves = %d, want 5", got)
	}
	if got := c.Config().ParticleCount; got != 0 {
		t.Errorf("Config().ParticleCount = %d, want 0", got)
	}

	loop.Run()
	if fs := c.LastFrame(); fs.Particles != 0 || fs.Waves != 5 || fs.Connections != 0 {
		t.Errorf("first frame = %+v", fs)
	}
	c.Resize(200, 100)
	if got := len(c.Waves()); got != 5 {
		t.Errorf("waves after resize = %d, want 5", got)
	}
}
