// Package game hosts the backdrop in an ebiten window. All scene state is
// owned by the update goroutine; dialogs run elsewhere and hand their
// results back through an event queue drained at the top of Update.
package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/iburimskiy/quantum-backdrop/internal/ambient"
	"github.com/iburimskiy/quantum-backdrop/internal/anim"
	"github.com/iburimskiy/quantum-backdrop/internal/config"
	"github.com/iburimskiy/quantum-backdrop/internal/contact"
	"github.com/iburimskiy/quantum-backdrop/internal/cursor"
	"github.com/iburimskiy/quantum-backdrop/internal/frame"
	"github.com/iburimskiy/quantum-backdrop/internal/quantum"
	"github.com/iburimskiy/quantum-backdrop/internal/render"
	"github.com/iburimskiy/quantum-backdrop/internal/scramble"
	"github.com/iburimskiy/quantum-backdrop/internal/sound"
	"github.com/iburimskiy/quantum-backdrop/internal/telemetry"
	"github.com/iburimskiy/quantum-backdrop/internal/typewriter"
)

const counterDuration = 2 * time.Second

// Options wires a Game. Config is required.
type Options struct {
	Config   *config.Config
	Rand     *rand.Rand
	Logger   *zap.Logger
	Sound    *sound.Manager
	Output   *telemetry.OutputManager
	Prompter contact.Prompter
	Debug    bool
}

type Game struct {
	ctx    context.Context
	cancel context.CancelFunc

	cfg   *config.Config
	log   *zap.Logger
	rng   *rand.Rand
	debug bool

	// scene
	loop    *frame.Loop
	surface *render.Canvas
	scene   *ebiten.Image
	engine  *quantum.Canvas
	layer   *ambient.Layer
	field   *ambient.Field
	theme   quantum.Theme
	fonts   *render.Fonts
	cursor  *cursor.Cursor

	// text
	typewriter   *typewriter.Typewriter
	headline     *scramble.Label
	scrambler    *scramble.Scrambler
	scrambleDone <-chan error
	titles       []string
	title        int

	counters      []*anim.Counter
	counterValues []int

	quantumMode superposition
	konami      *sequence

	// services
	sound    *sound.Manager
	perf     *telemetry.PerfCollector
	output   *telemetry.OutputManager
	prompter contact.Prompter

	// events posted from dialog goroutines
	events     chan func()
	dialogOpen bool

	// input and window state
	keys               []ebiten.Key
	pointerIn          bool
	pointerX, pointerY int
	width, height      int
	pendingW, pendingH int
	now                time.Duration
	started            time.Time
	lastReport         int

	paused  bool
	lastErr error
}

func New(opts Options) (*Game, error) {
	if opts.Config == nil {
		return nil, errors.New("game: missing config")
	}
	g := &Game{
		cfg:      opts.Config,
		log:      opts.Logger,
		rng:      opts.Rand,
		debug:    opts.Debug,
		sound:    opts.Sound,
		output:   opts.Output,
		prompter: opts.Prompter,
		loop:     frame.NewLoop(),
		konami:   newKonami(),
		events:   make(chan func(), 16),
		started:  time.Now(),
	}
	g.ctx, g.cancel = context.WithCancel(context.Background())
	if g.log == nil {
		g.log = zap.NewNop()
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if g.sound == nil {
		g.sound = sound.NewManager(sound.Config{}, g.log)
	}
	if g.prompter == nil {
		g.prompter = contact.ZenityPrompter{}
	}

	fonts, err := render.LoadFonts()
	if err != nil {
		return nil, err
	}
	g.fonts = fonts

	g.width, g.height = g.cfg.Window.Width, g.cfg.Window.Height
	g.pendingW, g.pendingH = g.width, g.height
	g.surface = render.NewCanvas(g.width, g.height)
	g.scene = ebiten.NewImage(g.width, g.height)
	g.layer = ambient.NewLayer(g.width, g.height)
	g.cursor = cursor.New(g.cfg.Window.TPS)
	g.perf = telemetry.NewPerfCollector(g.cfg.Telemetry.Window)

	g.headline = scramble.NewLabel(g.cfg.Headline)
	g.scrambler, err = scramble.New(g.headline, g.loop, g.rng)
	if err != nil {
		return nil, err
	}

	if err := g.build(); err != nil {
		return nil, err
	}
	return g, nil
}

// build creates everything that depends on the loaded config. It runs at
// startup and again whenever a new config file is opened.
func (g *Game) build() error {
	g.theme = g.cfg.Derived.Theme
	if g.engine != nil {
		g.engine.Stop()
	}
	if err := g.startEngine(); err != nil {
		return err
	}
	if err := g.rebuildField(); err != nil {
		return err
	}

	g.typewriter = typewriter.New(g.cfg.Typewriter.Phrases, g.cfg.Typewriter.Timing)
	g.titles = append([]string{g.cfg.Headline}, g.cfg.Typewriter.Phrases...)
	g.title = 0

	g.counters = syncCounters(g.counters, g.cfg.Counters)
	if len(g.counterValues) != len(g.counters) {
		g.counterValues = make([]int, len(g.counters))
	}
	g.paused = false
	return nil
}

// syncCounters matches counters to cfgs by position. Existing counters are
// retargeted, so an unchanged target keeps its finished value; extra ones are
// dropped and missing ones start from zero.
func syncCounters(counters []*anim.Counter, cfgs []config.CounterConfig) []*anim.Counter {
	counters = counters[:min(len(counters), len(cfgs))]
	for i, c := range counters {
		c.Retarget(cfgs[i].Target)
	}
	for _, c := range cfgs[len(counters):] {
		counters = append(counters, anim.NewCounter(c.Target, counterDuration))
	}
	return counters
}

func (g *Game) startEngine() error {
	engine, err := quantum.NewCanvas(g.surface, g.loop, quantum.Options{
		Config: g.cfg.Quantum,
		Width:  g.width,
		Height: g.height,
		Theme:  g.theme,
		Rand:   g.rng,
		Logger: g.log.Named("quantum"),
		Timer:  g.perf,
	})
	if err != nil {
		return fmt.Errorf("starting quantum canvas: %w", err)
	}
	g.engine = engine
	// the new engine has not seen the pointer yet
	g.pointerIn = false
	return nil
}

func (g *Game) rebuildField() error {
	if g.field != nil {
		g.field.Destroy()
	}
	field, err := ambient.NewField(g.layer, g.theme, g.rng, g.cfg.Ambient.Count)
	if err != nil {
		return fmt.Errorf("creating ambient field: %w", err)
	}
	g.field = field
	return nil
}

func (g *Game) Update() error {
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = g.cfg.Window.TPS
	}
	dt := time.Second / time.Duration(tps)
	g.now += dt

	g.drainEvents()
	if g.pendingW != g.width || g.pendingH != g.height {
		g.resize(g.pendingW, g.pendingH)
	}
	g.updatePointer()
	if err := g.handleKeys(); err != nil {
		return err
	}

	g.loop.Run()
	g.pollScramble()

	if g.typewriter.Advance(dt) > 0 {
		g.sound.PlayClick()
	}
	for i, c := range g.counters {
		g.counterValues[i], _ = c.Step()
	}
	g.cursor.SetLevel(g.sound.Level())
	g.cursor.Update()
	g.layer.Advance(dt)

	if g.quantumMode.Update(g.now) {
		g.log.Info("quantum mode finished")
	}
	g.reportPerf()
	return nil
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.pendingW, g.pendingH = max(outsideWidth, 1), max(outsideHeight, 1)
	return g.pendingW, g.pendingH
}

// Close stops the scene and abandons any open dialog.
func (g *Game) Close() {
	g.cancel()
	if g.engine != nil {
		g.engine.Stop()
	}
	if g.field != nil {
		g.field.Destroy()
	}
}

// post queues fn to run on the update goroutine.
func (g *Game) post(fn func()) {
	select {
	case g.events <- fn:
	case <-g.ctx.Done():
	}
}

func (g *Game) drainEvents() {
	for {
		select {
		case fn := <-g.events:
			fn()
		default:
			return
		}
	}
}

func (g *Game) resize(w, h int) {
	g.width, g.height = w, h
	g.surface.Resize(w, h)
	g.scene.Deallocate()
	g.scene = ebiten.NewImage(w, h)
	g.layer.Resize(w, h)
	g.engine.Resize(w, h)
}

func (g *Game) updatePointer() {
	x, y := ebiten.CursorPosition()
	if !ebiten.IsFocused() || !inside(x, y, g.width, g.height) {
		if g.pointerIn {
			g.pointerIn = false
			g.engine.PointerLeave()
			g.cursor.Hide()
		}
		return
	}
	if g.pointerIn && x == g.pointerX && y == g.pointerY {
		return
	}
	g.pointerIn, g.pointerX, g.pointerY = true, x, y
	g.engine.PointerMove(float64(x), float64(y))
	g.cursor.Move(float64(x), float64(y))
}

func (g *Game) pollScramble() {
	if g.scrambleDone == nil {
		return
	}
	select {
	case err := <-g.scrambleDone:
		g.scrambleDone = nil
		if err != nil {
			g.log.Debug("headline scramble ended early", zap.Error(err))
		}
	default:
	}
}

func (g *Game) reportPerf() {
	interval := g.cfg.Telemetry.LogInterval
	ticks := g.perf.Ticks()
	if interval <= 0 || ticks == 0 || ticks == g.lastReport || ticks%interval != 0 {
		return
	}
	g.lastReport = ticks
	stats := g.perf.Stats()
	stats.Log(g.log.Named("perf"))
	if err := g.output.WritePerf(stats.ToCSV(g.engine.LastFrame())); err != nil {
		g.fail("writing perf row", err)
	}
}

// fail records err for the status line.
func (g *Game) fail(msg string, err error) {
	g.lastErr = fmt.Errorf("%s: %w", msg, err)
	g.log.Error(msg, zap.Error(err))
}
