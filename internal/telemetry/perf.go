// Package telemetry times engine ticks and exports the rolling statistics.
package telemetry

import (
	"sort"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gonum.org/v1/gonum/stat"

	"github.com/iburimskiy/quantum-backdrop/internal/quantum"
)

// Phases in draw order, as reported by quantum.Canvas.
var Phases = []string{
	quantum.PhaseField,
	quantum.PhaseWave,
	quantum.PhaseParticles,
	quantum.PhaseConnections,
	quantum.PhaseWaveDots,
}

// PerfSample holds timing data for a single tick.
type PerfSample struct {
	TickDuration time.Duration
	Phases       map[string]time.Duration
}

// PerfCollector tracks tick timing over a rolling window. It satisfies
// quantum.PhaseTimer.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	total         int
	currentPhases map[string]time.Duration
	tickStart     time.Time
	phaseStart    time.Time
	lastPhase     string

	lastFrameTime time.Time
	frameDuration time.Duration

	now func() time.Time
}

var _ quantum.PhaseTimer = (*PerfCollector)(nil)

// NewPerfCollector keeps the last windowSize ticks; 60 when windowSize < 1.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
		now:           time.Now,
	}
}

// WithClock replaces the wall clock. Tests only.
func (p *PerfCollector) WithClock(now func() time.Time) *PerfCollector {
	p.now = now
	return p
}

func (p *PerfCollector) StartTick() {
	p.tickStart = p.now()
	p.currentPhases = make(map[string]time.Duration, len(Phases))
	p.lastPhase = ""
}

// StartPhase closes the running phase, if any, and opens the named one.
func (p *PerfCollector) StartPhase(phase string) {
	now := p.now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

func (p *PerfCollector) EndTick() {
	now := p.now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.samples[p.writeIndex] = PerfSample{
		TickDuration: now.Sub(p.tickStart),
		Phases:       p.currentPhases,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
	p.total++
	p.lastPhase = ""
}

// Ticks is the number of ticks recorded since creation.
func (p *PerfCollector) Ticks() int { return p.total }

// RecordFrame measures the interval between host Draw calls.
func (p *PerfCollector) RecordFrame() {
	now := p.now()
	if !p.lastFrameTime.IsZero() {
		p.frameDuration = now.Sub(p.lastFrameTime)
	}
	p.lastFrameTime = now
}

// PerfStats holds aggregated statistics over the window.
type PerfStats struct {
	Samples int

	AvgTick time.Duration
	P50Tick time.Duration
	P95Tick time.Duration
	MaxTick time.Duration

	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64

	FrameDuration time.Duration
	FPS           float64
}

// Stats computes the mean and quantiles over the current window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{
		Samples:       p.sampleCount,
		PhaseAvg:      make(map[string]time.Duration),
		PhasePct:      make(map[string]float64),
		FrameDuration: p.frameDuration,
	}
	if p.frameDuration > 0 {
		s.FPS = float64(time.Second) / float64(p.frameDuration)
	}
	if p.sampleCount == 0 {
		return s
	}

	ticks := make([]float64, p.sampleCount)
	phaseSum := make(map[string]time.Duration)
	for i := 0; i < p.sampleCount; i++ {
		sample := p.samples[i]
		ticks[i] = float64(sample.TickDuration)
		for phase, d := range sample.Phases {
			phaseSum[phase] += d
		}
	}
	sort.Float64s(ticks)

	s.AvgTick = time.Duration(stat.Mean(ticks, nil))
	s.P50Tick = time.Duration(stat.Quantile(0.5, stat.Empirical, ticks, nil))
	s.P95Tick = time.Duration(stat.Quantile(0.95, stat.Empirical, ticks, nil))
	s.MaxTick = time.Duration(ticks[len(ticks)-1])

	for phase, sum := range phaseSum {
		avg := sum / time.Duration(p.sampleCount)
		s.PhaseAvg[phase] = avg
		if s.AvgTick > 0 {
			s.PhasePct[phase] = float64(avg) / float64(s.AvgTick) * 100
		}
	}
	return s
}

// MarshalLogObject lets PerfStats go straight into zap.Object.
func (s PerfStats) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddInt("samples", s.Samples)
	enc.AddInt64("avg_tick_us", s.AvgTick.Microseconds())
	enc.AddInt64("p50_tick_us", s.P50Tick.Microseconds())
	enc.AddInt64("p95_tick_us", s.P95Tick.Microseconds())
	enc.AddInt64("max_tick_us", s.MaxTick.Microseconds())
	if s.FPS > 0 {
		enc.AddFloat64("fps", s.FPS)
	}
	for _, phase := range Phases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			enc.AddFloat64(phase+"_pct", pct)
		}
	}
	return nil
}

// Log writes one perf line.
func (s PerfStats) Log(log *zap.Logger) {
	log.Info("perf", zap.Object("stats", s))
}

// PerfStatsCSV is the flat perf.csv row.
type PerfStatsCSV struct {
	Frame          int     `csv:"frame"`
	AvgTickUS      int64   `csv:"avg_tick_us"`
	P50TickUS      int64   `csv:"p50_tick_us"`
	P95TickUS      int64   `csv:"p95_tick_us"`
	MaxTickUS      int64   `csv:"max_tick_us"`
	FPS            float64 `csv:"fps"`
	Connections    int     `csv:"connections"`
	FieldPct       float64 `csv:"field_pct"`
	WavePct        float64 `csv:"wave_pct"`
	ParticlesPct   float64 `csv:"particles_pct"`
	ConnectionsPct float64 `csv:"connections_pct"`
	WaveDotsPct    float64 `csv:"wave_particles_pct"`
}

// ToCSV flattens s together with the frame it was taken at.
func (s PerfStats) ToCSV(fs quantum.FrameStats) PerfStatsCSV {
	return PerfStatsCSV{
		Frame:          fs.Frame,
		AvgTickUS:      s.AvgTick.Microseconds(),
		P50TickUS:      s.P50Tick.Microseconds(),
		P95TickUS:      s.P95Tick.Microseconds(),
		MaxTickUS:      s.MaxTick.Microseconds(),
		FPS:            s.FPS,
		Connections:    fs.Connections,
		FieldPct:       s.PhasePct[quantum.PhaseField],
		WavePct:        s.PhasePct[quantum.PhaseWave],
		ParticlesPct:   s.PhasePct[quantum.PhaseParticles],
		ConnectionsPct: s.PhasePct[quantum.PhaseConnections],
		WaveDotsPct:    s.PhasePct[quantum.PhaseWaveDots],
	}
}
