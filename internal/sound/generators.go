package sound

import (
	"math"

	"github.com/faiface/beep"
)

// ClickGenerator is a short percussive tick for typewriter keystrokes.
type ClickGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

func NewClickGenerator(sr beep.SampleRate, freq float64) *ClickGenerator {
	return &ClickGenerator{sr: sr, freq: freq}
}

func (g *ClickGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		// sharp attack, ~8ms decay
		envelope := math.Exp(-t / 0.008)
		sample := 0.25 * envelope * math.Sin(2*math.Pi*g.freq*t)
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ClickGenerator) Err() error { return nil }

// ChimeGenerator plays two rising notes, each with a soft bell envelope.
type ChimeGenerator struct {
	sr    beep.SampleRate
	notes [2]float64
	note  float64 // seconds per note
	pos   int
}

func NewChimeGenerator(sr beep.SampleRate) *ChimeGenerator {
	return &ChimeGenerator{sr: sr, notes: [2]float64{880, 1318.5}, note: 0.18}
}

func (g *ChimeGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		idx := int(t / g.note)
		if idx > 1 {
			idx = 1
		}
		local := t - float64(idx)*g.note
		attack := math.Min(local/0.005, 1)
		envelope := attack * math.Exp(-local/0.12)
		freq := g.notes[idx]
		sample := 0.2 * envelope * (math.Sin(2*math.Pi*freq*t) + 0.3*math.Sin(4*math.Pi*freq*t))
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ChimeGenerator) Err() error { return nil }
