package sound

import (
	"math"
	"testing"
	"time"

	"github.com/faiface/beep"
)

// counting emits sample i as (i, -i) so order is observable.
func counting() beep.Streamer {
	i := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for j := range samples {
			i++
			samples[j] = [2]float64{float64(i), -float64(i)}
		}
		return len(samples), true
	})
}

func TestTapSnapshotOrderAndWrap(t *testing.T) {
	tap := NewTap(counting(), 4)
	buf := make([][2]float64, 3)
	tap.Stream(buf)
	tap.Stream(buf) // 6 samples through a ring of 4

	got := tap.Snapshot(3)
	want := []float64{4, 5, 6}
	for i := range want {
		if got[i][0] != want[i] {
			t.Fatalf("Snapshot(3) = %v, want first channel %v", got, want)
		}
	}
	if n := len(tap.Snapshot(10)); n != 4 {
		t.Errorf("Snapshot(10) len = %d, want ring size 4", n)
	}
}

func TestTapRMS(t *testing.T) {
	constant := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			samples[i] = [2]float64{0.5, 0.5}
		}
		return len(samples), true
	})
	tap := NewTap(constant, 64)
	tap.Stream(make([][2]float64, 64))
	if got := tap.RMS(64); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("RMS = %v, want 0.5", got)
	}

	// opposite channels cancel in the mono mix
	mirrored := NewTap(counting(), 8)
	mirrored.Stream(make([][2]float64, 8))
	if got := mirrored.RMS(8); got != 0 {
		t.Errorf("RMS of mirrored channels = %v, want 0", got)
	}
}

func TestGeneratorsDecay(t *testing.T) {
	tests := []struct {
		name string
		s    beep.Streamer
		dur  time.Duration
	}{
		{"click", NewClickGenerator(sampleRate, 1800), 40 * time.Millisecond},
		{"chime", NewChimeGenerator(sampleRate), 600 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := sampleRate.N(tt.dur)
			buf := make([][2]float64, n)
			got, _ := beep.Take(n, tt.s).Stream(buf)
			if got != n {
				t.Fatalf("streamed %d samples, want %d", got, n)
			}
			peak := 0.0
			for _, s := range buf {
				peak = math.Max(peak, math.Abs(s[0]))
				if s[0] != s[1] {
					t.Fatal("channels differ")
				}
			}
			tail := math.Abs(buf[n-1][0])
			if peak == 0 || peak > 1 || tail > peak/4 {
				t.Errorf("peak=%v tail=%v, want audible peak that decays", peak, tail)
			}
		})
	}
}

func TestDisabledManagerIsSilent(t *testing.T) {
	m := NewManager(Config{Enabled: false}, nil)
	if err := m.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	m.PlayClick()
	m.PlayChime()
	if got := m.Level(); got != 0 {
		t.Errorf("Level = %v, want 0", got)
	}
	m.Close()
}
