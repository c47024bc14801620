package typewriter

import (
	"testing"
	"time"
)

func TestTypewriterCycle(t *testing.T) {
	tw := New([]string{"AB", "C"}, DefaultTiming())

	steps := []struct {
		dt         time.Duration
		want       string
		keystrokes int
	}{
		{1499 * time.Millisecond, "", 0},
		{time.Millisecond, "A", 1},
		{100 * time.Millisecond, "AB", 1},
		{1999 * time.Millisecond, "AB", 0},
		{time.Millisecond, "A", 1},
		{50 * time.Millisecond, "", 1},
		{499 * time.Millisecond, "", 0},
		{time.Millisecond, "C", 1},
		{2000 * time.Millisecond, "", 1},
		{500 * time.Millisecond, "A", 1},
	}
	for i, st := range steps {
		n := tw.Advance(st.dt)
		if got := tw.Text(); got != st.want || n != st.keystrokes {
			t.Fatalf("step %d: text=%q keystrokes=%d, want %q and %d", i, got, n, st.want, st.keystrokes)
		}
	}
	if tw.Phrase() != 0 {
		t.Errorf("phrase = %d, want wrap to 0", tw.Phrase())
	}
}

func TestTypewriterLargeStepCatchesUp(t *testing.T) {
	tw := New([]string{"Generative AI Developer"}, DefaultTiming())
	n := tw.Advance(1500*time.Millisecond + 22*100*time.Millisecond)
	if n != 23 {
		t.Errorf("keystrokes = %d, want 23", n)
	}
	if got := tw.Text(); got != "Generative AI Developer" {
		t.Errorf("text = %q", got)
	}
}

func TestTypewriterUnicodeAndEmpty(t *testing.T) {
	tw := New([]string{"héllo"}, DefaultTiming())
	tw.Advance(1500*time.Millisecond + 100*time.Millisecond)
	if got := tw.Text(); got != "hé" {
		t.Errorf("text = %q, want %q", got, "hé")
	}

	empty := New(nil, DefaultTiming())
	if n := empty.Advance(time.Hour); n != 0 || empty.Text() != "" {
		t.Errorf("empty typewriter produced %d keystrokes, text %q", n, empty.Text())
	}
}

func TestTypewriterZeroTimingDoesNotSpin(t *testing.T) {
	tw := New([]string{"abc"}, Timing{})
	if n := tw.Advance(time.Second); n != 1 {
		t.Errorf("keystrokes = %d, want 1", n)
	}
}
