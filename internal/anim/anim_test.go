package anim

import (
	"math"
	"testing"
	"time"
)

func TestCubicBezierEndpointsAndMonotonic(t *testing.T) {
	easings := map[string]Easing{
		"ease-in-out": EaseInOut,
		"ease-out":    EaseOutQuad,
		"linear":      CubicBezier(0, 0, 1, 1),
	}
	for name, ease := range easings {
		t.Run(name, func(t *testing.T) {
			if ease(0) != 0 || ease(1) != 1 {
				t.Errorf("endpoints = %v, %v", ease(0), ease(1))
			}
			prev := 0.0
			for i := 1; i <= 100; i++ {
				v := ease(float64(i) / 100)
				if v < prev-1e-9 {
					t.Fatalf("not monotonic at %d: %v < %v", i, v, prev)
				}
				prev = v
			}
		})
	}
}

func TestCubicBezierKnownValues(t *testing.T) {
	tests := []struct {
		name string
		ease Easing
		t    float64
		want float64
	}{
		{"ease-in-out midpoint", EaseInOut, 0.5, 0.5},
		{"linear quarter", CubicBezier(0, 0, 1, 1), 0.25, 0.25},
		{"clamped below", EaseInOut, -1, 0},
		{"clamped above", EaseInOut, 2, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ease(tt.t); math.Abs(got-tt.want) > 1e-4 {
				t.Errorf("ease(%v) = %v, want %v", tt.t, got, tt.want)
			}
		})
	}
	if EaseOutQuad(0.5) <= 0.5 {
		t.Error("ease-out should be ahead of linear at the midpoint")
	}
}

func TestTrackAtHitsKeyframes(t *testing.T) {
	for _, kf := range FloatParticle.Frames {
		got := FloatParticle.At(kf.Offset)
		if math.Abs(got.DX-kf.Pose.DX) > 1e-9 || math.Abs(got.DY-kf.Pose.DY) > 1e-9 || math.Abs(got.Scale-kf.Pose.Scale) > 1e-9 {
			t.Errorf("At(%v) = %+v, want %+v", kf.Offset, got, kf.Pose)
		}
	}
	mid := FloatParticle.At(0.125)
	if mid.DX <= 0 || mid.DX >= 10 || mid.DY >= 0 || mid.DY <= -20 {
		t.Errorf("At(0.125) = %+v, want between first two keyframes", mid)
	}
}

func TestTrackLoop(t *testing.T) {
	d, delay := 10*time.Second, 2*time.Second

	if got := FloatParticle.Loop(time.Second, d, delay); got != FloatParticle.At(0) {
		t.Errorf("before delay = %+v, want first keyframe", got)
	}
	a := FloatParticle.Loop(delay+2500*time.Millisecond, d, delay)
	b := FloatParticle.Loop(delay+12500*time.Millisecond, d, delay)
	if math.Abs(a.DX-b.DX) > 1e-9 || math.Abs(a.DY-b.DY) > 1e-9 {
		t.Errorf("loop not periodic: %+v vs %+v", a, b)
	}
	if math.Abs(a.DX-10) > 1e-9 || math.Abs(a.DY+20) > 1e-9 {
		t.Errorf("quarter pose = %+v, want (10,-20)", a)
	}
}

func TestTrackOnce(t *testing.T) {
	tr := NewTrack(Linear,
		Keyframe{Offset: 1, Pose: Pose{Scale: 0, Opacity: 0}},
		Keyframe{Offset: 0, Pose: Pose{Scale: 1, Opacity: 1}},
	)
	p, done := tr.Once(400*time.Millisecond, 800*time.Millisecond)
	if done || math.Abs(p.Opacity-0.5) > 1e-9 {
		t.Errorf("Once(half) = %+v, %v", p, done)
	}
	p, done = tr.Once(time.Second, 800*time.Millisecond)
	if !done || p.Opacity != 0 {
		t.Errorf("Once(after) = %+v, %v", p, done)
	}
}

func TestCounterReachesTargetExactly(t *testing.T) {
	c := NewCounter(150, 2*time.Second)
	prev := -1
	steps := 0
	for {
		v, done := c.Step()
		steps++
		if v < prev {
			t.Fatalf("counter went backwards: %d after %d", v, prev)
		}
		prev = v
		if done {
			break
		}
		if steps > 1000 {
			t.Fatal("counter never finished")
		}
	}
	if prev != 150 {
		t.Errorf("final = %d, want 150", prev)
	}
	if steps < 120 || steps > 127 {
		t.Errorf("steps = %d, want about 125", steps)
	}
	if v, done := c.Step(); v != 150 || !done {
		t.Errorf("Step after done = %d, %v", v, done)
	}
}

func TestCounterRetarget(t *testing.T) {
	c := NewCounter(10, 16*time.Millisecond)
	if v, done := c.Step(); v != 10 || !done {
		t.Fatalf("one-step counter = %d, %v", v, done)
	}
	c.Retarget(20)
	if c.Done() {
		t.Error("Retarget did not restart the counter")
	}
}
