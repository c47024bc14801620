package cursor

import (
	"math"
	"testing"
)

func TestRingConvergesOnDot(t *testing.T) {
	c := New(60)
	c.Move(0, 0)
	c.Move(300, 200)

	prev := math.Hypot(300, 200)
	for i := 0; i < 120; i++ {
		c.Update()
	}
	rx, ry := c.Ring()
	d := math.Hypot(rx-300, ry-200)
	if d >= prev || d > 1 {
		t.Errorf("ring still %.2fpx from dot after 2s", d)
	}
	if x, y := c.Dot(); x != 300 || y != 200 {
		t.Errorf("dot = (%v, %v), want (300, 200)", x, y)
	}
}

func TestFirstMoveSnapsRing(t *testing.T) {
	c := New(60)
	c.Move(50, 60)
	if rx, ry := c.Ring(); rx != 50 || ry != 60 {
		t.Errorf("ring = (%v, %v), want (50, 60)", rx, ry)
	}
	c.Hide()
	if c.Visible() {
		t.Error("cursor visible after Hide")
	}
	c.Move(10, 10)
	if rx, _ := c.Ring(); rx != 10 {
		t.Errorf("ring did not snap after re-entering: x = %v", rx)
	}
}

func TestRingRadiusFollowsLevel(t *testing.T) {
	c := New(60)
	tests := []struct {
		level, want float64
	}{
		{-1, ringRadius},
		{0, ringRadius},
		{0.5, ringRadius + ringGrowth/2},
		{3, ringRadius + ringGrowth},
	}
	for _, tt := range tests {
		c.SetLevel(tt.level)
		if got := c.RingRadius(); got != tt.want {
			t.Errorf("SetLevel(%v): radius = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestRingColorBlendsWithLevel(t *testing.T) {
	c := New(60)
	if got := c.RingColor(); got != ringColor {
		t.Errorf("silent ring color = %v, want %v", got, ringColor)
	}
	c.SetLevel(1)
	if got := c.RingColor(); got != ringPeak {
		t.Errorf("loud ring color = %v, want %v", got, ringPeak)
	}
	c.SetLevel(0.5)
	mid := c.RingColor()
	if mid.R <= ringColor.R || mid.R >= ringPeak.R || mid.A <= ringColor.A || mid.A >= ringPeak.A {
		t.Errorf("half level ring color = %v, want between %v and %v", mid, ringColor, ringPeak)
	}
}
