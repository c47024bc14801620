package game

import (
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2/colorm"

	"github.com/iburimskiy/quantum-backdrop/internal/anim"
)

const (
	superpositionDuration = 2 * time.Second
	toastDuration         = 3 * time.Second
	toastText             = "Quantum Mode Activated! You found the easter egg!"
)

// hueShift is the superposition hue rotation in degrees at elapsed time.
// It eases from 0 to 180 over the first half and back over the second.
func hueShift(elapsed time.Duration) float64 {
	p := float64(elapsed) / float64(superpositionDuration)
	switch {
	case p <= 0 || p >= 1:
		return 0
	case p < 0.5:
		return 180 * anim.EaseInOut(p*2)
	default:
		return 180 * (1 - anim.EaseInOut((p-0.5)*2))
	}
}

// superposition drives quantum mode: a hue rotation of the whole scene and
// then a toast.
type superposition struct {
	active     bool
	started    time.Duration
	toastUntil time.Duration
}

func (s *superposition) Start(now time.Duration) {
	s.active = true
	s.started = now
	s.toastUntil = 0
}

// Update ends the rotation once it has run and reports whether the toast
// just appeared.
func (s *superposition) Update(now time.Duration) (toast bool) {
	if !s.active || now-s.started < superpositionDuration {
		return false
	}
	s.active = false
	s.toastUntil = now + toastDuration
	return true
}

func (s *superposition) Toast(now time.Duration) (string, bool) {
	if now < s.toastUntil {
		return toastText, true
	}
	return "", false
}

// ColorM returns the hue rotation for now, and false when none applies.
func (s *superposition) ColorM(now time.Duration) (colorm.ColorM, bool) {
	var cm colorm.ColorM
	if !s.active {
		return cm, false
	}
	deg := hueShift(now - s.started)
	if deg == 0 {
		return cm, false
	}
	cm.RotateHue(deg * math.Pi / 180)
	return cm, true
}
