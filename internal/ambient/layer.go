// Package ambient draws decorative markers whose motion is fully described
// by keyframe tracks: the floating background field and the submit burst.
package ambient

import (
	"image/color"
	"slices"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/quantum-backdrop/internal/anim"
	"github.com/iburimskiy/quantum-backdrop/internal/quantum"
	"github.com/iburimskiy/quantum-backdrop/internal/render"
)

// Marker is a round decorative element. With Relative set, X and Y are
// percentages of the layer size; otherwise they are pixels.
type Marker struct {
	X, Y     float64
	Relative bool
	Size     float64
	Color    color.NRGBA
	Opacity  float64
	// Glow is the blur radius of the halo, in pixels.
	Glow float64

	Track    anim.Track
	Duration time.Duration
	Delay    time.Duration
	// Loop repeats the track forever; otherwise the marker is removed when
	// the track finishes.
	Loop bool

	born time.Duration
}

// Pose returns the animated pose at layer time now.
func (m *Marker) Pose(now time.Duration) (anim.Pose, bool) {
	elapsed := now - m.born
	if m.Loop {
		return m.Track.Loop(elapsed, m.Duration, m.Delay), false
	}
	return m.Track.Once(elapsed-m.Delay, m.Duration)
}

// Container accepts markers.
type Container interface {
	AppendChild(m *Marker)
	RemoveChild(m *Marker)
}

// Layer is the marker container composited over the canvas.
type Layer struct {
	markers       []*Marker
	width, height float64
	now           time.Duration
}

func NewLayer(width, height int) *Layer {
	l := &Layer{}
	l.Resize(width, height)
	return l
}

func (l *Layer) Resize(width, height int) {
	l.width, l.height = float64(max(width, 1)), float64(max(height, 1))
}

func (l *Layer) AppendChild(m *Marker) {
	m.born = l.now
	l.markers = append(l.markers, m)
}

func (l *Layer) RemoveChild(m *Marker) {
	l.markers = slices.DeleteFunc(l.markers, func(x *Marker) bool { return x == m })
}

func (l *Layer) Children() []*Marker { return l.markers }

// Now is the layer clock.
func (l *Layer) Now() time.Duration { return l.now }

// Advance moves the layer clock and drops finished one-shot markers.
func (l *Layer) Advance(dt time.Duration) {
	l.now += dt
	l.markers = slices.DeleteFunc(l.markers, func(m *Marker) bool {
		if m.Loop {
			return false
		}
		_, done := m.Pose(l.now)
		return done
	})
}

// Position resolves where m is drawn at the current layer time, and its
// scale and opacity.
func (l *Layer) Position(m *Marker) (x, y, scale, opacity float64) {
	pose, _ := m.Pose(l.now)
	x, y = m.X, m.Y
	if m.Relative {
		x, y = x/100*l.width, y/100*l.height
	}
	return x + pose.DX, y + pose.DY, pose.Scale, m.Opacity * pose.Opacity
}

func (l *Layer) Draw(dst *ebiten.Image) {
	for _, m := range l.markers {
		x, y, scale, opacity := l.Position(m)
		r := m.Size / 2 * scale
		if r <= 0 || opacity <= 0 {
			continue
		}
		c := quantum.Fade(m.Color, opacity)
		if m.Glow > 0 {
			render.Glow(dst, x, y, r+m.Glow*scale, c)
		}
		vector.DrawFilledCircle(dst, float32(x), float32(y), float32(r), c, true)
	}
}
