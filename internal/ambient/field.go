package ambient

import (
	"errors"
	"image/color"
	"math/rand"
	"time"

	"github.com/iburimskiy/quantum-backdrop/internal/anim"
	"github.com/iburimskiy/quantum-backdrop/internal/quantum"
)

// DefaultCount is the number of markers in a field.
const DefaultCount = 30

var ErrMissingContainer = errors.New("ambient: missing container")

// Field is a set of floating markers colored from one theme. It has no live
// recolor path: to change theme, Destroy it and build a new one.
type Field struct {
	container Container
	theme     quantum.Theme
	markers   []*Marker
}

// NewField appends count markers to container. A count below 1 uses
// DefaultCount.
func NewField(container Container, theme quantum.Theme, rng *rand.Rand, count int) (*Field, error) {
	if container == nil {
		return nil, ErrMissingContainer
	}
	if count < 1 {
		count = DefaultCount
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	colors := quantum.PaletteFor(theme).Colors
	f := &Field{container: container, theme: theme, markers: make([]*Marker, 0, count)}
	for i := 0; i < count; i++ {
		m := newFloatingMarker(rng, colors)
		container.AppendChild(m)
		f.markers = append(f.markers, m)
	}
	return f, nil
}

func newFloatingMarker(rng *rand.Rand, colors [3]color.NRGBA) *Marker {
	size := rng.Float64()*4 + 2
	return &Marker{
		X:        rng.Float64() * 100,
		Y:        rng.Float64() * 100,
		Relative: true,
		Size:     size,
		Glow:     size * 2,
		Duration: time.Duration((rng.Float64()*20 + 10) * float64(time.Second)),
		Delay:    time.Duration(rng.Float64() * 5 * float64(time.Second)),
		Color:    colors[rng.Intn(len(colors))],
		Opacity:  rng.Float64()*0.5 + 0.2,
		Track:    anim.FloatParticle,
		Loop:     true,
	}
}

func (f *Field) Theme() quantum.Theme { return f.theme }
func (f *Field) Markers() []*Marker   { return f.markers }

// Destroy removes every marker this field added.
func (f *Field) Destroy() {
	for _, m := range f.markers {
		f.container.RemoveChild(m)
	}
	f.markers = nil
}
