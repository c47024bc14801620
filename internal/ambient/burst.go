package ambient

import (
	"image/color"
	"math"
	"math/rand"
	"time"

	"github.com/iburimskiy/quantum-backdrop/internal/anim"
)

const (
	BurstCount    = 20
	BurstDuration = 800 * time.Millisecond
)

var burstColor = color.NRGBA{R: 0x00, G: 0xf0, B: 0xff, A: 0xff}

// Burst scatters BurstCount dots from (x, y). Each flies 50-150px in a
// random direction while shrinking and fading, then removes itself. A nil
// rng is seeded from the clock.
func Burst(container Container, x, y float64, rng *rand.Rand) []*Marker {
	if container == nil {
		return nil
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	out := make([]*Marker, 0, BurstCount)
	for i := 0; i < BurstCount; i++ {
		angle := rng.Float64() * math.Pi * 2
		velocity := rng.Float64()*100 + 50
		m := &Marker{
			X:        x,
			Y:        y,
			Size:     6,
			Glow:     10,
			Color:    burstColor,
			Opacity:  1,
			Duration: BurstDuration,
			Track: anim.NewTrack(anim.EaseOutQuad,
				anim.Keyframe{Offset: 0, Pose: anim.Pose{Scale: 1, Opacity: 1}},
				anim.Keyframe{Offset: 1, Pose: anim.Pose{
					DX: math.Cos(angle) * velocity, DY: math.Sin(angle) * velocity,
					Scale: 0, Opacity: 0,
				}},
			),
		}
		container.AppendChild(m)
		out = append(out, m)
	}
	return out
}
