package quantum

import (
	"image/color"
	"math"
	"math/rand"
)

// WaveParticle rides a horizontal traveling sine wave. Its position is
// derived from the frame counter on every Update.
type WaveParticle struct {
	Index     int
	Count     int
	BaseY     float64
	Amplitude float64
	Frequency float64
	Phase     float64
	Radius    float64
	Color     color.NRGBA

	X, Y float64
}

func newWaveParticle(rng *rand.Rand, index, count int, width, height float64, pal *Palette) *WaveParticle {
	w := &WaveParticle{
		Index:     index,
		Count:     count,
		BaseY:     height * (0.3 + rng.Float64()*0.4),
		Radius:    rng.Float64()*2 + 1,
		Amplitude: rng.Float64()*30 + 20,
		Frequency: rng.Float64()*0.02 + 0.01,
		Phase:     rng.Float64() * math.Pi * 2,
		Color:     pal.Secondary(),
	}
	w.X = width / float64(count) * float64(index)
	w.Y = w.BaseY
	return w
}

// Update recomputes the position for frame t.
func (w *WaveParticle) Update(t int, width float64) {
	ft := float64(t)
	w.Y = w.BaseY + math.Sin(ft*w.Frequency+w.Phase)*w.Amplitude
	slot := width / float64(max(w.Count, 1))
	w.X = wrap(slot*float64(w.Index)+ft*0.5, width)
}

func (w *WaveParticle) Draw(s Surface) {
	s.FillGlow(w.X, w.Y, w.Radius*2, w.Color)
}
