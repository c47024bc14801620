package quantum

import (
	"image/color"
	"math"
	"math/rand"
)

// Pointer is the last known pointer position. A nil *Pointer means the
// pointer has left the viewport.
type Pointer struct {
	X, Y float64
}

// Particle is a freely drifting point with a pulsing glow.
type Particle struct {
	X, Y       float64
	VX, VY     float64
	Radius     float64
	Color      color.NRGBA
	Alpha      float64
	PulseRate  float64
	PulsePhase float64
}

func newParticle(rng *rand.Rand, width, height, speed float64, pal *Palette) *Particle {
	return &Particle{
		X:          rng.Float64() * width,
		Y:          rng.Float64() * height,
		Radius:     rng.Float64()*3 + 1,
		VX:         (rng.Float64() - 0.5) * speed,
		VY:         (rng.Float64() - 0.5) * speed,
		Color:      pal.Colors[rng.Intn(len(pal.Colors))],
		Alpha:      rng.Float64()*0.5 + 0.3,
		PulseRate:  rng.Float64()*0.02 + 0.01,
		PulsePhase: rng.Float64() * math.Pi * 2,
	}
}

// RepulsionForce is the pointer push strength at distance d for an
// interaction radius r: (r-d)/r inside the radius, 0 outside.
func RepulsionForce(d, r float64) float64 {
	if r <= 0 || d >= r {
		return 0
	}
	if d < 0 {
		d = 0
	}
	return (r - d) / r
}

// Update moves the particle one frame. The pointer push is positional and
// recomputed every frame; velocity is never changed.
func (p *Particle) Update(ptr *Pointer, interactionRadius, width, height float64) {
	p.X += p.VX
	p.Y += p.VY

	if ptr != nil {
		dx := ptr.X - p.X
		dy := ptr.Y - p.Y
		d := math.Hypot(dx, dy)
		if force := RepulsionForce(d, interactionRadius); force > 0 {
			angle := math.Atan2(dy, dx)
			p.X -= math.Cos(angle) * force * 2
			p.Y -= math.Sin(angle) * force * 2
		}
	}

	p.X = wrap(p.X, width)
	p.Y = wrap(p.Y, height)
}

// Draw renders the glow and core. nowMs is wall-clock milliseconds.
func (p *Particle) Draw(s Surface, nowMs float64) {
	size := p.Radius + math.Sin(nowMs*p.PulseRate+p.PulsePhase)*0.5
	s.FillGlow(p.X, p.Y, size*3, p.Color)
	s.FillCircle(p.X, p.Y, size, Fade(p.Color, p.Alpha))
}

// wrap folds v into [0, size).
func wrap(v, size float64) float64 {
	if size <= 0 {
		return 0
	}
	if v >= 0 && v < size {
		return v
	}
	v = math.Mod(v, size)
	if v < 0 {
		v += size
	}
	if v >= size {
		v = 0
	}
	return v
}
