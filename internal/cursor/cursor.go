// Package cursor draws the pointer dot and the ring that trails it.
package cursor

import (
	"image/color"

	"github.com/charmbracelet/harmonica"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/quantum-backdrop/internal/quantum"
	"github.com/iburimskiy/quantum-backdrop/internal/render"
)

const (
	dotRadius  = 4
	ringRadius = 20
	// ringGrowth is the extra ring radius at full sound level.
	ringGrowth = 10
)

var (
	dotColor  = color.NRGBA{R: 0x00, G: 0xf0, B: 0xff, A: 0xff}
	ringColor = color.NRGBA{R: 0x00, G: 0xf0, B: 0xff, A: 0x80}
	// ringPeak is the ring color at full sound level.
	ringPeak  = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xd0}
)

// Cursor tracks the pointer. The ring follows the dot on a critically
// damped spring.
type Cursor struct {
	spring harmonica.Spring

	x, y       float64
	ringX      float64
	ringY      float64
	velX, velY float64
	visible    bool
	level      float64
}

func New(fps int) *Cursor {
	return &Cursor{spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0)}
}

// Move places the dot. The first move snaps the ring too.
func (c *Cursor) Move(x, y float64) {
	if !c.visible {
		c.ringX, c.ringY = x, y
		c.velX, c.velY = 0, 0
	}
	c.x, c.y = x, y
	c.visible = true
}

func (c *Cursor) Hide() { c.visible = false }

func (c *Cursor) Visible() bool { return c.visible }

// SetLevel sets the 0..1 sound level that widens the ring.
func (c *Cursor) SetLevel(level float64) {
	c.level = min(max(level, 0), 1)
}

// Update steps the ring spring one frame.
func (c *Cursor) Update() {
	c.ringX, c.velX = c.spring.Update(c.ringX, c.velX, c.x)
	c.ringY, c.velY = c.spring.Update(c.ringY, c.velY, c.y)
}

func (c *Cursor) Dot() (x, y float64)  { return c.x, c.y }
func (c *Cursor) Ring() (x, y float64) { return c.ringX, c.ringY }

// RingRadius is the current ring radius.
func (c *Cursor) RingRadius() float64 { return ringRadius + ringGrowth*c.level }

// RingColor brightens the ring toward white as the sound level rises.
func (c *Cursor) RingColor() color.NRGBA { return quantum.Blend(ringColor, ringPeak, c.level) }

func (c *Cursor) Draw(dst *ebiten.Image) {
	if !c.visible {
		return
	}
	vector.StrokeCircle(dst, float32(c.ringX), float32(c.ringY), float32(c.RingRadius()), 2, c.RingColor(), true)
	render.Glow(dst, c.x, c.y, dotRadius*5, dotColor)
	vector.DrawFilledCircle(dst, float32(c.x), float32(c.y), dotRadius, dotColor, true)
}
