// Package render implements the quantum drawing surface on an offscreen
// ebiten image.
package render

import (
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/quantum-backdrop/internal/quantum"
)

// Number of segments used to approximate circles in gradient fans.
const fanSegments = 32

var (
	whiteOnce     sync.Once
	whiteSubImage *ebiten.Image
)

// white returns a 1x1 white source image for DrawTriangles.
func white() *ebiten.Image {
	whiteOnce.Do(func() {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	})
	return whiteSubImage
}

// painter batches triangles for gradient fans and strokes.
type painter struct {
	vertices []ebiten.Vertex
	indices  []uint16
}

// scratch serves the package-level helpers; drawing happens on the game
// goroutine only.
var scratch painter

// Glow paints a disc on dst that fades from col at the center to
// transparent at radius.
func Glow(dst *ebiten.Image, cx, cy, radius float64, col color.NRGBA) {
	scratch.glow(dst, cx, cy, radius, col)
}

// Canvas is an offscreen image that implements quantum.Surface.
type Canvas struct {
	painter
	img *ebiten.Image
}

func NewCanvas(width, height int) *Canvas {
	c := &Canvas{}
	c.Resize(width, height)
	return c
}

// Resize replaces the backing image. Contents are discarded.
func (c *Canvas) Resize(width, height int) {
	width, height = max(width, 1), max(height, 1)
	if c.img != nil {
		b := c.img.Bounds()
		if b.Dx() == width && b.Dy() == height {
			return
		}
		c.img.Deallocate()
	}
	c.img = ebiten.NewImage(width, height)
}

func (c *Canvas) Image() *ebiten.Image { return c.img }

func (c *Canvas) Clear() { c.img.Clear() }

func (c *Canvas) FillRadialGradient(cx, cy, radius float64, stops []quantum.GradientStop) {
	if len(stops) == 0 {
		return
	}
	outer := stops[len(stops)-1].Color
	if outer.A > 0 {
		b := c.img.Bounds()
		vector.DrawFilledRect(c.img, 0, 0, float32(b.Dx()), float32(b.Dy()), outer, false)
	}
	if radius <= 0 {
		return
	}

	// Each pair of neighbouring stops becomes an annulus whose vertex colors
	// interpolate linearly, which is what a canvas radial gradient does.
	c.reset()
	for i := 0; i+1 < len(stops); i++ {
		c.appendRing(cx, cy, stops[i].Offset*radius, stops[i+1].Offset*radius, stops[i].Color, stops[i+1].Color)
	}
	c.flush(c.img)
}

func (c *Canvas) FillGlow(cx, cy, radius float64, col color.NRGBA) {
	c.glow(c.img, cx, cy, radius, col)
}

func (c *Canvas) FillCircle(cx, cy, radius float64, col color.NRGBA) {
	if radius <= 0 {
		return
	}
	vector.DrawFilledCircle(c.img, float32(cx), float32(cy), float32(radius), col, true)
}

func (c *Canvas) StrokeLine(x0, y0, x1, y1, width float64, col color.NRGBA) {
	vector.StrokeLine(c.img, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), col, true)
}

func (c *Canvas) StrokePath(points []quantum.Point, width float64, col color.NRGBA) {
	if len(points) < 2 {
		return
	}
	var path vector.Path
	path.MoveTo(float32(points[0].X), float32(points[0].Y))
	for _, p := range points[1:] {
		path.LineTo(float32(p.X), float32(p.Y))
	}

	c.vertices, c.indices = path.AppendVerticesAndIndicesForStroke(c.vertices[:0], c.indices[:0], &vector.StrokeOptions{
		Width:    float32(width),
		LineJoin: vector.LineJoinRound,
	})
	r, g, b, a := straight(col)
	for i := range c.vertices {
		c.vertices[i].SrcX, c.vertices[i].SrcY = 1, 1
		c.vertices[i].ColorR, c.vertices[i].ColorG, c.vertices[i].ColorB, c.vertices[i].ColorA = r, g, b, a
	}
	c.flush(c.img)
}

func (p *painter) reset() {
	p.vertices, p.indices = p.vertices[:0], p.indices[:0]
}

func (p *painter) glow(dst *ebiten.Image, cx, cy, radius float64, col color.NRGBA) {
	if radius <= 0 {
		return
	}
	transparent := col
	transparent.A = 0
	p.reset()
	p.appendRing(cx, cy, 0, radius, col, transparent)
	p.flush(dst)
}

// appendRing adds an annulus between r0 and r1 as a strip of quads whose
// inner vertices carry c0 and outer vertices carry c1.
func (p *painter) appendRing(cx, cy, r0, r1 float64, c0, c1 color.NRGBA) {
	base := uint16(len(p.vertices))
	ir, ig, ib, ia := straight(c0)
	or, og, ob, oa := straight(c1)
	for i := 0; i <= fanSegments; i++ {
		theta := 2 * math.Pi * float64(i) / fanSegments
		cos, sin := math.Cos(theta), math.Sin(theta)
		p.vertices = append(p.vertices,
			ebiten.Vertex{
				DstX: float32(cx + cos*r0), DstY: float32(cy + sin*r0),
				SrcX: 1, SrcY: 1,
				ColorR: ir, ColorG: ig, ColorB: ib, ColorA: ia,
			},
			ebiten.Vertex{
				DstX: float32(cx + cos*r1), DstY: float32(cy + sin*r1),
				SrcX: 1, SrcY: 1,
				ColorR: or, ColorG: og, ColorB: ob, ColorA: oa,
			},
		)
		if i == fanSegments {
			break
		}
		in0, out0 := base+uint16(2*i), base+uint16(2*i+1)
		in1, out1 := in0+2, out0+2
		p.indices = append(p.indices, in0, out0, out1, in0, out1, in1)
	}
}

func (p *painter) flush(dst *ebiten.Image) {
	if len(p.indices) == 0 {
		return
	}
	op := &ebiten.DrawTrianglesOptions{
		AntiAlias:      true,
		ColorScaleMode: ebiten.ColorScaleModeStraightAlpha,
	}
	dst.DrawTriangles(p.vertices, p.indices, white(), op)
}

func straight(col color.NRGBA) (r, g, b, a float32) {
	return float32(col.R) / 255, float32(col.G) / 255, float32(col.B) / 255, float32(col.A) / 255
}
