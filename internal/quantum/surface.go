package quantum

import "image/color"

// Point is a position in canvas pixel space.
type Point struct {
	X, Y float64
}

// GradientStop is one color stop of a radial gradient. Offset is in [0,1].
type GradientStop struct {
	Offset float64
	Color  color.NRGBA
}

// Surface is the drawing target the canvas renders into. Colors are
// straight (non-premultiplied) alpha.
type Surface interface {
	Clear()
	// FillRadialGradient paints the whole surface with a gradient centered
	// on (cx, cy). Pixels beyond radius take the last stop's color.
	FillRadialGradient(cx, cy, radius float64, stops []GradientStop)
	// FillGlow paints a disc whose color fades from c at the center to
	// transparent at radius.
	FillGlow(cx, cy, radius float64, c color.NRGBA)
	FillCircle(cx, cy, radius float64, c color.NRGBA)
	StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA)
	StrokePath(points []Point, width float64, c color.NRGBA)
}
