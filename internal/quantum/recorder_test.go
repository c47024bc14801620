package quantum

import "image/color"

type line struct {
	x0, y0, x1, y1 float64
	c              color.NRGBA
}

// recorder is a Surface that remembers what was drawn in the last frame.
type recorder struct {
	clears    int
	gradients int
	glows     int
	circles   int
	paths     [][]Point
	lines     []line
}

func (r *recorder) Clear() {
	r.clears++
	r.glows, r.circles, r.gradients = 0, 0, 0
	r.paths = nil
	r.lines = nil
}

func (r *recorder) FillRadialGradient(cx, cy, radius float64, stops []GradientStop) { r.gradients++ }
func (r *recorder) FillGlow(cx, cy, radius float64, c color.NRGBA)                   { r.glows++ }
func (r *recorder) FillCircle(cx, cy, radius float64, c color.NRGBA)                 { r.circles++ }

func (r *recorder) StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA) {
	r.lines = append(r.lines, line{x0, y0, x1, y1, c})
}

func (r *recorder) StrokePath(points []Point, width float64, c color.NRGBA) {
	r.paths = append(r.paths, append([]Point(nil), points...))
}
