package quantum

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Theme selects one of the two built-in palettes.
type Theme int

const (
	Light Theme = iota
	Dark
)

func (t Theme) String() string {
	if t == Dark {
		return "dark"
	}
	return "light"
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// ParseTheme accepts "light" or "dark" (case-insensitive).
func ParseTheme(s string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light":
		return Light, nil
	case "dark":
		return Dark, nil
	}
	return Light, fmt.Errorf("unknown theme %q", s)
}

// Palette is the color set shared by every particle, wave and field draw.
// Values are copied out of PaletteFor, so callers can never mutate the
// built-in palettes.
type Palette struct {
	Colors     [3]color.NRGBA
	Connection color.NRGBA
	Wave       color.NRGBA
	Field      [3]color.NRGBA
}

// Primary, Secondary and Tertiary name the three particle colors.
func (p Palette) Primary() color.NRGBA   { return p.Colors[0] }
func (p Palette) Secondary() color.NRGBA { return p.Colors[1] }
func (p Palette) Tertiary() color.NRGBA  { return p.Colors[2] }

// Has reports whether c is one of the palette's three particle colors.
func (p Palette) Has(c color.NRGBA) bool {
	for _, pc := range p.Colors {
		if pc == c {
			return true
		}
	}
	return false
}

var (
	lightPalette = Palette{
		Colors:     [3]color.NRGBA{hex("#262626"), hex("#404040"), hex("#525252")},
		Connection: rgba(38, 38, 38, 1),
		Wave:       rgba(64, 64, 64, 0.3),
		Field:      [3]color.NRGBA{rgba(38, 38, 38, 0.04), rgba(64, 64, 64, 0.02), rgba(255, 255, 255, 0)},
	}
	darkPalette = Palette{
		Colors:     [3]color.NRGBA{hex("#d4d4d4"), hex("#a3a3a3"), hex("#737373")},
		Connection: rgba(212, 212, 212, 1),
		Wave:       rgba(163, 163, 163, 0.3),
		Field:      [3]color.NRGBA{rgba(212, 212, 212, 0.04), rgba(163, 163, 163, 0.02), rgba(10, 10, 10, 0)},
	}
)

// PaletteFor returns the palette for a theme.
func PaletteFor(t Theme) Palette {
	if t == Dark {
		return darkPalette
	}
	return lightPalette
}

// hex parses a package-level color literal.
func hex(s string) color.NRGBA {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(fmt.Sprintf("quantum: bad color literal %q: %v", s, err))
	}
	return WithAlpha(c, 1)
}

func rgba(r, g, b uint8, a float64) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: alpha8(a)}
}

// WithAlpha converts a colorful color to straight-alpha NRGBA.
func WithAlpha(c colorful.Color, a float64) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha8(a)}
}

// Fade scales the alpha of c by f in [0,1].
func Fade(c color.NRGBA, f float64) color.NRGBA {
	c.A = alpha8(float64(c.A) / 255 * f)
	return c
}

// Blend interpolates two straight-alpha colors in RGB space, alpha linearly.
func Blend(a, b color.NRGBA, t float64) color.NRGBA {
	ca := colorful.Color{R: float64(a.R) / 255, G: float64(a.G) / 255, B: float64(a.B) / 255}
	cb := colorful.Color{R: float64(b.R) / 255, G: float64(b.G) / 255, B: float64(b.B) / 255}
	alpha := float64(a.A)/255 + (float64(b.A)/255-float64(a.A)/255)*clamp01(t)
	return WithAlpha(ca.BlendRgb(cb, clamp01(t)), alpha)
}

func alpha8(a float64) uint8 {
	return uint8(clamp01(a)*255 + 0.5)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
