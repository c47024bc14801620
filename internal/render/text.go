package render

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/iburimskiy/quantum-backdrop/internal/scramble"
)

// Fonts holds the faces used by the overlay text.
type Fonts struct {
	Headline *text.GoTextFace
	Subtitle *text.GoTextFace
	Body     *text.GoTextFace
}

func LoadFonts() (*Fonts, error) {
	regular, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("loading goregular: %w", err)
	}
	mono, err := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
	if err != nil {
		return nil, fmt.Errorf("loading gomono: %w", err)
	}
	return &Fonts{
		Headline: &text.GoTextFace{Source: regular, Size: 34},
		Subtitle: &text.GoTextFace{Source: mono, Size: 20},
		Body:     &text.GoTextFace{Source: regular, Size: 14},
	}, nil
}

// DrawText draws s with its top-left corner at (x, y).
func DrawText(dst *ebiten.Image, s string, face text.Face, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, s, face, op)
}

// DrawTextCentered draws s horizontally centered on cx.
func DrawTextCentered(dst *ebiten.Image, s string, face text.Face, cx, y float64, clr color.Color) {
	DrawText(dst, s, face, cx-text.Advance(s, face)/2, y, clr)
}

// DrawGlyphs draws scrambler output centered on cx. Scrambled glyphs use
// the highlight color and get a soft shadow.
func DrawGlyphs(dst *ebiten.Image, glyphs []scramble.Glyph, face text.Face, cx, y float64, normal, highlight color.NRGBA) {
	width := 0.0
	for _, g := range glyphs {
		width += text.Advance(g.Char, face)
	}
	x := cx - width/2
	for _, g := range glyphs {
		if g.Scrambled {
			shadow := highlight
			shadow.A /= 3
			DrawText(dst, g.Char, face, x+1, y+1, shadow)
			DrawText(dst, g.Char, face, x, y, highlight)
		} else {
			DrawText(dst, g.Char, face, x, y, normal)
		}
		x += text.Advance(g.Char, face)
	}
}
