package game

import (
	"fmt"
	"image/color"
	"strconv"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/colorm"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/quantum-backdrop/internal/quantum"
	"github.com/iburimskiy/quantum-backdrop/internal/render"
)

const (
	helpText   = "T: theme  S: scramble  C: contact  O: open config  Space: pause  Esc/Q: quit"
	caretBlink = 500 * time.Millisecond
)

// pageColors is the page color set for a theme.
type pageColors struct {
	background color.NRGBA
	text       color.NRGBA
	muted      color.NRGBA
}

var (
	lightPage = pageColors{
		background: color.NRGBA{R: 0xfa, G: 0xfa, B: 0xfa, A: 0xff},
		text:       color.NRGBA{R: 0x17, G: 0x17, B: 0x17, A: 0xff},
		muted:      color.NRGBA{R: 0x52, G: 0x52, B: 0x52, A: 0xff},
	}
	darkPage = pageColors{
		background: color.NRGBA{R: 0x0a, G: 0x0a, B: 0x0a, A: 0xff},
		text:       color.NRGBA{R: 0xfa, G: 0xfa, B: 0xfa, A: 0xff},
		muted:      color.NRGBA{R: 0xa3, G: 0xa3, B: 0xa3, A: 0xff},
	}
)

func pageFor(t quantum.Theme) pageColors {
	if t == quantum.Dark {
		return darkPage
	}
	return lightPage
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.perf.RecordFrame()
	page := pageFor(g.theme)

	g.scene.Fill(page.background)
	g.scene.DrawImage(g.surface.Image(), nil)
	g.layer.Draw(g.scene)
	g.drawHeadline(g.scene, page)
	g.drawCounters(g.scene, page)

	if cm, ok := g.quantumMode.ColorM(g.now); ok {
		colorm.DrawImage(screen, g.scene, cm, &colorm.DrawImageOptions{})
	} else {
		screen.DrawImage(g.scene, nil)
	}

	g.drawToast(screen, page)
	g.drawStatus(screen)
	g.cursor.Draw(screen)
}

func (g *Game) drawHeadline(dst *ebiten.Image, page pageColors) {
	cx := float64(g.width) / 2
	y := float64(g.height) * 0.32
	palette := g.engine.Palette()
	render.DrawGlyphs(dst, g.headline.Glyphs(), g.fonts.Headline, cx, y, page.text, palette.Primary())

	line := g.typewriter.Text()
	if (g.now/caretBlink)%2 == 0 {
		line += "|"
	} else {
		line += " "
	}
	render.DrawTextCentered(dst, line, g.fonts.Subtitle, cx, y+56, page.muted)
}

func (g *Game) drawCounters(dst *ebiten.Image, page pageColors) {
	n := len(g.counters)
	if n == 0 {
		return
	}
	slot := float64(g.width) / float64(n)
	y := float64(g.height) * 0.6
	for i, c := range g.cfg.Counters {
		cx := slot*float64(i) + slot/2
		render.DrawTextCentered(dst, strconv.Itoa(g.counterValues[i])+"+", g.fonts.Headline, cx, y, page.text)
		render.DrawTextCentered(dst, c.Label, g.fonts.Body, cx, y+44, page.muted)
	}
}

func (g *Game) drawToast(dst *ebiten.Image, page pageColors) {
	msg, ok := g.quantumMode.Toast(g.now)
	if !ok {
		return
	}
	w, h := 420.0, 44.0
	x := (float64(g.width) - w) / 2
	y := float64(g.height) - h - 48
	bg := page.text
	bg.A = 0xe0
	vector.DrawFilledRect(dst, float32(x), float32(y), float32(w), float32(h), bg, true)
	render.DrawTextCentered(dst, msg, g.fonts.Body, x+w/2, y+14, page.background)
}

func (g *Game) drawStatus(dst *ebiten.Image) {
	status := helpText
	if g.paused {
		status += " | Paused"
	}
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(dst, status, 12, 12)

	if !g.debug {
		return
	}
	fs := g.engine.LastFrame()
	stats := g.perf.Stats()
	debug := fmt.Sprintf("FPS %.1f  TPS %.1f  frame %d  links %d  p95 %s  up %s",
		ebiten.ActualFPS(), ebiten.ActualTPS(), fs.Frame, fs.Connections,
		stats.P95Tick.Round(time.Microsecond), formatDuration(time.Since(g.started)))
	ebitenutil.DebugPrintAt(dst, debug, 12, 28)
}
