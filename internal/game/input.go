package game

import (
	"context"
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/ncruces/zenity"
	"go.uber.org/zap"

	"github.com/iburimskiy/quantum-backdrop/internal/ambient"
	"github.com/iburimskiy/quantum-backdrop/internal/config"
	"github.com/iburimskiy/quantum-backdrop/internal/contact"
	"github.com/iburimskiy/quantum-backdrop/internal/quantum"
)

func (g *Game) handleKeys() error {
	g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
	for _, k := range g.keys {
		if g.konami.Press(k) {
			g.activateQuantumMode()
		}
		switch k {
		case ebiten.KeyT:
			g.toggleTheme()
		case ebiten.KeyS:
			g.scrambleNext()
		case ebiten.KeyC:
			g.openContact()
		case ebiten.KeyO:
			g.openConfigDialog()
		case ebiten.KeySpace:
			g.togglePause()
		case ebiten.KeyEscape, ebiten.KeyQ:
			return ebiten.Termination
		}
	}
	return nil
}

func (g *Game) toggleTheme() {
	g.theme = g.theme.Toggle()
	g.engine.SetTheme(g.theme)
	if err := g.rebuildField(); err != nil {
		g.fail("toggling theme", err)
	}
	g.log.Info("theme changed", zap.Stringer("theme", g.theme))
}

// scrambleNext scrambles the headline into the next title.
func (g *Game) scrambleNext() {
	if len(g.titles) == 0 {
		return
	}
	g.title = (g.title + 1) % len(g.titles)
	g.scrambleDone = g.scrambler.SetText(g.titles[g.title])
}

// togglePause stops the canvas, or builds a fresh one when already stopped.
func (g *Game) togglePause() {
	if g.engine.State() == quantum.Running {
		g.engine.Stop()
		g.paused = true
		return
	}
	if err := g.startEngine(); err != nil {
		g.fail("resuming", err)
		return
	}
	g.paused = false
}

func (g *Game) activateQuantumMode() {
	g.quantumMode.Start(g.now)
	g.sound.PlayChime()
	g.log.Info("quantum mode activated")
}

func (g *Game) openContact() {
	if g.dialogOpen {
		return
	}
	g.dialogOpen = true
	form := &contact.Form{
		Prompter: g.prompter,
		Log:      g.log.Named("contact"),
		OnSubmit: func(contact.Message) { g.post(g.burst) },
	}
	go func() {
		_, err := form.Run(g.ctx)
		g.post(func() {
			g.dialogOpen = false
			switch {
			case err == nil, errors.Is(err, contact.ErrCanceled), errors.Is(err, context.Canceled):
			default:
				g.fail("contact form", err)
			}
		})
	}()
}

// burst celebrates a submitted message below the headline.
func (g *Game) burst() {
	ambient.Burst(g.layer, float64(g.width)/2, float64(g.height)*0.75, g.rng)
	g.sound.PlayChime()
}

func (g *Game) openConfigDialog() {
	if g.dialogOpen {
		return
	}
	g.dialogOpen = true
	go func() {
		path, err := zenity.SelectFile(
			zenity.Title("Open Config"),
			zenity.FileFilters{{
				Name:     "YAML",
				Patterns: []string{"*.yaml", "*.yml"},
			}},
		)
		var cfg *config.Config
		if err == nil {
			cfg, err = config.Load(path)
		}
		g.post(func() {
			g.dialogOpen = false
			if errors.Is(err, zenity.ErrCanceled) {
				return
			}
			if err != nil {
				g.fail("opening config", err)
				return
			}
			g.applyConfig(cfg, path)
		})
	}()
}

func (g *Game) applyConfig(cfg *config.Config, path string) {
	prev := g.cfg
	g.cfg = cfg
	if err := g.build(); err != nil {
		g.fail("applying config", err)
		g.cfg = prev
		if err := g.build(); err != nil {
			g.fail("restoring config", err)
		}
		return
	}
	g.scrambleDone = g.scrambler.SetText(cfg.Headline)
	ebiten.SetTPS(cfg.Window.TPS)
	ebiten.SetWindowTitle(cfg.Window.Title)
	g.lastErr = nil
	g.log.Info("config applied", zap.String("path", path))
}
