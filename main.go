package main

import (
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/iburimskiy/quantum-backdrop/internal/config"
	"github.com/iburimskiy/quantum-backdrop/internal/game"
	"github.com/iburimskiy/quantum-backdrop/internal/sound"
	"github.com/iburimskiy/quantum-backdrop/internal/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	theme := flag.String("theme", "", "Initial theme: light or dark (empty = use config)")
	debug := flag.Bool("debug", false, "Development logging and the debug HUD line")
	outputDir := flag.String("output-dir", "", "Directory for perf.csv and a config snapshot")
	mute := flag.Bool("mute", false, "Disable sound")
	flag.Parse()

	log, err := newLogger(*debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck

	if err := run(log, *configPath, *seed, *theme, *outputDir, *mute, *debug); err != nil {
		log.Error("backdrop exited", zap.Error(err))
		os.Exit(1)
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(log *zap.Logger, configPath string, seed int64, theme, outputDir string, mute, debug bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if theme != "" {
		if err := cfg.SetTheme(theme); err != nil {
			return err
		}
	}
	if outputDir != "" {
		cfg.Telemetry.OutputDir = outputDir
	}
	if mute {
		cfg.Sound.Enabled = false
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	output, err := telemetry.NewOutputManager(cfg.Telemetry.OutputDir)
	if err != nil {
		return err
	}
	defer output.Close() //nolint:errcheck
	if output != nil {
		if err := cfg.WriteYAML(filepath.Join(output.Dir(), "config.yaml")); err != nil {
			return err
		}
	}

	snd := sound.NewManager(sound.Config{
		Enabled: cfg.Sound.Enabled,
		Volume:  cfg.Sound.Volume,
	}, log.Named("sound"))
	if err := snd.Initialize(); err != nil {
		log.Warn("sound disabled", zap.Error(err))
	}
	defer snd.Close()

	g, err := game.New(game.Options{
		Config: cfg,
		Rand:   rand.New(rand.NewSource(seed)),
		Logger: log,
		Sound:  snd,
		Output: output,
		Debug:  debug,
	})
	if err != nil {
		return err
	}
	defer g.Close()

	log.Info("starting backdrop",
		zap.Int64("seed", seed),
		zap.String("config", configPath),
		zap.Stringer("theme", cfg.Derived.Theme),
		zap.Bool("sound", cfg.Sound.Enabled),
	)

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.Window.TPS)
	ebiten.SetCursorMode(ebiten.CursorModeHidden)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
