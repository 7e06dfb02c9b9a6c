// Package main is the entry point for the basic3d scene.
package main

import (
	"fmt"
	"os"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/basic3d/internal/assets"
	"github.com/Faultbox/basic3d/internal/config"
	"github.com/Faultbox/basic3d/internal/engine/input"
	"github.com/Faultbox/basic3d/internal/engine/lighting"
	"github.com/Faultbox/basic3d/internal/engine/renderer"
	"github.com/Faultbox/basic3d/internal/engine/window"
	"github.com/Faultbox/basic3d/internal/game/world"
	"github.com/Faultbox/basic3d/internal/logger"
)

const (
	defaultWidth  = 1280
	defaultHeight = 720
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== basic3d ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("scene error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("scene closed normally")
}

func run(cfg *config.Config) error {
	width := cfg.Graphics.Width
	height := cfg.Graphics.Height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}

	win, err := window.New(window.Config{
		Title:      cfg.Graphics.Title,
		Width:      width,
		Height:     height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return err
	}
	defer win.Close()

	width, height = win.DrawableSize()
	r, err := renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		Background: renderer.DefaultBackground,
		LightDir:   lighting.LightDirection(cfg.Graphics.SunLongitude, cfg.Graphics.SunLatitude),
	})
	if err != nil {
		return err
	}
	defer r.Close()

	keyboard, err := window.NewKeyboard(cfg.Input.Bindings)
	if err != nil {
		return fmt.Errorf("input bindings: %w", err)
	}

	var state input.State
	loader := r.Loader(assets.NewCatalog(cfg.Assets), cfg.Assets.Root)
	scene, err := world.Build(cfg, loader, window.Ticks{}, &state, width, height)
	if err != nil {
		return fmt.Errorf("building scene: %w", err)
	}

	var updates <-chan *config.Config
	if w := watch(); w != nil {
		defer w.Close()
		updates = w.Updates()
	}
	return loop(cfg, win, r, scene, keyboard, &state, updates)
}

// watch starts the config watcher when --watch is set. With no watcher the
// loop reads from a nil channel, which never delivers.
func watch() *config.Watcher {
	if !config.WatchEnabled() {
		return nil
	}
	path := config.ResolvePath()
	if path == "" {
		logger.Warn("--watch given but no config file found")
		return nil
	}
	w, err := config.Watch(path)
	if err != nil {
		logger.Warn("config watch disabled", zap.String("path", path), zap.Error(err))
		return nil
	}
	return w
}

func loop(cfg *config.Config, win *window.Window, r *renderer.Renderer, scene *world.Scene,
	keyboard *window.Keyboard, state *input.State, updates <-chan *config.Config) error {
	var frameMillis uint64
	if cfg.Graphics.FPSLimit > 0 {
		frameMillis = uint64(1000 / cfg.Graphics.FPSLimit)
	}

	for {
		start := sdl.GetTicks64()

		win.PollEvents()
		if win.ShouldClose() {
			return nil
		}
		if win.Resized() {
			w, h := win.DrawableSize()
			r.Resize(w, h)
			scene.Resize(w, h)
		}

		// Tuning changes land between frames.
		select {
		case next := <-updates:
			if err := scene.Apply(next); err != nil {
				logger.Warn("config update dropped", zap.Error(err))
			}
		default:
		}

		state.Poll(keyboard)
		if state.Pressed(input.Quit) {
			return nil
		}

		scene.Process()

		r.Begin()
		scene.Render(r)
		r.End()
		// Read back before the swap leaves the back buffer undefined.
		if state.Pressed(input.Screenshot) {
			if _, err := r.Screenshot(cfg.Graphics.ScreenshotDir); err != nil {
				logger.Warn("screenshot failed", zap.Error(err))
			}
		}
		win.SwapBuffers()

		if elapsed := sdl.GetTicks64() - start; frameMillis > elapsed {
			sdl.Delay(uint32(frameMillis - elapsed))
		}
	}
}
