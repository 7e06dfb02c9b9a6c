package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test graphics defaults
	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}

	// Test scene defaults
	if cfg.Player.Movement != 10 || cfg.Player.Radius != 60 {
		t.Errorf("unexpected player defaults: %+v", cfg.Player)
	}
	if cfg.Missile.CountdownMillis != 5000 || cfg.Missile.HomingRate != 0.2 {
		t.Errorf("unexpected missile defaults: %+v", cfg.Missile)
	}
	if cfg.World.Ground.Size != 45000 || cfg.World.Ground.Division != 150 {
		t.Errorf("unexpected ground: %+v", cfg.World.Ground)
	}
	if len(cfg.World.Steps.Steps) != 4 || len(cfg.World.Trees.Positions) != 4 {
		t.Errorf("expected 4 steps and 4 trees")
	}
	if cfg.Camera.Position != (Vec3{-50, 150, -300}) {
		t.Errorf("unexpected camera position %v", cfg.Camera.Position)
	}

	// Every referenced asset is in the manifest
	models := map[string]bool{}
	for _, m := range cfg.Assets.Models {
		models[m.Path] = true
	}
	for _, path := range []string{cfg.World.Player, cfg.World.Gun.Model, cfg.World.Missile.Model} {
		if !models[path] {
			t.Errorf("model %s missing from manifest", path)
		}
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false
  fps_limit: 144

player:
  movement: 15
  jump_angle: 45

camera:
  position: [0, 200, -400]

missile:
  homing_rate: 0.5

world:
  steps:
    steps:
      - position: [0, 100, 0]
        scale: 1

logging:
  level: "debug"
  log_file: "scene.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Load config
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify values were loaded
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 1080 {
		t.Errorf("expected height 1080, got %d", cfg.Graphics.Height)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.FPSLimit != 144 {
		t.Errorf("expected fps limit 144, got %d", cfg.Graphics.FPSLimit)
	}

	if cfg.Player.Movement != 15 || cfg.Player.JumpAngle != 45 {
		t.Errorf("player not merged: %+v", cfg.Player)
	}
	if cfg.Player.Radius != 60 {
		t.Errorf("unset player fields should keep defaults, radius = %v", cfg.Player.Radius)
	}
	if cfg.Camera.Position != (Vec3{0, 200, -400}) {
		t.Errorf("camera position = %v", cfg.Camera.Position)
	}
	if cfg.Missile.HomingRate != 0.5 || cfg.Missile.Velocity != 20 {
		t.Errorf("missile not merged: %+v", cfg.Missile)
	}
	if len(cfg.World.Steps.Steps) != 1 {
		t.Errorf("expected steps list to be replaced, got %d", len(cfg.World.Steps.Steps))
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "scene.log" {
		t.Errorf("expected log file 'scene.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromTOML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	tomlContent := `
[graphics]
width = 800
height = 600

[player]
gravity = 490.0

[player.clips]
jump = 3

[camera]
target = [0.0, 80.0, 0.0]
`
	if err := os.WriteFile(configPath, []byte(tomlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 800 || cfg.Graphics.Height != 600 {
		t.Errorf("graphics = %+v", cfg.Graphics)
	}
	if cfg.Player.Gravity != 490 || cfg.Player.Clips.Jump != 3 {
		t.Errorf("player = %+v", cfg.Player)
	}
	if cfg.Player.Clips.Idle != 0 || cfg.Player.Movement != 10 {
		t.Errorf("unset fields should keep defaults: %+v", cfg.Player)
	}
	if cfg.Camera.Target != (Vec3{0, 80, 0}) {
		t.Errorf("camera target = %v", cfg.Camera.Target)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	// Create temporary config file with invalid YAML
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Try to load - should error
	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Player.JumpPower = 1234
	cfg.World.Trees.Billboard = true
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if loaded.Player.JumpPower != 1234 || !loaded.World.Trees.Billboard {
		t.Errorf("round trip lost values: %+v", loaded.Player)
	}
	if len(loaded.Assets.Models) != len(cfg.Assets.Models) {
		t.Errorf("models = %d, want %d", len(loaded.Assets.Models), len(cfg.Assets.Models))
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Just verify it returns a non-empty path
	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}

	// Verify path is absolute
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	// Save current directory
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	// Create temp directory and change to it
	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	// No config file exists - should return empty
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	// Create config.toml in current directory
	configPath := filepath.Join(tmpDir, "config.toml")
	if err := os.WriteFile(configPath, []byte("[graphics]\nwidth = 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	// Should find it now
	path = findConfigFile()
	if path == "" {
		t.Error("expected to find config.toml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "windowed flag",
			setup: func() {
				*flagWindowed = true
			},
			verify: func(cfg *Config) {
				if cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() {
				*flagWindowed = false
			},
		},
		{
			name: "fullscreen flag",
			setup: func() {
				*flagFullscreen = true
			},
			verify: func(cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() {
				*flagFullscreen = false
			},
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(cfg *Config) {
				if cfg.Graphics.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Graphics.Width)
				}
				if cfg.Graphics.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name: "fps and screenshot flags",
			setup: func() {
				*flagFPS = 0
				*flagShots = "shots"
			},
			verify: func(cfg *Config) {
				if cfg.Graphics.FPSLimit != 0 {
					t.Errorf("expected unlimited fps, got %d", cfg.Graphics.FPSLimit)
				}
				if cfg.Graphics.ScreenshotDir != "shots" {
					t.Errorf("expected screenshot dir shots, got %s", cfg.Graphics.ScreenshotDir)
				}
			},
			teardown: func() {
				*flagFPS = -1
				*flagShots = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			tt.setup()
			defer tt.teardown()

			// Apply flags to default config
			cfg := Default()
			applyFlags(cfg)

			// Verify
			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	// Load config
	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width should be from flag (1920), not file (1600)
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}

	// Height should be from file (900) since no flag override
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}

func TestWatcherReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("player:\n  movement: 10\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	w, err := Watch(path)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("player:\n  movement: 25\n"), 0644); err != nil {
		t.Fatalf("failed to rewrite config: %v", err)
	}

	timeout := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-w.Updates():
			if cfg.Player.Movement == 25 {
				return
			}
		case <-timeout:
			t.Fatal("no reload within 5s")
		}
	}
}

func TestWatcherCloseTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("{}\n"), 0644); err != nil {
		t.Fatal(err)
	}
	w, err := Watch(path)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(cfg *Config)
		valid  bool
	}{
		{"defaults", func(cfg *Config) {}, true},
		{"zero time step", func(cfg *Config) { cfg.Player.TimeStep = 0 }, false},
		{"negative time step", func(cfg *Config) { cfg.Player.TimeStep = -0.01 }, false},
		{"zero gravity", func(cfg *Config) { cfg.Player.Gravity = 0 }, false},
		{"zero attack frames", func(cfg *Config) { cfg.Player.AttackFrames = 0 }, false},
		{"one attack frame", func(cfg *Config) { cfg.Player.AttackFrames = 1 }, true},
		{"zero radius", func(cfg *Config) { cfg.Player.Radius = 0 }, false},
		{"zero homing rate", func(cfg *Config) { cfg.Missile.HomingRate = 0 }, false},
		{"full homing rate", func(cfg *Config) { cfg.Missile.HomingRate = 1 }, true},
		{"homing rate above one", func(cfg *Config) { cfg.Missile.HomingRate = 1.5 }, false},
		{"explosion end scale one", func(cfg *Config) { cfg.Missile.ExplodeEndScale = 1 }, false},
		{"explosion not growing", func(cfg *Config) { cfg.Missile.ExplodeScale = 1 }, false},
		{"far before near", func(cfg *Config) { cfg.Camera.Far = 0.5 }, false},
		{"negative fade", func(cfg *Config) { cfg.World.Fade.Millis = -1 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.valid && err != nil {
				t.Errorf("expected valid config, got %v", err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestLoadFileRejectsInvalidTuning(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("player:\n  attack_frames: 0\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := LoadFile(path); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}
