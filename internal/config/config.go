// Package config handles scene configuration loading and management.
package config

import (
	"github.com/Faultbox/basic3d/internal/assets"
	"github.com/Faultbox/basic3d/internal/game/missile"
	"github.com/Faultbox/basic3d/internal/game/player"
)

// Config holds all scene settings.
type Config struct {
	Graphics GraphicsConfig   `yaml:"graphics" toml:"graphics"`
	Logging  LoggingConfig    `yaml:"logging" toml:"logging"`
	Input    InputConfig      `yaml:"input" toml:"input"`
	Player   player.Settings  `yaml:"player" toml:"player"`
	Camera   CameraConfig     `yaml:"camera" toml:"camera"`
	Missile  missile.Settings `yaml:"missile" toml:"missile"`
	World    WorldConfig      `yaml:"world" toml:"world"`
	Assets   assets.Manifest  `yaml:"assets" toml:"assets"`
}

// Vec3 is an x, y, z triple.
type Vec3 [3]float64

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int    `yaml:"width" toml:"width"`
	Height     int    `yaml:"height" toml:"height"`
	Fullscreen bool   `yaml:"fullscreen" toml:"fullscreen"`
	VSync      bool   `yaml:"vsync" toml:"vsync"`
	FPSLimit   int    `yaml:"fps_limit" toml:"fps_limit"`
	Title      string `yaml:"title" toml:"title"`

	// Sun position driving the directional light, in degrees.
	SunLongitude float64 `yaml:"sun_longitude" toml:"sun_longitude"`
	SunLatitude  float64 `yaml:"sun_latitude" toml:"sun_latitude"`

	ScreenshotDir string `yaml:"screenshot_dir" toml:"screenshot_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// InputConfig maps action names to SDL key names.
type InputConfig struct {
	Bindings map[string][]string `yaml:"bindings" toml:"bindings"`
}

// CameraConfig holds the follow camera tuning.
type CameraConfig struct {
	Position     Vec3    `yaml:"position" toml:"position"`
	Target       Vec3    `yaml:"target" toml:"target"`
	FOV          float64 `yaml:"fov" toml:"fov"` // degrees
	Near         float64 `yaml:"near" toml:"near"`
	Far          float64 `yaml:"far" toml:"far"`
	Movement     float64 `yaml:"movement" toml:"movement"`
	Rotation     float64 `yaml:"rotation" toml:"rotation"`
	SphereRadius float64 `yaml:"sphere_radius" toml:"sphere_radius"`
}

// WorldConfig lays out the scene.
type WorldConfig struct {
	Ground  GroundConfig  `yaml:"ground" toml:"ground"`
	Sphere  SphereConfig  `yaml:"sphere" toml:"sphere"`
	Steps   StepsConfig   `yaml:"steps" toml:"steps"`
	Trees   TreesConfig   `yaml:"trees" toml:"trees"`
	Player  string        `yaml:"player_model" toml:"player_model"`
	Gun     GunConfig     `yaml:"gun" toml:"gun"`
	Missile MissileConfig `yaml:"missile" toml:"missile"`
	Fade    FadeConfig    `yaml:"fade" toml:"fade"`
}

// GroundConfig is the floor plane.
type GroundConfig struct {
	Size     float64 `yaml:"size" toml:"size"`
	Division int     `yaml:"division" toml:"division"`
	Texture  string  `yaml:"texture" toml:"texture"`
}

// SphereConfig is the spinning globe.
type SphereConfig struct {
	Radius   float64 `yaml:"radius" toml:"radius"`
	Division int     `yaml:"division" toml:"division"`
	Position Vec3    `yaml:"position" toml:"position"`
	Spin     float64 `yaml:"spin" toml:"spin"` // degrees per frame
	Collide  bool    `yaml:"collide" toml:"collide"`
	Texture  string  `yaml:"texture" toml:"texture"`
}

// StepsConfig is the staircase of scaled cubes.
type StepsConfig struct {
	Size    float64      `yaml:"size" toml:"size"`
	Texture string       `yaml:"texture" toml:"texture"`
	Steps   []StepConfig `yaml:"steps" toml:"steps"`
}

// StepConfig places one cube.
type StepConfig struct {
	Position Vec3    `yaml:"position" toml:"position"`
	Scale    float64 `yaml:"scale" toml:"scale"`
}

// TreesConfig is the row of textured planes.
type TreesConfig struct {
	Size      float64 `yaml:"size" toml:"size"`
	Division  int     `yaml:"division" toml:"division"`
	Rotation  Vec3    `yaml:"rotation" toml:"rotation"`
	Billboard bool    `yaml:"billboard" toml:"billboard"`
	Texture   string  `yaml:"texture" toml:"texture"`
	Positions []Vec3  `yaml:"positions" toml:"positions"`
}

// GunConfig attaches a prop model to the player.
type GunConfig struct {
	Enabled bool    `yaml:"enabled" toml:"enabled"`
	Model   string  `yaml:"model" toml:"model"`
	Scale   float64 `yaml:"scale" toml:"scale"`
	Rotate  Vec3    `yaml:"rotate" toml:"rotate"` // degrees
	Offset  Vec3    `yaml:"offset" toml:"offset"`
}

// MissileConfig places the missile and its explosion proxy.
type MissileConfig struct {
	Model             string  `yaml:"model" toml:"model"`
	FireDistance      float64 `yaml:"fire_distance" toml:"fire_distance"`
	ExplosionRadius   float64 `yaml:"explosion_radius" toml:"explosion_radius"`
	ExplosionDivision int     `yaml:"explosion_division" toml:"explosion_division"`
	ExplosionTexture  string  `yaml:"explosion_texture" toml:"explosion_texture"`
}

// FadeConfig times the screen transition.
type FadeConfig struct {
	Millis int64 `yaml:"ms" toml:"ms"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	const (
		groundTexture = "texture/Groundplants1_D.jpg"
		earthTexture  = "texture/earth.png"
		stepTexture   = "texture/kime-yoko.jpg"
		treeTexture   = "texture/tree.png"
		playerModel   = "model/character/SDChar.mv1"
		gunModel      = "model/gun/Handgun_fbx_6.1_ASCII.mv1"
		missileModel  = "model/missile/missile.mv1"
	)

	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   60,
			Title:      "basic3d",

			SunLongitude:  210,
			SunLatitude:   55,
			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
		Input: InputConfig{
			Bindings: map[string][]string{
				"forward":      {"Up"},
				"rotate_left":  {"Left"},
				"rotate_right": {"Right"},
				"jump":         {"Space"},
				"attack":       {"Z"},
				"back":         {"Down"},
				"camera_in":    {"W"},
				"camera_out":   {"S"},
				"camera_left":  {"A"},
				"camera_right": {"D"},
				"fire":         {"F"},
				"fade_in":      {"I"},
				"fade_out":     {"O"},
				"screenshot":   {"F12"},
				"quit":         {"Escape"},
			},
		},
		Player: player.DefaultSettings(),
		Camera: CameraConfig{
			Position:     Vec3{-50, 150, -300},
			Target:       Vec3{0, 50, 0},
			FOV:          30,
			Near:         1,
			Far:          10000,
			Movement:     5,
			Rotation:     2,
			SphereRadius: 100,
		},
		Missile: missile.DefaultSettings(),
		World: WorldConfig{
			Ground: GroundConfig{
				Size:     300 * 150,
				Division: 150,
				Texture:  groundTexture,
			},
			Sphere: SphereConfig{
				Radius:   200,
				Division: 64,
				Position: Vec3{500, 500, 500},
				Spin:     0.5,
				Texture:  earthTexture,
			},
			Steps: StepsConfig{
				Size:    200,
				Texture: stepTexture,
				Steps: []StepConfig{
					{Position: Vec3{-500, 100, 500}, Scale: 1},
					{Position: Vec3{-500, 200, 800}, Scale: 2},
					{Position: Vec3{-500, 300, 1300}, Scale: 3},
					{Position: Vec3{-500, 400, 2000}, Scale: 4},
				},
			},
			Trees: TreesConfig{
				Size:     400,
				Division: 1,
				Rotation: Vec3{90, 0, 0},
				Texture:  treeTexture,
				Positions: []Vec3{
					{1500, 200, -500},
					{500, 200, -500},
					{-500, 200, -500},
					{-1500, 200, -500},
				},
			},
			Player: playerModel,
			Gun: GunConfig{
				Enabled: true,
				Model:   gunModel,
				Scale:   15,
				Rotate:  Vec3{-90, 180, 0},
				Offset:  Vec3{-40, 70, 0},
			},
			Missile: MissileConfig{
				Model:             missileModel,
				FireDistance:      1500,
				ExplosionRadius:   100,
				ExplosionDivision: 32,
				ExplosionTexture:  earthTexture,
			},
			Fade: FadeConfig{Millis: 2000},
		},
		Assets: assets.Manifest{
			Models: []assets.ModelEntry{
				{
					Path: playerModel,
					Clips: []assets.Clip{
						{Name: "idle", Total: 60},
						{Name: "run", Total: 20},
						{Name: "attack", Total: 30},
					},
				},
				{Path: gunModel},
				{Path: missileModel},
			},
			Textures: []string{groundTexture, earthTexture, stepTexture, treeTexture},
		},
	}
}
