package missile

import "fmt"

// Settings tune the missile. Times are milliseconds of the scene clock.
type Settings struct {
	ModelScale float64 `yaml:"model_scale" toml:"model_scale"`

	CountdownMillis int64   `yaml:"countdown_ms" toml:"countdown_ms"`
	LaunchMillis    int64   `yaml:"launch_ms" toml:"launch_ms"`
	HomingMillis    int64   `yaml:"homing_interval_ms" toml:"homing_interval_ms"`
	HomingEndY      float64 `yaml:"homing_end_y" toml:"homing_end_y"`

	Velocity   float64 `yaml:"velocity" toml:"velocity"` // units per frame
	HomingRate float64 `yaml:"homing_rate" toml:"homing_rate"`

	ExplodeAngle    float64 `yaml:"explode_angle" toml:"explode_angle"` // degrees per frame
	ExplodeScale    float64 `yaml:"explode_scale" toml:"explode_scale"` // growth per frame
	ExplodeEndScale float64 `yaml:"explode_end_scale" toml:"explode_end_scale"`

	WarningOffsetY float64 `yaml:"warning_offset_y" toml:"warning_offset_y"`
}

// DefaultSettings returns the tuning used by the demo scene.
func DefaultSettings() Settings {
	return Settings{
		ModelScale:      0.2,
		CountdownMillis: 5000,
		LaunchMillis:    2000,
		HomingMillis:    100,
		HomingEndY:      50,
		Velocity:        20,
		HomingRate:      0.2,
		ExplodeAngle:    15,
		ExplodeScale:    1.075,
		ExplodeEndScale: 20,
		WarningOffsetY:  130,
	}
}

// Validate rejects tuning that would stall or never finish a flight.
func (s Settings) Validate() error {
	switch {
	case s.HomingRate <= 0 || s.HomingRate > 1:
		return fmt.Errorf("homing_rate must be in (0, 1], got %v", s.HomingRate)
	case s.ExplodeEndScale <= 1:
		return fmt.Errorf("explode_end_scale must exceed 1, got %v", s.ExplodeEndScale)
	case s.ExplodeScale <= 1:
		return fmt.Errorf("explode_scale must exceed 1, got %v", s.ExplodeScale)
	}
	return nil
}
