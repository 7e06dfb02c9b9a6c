package player

import "fmt"

// Settings tune player motion. Distances are world units, angles degrees.
type Settings struct {
	Movement float64 `yaml:"movement" toml:"movement"` // forward step per frame
	Rotate   float64 `yaml:"rotate" toml:"rotate"`     // turn per frame
	Radius   float64 `yaml:"radius" toml:"radius"`     // collision sphere radius

	JumpPower float64 `yaml:"jump_power" toml:"jump_power"`
	JumpAngle float64 `yaml:"jump_angle" toml:"jump_angle"`
	BackPower float64 `yaml:"back_power" toml:"back_power"` // dodge-back jump
	BackAngle float64 `yaml:"back_angle" toml:"back_angle"`

	Gravity  float64 `yaml:"gravity" toml:"gravity"`     // units per second squared
	TimeStep float64 `yaml:"time_step" toml:"time_step"` // seconds advanced per frame

	AttackFrames int `yaml:"attack_frames" toml:"attack_frames"` // attack length when the model has no attack clip

	Clips Clips `yaml:"clips" toml:"clips"`
}

// Clips maps motions to animation indices. A negative index disables the
// motion's animation.
type Clips struct {
	Idle    int `yaml:"idle" toml:"idle"`
	Forward int `yaml:"forward" toml:"forward"`
	Attack  int `yaml:"attack" toml:"attack"`
	Jump    int `yaml:"jump" toml:"jump"`

	IdleBlend    int `yaml:"idle_blend" toml:"idle_blend"`       // frames to fade into idle
	ForwardBlend int `yaml:"forward_blend" toml:"forward_blend"` // frames to fade into forward
}

// DefaultSettings returns the tuning used by the demo scene.
func DefaultSettings() Settings {
	return Settings{
		Movement:     10,
		Rotate:       2,
		Radius:       60,
		JumpPower:    800,
		JumpAngle:    60,
		BackPower:    600,
		BackAngle:    45,
		Gravity:      980,
		TimeStep:     1.0 / 60.0,
		AttackFrames: 30,
		Clips: Clips{
			Idle:         0,
			Forward:      1,
			Attack:       2,
			Jump:         -1,
			IdleBlend:    20,
			ForwardBlend: 10,
		},
	}
}

// Validate rejects tuning the state machine cannot run with.
func (s Settings) Validate() error {
	switch {
	case s.TimeStep <= 0:
		return fmt.Errorf("time_step must be positive, got %v", s.TimeStep)
	case s.Gravity <= 0:
		return fmt.Errorf("gravity must be positive, got %v", s.Gravity)
	case s.AttackFrames < 1:
		return fmt.Errorf("attack_frames must be at least 1, got %d", s.AttackFrames)
	case s.Radius <= 0:
		return fmt.Errorf("radius must be positive, got %v", s.Radius)
	}
	return nil
}
