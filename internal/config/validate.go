package config

import (
	"errors"
	"fmt"
)

// ErrInvalid marks a config whose values the scene cannot run with.
var ErrInvalid = errors.New("invalid config")

// Validate checks the tuning that drives the player and missile state
// machines plus the scene layout values Build depends on.
func (c *Config) Validate() error {
	if err := c.Player.Validate(); err != nil {
		return fmt.Errorf("%w: player: %w", ErrInvalid, err)
	}
	if err := c.Missile.Validate(); err != nil {
		return fmt.Errorf("%w: missile: %w", ErrInvalid, err)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("%w: camera: near %v and far %v must satisfy 0 < near < far",
			ErrInvalid, c.Camera.Near, c.Camera.Far)
	}
	if c.World.Fade.Millis < 0 {
		return fmt.Errorf("%w: world.fade: ms must not be negative, got %d", ErrInvalid, c.World.Fade.Millis)
	}
	return nil
}
