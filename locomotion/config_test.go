package locomotion

import (
	"errors"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative_rotation", func(c *Config) { c.RotationFactor = -1 }},
		{"negative_walk", func(c *Config) { c.WalkSpeed = -0.5 }},
		{"run_slower_than_walk", func(c *Config) { c.RunMultiplier = 0.5 }},
		{"upward_grounded_gravity", func(c *Config) { c.GroundedGravity = 1 }},
		{"zero_jump_height", func(c *Config) { c.MaxJumpHeight = 0 }},
		{"zero_jump_time", func(c *Config) { c.MaxJumpTime = 0 }},
		{"weak_fall", func(c *Config) { c.FallMultiplier = 0.5 }},
		{"upward_terminal", func(c *Config) { c.TerminalVelocity = 0 }},
		{"zero_reset_delay", func(c *Config) { c.JumpResetDelay = 0 }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := DefaultConfig()
			c.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}
