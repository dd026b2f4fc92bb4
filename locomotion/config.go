package locomotion

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfig = errors.New("locomotion: invalid config")
	ErrNilMotion     = errors.New("locomotion: motion primitive is nil")
)

// MaxJumpStage is the last stage of a jump combo.
const MaxJumpStage = 3

// JumpStage tunes one stage of the combo relative to the base jump.
type JumpStage struct {
	// HeightBonus is added to MaxJumpHeight.
	HeightBonus float64
	// TimeScale multiplies the base time to apex.
	TimeScale float64
}

// Config holds the tuning for a single character. Distances are world units,
// times are seconds.
type Config struct {
	RotationFactor  float64
	WalkSpeed       float64
	RunMultiplier   float64
	GroundedGravity float64

	MaxJumpHeight float64
	MaxJumpTime   float64
	JumpStages    [MaxJumpStage]JumpStage

	FallMultiplier   float64
	TerminalVelocity float64

	// JumpResetDelay is how long after a jump starts the combo stays armed.
	JumpResetDelay float64
	// RequireReleaseBetweenJumps stops a held button from chaining jumps on
	// landing.
	RequireReleaseBetweenJumps bool

	Debug bool
}

func DefaultConfig() Config {
	return Config{
		RotationFactor:  15,
		WalkSpeed:       1,
		RunMultiplier:   4,
		GroundedGravity: -0.05,
		MaxJumpHeight:   4,
		MaxJumpTime:     0.75,
		JumpStages: [MaxJumpStage]JumpStage{
			{HeightBonus: 0, TimeScale: 1},
			{HeightBonus: 2, TimeScale: 1.25},
			{HeightBonus: 4, TimeScale: 1.5},
		},
		FallMultiplier:             2,
		TerminalVelocity:           -20,
		JumpResetDelay:             0.75,
		RequireReleaseBetweenJumps: true,
	}
}

// Validate reports the first out-of-range field. The jump stage table is
// checked by NewJumpProfile.
func (c Config) Validate() error {
	switch {
	case c.RotationFactor < 0:
		return fmt.Errorf("%w: rotation factor %v < 0", ErrInvalidConfig, c.RotationFactor)
	case c.WalkSpeed < 0:
		return fmt.Errorf("%w: walk speed %v < 0", ErrInvalidConfig, c.WalkSpeed)
	case c.RunMultiplier < 1:
		return fmt.Errorf("%w: run multiplier %v < 1", ErrInvalidConfig, c.RunMultiplier)
	case c.GroundedGravity > 0:
		return fmt.Errorf("%w: grounded gravity %v > 0", ErrInvalidConfig, c.GroundedGravity)
	case c.MaxJumpHeight <= 0:
		return fmt.Errorf("%w: max jump height %v <= 0", ErrInvalidConfig, c.MaxJumpHeight)
	case c.MaxJumpTime <= 0:
		return fmt.Errorf("%w: max jump time %v <= 0", ErrInvalidConfig, c.MaxJumpTime)
	case c.FallMultiplier < 1:
		return fmt.Errorf("%w: fall multiplier %v < 1", ErrInvalidConfig, c.FallMultiplier)
	case c.TerminalVelocity >= 0:
		return fmt.Errorf("%w: terminal velocity %v >= 0", ErrInvalidConfig, c.TerminalVelocity)
	case c.JumpResetDelay <= 0:
		return fmt.Errorf("%w: jump reset delay %v <= 0", ErrInvalidConfig, c.JumpResetDelay)
	}
	return nil
}
