package locomotion

import "github.com/milk9111/locomotion/common"

// MotionState is the per-frame movement data shared by the states of one
// machine. Input.Y is the forward axis.
type MotionState struct {
	Input     common.Vec2
	VelocityY float64
	// Applied is handed to the motion primitive (scaled by dt) once per tick.
	Applied common.Vec3

	MovementPressed     bool
	RunPressed          bool
	JumpPressed         bool
	Jumping             bool
	RequireNewJumpPress bool
	JumpCount           int
	// JumpPresses counts presses so a deferred reset can tell whether the
	// button was pressed again after it was armed.
	JumpPresses uint64
}

// SetInput stores the horizontal input and keeps MovementPressed in sync.
func (m *MotionState) SetInput(v common.Vec2) {
	m.Input = v
	m.MovementPressed = !v.IsZero()
}

// SetJump records a jump press or release. A press re-arms jumping.
func (m *MotionState) SetJump(pressed bool) {
	m.JumpPressed = pressed
	if pressed {
		m.RequireNewJumpPress = false
		m.JumpPresses++
	}
}
