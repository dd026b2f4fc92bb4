package locomotion

import "github.com/milk9111/locomotion/common"

// Animator parameter names written by the states.
const (
	FlagWalking    = "isWalking"
	FlagRunning    = "isRunning"
	FlagJumping    = "isJumping"
	FlagFalling    = "isFalling"
	ParamJumpCount = "jumpCount"
)

// MotionPrimitive is the physics body the machine drives. Move receives the
// displacement for one tick and resolves its own collisions.
type MotionPrimitive interface {
	IsGrounded() bool
	Move(delta common.Vec3)
}

// AnimatorSink receives boolean animation parameters. The machine never reads
// them back.
type AnimatorSink interface {
	SetFlag(name string, value bool)
}

// IntegerSink is implemented by animator sinks that also accept integer
// parameters such as the jump stage.
type IntegerSink interface {
	SetInteger(name string, value int)
}

// HeadingReference supplies the forward direction (usually the camera's)
// that input is relative to.
type HeadingReference interface {
	Forward() common.Vec3
}

type nopAnimator struct{}

func (nopAnimator) SetFlag(string, bool) {}
