package obj

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/locomotion/common"
)

// stickDeadzone is the gamepad axis magnitude below which a stick reads zero.
const stickDeadzone = 0.2

// InputTarget receives decoded input. The locomotion state machine satisfies
// it.
type InputTarget interface {
	OnMovementInput(v common.Vec2)
	OnRunInput(pressed bool)
	OnJumpInput(pressed bool)
}

// InputFrame is the sampled state of every control for one frame.
type InputFrame struct {
	Move  common.Vec2
	Run   bool
	Jump  bool
	Orbit float64
}

// Input polls keyboard and gamepad and forwards changes to a target. Movement
// is sent whenever the axes change, run and jump on press and release only.
type Input struct {
	target InputTarget
	prev   InputFrame
	primed bool
}

func NewInput(target InputTarget) *Input {
	return &Input{target: target}
}

// SetTarget redirects events, e.g. after the machine is rebuilt. The next
// Update re-sends the full input state.
func (i *Input) SetTarget(target InputTarget) {
	i.target = target
	i.primed = false
}

// Update polls ebiten and dispatches the differences since the last frame.
func (i *Input) Update() InputFrame {
	frame := Poll()
	i.Apply(frame)
	return frame
}

// Apply dispatches a sampled frame. It is separated from polling so a
// recorded or scripted frame can be fed through the same edge logic.
func (i *Input) Apply(frame InputFrame) {
	if i.target == nil {
		i.prev = frame
		return
	}
	if !i.primed || frame.Move != i.prev.Move {
		i.target.OnMovementInput(frame.Move)
	}
	if !i.primed || frame.Run != i.prev.Run {
		i.target.OnRunInput(frame.Run)
	}
	if !i.primed || frame.Jump != i.prev.Jump {
		i.target.OnJumpInput(frame.Jump)
	}
	i.prev = frame
	i.primed = true
}

// Poll samples WASD/arrows, Shift, Space and Q/E plus the first gamepad.
func Poll() InputFrame {
	var f InputFrame

	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		f.Move.X -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		f.Move.X += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp) {
		f.Move.Y += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown) {
		f.Move.Y -= 1
	}
	f.Run = ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)
	f.Jump = ebiten.IsKeyPressed(ebiten.KeySpace)
	if ebiten.IsKeyPressed(ebiten.KeyQ) {
		f.Orbit -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyE) {
		f.Orbit += 1
	}

	ids := ebiten.GamepadIDs()
	if len(ids) > 0 {
		gid := ids[0]
		lx := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Hypot(lx, ly) > stickDeadzone {
			// stick up is negative
			f.Move = common.Vec2{X: lx, Y: -ly}
		}
		rx := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisRightStickHorizontal)
		if math.Abs(rx) > stickDeadzone {
			f.Orbit = rx
		}
		f.Jump = f.Jump || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonRightBottom)
		f.Run = f.Run || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonFrontBottomLeft)
	}

	f.Move = normalizeMove(f.Move)
	return f
}

// normalizeMove keeps diagonal keyboard input at unit length.
func normalizeMove(v common.Vec2) common.Vec2 {
	l := math.Hypot(v.X, v.Y)
	if l <= 1 {
		return v
	}
	return common.Vec2{X: v.X / l, Y: v.Y / l}
}

// KeyJustPressed is used by the host for one-shot actions (pause, copy).
func KeyJustPressed(key ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(key)
}
