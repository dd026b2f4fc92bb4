// Package locomotion is the movement core of a third-person character: a
// hierarchical state machine with root states (grounded, jump, fall) that
// each run a nested sub-state (idle, walk, run), plus a three-stage jump
// combo re-armed by a frame-clock timer.
//
// A StateMachine is driven by one goroutine. Input handlers only record
// flags; every transition is decided inside Tick.
package locomotion

import (
	"fmt"
	"log"

	"github.com/milk9111/locomotion/common"
)

// TransitionLevel says whether a transition happened between root states or
// between sub-states.
type TransitionLevel uint8

const (
	LevelRoot TransitionLevel = iota
	LevelSub
)

func (l TransitionLevel) String() string {
	if l == LevelSub {
		return "sub"
	}
	return "root"
}

// Transition is reported to the OnTransition handler.
type Transition struct {
	Frame uint64
	Level TransitionLevel
	From  StateKind
	To    StateKind
}

func (t Transition) String() string {
	return fmt.Sprintf("frame=%d %s %s->%s", t.Frame, t.Level, t.From, t.To)
}

type StateMachine struct {
	cfg      Config
	body     MotionPrimitive
	animator AnimatorSink
	ints     IntegerSink
	heading  HeadingReference

	motion  MotionState
	jumps   *JumpProfile
	factory *StateFactory
	current RootState
	lastSub StateKind

	clock     Clock
	jumpReset *Deferred

	yaw   float64
	dt    float64
	frame uint64

	ticking bool
	closed  bool

	onTransition func(Transition)
}

// New builds the jump profile and the state singletons and enters the
// grounded state. The animator and heading may be nil.
func New(cfg Config, body MotionPrimitive, animator AnimatorSink, heading HeadingReference) (*StateMachine, error) {
	if body == nil {
		return nil, ErrNilMotion
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	jumps, err := NewJumpProfile(cfg)
	if err != nil {
		return nil, err
	}
	if animator == nil {
		animator = nopAnimator{}
	}

	m := &StateMachine{
		cfg:      cfg,
		body:     body,
		animator: animator,
		heading:  heading,
		jumps:    jumps,
	}
	if ints, ok := animator.(IntegerSink); ok {
		m.ints = ints
	}
	m.factory = newStateFactory(m)
	m.SwitchRootState(m.factory.Grounded())

	if m.current == nil {
		panic("locomotion: no root state after initialization")
	}
	return m, nil
}

// OnTransition registers a handler called after every root or sub-state
// change. Passing nil removes it.
func (m *StateMachine) OnTransition(fn func(Transition)) {
	m.onTransition = fn
}

// Tick advances the machine by one frame: due timers fire, the character
// turns toward the input direction, the root and sub-states update, and the
// resulting movement is applied to the body exactly once.
func (m *StateMachine) Tick(dt float64) {
	if m.closed {
		return
	}
	if m.ticking {
		panic("locomotion: Tick called reentrantly")
	}
	m.ticking = true
	defer func() { m.ticking = false }()

	m.frame++
	m.dt = dt
	m.clock.Advance(dt)

	m.handleRotation(dt)

	m.current.Update()
	m.current.InitializeSubState()
	if sub := m.current.SubState(); sub != nil {
		sub.Update()
	}

	applied := m.motion.Applied
	move := common.Vec3{X: applied.X, Z: applied.Z}.RotateY(m.headingYaw())
	move.Y = applied.Y
	m.body.Move(move.Scale(dt))
}

func (m *StateMachine) handleRotation(dt float64) {
	if !m.motion.MovementPressed {
		return
	}
	target := common.Yaw(m.motion.Input.X, m.motion.Input.Y) + m.headingYaw()
	m.yaw = common.LerpAngle(m.yaw, target, m.cfg.RotationFactor*dt)
}

func (m *StateMachine) headingYaw() float64 {
	if m.heading == nil {
		return 0
	}
	f := m.heading.Forward()
	if f.X == 0 && f.Z == 0 {
		return 0
	}
	return common.Yaw(f.X, f.Z)
}

// OnMovementInput records the horizontal input axes.
func (m *StateMachine) OnMovementInput(v common.Vec2) {
	m.motion.SetInput(v)
}

func (m *StateMachine) OnRunInput(pressed bool) {
	m.motion.RunPressed = pressed
}

// OnJumpInput records the jump button. A press re-arms jumping after a
// forced release.
func (m *StateMachine) OnJumpInput(pressed bool) {
	m.motion.SetJump(pressed)
}

// SwitchRootState exits the current root state (sub-state first), then
// enters next and selects its sub-state. A nil next is ignored.
func (m *StateMachine) SwitchRootState(next RootState) {
	if next == nil {
		return
	}
	prev := m.current
	if prev != nil {
		prev.clearSubState()
		prev.Exit()
	}
	m.current = next
	next.Enter()

	from := StateNone
	if prev != nil {
		from = prev.Kind()
	}
	if m.cfg.Debug {
		log.Printf("locomotion: frame=%d %s -> %s", m.frame, from, next.Kind())
	}
	m.emit(Transition{Frame: m.frame, Level: LevelRoot, From: from, To: next.Kind()})

	next.InitializeSubState()
}

// RequestJumpResetTimer schedules onElapsed after delay seconds of frame
// time, cancelling any earlier request. A cancelled request never runs.
func (m *StateMachine) RequestJumpResetTimer(delay float64, onElapsed func()) {
	if m.jumpReset != nil {
		m.jumpReset.Cancel()
	}
	var handle *Deferred
	handle = m.clock.Schedule(delay, func() {
		if m.closed || m.jumpReset != handle {
			return
		}
		m.jumpReset = nil
		if onElapsed != nil {
			onElapsed()
		}
	})
	m.jumpReset = handle
}

// Close cancels the pending jump reset. Later ticks do nothing.
func (m *StateMachine) Close() {
	if m.closed {
		return
	}
	m.closed = true
	m.cancelJumpReset()
}

// Reconfigure swaps in new tuning and rebuilds the jump profile. The active
// states are kept; new values apply from the next tick.
func (m *StateMachine) Reconfigure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	jumps, err := NewJumpProfile(cfg)
	if err != nil {
		return err
	}
	m.cfg = cfg
	m.jumps = jumps
	return nil
}

func (m *StateMachine) Current() RootState { return m.current }

// CurrentSub returns the active sub-state of the current root state.
func (m *StateMachine) CurrentSub() State { return m.current.SubState() }

// Motion returns a copy of the motion state.
func (m *StateMachine) Motion() MotionState { return m.motion }

func (m *StateMachine) Profile() *JumpProfile { return m.jumps }
func (m *StateMachine) Config() Config { return m.cfg }
func (m *StateMachine) Factory() *StateFactory { return m.factory }
func (m *StateMachine) Yaw() float64 { return m.yaw }
func (m *StateMachine) Frame() uint64 { return m.frame }
func (m *StateMachine) JumpResetPending() bool { return m.jumpReset.Pending() }
func (m *StateMachine) Closed() bool { return m.closed }

func (m *StateMachine) emit(t Transition) {
	if m.onTransition != nil {
		m.onTransition(t)
	}
}

// state context

func (m *StateMachine) motionState() *MotionState { return &m.motion }
func (m *StateMachine) tuning() *Config { return &m.cfg }
func (m *StateMachine) jumpProfile() *JumpProfile { return m.jumps }
func (m *StateMachine) deltaTime() float64 { return m.dt }
func (m *StateMachine) grounded() bool { return m.body.IsGrounded() }
func (m *StateMachine) switchRoot(next RootState) { m.SwitchRootState(next) }
func (m *StateMachine) setFlag(name string, v bool) { m.animator.SetFlag(name, v) }

func (m *StateMachine) requestJumpReset(delay float64, onElapsed func()) {
	m.RequestJumpResetTimer(delay, onElapsed)
}

func (m *StateMachine) cancelJumpReset() {
	if m.jumpReset != nil {
		m.jumpReset.Cancel()
		m.jumpReset = nil
	}
}

func (m *StateMachine) setInteger(name string, v int) {
	if m.ints != nil {
		m.ints.SetInteger(name, v)
	}
}

func (m *StateMachine) noteSubState(next State) {
	if next.Kind() == m.lastSub {
		return
	}
	t := Transition{Frame: m.frame, Level: LevelSub, From: m.lastSub, To: next.Kind()}
	m.lastSub = next.Kind()
	m.emit(t)
}
