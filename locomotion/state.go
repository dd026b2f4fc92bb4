package locomotion

// StateKind tags each concrete state.
type StateKind uint8

const (
	StateNone StateKind = iota
	StateGrounded
	StateJump
	StateFall
	StateIdle
	StateWalk
	StateRun
)

func (k StateKind) String() string {
	switch k {
	case StateGrounded:
		return "grounded"
	case StateJump:
		return "jump"
	case StateFall:
		return "fall"
	case StateIdle:
		return "idle"
	case StateWalk:
		return "walk"
	case StateRun:
		return "run"
	default:
		return "none"
	}
}

// State is one behavior unit of the machine. Each concrete state owns its
// own enter/exit and per-frame update logic.
type State interface {
	Name() string
	Kind() StateKind
	IsRoot() bool
	Enter()
	Update()
	Exit()
}

// RootState is a top-level locomotion mode with a nested sub-state.
type RootState interface {
	State
	SubState() State
	// InitializeSubState selects the sub-state matching the current movement
	// and run flags, switching only when it differs from the active one.
	InitializeSubState()
	clearSubState()
}

// subContext is what sub-states may touch.
type subContext interface {
	motionState() *MotionState
	tuning() *Config
	setFlag(name string, value bool)
}

// rootContext is what root states may touch.
type rootContext interface {
	subContext
	grounded() bool
	jumpProfile() *JumpProfile
	deltaTime() float64
	switchRoot(next RootState)
	requestJumpReset(delay float64, onElapsed func())
	cancelJumpReset()
	setInteger(name string, value int)
	noteSubState(next State)
}

type baseState struct {
	kind    StateKind
	root    bool
	factory *StateFactory
}

func (b *baseState) Name() string { return b.kind.String() }
func (b *baseState) Kind() StateKind { return b.kind }
func (b *baseState) IsRoot() bool { return b.root }

type rootBase struct {
	baseState
	ctx rootContext
	sub State
}

func newRootBase(kind StateKind, ctx rootContext, factory *StateFactory) rootBase {
	return rootBase{
		baseState: baseState{kind: kind, root: true, factory: factory},
		ctx:       ctx,
	}
}

func (r *rootBase) SubState() State {
	return r.sub
}

func (r *rootBase) InitializeSubState() {
	m := r.ctx.motionState()
	next := r.factory.SubStateFor(m.MovementPressed, m.RunPressed)
	if next == r.sub {
		return
	}
	if r.sub != nil {
		r.sub.Exit()
	}
	r.sub = next
	next.Enter()
	r.ctx.noteSubState(next)
}

func (r *rootBase) clearSubState() {
	if r.sub == nil {
		return
	}
	r.sub.Exit()
	r.sub = nil
}

type subBase struct {
	baseState
	ctx subContext
}

func newSubBase(kind StateKind, ctx subContext, factory *StateFactory) subBase {
	return subBase{
		baseState: baseState{kind: kind, factory: factory},
		ctx:       ctx,
	}
}
