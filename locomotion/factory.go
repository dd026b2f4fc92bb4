package locomotion

// StateFactory builds the state singletons once and hands out shared
// references, so transitions never allocate. Idle, Walk and Run are the same
// instances under every root state.
type StateFactory struct {
	grounded *groundedState
	jump     *jumpState
	fall     *fallState
	idle     *idleState
	walk     *walkState
	run      *runState

	byKind map[StateKind]State
}

func newStateFactory(ctx rootContext) *StateFactory {
	f := &StateFactory{}
	f.grounded = &groundedState{rootBase: newRootBase(StateGrounded, ctx, f)}
	f.jump = &jumpState{rootBase: newRootBase(StateJump, ctx, f)}
	f.fall = &fallState{rootBase: newRootBase(StateFall, ctx, f)}
	f.idle = &idleState{subBase: newSubBase(StateIdle, ctx, f)}
	f.walk = &walkState{subBase: newSubBase(StateWalk, ctx, f)}
	f.run = &runState{subBase: newSubBase(StateRun, ctx, f)}

	f.byKind = map[StateKind]State{
		StateGrounded: f.grounded,
		StateJump:     f.jump,
		StateFall:     f.fall,
		StateIdle:     f.idle,
		StateWalk:     f.walk,
		StateRun:      f.run,
	}
	return f
}

func (f *StateFactory) Grounded() RootState { return f.grounded }
func (f *StateFactory) Jump() RootState { return f.jump }
func (f *StateFactory) Fall() RootState { return f.fall }
func (f *StateFactory) Idle() State { return f.idle }
func (f *StateFactory) Walk() State { return f.walk }
func (f *StateFactory) Run() State { return f.run }

// State looks up a singleton by kind.
func (f *StateFactory) State(kind StateKind) (State, bool) {
	s, ok := f.byKind[kind]
	return s, ok
}

// SubStateFor maps the movement and run flags to a sub-state. Run without
// movement is still Idle.
func (f *StateFactory) SubStateFor(movementPressed, runPressed bool) State {
	switch {
	case !movementPressed:
		return f.idle
	case !runPressed:
		return f.walk
	default:
		return f.run
	}
}
