package component

import (
	"fmt"
	"sort"
	"strings"
)

// AnimatorParamKind distinguishes boolean and integer parameters.
type AnimatorParamKind string

const (
	AnimatorParamFlag    AnimatorParamKind = "flag"
	AnimatorParamInteger AnimatorParamKind = "int"
)

// AnimatorChange is emitted when a parameter value actually changes.
type AnimatorChange struct {
	Kind AnimatorParamKind
	Name string
	Bool bool
	Int  int
}

func (c AnimatorChange) String() string {
	if c.Kind == AnimatorParamInteger {
		return fmt.Sprintf("%s=%d", c.Name, c.Int)
	}
	return fmt.Sprintf("%s=%t", c.Name, c.Bool)
}

// AnimatorChangeHandler handles parameter changes.
type AnimatorChangeHandler func(anim *Animator, change AnimatorChange)

// AnimatorChangeEmitter dispatches parameter changes to handlers.
type AnimatorChangeEmitter struct {
	Handlers []AnimatorChangeHandler
}

// Emit sends a change to all handlers.
func (e *AnimatorChangeEmitter) Emit(anim *Animator, change AnimatorChange) {
	if e == nil || len(e.Handlers) == 0 {
		return
	}
	for _, h := range e.Handlers {
		if h != nil {
			h(anim, change)
		}
	}
}

// Animator is a parameter board standing in for an animation controller. It
// stores the boolean and integer parameters the locomotion states write and
// reports changes; it never plays clips.
type Animator struct {
	flags map[string]bool
	ints  map[string]int

	Events AnimatorChangeEmitter
}

func NewAnimator() *Animator {
	return &Animator{
		flags: make(map[string]bool),
		ints:  make(map[string]int),
	}
}

// SetFlag stores a boolean parameter. Writing the same value twice emits
// nothing.
func (a *Animator) SetFlag(name string, value bool) {
	if a == nil || name == "" {
		return
	}
	if a.flags == nil {
		a.flags = make(map[string]bool)
	}
	if old, ok := a.flags[name]; ok && old == value {
		return
	}
	a.flags[name] = value
	a.Events.Emit(a, AnimatorChange{Kind: AnimatorParamFlag, Name: name, Bool: value})
}

// SetInteger stores an integer parameter.
func (a *Animator) SetInteger(name string, value int) {
	if a == nil || name == "" {
		return
	}
	if a.ints == nil {
		a.ints = make(map[string]int)
	}
	if old, ok := a.ints[name]; ok && old == value {
		return
	}
	a.ints[name] = value
	a.Events.Emit(a, AnimatorChange{Kind: AnimatorParamInteger, Name: name, Int: value})
}

func (a *Animator) Flag(name string) bool {
	if a == nil {
		return false
	}
	return a.flags[name]
}

func (a *Animator) Int(name string) int {
	if a == nil {
		return 0
	}
	return a.ints[name]
}

// OnChange registers a change handler.
func (a *Animator) OnChange(h AnimatorChangeHandler) {
	if a == nil || h == nil {
		return
	}
	a.Events.Handlers = append(a.Events.Handlers, h)
}

// Snapshot returns the parameters sorted by name, flags first.
func (a *Animator) Snapshot() []AnimatorChange {
	if a == nil {
		return nil
	}
	out := make([]AnimatorChange, 0, len(a.flags)+len(a.ints))
	for name, v := range a.flags {
		out = append(out, AnimatorChange{Kind: AnimatorParamFlag, Name: name, Bool: v})
	}
	for name, v := range a.ints {
		out = append(out, AnimatorChange{Kind: AnimatorParamInteger, Name: name, Int: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind == AnimatorParamFlag
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// String formats the snapshot on one line for overlays and logs.
func (a *Animator) String() string {
	snap := a.Snapshot()
	parts := make([]string, len(snap))
	for i, c := range snap {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
