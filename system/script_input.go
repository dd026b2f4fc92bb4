package system

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/locomotion/common"
	"github.com/milk9111/locomotion/obj"
	"github.com/milk9111/locomotion/prefabs"
)

var ErrScriptNoUpdate = errors.New("script: update function not defined")

// A script defines `update := func(engine, memo) { ... }`. It runs once per
// frame before the machine ticks; memo is a map that persists between frames.
const scriptDispatch = `
if __phase == "update" {
	update(__engine, __memo)
}
`

// ScriptInput drives a locomotion machine from a tengo script instead of a
// keyboard. Buttons are level-held: a call to jump(true) keeps jump held until
// jump(false). Edges reach the machine through the same path as live input.
type ScriptInput struct {
	name     string
	compiled *tengo.Compiled
	memo     *tengo.Map

	input *obj.Input
	frame obj.InputFrame
	done  bool
	logs  []string
}

// LoadScriptInput compiles a script from the prefab scripts directory.
func LoadScriptInput(name string, target obj.InputTarget) (*ScriptInput, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("script: load %s: %w", name, err)
	}
	return NewScriptInput(name, src, target)
}

func NewScriptInput(name string, src []byte, target obj.InputTarget) (*ScriptInput, error) {
	script := tengo.NewScript([]byte(string(src) + "\n" + scriptDispatch))
	_ = script.Add("__phase", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__memo", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}

	s := &ScriptInput{
		name:     name,
		compiled: compiled,
		memo:     &tengo.Map{Value: map[string]tengo.Object{}},
		input:    obj.NewInput(target),
	}

	// run the top level once so globals are defined
	if err := s.run("noop", &tengo.ImmutableMap{Value: map[string]tengo.Object{}}); err != nil {
		return nil, fmt.Errorf("script: %s: %w", name, err)
	}
	if !compiled.IsDefined("update") {
		return nil, fmt.Errorf("%w: %s", ErrScriptNoUpdate, name)
	}
	return s, nil
}

// SetTarget points the script at a new machine, e.g. after a respawn.
func (s *ScriptInput) SetTarget(target obj.InputTarget) {
	s.input.SetTarget(target)
}

// Update runs the script for one frame and forwards the resulting input.
// A finished script does nothing.
func (s *ScriptInput) Update(view View) error {
	if s.done {
		return nil
	}
	if err := s.run("update", s.engine(view)); err != nil {
		return fmt.Errorf("script: %s frame %d: %w", s.name, view.Frame, err)
	}
	s.input.Apply(s.frame)
	return nil
}

func (s *ScriptInput) Name() string { return s.name }
func (s *ScriptInput) Done() bool { return s.done }

// Frame returns the input currently held by the script.
func (s *ScriptInput) Frame() obj.InputFrame { return s.frame }

// Logs returns the messages written with log().
func (s *ScriptInput) Logs() []string { return s.logs }

func (s *ScriptInput) run(phase string, engine *tengo.ImmutableMap) error {
	if err := s.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := s.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := s.compiled.Set("__memo", s.memo); err != nil {
		return err
	}
	return s.compiled.Run()
}

func (s *ScriptInput) engine(view View) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["move"] = &tengo.UserFunction{Name: "move", Value: func(args ...tengo.Object) (tengo.Object, error) {
		var v common.Vec2
		if len(args) > 0 {
			v.X, _ = tengo.ToFloat64(args[0])
		}
		if len(args) > 1 {
			v.Y, _ = tengo.ToFloat64(args[1])
		}
		s.frame.Move = v
		return tengo.UndefinedValue, nil
	}}

	values["run"] = &tengo.UserFunction{Name: "run", Value: func(args ...tengo.Object) (tengo.Object, error) {
		s.frame.Run = argBool(args)
		return tengo.UndefinedValue, nil
	}}

	values["jump"] = &tengo.UserFunction{Name: "jump", Value: func(args ...tengo.Object) (tengo.Object, error) {
		s.frame.Jump = argBool(args)
		return tengo.UndefinedValue, nil
	}}

	values["jump_held"] = &tengo.UserFunction{Name: "jump_held", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return boolObject(s.frame.Jump), nil
	}}

	values["finish"] = &tengo.UserFunction{Name: "finish", Value: func(args ...tengo.Object) (tengo.Object, error) {
		s.done = true
		return tengo.UndefinedValue, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		msg := strings.Join(parts, " ")
		s.logs = append(s.logs, msg)
		log.Printf("script: %s frame=%d %s", s.name, view.Frame, msg)
		return tengo.UndefinedValue, nil
	}}

	values["frame"] = &tengo.UserFunction{Name: "frame", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(view.Frame)}, nil
	}}

	values["time"] = &tengo.UserFunction{Name: "time", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: view.Time}, nil
	}}

	values["state"] = &tengo.UserFunction{Name: "state", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.String{Value: view.Root}, nil
	}}

	values["sub"] = &tengo.UserFunction{Name: "sub", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.String{Value: view.Sub}, nil
	}}

	values["grounded"] = &tengo.UserFunction{Name: "grounded", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return boolObject(view.Grounded), nil
	}}

	values["jump_count"] = &tengo.UserFunction{Name: "jump_count", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(view.JumpCount)}, nil
	}}

	values["velocity_y"] = &tengo.UserFunction{Name: "velocity_y", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: view.VelocityY}, nil
	}}

	values["position"] = &tengo.UserFunction{Name: "position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		p := view.Position
		return &tengo.Array{Value: []tengo.Object{
			&tengo.Float{Value: p.X},
			&tengo.Float{Value: p.Y},
			&tengo.Float{Value: p.Z},
		}}, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

// argBool reads an optional boolean argument; no argument means true.
func argBool(args []tengo.Object) bool {
	if len(args) == 0 {
		return true
	}
	v, _ := tengo.ToBool(args[0])
	return v
}

func boolObject(v bool) tengo.Object {
	if v {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
