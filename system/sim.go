package system

import (
	"fmt"
	"log"
	"strings"

	"github.com/milk9111/locomotion/common"
	"github.com/milk9111/locomotion/component"
	"github.com/milk9111/locomotion/locomotion"
	"github.com/milk9111/locomotion/obj"
)

const (
	defaultTraceLimit = 256
	// maxCatchUpSteps bounds how many fixed steps one Advance may run.
	maxCatchUpSteps = 5
)

// Options configure a Sim. Zero values pick the defaults.
type Options struct {
	Config     locomotion.Config
	Arena      string
	Heading    locomotion.HeadingReference
	Step       float64
	TraceLimit int
}

// TraceEntry is one recorded transition with the sim time it happened at.
type TraceEntry struct {
	Time       float64
	Transition locomotion.Transition
	Params     string
}

func (e TraceEntry) String() string {
	return fmt.Sprintf("t=%.3f %s [%s]", e.Time, e.Transition, e.Params)
}

// ParamEntry is one animator parameter change with the sim time it happened
// at.
type ParamEntry struct {
	Time   float64
	Change component.AnimatorChange
}

func (e ParamEntry) String() string {
	return fmt.Sprintf("t=%.3f param %s", e.Time, e.Change)
}

// View is a read-only snapshot of the sim for scripts and overlays.
type View struct {
	Frame     uint64
	Time      float64
	Root      string
	Sub       string
	Grounded  bool
	JumpCount int
	VelocityY float64
	Yaw       float64
	Position  common.Vec3
	Params    string
}

// Sim drives one character: the world, its locomotion machine and the
// animator board, stepped at a fixed rate.
type Sim struct {
	World    *World
	Machine  *locomotion.StateMachine
	Animator *component.Animator

	// OnRespawn is called with the new machine after a respawn so hosts can
	// retarget their input.
	OnRespawn func(m *locomotion.StateMachine)

	cfg     locomotion.Config
	heading locomotion.HeadingReference

	step  float64
	accum float64
	time  float64

	trace      []TraceEntry
	params     []ParamEntry
	traceLimit int
	respawns   int
}

func NewSim(opts Options) (*Sim, error) {
	if opts.Config == (locomotion.Config{}) {
		opts.Config = locomotion.DefaultConfig()
	}
	if opts.Step <= 0 {
		opts.Step = obj.DefaultStep
	}
	if opts.TraceLimit <= 0 {
		opts.TraceLimit = defaultTraceLimit
	}

	world, err := NewWorld(opts.Arena)
	if err != nil {
		return nil, err
	}

	s := &Sim{
		World:      world,
		Animator:   component.NewAnimator(),
		cfg:        opts.Config,
		heading:    opts.Heading,
		step:       opts.Step,
		traceLimit: opts.TraceLimit,
	}
	s.Animator.OnChange(s.recordParam)
	m, err := locomotion.New(opts.Config, world.Character, s.Animator, opts.Heading)
	if err != nil {
		return nil, fmt.Errorf("system: %w", err)
	}
	m.OnTransition(s.record)
	s.Machine = m
	return s, nil
}

// Step runs exactly one frame of dt seconds.
func (s *Sim) Step(dt float64) {
	if dt <= 0 {
		dt = s.step
	}
	s.time += dt
	s.World.CollisionWorld.BeginStep(dt)
	s.Machine.Tick(dt)

	if s.outOfBounds() {
		if err := s.Respawn(); err != nil {
			log.Printf("system: respawn: %v", err)
		}
	}
}

// Advance accumulates real elapsed time and runs as many fixed steps as fit.
// It returns the number of steps run.
func (s *Sim) Advance(elapsed float64) int {
	s.accum += elapsed
	n := 0
	for s.accum >= s.step && n < maxCatchUpSteps {
		s.Step(s.step)
		s.accum -= s.step
		n++
	}
	if n == maxCatchUpSteps {
		s.accum = 0
	}
	return n
}

// Reconfigure applies new tuning to the running machine and to future
// respawns.
func (s *Sim) Reconfigure(cfg locomotion.Config) error {
	if err := s.Machine.Reconfigure(cfg); err != nil {
		return err
	}
	s.cfg = cfg
	return nil
}

func (s *Sim) Close() {
	if s == nil || s.Machine == nil {
		return
	}
	s.Machine.Close()
}

func (s *Sim) View() View {
	m := s.Machine
	mo := m.Motion()
	v := View{
		Frame:     m.Frame(),
		Time:      s.time,
		Root:      m.Current().Name(),
		Grounded:  s.World.Character.IsGrounded(),
		JumpCount: mo.JumpCount,
		VelocityY: mo.VelocityY,
		Yaw:       m.Yaw(),
		Position:  s.World.Character.Position(),
		Params:    s.Animator.String(),
	}
	if sub := m.CurrentSub(); sub != nil {
		v.Sub = sub.Name()
	}
	return v
}

func (s *Sim) Time() float64 {
	return s.time
}

func (s *Sim) StepSize() float64 {
	return s.step
}

// Trace returns the recorded transitions, oldest first.
func (s *Sim) Trace() []TraceEntry {
	return s.trace
}

// ParamTrace returns the recorded animator parameter changes, oldest first.
func (s *Sim) ParamTrace() []ParamEntry {
	return s.params
}

// TraceText formats the trace one entry per line.
func (s *Sim) TraceText() string {
	var b strings.Builder
	for _, e := range s.trace {
		b.WriteString(e.String())
		b.WriteByte('\n')
	}
	return b.String()
}

func (s *Sim) record(t locomotion.Transition) {
	s.trace = append(s.trace, TraceEntry{Time: s.time, Transition: t, Params: s.Animator.String()})
	if over := len(s.trace) - s.traceLimit; over > 0 {
		s.trace = append(s.trace[:0], s.trace[over:]...)
	}
}

func (s *Sim) recordParam(_ *component.Animator, c component.AnimatorChange) {
	s.params = append(s.params, ParamEntry{Time: s.time, Change: c})
	if over := len(s.params) - s.traceLimit; over > 0 {
		s.params = append(s.params[:0], s.params[over:]...)
	}
}
