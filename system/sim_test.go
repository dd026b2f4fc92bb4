package system

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/milk9111/locomotion/locomotion"
	"github.com/milk9111/locomotion/prefabs"
)

func runScenario(t *testing.T, name string, observe func(s *Sim)) (*Sim, *ScriptInput) {
	t.Helper()
	set, err := prefabs.LoadScenarios("")
	if err != nil {
		t.Fatalf("LoadScenarios: %v", err)
	}
	sc, ok := set.Find(name)
	if !ok {
		t.Fatalf("scenario %s not found", name)
	}

	sim, err := NewSim(Options{Arena: sc.Arena, Step: sc.DT})
	if err != nil {
		t.Fatalf("NewSim: %v", err)
	}
	script, err := LoadScriptInput(sc.Script, sim.Machine)
	if err != nil {
		t.Fatalf("LoadScriptInput: %v", err)
	}

	for i := 0; i < sc.Frames && !script.Done(); i++ {
		if err := script.Update(sim.View()); err != nil {
			t.Fatalf("script: %v", err)
		}
		sim.Step(sc.DT)
		if observe != nil {
			observe(sim)
		}
	}
	if !script.Done() {
		t.Fatalf("scenario %s did not finish in %d frames; trace:\n%s", name, sc.Frames, sim.TraceText())
	}
	return sim, script
}

func TestSimTripleJump(t *testing.T) {
	var stages []int
	var launches []float64
	lastRoot := ""

	sim, script := runScenario(t, "triple_jump", func(s *Sim) {
		v := s.View()
		if v.Root == "jump" && lastRoot != "jump" {
			stages = append(stages, v.JumpCount)
			launches = append(launches, v.VelocityY)
		}
		lastRoot = v.Root
	})

	want := []int{1, 2, 3}
	if len(stages) != len(want) {
		t.Fatalf("expected jumps %v, got %v; trace:\n%s", want, stages, sim.TraceText())
	}
	profile := sim.Machine.Profile()
	for i, stage := range want {
		if stages[i] != stage {
			t.Fatalf("expected jumps %v, got %v", want, stages)
		}
		if launches[i] != profile.InitialVelocity(stage) {
			t.Fatalf("stage %d launched at %v, want %v", stage, launches[i], profile.InitialVelocity(stage))
		}
	}
	if len(script.Logs()) != 3 {
		t.Fatalf("expected 3 script log lines, got %v", script.Logs())
	}
	var counts []int
	for _, e := range sim.ParamTrace() {
		if e.Change.Name == locomotion.ParamJumpCount {
			counts = append(counts, e.Change.Int)
		}
	}
	if want := []int{1, 2, 3, 0}; fmt.Sprint(counts) != fmt.Sprint(want) {
		t.Fatalf("expected jumpCount changes %v, got %v", want, counts)
	}
	if got := sim.Animator.Int(locomotion.ParamJumpCount); got != 0 {
		t.Fatalf("expected jumpCount reset after the third jump, got %d", got)
	}
	if sim.Machine.Current().Kind() != locomotion.StateGrounded {
		t.Fatalf("expected to end grounded, got %s", sim.Machine.Current().Kind())
	}
}

func TestSimWalkRun(t *testing.T) {
	sim, _ := runScenario(t, "walk_run", nil)

	var subs []locomotion.StateKind
	for _, e := range sim.Trace() {
		if e.Transition.Level == locomotion.LevelSub {
			subs = append(subs, e.Transition.To)
		}
	}
	want := []locomotion.StateKind{locomotion.StateWalk, locomotion.StateRun, locomotion.StateIdle}
	if len(subs) != len(want) {
		t.Fatalf("expected sub transitions %v, got %v", want, subs)
	}
	for i := range want {
		if subs[i] != want[i] {
			t.Fatalf("expected sub transitions %v, got %v", want, subs)
		}
	}

	// one second of walking plus one of running along +Z
	z := sim.World.Character.Position().Z
	if math.Abs(z-5) > 0.2 {
		t.Fatalf("expected z near 5, got %v", z)
	}
	if sim.Animator.Flag(locomotion.FlagWalking) || sim.Animator.Flag(locomotion.FlagRunning) {
		t.Fatalf("expected idle flags at the end: %s", sim.Animator)
	}
}

func TestSimLedgeFall(t *testing.T) {
	sim, _ := runScenario(t, "ledge_fall", nil)

	walkedOff := false
	for _, e := range sim.Trace() {
		tr := e.Transition
		if tr.Level == locomotion.LevelRoot && tr.From == locomotion.StateGrounded && tr.To == locomotion.StateFall {
			walkedOff = true
		}
	}
	if !walkedOff {
		t.Fatalf("expected a grounded->fall transition; trace:\n%s", sim.TraceText())
	}
	if !sim.World.Character.IsGrounded() {
		t.Fatalf("expected to end on the floor")
	}
}

func TestSimMovesOncePerStep(t *testing.T) {
	sim, err := NewSim(Options{})
	if err != nil {
		t.Fatalf("NewSim: %v", err)
	}
	before := sim.World.Character.Moves()
	if n := sim.Advance(sim.StepSize()*3 + sim.StepSize()/2); n != 3 {
		t.Fatalf("expected 3 fixed steps, got %d", n)
	}
	if got := sim.World.Character.Moves() - before; got != 3 {
		t.Fatalf("expected 3 moves, got %d", got)
	}
	if n := sim.Advance(10); n != maxCatchUpSteps {
		t.Fatalf("expected catch-up to be bounded, got %d", n)
	}
}

func TestSimRespawnBelowArena(t *testing.T) {
	sim, err := NewSim(Options{})
	if err != nil {
		t.Fatalf("NewSim: %v", err)
	}
	var rebuilt *locomotion.StateMachine
	sim.OnRespawn = func(m *locomotion.StateMachine) { rebuilt = m }
	old := sim.Machine

	bounds := sim.World.CollisionWorld.Bounds()
	pos := sim.World.Spawn()
	pos.Y = bounds.MinY - killDepth - 1
	sim.World.Character.Teleport(pos)
	sim.Step(0)

	if sim.Respawns() != 1 || rebuilt == nil || rebuilt == old {
		t.Fatalf("expected one respawn with a new machine")
	}
	if !old.Closed() {
		t.Fatalf("old machine should be closed")
	}
	if p := sim.World.Character.Position(); p != sim.World.Spawn() {
		t.Fatalf("expected spawn position, got %+v", p)
	}
}

func TestSimReconfigure(t *testing.T) {
	sim, err := NewSim(Options{})
	if err != nil {
		t.Fatalf("NewSim: %v", err)
	}
	cfg := locomotion.DefaultConfig()
	cfg.WalkSpeed = 2
	if err := sim.Reconfigure(cfg); err != nil {
		t.Fatalf("Reconfigure: %v", err)
	}
	cfg.RunMultiplier = 0
	if err := sim.Reconfigure(cfg); !errors.Is(err, locomotion.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	if sim.Machine.Config().WalkSpeed != 2 {
		t.Fatalf("expected the valid reconfigure to stick")
	}
}

func TestScriptInputErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"syntax", "update := func(engine, memo) {"},
		{"no_update", "x := 1"},
		{"undefined_update", "update := undefined"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := NewScriptInput(c.name, []byte(c.src), nil); err == nil {
				t.Fatalf("expected an error")
			}
		})
	}

	_, err := NewScriptInput("undefined_update", []byte("update := undefined"), nil)
	if !errors.Is(err, ErrScriptNoUpdate) {
		t.Fatalf("expected ErrScriptNoUpdate, got %v", err)
	}
}

func TestScriptInputRuntimeError(t *testing.T) {
	s, err := NewScriptInput("bad", []byte(`update := func(engine, memo) { x := memo.missing + 1 }`), nil)
	if err != nil {
		t.Fatalf("NewScriptInput: %v", err)
	}
	if err := s.Update(View{}); err == nil {
		t.Fatalf("expected a runtime error")
	}
}
