package prefabs

import (
	"errors"
	"testing"

	"github.com/milk9111/locomotion/locomotion"
	"gopkg.in/yaml.v3"
)

func TestEmbeddedLocomotionMatchesDefaults(t *testing.T) {
	spec, err := LoadLocomotionSpec("")
	if err != nil {
		t.Fatalf("LoadLocomotionSpec: %v", err)
	}
	cfg, err := spec.ToConfig()
	if err != nil {
		t.Fatalf("ToConfig: %v", err)
	}
	if cfg != locomotion.DefaultConfig() {
		t.Fatalf("embedded tuning drifted from defaults:\n got %+v\nwant %+v", cfg, locomotion.DefaultConfig())
	}
}

func TestLocomotionSpecOverlay(t *testing.T) {
	off := false
	on := true
	cases := []struct {
		name    string
		spec    LocomotionSpec
		check   func(locomotion.Config) bool
		wantErr error
	}{
		{
			name:  "empty_keeps_defaults",
			spec:  LocomotionSpec{},
			check: func(c locomotion.Config) bool { return c == locomotion.DefaultConfig() },
		},
		{
			name: "override_speed_and_flags",
			spec: LocomotionSpec{WalkSpeed: 2, Debug: &on, Jump: JumpSpec{RequireRelease: &off}},
			check: func(c locomotion.Config) bool {
				return c.WalkSpeed == 2 && c.Debug && !c.RequireReleaseBetweenJumps
			},
		},
		{
			name:    "wrong_stage_count",
			spec:    LocomotionSpec{Jump: JumpSpec{Stages: []JumpStageSpec{{TimeScale: 1}}}},
			wantErr: ErrInvalidSpec,
		},
		{
			name:    "invalid_value",
			spec:    LocomotionSpec{Fall: FallSpec{TerminalVelocity: 5}},
			wantErr: locomotion.ErrInvalidConfig,
		},
		{
			name: "non_increasing_stages",
			spec: LocomotionSpec{Jump: JumpSpec{Stages: []JumpStageSpec{
				{TimeScale: 1}, {TimeScale: 1}, {TimeScale: 1},
			}}},
			wantErr: locomotion.ErrInvalidConfig,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg, err := c.spec.ToConfig()
			if c.wantErr != nil {
				if !errors.Is(err, c.wantErr) {
					t.Fatalf("expected %v, got %v", c.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ToConfig: %v", err)
			}
			if !c.check(cfg) {
				t.Fatalf("unexpected config %+v", cfg)
			}
		})
	}
}

func TestEmbeddedArena(t *testing.T) {
	arena, err := LoadArenaSpec("")
	if err != nil {
		t.Fatalf("LoadArenaSpec: %v", err)
	}
	if len(arena.Boxes) == 0 || arena.Character.Height <= 0 {
		t.Fatalf("unexpected arena %+v", arena)
	}
	if arena.Color("grounded", nil) == nil {
		t.Fatalf("expected a grounded color")
	}
	if arena.Color("missing", nil) != nil {
		t.Fatalf("expected fallback for a missing color")
	}
}

func TestArenaValidate(t *testing.T) {
	cases := []struct {
		name  string
		arena ArenaSpec
	}{
		{"no_boxes", ArenaSpec{Name: "empty"}},
		{"flat_box", ArenaSpec{Boxes: []BoxSpec{{Width: 2}}}},
		{"negative_depth", ArenaSpec{Depth: -1, Boxes: []BoxSpec{{Width: 1, Height: 1}}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if err := c.arena.Validate(); !errors.Is(err, ErrInvalidSpec) {
				t.Fatalf("expected ErrInvalidSpec, got %v", err)
			}
		})
	}
}

func TestScenariosReferenceScripts(t *testing.T) {
	set, err := LoadScenarios("")
	if err != nil {
		t.Fatalf("LoadScenarios: %v", err)
	}
	if _, ok := set.Find("triple_jump"); !ok {
		t.Fatalf("expected a triple_jump scenario")
	}
	if _, ok := set.Find("nope"); ok {
		t.Fatalf("unexpected scenario")
	}
	for _, sc := range set.Scenarios {
		if _, err := LoadScript(sc.Script); err != nil {
			t.Fatalf("scenario %s: %v", sc.Name, err)
		}
	}

	names, err := Scripts()
	if err != nil {
		t.Fatalf("Scripts: %v", err)
	}
	if len(names) < len(set.Scenarios) {
		t.Fatalf("expected at least %d scripts, got %v", len(set.Scenarios), names)
	}
}

func TestYAMLColor(t *testing.T) {
	cases := []struct {
		in      string
		wantA   uint32
		wantErr bool
	}{
		{`"#ff0000"`, 0xffff, false},
		{`"00ff0080"`, 0x8080, false},
		{`"#abc"`, 0, true},
		{`[1, 2]`, 0, true},
	}
	for _, c := range cases {
		var got YAMLColor
		err := yaml.Unmarshal([]byte(c.in), &got)
		if c.wantErr {
			if err == nil {
				t.Fatalf("%s: expected an error", c.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: %v", c.in, err)
		}
		if _, _, _, a := got.RGBA(); a != c.wantA {
			t.Fatalf("%s: expected alpha %x, got %x", c.in, c.wantA, a)
		}
	}
}

func TestScriptPaths(t *testing.T) {
	cases := []struct{ in, want string }{
		{"triple_jump", "scripts/triple_jump.tengo"},
		{"scripts/triple_jump.tengo", "scripts/triple_jump.tengo"},
		{"prefabs/scripts/walk_run.tengo", "scripts/walk_run.tengo"},
	}
	for _, c := range cases {
		if got := cleanScriptPath(c.in); got != c.want {
			t.Fatalf("cleanScriptPath(%q) = %q, want %q", c.in, got, c.want)
		}
		if got, want := ScriptName(c.in), c.want[len("scripts/"):len(c.want)-len(".tengo")]; got != want {
			t.Fatalf("ScriptName(%q) = %q, want %q", c.in, got, want)
		}
	}
}

func TestChangeName(t *testing.T) {
	if got := (Change{Path: "/x/prefabs/arena.yaml", Kind: ChangeSpec}).Name(); got != "arena.yaml" {
		t.Fatalf("unexpected %q", got)
	}
	if got := (Change{Path: "/x/prefabs/scripts/a.tengo", Kind: ChangeScript}).Name(); got != "scripts/a.tengo" {
		t.Fatalf("unexpected %q", got)
	}
	if _, ok := classify("notes.txt"); ok {
		t.Fatalf("text files should be ignored")
	}
}
