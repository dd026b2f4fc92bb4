package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/milk9111/locomotion/locomotion"
	"gopkg.in/yaml.v3"
)

var ErrInvalidSpec = errors.New("prefabs: invalid spec")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LocomotionSpec is the YAML form of locomotion.Config. Zero numbers keep the
// default value.
type LocomotionSpec struct {
	Name            string   `yaml:"name"`
	RotationFactor  float64  `yaml:"rotation_factor"`
	WalkSpeed       float64  `yaml:"walk_speed"`
	RunMultiplier   float64  `yaml:"run_multiplier"`
	GroundedGravity float64  `yaml:"grounded_gravity"`
	Jump            JumpSpec `yaml:"jump"`
	Fall            FallSpec `yaml:"fall"`
	Debug           *bool    `yaml:"debug"`
}

type JumpSpec struct {
	MaxHeight      float64         `yaml:"max_height"`
	MaxTime        float64         `yaml:"max_time"`
	ResetDelay     float64         `yaml:"reset_delay"`
	RequireRelease *bool           `yaml:"require_release"`
	Stages         []JumpStageSpec `yaml:"stages"`
}

type JumpStageSpec struct {
	HeightBonus float64 `yaml:"height_bonus"`
	TimeScale   float64 `yaml:"time_scale"`
}

type FallSpec struct {
	Multiplier       float64 `yaml:"multiplier"`
	TerminalVelocity float64 `yaml:"terminal_velocity"`
}

func LoadLocomotionSpec(filename string) (*LocomotionSpec, error) {
	if filename == "" {
		filename = "locomotion.yaml"
	}
	spec, err := LoadSpec[LocomotionSpec](filename)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// ToConfig overlays the spec onto locomotion.DefaultConfig and validates the
// result.
func (s *LocomotionSpec) ToConfig() (locomotion.Config, error) {
	cfg := locomotion.DefaultConfig()
	if s == nil {
		return cfg, nil
	}

	overlay := func(dst *float64, v float64) {
		if v != 0 {
			*dst = v
		}
	}
	overlay(&cfg.RotationFactor, s.RotationFactor)
	overlay(&cfg.WalkSpeed, s.WalkSpeed)
	overlay(&cfg.RunMultiplier, s.RunMultiplier)
	overlay(&cfg.GroundedGravity, s.GroundedGravity)
	overlay(&cfg.MaxJumpHeight, s.Jump.MaxHeight)
	overlay(&cfg.MaxJumpTime, s.Jump.MaxTime)
	overlay(&cfg.JumpResetDelay, s.Jump.ResetDelay)
	overlay(&cfg.FallMultiplier, s.Fall.Multiplier)
	overlay(&cfg.TerminalVelocity, s.Fall.TerminalVelocity)
	if s.Jump.RequireRelease != nil {
		cfg.RequireReleaseBetweenJumps = *s.Jump.RequireRelease
	}
	if s.Debug != nil {
		cfg.Debug = *s.Debug
	}

	if n := len(s.Jump.Stages); n > 0 {
		if n != locomotion.MaxJumpStage {
			return cfg, fmt.Errorf("%w: %s: %d jump stages, want %d", ErrInvalidSpec, s.Name, n, locomotion.MaxJumpStage)
		}
		for i, st := range s.Jump.Stages {
			cfg.JumpStages[i] = locomotion.JumpStage{HeightBonus: st.HeightBonus, TimeScale: st.TimeScale}
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("prefabs: %s: %w", s.Name, err)
	}
	if _, err := locomotion.NewJumpProfile(cfg); err != nil {
		return cfg, fmt.Errorf("prefabs: %s: %w", s.Name, err)
	}
	return cfg, nil
}

// ArenaSpec describes the static geometry of a side-view test arena.
type ArenaSpec struct {
	Name      string               `yaml:"name"`
	Depth     float64              `yaml:"depth"`
	Spawn     PointSpec            `yaml:"spawn"`
	Character CharacterSpec        `yaml:"character"`
	Boxes     []BoxSpec            `yaml:"boxes"`
	Colors    map[string]YAMLColor `yaml:"colors"`
}

type PointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

type CharacterSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// BoxSpec is a solid with its lower-left corner at X/Y.
type BoxSpec struct {
	Name   string  `yaml:"name"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

func LoadArenaSpec(filename string) (*ArenaSpec, error) {
	if filename == "" {
		filename = "arena.yaml"
	}
	spec, err := LoadSpec[ArenaSpec](filename)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

func (s *ArenaSpec) Validate() error {
	if len(s.Boxes) == 0 {
		return fmt.Errorf("%w: arena %s has no boxes", ErrInvalidSpec, s.Name)
	}
	for i, b := range s.Boxes {
		if b.Width <= 0 || b.Height <= 0 {
			return fmt.Errorf("%w: arena %s box %d (%s) has size %vx%v", ErrInvalidSpec, s.Name, i, b.Name, b.Width, b.Height)
		}
	}
	if s.Depth < 0 {
		return fmt.Errorf("%w: arena %s depth %v < 0", ErrInvalidSpec, s.Name, s.Depth)
	}
	return nil
}

// Color returns the configured color for a key, or fallback.
func (s *ArenaSpec) Color(key string, fallback color.Color) color.Color {
	if s == nil {
		return fallback
	}
	if c, ok := s.Colors[key]; ok && c.Color != nil {
		return c.Color
	}
	return fallback
}

// ScenarioSetSpec lists scripted headless runs.
type ScenarioSetSpec struct {
	Scenarios []ScenarioSpec `yaml:"scenarios"`
}

type ScenarioSpec struct {
	Name   string  `yaml:"name"`
	Script string  `yaml:"script"`
	Frames int     `yaml:"frames"`
	DT     float64 `yaml:"dt"`
	Arena  string  `yaml:"arena"`
}

func LoadScenarios(filename string) (*ScenarioSetSpec, error) {
	if filename == "" {
		filename = "scenarios.yaml"
	}
	spec, err := LoadSpec[ScenarioSetSpec](filename)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

func (s *ScenarioSetSpec) Find(name string) (ScenarioSpec, bool) {
	if s == nil {
		return ScenarioSpec{}, false
	}
	for _, sc := range s.Scenarios {
		if sc.Name == name {
			return sc, true
		}
	}
	return ScenarioSpec{}, false
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
