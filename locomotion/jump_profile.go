package locomotion

import (
	"fmt"
	"math"
)

// JumpProfile is the precomputed gravity and launch velocity for each jump
// stage. Stage 0 (not jumping) shares the stage 1 gravity.
type JumpProfile struct {
	velocities [MaxJumpStage + 1]float64
	gravities  [MaxJumpStage + 1]float64
	heights    [MaxJumpStage + 1]float64
	apexTimes  [MaxJumpStage + 1]float64
}

// NewJumpProfile derives the stage table from the apex height and time of
// each stage: gravity = -2h/t^2 and velocity = sqrt(2h|gravity|).
func NewJumpProfile(cfg Config) (*JumpProfile, error) {
	if cfg.MaxJumpHeight <= 0 || cfg.MaxJumpTime <= 0 {
		return nil, fmt.Errorf("%w: jump height %v and time %v must be > 0", ErrInvalidConfig, cfg.MaxJumpHeight, cfg.MaxJumpTime)
	}

	p := &JumpProfile{}
	timeToApex := cfg.MaxJumpTime / 2
	for i, st := range cfg.JumpStages {
		stage := i + 1
		h := cfg.MaxJumpHeight + st.HeightBonus
		t := timeToApex * st.TimeScale
		if h <= 0 || t <= 0 {
			return nil, fmt.Errorf("%w: stage %d height %v time %v", ErrInvalidConfig, stage, h, t)
		}
		g := -2 * h / (t * t)
		v := math.Sqrt(2 * h * -g)

		if stage > 1 {
			prev := stage - 1
			if h <= p.heights[prev] || t <= p.apexTimes[prev] {
				return nil, fmt.Errorf("%w: stage %d must be higher and longer than stage %d", ErrInvalidConfig, stage, prev)
			}
			if v <= p.velocities[prev] {
				return nil, fmt.Errorf("%w: stage %d velocity %v not above stage %d velocity %v", ErrInvalidConfig, stage, v, prev, p.velocities[prev])
			}
		}

		p.heights[stage] = h
		p.apexTimes[stage] = t
		p.gravities[stage] = g
		p.velocities[stage] = v
	}

	p.heights[0] = p.heights[1]
	p.apexTimes[0] = p.apexTimes[1]
	p.gravities[0] = p.gravities[1]
	p.velocities[0] = p.velocities[1]
	return p, nil
}

// InitialVelocity returns the launch velocity of a stage. Stages outside
// 1..MaxJumpStage use the nearest defined stage.
func (p *JumpProfile) InitialVelocity(stage int) float64 {
	return p.velocities[clampStage(stage, 1)]
}

// Gravity returns the gravity of a stage, clamped to 0..MaxJumpStage.
func (p *JumpProfile) Gravity(stage int) float64 {
	return p.gravities[clampStage(stage, 0)]
}

func (p *JumpProfile) BaseGravity() float64 {
	return p.gravities[0]
}

// ApexHeight returns the target apex height of a stage.
func (p *JumpProfile) ApexHeight(stage int) float64 {
	return p.heights[clampStage(stage, 1)]
}

func clampStage(stage, lo int) int {
	if stage < lo {
		return lo
	}
	if stage > MaxJumpStage {
		return MaxJumpStage
	}
	return stage
}
