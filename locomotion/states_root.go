package locomotion

import "math"

type groundedState struct {
	rootBase
}

type jumpState struct {
	rootBase
	// leftGround is set once the body has been airborne during this jump.
	leftGround bool
}

type fallState struct {
	rootBase
}

// Enter pins the body against the floor with a small downward velocity.
func (s *groundedState) Enter() {
	m := s.ctx.motionState()
	m.VelocityY = s.ctx.tuning().GroundedGravity
	m.Applied.Y = m.VelocityY
}

func (s *groundedState) Update() {
	m := s.ctx.motionState()
	switch {
	case m.JumpPressed && !m.RequireNewJumpPress:
		s.ctx.switchRoot(s.factory.Jump())
	case !s.ctx.grounded():
		s.ctx.switchRoot(s.factory.Fall())
	}
}

func (s *groundedState) Exit() {}

func (s *jumpState) Enter() {
	m := s.ctx.motionState()

	m.JumpCount++
	if m.JumpCount > MaxJumpStage {
		m.JumpCount = MaxJumpStage
	}
	m.Jumping = true
	s.leftGround = false
	s.ctx.setFlag(FlagJumping, true)
	s.ctx.setInteger(ParamJumpCount, m.JumpCount)

	v := s.ctx.jumpProfile().InitialVelocity(m.JumpCount)
	m.VelocityY = v
	m.Applied.Y = v

	s.armReset()
}

// armReset (re)starts the combo window. It is requested again on exit, so the
// window runs from the end of the jump rather than its start. A press made
// after arming keeps jumping enabled even if the reset fires that frame.
func (s *jumpState) armReset() {
	m := s.ctx.motionState()
	presses := m.JumpPresses
	s.ctx.requestJumpReset(s.ctx.tuning().JumpResetDelay, func() {
		if m.JumpPresses == presses {
			m.RequireNewJumpPress = true
		}
		m.JumpCount = 0
		s.ctx.setInteger(ParamJumpCount, 0)
	})
}

func (s *jumpState) Update() {
	m := s.ctx.motionState()

	prev := m.VelocityY
	m.VelocityY += s.ctx.jumpProfile().Gravity(m.JumpCount) * s.ctx.deltaTime()
	m.Applied.Y = (prev + m.VelocityY) * 0.5

	grounded := s.ctx.grounded()
	switch {
	case grounded && (s.leftGround || m.VelocityY <= 0):
		s.ctx.switchRoot(s.factory.Grounded())
		return
	case !grounded && m.VelocityY <= 0:
		s.ctx.switchRoot(s.factory.Fall())
		return
	}
	if !grounded {
		s.leftGround = true
	}
}

func (s *jumpState) Exit() {
	m := s.ctx.motionState()
	m.Jumping = false
	s.ctx.setFlag(FlagJumping, false)

	if m.JumpPressed && s.ctx.tuning().RequireReleaseBetweenJumps {
		m.RequireNewJumpPress = true
	}
	// the third stage closes the combo
	if m.JumpCount >= MaxJumpStage {
		m.JumpCount = 0
		s.ctx.setInteger(ParamJumpCount, 0)
		s.ctx.cancelJumpReset()
		return
	}
	s.armReset()
}

func (s *fallState) Enter() {
	s.ctx.setFlag(FlagFalling, true)
}

func (s *fallState) Update() {
	if s.ctx.grounded() {
		s.ctx.switchRoot(s.factory.Grounded())
		return
	}

	m := s.ctx.motionState()
	cfg := s.ctx.tuning()
	gravity := s.ctx.jumpProfile().BaseGravity() * cfg.FallMultiplier

	prev := m.VelocityY
	m.VelocityY = math.Max(m.VelocityY+gravity*s.ctx.deltaTime(), cfg.TerminalVelocity)
	m.Applied.Y = math.Max((prev+m.VelocityY)*0.5, cfg.TerminalVelocity)
}

func (s *fallState) Exit() {
	s.ctx.setFlag(FlagFalling, false)
}
