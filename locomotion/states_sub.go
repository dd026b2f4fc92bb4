package locomotion

type idleState struct {
	subBase
}

type walkState struct {
	subBase
}

type runState struct {
	subBase
}

func (s *idleState) Enter() {
	s.ctx.setFlag(FlagWalking, false)
	s.ctx.setFlag(FlagRunning, false)
}

func (s *idleState) Update() {
	m := s.ctx.motionState()
	m.Applied.X = 0
	m.Applied.Z = 0
}

func (s *idleState) Exit() {
	s.ctx.setFlag(FlagWalking, false)
	s.ctx.setFlag(FlagRunning, false)
}

func (s *walkState) Enter() {
	s.ctx.setFlag(FlagWalking, true)
	s.ctx.setFlag(FlagRunning, false)
}

func (s *walkState) Update() {
	applyHorizontal(s.ctx, s.ctx.tuning().WalkSpeed)
}

func (s *walkState) Exit() {
	s.ctx.setFlag(FlagWalking, false)
}

func (s *runState) Enter() {
	s.ctx.setFlag(FlagWalking, true)
	s.ctx.setFlag(FlagRunning, true)
}

func (s *runState) Update() {
	cfg := s.ctx.tuning()
	applyHorizontal(s.ctx, cfg.WalkSpeed*cfg.RunMultiplier)
}

func (s *runState) Exit() {
	s.ctx.setFlag(FlagWalking, false)
	s.ctx.setFlag(FlagRunning, false)
}

func applyHorizontal(ctx subContext, speed float64) {
	m := ctx.motionState()
	m.Applied.X = m.Input.X * speed
	m.Applied.Z = m.Input.Y * speed
}
