package system

import (
	"log"

	"github.com/milk9111/locomotion/locomotion"
)

// killDepth is how far below the lowest arena box the character may fall
// before it is respawned.
const killDepth = 10.0

func (s *Sim) outOfBounds() bool {
	if s == nil || s.World == nil || s.World.Character == nil {
		return false
	}
	bounds := s.World.CollisionWorld.Bounds()
	return s.World.Character.Position().Y < bounds.MinY-killDepth
}

// Respawn puts the character back at the arena spawn with a fresh machine, so
// no jump combo or pending reset survives.
func (s *Sim) Respawn() error {
	if s == nil || s.World == nil {
		return ErrNilWorld
	}
	s.World.Character.Teleport(s.World.Spawn())
	if s.Machine != nil {
		s.Machine.Close()
	}
	m, err := locomotion.New(s.cfg, s.World.Character, s.Animator, s.heading)
	if err != nil {
		return err
	}
	m.OnTransition(s.record)
	s.Machine = m
	s.respawns++
	if s.OnRespawn != nil {
		s.OnRespawn(m)
	}
	log.Printf("system: respawned at %+v (count=%d)", s.World.Spawn(), s.respawns)
	return nil
}

func (s *Sim) Respawns() int {
	return s.respawns
}

// LoadArena swaps in another arena prefab and respawns into it.
func (s *Sim) LoadArena(name string) error {
	if s == nil || s.World == nil {
		return ErrNilWorld
	}
	if err := s.World.Load(name); err != nil {
		return err
	}
	return s.Respawn()
}
