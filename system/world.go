package system

import (
	"errors"

	"github.com/milk9111/locomotion/common"
	"github.com/milk9111/locomotion/obj"
	"github.com/milk9111/locomotion/prefabs"
)

var ErrNilWorld = errors.New("system: world is nil")

// World owns arena loading and the character body.
type World struct {
	Arena          *prefabs.ArenaSpec
	CollisionWorld *obj.CollisionWorld
	Character      *obj.CharacterBody
}

// NewWorld creates a world from an arena prefab. An empty name loads the
// default arena.
func NewWorld(arena string) (*World, error) {
	w := &World{}
	if err := w.Load(arena); err != nil {
		return nil, err
	}
	return w, nil
}

// Load rebuilds the collision world and character from an arena prefab.
func (w *World) Load(arena string) error {
	if w == nil {
		return ErrNilWorld
	}
	spec, err := prefabs.LoadArenaSpec(arena)
	if err != nil {
		return err
	}
	w.LoadSpec(spec)
	return nil
}

// LoadSpec rebuilds the world from an already parsed arena.
func (w *World) LoadSpec(spec *prefabs.ArenaSpec) {
	w.Arena = spec
	w.CollisionWorld = obj.NewCollisionWorld(boxesFromSpec(spec), spec.Depth)
	w.Character = w.CollisionWorld.AttachCharacter(w.Spawn(), spec.Character.Width, spec.Character.Height)
}

// Spawn returns the feet position the character starts at.
func (w *World) Spawn() common.Vec3 {
	if w == nil || w.Arena == nil {
		return common.Vec3{}
	}
	s := w.Arena.Spawn
	return common.Vec3{X: s.X, Y: s.Y, Z: s.Z}
}

func boxesFromSpec(spec *prefabs.ArenaSpec) []obj.Box {
	boxes := make([]obj.Box, 0, len(spec.Boxes))
	for _, b := range spec.Boxes {
		boxes = append(boxes, obj.Box{MinX: b.X, MinY: b.Y, MaxX: b.X + b.Width, MaxY: b.Y + b.Height})
	}
	return boxes
}
