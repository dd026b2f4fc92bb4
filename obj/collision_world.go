package obj

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/locomotion/common"
)

const (
	collisionTypeCharacter cp.CollisionType = iota + 1
	collisionTypeSolid
)

// characterGroup keeps the ground probe from hitting the character's own
// shape.
const characterGroup uint = 1

// DefaultStep is the physics step used when no frame time was provided.
const DefaultStep = 1.0 / 60.0

// Box is an axis-aligned solid in the side-view plane, in world units with Y
// up. The walkable depth (Z) is shared by every box.
type Box struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

func (b Box) Width() float64 { return b.MaxX - b.MinX }
func (b Box) Height() float64 { return b.MaxY - b.MinY }

// CollisionWorld owns the chipmunk space: static arena boxes plus at most one
// character body. The space has no gravity; vertical motion comes from the
// locomotion machine.
type CollisionWorld struct {
	space *cp.Space
	boxes []Box
	depth float64

	character *CharacterBody
	dt        float64
}

// NewCollisionWorld builds static shapes for boxes. depth is the half-extent
// of the walkable Z range; zero leaves Z unbounded.
func NewCollisionWorld(boxes []Box, depth float64) *CollisionWorld {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{})
	space.SetCollisionSlop(0.01)

	cw := &CollisionWorld{space: space, depth: depth, dt: DefaultStep}
	for _, b := range boxes {
		cw.AddBox(b)
	}
	return cw
}

// AddBox adds a static solid. Degenerate boxes are ignored.
func (cw *CollisionWorld) AddBox(b Box) {
	if cw == nil || cw.space == nil {
		return
	}
	if b.Width() <= 0 || b.Height() <= 0 {
		return
	}
	bb := cp.BB{L: b.MinX, B: b.MinY, R: b.MaxX, T: b.MaxY}
	shape := cp.NewBox2(cw.space.StaticBody, bb, 0)
	shape.SetFriction(0.8)
	shape.SetCollisionType(collisionTypeSolid)
	cw.space.AddShape(shape)
	cw.boxes = append(cw.boxes, b)
}

// AttachCharacter creates the character body with its feet at spawn. A world
// holds a single character; later calls return the existing one.
func (cw *CollisionWorld) AttachCharacter(spawn common.Vec3, width, height float64) *CharacterBody {
	if cw == nil || cw.space == nil {
		return nil
	}
	if cw.character != nil {
		return cw.character
	}
	cw.character = newCharacterBody(cw, spawn, width, height)
	return cw.character
}

// BeginStep sets the frame time used by the next character move.
func (cw *CollisionWorld) BeginStep(dt float64) {
	if cw == nil {
		return
	}
	if dt <= 0 {
		dt = DefaultStep
	}
	cw.dt = dt
}

func (cw *CollisionWorld) step() {
	if cw == nil || cw.space == nil {
		return
	}
	cw.space.Step(cw.dt)
}

func (cw *CollisionWorld) Boxes() []Box {
	if cw == nil {
		return nil
	}
	return cw.boxes
}

// Bounds returns the union of all static boxes.
func (cw *CollisionWorld) Bounds() Box {
	var out Box
	for i, b := range cw.Boxes() {
		if i == 0 {
			out = b
			continue
		}
		out.MinX = min(out.MinX, b.MinX)
		out.MinY = min(out.MinY, b.MinY)
		out.MaxX = max(out.MaxX, b.MaxX)
		out.MaxY = max(out.MaxY, b.MaxY)
	}
	return out
}
