package obj

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/locomotion/common"
)

const (
	// groundProbe is how far below the feet a floor still counts as ground.
	groundProbe = 0.15
	// probeLift starts the probe rays inside the body so a slight overlap
	// with the floor still reports a hit.
	probeLift = 0.5
)

// CharacterBody is the chipmunk-backed motion primitive: a dynamic,
// fixed-rotation box in the X/Y plane. Depth (Z) has no collision and is
// clamped to the world's walkable range.
type CharacterBody struct {
	world *CollisionWorld
	body  *cp.Body
	shape *cp.Shape

	width, height float64
	z             float64

	grounded bool
	moves    int
}

func newCharacterBody(cw *CollisionWorld, spawn common.Vec3, width, height float64) *CharacterBody {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 2
	}

	// infinite moment keeps the box upright
	body := cp.NewBody(1, math.Inf(1))
	body.SetPosition(cp.Vector{X: spawn.X, Y: spawn.Y + height/2})
	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(0)
	shape.SetCollisionType(collisionTypeCharacter)
	shape.SetFilter(cp.ShapeFilter{
		Group:      characterGroup,
		Categories: cp.ALL_CATEGORIES,
		Mask:       cp.ALL_CATEGORIES,
	})

	cw.space.AddBody(body)
	cw.space.AddShape(shape)

	c := &CharacterBody{
		world:  cw,
		body:   body,
		shape:  shape,
		width:  width,
		height: height,
		z:      cw.clampDepth(spawn.Z),
	}
	c.grounded = c.probeGround()
	return c
}

// IsGrounded reports whether a floor was under the feet after the last move.
func (c *CharacterBody) IsGrounded() bool {
	if c == nil {
		return false
	}
	return c.grounded
}

// Move applies one tick of displacement: the X/Y part becomes the body
// velocity for a single space step, Z is integrated directly.
func (c *CharacterBody) Move(delta common.Vec3) {
	if c == nil || c.world == nil {
		return
	}
	dt := c.world.dt
	c.body.SetVelocityVector(cp.Vector{X: delta.X / dt, Y: delta.Y / dt})
	c.world.step()

	c.z = c.world.clampDepth(c.z + delta.Z)
	c.grounded = c.probeGround()
	c.moves++
}

// Position returns the feet position.
func (c *CharacterBody) Position() common.Vec3 {
	if c == nil {
		return common.Vec3{}
	}
	p := c.body.Position()
	return common.Vec3{X: p.X, Y: p.Y - c.height/2, Z: c.z}
}

// Teleport places the feet at p and clears the velocity.
func (c *CharacterBody) Teleport(p common.Vec3) {
	if c == nil {
		return
	}
	c.body.SetPosition(cp.Vector{X: p.X, Y: p.Y + c.height/2})
	c.body.SetVelocityVector(cp.Vector{})
	c.z = c.world.clampDepth(p.Z)
	c.grounded = c.probeGround()
}

func (c *CharacterBody) Size() (float64, float64) {
	return c.width, c.height
}

// Moves counts Move calls since creation.
func (c *CharacterBody) Moves() int {
	return c.moves
}

// probeGround casts three short rays down from the feet: both edges and the
// center. Only upward-facing surfaces count.
func (c *CharacterBody) probeGround() bool {
	p := c.body.Position()
	bottom := p.Y - c.height/2
	inset := c.width * 0.45
	filter := cp.ShapeFilter{Group: characterGroup, Categories: cp.ALL_CATEGORIES, Mask: cp.ALL_CATEGORIES}

	for _, x := range []float64{p.X - inset, p.X, p.X + inset} {
		start := cp.Vector{X: x, Y: bottom + probeLift}
		end := cp.Vector{X: x, Y: bottom - groundProbe}
		hit := c.world.space.SegmentQueryFirst(start, end, 0, filter)
		if hit.Shape != nil && hit.Normal.Y > 0.5 {
			return true
		}
	}
	return false
}

func (cw *CollisionWorld) clampDepth(z float64) float64 {
	if cw == nil || cw.depth <= 0 {
		return z
	}
	return common.Clamp(z, -cw.depth, cw.depth)
}
