package lighting

import "github.com/Faultbox/spotlight/pkg/math"

// Parent supplies the world matrix a light's local position and direction
// are composed with.
type Parent interface {
	WorldMatrix() math.Mat4
}

// StaticParent is a Parent frozen at a fixed world matrix.
type StaticParent math.Mat4

// WorldMatrix returns the frozen matrix.
func (p StaticParent) WorldMatrix() math.Mat4 { return math.Mat4(p) }

// Resolved is one frame's transformed light placement.
type Resolved struct {
	Position  math.Vec3
	Direction math.Vec3
	HasParent bool
}

// Effective returns the transformed values when a parent was resolved, and
// the raw values otherwise.
func (r Resolved) Effective(position, direction math.Vec3) (math.Vec3, math.Vec3) {
	if r.HasParent {
		return r.Position, r.Direction
	}
	return position, direction
}

// TransformCache holds a light's parent and the placement resolved from it
// for the current frame. It is not safe for concurrent use.
type TransformCache struct {
	parent   Parent
	resolved Resolved
}

// SetParent attaches p; nil detaches. The cached placement is dropped until
// the next Update.
func (c *TransformCache) SetParent(p Parent) {
	c.parent = p
	c.resolved = Resolved{}
}

// Parent returns the attached parent, or nil.
func (c *TransformCache) Parent() Parent {
	return c.parent
}

// Update composes position and direction with the parent's world matrix and
// caches the result. Without a parent the result carries HasParent false.
func (c *TransformCache) Update(position, direction math.Vec3) Resolved {
	if c.parent == nil {
		c.resolved = Resolved{Position: position, Direction: direction}
		return c.resolved
	}

	world := c.parent.WorldMatrix()
	c.resolved = Resolved{
		Position:  world.TransformPoint(position),
		Direction: world.TransformDirection(direction),
		HasParent: true,
	}
	return c.resolved
}

// Resolve returns the placement cached by the last Update.
func (c *TransformCache) Resolve() Resolved {
	return c.resolved
}

// snapshot returns a copy whose parent is frozen at its current world matrix.
func (c *TransformCache) snapshot() TransformCache {
	out := TransformCache{resolved: c.resolved}
	if c.parent != nil {
		out.parent = StaticParent(c.parent.WorldMatrix())
	}
	return out
}
