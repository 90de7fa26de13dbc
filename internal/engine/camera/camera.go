// Package camera provides the orbit camera the viewer looks through and
// shadow projections take their depth range from.
package camera

import (
	gomath "math"

	"github.com/Faultbox/spotlight/internal/engine/lighting"
	"github.com/Faultbox/spotlight/pkg/math"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	Center math.Vec3

	// Spherical coordinates
	Distance  float32 // Distance from center
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Projection
	FOV   float32 // Vertical field of view, radians
	NearZ float32
	FarZ  float32

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates a new orbit camera with default settings.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        40.0,
		RotationX:       0.6,
		RotationY:       0.0,
		FOV:             gomath.Pi / 4,
		NearZ:           1.0,
		FarZ:            10000.0,
		MinDistance:     2.0,
		MaxDistance:     5000.0,
		MinPitch:        0.05,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// MinZ returns the near clip distance.
func (c *OrbitCamera) MinZ() float32 { return c.NearZ }

// MaxZ returns the far clip distance.
func (c *OrbitCamera) MaxZ() float32 { return c.FarZ }

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	x := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Sin(float64(c.RotationY)))
	y := c.Distance * float32(gomath.Sin(float64(c.RotationX)))
	z := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Cos(float64(c.RotationY)))

	return c.Center.Add(math.Vec3{X: x, Y: y, Z: z})
}

// ViewMatrix returns the left-handed view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAtLH(c.Position(), c.Center, math.Up)
}

// ProjectionMatrix returns the perspective for a viewport of the given aspect.
func (c *OrbitCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	return math.PerspectiveFovLH(c.FOV, aspect, c.NearZ, c.FarZ)
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX += deltaY * c.DragSensitivity
	c.RotationX = clamp(c.RotationX, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = clamp(c.Distance, c.MinDistance, c.MaxDistance)
}

// HandleMovement pans the center point on the ground plane relative to the
// current yaw.
func (c *OrbitCamera) HandleMovement(forward, right float32) {
	speed := c.Distance * 0.01

	sin := float32(gomath.Sin(float64(c.RotationY)))
	cos := float32(gomath.Cos(float64(c.RotationY)))

	c.Center.X += (-sin*forward + cos*right) * speed
	c.Center.Z += (-cos*forward - sin*right) * speed
}

// FitToBounds centers the camera on bounds and backs off far enough to see
// it whole.
func (c *OrbitCamera) FitToBounds(bounds lighting.AABB) {
	c.Center = bounds.Center()
	c.Distance = clamp(bounds.Radius()*2.5, c.MinDistance, c.MaxDistance)
	c.RotationX = 0.6
	c.RotationY = 0.0
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
