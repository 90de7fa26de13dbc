package camera

import (
	"testing"

	"github.com/Faultbox/spotlight/internal/engine/lighting"
	"github.com/Faultbox/spotlight/pkg/math"
)

var _ lighting.Camera = (*OrbitCamera)(nil)

func TestOrbitCameraDepthRange(t *testing.T) {
	c := NewOrbitCamera()
	c.NearZ, c.FarZ = 0.5, 250

	if c.MinZ() != 0.5 || c.MaxZ() != 250 {
		t.Errorf("depth range = [%v, %v], want [0.5, 250]", c.MinZ(), c.MaxZ())
	}
}

func TestOrbitCameraViewLooksAtCenter(t *testing.T) {
	c := NewOrbitCamera()
	c.Center = math.Vec3{X: 3, Y: 1, Z: -2}
	c.RotationY = 0.7

	p := c.ViewMatrix().TransformPoint(c.Center)
	if abs(p.X) > 1e-4 || abs(p.Y) > 1e-4 {
		t.Errorf("center in view space = %v, want on +Z axis", p)
	}
	if abs(p.Z-c.Distance) > 1e-3 {
		t.Errorf("center depth = %v, want %v", p.Z, c.Distance)
	}
}

func TestOrbitCameraProjection(t *testing.T) {
	c := NewOrbitCamera()
	proj := c.ProjectionMatrix(16.0 / 9.0)

	near := proj.TransformPoint(math.Vec3{Z: c.NearZ})
	far := proj.TransformPoint(math.Vec3{Z: c.FarZ})
	if abs(near.Z) > 1e-5 || abs(far.Z-1) > 1e-5 {
		t.Errorf("depth mapping = %v..%v, want 0..1", near.Z, far.Z)
	}
}

func TestOrbitCameraClamps(t *testing.T) {
	tests := []struct {
		name  string
		apply func(*OrbitCamera)
		check func(*OrbitCamera) bool
	}{
		{"pitch max", func(c *OrbitCamera) { c.HandleDrag(0, 10000) }, func(c *OrbitCamera) bool { return c.RotationX == c.MaxPitch }},
		{"pitch min", func(c *OrbitCamera) { c.HandleDrag(0, -10000) }, func(c *OrbitCamera) bool { return c.RotationX == c.MinPitch }},
		{"zoom in", func(c *OrbitCamera) {
			for range 100 {
				c.HandleZoom(5)
			}
		}, func(c *OrbitCamera) bool { return c.Distance == c.MinDistance }},
		{"zoom out", func(c *OrbitCamera) {
			for range 200 {
				c.HandleZoom(-5)
			}
		}, func(c *OrbitCamera) bool { return c.Distance == c.MaxDistance }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewOrbitCamera()
			tt.apply(c)
			if !tt.check(c) {
				t.Errorf("unexpected state %+v", c)
			}
		})
	}
}

func TestOrbitCameraFitToBounds(t *testing.T) {
	c := NewOrbitCamera()
	c.FitToBounds(lighting.AABB{Min: math.Vec3{X: -10, Z: -10}, Max: math.Vec3{X: 10, Y: 4, Z: 10}})

	if c.Center != (math.Vec3{Y: 2}) {
		t.Errorf("center = %v, want (0,2,0)", c.Center)
	}
	if c.Distance <= 20 {
		t.Errorf("distance = %v, want beyond bounds radius", c.Distance)
	}
}

func TestOrbitCameraMovement(t *testing.T) {
	c := NewOrbitCamera()
	c.HandleMovement(1, 0)

	if c.Center.Z >= 0 {
		t.Errorf("forward moved center to %v, want -Z", c.Center)
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
