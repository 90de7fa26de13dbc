package lighting

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/spotlight/pkg/math"
)

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min math.Vec3
	Max math.Vec3
}

// Center returns the center point of the box.
func (b AABB) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Radius returns the distance from center to corner.
func (b AABB) Radius() float32 {
	return b.Max.Sub(b.Min).Scale(0.5).Length()
}

// SunDirection converts longitude and latitude in degrees to the unit vector
// pointing towards the sun. Longitude rotates around Y, latitude is the
// elevation from the horizon.
func SunDirection(longitude, latitude float32) math.Vec3 {
	lon := float64(longitude) * gomath.Pi / 180.0
	lat := float64(latitude) * gomath.Pi / 180.0

	return math.Vec3{
		X: float32(gomath.Cos(lat) * gomath.Sin(lon)),
		Y: float32(gomath.Sin(lat)),
		Z: float32(gomath.Cos(lat) * gomath.Cos(lon)),
	}
}

// DirectionalLight shines along a fixed direction from infinitely far away.
// Bounds is the region its shadow projection covers.
type DirectionalLight struct {
	Base

	direction math.Vec3
	Bounds    AABB
}

// NewDirectionalLight creates a light travelling along direction.
func NewDirectionalLight(name string, direction math.Vec3, bounds AABB) (*DirectionalLight, error) {
	if err := validateDirection(direction); err != nil {
		return nil, fmt.Errorf("directional light %s: %w", name, err)
	}
	d := &DirectionalLight{Base: newBase(name), direction: direction, Bounds: bounds}
	d.transform.Update(math.Vec3{}, direction)
	return d, nil
}

// NewSunLight creates a directional light shining from the sun position
// given in degrees.
func NewSunLight(name string, longitude, latitude float32, bounds AABB) (*DirectionalLight, error) {
	return NewDirectionalLight(name, SunDirection(longitude, latitude).Scale(-1), bounds)
}

// Kind returns KindDirectional.
func (d *DirectionalLight) Kind() Kind { return KindDirectional }

// Direction returns the untransformed travel direction.
func (d *DirectionalLight) Direction() math.Vec3 { return d.direction }

// SetDirection changes the travel direction.
func (d *DirectionalLight) SetDirection(dir math.Vec3) error {
	if err := validateDirection(dir); err != nil {
		return err
	}
	d.direction = dir
	return nil
}

// RefreshTransform re-resolves the parent transform for this frame.
func (d *DirectionalLight) RefreshTransform() bool {
	return d.transform.Update(math.Vec3{}, d.direction).HasParent
}

func (d *DirectionalLight) effectiveDirection() math.Vec3 {
	_, dir := d.transform.Resolve().Effective(math.Vec3{}, d.direction)
	return dir
}

// DeclareUniforms declares the shared light slots.
func (d *DirectionalLight) DeclareUniforms(layout UniformLayout) error {
	return d.declareBase(layout)
}

// TransferUniforms writes the normalized direction and colors. The w of
// vLightData is 1 to mark a directional light.
func (d *DirectionalLight) TransferUniforms(sink UniformSink, index string) error {
	dir := d.effectiveDirection()
	if err := validateDirection(dir); err != nil {
		return fmt.Errorf("directional light %s: %w", d.name, err)
	}
	dir = dir.Normalize()
	sink.UpdateFloat4(UniformLightData, dir.X, dir.Y, dir.Z, 1, index)
	d.transferColors(sink, index)
	return nil
}

// ShadowProjection returns an orthographic projection sized to Bounds with
// 10% padding. The camera only gates the update.
func (d *DirectionalLight) ShadowProjection(cam Camera) (math.Mat4, bool, error) {
	if cam == nil {
		return math.Mat4{}, false, nil
	}
	radius := d.Bounds.Radius()
	if !math.IsFinite(radius) || radius <= 0 {
		return math.Mat4{}, false, fmt.Errorf("%w: empty shadow bounds", ErrInvalidLightGeometry)
	}

	padding := radius * 0.1
	half := radius + padding
	far := radius*2 + radius + padding
	return math.OrthoLH(-half, half, -half, half, 0.1, far), true, nil
}

// ShadowView looks at the center of Bounds from twice its radius back along
// the light direction.
func (d *DirectionalLight) ShadowView() (math.Mat4, error) {
	dir := d.effectiveDirection()
	if err := validateDirection(dir); err != nil {
		return math.Mat4{}, err
	}
	dir = dir.Normalize()
	center := d.Bounds.Center()
	eye := center.Sub(dir.Scale(d.Bounds.Radius() * 2))
	return LightView(eye, dir)
}
