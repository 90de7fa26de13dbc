package lighting

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/spotlight/pkg/math"
)

// DefaultPointRange is used when a point light is created with a
// non-positive range.
const DefaultPointRange = 100.0

// CubeFaces is the number of shadow views a point light renders.
const CubeFaces = 6

// cubeFaces holds the look direction and up vector of each cube face, in
// +X, -X, +Y, -Y, +Z, -Z order.
var cubeFaces = [CubeFaces]struct{ dir, up math.Vec3 }{
	{math.Vec3{X: 1}, math.Vec3{Y: 1}},
	{math.Vec3{X: -1}, math.Vec3{Y: 1}},
	{math.Vec3{Y: 1}, math.Vec3{Z: -1}},
	{math.Vec3{Y: -1}, math.Vec3{Z: 1}},
	{math.Vec3{Z: 1}, math.Vec3{Y: 1}},
	{math.Vec3{Z: -1}, math.Vec3{Y: 1}},
}

// PointLight emits in every direction from a position.
type PointLight struct {
	Base

	position math.Vec3
}

// NewPointLight creates a point light. Color components are clamped to
// [0,1] and a non-positive range falls back to DefaultPointRange.
func NewPointLight(name string, position, color math.Vec3, lightRange float32) (*PointLight, error) {
	if !position.IsFinite() {
		return nil, fmt.Errorf("point light %s: %w: position %v", name, ErrInvalidLightGeometry, position)
	}

	p := &PointLight{Base: newBase(name), position: position}
	p.Diffuse = clampColor(color)
	p.Specular = p.Diffuse
	if lightRange <= 0 || !math.IsFinite(lightRange) {
		lightRange = DefaultPointRange
	}
	p.Range = lightRange
	p.transform.Update(position, math.Vec3{})
	return p, nil
}

// Kind returns KindPoint.
func (p *PointLight) Kind() Kind { return KindPoint }

// Position returns the untransformed light position.
func (p *PointLight) Position() math.Vec3 { return p.position }

// SetPosition moves the light.
func (p *PointLight) SetPosition(pos math.Vec3) error {
	if !pos.IsFinite() {
		return fmt.Errorf("%w: position %v", ErrInvalidLightGeometry, pos)
	}
	p.position = pos
	return nil
}

// RefreshTransform re-resolves the parent transform for this frame.
func (p *PointLight) RefreshTransform() bool {
	return p.transform.Update(p.position, math.Vec3{}).HasParent
}

func (p *PointLight) effectivePosition() math.Vec3 {
	pos, _ := p.transform.Resolve().Effective(p.position, math.Vec3{})
	return pos
}

// DeclareUniforms declares the shared light slots.
func (p *PointLight) DeclareUniforms(layout UniformLayout) error {
	return p.declareBase(layout)
}

// TransferUniforms writes position and colors. The w of vLightData is 0 to
// mark a positional light without a cone.
func (p *PointLight) TransferUniforms(sink UniformSink, index string) error {
	pos := p.effectivePosition()
	sink.UpdateFloat4(UniformLightData, pos.X, pos.Y, pos.Z, 0, index)
	p.transferColors(sink, index)
	return nil
}

// ShadowProjection returns the 90 degree perspective shared by all cube faces.
func (p *PointLight) ShadowProjection(cam Camera) (math.Mat4, bool, error) {
	if cam == nil {
		return math.Mat4{}, false, nil
	}
	near, far := cam.MinZ(), cam.MaxZ()
	if err := validateCameraRange(near, far); err != nil {
		return math.Mat4{}, false, err
	}
	return math.PerspectiveFovLH(gomath.Pi/2, 1, near, far), true, nil
}

// ShadowView returns the view of the +X cube face.
func (p *PointLight) ShadowView() (math.Mat4, error) {
	return p.FaceView(0)
}

// FaceView returns the view matrix of one cube face, 0 to 5 in
// +X, -X, +Y, -Y, +Z, -Z order.
func (p *PointLight) FaceView(face int) (math.Mat4, error) {
	if face < 0 || face >= CubeFaces {
		return math.Mat4{}, fmt.Errorf("point light %s: cube face %d out of range", p.name, face)
	}
	pos := p.effectivePosition()
	f := cubeFaces[face]
	return math.LookAtLH(pos, pos.Add(f.dir), f.up), nil
}

// clampColor limits each component to [0,1].
func clampColor(c math.Vec3) math.Vec3 {
	return math.Vec3{X: clamp01(c.X), Y: clamp01(c.Y), Z: clamp01(c.Z)}
}

func clamp01(v float32) float32 {
	if v > 1 {
		return 1
	}
	if v < 0 {
		return 0
	}
	return v
}
