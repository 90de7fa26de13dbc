package lighting

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/spotlight/internal/logger"
	"github.com/Faultbox/spotlight/pkg/math"
)

// Default texture-projection depth range. At this near plane far/(far-near)
// rounds to 1 in float32, so the far value has no effect on the matrix.
const (
	DefaultTextureNear = 1e-7
	DefaultTextureFar  = 1000.0
)

// SpotLight is a cone-shaped light that can project a texture.
//
// The texture-projection matrix is rebuilt synchronously by every setter of
// position, direction, cone angle or texture range, so it is current as soon
// as the setter returns. A setter that returns an error leaves the light
// unchanged.
type SpotLight struct {
	Base

	position  math.Vec3
	direction math.Vec3
	coneAngle float32
	exponent  float32

	shadowAngleScale float32

	textureNear       float32
	textureFar        float32
	textureProjection math.Mat4
	overridden        bool

	projected Texture
}

// Option configures a SpotLight at construction.
type Option func(*SpotLight)

// WithTextureRange overrides the texture-projection depth range.
func WithTextureRange(near, far float32) Option {
	return func(s *SpotLight) {
		s.textureNear = near
		s.textureFar = far
	}
}

// WithShadowAngleScale sets the shadow field-of-view multiplier.
func WithShadowAngleScale(scale float32) Option {
	return func(s *SpotLight) { s.shadowAngleScale = scale }
}

// WithParent attaches a parent transform.
func WithParent(p Parent) Option {
	return func(s *SpotLight) { s.transform.SetParent(p) }
}

// WithDiffuse sets the diffuse color.
func WithDiffuse(c math.Vec3) Option {
	return func(s *SpotLight) { s.Diffuse = c }
}

// WithSpecular sets the specular color.
func WithSpecular(c math.Vec3) Option {
	return func(s *SpotLight) { s.Specular = c }
}

// WithRange sets the falloff distance.
func WithRange(r float32) Option {
	return func(s *SpotLight) { s.Range = r }
}

// WithProjectedTexture attaches a texture to project. A nil pointer inside
// the interface counts as no texture.
func WithProjectedTexture(t Texture) Option {
	return func(s *SpotLight) { s.projected = textureOrNil(t) }
}

// NewSpotLight creates a spot light and builds its texture-projection matrix.
// coneAngle is the full cone angle in radians.
func NewSpotLight(name string, position, direction math.Vec3, coneAngle, exponent float32, opts ...Option) (*SpotLight, error) {
	s := &SpotLight{
		Base:        newBase(name),
		exponent:    exponent,
		textureNear: DefaultTextureNear,
		textureFar:  DefaultTextureFar,
	}
	for _, opt := range opts {
		opt(s)
	}

	if !math.IsFinite(exponent) {
		return nil, fmt.Errorf("spot light %s: %w: exponent %v", name, ErrInvalidLightGeometry, exponent)
	}
	if !math.IsFinite(s.shadowAngleScale) || s.shadowAngleScale < 0 {
		return nil, fmt.Errorf("spot light %s: %w: shadow angle scale %v", name, ErrInvalidLightGeometry, s.shadowAngleScale)
	}
	if err := s.rebuild(position, direction, s.textureNear, s.textureFar, coneAngle); err != nil {
		return nil, fmt.Errorf("spot light %s: %w", name, err)
	}
	s.transform.Update(s.position, s.direction)

	return s, nil
}

// rebuild validates a candidate set of projection inputs, and commits them
// with the matching matrix only on success.
func (s *SpotLight) rebuild(position, direction math.Vec3, near, far, coneAngle float32) error {
	m, err := TextureProjection(position, direction, near, far, coneAngle)
	if err != nil {
		return err
	}

	s.position = position
	s.direction = direction
	s.textureNear = near
	s.textureFar = far
	s.coneAngle = coneAngle
	s.textureProjection = m
	s.overridden = false

	logger.Debug("spot texture projection rebuilt",
		zap.String("light", s.name),
		zap.Float32("cone", coneAngle),
		zap.Float32("near", near),
		zap.Float32("far", far),
	)
	return nil
}

// Kind returns KindSpot.
func (s *SpotLight) Kind() Kind { return KindSpot }

// Position returns the untransformed cone apex.
func (s *SpotLight) Position() math.Vec3 { return s.position }

// SetPosition moves the cone apex.
func (s *SpotLight) SetPosition(p math.Vec3) error {
	return s.rebuild(p, s.direction, s.textureNear, s.textureFar, s.coneAngle)
}

// Direction returns the untransformed cone axis as given.
func (s *SpotLight) Direction() math.Vec3 { return s.direction }

// SetDirection changes the cone axis. It need not be normalized.
func (s *SpotLight) SetDirection(d math.Vec3) error {
	return s.rebuild(s.position, d, s.textureNear, s.textureFar, s.coneAngle)
}

// ConeAngle returns the full cone angle in radians.
func (s *SpotLight) ConeAngle() float32 { return s.coneAngle }

// SetConeAngle changes the full cone angle. It must lie in (0, π).
func (s *SpotLight) SetConeAngle(angle float32) error {
	return s.rebuild(s.position, s.direction, s.textureNear, s.textureFar, angle)
}

// TextureNear returns the near distance of the texture projection.
func (s *SpotLight) TextureNear() float32 { return s.textureNear }

// SetTextureNear changes the near distance of the texture projection.
func (s *SpotLight) SetTextureNear(near float32) error {
	return s.rebuild(s.position, s.direction, near, s.textureFar, s.coneAngle)
}

// TextureFar returns the far distance of the texture projection.
func (s *SpotLight) TextureFar() float32 { return s.textureFar }

// SetTextureFar changes the far distance of the texture projection.
func (s *SpotLight) SetTextureFar(far float32) error {
	return s.rebuild(s.position, s.direction, s.textureNear, far, s.coneAngle)
}

// SetTextureRange changes both distances at once, so a range can move past
// its old bounds without an invalid intermediate state.
func (s *SpotLight) SetTextureRange(near, far float32) error {
	return s.rebuild(s.position, s.direction, near, far, s.coneAngle)
}

// Exponent returns the falloff exponent.
func (s *SpotLight) Exponent() float32 { return s.exponent }

// SetExponent changes the falloff exponent.
func (s *SpotLight) SetExponent(e float32) error {
	if !math.IsFinite(e) {
		return fmt.Errorf("%w: exponent %v", ErrInvalidLightGeometry, e)
	}
	s.exponent = e
	return nil
}

// ShadowAngleScale returns the shadow field-of-view multiplier; 0 means 1.
func (s *SpotLight) ShadowAngleScale() float32 { return s.shadowAngleScale }

// SetShadowAngleScale changes the shadow field-of-view multiplier. It does
// not affect the texture projection.
func (s *SpotLight) SetShadowAngleScale(scale float32) error {
	if !math.IsFinite(scale) || scale < 0 {
		return fmt.Errorf("%w: shadow angle scale %v", ErrInvalidLightGeometry, scale)
	}
	s.shadowAngleScale = scale
	return nil
}

// ProjectedTexture returns the projected texture, or nil.
func (s *SpotLight) ProjectedTexture() Texture { return s.projected }

// SetProjectedTexture attaches a texture to project; nil, including a nil
// pointer, removes it.
func (s *SpotLight) SetProjectedTexture(t Texture) { s.projected = textureOrNil(t) }

// TextureProjectionMatrix returns the current texture-projection matrix.
func (s *SpotLight) TextureProjectionMatrix() math.Mat4 { return s.textureProjection }

// SetTextureProjectionMatrix replaces the texture-projection matrix. The
// override holds until position, direction, cone angle or texture range
// next change, which rebuild it.
func (s *SpotLight) SetTextureProjectionMatrix(m math.Mat4) error {
	if !m.IsFinite() {
		return fmt.Errorf("%w: non-finite texture projection", ErrInvalidLightGeometry)
	}
	s.textureProjection = m
	s.overridden = true

	logger.Debug("spot texture projection overridden", zap.String("light", s.name))
	return nil
}

// TextureProjectionOverridden reports whether the matrix was set directly.
func (s *SpotLight) TextureProjectionOverridden() bool { return s.overridden }

// State returns the five inputs of the texture projection.
func (s *SpotLight) State() SpotState {
	return SpotState{
		Position:    s.position,
		Direction:   s.direction,
		ConeAngle:   s.coneAngle,
		TextureNear: s.textureNear,
		TextureFar:  s.textureFar,
	}
}

// RefreshTransform re-resolves the parent transform for this frame.
func (s *SpotLight) RefreshTransform() bool {
	return s.transform.Update(s.position, s.direction).HasParent
}

// Uniforms resolves the transform once and gathers the values PackSpot writes.
func (s *SpotLight) Uniforms() SpotUniforms {
	pos, dir := s.transform.Resolve().Effective(s.position, s.direction)
	return SpotUniforms{
		Position:          pos,
		Direction:         dir,
		Exponent:          s.exponent,
		ConeAngle:         s.coneAngle,
		TextureProjection: s.textureProjection,
		Texture:           s.projected,
	}
}

// DeclareUniforms declares the shared light slots plus the spot slots.
func (s *SpotLight) DeclareUniforms(layout UniformLayout) error {
	if err := s.declareBase(layout); err != nil {
		return err
	}
	for _, slot := range spotSlots {
		if err := layout.AddUniform(slot.Name, slot.Size); err != nil {
			return err
		}
	}
	return nil
}

// TransferUniforms writes colors and spot uniforms for the light at index.
func (s *SpotLight) TransferUniforms(sink UniformSink, index string) error {
	u := s.Uniforms()
	if err := PackSpot(sink, index, u); err != nil {
		return fmt.Errorf("spot light %s: %w", s.name, err)
	}
	s.transferColors(sink, index)
	return nil
}

// ShadowProjection returns the shadow-map perspective for cam.
func (s *SpotLight) ShadowProjection(cam Camera) (math.Mat4, bool, error) {
	return ShadowProjection(s.coneAngle, s.shadowAngleScale, cam)
}

// ShadowView looks from the transformed apex along the transformed axis.
func (s *SpotLight) ShadowView() (math.Mat4, error) {
	pos, dir := s.transform.Resolve().Effective(s.position, s.direction)
	return LightView(pos, dir)
}

// Clone returns an independent copy with the same ID. The parent transform
// is frozen at its current world matrix, so the copy can be read from
// another goroutine while the original keeps moving.
func (s *SpotLight) Clone() *SpotLight {
	c := *s
	c.transform = s.transform.snapshot()
	return &c
}

// SpotState is the set of inputs the texture projection depends on.
type SpotState struct {
	Position    math.Vec3
	Direction   math.Vec3
	ConeAngle   float32
	TextureNear float32
	TextureFar  float32
}

// TextureProjection computes the matrix for the state.
func (st SpotState) TextureProjection() (math.Mat4, error) {
	return TextureProjection(st.Position, st.Direction, st.TextureNear, st.TextureFar, st.ConeAngle)
}
