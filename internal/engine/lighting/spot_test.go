package lighting

import (
	gomath "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/spotlight/pkg/math"
)

func newTestSpot(t *testing.T, opts ...Option) *SpotLight {
	t.Helper()
	s, err := NewSpotLight("spot", math.Vec3{Y: 10}, math.Vec3{Y: -1, Z: 0.25}, 1, 2, opts...)
	require.NoError(t, err)
	return s
}

func requireFresh(t *testing.T, s *SpotLight) {
	t.Helper()
	want, err := s.State().TextureProjection()
	require.NoError(t, err)
	assert.Equal(t, want, s.TextureProjectionMatrix())
	assert.False(t, s.TextureProjectionOverridden())
}

func TestNewSpotLightDefaults(t *testing.T) {
	s := newTestSpot(t)

	assert.Equal(t, "spot", s.Name())
	assert.Equal(t, KindSpot, s.Kind())
	assert.NotEqual(t, [16]byte{}, [16]byte(s.ID()))
	assert.Equal(t, float32(DefaultTextureNear), s.TextureNear())
	assert.Equal(t, float32(DefaultTextureFar), s.TextureFar())
	assert.Equal(t, float32(1), s.ConeAngle())
	assert.Equal(t, float32(2), s.Exponent())
	assert.Nil(t, s.ProjectedTexture())
	assert.True(t, s.CastShadows)

	m := s.TextureProjectionMatrix()
	assert.NotEqual(t, math.Identity(), m)
	assert.NotEqual(t, math.Mat4{}, m)
	requireFresh(t, s)
}

func TestNewSpotLightOptions(t *testing.T) {
	parent := StaticParent(math.Translate(1, 2, 3))
	s := newTestSpot(t,
		WithTextureRange(0.5, 50),
		WithShadowAngleScale(1.5),
		WithDiffuse(math.Vec3{X: 1}),
		WithSpecular(math.Vec3{Y: 1}),
		WithRange(30),
		WithProjectedTexture(fakeTexture("cookie")),
		WithParent(parent),
	)

	assert.Equal(t, float32(0.5), s.TextureNear())
	assert.Equal(t, float32(50), s.TextureFar())
	assert.Equal(t, float32(1.5), s.ShadowAngleScale())
	assert.Equal(t, math.Vec3{X: 1}, s.Diffuse)
	assert.Equal(t, math.Vec3{Y: 1}, s.Specular)
	assert.Equal(t, float32(30), s.Range)
	assert.Equal(t, fakeTexture("cookie"), s.ProjectedTexture())
	assert.Equal(t, parent, s.Transform().Parent())
	requireFresh(t, s)
}

func TestNewSpotLightInvalid(t *testing.T) {
	tests := []struct {
		name string
		dir  math.Vec3
		cone float32
		exp  float32
		opts []Option
	}{
		{"zero direction", math.Vec3{}, 1, 2, nil},
		{"zero cone", math.Vec3{Z: 1}, 0, 2, nil},
		{"cone pi", math.Vec3{Z: 1}, gomath.Pi, 2, nil},
		{"nan exponent", math.Vec3{Z: 1}, 1, float32(gomath.NaN()), nil},
		{"inverted range", math.Vec3{Z: 1}, 1, 2, []Option{WithTextureRange(10, 1)}},
		{"negative shadow scale", math.Vec3{Z: 1}, 1, 2, []Option{WithShadowAngleScale(-1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSpotLight("bad", math.Vec3{}, tt.dir, tt.cone, tt.exp, tt.opts...)
			assert.ErrorIs(t, err, ErrInvalidLightGeometry)
			assert.Nil(t, s)
		})
	}
}

func TestSpotLightSettersRebuild(t *testing.T) {
	tests := []struct {
		name  string
		apply func(*SpotLight) error
		check func(*testing.T, *SpotLight)
	}{
		{
			name:  "position",
			apply: func(s *SpotLight) error { return s.SetPosition(math.Vec3{X: 4, Y: 7, Z: -3}) },
			check: func(t *testing.T, s *SpotLight) { assert.Equal(t, math.Vec3{X: 4, Y: 7, Z: -3}, s.Position()) },
		},
		{
			name:  "direction",
			apply: func(s *SpotLight) error { return s.SetDirection(math.Vec3{X: 1, Y: -2}) },
			check: func(t *testing.T, s *SpotLight) { assert.Equal(t, math.Vec3{X: 1, Y: -2}, s.Direction()) },
		},
		{
			name:  "cone angle",
			apply: func(s *SpotLight) error { return s.SetConeAngle(0.3) },
			check: func(t *testing.T, s *SpotLight) { assert.Equal(t, float32(0.3), s.ConeAngle()) },
		},
		{
			name:  "texture near",
			apply: func(s *SpotLight) error { return s.SetTextureNear(0.25) },
			check: func(t *testing.T, s *SpotLight) { assert.Equal(t, float32(0.25), s.TextureNear()) },
		},
		{
			name:  "texture far",
			apply: func(s *SpotLight) error { return s.SetTextureFar(42) },
			check: func(t *testing.T, s *SpotLight) { assert.Equal(t, float32(42), s.TextureFar()) },
		},
		{
			name:  "texture range",
			apply: func(s *SpotLight) error { return s.SetTextureRange(2000, 5000) },
			check: func(t *testing.T, s *SpotLight) {
				assert.Equal(t, float32(2000), s.TextureNear())
				assert.Equal(t, float32(5000), s.TextureFar())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSpot(t, WithTextureRange(0.5, 1000))
			before := s.TextureProjectionMatrix()

			require.NoError(t, tt.apply(s))
			tt.check(t, s)
			requireFresh(t, s)
			assert.NotEqual(t, before, s.TextureProjectionMatrix())
		})
	}
}

func TestSpotLightDefaultNearHidesFar(t *testing.T) {
	pos, dir := math.Vec3{Y: 10}, math.Vec3{Y: -1, Z: 0.25}

	a, err := TextureProjection(pos, dir, DefaultTextureNear, 1000, 1)
	require.NoError(t, err)
	b, err := TextureProjection(pos, dir, DefaultTextureNear, 42, 1)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := TextureProjection(pos, dir, 0.5, 1000, 1)
	require.NoError(t, err)
	d, err := TextureProjection(pos, dir, 0.5, 42, 1)
	require.NoError(t, err)
	assert.NotEqual(t, c, d)
}

func TestSpotLightFailedSetterLeavesState(t *testing.T) {
	tests := []struct {
		name  string
		apply func(*SpotLight) error
	}{
		{"zero direction", func(s *SpotLight) error { return s.SetDirection(math.Vec3{}) }},
		{"nan position", func(s *SpotLight) error { return s.SetPosition(math.Vec3{X: float32(gomath.NaN())}) }},
		{"cone too wide", func(s *SpotLight) error { return s.SetConeAngle(4) }},
		{"near past far", func(s *SpotLight) error { return s.SetTextureNear(2000) }},
		{"far below near", func(s *SpotLight) error { return s.SetTextureFar(0) }},
		{"negative near", func(s *SpotLight) error { return s.SetTextureRange(-1, 10) }},
		{"nan exponent", func(s *SpotLight) error { return s.SetExponent(float32(gomath.NaN())) }},
		{"infinite shadow scale", func(s *SpotLight) error { return s.SetShadowAngleScale(float32(gomath.Inf(1))) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSpot(t)
			state := s.State()
			matrix := s.TextureProjectionMatrix()
			exponent := s.Exponent()
			scale := s.ShadowAngleScale()

			assert.ErrorIs(t, tt.apply(s), ErrInvalidLightGeometry)
			assert.Equal(t, state, s.State())
			assert.Equal(t, matrix, s.TextureProjectionMatrix())
			assert.Equal(t, exponent, s.Exponent())
			assert.Equal(t, scale, s.ShadowAngleScale())
		})
	}
}

func TestSpotLightShadowScaleLeavesTextureProjection(t *testing.T) {
	s := newTestSpot(t)
	before := s.TextureProjectionMatrix()

	require.NoError(t, s.SetShadowAngleScale(2))
	require.NoError(t, s.SetExponent(8))
	assert.Equal(t, before, s.TextureProjectionMatrix())
}

func TestSpotLightTextureProjectionOverride(t *testing.T) {
	s := newTestSpot(t)
	custom := math.Scale(2, 2, 2)

	require.NoError(t, s.SetTextureProjectionMatrix(custom))
	assert.Equal(t, custom, s.TextureProjectionMatrix())
	assert.True(t, s.TextureProjectionOverridden())

	// Settings outside the five inputs keep the override.
	require.NoError(t, s.SetExponent(3))
	s.SetProjectedTexture(fakeTexture("cookie"))
	assert.Equal(t, custom, s.TextureProjectionMatrix())

	// Any input change rebuilds.
	require.NoError(t, s.SetConeAngle(0.5))
	requireFresh(t, s)

	bad := math.Identity()
	bad[3] = float32(gomath.Inf(-1))
	assert.ErrorIs(t, s.SetTextureProjectionMatrix(bad), ErrInvalidLightGeometry)
	requireFresh(t, s)
}

func TestSpotLightUniformsUseTransform(t *testing.T) {
	parent := StaticParent(math.Translate(0, 5, 0))
	s := newTestSpot(t, WithParent(parent))

	// The transform is resolved at construction.
	u := s.Uniforms()
	assert.Equal(t, math.Vec3{Y: 15}, u.Position)

	s.SetParent(StaticParent(math.Translate(1, 0, 0)))
	assert.True(t, s.RefreshTransform())
	u = s.Uniforms()
	assert.Equal(t, math.Vec3{X: 1, Y: 10}, u.Position)
	assert.Equal(t, s.Direction(), u.Direction)

	s.SetParent(nil)
	assert.False(t, s.RefreshTransform())
	assert.Equal(t, s.Position(), s.Uniforms().Position)
}

func TestSpotLightShadow(t *testing.T) {
	s := newTestSpot(t, WithShadowAngleScale(1.2))

	_, ok, err := s.ShadowProjection(nil)
	require.NoError(t, err)
	assert.False(t, ok)

	proj, ok, err := s.ShadowProjection(fakeCamera{near: 1, far: 100})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, math.PerspectiveFovLH(ShadowFOV(1, 1.2), 1, 1, 100), proj)

	view, err := s.ShadowView()
	require.NoError(t, err)
	want, err := LightView(s.Position(), s.Direction())
	require.NoError(t, err)
	assert.Equal(t, want, view)
}

func TestSpotLightClone(t *testing.T) {
	node := &movingParent{world: math.Translate(0, 1, 0)}
	s := newTestSpot(t, WithParent(node))
	c := s.Clone()

	assert.Equal(t, s.ID(), c.ID())
	assert.Equal(t, s.TextureProjectionMatrix(), c.TextureProjectionMatrix())

	require.NoError(t, c.SetConeAngle(0.2))
	assert.Equal(t, float32(1), s.ConeAngle())

	node.world = math.Translate(0, 100, 0)
	s.RefreshTransform()
	c.RefreshTransform()
	assert.Equal(t, math.Vec3{Y: 110}, s.Uniforms().Position)
	assert.Equal(t, math.Vec3{Y: 11}, c.Uniforms().Position)
}

func TestSpotLightImplementsLight(t *testing.T) {
	var _ Light = (*SpotLight)(nil)
	var _ Light = (*PointLight)(nil)
	var _ Light = (*DirectionalLight)(nil)
}

type movingParent struct {
	world math.Mat4
}

func (p *movingParent) WorldMatrix() math.Mat4 { return p.world }
