package lighting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/spotlight/pkg/math"
)

func TestNewPointLight(t *testing.T) {
	tests := []struct {
		name      string
		color     math.Vec3
		rng       float32
		wantColor math.Vec3
		wantRange float32
	}{
		{"in range", math.Vec3{X: 0.5, Y: 0.2, Z: 1}, 50, math.Vec3{X: 0.5, Y: 0.2, Z: 1}, 50},
		{"clamped color", math.Vec3{X: 2, Y: -1, Z: 0.5}, 50, math.Vec3{X: 1, Y: 0, Z: 0.5}, 50},
		{"default range", math.Vec3{X: 1, Y: 1, Z: 1}, 0, math.Vec3{X: 1, Y: 1, Z: 1}, DefaultPointRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPointLight("p", math.Vec3{Y: 3}, tt.color, tt.rng)
			require.NoError(t, err)
			assert.Equal(t, KindPoint, p.Kind())
			assert.Equal(t, tt.wantColor, p.Diffuse)
			assert.Equal(t, tt.wantRange, p.Range)
		})
	}
}

func TestPointLightTransferUniforms(t *testing.T) {
	p, err := NewPointLight("p", math.Vec3{X: 1, Y: 2, Z: 3}, math.Vec3{X: 1}, 25)
	require.NoError(t, err)
	p.SetParent(StaticParent(math.Translate(0, 10, 0)))
	p.RefreshTransform()

	rec := NewUniformRecorder()
	require.NoError(t, p.TransferUniforms(rec, "2"))

	data, _ := rec.Vec4(UniformLightData, "2")
	assert.Equal(t, math.Vec4{1, 12, 3, 0}, data)
	diffuse, _ := rec.Vec4(UniformLightDiffuse, "2")
	assert.Equal(t, math.Vec4{1, 0, 0, 25}, diffuse)
}

func TestPointLightShadow(t *testing.T) {
	p, err := NewPointLight("p", math.Vec3{}, math.Vec3{X: 1, Y: 1, Z: 1}, 10)
	require.NoError(t, err)

	_, ok, err := p.ShadowProjection(nil)
	require.NoError(t, err)
	assert.False(t, ok)

	proj, ok, err := p.ShadowProjection(fakeCamera{near: 0.5, far: 20})
	require.NoError(t, err)
	require.True(t, ok)

	// 90 degree field of view: a point at 45 degrees lands on the edge.
	edge := proj.TransformPoint(math.Vec3{X: 5, Z: 5})
	assert.InDelta(t, 1, edge.X, 1e-5)

	_, _, err = p.ShadowProjection(fakeCamera{near: 5, far: 1})
	assert.ErrorIs(t, err, ErrInvalidLightGeometry)
}

func TestPointLightFaceViews(t *testing.T) {
	p, err := NewPointLight("p", math.Vec3{X: 1, Y: 2, Z: 3}, math.Vec3{X: 1, Y: 1, Z: 1}, 10)
	require.NoError(t, err)

	for face := 0; face < CubeFaces; face++ {
		view, err := p.FaceView(face)
		require.NoError(t, err)

		// Each face looks along +Z in view space.
		ahead := view.TransformPoint(p.Position().Add(cubeFaces[face].dir))
		assert.InDelta(t, 0, ahead.X, 1e-5, "face %d", face)
		assert.InDelta(t, 0, ahead.Y, 1e-5, "face %d", face)
		assert.InDelta(t, 1, ahead.Z, 1e-5, "face %d", face)
	}

	first, err := p.ShadowView()
	require.NoError(t, err)
	face0, _ := p.FaceView(0)
	assert.Equal(t, face0, first)

	_, err = p.FaceView(CubeFaces)
	assert.Error(t, err)
}
