package lighting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/spotlight/pkg/math"
)

func TestSunDirection(t *testing.T) {
	tests := []struct {
		name     string
		lon, lat float32
		want     math.Vec3
	}{
		{"zenith", 0, 90, math.Vec3{Y: 1}},
		{"south horizon", 0, 0, math.Vec3{Z: 1}},
		{"east horizon", 90, 0, math.Vec3{X: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SunDirection(tt.lon, tt.lat)
			assert.InDelta(t, tt.want.X, got.X, 1e-6)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-6)
			assert.InDelta(t, tt.want.Z, got.Z, 1e-6)
			assert.InDelta(t, 1, got.Length(), 1e-6)
		})
	}
}

func TestAABB(t *testing.T) {
	b := AABB{Min: math.Vec3{X: -1, Y: -2, Z: -2}, Max: math.Vec3{X: 1, Y: 2, Z: 2}}
	assert.Equal(t, math.Vec3{}, b.Center())
	assert.InDelta(t, 3, b.Radius(), 1e-6)
}

func TestSunLightPointsDown(t *testing.T) {
	d, err := NewSunLight("sun", 0, 90, AABB{})
	require.NoError(t, err)
	assert.Equal(t, KindDirectional, d.Kind())
	assert.InDelta(t, -1, d.Direction().Y, 1e-6)

	rec := NewUniformRecorder()
	require.NoError(t, d.TransferUniforms(rec, "0"))
	data, _ := rec.Vec4(UniformLightData, "0")
	assert.InDelta(t, -1, data[1], 1e-6)
	assert.Equal(t, float32(1), data[3])
}

func TestDirectionalLightShadowCoversBounds(t *testing.T) {
	bounds := AABB{Min: math.Vec3{X: -10, Y: 0, Z: -10}, Max: math.Vec3{X: 10, Y: 5, Z: 10}}
	d, err := NewDirectionalLight("d", math.Vec3{X: 0.3, Y: -1, Z: 0.2}, bounds)
	require.NoError(t, err)

	proj, ok, err := d.ShadowProjection(fakeCamera{near: 1, far: 100})
	require.NoError(t, err)
	require.True(t, ok)
	view, err := d.ShadowView()
	require.NoError(t, err)

	vp := proj.Mul(view)
	for _, corner := range []math.Vec3{
		bounds.Min, bounds.Max,
		{X: -10, Y: 5, Z: 10}, {X: 10, Y: 0, Z: -10},
	} {
		p := vp.TransformPoint(corner)
		assert.True(t, p.X >= -1 && p.X <= 1, "x of %v = %v", corner, p.X)
		assert.True(t, p.Y >= -1 && p.Y <= 1, "y of %v = %v", corner, p.Y)
		assert.True(t, p.Z >= 0 && p.Z <= 1, "z of %v = %v", corner, p.Z)
	}
}

func TestDirectionalLightShadowErrors(t *testing.T) {
	d, err := NewDirectionalLight("d", math.Vec3{Y: -1}, AABB{})
	require.NoError(t, err)

	_, ok, err := d.ShadowProjection(nil)
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = d.ShadowProjection(fakeCamera{near: 1, far: 10})
	assert.ErrorIs(t, err, ErrInvalidLightGeometry)

	_, err = NewDirectionalLight("d", math.Vec3{}, AABB{})
	assert.ErrorIs(t, err, ErrInvalidLightGeometry)
	assert.ErrorIs(t, d.SetDirection(math.Vec3{}), ErrInvalidLightGeometry)
}
