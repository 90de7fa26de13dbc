package shadow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/spotlight/internal/engine/lighting"
	"github.com/Faultbox/spotlight/internal/logger"
	"github.com/Faultbox/spotlight/pkg/math"
)

type fakeCamera struct{ near, far float32 }

func (c fakeCamera) MinZ() float32 { return c.near }
func (c fakeCamera) MaxZ() float32 { return c.far }

type fakeSource struct{ cam lighting.Camera }

func (s *fakeSource) ActiveCamera() lighting.Camera { return s.cam }

func newSpot(t *testing.T) *lighting.SpotLight {
	t.Helper()
	s, err := lighting.NewSpotLight("spot", math.Vec3{Y: 10}, math.Vec3{Y: -1}, 1, 2, lighting.WithShadowAngleScale(1.1))
	require.NoError(t, err)
	return s
}

func TestGeneratorUpdate(t *testing.T) {
	spot := newSpot(t)
	g := NewGenerator(spot, 0)
	assert.Equal(t, DefaultMapSize, g.MapSize)
	assert.False(t, g.Ready())

	ok, err := g.Update(&fakeSource{cam: fakeCamera{near: 1, far: 300}})
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, g.Ready())

	wantProj, _, err := spot.ShadowProjection(fakeCamera{near: 1, far: 300})
	require.NoError(t, err)
	wantView, err := spot.ShadowView()
	require.NoError(t, err)

	assert.Equal(t, wantProj, g.Projection())
	assert.Equal(t, wantView, g.View())
	assert.Equal(t, wantProj.Mul(wantView), g.ViewProjection())

	near, far := g.DepthRange()
	assert.Equal(t, float32(1), near)
	assert.Equal(t, float32(300), far)
}

func TestGeneratorNoCameraKeepsSentinel(t *testing.T) {
	g := NewGenerator(newSpot(t), 1024)
	src := &fakeSource{cam: fakeCamera{near: 1, far: 100}}

	_, err := g.Update(src)
	require.NoError(t, err)

	sentinel := math.Scale(3, 3, 3)
	g.SetProjection(sentinel)
	view := g.View()

	src.cam = nil
	ok, err := g.Update(src)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, sentinel, g.Projection())
	assert.Equal(t, view, g.View())

	ok, err = g.Update(nil)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, sentinel, g.Projection())
}

func TestGeneratorSkipsNonCasting(t *testing.T) {
	spot := newSpot(t)
	spot.CastShadows = false
	g := NewGenerator(spot, 512)

	ok, err := g.Update(&fakeSource{cam: fakeCamera{near: 1, far: 100}})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, math.Identity(), g.Projection())
}

func TestGeneratorInvalidCamera(t *testing.T) {
	g := NewGenerator(newSpot(t), 512)

	ok, err := g.Update(&fakeSource{cam: fakeCamera{near: 10, far: 1}})
	assert.ErrorIs(t, err, lighting.ErrInvalidLightGeometry)
	assert.False(t, ok)
	assert.False(t, g.Ready())
}

func TestGeneratorTransferUniforms(t *testing.T) {
	g := NewGenerator(newSpot(t), 1024)
	g.Darkness = 0.3
	_, err := g.Update(&fakeSource{cam: fakeCamera{near: 2, far: 50}})
	require.NoError(t, err)

	rec := lighting.NewUniformRecorder()
	g.TransferUniforms(rec, "0")

	info, ok := rec.Vector(lighting.UniformShadowsInfo, "0")
	require.True(t, ok)
	assert.Equal(t, []float32{0.3, 1.0 / 1024, DefaultBias}, info)

	depth, ok := rec.Vector(lighting.UniformDepthValues, "0")
	require.True(t, ok)
	assert.Equal(t, []float32{2, 50}, depth)

	m, ok := rec.Matrix(lighting.UniformLightMatrix + "0")
	require.True(t, ok)
	assert.Equal(t, g.ViewProjection(), m)
}

func TestGeneratorFrustumCorners(t *testing.T) {
	spot := newSpot(t)
	g := NewGenerator(spot, 512)
	_, err := g.Update(&fakeSource{cam: fakeCamera{near: 1, far: 20}})
	require.NoError(t, err)

	vp := g.ViewProjection()
	corners := g.FrustumCorners()
	for i, c := range corners {
		p := vp.TransformPoint(c)
		wantZ := float32(0)
		if i >= 4 {
			wantZ = 1
		}
		assert.InDelta(t, wantZ, p.Z, 1e-3, "corner %d", i)
		assert.InDelta(t, 1, abs(p.X), 1e-3, "corner %d", i)
		assert.InDelta(t, 1, abs(p.Y), 1e-3, "corner %d", i)
	}

	// Near corners sit one unit below the light, far corners twenty.
	assert.InDelta(t, 9, corners[0].Y, 1e-2)
	assert.InDelta(t, -10, corners[7].Y, 1e-1)
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func TestGeneratorLogsUnderShadowName(t *testing.T) {
	saved := logger.Log
	defer func() { logger.Log = saved }()

	core, logs := observer.New(zapcore.DebugLevel)
	logger.Log = zap.New(core)

	g := NewGenerator(newSpot(t), 0)
	ok, err := g.Update(&fakeSource{})
	require.NoError(t, err)
	assert.False(t, ok)

	entries := logs.FilterMessage("update skipped, no active camera").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "shadow", entries[0].LoggerName)
	assert.Equal(t, "spot", entries[0].ContextMap()["light"])
}
