// Package shadow keeps the matrices a shadow pass renders a light's depth
// map with, and the uniforms the lit pass samples it with.
//
// The generator does not render. A renderer calls Update once per frame and
// reads Projection, View and ViewProjection when it draws the depth pass.
package shadow

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/spotlight/internal/engine/lighting"
	"github.com/Faultbox/spotlight/internal/logger"
	"github.com/Faultbox/spotlight/pkg/math"
)

// DefaultMapSize is the default shadow map resolution.
const DefaultMapSize = 2048

// Default sampling parameters.
const (
	DefaultDarkness = 0.0
	DefaultBias     = 0.00005
)

// Generator holds one light's shadow projection and view.
type Generator struct {
	light lighting.Light
	log   *zap.Logger

	projection math.Mat4
	view       math.Mat4
	near, far  float32
	ready      bool

	Darkness float32 // 0 is fully dark, 1 casts no shadow
	Bias     float32
	MapSize  int
}

// NewGenerator creates a generator for light. A non-positive mapSize falls
// back to DefaultMapSize.
func NewGenerator(light lighting.Light, mapSize int) *Generator {
	if mapSize <= 0 {
		mapSize = DefaultMapSize
	}
	return &Generator{
		light:      light,
		log:        logger.Named("shadow"),
		projection: math.Identity(),
		view:       math.Identity(),
		Darkness:   DefaultDarkness,
		Bias:       DefaultBias,
		MapSize:    mapSize,
	}
}

// Light returns the light the generator serves.
func (g *Generator) Light() lighting.Light { return g.light }

// Update recomputes the shadow matrices from the light and the active
// camera. Without an active camera, or when the light does not cast
// shadows, it returns false and keeps the previous matrices.
func (g *Generator) Update(src lighting.CameraSource) (bool, error) {
	if !g.light.CastsShadows() {
		return false, nil
	}

	var cam lighting.Camera
	if src != nil {
		cam = src.ActiveCamera()
	}

	proj, ok, err := g.light.ShadowProjection(cam)
	if err != nil {
		return false, fmt.Errorf("shadow %s: %w", g.light.Name(), err)
	}
	if !ok {
		g.log.Debug("update skipped, no active camera", zap.String("light", g.light.Name()))
		return false, nil
	}

	view, err := g.light.ShadowView()
	if err != nil {
		return false, fmt.Errorf("shadow %s: %w", g.light.Name(), err)
	}

	g.projection = proj
	g.view = view
	g.near, g.far = cam.MinZ(), cam.MaxZ()
	g.ready = true
	return true, nil
}

// Projection returns the shadow projection of the last successful update.
func (g *Generator) Projection() math.Mat4 { return g.projection }

// View returns the shadow view of the last successful update.
func (g *Generator) View() math.Mat4 { return g.view }

// ViewProjection returns projection times view, the light matrix.
func (g *Generator) ViewProjection() math.Mat4 { return g.projection.Mul(g.view) }

// SetProjection replaces the stored projection until the next successful
// update.
func (g *Generator) SetProjection(m math.Mat4) { g.projection = m }

// Ready reports whether an update has succeeded.
func (g *Generator) Ready() bool { return g.ready }

// DepthRange returns the near and far used by the last update.
func (g *Generator) DepthRange() (near, far float32) { return g.near, g.far }

// TransferUniforms writes the sampling parameters and light matrix for the
// light at index.
func (g *Generator) TransferUniforms(sink lighting.UniformSink, index string) {
	sink.UpdateFloat3(lighting.UniformShadowsInfo, g.Darkness, 1/float32(g.MapSize), g.Bias, index)
	sink.UpdateFloat2(lighting.UniformDepthValues, g.near, g.far, index)
	sink.UpdateMatrix(lighting.UniformLightMatrix+index, g.ViewProjection())
}

// FrustumCorners returns the eight world-space corners of the shadow
// frustum, near face first.
func (g *Generator) FrustumCorners() [8]math.Vec3 {
	inv := g.ViewProjection().Inverse()

	var out [8]math.Vec3
	i := 0
	for _, z := range []float32{0, 1} {
		for _, y := range []float32{-1, 1} {
			for _, x := range []float32{-1, 1} {
				out[i] = inv.TransformPoint(math.Vec3{X: x, Y: y, Z: z})
				i++
			}
		}
	}
	return out
}
