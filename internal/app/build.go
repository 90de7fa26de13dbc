// Package app assembles lights, cameras and scenes from configuration for
// the command-line tools.
package app

import (
	"fmt"
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/spotlight/internal/config"
	"github.com/Faultbox/spotlight/internal/engine/camera"
	"github.com/Faultbox/spotlight/internal/engine/lighting"
	"github.com/Faultbox/spotlight/internal/engine/scene"
	"github.com/Faultbox/spotlight/internal/engine/shadow"
	"github.com/Faultbox/spotlight/internal/engine/texture"
	"github.com/Faultbox/spotlight/internal/logger"
	"github.com/Faultbox/spotlight/pkg/math"
)

// RigNodeName is the scene node the spot light hangs from.
const RigNodeName = "rig"

// Rig is a scene with one spot light attached to a rig node.
type Rig struct {
	Scene  *scene.Scene
	Node   *scene.Node
	Spot   *lighting.SpotLight
	Camera *camera.OrbitCamera
}

func radians(deg float32) float32 {
	return deg * gomath.Pi / 180
}

// BuildSpot creates the configured spot light, loading its projected texture
// if one is set.
func BuildSpot(cfg config.LightConfig, opts ...lighting.Option) (*lighting.SpotLight, error) {
	base := []lighting.Option{
		lighting.WithTextureRange(cfg.TextureNear, cfg.TextureFar),
		lighting.WithShadowAngleScale(cfg.ShadowAngleScale),
		lighting.WithDiffuse(cfg.Diffuse),
		lighting.WithSpecular(cfg.Specular),
	}

	if cfg.ProjectedTexture != "" {
		tex, err := texture.Load(cfg.ProjectedTexture)
		if err != nil {
			return nil, err
		}
		base = append(base, lighting.WithProjectedTexture(tex))
	}

	spot, err := lighting.NewSpotLight(cfg.Name, cfg.Position, cfg.Direction,
		radians(cfg.ConeAngleDeg), cfg.Exponent, append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("build light: %w", err)
	}

	logger.Info("spot light built",
		zap.String("name", spot.Name()),
		zap.Stringer("id", spot.ID()),
		zap.Float32("cone_deg", cfg.ConeAngleDeg),
		zap.Bool("textured", spot.ProjectedTexture() != nil),
	)
	return spot, nil
}

// BuildCamera creates the configured orbit camera.
func BuildCamera(cfg config.CameraConfig) *camera.OrbitCamera {
	c := camera.NewOrbitCamera()
	c.NearZ = cfg.MinZ
	c.FarZ = cfg.MaxZ
	if cfg.FOVDeg > 0 {
		c.FOV = radians(cfg.FOVDeg)
	}
	if cfg.Distance > 0 {
		c.Distance = cfg.Distance
	}
	return c
}

// BuildRig creates the scene, camera, rig node and spot light from cfg. The
// light is parented to the rig node at the origin, so rotating the node
// swings the light.
func BuildRig(cfg *config.Config) (*Rig, error) {
	sc := scene.New()
	node := scene.NewNode(RigNodeName, math.Vec3{})
	if err := sc.AddNode(node); err != nil {
		return nil, err
	}

	spot, err := BuildSpot(cfg.Light, lighting.WithParent(node))
	if err != nil {
		return nil, err
	}

	cam := BuildCamera(cfg.Camera)
	sc.SetActiveCamera(cam)

	return &Rig{Scene: sc, Node: node, Spot: spot, Camera: cam}, nil
}

// Pack records the light's uniforms, plus its shadow uniforms when gen is
// set.
func Pack(light lighting.Light, gen *shadow.Generator, index string) (*lighting.UniformRecorder, error) {
	rec := lighting.NewUniformRecorder()
	if err := light.TransferUniforms(rec, index); err != nil {
		return nil, err
	}
	if gen != nil {
		gen.TransferUniforms(rec, index)
	}
	return rec, nil
}
