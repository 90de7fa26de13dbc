package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/spotlight/internal/app"
	"github.com/Faultbox/spotlight/internal/config"
	"github.com/Faultbox/spotlight/internal/engine/lighting"
	"github.com/Faultbox/spotlight/internal/engine/shadow"
	"github.com/Faultbox/spotlight/pkg/math"
)

const lightIndex = "0"

// updatedRig builds the rig and runs one shadow update against its camera.
func updatedRig(cfg *config.Config) (*app.Rig, *shadow.Generator, error) {
	rig, err := app.BuildRig(cfg)
	if err != nil {
		return nil, nil, err
	}
	gen := shadow.NewGenerator(rig.Spot, shadow.DefaultMapSize)
	if _, err := gen.Update(rig.Scene); err != nil {
		return nil, nil, err
	}
	return rig, gen, nil
}

func cmdMatrix(cfg *config.Config) error {
	rig, gen, err := updatedRig(cfg)
	if err != nil {
		return err
	}
	spot := rig.Spot

	fmt.Printf("Light:      %s (%s)\n", spot.Name(), spot.ID())
	fmt.Printf("Position:   %v\n", spot.Position())
	fmt.Printf("Direction:  %v\n", spot.Direction())
	fmt.Printf("Cone:       %.4f rad, cos(half) %.6f\n", spot.ConeAngle(), lighting.ConeCosine(spot.ConeAngle()))
	fmt.Printf("Shadow FOV: %.4f rad\n", lighting.ShadowFOV(spot.ConeAngle(), spot.ShadowAngleScale()))
	fmt.Printf("Texture:    near %g far %g\n", spot.TextureNear(), spot.TextureFar())
	fmt.Println()

	printMatrix("Texture projection", spot.TextureProjectionMatrix())
	printMatrix("Shadow projection", gen.Projection())
	printMatrix("Shadow view", gen.View())
	printMatrix("Light matrix", gen.ViewProjection())

	// The axis point a quarter of the way through the texture range.
	d := spot.TextureNear() + (spot.TextureFar()-spot.TextureNear())/4
	axis := spot.Position().Add(spot.Direction().Normalize().Scale(d))
	uv := spot.TextureProjectionMatrix().TransformPoint(axis)
	fmt.Printf("Axis point %v -> texture (%.5f, %.5f, %.5f)\n", axis, uv.X, uv.Y, uv.Z)
	return nil
}

func printMatrix(title string, m math.Mat4) {
	fmt.Printf("%s:\n", title)
	for row := 0; row < 4; row++ {
		fmt.Printf("  [% 12.6f % 12.6f % 12.6f % 12.6f]\n", m[row], m[4+row], m[8+row], m[12+row])
	}
	fmt.Println()
}

func cmdUniforms(cfg *config.Config) error {
	rig, gen, err := updatedRig(cfg)
	if err != nil {
		return err
	}
	rec, err := app.Pack(rig.Spot, gen, lightIndex)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(rec.Snapshot()); err != nil {
		return fmt.Errorf("encode uniforms: %w", err)
	}
	return enc.Close()
}

func cmdLayout(cfg *config.Config) error {
	spot, err := app.BuildSpot(cfg.Light)
	if err != nil {
		return err
	}

	layout := lighting.NewBlockLayout()
	if err := spot.DeclareUniforms(layout); err != nil {
		return err
	}

	fmt.Printf("%-24s %6s %6s\n", "Uniform", "Size", "Offset")
	for _, s := range layout.Slots() {
		fmt.Printf("%-24s %6d %6d\n", s.Name, s.Size, s.Offset)
	}
	fmt.Printf("%-24s %6d\n", "Total", layout.Size())
	return nil
}
