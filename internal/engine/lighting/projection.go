package lighting

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/spotlight/pkg/math"
)

// directionEpsilon is the shortest direction accepted before normalizing.
const directionEpsilon = 1e-8

// verticalThreshold is the |dir·up| above which the view basis switches to
// the fallback up vector.
const verticalThreshold = 0.999

// fallbackUp replaces the world up vector for lights pointing straight up or down.
var fallbackUp = math.Vec3{X: 0, Y: 0, Z: 1}

// LightView returns the left-handed view matrix of a light at position
// looking along direction, with world up as the reference.
func LightView(position, direction math.Vec3) (math.Mat4, error) {
	if !position.IsFinite() {
		return math.Mat4{}, fmt.Errorf("%w: non-finite position %v", ErrInvalidLightGeometry, position)
	}
	if err := validateDirection(direction); err != nil {
		return math.Mat4{}, err
	}

	dir := direction.Normalize()
	up := math.Up
	if abs32(dir.Dot(up)) > verticalThreshold {
		up = fallbackUp
	}
	return math.LookAtLH(position, position.Add(dir), up), nil
}

// TextureProjection builds the matrix carrying world-space points into the
// light's [0,1] projective texture space: view, then a perspective whose
// field of view is the full cone angle, then the texture bias.
func TextureProjection(position, direction math.Vec3, near, far, coneAngle float32) (math.Mat4, error) {
	if err := validateCone(coneAngle); err != nil {
		return math.Mat4{}, err
	}
	if err := validateTextureRange(near, far); err != nil {
		return math.Mat4{}, err
	}

	view, err := LightView(position, direction)
	if err != nil {
		return math.Mat4{}, err
	}
	proj := math.PerspectiveFovLH(coneAngle, 1, near, far)

	m := math.TextureBias().Mul(proj).Mul(view)
	if !m.IsFinite() {
		return math.Mat4{}, fmt.Errorf("%w: texture projection overflowed", ErrInvalidLightGeometry)
	}
	return m, nil
}

// ShadowFOV returns the field of view used to render a spot light's shadow
// map: the full cone angle scaled by shadowAngleScale, where 0 means 1.
func ShadowFOV(coneAngle, shadowAngleScale float32) float32 {
	if shadowAngleScale == 0 {
		shadowAngleScale = 1
	}
	return coneAngle * shadowAngleScale
}

// ConeCosine returns the cosine of the half cone angle, the falloff threshold
// a shader compares against.
func ConeCosine(coneAngle float32) float32 {
	return float32(gomath.Cos(float64(coneAngle) / 2))
}

// ShadowProjection builds the perspective used to render a spot light's
// shadow map, with the camera's depth range. It reports false without error
// when cam is nil.
func ShadowProjection(coneAngle, shadowAngleScale float32, cam Camera) (math.Mat4, bool, error) {
	if cam == nil {
		return math.Mat4{}, false, nil
	}
	if !math.IsFinite(shadowAngleScale) || shadowAngleScale < 0 {
		return math.Mat4{}, false, fmt.Errorf("%w: shadow angle scale %v", ErrInvalidLightGeometry, shadowAngleScale)
	}

	fov := ShadowFOV(coneAngle, shadowAngleScale)
	if err := validateCone(fov); err != nil {
		return math.Mat4{}, false, err
	}
	near, far := cam.MinZ(), cam.MaxZ()
	if err := validateCameraRange(near, far); err != nil {
		return math.Mat4{}, false, err
	}

	return math.PerspectiveFovLH(fov, 1, near, far), true, nil
}

func validateCone(angle float32) error {
	if !math.IsFinite(angle) || angle <= 0 || angle >= gomath.Pi {
		return fmt.Errorf("%w: cone angle %v outside (0, π)", ErrInvalidLightGeometry, angle)
	}
	return nil
}

func validateTextureRange(near, far float32) error {
	if !math.IsFinite(near) || !math.IsFinite(far) {
		return fmt.Errorf("%w: non-finite texture range [%v, %v]", ErrInvalidLightGeometry, near, far)
	}
	if near <= 0 {
		return fmt.Errorf("%w: texture near %v must be positive", ErrInvalidLightGeometry, near)
	}
	if far <= near {
		return fmt.Errorf("%w: texture far %v must exceed near %v", ErrInvalidLightGeometry, far, near)
	}
	return nil
}

func validateCameraRange(near, far float32) error {
	if !math.IsFinite(near) || !math.IsFinite(far) || near < 0 || far <= near {
		return fmt.Errorf("%w: camera depth range [%v, %v]", ErrInvalidLightGeometry, near, far)
	}
	return nil
}

func validateDirection(d math.Vec3) error {
	if !d.IsFinite() || d.Length() < directionEpsilon {
		return fmt.Errorf("%w: direction %v", ErrInvalidLightGeometry, d)
	}
	return nil
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
