// Package lighting builds the per-frame state of shadow-casting lights: the
// matrices a projective-texture or shadow pass samples with and the uniform
// values a shader consumes.
//
// Matrices follow pkg/math: left-handed, column-major, column vectors.
package lighting

import (
	gomath "math"

	"github.com/google/uuid"

	"github.com/Faultbox/spotlight/pkg/math"
)

// Kind identifies a light variant.
type Kind int

const (
	KindPoint Kind = iota
	KindDirectional
	KindSpot
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindDirectional:
		return "directional"
	case KindSpot:
		return "spot"
	default:
		return "unknown"
	}
}

// Camera supplies the depth range used for shadow projections.
type Camera interface {
	MinZ() float32
	MaxZ() float32
}

// CameraSource returns the active camera, or nil when there is none.
type CameraSource interface {
	ActiveCamera() Camera
}

// Light is the capability set shared by every light kind.
type Light interface {
	Name() string
	ID() uuid.UUID
	Kind() Kind
	Transform() *TransformCache
	CastsShadows() bool

	// RefreshTransform re-resolves the parent transform for this frame and
	// reports whether a parent is attached.
	RefreshTransform() bool

	// DeclareUniforms adds the light's slots to a uniform block layout.
	DeclareUniforms(layout UniformLayout) error

	// TransferUniforms writes the light's per-frame values. It does not
	// modify the light.
	TransferUniforms(sink UniformSink, index string) error

	// ShadowProjection returns the projection for rendering this light's
	// shadow map. It reports false without error when cam is nil.
	ShadowProjection(cam Camera) (math.Mat4, bool, error)

	// ShadowView returns the view matrix for the shadow pass, from the
	// transformed position and direction.
	ShadowView() (math.Mat4, error)
}

// Base holds the state every light kind shares. It is embedded, not used alone.
type Base struct {
	name string
	id   uuid.UUID

	Diffuse  math.Vec3
	Specular math.Vec3
	Range    float32 // Falloff distance, MaxFloat32 for unbounded

	CastShadows bool

	transform TransformCache
}

func newBase(name string) Base {
	return Base{
		name:     name,
		id:       uuid.New(),
		Diffuse:  math.Vec3{X: 1, Y: 1, Z: 1},
		Specular: math.Vec3{X: 1, Y: 1, Z: 1},
		Range:    gomath.MaxFloat32,

		CastShadows: true,
	}
}

// Name returns the light's name.
func (b *Base) Name() string { return b.name }

// ID returns the light's unique identifier.
func (b *Base) ID() uuid.UUID { return b.id }

// Transform returns the light's transform cache.
func (b *Base) Transform() *TransformCache { return &b.transform }

// CastsShadows reports whether a shadow generator should update for the light.
func (b *Base) CastsShadows() bool { return b.CastShadows }

// SetParent attaches the light to a parent transform. nil detaches it.
func (b *Base) SetParent(p Parent) { b.transform.SetParent(p) }

func (b *Base) declareBase(layout UniformLayout) error {
	for _, slot := range baseSlots {
		if err := layout.AddUniform(slot.Name, slot.Size); err != nil {
			return err
		}
	}
	return nil
}

func (b *Base) transferColors(sink UniformSink, index string) {
	sink.UpdateFloat4(UniformLightDiffuse, b.Diffuse.X, b.Diffuse.Y, b.Diffuse.Z, b.Range, index)
	sink.UpdateFloat3(UniformLightSpecular, b.Specular.X, b.Specular.Y, b.Specular.Z, index)
}
