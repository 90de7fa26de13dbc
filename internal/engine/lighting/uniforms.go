package lighting

import (
	"fmt"
	"reflect"

	"github.com/Faultbox/spotlight/pkg/math"
)

// Uniform names. Vector slots take the light index as a separate argument;
// matrices and samplers carry it as a name suffix.
const (
	UniformLightData             = "vLightData"
	UniformLightDiffuse          = "vLightDiffuse"
	UniformLightSpecular         = "vLightSpecular"
	UniformLightDirection        = "vLightDirection"
	UniformShadowsInfo           = "shadowsInfo"
	UniformDepthValues           = "depthValues"
	UniformProjectionTextureInfo = "projectionTextureInfo"

	UniformTextureProjectionMatrix = "textureProjectionMatrix"
	UniformLightMatrix             = "lightMatrix"
	SamplerProjectionLight         = "projectionLightSampler"
)

// Texture is an opaque texture handed to a UniformSink for binding.
type Texture interface {
	Name() string
}

// textureOrNil maps a nil pointer, map, slice or func held in t to a nil
// interface.
func textureOrNil(t Texture) Texture {
	if t == nil {
		return nil
	}
	switch v := reflect.ValueOf(t); v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface:
		if v.IsNil() {
			return nil
		}
	}
	return t
}

// UniformSink receives a light's per-frame values. Writes are assumed to succeed.
type UniformSink interface {
	UpdateFloat2(name string, x, y float32, index string)
	UpdateFloat3(name string, x, y, z float32, index string)
	UpdateFloat4(name string, x, y, z, w float32, index string)
	UpdateMatrix(name string, m math.Mat4)
	SetTexture(name string, tex Texture)
}

// UniformLayout declares the slots of a uniform block.
type UniformLayout interface {
	AddUniform(name string, size int) error
}

// Slot is one declared uniform and its component count.
type Slot struct {
	Name   string
	Size   int
	Offset int // In floats from the start of the block
}

// baseSlots are declared by every light kind.
var baseSlots = []Slot{
	{Name: UniformLightData, Size: 4},
	{Name: UniformLightDiffuse, Size: 4},
	{Name: UniformLightSpecular, Size: 3},
	{Name: UniformShadowsInfo, Size: 3},
	{Name: UniformDepthValues, Size: 2},
}

// spotSlots are the texture-projection slots a spot light adds.
var spotSlots = []Slot{
	{Name: UniformLightDirection, Size: 4},
	{Name: UniformProjectionTextureInfo, Size: 2},
}

// BlockLayout is an in-memory UniformLayout recording slots in declaration order.
type BlockLayout struct {
	slots []Slot
	index map[string]int
	size  int
}

// NewBlockLayout returns an empty layout.
func NewBlockLayout() *BlockLayout {
	return &BlockLayout{index: make(map[string]int)}
}

// AddUniform appends a slot. Sizes are 1 to 4 components or 16 for a matrix.
func (l *BlockLayout) AddUniform(name string, size int) error {
	if name == "" {
		return fmt.Errorf("uniform layout: empty name")
	}
	if (size < 1 || size > 4) && size != 16 {
		return fmt.Errorf("uniform layout: %s has unsupported size %d", name, size)
	}
	if _, ok := l.index[name]; ok {
		return fmt.Errorf("uniform layout: %s declared twice", name)
	}

	l.index[name] = len(l.slots)
	l.slots = append(l.slots, Slot{Name: name, Size: size, Offset: l.size})
	l.size += size
	return nil
}

// Slots returns the declared slots in order.
func (l *BlockLayout) Slots() []Slot {
	out := make([]Slot, len(l.slots))
	copy(out, l.slots)
	return out
}

// Lookup returns the slot with the given name.
func (l *BlockLayout) Lookup(name string) (Slot, bool) {
	i, ok := l.index[name]
	if !ok {
		return Slot{}, false
	}
	return l.slots[i], true
}

// Size returns the total float count of the block.
func (l *BlockLayout) Size() int {
	return l.size
}

// SpotUniforms is the per-frame input of PackSpot. Position and Direction are
// the effective, possibly parent-transformed, values.
type SpotUniforms struct {
	Position          math.Vec3
	Direction         math.Vec3
	Exponent          float32
	ConeAngle         float32
	TextureProjection math.Mat4
	Texture           Texture // nil when no texture is projected
}

// PackSpot writes a spot light's uniforms for the light at index.
//
// The direction slot carries cos(coneAngle/2) while the projection matrices
// use the full cone angle as field of view.
func PackSpot(sink UniformSink, index string, u SpotUniforms) error {
	if err := validateDirection(u.Direction); err != nil {
		return err
	}
	dir := u.Direction.Normalize()

	sink.UpdateFloat4(UniformLightData, u.Position.X, u.Position.Y, u.Position.Z, u.Exponent, index)
	sink.UpdateFloat4(UniformLightDirection, dir.X, dir.Y, dir.Z, ConeCosine(u.ConeAngle), index)
	sink.UpdateMatrix(UniformTextureProjectionMatrix+index, u.TextureProjection)

	var textured float32
	if tex := textureOrNil(u.Texture); tex != nil {
		sink.SetTexture(SamplerProjectionLight+index, tex)
		textured = 1
	}
	sink.UpdateFloat2(UniformProjectionTextureInfo, textured, u.Exponent, index)
	return nil
}
