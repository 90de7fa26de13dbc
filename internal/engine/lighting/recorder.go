package lighting

import (
	"sort"

	"github.com/Faultbox/spotlight/pkg/math"
)

// UniformRecorder is a UniformSink that keeps the last value written to each
// uniform. Vector keys are name+index.
type UniformRecorder struct {
	vectors  map[string][]float32
	matrices map[string]math.Mat4
	textures map[string]Texture
}

// NewUniformRecorder returns an empty recorder.
func NewUniformRecorder() *UniformRecorder {
	return &UniformRecorder{
		vectors:  make(map[string][]float32),
		matrices: make(map[string]math.Mat4),
		textures: make(map[string]Texture),
	}
}

func (r *UniformRecorder) UpdateFloat2(name string, x, y float32, index string) {
	r.vectors[name+index] = []float32{x, y}
}

func (r *UniformRecorder) UpdateFloat3(name string, x, y, z float32, index string) {
	r.vectors[name+index] = []float32{x, y, z}
}

func (r *UniformRecorder) UpdateFloat4(name string, x, y, z, w float32, index string) {
	r.vectors[name+index] = []float32{x, y, z, w}
}

func (r *UniformRecorder) UpdateMatrix(name string, m math.Mat4) {
	r.matrices[name] = m
}

func (r *UniformRecorder) SetTexture(name string, tex Texture) {
	r.textures[name] = tex
}

// Vector returns the components last written to name for index.
func (r *UniformRecorder) Vector(name, index string) ([]float32, bool) {
	v, ok := r.vectors[name+index]
	return v, ok
}

// Vec4 returns a 4-component uniform, zero-padded if fewer were written.
func (r *UniformRecorder) Vec4(name, index string) (math.Vec4, bool) {
	v, ok := r.vectors[name+index]
	var out math.Vec4
	copy(out[:], v)
	return out, ok
}

// Matrix returns the matrix last written under name.
func (r *UniformRecorder) Matrix(name string) (math.Mat4, bool) {
	m, ok := r.matrices[name]
	return m, ok
}

// Texture returns the texture bound under name.
func (r *UniformRecorder) Texture(name string) (Texture, bool) {
	t, ok := r.textures[name]
	return t, ok
}

// Reset forgets every recorded value.
func (r *UniformRecorder) Reset() {
	clear(r.vectors)
	clear(r.matrices)
	clear(r.textures)
}

// RecordedUniforms is a serializable view of a recorder.
type RecordedUniforms struct {
	Vectors  map[string][]float32   `yaml:"vectors"`
	Matrices map[string][16]float32 `yaml:"matrices"`
	Textures map[string]string      `yaml:"textures,omitempty"`
}

// Snapshot copies the recorded values.
func (r *UniformRecorder) Snapshot() RecordedUniforms {
	out := RecordedUniforms{
		Vectors:  make(map[string][]float32, len(r.vectors)),
		Matrices: make(map[string][16]float32, len(r.matrices)),
	}
	for k, v := range r.vectors {
		out.Vectors[k] = append([]float32(nil), v...)
	}
	for k, m := range r.matrices {
		out.Matrices[k] = m
	}
	if len(r.textures) > 0 {
		out.Textures = make(map[string]string, len(r.textures))
		for k, t := range r.textures {
			out.Textures[k] = t.Name()
		}
	}
	return out
}

// Names returns every recorded uniform name, sorted.
func (r *UniformRecorder) Names() []string {
	names := make([]string, 0, len(r.vectors)+len(r.matrices)+len(r.textures))
	for k := range r.vectors {
		names = append(names, k)
	}
	for k := range r.matrices {
		names = append(names, k)
	}
	for k := range r.textures {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
