package shader

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/spotlight/internal/engine/lighting"
	"github.com/Faultbox/spotlight/internal/logger"
	"github.com/Faultbox/spotlight/pkg/math"
)

var _ lighting.UniformSink = (*ProgramSink)(nil)

// FirstSamplerUnit is the texture unit the first bound sampler takes. Unit 0
// is left to the material.
const FirstSamplerUnit = 1

// glTexture is implemented by textures that have been uploaded.
type glTexture interface {
	Handle() uint32
}

// ProgramSink writes light uniforms into a GL program. Vector uniforms are
// addressed as name+index. It must be used on the GL thread with the program
// bound.
type ProgramSink struct {
	program   uint32
	locations map[string]int32
	units     map[string]int32
}

// NewProgramSink creates a sink for program.
func NewProgramSink(program uint32) *ProgramSink {
	return &ProgramSink{
		program:   program,
		locations: make(map[string]int32),
		units:     make(map[string]int32),
	}
}

// Location returns the cached uniform location or fetches and caches it.
func (s *ProgramSink) Location(name string) int32 {
	if loc, ok := s.locations[name]; ok {
		return loc
	}
	loc := UniformLocation(s.program, name)
	if loc < 0 {
		logger.Debug("uniform not active", zap.String("uniform", name), zap.Uint32("program", s.program))
	}
	s.locations[name] = loc
	return loc
}

func (s *ProgramSink) UpdateFloat2(name string, x, y float32, index string) {
	if loc := s.Location(name + index); loc >= 0 {
		gl.Uniform2f(loc, x, y)
	}
}

func (s *ProgramSink) UpdateFloat3(name string, x, y, z float32, index string) {
	if loc := s.Location(name + index); loc >= 0 {
		gl.Uniform3f(loc, x, y, z)
	}
}

func (s *ProgramSink) UpdateFloat4(name string, x, y, z, w float32, index string) {
	if loc := s.Location(name + index); loc >= 0 {
		gl.Uniform4f(loc, x, y, z, w)
	}
}

func (s *ProgramSink) UpdateMatrix(name string, m math.Mat4) {
	if loc := s.Location(name); loc >= 0 {
		gl.UniformMatrix4fv(loc, 1, false, m.Ptr())
	}
}

// SetTexture binds tex to a texture unit reserved for name. Textures that
// were never uploaded are skipped.
func (s *ProgramSink) SetTexture(name string, tex lighting.Texture) {
	t, ok := tex.(glTexture)
	if !ok || t.Handle() == 0 {
		logger.Warn("texture not uploaded", zap.String("sampler", name), zap.String("texture", tex.Name()))
		return
	}
	loc := s.Location(name)
	if loc < 0 {
		return
	}

	unit, ok := s.units[name]
	if !ok {
		unit = FirstSamplerUnit + int32(len(s.units))
		s.units[name] = unit
	}
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, t.Handle())
	gl.Uniform1i(loc, unit)
	gl.ActiveTexture(gl.TEXTURE0)
}

// Reset forgets cached locations and units, after the program is relinked.
func (s *ProgramSink) Reset() {
	clear(s.locations)
	clear(s.units)
}
