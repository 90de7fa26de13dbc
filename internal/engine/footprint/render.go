// Package footprint renders, on the CPU, the patch of ground a spot light
// illuminates. It reads a packed uniform block and shades a y=0 plane the way
// a projective-texture fragment shader does, which makes packed uniforms
// inspectable without a GPU.
package footprint

import (
	"fmt"
	"image"
	gomath "math"

	"golang.org/x/image/draw"

	"github.com/Faultbox/spotlight/internal/engine/lighting"
	"github.com/Faultbox/spotlight/pkg/math"
)

// Sampler is a projected texture the renderer can read. Textures bound in
// the uniform block that do not implement it are ignored.
type Sampler interface {
	Sample(u, v float32) (r, g, b float32)
}

// Options control the rendered image.
type Options struct {
	Width, Height int
	Extent        float32 // Half the side of the ground square, in world units
	Supersample   int     // Render at this multiple and filter down
	Ambient       float32
	Index         string // Light index the uniforms were packed under
}

// DefaultOptions returns a 512x512 view of a 40 unit square.
func DefaultOptions() Options {
	return Options{Width: 512, Height: 512, Extent: 20, Supersample: 2, Ambient: 0.05}
}

// block is the light state read back from the recorder.
type block struct {
	position  math.Vec3
	exponent  float32
	direction math.Vec3
	cosHalf   float32
	color     math.Vec3
	lightRng  float32
	proj      math.Mat4
	textured  bool
	sampler   Sampler
}

func readBlock(rec *lighting.UniformRecorder, index string) (block, error) {
	var b block

	data, ok := rec.Vec4(lighting.UniformLightData, index)
	if !ok {
		return b, fmt.Errorf("footprint: %s%s not packed", lighting.UniformLightData, index)
	}
	dir, ok := rec.Vec4(lighting.UniformLightDirection, index)
	if !ok {
		return b, fmt.Errorf("footprint: %s%s not packed, not a spot light", lighting.UniformLightDirection, index)
	}
	proj, ok := rec.Matrix(lighting.UniformTextureProjectionMatrix + index)
	if !ok {
		return b, fmt.Errorf("footprint: %s%s not packed", lighting.UniformTextureProjectionMatrix, index)
	}

	b.position, b.exponent = data.XYZ(), data[3]
	b.direction, b.cosHalf = dir.XYZ(), dir[3]
	b.proj = proj

	b.color, b.lightRng = math.Vec3{X: 1, Y: 1, Z: 1}, gomath.MaxFloat32
	if diffuse, ok := rec.Vec4(lighting.UniformLightDiffuse, index); ok {
		b.color, b.lightRng = diffuse.XYZ(), diffuse[3]
	}

	if info, ok := rec.Vec4(lighting.UniformProjectionTextureInfo, index); ok && info[0] > 0 {
		if tex, ok := rec.Texture(lighting.SamplerProjectionLight + index); ok {
			b.sampler, _ = tex.(Sampler)
			b.textured = b.sampler != nil
		}
	}
	return b, nil
}

// Render shades the ground plane under the light packed at opts.Index.
func Render(rec *lighting.UniformRecorder, opts Options) (*image.NRGBA, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("footprint: invalid size %dx%d", opts.Width, opts.Height)
	}
	if opts.Extent <= 0 {
		return nil, fmt.Errorf("footprint: extent %v must be positive", opts.Extent)
	}
	ss := max(opts.Supersample, 1)

	b, err := readBlock(rec, opts.Index)
	if err != nil {
		return nil, err
	}

	w, h := opts.Width*ss, opts.Height*ss
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for py := 0; py < h; py++ {
		z := opts.Extent - (float32(py)+0.5)/float32(h)*2*opts.Extent
		for px := 0; px < w; px++ {
			x := (float32(px)+0.5)/float32(w)*2*opts.Extent - opts.Extent
			c := b.shade(math.Vec3{X: x, Z: z})

			i := img.PixOffset(px, py)
			img.Pix[i+0] = toByte(opts.Ambient + c.X)
			img.Pix[i+1] = toByte(opts.Ambient + c.Y)
			img.Pix[i+2] = toByte(opts.Ambient + c.Z)
			img.Pix[i+3] = 255
		}
	}

	if ss == 1 {
		return img, nil
	}
	return downsample(img, opts.Width, opts.Height), nil
}

// shade returns the light reaching ground point p, facing up.
func (b *block) shade(p math.Vec3) math.Vec3 {
	offset := b.position.Sub(p)
	dist := offset.Length()
	if dist == 0 {
		return math.Vec3{}
	}
	l := offset.Scale(1 / dist)

	cosAngle := b.direction.Dot(l.Scale(-1))
	if cosAngle < b.cosHalf || cosAngle <= 0 {
		return math.Vec3{}
	}
	spot := float32(gomath.Pow(float64(cosAngle), float64(b.exponent)))

	ndl := max(l.Y, 0)
	falloff := max(1-dist/b.lightRng, 0)
	c := b.color.Scale(ndl * spot * falloff)

	if b.textured {
		strq := b.proj.Project(p)
		if strq[3] <= 0 {
			return math.Vec3{}
		}
		u, v := strq[0]/strq[3], strq[1]/strq[3]
		if u < 0 || u > 1 || v < 0 || v > 1 {
			return math.Vec3{}
		}
		r, g, bl := b.sampler.Sample(u, v)
		c = math.Vec3{X: c.X * r, Y: c.Y * g, Z: c.Z * bl}
	}
	return c
}

// downsample filters img down to w x h. The image is opaque, so no alpha
// premultiplication is needed.
func downsample(img *image.NRGBA, w, h int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

func toByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
