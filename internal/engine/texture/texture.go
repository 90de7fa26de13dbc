// Package texture loads the images a spot light projects.
package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"go.uber.org/zap"
	"golang.org/x/image/draw"
	"golang.org/x/image/webp"

	"github.com/Faultbox/spotlight/internal/logger"
)

// Texture is a decoded RGBA image with an optional GPU handle.
type Texture struct {
	name   string
	img    *image.NRGBA
	handle uint32
}

// New wraps img under name, converting it to NRGBA.
func New(name string, img image.Image) *Texture {
	return &Texture{name: name, img: toNRGBA(img)}
}

// Load reads an image file. The format is chosen by extension: .png, .jpg,
// .jpeg, .tga or .webp.
func Load(path string) (*Texture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("texture: read %s: %w", path, err)
	}

	t, err := Decode(filepath.Base(path), bytes.NewReader(data), filepath.Ext(path))
	if err != nil {
		return nil, err
	}

	w, h := t.Size()
	logger.Debug("texture loaded", zap.String("path", path), zap.Int("width", w), zap.Int("height", h))
	return t, nil
}

// Decode reads an image in the given format, named by file extension with
// or without the dot.
func Decode(name string, r io.Reader, format string) (*Texture, error) {
	var (
		img image.Image
		err error
	)
	switch strings.TrimPrefix(strings.ToLower(format), ".") {
	case "png":
		img, err = png.Decode(r)
	case "jpg", "jpeg":
		img, err = jpeg.Decode(r)
	case "tga":
		img, err = tga.Decode(r)
	case "webp":
		img, err = webp.Decode(r)
	default:
		return nil, fmt.Errorf("texture: %s: unsupported format %q", name, format)
	}
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", name, err)
	}
	return New(name, img), nil
}

// Name returns the texture name, the file base name for loaded textures.
func (t *Texture) Name() string { return t.name }

// Image returns the decoded pixels.
func (t *Texture) Image() *image.NRGBA { return t.img }

// Size returns the width and height in pixels.
func (t *Texture) Size() (int, int) {
	b := t.img.Bounds()
	return b.Dx(), b.Dy()
}

// Sample returns the bilinearly filtered color at (u, v) in [0,1], clamped
// at the edges. v runs along image rows in storage order, matching the GL
// upload.
func (t *Texture) Sample(u, v float32) (r, g, b float32) {
	w, h := t.Size()
	if w == 0 || h == 0 {
		return 0, 0, 0
	}

	x := clamp(u, 0, 1)*float32(w) - 0.5
	y := clamp(v, 0, 1)*float32(h) - 0.5
	x0, y0 := floor(x), floor(y)
	fx, fy := x-float32(x0), y-float32(y0)

	c00 := t.texel(x0, y0)
	c10 := t.texel(x0+1, y0)
	c01 := t.texel(x0, y0+1)
	c11 := t.texel(x0+1, y0+1)

	var out [3]float32
	for i := range out {
		top := c00[i]*(1-fx) + c10[i]*fx
		bottom := c01[i]*(1-fx) + c11[i]*fx
		out[i] = top*(1-fy) + bottom*fy
	}
	return out[0], out[1], out[2]
}

func (t *Texture) texel(x, y int) [3]float32 {
	b := t.img.Bounds()
	x = min(max(x, 0), b.Dx()-1)
	y = min(max(y, 0), b.Dy()-1)
	i := t.img.PixOffset(b.Min.X+x, b.Min.Y+y)
	p := t.img.Pix[i : i+3 : i+3]
	return [3]float32{float32(p[0]) / 255, float32(p[1]) / 255, float32(p[2]) / 255}
}

// toNRGBA converts any image to NRGBA format.
func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(b)
	draw.Draw(dst, b, src, b.Min, draw.Src)
	return dst
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func floor(v float32) int {
	i := int(v)
	if float32(i) > v {
		i--
	}
	return i
}
