package texture

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Upload creates a GL texture from the pixels. It must be called on the
// thread owning the GL context. Repeated calls return the existing handle.
func (t *Texture) Upload() (uint32, error) {
	if t.handle != 0 {
		return t.handle, nil
	}
	w, h := t.Size()
	if w == 0 || h == 0 {
		return 0, fmt.Errorf("texture: %s is empty", t.name)
	}

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)

	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(t.img.Pix))

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.GenerateMipmap(gl.TEXTURE_2D)

	gl.BindTexture(gl.TEXTURE_2D, 0)

	t.handle = id
	return id, nil
}

// Handle returns the GL texture name, 0 before Upload.
func (t *Texture) Handle() uint32 { return t.handle }

// Delete releases the GL texture.
func (t *Texture) Delete() {
	if t.handle != 0 {
		gl.DeleteTextures(1, &t.handle)
		t.handle = 0
	}
}
