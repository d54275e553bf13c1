package texture

import (
	"errors"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// GLUploader uploads RGBA images as mipmapped, repeating 2D textures.
// Calls must happen on the thread that owns the GL context.
type GLUploader struct {
	// Anisotropy is applied when greater than 1.
	Anisotropy float32
}

// Upload creates a texture from img.
func (u GLUploader) Upload(img *image.RGBA) (uint32, error) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if w == 0 || h == 0 {
		return 0, errors.New("empty image")
	}

	var texID uint32
	gl.GenTextures(1, &texID)
	gl.BindTexture(gl.TEXTURE_2D, texID)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
		int32(w), int32(h),
		0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))

	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	if u.Anisotropy > 1 {
		gl.TexParameterf(gl.TEXTURE_2D, gl.TEXTURE_MAX_ANISOTROPY, u.Anisotropy)
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return texID, nil
}

// Delete frees a texture.
func (u GLUploader) Delete(id uint32) {
	gl.DeleteTextures(1, &id)
}

// MaxTextureSize queries GL_MAX_TEXTURE_SIZE.
func MaxTextureSize() int {
	var size int32
	gl.GetIntegerv(gl.MAX_TEXTURE_SIZE, &size)
	return int(size)
}
