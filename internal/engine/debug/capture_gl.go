package debug

import (
	"github.com/go-gl/gl/v4.1-core/gl"
)

// ReadPixels reads the bound framebuffer as bottom-up RGBA.
func ReadPixels(width, height int) []byte {
	pixels := make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}

// Capture reads the bound framebuffer and saves it.
func (s *Screenshotter) Capture(width, height int) (string, error) {
	return s.SavePixels(ReadPixels(width, height), width, height)
}
