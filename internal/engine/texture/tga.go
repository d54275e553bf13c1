// Package texture decodes material images and manages GL texture objects.
package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image type constants.
const (
	TGATypeTrueColor    = 2  // Uncompressed true-color
	TGATypeGray         = 3  // Uncompressed grayscale
	TGATypeTrueColorRLE = 10 // RLE compressed true-color
	TGATypeGrayRLE      = 11 // RLE compressed grayscale
)

const tgaHeaderSize = 18

// ErrTGATruncated is returned when pixel data ends before the image is filled.
var ErrTGATruncated = errors.New("TGA data truncated")

// tgaHeader holds the fields of the 18-byte header the decoder needs.
type tgaHeader struct {
	idLength     int
	colorMapType byte
	imageType    byte
	width        int
	height       int
	bpp          int
	descriptor   byte
}

func parseTGAHeader(data []byte) (tgaHeader, error) {
	if len(data) < tgaHeaderSize {
		return tgaHeader{}, fmt.Errorf("TGA data too short (%d bytes)", len(data))
	}
	return tgaHeader{
		idLength:     int(data[0]),
		colorMapType: data[1],
		imageType:    data[2],
		width:        int(data[12]) | int(data[13])<<8,
		height:       int(data[14]) | int(data[15])<<8,
		bpp:          int(data[16]),
		descriptor:   data[17],
	}, nil
}

func (h tgaHeader) gray() bool {
	return h.imageType == TGATypeGray || h.imageType == TGATypeGrayRLE
}

func (h tgaHeader) rle() bool {
	return h.imageType == TGATypeTrueColorRLE || h.imageType == TGATypeGrayRLE
}

// topToBottom reports whether descriptor bit 5 is set.
func (h tgaHeader) topToBottom() bool {
	return h.descriptor&0x20 != 0
}

func (h tgaHeader) check() error {
	if h.colorMapType != 0 {
		return fmt.Errorf("color-mapped TGA not supported")
	}
	switch h.imageType {
	case TGATypeTrueColor, TGATypeTrueColorRLE:
		if h.bpp != 24 && h.bpp != 32 {
			return fmt.Errorf("unsupported TGA bit depth %d for true-color", h.bpp)
		}
	case TGATypeGray, TGATypeGrayRLE:
		if h.bpp != 8 {
			return fmt.Errorf("unsupported TGA bit depth %d for grayscale", h.bpp)
		}
	default:
		return fmt.Errorf("unsupported TGA type %d", h.imageType)
	}
	if h.width == 0 || h.height == 0 {
		return fmt.Errorf("TGA has zero size %dx%d", h.width, h.height)
	}
	return nil
}

// DecodeTGA decodes uncompressed and RLE TGA files in true-color (24/32 bpp)
// or grayscale (8 bpp). The result is always top-down.
func DecodeTGA(data []byte) (*image.RGBA, error) {
	h, err := parseTGAHeader(data)
	if err != nil {
		return nil, err
	}
	if err := h.check(); err != nil {
		return nil, err
	}

	offset := tgaHeaderSize + h.idLength
	if offset > len(data) {
		return nil, ErrTGATruncated
	}

	img := image.NewRGBA(image.Rect(0, 0, h.width, h.height))
	w := tgaWriter{img: img, width: h.width, height: h.height, topToBottom: h.topToBottom()}
	px := h.bpp / 8
	src := data[offset:]

	if h.rle() {
		err = decodeTGARLE(&w, src, px, h.gray())
	} else {
		err = decodeTGARaw(&w, src, px, h.gray())
	}
	if err != nil {
		return nil, err
	}
	return img, nil
}

// tgaWriter places pixels in file order, flipping rows for bottom-up files.
type tgaWriter struct {
	img         *image.RGBA
	width       int
	height      int
	topToBottom bool
	next        int
}

func (w *tgaWriter) full() bool {
	return w.next >= w.width*w.height
}

func (w *tgaWriter) put(c color.RGBA) {
	x := w.next % w.width
	y := w.next / w.width
	if !w.topToBottom {
		y = w.height - 1 - y
	}
	w.img.SetRGBA(x, y, c)
	w.next++
}

// tgaPixel reads one BGR(A) or gray pixel at p.
func tgaPixel(p []byte, gray bool) color.RGBA {
	if gray {
		return color.RGBA{R: p[0], G: p[0], B: p[0], A: 255}
	}
	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if len(p) == 4 {
		c.A = p[3]
	}
	return c
}

func decodeTGARaw(w *tgaWriter, src []byte, px int, gray bool) error {
	need := w.width * w.height * px
	if len(src) < need {
		return ErrTGATruncated
	}
	for i := 0; !w.full(); i += px {
		w.put(tgaPixel(src[i:i+px], gray))
	}
	return nil
}

func decodeTGARLE(w *tgaWriter, src []byte, px int, gray bool) error {
	i := 0
	for !w.full() {
		if i >= len(src) {
			return ErrTGATruncated
		}
		packet := src[i]
		i++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			if i+px > len(src) {
				return ErrTGATruncated
			}
			c := tgaPixel(src[i:i+px], gray)
			i += px
			for n := 0; n < count && !w.full(); n++ {
				w.put(c)
			}
			continue
		}

		for n := 0; n < count && !w.full(); n++ {
			if i+px > len(src) {
				return ErrTGATruncated
			}
			w.put(tgaPixel(src[i:i+px], gray))
			i += px
		}
	}
	return nil
}
