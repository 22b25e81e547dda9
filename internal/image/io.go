package image

import (
	"fmt"
	stdimage "image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LoadImage loads a PNG or JPEG file into a buffer, dispatching on the
// file extension.
func LoadImage(path string) (*ImageBuf, error) {
	f, err := os.Open(path) //nolint:gosec // path is caller-provided intentionally
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		img, err := png.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("image: decoding %s: %w", path, err)
		}
		return FromStdImage(img), nil
	case ".jpg", ".jpeg":
		img, err := jpeg.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("image: decoding %s: %w", path, err)
		}
		return FromStdImage(img), nil
	default:
		return Decode(f)
	}
}

// Decode reads any registered image format from r into a buffer.
func Decode(r io.Reader) (*ImageBuf, error) {
	img, _, err := stdimage.Decode(r)
	if err != nil {
		return nil, err
	}
	return FromStdImage(img), nil
}

// FromStdImage copies a standard image into a fresh buffer, converting
// premultiplied sources back to straight alpha.
func FromStdImage(img stdimage.Image) *ImageBuf {
	bounds := img.Bounds()
	buf, err := NewImageBuf(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil
	}

	if nrgba, ok := img.(*stdimage.NRGBA); ok {
		// Straight alpha already; copy rows directly.
		for y := 0; y < buf.height; y++ {
			src := nrgba.Pix[nrgba.PixOffset(bounds.Min.X, bounds.Min.Y+y):]
			copy(buf.pix[y*buf.width*4:(y+1)*buf.width*4], src[:buf.width*4])
		}
		buf.InvalidatePremulCache()
		return buf
	}

	for y := 0; y < buf.height; y++ {
		for x := 0; x < buf.width; x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			i := (y*buf.width + x) * 4
			buf.pix[i] = c.R
			buf.pix[i+1] = c.G
			buf.pix[i+2] = c.B
			buf.pix[i+3] = c.A
		}
	}
	buf.InvalidatePremulCache()
	return buf
}

// ToStdImage copies the buffer into a standard NRGBA image.
func (b *ImageBuf) ToStdImage() *stdimage.NRGBA {
	img := stdimage.NewNRGBA(stdimage.Rect(0, 0, b.width, b.height))
	copy(img.Pix, b.pix)
	return img
}

// EncodePNG writes the buffer to w as a PNG stream.
func (b *ImageBuf) EncodePNG(w io.Writer) error {
	return png.Encode(w, b.ToStdImage())
}
