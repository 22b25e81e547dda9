package vraster

import (
	"image/png"
	"io"
)

// EncodePNG writes the framebuffer to w as a PNG stream. The framebuffer's
// straight-alpha ARGB words map losslessly onto the PNG's non-premultiplied
// RGBA samples.
func EncodePNG(w io.Writer, fb *Framebuffer) error {
	return png.Encode(w, fb.ToImage())
}

// DecodePNG reads a PNG stream into a fresh framebuffer.
func DecodePNG(r io.Reader) (*Framebuffer, error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, err
	}
	return FromImage(img)
}
