package vraster

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"os"

	"github.com/gogpu/vraster/internal/blend"
)

// ErrInvalidDimensions is returned when a framebuffer is constructed with
// a non-positive width or height.
var ErrInvalidDimensions = errors.New("vraster: framebuffer dimensions must be positive")

// Compile-time interface checks.
var (
	_ image.Image = (*Framebuffer)(nil)
	_ draw.Image  = (*Framebuffer)(nil)
)

// Framebuffer is a row-major 32-bit RGBA pixel buffer with stride equal to
// its width. Each pixel is a packed (A<<24)|(R<<16)|(G<<8)|B word with
// straight (non-premultiplied) alpha; compositing premultiplies only
// locally.
//
// Framebuffer implements both image.Image and draw.Image, so it plugs into
// the standard image ecosystem directly.
type Framebuffer struct {
	width  int
	height int
	pix    []RGBA32
}

// NewFramebuffer creates a framebuffer with the given dimensions. It fails
// fast on non-positive dimensions.
func NewFramebuffer(width, height int) (*Framebuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	return &Framebuffer{
		width:  width,
		height: height,
		pix:    make([]RGBA32, width*height),
	}, nil
}

// Width returns the width of the framebuffer.
func (f *Framebuffer) Width() int { return f.width }

// Height returns the height of the framebuffer.
func (f *Framebuffer) Height() int { return f.height }

// Pix returns the raw pixel words in row-major order.
func (f *Framebuffer) Pix() []RGBA32 { return f.pix }

// Pixel returns the packed pixel at (x, y), or zero outside the bounds.
func (f *Framebuffer) Pixel(x, y int) RGBA32 {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return 0
	}
	return f.pix[y*f.width+x]
}

// SetPixel stores a packed pixel at (x, y). Out-of-bounds writes are
// dropped.
func (f *Framebuffer) SetPixel(x, y int, c RGBA32) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return
	}
	f.pix[y*f.width+x] = c
}

// Clear fills the entire framebuffer with a color.
func (f *Framebuffer) Clear(c RGBA32) {
	for i := range f.pix {
		f.pix[i] = c
	}
}

// FillSpan fills pixels [x1, x2) on row y with a solid packed color, no
// blending. Longer spans double a filled prefix with copy.
func (f *Framebuffer) FillSpan(x1, x2, y int, c RGBA32) {
	if y < 0 || y >= f.height {
		return
	}
	if x1 < 0 {
		x1 = 0
	}
	if x2 > f.width {
		x2 = f.width
	}
	if x1 >= x2 {
		return
	}

	row := f.pix[y*f.width+x1 : y*f.width+x2]
	length := len(row)

	if length < 16 {
		for i := range row {
			row[i] = c
		}
		return
	}

	row[0] = c
	for filled := 1; filled < length; filled *= 2 {
		copy(row[filled:], row[:filled])
	}
}

// BlendSpan source-over composites a straight-alpha color onto pixels
// [x1, x2) of row y. A fully opaque color degrades to FillSpan.
func (f *Framebuffer) BlendSpan(x1, x2, y int, c RGBA32) {
	if c.A() == 255 {
		f.FillSpan(x1, x2, y, c)
		return
	}
	if y < 0 || y >= f.height {
		return
	}
	if x1 < 0 {
		x1 = 0
	}
	if x2 > f.width {
		x2 = f.width
	}
	if x1 >= x2 {
		return
	}

	sr, sg, sb, sa := c.R(), c.G(), c.B(), c.A()
	row := f.pix[y*f.width+x1 : y*f.width+x2]
	for i, d := range row {
		r, g, b, a := blend.CompositeStraight(blend.CompOpSourceOver,
			sr, sg, sb, sa, d.R(), d.G(), d.B(), d.A())
		row[i] = PackRGBA32(r, g, b, a)
	}
}

// ToImage copies the framebuffer into a standard NRGBA image.
func (f *Framebuffer) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, f.width, f.height))
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			px := f.pix[y*f.width+x]
			i := img.PixOffset(x, y)
			img.Pix[i+0] = px.R()
			img.Pix[i+1] = px.G()
			img.Pix[i+2] = px.B()
			img.Pix[i+3] = px.A()
		}
	}
	return img
}

// FromImage creates a framebuffer from a standard image. Returns an error
// for an empty image.
func FromImage(img image.Image) (*Framebuffer, error) {
	bounds := img.Bounds()
	fb, err := NewFramebuffer(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}
	for y := 0; y < fb.height; y++ {
		for x := 0; x < fb.width; x++ {
			c := FromColor(img.At(bounds.Min.X+x, bounds.Min.Y+y))
			fb.pix[y*fb.width+x] = c.Pack32()
		}
	}
	return fb, nil
}

// SavePNG writes the framebuffer to a PNG file.
func (f *Framebuffer) SavePNG(path string) error {
	file, err := os.Create(path) //nolint:gosec // path is caller-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = file.Close()
	}()
	return EncodePNG(file, f)
}

// At implements the image.Image interface.
func (f *Framebuffer) At(x, y int) color.Color {
	px := f.Pixel(x, y)
	return color.NRGBA{R: px.R(), G: px.G(), B: px.B(), A: px.A()}
}

// Set implements the draw.Image interface.
func (f *Framebuffer) Set(x, y int, c color.Color) {
	f.SetPixel(x, y, FromColor(c).Pack32())
}

// Bounds implements the image.Image interface.
func (f *Framebuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, f.width, f.height)
}

// ColorModel implements the image.Image interface.
func (f *Framebuffer) ColorModel() color.Model {
	return color.NRGBAModel
}
