package vraster

import (
	"image"
	"math"

	iimage "github.com/gogpu/vraster/internal/image"
)

// Pattern represents a fill or stroke pattern.
type Pattern interface {
	// ColorAt returns the color at the given point.
	ColorAt(x, y float64) RGBA
}

// SolidPattern represents a solid color pattern.
type SolidPattern struct {
	Color RGBA
}

// NewSolidPattern creates a solid color pattern.
func NewSolidPattern(color RGBA) *SolidPattern {
	return &SolidPattern{Color: color}
}

// ColorAt implements Pattern.
func (p *SolidPattern) ColorAt(x, y float64) RGBA {
	return p.Color
}

// Filter selects the image pattern's sampling filter.
type Filter uint8

const (
	// FilterNearest samples the single nearest pixel.
	FilterNearest Filter = iota
	// FilterBilinear blends the four surrounding pixels.
	FilterBilinear
)

// fpShift is the fixed-point shift for pattern sampling coordinates:
// 24.8, with the low 8 bits holding the fraction of a pixel.
const fpShift = 8

const fpOne = 1 << fpShift // 256

// ImagePattern samples an image under an affine transform, with a filter
// and a per-axis extend mode. It implements both Pattern (float access)
// and the per-pixel Fetch contract used by the rasterizer.
//
// Sampling evaluates the transform at the pixel center (x+0.5, y+0.5) and
// carries sequential-advance state: walking x+1 on the same row costs one
// fixed-point increment instead of a full transform. The state makes an
// ImagePattern single-scan only; do not share one across concurrent scans.
type ImagePattern struct {
	src *iimage.ImageBuf

	m            Matrix
	offX, offY   float64
	filter       Filter
	extendX      ExtendMode
	extendY      ExtendMode

	// Fixed-point transform coefficients (24.8).
	fm00, fm01, fm10, fm11 int32
	ftx, fty               int32

	// identityFast is set when the transform is an integer translation,
	// enabling direct indexed lookup.
	identityFast   bool
	identOffX      int
	identOffY      int

	// Sequential-advance state, invalidated on any nonsequential access.
	seqValid     bool
	lastY, nextX int
	lastFx, lastFy int32

	// Float-path sampler: carries the same transform and spreads, plus
	// the optional mipmap chain for minified sampling.
	ip    *iimage.ImagePattern
	mips  *iimage.MipmapChain
	scale float64
}

// NewImagePattern creates an image pattern from a standard image. The
// pixels are copied into an internal RGBA buffer. Returns nil for a nil or
// empty image.
func NewImagePattern(img image.Image) *ImagePattern {
	if img == nil {
		return nil
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return nil
	}
	buf, err := iimage.NewImageBuf(w, h)
	if err != nil {
		return nil
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := FromColor(img.At(bounds.Min.X+x, bounds.Min.Y+y))
			_ = buf.SetRGBA(x, y, uint8(clamp255(c.R*255)), uint8(clamp255(c.G*255)),
				uint8(clamp255(c.B*255)), uint8(clamp255(c.A*255)))
		}
	}
	return newImagePatternBuf(buf)
}

// NewImagePatternFromFile loads a PNG or JPEG file into an image pattern.
func NewImagePatternFromFile(path string) (*ImagePattern, error) {
	buf, err := iimage.LoadImage(path)
	if err != nil {
		return nil, err
	}
	return newImagePatternBuf(buf), nil
}

// NewImagePatternPixels creates an image pattern from packed ARGB pixels in
// row-major order. Returns nil when the buffer does not match the
// dimensions.
func NewImagePatternPixels(width, height int, pixels []RGBA32) *ImagePattern {
	if width <= 0 || height <= 0 || len(pixels) != width*height {
		return nil
	}
	buf, err := iimage.NewImageBuf(width, height)
	if err != nil {
		return nil
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			px := pixels[y*width+x]
			_ = buf.SetRGBA(x, y, px.R(), px.G(), px.B(), px.A())
		}
	}
	return newImagePatternBuf(buf)
}

func newImagePatternBuf(buf *iimage.ImageBuf) *ImagePattern {
	p := &ImagePattern{
		src:     buf,
		m:       Identity(),
		filter:  FilterNearest,
		extendX: ExtendPad,
		extendY: ExtendPad,
	}
	p.updateCoefficients()
	return p
}

// WithTransform sets the affine transform mapping device coordinates into
// image space. Returns the pattern for chaining.
func (p *ImagePattern) WithTransform(m Matrix) *ImagePattern {
	p.m = m
	p.updateCoefficients()
	return p
}

// WithOffset sets the sampling offset subtracted after the transform.
// Returns the pattern for chaining.
func (p *ImagePattern) WithOffset(x, y float64) *ImagePattern {
	p.offX = x
	p.offY = y
	p.updateCoefficients()
	return p
}

// WithFilter sets the sampling filter. Returns the pattern for chaining.
func (p *ImagePattern) WithFilter(f Filter) *ImagePattern {
	p.filter = f
	p.updateCoefficients()
	return p
}

// WithExtend sets the per-axis extend modes. Returns the pattern for
// chaining.
func (p *ImagePattern) WithExtend(x, y ExtendMode) *ImagePattern {
	p.extendX = x
	p.extendY = y
	p.updateCoefficients()
	return p
}

// EnableMipmaps generates a prefiltered level chain; ColorAt sampling
// under a minifying transform selects the level matching the scale.
// Returns the pattern for chaining.
func (p *ImagePattern) EnableMipmaps() *ImagePattern {
	p.mips = iimage.GenerateMipmaps(p.src)
	p.updateCoefficients()
	return p
}

// Width returns the source image width in pixels.
func (p *ImagePattern) Width() int { return p.src.Width() }

// Height returns the source image height in pixels.
func (p *ImagePattern) Height() int { return p.src.Height() }

// updateCoefficients refreshes the fixed-point transform, the identity
// fast-path flag, and invalidates the sequential-advance state.
func (p *ImagePattern) updateCoefficients() {
	p.fm00 = toFixed(p.m.A)
	p.fm01 = toFixed(p.m.B)
	p.fm10 = toFixed(p.m.D)
	p.fm11 = toFixed(p.m.E)
	p.ftx = toFixed(p.m.C - p.offX)
	p.fty = toFixed(p.m.F - p.offY)

	p.identityFast = p.filter == FilterNearest &&
		p.m.IsIntegerTranslation() &&
		p.offX == math.Trunc(p.offX) && p.offY == math.Trunc(p.offY)
	if p.identityFast {
		p.identOffX = int(p.m.C - p.offX)
		p.identOffY = int(p.m.F - p.offY)
	}

	// Keep the float-path sampler in step. The internal sampler works in
	// normalized image space, so its transform is the inverse of the
	// forward pixel map composed with denormalization.
	interp := iimage.InterpNearest
	if p.filter == FilterBilinear {
		interp = iimage.InterpBilinear
	}
	forward := Translate(-p.offX, -p.offY).Multiply(p.m)
	t := forward.Invert().Multiply(Scale(float64(p.src.Width()), float64(p.src.Height())))
	p.ip = iimage.NewImagePattern(p.src).
		WithTransform(iimage.NewAffine(t.A, t.B, t.C, t.D, t.E, t.F)).
		WithSpreadModes(spread(p.extendX), spread(p.extendY)).
		WithInterpolation(interp).
		WithMipmaps(p.mips)

	det := forward.A*forward.E - forward.B*forward.D
	if det != 0 {
		p.scale = 1 / math.Sqrt(math.Abs(det))
	} else {
		p.scale = 1
	}

	p.seqValid = false
}

func toFixed(v float64) int32 {
	return int32(math.Round(v * fpOne))
}

// Fetch returns the pattern color for the pixel at (x, y), sampling at the
// pixel center.
func (p *ImagePattern) Fetch(x, y int) RGBA32 {
	if p.identityFast {
		return p.tap(x+p.identOffX, y+p.identOffY)
	}

	var fx, fy int32
	if p.seqValid && y == p.lastY && x == p.nextX {
		fx = p.lastFx + p.fm00
		fy = p.lastFy + p.fm10
	} else {
		// Full transform of the pixel center, in 24.8.
		cx := float64(x) + 0.5
		cy := float64(y) + 0.5
		fx = toFixed(cx*p.m.A + cy*p.m.B + p.m.C - p.offX)
		fy = toFixed(cx*p.m.D + cy*p.m.E + p.m.F - p.offY)
	}
	p.seqValid = true
	p.lastY = y
	p.nextX = x + 1
	p.lastFx = fx
	p.lastFy = fy

	if p.filter == FilterBilinear {
		return p.sampleBilinear(fx, fy)
	}
	return p.tap(int(fx>>fpShift), int(fy>>fpShift))
}

// tap returns the pixel at integer image coordinates after per-axis extend.
func (p *ImagePattern) tap(ix, iy int) RGBA32 {
	ix = iimage.ExtendIndex(ix, p.src.Width(), spread(p.extendX))
	iy = iimage.ExtendIndex(iy, p.src.Height(), spread(p.extendY))
	r, g, b, a := p.src.GetRGBA(ix, iy)
	return PackRGBA32(r, g, b, a)
}

// sampleBilinear blends the four taps around the sample point with weights
// from the 8 fractional bits; the per-channel sums carry 16 fractional bits.
func (p *ImagePattern) sampleBilinear(fx, fy int32) RGBA32 {
	ix := int(fx >> fpShift)
	iy := int(fy >> fpShift)
	uf := uint32(fx & (fpOne - 1))
	vf := uint32(fy & (fpOne - 1))

	w, h := p.src.Width(), p.src.Height()
	sx, sy := spread(p.extendX), spread(p.extendY)

	x0 := iimage.ExtendIndex(ix, w, sx)
	y0 := iimage.ExtendIndex(iy, h, sy)

	// Repeat wraps the +1 neighbor with a single compare instead of a
	// second modulo; pad clamps at the border.
	var x1, y1 int
	if sx == iimage.SpreadRepeat {
		x1 = x0 + 1
		if x1 == w {
			x1 = 0
		}
	} else {
		x1 = iimage.ExtendIndex(ix+1, w, sx)
	}
	if sy == iimage.SpreadRepeat {
		y1 = y0 + 1
		if y1 == h {
			y1 = 0
		}
	} else {
		y1 = iimage.ExtendIndex(iy+1, h, sy)
	}

	r00, g00, b00, a00 := p.src.GetRGBA(x0, y0)
	r10, g10, b10, a10 := p.src.GetRGBA(x1, y0)
	r01, g01, b01, a01 := p.src.GetRGBA(x0, y1)
	r11, g11, b11, a11 := p.src.GetRGBA(x1, y1)

	w00 := (fpOne - uf) * (fpOne - vf)
	w10 := uf * (fpOne - vf)
	w01 := (fpOne - uf) * vf
	w11 := uf * vf

	r := (uint32(r00)*w00 + uint32(r10)*w10 + uint32(r01)*w01 + uint32(r11)*w11) >> 16
	g := (uint32(g00)*w00 + uint32(g10)*w10 + uint32(g01)*w01 + uint32(g11)*w11) >> 16
	b := (uint32(b00)*w00 + uint32(b10)*w10 + uint32(b01)*w01 + uint32(b11)*w11) >> 16
	a := (uint32(a00)*w00 + uint32(a10)*w10 + uint32(a01)*w01 + uint32(a11)*w11) >> 16

	return PackRGBA32(uint8(r), uint8(g), uint8(b), uint8(a))
}

// spread converts the public extend mode to the internal spread mode.
func spread(e ExtendMode) iimage.SpreadMode {
	switch e {
	case ExtendRepeat:
		return iimage.SpreadRepeat
	case ExtendReflect:
		return iimage.SpreadReflect
	default:
		return iimage.SpreadPad
	}
}

// ColorAt implements Pattern: the continuous-coordinate sampling path,
// routed through the float sampler so a mipmap chain (when enabled) can
// serve minified lookups. Fetch remains the fixed-point per-pixel
// contract.
func (p *ImagePattern) ColorAt(x, y float64) RGBA {
	r, g, b, a := p.ip.SampleWithScale(x, y, p.scale)
	return RGBA32(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)).Unpack()
}
