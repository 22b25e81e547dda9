package image

// ImagePattern represents an image-based fill pattern.
//
// Sampling transforms pattern-space coordinates through the cached inverse
// transform into normalized image space, applies the per-axis spread
// modes, then interpolates. An optional mipmap chain supplies prefiltered
// levels for downscaled use.
type ImagePattern struct {
	image     *ImageBuf
	transform Affine
	inverse   Affine // cached inverse transform
	spreadX   SpreadMode
	spreadY   SpreadMode
	interp    InterpolationMode
	opacity   float64
	mipmaps   *MipmapChain // optional, for quality downscaling
}

// NewImagePattern creates a pattern from an image.
//
// Default settings: identity transform, pad spread on both axes, bilinear
// interpolation, opacity 1.0, no mipmaps. Returns nil if img is nil.
func NewImagePattern(img *ImageBuf) *ImagePattern {
	if img == nil {
		return nil
	}

	identity := Identity()
	return &ImagePattern{
		image:     img,
		transform: identity,
		inverse:   identity, // identity inverse is itself
		spreadX:   SpreadPad,
		spreadY:   SpreadPad,
		interp:    InterpBilinear,
		opacity:   1.0,
	}
}

// WithTransform sets the transformation matrix for the pattern.
// Returns the pattern for method chaining.
//
// The transform maps image space to pattern space; sampling applies its
// inverse, which is cached, to reach image space.
func (p *ImagePattern) WithTransform(t Affine) *ImagePattern {
	p.transform = t
	inv, ok := t.Invert()
	if ok {
		p.inverse = inv
	} else {
		// Singular matrix - keep identity
		p.inverse = Identity()
	}
	return p
}

// WithSpreadMode sets the spread mode on both axes.
// Returns the pattern for method chaining.
func (p *ImagePattern) WithSpreadMode(mode SpreadMode) *ImagePattern {
	p.spreadX = mode
	p.spreadY = mode
	return p
}

// WithSpreadModes sets the spread mode independently per axis.
// Returns the pattern for method chaining.
func (p *ImagePattern) WithSpreadModes(x, y SpreadMode) *ImagePattern {
	p.spreadX = x
	p.spreadY = y
	return p
}

// WithInterpolation sets the interpolation mode for sampling.
// Returns the pattern for method chaining.
func (p *ImagePattern) WithInterpolation(mode InterpolationMode) *ImagePattern {
	p.interp = mode
	return p
}

// WithOpacity sets the opacity multiplier (0.0 = transparent, 1.0 =
// opaque), clamped to [0, 1]. Returns the pattern for method chaining.
func (p *ImagePattern) WithOpacity(opacity float64) *ImagePattern {
	p.opacity = clampFloat(opacity, 0, 1)
	return p
}

// WithMipmaps sets the mipmap chain for quality downscaling.
// Returns the pattern for method chaining.
func (p *ImagePattern) WithMipmaps(chain *MipmapChain) *ImagePattern {
	p.mipmaps = chain
	return p
}

// Sample returns the color at the given pattern-space coordinates.
//
// The sampling process:
//  1. Apply inverse transform to convert pattern coords to image coords
//  2. Apply per-axis spread modes
//  3. Apply interpolation to sample the image
//  4. Apply opacity
//
// Returns (0,0,0,0) if the pattern or image is nil.
func (p *ImagePattern) Sample(x, y float64) (r, g, b, a byte) {
	return p.sampleImage(p.image, x, y)
}

// SampleWithScale selects a mipmap level based on scale if one is
// available. The scale parameter is the ratio of displayed size to
// original size; it falls back to Sample when no level fits or the image
// is being magnified.
func (p *ImagePattern) SampleWithScale(x, y, scale float64) (r, g, b, a byte) {
	if p == nil || p.image == nil {
		return 0, 0, 0, 0
	}

	var img *ImageBuf
	if p.mipmaps != nil && scale < 1.0 {
		img = p.mipmaps.LevelForScale(scale)
	}
	if img == nil {
		img = p.image
	}
	return p.sampleImage(img, x, y)
}

func (p *ImagePattern) sampleImage(img *ImageBuf, x, y float64) (r, g, b, a byte) {
	if p == nil || img == nil {
		return 0, 0, 0, 0
	}

	// Pattern space maps through the inverse transform into normalized
	// [0,1] image space; the spread modes then act per axis.
	u, v := p.inverse.TransformPoint(x, y)
	u = spreadCoord(u, p.spreadX)
	v = spreadCoord(v, p.spreadY)

	r, g, b, a = Sample(img, u, v, p.interp)

	if p.opacity < 1.0 {
		a = byte(float64(a) * p.opacity)
	}
	return r, g, b, a
}

// Image returns the underlying image buffer.
func (p *ImagePattern) Image() *ImageBuf {
	if p == nil {
		return nil
	}
	return p.image
}

// Transform returns the current transformation matrix.
func (p *ImagePattern) Transform() Affine {
	if p == nil {
		return Identity()
	}
	return p.transform
}

// SpreadModes returns the per-axis spread modes.
func (p *ImagePattern) SpreadModes() (x, y SpreadMode) {
	if p == nil {
		return SpreadPad, SpreadPad
	}
	return p.spreadX, p.spreadY
}

// Interpolation returns the current interpolation mode.
func (p *ImagePattern) Interpolation() InterpolationMode {
	if p == nil {
		return InterpBilinear
	}
	return p.interp
}

// Opacity returns the current opacity value.
func (p *ImagePattern) Opacity() float64 {
	if p == nil {
		return 1.0
	}
	return p.opacity
}

// Mipmaps returns the mipmap chain, or nil if not set.
func (p *ImagePattern) Mipmaps() *MipmapChain {
	if p == nil {
		return nil
	}
	return p.mipmaps
}

// MipmapChain holds successively box-filtered half-resolution levels of a
// source image, level 0 being the source itself.
type MipmapChain struct {
	levels []*ImageBuf
}

// GenerateMipmaps builds the full chain down to 1x1. Returns nil for a
// nil source.
func GenerateMipmaps(src *ImageBuf) *MipmapChain {
	if src == nil {
		return nil
	}

	chain := &MipmapChain{levels: []*ImageBuf{src}}
	cur := src
	for cur.width > 1 || cur.height > 1 {
		next := downsample(cur)
		if next == nil {
			break
		}
		chain.levels = append(chain.levels, next)
		cur = next
	}
	return chain
}

// downsample box-filters the image to half resolution (rounding up).
func downsample(src *ImageBuf) *ImageBuf {
	w := maxIntImg((src.width+1)/2, 1)
	h := maxIntImg((src.height+1)/2, 1)
	dst, err := NewImageBuf(w, h)
	if err != nil {
		return nil
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var r, g, b, a uint32
			count := uint32(0)
			for dy := 0; dy < 2; dy++ {
				sy := y*2 + dy
				if sy >= src.height {
					continue
				}
				for dx := 0; dx < 2; dx++ {
					sx := x*2 + dx
					if sx >= src.width {
						continue
					}
					pr, pg, pb, pa := src.GetRGBA(sx, sy)
					r += uint32(pr)
					g += uint32(pg)
					b += uint32(pb)
					a += uint32(pa)
					count++
				}
			}
			_ = dst.SetRGBA(x, y, uint8(r/count), uint8(g/count), uint8(b/count), uint8(a/count))
		}
	}
	return dst
}

// NumLevels returns the number of levels in the chain.
func (m *MipmapChain) NumLevels() int {
	if m == nil {
		return 0
	}
	return len(m.levels)
}

// Level returns the n-th level, or nil out of range.
func (m *MipmapChain) Level(n int) *ImageBuf {
	if m == nil || n < 0 || n >= len(m.levels) {
		return nil
	}
	return m.levels[n]
}

// LevelForScale returns the level whose resolution best matches the
// display scale (1.0 means original size, 0.5 half, and so on).
func (m *MipmapChain) LevelForScale(scale float64) *ImageBuf {
	if m == nil || len(m.levels) == 0 {
		return nil
	}
	if scale >= 1 {
		return m.levels[0]
	}

	level := 0
	for s := 1.0; s/2 >= scale && level+1 < len(m.levels); s /= 2 {
		level++
	}
	return m.levels[level]
}

func maxIntImg(a, b int) int {
	if a > b {
		return a
	}
	return b
}
