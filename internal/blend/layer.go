// Layer grouping: isolated drawing surfaces composited back with a blend
// mode and group opacity.

package blend

import (
	"github.com/gogpu/vraster/internal/image"
)

// Bounds is a rectangular region in pixel coordinates.
type Bounds struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Layer is an isolated drawing surface. Draws land on its buffer; popping
// the layer composites the buffer onto its parent under the layer's blend
// mode and opacity.
//
// Layer is not safe for concurrent use.
type Layer struct {
	buffer    *image.ImageBuf
	blendMode BlendMode
	opacity   float64
	bounds    Bounds
}

// NewLayer creates a layer with a pooled buffer of the bounds' size.
// Opacity is clamped to [0, 1].
func NewLayer(blendMode BlendMode, opacity float64, bounds Bounds, pool *image.Pool) (*Layer, error) {
	buf := pool.Get(bounds.Width, bounds.Height)
	if buf == nil {
		return nil, image.ErrInvalidDimensions
	}

	l := &Layer{
		buffer:    buf,
		blendMode: blendMode,
		bounds:    bounds,
	}
	l.SetOpacity(opacity)
	return l, nil
}

// Buffer returns the layer's drawing surface.
func (l *Layer) Buffer() *image.ImageBuf { return l.buffer }

// BlendMode returns the mode the layer composites with.
func (l *Layer) BlendMode() BlendMode { return l.blendMode }

// Opacity returns the layer's group opacity.
func (l *Layer) Opacity() float64 { return l.opacity }

// Bounds returns the layer's placement in its parent.
func (l *Layer) Bounds() Bounds { return l.bounds }

// SetOpacity sets the group opacity, clamped to [0, 1].
func (l *Layer) SetOpacity(opacity float64) {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	l.opacity = opacity
}

// LayerStack nests layers over a base surface: Push opens a fresh surface,
// Pop composites it onto whatever is below. The base buffer is the final
// output.
//
// LayerStack is not safe for concurrent use.
type LayerStack struct {
	layers []*Layer
	base   *image.ImageBuf
	pool   *image.Pool
}

// NewLayerStack creates a stack over the base buffer. A nil pool gets a
// private default.
func NewLayerStack(base *image.ImageBuf, pool *image.Pool) *LayerStack {
	if pool == nil {
		pool = image.NewPool(8)
	}
	return &LayerStack{
		base: base,
		pool: pool,
	}
}

// Push opens a layer with the given mode, opacity, and bounds. Zero or
// negative bounds adopt the base dimensions at the origin.
func (s *LayerStack) Push(blendMode BlendMode, opacity float64, bounds Bounds) (*Layer, error) {
	if bounds.Width <= 0 || bounds.Height <= 0 {
		w, h := s.base.Bounds()
		bounds = Bounds{Width: w, Height: h}
	}

	layer, err := NewLayer(blendMode, opacity, bounds, s.pool)
	if err != nil {
		return nil, err
	}
	s.layers = append(s.layers, layer)
	return layer, nil
}

// Pop composites the top layer onto its parent (or the base), recycles its
// buffer, and returns the surface it composited onto. Returns nil when the
// stack is empty.
func (s *LayerStack) Pop() *image.ImageBuf {
	if len(s.layers) == 0 {
		return nil
	}

	layer := s.layers[len(s.layers)-1]
	s.layers = s.layers[:len(s.layers)-1]

	dst := s.base
	if len(s.layers) > 0 {
		dst = s.layers[len(s.layers)-1].buffer
	}

	compositeLayer(layer, dst)
	s.pool.Put(layer.buffer)
	return dst
}

// Current returns the surface draws should target: the top layer's buffer,
// or the base when no layer is open.
func (s *LayerStack) Current() *image.ImageBuf {
	if len(s.layers) == 0 {
		return s.base
	}
	return s.layers[len(s.layers)-1].buffer
}

// CurrentBlendMode returns the top layer's mode, or source-over at the
// base.
func (s *LayerStack) CurrentBlendMode() BlendMode {
	if len(s.layers) == 0 {
		return BlendSourceOver
	}
	return s.layers[len(s.layers)-1].blendMode
}

// Depth returns the number of open layers.
func (s *LayerStack) Depth() int {
	return len(s.layers)
}

// Clear drops every open layer without compositing, recycling the
// buffers.
func (s *LayerStack) Clear() {
	for _, layer := range s.layers {
		s.pool.Put(layer.buffer)
	}
	s.layers = s.layers[:0]
}

// compositeLayer blends the layer's buffer onto dst at the layer's bounds,
// applying the layer's mode and opacity per pixel on the premultiplied
// views.
func compositeLayer(src *Layer, dst *image.ImageBuf) {
	srcBuf := src.buffer
	srcW, srcH := srcBuf.Bounds()
	dstW, dstH := dst.Bounds()

	blendFunc := GetBlendFunc(src.blendMode)
	opacity := src.opacity

	x0 := maxInt(src.bounds.X, 0)
	y0 := maxInt(src.bounds.Y, 0)
	x1 := minInt(src.bounds.X+srcW, dstW)
	y1 := minInt(src.bounds.Y+srcH, dstH)

	srcData := srcBuf.PremultipliedData()
	dstData := dst.PremultipliedData()
	out := dst.Data()

	for dy := y0; dy < y1; dy++ {
		sy := dy - src.bounds.Y
		for dx := x0; dx < x1; dx++ {
			sx := dx - src.bounds.X

			si := (sy*srcW + sx) * 4
			sr, sg, sb, sa := srcData[si], srcData[si+1], srcData[si+2], srcData[si+3]
			if opacity < 1 {
				sr = byte(float64(sr) * opacity)
				sg = byte(float64(sg) * opacity)
				sb = byte(float64(sb) * opacity)
				sa = byte(float64(sa) * opacity)
			}

			di := (dy*dstW + dx) * 4
			r, g, b, a := blendFunc(sr, sg, sb, sa,
				dstData[di], dstData[di+1], dstData[di+2], dstData[di+3])

			// The result is premultiplied; store it unpremultiplied in
			// the straight buffer.
			if a == 0 {
				out[di], out[di+1], out[di+2], out[di+3] = 0, 0, 0, 0
				continue
			}
			out[di] = unpremulDiv(r, a)
			out[di+1] = unpremulDiv(g, a)
			out[di+2] = unpremulDiv(b, a)
			out[di+3] = a
		}
	}
	dst.InvalidatePremulCache()
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
