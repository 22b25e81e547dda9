package vraster

import (
	"github.com/gogpu/vraster/internal/blend"
	iimage "github.com/gogpu/vraster/internal/image"
)

// WithLayer paints through a temporary transparent layer: fn draws into a
// fresh renderer targeting the layer, and on return the layer is
// composited onto this renderer's framebuffer with the operator and
// opacity. Nested WithLayer calls stack.
//
// Grouping draws behind one opacity (or one non-trivial operator) is the
// reason to pay for the intermediate surface; a single draw can pass its
// operator directly instead.
func (r *PathRenderer) WithLayer(op CompOp, opacity float64, fn func(*PathRenderer)) {
	if fn == nil {
		return
	}
	fb := r.ras.Framebuffer()

	base := framebufferToImageBuf(fb)
	if base == nil {
		return
	}
	stack := blend.NewLayerStack(base, iimage.NewPool(4))

	layer, err := stack.Push(op.catalogMode(), clampOpacity(opacity), blend.Bounds{})
	if err != nil {
		return
	}

	sub, err := NewRasterizerSize(fb.Width(), fb.Height())
	if err != nil {
		return
	}
	fn(NewPathRenderer(sub))

	copyFramebufferToImageBuf(sub.Framebuffer(), layer.Buffer())
	stack.Pop()
	copyImageBufToFramebuffer(base, fb)
}

// BlitPattern draws the pattern's source image into a framebuffer
// rectangle through the image drawing pipeline (interpolation, opacity,
// and the pipeline's own blend set). Operators without an equivalent
// there fall back to source-over.
func BlitPattern(fb *Framebuffer, p *ImagePattern, x, y, w, h int, op CompOp, opacity float64) {
	if fb == nil || p == nil || w <= 0 || h <= 0 {
		return
	}

	dst := framebufferToImageBuf(fb)
	if dst == nil {
		return
	}

	mode := iimage.BlendNormal
	switch op {
	case CompOpMultiply:
		mode = iimage.BlendMultiply
	case CompOpScreen:
		mode = iimage.BlendScreen
	case CompOpOverlay:
		mode = iimage.BlendOverlay
	}

	interp := iimage.InterpNearest
	if p.filter == FilterBilinear {
		interp = iimage.InterpBilinear
	}

	iimage.DrawImage(dst, p.src, iimage.DrawParams{
		DstRect:   iimage.Rect{X: x, Y: y, Width: w, Height: h},
		Interp:    interp,
		Opacity:   clampOpacity(opacity),
		BlendMode: mode,
	})
	copyImageBufToFramebuffer(dst, fb)
}

func clampOpacity(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// framebufferToImageBuf copies the framebuffer into a straight-RGBA image
// buffer.
func framebufferToImageBuf(fb *Framebuffer) *iimage.ImageBuf {
	buf, err := iimage.NewImageBuf(fb.Width(), fb.Height())
	if err != nil {
		return nil
	}
	copyFramebufferToImageBuf(fb, buf)
	return buf
}

func copyFramebufferToImageBuf(fb *Framebuffer, buf *iimage.ImageBuf) {
	w, h := buf.Bounds()
	for y := 0; y < h && y < fb.Height(); y++ {
		for x := 0; x < w && x < fb.Width(); x++ {
			_ = buf.SetPacked(x, y, uint32(fb.Pixel(x, y)))
		}
	}
	buf.InvalidatePremulCache()
}

func copyImageBufToFramebuffer(buf *iimage.ImageBuf, fb *Framebuffer) {
	w, h := buf.Bounds()
	for y := 0; y < h && y < fb.Height(); y++ {
		for x := 0; x < w && x < fb.Width(); x++ {
			fb.SetPixel(x, y, RGBA32(buf.GetPacked(x, y)))
		}
	}
}
