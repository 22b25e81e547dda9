package vraster

import (
	"github.com/gogpu/vraster/internal/raster"
)

// Fetcher produces the paint color for one pixel. The rasterizer evaluates
// it at the pixel's sample center (x+0.5, y+0.5); implementations in this
// package (gradient brushes, image patterns) apply that convention
// themselves.
type Fetcher interface {
	Fetch(x, y int) RGBA32
}

// FetcherFunc adapts a plain function to the Fetcher interface.
type FetcherFunc func(x, y int) RGBA32

// Fetch implements Fetcher.
func (f FetcherFunc) Fetch(x, y int) RGBA32 { return f(x, y) }

// Rasterizer is the analytic (cell-accumulation) scanline engine. It owns a
// framebuffer and reusable cell storage sized at construction; draw calls
// accumulate signed per-pixel (cover, area) cells, resolve them into
// coverage spans, composite, and leave the cells zeroed for the next call.
//
// A Rasterizer is not safe for concurrent use.
type Rasterizer struct {
	fb     *Framebuffer
	filler *raster.Filler

	// pts is the per-draw vertex scratch buffer, reused across calls.
	pts []raster.Point

	// threshold disables anti-aliasing by snapping coverage to 0 or 255
	// at half coverage.
	threshold bool

	// clip, when set, modulates every draw's coverage per pixel.
	clip *Mask
}

// NewRasterizer creates a rasterizer drawing into fb.
func NewRasterizer(fb *Framebuffer) *Rasterizer {
	return &Rasterizer{
		fb:     fb,
		filler: raster.NewFiller(fb.Width(), fb.Height()),
	}
}

// NewRasterizerSize allocates a fresh framebuffer of the given size and a
// rasterizer drawing into it. It fails fast on non-positive dimensions.
func NewRasterizerSize(width, height int) (*Rasterizer, error) {
	fb, err := NewFramebuffer(width, height)
	if err != nil {
		return nil, err
	}
	return NewRasterizer(fb), nil
}

// Framebuffer returns the target framebuffer.
func (r *Rasterizer) Framebuffer() *Framebuffer { return r.fb }

// Width returns the target width in pixels.
func (r *Rasterizer) Width() int { return r.fb.Width() }

// Height returns the target height in pixels.
func (r *Rasterizer) Height() int { return r.fb.Height() }

// SetAntialias toggles anti-aliased coverage. When disabled, coverage is
// thresholded at half: a pixel is either fully painted or untouched.
func (r *Rasterizer) SetAntialias(enabled bool) {
	r.threshold = !enabled
}

// runAlpha applies the anti-alias setting to a resolved coverage alpha.
func (r *Rasterizer) runAlpha(a uint8) uint8 {
	if r.threshold {
		if a < 128 {
			return 0
		}
		return 255
	}
	return a
}

// SetClipMask installs an alpha mask that modulates all subsequent draws,
// or removes it when nil. Clipped draws take the per-pixel path, so spans
// lose their fast paths while a mask is installed.
func (r *Rasterizer) SetClipMask(m *Mask) {
	r.clip = m
}

// Clear sets every pixel to color and discards any accumulated cells.
func (r *Rasterizer) Clear(c RGBA32) {
	r.fb.Clear(c)
	r.filler.Clear()
}

// DrawPolygon fills a polygon with a solid color.
//
// vertices is a flat, even-length array of device coordinates. counts may
// be nil to treat all vertices as one contour; counts that do not sum to
// the vertex total fall back to a single implicit contour. Fewer than 3
// vertices returns without touching the framebuffer.
func (r *Rasterizer) DrawPolygon(vertices []float64, c RGBA32, rule FillRule, op CompOp, counts []int) {
	if !r.accumulate(vertices, counts) {
		return
	}

	sa := c.A()
	r.filler.Resolve(ruleToRaster(rule), func(run raster.Run) {
		cov := r.runAlpha(run.Alpha)
		if cov == 0 {
			return
		}
		if r.clip != nil {
			for x := run.X0; x < run.X1; x++ {
				effA := coverageAlpha(coverageAlpha(cov, r.clip.At(x, run.Y)), sa)
				if effA == 0 && op == CompOpSourceOver {
					continue
				}
				r.fb.SetPixel(x, run.Y, compositePixel(op, c.WithAlpha(effA), r.fb.Pixel(x, run.Y)))
			}
			return
		}
		effA := coverageAlpha(cov, sa)
		switch {
		case op == CompOpSourceOver:
			if effA == 0 {
				return
			}
			if effA == 255 {
				r.fb.FillSpan(run.X0, run.X1, run.Y, c)
				return
			}
			r.fb.BlendSpan(run.X0, run.X1, run.Y, c.WithAlpha(effA))
		case op == CompOpSourceCopy:
			r.fb.FillSpan(run.X0, run.X1, run.Y, c.WithAlpha(effA))
		default:
			src := c.WithAlpha(effA)
			for x := run.X0; x < run.X1; x++ {
				r.fb.SetPixel(x, run.Y, compositePixel(op, src, r.fb.Pixel(x, run.Y)))
			}
		}
	})
	r.filler.Clear()
}

// DrawPolygonFetched fills a polygon, fetching the source color per pixel.
func (r *Rasterizer) DrawPolygonFetched(vertices []float64, fetch Fetcher, rule FillRule, op CompOp, counts []int) {
	if fetch == nil || !r.accumulate(vertices, counts) {
		return
	}

	r.filler.Resolve(ruleToRaster(rule), func(run raster.Run) {
		cov := r.runAlpha(run.Alpha)
		if cov == 0 {
			return
		}
		for x := run.X0; x < run.X1; x++ {
			src := fetch.Fetch(x, run.Y)
			pixCov := cov
			if r.clip != nil {
				pixCov = coverageAlpha(pixCov, r.clip.At(x, run.Y))
			}
			effA := coverageAlpha(pixCov, src.A())
			if effA == 0 && op == CompOpSourceOver {
				continue
			}
			r.fb.SetPixel(x, run.Y, compositePixel(op, src.WithAlpha(effA), r.fb.Pixel(x, run.Y)))
		}
	})
	r.filler.Clear()
}

// FillPolygon fills polygonal geometry from the path front-end with a
// solid color under source-over.
func (r *Rasterizer) FillPolygon(p *Polygon, c RGBA32, rule FillRule) {
	if p == nil {
		return
	}
	r.DrawPolygon(p.Vertices, c, rule, CompOpSourceOver, p.ContourCounts)
}

// accumulate validates the vertex list and feeds edges into the cell
// buffer. It reports whether anything was accumulated.
func (r *Rasterizer) accumulate(vertices []float64, counts []int) bool {
	n := len(vertices) / 2
	if n < 3 {
		return false
	}

	if counts != nil {
		sum := 0
		for _, c := range counts {
			sum += c
		}
		if sum != n {
			Logger().Warn("contour counts do not sum to vertex count; using a single implicit contour",
				"sum", sum, "vertices", n)
		}
	}

	if cap(r.pts) < n {
		r.pts = make([]raster.Point, n)
	}
	pts := r.pts[:n]
	for i := 0; i < n; i++ {
		pts[i] = raster.Point{X: vertices[i*2], Y: vertices[i*2+1]}
	}

	r.filler.AddPolygon(pts, counts)
	return true
}

// coverageAlpha combines a coverage alpha with the source alpha using the
// +127 rounding convention shared with the compositor.
func coverageAlpha(cov, srcA uint8) uint8 {
	return uint8((uint16(cov)*uint16(srcA) + 127) / 255)
}

// ruleToRaster converts the public fill rule to the cell resolver's.
func ruleToRaster(rule FillRule) raster.FillRule {
	if rule == FillRuleEvenOdd {
		return raster.EvenOdd
	}
	return raster.NonZero
}
