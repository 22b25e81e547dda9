package altraster

import (
	"image"

	"golang.org/x/image/vector"
)

// SSAA is the supersampling rasterizer: a regular NxN sample grid per
// pixel, optionally rotated to break up axis-aligned moire, with coverage
// equal to the inside-sample fraction. An 8x8-pixel tile cache
// short-circuits tiles whose corners and center are all inside and which
// no edge crosses, filling them as fully covered without per-sample work.
//
// A reference mode rasterizes the same polygon through
// golang.org/x/image/vector and keeps the resulting coverage plane
// available for test-time comparison against the sample grid.
type SSAA struct {
	buf *Buffer

	// n is the grid dimension per pixel axis.
	n int

	// rotated applies the rotated-grid sample layout.
	rotated bool

	// reference enables the x/image/vector cross-check plane.
	reference bool
	refCov    []float64

	cbuf []crossing
	sbuf []span
}

// ssaaTile is the edge length of the opaque-tile shortcut in pixels.
const ssaaTile = 8

// NewSSAA creates the engine with a 4x4 grid.
func NewSSAA(w, h int) *SSAA {
	return &SSAA{buf: NewBuffer(w, h), n: 4}
}

// SetSamples sets the per-axis sample count, clamped to [1, 8].
func (r *SSAA) SetSamples(n int) {
	if n < 1 {
		n = 1
	}
	if n > 8 {
		n = 8
	}
	r.n = n
}

// SetRotatedGrid toggles the rotated sample layout.
func (r *SSAA) SetRotatedGrid(on bool) { r.rotated = on }

// SetReference toggles the x/image/vector reference plane.
func (r *SSAA) SetReference(on bool) {
	r.reference = on
	if on && r.refCov == nil {
		r.refCov = make([]float64, r.buf.W*r.buf.H)
	}
}

// ReferenceCoverage returns the coverage plane produced by the reference
// rasterizer during the last DrawPolygon, or nil when the reference mode
// is off.
func (r *SSAA) ReferenceCoverage() []float64 {
	if !r.reference {
		return nil
	}
	return r.refCov
}

// Buffer returns the engine's pixel buffer.
func (r *SSAA) Buffer() *Buffer { return r.buf }

// Clear fills the buffer with a packed color.
func (r *SSAA) Clear(argb uint32) { r.buf.Clear(argb) }

// sampleOffset returns the (dx, dy) of sample (i, j) inside a pixel.
func (r *SSAA) sampleOffset(i, j int) (float64, float64) {
	n := float64(r.n)
	dx := (float64(i) + 0.5) / n
	dy := (float64(j) + 0.5) / n
	if r.rotated {
		// Shear each sample row by its index; wrapping keeps the
		// samples stratified while breaking vertical alignment.
		dx += float64(j) / (n * n)
		if dx >= 1 {
			dx--
		}
	}
	return dx, dy
}

// DrawPolygon fills the polygon with a packed color under the fill rule.
func (r *SSAA) DrawPolygon(vertices []float64, argb uint32, rule FillRule, counts []int) {
	contours := splitContours(vertices, counts)
	edges := buildEdges(contours)
	if len(edges) == 0 {
		return
	}
	minX, minY, maxX, maxY, ok := bounds(contours, r.buf.W, r.buf.H)
	if !ok {
		return
	}

	if r.reference {
		r.rasterizeReference(contours)
	}

	samples := float64(r.n * r.n)

	for ty := minY; ty < maxY; ty += ssaaTile {
		for tx := minX; tx < maxX; tx += ssaaTile {
			tx1 := minInt(tx+ssaaTile, maxX)
			ty1 := minInt(ty+ssaaTile, maxY)

			if r.tileOpaque(edges, rule, tx, ty, tx1, ty1) {
				for y := ty; y < ty1; y++ {
					for x := tx; x < tx1; x++ {
						r.buf.BlendPixel(x, y, argb, 1)
					}
				}
				continue
			}

			hits := make([]int, (tx1-tx)*(ty1-ty))
			for j := 0; j < r.n; j++ {
				for y := ty; y < ty1; y++ {
					_, dy := r.sampleOffset(0, j)
					sy := float64(y) + dy
					r.cbuf = crossingsAt(edges, sy, r.cbuf)
					r.sbuf = insideSpans(r.cbuf, rule, r.sbuf)
					if len(r.sbuf) == 0 {
						continue
					}
					for i := 0; i < r.n; i++ {
						dx, _ := r.sampleOffset(i, j)
						for x := tx; x < tx1; x++ {
							sx := float64(x) + dx
							if spanContains(r.sbuf, sx) {
								hits[(y-ty)*(tx1-tx)+(x-tx)]++
							}
						}
					}
				}
			}

			for y := ty; y < ty1; y++ {
				for x := tx; x < tx1; x++ {
					c := hits[(y-ty)*(tx1-tx)+(x-tx)]
					if c > 0 {
						r.buf.BlendPixel(x, y, argb, float64(c)/samples)
					}
				}
			}
		}
	}
}

// tileOpaque reports whether the tile is fully interior: no edge touches
// its bounds and its corner and center points are all inside.
func (r *SSAA) tileOpaque(edges []edge, rule FillRule, x0, y0, x1, y1 int) bool {
	fx0, fy0 := float64(x0), float64(y0)
	fx1, fy1 := float64(x1), float64(y1)
	for i := range edges {
		e := &edges[i]
		if e.y1 < fy0 || e.y0 > fy1 {
			continue
		}
		lo, hi := e.x0, e.x1
		if lo > hi {
			lo, hi = hi, lo
		}
		if hi < fx0 || lo > fx1 {
			continue
		}
		return false
	}
	probes := [5][2]float64{
		{fx0 + 0.5, fy0 + 0.5},
		{fx1 - 0.5, fy0 + 0.5},
		{fx0 + 0.5, fy1 - 0.5},
		{fx1 - 0.5, fy1 - 0.5},
		{(fx0 + fx1) / 2, (fy0 + fy1) / 2},
	}
	for _, p := range probes {
		if !rule.inside(windingAt(edges, p[0], p[1])) {
			return false
		}
	}
	return true
}

// spanContains reports whether x lies in any sorted inside span.
func spanContains(spans []span, x float64) bool {
	for _, s := range spans {
		if x < s.x0 {
			return false
		}
		if x < s.x1 {
			return true
		}
	}
	return false
}

// rasterizeReference fills the reference coverage plane through
// x/image/vector's rasterizer. The reference always uses the non-zero
// rule, which is what vector.Rasterizer implements.
func (r *SSAA) rasterizeReference(contours []contour) {
	vr := vector.NewRasterizer(r.buf.W, r.buf.H)
	for _, c := range contours {
		if len(c) < 3 {
			continue
		}
		vr.MoveTo(float32(c[0].X), float32(c[0].Y))
		for _, p := range c[1:] {
			vr.LineTo(float32(p.X), float32(p.Y))
		}
		vr.ClosePath()
	}

	dst := image.NewAlpha(image.Rect(0, 0, r.buf.W, r.buf.H))
	vr.Draw(dst, vr.Bounds(), image.Opaque, image.Point{})
	for y := 0; y < r.buf.H; y++ {
		for x := 0; x < r.buf.W; x++ {
			r.refCov[y*r.buf.W+x] = float64(dst.AlphaAt(x, y).A) / 255
		}
	}
}
