package altraster

import "math"

// ACDR is the accumulated-coverage-derivative rasterizer. Per scanline it
// collects sorted edge crossings, turns the inside spans into a coverage
// derivative array (fractional deposits at span borders, +1/-1 across the
// interior), and prefix-integrates the derivative into per-pixel coverage.
// Optional vertical supersampling averages 2 or 4 equally weighted
// sub-scanlines.
type ACDR struct {
	buf *Buffer

	// vtaps is the number of vertical sub-scanlines per row (1, 2 or 4).
	vtaps int

	deriv []float64
	cov   []float64
	cbuf  []crossing
	sbuf  []span
}

// NewACDR creates the engine with a single centerline tap per row.
func NewACDR(w, h int) *ACDR {
	return &ACDR{
		buf:   NewBuffer(w, h),
		vtaps: 1,
		deriv: make([]float64, w+2),
		cov:   make([]float64, w),
	}
}

// SetVerticalTaps sets the vertical supersampling factor; values other
// than 2 or 4 fall back to a single tap.
func (r *ACDR) SetVerticalTaps(n int) {
	if n != 2 && n != 4 {
		n = 1
	}
	r.vtaps = n
}

// Buffer returns the engine's pixel buffer.
func (r *ACDR) Buffer() *Buffer { return r.buf }

// Clear fills the buffer with a packed color.
func (r *ACDR) Clear(argb uint32) { r.buf.Clear(argb) }

// DrawPolygon fills the polygon with a packed color under the fill rule.
func (r *ACDR) DrawPolygon(vertices []float64, argb uint32, rule FillRule, counts []int) {
	contours := splitContours(vertices, counts)
	edges := buildEdges(contours)
	if len(edges) == 0 {
		return
	}
	minX, minY, maxX, maxY, ok := bounds(contours, r.buf.W, r.buf.H)
	if !ok {
		return
	}

	weight := 1.0 / float64(r.vtaps)

	for y := minY; y < maxY; y++ {
		for i := minX; i < maxX; i++ {
			r.cov[i] = 0
		}

		for tap := 0; tap < r.vtaps; tap++ {
			sy := float64(y) + (float64(tap)+0.5)/float64(r.vtaps)
			r.cbuf = crossingsAt(edges, sy, r.cbuf)
			r.sbuf = insideSpans(r.cbuf, rule, r.sbuf)
			if len(r.sbuf) == 0 {
				continue
			}

			for i := minX; i <= maxX+1 && i < len(r.deriv); i++ {
				r.deriv[i] = 0
			}
			for _, s := range r.sbuf {
				r.depositSpan(s.x0, s.x1, weight)
			}

			acc := 0.0
			for i := minX; i < maxX; i++ {
				acc += r.deriv[i]
				r.cov[i] += acc
			}
		}

		for i := minX; i < maxX; i++ {
			if r.cov[i] > 0 {
				r.buf.BlendPixel(i, y, argb, r.cov[i])
			}
		}
	}
}

// depositSpan writes the span's coverage into the derivative array: the
// fractional parts of the borders land in the border pixels, the interior
// contributes a unit step. The derivative of pixel i's coverage relative
// to pixel i-1 is what accumulates, so a single prefix sum recovers
// per-pixel coverage.
func (r *ACDR) depositSpan(x0, x1 float64, weight float64) {
	if x1 <= x0 {
		return
	}
	w := float64(r.buf.W)
	if x0 < 0 {
		x0 = 0
	}
	if x1 > w {
		x1 = w
	}
	if x1 <= x0 {
		return
	}

	i0 := int(math.Floor(x0))
	i1 := int(math.Floor(x1))

	if i0 == i1 {
		// Span inside one pixel: that pixel gains (x1-x0), the next
		// loses it again.
		c := (x1 - x0) * weight
		r.deriv[i0] += c
		r.deriv[i1+1] -= c
		return
	}

	// Left border pixel gains its partial coverage.
	left := (float64(i0+1) - x0) * weight
	r.deriv[i0] += left
	// First interior pixel steps up to full coverage.
	r.deriv[i0+1] += weight - left
	// Right border pixel steps down to its partial coverage.
	right := (x1 - float64(i1)) * weight
	if i1 < len(r.deriv) {
		r.deriv[i1] -= weight - right
	}
	// Past the span, coverage returns to zero.
	if i1+1 < len(r.deriv) {
		r.deriv[i1+1] -= right
	}
}
