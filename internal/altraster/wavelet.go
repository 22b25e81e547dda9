package altraster

import "math"

// Wavelet is the Haar-wavelet rasterizer. The polygon is evaluated over a
// power-of-two grid aligned to its bounding box: a quadtree recursion
// computes per-cell occupancy, refining only cells that polygon edges
// actually cross (the cells whose Haar detail coefficients are non-zero)
// and resolving uniform cells from a single winding probe. Leaf cells at
// pixel resolution get their coverage from the contour integral restricted
// to the cell, and the reconstructed occupancy plane maps one grid cell to
// one pixel of coverage.
type Wavelet struct {
	buf *Buffer

	cbuf []crossing
	sbuf []span
}

// NewWavelet creates the engine.
func NewWavelet(w, h int) *Wavelet {
	return &Wavelet{buf: NewBuffer(w, h)}
}

// Buffer returns the engine's pixel buffer.
func (r *Wavelet) Buffer() *Buffer { return r.buf }

// Clear fills the buffer with a packed color.
func (r *Wavelet) Clear(argb uint32) { r.buf.Clear(argb) }

// DrawPolygon fills the polygon with a packed color under the fill rule.
func (r *Wavelet) DrawPolygon(vertices []float64, argb uint32, rule FillRule, counts []int) {
	contours := splitContours(vertices, counts)
	edges := buildEdges(contours)
	if len(edges) == 0 {
		return
	}
	minX, minY, maxX, maxY, ok := bounds(contours, r.buf.W, r.buf.H)
	if !ok {
		return
	}

	// Power-of-two grid spanning the bounding box, one cell per pixel at
	// the finest level.
	size := 1
	for size < maxX-minX || size < maxY-minY {
		size *= 2
	}

	r.refine(edges, rule, argb, minX, minY, size, maxX, maxY)
}

// refine descends the quadtree rooted at the size x size cell anchored at
// (x0, y0). Cells crossed by no edge are uniform: one winding probe at the
// cell center fills or skips them wholesale. Crossed cells subdivide until
// pixel-sized leaves, which get analytic span coverage.
func (r *Wavelet) refine(edges []edge, rule FillRule, argb uint32, x0, y0, size, clipX, clipY int) {
	if x0 >= clipX || y0 >= clipY {
		return
	}

	if size == 1 {
		r.leafCoverage(edges, rule, argb, x0, y0)
		return
	}

	if !cellCrossed(edges, float64(x0), float64(y0), float64(size)) {
		// Uniform occupancy: the Haar detail coefficients of this cell
		// are all zero, so the average alone decides it.
		cx := float64(x0) + float64(size)/2
		cy := float64(y0) + float64(size)/2
		if rule.inside(windingAt(edges, cx, cy)) {
			xEnd := minInt(x0+size, clipX)
			yEnd := minInt(y0+size, clipY)
			for y := y0; y < yEnd; y++ {
				for x := x0; x < xEnd; x++ {
					r.buf.BlendPixel(x, y, argb, 1)
				}
			}
		}
		return
	}

	half := size / 2
	r.refine(edges, rule, argb, x0, y0, half, clipX, clipY)
	r.refine(edges, rule, argb, x0+half, y0, half, clipX, clipY)
	r.refine(edges, rule, argb, x0, y0+half, half, clipX, clipY)
	r.refine(edges, rule, argb, x0+half, y0+half, half, clipX, clipY)
}

// leafCoverage integrates the inside spans across four sub-scanlines of
// one pixel cell.
func (r *Wavelet) leafCoverage(edges []edge, rule FillRule, argb uint32, x, y int) {
	if x < 0 || x >= r.buf.W || y < 0 || y >= r.buf.H {
		return
	}
	const taps = 4
	cov := 0.0
	for t := 0; t < taps; t++ {
		sy := float64(y) + (float64(t)+0.5)/taps
		r.cbuf = crossingsAt(edges, sy, r.cbuf)
		r.sbuf = insideSpans(r.cbuf, rule, r.sbuf)
		for _, s := range r.sbuf {
			lo := math.Max(s.x0, float64(x))
			hi := math.Min(s.x1, float64(x+1))
			if hi > lo {
				cov += hi - lo
			}
		}
	}
	cov /= taps
	if cov > 0 {
		r.buf.BlendPixel(x, y, argb, cov)
	}
}

// cellCrossed reports whether any edge intersects the square cell.
func cellCrossed(edges []edge, x0, y0, size float64) bool {
	x1 := x0 + size
	y1 := y0 + size
	for i := range edges {
		e := &edges[i]
		if e.y1 <= y0 || e.y0 >= y1 {
			continue
		}
		lo, hi := e.x0, e.x1
		if lo > hi {
			lo, hi = hi, lo
		}
		if hi <= x0 || lo >= x1 {
			continue
		}
		// The segment's bounding box overlaps the cell; test the segment
		// against the cell proper.
		if segmentMeetsCell(e, x0, y0, x1, y1) {
			return true
		}
	}
	return false
}

// segmentMeetsCell clips the segment's parameter range against the cell's
// slabs.
func segmentMeetsCell(e *edge, x0, y0, x1, y1 float64) bool {
	dx := e.x1 - e.x0
	dy := e.y1 - e.y0

	tMin, tMax := 0.0, 1.0
	clip := func(p, q float64) bool {
		if p == 0 {
			return q >= 0
		}
		t := q / p
		if p < 0 {
			if t > tMax {
				return false
			}
			if t > tMin {
				tMin = t
			}
		} else {
			if t < tMin {
				return false
			}
			if t < tMax {
				tMax = t
			}
		}
		return true
	}

	return clip(-dx, e.x0-x0) && clip(dx, x1-e.x0) &&
		clip(-dy, e.y0-y0) && clip(dy, y1-e.y0)
}
