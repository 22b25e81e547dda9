package altraster

import "math"

// EPLAA is the edge-plane-lookup rasterizer. For each pixel it selects the
// dominant (nearest) edge by squared distance, then reads coverage from a
// precomputed 2D table indexed by the edge's orientation theta in [0, pi/2]
// and the signed distance s in [-eplMaxDist, eplMaxDist]. Pixels where two
// edges are nearly equally close, or whose nearest point is an endpoint,
// are pathological for the single-plane model and fall back to 4x4
// supersampling. Winding parity selects which side of the LUT applies.
type EPLAA struct {
	buf *Buffer
	lut [eplThetaSteps][eplDistSteps]float64

	cbuf []crossing
}

const (
	eplThetaSteps = 16
	eplDistSteps  = 64
	eplMaxDist    = 1.25
	// eplAmbiguity is the squared-distance margin below which two
	// competing edges force the supersampling fallback.
	eplAmbiguity = 0.05
)

// NewEPLAA creates the engine and precomputes the coverage table: each
// entry is the exact pixel coverage of a half-plane with boundary
// orientation theta passing at signed distance s from the pixel center,
// measured by one-time 16x16 supersampling.
func NewEPLAA(w, h int) *EPLAA {
	r := &EPLAA{buf: NewBuffer(w, h)}
	for ti := 0; ti < eplThetaSteps; ti++ {
		theta := (float64(ti) + 0.5) / eplThetaSteps * (math.Pi / 2)
		nx := math.Cos(theta)
		ny := math.Sin(theta)
		for si := 0; si < eplDistSteps; si++ {
			s := (float64(si)+0.5)/eplDistSteps*2*eplMaxDist - eplMaxDist
			r.lut[ti][si] = halfPlaneCoverage(nx, ny, s)
		}
	}
	return r
}

// halfPlaneCoverage measures the fraction of a unit pixel centered at the
// origin lying on the negative side of the plane n.p = s.
func halfPlaneCoverage(nx, ny, s float64) float64 {
	const grid = 16
	count := 0
	for j := 0; j < grid; j++ {
		py := (float64(j)+0.5)/grid - 0.5
		for i := 0; i < grid; i++ {
			px := (float64(i)+0.5)/grid - 0.5
			if px*nx+py*ny <= s {
				count++
			}
		}
	}
	return float64(count) / (grid * grid)
}

// Buffer returns the engine's pixel buffer.
func (r *EPLAA) Buffer() *Buffer { return r.buf }

// Clear fills the buffer with a packed color.
func (r *EPLAA) Clear(argb uint32) { r.buf.Clear(argb) }

// DrawPolygon fills the polygon with a packed color under the fill rule.
func (r *EPLAA) DrawPolygon(vertices []float64, argb uint32, rule FillRule, counts []int) {
	contours := splitContours(vertices, counts)
	edges := buildEdges(contours)
	if len(edges) == 0 {
		return
	}
	minX, minY, maxX, maxY, ok := bounds(contours, r.buf.W, r.buf.H)
	if !ok {
		return
	}
	minX = maxInt(minX-1, 0)
	maxX = minInt(maxX+1, r.buf.W)
	minY = maxInt(minY-1, 0)
	maxY = minInt(maxY+1, r.buf.H)

	segs := contourSegments(contours)

	for y := minY; y < maxY; y++ {
		sy := float64(y) + 0.5
		r.cbuf = crossingsAt(edges, sy, r.cbuf)

		for x := minX; x < maxX; x++ {
			sx := float64(x) + 0.5
			inside := rule.inside(windingSorted(r.cbuf, sx))

			best, second, bestSeg, atEndpoint := dominantEdge(segs, sx, sy)
			if best >= eplMaxDist*eplMaxDist {
				if inside {
					r.buf.BlendPixel(x, y, argb, 1)
				}
				continue
			}

			if atEndpoint || second-best < eplAmbiguity {
				cov := r.supersample(edges, rule, x, y)
				r.buf.BlendPixel(x, y, argb, cov)
				continue
			}

			cov := r.lookup(segs[bestSeg], math.Sqrt(best), inside)
			r.buf.BlendPixel(x, y, argb, cov)
		}
	}
}

// dominantEdge finds the nearest segment by squared distance, the
// runner-up's squared distance, and whether the nearest point is a
// segment endpoint.
func dominantEdge(segs []segment, x, y float64) (best, second float64, bestIdx int, atEndpoint bool) {
	best = math.Inf(1)
	second = math.Inf(1)
	bestIdx = -1
	for i := range segs {
		s := &segs[i]
		dx := s.bx - s.ax
		dy := s.by - s.ay
		lenSq := dx*dx + dy*dy
		var t float64
		if lenSq > 0 {
			t = ((x-s.ax)*dx + (y-s.ay)*dy) / lenSq
		}
		clamped := t
		if clamped < 0 {
			clamped = 0
		} else if clamped > 1 {
			clamped = 1
		}
		cx := s.ax + clamped*dx - x
		cy := s.ay + clamped*dy - y
		d := cx*cx + cy*cy
		if d < best {
			second = best
			best = d
			bestIdx = i
			atEndpoint = clamped != t
		} else if d < second {
			second = d
		}
	}
	return best, second, bestIdx, atEndpoint
}

// lookup reads coverage for the edge's orientation and the pixel's signed
// distance; the inside flag selects the LUT side.
func (r *EPLAA) lookup(s segment, dist float64, inside bool) float64 {
	theta := math.Atan2(math.Abs(s.by-s.ay), math.Abs(s.bx-s.ax))

	signed := dist
	if inside {
		signed = -dist
	}

	ti := int(theta / (math.Pi / 2) * eplThetaSteps)
	if ti >= eplThetaSteps {
		ti = eplThetaSteps - 1
	}
	si := int((signed + eplMaxDist) / (2 * eplMaxDist) * eplDistSteps)
	if si < 0 {
		si = 0
	} else if si >= eplDistSteps {
		si = eplDistSteps - 1
	}
	return r.lut[ti][si]
}

// supersample is the 4x4 grid fallback for pathological pixels.
func (r *EPLAA) supersample(edges []edge, rule FillRule, x, y int) float64 {
	const grid = 4
	count := 0
	for j := 0; j < grid; j++ {
		sy := float64(y) + (float64(j)+0.5)/grid
		for i := 0; i < grid; i++ {
			sx := float64(x) + (float64(i)+0.5)/grid
			if rule.inside(windingAt(edges, sx, sy)) {
				count++
			}
		}
	}
	return float64(count) / (grid * grid)
}
