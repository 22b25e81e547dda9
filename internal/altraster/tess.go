package altraster

import "math"

// Tess is the tessellation rasterizer: contours are triangulated by ear
// clipping, with hole contours bridged into their enclosing outer contour
// first, and each triangle is rasterized with an NxN per-pixel sample mask
// whose population count becomes coverage.
//
// Ear clipping requires simple (non-self-intersecting) contours; that is
// the precondition of this engine family, not of the polygon contract at
// large.
type Tess struct {
	buf *Buffer

	// n is the per-axis sample count of the triangle coverage mask.
	n int
}

// NewTess creates the engine with a 4x4 triangle sample mask.
func NewTess(w, h int) *Tess {
	return &Tess{buf: NewBuffer(w, h), n: 4}
}

// Buffer returns the engine's pixel buffer.
func (r *Tess) Buffer() *Buffer { return r.buf }

// Clear fills the buffer with a packed color.
func (r *Tess) Clear(argb uint32) { r.buf.Clear(argb) }

// triangle is one output triangle of the ear clipper.
type triangle struct {
	a, b, c Point
}

// DrawPolygon fills the polygon with a packed color under the fill rule.
func (r *Tess) DrawPolygon(vertices []float64, argb uint32, rule FillRule, counts []int) {
	contours := splitContours(vertices, counts)
	if len(contours) == 0 {
		return
	}
	minX, minY, maxX, maxY, ok := bounds(contours, r.buf.W, r.buf.H)
	if !ok {
		return
	}

	tris := triangulate(contours, rule)
	if len(tris) == 0 {
		return
	}

	// Accumulate per-sample parity over the bounding box, then collapse
	// the mask population count into coverage. Parity (rather than a
	// plain sum) keeps even-odd holes and bridged outlines honest when
	// triangles overlap.
	w := maxX - minX
	h := maxY - minY
	n := r.n
	samples := n * n
	mask := make([]uint16, w*h)

	for _, t := range tris {
		r.sampleTriangle(t, minX, minY, w, h, mask)
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			bits := mask[y*w+x]
			if bits == 0 {
				continue
			}
			count := popcount16(bits)
			r.buf.BlendPixel(minX+x, minY+y, argb, float64(count)/float64(samples))
		}
	}
}

// sampleTriangle toggles the per-pixel sample-mask bits covered by t.
func (r *Tess) sampleTriangle(t triangle, minX, minY, w, h int, mask []uint16) {
	n := r.n

	loX := int(math.Floor(min3f(t.a.X, t.b.X, t.c.X))) - minX
	hiX := int(math.Ceil(max3f(t.a.X, t.b.X, t.c.X))) - minX
	loY := int(math.Floor(min3f(t.a.Y, t.b.Y, t.c.Y))) - minY
	hiY := int(math.Ceil(max3f(t.a.Y, t.b.Y, t.c.Y))) - minY
	loX = maxInt(loX, 0)
	loY = maxInt(loY, 0)
	hiX = minInt(hiX, w-1)
	hiY = minInt(hiY, h-1)

	for y := loY; y <= hiY; y++ {
		for x := loX; x <= hiX; x++ {
			var bits uint16
			for j := 0; j < n; j++ {
				sy := float64(minY+y) + (float64(j)+0.5)/float64(n)
				for i := 0; i < n; i++ {
					sx := float64(minX+x) + (float64(i)+0.5)/float64(n)
					if sampleInTriangle(sx, sy, t) {
						bits |= 1 << uint(j*n+i)
					}
				}
			}
			mask[y*w+x] ^= bits
		}
	}
}

// sampleInTriangle tests containment against a counter-oriented triangle
// with a top-left tie-break on the edges, so a sample landing exactly on
// an edge shared by two triangles toggles the parity mask exactly once.
func sampleInTriangle(px, py float64, t triangle) bool {
	return edgeInside(t.a, t.b, px, py) &&
		edgeInside(t.b, t.c, px, py) &&
		edgeInside(t.c, t.a, px, py)
}

// edgeInside reports the sample on the interior side of edge a-b; on-edge
// samples belong to top and left edges only.
func edgeInside(a, b Point, px, py float64) bool {
	d := cross2(a, b, px, py)
	if d != 0 {
		return d > 0
	}
	// Top edge: horizontal with interior below; left edge: rising.
	if a.Y == b.Y {
		return b.X < a.X
	}
	return b.Y < a.Y
}

// pointInTriangle is the orientation-free containment test used by the
// ear clipper's blocking check.
func pointInTriangle(px, py float64, t triangle) bool {
	d1 := cross2(t.a, t.b, px, py)
	d2 := cross2(t.b, t.c, px, py)
	d3 := cross2(t.c, t.a, px, py)
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

func cross2(a, b Point, px, py float64) float64 {
	return (b.X-a.X)*(py-a.Y) - (b.Y-a.Y)*(px-a.X)
}

// triangulate bridges holes into their outers (non-zero rule) and ear-clips
// every resulting simple contour. Under even-odd, contours are clipped
// independently; the per-sample parity accumulation downstream turns
// overlapping regions into holes.
func triangulate(contours []contour, rule FillRule) []triangle {
	var tris []triangle

	if rule == NonZero && len(contours) > 1 {
		merged := bridgeHoles(contours)
		for _, c := range merged {
			tris = earClip(c, tris)
		}
		return tris
	}

	for _, c := range contours {
		tris = earClip(c, tris)
	}
	return tris
}

// bridgeHoles assigns each hole (winding opposite its container) to the
// outer contour containing it and splices it in through a bridge at the
// hole's rightmost vertex, producing simple contours.
func bridgeHoles(contours []contour) []contour {
	var outers []contour
	var holes []contour
	for _, c := range contours {
		if signedArea(c) >= 0 {
			outers = append(outers, c)
		} else {
			holes = append(holes, c)
		}
	}
	if len(holes) == 0 || len(outers) == 0 {
		return contours
	}

	// Sort holes right-to-left so inner holes bridge before outer ones.
	for i := 1; i < len(holes); i++ {
		for j := i; j > 0 && rightmostX(holes[j]) > rightmostX(holes[j-1]); j-- {
			holes[j], holes[j-1] = holes[j-1], holes[j]
		}
	}

	for _, hole := range holes {
		oi := containingOuter(outers, hole)
		if oi < 0 {
			// A hole with no container fills as its own contour.
			outers = append(outers, reverse(hole))
			continue
		}
		outers[oi] = spliceHole(outers[oi], hole)
	}
	return outers
}

// containingOuter finds the outer contour containing the hole's first
// vertex.
func containingOuter(outers []contour, hole contour) int {
	p := hole[0]
	for i, o := range outers {
		if contourContains(o, p) {
			return i
		}
	}
	return -1
}

// contourContains is an even-odd point test against one contour.
func contourContains(c contour, p Point) bool {
	in := false
	n := len(c)
	for i := 0; i < n; i++ {
		a := c[i]
		b := c[(i+1)%n]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
			if x > p.X {
				in = !in
			}
		}
	}
	return in
}

// spliceHole joins the hole into the outer contour with a zero-width
// bridge from the hole's rightmost vertex to the nearest outer vertex to
// its right.
func spliceHole(outer, hole contour) contour {
	hi := 0
	for i := range hole {
		if hole[i].X > hole[hi].X {
			hi = i
		}
	}
	hp := hole[hi]

	// Nearest outer vertex at or right of the bridge point.
	oi := -1
	bestD := math.Inf(1)
	for i, p := range outer {
		if p.X < hp.X {
			continue
		}
		d := (p.X-hp.X)*(p.X-hp.X) + (p.Y-hp.Y)*(p.Y-hp.Y)
		if d < bestD {
			bestD = d
			oi = i
		}
	}
	if oi < 0 {
		// Fall back to the globally nearest vertex.
		for i, p := range outer {
			d := (p.X-hp.X)*(p.X-hp.X) + (p.Y-hp.Y)*(p.Y-hp.Y)
			if d < bestD {
				bestD = d
				oi = i
			}
		}
	}

	out := make(contour, 0, len(outer)+len(hole)+2)
	out = append(out, outer[:oi+1]...)
	for k := 0; k <= len(hole); k++ {
		out = append(out, hole[(hi+k)%len(hole)])
	}
	out = append(out, outer[oi])
	out = append(out, outer[oi+1:]...)
	return out
}

// earClip triangulates one simple contour, appending to tris.
func earClip(c contour, tris []triangle) []triangle {
	n := len(c)
	if n < 3 {
		return tris
	}

	// Work on an index list, oriented counter-clockwise.
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	if signedArea(c) < 0 {
		for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
			idx[i], idx[j] = idx[j], idx[i]
		}
	}

	guard := 0
	for len(idx) > 3 && guard < n*n {
		guard++
		clipped := false
		for i := 0; i < len(idx); i++ {
			prev := c[idx[(i+len(idx)-1)%len(idx)]]
			cur := c[idx[i]]
			next := c[idx[(i+1)%len(idx)]]

			if (cur.X-prev.X)*(next.Y-prev.Y)-(cur.Y-prev.Y)*(next.X-prev.X) <= 0 {
				continue // reflex
			}
			ear := triangle{a: prev, b: cur, c: next}
			blocked := false
			for _, j := range idx {
				p := c[j]
				if p == prev || p == cur || p == next {
					continue
				}
				if pointInTriangle(p.X, p.Y, ear) {
					blocked = true
					break
				}
			}
			if blocked {
				continue
			}
			tris = append(tris, orient(ear))
			idx = append(idx[:i], idx[i+1:]...)
			clipped = true
			break
		}
		if !clipped {
			break // degenerate remainder
		}
	}
	if len(idx) == 3 {
		tris = append(tris, orient(triangle{a: c[idx[0]], b: c[idx[1]], c: c[idx[2]]}))
	}
	return tris
}

// orient flips a triangle if needed so its edges wind positively.
func orient(t triangle) triangle {
	if cross2(t.a, t.b, t.c.X, t.c.Y) < 0 {
		t.b, t.c = t.c, t.b
	}
	return t
}

// signedArea is positive for counter-clockwise contours in a y-down
// coordinate system's mathematical sense.
func signedArea(c contour) float64 {
	area := 0.0
	n := len(c)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += c[i].X*c[j].Y - c[j].X*c[i].Y
	}
	return area / 2
}

// reverse returns the contour with opposite orientation.
func reverse(c contour) contour {
	out := make(contour, len(c))
	for i := range c {
		out[i] = c[len(c)-1-i]
	}
	return out
}

func rightmostX(c contour) float64 {
	best := math.Inf(-1)
	for _, p := range c {
		if p.X > best {
			best = p.X
		}
	}
	return best
}

func min3f(a, b, c float64) float64 { return math.Min(a, math.Min(b, c)) }
func max3f(a, b, c float64) float64 { return math.Max(a, math.Max(b, c)) }

func popcount16(v uint16) int {
	count := 0
	for v != 0 {
		v &= v - 1
		count++
	}
	return count
}
