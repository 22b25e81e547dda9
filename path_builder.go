package vraster

import "math"

// FlattenToleranceSq is the default squared flatness tolerance in square
// pixels: a control point within sqrt(0.25) = 0.5px of its chord is flat
// enough.
const FlattenToleranceSq = 0.25

// maxFlattenDepth bounds curve subdivision so pathological control points
// (near-infinite curvature, NaN) cannot recurse unbounded.
const maxFlattenDepth = 16

// PathBuilder accumulates polygonal contours directly in device
// coordinates. Curves are flattened as they are added, so the finished
// Polygon is ready for any rasterization engine, the stroker, or the
// dasher.
//
// Exact duplicates of the last point are discarded on insertion, and a
// contour that ends up with fewer than 2 points is dropped. All methods
// return the builder for chaining.
type PathBuilder struct {
	// ToleranceSq overrides the squared flatness tolerance for curve
	// flattening. Zero means FlattenToleranceSq.
	ToleranceSq float64

	poly    Polygon
	contour []Point
	closed  bool
	start   Point
	current Point
	active  bool
}

// BuildPath starts a new path builder.
func BuildPath() *PathBuilder {
	return &PathBuilder{}
}

func (b *PathBuilder) toleranceSq() float64 {
	if b.ToleranceSq > 0 {
		return b.ToleranceSq
	}
	return FlattenToleranceSq
}

// flush terminates the active contour, dropping it if degenerate.
func (b *PathBuilder) flush() {
	if b.active {
		b.poly.AppendContour(b.contour, b.closed)
	}
	b.contour = nil
	b.closed = false
	b.active = false
}

// MoveTo starts a new contour at (x, y).
func (b *PathBuilder) MoveTo(x, y float64) *PathBuilder {
	b.flush()
	b.active = true
	b.start = Point{X: x, Y: y}
	b.current = b.start
	b.contour = append(b.contour, b.start)
	return b
}

// LineTo appends a straight segment to (x, y). Exact duplicates of the
// last point are discarded. A LineTo with no preceding MoveTo starts a
// contour at (x, y).
func (b *PathBuilder) LineTo(x, y float64) *PathBuilder {
	if !b.active {
		return b.MoveTo(x, y)
	}
	pt := Point{X: x, Y: y}
	if pt == b.current {
		return b
	}
	b.current = pt
	b.contour = append(b.contour, pt)
	return b
}

// QuadTo appends a quadratic Bezier curve to (x, y) with control point
// (cx, cy), flattened adaptively into line segments.
func (b *PathBuilder) QuadTo(cx, cy, x, y float64) *PathBuilder {
	if !b.active {
		b.MoveTo(b.current.X, b.current.Y)
	}
	q := QuadBez{P0: b.current, P1: Point{X: cx, Y: cy}, P2: Point{X: x, Y: y}}
	b.flattenQuad(q, 0)
	return b
}

// CubicTo appends a cubic Bezier curve to (x, y) with control points
// (c1x, c1y) and (c2x, c2y), flattened adaptively into line segments.
func (b *PathBuilder) CubicTo(c1x, c1y, c2x, c2y, x, y float64) *PathBuilder {
	if !b.active {
		b.MoveTo(b.current.X, b.current.Y)
	}
	c := CubicBez{
		P0: b.current,
		P1: Point{X: c1x, Y: c1y},
		P2: Point{X: c2x, Y: c2y},
		P3: Point{X: x, Y: y},
	}
	b.flattenCubic(c, 0)
	return b
}

// Close marks the current contour closed and terminates it. If fewer than
// 2 points were emitted since MoveTo, the contour is dropped.
func (b *PathBuilder) Close() *PathBuilder {
	if !b.active {
		return b
	}
	// Drop a trailing vertex that duplicates the start; the closing edge
	// is implied by the closed flag.
	if len(b.contour) > 1 && b.contour[len(b.contour)-1] == b.start {
		b.contour = b.contour[:len(b.contour)-1]
	}
	b.closed = true
	b.flush()
	b.current = b.start
	return b
}

// Polygon terminates any pending open contour and returns the accumulated
// polygonal geometry. The builder can keep accumulating afterwards.
func (b *PathBuilder) Polygon() *Polygon {
	b.flush()
	out := b.poly
	return &out
}

// Reset discards all accumulated geometry.
func (b *PathBuilder) Reset() *PathBuilder {
	b.poly = Polygon{}
	b.contour = nil
	b.closed = false
	b.active = false
	b.start = Point{}
	b.current = Point{}
	return b
}

// flattenQuad subdivides while the control point's squared distance from
// the chord exceeds tolerance and the depth cap is not reached.
func (b *PathBuilder) flattenQuad(q QuadBez, depth int) {
	if depth >= maxFlattenDepth || quadFlatnessSq(q) <= b.toleranceSq() {
		b.LineTo(q.P2.X, q.P2.Y)
		return
	}
	left, right := q.Subdivide()
	b.flattenQuad(left, depth+1)
	b.flattenQuad(right, depth+1)
}

// flattenCubic subdivides while either control point's squared distance
// from the chord exceeds tolerance and the depth cap is not reached.
func (b *PathBuilder) flattenCubic(c CubicBez, depth int) {
	if depth >= maxFlattenDepth || cubicFlatnessSq(c) <= b.toleranceSq() {
		b.LineTo(c.P3.X, c.P3.Y)
		return
	}
	left, right := c.Subdivide()
	b.flattenCubic(left, depth+1)
	b.flattenCubic(right, depth+1)
}

// quadFlatnessSq is the squared perpendicular distance from the control
// point to the chord.
func quadFlatnessSq(q QuadBez) float64 {
	return distToSegmentSq(q.P1, q.P0, q.P2)
}

// cubicFlatnessSq is the max of the two control points' squared distances
// from the chord.
func cubicFlatnessSq(c CubicBez) float64 {
	d1 := distToSegmentSq(c.P1, c.P0, c.P3)
	d2 := distToSegmentSq(c.P2, c.P0, c.P3)
	return math.Max(d1, d2)
}

// distToSegmentSq returns the squared distance from p to the segment a-b.
// A degenerate segment measures the distance to a.
func distToSegmentSq(p, a, b Point) float64 {
	d := b.Sub(a)
	lenSq := d.LengthSquared()
	if lenSq == 0 {
		return p.Sub(a).LengthSquared()
	}
	t := p.Sub(a).Dot(d) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	proj := a.Add(d.Mul(t))
	return p.Sub(proj).LengthSquared()
}

// Rect adds a closed rectangle contour.
func (b *PathBuilder) Rect(x, y, w, h float64) *PathBuilder {
	b.MoveTo(x, y)
	b.LineTo(x+w, y)
	b.LineTo(x+w, y+h)
	b.LineTo(x, y+h)
	b.Close()
	return b
}

// RoundRect adds a rectangle contour with rounded corners.
func (b *PathBuilder) RoundRect(x, y, w, h, r float64) *PathBuilder {
	r = math.Min(r, math.Min(w, h)/2)
	k := 0.5522847498307936 * r

	b.MoveTo(x+r, y)
	b.LineTo(x+w-r, y)
	b.CubicTo(x+w-r+k, y, x+w, y+r-k, x+w, y+r)
	b.LineTo(x+w, y+h-r)
	b.CubicTo(x+w, y+h-r+k, x+w-r+k, y+h, x+w-r, y+h)
	b.LineTo(x+r, y+h)
	b.CubicTo(x+r-k, y+h, x, y+h-r+k, x, y+h-r)
	b.LineTo(x, y+r)
	b.CubicTo(x, y+r-k, x+r-k, y, x+r, y)
	b.Close()
	return b
}

// Circle adds a circle contour approximated with cubic Beziers.
func (b *PathBuilder) Circle(cx, cy, r float64) *PathBuilder {
	return b.Ellipse(cx, cy, r, r)
}

// Ellipse adds an ellipse contour approximated with cubic Beziers.
func (b *PathBuilder) Ellipse(cx, cy, rx, ry float64) *PathBuilder {
	kx := 0.5522847498307936 * rx
	ky := 0.5522847498307936 * ry

	b.MoveTo(cx+rx, cy)
	b.CubicTo(cx+rx, cy+ky, cx+kx, cy+ry, cx, cy+ry)
	b.CubicTo(cx-kx, cy+ry, cx-rx, cy+ky, cx-rx, cy)
	b.CubicTo(cx-rx, cy-ky, cx-kx, cy-ry, cx, cy-ry)
	b.CubicTo(cx+kx, cy-ry, cx+rx, cy-ky, cx+rx, cy)
	b.Close()
	return b
}

// RegularPolygon adds a regular n-gon contour centered at (cx, cy).
func (b *PathBuilder) RegularPolygon(cx, cy, radius float64, sides int) *PathBuilder {
	if sides < 3 {
		return b
	}

	angleStep := 2 * math.Pi / float64(sides)
	startAngle := -math.Pi / 2

	for i := 0; i < sides; i++ {
		angle := startAngle + float64(i)*angleStep
		x := cx + radius*math.Cos(angle)
		y := cy + radius*math.Sin(angle)
		if i == 0 {
			b.MoveTo(x, y)
		} else {
			b.LineTo(x, y)
		}
	}
	b.Close()
	return b
}

// Star adds a star contour alternating between outer and inner radius.
// The alternating radii give a simple (non-self-intersecting) concave
// outline; Pentagram builds the self-intersecting variant.
func (b *PathBuilder) Star(cx, cy, outerRadius, innerRadius float64, points int) *PathBuilder {
	if points < 3 {
		return b
	}

	angleStep := math.Pi / float64(points)
	startAngle := -math.Pi / 2

	for i := 0; i < points*2; i++ {
		angle := startAngle + float64(i)*angleStep
		r := outerRadius
		if i%2 == 1 {
			r = innerRadius
		}
		x := cx + r*math.Cos(angle)
		y := cy + r*math.Sin(angle)
		if i == 0 {
			b.MoveTo(x, y)
		} else {
			b.LineTo(x, y)
		}
	}
	b.Close()
	return b
}

// Pentagram adds a five-point star traced edge-to-edge (vertex skipping),
// which self-intersects: non-zero fill covers the inner pentagon, even-odd
// leaves it as a hole.
func (b *PathBuilder) Pentagram(cx, cy, radius float64) *PathBuilder {
	const n = 5
	startAngle := -math.Pi / 2
	for i := 0; i < n; i++ {
		// Visit every second vertex of the pentagon.
		angle := startAngle + float64(i*2%n)*2*math.Pi/n
		x := cx + radius*math.Cos(angle)
		y := cy + radius*math.Sin(angle)
		if i == 0 {
			b.MoveTo(x, y)
		} else {
			b.LineTo(x, y)
		}
	}
	b.Close()
	return b
}
