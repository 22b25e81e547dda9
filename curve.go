package vraster

import "math"

// Rect is an axis-aligned rectangle with Min at the top-left and Max at
// the bottom-right.
type Rect struct {
	Min, Max Point
}

// NewRect creates a rectangle from two corner points in any order.
func NewRect(p1, p2 Point) Rect {
	return Rect{
		Min: Point{X: math.Min(p1.X, p2.X), Y: math.Min(p1.Y, p2.Y)},
		Max: Point{X: math.Max(p1.X, p2.X), Y: math.Max(p1.Y, p2.Y)},
	}
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// Union returns the smallest rectangle containing both r and other.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		Min: Point{X: math.Min(r.Min.X, other.Min.X), Y: math.Min(r.Min.Y, other.Min.Y)},
		Max: Point{X: math.Max(r.Max.X, other.Max.X), Y: math.Max(r.Max.Y, other.Max.Y)},
	}
}

// Contains reports whether the point lies inside the rectangle, borders
// included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// expandBBox grows a rectangle to include a point.
func expandBBox(bbox Rect, pt Point) Rect {
	if pt.X < bbox.Min.X {
		bbox.Min.X = pt.X
	}
	if pt.Y < bbox.Min.Y {
		bbox.Min.Y = pt.Y
	}
	if pt.X > bbox.Max.X {
		bbox.Max.X = pt.X
	}
	if pt.Y > bbox.Max.Y {
		bbox.Max.Y = pt.Y
	}
	return bbox
}

// QuadBez is a quadratic Bezier segment: endpoints P0 and P2 with control
// point P1. The flattener subdivides these; nothing downstream of the
// builder sees curves.
type QuadBez struct {
	P0, P1, P2 Point
}

// Eval returns the curve point at parameter t in [0, 1] by de Casteljau
// interpolation.
func (q QuadBez) Eval(t float64) Point {
	a := q.P0.Lerp(q.P1, t)
	b := q.P1.Lerp(q.P2, t)
	return a.Lerp(b, t)
}

// Subdivide splits the curve at t = 0.5 into two halves that together
// trace the original exactly.
func (q QuadBez) Subdivide() (QuadBez, QuadBez) {
	a := q.P0.Midpoint(q.P1)
	b := q.P1.Midpoint(q.P2)
	mid := a.Midpoint(b)
	return QuadBez{P0: q.P0, P1: a, P2: mid},
		QuadBez{P0: mid, P1: b, P2: q.P2}
}

// BoundingBox returns the control hull's bounding box. The hull contains
// the curve, so the box is conservative rather than tight.
func (q QuadBez) BoundingBox() Rect {
	return expandBBox(NewRect(q.P0, q.P2), q.P1)
}

// CubicBez is a cubic Bezier segment: endpoints P0 and P3 with control
// points P1 and P2.
type CubicBez struct {
	P0, P1, P2, P3 Point
}

// Eval returns the curve point at parameter t in [0, 1] by de Casteljau
// interpolation.
func (c CubicBez) Eval(t float64) Point {
	a := c.P0.Lerp(c.P1, t)
	b := c.P1.Lerp(c.P2, t)
	d := c.P2.Lerp(c.P3, t)
	ab := a.Lerp(b, t)
	bd := b.Lerp(d, t)
	return ab.Lerp(bd, t)
}

// Subdivide splits the curve at t = 0.5 into two halves that together
// trace the original exactly.
func (c CubicBez) Subdivide() (CubicBez, CubicBez) {
	a := c.P0.Midpoint(c.P1)
	b := c.P1.Midpoint(c.P2)
	d := c.P2.Midpoint(c.P3)
	ab := a.Midpoint(b)
	bd := b.Midpoint(d)
	mid := ab.Midpoint(bd)
	return CubicBez{P0: c.P0, P1: a, P2: ab, P3: mid},
		CubicBez{P0: mid, P1: bd, P2: d, P3: c.P3}
}

// BoundingBox returns the control hull's bounding box (conservative).
func (c CubicBez) BoundingBox() Rect {
	return expandBBox(expandBBox(NewRect(c.P0, c.P3), c.P1), c.P2)
}
