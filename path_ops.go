package vraster

// Path analytics. Everything here measures the path the way the engines
// see it: curves are flattened through the same builder the rasterizers
// consume, so area, winding, and length agree with what actually fills.

// Area returns the signed area enclosed by the path. Contours are treated
// as closed; in y-down device space a clockwise-on-screen contour has
// positive area.
func (p *Path) Area() float64 {
	poly := p.ToPolygon()
	total := 0.0
	for i := 0; i < poly.NumContours(); i++ {
		pts := poly.ContourPoints(i)
		n := len(pts)
		for j := 0; j < n; j++ {
			k := (j + 1) % n
			total += pts[j].X*pts[k].Y - pts[k].X*pts[j].Y
		}
	}
	return total / 2
}

// Winding returns the signed winding number of the path around pt, using
// the same half-open edge convention as the scanline engines: an edge
// spans [minY, maxY) so a ray through a shared vertex counts one crossing.
func (p *Path) Winding(pt Point) int {
	poly := p.ToPolygon()
	w := 0
	for i := 0; i < poly.NumContours(); i++ {
		pts := poly.ContourPoints(i)
		n := len(pts)
		for j := 0; j < n; j++ {
			a := pts[j]
			b := pts[(j+1)%n]
			if a.Y == b.Y {
				continue
			}
			dir := 1
			if a.Y > b.Y {
				a, b = b, a
				dir = -1
			}
			if pt.Y < a.Y || pt.Y >= b.Y {
				continue
			}
			t := (pt.Y - a.Y) / (b.Y - a.Y)
			if a.X+t*(b.X-a.X) < pt.X {
				w += dir
			}
		}
	}
	return w
}

// Contains reports whether pt is inside the path under the non-zero rule.
func (p *Path) Contains(pt Point) bool {
	return p.Winding(pt) != 0
}

// BoundingBox returns a box containing the path. Curve segments
// contribute their control hulls, so the box is conservative: never
// smaller than the path, possibly slightly larger around curves.
func (p *Path) BoundingBox() Rect {
	first := true
	var bbox Rect

	grow := func(pts ...Point) {
		for _, pt := range pts {
			if first {
				bbox = Rect{Min: pt, Max: pt}
				first = false
				continue
			}
			bbox = expandBBox(bbox, pt)
		}
	}

	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			grow(e.Point)
		case LineTo:
			grow(e.Point)
		case QuadTo:
			grow(e.Control, e.Point)
		case CubicTo:
			grow(e.Control1, e.Control2, e.Point)
		}
	}
	return bbox
}

// Length returns the total arc length of the path's contours, measured on
// the flattened polyline at the given squared flatness tolerance (zero
// means the default). Closed contours include their closing edge.
func (p *Path) Length(toleranceSq float64) float64 {
	if toleranceSq <= 0 {
		toleranceSq = FlattenToleranceSq
	}
	poly := p.ToPolygonTolerance(toleranceSq)

	total := 0.0
	for i := 0; i < poly.NumContours(); i++ {
		pts := poly.ContourPoints(i)
		for j := 1; j < len(pts); j++ {
			total += pts[j].Distance(pts[j-1])
		}
		if poly.Closed[i] && len(pts) > 2 {
			total += pts[0].Distance(pts[len(pts)-1])
		}
	}
	return total
}

// Reversed returns the path with every contour traced in the opposite
// direction, flipping its winding contribution. Curves survive as curves
// with their control points swapped end-for-end.
func (p *Path) Reversed() *Path {
	out := NewPath()
	for _, sp := range p.subpaths() {
		reverseSubpath(sp, out)
	}
	return out
}

// subpath is one MoveTo-delimited run of elements.
type subpath struct {
	start  Point
	elems  []PathElement
	closed bool
}

// subpaths splits the element list at MoveTo/Close boundaries.
func (p *Path) subpaths() []subpath {
	var out []subpath
	var cur *subpath

	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			out = append(out, subpath{start: e.Point})
			cur = &out[len(out)-1]
		case Close:
			if cur != nil {
				cur.closed = true
				cur = nil
			}
		default:
			if cur == nil {
				out = append(out, subpath{})
				cur = &out[len(out)-1]
			}
			cur.elems = append(cur.elems, elem)
		}
	}
	return out
}

// endpoints lists the subpath's on-curve points, starting point first.
func (sp subpath) endpoints() []Point {
	pts := make([]Point, 0, len(sp.elems)+1)
	pts = append(pts, sp.start)
	for _, elem := range sp.elems {
		switch e := elem.(type) {
		case LineTo:
			pts = append(pts, e.Point)
		case QuadTo:
			pts = append(pts, e.Point)
		case CubicTo:
			pts = append(pts, e.Point)
		}
	}
	return pts
}

func reverseSubpath(sp subpath, out *Path) {
	if len(sp.elems) == 0 {
		return
	}
	pts := sp.endpoints()

	out.MoveTo(pts[len(pts)-1].X, pts[len(pts)-1].Y)
	for i := len(sp.elems) - 1; i >= 0; i-- {
		from := pts[i]
		switch e := sp.elems[i].(type) {
		case LineTo:
			out.LineTo(from.X, from.Y)
		case QuadTo:
			out.QuadraticTo(e.Control.X, e.Control.Y, from.X, from.Y)
		case CubicTo:
			out.CubicTo(e.Control2.X, e.Control2.Y, e.Control1.X, e.Control1.Y, from.X, from.Y)
		}
	}
	if sp.closed {
		out.Close()
	}
}

// Flatten returns the path's vertices as a single flat point list at the
// given squared flatness tolerance (zero means the default), discarding
// contour boundaries. Callers that need contours use ToPolygon instead.
func (p *Path) Flatten(toleranceSq float64) []Point {
	if toleranceSq <= 0 {
		toleranceSq = FlattenToleranceSq
	}
	poly := p.ToPolygonTolerance(toleranceSq)

	pts := make([]Point, 0, poly.NumVertices())
	for i := 0; i+1 < len(poly.Vertices); i += 2 {
		pts = append(pts, Point{X: poly.Vertices[i], Y: poly.Vertices[i+1]})
	}
	return pts
}
