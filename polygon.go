package vraster

// Polygon is flattened polygonal geometry in device coordinates: a flat
// vertex array grouped into contours. This is the input format of the
// polygon-fill contract shared by every rasterization engine.
type Polygon struct {
	// Vertices holds interleaved coordinates x0,y0, x1,y1, ...
	Vertices []float64

	// ContourCounts holds the number of vertices in each contour. The sum
	// of all counts equals len(Vertices)/2.
	ContourCounts []int

	// Closed records, per contour, whether the contour was explicitly
	// closed. Fills treat every contour as closed regardless; the stroker
	// and dasher distinguish open from closed contours.
	Closed []bool
}

// NumContours returns the number of contours.
func (p *Polygon) NumContours() int {
	return len(p.ContourCounts)
}

// NumVertices returns the total number of vertices across all contours.
func (p *Polygon) NumVertices() int {
	return len(p.Vertices) / 2
}

// IsEmpty reports whether the polygon has no contours.
func (p *Polygon) IsEmpty() bool {
	return len(p.ContourCounts) == 0
}

// Contour returns the interleaved vertex slice of contour i. The slice
// aliases the polygon's storage.
func (p *Polygon) Contour(i int) []float64 {
	offset := 0
	for j := 0; j < i; j++ {
		offset += p.ContourCounts[j] * 2
	}
	return p.Vertices[offset : offset+p.ContourCounts[i]*2]
}

// ContourPoints returns the vertices of contour i as points.
func (p *Polygon) ContourPoints(i int) []Point {
	c := p.Contour(i)
	pts := make([]Point, len(c)/2)
	for j := range pts {
		pts[j] = Point{X: c[j*2], Y: c[j*2+1]}
	}
	return pts
}

// AppendContour appends a contour built from points. Contours with fewer
// than 2 points are dropped.
func (p *Polygon) AppendContour(pts []Point, closed bool) {
	if len(pts) < 2 {
		return
	}
	for _, pt := range pts {
		p.Vertices = append(p.Vertices, pt.X, pt.Y)
	}
	p.ContourCounts = append(p.ContourCounts, len(pts))
	p.Closed = append(p.Closed, closed)
}

// Append appends all contours of other to p.
func (p *Polygon) Append(other *Polygon) {
	for i := 0; i < other.NumContours(); i++ {
		p.AppendContour(other.ContourPoints(i), other.Closed[i])
	}
}

// BoundingBox returns the axis-aligned bounding box of all vertices, or a
// zero Rect for an empty polygon.
func (p *Polygon) BoundingBox() Rect {
	if len(p.Vertices) < 2 {
		return Rect{}
	}
	r := Rect{
		Min: Point{X: p.Vertices[0], Y: p.Vertices[1]},
		Max: Point{X: p.Vertices[0], Y: p.Vertices[1]},
	}
	for i := 2; i+1 < len(p.Vertices); i += 2 {
		r = expandBBox(r, Point{X: p.Vertices[i], Y: p.Vertices[i+1]})
	}
	return r
}

// Transform returns a copy of the polygon with every vertex transformed.
func (p *Polygon) Transform(m Matrix) *Polygon {
	out := &Polygon{
		Vertices:      make([]float64, len(p.Vertices)),
		ContourCounts: append([]int(nil), p.ContourCounts...),
		Closed:        append([]bool(nil), p.Closed...),
	}
	for i := 0; i+1 < len(p.Vertices); i += 2 {
		pt := m.TransformPoint(Point{X: p.Vertices[i], Y: p.Vertices[i+1]})
		out.Vertices[i] = pt.X
		out.Vertices[i+1] = pt.Y
	}
	return out
}
