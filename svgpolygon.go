package vraster

// SVGPolygon mirrors the polygon record an SVG front-end produces: the
// flattened vertices with optional contour counts, the fill color with
// opacity already folded into its alpha, the optional stroke, and the fill
// rule flag. The adapter accepts this record unchanged so a parser's
// output round-trips through the core without re-flattening.
type SVGPolygon struct {
	// Vertices holds interleaved device coordinates x0,y0, x1,y1, ...
	Vertices []float64

	// ContourVertexCounts partitions Vertices into contours; nil means a
	// single contour.
	ContourVertexCounts []int

	// Fill is the fill color. A zero-alpha fill paints nothing.
	Fill RGBA32

	// HasFill selects whether the polygon is filled.
	HasFill bool

	// Stroke is the stroke color. Used only when StrokeWidth > 0.
	Stroke RGBA32

	// StrokeWidth is the stroke width in pixels; zero or negative means
	// no stroke.
	StrokeWidth float64

	// EvenOdd selects the even-odd fill rule; otherwise non-zero.
	EvenOdd bool
}

// FillRule returns the record's winding rule.
func (p *SVGPolygon) FillRule() FillRule {
	if p.EvenOdd {
		return FillRuleEvenOdd
	}
	return FillRuleNonZero
}

// Draw paints the polygon into the rasterizer: fill first, then stroke,
// matching painter's-model ordering.
func (p *SVGPolygon) Draw(r *Rasterizer) {
	if p == nil || len(p.Vertices) < 6 {
		return
	}

	if p.HasFill && p.Fill.A() != 0 {
		r.DrawPolygon(p.Vertices, p.Fill, p.FillRule(), CompOpSourceOver, p.ContourVertexCounts)
	}

	if p.StrokeWidth > 0 && p.Stroke.A() != 0 {
		poly := p.polygon()
		outline := DefaultStroke().WithWidth(p.StrokeWidth).Outline(poly)
		if !outline.IsEmpty() {
			r.DrawPolygon(outline.Vertices, p.Stroke, FillRuleNonZero, CompOpSourceOver, outline.ContourCounts)
		}
	}
}

// polygon adapts the record to the path front-end's polygon type. SVG
// subpaths feeding a fill are treated as closed.
func (p *SVGPolygon) polygon() *Polygon {
	poly := &Polygon{}
	counts := p.ContourVertexCounts
	total := len(p.Vertices) / 2
	if counts == nil {
		counts = []int{total}
	} else {
		sum := 0
		for _, c := range counts {
			if c <= 0 {
				sum = -1
				break
			}
			sum += c
		}
		if sum != total {
			counts = []int{total}
		}
	}

	offset := 0
	for _, n := range counts {
		pts := make([]Point, 0, n)
		for i := 0; i < n && (offset+i)*2+1 < len(p.Vertices); i++ {
			pts = append(pts, Point{X: p.Vertices[(offset+i)*2], Y: p.Vertices[(offset+i)*2+1]})
		}
		poly.AppendContour(pts, true)
		offset += n
	}
	return poly
}
