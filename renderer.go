package vraster

import "math"

// Renderer is the high-level interface for painting paths into a
// framebuffer target.
type Renderer interface {
	// Fill fills a path with the given paint.
	Fill(path *Path, paint *Paint)

	// Stroke strokes a path with the given paint.
	Stroke(path *Path, paint *Paint)
}

// PathRenderer drives the analytic rasterizer from curved path input: it
// flattens, expands strokes and dashes, resolves the paint into a solid
// color or a per-pixel fetcher, and issues polygon draws.
type PathRenderer struct {
	ras *Rasterizer
}

var _ Renderer = (*PathRenderer)(nil)

// NewPathRenderer creates a renderer painting through ras.
func NewPathRenderer(ras *Rasterizer) *PathRenderer {
	return &PathRenderer{ras: ras}
}

// Rasterizer returns the underlying rasterizer.
func (r *PathRenderer) Rasterizer() *Rasterizer { return r.ras }

// Fill fills a path with the given paint. Solid anti-aliased source-over
// fills of recognized circles and (rounded) rectangles go through the
// closed-form signed-distance evaluation instead of polygon coverage.
func (r *PathRenderer) Fill(path *Path, paint *Paint) {
	if path == nil || paint == nil {
		return
	}

	if sb, ok := paint.Brush.(SolidBrush); ok && paint.Antialias && paint.CompOp == CompOpSourceOver {
		if r.fillShapeSDF(DetectShape(path), sb.Color.Pack32()) {
			return
		}
	}

	r.FillPolygon(path.ToPolygon(), paint)
}

// fillShapeSDF paints a detected shape from its signed distance field,
// reporting false when the shape kind has no closed form here.
func (r *PathRenderer) fillShapeSDF(s DetectedShape, c RGBA32) bool {
	var coverage func(px, py float64) float64
	var x0, y0, x1, y1 float64

	switch s.Kind {
	case ShapeCircle:
		coverage = func(px, py float64) float64 {
			return CircleFillCoverage(px, py, s.CenterX, s.CenterY, s.RadiusX)
		}
		x0, y0 = s.CenterX-s.RadiusX, s.CenterY-s.RadiusX
		x1, y1 = s.CenterX+s.RadiusX, s.CenterY+s.RadiusX
	case ShapeRect, ShapeRRect:
		halfW, halfH := s.Width/2, s.Height/2
		radius := s.CornerRadius
		coverage = func(px, py float64) float64 {
			return RRectFillCoverage(px, py, s.CenterX, s.CenterY, halfW, halfH, radius)
		}
		x0, y0 = s.CenterX-halfW, s.CenterY-halfH
		x1, y1 = s.CenterX+halfW, s.CenterY+halfH
	default:
		return false
	}

	fb := r.ras.Framebuffer()
	minX := maxIntn(int(math.Floor(x0-1)), 0)
	minY := maxIntn(int(math.Floor(y0-1)), 0)
	maxX := minIntn(int(math.Ceil(x1+1)), fb.Width())
	maxY := minIntn(int(math.Ceil(y1+1)), fb.Height())

	for y := minY; y < maxY; y++ {
		py := float64(y) + 0.5
		for x := minX; x < maxX; x++ {
			cov := coverage(float64(x)+0.5, py)
			if cov <= 0 {
				continue
			}
			a := uint8(cov*float64(c.A()) + 0.5)
			if a == 0 {
				continue
			}
			fb.BlendSpan(x, x+1, y, c.WithAlpha(a))
		}
	}
	return true
}

func minIntn(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxIntn(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Stroke strokes a path with the given paint. The stroke outline is
// produced by the stroker (after dash expansion when a dash pattern is
// set) and filled under the non-zero rule, which is what makes
// overlapping offset contours paint exactly once.
func (r *PathRenderer) Stroke(path *Path, paint *Paint) {
	if path == nil || paint == nil {
		return
	}
	outline := paint.Stroke.Outline(path.ToPolygon())
	r.fillWithRule(outline, paint, FillRuleNonZero)
}

// FillPolygon fills already-flattened polygonal geometry with the paint.
func (r *PathRenderer) FillPolygon(poly *Polygon, paint *Paint) {
	r.fillWithRule(poly, paint, paint.FillRule)
}

// StrokePolygon strokes already-flattened polygonal geometry.
func (r *PathRenderer) StrokePolygon(poly *Polygon, paint *Paint) {
	if poly == nil || paint == nil {
		return
	}
	r.fillWithRule(paint.Stroke.Outline(poly), paint, FillRuleNonZero)
}

func (r *PathRenderer) fillWithRule(poly *Polygon, paint *Paint, rule FillRule) {
	if poly == nil || poly.IsEmpty() {
		return
	}

	r.ras.SetAntialias(paint.Antialias)
	defer r.ras.SetAntialias(true)

	fetch, solid := FetcherForPaint(paint)
	if fetch == nil {
		r.ras.DrawPolygon(poly.Vertices, solid, rule, paint.CompOp, poly.ContourCounts)
		return
	}
	r.ras.DrawPolygonFetched(poly.Vertices, fetch, rule, paint.CompOp, poly.ContourCounts)
}
