package vraster

import "math"

// ShapeKind identifies geometric primitives recognized in a path, which
// the renderer can fill through the closed-form signed-distance path
// instead of general polygon coverage.
type ShapeKind int

const (
	// ShapeUnknown indicates the path matched no primitive.
	ShapeUnknown ShapeKind = iota

	// ShapeCircle indicates a circular path.
	ShapeCircle

	// ShapeEllipse indicates an elliptical path.
	ShapeEllipse

	// ShapeRect indicates an axis-aligned rectangular path.
	ShapeRect

	// ShapeRRect indicates a rounded rectangle path.
	ShapeRRect
)

// DetectedShape holds the parameters of a recognized primitive. Kind says
// which fields are meaningful.
type DetectedShape struct {
	Kind         ShapeKind
	CenterX      float64 // Center X coordinate.
	CenterY      float64 // Center Y coordinate.
	RadiusX      float64 // X radius. For circle: RadiusX == RadiusY.
	RadiusY      float64 // Y radius. For circle: RadiusX == RadiusY.
	Width        float64 // Total width for rect/rrect.
	Height       float64 // Total height for rect/rrect.
	CornerRadius float64 // Corner radius for rrect only.
}

// kappa is the cubic control-point distance of the standard four-arc
// circle approximation: 4/3 * (sqrt(2) - 1).
const kappa = 0.5522847498307936

// shapeDetectTolerance is the coordinate slack allowed when matching a
// path against a primitive's construction.
const shapeDetectTolerance = 1e-3

// near reports two coordinates within the detection tolerance.
func near(a, b float64) bool {
	return math.Abs(a-b) < shapeDetectTolerance
}

// nearPt reports a point within tolerance of (x, y).
func nearPt(p Point, x, y float64) bool {
	return near(p.X, x) && near(p.Y, y)
}

// DetectShape matches a path against the primitives this package's shape
// helpers construct. A path that deviates from those constructions (even
// one tracing the same outline) reports ShapeUnknown and takes the
// general fill path instead.
func DetectShape(path *Path) DetectedShape {
	if path == nil {
		return DetectedShape{Kind: ShapeUnknown}
	}

	elems := path.Elements()
	switch {
	case len(elems) == 6:
		// MoveTo + 4 cubic quadrant arcs + Close: circle or ellipse.
		if s, ok := detectEllipse(elems); ok {
			return s
		}
	case len(elems) == 5:
		// MoveTo + 3 LineTo + Close: rectangle.
		if s, ok := detectRect(elems); ok {
			return s
		}
	case len(elems) == 10:
		// MoveTo + alternating LineTo/arc per corner + Close.
		if s, ok := detectRRect(elems); ok {
			return s
		}
	}
	return DetectedShape{Kind: ShapeUnknown}
}

// detectEllipse matches the four-quadrant cubic construction emitted by
// Path.Circle and Path.Ellipse: start at the rightmost point, sweep
// through bottom, left, and top, with kappa-scaled control points.
func detectEllipse(elems []PathElement) (DetectedShape, bool) {
	move, ok := elems[0].(MoveTo)
	if !ok {
		return DetectedShape{}, false
	}
	var arcs [4]CubicTo
	for i := range arcs {
		arcs[i], ok = elems[i+1].(CubicTo)
		if !ok {
			return DetectedShape{}, false
		}
	}
	if _, ok := elems[5].(Close); !ok {
		return DetectedShape{}, false
	}

	// The last arc must return to the start.
	if !nearPt(arcs[3].Point, move.Point.X, move.Point.Y) {
		return DetectedShape{}, false
	}

	// Opposite on-curve points must agree on the center.
	cx := (move.Point.X + arcs[1].Point.X) / 2
	cy := (move.Point.Y + arcs[1].Point.Y) / 2
	if !near((arcs[0].Point.X+arcs[2].Point.X)/2, cx) ||
		!near((arcs[0].Point.Y+arcs[2].Point.Y)/2, cy) {
		return DetectedShape{}, false
	}

	rx := math.Abs(move.Point.X - cx)
	ry := math.Abs(arcs[0].Point.Y - cy)
	if rx < shapeDetectTolerance || ry < shapeDetectTolerance {
		return DetectedShape{}, false
	}

	// Each quadrant's control points sit kappa radii along the sweep.
	kx := rx * kappa
	ky := ry * kappa
	expected := [4][2][2]float64{
		{{cx + rx, cy + ky}, {cx + kx, cy + ry}}, // right to bottom
		{{cx - kx, cy + ry}, {cx - rx, cy + ky}}, // bottom to left
		{{cx - rx, cy - ky}, {cx - kx, cy - ry}}, // left to top
		{{cx + kx, cy - ry}, {cx + rx, cy - ky}}, // top to right
	}
	for i, arc := range arcs {
		if !nearPt(arc.Control1, expected[i][0][0], expected[i][0][1]) ||
			!nearPt(arc.Control2, expected[i][1][0], expected[i][1][1]) {
			return DetectedShape{}, false
		}
	}

	if near(rx, ry) {
		r := (rx + ry) / 2
		return DetectedShape{Kind: ShapeCircle, CenterX: cx, CenterY: cy, RadiusX: r, RadiusY: r}, true
	}
	return DetectedShape{Kind: ShapeEllipse, CenterX: cx, CenterY: cy, RadiusX: rx, RadiusY: ry}, true
}

// detectRect matches a MoveTo + 3 LineTo + Close loop whose edges are all
// axis-aligned.
func detectRect(elems []PathElement) (DetectedShape, bool) {
	move, ok := elems[0].(MoveTo)
	if !ok {
		return DetectedShape{}, false
	}
	corners := [4]Point{move.Point}
	for i := 1; i <= 3; i++ {
		lt, ok := elems[i].(LineTo)
		if !ok {
			return DetectedShape{}, false
		}
		corners[i] = lt.Point
	}
	if _, ok := elems[4].(Close); !ok {
		return DetectedShape{}, false
	}

	// Every edge, including the closing one, runs horizontal or vertical.
	for i := range corners {
		j := (i + 1) % 4
		if !near(corners[i].X, corners[j].X) && !near(corners[i].Y, corners[j].Y) {
			return DetectedShape{}, false
		}
	}

	bbox := NewRect(corners[0], corners[2])
	for _, c := range corners {
		bbox = expandBBox(bbox, c)
	}
	w := bbox.Width()
	h := bbox.Height()
	if w < shapeDetectTolerance || h < shapeDetectTolerance {
		return DetectedShape{}, false
	}

	return DetectedShape{
		Kind:    ShapeRect,
		CenterX: (bbox.Min.X + bbox.Max.X) / 2,
		CenterY: (bbox.Min.Y + bbox.Max.Y) / 2,
		Width:   w,
		Height:  h,
	}, true
}

// detectRRect matches the rounded rectangle emitted by
// Path.RoundedRectangle: a MoveTo on the top edge, then per corner a
// LineTo along the edge and one cubic quarter arc, then Close.
func detectRRect(elems []PathElement) (DetectedShape, bool) {
	move, ok := elems[0].(MoveTo)
	if !ok {
		return DetectedShape{}, false
	}

	var edges [4]Point  // LineTo endpoints, one per side
	var arcs [4]CubicTo // corner arcs
	for i := 0; i < 4; i++ {
		lt, ok := elems[1+i*2].(LineTo)
		if !ok {
			return DetectedShape{}, false
		}
		edges[i] = lt.Point
		arc, ok := elems[2+i*2].(CubicTo)
		if !ok {
			return DetectedShape{}, false
		}
		arcs[i] = arc
	}
	if _, ok := elems[9].(Close); !ok {
		return DetectedShape{}, false
	}

	// Side coordinates come from the straight runs: the top edge fixes
	// topY, each corner arc's endpoint starts the next side.
	topY := move.Point.Y
	rightX := arcs[0].Point.X
	bottomY := arcs[1].Point.Y
	leftX := arcs[2].Point.X
	if !near(edges[0].Y, topY) || !near(edges[1].X, rightX) ||
		!near(edges[2].Y, bottomY) || !near(edges[3].X, leftX) {
		return DetectedShape{}, false
	}

	w := rightX - leftX
	h := bottomY - topY
	if w < shapeDetectTolerance || h < shapeDetectTolerance {
		return DetectedShape{}, false
	}

	// The corner radius must agree at every arc's entry and exit.
	r := move.Point.X - leftX
	if r < 0 ||
		!near(rightX-edges[0].X, r) ||
		!near(arcs[0].Point.Y-topY, r) ||
		!near(bottomY-edges[1].Y, r) ||
		!near(edges[2].X-leftX, r) ||
		!near(bottomY-arcs[2].Point.Y, r) ||
		!near(edges[3].Y-topY, r) {
		return DetectedShape{}, false
	}

	return DetectedShape{
		Kind:         ShapeRRect,
		CenterX:      (leftX + rightX) / 2,
		CenterY:      (topY + bottomY) / 2,
		Width:        w,
		Height:       h,
		CornerRadius: r,
	}, true
}
