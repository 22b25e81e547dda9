package vraster

import (
	"math"
	"testing"
)

func TestPathAreaRect(t *testing.T) {
	p := NewPath()
	p.Rectangle(0, 0, 10, 5)

	// Rectangle traces clockwise on screen; in y-down space that is
	// positive signed area.
	if got := p.Area(); !approxEq(got, 50, 1e-9) {
		t.Errorf("Area = %v, want 50", got)
	}

	if got := p.Reversed().Area(); !approxEq(got, -50, 1e-9) {
		t.Errorf("reversed Area = %v, want -50", got)
	}
}

func TestPathAreaCircleApproximation(t *testing.T) {
	p := NewPath()
	p.Circle(0, 0, 10)

	// The flattened polygon is inscribed in the circle, so its area runs
	// a few percent short of pi*r^2 at the default tolerance.
	want := math.Pi * 100
	got := p.Area()
	if got > want || (want-got)/want > 0.05 {
		t.Errorf("circle Area = %v, want slightly under %v", got, want)
	}
}

func TestPathWindingAndContains(t *testing.T) {
	p := NewPath()
	p.Rectangle(0, 0, 10, 10)

	if w := p.Winding(Pt(5, 5)); w == 0 {
		t.Error("interior winding should be non-zero")
	}
	if w := p.Winding(Pt(15, 5)); w != 0 {
		t.Errorf("exterior winding = %d, want 0", w)
	}
	if !p.Contains(Pt(5, 5)) || p.Contains(Pt(-1, 5)) {
		t.Error("Contains disagrees with winding")
	}
}

func TestPathWindingDoubleWound(t *testing.T) {
	// Two coincident same-direction rectangles wind twice.
	p := NewPath()
	p.Rectangle(0, 0, 10, 10)
	p.Rectangle(2, 2, 6, 6)

	if w := p.Winding(Pt(5, 5)); w != 2 && w != -2 {
		t.Errorf("nested winding = %d, want +/-2", w)
	}
	if w := p.Winding(Pt(1, 1)); w != 1 && w != -1 {
		t.Errorf("outer-only winding = %d, want +/-1", w)
	}
}

func TestPathWindingSharedVertexCountsOnce(t *testing.T) {
	// A ray through the triangle's side vertex must not double-count the
	// two edges meeting there.
	p := NewPath()
	p.MoveTo(0, 0)
	p.LineTo(10, 5)
	p.LineTo(0, 10)
	p.Close()

	// y=5 passes exactly through the vertex at (10, 5).
	if w := p.Winding(Pt(5, 5)); w != 1 && w != -1 {
		t.Errorf("winding through shared vertex = %d, want +/-1", w)
	}
}

func TestPathBoundingBox(t *testing.T) {
	p := NewPath()
	p.MoveTo(1, 2)
	p.LineTo(9, 2)
	p.QuadraticTo(12, 6, 9, 10)
	p.Close()

	bbox := p.BoundingBox()
	// Conservative: contains all on-curve points, may include the
	// control point.
	if bbox.Min.X > 1 || bbox.Min.Y > 2 || bbox.Max.X < 9 || bbox.Max.Y < 10 {
		t.Errorf("bbox %+v does not cover the path", bbox)
	}
	if bbox.Max.X > 12+1e-9 {
		t.Errorf("bbox wider than the control hull: %+v", bbox)
	}
}

func TestPathLength(t *testing.T) {
	p := NewPath()
	p.Rectangle(0, 0, 10, 5)

	if got := p.Length(0); !approxEq(got, 30, 1e-9) {
		t.Errorf("rect perimeter = %v, want 30", got)
	}

	// An open polyline measures its segments only.
	open := NewPath()
	open.MoveTo(0, 0)
	open.LineTo(3, 4)
	if got := open.Length(0); !approxEq(got, 5, 1e-9) {
		t.Errorf("segment length = %v, want 5", got)
	}
}

func TestPathLengthCircleApproximation(t *testing.T) {
	p := NewPath()
	p.Circle(0, 0, 10)

	want := 2 * math.Pi * 10
	if got := p.Length(0.01); math.Abs(got-want)/want > 0.01 {
		t.Errorf("circumference = %v, want near %v", got, want)
	}
}

func TestPathReversedRoundtrip(t *testing.T) {
	p := NewPath()
	p.MoveTo(0, 0)
	p.LineTo(10, 0)
	p.QuadraticTo(15, 5, 10, 10)
	p.CubicTo(8, 12, 4, 12, 0, 10)
	p.Close()

	rev := p.Reversed()

	// Reversal preserves geometry: same length, negated area.
	if !approxEq(p.Length(0), rev.Length(0), 1e-6) {
		t.Errorf("lengths differ: %v vs %v", p.Length(0), rev.Length(0))
	}
	if !approxEq(p.Area(), -rev.Area(), 1e-6) {
		t.Errorf("areas not negated: %v vs %v", p.Area(), rev.Area())
	}

	// Double reversal restores the original element sequence.
	back := rev.Reversed()
	if len(back.Elements()) != len(p.Elements()) {
		t.Fatalf("double reversal changed element count: %d vs %d",
			len(back.Elements()), len(p.Elements()))
	}
}

func TestPathReversedOpenContour(t *testing.T) {
	p := NewPath()
	p.MoveTo(1, 1)
	p.LineTo(5, 1)
	p.LineTo(5, 5)

	rev := p.Reversed()
	elems := rev.Elements()
	if len(elems) != 3 {
		t.Fatalf("reversed open contour has %d elements", len(elems))
	}
	if mv, ok := elems[0].(MoveTo); !ok || mv.Point != Pt(5, 5) {
		t.Errorf("reversed start = %+v, want MoveTo(5,5)", elems[0])
	}
	if lt, ok := elems[2].(LineTo); !ok || lt.Point != Pt(1, 1) {
		t.Errorf("reversed end = %+v, want LineTo(1,1)", elems[2])
	}
}

func TestPathFlatten(t *testing.T) {
	p := NewPath()
	p.MoveTo(0, 0)
	p.QuadraticTo(5, 10, 10, 0)

	pts := p.Flatten(0)
	if len(pts) < 4 {
		t.Fatalf("curve flattened to %d points", len(pts))
	}
	if pts[0] != Pt(0, 0) || pts[len(pts)-1] != Pt(10, 0) {
		t.Error("flatten lost the endpoints")
	}

	// Coarser tolerance, fewer points.
	coarse := p.Flatten(25)
	if len(coarse) >= len(pts) {
		t.Errorf("coarse tolerance gave %d points, fine gave %d", len(coarse), len(pts))
	}
}

func TestPathEmptyAnalytics(t *testing.T) {
	p := NewPath()
	if p.Area() != 0 || p.Length(0) != 0 {
		t.Error("empty path should measure zero")
	}
	if p.Contains(Pt(0, 0)) {
		t.Error("empty path contains nothing")
	}
}
