package vraster

import "testing"

func TestPolygonAppendContour(t *testing.T) {
	var p Polygon
	p.AppendContour([]Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}}, true)
	p.AppendContour([]Point{{X: 9, Y: 9}}, true) // dropped: fewer than 2 points
	p.AppendContour([]Point{{X: 1, Y: 1}, {X: 2, Y: 2}}, false)

	if p.NumContours() != 2 {
		t.Fatalf("got %d contours, want 2", p.NumContours())
	}
	if p.NumVertices() != 5 {
		t.Errorf("got %d vertices, want 5", p.NumVertices())
	}
	if !p.Closed[0] || p.Closed[1] {
		t.Error("closed flags wrong")
	}
}

func TestPolygonContourAccess(t *testing.T) {
	var p Polygon
	p.AppendContour([]Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}}, true)
	p.AppendContour([]Point{{X: 1, Y: 1}, {X: 2, Y: 2}}, false)

	c1 := p.Contour(1)
	if len(c1) != 4 || c1[0] != 1 || c1[3] != 2 {
		t.Errorf("Contour(1) = %v", c1)
	}
	pts := p.ContourPoints(0)
	if len(pts) != 3 || pts[2] != (Point{X: 4, Y: 4}) {
		t.Errorf("ContourPoints(0) = %v", pts)
	}
}

func TestPolygonBoundingBox(t *testing.T) {
	var p Polygon
	p.AppendContour([]Point{{X: -2, Y: 1}, {X: 5, Y: 3}, {X: 0, Y: 7}}, true)

	bb := p.BoundingBox()
	if bb.Min.X != -2 || bb.Min.Y != 1 || bb.Max.X != 5 || bb.Max.Y != 7 {
		t.Errorf("bounding box = %+v", bb)
	}
}

func TestPolygonTransform(t *testing.T) {
	var p Polygon
	p.AppendContour([]Point{{X: 1, Y: 2}, {X: 3, Y: 4}}, false)

	moved := p.Transform(Translate(10, 20))
	if moved.Vertices[0] != 11 || moved.Vertices[1] != 22 {
		t.Errorf("transformed vertex = (%v, %v)", moved.Vertices[0], moved.Vertices[1])
	}
	// Original untouched.
	if p.Vertices[0] != 1 {
		t.Error("Transform modified the source polygon")
	}
}

func TestPolygonAppend(t *testing.T) {
	var a, b Polygon
	a.AppendContour([]Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}, true)
	b.AppendContour([]Point{{X: 5, Y: 5}, {X: 6, Y: 5}}, false)

	a.Append(&b)
	if a.NumContours() != 2 {
		t.Fatalf("got %d contours after Append", a.NumContours())
	}
	if a.Closed[1] {
		t.Error("appended contour should stay open")
	}
}

func TestPathToPolygon(t *testing.T) {
	p := NewPath()
	p.MoveTo(0, 0)
	p.LineTo(10, 0)
	p.QuadraticTo(15, 5, 10, 10)
	p.Close()

	poly := p.ToPolygon()
	if poly.NumContours() != 1 {
		t.Fatalf("got %d contours", poly.NumContours())
	}
	if !poly.Closed[0] {
		t.Error("closed path should yield closed contour")
	}
	if poly.ContourCounts[0] < 4 {
		t.Errorf("curve should flatten into multiple points, got %d", poly.ContourCounts[0])
	}
}
