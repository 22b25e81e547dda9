package raster

import "testing"

func square(x0, y0, x1, y1 float64) []Point {
	return []Point{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
}

func collectRuns(t *testing.T, f *Filler, rule FillRule) []Run {
	t.Helper()
	var runs []Run
	f.Resolve(rule, func(r Run) { runs = append(runs, r) })
	return runs
}

func TestFillerFullCoverSquare(t *testing.T) {
	f := NewFiller(4, 4)
	f.AddPolygon(square(0, 0, 4, 4), nil)

	runs := collectRuns(t, f, NonZero)
	if len(runs) != 4 {
		t.Fatalf("expected 4 runs (one per row), got %d: %+v", len(runs), runs)
	}
	for _, r := range runs {
		if r.X0 != 0 || r.X1 != 4 || r.Alpha != 255 {
			t.Errorf("row %d: expected full-coverage [0,4) alpha 255, got %+v", r.Y, r)
		}
	}
}

func TestFillerPartialCoverBorder(t *testing.T) {
	// A 4x4 target with rect (0.5,0.5)-(3.5,3.5): the half-pixel inset
	// yields corner pixels at alpha 0x40 (0.25 coverage) and the inner 2x2 full.
	f := NewFiller(4, 4)
	f.AddPolygon(square(0.5, 0.5, 3.5, 3.5), nil)

	alpha := map[[2]int]uint8{}
	f.Resolve(NonZero, func(r Run) {
		for x := r.X0; x < r.X1; x++ {
			alpha[[2]int{x, r.Y}] = r.Alpha
		}
	})

	corners := [][2]int{{0, 0}, {3, 0}, {0, 3}, {3, 3}}
	for _, c := range corners {
		a := alpha[c]
		if a < 0x38 || a > 0x48 {
			t.Errorf("corner %v: expected alpha near 0x40, got 0x%02x", c, a)
		}
	}
	inner := [][2]int{{1, 1}, {2, 1}, {1, 2}, {2, 2}}
	for _, c := range inner {
		a := alpha[c]
		if a < 250 {
			t.Errorf("inner pixel %v: expected near-full coverage, got %d", c, a)
		}
	}
}

func TestFillerEvenOddHole(t *testing.T) {
	f := NewFiller(10, 10)
	outer := square(0, 0, 10, 10)
	inner := square(3, 3, 7, 7)
	vertices := append(append([]Point{}, outer...), inner...)
	f.AddPolygon(vertices, []int{4, 4})

	alpha := map[[2]int]uint8{}
	f.Resolve(EvenOdd, func(r Run) {
		for x := r.X0; x < r.X1; x++ {
			alpha[[2]int{x, r.Y}] = r.Alpha
		}
	})

	if a := alpha[[2]int{5, 5}]; a != 0 {
		t.Errorf("even-odd hole center should be uncovered, got alpha %d", a)
	}
	if a := alpha[[2]int{1, 1}]; a != 255 {
		t.Errorf("even-odd outer ring should be covered, got alpha %d", a)
	}
}

func TestFillerNonZeroFillsConcentricSquares(t *testing.T) {
	f := NewFiller(10, 10)
	outer := square(0, 0, 10, 10)
	inner := square(3, 3, 7, 7) // same winding direction as outer -> non-zero fills both
	vertices := append(append([]Point{}, outer...), inner...)
	f.AddPolygon(vertices, []int{4, 4})

	alpha := map[[2]int]uint8{}
	f.Resolve(NonZero, func(r Run) {
		for x := r.X0; x < r.X1; x++ {
			alpha[[2]int{x, r.Y}] = r.Alpha
		}
	})

	if a := alpha[[2]int{5, 5}]; a != 255 {
		t.Errorf("non-zero rule should fill both squares as one region, got alpha %d", a)
	}
}

func TestFillerOutsideBoundsIsNoOp(t *testing.T) {
	f := NewFiller(4, 4)
	f.AddPolygon(square(10, 10, 20, 20), nil)

	runs := collectRuns(t, f, NonZero)
	if len(runs) != 0 {
		t.Errorf("polygon entirely outside bounds should yield no runs, got %+v", runs)
	}
}

func TestFillerMalformedCountsFallsBackToSingleContour(t *testing.T) {
	f := NewFiller(4, 4)
	// Counts don't sum to len(vertices): falls back to one contour of 4.
	f.AddPolygon(square(0, 0, 4, 4), []int{3})

	runs := collectRuns(t, f, NonZero)
	if len(runs) != 4 {
		t.Fatalf("expected fallback single-contour fill, got %d runs", len(runs))
	}
}

func TestFillerClearResetsDirtyRange(t *testing.T) {
	f := NewFiller(4, 4)
	f.AddPolygon(square(0, 0, 4, 4), nil)
	f.Clear()

	if _, _, ok := f.cells.DirtyRows(); ok {
		t.Errorf("expected no dirty rows after Clear")
	}
	for y := 0; y < 4; y++ {
		if _, _, touched := f.cells.RowRange(y); touched {
			t.Errorf("row %d still marked touched after Clear", y)
		}
	}
}

func TestFillerFewerThanThreeVerticesIsNoOp(t *testing.T) {
	f := NewFiller(4, 4)
	f.AddPolygon([]Point{{X: 0, Y: 0}, {X: 1, Y: 1}}, nil)

	if _, _, ok := f.cells.DirtyRows(); ok {
		t.Errorf("degenerate input should leave the cell buffer untouched")
	}
}
