package vraster

import "testing"

var (
	testBlack = PackRGBA32(0, 0, 0, 255)
	testWhite = PackRGBA32(255, 255, 255, 255)
)

func newTestRasterizer(t *testing.T, w, h int) *Rasterizer {
	t.Helper()
	r, err := NewRasterizerSize(w, h)
	if err != nil {
		t.Fatal(err)
	}
	r.Clear(testBlack)
	return r
}

func TestDrawPolygonFullCoverSquare(t *testing.T) {
	r := newTestRasterizer(t, 4, 4)
	r.DrawPolygon([]float64{0, 0, 4, 0, 4, 4, 0, 4}, testWhite, FillRuleNonZero, CompOpSourceOver, nil)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if got := r.Framebuffer().Pixel(x, y); got != testWhite {
				t.Errorf("pixel (%d,%d) = %#08x, want white", x, y, uint32(got))
			}
		}
	}
}

func TestDrawPolygonHalfPixelInset(t *testing.T) {
	r := newTestRasterizer(t, 4, 4)
	r.DrawPolygon([]float64{0.5, 0.5, 3.5, 0.5, 3.5, 3.5, 0.5, 3.5}, testWhite, FillRuleNonZero, CompOpSourceOver, nil)

	fb := r.Framebuffer()
	// Corner pixels carry quarter coverage; over opaque black that is a
	// channel value near 0x40.
	for _, c := range [][2]int{{0, 0}, {3, 0}, {0, 3}, {3, 3}} {
		got := fb.Pixel(c[0], c[1]).R()
		if got < 0x38 || got > 0x48 {
			t.Errorf("corner (%d,%d) = %#02x, want near 0x40", c[0], c[1], got)
		}
	}
	// The inner 2x2 is fully covered.
	for _, c := range [][2]int{{1, 1}, {2, 1}, {1, 2}, {2, 2}} {
		if got := fb.Pixel(c[0], c[1]).R(); got < 250 {
			t.Errorf("inner (%d,%d) = %d, want near 255", c[0], c[1], got)
		}
	}
}

func TestDrawPolygonStarFillRules(t *testing.T) {
	star := BuildPath().Pentagram(50, 52, 45).Polygon()

	nonZero := newTestRasterizer(t, 100, 100)
	nonZero.DrawPolygon(star.Vertices, testWhite, FillRuleNonZero, CompOpSourceOver, star.ContourCounts)

	evenOdd := newTestRasterizer(t, 100, 100)
	evenOdd.DrawPolygon(star.Vertices, testWhite, FillRuleEvenOdd, CompOpSourceOver, star.ContourCounts)

	// The inner pentagon around the centroid is double-wound: filled
	// under non-zero, a hole under even-odd.
	if got := nonZero.Framebuffer().Pixel(50, 52).R(); got < 250 {
		t.Errorf("non-zero center = %d, want filled", got)
	}
	if got := evenOdd.Framebuffer().Pixel(50, 52).R(); got > 5 {
		t.Errorf("even-odd center = %d, want hole", got)
	}
	// A star point fills under both rules.
	if got := evenOdd.Framebuffer().Pixel(50, 12).R(); got < 200 {
		t.Errorf("even-odd star point = %d, want filled", got)
	}
}

func TestStrokeSegmentLiteralRectEquivalence(t *testing.T) {
	// The literal contract case: stroking the open segment (0,0)-(10,0)
	// with width 2, butt caps, and miter join produces exactly the
	// rectangle (0,-1)-(10,1). Both renderings clip the y<0 half
	// identically, and the equality is pixel for pixel, not approximate.
	var b PathBuilder
	b.MoveTo(0, 0)
	b.LineTo(10, 0)
	outline := DefaultStroke().WithWidth(2).
		WithCap(LineCapButt).
		WithJoin(LineJoinMiter).
		Outline(b.Polygon())

	stroked := newTestRasterizer(t, 12, 4)
	stroked.DrawPolygon(outline.Vertices, testWhite, FillRuleNonZero, CompOpSourceOver, outline.ContourCounts)

	rect := newTestRasterizer(t, 12, 4)
	rect.DrawPolygon([]float64{0, -1, 10, -1, 10, 1, 0, 1}, testWhite, FillRuleNonZero, CompOpSourceOver, nil)

	// The outline is the same four corners, so the coverage cells and
	// therefore every composited pixel must match exactly.
	for y := 0; y < 4; y++ {
		for x := 0; x < 12; x++ {
			s := stroked.Framebuffer().Pixel(x, y)
			r := rect.Framebuffer().Pixel(x, y)
			if s != r {
				t.Fatalf("pixel (%d,%d): stroke %#08x != rect %#08x", x, y, uint32(s), uint32(r))
			}
		}
	}

	// Sanity on the shape itself: the on-screen half of the stroke spans
	// y 0..1, which is all of row 0, and nothing below row 0 paints.
	if got := stroked.Framebuffer().Pixel(5, 0).R(); got != 0xff {
		t.Errorf("row 0 coverage = %#02x, want full", got)
	}
	if got := stroked.Framebuffer().Pixel(5, 1).R(); got > 5 {
		t.Errorf("row 1 = %d, want untouched", got)
	}
}

func TestStrokeSegmentEqualsRect(t *testing.T) {
	// A width-2 butt-capped stroke of the segment (1,2)-(11,2) is the
	// rectangle (1,1)-(11,3).
	var b PathBuilder
	b.MoveTo(1, 2)
	b.LineTo(11, 2)
	outline := DefaultStroke().WithWidth(2).Outline(b.Polygon())

	stroked := newTestRasterizer(t, 12, 4)
	stroked.DrawPolygon(outline.Vertices, testWhite, FillRuleNonZero, CompOpSourceOver, outline.ContourCounts)

	rect := newTestRasterizer(t, 12, 4)
	rect.DrawPolygon([]float64{1, 1, 11, 1, 11, 3, 1, 3}, testWhite, FillRuleNonZero, CompOpSourceOver, nil)

	for y := 0; y < 4; y++ {
		for x := 0; x < 12; x++ {
			s := stroked.Framebuffer().Pixel(x, y)
			r := rect.Framebuffer().Pixel(x, y)
			if s != r {
				t.Errorf("pixel (%d,%d): stroke %#08x != rect %#08x", x, y, uint32(s), uint32(r))
			}
		}
	}
}

func TestDashedStrokeSegments(t *testing.T) {
	// Pattern [4,4] over a 20-long segment leaves dashes at [0..4],
	// [8..12], [16..20].
	var b PathBuilder
	b.MoveTo(0, 2)
	b.LineTo(20, 2)
	outline := DefaultStroke().WithWidth(2).WithDashPattern(4, 4).Outline(b.Polygon())

	r := newTestRasterizer(t, 20, 4)
	r.DrawPolygon(outline.Vertices, testWhite, FillRuleNonZero, CompOpSourceOver, outline.ContourCounts)

	fb := r.Framebuffer()
	inDash := []int{2, 10, 18}
	inGap := []int{6, 14}
	for _, x := range inDash {
		if got := fb.Pixel(x, 2).R(); got < 250 {
			t.Errorf("dash pixel x=%d: %d, want filled", x, got)
		}
	}
	for _, x := range inGap {
		if got := fb.Pixel(x, 2).R(); got > 5 {
			t.Errorf("gap pixel x=%d: %d, want empty", x, got)
		}
	}
}

func TestImagePatternBilinearAverage(t *testing.T) {
	pat := NewImagePatternPixels(2, 2, []RGBA32{
		PackRGBA32(255, 0, 0, 255), PackRGBA32(0, 255, 0, 255),
		PackRGBA32(0, 0, 255, 255), PackRGBA32(255, 255, 255, 255),
	}).WithFilter(FilterBilinear).WithExtend(ExtendRepeat, ExtendRepeat)

	// Pixel (0,0) samples the center (0.5, 0.5): the unweighted average
	// of the four texels.
	got := pat.Fetch(0, 0)
	wantR := uint8((255 + 0 + 0 + 255) / 4)
	wantG := uint8((0 + 255 + 0 + 255) / 4)
	wantB := uint8((0 + 0 + 255 + 255) / 4)
	if diffU8(got.R(), wantR) > 2 || diffU8(got.G(), wantG) > 2 || diffU8(got.B(), wantB) > 2 {
		t.Errorf("bilinear center = %#08x, want average (%d,%d,%d)", uint32(got), wantR, wantG, wantB)
	}

	// Under repeat, one period to the right fetches the same value.
	if again := pat.Fetch(2, 0); again != got {
		t.Errorf("repeat period: %#08x != %#08x", uint32(again), uint32(got))
	}
}

func TestImagePatternRepeatPeriodicity(t *testing.T) {
	pat := NewImagePatternPixels(3, 2, []RGBA32{
		PackRGBA32(10, 0, 0, 255), PackRGBA32(20, 0, 0, 255), PackRGBA32(30, 0, 0, 255),
		PackRGBA32(40, 0, 0, 255), PackRGBA32(50, 0, 0, 255), PackRGBA32(60, 0, 0, 255),
	}).WithExtend(ExtendRepeat, ExtendRepeat)

	for y := 0; y < 4; y++ {
		for x := 0; x < 6; x++ {
			base := pat.Fetch(x, y)
			if got := pat.Fetch(x+3, y); got != base {
				t.Errorf("fetch(%d+3,%d) = %#08x, want %#08x", x, y, uint32(got), uint32(base))
			}
			if got := pat.Fetch(x, y+2); got != base {
				t.Errorf("fetch(%d,%d+2) = %#08x, want %#08x", x, y, uint32(got), uint32(base))
			}
		}
	}
}

func TestImagePatternPadBorder(t *testing.T) {
	pat := NewImagePatternPixels(2, 1, []RGBA32{
		PackRGBA32(10, 0, 0, 255), PackRGBA32(200, 0, 0, 255),
	})

	// Far past the right/bottom border, pad returns the last pixel.
	if got := pat.Fetch(50, 50); got.R() != 200 {
		t.Errorf("pad far sample = %d, want 200", got.R())
	}
}

func TestDrawPolygonOppositeWindingCancels(t *testing.T) {
	r := newTestRasterizer(t, 8, 8)

	// One draw, two contours tracing the same square with opposite
	// winding: net coverage is zero everywhere.
	vertices := []float64{
		1, 1, 7, 1, 7, 7, 1, 7, // clockwise in screen space
		1, 1, 1, 7, 7, 7, 7, 1, // counter-clockwise
	}
	r.DrawPolygon(vertices, testWhite, FillRuleNonZero, CompOpSourceOver, []int{4, 4})

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if got := r.Framebuffer().Pixel(x, y); got != testBlack {
				t.Errorf("pixel (%d,%d) = %#08x, want untouched background", x, y, uint32(got))
			}
		}
	}
}

func TestClearIdempotent(t *testing.T) {
	r := newTestRasterizer(t, 4, 4)
	c := PackRGBA32(12, 34, 56, 255)
	r.Clear(c)
	first := append([]RGBA32(nil), r.Framebuffer().Pix()...)
	r.Clear(c)
	for i, px := range r.Framebuffer().Pix() {
		if px != first[i] {
			t.Fatalf("pixel %d changed across repeated Clear", i)
		}
	}
}

func TestDrawPolygonDegenerateInputs(t *testing.T) {
	r := newTestRasterizer(t, 4, 4)
	before := append([]RGBA32(nil), r.Framebuffer().Pix()...)

	// Fewer than 3 vertices.
	r.DrawPolygon([]float64{0, 0, 4, 4}, testWhite, FillRuleNonZero, CompOpSourceOver, nil)
	// Entirely outside the raster.
	r.DrawPolygon([]float64{10, 10, 20, 10, 20, 20, 10, 20}, testWhite, FillRuleNonZero, CompOpSourceOver, nil)
	// Strictly horizontal degenerate polygon.
	r.DrawPolygon([]float64{0, 2, 2, 2, 4, 2}, testWhite, FillRuleNonZero, CompOpSourceOver, nil)

	for i, px := range r.Framebuffer().Pix() {
		if px != before[i] {
			t.Fatalf("degenerate input modified pixel %d", i)
		}
	}
}

func TestDrawPolygonMalformedCountsFallback(t *testing.T) {
	r := newTestRasterizer(t, 4, 4)
	// Counts sum to 5, not 4: single-contour fallback still fills.
	r.DrawPolygon([]float64{0, 0, 4, 0, 4, 4, 0, 4}, testWhite, FillRuleNonZero, CompOpSourceOver, []int{3, 2})

	if got := r.Framebuffer().Pixel(2, 2); got != testWhite {
		t.Errorf("fallback fill pixel = %#08x, want white", uint32(got))
	}
}

func TestDrawPolygonSourceCopySemantics(t *testing.T) {
	r := newTestRasterizer(t, 4, 4)
	// A half-transparent red square under source-copy replaces the
	// destination rather than blending with it.
	red := PackRGBA32(255, 0, 0, 128)
	r.DrawPolygon([]float64{0, 0, 4, 0, 4, 4, 0, 4}, red, FillRuleNonZero, CompOpSourceCopy, nil)

	got := r.Framebuffer().Pixel(2, 2)
	if got.A() != 128 || got.R() != 255 {
		t.Errorf("source-copy pixel = %#08x, want %#08x", uint32(got), uint32(red))
	}
}

func TestDrawPolygonFetchedGradient(t *testing.T) {
	r := newTestRasterizer(t, 16, 16)
	g := NewLinearGradientBrush(0, 0, 16, 0).
		AddColorStop(0, Black).
		AddColorStop(1, White)

	r.DrawPolygonFetched([]float64{0, 0, 16, 0, 16, 16, 0, 16}, g, FillRuleNonZero, CompOpSourceOver, nil)

	left := r.Framebuffer().Pixel(1, 8).R()
	right := r.Framebuffer().Pixel(14, 8).R()
	if left >= right {
		t.Errorf("gradient fill not increasing: left %d, right %d", left, right)
	}
}

func TestNewRasterizerSizeInvalid(t *testing.T) {
	if _, err := NewRasterizerSize(0, 10); err == nil {
		t.Error("expected error for zero width")
	}
	if _, err := NewRasterizerSize(10, -1); err == nil {
		t.Error("expected error for negative height")
	}
}

func diffU8(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}
