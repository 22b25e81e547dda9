package vraster

import "testing"

func TestCustomBrushColorAt(t *testing.T) {
	b := NewCustomBrush(func(x, y float64) RGBA {
		if x > 10 {
			return Red
		}
		return Blue
	})

	if b.ColorAt(20, 0) != Red || b.ColorAt(0, 0) != Blue {
		t.Error("custom function not consulted")
	}
}

func TestCustomBrushNilFunc(t *testing.T) {
	var b CustomBrush
	if b.ColorAt(0, 0) != Transparent {
		t.Error("nil function should yield transparent")
	}
}

func TestCustomBrushWithName(t *testing.T) {
	b := NewCustomBrush(func(_, _ float64) RGBA { return Red }).WithName("redline")
	if b.Name != "redline" {
		t.Errorf("name = %q", b.Name)
	}
	if b.ColorAt(0, 0) != Red {
		t.Error("WithName dropped the function")
	}
}

func TestHorizontalGradientBrush(t *testing.T) {
	g := HorizontalGradient(Black, White, 0, 100)

	if !colorsMatch(g.ColorAt(0, 50), Black, 1e-9) {
		t.Error("left end should be the first color")
	}
	if !colorsMatch(g.ColorAt(100, -3), White, 1e-9) {
		t.Error("right end should be the second color")
	}
	if !colorsMatch(g.ColorAt(50, 0), RGBA{R: 0.5, G: 0.5, B: 0.5, A: 1}, 1e-9) {
		t.Error("midpoint should interpolate")
	}
	// The range clamps rather than extrapolating.
	if !colorsMatch(g.ColorAt(-50, 0), Black, 1e-9) {
		t.Error("left of range should clamp")
	}
}

func TestVerticalGradientBrush(t *testing.T) {
	g := VerticalGradient(Red, Blue, 0, 10)
	if !colorsMatch(g.ColorAt(42, 0), Red, 1e-9) {
		t.Error("top should be the first color")
	}
	if !colorsMatch(g.ColorAt(-42, 10), Blue, 1e-9) {
		t.Error("bottom should be the second color")
	}
}

func TestLinearGradientCustomBrushDiagonal(t *testing.T) {
	g := LinearGradient(Black, White, 0, 0, 10, 10)

	// Perpendicular offset does not change the projection onto the axis.
	a := g.ColorAt(5, 5)
	b := g.ColorAt(0, 10)
	if !colorsMatch(a, b, 1e-9) {
		t.Errorf("projection mismatch: %v vs %v", a, b)
	}
	if !colorsMatch(a, RGBA{R: 0.5, G: 0.5, B: 0.5, A: 1}, 1e-9) {
		t.Errorf("diagonal midpoint = %v", a)
	}
}

func TestRadialGradientCustomBrush(t *testing.T) {
	g := RadialGradient(White, Black, 50, 50, 10)

	if !colorsMatch(g.ColorAt(50, 50), White, 1e-9) {
		t.Error("center should be the inner color")
	}
	if !colorsMatch(g.ColorAt(80, 50), Black, 1e-9) {
		t.Error("past the radius should be the outer color")
	}
	mid := g.ColorAt(55, 50)
	if !colorsMatch(mid, RGBA{R: 0.5, G: 0.5, B: 0.5, A: 1}, 1e-9) {
		t.Errorf("half radius = %v", mid)
	}
}

func TestCheckerboardBrush(t *testing.T) {
	g := Checkerboard(Black, White, 10)

	first := g.ColorAt(5, 5)
	right := g.ColorAt(15, 5)
	diag := g.ColorAt(15, 15)
	if first == right {
		t.Error("adjacent cells should alternate")
	}
	if first != diag {
		t.Error("diagonal cells should match")
	}
}

func TestStripesBrush(t *testing.T) {
	// Vertical stripes (angle 0) alternate along X and are constant
	// along Y.
	g := Stripes(Black, White, 5, 0)

	if g.ColorAt(2, 0) != g.ColorAt(2, 100) {
		t.Error("stripes should be constant along their length")
	}
	if g.ColorAt(2, 0) == g.ColorAt(7, 0) {
		t.Error("neighboring stripes should alternate")
	}
}

func TestCustomBrushAsPaintSource(t *testing.T) {
	// A custom brush reaches the rasterizer through the fetcher wrapper.
	paint := NewPaint()
	paint.SetBrush(NewCustomBrush(func(_, _ float64) RGBA { return Yellow }))

	fetch, _ := FetcherForPaint(paint)
	if fetch == nil {
		t.Fatal("custom brush should resolve to a fetcher")
	}
	got := fetch.Fetch(3, 4)
	if got != Yellow.Pack32() {
		t.Errorf("fetched = %#08x, want yellow", uint32(got))
	}
}
