package vraster

import "testing"

// testPattern is a function-backed Pattern used across the paint tests.
type testPattern struct {
	colorFn func(x, y float64) RGBA
}

func (p *testPattern) ColorAt(x, y float64) RGBA {
	return p.colorFn(x, y)
}

func colorsMatch(a, b RGBA, eps float64) bool {
	return approxEq(a.R, b.R, eps) && approxEq(a.G, b.G, eps) &&
		approxEq(a.B, b.B, eps) && approxEq(a.A, b.A, eps)
}

func TestSolidBrushConstructors(t *testing.T) {
	cases := []struct {
		name  string
		brush SolidBrush
		want  RGBA
	}{
		{"Solid", Solid(Red), Red},
		{"SolidRGB", SolidRGB(0, 1, 0), Green},
		{"SolidRGBA", SolidRGBA(0, 0, 1, 0.5), RGBA{B: 1, A: 0.5}},
		{"SolidHex", SolidHex("#FF0000"), Red},
		{"SolidHex short", SolidHex("F00"), Red},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if !colorsMatch(c.brush.Color, c.want, 1e-9) {
				t.Errorf("color = %v, want %v", c.brush.Color, c.want)
			}
		})
	}
}

func TestSolidBrushColorAtIgnoresPosition(t *testing.T) {
	b := Solid(Magenta)
	if b.ColorAt(0, 0) != b.ColorAt(1000, -42) {
		t.Error("solid brush should be position independent")
	}
}

func TestSolidBrushAlphaHelpers(t *testing.T) {
	b := Solid(Red).WithAlpha(0.25)
	if !approxEq(b.Color.A, 0.25, 1e-12) || b.Color.R != 1 {
		t.Errorf("WithAlpha = %v", b.Color)
	}
	if b.Opaque().Color.A != 1 {
		t.Error("Opaque should restore full alpha")
	}
	if b.Transparent().Color.A != 0 {
		t.Error("Transparent should zero alpha")
	}
}

func TestSolidBrushLerp(t *testing.T) {
	mid := Solid(Black).Lerp(Solid(White), 0.5)
	if !colorsMatch(mid.Color, RGBA{R: 0.5, G: 0.5, B: 0.5, A: 1}, 1e-9) {
		t.Errorf("lerp midpoint = %v", mid.Color)
	}
}

func TestBrushInterfaceConformance(t *testing.T) {
	var _ Brush = SolidBrush{}
	var _ Brush = CustomBrush{}
	var _ Pattern = SolidBrush{}

	// A brush plugged into a Paint is what FetcherForPaint resolves.
	paint := NewPaint()
	paint.SetBrush(Solid(Cyan))
	fetch, solid := FetcherForPaint(paint)
	if fetch != nil {
		t.Error("solid brush should resolve to the solid fast path")
	}
	if solid != Cyan.Pack32() {
		t.Errorf("solid fetch color = %#08x", uint32(solid))
	}
}
