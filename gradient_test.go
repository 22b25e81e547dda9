package vraster

import (
	"math"
	"testing"
)

// Interface conformance.
var (
	_ Brush   = (*LinearGradientBrush)(nil)
	_ Brush   = (*RadialGradientBrush)(nil)
	_ Brush   = (*ConicGradientBrush)(nil)
	_ Pattern = (*LinearGradientBrush)(nil)
	_ Pattern = (*RadialGradientBrush)(nil)
	_ Pattern = (*ConicGradientBrush)(nil)
	_ Fetcher = (*LinearGradientBrush)(nil)
	_ Fetcher = (*RadialGradientBrush)(nil)
	_ Fetcher = (*ConicGradientBrush)(nil)
)

func gradColorNear(t *testing.T, got, want RGBA, tolerance float64, msg string) {
	t.Helper()
	if math.Abs(got.R-want.R) > tolerance ||
		math.Abs(got.G-want.G) > tolerance ||
		math.Abs(got.B-want.B) > tolerance ||
		math.Abs(got.A-want.A) > tolerance {
		t.Errorf("%s: got %v, want %v", msg, got, want)
	}
}

// --- Extend mode ---

func TestApplyExtendMode(t *testing.T) {
	tests := []struct {
		name string
		t    float64
		mode ExtendMode
		want float64
	}{
		{"pad below", -0.5, ExtendPad, 0},
		{"pad above", 1.5, ExtendPad, 1},
		{"pad inside", 0.25, ExtendPad, 0.25},
		{"repeat wraps", 1.25, ExtendRepeat, 0.25},
		{"repeat negative", -0.25, ExtendRepeat, 0.75},
		{"reflect forward", 0.25, ExtendReflect, 0.25},
		{"reflect mirrored", 1.25, ExtendReflect, 0.75},
		{"reflect second period", 2.25, ExtendReflect, 0.25},
		{"reflect negative", -0.25, ExtendReflect, 0.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := applyExtendMode(tt.t, tt.mode)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("applyExtendMode(%v, %v) = %v, want %v", tt.t, tt.mode, got, tt.want)
			}
		})
	}
}

// --- LUT ---

func TestGradientLUTBoundaryColors(t *testing.T) {
	// Stops that do not reach 0 or 1: boundary entries take the nearest
	// stop's color.
	lut := buildGradientLUT([]ColorStop{
		{Offset: 0.25, Color: Red},
		{Offset: 0.75, Color: Blue},
	})
	if lut[0] != Red.Pack32() {
		t.Errorf("lut[0] = %#08x, want red", uint32(lut[0]))
	}
	if lut[255] != Blue.Pack32() {
		t.Errorf("lut[255] = %#08x, want blue", uint32(lut[255]))
	}
}

func TestGradientLUTMidpoint(t *testing.T) {
	lut := buildGradientLUT([]ColorStop{
		{Offset: 0, Color: Black},
		{Offset: 1, Color: White},
	})
	mid := lut[128].Unpack()
	gradColorNear(t, mid, RGBA{R: 0.5, G: 0.5, B: 0.5, A: 1}, 0.01, "lut midpoint")
}

func TestGradientLUTUnsortedStops(t *testing.T) {
	lut := buildGradientLUT([]ColorStop{
		{Offset: 1, Color: White},
		{Offset: 0, Color: Black},
	})
	if lut[0] != Black.Pack32() {
		t.Error("unsorted stops: lut[0] should be black")
	}
	if lut[255] != White.Pack32() {
		t.Error("unsorted stops: lut[255] should be white")
	}
}

func TestGradientLUTEmptyStops(t *testing.T) {
	lut := buildGradientLUT(nil)
	if lut[0] != 0 || lut[255] != 0 {
		t.Error("empty stops should produce a transparent ramp")
	}
}

// --- LinearGradientBrush ---

func TestLinearGradientBrush_New(t *testing.T) {
	g := NewLinearGradientBrush(0, 0, 100, 0)
	if g.Start.X != 0 || g.End.X != 100 {
		t.Error("endpoints not stored")
	}
	if g.Extend != ExtendPad {
		t.Error("default extend should be pad")
	}
}

func TestLinearGradientBrush_ColorAt(t *testing.T) {
	g := NewLinearGradientBrush(0, 0, 100, 0).
		AddColorStop(0, Black).
		AddColorStop(1, White)

	gradColorNear(t, g.ColorAt(0, 50), Black, 0.01, "start")
	gradColorNear(t, g.ColorAt(100, 50), White, 0.01, "end")
	gradColorNear(t, g.ColorAt(50, 50), RGBA{R: 0.5, G: 0.5, B: 0.5, A: 1}, 0.01, "middle")
	// Perpendicular offset does not change the projection.
	gradColorNear(t, g.ColorAt(50, -200), RGBA{R: 0.5, G: 0.5, B: 0.5, A: 1}, 0.01, "perpendicular")
}

func TestLinearGradientBrush_DegenerateReturnsFirstStop(t *testing.T) {
	// Coincident endpoints: the first stop's color everywhere.
	g := NewLinearGradientBrush(50, 50, 50, 50).
		AddColorStop(0, Red).
		AddColorStop(1, Blue)

	for _, p := range [][2]float64{{0, 0}, {50, 50}, {200, -10}} {
		gradColorNear(t, g.ColorAt(p[0], p[1]), Red, 0.01, "degenerate linear")
	}
}

func TestLinearGradientBrush_FetchMatchesColorAt(t *testing.T) {
	g := NewLinearGradientBrush(0, 0, 64, 64).
		AddColorStop(0, Red).
		AddColorStop(1, Blue)

	for _, p := range [][2]int{{0, 0}, {10, 3}, {32, 32}, {63, 63}} {
		fetched := g.Fetch(p[0], p[1]).Unpack()
		at := g.ColorAt(float64(p[0])+0.5, float64(p[1])+0.5)
		gradColorNear(t, fetched, at, 0.01, "fetch vs colorAt")
	}
}

func TestLinearGradientBrush_Repeat(t *testing.T) {
	g := NewLinearGradientBrush(0, 0, 10, 0).
		AddColorStop(0, Black).
		AddColorStop(1, White).
		SetExtend(ExtendRepeat)

	a := g.ColorAt(2, 0)
	b := g.ColorAt(12, 0)
	gradColorNear(t, a, b, 0.01, "repeat period")
}

func TestLinearGradientBrush_Reflect(t *testing.T) {
	g := NewLinearGradientBrush(0, 0, 10, 0).
		AddColorStop(0, Black).
		AddColorStop(1, White).
		SetExtend(ExtendReflect)

	a := g.ColorAt(2, 0)
	b := g.ColorAt(18, 0) // t = 1.8 reflects to 0.2
	gradColorNear(t, a, b, 0.01, "reflect fold")
}

// --- RadialGradientBrush ---

func TestRadialGradientBrush_Simple(t *testing.T) {
	g := NewRadialGradientBrush(50, 50, 0, 50).
		AddColorStop(0, White).
		AddColorStop(1, Black)

	gradColorNear(t, g.ColorAt(50, 50), White, 0.02, "center")
	gradColorNear(t, g.ColorAt(50, 1), Black, 0.02, "rim")
	mid := g.ColorAt(75, 50) // distance 25 of radius 50
	gradColorNear(t, mid, RGBA{R: 0.5, G: 0.5, B: 0.5, A: 1}, 0.02, "half radius")
}

func TestRadialGradientBrush_StartRadius(t *testing.T) {
	g := NewRadialGradientBrush(50, 50, 10, 50).
		AddColorStop(0, White).
		AddColorStop(1, Black)

	// Inside the start circle pads to the first stop.
	gradColorNear(t, g.ColorAt(55, 50), White, 0.02, "inside start radius")
	// Halfway between the radii.
	gradColorNear(t, g.ColorAt(80, 50), RGBA{R: 0.5, G: 0.5, B: 0.5, A: 1}, 0.03, "between radii")
}

func TestRadialGradientBrush_Focal(t *testing.T) {
	g := NewRadialGradientBrush(50, 50, 0, 40).
		SetFocus(30, 50).
		AddColorStop(0, White).
		AddColorStop(1, Black)

	gradColorNear(t, g.ColorAt(30, 50), White, 0.02, "focus")
	// The end circle's rim reaches the last stop.
	gradColorNear(t, g.ColorAt(90, 50), Black, 0.02, "rim through focus axis")
}

func TestRadialGradientBrush_DegenerateRadii(t *testing.T) {
	// Equal radii with coincident centers leave no gradient direction;
	// the near-focal nudge plus the linear fallback keep it defined.
	g := NewRadialGradientBrush(50, 50, 25, 25).
		AddColorStop(0, Red).
		AddColorStop(1, Blue)

	c := g.ColorAt(50, 50)
	if math.IsNaN(c.R) || math.IsNaN(c.A) {
		t.Error("degenerate radial produced NaN")
	}
}

func TestRadialGradientBrush_FetchMatchesColorAt(t *testing.T) {
	g := NewRadialGradientBrush(32, 32, 0, 30).
		AddColorStop(0, White).
		AddColorStop(1, Black)

	for _, p := range [][2]int{{32, 32}, {40, 32}, {10, 50}} {
		fetched := g.Fetch(p[0], p[1]).Unpack()
		at := g.ColorAt(float64(p[0])+0.5, float64(p[1])+0.5)
		gradColorNear(t, fetched, at, 0.01, "radial fetch vs colorAt")
	}
}

// --- ConicGradientBrush ---

func TestConicGradientBrush_New(t *testing.T) {
	g := NewConicGradientBrush(50, 50, 0)
	if g.EndAngle != 2*math.Pi {
		t.Errorf("default sweep = %v, want full turn", g.EndAngle-g.StartAngle)
	}
}

func TestConicGradientBrush_Quadrants(t *testing.T) {
	g := NewConicGradientBrush(50, 50, 0).
		AddColorStop(0, Black).
		AddColorStop(1, White)

	// Along +X the angle is 0.
	gradColorNear(t, g.ColorAt(80, 50), Black, 0.02, "angle 0")
	// Along +Y (screen-down) the angle is pi/2, a quarter turn.
	gradColorNear(t, g.ColorAt(50, 80), RGBA{R: 0.25, G: 0.25, B: 0.25, A: 1}, 0.02, "quarter turn")
	// Along -X the angle is pi, half turn.
	gradColorNear(t, g.ColorAt(20, 50), RGBA{R: 0.5, G: 0.5, B: 0.5, A: 1}, 0.02, "half turn")
}

func TestConicGradientBrush_AtCenter(t *testing.T) {
	g := NewConicGradientBrush(50, 50, 0).
		AddColorStop(0, Red).
		AddColorStop(1, Blue)

	gradColorNear(t, g.ColorAt(50, 50), Red, 0.01, "center falls back to first stop")
}

func TestConicGradientBrush_StartAngleOffset(t *testing.T) {
	g := NewConicGradientBrush(50, 50, math.Pi/2).
		AddColorStop(0, Black).
		AddColorStop(1, White)

	// The sweep now begins along +Y.
	gradColorNear(t, g.ColorAt(50, 80), Black, 0.02, "rotated start")
}

func TestConicGradientBrush_NegativeSweep(t *testing.T) {
	g := NewConicGradientBrush(50, 50, 0).
		SetEndAngle(-2 * math.Pi).
		AddColorStop(0, Black).
		AddColorStop(1, White)

	// Counter-direction sweep: +Y is three quarters along a negative
	// sweep from 0 (angle +pi/2 wraps to -3pi/2).
	gradColorNear(t, g.ColorAt(50, 80), RGBA{R: 0.75, G: 0.75, B: 0.75, A: 1}, 0.02, "negative sweep")
}

func TestConicGradientBrush_EmptyStops(t *testing.T) {
	g := NewConicGradientBrush(50, 50, 0)
	gradColorNear(t, g.ColorAt(80, 50), Transparent, 0.001, "no stops")
}

// --- shared helpers ---

func TestColorAtOffsetCoincidentStops(t *testing.T) {
	stops := []ColorStop{
		{Offset: 0.5, Color: Red},
		{Offset: 0.5, Color: Blue},
		{Offset: 1, Color: White},
	}
	c := colorAtOffset(stops, 0.5, ExtendPad)
	if math.IsNaN(c.R) {
		t.Error("coincident stops produced NaN")
	}
}

func TestFirstStopColorSorts(t *testing.T) {
	stops := []ColorStop{
		{Offset: 0.9, Color: Blue},
		{Offset: 0.1, Color: Red},
	}
	gradColorNear(t, firstStopColor(stops), Red, 0.001, "first stop by offset")
}

// --- benchmarks ---

func BenchmarkLinearGradientBrush_Fetch(b *testing.B) {
	g := NewLinearGradientBrush(0, 0, 256, 256).
		AddColorStop(0, Red).
		AddColorStop(1, Blue)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = g.Fetch(i%256, (i/256)%256)
	}
}

func BenchmarkRadialGradientBrush_Fetch(b *testing.B) {
	g := NewRadialGradientBrush(128, 128, 0, 128).
		AddColorStop(0, Red).
		AddColorStop(1, Blue)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = g.Fetch(i%256, (i/256)%256)
	}
}

func BenchmarkConicGradientBrush_Fetch(b *testing.B) {
	g := NewConicGradientBrush(128, 128, 0).
		AddColorStop(0, Red).
		AddColorStop(1, Blue)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = g.Fetch(i%256, (i/256)%256)
	}
}
