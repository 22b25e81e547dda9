package vraster

import "testing"

var allEngines = []Engine{
	EngineAnalytic,
	EngineACDR,
	EngineDBSR,
	EngineEPLAA,
	EngineQCS,
	EngineSSAA,
	EngineSCPAED,
	EngineTess,
	EngineWavelet,
}

func TestEngineString(t *testing.T) {
	seen := map[string]bool{}
	for _, e := range allEngines {
		name := e.String()
		if name == "" || name == "Unknown" {
			t.Errorf("engine %d has no name", e)
		}
		if seen[name] {
			t.Errorf("duplicate engine name %q", name)
		}
		seen[name] = true
	}
}

func TestEngineInvalidDimensions(t *testing.T) {
	for _, e := range allEngines {
		if _, err := NewEngine(e, 0, 4); err == nil {
			t.Errorf("%v: expected error for zero width", e)
		}
	}
}

// TestEngineSquareAgreement checks the shared contract: away from edges,
// every engine agrees with the analytic reference on a filled square.
func TestEngineSquareAgreement(t *testing.T) {
	square := []float64{3, 3, 13, 3, 13, 13, 3, 13}
	white := PackRGBA32(255, 255, 255, 255)

	for _, e := range allEngines {
		t.Run(e.String(), func(t *testing.T) {
			f, err := NewEngine(e, 16, 16)
			if err != nil {
				t.Fatal(err)
			}
			f.Clear(PackRGBA32(0, 0, 0, 255))
			f.DrawPolygon(square, white, FillRuleNonZero, nil)

			// Interior pixels at least two pixels from any edge.
			for y := 5; y < 11; y++ {
				for x := 5; x < 11; x++ {
					if got := f.Pixel(x, y).R(); got < 250 {
						t.Errorf("interior (%d,%d) = %d, want near 255", x, y, got)
					}
				}
			}
			// Exterior pixels at least two pixels outside.
			for _, p := range [][2]int{{0, 0}, {15, 0}, {0, 15}, {15, 15}, {8, 0}, {0, 8}} {
				if got := f.Pixel(p[0], p[1]).R(); got > 5 {
					t.Errorf("exterior (%d,%d) = %d, want near 0", p[0], p[1], got)
				}
			}
		})
	}
}

// TestEngineEvenOddHole checks the even-odd rule across the family with a
// nested-squares ring.
func TestEngineEvenOddHole(t *testing.T) {
	ring := []float64{
		2, 2, 18, 2, 18, 18, 2, 18, // outer
		6, 6, 14, 6, 14, 14, 6, 14, // inner, same winding
	}
	counts := []int{4, 4}
	white := PackRGBA32(255, 255, 255, 255)

	for _, e := range allEngines {
		t.Run(e.String(), func(t *testing.T) {
			f, err := NewEngine(e, 20, 20)
			if err != nil {
				t.Fatal(err)
			}
			f.Clear(PackRGBA32(0, 0, 0, 255))
			f.DrawPolygon(ring, white, FillRuleEvenOdd, counts)

			if got := f.Pixel(10, 10).R(); got > 5 {
				t.Errorf("hole center = %d, want empty", got)
			}
			if got := f.Pixel(4, 10).R(); got < 250 {
				t.Errorf("ring band = %d, want filled", got)
			}
		})
	}
}

// TestEngineMalformedCountsFallback checks the shared malformed-counts
// policy.
func TestEngineMalformedCountsFallback(t *testing.T) {
	square := []float64{2, 2, 14, 2, 14, 14, 2, 14}
	white := PackRGBA32(255, 255, 255, 255)

	for _, e := range allEngines {
		t.Run(e.String(), func(t *testing.T) {
			f, err := NewEngine(e, 16, 16)
			if err != nil {
				t.Fatal(err)
			}
			f.Clear(PackRGBA32(0, 0, 0, 255))
			f.DrawPolygon(square, white, FillRuleNonZero, []int{3, 3}) // sums to 6, not 4

			if got := f.Pixel(8, 8).R(); got < 250 {
				t.Errorf("fallback fill = %d, want filled", got)
			}
		})
	}
}

func TestEngineOptions(t *testing.T) {
	f, err := NewEngine(EngineSSAA, 16, 16, WithSamples(8), WithRotatedGrid())
	if err != nil {
		t.Fatal(err)
	}
	f.Clear(0)
	f.DrawPolygon([]float64{4, 4, 12, 4, 12, 12, 4, 12}, PackRGBA32(255, 255, 255, 255), FillRuleNonZero, nil)
	if got := f.Pixel(8, 8).R(); got < 250 {
		t.Errorf("SSAA with options interior = %d", got)
	}

	if _, err := NewEngine(EngineACDR, 16, 16, WithVerticalTaps(4)); err != nil {
		t.Fatal(err)
	}
	if _, err := NewEngine(EngineSCPAED, 16, 16, WithJitter()); err != nil {
		t.Fatal(err)
	}
}

func TestRegisterEngine(t *testing.T) {
	RegisterEngine("test-engine", func(w, h int) (PolygonFiller, error) {
		return NewEngine(EngineAnalytic, w, h)
	})

	f, ok, err := NewNamedEngine("test-engine", 8, 8)
	if err != nil || !ok || f == nil {
		t.Fatalf("NewNamedEngine: ok=%v err=%v", ok, err)
	}

	if _, ok, _ := NewNamedEngine("missing", 8, 8); ok {
		t.Error("unregistered name should report ok=false")
	}
}

func TestEngineSize(t *testing.T) {
	f, err := NewEngine(EngineQCS, 7, 9)
	if err != nil {
		t.Fatal(err)
	}
	if w, h := f.Size(); w != 7 || h != 9 {
		t.Errorf("Size() = (%d,%d), want (7,9)", w, h)
	}
}
