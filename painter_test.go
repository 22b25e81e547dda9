package vraster

import "testing"

func TestPainterFromPaintResolution(t *testing.T) {
	t.Run("solid brush takes the span fast path", func(t *testing.T) {
		paint := NewPaint()
		paint.SetBrush(Solid(Red))
		sp, ok := PainterFromPaint(paint).(*SolidPainter)
		if !ok || sp.Color != Red {
			t.Fatalf("got %T", PainterFromPaint(paint))
		}
	})

	t.Run("solid pattern takes the span fast path", func(t *testing.T) {
		paint := &Paint{Pattern: NewSolidPattern(Blue)}
		sp, ok := PainterFromPaint(paint).(*SolidPainter)
		if !ok || sp.Color != Blue {
			t.Fatalf("got %T", PainterFromPaint(paint))
		}
	})

	t.Run("custom brush samples per pixel", func(t *testing.T) {
		paint := NewPaint()
		paint.SetBrush(NewCustomBrush(func(_, _ float64) RGBA { return Green }))
		if _, ok := PainterFromPaint(paint).(*FuncPainter); !ok {
			t.Fatalf("got %T", PainterFromPaint(paint))
		}
	})

	t.Run("function pattern samples per pixel", func(t *testing.T) {
		paint := &Paint{Pattern: &testPattern{colorFn: func(_, _ float64) RGBA { return Green }}}
		fp, ok := PainterFromPaint(paint).(*FuncPainter)
		if !ok {
			t.Fatalf("got %T", PainterFromPaint(paint))
		}
		if fp.Fn(0, 0) != Green {
			t.Error("pattern function not wired through")
		}
	})

	t.Run("empty paint defaults to black", func(t *testing.T) {
		sp, ok := PainterFromPaint(&Paint{}).(*SolidPainter)
		if !ok || sp.Color != Black {
			t.Fatalf("got %T", PainterFromPaint(&Paint{}))
		}
	})
}

func TestSolidPainterSpan(t *testing.T) {
	sp := &SolidPainter{Color: Red}
	dest := make([]RGBA, 5)
	sp.PaintSpan(dest, 10, 20, 5)
	for i, c := range dest {
		if c != Red {
			t.Fatalf("dest[%d] = %v", i, c)
		}
	}

	// A span longer than the buffer stops at the buffer.
	short := make([]RGBA, 2)
	sp.PaintSpan(short, 0, 0, 10)
	if short[1] != Red {
		t.Error("short buffer not filled")
	}
}

func TestFuncPainterSamplesCenters(t *testing.T) {
	// The function sees pixel centers: x+0.5 keeps even/odd parity of
	// the pixel index.
	fp := &FuncPainter{Fn: func(x, _ float64) RGBA {
		if int(x)%2 == 0 {
			return Red
		}
		return Blue
	}}

	dest := make([]RGBA, 4)
	fp.PaintSpan(dest, 0, 0, 4)
	want := []RGBA{Red, Blue, Red, Blue}
	for i := range want {
		if dest[i] != want[i] {
			t.Errorf("dest[%d] = %v, want %v", i, dest[i], want[i])
		}
	}
}

func TestFetcherForPaintWrapsColorAt(t *testing.T) {
	paint := &Paint{Pattern: &testPattern{colorFn: func(x, y float64) RGBA {
		// Encode the sample position to verify center convention.
		if x == 3.5 && y == 2.5 {
			return White
		}
		return Black
	}}}

	fetch, _ := FetcherForPaint(paint)
	if fetch == nil {
		t.Fatal("pattern should wrap into a fetcher")
	}
	if got := fetch.Fetch(3, 2); got != White.Pack32() {
		t.Errorf("fetch(3,2) = %#08x, want the center-sampled white", uint32(got))
	}
}

func TestFetcherForPaintPrefersFetcherImpls(t *testing.T) {
	// Gradient brushes implement Fetch directly; no wrapper in between.
	g := NewLinearGradientBrush(0, 0, 10, 0).AddColorStop(0, Black).AddColorStop(1, White)
	paint := NewPaint()
	paint.SetBrush(g)

	fetch, _ := FetcherForPaint(paint)
	if fetch != Fetcher(g) {
		t.Error("gradient should be used as its own fetcher")
	}
}
