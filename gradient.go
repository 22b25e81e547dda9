package vraster

import (
	"math"
	"sort"
)

// ExtendMode defines how gradients extend beyond their defined bounds.
type ExtendMode int

const (
	// ExtendPad extends edge colors beyond bounds (default behavior).
	ExtendPad ExtendMode = iota
	// ExtendRepeat repeats the gradient pattern.
	ExtendRepeat
	// ExtendReflect mirrors the gradient pattern.
	ExtendReflect
)

// ColorStop represents a color at a specific position in a gradient.
type ColorStop struct {
	Offset float64 // Position in gradient, 0.0 to 1.0
	Color  RGBA    // Color at this position
}

// gradientLUTSize is the length of the color lookup table every gradient
// resolves through.
const gradientLUTSize = 256

// gradientLUT is a precomputed color ramp. Entry i holds the gradient
// color at t = i/255 in packed straight 8-bit RGBA.
type gradientLUT [gradientLUTSize]RGBA32

// buildGradientLUT fills a LUT from color stops by piecewise-linear
// interpolation in 8-bit straight RGBA. Before the first stop and after
// the last, the boundary stop's color is used. An empty stop list yields a
// fully transparent ramp.
func buildGradientLUT(stops []ColorStop) *gradientLUT {
	var lut gradientLUT
	if len(stops) == 0 {
		return &lut
	}

	sorted := sortStops(stops)

	seg := 0
	for i := 0; i < gradientLUTSize; i++ {
		t := float64(i) / (gradientLUTSize - 1)

		for seg+1 < len(sorted) && sorted[seg+1].Offset < t {
			seg++
		}

		switch {
		case t <= sorted[0].Offset:
			lut[i] = sorted[0].Color.Pack32()
		case t >= sorted[len(sorted)-1].Offset:
			lut[i] = sorted[len(sorted)-1].Color.Pack32()
		default:
			s0 := sorted[seg]
			s1 := sorted[seg+1]
			if s1.Offset == s0.Offset {
				lut[i] = s1.Color.Pack32()
				continue
			}
			local := (t - s0.Offset) / (s1.Offset - s0.Offset)
			lut[i] = lerpPacked(s0.Color.Pack32(), s1.Color.Pack32(), local)
		}
	}
	return &lut
}

// lerpPacked interpolates two packed colors channel-wise in 8-bit space.
func lerpPacked(c0, c1 RGBA32, t float64) RGBA32 {
	lerp8 := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
	}
	return PackRGBA32(
		lerp8(c0.R(), c1.R()),
		lerp8(c0.G(), c1.G()),
		lerp8(c0.B(), c1.B()),
		lerp8(c0.A(), c1.A()),
	)
}

// lookup maps a gradient parameter through the extend mode and indexes the
// LUT at round(t*255).
func (l *gradientLUT) lookup(t float64, mode ExtendMode) RGBA32 {
	t = applyExtendMode(t, mode)
	idx := int(t*(gradientLUTSize-1) + 0.5)
	if idx < 0 {
		idx = 0
	} else if idx > gradientLUTSize-1 {
		idx = gradientLUTSize - 1
	}
	return l[idx]
}

// sortStops sorts color stops by offset without modifying the original.
func sortStops(stops []ColorStop) []ColorStop {
	if len(stops) == 0 {
		return stops
	}

	sorted := make([]ColorStop, len(stops))
	copy(sorted, stops)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})

	return sorted
}

// applyExtendMode applies the extend mode to normalize t to [0, 1].
func applyExtendMode(t float64, mode ExtendMode) float64 {
	switch mode {
	case ExtendRepeat:
		t -= math.Floor(t)
		if t < 0 {
			t++
		}
	case ExtendReflect:
		t = math.Abs(t)
		t = math.Mod(t, 2)
		if t > 1 {
			t = 2 - t
		}
	default: // ExtendPad
		t = clamp01(t)
	}
	return t
}

// clamp01 clamps a value to [0, 1] range.
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// colorAtOffset returns the interpolated color at a given offset, in the
// same 8-bit straight space the LUT uses, so the float access path and the
// per-pixel fetch path agree.
func colorAtOffset(stops []ColorStop, t float64, mode ExtendMode) RGBA {
	if len(stops) == 0 {
		return Transparent
	}
	if len(stops) == 1 {
		return stops[0].Color
	}

	sorted := sortStops(stops)
	t = applyExtendMode(t, mode)

	idx := sort.Search(len(sorted), func(i int) bool {
		return sorted[i].Offset >= t
	})

	if idx == 0 {
		return sorted[0].Color
	}
	if idx >= len(sorted) {
		return sorted[len(sorted)-1].Color
	}

	stop1 := sorted[idx-1]
	stop2 := sorted[idx]

	if stop2.Offset == stop1.Offset {
		return stop1.Color
	}

	localT := (t - stop1.Offset) / (stop2.Offset - stop1.Offset)
	return lerpPacked(stop1.Color.Pack32(), stop2.Color.Pack32(), localT).Unpack()
}

// firstStopColor returns the lowest-offset stop's color or Transparent for
// an empty stop list.
func firstStopColor(stops []ColorStop) RGBA {
	if len(stops) == 0 {
		return Transparent
	}
	sorted := sortStops(stops)
	return sorted[0].Color
}
