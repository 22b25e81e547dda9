package image

import "math"

// Affine is a 2D affine transform in row-major 2x3 form:
//
//	x' = a*x + b*y + c
//	y' = d*x + e*y + f
type Affine struct {
	a, b, c float64
	d, e, f float64
}

// NewAffine builds a transform from its six coefficients, row-major.
func NewAffine(a, b, c, d, e, f float64) Affine {
	return Affine{a: a, b: b, c: c, d: d, e: e, f: f}
}

// Identity returns the identity transform.
func Identity() Affine {
	return Affine{a: 1, e: 1}
}

// Translate returns a translation by (tx, ty).
func Translate(tx, ty float64) Affine {
	return Affine{a: 1, c: tx, e: 1, f: ty}
}

// Scale returns a scale by (sx, sy).
func Scale(sx, sy float64) Affine {
	return Affine{a: sx, e: sy}
}

// Rotate returns a rotation by angle radians.
func Rotate(angle float64) Affine {
	sin, cos := math.Sincos(angle)
	return Affine{a: cos, b: -sin, d: sin, e: cos}
}

// Multiply composes two transforms; the receiver applies second.
func (t Affine) Multiply(o Affine) Affine {
	return Affine{
		a: t.a*o.a + t.b*o.d,
		b: t.a*o.b + t.b*o.e,
		c: t.a*o.c + t.b*o.f + t.c,
		d: t.d*o.a + t.e*o.d,
		e: t.d*o.b + t.e*o.e,
		f: t.d*o.c + t.e*o.f + t.f,
	}
}

// Invert returns the inverse transform and whether it exists.
func (t Affine) Invert() (Affine, bool) {
	det := t.a*t.e - t.b*t.d
	if math.Abs(det) < 1e-12 {
		return Identity(), false
	}
	inv := 1 / det
	return Affine{
		a: t.e * inv,
		b: -t.b * inv,
		c: (t.b*t.f - t.c*t.e) * inv,
		d: -t.d * inv,
		e: t.a * inv,
		f: (t.c*t.d - t.a*t.f) * inv,
	}, true
}

// TransformPoint applies the transform to a point.
func (t Affine) TransformPoint(x, y float64) (float64, float64) {
	return t.a*x + t.b*y + t.c, t.d*x + t.e*y + t.f
}

// SpreadMode determines how sampling treats coordinates outside the image.
type SpreadMode uint8

const (
	// SpreadPad clamps coordinates to the edge (default).
	SpreadPad SpreadMode = iota

	// SpreadRepeat tiles the image; coordinates wrap at the boundaries.
	SpreadRepeat

	// SpreadReflect mirrors the image at each boundary.
	SpreadReflect
)

// String returns a string representation of the spread mode.
func (s SpreadMode) String() string {
	switch s {
	case SpreadPad:
		return "Pad"
	case SpreadRepeat:
		return "Repeat"
	case SpreadReflect:
		return "Reflect"
	default:
		return "Unknown"
	}
}

// ExtendIndex maps an integer pixel index onto [0, size) under the spread
// mode. Repeat uses the positive remainder; reflect folds over a period of
// 2*size.
func ExtendIndex(i, size int, mode SpreadMode) int {
	switch mode {
	case SpreadRepeat:
		i %= size
		if i < 0 {
			i += size
		}
		return i
	case SpreadReflect:
		period := 2 * size
		i %= period
		if i < 0 {
			i += period
		}
		if i >= size {
			i = period - 1 - i
		}
		return i
	default: // SpreadPad
		if i < 0 {
			return 0
		}
		if i >= size {
			return size - 1
		}
		return i
	}
}

// spreadCoord applies a spread mode to a normalized coordinate.
func spreadCoord(t float64, mode SpreadMode) float64 {
	switch mode {
	case SpreadRepeat:
		t -= math.Floor(t)
		return t
	case SpreadReflect:
		ti := math.Floor(t)
		tf := t - ti
		if int(ti)%2 != 0 {
			return 1.0 - tf
		}
		return tf
	default: // SpreadPad
		return clampFloat(t, 0, 1)
	}
}

// InterpolationMode selects the sampling filter.
type InterpolationMode uint8

const (
	// InterpNearest samples the single nearest pixel.
	InterpNearest InterpolationMode = iota

	// InterpBilinear blends the four surrounding pixels.
	InterpBilinear
)

// String returns the filter name.
func (m InterpolationMode) String() string {
	switch m {
	case InterpNearest:
		return "Nearest"
	case InterpBilinear:
		return "Bilinear"
	default:
		return "Unknown"
	}
}

// Sample reads the image at normalized coordinates (u, v) in [0, 1] with
// the given filter. Out-of-range coordinates clamp to the edge.
func Sample(img *ImageBuf, u, v float64, mode InterpolationMode) (r, g, b, a byte) {
	if mode == InterpBilinear {
		return SampleBilinear(img, u, v)
	}
	return SampleNearest(img, u, v)
}

// SampleNearest returns the pixel containing the normalized coordinate.
func SampleNearest(img *ImageBuf, u, v float64) (r, g, b, a byte) {
	x := clampInt(int(math.Floor(u*float64(img.width))), 0, img.width-1)
	y := clampInt(int(math.Floor(v*float64(img.height))), 0, img.height-1)
	return img.GetRGBA(x, y)
}

// SampleBilinear blends the four pixels around the normalized coordinate
// with linear weights, treating pixel centers as the sample lattice.
func SampleBilinear(img *ImageBuf, u, v float64) (r, g, b, a byte) {
	fx := u*float64(img.width) - 0.5
	fy := v*float64(img.height) - 0.5

	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	x0c := clampInt(x0, 0, img.width-1)
	y0c := clampInt(y0, 0, img.height-1)
	x1c := clampInt(x0+1, 0, img.width-1)
	y1c := clampInt(y0+1, 0, img.height-1)

	r00, g00, b00, a00 := img.GetRGBA(x0c, y0c)
	r10, g10, b10, a10 := img.GetRGBA(x1c, y0c)
	r01, g01, b01, a01 := img.GetRGBA(x0c, y1c)
	r11, g11, b11, a11 := img.GetRGBA(x1c, y1c)

	lerp2 := func(v00, v10, v01, v11 uint8) byte {
		top := float64(v00) + (float64(v10)-float64(v00))*tx
		bot := float64(v01) + (float64(v11)-float64(v01))*tx
		return byte(top + (bot-top)*ty + 0.5)
	}
	return lerp2(r00, r10, r01, r11), lerp2(g00, g10, g01, g11),
		lerp2(b00, b10, b01, b11), lerp2(a00, a10, a01, a11)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
