// The luminosity/saturation machinery behind the non-separable blend modes
// (Hue, Saturation, Color, Luminosity). These operate on the whole RGB
// triplet rather than per channel: each mode reassembles a color from the
// hue, saturation, and luminance of its two inputs.
//
// References:
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/

package blend

import "math"

// Lum returns BT.601 luminance of a normalized color.
func Lum(r, g, b float32) float32 {
	return 0.30*r + 0.59*g + 0.11*b
}

// Sat returns the saturation of a normalized color: the spread between
// its largest and smallest channel.
func Sat(r, g, b float32) float32 {
	return max3(r, g, b) - min3(r, g, b)
}

// ClipColor pulls out-of-range channels back into [0, 1] by scaling the
// color toward its own luminance, which keeps the luminance fixed while
// desaturating just enough to fit.
func ClipColor(r, g, b float32) (float32, float32, float32) {
	l := Lum(r, g, b)
	lo := min3(r, g, b)
	hi := max3(r, g, b)

	if lo < 0 {
		scale := l / (l - lo)
		r = l + (r-l)*scale
		g = l + (g-l)*scale
		b = l + (b-l)*scale
	}
	if hi > 1 {
		scale := (1 - l) / (hi - l)
		r = l + (r-l)*scale
		g = l + (g-l)*scale
		b = l + (b-l)*scale
	}
	return r, g, b
}

// SetLum shifts a color to the target luminance, clipping back into range
// afterwards. Hue and saturation relationships survive the shift.
func SetLum(r, g, b, l float32) (float32, float32, float32) {
	d := l - Lum(r, g, b)
	return ClipColor(r+d, g+d, b+d)
}

// SetSat rescales a color to the target saturation: the smallest channel
// goes to zero, the largest to s, and the middle keeps its relative
// position. A gray input has no hue to stretch and is left unchanged.
func SetSat(r, g, b, s float32) (float32, float32, float32) {
	lo, mid, hi := sortRGB(&r, &g, &b)

	if *hi > *lo {
		*mid = ((*mid - *lo) * s) / (*hi - *lo)
		*hi = s
		*lo = 0
	}
	return r, g, b
}

// sortRGB orders the three channel pointers by value.
func sortRGB(r, g, b *float32) (lo, mid, hi *float32) {
	lo, mid, hi = r, g, b
	if *lo > *mid {
		lo, mid = mid, lo
	}
	if *mid > *hi {
		mid, hi = hi, mid
	}
	if *lo > *mid {
		lo, mid = mid, lo
	}
	return lo, mid, hi
}

// The four mode kernels, on unpremultiplied normalized colors. Each is a
// composition of SetSat/SetLum per the compositing model:
//
//	hue:        SetLum(SetSat(src, Sat(dst)), Lum(dst))
//	saturation: SetLum(SetSat(dst, Sat(src)), Lum(dst))
//	color:      SetLum(src, Lum(dst))
//	luminosity: SetLum(dst, Lum(src))

func hslBlendHue(sr, sg, sb, dr, dg, db float32) (float32, float32, float32) {
	r, g, b := SetSat(sr, sg, sb, Sat(dr, dg, db))
	return SetLum(r, g, b, Lum(dr, dg, db))
}

func hslBlendSaturation(sr, sg, sb, dr, dg, db float32) (float32, float32, float32) {
	r, g, b := SetSat(dr, dg, db, Sat(sr, sg, sb))
	return SetLum(r, g, b, Lum(dr, dg, db))
}

func hslBlendColor(sr, sg, sb, dr, dg, db float32) (float32, float32, float32) {
	return SetLum(sr, sg, sb, Lum(dr, dg, db))
}

func hslBlendLuminosity(sr, sg, sb, dr, dg, db float32) (float32, float32, float32) {
	return SetLum(dr, dg, db, Lum(sr, sg, sb))
}

func min3(a, b, c float32) float32 {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

func max3(a, b, c float32) float32 {
	if b > a {
		a = b
	}
	if c > a {
		a = c
	}
	return a
}

// Byte-catalog entries: each wraps its kernel through the shared
// premultiplied compositing scaffold.

func blendHue(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return nonSeparableBlend(sr, sg, sb, sa, dr, dg, db, da, hslBlendHue)
}

func blendSaturation(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return nonSeparableBlend(sr, sg, sb, sa, dr, dg, db, da, hslBlendSaturation)
}

func blendColor(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return nonSeparableBlend(sr, sg, sb, sa, dr, dg, db, da, hslBlendColor)
}

func blendLuminosity(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return nonSeparableBlend(sr, sg, sb, sa, dr, dg, db, da, hslBlendLuminosity)
}

// nonSeparableBlend runs a triplet kernel inside the standard compositing
// formula on premultiplied bytes:
//
//	result = (1-Sa)*D + (1-Da)*S + Sa*Da*B(Cs, Cb)
//
// The kernel itself sees unpremultiplied normalized channels.
func nonSeparableBlend(
	sr, sg, sb, sa, dr, dg, db, da byte,
	kernel func(sr, sg, sb, dr, dg, db float32) (float32, float32, float32),
) (byte, byte, byte, byte) {
	if sa == 0 {
		return dr, dg, db, da
	}
	if da == 0 {
		return sr, sg, sb, sa
	}

	// Unpremultiply into normalized space for the kernel.
	sur := float32(sr) / float32(sa)
	sug := float32(sg) / float32(sa)
	sub := float32(sb) / float32(sa)
	dur := float32(dr) / float32(da)
	dug := float32(dg) / float32(da)
	dub := float32(db) / float32(da)

	kr, kg, kb := kernel(sur, sug, sub, dur, dug, dub)

	invSa := 255 - sa
	invDa := 255 - da
	outA := addDiv255(sa, mulDiv255(da, invSa))

	// The two pass-through terms, then the kernel's contribution scaled
	// by the overlap Sa*Da.
	overlap := float32(sa) / 255 * float32(da) / 255
	mix := func(s, d byte, k float32) byte {
		base := addDiv255(mulDiv255(d, invSa), mulDiv255(s, invDa))
		return addDiv255(base, byte(math.Round(float64(k*overlap*255))))
	}
	return mix(sr, dr, kr), mix(sg, dg, kg), mix(sb, db, kb), outA
}
