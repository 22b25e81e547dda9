// Separable and non-separable blend modes beyond the Porter-Duff catalog,
// following the W3C Compositing and Blending Level 1 model. Separable modes
// operate on each color channel independently; non-separable modes go
// through the HSL helpers in hsl.go.
//
// References:
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
//   - PDF Blend Modes: Addendum (ISO 32000-1:2008)

package blend

import "math"

// The separable and non-separable modes continue the BlendMode space
// after the Porter-Duff block.
const (
	// Separable blend modes
	BlendMultiply    BlendMode = iota + 14 // Result: S * D
	BlendScreen                             // Result: 1 - (1-S)*(1-D)
	BlendOverlay                            // HardLight with swapped layers
	BlendDarken                             // min(S, D)
	BlendLighten                            // max(S, D)
	BlendColorDodge                         // D / (1 - S)
	BlendColorBurn                          // 1 - (1 - D) / S
	BlendHardLight                          // Multiply or Screen depending on source
	BlendSoftLight                          // Soft version of HardLight
	BlendDifference                         // |S - D|
	BlendExclusion                          // S + D - 2*S*D

	// Non-separable blend modes (optional)
	BlendHue        // Hue of source, saturation and luminosity of backdrop
	BlendSaturation // Saturation of source, hue and luminosity of backdrop
	BlendColor      // Hue and saturation of source, luminosity of backdrop
	BlendLuminosity // Luminosity of source, hue and saturation of backdrop
)

// separableBlend runs a per-channel kernel B inside the compositing
// formula on premultiplied bytes:
//
//	result = (1-Sa)*D + (1-Da)*S + Sa*Da*B(Cs, Cb)
//
// The kernel sees unpremultiplied channels; the pass-through terms keep
// each input's contribution where the other is transparent.
func separableBlend(sr, sg, sb, sa, dr, dg, db, da byte, kernel func(s, d byte) byte) (byte, byte, byte, byte) {
	if sa == 0 {
		return dr, dg, db, da
	}
	if da == 0 {
		return sr, sg, sb, sa
	}

	unpremul := func(c, a byte) byte {
		return byte((uint16(c) * 255) / uint16(a))
	}

	invSa := 255 - sa
	invDa := 255 - da
	outA := addDiv255(sa, mulDiv255(da, invSa))
	saDa := mulDiv255(sa, da)

	mix := func(s, d byte) byte {
		k := kernel(unpremul(s, sa), unpremul(d, da))
		base := addDiv255(mulDiv255(d, invSa), mulDiv255(s, invDa))
		return addDiv255(base, mulDiv255(saDa, k))
	}
	return mix(sr, dr), mix(sg, dg), mix(sb, db), outA
}

// Per-channel kernels

// blendMultiply multiplies source and destination colors.
// Formula: B(Cb, Cs) = Cb * Cs
func blendMultiply(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(sr, sg, sb, sa, dr, dg, db, da, mulDiv255)
}

// blendScreen produces a lighter result than multiply.
// Formula: B(Cb, Cs) = 1 - (1 - Cb) * (1 - Cs)
func blendScreen(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(sr, sg, sb, sa, dr, dg, db, da, func(s, d byte) byte {
		// 1 - (1 - s) * (1 - d)
		invS := 255 - s
		invD := 255 - d
		return 255 - mulDiv255(invS, invD)
	})
}

// blendOverlay combines Multiply and Screen.
// Formula: B(Cb, Cs) = HardLight(Cs, Cb) (swapped parameters)
func blendOverlay(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(sr, sg, sb, sa, dr, dg, db, da, func(s, d byte) byte {
		// if Cb <= 0.5: 2 * Cb * Cs
		// else: 1 - 2 * (1 - Cb) * (1 - Cs)
		if d < 128 {
			return mulDiv255(2*d, s)
		}
		invD := 255 - d
		invS := 255 - s
		return 255 - mulDiv255(2*invD, invS)
	})
}

// blendDarken selects the darker of source and destination.
// Formula: B(Cb, Cs) = min(Cb, Cs)
func blendDarken(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(sr, sg, sb, sa, dr, dg, db, da, minByte)
}

// blendLighten selects the lighter of source and destination.
// Formula: B(Cb, Cs) = max(Cb, Cs)
func blendLighten(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(sr, sg, sb, sa, dr, dg, db, da, maxByte)
}

// blendColorDodge brightens the destination to reflect the source.
// Formula: B(Cb, Cs) = if Cs == 1: 1, else: min(1, Cb / (1 - Cs))
func blendColorDodge(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(sr, sg, sb, sa, dr, dg, db, da, func(s, d byte) byte {
		if s == 255 {
			return 255
		}
		// Cb / (1 - Cs)
		invS := 255 - s
		result := (uint16(d) * 255) / uint16(invS)
		if result > 255 {
			return 255
		}
		return byte(result)
	})
}

// blendColorBurn darkens the destination to reflect the source.
// Formula: B(Cb, Cs) = if Cs == 0: 0, else: 1 - min(1, (1 - Cb) / Cs)
func blendColorBurn(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(sr, sg, sb, sa, dr, dg, db, da, func(s, d byte) byte {
		if s == 0 {
			return 0
		}
		// 1 - (1 - Cb) / Cs
		invD := 255 - d
		result := (uint16(invD) * 255) / uint16(s)
		if result > 255 {
			return 0
		}
		return 255 - byte(result)
	})
}

// blendHardLight combines Multiply and Screen based on source.
// Formula: B(Cb, Cs) = if Cs <= 0.5: Multiply(Cb, 2*Cs), else: Screen(Cb, 2*Cs - 1)
func blendHardLight(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(sr, sg, sb, sa, dr, dg, db, da, func(s, d byte) byte {
		// if Cs <= 0.5: 2 * Cb * Cs
		// else: 1 - 2 * (1 - Cb) * (1 - Cs)
		if s < 128 {
			return mulDiv255(2*s, d)
		}
		invS := 255 - s
		invD := 255 - d
		return 255 - mulDiv255(2*invS, invD)
	})
}

// blendSoftLight is a softer version of HardLight.
// Formula: B(Cb, Cs) = complex formula based on Cb and Cs
func blendSoftLight(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(sr, sg, sb, sa, dr, dg, db, da, func(s, d byte) byte {
		// Convert to float for precise calculation
		sf := float64(s) / 255.0
		df := float64(d) / 255.0

		var result float64
		if sf <= 0.5 {
			// B(Cb, Cs) = Cb - (1 - 2*Cs) * Cb * (1 - Cb)
			result = df - (1-2*sf)*df*(1-df)
		} else {
			// B(Cb, Cs) = Cb + (2*Cs - 1) * (D(Cb) - Cb)
			// where D(x) = if x <= 0.25: ((16*x - 12)*x + 4)*x, else: sqrt(x)
			var dx float64
			if df <= 0.25 {
				dx = ((16*df-12)*df+4)*df
			} else {
				dx = math.Sqrt(df)
			}
			result = df + (2*sf-1)*(dx-df)
		}

		// Clamp to [0, 1] and convert back to byte
		if result < 0 {
			return 0
		}
		if result > 1 {
			return 255
		}
		return byte(result * 255)
	})
}

// blendDifference produces the absolute difference between source and destination.
// Formula: B(Cb, Cs) = |Cb - Cs|
func blendDifference(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(sr, sg, sb, sa, dr, dg, db, da, func(s, d byte) byte {
		if s > d {
			return s - d
		}
		return d - s
	})
}

// blendExclusion is similar to Difference but with lower contrast.
// Formula: B(Cb, Cs) = Cb + Cs - 2 * Cb * Cs
func blendExclusion(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(sr, sg, sb, sa, dr, dg, db, da, func(s, d byte) byte {
		// Cb + Cs - 2 * Cb * Cs
		sum := uint16(s) + uint16(d)
		product := mulDiv255(s, d)
		diff := sum - 2*uint16(product)
		if diff > 255 {
			return 255
		}
		return byte(diff)
	})
}

// The non-separable modes (hue, saturation, color, luminosity) live in
// hsl.go with their color-space machinery.

// maxByte returns the larger of two bytes.
func maxByte(a, b byte) byte {
	if a > b {
		return a
	}
	return b
}
