package vraster

import "github.com/gogpu/vraster/internal/blend"

// CompOp selects the composition operator a draw call applies per pixel.
//
// CompOpSourceOver and CompOpSourceCopy run on the dedicated straight-alpha
// kernel with span fast paths. The remaining operators route through the
// premultiplied Porter-Duff/blend-mode catalog; they cost a premultiply and
// un-premultiply round trip per pixel.
type CompOp uint8

const (
	// CompOpSourceOver composites src over dst (the default painting
	// operator).
	CompOpSourceOver CompOp = iota
	// CompOpSourceCopy replaces dst with src unconditionally.
	CompOpSourceCopy

	// Porter-Duff catalog.
	CompOpClear
	CompOpDestinationOver
	CompOpSourceIn
	CompOpDestinationIn
	CompOpSourceOut
	CompOpDestinationOut
	CompOpSourceAtop
	CompOpDestinationAtop
	CompOpXor
	CompOpPlus
	CompOpModulate

	// Separable blend modes.
	CompOpMultiply
	CompOpScreen
	CompOpOverlay
	CompOpDarken
	CompOpLighten
	CompOpColorDodge
	CompOpColorBurn
	CompOpHardLight
	CompOpSoftLight
	CompOpDifference
	CompOpExclusion

	// Non-separable blend modes.
	CompOpHue
	CompOpSaturation
	CompOpColor
	CompOpLuminosity
)

// String returns the operator name.
func (op CompOp) String() string {
	names := [...]string{
		"SourceOver", "SourceCopy",
		"Clear", "DestinationOver", "SourceIn", "DestinationIn",
		"SourceOut", "DestinationOut", "SourceAtop", "DestinationAtop",
		"Xor", "Plus", "Modulate",
		"Multiply", "Screen", "Overlay", "Darken", "Lighten",
		"ColorDodge", "ColorBurn", "HardLight", "SoftLight",
		"Difference", "Exclusion",
		"Hue", "Saturation", "Color", "Luminosity",
	}
	if int(op) < len(names) {
		return names[op]
	}
	return "Unknown"
}

// isKernelOp reports whether the operator runs on the straight-alpha
// compositor kernel rather than the catalog.
func (op CompOp) isKernelOp() bool {
	return op == CompOpSourceOver || op == CompOpSourceCopy
}

// catalogMode maps a catalog operator to its blend-mode entry.
func (op CompOp) catalogMode() blend.BlendMode {
	switch op {
	case CompOpClear:
		return blend.BlendClear
	case CompOpDestinationOver:
		return blend.BlendDestinationOver
	case CompOpSourceIn:
		return blend.BlendSourceIn
	case CompOpDestinationIn:
		return blend.BlendDestinationIn
	case CompOpSourceOut:
		return blend.BlendSourceOut
	case CompOpDestinationOut:
		return blend.BlendDestinationOut
	case CompOpSourceAtop:
		return blend.BlendSourceAtop
	case CompOpDestinationAtop:
		return blend.BlendDestinationAtop
	case CompOpXor:
		return blend.BlendXor
	case CompOpPlus:
		return blend.BlendPlus
	case CompOpModulate:
		return blend.BlendModulate
	case CompOpMultiply:
		return blend.BlendMultiply
	case CompOpScreen:
		return blend.BlendScreen
	case CompOpOverlay:
		return blend.BlendOverlay
	case CompOpDarken:
		return blend.BlendDarken
	case CompOpLighten:
		return blend.BlendLighten
	case CompOpColorDodge:
		return blend.BlendColorDodge
	case CompOpColorBurn:
		return blend.BlendColorBurn
	case CompOpHardLight:
		return blend.BlendHardLight
	case CompOpSoftLight:
		return blend.BlendSoftLight
	case CompOpDifference:
		return blend.BlendDifference
	case CompOpExclusion:
		return blend.BlendExclusion
	case CompOpHue:
		return blend.BlendHue
	case CompOpSaturation:
		return blend.BlendSaturation
	case CompOpColor:
		return blend.BlendColor
	case CompOpLuminosity:
		return blend.BlendLuminosity
	default:
		return blend.BlendSourceOver
	}
}

// compositePixel applies the operator to one straight-alpha pixel pair.
func compositePixel(op CompOp, src, dst RGBA32) RGBA32 {
	var r, g, b, a byte
	if op.isKernelOp() {
		kop := blend.CompOpSourceOver
		if op == CompOpSourceCopy {
			kop = blend.CompOpSourceCopy
		}
		r, g, b, a = blend.CompositeStraight(kop,
			src.R(), src.G(), src.B(), src.A(),
			dst.R(), dst.G(), dst.B(), dst.A())
	} else {
		r, g, b, a = blend.CompositeCatalog(op.catalogMode(),
			src.R(), src.G(), src.B(), src.A(),
			dst.R(), dst.G(), dst.B(), dst.A())
	}
	return PackRGBA32(r, g, b, a)
}
