package image

import "math"

// Rect is a rectangular pixel region.
type Rect struct {
	X, Y          int // Top-left corner
	Width, Height int // Dimensions
}

// BlendMode selects how a drawn source pixel combines with the
// destination. This is the image-blit blend set; the full compositing
// catalog lives in internal/blend.
type BlendMode uint8

const (
	// BlendNormal is standard source-over alpha blending.
	BlendNormal BlendMode = iota

	// BlendMultiply multiplies source and destination channels.
	BlendMultiply

	// BlendScreen is the inverse multiply, always lightening.
	BlendScreen

	// BlendOverlay multiplies dark destinations and screens light ones.
	BlendOverlay
)

// String returns the blend mode name.
func (b BlendMode) String() string {
	switch b {
	case BlendNormal:
		return "Normal"
	case BlendMultiply:
		return "Multiply"
	case BlendScreen:
		return "Screen"
	case BlendOverlay:
		return "Overlay"
	default:
		return "Unknown"
	}
}

// DrawParams configures a DrawImage call.
type DrawParams struct {
	// SrcRect is the source region to sample; nil means the whole image.
	SrcRect *Rect

	// DstRect is the destination region to paint.
	DstRect Rect

	// Transform optionally maps destination-relative coordinates into
	// source-relative coordinates; nil means identity.
	Transform *Affine

	// Interp is the sampling filter.
	Interp InterpolationMode

	// Opacity scales the source alpha, clamped to [0, 1].
	Opacity float64

	// BlendMode combines sampled source with destination.
	BlendMode BlendMode
}

// DrawImage paints src into dst over the destination rectangle: each
// destination pixel maps through the inverse transform into source space,
// samples with the filter, applies opacity, and blends in place.
// Destination pixels whose source position falls outside the source
// rectangle are left untouched.
func DrawImage(dst, src *ImageBuf, params DrawParams) {
	if dst == nil || src == nil {
		return
	}

	srcRect := params.SrcRect
	if srcRect == nil {
		srcRect = &Rect{Width: src.width, Height: src.height}
	}

	transform := params.Transform
	if transform == nil {
		identity := Identity()
		transform = &identity
	}
	inv, ok := transform.Invert()
	if !ok {
		return
	}

	opacity := clampFloat(params.Opacity, 0, 1)

	dstRect := params.DstRect
	if dstRect.X < 0 {
		dstRect.Width += dstRect.X
		dstRect.X = 0
	}
	if dstRect.Y < 0 {
		dstRect.Height += dstRect.Y
		dstRect.Y = 0
	}
	if dstRect.X+dstRect.Width > dst.width {
		dstRect.Width = dst.width - dstRect.X
	}
	if dstRect.Y+dstRect.Height > dst.height {
		dstRect.Height = dst.height - dstRect.Y
	}
	if dstRect.Width <= 0 || dstRect.Height <= 0 {
		return
	}

	for dy := 0; dy < dstRect.Height; dy++ {
		for dx := 0; dx < dstRect.Width; dx++ {
			// Destination-relative pixel center into source space.
			sx, sy := inv.TransformPoint(float64(dx)+0.5, float64(dy)+0.5)
			sx += float64(srcRect.X)
			sy += float64(srcRect.Y)

			if sx < float64(srcRect.X) || sx > float64(srcRect.X+srcRect.Width) ||
				sy < float64(srcRect.Y) || sy > float64(srcRect.Y+srcRect.Height) {
				continue
			}

			sr, sg, sb, sa := Sample(src,
				sx/float64(src.width), sy/float64(src.height), params.Interp)
			if opacity < 1 {
				sa = uint8(float64(sa) * opacity)
			}
			if sa == 0 && params.BlendMode == BlendNormal {
				continue
			}

			dstX := dstRect.X + dx
			dstY := dstRect.Y + dy
			dr, dg, db, da := dst.GetRGBA(dstX, dstY)
			r, g, b, a := blitBlend(sr, sg, sb, sa, dr, dg, db, da, params.BlendMode)
			_ = dst.SetRGBA(dstX, dstY, r, g, b, a)
		}
	}
}

// blitBlend applies the blit blend set to one straight-alpha pixel pair.
func blitBlend(sr, sg, sb, sa, dr, dg, db, da uint8, mode BlendMode) (r, g, b, a uint8) {
	if mode == BlendNormal {
		return blitOver(sr, sg, sb, sa, dr, dg, db, da)
	}

	var blendChan func(s, d uint8) uint8
	switch mode {
	case BlendMultiply:
		blendChan = func(s, d uint8) uint8 {
			return uint8((uint16(s)*uint16(d) + 127) / 255)
		}
	case BlendScreen:
		blendChan = func(s, d uint8) uint8 {
			return 255 - uint8((uint16(255-s)*uint16(255-d)+127)/255)
		}
	default: // BlendOverlay
		blendChan = func(s, d uint8) uint8 {
			if d < 128 {
				return uint8((2*uint16(s)*uint16(d) + 127) / 255)
			}
			v := float64(2*uint16(255-s)*uint16(255-d)+127) / 255
			return 255 - uint8(math.Min(v, 255))
		}
	}

	// Blend the channels, then lay the result over the destination with
	// the source alpha.
	return blitOver(blendChan(sr, dr), blendChan(sg, dg), blendChan(sb, db), sa,
		dr, dg, db, da)
}

// blitOver is straight-alpha source-over with +127 rounding.
func blitOver(sr, sg, sb, sa, dr, dg, db, da uint8) (r, g, b, a uint8) {
	if sa == 255 || da == 0 {
		return sr, sg, sb, sa
	}
	if sa == 0 {
		return dr, dg, db, da
	}

	inv := uint16(255 - sa)
	mix := func(s, d uint8) uint16 {
		sp := (uint16(s)*uint16(sa) + 127) / 255
		dp := (uint16(d)*uint16(da) + 127) / 255
		return sp + (dp*inv+127)/255
	}
	outA := uint16(sa) + (uint16(da)*inv+127)/255
	if outA == 0 {
		return 0, 0, 0, 0
	}
	unp := func(p uint16) uint8 {
		v := (p*255 + outA/2) / outA
		if v > 255 {
			v = 255
		}
		return uint8(v)
	}
	return unp(mix(sr, dr)), unp(mix(sg, dg)), unp(mix(sb, db)), uint8(outA)
}
