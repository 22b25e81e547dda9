package blend

// CompOp selects the top-level compositing operator exposed to the
// rasterizer's drawPolygon contract. The full Porter-Duff/advanced catalog
// in this package remains available to callers that want it (via
// GetBlendFunc operating on premultiplied bytes); CompOp names the two the
// compositor kernel gives dedicated straight-alpha fast paths to.
type CompOp uint8

const (
	// CompOpSourceOver composites src over dst: dst := src + dst*(1-srcA).
	CompOpSourceOver CompOp = iota
	// CompOpSourceCopy replaces dst with src unconditionally.
	CompOpSourceCopy
)

// CompositeStraight is the compositor kernel on straight
// (non-premultiplied) 8-bit RGBA. dr,dg,db,da is the destination pixel;
// sr,sg,sb,sa is the source, already the product of fetcher color and
// accumulated coverage alpha. Returns the new destination pixel.
func CompositeStraight(op CompOp, sr, sg, sb, sa, dr, dg, db, da byte) (r, g, b, a byte) {
	if op == CompOpSourceCopy {
		return sr, sg, sb, sa
	}
	return sourceOverStraight(sr, sg, sb, sa, dr, dg, db, da)
}

// sourceOverStraight is the straight-alpha source-over kernel described in
// including its explicit fast paths for transparent and opaque sources.
func sourceOverStraight(sr, sg, sb, sa, dr, dg, db, da byte) (r, g, b, a byte) {
	switch sa {
	case 0:
		return dr, dg, db, da
	case 255:
		return sr, sg, sb, sa
	}

	if da == 0 {
		return sr, sg, sb, sa
	}

	if da == 255 {
		invSa := 255 - sa
		return addDiv255(mulDiv255(sr, sa), mulDiv255(dr, invSa)),
			addDiv255(mulDiv255(sg, sa), mulDiv255(dg, invSa)),
			addDiv255(mulDiv255(sb, sa), mulDiv255(db, invSa)),
			255
	}

	// General case: premultiply, blend premultiplied, recover straight.
	invSa := 255 - sa
	pr := mulDiv255(sr, sa)
	pg := mulDiv255(sg, sa)
	pb := mulDiv255(sb, sa)

	pdr := mulDiv255(dr, da)
	pdg := mulDiv255(dg, da)
	pdb := mulDiv255(db, da)

	outA := addDiv255(sa, mulDiv255(da, invSa))
	outPR := addDiv255(pr, mulDiv255(pdr, invSa))
	outPG := addDiv255(pg, mulDiv255(pdg, invSa))
	outPB := addDiv255(pb, mulDiv255(pdb, invSa))

	if outA == 0 {
		return 0, 0, 0, 0
	}

	return unpremulDiv(outPR, outA), unpremulDiv(outPG, outA), unpremulDiv(outPB, outA), outA
}

// CompositeCatalog applies one of the catalog blend modes (Porter-Duff or
// advanced) to straight 8-bit RGBA pixels: premultiply both sides, blend
// premultiplied, recover straight.
func CompositeCatalog(mode BlendMode, sr, sg, sb, sa, dr, dg, db, da byte) (r, g, b, a byte) {
	fn := GetBlendFunc(mode)

	pr := mulDiv255(sr, sa)
	pg := mulDiv255(sg, sa)
	pb := mulDiv255(sb, sa)

	pdr := mulDiv255(dr, da)
	pdg := mulDiv255(dg, da)
	pdb := mulDiv255(db, da)

	or, og, ob, oa := fn(pr, pg, pb, sa, pdr, pdg, pdb, da)
	if oa == 0 {
		return 0, 0, 0, 0
	}
	return unpremulDiv(or, oa), unpremulDiv(og, oa), unpremulDiv(ob, oa), oa
}

// unpremulDiv recovers a straight channel from a premultiplied channel and
// the final alpha, rounding with the +127 convention and clamping to 255.
func unpremulDiv(p, a byte) byte {
	v := (uint16(p)*255 + uint16(a)/2) / uint16(a)
	if v > 255 {
		v = 255
	}
	return byte(v)
}
