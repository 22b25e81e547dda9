package altraster

import "math"

// DBSR is the distance-based subpixel rasterizer. Each pixel carries three
// horizontal subpixels (R at 1/6, G at 3/6, B at 5/6); each channel gets
// its own signed distance to the nearest edge, mapped through a 256-entry
// smoothstep LUT, with the winding rule driving the sign. Anti-aliasing is
// therefore color-channel-independent, in the manner of subpixel text
// rendering on horizontal RGB stripes.
type DBSR struct {
	buf *Buffer
	lut [256]float64

	cbuf []crossing
}

// dbsrBand is the half-width in pixels of the distance band the LUT spans.
const dbsrBand = 1.0

// dbsrOffsets are the three subpixel sample offsets within a pixel.
var dbsrOffsets = [3]float64{1.0 / 6, 3.0 / 6, 5.0 / 6}

// NewDBSR creates the engine and builds the smoothstep distance LUT:
// entry i maps signed distance d = (i/255)*2-1 (in band widths, negative
// inside) to coverage smoothstep((1-d)/2).
func NewDBSR(w, h int) *DBSR {
	r := &DBSR{buf: NewBuffer(w, h)}
	for i := range r.lut {
		d := float64(i)/255*2 - 1
		r.lut[i] = smoothstep((1 - d) / 2)
	}
	return r
}

// Buffer returns the engine's pixel buffer.
func (r *DBSR) Buffer() *Buffer { return r.buf }

// Clear fills the buffer with a packed color.
func (r *DBSR) Clear(argb uint32) { r.buf.Clear(argb) }

// DrawPolygon fills the polygon with a packed color under the fill rule.
func (r *DBSR) DrawPolygon(vertices []float64, argb uint32, rule FillRule, counts []int) {
	contours := splitContours(vertices, counts)
	edges := buildEdges(contours)
	if len(edges) == 0 {
		return
	}
	minX, minY, maxX, maxY, ok := bounds(contours, r.buf.W, r.buf.H)
	if !ok {
		return
	}
	// The distance band bleeds one pixel past the geometric bounds.
	minX = maxInt(minX-1, 0)
	maxX = minInt(maxX+1, r.buf.W)
	minY = maxInt(minY-1, 0)
	maxY = minInt(maxY+1, r.buf.H)

	segs := contourSegments(contours)

	for y := minY; y < maxY; y++ {
		sy := float64(y) + 0.5
		r.cbuf = crossingsAt(edges, sy, r.cbuf)

		for x := minX; x < maxX; x++ {
			var cov [3]float64
			touched := false
			for ch := 0; ch < 3; ch++ {
				sx := float64(x) + dbsrOffsets[ch]
				d := nearestSegmentDist(segs, sx, sy, dbsrBand+0.5)
				in := rule.inside(windingSorted(r.cbuf, sx))
				if d >= dbsrBand {
					if in {
						cov[ch] = 1
						touched = true
					}
					continue
				}
				signed := d
				if in {
					signed = -d
				}
				// Index the LUT at the signed distance in band widths.
				idx := int((signed/dbsrBand + 1) / 2 * 255)
				if idx < 0 {
					idx = 0
				} else if idx > 255 {
					idx = 255
				}
				cov[ch] = r.lut[idx]
				if cov[ch] > 0 {
					touched = true
				}
			}
			if touched {
				r.blendSubpixel(x, y, argb, cov)
			}
		}
	}
}

// blendSubpixel composites with an independent coverage per color channel;
// alpha uses the middle (green) subpixel's coverage.
func (r *DBSR) blendSubpixel(x, y int, argb uint32, cov [3]float64) {
	if x < 0 || x >= r.buf.W || y < 0 || y >= r.buf.H {
		return
	}
	sa := float64(argb>>24) / 255
	sr := float64((argb >> 16) & 0xff)
	sg := float64((argb >> 8) & 0xff)
	sb := float64(argb & 0xff)

	idx := y*r.buf.W + x
	d := r.buf.Pix[idx]
	da := float64(d>>24) / 255
	dr := float64((d >> 16) & 0xff)
	dg := float64((d >> 8) & 0xff)
	db := float64(d & 0xff)

	aR := cov[0] * sa
	aG := cov[1] * sa
	aB := cov[2] * sa

	outR := sr*aR + dr*(1-aR)
	outG := sg*aG + dg*(1-aG)
	outB := sb*aB + db*(1-aB)
	outA := aG + da*(1-aG)

	r.buf.Pix[idx] = uint32(outA*255+0.5)<<24 |
		uint32(outR+0.5)<<16 | uint32(outG+0.5)<<8 | uint32(outB+0.5)
}

// segment is a bare contour segment for distance queries.
type segment struct {
	ax, ay, bx, by float64
}

// contourSegments flattens contours into their closing-edge-inclusive
// segment list.
func contourSegments(contours []contour) []segment {
	var segs []segment
	for _, c := range contours {
		n := len(c)
		for i := 0; i < n; i++ {
			p0 := c[i]
			p1 := c[(i+1)%n]
			segs = append(segs, segment{ax: p0.X, ay: p0.Y, bx: p1.X, by: p1.Y})
		}
	}
	return segs
}

// nearestSegmentDist returns the distance from (x, y) to the nearest
// segment, early-exiting past cutoff.
func nearestSegmentDist(segs []segment, x, y, cutoff float64) float64 {
	best := cutoff
	for i := range segs {
		s := &segs[i]
		// Cheap reject on the segment's inflated bounding box.
		if x < math.Min(s.ax, s.bx)-best || x > math.Max(s.ax, s.bx)+best ||
			y < math.Min(s.ay, s.by)-best || y > math.Max(s.ay, s.by)+best {
			continue
		}
		d := distToSegment(x, y, s.ax, s.ay, s.bx, s.by)
		if d < best {
			best = d
		}
	}
	return best
}

// windingSorted counts the signed crossings left of x in a sorted
// crossing list.
func windingSorted(cs []crossing, x float64) int {
	w := 0
	for _, c := range cs {
		if c.x >= x {
			break
		}
		w += c.dir
	}
	return w
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
