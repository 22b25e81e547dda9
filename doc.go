// Package vraster is a CPU-only 2D vector graphics workbench.
//
// Given filled and stroked paths in floating-point device coordinates, it
// produces anti-aliased 32-bit RGBA raster images. The package hosts several
// rasterization engines behind a common polygon-fill contract, together with
// the geometric preprocessing (path flattening, stroke expansion, dash
// expansion), paint evaluation (solid colors, linear/radial/conic gradients,
// image patterns), and pixel compositing needed to turn vector input into an
// image buffer.
//
// # Quick Start
//
//	r, err := vraster.NewRasterizerSize(256, 256)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	r.Clear(vraster.PackRGBA32(0, 0, 0, 255))
//	r.DrawPolygon([]float64{10, 10, 246, 10, 128, 246},
//	    vraster.PackRGBA32(255, 255, 255, 255),
//	    vraster.FillRuleNonZero, vraster.CompOpSourceOver, nil)
//	_ = vraster.EncodePNG(w, r.Framebuffer())
//
// Curved and stroked input goes through the path front-end first:
//
//	var b vraster.PathBuilder
//	b.MoveTo(20, 20)
//	b.CubicTo(60, 0, 100, 40, 140, 20)
//	poly := b.Polygon()
//	r.DrawPolygon(poly.Vertices, color, vraster.FillRuleNonZero,
//	    vraster.CompOpSourceOver, poly.ContourCounts)
//
// # Engines
//
// The analytic (cell-accumulation) scanline rasterizer is the reference
// engine. The alternative engines behind the Engine constants (ACDR, DBSR,
// EPL-AA, QCS, SSAA, SCP-AED, tessellation, wavelet) honor the same polygon
// contract with different coverage models; construct one with NewEngine and
// compare outputs pixel for pixel.
//
// # Coordinate System
//
// Standard raster coordinates: origin (0,0) at top-left, X increases right,
// Y increases down, angles in radians. Subpixel positions are preserved up
// to rasterization; a pixel's paint sample point is its center (x+0.5, y+0.5).
//
// # Concurrency
//
// A Rasterizer instance owns its framebuffer and scratch buffers and is not
// safe for concurrent use. Draw calls run to completion synchronously and
// paint in submission order, which is what source-over stacking requires.
package vraster
