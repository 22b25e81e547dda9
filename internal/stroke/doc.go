// Package stroke expands stroked paths into filled outlines.
//
// The expander turns a centerline plus a stroke style into a polygon whose
// non-zero fill is exactly the stroke: two offset paths run half a width to
// either side of the centerline, joins bridge them at each vertex, and caps
// close the ends.
//
//	forward offset  ------------->  end cap
//	centerline      - - - - - - -       |
//	backward offset <-------------  (reversed)
//
// Cap shapes: butt (flush), square and triangle (extending half a width
// past the endpoint), round (semicircular), and the reversed round/triangle
// variants that fold back across the stroke body. Joins: bevel, round, and
// the three miter flavors (falling back to bevel, falling back to round,
// or clipped at the miter limit). Concave joins pivot through the corner;
// the overlap disappears under the non-zero fill.
//
// Curved input is flattened to segments against the expander's tolerance
// before offsetting; round joins and caps emit cubic arcs.
//
// The offset construction follows the tiny-skia/kurbo stroke expansion
// lineage (path/src/stroker.rs, src/stroke.rs).
package stroke
