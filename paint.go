package vraster

// LineCap specifies the shape of line endpoints.
type LineCap int

const (
	// LineCapButt specifies a flat line cap flush with the endpoint.
	LineCapButt LineCap = iota
	// LineCapRound specifies a semicircular cap centered on the endpoint.
	LineCapRound
	// LineCapSquare specifies a square cap extending past the endpoint.
	LineCapSquare
	// LineCapRoundRev mirrors a round cap back across the stroke body.
	LineCapRoundRev
	// LineCapTriangle specifies a triangular cap extending past the endpoint.
	LineCapTriangle
	// LineCapTriangleRev mirrors a triangle cap back across the stroke body.
	LineCapTriangleRev
)

// LineJoin specifies the shape of line joins.
type LineJoin int

const (
	// LineJoinBevel specifies a beveled (flat-cut) join.
	LineJoinBevel LineJoin = iota
	// LineJoinMiterBevel is a miter join that falls back to a bevel past
	// the miter limit.
	LineJoinMiterBevel
	// LineJoinMiterRound is a miter join that falls back to a round join
	// past the miter limit.
	LineJoinMiterRound
	// LineJoinMiterClip is a miter join clipped to the miter limit rather
	// than falling back to a different join shape.
	LineJoinMiterClip
	// LineJoinRound specifies a rounded join.
	LineJoinRound

	// LineJoinMiter is an alias for LineJoinMiterBevel.
	LineJoinMiter = LineJoinMiterBevel
)

// FillRule specifies how the signed winding number maps to inside/outside.
// The numeric values follow the polygon-fill wire contract: 0 is even-odd,
// 1 is non-zero.
type FillRule int

const (
	// FillRuleEvenOdd fills where the winding number is odd.
	FillRuleEvenOdd FillRule = iota
	// FillRuleNonZero fills where the winding number is non-zero (the
	// conventional default).
	FillRuleNonZero
)

// Paint carries the styling for fill and stroke operations: what to paint
// with (Brush, or the legacy Pattern), how to outline (Stroke), the fill
// rule, and the composition operator.
type Paint struct {
	// Brush is the paint source. When nil, Pattern is consulted instead.
	Brush Brush

	// Pattern is the legacy color-function source, kept for callers that
	// implement Pattern directly.
	Pattern Pattern

	// Stroke is the stroke geometry configuration used by stroke
	// operations.
	Stroke Stroke

	// FillRule selects even-odd or non-zero winding for fills.
	FillRule FillRule

	// CompOp is the composition operator applied when painting.
	CompOp CompOp

	// Antialias enables anti-aliased coverage. Disabling it thresholds
	// coverage at half.
	Antialias bool
}

// NewPaint creates a Paint with default values: opaque black, 1px stroke
// with butt caps and miter joins, non-zero fill, source-over, anti-aliased.
func NewPaint() *Paint {
	return &Paint{
		Brush:     Solid(Black),
		Stroke:    DefaultStroke(),
		FillRule:  FillRuleNonZero,
		CompOp:    CompOpSourceOver,
		Antialias: true,
	}
}

// SetBrush sets the paint source. Brushes that also satisfy Pattern keep
// the legacy Pattern field in step for callers still reading it.
func (p *Paint) SetBrush(b Brush) {
	p.Brush = b
	if pat, ok := b.(Pattern); ok {
		p.Pattern = pat
	}
}

// GetBrush returns the paint source: the Brush if set, a wrapper over the
// legacy Pattern otherwise, and a solid black brush as the final default.
func (p *Paint) GetBrush() Brush {
	if p.Brush != nil {
		return p.Brush
	}
	if p.Pattern != nil {
		return NewCustomBrush(p.Pattern.ColorAt)
	}
	return Solid(Black)
}

// ColorAt samples the paint source at a point.
func (p *Paint) ColorAt(x, y float64) RGBA {
	return p.GetBrush().ColorAt(x, y)
}

// Clone creates a copy of the Paint.
func (p *Paint) Clone() *Paint {
	clone := *p
	clone.Stroke = p.Stroke.Clone()
	return &clone
}
