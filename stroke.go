package vraster

import "github.com/gogpu/vraster/internal/stroke"

// Stroke defines the style for stroking paths.
// It encapsulates all stroke-related properties in a single struct,
// following the tiny-skia/kurbo pattern for unified stroke configuration.
type Stroke struct {
	// Width is the line width in pixels. Default: 1.0
	Width float64

	// Cap is the shape of line endpoints. Default: LineCapButt
	Cap LineCap

	// Join is the shape of line joins. Default: LineJoinMiter
	Join LineJoin

	// MiterLimit is the limit for miter joins before they become bevels.
	// Default: 4.0 (common default, matches SVG)
	MiterLimit float64

	// Dash is the dash pattern for the stroke.
	// nil means a solid line (no dashing).
	Dash *Dash
}

// DefaultStroke returns a Stroke with default settings.
// This creates a solid 1-pixel line with butt caps and miter joins.
func DefaultStroke() Stroke {
	return Stroke{
		Width:      1.0,
		Cap:        LineCapButt,
		Join:       LineJoinMiter,
		MiterLimit: 4.0,
		Dash:       nil,
	}
}

// WithWidth returns a copy of the Stroke with the given width.
func (s Stroke) WithWidth(w float64) Stroke {
	s.Width = w
	return s
}

// WithCap returns a copy of the Stroke with the given line cap style.
func (s Stroke) WithCap(lineCap LineCap) Stroke {
	s.Cap = lineCap
	return s
}

// WithJoin returns a copy of the Stroke with the given line join style.
func (s Stroke) WithJoin(join LineJoin) Stroke {
	s.Join = join
	return s
}

// WithMiterLimit returns a copy of the Stroke with the given miter limit.
// The miter limit controls when miter joins are converted to bevel joins.
// A value of 1.0 effectively disables miter joins.
func (s Stroke) WithMiterLimit(limit float64) Stroke {
	s.MiterLimit = limit
	return s
}

// WithDash returns a copy of the Stroke with the given dash pattern.
// Pass nil to remove dashing and return to solid lines.
func (s Stroke) WithDash(dash *Dash) Stroke {
	if dash == nil {
		s.Dash = nil
	} else {
		s.Dash = dash.Clone()
	}
	return s
}

// WithDashPattern returns a copy of the Stroke with a dash pattern
// created from the given lengths.
//
// Example:
//
//	stroke.WithDashPattern(5, 3) // 5 units dash, 3 units gap
func (s Stroke) WithDashPattern(lengths ...float64) Stroke {
	s.Dash = NewDash(lengths...)
	return s
}

// WithDashOffset returns a copy of the Stroke with the dash offset set.
// If there is no dash pattern, this has no effect.
func (s Stroke) WithDashOffset(offset float64) Stroke {
	if s.Dash != nil {
		s.Dash = s.Dash.WithOffset(offset)
	}
	return s
}

// IsDashed returns true if this stroke has a dash pattern.
func (s Stroke) IsDashed() bool {
	return s.Dash != nil && s.Dash.IsDashed()
}

// Clone creates a deep copy of the Stroke.
func (s Stroke) Clone() Stroke {
	result := s
	if s.Dash != nil {
		result.Dash = s.Dash.Clone()
	}
	return result
}

// Outline expands the stroke over flattened polygon contours into the
// polygonal outline whose non-zero fill is exactly the stroked shape.
// The dash pattern, if any, is expanded first. A non-positive width or an
// empty input yields an empty polygon.
//
// Open contours are outlined as a single closed loop (forward offset, end
// cap, reversed backward offset, start cap). Closed contours produce two
// loops with opposite winding whose non-zero fill is the annular stroke.
func (s Stroke) Outline(p *Polygon) *Polygon {
	if s.Width <= 0 || p == nil || p.IsEmpty() {
		return &Polygon{}
	}
	src := p
	if s.IsDashed() {
		src = s.Dash.ApplyTo(p)
	}

	limit := s.MiterLimit
	if limit < 1 {
		limit = 1
	}
	exp := stroke.NewStrokeExpander(stroke.Stroke{
		Width:      s.Width,
		Cap:        stroke.LineCap(s.Cap),
		Join:       stroke.LineJoin(s.Join),
		MiterLimit: limit,
	})

	var b PathBuilder
	for i := 0; i < src.NumContours(); i++ {
		pts := src.ContourPoints(i)
		if len(pts) < 2 {
			continue
		}
		elems := make([]stroke.PathElement, 0, len(pts)+1)
		elems = append(elems, stroke.MoveTo{Point: stroke.Point(pts[0])})
		for _, pt := range pts[1:] {
			elems = append(elems, stroke.LineTo{Point: stroke.Point(pt)})
		}
		if src.Closed[i] {
			elems = append(elems, stroke.Close{})
		}
		outlineToBuilder(exp.Expand(elems), &b)
	}
	return b.Polygon()
}

// outlineToBuilder replays expander output into a polygon builder.
func outlineToBuilder(elems []stroke.PathElement, b *PathBuilder) {
	for _, el := range elems {
		switch e := el.(type) {
		case stroke.MoveTo:
			b.MoveTo(e.Point.X, e.Point.Y)
		case stroke.LineTo:
			b.LineTo(e.Point.X, e.Point.Y)
		case stroke.QuadTo:
			b.QuadTo(e.Control.X, e.Control.Y, e.Point.X, e.Point.Y)
		case stroke.CubicTo:
			b.CubicTo(e.Control1.X, e.Control1.Y, e.Control2.X, e.Control2.Y, e.Point.X, e.Point.Y)
		case stroke.Close:
			b.Close()
		}
	}
}

// Thin returns a thin stroke (0.5 pixels).
func Thin() Stroke {
	return DefaultStroke().WithWidth(0.5)
}

// Thick returns a thick stroke (3 pixels).
func Thick() Stroke {
	return DefaultStroke().WithWidth(3.0)
}

// Bold returns a bold stroke (5 pixels).
func Bold() Stroke {
	return DefaultStroke().WithWidth(5.0)
}

// RoundStroke returns a stroke with round caps and joins.
func RoundStroke() Stroke {
	return DefaultStroke().WithCap(LineCapRound).WithJoin(LineJoinRound)
}

// SquareStroke returns a stroke with square caps.
func SquareStroke() Stroke {
	return DefaultStroke().WithCap(LineCapSquare)
}

// DashedStroke returns a dashed stroke with the given pattern.
func DashedStroke(lengths ...float64) Stroke {
	return DefaultStroke().WithDashPattern(lengths...)
}

// DottedStroke returns a dotted stroke.
// Uses a 2px width with round caps on 0.1-long dashes and 4-long gaps, so
// each dash renders as a round dot.
func DottedStroke() Stroke {
	return Stroke{
		Width:      2.0,
		Cap:        LineCapRound,
		Join:       LineJoinRound,
		MiterLimit: 4.0,
		Dash:       NewDash(0.1, 4),
	}
}
