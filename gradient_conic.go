package vraster

import "math"

// ConicGradientBrush represents an angular color transition swept around a
// center point. Colors run from StartAngle to EndAngle; with the default
// full-turn sweep, t = (atan2(py-cy, px-cx) - StartAngle) / 2pi normalized
// into [0, 1).
//
// Example:
//
//	// Color wheel
//	wheel := vraster.NewConicGradientBrush(50, 50, 0).
//	    AddColorStop(0, vraster.Red).
//	    AddColorStop(0.333, vraster.Green).
//	    AddColorStop(0.666, vraster.Blue).
//	    AddColorStop(1, vraster.Red)
type ConicGradientBrush struct {
	Center     Point       // Center of the sweep
	StartAngle float64     // Start angle in radians
	EndAngle   float64     // End angle in radians
	Stops      []ColorStop // Color stops defining the gradient
	Extend     ExtendMode  // How gradient extends beyond bounds

	lut *gradientLUT
}

// NewConicGradientBrush creates a conic gradient centered at (cx, cy)
// beginning at startAngle (radians) and sweeping a full turn.
func NewConicGradientBrush(cx, cy, startAngle float64) *ConicGradientBrush {
	return &ConicGradientBrush{
		Center:     Point{X: cx, Y: cy},
		StartAngle: startAngle,
		EndAngle:   startAngle + 2*math.Pi,
		Stops:      nil,
		Extend:     ExtendPad,
	}
}

// SetEndAngle sets the end angle of the sweep.
// Returns the gradient for method chaining.
func (g *ConicGradientBrush) SetEndAngle(endAngle float64) *ConicGradientBrush {
	g.EndAngle = endAngle
	return g
}

// AddColorStop adds a color stop at the specified offset.
// Offset should be in the range [0, 1].
// Returns the gradient for method chaining.
func (g *ConicGradientBrush) AddColorStop(offset float64, c RGBA) *ConicGradientBrush {
	g.Stops = append(g.Stops, ColorStop{Offset: offset, Color: c})
	g.lut = nil
	return g
}

// SetExtend sets the extend mode for the gradient.
// Returns the gradient for method chaining.
func (g *ConicGradientBrush) SetExtend(mode ExtendMode) *ConicGradientBrush {
	g.Extend = mode
	return g
}

// brushMarker implements the Brush interface marker.
func (ConicGradientBrush) brushMarker() {}

func (g *ConicGradientBrush) ensure() {
	if g.lut == nil {
		g.lut = buildGradientLUT(g.Stops)
	}
}

// paramAt converts a position to the sweep parameter t.
func (g *ConicGradientBrush) paramAt(x, y float64) (float64, bool) {
	dx := x - g.Center.X
	dy := y - g.Center.Y
	if dx == 0 && dy == 0 {
		return 0, false // undefined angle at the center
	}

	sweep := g.EndAngle - g.StartAngle
	if sweep == 0 {
		return 0, true
	}

	rel := normalizeAngle(math.Atan2(dy, dx)-g.StartAngle, sweep)
	return rel / sweep, true
}

// normalizeAngle wraps an angle into one period of the sweep direction:
// [0, 2pi) for positive sweeps, (-2pi, 0] for negative ones.
func normalizeAngle(angle, sweep float64) float64 {
	twoPi := 2 * math.Pi

	if sweep > 0 {
		angle = math.Mod(angle, twoPi)
		if angle < 0 {
			angle += twoPi
		}
	} else {
		angle = math.Mod(angle, twoPi)
		if angle > 0 {
			angle -= twoPi
		}
	}
	return angle
}

// Fetch returns the gradient color for the pixel at (x, y), sampling at
// the pixel center.
func (g *ConicGradientBrush) Fetch(x, y int) RGBA32 {
	g.ensure()

	t, ok := g.paramAt(float64(x)+0.5, float64(y)+0.5)
	if !ok {
		return firstStopColor(g.Stops).Pack32()
	}
	return g.lut.lookup(t, g.Extend)
}

// ColorAt returns the color at the given point.
// Implements the Pattern and Brush interfaces.
func (g *ConicGradientBrush) ColorAt(x, y float64) RGBA {
	g.ensure()

	t, ok := g.paramAt(x, y)
	if !ok {
		return firstStopColor(g.Stops)
	}
	return g.lut.lookup(t, g.Extend).Unpack()
}
