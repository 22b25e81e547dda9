package vraster

// LinearGradientBrush represents a linear color transition between two
// points. It supports multiple color stops and configurable extend modes,
// and resolves colors through a 256-entry lookup table shared by the float
// and per-pixel access paths.
//
// Example:
//
//	gradient := vraster.NewLinearGradientBrush(0, 0, 100, 0).
//	    AddColorStop(0, vraster.Red).
//	    AddColorStop(0.5, vraster.Yellow).
//	    AddColorStop(1, vraster.Blue)
type LinearGradientBrush struct {
	Start  Point       // Start point of the gradient
	End    Point       // End point of the gradient
	Stops  []ColorStop // Color stops defining the gradient
	Extend ExtendMode  // How gradient extends beyond bounds

	lut *gradientLUT
	// Cached projection: d = End-Start, invLenSq = 1/|d|^2.
	d        Point
	invLenSq float64
}

// NewLinearGradientBrush creates a new linear gradient from (x0, y0) to (x1, y1).
func NewLinearGradientBrush(x0, y0, x1, y1 float64) *LinearGradientBrush {
	return &LinearGradientBrush{
		Start:  Point{X: x0, Y: y0},
		End:    Point{X: x1, Y: y1},
		Stops:  nil,
		Extend: ExtendPad,
	}
}

// AddColorStop adds a color stop at the specified offset.
// Offset should be in the range [0, 1].
// Returns the gradient for method chaining.
func (g *LinearGradientBrush) AddColorStop(offset float64, c RGBA) *LinearGradientBrush {
	g.Stops = append(g.Stops, ColorStop{Offset: offset, Color: c})
	g.lut = nil
	return g
}

// SetExtend sets the extend mode for the gradient.
// Returns the gradient for method chaining.
func (g *LinearGradientBrush) SetExtend(mode ExtendMode) *LinearGradientBrush {
	g.Extend = mode
	return g
}

// brushMarker implements the Brush interface marker.
func (LinearGradientBrush) brushMarker() {}

// ensure rebuilds the LUT and projection cache after stop edits.
func (g *LinearGradientBrush) ensure() {
	if g.lut != nil {
		return
	}
	g.lut = buildGradientLUT(g.Stops)
	g.d = g.End.Sub(g.Start)
	lenSq := g.d.LengthSquared()
	if lenSq > 0 {
		g.invLenSq = 1 / lenSq
	} else {
		g.invLenSq = 0
	}
}

// Fetch returns the gradient color for the pixel at (x, y), sampling at
// the pixel center.
func (g *LinearGradientBrush) Fetch(x, y int) RGBA32 {
	g.ensure()

	// Degenerate gradient (start == end): the first stop everywhere.
	if g.invLenSq == 0 {
		return firstStopColor(g.Stops).Pack32()
	}

	px := float64(x) + 0.5 - g.Start.X
	py := float64(y) + 0.5 - g.Start.Y
	t := (px*g.d.X + py*g.d.Y) * g.invLenSq
	return g.lut.lookup(t, g.Extend)
}

// ColorAt returns the color at the given point.
// Implements the Pattern and Brush interfaces.
func (g *LinearGradientBrush) ColorAt(x, y float64) RGBA {
	g.ensure()

	if g.invLenSq == 0 {
		return firstStopColor(g.Stops)
	}

	px := x - g.Start.X
	py := y - g.Start.Y
	t := (px*g.d.X + py*g.d.Y) * g.invLenSq
	return g.lut.lookup(t, g.Extend).Unpack()
}
