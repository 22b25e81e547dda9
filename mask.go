package vraster

import (
	"image"

	"github.com/gogpu/vraster/core"
	"github.com/gogpu/vraster/internal/raster"
)

// Mask represents an alpha mask for compositing operations.
// Values range from 0 (fully transparent) to 255 (fully opaque).
type Mask struct {
	width  int
	height int
	data   []uint8
}

// NewMask creates a new empty mask with the given dimensions.
// All values are initialized to 0 (fully transparent).
func NewMask(width, height int) *Mask {
	return &Mask{
		width:  width,
		height: height,
		data:   make([]uint8, width*height),
	}
}

// NewMaskFromAlpha creates a mask from an image's alpha channel.
func NewMaskFromAlpha(img image.Image) *Mask {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	mask := NewMask(w, h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			_, _, _, a := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// a is 0-65535, shift by 8 to get 0-255
			// #nosec G115 -- safe: a>>8 is always in range [0, 255]
			mask.data[y*w+x] = uint8(a >> 8)
		}
	}

	return mask
}

// Bounds returns the mask dimensions as an image.Rectangle.
func (m *Mask) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.width, m.height)
}

// Width returns the mask width.
func (m *Mask) Width() int { return m.width }

// Height returns the mask height.
func (m *Mask) Height() int { return m.height }

// At returns the mask value at (x, y).
// Returns 0 for coordinates outside the mask bounds.
func (m *Mask) At(x, y int) uint8 {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return 0
	}
	return m.data[y*m.width+x]
}

// Set sets the mask value at (x, y).
// Coordinates outside the mask bounds are ignored.
func (m *Mask) Set(x, y int, value uint8) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return
	}
	m.data[y*m.width+x] = value
}

// Fill fills the entire mask with a value.
func (m *Mask) Fill(value uint8) {
	for i := range m.data {
		m.data[i] = value
	}
}

// Invert inverts all mask values (255 - value).
func (m *Mask) Invert() {
	for i := range m.data {
		m.data[i] = 255 - m.data[i]
	}
}

// Clear clears the mask (sets all values to 0).
func (m *Mask) Clear() {
	for i := range m.data {
		m.data[i] = 0
	}
}

// Clone creates a copy of the mask.
func (m *Mask) Clone() *Mask {
	clone := NewMask(m.width, m.height)
	copy(clone.data, m.data)
	return clone
}

// Data returns the underlying mask data slice.
// This is useful for advanced operations.
func (m *Mask) Data() []uint8 {
	return m.data
}

// NewMaskFromPolygon rasterizes polygon coverage into a fresh mask. The
// resolved coverage passes through a per-row run-length accumulator, which
// adds the runs of a row and saturates the sum at 255.
func NewMaskFromPolygon(width, height int, vertices []float64, rule FillRule, counts []int) *Mask {
	m := NewMask(width, height)
	if width <= 0 || height <= 0 {
		return m
	}

	n := len(vertices) / 2
	if n < 3 {
		return m
	}
	pts := make([]raster.Point, n)
	for i := 0; i < n; i++ {
		pts[i] = raster.Point{X: vertices[i*2], Y: vertices[i*2+1]}
	}

	filler := raster.NewFiller(width, height)
	filler.AddPolygon(pts, counts)

	runs := core.NewAlphaRuns(width)
	row := -1
	flush := func() {
		if row < 0 {
			return
		}
		for x, alpha := range runs.Iter() {
			m.Set(x, row, alpha)
		}
		runs.Reset()
	}
	filler.Resolve(ruleToRaster(rule), func(run raster.Run) {
		if run.Y != row {
			flush()
			row = run.Y
		}
		runs.AddWithCoverage(run.X0, run.Alpha, run.X1-run.X0-1, 0, run.Alpha)
	})
	flush()
	filler.Clear()
	return m
}
