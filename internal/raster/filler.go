package raster

// Filler drives the ACCUMULATE -> RESOLVE -> CLEAR lifecycle of a CellBuffer
// against a flat vertex list, implementing the accumulate and resolve steps
// of the fill. Compositing (fetcher evaluation, blend kernel) is the caller's
// responsibility; Filler only produces per-row alpha runs.
type Filler struct {
	cells *CellBuffer
}

// NewFiller creates a filler for the given raster target dimensions.
func NewFiller(width, height int) *Filler {
	return &Filler{cells: NewCellBuffer(width, height)}
}

// Width and Height report the target dimensions.
func (f *Filler) Width() int  { return f.cells.Width() }
func (f *Filler) Height() int { return f.cells.Height() }

// AddPolygon resolves vertices/contourCounts into contours and accumulates
// every directed edge (including the wrap-around closing edge of each
// contour) into the cell buffer. counts may be nil, in which case the whole
// vertex list is treated as one contour. If counts is non-nil but its sum
// does not match len(vertices), the call falls back to a single implicit
// contour, so malformed counts degrade gracefully instead of erroring.
func (f *Filler) AddPolygon(vertices []Point, counts []int) {
	if len(vertices) < 3 {
		return
	}

	contours := resolveContours(len(vertices), counts)

	offset := 0
	for _, n := range contours {
		if n >= 2 && offset+n <= len(vertices) {
			f.addContour(vertices[offset : offset+n])
		}
		offset += n
	}
}

// addContour accumulates every directed edge of one contour, including the
// wrap-around edge from the last vertex back to the first.
func (f *Filler) addContour(points []Point) {
	n := len(points)
	if n < 2 {
		return
	}
	for i := 0; i < n; i++ {
		p0 := points[i]
		p1 := points[(i+1)%n]
		f.cells.AddEdge(p0, p1)
	}
}

// resolveContours validates contourCounts against the vertex count and
// returns either the validated counts or a single-contour fallback.
func resolveContours(totalVertices int, counts []int) []int {
	if counts == nil {
		return []int{totalVertices}
	}
	sum := 0
	for _, c := range counts {
		if c <= 0 {
			return []int{totalVertices}
		}
		sum += c
	}
	if sum != totalVertices {
		return []int{totalVertices}
	}
	return counts
}

// Run describes a maximal horizontal span of constant, non-zero alpha
// produced by Resolve. X1 is exclusive.
type Run struct {
	Y, X0, X1 int
	Alpha     uint8
}

// Resolve walks every row touched since the last Clear and invokes emit once
// per maximal run of constant non-zero alpha. Rows with no
// recorded cells contribute nothing and are skipped entirely. Resolve does
// not clear the cell buffer; call Clear separately once compositing for this
// draw has consumed all runs (the lifecycle's RESOLVE and CLEAR are kept as
// distinct calls so a caller can inspect cells between them in tests).
func (f *Filler) Resolve(rule FillRule, emit func(Run)) {
	minY, maxY, ok := f.cells.DirtyRows()
	if !ok {
		return
	}

	convert := ConvertNonZero
	if rule == EvenOdd {
		convert = ConvertEvenOdd
	}

	for y := minY; y <= maxY; y++ {
		lo, hi, touched := f.cells.RowRange(y)
		if !touched {
			continue
		}
		f.resolveRow(y, lo, hi, convert, emit)
	}
}

func (f *Filler) resolveRow(y, lo, hi int, convert func(int32) uint8, emit func(Run)) {
	width := f.cells.width
	base := y * width

	var acc int32
	pendingStart := -1
	pendingAlpha := uint8(0)

	flush := func(end int) {
		if pendingStart >= 0 && pendingAlpha != 0 {
			emit(Run{Y: y, X0: pendingStart, X1: end, Alpha: pendingAlpha})
		}
		pendingStart = -1
	}

	x := lo
	for x <= hi {
		// Word-at-a-time skip: if an entire 64-pixel word has no
		// recorded contribution, cover/area are zero throughout it, so
		// the running alpha is unchanged for the whole word.
		if x%64 == 0 && x+63 <= hi {
			word := y*f.cells.wordsPerRow + x/64
			if f.cells.bits[word] == 0 {
				a := convert(acc)
				if pendingStart < 0 {
					if a != 0 {
						pendingStart = x
						pendingAlpha = a
					}
				} else if a != pendingAlpha {
					flush(x)
					if a != 0 {
						pendingStart = x
						pendingAlpha = a
					}
				}
				x += 64
				continue
			}
		}

		idx := base + x
		cov := acc + f.cells.cover[idx] - f.cells.area[idx]
		a := convert(cov)
		acc += f.cells.cover[idx]

		if pendingStart < 0 {
			if a != 0 {
				pendingStart = x
				pendingAlpha = a
			}
		} else if a != pendingAlpha {
			flush(x)
			if a != 0 {
				pendingStart = x
				pendingAlpha = a
			}
		}
		x++
	}
	flush(hi + 1)
}

// Clear zeros every cell, bitmask word, and row range touched since the last
// Clear. This is the CLEAR phase of the state machine.
func (f *Filler) Clear() {
	f.cells.Clear()
}
