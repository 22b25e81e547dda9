// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package core

import "iter"

// AlphaRuns accumulates one scanline of coverage as runs of equal alpha.
//
// A scanline is stored as a chain of (length, alpha) pairs: runs[x] holds
// the length of the run starting at x, alpha[x] its coverage, and a zero
// length terminates the chain. Long constant stretches cost one entry, so
// merging many coverage spans into a row stays cheap, and repeated Add
// calls accumulate: contributions to the same pixels saturate at 255.
//
// Resolved spans from the cell rasterizer land here when a caller needs to
// merge or store per-row coverage (mask building) instead of compositing
// it immediately.
type AlphaRuns struct {
	runs  []uint16
	alpha []uint8
	width int

	// offset is where the next sequential Add begins; left-to-right
	// callers never rescan the chain from the start.
	offset int
}

// AlphaRun is one decoded run for iteration.
type AlphaRun struct {
	X     int   // Starting x position
	Alpha uint8 // Coverage value (0-255)
	Count int   // Run length
}

// NewAlphaRuns creates a scanline accumulator of the given width.
func NewAlphaRuns(width int) *AlphaRuns {
	if width <= 0 {
		width = 1
	}
	ar := &AlphaRuns{
		runs:  make([]uint16, width+1),
		alpha: make([]uint8, width+1),
		width: width,
	}
	ar.Reset()
	return ar
}

// Reset restores a single zero-alpha run spanning the scanline. O(1): the
// chain structure makes clearing independent of width.
func (ar *AlphaRuns) Reset() {
	ar.offset = 0
	if ar.width > 65535 {
		ar.runs[0] = 65535
	} else {
		ar.runs[0] = uint16(ar.width) //nolint:gosec // bounded above
	}
	ar.runs[ar.width] = 0 // terminator
	ar.alpha[0] = 0
}

// Clear is Reset under the name span consumers expect.
func (ar *AlphaRuns) Clear() {
	ar.Reset()
}

// IsEmpty reports whether the scanline holds no coverage: a single
// zero-alpha run followed by the terminator.
func (ar *AlphaRuns) IsEmpty() bool {
	if ar.runs[0] == 0 {
		return true
	}
	return ar.alpha[0] == 0 && ar.runs[ar.runs[0]] == 0
}

// Width returns the scanline width.
func (ar *AlphaRuns) Width() int {
	return ar.width
}

// SetOffset rewinds (or advances) the sequential-Add position. Use 0 when
// revisiting a scanline from the left.
func (ar *AlphaRuns) SetOffset(offset int) {
	ar.offset = offset
}

// saturate folds an accumulated 0-510 sum back to 0-255, mapping the
// 256 boundary down so exactly-full stays exactly-full.
func saturate(sum uint16) uint8 {
	if sum > 256 {
		sum = 256
	}
	return uint8(sum - (sum >> 8)) //nolint:gosec // bounded by 255 after fold
}

// Add deposits coverage starting at x: a fractional left-edge pixel, a
// stretch of full-coverage pixels, and a fractional right-edge pixel (any
// of which may be zero). Contributions accumulate across calls.
func (ar *AlphaRuns) Add(x int, startAlpha uint8, middleCount int, endAlpha uint8) {
	ar.AddWithCoverage(x, startAlpha, middleCount, endAlpha, 255)
}

// AddWithCoverage is Add with the middle stretch capped at maxValue
// instead of full coverage, for spans that are themselves translucent.
func (ar *AlphaRuns) AddWithCoverage(x int, startAlpha uint8, middleCount int, endAlpha uint8, maxValue uint8) {
	if x < 0 || x >= ar.width {
		return
	}

	base := ar.offset
	last := ar.offset
	x -= ar.offset

	if startAlpha != 0 {
		ar.split(base, x, 1)
		ar.alpha[base+x] = saturate(uint16(ar.alpha[base+x]) + uint16(startAlpha))
		base += x + 1
		x = 0
	}

	if middleCount > 0 {
		ar.split(base, x, middleCount)
		base += x
		x = 0

		pos := base
		remaining := middleCount
		for remaining > 0 {
			ar.alpha[pos] = saturate(uint16(ar.alpha[pos]) + uint16(maxValue))
			n := int(ar.runs[pos])
			if n <= 0 {
				break
			}
			if n > remaining {
				n = remaining
			}
			pos += n
			remaining -= n
		}
		base = pos
		last = pos
	}

	if endAlpha != 0 {
		ar.split(base, x, 1)
		ar.alpha[base+x] = saturate(uint16(ar.alpha[base+x]) + uint16(endAlpha))
		last = base + x
	}

	ar.offset = last
}

// split breaks the run chain so that run boundaries exist at positions x
// and x+count relative to base, letting the caller write that sub-range
// without disturbing neighbors. New fragments inherit their run's alpha.
func (ar *AlphaRuns) split(base, x, count int) {
	if count <= 0 {
		return
	}

	ar.splitAt(base, x)
	ar.splitAt(base+x, count)
}

// splitAt walks the chain from pos and inserts a boundary rel pixels in.
func (ar *AlphaRuns) splitAt(pos, rel int) {
	for rel > 0 {
		n := int(ar.runs[pos])
		if n <= 0 {
			return
		}
		if rel < n {
			ar.alpha[pos+rel] = ar.alpha[pos]
			ar.runs[pos] = uint16(rel)       //nolint:gosec // rel < n fits
			ar.runs[pos+rel] = uint16(n - rel) //nolint:gosec // positive remainder
			return
		}
		pos += n
		rel -= n
	}
}

// Iter yields (x, alpha) for every covered pixel, skipping empty runs.
func (ar *AlphaRuns) Iter() iter.Seq2[int, uint8] {
	return func(yield func(int, uint8) bool) {
		x := 0
		for x < ar.width {
			n := int(ar.runs[x])
			if n <= 0 {
				break
			}
			if a := ar.alpha[x]; a > 0 {
				for i := 0; i < n && x+i < ar.width; i++ {
					if !yield(x+i, a) {
						return
					}
				}
			}
			x += n
		}
	}
}

// IterRuns yields whole runs, cheaper than Iter when the consumer can
// handle spans. Like Iter, it skips empty runs.
func (ar *AlphaRuns) IterRuns() iter.Seq[AlphaRun] {
	return func(yield func(AlphaRun) bool) {
		x := 0
		for x < ar.width {
			n := int(ar.runs[x])
			if n <= 0 {
				break
			}
			if a := ar.alpha[x]; a > 0 {
				if !yield(AlphaRun{X: x, Alpha: a, Count: n}) {
					return
				}
			}
			x += n
		}
	}
}

// GetAlpha returns the coverage at x, or 0 outside the scanline.
func (ar *AlphaRuns) GetAlpha(x int) uint8 {
	if x < 0 || x >= ar.width {
		return 0
	}
	pos := 0
	for pos < ar.width {
		n := int(ar.runs[pos])
		if n <= 0 {
			break
		}
		if x < pos+n {
			return ar.alpha[pos]
		}
		pos += n
	}
	return 0
}

// CoveredBounds returns the inclusive [minX, maxX] range of covered
// pixels, or ok=false for an empty scanline.
func (ar *AlphaRuns) CoveredBounds() (minX, maxX int, ok bool) {
	pos := 0
	minX = -1
	for pos < ar.width {
		n := int(ar.runs[pos])
		if n <= 0 {
			break
		}
		if ar.alpha[pos] != 0 {
			if minX < 0 {
				minX = pos
			}
			maxX = pos + n - 1
		}
		pos += n
	}
	if minX < 0 {
		return 0, 0, false
	}
	return minX, maxX, true
}

// CopyTo expands the runs into a flat per-pixel buffer of at least the
// scanline width.
func (ar *AlphaRuns) CopyTo(dst []uint8) {
	if len(dst) < ar.width {
		return
	}
	x := 0
	for x < ar.width {
		n := int(ar.runs[x])
		if n <= 0 {
			break
		}
		a := ar.alpha[x]
		for i := 0; i < n && x+i < ar.width; i++ {
			dst[x+i] = a
		}
		x += n
	}
}
