// Package raster implements the analytic cell-accumulation scanline
// rasterizer described by the reference production engine: edges become
// per-pixel signed (cover, area) cells, resolved per row into alpha runs
// under an even-odd or non-zero winding rule.
package raster
