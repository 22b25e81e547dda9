package vraster

import (
	"sync"

	"github.com/gogpu/vraster/internal/altraster"
)

// Engine identifies one of the rasterization engines hosted by this
// package.
//
// EngineAnalytic is the reference engine; the rest are the alternative
// family, each with its own coverage model behind the same polygon-fill
// contract. Identical inputs across engines stay within a small per-pixel
// deviation of the analytic reference, which is what makes side-by-side
// benchmarking meaningful.
type Engine int

const (
	// EngineAnalytic is the cell-accumulation scanline rasterizer
	// (the reference engine).
	EngineAnalytic Engine = iota

	// EngineACDR accumulates per-scanline coverage derivatives with
	// optional vertical supersampling.
	EngineACDR

	// EngineDBSR computes per-channel coverage on three horizontal
	// subpixels from signed edge distance.
	EngineDBSR

	// EngineEPLAA reads coverage from a precomputed edge-orientation x
	// signed-distance table, supersampling pathological pixels.
	EngineEPLAA

	// EngineQCS quantizes a 3x2 sample grid into a 6-bit signature
	// indexing a 64-entry intensity table.
	EngineQCS

	// EngineSSAA samples a regular (optionally rotated) NxN grid with an
	// opaque-tile shortcut.
	EngineSSAA

	// EngineSCPAED classifies scanlines, refines a narrow-band signed
	// distance field, and diffuses quantization error.
	EngineSCPAED

	// EngineTess ear-clips contours into triangles rasterized with
	// population-count sample masks.
	EngineTess

	// EngineWavelet reconstructs occupancy from Haar-style quadtree
	// refinement over a power-of-two grid.
	EngineWavelet
)

// String returns the engine name.
func (e Engine) String() string {
	switch e {
	case EngineAnalytic:
		return "Analytic"
	case EngineACDR:
		return "ACDR"
	case EngineDBSR:
		return "DBSR"
	case EngineEPLAA:
		return "EPL-AA"
	case EngineQCS:
		return "QCS"
	case EngineSSAA:
		return "SSAA"
	case EngineSCPAED:
		return "SCP-AED"
	case EngineTess:
		return "Tessellation"
	case EngineWavelet:
		return "Wavelet"
	default:
		return "Unknown"
	}
}

// PolygonFiller is the polygon-fill contract every engine honors: fill a
// flat vertex list with a solid color under a fill rule, with optional
// per-contour vertex counts, into the engine's own buffer.
type PolygonFiller interface {
	// DrawPolygon fills the polygon. counts may be nil (one implicit
	// contour); counts that do not sum to the vertex total fall back to a
	// single implicit contour.
	DrawPolygon(vertices []float64, color RGBA32, rule FillRule, counts []int)

	// Clear fills the engine's buffer with a color.
	Clear(color RGBA32)

	// Pixel reads back a pixel from the engine's buffer.
	Pixel(x, y int) RGBA32

	// Size reports the buffer dimensions.
	Size() (w, h int)
}

// altEngine is the common adapter over the internal engine family.
type altEngine struct {
	buf  *altraster.Buffer
	draw func(vertices []float64, argb uint32, rule altraster.FillRule, counts []int)
}

func (a *altEngine) DrawPolygon(vertices []float64, color RGBA32, rule FillRule, counts []int) {
	a.draw(vertices, uint32(color), altraster.FillRule(rule), counts)
}

func (a *altEngine) Clear(color RGBA32) { a.buf.Clear(uint32(color)) }

func (a *altEngine) Pixel(x, y int) RGBA32 { return RGBA32(a.buf.Pixel(x, y)) }

func (a *altEngine) Size() (int, int) { return a.buf.W, a.buf.H }

// analyticFillerAdapter exposes the analytic Rasterizer under the shared
// contract.
type analyticFillerAdapter struct {
	ras *Rasterizer
}

func (a *analyticFillerAdapter) DrawPolygon(vertices []float64, color RGBA32, rule FillRule, counts []int) {
	a.ras.DrawPolygon(vertices, color, rule, CompOpSourceOver, counts)
}

func (a *analyticFillerAdapter) Clear(color RGBA32) { a.ras.Clear(color) }

func (a *analyticFillerAdapter) Pixel(x, y int) RGBA32 { return a.ras.fb.Pixel(x, y) }

func (a *analyticFillerAdapter) Size() (int, int) { return a.ras.Width(), a.ras.Height() }

// NewEngine constructs the named engine with its own buffer of the given
// size. It fails fast on non-positive dimensions and falls back to the
// analytic engine for unknown values.
func NewEngine(e Engine, width, height int, opts ...EngineOption) (PolygonFiller, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}

	var cfg engineConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	Logger().Debug("constructing engine", "engine", e.String(), "width", width, "height", height)

	var filler PolygonFiller
	switch e {
	case EngineACDR:
		eng := altraster.NewACDR(width, height)
		if cfg.verticalTaps != 0 {
			eng.SetVerticalTaps(cfg.verticalTaps)
		}
		filler = &altEngine{buf: eng.Buffer(), draw: eng.DrawPolygon}
	case EngineDBSR:
		eng := altraster.NewDBSR(width, height)
		filler = &altEngine{buf: eng.Buffer(), draw: eng.DrawPolygon}
	case EngineEPLAA:
		eng := altraster.NewEPLAA(width, height)
		filler = &altEngine{buf: eng.Buffer(), draw: eng.DrawPolygon}
	case EngineQCS:
		eng := altraster.NewQCS(width, height)
		filler = &altEngine{buf: eng.Buffer(), draw: eng.DrawPolygon}
	case EngineSSAA:
		eng := altraster.NewSSAA(width, height)
		if cfg.samples != 0 {
			eng.SetSamples(cfg.samples)
		}
		eng.SetRotatedGrid(cfg.rotatedGrid)
		filler = &altEngine{buf: eng.Buffer(), draw: eng.DrawPolygon}
	case EngineSCPAED:
		eng := altraster.NewSCPAED(width, height)
		eng.SetJitter(cfg.jitter)
		filler = &altEngine{buf: eng.Buffer(), draw: eng.DrawPolygon}
	case EngineTess:
		eng := altraster.NewTess(width, height)
		filler = &altEngine{buf: eng.Buffer(), draw: eng.DrawPolygon}
	case EngineWavelet:
		eng := altraster.NewWavelet(width, height)
		filler = &altEngine{buf: eng.Buffer(), draw: eng.DrawPolygon}
	default:
		ras, err := NewRasterizerSize(width, height)
		if err != nil {
			return nil, err
		}
		filler = &analyticFillerAdapter{ras: ras}
	}
	return filler, nil
}

// EngineConstructor builds a custom engine honoring the polygon contract.
type EngineConstructor func(width, height int) (PolygonFiller, error)

var (
	customMu      sync.RWMutex
	customEngines = map[string]EngineConstructor{}
)

// RegisterEngine registers a named external engine constructor. Subsequent
// registrations under the same name replace the previous one. Typical
// usage is a blank import wiring an experimental engine into benchmark
// harnesses:
//
//	func init() {
//	    vraster.RegisterEngine("myengine", newMyEngine)
//	}
func RegisterEngine(name string, ctor EngineConstructor) {
	customMu.Lock()
	customEngines[name] = ctor
	customMu.Unlock()
}

// NewNamedEngine constructs a previously registered custom engine. The
// second return is false when no engine is registered under the name.
func NewNamedEngine(name string, width, height int) (PolygonFiller, bool, error) {
	customMu.RLock()
	ctor, ok := customEngines[name]
	customMu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	f, err := ctor(width, height)
	return f, true, err
}
