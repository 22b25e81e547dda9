package vraster

// EngineOption configures an engine during creation with NewEngine.
//
// Example:
//
//	// 8x8 rotated-grid supersampling
//	f, err := vraster.NewEngine(vraster.EngineSSAA, 256, 256,
//	    vraster.WithSamples(8), vraster.WithRotatedGrid())
type EngineOption func(*engineConfig)

// engineConfig holds optional engine configuration.
type engineConfig struct {
	samples      int
	rotatedGrid  bool
	verticalTaps int
	jitter       bool
}

// WithSamples sets the per-axis sample count for sampling-grid engines
// (SSAA, tessellation masks).
func WithSamples(n int) EngineOption {
	return func(c *engineConfig) {
		c.samples = n
	}
}

// WithRotatedGrid enables the rotated sample layout on the SSAA engine.
func WithRotatedGrid() EngineOption {
	return func(c *engineConfig) {
		c.rotatedGrid = true
	}
}

// WithVerticalTaps sets the ACDR engine's vertical supersampling factor
// (2 or 4; anything else means a single centerline tap).
func WithVerticalTaps(n int) EngineOption {
	return func(c *engineConfig) {
		c.verticalTaps = n
	}
}

// WithJitter enables stochastic smoothing on the SCP-AED engine's
// distance-band samples.
func WithJitter() EngineOption {
	return func(c *engineConfig) {
		c.jitter = true
	}
}
