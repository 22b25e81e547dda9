// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package core provides CPU rendering primitives shared across vraster's
// engines.
//
// The package holds the pieces that are useful to more than one consumer
// without belonging to any single engine. Currently that is AlphaRuns,
// the run-length-encoded coverage accumulator used when resolved coverage
// spans need to be stored or merged per scanline (mask construction,
// engine comparisons) rather than composited immediately.
//
// # References
//
//   - tiny-skia's alpha_runs.rs, the pattern AlphaRuns follows
package core
