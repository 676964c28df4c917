// SPDX-License-Identifier: MIT
// Package: friendrank/builder
//
// errors.go: sentinel errors for the builder package.
//
// Error policy:
//   • Only package-level sentinels are exposed; branch with errors.Is.
//   • Constructors attach context with "%s: ...: %w" (method name first).
//   • Algorithms never panic; option constructors panic on nonsense input.

package builder

import "errors"

// ErrTooFewVertices indicates that n is below the minimum of the requested topology.
var ErrTooFewVertices = errors.New("builder: parameter too small")

// ErrInvalidProbability indicates a probability outside [0,1].
var ErrInvalidProbability = errors.New("builder: probability out of range")

// ErrNeedRandSource indicates that a stochastic constructor ran without
// WithSeed or WithRand.
var ErrNeedRandSource = errors.New("builder: rng is required")

// ErrConstructFailed indicates a nil constructor or an unexpected failure of
// the underlying graph while wiring a topology.
var ErrConstructFailed = errors.New("builder: construction failed")
