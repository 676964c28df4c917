// SPDX-License-Identifier: MIT
// Package: friendrank/builder
//
// config.go: internal configuration and deterministic defaults.
//
// Deterministic defaults:
//   • idFn = oneBasedID (index 0 → NodeID 1)
//   • rng  = nil        (pure/deterministic unless seeded)

package builder

import (
	"math/rand"

	"github.com/katalvlaran/friendrank/core"
)

// builderConfig aggregates all knobs used by constructors.
// It is passed by VALUE to constructors.
type builderConfig struct {
	// idFn maps a zero-based position to a node identifier.
	idFn func(int) core.NodeID
	// rng drives stochastic choices; nil means "no randomness".
	rng *rand.Rand
}

// newBuilderConfig starts from defaults and applies opts in order (last wins).
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		idFn: oneBasedID,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// oneBasedID renders index i as NodeID(i+1).
func oneBasedID(i int) core.NodeID {
	return core.NodeID(i + 1)
}
