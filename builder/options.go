// SPDX-License-Identifier: MIT
// Package: friendrank/builder
//
// options.go: functional options for the builder package.
//
// Contract:
//   • Option constructors validate and PANIC on meaningless inputs.
//   • Seeding is explicit via WithSeed or WithRand.

package builder

import (
	"math/rand"

	"github.com/katalvlaran/friendrank/core"
)

// BuilderOption customizes a builderConfig before construction begins.
type BuilderOption func(*builderConfig)

// WithIDScheme sets the position → NodeID mapping. The function must be
// injective over the indices a constructor uses. Panics on nil.
func WithIDScheme(fn func(int) core.NodeID) BuilderOption {
	if fn == nil {
		panic("builder: WithIDScheme(nil)")
	}
	return func(c *builderConfig) {
		c.idFn = fn
	}
}

// WithIDOffset maps index i to NodeID(base+i). Handy for composing two
// topologies in one BuildGraph call without colliding identifiers.
func WithIDOffset(base core.NodeID) BuilderOption {
	return func(c *builderConfig) {
		c.idFn = func(i int) core.NodeID { return base + core.NodeID(i) }
	}
}

// WithRand provides an explicit RNG. Panics on nil.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *builderConfig) {
		c.rng = r
	}
}

// WithSeed creates a new *rand.Rand with the given seed.
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}
