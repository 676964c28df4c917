// SPDX-License-Identifier: MIT
// Package: friendrank/builder
//
// api.go: public entry point for the builder package.
//
// Design contract:
//   - One orchestrator: BuildGraph(opts, cons...). Creates g, resolves cfg, runs cons in order.
//   - Constructors validate early and return wrapped sentinels; they never panic.
//   - Same options, seed and constructor order ⇒ identical graphs.

package builder

import (
	"fmt"

	"github.com/katalvlaran/friendrank/core"
)

// Constructor applies a deterministic graph mutation using the resolved
// builderConfig.
type Constructor func(g *core.Graph, cfg builderConfig) error

// BuildGraph creates a new core.Graph, resolves the builder configuration
// from opts and applies all constructors in order. Any constructor error is
// wrapped with "BuildGraph: %w" and returned immediately; the partially built
// graph is discarded.
//
// Complexity: O(len(opts)) plus Σ cost of each constructor.
func BuildGraph(opts []BuilderOption, cons ...Constructor) (*core.Graph, error) {
	g := core.NewGraph()
	cfg := newBuilderConfig(opts...)

	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("BuildGraph: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(g, cfg); err != nil {
			return nil, fmt.Errorf("BuildGraph: %w", err)
		}
	}

	return g, nil
}

// Topology maps a topology name (as accepted by the CLI) to its constructor.
// p is only consulted by "random".
func Topology(name string, n int, p float64) (Constructor, error) {
	switch name {
	case "star":
		return Star(n), nil
	case "cycle":
		return Cycle(n), nil
	case "path":
		return Path(n), nil
	case "complete":
		return Complete(n), nil
	case "random":
		return RandomSparse(n, p), nil
	default:
		return nil, fmt.Errorf("Topology: unknown topology %q: %w", name, ErrConstructFailed)
	}
}

// connect wires one friendship and wraps failures with the constructor name.
func connect(g *core.Graph, method string, a, b core.NodeID) error {
	if _, err := g.Connect(a, b); err != nil {
		return fmt.Errorf("%s: Connect(%d,%d): %w: %w", method, a, b, ErrConstructFailed, err)
	}

	return nil
}

// addNodes inserts idFn(0..n-1) in ascending index order.
func addNodes(g *core.Graph, cfg builderConfig, n int) {
	for i := 0; i < n; i++ {
		g.AddNode(cfg.idFn(i))
	}
}
