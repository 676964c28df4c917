// SPDX-License-Identifier: MIT
// Package: friendrank/builder
//
// impl_cycle.go: implementation of Cycle(n) constructor.
//
// Contract:
//   • n ≥ 3 (else ErrTooFewVertices).
//   • Emits edges in stable order i - (i+1)%n for i=0..n-1.
//
// Complexity: O(n) nodes + O(n) edges.

package builder

import (
	"fmt"

	"github.com/katalvlaran/friendrank/core"
)

const (
	methodCycle   = "Cycle"
	minCycleNodes = 3
)

// Cycle returns a Constructor that builds an n-node ring C_n.
func Cycle(n int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if n < minCycleNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodCycle, n, minCycleNodes, ErrTooFewVertices)
		}

		addNodes(g, cfg, n)
		for i := 0; i < n; i++ {
			if err := connect(g, methodCycle, cfg.idFn(i), cfg.idFn((i+1)%n)); err != nil {
				return err
			}
		}

		return nil
	}
}
