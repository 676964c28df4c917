// SPDX-License-Identifier: MIT
// Package: friendrank/builder
//
// impl_star.go - implementation of Star(n) constructor.
//
// Contract:
//   - n ≥ 2 (else ErrTooFewVertices).
//   - Hub is idFn(0); leaves idFn(1..n-1) in ascending index order.
//   - Spokes are emitted hub - leaf[i] for increasing i.
//
// Complexity: O(n) nodes + O(n-1) edges.

package builder

import (
	"fmt"

	"github.com/katalvlaran/friendrank/core"
)

const (
	methodStar   = "Star"
	minStarNodes = 2
)

// Star returns a Constructor that builds a star with n nodes: one hub and
// n-1 leaves, each befriending only the hub.
func Star(n int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if n < minStarNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodStar, n, minStarNodes, ErrTooFewVertices)
		}

		addNodes(g, cfg, n)
		hub := cfg.idFn(0)
		for i := 1; i < n; i++ {
			if err := connect(g, methodStar, hub, cfg.idFn(i)); err != nil {
				return err
			}
		}

		return nil
	}
}
