// SPDX-License-Identifier: MIT
// Package: friendrank/builder
//
// impl_complete.go: implementation of Complete(n) constructor.
//
// Contract:
//   • n ≥ 1 (else ErrTooFewVertices). K_1 is a single isolated node.
//   • Emits every unordered pair {i,j}, i<j, with i asc then j asc.
//
// Complexity: O(n) nodes + O(n²) edges.

package builder

import (
	"fmt"

	"github.com/katalvlaran/friendrank/core"
)

const (
	methodComplete   = "Complete"
	minCompleteNodes = 1
)

// Complete returns a Constructor that builds K_n, where everybody is friends
// with everybody else.
func Complete(n int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if n < minCompleteNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodComplete, n, minCompleteNodes, ErrTooFewVertices)
		}

		addNodes(g, cfg, n)
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if err := connect(g, methodComplete, cfg.idFn(i), cfg.idFn(j)); err != nil {
					return err
				}
			}
		}

		return nil
	}
}
