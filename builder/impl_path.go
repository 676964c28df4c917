// SPDX-License-Identifier: MIT
// Package: friendrank/builder
//
// impl_path.go: implementation of Path(n) constructor.
//
// Contract:
//   • n ≥ 2 (else ErrTooFewVertices).
//   • Emits edges i - i+1 for i=0..n-2.

package builder

import (
	"fmt"

	"github.com/katalvlaran/friendrank/core"
)

const (
	methodPath   = "Path"
	minPathNodes = 2
)

// Path returns a Constructor that builds a simple chain P_n. Both endpoints
// have degree 1; inner nodes have degree 2.
func Path(n int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if n < minPathNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodPath, n, minPathNodes, ErrTooFewVertices)
		}

		addNodes(g, cfg, n)
		for i := 0; i+1 < n; i++ {
			if err := connect(g, methodPath, cfg.idFn(i), cfg.idFn(i+1)); err != nil {
				return err
			}
		}

		return nil
	}
}
