// SPDX-License-Identifier: MIT
// Package: friendrank/builder
//
// impl_random_sparse.go - implementation of RandomSparse(n, p) constructor.
//
// Model: Erdős–Rényi G(n,p) over unordered pairs {i,j}, i<j.
//
// Contract:
//   - n ≥ 1 (else ErrTooFewVertices).
//   - 0 ≤ p ≤ 1 (else ErrInvalidProbability).
//   - cfg.rng must be non-nil when 0 < p < 1 (else ErrNeedRandSource);
//     p ∈ {0,1} is deterministic and needs no RNG.
//   - Every node is added even if it ends up with no friends, so the result
//     usually contains dangling nodes for small p.
//
// Determinism: trials run i asc, j asc; one Float64 draw per pair.

package builder

import (
	"fmt"

	"github.com/katalvlaran/friendrank/core"
)

const (
	methodRandomSparse      = "RandomSparse"
	minRandomSparseVertices = 1
	probMin                 = 0.0
	probMax                 = 1.0
)

// RandomSparse returns a Constructor that samples G(n,p).
func RandomSparse(n int, p float64) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if n < minRandomSparseVertices {
			return fmt.Errorf("%s: n=%d < min=%d: %w",
				methodRandomSparse, n, minRandomSparseVertices, ErrTooFewVertices)
		}
		// Negated form rejects NaN as well.
		if !(p >= probMin && p <= probMax) {
			return fmt.Errorf("%s: p=%.6f not in [%.1f,%.1f]: %w",
				methodRandomSparse, p, probMin, probMax, ErrInvalidProbability)
		}
		rng := cfg.rng
		if rng == nil && p > probMin && p < probMax {
			return fmt.Errorf("%s: %w", methodRandomSparse, ErrNeedRandSource)
		}

		addNodes(g, cfg, n)

		var keep bool
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				switch {
				case rng == nil:
					keep = p == probMax
				default:
					keep = rng.Float64() < p
				}
				if !keep {
					continue
				}
				if err := connect(g, methodRandomSparse, cfg.idFn(i), cfg.idFn(j)); err != nil {
					return err
				}
			}
		}

		return nil
	}
}
