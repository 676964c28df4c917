// SPDX-License-Identifier: MIT

// Package builder assembles friendship graphs of well-known shapes for tests,
// demos and the `generate` command.
//
// Every topology is a Constructor closure; BuildGraph creates an empty
// core.Graph, resolves the BuilderOption list once and runs the constructors
// in order:
//
//	g, err := builder.BuildGraph(
//	    []builder.BuilderOption{builder.WithSeed(7)},
//	    builder.RandomSparse(100, 0.05),
//	)
//
// Topologies:
//   - Star(n):            hub idFn(0), leaves idFn(1..n-1).
//   - Cycle(n):           i - (i+1) mod n, n ≥ 3.
//   - Path(n):            i - i+1, n ≥ 2.
//   - Complete(n):        every unordered pair, n ≥ 1.
//   - RandomSparse(n, p): each unordered pair independently with probability p.
//
// Node identifiers come from the resolved ID scheme; the default maps index i
// to NodeID(i+1) so generated graphs look like hand-written friendship lists.
//
// Determinism: for the same options, seed and constructor order the resulting
// graph is identical, including edge identifiers.
//
// Errors: ErrTooFewVertices, ErrInvalidProbability, ErrNeedRandSource and
// ErrConstructFailed, always wrapped with the constructor name.
package builder
