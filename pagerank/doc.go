// SPDX-License-Identifier: MIT

// Package pagerank computes PageRank centrality over an undirected friendship
// graph given as a core.Adjacency snapshot.
//
// What
//
//   - Power iteration of the random-surfer model: with probability d the
//     surfer follows one of the current node's edges, otherwise it teleports
//     to a uniformly random node.
//   - Returns a ScoreMap (node → score). Scores are non-negative and, under the
//     default dangling policy, sum to 1.
//
// Update rule (one iteration, N nodes):
//
//	new[v] = (1-d)/N  +  d · Σ_{u: v ∈ N(u)} old[u] / deg(u)  +  d · D / N
//
// where D is the previous score held by dangling nodes (deg = 0). The last
// term is present only under DanglingRedistribute (the default).
//
// Stopping
//
//   - After MaxIterations iterations, or
//   - as soon as the total absolute change Σ|new−old| drops below Tolerance
//     (default 1e-6); that last update is kept.
//
// Determinism
//
//	Nodes are visited in ascending NodeID order and every iteration reads only
//	from the previous iteration's buffer (double buffering), so identical
//	inputs yield bit-identical outputs regardless of map iteration order.
//
// Usage
//
//	scores, err := pagerank.Compute(g.Adjacency(), 50, 0.85)
//	if errors.Is(err, pagerank.ErrInvalidInput) {
//	    // bad parameters or an edge to an unknown node
//	}
//
//	// With metadata and cancellation:
//	res, err := pagerank.Run(adj,
//	    pagerank.WithContext(ctx),
//	    pagerank.WithTolerance(1e-9),
//	    pagerank.WithOnIteration(func(iter int, delta float64) { /* ... */ }),
//	)
//	if res.Incomplete { /* cancelled: res.Scores is the last completed iteration */ }
//
// Errors
//
//   - ErrInvalidInput, wrapped by every validation sentinel:
//     ErrBadIterations, ErrBadDamping, ErrBadTolerance, ErrUnknownNeighbor.
//
// Complexity (V = |nodes|, E = |edges|)
//
//   - Time:   O(V log V + k·(V + E)) for k iterations
//   - Memory: O(V + E)
package pagerank
