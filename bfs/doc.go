// SPDX-License-Identifier: MIT

// Package bfs provides breadth-first search over a core.Adjacency snapshot,
// returning hop distances, parent links, and visit order.
//
// What
//
//   - Explore nodes in non-decreasing hop count from a start node.
//   - Returns a Result containing:
//   - Order: visit sequence
//   - Depth: map from node → hops from start
//   - Parent: map from node → its predecessor in the BFS tree
//   - Hooks: OnEnqueue, OnDequeue and OnVisit (which may abort with an error).
//   - Neighbor filtering via WithFilterNeighbor.
//   - MaxDepth limit (d>0) or explicit "no limit" (d==0).
//
// Why
//
//   - Friends-of-friends discovery for recommendations (depth-limited).
//   - Component membership when a caller needs "who can reach whom".
//
// Determinism
//
//	Adjacency lists from core.Graph.Adjacency are sorted ascending and BFS
//	enqueues neighbors in list order, so the visit sequence is reproducible.
//
// Complexity (V = |nodes|, E = |edges|)
//
//   - Time:   O(V + E)
//   - Memory: O(V)
//
// Usage
//
//	res, err := bfs.BFS(g.Adjacency(), 1,
//	    bfs.WithMaxDepth(2),
//	    bfs.WithFilterNeighbor(func(curr, nbr core.NodeID) bool { return nbr != blocked }),
//	)
//
// Errors
//
//   - ErrStartNotFound     if the start node is not a key of the adjacency.
//   - ErrOptionViolation   for invalid options (e.g. negative MaxDepth).
//   - ErrNeighbors         if a list references a node that is not a key.
//   - Wrapped OnVisit errors, or the context error on cancellation.
package bfs
