// SPDX-License-Identifier: MIT

// Package dfs implements depth-first search over a core.Adjacency snapshot
// and derives connected components from it.
//
// What:
//
//   - DFS(adj, start, opts...): explores as far as possible along each
//     branch before backtracking. Supports:
//   - Pre-order and post-order hooks
//   - Cancellation via context.Context
//   - Depth limiting
//   - Neighbor filtering
//   - Full (forest) traversal over every component
//   - Components(adj): groups friends-of-friends-of-... into disjoint
//     circles, each sorted, ordered by their smallest member.
//
// Neighbors are explored in adjacency order and forest roots in ascending
// NodeID order, so every result is deterministic for a given snapshot.
//
// Complexity:
//
//   - DFS:        Time O(V+E), Memory O(V)
//   - Components: Time O(V+E + V log V), Memory O(V)
//
// Errors:
//
//   - ErrStartNotFound   start node is not a key of the adjacency
//   - ErrNeighbors       a neighbor list names an unknown node
//   - context.Canceled   traversal cancelled via context
//   - hook errors        propagated from OnVisit or OnExit
package dfs
