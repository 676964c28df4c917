// SPDX-License-Identifier: MIT
//
// File: methods_adjacent.go
// Role: Neighborhood API.
// Determinism:
//   - Neighbors() returns unique IDs sorted asc.
// Concurrency:
//   - Holds muNode then muEdgeAdj read locks.

package core

// Neighbors returns the friends of id, sorted ascending.
//
// Implementation:
//   - Stage 1: Acquire muNode read lock and muEdgeAdj read lock (in that order).
//   - Stage 2: Validate existence (ErrNodeNotFound).
//   - Stage 3: Copy the adjacency bucket keys into a fresh slice and sort it.
//
// Errors:
//   - ErrNodeNotFound: if the node does not exist.
//
// Complexity:
//   - Time O(d log d), Space O(d).
func (g *Graph) Neighbors(id NodeID) ([]NodeID, error) {
	g.muNode.RLock()
	defer g.muNode.RUnlock()

	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	if _, ok := g.nodes[id]; !ok {
		return nil, ErrNodeNotFound
	}

	out := make([]NodeID, 0, len(g.adjacency[id]))
	for nbr := range g.adjacency[id] {
		out = append(out, nbr)
	}
	sortIDs(out)

	return out, nil
}
