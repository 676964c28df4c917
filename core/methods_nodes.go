// SPDX-License-Identifier: MIT
//
// File: methods_nodes.go
// Role: Node lifecycle & queries.
//
// Determinism:
//   - Nodes() returns IDs sorted ascending.
//
// Concurrency:
//   - Node set protected by muNode.
//   - Adjacency bootstrap under muEdgeAdj (to keep adjacency invariants consistent).
package core

// AddNode inserts a node if missing (idempotent) and reports whether it was added.
//
// Implementation:
//   - Stage 1: Under muNode write lock, check presence; if missing, register it.
//   - Stage 2: Under muEdgeAdj write lock, bootstrap the adjacency bucket so
//     Neighbors and Adjacency see the node even while it has no friends.
//
// Complexity:
//   - Time O(1) amortized, Space O(1) amortized.
func (g *Graph) AddNode(id NodeID) bool {
	g.muNode.Lock()
	defer g.muNode.Unlock()

	if _, exists := g.nodes[id]; exists {
		return false // no-op for existing node
	}
	g.nodes[id] = struct{}{}

	g.muEdgeAdj.Lock()
	ensureAdjacency(g, id)
	g.muEdgeAdj.Unlock()

	return true
}

// HasNode reports whether the node exists.
// Complexity: O(1).
func (g *Graph) HasNode(id NodeID) bool {
	g.muNode.RLock()
	defer g.muNode.RUnlock()
	_, ok := g.nodes[id]

	return ok
}

// RemoveNode deletes a node and all its friendships.
//
// Implementation:
//   - Stage 1: Acquire muNode and muEdgeAdj write locks for an atomic topology update.
//   - Stage 2: Verify presence (ErrNodeNotFound).
//   - Stage 3: Unlink every incident edge from the catalog and the mirrored bucket.
//   - Stage 4: Drop the node and its adjacency bucket.
//
// Complexity:
//   - Time O(deg(v)), Space O(1) extra.
func (g *Graph) RemoveNode(id NodeID) error {
	g.muNode.Lock()
	defer g.muNode.Unlock()

	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()

	if _, exists := g.nodes[id]; !exists {
		return ErrNodeNotFound
	}

	var (
		nbr NodeID
		eid string
	)
	for nbr, eid = range g.adjacency[id] {
		delete(g.edges, eid)
		delete(g.adjacency[nbr], id)
	}

	delete(g.adjacency, id)
	delete(g.nodes, id)

	return nil
}

// Nodes returns all node IDs in ascending order.
// Complexity: O(V log V), Space O(V).
func (g *Graph) Nodes() []NodeID {
	g.muNode.RLock()
	defer g.muNode.RUnlock()

	ids := make([]NodeID, 0, len(g.nodes))
	var id NodeID
	for id = range g.nodes {
		ids = append(ids, id)
	}
	sortIDs(ids)

	return ids
}

// NodeCount returns the current number of nodes.
// Prefer it over len(Nodes()) to avoid the O(V log V) sort.
func (g *Graph) NodeCount() int {
	g.muNode.RLock()
	defer g.muNode.RUnlock()

	return len(g.nodes)
}

// Degree returns the number of friends of id.
//
// Errors:
//   - ErrNodeNotFound: if the node does not exist.
//
// Complexity:
//   - Time O(1), Space O(1).
func (g *Graph) Degree(id NodeID) (int, error) {
	g.muNode.RLock()
	defer g.muNode.RUnlock()

	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	if _, ok := g.nodes[id]; !ok {
		return 0, ErrNodeNotFound
	}

	return len(g.adjacency[id]), nil
}
