// SPDX-License-Identifier: MIT
//
// File: adjacency.go
// Role: Adjacency snapshots: the immutable input handed to ranking algorithms.
// Determinism:
//   - Graph.Adjacency() lists neighbors in ascending order.
//   - Adjacency.Nodes() returns keys in ascending order.
// Concurrency:
//   - Snapshots are taken under read locks; the result shares no storage with the Graph.

package core

import (
	"fmt"
	"sort"
)

// Adjacency maps every node to its neighbor list. The node set is exactly the
// key set. A valid Adjacency is symmetric, free of self-loops and duplicate
// neighbors, and references only its own keys; Graph.Adjacency always
// produces such a value.
type Adjacency map[NodeID][]NodeID

// Adjacency returns a snapshot of the graph as an Adjacency.
//
// Implementation:
//   - Stage 1: Acquire muNode then muEdgeAdj read locks for a consistent view.
//   - Stage 2: For every node allocate a fresh neighbor slice and sort it asc.
//
// Behavior highlights:
//   - Dangling nodes appear with an empty (non-nil) neighbor list.
//   - Returned slices are independent; callers may retain them while the graph mutates.
//
// Complexity:
//   - Time O(V + E + Σ d·log d), Space O(V + E).
func (g *Graph) Adjacency() Adjacency {
	g.muNode.RLock()
	defer g.muNode.RUnlock()

	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	adj := make(Adjacency, len(g.nodes))
	var id, nbr NodeID
	for id = range g.nodes {
		bucket := g.adjacency[id]
		list := make([]NodeID, 0, len(bucket))
		for nbr = range bucket {
			list = append(list, nbr)
		}
		sortIDs(list)
		adj[id] = list
	}

	return adj
}

// FromAdjacency builds a Graph from adj after validating it.
// Every key becomes a node; each symmetric pair becomes one edge.
// Edges are created in ascending (From, To) order so edge IDs are reproducible.
//
// Errors:
//   - Any error returned by adj.Validate().
func FromAdjacency(adj Adjacency) (*Graph, error) {
	if err := adj.Validate(); err != nil {
		return nil, err
	}

	g := NewGraph()
	var id, nbr NodeID
	for _, id = range adj.Nodes() {
		g.AddNode(id)
	}
	for _, id = range adj.Nodes() {
		for _, nbr = range adj[id] {
			if nbr < id {
				continue // the pair was created from the smaller endpoint
			}
			if _, err := g.Connect(id, nbr); err != nil {
				return nil, fmt.Errorf("FromAdjacency: Connect(%d,%d): %w", id, nbr, err)
			}
		}
	}

	return g, nil
}

// Nodes returns the key set in ascending order.
// Complexity: O(V log V).
func (adj Adjacency) Nodes() []NodeID {
	ids := make([]NodeID, 0, len(adj))
	var id NodeID
	for id = range adj {
		ids = append(ids, id)
	}
	sortIDs(ids)

	return ids
}

// Degree returns len(adj[id]); missing nodes report 0.
func (adj Adjacency) Degree(id NodeID) int {
	return len(adj[id])
}

// EdgeCount returns the number of undirected edges, Σ deg / 2.
func (adj Adjacency) EdgeCount() int {
	total := 0
	for _, list := range adj {
		total += len(list)
	}

	return total / 2
}

// IsAdjacent reports whether b appears in a's neighbor list.
// Complexity: O(deg(a)).
func (adj Adjacency) IsAdjacent(a, b NodeID) bool {
	for _, nbr := range adj[a] {
		if nbr == b {
			return true
		}
	}

	return false
}

// CheckReferences verifies that every neighbor identifier is itself a key.
// This is the only structural check ranking algorithms perform on their input.
//
// Errors:
//   - ErrNodeNotFound wrapped with the offending pair.
//
// Complexity: O(V + E).
func (adj Adjacency) CheckReferences() error {
	// Iterate in key order so the reported pair is reproducible.
	for _, id := range adj.Nodes() {
		for _, nbr := range adj[id] {
			if _, ok := adj[nbr]; !ok {
				return fmt.Errorf("node %d lists unknown neighbor %d: %w", id, nbr, ErrNodeNotFound)
			}
		}
	}

	return nil
}

// Validate enforces the full undirected contract: known references, no
// self-loops, no duplicate neighbors, and symmetry.
//
// Errors:
//   - ErrNodeNotFound, ErrLoopNotAllowed, ErrDuplicateNeighbor, ErrAsymmetric (wrapped).
//
// Complexity: O(V + E).
func (adj Adjacency) Validate() error {
	if err := adj.CheckReferences(); err != nil {
		return err
	}

	sets := make(map[NodeID]map[NodeID]struct{}, len(adj))
	for _, id := range adj.Nodes() {
		set := make(map[NodeID]struct{}, len(adj[id]))
		for _, nbr := range adj[id] {
			if nbr == id {
				return fmt.Errorf("node %d: %w", id, ErrLoopNotAllowed)
			}
			if _, dup := set[nbr]; dup {
				return fmt.Errorf("node %d lists %d twice: %w", id, nbr, ErrDuplicateNeighbor)
			}
			set[nbr] = struct{}{}
		}
		sets[id] = set
	}

	for _, id := range adj.Nodes() {
		for _, nbr := range adj[id] {
			if _, ok := sets[nbr][id]; !ok {
				return fmt.Errorf("%d lists %d but not the reverse: %w", id, nbr, ErrAsymmetric)
			}
		}
	}

	return nil
}

// Clone returns a deep copy of adj.
func (adj Adjacency) Clone() Adjacency {
	out := make(Adjacency, len(adj))
	for id, list := range adj {
		out[id] = append(make([]NodeID, 0, len(list)), list...)
	}

	return out
}

// sortIDs sorts ids ascending in place.
func sortIDs(ids []NodeID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
