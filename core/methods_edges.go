// SPDX-License-Identifier: MIT
//
// File: methods_edges.go
// Role: Edge lifecycle & queries: Connect/Disconnect/RemoveEdge/HasEdge/Edges/EdgeCount,
//       plus nextEdgeID().
// Determinism:
//   - Edges() returns edges sorted by (From, To) asc.
//   - nextEdgeID() is monotonic and stable ("e" + decimal).
// Concurrency:
//   - Mutations under muEdgeAdj write lock.
//   - Read queries under muEdgeAdj read lock.

package core

import (
	"sort"
	"strconv"
	"sync/atomic"
)

// edgeIDPrefix is the textual prefix for edge identifiers ("e1", "e2", ...).
const edgeIDPrefix = 'e'

// Connect records a friendship between a and b and returns its edge ID.
// Missing endpoints are created.
//
// Steps:
//  1. Reject a == b (ErrLoopNotAllowed).
//  2. Lock muNode → muEdgeAdj, reject an existing friendship (ErrMultiEdgeNotAllowed).
//  3. Register missing endpoints under the same locks, so a concurrent
//     RemoveNode cannot interleave between node creation and linking.
//  4. Generate eid atomically, store the normalized Edge.
//  5. Link adjacency[a][b] and its mirror adjacency[b][a].
//
// Complexity: O(1) amortized.
func (g *Graph) Connect(a, b NodeID) (string, error) {
	if a == b {
		return "", ErrLoopNotAllowed
	}

	g.muNode.Lock()
	defer g.muNode.Unlock()

	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()

	if _, exists := g.adjacency[a][b]; exists {
		return "", ErrMultiEdgeNotAllowed
	}

	g.nodes[a] = struct{}{}
	g.nodes[b] = struct{}{}
	ensureAdjacency(g, a)
	ensureAdjacency(g, b)

	eid := nextEdgeID(g)
	from, to := normalize(a, b)
	g.edges[eid] = &Edge{ID: eid, From: from, To: to}

	g.adjacency[a][b] = eid
	g.adjacency[b][a] = eid

	return eid, nil
}

// Disconnect removes the friendship between a and b.
// Returns ErrEdgeNotFound if they are not connected.
// Complexity: O(1).
func (g *Graph) Disconnect(a, b NodeID) error {
	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()

	eid, ok := g.adjacency[a][b]
	if !ok {
		return ErrEdgeNotFound
	}
	unlink(g, g.edges[eid])

	return nil
}

// RemoveEdge deletes one edge by ID together with its mirror.
// Returns ErrEdgeNotFound if no such edge exists.
// Complexity: O(1).
func (g *Graph) RemoveEdge(eid string) error {
	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()

	e, ok := g.edges[eid]
	if !ok {
		return ErrEdgeNotFound
	}
	unlink(g, e)

	return nil
}

// HasEdge reports whether a and b are friends. Symmetric: HasEdge(a,b) == HasEdge(b,a).
// Complexity: O(1).
func (g *Graph) HasEdge(a, b NodeID) bool {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	_, ok := g.adjacency[a][b]

	return ok
}

// Edges returns all edges sorted by (From, To) ascending.
// Returned pointers refer to catalog entries; treat them as read-only.
// Complexity: O(E log E).
func (g *Graph) Edges() []*Edge {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	out := make([]*Edge, 0, len(g.edges))
	var e *Edge
	for _, e = range g.edges {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})

	return out
}

// EdgeCount returns the number of friendships. O(1).
func (g *Graph) EdgeCount() int {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	return len(g.edges)
}

// nextEdgeID returns a fresh textual edge ID without fmt allocations.
// Must be called under muEdgeAdj write lock.
func nextEdgeID(g *Graph) string {
	n := atomic.AddUint64(&g.nextEdgeID, 1)
	buf := make([]byte, 0, 21)
	buf = append(buf, edgeIDPrefix)
	buf = strconv.AppendUint(buf, n, 10)

	return string(buf)
}

// unlink drops e from the catalog and both adjacency buckets.
// Must be called under muEdgeAdj write lock.
func unlink(g *Graph, e *Edge) {
	delete(g.edges, e.ID)
	if m := g.adjacency[e.From]; m != nil {
		delete(m, e.To)
	}
	if m := g.adjacency[e.To]; m != nil {
		delete(m, e.From)
	}
}

// ensureAdjacency guarantees that adjacency[id] is initialized.
// Must be called under muEdgeAdj write lock.
func ensureAdjacency(g *Graph, id NodeID) {
	if g.adjacency[id] == nil {
		g.adjacency[id] = make(map[NodeID]string)
	}
}
