// SPDX-License-Identifier: MIT
//
// File: methods_clone.go
// Role: Cloning and clearing graph instances.
// Determinism:
//   - Clone carries over nextEdgeID so future Connect() calls continue the
//     textual edge sequence and never collide with copied IDs.
// Concurrency:
//   - Read locks for snapshotting; no mutation of the source graph.

package core

import "sync/atomic"

// Clone returns a deep copy of the Graph: nodes, edges, and adjacency.
// Edge IDs are preserved.
//
// Complexity: O(V + E)
func (g *Graph) Clone() *Graph {
	g.muNode.RLock()
	defer g.muNode.RUnlock()
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	clone := NewGraph()
	atomic.StoreUint64(&clone.nextEdgeID, atomic.LoadUint64(&g.nextEdgeID))

	var id NodeID
	for id = range g.nodes {
		clone.nodes[id] = struct{}{}
		clone.adjacency[id] = make(map[NodeID]string, len(g.adjacency[id]))
	}

	var (
		eid string
		e   *Edge
	)
	for eid, e = range g.edges {
		clone.edges[eid] = &Edge{ID: eid, From: e.From, To: e.To}
		clone.adjacency[e.From][e.To] = eid
		clone.adjacency[e.To][e.From] = eid
	}

	return clone
}

// Clear resets the graph to an empty state.
//
// Behavior:
//   - Reinitializes node/edge/adjacency maps.
//   - Resets nextEdgeID to 0 (edge IDs resume from "e1").
//
// Complexity: O(1) for map reallocation.
func (g *Graph) Clear() {
	g.muNode.Lock()
	g.muEdgeAdj.Lock()
	g.nodes = make(map[NodeID]struct{})
	g.edges = make(map[string]*Edge)
	g.adjacency = make(map[NodeID]map[NodeID]string)
	atomic.StoreUint64(&g.nextEdgeID, 0)
	g.muEdgeAdj.Unlock()
	g.muNode.Unlock()
}

// Stats produces a read-only snapshot of catalog sizes.
//
// Implementation:
//   - Stage 1: Acquire muNode then muEdgeAdj read locks.
//   - Stage 2: Count nodes, edges, dangling nodes and the maximum degree in one pass.
//
// Complexity:
//   - Time O(V), Space O(1) plus the returned struct.
func (g *Graph) Stats() *GraphStats {
	g.muNode.RLock()
	defer g.muNode.RUnlock()
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	stats := GraphStats{
		NodeCount: len(g.nodes),
		EdgeCount: len(g.edges),
	}
	var (
		id NodeID
		d  int
	)
	for id = range g.nodes {
		d = len(g.adjacency[id])
		if d == 0 {
			stats.DanglingCount++
		}
		if d > stats.MaxDegree {
			stats.MaxDegree = d
		}
	}

	return &stats
}
