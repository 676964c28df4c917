// SPDX-License-Identifier: MIT

// Package core provides a thread-safe, in-memory friendship graph with a
// minimal, composable API surface.
//
// The Graph G = (V,E) is undirected by construction: a friendship between a
// and b is a single Edge stored once in the edge catalog and mirrored in the
// adjacency index, so a ∈ N(b) ⇔ b ∈ N(a) always holds.
//
// Policy (fixed, not configurable):
//
//   - Self-loops are rejected (ErrLoopNotAllowed).
//   - Parallel edges are rejected (ErrMultiEdgeNotAllowed); connecting two
//     friends twice is an error the caller can surface to the user.
//   - Nodes may exist with degree 0 ("dangling" nodes).
//
// Why a dedicated graph?
//
//   - Deterministic iteration: Nodes(), Edges(), Neighbors() all return sorted results.
//   - Immutable snapshots: Adjacency() returns a fresh map whose slices share no
//     backing storage with the graph, so algorithms can run on a snapshot while
//     the graph keeps receiving edits.
//   - Separate sync.RWMutex for nodes (muNode) and edges+adjacency (muEdgeAdj)
//     to minimize lock contention under concurrency. Lock order is always
//     muNode → muEdgeAdj.
//
// Core Methods:
//
//	// Node lifecycle
//	AddNode(id NodeID) bool                 // O(1)
//	HasNode(id NodeID) bool                 // O(1)
//	RemoveNode(id NodeID) error             // O(deg(v))
//
//	// Edge lifecycle
//	Connect(a, b NodeID) (edgeID string, err error) // O(1)
//	Disconnect(a, b NodeID) error                   // O(1)
//	RemoveEdge(edgeID string) error                 // O(1)
//	HasEdge(a, b NodeID) bool                       // O(1)
//
//	// Query
//	Neighbors(id NodeID) ([]NodeID, error)  // O(d·log d), sorted asc
//	Degree(id NodeID) (int, error)          // O(1)
//	Nodes() []NodeID                        // O(V·log V)
//	Edges() []*Edge                         // O(E·log E)
//	Adjacency() Adjacency                   // O(V+E), snapshot
//	Stats() *GraphStats                     // O(V)
//
//	// Maintenance
//	Clone() *Graph                          // O(V+E)
//	Clear()                                 // O(1)
//
// Errors:
//
//	ErrNodeNotFound        – missing node
//	ErrEdgeNotFound        – missing edge
//	ErrLoopNotAllowed      – Connect(v, v)
//	ErrMultiEdgeNotAllowed – Connect on an existing friendship
//	ErrAsymmetric          – Adjacency that violates the undirected contract
package core
