// SPDX-License-Identifier: MIT

// Package core defines the central Graph, Edge and Adjacency types,
// and provides thread-safe primitives for building, querying, and cloning
// friendship graphs.
//
// This file declares NodeID, Edge, Graph, GraphStats, sentinel errors,
// and the NewGraph constructor.
package core

import (
	"errors"
	"sync"
)

// Sentinel errors for core graph operations.
var (
	// ErrNodeNotFound indicates an operation referenced a non-existent node.
	ErrNodeNotFound = errors.New("core: node not found")

	// ErrEdgeNotFound indicates an operation referenced a non-existent edge.
	ErrEdgeNotFound = errors.New("core: edge not found")

	// ErrLoopNotAllowed indicates a node was connected to itself.
	ErrLoopNotAllowed = errors.New("core: self-loop not allowed")

	// ErrMultiEdgeNotAllowed indicates the two nodes are already connected.
	ErrMultiEdgeNotAllowed = errors.New("core: nodes already connected")

	// ErrAsymmetric indicates an Adjacency where b ∈ N(a) but a ∉ N(b).
	ErrAsymmetric = errors.New("core: adjacency is not symmetric")

	// ErrDuplicateNeighbor indicates a neighbor listed twice in one Adjacency entry.
	ErrDuplicateNeighbor = errors.New("core: duplicate neighbor")
)

// NodeID names a person in the friendship graph.
// Any int64 is a valid identifier; observed datasets use non-negative values.
type NodeID int64

// Edge represents one undirected friendship.
//
// Endpoints are normalized so that From < To; the same friendship is never
// stored twice.
type Edge struct {
	// ID uniquely identifies this edge in the Graph ("e1", "e2", …).
	ID string

	// From is the smaller endpoint.
	From NodeID

	// To is the larger endpoint.
	To NodeID
}

// Other returns the endpoint of e opposite to id.
func (e *Edge) Other(id NodeID) NodeID {
	if e.From == id {
		return e.To
	}

	return e.From
}

// GraphStats is a read-only snapshot of catalog sizes.
type GraphStats struct {
	NodeCount     int // |V|
	EdgeCount     int // |E|
	DanglingCount int // nodes with degree 0
	MaxDegree     int // largest degree in the graph (0 for empty graphs)
}

// Graph is the core in-memory friendship graph.
//
// muNode protects the node set; muEdgeAdj protects the edge catalog and the
// adjacency index. nextEdgeID is an atomic counter for Edge.ID generation.
type Graph struct {
	muNode    sync.RWMutex // guards nodes
	muEdgeAdj sync.RWMutex // guards edges and adjacency

	// Storage
	nextEdgeID uint64              // atomic edge ID generator
	nodes      map[NodeID]struct{} // node set
	edges      map[string]*Edge    // edge ID → Edge

	// adjacency[a][b] = edge ID, mirrored as adjacency[b][a].
	adjacency map[NodeID]map[NodeID]string
}

// NewGraph creates an empty Graph.
// Complexity: O(1)
func NewGraph() *Graph {
	return &Graph{
		nodes:     make(map[NodeID]struct{}),
		edges:     make(map[string]*Edge),
		adjacency: make(map[NodeID]map[NodeID]string),
	}
}

// normalize orders two endpoints so that a < b.
func normalize(a, b NodeID) (NodeID, NodeID) {
	if b < a {
		return b, a
	}

	return a, b
}
