// SPDX-License-Identifier: MIT

// Package friendrank ranks the members of a friendship network with
// PageRank and suggests who each member should befriend next.
//
// 🚀 What is friendrank?
//
//	A small, thread-safe toolkit around one pure engine:
//		• Core primitives: an undirected graph keyed by integer NodeID
//		• Engine: power-iteration PageRank with dangling-node handling
//		• Suggestions: top-k non-friends by score, optionally within h hops
//		• Traversals: BFS (hop radius), DFS (friendship circles)
//		• Table: ranked rows sortable by node, score or degree
//		• Plumbing: edge-list ingestion, HCL config, bbolt snapshots,
//		  a session with coalesced background recomputes and an HTTP API
//
// Under the hood, everything is organized under these packages:
//
//	core/       - Graph, Edge and the immutable Adjacency snapshot
//	pagerank/   - the engine, ScoreMap helpers and a gonum cross-check
//	recommend/  - top-k friend suggestions
//	ranking/    - ordered score table and its text rendering
//	bfs/, dfs/  - traversals over an Adjacency
//	builder/    - deterministic topologies for fixtures and `generate`
//	edgelist/   - "source,target" reader and writer
//	config/     - HCL settings with defaults and validation
//	store/      - bbolt persistence of the graph and the last scores
//	session/    - mutable application state around one graph
//	server/     - JSON HTTP API over a session
//	cmd/friendrank - the command-line front end
//
// Quick ASCII example:
//
//	1───2
//	│ ╱
//	3───4
//
// ranks 3 first (three friends) and suggests 1 and 2 to node 4.
//
//	go install github.com/katalvlaran/friendrank/cmd/friendrank@latest
package friendrank
