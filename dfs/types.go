// SPDX-License-Identifier: MIT

package dfs

import (
	"context"
	"errors"

	"github.com/katalvlaran/friendrank/core"
)

var (
	// ErrStartNotFound indicates that the start node is not in the adjacency.
	ErrStartNotFound = errors.New("dfs: start node not found")

	// ErrNeighbors indicates a neighbor list referencing a node that is not a key.
	ErrNeighbors = errors.New("dfs: neighbor references unknown node")
)

// Option configures optional behavior of DFS traversal.
type Option func(*Options)

// Options holds configurable parameters for DFS traversal.
type Options struct {
	// Ctx allows cancellation; defaults to context.Background().
	Ctx context.Context

	// OnVisit, if non-nil, is invoked upon discovering a node (pre-order).
	// Returning an error aborts traversal with that error.
	OnVisit func(id core.NodeID) error

	// OnExit, if non-nil, is invoked after all descendants of a node have
	// been explored (post-order), before it is appended to Result.Order.
	OnExit func(id core.NodeID) error

	// MaxDepth, if non-negative, limits recursion to the given depth.
	// A depth of 0 visits only the start node. Default is -1 (no limit).
	MaxDepth int

	// FilterNeighbor, if non-nil, is called for each neighbor before
	// recursing. Return false to skip it.
	FilterNeighbor func(from, to core.NodeID) bool

	// FullTraversal restarts DFS from every unvisited node in ascending order.
	FullTraversal bool
}

// DefaultOptions returns Options with a background context, no hooks, no
// depth limit, no filter and single-source traversal.
func DefaultOptions() Options {
	return Options{
		Ctx:      context.Background(),
		MaxDepth: -1,
	}
}

// WithContext sets the Context for DFS traversal. nil is ignored.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnVisit installs fn as a pre-order hook.
func WithOnVisit(fn func(id core.NodeID) error) Option {
	return func(o *Options) { o.OnVisit = fn }
}

// WithOnExit installs fn as a post-order hook.
func WithOnExit(fn func(id core.NodeID) error) Option {
	return func(o *Options) { o.OnExit = fn }
}

// WithMaxDepth limits traversal depth to limit.
func WithMaxDepth(limit int) Option {
	return func(o *Options) { o.MaxDepth = limit }
}

// WithFilterNeighbor skips neighbors for which fn returns false; skipped
// neighbors are counted in Result.SkippedNeighbors.
func WithFilterNeighbor(fn func(from, to core.NodeID) bool) Option {
	return func(o *Options) { o.FilterNeighbor = fn }
}

// WithFullTraversal enables forest traversal over every component; the
// start argument of DFS is then ignored.
func WithFullTraversal() Option {
	return func(o *Options) { o.FullTraversal = true }
}

// Result captures the outcome of a depth-first traversal.
type Result struct {
	// Order records nodes in the sequence they finished (post-order).
	Order []core.NodeID

	// Depth maps each node to its tree depth from its root.
	Depth map[core.NodeID]int

	// Parent maps each non-root node to the node it was discovered from.
	Parent map[core.NodeID]core.NodeID

	// Visited flags which nodes were reached.
	Visited map[core.NodeID]bool

	// Roots lists the tree roots in the order they were started.
	Roots []core.NodeID

	// SkippedNeighbors counts neighbors rejected by FilterNeighbor.
	SkippedNeighbors int
}
