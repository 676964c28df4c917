// SPDX-License-Identifier: MIT

package bfs

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/friendrank/core"
)

// Sentinel errors for BFS execution.
var (
	// ErrStartNotFound is returned when the start node is absent.
	ErrStartNotFound = errors.New("bfs: start node not found")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("bfs: invalid option supplied")

	// ErrNeighbors is returned when a neighbor list points at an unknown node.
	ErrNeighbors = errors.New("bfs: neighbor iteration error")
)

// Option configures BFS behavior via functional arguments.
// Invalid values are recorded and surfaced as ErrOptionViolation by BFS.
type Option func(*Options)

// Options holds parameters and callbacks to customize BFS execution.
type Options struct {
	// Ctx allows cancellation and deadlines.
	Ctx context.Context

	// OnEnqueue is called when a node is enqueued, with its depth.
	OnEnqueue func(id core.NodeID, depth int)

	// OnDequeue is called immediately before visiting a node.
	OnDequeue func(id core.NodeID, depth int)

	// OnVisit is called when visiting a node. A non-nil error aborts BFS.
	OnVisit func(id core.NodeID, depth int) error

	// MaxDepth, if > 0, stops exploring beyond this depth.
	// Zero disables the limit.
	MaxDepth int

	// FilterNeighbor skips the edge curr→neighbor when it returns false.
	FilterNeighbor func(curr, neighbor core.NodeID) bool

	err error
}

// DefaultOptions returns Options with:
//   - Context.Background()
//   - no depth limit
//   - no filtering
//   - no-op hooks
func DefaultOptions() Options {
	return Options{
		Ctx:            context.Background(),
		OnEnqueue:      func(core.NodeID, int) {},
		OnDequeue:      func(core.NodeID, int) {},
		OnVisit:        func(core.NodeID, int) error { return nil },
		FilterNeighbor: func(_, _ core.NodeID) bool { return true },
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnEnqueue registers a callback to run on enqueue.
func WithOnEnqueue(fn func(id core.NodeID, depth int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnEnqueue = fn
		}
	}
}

// WithOnDequeue registers a callback to run on dequeue.
func WithOnDequeue(fn func(id core.NodeID, depth int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnDequeue = fn
		}
	}
}

// WithOnVisit registers a callback to run on visit; returning an error
// from this callback stops the BFS.
func WithOnVisit(fn func(id core.NodeID, depth int) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// WithMaxDepth stops the search at the given depth (inclusive).
//
//	d > 0:  limit to depth d
//	d == 0: no depth limit
//	d < 0:  ErrOptionViolation
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}

// WithFilterNeighbor skips neighbors when fn returns false.
func WithFilterNeighbor(fn func(curr, neighbor core.NodeID) bool) Option {
	return func(o *Options) {
		if fn != nil {
			o.FilterNeighbor = fn
		}
	}
}

// Result holds the outcome of a BFS traversal.
type Result struct {
	Order  []core.NodeID
	Depth  map[core.NodeID]int
	Parent map[core.NodeID]core.NodeID
}

// PathTo reconstructs the path from the start node to dest.
func (r *Result) PathTo(dest core.NodeID) ([]core.NodeID, error) {
	if _, ok := r.Depth[dest]; !ok {
		return nil, fmt.Errorf("bfs: no path to %d", dest)
	}
	path := []core.NodeID{}
	for cur := dest; ; {
		path = append(path, cur)
		prev, ok := r.Parent[cur]
		if !ok {
			break
		}
		cur = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, nil
}

// AtDepth returns the nodes first reached at exactly depth d, in visit order.
func (r *Result) AtDepth(d int) []core.NodeID {
	var out []core.NodeID
	for _, id := range r.Order {
		if r.Depth[id] == d {
			out = append(out, id)
		}
	}

	return out
}
