// SPDX-License-Identifier: MIT

package bfs

import (
	"context"
	"fmt"

	"github.com/katalvlaran/friendrank/core"
)

// queueItem pairs a node with its BFS depth.
type queueItem struct {
	id    core.NodeID
	depth int
}

// walker encapsulates mutable BFS state.
type walker struct {
	adj     core.Adjacency
	opts    Options
	ctx     context.Context
	queue   []queueItem
	visited map[core.NodeID]bool
	res     *Result
}

// BFS runs breadth-first search on adj starting from start.
// Returns ErrStartNotFound, ErrOptionViolation, ErrNeighbors, a wrapped
// OnVisit error, or the context error. On error the partial Result is still
// returned.
func BFS(adj core.Adjacency, start core.NodeID, opts ...Option) (*Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if _, ok := adj[start]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrStartNotFound, start)
	}

	n := len(adj)
	w := &walker{
		adj:     adj,
		opts:    o,
		ctx:     o.Ctx,
		queue:   make([]queueItem, 0, n),
		visited: make(map[core.NodeID]bool, n),
		res: &Result{
			Order:  make([]core.NodeID, 0, n),
			Depth:  make(map[core.NodeID]int, n),
			Parent: make(map[core.NodeID]core.NodeID, n),
		},
	}

	w.enqueue(start, 0)

	return w.res, w.loop()
}

// enqueue marks id visited at depth d, calls OnEnqueue and appends it.
func (w *walker) enqueue(id core.NodeID, d int) {
	w.visited[id] = true
	w.res.Depth[id] = d
	w.opts.OnEnqueue(id, d)
	w.queue = append(w.queue, queueItem{id: id, depth: d})
}

// loop processes the queue until empty, error, or cancellation.
func (w *walker) loop() error {
	for len(w.queue) > 0 {
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		item := w.dequeue()
		if err := w.visit(item); err != nil {
			return err
		}
		if err := w.enqueueNeighbors(item); err != nil {
			return err
		}
	}

	return nil
}

// dequeue pops the first item, invokes OnDequeue, and returns it.
func (w *walker) dequeue() queueItem {
	item := w.queue[0]
	w.queue = w.queue[1:]
	w.opts.OnDequeue(item.id, item.depth)

	return item
}

// visit records the node in Order and calls OnVisit.
func (w *walker) visit(item queueItem) error {
	w.res.Order = append(w.res.Order, item.id)
	if err := w.opts.OnVisit(item.id, item.depth); err != nil {
		return fmt.Errorf("bfs: OnVisit error at %d: %w", item.id, err)
	}

	return nil
}

// enqueueNeighbors applies filtering and MaxDepth and enqueues every unseen
// neighbor of item.
func (w *walker) enqueueNeighbors(item queueItem) error {
	next := item.depth + 1
	if w.opts.MaxDepth > 0 && next > w.opts.MaxDepth {
		return nil
	}
	for _, nbr := range w.adj[item.id] {
		if _, ok := w.adj[nbr]; !ok {
			return fmt.Errorf("%w: %d lists unknown neighbor %d", ErrNeighbors, item.id, nbr)
		}
		if w.visited[nbr] || !w.opts.FilterNeighbor(item.id, nbr) {
			continue
		}
		w.res.Parent[nbr] = item.id
		w.enqueue(nbr, next)
	}

	return nil
}
