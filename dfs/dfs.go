// SPDX-License-Identifier: MIT

package dfs

import (
	"fmt"

	"github.com/katalvlaran/friendrank/core"
)

// walker encapsulates state during DFS.
type walker struct {
	adj  core.Adjacency
	opts Options
	res  *Result
}

// DFS performs depth-first search on adj. With WithFullTraversal it covers
// every component, otherwise it starts only from start. On error the
// partial Result is returned with an empty Order.
func DFS(adj core.Adjacency, start core.NodeID, opts ...Option) (*Result, error) {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if !o.FullTraversal {
		if _, ok := adj[start]; !ok {
			return nil, fmt.Errorf("%w: %d", ErrStartNotFound, start)
		}
	}

	n := len(adj)
	w := &walker{
		adj:  adj,
		opts: o,
		res: &Result{
			Order:   make([]core.NodeID, 0, n),
			Depth:   make(map[core.NodeID]int, n),
			Parent:  make(map[core.NodeID]core.NodeID, n),
			Visited: make(map[core.NodeID]bool, n),
		},
	}

	roots := []core.NodeID{start}
	if o.FullTraversal {
		roots = adj.Nodes()
	}
	for _, r := range roots {
		if w.res.Visited[r] {
			continue
		}
		w.res.Roots = append(w.res.Roots, r)
		if err := w.traverse(r, 0); err != nil {
			w.res.Order = nil
			return w.res, err
		}
	}

	return w.res, nil
}

// traverse visits id at depth, then recurses into its unvisited neighbors.
func (w *walker) traverse(id core.NodeID, depth int) error {
	if err := w.opts.Ctx.Err(); err != nil {
		return err
	}

	w.res.Visited[id] = true
	w.res.Depth[id] = depth
	if w.opts.OnVisit != nil {
		if err := w.opts.OnVisit(id); err != nil {
			return fmt.Errorf("dfs: OnVisit hook for %d: %w", id, err)
		}
	}

	if w.opts.MaxDepth < 0 || depth < w.opts.MaxDepth {
		for _, nbr := range w.adj[id] {
			if _, ok := w.adj[nbr]; !ok {
				return fmt.Errorf("%w: %d lists unknown neighbor %d", ErrNeighbors, id, nbr)
			}
			if w.res.Visited[nbr] {
				continue
			}
			if w.opts.FilterNeighbor != nil && !w.opts.FilterNeighbor(id, nbr) {
				w.res.SkippedNeighbors++
				continue
			}
			w.res.Parent[nbr] = id
			if err := w.traverse(nbr, depth+1); err != nil {
				return err
			}
		}
	}

	if w.opts.OnExit != nil {
		if err := w.opts.OnExit(id); err != nil {
			return fmt.Errorf("dfs: OnExit hook for %d: %w", id, err)
		}
	}
	w.res.Order = append(w.res.Order, id)

	return nil
}
