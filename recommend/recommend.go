// SPDX-License-Identifier: MIT

// Package recommend ranks friend suggestions for one node: the highest-scoring
// nodes that are neither the node itself nor already its friends.
//
// Ordering follows pagerank.Less: descending score, ties by ascending NodeID,
// so results never depend on map iteration order.
//
// Candidates may optionally be restricted to a hop radius (friends of friends
// for h = 2) found with bfs.
package recommend

import (
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/friendrank/bfs"
	"github.com/katalvlaran/friendrank/core"
	"github.com/katalvlaran/friendrank/pagerank"
)

// DefaultK is the number of suggestions returned when WithK is not used.
const DefaultK = 3

// minHops is the smallest meaningful radius: distance 1 are already friends.
const minHops = 2

// Sentinel errors.
var (
	// ErrUnknownNode is returned when the queried node is not in the adjacency.
	ErrUnknownNode = errors.New("recommend: unknown node")

	// ErrBadK is returned when K <= 0.
	ErrBadK = errors.New("recommend: k must be positive")

	// ErrBadHops is returned for a hop limit of 1 or a negative one.
	ErrBadHops = errors.New("recommend: hop limit must be 0 or at least 2")
)

// Option configures Recommend.
type Option func(*Options)

// Options holds the recommendation parameters.
type Options struct {
	// K is the maximum number of suggestions.
	K int
	// MaxHops limits candidates to nodes within this many hops; 0 means the
	// whole graph.
	MaxHops int
}

// DefaultOptions returns K = DefaultK and no hop limit.
func DefaultOptions() Options {
	return Options{K: DefaultK}
}

// WithK sets the number of suggestions.
func WithK(k int) Option {
	return func(o *Options) { o.K = k }
}

// WithMaxHops restricts candidates to the h-hop neighborhood.
func WithMaxHops(h int) Option {
	return func(o *Options) { o.MaxHops = h }
}

// Validate reports the first invalid field.
func (o Options) Validate() error {
	if o.K <= 0 {
		return fmt.Errorf("%w (got %d)", ErrBadK, o.K)
	}
	if o.MaxHops < 0 || o.MaxHops == 1 {
		return fmt.Errorf("%w (got %d)", ErrBadHops, o.MaxHops)
	}

	return nil
}

// Recommend returns at most K candidates for node, best first.
//
// A candidate is any key of adj other than node that is not in adj[node].
// Candidates without an entry in scores rank with score 0. Fewer than K
// results are returned when the graph does not have enough candidates; the
// result is empty, not nil, when there are none.
//
// Complexity: O(V log V) without a hop limit, O(V + E + C log C) with one.
func Recommend(adj core.Adjacency, scores pagerank.ScoreMap, node core.NodeID, opts ...Option) ([]pagerank.Ranked, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	friends, ok := adj[node]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownNode, node)
	}

	excluded := make(map[core.NodeID]struct{}, len(friends)+1)
	excluded[node] = struct{}{}
	for _, f := range friends {
		excluded[f] = struct{}{}
	}

	pool, err := candidates(adj, node, o.MaxHops)
	if err != nil {
		return nil, err
	}

	out := make([]pagerank.Ranked, 0, len(pool))
	for _, id := range pool {
		if _, skip := excluded[id]; skip {
			continue
		}
		out = append(out, pagerank.Ranked{Node: id, Score: scores[id]})
	}
	sort.Slice(out, func(i, j int) bool { return pagerank.Less(out[i], out[j]) })
	if len(out) > o.K {
		out = out[:o.K]
	}

	return out, nil
}

// candidates returns every node of adj, or only those within hops of node.
func candidates(adj core.Adjacency, node core.NodeID, hops int) ([]core.NodeID, error) {
	if hops == 0 {
		return adj.Nodes(), nil
	}
	res, err := bfs.BFS(adj, node, bfs.WithMaxDepth(hops))
	if err != nil {
		return nil, fmt.Errorf("recommend: hop search from %d: %w", node, err)
	}

	return res.Order, nil
}
