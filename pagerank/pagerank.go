// SPDX-License-Identifier: MIT

package pagerank

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/friendrank/core"
)

// Compute returns the PageRank score of every node in adj.
//
// maxIterations bounds the loop and dampingFactor is the edge-following
// probability; both override any WithMaxIterations / WithDampingFactor in opts.
// Remaining options (tolerance, dangling policy, hook, context) apply as given.
//
// Errors:
//   - ErrBadIterations, ErrBadDamping, ErrBadTolerance, ErrUnknownNeighbor
//     (all wrap ErrInvalidInput). No scores are returned on error.
//
// A cancelled context is not an error here: the best scores computed so far
// are returned. Use Run to observe Result.Incomplete.
func Compute(adj core.Adjacency, maxIterations int, dampingFactor float64, opts ...Option) (ScoreMap, error) {
	all := make([]Option, 0, len(opts)+2)
	all = append(all, opts...)
	all = append(all, WithMaxIterations(maxIterations), WithDampingFactor(dampingFactor))

	res, err := Run(adj, all...)
	if err != nil {
		return nil, err
	}

	return res.Scores, nil
}

// Run executes PageRank on adj with the given options and returns the scores
// together with iteration metadata.
//
// Preconditions and validation (in order):
//  1. Options must be valid (Options.Validate).
//  2. Every neighbor identifier must be a key of adj (ErrUnknownNeighbor).
//
// Symmetry, self-loops and duplicate neighbors are the builder's contract and
// are not re-checked; the update pushes mass along the lists exactly as given.
//
// Complexity:
//   - Time:  O(V log V + k·(V + E))
//   - Space: O(V + E)
func Run(adj core.Adjacency, opts ...Option) (*Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := adj.CheckReferences(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnknownNeighbor, err)
	}

	nodes := adj.Nodes()
	n := len(nodes)
	if n == 0 {
		return &Result{Scores: ScoreMap{}, Converged: true}, nil
	}

	s := newState(adj, nodes)

	return s.iterate(o), nil
}

// state holds the indexed graph and the two score buffers of one run.
type state struct {
	nodes []core.NodeID // index → node, ascending
	out   [][]int       // index → neighbor indices, in adjacency order
	prev  []float64     // scores of the last completed iteration
	next  []float64     // scratch buffer for the iteration in progress
}

// newState indexes adj and seeds every score with 1/N.
func newState(adj core.Adjacency, nodes []core.NodeID) *state {
	n := len(nodes)
	index := make(map[core.NodeID]int, n)
	for i, id := range nodes {
		index[id] = i
	}

	s := &state{
		nodes: nodes,
		out:   make([][]int, n),
		prev:  make([]float64, n),
		next:  make([]float64, n),
	}

	var (
		i   int
		id  core.NodeID
		nbr core.NodeID
	)
	for i, id = range nodes {
		list := make([]int, 0, len(adj[id]))
		for _, nbr = range adj[id] {
			list = append(list, index[nbr])
		}
		s.out[i] = list
	}

	initial := 1 / float64(n)
	for i = range s.prev {
		s.prev[i] = initial
	}

	return s
}

// iterate runs the power iteration loop and packages the result.
func (s *state) iterate(o Options) *Result {
	res := &Result{}
	d := o.DampingFactor
	nf := float64(len(s.nodes))

	for iter := 1; iter <= o.MaxIterations; iter++ {
		// cancellation check (once per iteration)
		if o.Ctx.Err() != nil {
			res.Incomplete = true
			break
		}

		res.Delta = s.step(d, nf, o.Dangling)
		res.Iterations = iter
		if o.OnIteration != nil {
			o.OnIteration(iter, res.Delta)
		}
		if res.Delta < o.Tolerance {
			res.Converged = true
			break
		}
	}

	res.Scores = make(ScoreMap, len(s.nodes))
	for i, id := range s.nodes {
		res.Scores[id] = s.prev[i]
	}

	return res
}

// step computes one iteration into s.next, swaps the buffers and returns the
// L1 distance between the two iterates.
func (s *state) step(d, nf float64, policy DanglingPolicy) float64 {
	base := (1 - d) / nf
	if policy == DanglingRedistribute {
		var dangling float64
		for u, list := range s.out {
			if len(list) == 0 {
				dangling += s.prev[u]
			}
		}
		base += d * dangling / nf
	}

	for v := range s.next {
		s.next[v] = base
	}

	var (
		share float64
		v     int
	)
	for u, list := range s.out {
		if len(list) == 0 {
			continue
		}
		share = d * s.prev[u] / float64(len(list))
		for _, v = range list {
			s.next[v] += share
		}
	}

	delta := floats.Distance(s.next, s.prev, 1)
	s.prev, s.next = s.next, s.prev

	return delta
}
