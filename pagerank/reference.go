// SPDX-License-Identifier: MIT

package pagerank

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/katalvlaran/friendrank/core"
)

// Reference computes PageRank with gonum's dense implementation, treating each
// undirected friendship as a pair of opposite directed edges.
//
// gonum redistributes dangling mass uniformly and stops on the 2-norm of the
// iterate difference, so its scores match Run with DanglingRedistribute up to
// the chosen tolerance. It is used to cross-check results, not for serving.
//
// Errors:
//   - ErrBadDamping, ErrBadTolerance (tol must be > 0 here).
//   - ErrInvalidInput wrapping any core.Adjacency.Validate failure; the full
//     undirected contract is enforced because gonum's simple graphs panic on
//     self-loops.
//
// Complexity: O(V²) memory for the dense transition matrix.
func Reference(adj core.Adjacency, damping, tol float64) (ScoreMap, error) {
	if !(damping > 0 && damping < 1) {
		return nil, fmt.Errorf("%w (got %g)", ErrBadDamping, damping)
	}
	if !(tol > 0) || math.IsInf(tol, 0) {
		return nil, fmt.Errorf("%w (got %g)", ErrBadTolerance, tol)
	}
	if err := adj.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if len(adj) == 0 {
		return ScoreMap{}, nil
	}

	g := simple.NewDirectedGraph()
	nodes := adj.Nodes()
	for _, id := range nodes {
		g.AddNode(simple.Node(id))
	}
	for _, id := range nodes {
		for _, nbr := range adj[id] {
			g.SetEdge(g.NewEdge(simple.Node(id), simple.Node(nbr)))
		}
	}

	ranks := network.PageRank(g, damping, tol)
	out := make(ScoreMap, len(ranks))
	for id, r := range ranks {
		out[core.NodeID(id)] = r
	}

	return out, nil
}

// MaxAbsDiff returns max |a[v] − b[v]| over the union of keys; a key missing
// on one side counts as 0 there.
func MaxAbsDiff(a, b ScoreMap) float64 {
	var worst float64
	for id, x := range a {
		worst = math.Max(worst, math.Abs(x-b[id]))
	}
	for id, y := range b {
		if _, ok := a[id]; !ok {
			worst = math.Max(worst, math.Abs(y))
		}
	}

	return worst
}
