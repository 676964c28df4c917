// SPDX-License-Identifier: MIT

package pagerank_test

import (
	"context"
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/friendrank/builder"
	"github.com/katalvlaran/friendrank/core"
	"github.com/katalvlaran/friendrank/pagerank"
)

const (
	conservationEps = 1e-6
	approxEps       = 1e-4
)

// PageRankSuite groups behavioral checks of the power iteration.
type PageRankSuite struct {
	suite.Suite
}

func TestPageRankSuite(t *testing.T) {
	suite.Run(t, new(PageRankSuite))
}

// build returns the adjacency of a builder topology.
func build(t require.TestingT, opts []builder.BuilderOption, ctor builder.Constructor) core.Adjacency {
	g, err := builder.BuildGraph(opts, ctor)
	require.NoError(t, err)

	return g.Adjacency()
}

// fixtures returns a spread of shapes including dangling nodes.
func (s *PageRankSuite) fixtures() map[string]core.Adjacency {
	return map[string]core.Adjacency{
		"single":   {1: {}},
		"pair":     {1: {2}, 2: {1}},
		"triangle": build(s.T(), nil, builder.Complete(3)),
		"star":     build(s.T(), nil, builder.Star(6)),
		"path":     build(s.T(), nil, builder.Path(7)),
		"isolated": {1: {2}, 2: {1}, 3: {}, 4: {}},
		"random":   build(s.T(), []builder.BuilderOption{builder.WithSeed(3)}, builder.RandomSparse(60, 0.05)),
	}
}

func (s *PageRankSuite) TestConservationAndNonNegativity() {
	for name, adj := range s.fixtures() {
		scores, err := pagerank.Compute(adj, pagerank.DefaultMaxIterations, pagerank.DefaultDampingFactor)
		s.Require().NoError(err, name)
		s.Require().Len(scores, len(adj), name)
		s.Require().InDelta(1.0, scores.Sum(), conservationEps, name)
		for id, v := range scores {
			s.Require().GreaterOrEqual(v, 0.0, "%s: node %d", name, id)
		}
	}
}

func (s *PageRankSuite) TestDeterministic() {
	for name, adj := range s.fixtures() {
		a, err := pagerank.Compute(adj, 50, 0.85)
		s.Require().NoError(err)
		b, err := pagerank.Compute(adj.Clone(), 50, 0.85)
		s.Require().NoError(err)
		for id, v := range a {
			s.Require().Equal(math.Float64bits(v), math.Float64bits(b[id]), "%s: node %d", name, id)
		}
	}
}

func (s *PageRankSuite) TestIdempotentRerun() {
	adj := build(s.T(), []builder.BuilderOption{builder.WithSeed(9)}, builder.RandomSparse(30, 0.2))
	first, err := pagerank.Compute(adj, 50, 0.85)
	s.Require().NoError(err)
	for i := 0; i < 3; i++ {
		again, err := pagerank.Compute(adj, 50, 0.85)
		s.Require().NoError(err)
		s.Require().Equal(first, again)
	}
}

func (s *PageRankSuite) TestRelabelingInvariance() {
	adj := build(s.T(), []builder.BuilderOption{builder.WithSeed(11)}, builder.RandomSparse(25, 0.15))

	// reverse the identifier order: id → 1000 - id
	relabeled := make(core.Adjacency, len(adj))
	for id, nbrs := range adj {
		list := make([]core.NodeID, len(nbrs))
		for i, n := range nbrs {
			list[i] = 1000 - n
		}
		relabeled[1000-id] = list
	}

	a, err := pagerank.Compute(adj, 50, 0.85)
	s.Require().NoError(err)
	b, err := pagerank.Compute(relabeled, 50, 0.85)
	s.Require().NoError(err)

	for id, v := range a {
		s.Require().InDelta(v, b[1000-id], 1e-12, "node %d", id)
	}
	s.Require().InDeltaSlice(sortedValues(a), sortedValues(b), 1e-12)
}

func sortedValues(m pagerank.ScoreMap) []float64 {
	out := make([]float64, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Float64s(out)

	return out
}

func (s *PageRankSuite) TestSingleNode() {
	for _, iters := range []int{1, 5, 50} {
		scores, err := pagerank.Compute(core.Adjacency{1: {}}, iters, 0.85)
		s.Require().NoError(err)
		s.Require().InDelta(1.0, scores[1], 1e-12)
	}
}

func (s *PageRankSuite) TestSymmetricShapes() {
	pair, err := pagerank.Compute(core.Adjacency{1: {2}, 2: {1}}, 50, 0.85)
	s.Require().NoError(err)
	s.Require().InDelta(0.5, pair[1], approxEps)
	s.Require().InDelta(0.5, pair[2], approxEps)

	tri, err := pagerank.Compute(core.Adjacency{1: {2, 3}, 2: {1, 3}, 3: {1, 2}}, 50, 0.85)
	s.Require().NoError(err)
	for id := core.NodeID(1); id <= 3; id++ {
		s.Require().InDelta(1.0/3.0, tri[id], approxEps)
	}
}

func (s *PageRankSuite) TestStarHubDominates() {
	scores, err := pagerank.Compute(build(s.T(), nil, builder.Star(5)), 50, 0.85)
	s.Require().NoError(err)
	for leaf := core.NodeID(2); leaf <= 5; leaf++ {
		s.Require().Greater(scores[1], scores[leaf])
		s.Require().InDelta(scores[2], scores[leaf], 1e-12, "leaves are symmetric")
	}
	s.Require().Equal(core.NodeID(1), scores.Sorted()[0].Node)
}

func (s *PageRankSuite) TestDanglingPolicies() {
	adj := core.Adjacency{1: {2}, 2: {1}, 3: {}}

	// Redistribute: c = 0.05 / (1 - 0.85/3), the pair shares the rest.
	red, err := pagerank.Run(adj, pagerank.WithTolerance(1e-12), pagerank.WithMaxIterations(500))
	s.Require().NoError(err)
	c := 0.05 / (1 - 0.85/3)
	s.Require().InDelta(c, red.Scores[3], 1e-9)
	s.Require().InDelta((1-c)/2, red.Scores[1], 1e-9)
	s.Require().InDelta(1.0, red.Scores.Sum(), conservationEps)

	// Drop: the isolated node only keeps its teleport share.
	drop, err := pagerank.Run(adj,
		pagerank.WithDanglingPolicy(pagerank.DanglingDrop),
		pagerank.WithTolerance(1e-12),
		pagerank.WithMaxIterations(500),
	)
	s.Require().NoError(err)
	s.Require().InDelta(0.05, drop.Scores[3], 1e-9)
	s.Require().InDelta(1.0/3.0, drop.Scores[1], 1e-9)
	s.Require().Less(drop.Scores.Sum(), 1.0)
}

func (s *PageRankSuite) TestConvergenceMetadata() {
	// The uniform start is already stationary on a triangle.
	tri := core.Adjacency{1: {2, 3}, 2: {1, 3}, 3: {1, 2}}
	res, err := pagerank.Run(tri)
	s.Require().NoError(err)
	s.Require().True(res.Converged)
	s.Require().Equal(1, res.Iterations)
	s.Require().False(res.Incomplete)

	// Zero tolerance disables early stopping.
	res, err = pagerank.Run(tri, pagerank.WithTolerance(0), pagerank.WithMaxIterations(7))
	s.Require().NoError(err)
	s.Require().False(res.Converged)
	s.Require().Equal(7, res.Iterations)

	// A path needs more than one step.
	res, err = pagerank.Run(build(s.T(), nil, builder.Path(6)))
	s.Require().NoError(err)
	s.Require().Greater(res.Iterations, 1)
	s.Require().LessOrEqual(res.Iterations, pagerank.DefaultMaxIterations)
}

func (s *PageRankSuite) TestOnIterationHook() {
	var (
		iters  []int
		deltas []float64
	)
	res, err := pagerank.Run(build(s.T(), nil, builder.Path(5)),
		pagerank.WithTolerance(0),
		pagerank.WithMaxIterations(10),
		pagerank.WithOnIteration(func(iter int, delta float64) {
			iters = append(iters, iter)
			deltas = append(deltas, delta)
		}),
	)
	s.Require().NoError(err)
	s.Require().Equal([]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, iters)
	s.Require().Equal(deltas[len(deltas)-1], res.Delta)
}

func (s *PageRankSuite) TestCancellation() {
	adj := build(s.T(), nil, builder.Path(5))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := pagerank.Run(adj, pagerank.WithContext(ctx))
	s.Require().NoError(err)
	s.Require().True(res.Incomplete)
	s.Require().Zero(res.Iterations)
	for _, v := range res.Scores {
		s.Require().InDelta(0.2, v, 1e-15, "initial vector is uniform")
	}

	ctx, cancel = context.WithCancel(context.Background())
	defer cancel()
	res, err = pagerank.Run(adj,
		pagerank.WithContext(ctx),
		pagerank.WithTolerance(0),
		pagerank.WithOnIteration(func(iter int, _ float64) {
			if iter == 2 {
				cancel()
			}
		}),
	)
	s.Require().NoError(err)
	s.Require().True(res.Incomplete)
	s.Require().Equal(2, res.Iterations)
	s.Require().InDelta(1.0, res.Scores.Sum(), conservationEps)

	// Compute hides the flag but still returns the partial scores.
	scores, err := pagerank.Compute(adj, 50, 0.85, pagerank.WithContext(ctx))
	s.Require().NoError(err)
	s.Require().Len(scores, 5)
}

func (s *PageRankSuite) TestComputeArgumentsOverrideOptions() {
	adj := build(s.T(), nil, builder.Path(4))
	a, err := pagerank.Compute(adj, 3, 0.5, pagerank.WithMaxIterations(40), pagerank.WithDampingFactor(0.9))
	s.Require().NoError(err)
	b, err := pagerank.Compute(adj, 3, 0.5)
	s.Require().NoError(err)
	s.Require().Equal(a, b)
}

func (s *PageRankSuite) TestEmptyGraph() {
	scores, err := pagerank.Compute(core.Adjacency{}, 50, 0.85)
	s.Require().NoError(err)
	s.Require().Empty(scores)
	s.Require().NotNil(scores)
}

// TestInvalidInput covers every validation failure; all share ErrInvalidInput.
func TestInvalidInput(t *testing.T) {
	t.Parallel()

	adj := core.Adjacency{1: {2}, 2: {1}}
	tests := []struct {
		name string
		run  func() (pagerank.ScoreMap, error)
		want error
	}{
		{"zero iterations", func() (pagerank.ScoreMap, error) { return pagerank.Compute(adj, 0, 0.85) }, pagerank.ErrBadIterations},
		{"negative iterations", func() (pagerank.ScoreMap, error) { return pagerank.Compute(adj, -1, 0.85) }, pagerank.ErrBadIterations},
		{"damping one", func() (pagerank.ScoreMap, error) { return pagerank.Compute(adj, 50, 1.0) }, pagerank.ErrBadDamping},
		{"damping zero", func() (pagerank.ScoreMap, error) { return pagerank.Compute(adj, 50, 0) }, pagerank.ErrBadDamping},
		{"damping NaN", func() (pagerank.ScoreMap, error) { return pagerank.Compute(adj, 50, math.NaN()) }, pagerank.ErrBadDamping},
		{"negative tolerance", func() (pagerank.ScoreMap, error) {
			return pagerank.Compute(adj, 50, 0.85, pagerank.WithTolerance(-1))
		}, pagerank.ErrBadTolerance},
		{"infinite tolerance", func() (pagerank.ScoreMap, error) {
			return pagerank.Compute(adj, 50, 0.85, pagerank.WithTolerance(math.Inf(1)))
		}, pagerank.ErrBadTolerance},
		{"bad policy", func() (pagerank.ScoreMap, error) {
			return pagerank.Compute(adj, 50, 0.85, pagerank.WithDanglingPolicy(pagerank.DanglingPolicy(9)))
		}, pagerank.ErrBadDanglingPolicy},
		{"unknown neighbor", func() (pagerank.ScoreMap, error) {
			return pagerank.Compute(core.Adjacency{1: {2}}, 50, 0.85)
		}, pagerank.ErrUnknownNeighbor},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			scores, err := tc.run()
			require.Nil(t, scores)
			require.ErrorIs(t, err, tc.want)
			require.ErrorIs(t, err, pagerank.ErrInvalidInput)
		})
	}
}

func TestUnknownNeighborKeepsCause(t *testing.T) {
	t.Parallel()

	_, err := pagerank.Run(core.Adjacency{1: {7}})
	require.ErrorIs(t, err, core.ErrNodeNotFound)
}

func TestParseDanglingPolicy(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]pagerank.DanglingPolicy{
		"":             pagerank.DanglingRedistribute,
		"redistribute": pagerank.DanglingRedistribute,
		"drop":         pagerank.DanglingDrop,
	} {
		got, err := pagerank.ParseDanglingPolicy(in)
		require.NoError(t, err)
		require.Equal(t, want, got)
		if in != "" {
			require.Equal(t, in, got.String())
		}
	}

	_, err := pagerank.ParseDanglingPolicy("keep")
	require.ErrorIs(t, err, pagerank.ErrBadDanglingPolicy)
	require.Equal(t, "DanglingPolicy(7)", pagerank.DanglingPolicy(7).String())
}
