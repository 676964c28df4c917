// SPDX-License-Identifier: MIT

package store_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/friendrank/builder"
	"github.com/katalvlaran/friendrank/core"
	"github.com/katalvlaran/friendrank/pagerank"
	"github.com/katalvlaran/friendrank/store"
)

type StoreSuite struct {
	suite.Suite
	path string
	st   *store.Store
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	s.path = filepath.Join(s.T().TempDir(), "friendrank.db")
	st, err := store.Open(s.path)
	s.Require().NoError(err)
	s.st = st
}

func (s *StoreSuite) TearDownTest() {
	if s.st != nil {
		s.Require().NoError(s.st.Close())
	}
}

// reopen closes and reopens the database to prove data hit the file.
func (s *StoreSuite) reopen() {
	s.Require().NoError(s.st.Close())
	st, err := store.Open(s.path)
	s.Require().NoError(err)
	s.st = st
}

func (s *StoreSuite) TestEmptyStore() {
	g, err := s.st.LoadGraph()
	s.Require().NoError(err)
	s.Require().Zero(g.NodeCount())

	_, err = s.st.LoadScores()
	s.Require().ErrorIs(err, store.ErrNotFound)
	s.Require().Equal(s.path, s.st.Path())
}

func (s *StoreSuite) TestGraphRoundTrip() {
	g, err := builder.BuildGraph([]builder.BuilderOption{builder.WithSeed(8)}, builder.RandomSparse(30, 0.1))
	s.Require().NoError(err)
	g.AddNode(-5) // isolated, negative id

	s.Require().NoError(s.st.SaveGraph(g))
	s.reopen()

	back, err := s.st.LoadGraph()
	s.Require().NoError(err)
	s.Require().Equal(g.Nodes(), back.Nodes())
	s.Require().Equal(g.Adjacency(), back.Adjacency())
}

func (s *StoreSuite) TestSaveGraphReplaces() {
	first, err := builder.BuildGraph(nil, builder.Complete(4))
	s.Require().NoError(err)
	s.Require().NoError(s.st.SaveGraph(first))

	second, err := builder.BuildGraph(nil, builder.Path(2))
	s.Require().NoError(err)
	s.Require().NoError(s.st.SaveGraph(second))

	back, err := s.st.LoadGraph()
	s.Require().NoError(err)
	s.Require().Equal([]core.NodeID{1, 2}, back.Nodes())
	s.Require().Equal(1, back.EdgeCount())
}

func (s *StoreSuite) TestAddEdge() {
	s.Require().NoError(s.st.AddEdge(9, 3))
	s.Require().NoError(s.st.AddEdge(3, 9)) // same key, no duplicate
	s.Require().NoError(s.st.AddEdge(3, 4))

	back, err := s.st.LoadGraph()
	s.Require().NoError(err)
	s.Require().Equal([]core.NodeID{3, 4, 9}, back.Nodes())
	s.Require().Equal(2, back.EdgeCount())
	s.Require().True(back.HasEdge(9, 3))
}

func (s *StoreSuite) TestScoresRoundTrip() {
	adj := core.Adjacency{1: {2}, 2: {1, 3}, 3: {2}, 4: {}}
	res, err := pagerank.Run(adj)
	s.Require().NoError(err)

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	snap := store.Snapshot{
		Scores:     res.Scores,
		Iterations: res.Iterations,
		Converged:  res.Converged,
		ComputedAt: at,
	}
	s.Require().NoError(s.st.SaveScores(snap))
	s.reopen()

	back, err := s.st.LoadScores()
	s.Require().NoError(err)
	s.Require().Equal(res.Iterations, back.Iterations)
	s.Require().Equal(res.Converged, back.Converged)
	s.Require().True(at.Equal(back.ComputedAt))
	s.Require().Len(back.Scores, 4)
	s.Require().Less(pagerank.MaxAbsDiff(res.Scores, back.Scores), 1e-15)
}

func (s *StoreSuite) saveSnapshot(scores pagerank.ScoreMap) {
	s.Require().NoError(s.st.SaveScores(store.Snapshot{Scores: scores, Iterations: 1, Converged: true}))
	_, err := s.st.LoadScores()
	s.Require().NoError(err)
}

func (s *StoreSuite) TestSaveGraphDropsScoresOfPreviousGraph() {
	first := core.NewGraph()
	_, err := first.Connect(1, 2)
	s.Require().NoError(err)
	s.Require().NoError(s.st.SaveGraph(first))
	s.saveSnapshot(pagerank.ScoreMap{1: 0.5, 2: 0.5})

	second := core.NewGraph()
	_, err = second.Connect(10, 20)
	s.Require().NoError(err)
	_, err = second.Connect(20, 30)
	s.Require().NoError(err)
	s.Require().NoError(s.st.SaveGraph(second))
	s.reopen()

	g, err := s.st.LoadGraph()
	s.Require().NoError(err)
	s.Require().Equal([]core.NodeID{10, 20, 30}, g.Nodes())

	_, err = s.st.LoadScores()
	s.Require().ErrorIs(err, store.ErrNotFound)
}

func (s *StoreSuite) TestAddEdgeDropsScoresOnlyWhenGraphChanges() {
	s.Require().NoError(s.st.AddEdge(1, 2))
	s.saveSnapshot(pagerank.ScoreMap{1: 0.5, 2: 0.5})

	s.Require().NoError(s.st.AddEdge(2, 1))
	_, err := s.st.LoadScores()
	s.Require().NoError(err, "known friendship keeps the snapshot")

	s.Require().NoError(s.st.AddEdge(2, 3))
	_, err = s.st.LoadScores()
	s.Require().ErrorIs(err, store.ErrNotFound)
}

func (s *StoreSuite) TestRemoveEdge() {
	s.Require().NoError(s.st.AddEdge(1, 2))
	s.Require().NoError(s.st.AddEdge(2, 3))
	s.saveSnapshot(pagerank.ScoreMap{1: 0.25, 2: 0.5, 3: 0.25})

	s.Require().NoError(s.st.RemoveEdge(3, 1)) // never stored
	_, err := s.st.LoadScores()
	s.Require().NoError(err)

	s.Require().NoError(s.st.RemoveEdge(2, 1))
	_, err = s.st.LoadScores()
	s.Require().ErrorIs(err, store.ErrNotFound)

	back, err := s.st.LoadGraph()
	s.Require().NoError(err)
	s.Require().Equal([]core.NodeID{1, 2, 3}, back.Nodes())
	s.Require().Equal(1, back.EdgeCount())
	s.Require().False(back.HasEdge(1, 2))
}

func TestOpen_BadPath(t *testing.T) {
	_, err := store.Open(filepath.Join(t.TempDir(), "missing", "dir", "x.db"))
	require.Error(t, err)
}
