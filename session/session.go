// SPDX-License-Identifier: MIT

// Package session holds the mutable application state around one friendship
// graph: the graph itself, the last successful scores, the selected node and
// the table sort order. The PageRank engine stays pure; everything stateful
// lives here.
//
// Recomputation runs the engine on an immutable Adjacency snapshot, so the
// graph may be edited while a run is in flight. Concurrent recompute requests
// are coalesced: a caller arriving during a run waits for it and shares its
// outcome. Scores are replaced only when a run completes successfully.
package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/katalvlaran/friendrank/core"
	"github.com/katalvlaran/friendrank/dfs"
	"github.com/katalvlaran/friendrank/pagerank"
	"github.com/katalvlaran/friendrank/ranking"
	"github.com/katalvlaran/friendrank/recommend"
	"github.com/katalvlaran/friendrank/store"
)

// Sentinel errors.
var (
	// ErrUnknownNode is returned when selecting a node that is not in the graph.
	ErrUnknownNode = errors.New("session: unknown node")

	// ErrNoScores is returned by read operations before the first successful run.
	ErrNoScores = errors.New("session: scores not computed yet")

	// ErrIncomplete is returned when a run was cancelled; prior scores are kept.
	ErrIncomplete = errors.New("session: computation cancelled before completion")

	// ErrSnapshotMismatch is returned by Restore when the snapshot was scored
	// over a different node set than the current graph.
	ErrSnapshotMismatch = errors.New("session: snapshot does not match graph")
)

// Persister receives graph edits and new snapshots. *store.Store satisfies it.
type Persister interface {
	AddEdge(a, b core.NodeID) error
	RemoveEdge(a, b core.NodeID) error
	SaveScores(snap store.Snapshot) error
}

// Option configures a Session.
type Option func(*Session)

// WithEngineOptions sets the options passed to every pagerank.Run.
func WithEngineOptions(opts ...pagerank.Option) Option {
	return func(s *Session) { s.engineOpts = append([]pagerank.Option(nil), opts...) }
}

// WithRecommendOptions sets the default recommendation options.
func WithRecommendOptions(opts ...recommend.Option) Option {
	return func(s *Session) { s.recOpts = append([]recommend.Option(nil), opts...) }
}

// WithPersister mirrors edits and snapshots into p.
func WithPersister(p Persister) Option {
	return func(s *Session) { s.persist = p }
}

// WithLogger sets the session logger (disabled by default).
func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) { s.log = l }
}

// WithClock overrides time.Now for snapshot timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// Session is safe for concurrent use.
type Session struct {
	mu sync.RWMutex

	graph      *core.Graph
	generation uint64 // bumped on every graph edit

	scores     pagerank.ScoreMap
	table      *ranking.Table
	last       pagerank.Result
	scoredGen  uint64
	computedAt time.Time

	selected    core.NodeID
	hasSelected bool
	sortKey     ranking.SortKey
	sortDesc    bool
	running     int // in-flight runs

	engineOpts []pagerank.Option
	recOpts    []recommend.Option
	persist    Persister
	log        zerolog.Logger
	now        func() time.Time

	group singleflight.Group
}

// New wraps g. The session takes ownership of g; edit it only through the
// session afterwards.
func New(g *core.Graph, opts ...Option) *Session {
	if g == nil {
		g = core.NewGraph()
	}
	s := &Session{
		graph:   g,
		log:     zerolog.Nop(),
		now:     time.Now,
		sortKey: ranking.SortByRank,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Restore installs a previously persisted snapshot as the current scores.
// The snapshot must score exactly the nodes of the graph; otherwise nothing
// is installed and ErrSnapshotMismatch is returned.
func (s *Session) Restore(snap store.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	nodes := s.graph.Nodes()
	if len(nodes) != len(snap.Scores) {
		return fmt.Errorf("%w: %d scores for %d nodes", ErrSnapshotMismatch, len(snap.Scores), len(nodes))
	}
	for _, id := range nodes {
		if _, ok := snap.Scores[id]; !ok {
			return fmt.Errorf("%w: node %d has no score", ErrSnapshotMismatch, id)
		}
	}

	s.scores = snap.Scores.Clone()
	s.last = pagerank.Result{Scores: s.scores, Iterations: snap.Iterations, Converged: snap.Converged}
	s.computedAt = snap.ComputedAt
	s.scoredGen = s.generation
	s.table = ranking.NewTable(s.graph.Adjacency(), s.scores)

	return nil
}

// Recompute runs PageRank on the current graph and installs the result.
//
// While a run over the same graph version is in flight further calls join it
// instead of starting a new one; the joined run uses the context of the
// caller that started it. An edit made during a run starts a fresh one.
// On error (invalid parameters, cancellation) the previous scores stay in
// place and the error is returned.
func (s *Session) Recompute(ctx context.Context) (*pagerank.Result, error) {
	s.mu.RLock()
	key := "gen-" + strconv.FormatUint(s.generation, 10)
	s.mu.RUnlock()

	v, err, shared := s.group.Do(key, func() (interface{}, error) {
		return s.recompute(ctx)
	})
	if shared {
		s.log.Debug().Msg("recompute coalesced with in-flight run")
	}
	if err != nil {
		return nil, err
	}

	return v.(*pagerank.Result), nil
}

// Outcome is delivered by RecomputeAsync.
type Outcome struct {
	Result *pagerank.Result
	Err    error
}

// RecomputeAsync runs Recompute on a background goroutine. The returned
// channel receives exactly one Outcome and is then closed.
func (s *Session) RecomputeAsync(ctx context.Context) <-chan Outcome {
	ch := make(chan Outcome, 1)
	go func() {
		defer close(ch)
		res, err := s.Recompute(ctx)
		ch <- Outcome{Result: res, Err: err}
	}()

	return ch
}

func (s *Session) recompute(ctx context.Context) (*pagerank.Result, error) {
	s.mu.Lock()
	adj := s.graph.Adjacency()
	gen := s.generation
	s.running++
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running--
		s.mu.Unlock()
	}()

	started := s.now()
	opts := s.runOptions(ctx)

	res, err := pagerank.Run(adj, opts...)
	if err != nil {
		s.log.Error().Err(err).Msg("pagerank failed")
		return nil, fmt.Errorf("session: recompute: %w", err)
	}
	if res.Incomplete {
		s.log.Warn().Int("iterations", res.Iterations).Msg("pagerank cancelled")
		return nil, fmt.Errorf("%w after %d iterations", ErrIncomplete, res.Iterations)
	}

	table := ranking.NewTable(adj, res.Scores)
	at := s.now()

	s.mu.Lock()
	installed := s.scores == nil || gen >= s.scoredGen
	if installed {
		s.scores = res.Scores
		s.last = *res
		s.table = table
		s.scoredGen = gen
		s.computedAt = at
	}
	s.mu.Unlock()
	if !installed {
		s.log.Debug().Uint64("generation", gen).Msg("discarding result of older graph version")
		return res, nil
	}

	s.log.Info().
		Int("nodes", len(adj)).
		Int("iterations", res.Iterations).
		Bool("converged", res.Converged).
		Dur("took", at.Sub(started)).
		Msg("pagerank computed")

	if s.persist != nil {
		snap := store.Snapshot{Scores: res.Scores, Iterations: res.Iterations, Converged: res.Converged, ComputedAt: at}
		if perr := s.persist.SaveScores(snap); perr != nil {
			s.log.Error().Err(perr).Msg("persist scores")
		}
	}

	return res, nil
}

// runOptions appends the context and a logging hook to the configured engine
// options. A hook set through WithEngineOptions still fires.
func (s *Session) runOptions(ctx context.Context) []pagerank.Option {
	o := pagerank.DefaultOptions()
	for _, opt := range s.engineOpts {
		opt(&o)
	}
	user := o.OnIteration

	opts := make([]pagerank.Option, 0, len(s.engineOpts)+2)
	opts = append(opts, s.engineOpts...)

	return append(opts,
		pagerank.WithContext(ctx),
		pagerank.WithOnIteration(func(iter int, delta float64) {
			s.log.Debug().Int("iter", iter).Float64("delta", delta).Msg("pagerank iteration")
			if user != nil {
				user(iter, delta)
			}
		}),
	)
}

// Connect adds the friendship a–b, persists it, and recomputes. The edit is
// kept even if the recompute fails; that error is returned.
func (s *Session) Connect(ctx context.Context, a, b core.NodeID) (*pagerank.Result, error) {
	s.mu.Lock()
	_, err := s.graph.Connect(a, b)
	if err == nil {
		s.generation++
	}
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("session: connect %d-%d: %w", a, b, err)
	}
	s.log.Info().Int64("a", int64(a)).Int64("b", int64(b)).Msg("nodes connected")

	if s.persist != nil {
		if perr := s.persist.AddEdge(a, b); perr != nil {
			s.log.Error().Err(perr).Msg("persist edge")
		}
	}

	return s.Recompute(ctx)
}

// Disconnect removes the friendship a–b, persists the removal, and
// recomputes. Both nodes stay in the graph. The edit is kept even if the
// recompute fails; that error is returned.
func (s *Session) Disconnect(ctx context.Context, a, b core.NodeID) (*pagerank.Result, error) {
	s.mu.Lock()
	err := s.graph.Disconnect(a, b)
	if err == nil {
		s.generation++
	}
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("session: disconnect %d-%d: %w", a, b, err)
	}
	s.log.Info().Int64("a", int64(a)).Int64("b", int64(b)).Msg("nodes disconnected")

	if s.persist != nil {
		if perr := s.persist.RemoveEdge(a, b); perr != nil {
			s.log.Error().Err(perr).Msg("persist edge removal")
		}
	}

	return s.Recompute(ctx)
}

// Select marks id as the focused node.
func (s *Session) Select(id core.NodeID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.graph.HasNode(id) {
		return fmt.Errorf("%w: %d", ErrUnknownNode, id)
	}
	s.selected, s.hasSelected = id, true

	return nil
}

// Selected returns the focused node, if any.
func (s *Session) Selected() (core.NodeID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.selected, s.hasSelected
}

// SetSort changes the table order used by Table.
func (s *Session) SetSort(key ranking.SortKey, descending bool) {
	s.mu.Lock()
	s.sortKey, s.sortDesc = key, descending
	s.mu.Unlock()
}

// Table returns the score table in the current sort order.
func (s *Session) Table() ([]ranking.Row, error) {
	s.mu.RLock()
	table, key, desc := s.table, s.sortKey, s.sortDesc
	s.mu.RUnlock()

	if table == nil {
		return nil, ErrNoScores
	}

	return table.Sorted(key, desc), nil
}

// Scores returns a copy of the current scores.
func (s *Session) Scores() (pagerank.ScoreMap, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.scores == nil {
		return nil, ErrNoScores
	}

	return s.scores.Clone(), nil
}

// Recommendations ranks suggestions for node against the current graph and
// scores. opts are applied after the session defaults.
func (s *Session) Recommendations(node core.NodeID, opts ...recommend.Option) ([]pagerank.Ranked, error) {
	s.mu.RLock()
	scores := s.scores
	adj := s.graph.Adjacency()
	s.mu.RUnlock()

	if scores == nil {
		return nil, ErrNoScores
	}
	all := make([]recommend.Option, 0, len(s.recOpts)+len(opts))
	all = append(all, s.recOpts...)
	all = append(all, opts...)

	recs, err := recommend.Recommend(adj, scores, node, all...)
	if errors.Is(err, recommend.ErrUnknownNode) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownNode, node)
	}

	return recs, err
}

// Edges returns the current friendships sorted by (From, To).
func (s *Session) Edges() []core.Edge {
	s.mu.RLock()
	defer s.mu.RUnlock()

	edges := s.graph.Edges()
	out := make([]core.Edge, len(edges))
	for i, e := range edges {
		out[i] = *e
	}

	return out
}

// Components returns the friendship circles of the current graph.
func (s *Session) Components() ([][]core.NodeID, error) {
	s.mu.RLock()
	adj := s.graph.Adjacency()
	s.mu.RUnlock()

	return dfs.Components(adj)
}

// Nodes returns all node identifiers in ascending order.
func (s *Session) Nodes() []core.NodeID {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.graph.Nodes()
}

// Status is a point-in-time summary of the session.
type Status struct {
	Nodes      int          `json:"nodes"`
	Edges      int          `json:"edges"`
	Computing  bool         `json:"computing"`
	Scored     bool         `json:"scored"`
	Stale      bool         `json:"stale"`
	Iterations int          `json:"iterations"`
	Converged  bool         `json:"converged"`
	ComputedAt time.Time    `json:"computed_at"`
	Selected   *core.NodeID `json:"selected,omitempty"`
}

// Status reports counts, the computing flag and the freshness of the scores.
func (s *Session) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Status{
		Nodes:      s.graph.NodeCount(),
		Edges:      s.graph.EdgeCount(),
		Computing:  s.running > 0,
		Scored:     s.scores != nil,
		Stale:      s.scores != nil && s.scoredGen != s.generation,
		Iterations: s.last.Iterations,
		Converged:  s.last.Converged,
		ComputedAt: s.computedAt,
	}
	if s.hasSelected {
		id := s.selected
		st.Selected = &id
	}

	return st
}
