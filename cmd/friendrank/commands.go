// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/friendrank/builder"
	"github.com/katalvlaran/friendrank/config"
	"github.com/katalvlaran/friendrank/core"
	"github.com/katalvlaran/friendrank/dfs"
	"github.com/katalvlaran/friendrank/edgelist"
	"github.com/katalvlaran/friendrank/internal/cli"
	"github.com/katalvlaran/friendrank/pagerank"
	"github.com/katalvlaran/friendrank/ranking"
	"github.com/katalvlaran/friendrank/recommend"
	"github.com/katalvlaran/friendrank/session"
	"github.com/katalvlaran/friendrank/store"
)

const (
	// verifyTolerance is the stop criterion handed to the reference solver.
	verifyTolerance = 1e-10
	// verifyLimit is the largest per-node disagreement -verify accepts.
	verifyLimit = 1e-3
	// maxVerifyNodes bounds the dense reference solver's memory.
	maxVerifyNodes = 20000
)

// errInterrupted reports a run cut short by a signal.
var errInterrupted = errors.New("interrupted before the computation finished")

// loadEdges parses an edge list file and logs what was skipped.
func loadEdges(ctx context.Context, path string) (*core.Graph, error) {
	g, rep, err := edgelist.ParseFile(path)
	if err != nil {
		return nil, err
	}

	ev := zerolog.Ctx(ctx).Info()
	if rep.Skipped() > 0 {
		ev = zerolog.Ctx(ctx).Warn()
	}
	ev.Str("file", path).
		Int("nodes", g.NodeCount()).
		Int("edges", rep.Edges).
		Int("malformed", rep.Malformed).
		Int("self_loops", rep.SelfLoops).
		Int("duplicates", rep.Duplicates).
		Msg("edge list loaded")

	return g, nil
}

// score runs the engine with the configured options.
func score(ctx context.Context, cfg *config.Config, adj core.Adjacency) (*pagerank.Result, error) {
	res, err := pagerank.Run(adj, append(cfg.EngineOptions(), pagerank.WithContext(ctx))...)
	if err != nil {
		return nil, err
	}
	if res.Incomplete {
		return nil, errInterrupted
	}

	log := zerolog.Ctx(ctx)
	if !res.Converged {
		log.Warn().Int("iterations", res.Iterations).Float64("delta", res.Delta).Msg("pagerank did not converge")
	} else {
		log.Debug().Int("iterations", res.Iterations).Msg("pagerank converged")
	}

	return res, nil
}

func rankCmd(ctx context.Context, cfg *config.Config, args []string, stdout io.Writer) error {
	a, exit, err := cli.ParseRank(args, stdout)
	if exit || err != nil {
		return err
	}
	g, err := loadEdges(ctx, a.Edges)
	if err != nil {
		return err
	}

	adj := g.Adjacency()
	comps, err := dfs.Components(adj)
	if err != nil {
		return err
	}
	zerolog.Ctx(ctx).Info().Int("components", len(comps)).Int("largest", largest(comps)).Msg("graph shape")

	res, err := score(ctx, cfg, adj)
	if err != nil {
		return err
	}
	if err = ranking.Write(stdout, ranking.NewTable(adj, res.Scores).Top(a.Top)); err != nil {
		return err
	}
	if !a.Verify {
		return nil
	}

	return verify(ctx, cfg, adj, res.Scores, stdout)
}

func largest(comps [][]core.NodeID) int {
	var n int
	for _, c := range comps {
		n = max(n, len(c))
	}

	return n
}

// verify compares scores with the gonum reference solver.
func verify(ctx context.Context, cfg *config.Config, adj core.Adjacency, scores pagerank.ScoreMap, stdout io.Writer) error {
	if cfg.Engine.Dangling != pagerank.DanglingRedistribute.String() {
		return &cli.ExitError{Code: cli.UsageCode, Message: "rank: -verify needs the redistribute dangling policy"}
	}
	if len(adj) > maxVerifyNodes {
		return &cli.ExitError{Code: cli.UsageCode, Message: fmt.Sprintf("rank: -verify supports at most %d nodes", maxVerifyNodes)}
	}

	ref, err := pagerank.Reference(adj, cfg.Engine.Damping, verifyTolerance)
	if err != nil {
		return err
	}
	diff := pagerank.MaxAbsDiff(scores, ref)
	zerolog.Ctx(ctx).Info().Float64("max_abs_diff", diff).Msg("reference check")
	if _, err = fmt.Fprintf(stdout, "\nreference max |diff|: %.2e\n", diff); err != nil {
		return err
	}
	if diff > verifyLimit {
		return fmt.Errorf("rank: scores differ from the reference by %.2e (limit %.0e)", diff, verifyLimit)
	}

	return nil
}

func recommendCmd(ctx context.Context, cfg *config.Config, args []string, stdout io.Writer) error {
	a, exit, err := cli.ParseRecommend(args, stdout)
	if exit || err != nil {
		return err
	}
	g, err := loadEdges(ctx, a.Edges)
	if err != nil {
		return err
	}

	adj := g.Adjacency()
	res, err := score(ctx, cfg, adj)
	if err != nil {
		return err
	}

	opts := cfg.RecommendOptions()
	if a.KSet {
		opts = append(opts, recommend.WithK(a.K))
	}
	if a.HopsSet {
		opts = append(opts, recommend.WithMaxHops(a.Hops))
	}
	recs, err := recommend.Recommend(adj, res.Scores, a.Node, opts...)
	switch {
	case errors.Is(err, recommend.ErrBadK), errors.Is(err, recommend.ErrBadHops):
		return &cli.ExitError{Code: cli.UsageCode, Message: "recommend: " + err.Error()}
	case err != nil:
		return err
	}

	rows := make([]ranking.Row, len(recs))
	for i, r := range recs {
		rows[i] = ranking.Row{Rank: i + 1, Node: r.Node, Score: r.Score, Degree: adj.Degree(r.Node)}
	}

	return ranking.Write(stdout, rows)
}

func connectCmd(ctx context.Context, cfg *config.Config, args []string, stdout io.Writer) error {
	a, exit, err := cli.ParseConnect(args, stdout)
	if exit || err != nil {
		return err
	}
	path := a.DB
	if path == "" {
		path = cfg.Store.Path
	}
	if path == "" {
		return &cli.ExitError{Code: cli.UsageCode, Message: "connect: -db or store.path is required"}
	}

	st, err := store.Open(path)
	if err != nil {
		return err
	}
	defer st.Close()

	g, err := seedStore(ctx, st, a.Edges)
	if err != nil {
		return err
	}

	log := zerolog.Ctx(ctx)
	sess := session.New(g,
		session.WithEngineOptions(cfg.EngineOptions()...),
		session.WithPersister(st),
		session.WithLogger(*log),
	)
	if _, err = sess.Connect(ctx, a.A, a.B); err != nil {
		if errors.Is(err, session.ErrIncomplete) {
			return errInterrupted
		}
		return err
	}

	rows, err := sess.Table()
	if err != nil {
		return err
	}
	if a.Top > 0 && a.Top < len(rows) {
		rows = rows[:a.Top]
	}

	return ranking.Write(stdout, rows)
}

// seedStore loads the stored graph, filling an empty store from edgesPath
// when one is given.
func seedStore(ctx context.Context, st *store.Store, edgesPath string) (*core.Graph, error) {
	g, err := st.LoadGraph()
	if err != nil {
		return nil, err
	}
	if g.NodeCount() > 0 || edgesPath == "" {
		return g, nil
	}

	if g, err = loadEdges(ctx, edgesPath); err != nil {
		return nil, err
	}
	if err = st.SaveGraph(g); err != nil {
		return nil, err
	}
	zerolog.Ctx(ctx).Info().Str("db", st.Path()).Msg("store seeded from edge list")

	return g, nil
}

func generateCmd(ctx context.Context, args []string, stdout io.Writer) (err error) {
	a, exit, err := cli.ParseGenerate(args, stdout)
	if exit || err != nil {
		return err
	}
	ctor, err := builder.Topology(a.Topology, a.N, a.P)
	if err != nil {
		return &cli.ExitError{Code: cli.UsageCode, Message: "generate: unknown topology " + a.Topology}
	}
	g, err := builder.BuildGraph([]builder.BuilderOption{
		builder.WithSeed(a.Seed),
		builder.WithIDOffset(core.NodeID(a.Offset)),
	}, ctor)
	if err != nil {
		if errors.Is(err, builder.ErrTooFewVertices) {
			return &cli.ExitError{Code: cli.UsageCode, Message: "generate: " + err.Error()}
		}
		return err
	}

	out := stdout
	if a.Out != "" {
		f, ferr := os.Create(a.Out)
		if ferr != nil {
			return ferr
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		out = f
	}

	stats := g.Stats()
	zerolog.Ctx(ctx).Info().
		Str("topology", a.Topology).
		Int("nodes", stats.NodeCount).
		Int("edges", stats.EdgeCount).
		Int("isolated", stats.DanglingCount).
		Msg("graph generated")

	return edgelist.Write(out, g)
}
