// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/friendrank/config"
	"github.com/katalvlaran/friendrank/core"
	"github.com/katalvlaran/friendrank/internal/cli"
	"github.com/katalvlaran/friendrank/server"
	"github.com/katalvlaran/friendrank/session"
	"github.com/katalvlaran/friendrank/store"
)

const readHeaderTimeout = 10 * time.Second

func serveCmd(ctx context.Context, cfg *config.Config, args []string, stdout io.Writer) error {
	a, exit, err := cli.ParseServe(args, stdout)
	if exit || err != nil {
		return err
	}
	addr := a.Addr
	if addr == "" {
		addr = cfg.Server.Addr
	}
	dbPath := a.DB
	if dbPath == "" {
		dbPath = cfg.Store.Path
	}
	if a.Edges == "" && dbPath == "" {
		return &cli.ExitError{Code: cli.UsageCode, Message: "serve: -edges or -db (or store.path) is required"}
	}

	log := zerolog.Ctx(ctx)
	opts := []session.Option{
		session.WithEngineOptions(cfg.EngineOptions()...),
		session.WithRecommendOptions(cfg.RecommendOptions()...),
		session.WithLogger(*log),
	}

	var (
		g        *core.Graph
		snapshot *store.Snapshot
	)
	if a.Edges != "" {
		if g, err = loadEdges(ctx, a.Edges); err != nil {
			return err
		}
	}
	if dbPath != "" {
		st, err := store.Open(dbPath)
		if err != nil {
			return err
		}
		defer st.Close()
		opts = append(opts, session.WithPersister(st))

		if g != nil {
			err = st.SaveGraph(g)
		} else {
			g, snapshot, err = loadStored(st)
		}
		if err != nil {
			return err
		}
	}

	sess := session.New(g, opts...)
	if snapshot != nil {
		if err = sess.Restore(*snapshot); err != nil {
			log.Warn().Err(err).Msg("stored scores discarded")
			snapshot = nil
		} else {
			log.Info().Time("computed_at", snapshot.ComputedAt).Msg("scores restored")
		}
	}
	if snapshot == nil {
		// The store closes on return; the first run must persist before that.
		runCtx, stop := context.WithCancel(ctx)
		initial := make(chan struct{})
		defer awaitInitial(log, initial, cfg.ShutdownDuration())
		defer stop()
		go func() {
			defer close(initial)
			if out := <-sess.RecomputeAsync(runCtx); out.Err != nil {
				log.Warn().Err(out.Err).Msg("initial computation failed")
			}
		}()
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	httpSrv := &http.Server{
		Handler:           server.New(sess, server.WithLogger(*log)),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.Serve(ln) }()
	log.Info().Str("addr", ln.Addr().String()).Msg("listening")

	select {
	case err = <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Dur("timeout", cfg.ShutdownDuration()).Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownDuration())
	defer cancel()

	return httpSrv.Shutdown(sctx)
}

// awaitInitial blocks until done is closed or timeout passes.
func awaitInitial(log *zerolog.Logger, done <-chan struct{}, timeout time.Duration) {
	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case <-done:
	case <-t.C:
		log.Warn().Dur("timeout", timeout).Msg("initial computation still running at exit")
	}
}

// loadStored returns the stored graph and, when present, its last snapshot.
func loadStored(st *store.Store) (*core.Graph, *store.Snapshot, error) {
	g, err := st.LoadGraph()
	if err != nil {
		return nil, nil, err
	}
	snap, err := st.LoadScores()
	if errors.Is(err, store.ErrNotFound) {
		return g, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	return g, snap, nil
}
