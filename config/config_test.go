// SPDX-License-Identifier: MIT

package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	multierror "github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/friendrank/config"
	"github.com/katalvlaran/friendrank/core"
	"github.com/katalvlaran/friendrank/pagerank"
	"github.com/katalvlaran/friendrank/recommend"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 0.85, cfg.Engine.Damping)
	assert.Equal(t, 50, cfg.Engine.MaxIterations)
	assert.Equal(t, 5*time.Second, cfg.ShutdownDuration())
}

func TestParse_OverlaysDefaults(t *testing.T) {
	src := `
engine {
  damping  = 0.9
  dangling = "drop"
}
recommend {
  k        = 5
  max_hops = 2
}
log {
  format = "text"
}
store {
  path = "/tmp/friends.db"
}
`
	cfg, err := config.Parse([]byte(src), "friendrank.hcl")
	require.NoError(t, err)

	assert.Equal(t, 0.9, cfg.Engine.Damping)
	assert.Equal(t, 50, cfg.Engine.MaxIterations, "untouched attribute keeps its default")
	assert.Equal(t, 1e-6, cfg.Engine.Tolerance)
	assert.Equal(t, "drop", cfg.Engine.Dangling)
	assert.Equal(t, 5, cfg.Recommend.K)
	assert.Equal(t, 2, cfg.Recommend.MaxHops)
	assert.Equal(t, ":8080", cfg.Server.Addr, "missing block keeps its default")
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "/tmp/friends.db", cfg.Store.Path)
}

func TestParse_Empty(t *testing.T) {
	cfg, err := config.Parse(nil, "empty.hcl")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestParse_Errors(t *testing.T) {
	_, err := config.Parse([]byte(`engine {`), "broken.hcl")
	require.ErrorIs(t, err, config.ErrParse)

	_, err = config.Parse([]byte(`colour = "blue"`), "unknown.hcl")
	require.ErrorIs(t, err, config.ErrParse)

	_, err = config.Parse([]byte("engine {\n  damping = \"high\"\n}\n"), "type.hcl")
	require.ErrorIs(t, err, config.ErrParse)
}

func TestValidate_CollectsEveryViolation(t *testing.T) {
	src := `
engine {
  damping        = 1
  max_iterations = 0
  tolerance      = -1
  dangling       = "keep"
}
recommend {
  k        = 0
  max_hops = 1
}
server {
  addr             = ""
  shutdown_timeout = "soon"
}
log {
  level  = "trace"
  format = "xml"
}
`
	_, err := config.Parse([]byte(src), "bad.hcl")
	require.Error(t, err)
	require.ErrorIs(t, err, config.ErrInvalid)

	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	assert.Len(t, merr.Errors, 10)
	for _, e := range merr.Errors {
		assert.ErrorIs(t, e, config.ErrInvalid)
	}
	assert.Contains(t, err.Error(), "engine.damping")
	assert.Contains(t, err.Error(), "log.format")
}

func TestValidate_FillsNilBlocks(t *testing.T) {
	cfg := &config.Config{}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "friendrank.hcl")
	require.NoError(t, os.WriteFile(path, []byte("server {\n  addr = \"127.0.0.1:9000\"\n}\n"), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)

	_, err = config.Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.ErrorIs(t, err, config.ErrParse)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestOptionsFeedPackages(t *testing.T) {
	cfg, err := config.Parse([]byte("engine {\n  dangling = \"drop\"\n  max_iterations = 200\n  tolerance = 1e-12\n}\nrecommend {\n  k = 1\n}\n"), "opts.hcl")
	require.NoError(t, err)

	adj := core.Adjacency{1: {2}, 2: {1}, 3: {}}
	res, err := pagerank.Run(adj, cfg.EngineOptions()...)
	require.NoError(t, err)
	assert.InDelta(t, 0.05, res.Scores[3], 1e-9, "drop policy applied")

	got, err := recommend.Recommend(adj, res.Scores, 3, cfg.RecommendOptions()...)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
