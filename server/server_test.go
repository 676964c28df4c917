// SPDX-License-Identifier: MIT

package server_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/friendrank/builder"
	"github.com/katalvlaran/friendrank/core"
	"github.com/katalvlaran/friendrank/server"
	"github.com/katalvlaran/friendrank/session"
)

// newServer returns a server over the path 1-2-3-4-5, optionally scored.
func newServer(t *testing.T, scored bool, opts ...server.Option) (*server.Server, *session.Session) {
	t.Helper()
	g, err := builder.BuildGraph(nil, builder.Path(5))
	require.NoError(t, err)

	sess := session.New(g)
	if scored {
		_, err = sess.Recompute(context.Background())
		require.NoError(t, err)
	}

	return server.New(sess, opts...), sess
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())

	return v
}

func TestHealth(t *testing.T) {
	srv, _ := newServer(t, false)

	t.Run("returns 200 with JSON", func(t *testing.T) {
		w := do(t, srv, http.MethodGet, "/health", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		resp := decode[server.HealthResponse](t, w)
		assert.Equal(t, "healthy", resp.Status)
		assert.Equal(t, "friendrank", resp.Service)
		assert.NotEmpty(t, resp.Timestamp)
		assert.NotEmpty(t, resp.Details["go_version"])
	})

	t.Run("rejects POST", func(t *testing.T) {
		w := do(t, srv, http.MethodPost, "/health", "")
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}

func TestCORS(t *testing.T) {
	srv, _ := newServer(t, false, server.WithAllowedOrigin("https://example.org"))

	w := do(t, srv, http.MethodOptions, "/scores", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://example.org", w.Header().Get("Access-Control-Allow-Origin"))

	w = do(t, srv, http.MethodGet, "/health", "")
	assert.Equal(t, "https://example.org", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestGraph(t *testing.T) {
	srv, _ := newServer(t, false)

	w := do(t, srv, http.MethodGet, "/graph", "")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[server.GraphResponse](t, w)
	assert.Equal(t, []core.NodeID{1, 2, 3, 4, 5}, resp.Nodes)
	require.Len(t, resp.Edges, 4)
	assert.Equal(t, server.EdgeView{Source: 1, Target: 2}, resp.Edges[0])
	assert.Equal(t, [][]core.NodeID{{1, 2, 3, 4, 5}}, resp.Components)
}

func TestScores(t *testing.T) {
	t.Run("conflict before the first run", func(t *testing.T) {
		srv, _ := newServer(t, false)
		w := do(t, srv, http.MethodGet, "/scores", "")
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, decode[server.ErrorResponse](t, w).Error, "not computed")
	})

	t.Run("default order is rank", func(t *testing.T) {
		srv, _ := newServer(t, true)
		w := do(t, srv, http.MethodGet, "/scores", "")
		require.Equal(t, http.StatusOK, w.Code)

		resp := decode[server.ScoresResponse](t, w)
		assert.Equal(t, "rank", resp.Sort)
		require.Len(t, resp.Rows, 5)
		assert.Equal(t, 1, resp.Rows[0].Rank)
		assert.Contains(t, []core.NodeID{2, 4}, resp.Rows[0].Node)
		assert.GreaterOrEqual(t, resp.Rows[0].Score, resp.Rows[4].Score)
	})

	t.Run("sort by node descending", func(t *testing.T) {
		srv, _ := newServer(t, true)
		w := do(t, srv, http.MethodGet, "/scores?sort=node&desc=true", "")
		require.Equal(t, http.StatusOK, w.Code)

		resp := decode[server.ScoresResponse](t, w)
		assert.True(t, resp.Descending)
		assert.Equal(t, core.NodeID(5), resp.Rows[0].Node)
		assert.Equal(t, core.NodeID(1), resp.Rows[4].Node)
	})

	t.Run("bad parameters", func(t *testing.T) {
		srv, _ := newServer(t, true)
		assert.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodGet, "/scores?sort=age", "").Code)
		assert.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodGet, "/scores?desc=maybe", "").Code)
	})
}

func TestRecommendations(t *testing.T) {
	srv, _ := newServer(t, true)

	tests := []struct {
		name   string
		target string
		status int
		want   []core.NodeID
	}{
		{"default k", "/nodes/1/recommendations", http.StatusOK, []core.NodeID{4, 3, 5}},
		{"k=1", "/nodes/1/recommendations?k=1", http.StatusOK, []core.NodeID{4}},
		{"hops=2", "/nodes/1/recommendations?hops=2", http.StatusOK, []core.NodeID{3}},
		{"unknown node", "/nodes/9/recommendations", http.StatusNotFound, nil},
		{"bad id", "/nodes/abc/recommendations", http.StatusBadRequest, nil},
		{"bad k", "/nodes/1/recommendations?k=0", http.StatusBadRequest, nil},
		{"k not a number", "/nodes/1/recommendations?k=x", http.StatusBadRequest, nil},
		{"bad hops", "/nodes/1/recommendations?hops=1", http.StatusBadRequest, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := do(t, srv, http.MethodGet, tc.target, "")
			require.Equal(t, tc.status, w.Code, w.Body.String())
			if tc.want == nil {
				return
			}
			resp := decode[server.RecommendationsResponse](t, w)
			got := make([]core.NodeID, len(resp.Recommendations))
			for i, s := range resp.Recommendations {
				got[i] = s.Node
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSelect(t *testing.T) {
	srv, sess := newServer(t, true)

	w := do(t, srv, http.MethodPost, "/nodes/5/select", "")
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[server.RecommendationsResponse](t, w)
	assert.Equal(t, core.NodeID(5), resp.Node)
	assert.Len(t, resp.Recommendations, 3)

	id, ok := sess.Selected()
	require.True(t, ok)
	assert.Equal(t, core.NodeID(5), id)

	w = do(t, srv, http.MethodPost, "/nodes/42/select", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestConnect(t *testing.T) {
	t.Run("adds the edge and recomputes", func(t *testing.T) {
		srv, sess := newServer(t, false)
		w := do(t, srv, http.MethodPost, "/edges", `{"source":5,"target":6}`)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		resp := decode[server.RunResponse](t, w)
		assert.Equal(t, 6, resp.Nodes)
		assert.Positive(t, resp.Iterations)
		assert.Equal(t, 5, sess.Status().Edges)
	})

	t.Run("rejections", func(t *testing.T) {
		srv, _ := newServer(t, true)
		assert.Equal(t, http.StatusConflict, do(t, srv, http.MethodPost, "/edges", `{"source":1,"target":2}`).Code)
		assert.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodPost, "/edges", `{"source":3,"target":3}`).Code)
		assert.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodPost, "/edges", `{"source":"x"}`).Code)
		assert.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodPost, "/edges", `{"from":1,"to":9}`).Code)
	})
}

func TestDisconnect(t *testing.T) {
	t.Run("removes the edge and recomputes", func(t *testing.T) {
		srv, sess := newServer(t, true)
		w := do(t, srv, http.MethodDelete, "/edges", `{"source":2,"target":1}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, 5, decode[server.RunResponse](t, w).Nodes)
		assert.Equal(t, 3, sess.Status().Edges)

		graph := decode[server.GraphResponse](t, do(t, srv, http.MethodGet, "/graph", ""))
		assert.Equal(t, [][]core.NodeID{{1}, {2, 3, 4, 5}}, graph.Components)
	})

	t.Run("rejections", func(t *testing.T) {
		srv, _ := newServer(t, true)
		assert.Equal(t, http.StatusNotFound, do(t, srv, http.MethodDelete, "/edges", `{"source":1,"target":3}`).Code)
		assert.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodDelete, "/edges", `{"a":1}`).Code)
	})
}

func TestRecompute(t *testing.T) {
	srv, sess := newServer(t, false)

	w := do(t, srv, http.MethodPost, "/recompute", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 5, decode[server.RunResponse](t, w).Nodes)
	assert.True(t, sess.Status().Scored)

	w = do(t, srv, http.MethodGet, "/status", "")
	require.Equal(t, http.StatusOK, w.Code)
	st := decode[session.Status](t, w)
	assert.Equal(t, 5, st.Nodes)
	assert.True(t, st.Scored)
}

func TestRequestLogging(t *testing.T) {
	var buf bytes.Buffer
	srv, _ := newServer(t, false, server.WithLogger(zerolog.New(&buf)))

	do(t, srv, http.MethodGet, "/nodes/1/recommendations", "")

	line := buf.String()
	assert.Contains(t, line, `"path":"/nodes/1/recommendations"`)
	assert.Contains(t, line, `"status":409`)
}
