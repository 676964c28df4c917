// SPDX-License-Identifier: MIT

package server

import (
	"context"
	"errors"
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/katalvlaran/friendrank/core"
	"github.com/katalvlaran/friendrank/pagerank"
	"github.com/katalvlaran/friendrank/ranking"
	"github.com/katalvlaran/friendrank/recommend"
	"github.com/katalvlaran/friendrank/session"
)

// maxBodyBytes bounds POST bodies; an edge is a few dozen bytes.
const maxBodyBytes = 1 << 10

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Service   string            `json:"service"`
	Uptime    string            `json:"uptime,omitempty"`
	Details   map[string]string `json:"details,omitempty"`
}

// EdgeView is one friendship on the wire.
type EdgeView struct {
	Source core.NodeID `json:"source"`
	Target core.NodeID `json:"target"`
}

// GraphResponse is returned by GET /graph.
type GraphResponse struct {
	Nodes      []core.NodeID   `json:"nodes"`
	Edges      []EdgeView      `json:"edges"`
	Components [][]core.NodeID `json:"components"`
}

// ScoresResponse is returned by GET /scores.
type ScoresResponse struct {
	Sort       string        `json:"sort"`
	Descending bool          `json:"descending"`
	Rows       []ranking.Row `json:"rows"`
}

// Suggestion is one recommended node.
type Suggestion struct {
	Node  core.NodeID `json:"node"`
	Score float64     `json:"score"`
}

// RecommendationsResponse is returned by the recommendation and select routes.
type RecommendationsResponse struct {
	Node            core.NodeID  `json:"node"`
	Recommendations []Suggestion `json:"recommendations"`
}

// RunResponse describes a completed PageRank run.
type RunResponse struct {
	Iterations int     `json:"iterations"`
	Converged  bool    `json:"converged"`
	Delta      float64 `json:"delta"`
	Nodes      int     `json:"nodes"`
}

// ErrorResponse carries any non-2xx outcome.
type ErrorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Service:   serviceName,
		Uptime:    time.Since(s.started).Round(time.Second).String(),
		Details: map[string]string{
			"go_version": runtime.Version(),
			"num_cpu":    strconv.Itoa(runtime.NumCPU()),
		},
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.sess.Status())
}

func (s *Server) handleGraph(w http.ResponseWriter, _ *http.Request) {
	comps, err := s.sess.Components()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	edges := s.sess.Edges()
	resp := GraphResponse{
		Nodes:      s.sess.Nodes(),
		Edges:      make([]EdgeView, len(edges)),
		Components: comps,
	}
	for i, e := range edges {
		resp.Edges[i] = EdgeView{Source: e.From, Target: e.To}
	}

	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	key, err := ranking.ParseSortKey(q.Get("sort"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	desc, err := parseBool(q.Get("desc"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	s.sess.SetSort(key, desc)
	rows, err := s.sess.Table()
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}

	s.writeJSON(w, http.StatusOK, ScoresResponse{Sort: key.String(), Descending: desc, Rows: rows})
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	id, err := parseNodeID(r.PathValue("id"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	opts, err := recommendOptions(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	s.respondRecommendations(w, id, opts...)
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	id, err := parseNodeID(r.PathValue("id"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if err = s.sess.Select(id); err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}

	s.respondRecommendations(w, id)
}

func (s *Server) respondRecommendations(w http.ResponseWriter, id core.NodeID, opts ...recommend.Option) {
	recs, err := s.sess.Recommendations(id, opts...)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}

	resp := RecommendationsResponse{Node: id, Recommendations: make([]Suggestion, len(recs))}
	for i, rec := range recs {
		resp.Recommendations[i] = Suggestion{Node: rec.Node, Score: rec.Score}
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleConnect(w http.ResponseWriter, r *http.Request) {
	edge, ok := s.decodeEdge(w, r)
	if !ok {
		return
	}

	// The edit is committed before the recompute starts, so a client that
	// disconnects must not cancel it.
	res, err := s.sess.Connect(context.WithoutCancel(r.Context()), edge.Source, edge.Target)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}

	s.writeJSON(w, http.StatusCreated, runResponse(res))
}

func (s *Server) handleDisconnect(w http.ResponseWriter, r *http.Request) {
	edge, ok := s.decodeEdge(w, r)
	if !ok {
		return
	}

	res, err := s.sess.Disconnect(context.WithoutCancel(r.Context()), edge.Source, edge.Target)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}

	s.writeJSON(w, http.StatusOK, runResponse(res))
}

// decodeEdge reads a strict EdgeView body, answering 400 on failure.
func (s *Server) decodeEdge(w http.ResponseWriter, r *http.Request) (EdgeView, bool) {
	var edge EdgeView
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&edge); err != nil {
		s.writeError(w, http.StatusBadRequest, errors.New("invalid edge body: "+err.Error()))
		return EdgeView{}, false
	}

	return edge, true
}

func (s *Server) handleRecompute(w http.ResponseWriter, r *http.Request) {
	res, err := s.sess.Recompute(r.Context())
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}

	s.writeJSON(w, http.StatusOK, runResponse(res))
}

func runResponse(res *pagerank.Result) RunResponse {
	return RunResponse{
		Iterations: res.Iterations,
		Converged:  res.Converged,
		Delta:      res.Delta,
		Nodes:      len(res.Scores),
	}
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrUnknownNode), errors.Is(err, core.ErrEdgeNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrNoScores), errors.Is(err, core.ErrMultiEdgeNotAllowed):
		return http.StatusConflict
	case errors.Is(err, core.ErrLoopNotAllowed),
		errors.Is(err, recommend.ErrBadK),
		errors.Is(err, recommend.ErrBadHops),
		errors.Is(err, pagerank.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrIncomplete):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func recommendOptions(r *http.Request) ([]recommend.Option, error) {
	q := r.URL.Query()
	var opts []recommend.Option
	if v := q.Get("k"); v != "" {
		k, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.New("k: " + err.Error())
		}
		opts = append(opts, recommend.WithK(k))
	}
	if v := q.Get("hops"); v != "" {
		h, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.New("hops: " + err.Error())
		}
		opts = append(opts, recommend.WithMaxHops(h))
	}

	return opts, nil
}

func parseNodeID(s string) (core.NodeID, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errors.New("node id: " + err.Error())
	}

	return core.NodeID(v), nil
}

func parseBool(s string) (bool, error) {
	if s == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, errors.New("desc: " + err.Error())
	}

	return b, nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		s.log.Error().Err(err).Msg("encode response")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err = w.Write(append(body, '\n')); err != nil {
		s.log.Debug().Err(err).Msg("write response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.log.Error().Err(err).Msg("request failed")
	}
	s.writeJSON(w, status, ErrorResponse{Error: err.Error()})
}
