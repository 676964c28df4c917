// SPDX-License-Identifier: MIT

// Package server exposes a session.Session over a small JSON HTTP API:
//
//	GET  /health                       liveness and uptime
//	GET  /status                       session summary
//	GET  /graph                        nodes and friendships
//	GET  /scores?sort=&desc=           ranked score table
//	GET  /nodes/{id}/recommendations   top-k suggestions (?k=&hops=)
//	POST /nodes/{id}/select            focus a node, returns its suggestions
//	POST /edges                        {"source":1,"target":2}, then recompute
//	DELETE /edges                      same body, removes it, then recompute
//	POST /recompute                    run PageRank now
package server

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/friendrank/session"
)

const serviceName = "friendrank"

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and error logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Server) { s.log = l }
}

// WithAllowedOrigin sets the CORS Access-Control-Allow-Origin value ("*" by default).
func WithAllowedOrigin(origin string) Option {
	return func(s *Server) {
		if origin != "" {
			s.origin = origin
		}
	}
}

// Server is an http.Handler.
type Server struct {
	sess    *session.Session
	log     zerolog.Logger
	origin  string
	started time.Time
	handler http.Handler
}

// New wires the routes for sess.
func New(sess *session.Session, opts ...Option) *Server {
	s := &Server{
		sess:    sess,
		log:     zerolog.Nop(),
		origin:  "*",
		started: time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /status", s.handleStatus)
	mux.HandleFunc("GET /graph", s.handleGraph)
	mux.HandleFunc("GET /scores", s.handleScores)
	mux.HandleFunc("GET /nodes/{id}/recommendations", s.handleRecommendations)
	mux.HandleFunc("POST /nodes/{id}/select", s.handleSelect)
	mux.HandleFunc("POST /edges", s.handleConnect)
	mux.HandleFunc("DELETE /edges", s.handleDisconnect)
	mux.HandleFunc("POST /recompute", s.handleRecompute)

	s.handler = s.logRequests(s.cors(mux))

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}
