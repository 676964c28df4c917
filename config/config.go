// SPDX-License-Identifier: MIT

// Package config loads friendrank settings from an HCL file.
//
// A file only needs the values it changes; everything else keeps the value
// from Default:
//
//	engine {
//	  damping        = 0.85
//	  max_iterations = 50
//	  tolerance      = 1e-6
//	  dangling       = "redistribute"
//	}
//	recommend { k = 3 }
//	server    { addr = ":8080" }
//	log       { level = "info"  format = "json" }
//	store     { path = "friendrank.db" }
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/katalvlaran/friendrank/pagerank"
	"github.com/katalvlaran/friendrank/recommend"
)

// Sentinel errors.
var (
	// ErrParse is returned when the file is not valid HCL or does not match
	// the schema.
	ErrParse = errors.New("config: cannot parse")

	// ErrInvalid is wrapped by every field error reported by Validate.
	ErrInvalid = errors.New("config: invalid value")
)

// Config is the complete settings tree.
type Config struct {
	Engine    *Engine    `hcl:"engine,block"`
	Recommend *Recommend `hcl:"recommend,block"`
	Server    *Server    `hcl:"server,block"`
	Log       *Log       `hcl:"log,block"`
	Store     *Store     `hcl:"store,block"`
}

// Engine holds the PageRank parameters.
type Engine struct {
	Damping       float64 `hcl:"damping,optional"`
	MaxIterations int     `hcl:"max_iterations,optional"`
	Tolerance     float64 `hcl:"tolerance,optional"`
	Dangling      string  `hcl:"dangling,optional"`
}

// Recommend holds suggestion defaults.
type Recommend struct {
	K       int `hcl:"k,optional"`
	MaxHops int `hcl:"max_hops,optional"`
}

// Server holds HTTP listener settings.
type Server struct {
	Addr            string `hcl:"addr,optional"`
	ShutdownTimeout string `hcl:"shutdown_timeout,optional"`
}

// Log holds logger settings.
type Log struct {
	Level  string `hcl:"level,optional"`
	Format string `hcl:"format,optional"`
}

// Store holds the snapshot database location. An empty path disables
// persistence.
type Store struct {
	Path string `hcl:"path,optional"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Engine: &Engine{
			Damping:       pagerank.DefaultDampingFactor,
			MaxIterations: pagerank.DefaultMaxIterations,
			Tolerance:     pagerank.DefaultTolerance,
			Dangling:      pagerank.DanglingRedistribute.String(),
		},
		Recommend: &Recommend{K: recommend.DefaultK},
		Server:    &Server{Addr: ":8080", ShutdownTimeout: "5s"},
		Log:       &Log{Level: "info", Format: "json"},
		Store:     &Store{},
	}
}

// Load reads path over Default and validates the result.
func Load(path string) (*Config, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	return Parse(src, path)
}

// Parse decodes HCL source over Default and validates the result. filename
// is only used in diagnostics.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, filename, diags)
	}

	cfg := Default()
	if diags = gohcl.DecodeBody(file.Body, nil, cfg); diags.HasErrors() {
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, filename, diags)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ShutdownDuration parses Server.ShutdownTimeout. Validate guarantees it
// succeeds on a validated Config.
func (c *Config) ShutdownDuration() time.Duration {
	d, err := time.ParseDuration(c.Server.ShutdownTimeout)
	if err != nil {
		return 0
	}

	return d
}

// EngineOptions converts the engine block into pagerank options.
func (c *Config) EngineOptions() []pagerank.Option {
	policy, _ := pagerank.ParseDanglingPolicy(c.Engine.Dangling)

	return []pagerank.Option{
		pagerank.WithMaxIterations(c.Engine.MaxIterations),
		pagerank.WithDampingFactor(c.Engine.Damping),
		pagerank.WithTolerance(c.Engine.Tolerance),
		pagerank.WithDanglingPolicy(policy),
	}
}

// RecommendOptions converts the recommend block into recommend options.
func (c *Config) RecommendOptions() []recommend.Option {
	return []recommend.Option{
		recommend.WithK(c.Recommend.K),
		recommend.WithMaxHops(c.Recommend.MaxHops),
	}
}
