// SPDX-License-Identifier: MIT

package config

import (
	"math"
	"time"

	multierror "github.com/hashicorp/go-multierror"
	"golang.org/x/xerrors"

	"github.com/katalvlaran/friendrank/internal/logging"
	"github.com/katalvlaran/friendrank/pagerank"
)

// Validate checks every field and reports all violations at once. Each
// violation wraps ErrInvalid. Missing blocks are restored from Default.
func (c *Config) Validate() error {
	c.fillMissing()

	var err error
	e := c.Engine
	if !(e.Damping > 0 && e.Damping < 1) {
		err = multierror.Append(err, xerrors.Errorf("engine.damping must be in the range (0, 1), got %g: %w", e.Damping, ErrInvalid))
	}
	if e.MaxIterations <= 0 {
		err = multierror.Append(err, xerrors.Errorf("engine.max_iterations must be positive, got %d: %w", e.MaxIterations, ErrInvalid))
	}
	if math.IsNaN(e.Tolerance) || math.IsInf(e.Tolerance, 0) || e.Tolerance < 0 {
		err = multierror.Append(err, xerrors.Errorf("engine.tolerance must be finite and non-negative, got %g: %w", e.Tolerance, ErrInvalid))
	}
	if _, perr := pagerank.ParseDanglingPolicy(e.Dangling); perr != nil {
		err = multierror.Append(err, xerrors.Errorf("engine.dangling must be \"redistribute\" or \"drop\", got %q: %w", e.Dangling, ErrInvalid))
	}

	if c.Recommend.K <= 0 {
		err = multierror.Append(err, xerrors.Errorf("recommend.k must be positive, got %d: %w", c.Recommend.K, ErrInvalid))
	}
	if c.Recommend.MaxHops < 0 || c.Recommend.MaxHops == 1 {
		err = multierror.Append(err, xerrors.Errorf("recommend.max_hops must be 0 or at least 2, got %d: %w", c.Recommend.MaxHops, ErrInvalid))
	}

	if c.Server.Addr == "" {
		err = multierror.Append(err, xerrors.Errorf("server.addr must not be empty: %w", ErrInvalid))
	}
	if d, perr := time.ParseDuration(c.Server.ShutdownTimeout); perr != nil || d < 0 {
		err = multierror.Append(err, xerrors.Errorf("server.shutdown_timeout must be a non-negative duration, got %q: %w", c.Server.ShutdownTimeout, ErrInvalid))
	}

	if !logging.ValidLevel(c.Log.Level) {
		err = multierror.Append(err, xerrors.Errorf("log.level must be one of %v, got %q: %w", logging.Levels, c.Log.Level, ErrInvalid))
	}
	if !logging.ValidFormat(c.Log.Format) {
		err = multierror.Append(err, xerrors.Errorf("log.format must be one of %v, got %q: %w", logging.Formats, c.Log.Format, ErrInvalid))
	}

	return err
}

// fillMissing replaces nil blocks with their defaults.
func (c *Config) fillMissing() {
	d := Default()
	if c.Engine == nil {
		c.Engine = d.Engine
	}
	if c.Recommend == nil {
		c.Recommend = d.Recommend
	}
	if c.Server == nil {
		c.Server = d.Server
	}
	if c.Log == nil {
		c.Log = d.Log
	}
	if c.Store == nil {
		c.Store = d.Store
	}
}
