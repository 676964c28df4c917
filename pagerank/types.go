// SPDX-License-Identifier: MIT

package pagerank

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// Default parameters.
const (
	DefaultMaxIterations = 50
	DefaultDampingFactor = 0.85
	DefaultTolerance     = 1e-6
)

// Sentinel errors. Every validation error wraps ErrInvalidInput, so callers
// can branch on the class with errors.Is(err, ErrInvalidInput) or on the
// specific cause.
var (
	// ErrInvalidInput is the class of all parameter and structure errors.
	ErrInvalidInput = errors.New("pagerank: invalid input")

	// ErrBadIterations is returned when MaxIterations <= 0.
	ErrBadIterations = fmt.Errorf("%w: max iterations must be positive", ErrInvalidInput)

	// ErrBadDamping is returned when the damping factor is outside (0,1).
	ErrBadDamping = fmt.Errorf("%w: damping factor must be in (0,1)", ErrInvalidInput)

	// ErrBadTolerance is returned when the tolerance is negative, NaN or infinite.
	ErrBadTolerance = fmt.Errorf("%w: tolerance must be finite and non-negative", ErrInvalidInput)

	// ErrUnknownNeighbor is returned when a neighbor identifier is not a key of the adjacency.
	ErrUnknownNeighbor = fmt.Errorf("%w: edge references an unknown node", ErrInvalidInput)

	// ErrBadDanglingPolicy is returned for an unrecognized DanglingPolicy value.
	ErrBadDanglingPolicy = fmt.Errorf("%w: unknown dangling policy", ErrInvalidInput)
)

// DanglingPolicy selects how the score of degree-0 nodes is treated.
type DanglingPolicy int

const (
	// DanglingRedistribute spreads a dangling node's whole score uniformly over
	// all nodes, inside the damping term. Scores keep summing to 1.
	DanglingRedistribute DanglingPolicy = iota

	// DanglingDrop lets dangling mass leave the system each step. Scores no
	// longer sum to 1 when dangling nodes exist.
	DanglingDrop
)

// String implements fmt.Stringer.
func (p DanglingPolicy) String() string {
	switch p {
	case DanglingRedistribute:
		return "redistribute"
	case DanglingDrop:
		return "drop"
	default:
		return fmt.Sprintf("DanglingPolicy(%d)", int(p))
	}
}

// ParseDanglingPolicy maps "redistribute" / "drop" to a policy.
func ParseDanglingPolicy(s string) (DanglingPolicy, error) {
	switch s {
	case "", "redistribute":
		return DanglingRedistribute, nil
	case "drop":
		return DanglingDrop, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrBadDanglingPolicy, s)
	}
}

// Option configures PageRank behavior via functional arguments.
type Option func(*Options)

// Options holds parameters and callbacks to customize a PageRank run.
type Options struct {
	// Ctx allows cancellation, checked once per iteration.
	Ctx context.Context

	// MaxIterations bounds the number of iterations (> 0).
	MaxIterations int

	// DampingFactor is the probability of following an edge, in (0,1).
	DampingFactor float64

	// Tolerance stops iteration once Σ|new−old| < Tolerance. Zero disables early stop.
	Tolerance float64

	// Dangling selects the treatment of degree-0 nodes.
	Dangling DanglingPolicy

	// OnIteration, if set, is called after each completed iteration with the
	// 1-based iteration number and its L1 delta.
	OnIteration func(iter int, delta float64)
}

// DefaultOptions returns Options with:
//   - Context.Background()
//   - MaxIterations 50, DampingFactor 0.85, Tolerance 1e-6
//   - DanglingRedistribute
//   - no iteration hook
func DefaultOptions() Options {
	return Options{
		Ctx:           context.Background(),
		MaxIterations: DefaultMaxIterations,
		DampingFactor: DefaultDampingFactor,
		Tolerance:     DefaultTolerance,
		Dangling:      DanglingRedistribute,
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithMaxIterations sets the iteration budget. Non-positive values are
// rejected by Run with ErrBadIterations.
func WithMaxIterations(n int) Option {
	return func(o *Options) { o.MaxIterations = n }
}

// WithDampingFactor sets the damping factor. Values outside (0,1) are
// rejected by Run with ErrBadDamping.
func WithDampingFactor(d float64) Option {
	return func(o *Options) { o.DampingFactor = d }
}

// WithTolerance sets the L1 convergence tolerance.
func WithTolerance(eps float64) Option {
	return func(o *Options) { o.Tolerance = eps }
}

// WithDanglingPolicy selects the dangling-node treatment.
func WithDanglingPolicy(p DanglingPolicy) Option {
	return func(o *Options) { o.Dangling = p }
}

// WithOnIteration registers a per-iteration observer.
func WithOnIteration(fn func(iter int, delta float64)) Option {
	return func(o *Options) { o.OnIteration = fn }
}

// Validate checks every numeric parameter and returns the first violation.
func (o Options) Validate() error {
	if o.MaxIterations <= 0 {
		return fmt.Errorf("%w (got %d)", ErrBadIterations, o.MaxIterations)
	}
	// The negated form also rejects NaN.
	if !(o.DampingFactor > 0 && o.DampingFactor < 1) {
		return fmt.Errorf("%w (got %g)", ErrBadDamping, o.DampingFactor)
	}
	if math.IsNaN(o.Tolerance) || math.IsInf(o.Tolerance, 0) || o.Tolerance < 0 {
		return fmt.Errorf("%w (got %g)", ErrBadTolerance, o.Tolerance)
	}
	if o.Dangling != DanglingRedistribute && o.Dangling != DanglingDrop {
		return fmt.Errorf("%w (got %d)", ErrBadDanglingPolicy, int(o.Dangling))
	}

	return nil
}

// Result holds the outcome of a PageRank run.
type Result struct {
	// Scores maps every node to its score.
	Scores ScoreMap

	// Iterations is the number of completed iterations.
	Iterations int

	// Delta is Σ|new−old| of the last completed iteration (0 if none ran).
	Delta float64

	// Converged reports that Delta dropped below the tolerance.
	Converged bool

	// Incomplete reports that the context was cancelled before the run
	// finished; Scores then hold the last completed iteration.
	Incomplete bool
}
