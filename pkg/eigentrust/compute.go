// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package eigentrust computes global trust scores from local trust with
// the EigenTrust power iteration, and provides the canonicalization and
// distrust steps that prepare its inputs and correct its output.
package eigentrust

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/petar-djukic/go-eigentrust/pkg/sparse"
)

// Observer receives progress of a computation. Implementations must be
// cheap; they run on the solver goroutine.
type Observer interface {
	// IterationDone is called after every iteration of the power method.
	// delta is the one measured at the most recent convergence check, so
	// it repeats between checks and is 2*epsilon before the first one.
	IterationDone(iteration int, delta float64, elapsed time.Duration)
	// ComputeDone is called once when Compute returns, including when it
	// rejects its inputs.
	ComputeDone(stats Stats)
}

// Stats summarizes a finished computation.
type Stats struct {
	Dim        int           `json:"dim" yaml:"dim"`
	NNZ        int           `json:"nnz" yaml:"nnz"`
	Iterations int           `json:"iterations" yaml:"iterations"`
	Alpha      float64       `json:"alpha" yaml:"alpha"`
	Epsilon    float64       `json:"epsilon" yaml:"epsilon"`
	Delta      float64       `json:"delta" yaml:"delta"`
	Elapsed    time.Duration `json:"elapsed" yaml:"elapsed"`
	Converged  bool          `json:"converged" yaml:"converged"`
}

type options struct {
	maxIterations int
	minIterations int
	checkFreq     int
	numLeaders    int
	workers       int
	logger        *zap.Logger
	observer      Observer
}

// Option configures Compute.
type Option func(*options)

// WithMaxIterations bounds the number of iterations. Zero means no bound.
func WithMaxIterations(n int) Option {
	return func(o *options) { o.maxIterations = n }
}

// WithMinIterations sets the first iteration at which convergence is
// checked; no check happens before iteration 1. It is also the number of identical consecutive rankings the
// flat tail check requires. Defaults to 1.
func WithMinIterations(n int) Option {
	return func(o *options) { o.minIterations = n }
}

// WithCheckFreq sets how often, in iterations, convergence is checked
// once the minimum has been reached. Defaults to 1.
func WithCheckFreq(n int) Option {
	return func(o *options) { o.checkFreq = n }
}

// WithNumLeaders limits the flat tail comparison to the top n peers.
// Defaults to all peers.
func WithNumLeaders(n int) Option {
	return func(o *options) { o.numLeaders = n }
}

// WithWorkers sets the number of goroutines used by matrix-vector
// products. Zero uses GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithLogger sets the logger. Compute logs nothing by default.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithObserver registers an observer for iteration progress.
func WithObserver(obs Observer) Option {
	return func(o *options) { o.observer = obs }
}

type nopObserver struct{}

func (nopObserver) IterationDone(int, float64, time.Duration) {}
func (nopObserver) ComputeDone(Stats)                         {}

// Compute runs EigenTrust over the local trust matrix c with pretrust p,
// damping factor a and convergence threshold e, and returns the global
// trust vector.
//
// c must be canonical: every row sums to one (see CanonicalizeLocalTrust).
// Each iteration computes
//
//	t' = (1-a) · cᵀ · t + a · p
//
// starting from t = p, until the norm of t' - t is at most e and the
// ranking of peers by trust has stopped changing. Compute fails with
// ErrNonConvergence if that does not happen within the iteration budget.
func Compute(ctx context.Context, c *sparse.CSRMatrix, p *sparse.Vector, a, e float64, opts ...Option) (*sparse.Vector, error) {
	o := options{minIterations: 1, checkFreq: 1}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.observer == nil {
		o.observer = nopObserver{}
	}

	start := time.Now()
	stats := Stats{Dim: c.MajorDim, Alpha: a, Epsilon: e}
	var conv *ConvergenceChecker
	defer func() {
		if conv != nil {
			stats.Delta = conv.Delta()
		}
		stats.Elapsed = time.Since(start)
		o.observer.ComputeDone(stats)
	}()

	if math.IsNaN(a) {
		return nil, fmt.Errorf("%w: alpha cannot be NaN", ErrInvalidParameter)
	}
	n := c.MajorDim
	if n == 0 {
		return nil, ErrEmptyInput
	}
	if _, err := c.Dim(); err != nil {
		return nil, err
	}
	if p.Dim != n {
		return nil, fmt.Errorf("%w: pretrust has %d peers, local trust has %d",
			ErrDimensionMismatch, p.Dim, n)
	}
	if o.checkFreq < 1 {
		o.checkFreq = 1
	}
	if o.minIterations < 0 {
		o.minIterations = 0
	}
	numLeaders := o.numLeaders
	if numLeaders <= 0 {
		numLeaders = n
	}
	maxIters := o.maxIterations
	if maxIters <= 0 {
		maxIters = math.MaxInt
	}

	// The first check compares against the seed, so it must follow at
	// least one propagation.
	checkFrom := max(o.minIterations, 1)

	ct := c.Transpose()
	stats.NNZ = ct.NNZ()

	var ap sparse.Vector
	if err := ap.ScaleVec(a, p); err != nil {
		return nil, err
	}

	t1 := p.Clone()
	conv = NewConvergenceChecker(t1, e)
	flatTail := NewFlatTailChecker(o.minIterations, numLeaders)

	o.logger.Info("compute started",
		zap.Int("dim", n),
		zap.Int("num_leaders", numLeaders),
		zap.Int("nnz", t1.NNZ()),
		zap.Float64("alpha", a),
		zap.Float64("epsilon", e),
		zap.Int("check_freq", o.checkFreq))

	var product, damped sparse.Vector
	iter := 0
	for ; iter < maxIters; iter++ {
		if err := ctx.Err(); err != nil {
			stats.Iterations = iter
			return nil, fmt.Errorf("compute interrupted at iteration %d: %w", iter, err)
		}
		iterStart := time.Now()

		if iter >= checkFrom && (iter-checkFrom)%o.checkFreq == 0 {
			if err := conv.Update(t1); err != nil {
				stats.Iterations = iter
				return nil, fmt.Errorf("updating convergence checker: %w", err)
			}
			flatTail.Update(t1, conv.Delta())
			if conv.Converged() && flatTail.Reached() {
				break
			}
		}

		if err := product.MulVecWorkers(ct, t1, o.workers); err != nil {
			stats.Iterations = iter
			return nil, fmt.Errorf("iteration %d: %w", iter, err)
		}
		if err := damped.ScaleVec(1-a, &product); err != nil {
			stats.Iterations = iter
			return nil, fmt.Errorf("iteration %d: %w", iter, err)
		}
		if err := t1.AddVec(&damped, &ap); err != nil {
			stats.Iterations = iter
			return nil, fmt.Errorf("iteration %d: %w", iter, err)
		}

		elapsed := time.Since(iterStart)
		o.observer.IterationDone(iter, conv.Delta(), elapsed)
		o.logger.Debug("iteration finished",
			zap.Int("iteration", iter),
			zap.Float64("delta", conv.Delta()),
			zap.Duration("elapsed", elapsed))
	}

	stats.Iterations = iter
	if iter >= maxIters {
		return nil, fmt.Errorf("%w: %d iterations, delta %g > epsilon %g",
			ErrNonConvergence, iter, conv.Delta(), e)
	}
	stats.Converged = true

	o.logger.Info("compute finished",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("dim", n),
		zap.Int("nnz", ct.NNZ()),
		zap.Float64("alpha", a),
		zap.Float64("epsilon", e),
		zap.Int("iterations", iter))

	return t1, nil
}
