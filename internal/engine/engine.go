// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package engine runs the EigenTrust pipeline end to end: it reads local
// trust and pretrust CSV, prepares the matrices, computes global trust,
// applies distrust and returns named, ranked scores.
package engine

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/petar-djukic/go-eigentrust/internal/peers"
	"github.com/petar-djukic/go-eigentrust/internal/trustcsv"
	"github.com/petar-djukic/go-eigentrust/pkg/eigentrust"
	"github.com/petar-djukic/go-eigentrust/pkg/sparse"
	"github.com/petar-djukic/go-eigentrust/pkg/types"
)

// Result holds the outcome of a Runner.Run invocation.
type Result struct {
	Scores []types.PeerScore `json:"scores" yaml:"scores"`
	Stats  eigentrust.Stats  `json:"stats" yaml:"stats"`
}

// Deps holds injected dependencies for the runner.
type Deps struct {
	Logger   *zap.Logger         // nil logs nothing
	Observer eigentrust.Observer // Optional progress sink, e.g. metrics
}

// Runner executes the pipeline with a fixed configuration.
type Runner struct {
	cfg  Config
	deps Deps
}

// New validates cfg and returns a ready to use Runner.
func New(cfg Config, deps Deps) (*Runner, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	applyDefaults(&cfg)
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Runner{cfg: cfg, deps: deps}, nil
}

// statsObserver keeps the final stats and forwards everything to next.
type statsObserver struct {
	next  eigentrust.Observer
	stats eigentrust.Stats
}

func (o *statsObserver) IterationDone(iteration int, delta float64, elapsed time.Duration) {
	if o.next != nil {
		o.next.IterationDone(iteration, delta, elapsed)
	}
}

func (o *statsObserver) ComputeDone(stats eigentrust.Stats) {
	o.stats = stats
	if o.next != nil {
		o.next.ComputeDone(stats)
	}
}

// Run reads local trust and, when preTrust is not nil, pretrust, and
// returns the discounted global trust of every peer with a nonzero score.
// Without pretrust every peer is trusted equally up front.
func (r *Runner) Run(ctx context.Context, localTrust, preTrust io.Reader) (*Result, error) {
	log := r.deps.Logger

	// Step 1: Read inputs.
	pm := peers.New()
	c, err := trustcsv.ReadLocalTrust(localTrust, pm)
	if err != nil {
		return nil, err
	}
	p := sparse.NewVector(pm.Len(), nil)
	if preTrust != nil {
		if p, err = trustcsv.ReadTrustVector(preTrust, pm, log); err != nil {
			return nil, err
		}
	}

	// Step 2: Reconcile dimensions.
	n, err := c.Dim()
	if err != nil {
		return nil, err
	}
	if n < p.Dim {
		n = p.Dim
		c.SetDim(n, n)
	} else {
		p.SetDim(n)
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: no peers in local trust", eigentrust.ErrEmptyInput)
	}

	// Step 3: Canonicalize and split off distrust.
	if err := eigentrust.CanonicalizeTrustVector(p); err != nil {
		return nil, fmt.Errorf("canonicalizing pretrust: %w", err)
	}
	discounts := eigentrust.ExtractDistrust(c)
	if err := eigentrust.CanonicalizeLocalTrust(c, p); err != nil {
		return nil, fmt.Errorf("canonicalizing local trust: %w", err)
	}
	if err := eigentrust.CanonicalizeLocalTrust(discounts, nil); err != nil {
		return nil, fmt.Errorf("canonicalizing distrust: %w", err)
	}

	epsilon := r.cfg.Epsilon
	if epsilon == 0 {
		epsilon = defaultEpsilonScale / float64(n)
	}
	log.Info("inputs prepared",
		zap.Int("peers", n),
		zap.Int("trust_nnz", c.NNZ()),
		zap.Int("distrust_nnz", discounts.NNZ()),
		zap.Int("pretrust_nnz", p.NNZ()))

	// Step 4: Compute and discount.
	obs := &statsObserver{next: r.deps.Observer}
	t, err := eigentrust.Compute(ctx, c, p, r.cfg.Alpha, epsilon,
		eigentrust.WithMaxIterations(r.cfg.MaxIterations),
		eigentrust.WithMinIterations(r.cfg.MinIterations),
		eigentrust.WithCheckFreq(r.cfg.CheckFreq),
		eigentrust.WithNumLeaders(r.cfg.NumLeaders),
		eigentrust.WithWorkers(r.cfg.Workers),
		eigentrust.WithLogger(log),
		eigentrust.WithObserver(obs))
	if err != nil {
		return nil, err
	}
	if err := eigentrust.DiscountTrustVector(t, discounts); err != nil {
		return nil, fmt.Errorf("applying distrust: %w", err)
	}

	// Step 5: Name and rank.
	scores := make([]types.PeerScore, len(t.Entries))
	for i, e := range t.Entries {
		scores[i] = types.PeerScore{Peer: pm.Name(e.Index), Index: e.Index, Score: e.Value}
	}
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].Index < scores[j].Index
	})

	return &Result{Scores: scores, Stats: obs.stats}, nil
}
