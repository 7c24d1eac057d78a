// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package engine

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/multierr"
)

// ErrInvalidConfig wraps every configuration problem found by New.
var ErrInvalidConfig = errors.New("invalid config")

const (
	DefaultAlpha         = 0.5
	DefaultMinIterations = 1
	DefaultCheckFreq     = 1

	// defaultEpsilonScale is divided by the number of peers when no
	// epsilon is configured.
	defaultEpsilonScale = 1e-6
)

// Config configures a Runner.
type Config struct {
	Alpha         float64 // Weight of pretrust in every iteration, in [0, 1]
	Epsilon       float64 // Convergence threshold (0 = 1e-6 / number of peers)
	MaxIterations int     // Iteration budget (0 = unbounded)
	MinIterations int     // First checked iteration and flat tail length (0 = 1)
	CheckFreq     int     // Iterations between convergence checks (0 = 1)
	NumLeaders    int     // Top peers compared by the flat tail check (0 = all)
	Workers       int     // Goroutines per matrix-vector product (0 = GOMAXPROCS)
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Alpha:         DefaultAlpha,
		MinIterations: DefaultMinIterations,
		CheckFreq:     DefaultCheckFreq,
	}
}

// validateConfig reports every out of range field at once.
func validateConfig(cfg Config) error {
	var err error
	if math.IsNaN(cfg.Alpha) || cfg.Alpha < 0 || cfg.Alpha > 1 {
		err = multierr.Append(err, fmt.Errorf("alpha %v is outside [0, 1]", cfg.Alpha))
	}
	if math.IsNaN(cfg.Epsilon) || cfg.Epsilon < 0 {
		err = multierr.Append(err, fmt.Errorf("epsilon %v is negative", cfg.Epsilon))
	}
	if cfg.MaxIterations < 0 {
		err = multierr.Append(err, fmt.Errorf("max iterations %d is negative", cfg.MaxIterations))
	}
	if cfg.MinIterations < 0 {
		err = multierr.Append(err, fmt.Errorf("min iterations %d is negative", cfg.MinIterations))
	}
	if cfg.MaxIterations > 0 && max(cfg.MinIterations, DefaultMinIterations) >= cfg.MaxIterations {
		err = multierr.Append(err, fmt.Errorf("min iterations %d leaves no room below max iterations %d",
			cfg.MinIterations, cfg.MaxIterations))
	}
	if cfg.CheckFreq < 0 {
		err = multierr.Append(err, fmt.Errorf("check frequency %d is negative", cfg.CheckFreq))
	}
	if cfg.NumLeaders < 0 {
		err = multierr.Append(err, fmt.Errorf("number of leaders %d is negative", cfg.NumLeaders))
	}
	if cfg.Workers < 0 {
		err = multierr.Append(err, fmt.Errorf("workers %d is negative", cfg.Workers))
	}
	return err
}

// applyDefaults fills in zero-value fields that have a fixed default.
// Epsilon depends on the input size and is resolved in Run.
func applyDefaults(cfg *Config) {
	if cfg.MinIterations == 0 {
		cfg.MinIterations = DefaultMinIterations
	}
	if cfg.CheckFreq == 0 {
		cfg.CheckFreq = DefaultCheckFreq
	}
}
