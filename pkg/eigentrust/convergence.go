// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package eigentrust

import (
	"sort"

	"github.com/petar-djukic/go-eigentrust/pkg/sparse"
)

// ConvergenceChecker tracks successive trust vector iterates and reports
// when the norm of their difference drops to epsilon or below.
type ConvergenceChecker struct {
	iter  int
	t     *sparse.Vector
	delta float64
	e     float64
}

// NewConvergenceChecker returns a checker seeded with t0. The initial
// delta is 2*e so the checker never reports convergence before the first
// update.
func NewConvergenceChecker(t0 *sparse.Vector, e float64) *ConvergenceChecker {
	return &ConvergenceChecker{
		t:     t0.Clone(),
		delta: 2 * e,
		e:     e,
	}
}

// Update records the next iterate.
func (c *ConvergenceChecker) Update(t *sparse.Vector) error {
	var td sparse.Vector
	if err := td.SubVec(t, c.t); err != nil {
		return err
	}
	c.delta = td.Norm2()
	c.t.Assign(t)
	c.iter++
	return nil
}

// Converged reports whether the last delta is at most epsilon.
func (c *ConvergenceChecker) Converged() bool {
	return c.delta <= c.e
}

// Delta returns the norm of the last difference between iterates.
func (c *ConvergenceChecker) Delta() float64 {
	return c.delta
}

// Iterations returns the number of updates seen so far.
func (c *ConvergenceChecker) Iterations() int {
	return c.iter
}

// FlatTailStats describes the most recent run of identical rankings.
type FlatTailStats struct {
	// Length is the number of consecutive updates that repeated Ranking.
	Length int
	// Threshold is one more than the longest run broken so far.
	Threshold int
	// DeltaNorm is the delta reported when Ranking first appeared.
	DeltaNorm float64
	// Ranking lists peer indices by descending trust.
	Ranking []int
}

// FlatTailChecker detects a flat tail: a run of iterations during which
// the ranking of peers by trust does not change.
type FlatTailChecker struct {
	length     int
	numLeaders int
	stats      FlatTailStats
}

// NewFlatTailChecker returns a checker that is reached after length
// consecutive identical rankings. A length of 0 is always reached. When
// numLeaders is positive only the top numLeaders positions are compared.
func NewFlatTailChecker(length, numLeaders int) *FlatTailChecker {
	return &FlatTailChecker{
		length:     length,
		numLeaders: numLeaders,
		stats: FlatTailStats{
			Threshold: 1,
			DeltaNorm: 1,
		},
	}
}

// Update records the ranking induced by t, with d the delta norm reported
// by the convergence checker for the same iterate.
func (f *FlatTailChecker) Update(t *sparse.Vector, d float64) {
	ranking := Ranking(t)
	if f.numLeaders > 0 && f.numLeaders < len(ranking) {
		ranking = ranking[:f.numLeaders]
	}

	if equalRanking(ranking, f.stats.Ranking) {
		f.stats.Length++
		return
	}
	if f.stats.Length > 0 && f.stats.Threshold <= f.stats.Length {
		f.stats.Threshold = f.stats.Length + 1
	}
	f.stats.Length = 0
	f.stats.DeltaNorm = d
	f.stats.Ranking = ranking
}

// Reached reports whether the current run is at least the required
// length.
func (f *FlatTailChecker) Reached() bool {
	return f.stats.Length >= f.length
}

// Stats returns a snapshot of the current flat tail statistics.
func (f *FlatTailChecker) Stats() FlatTailStats {
	s := f.stats
	s.Ranking = append([]int(nil), f.stats.Ranking...)
	return s
}

// Ranking returns the indices of t's entries ordered by descending value.
// Equal values are ordered by ascending index, so the ranking of a given
// vector is always the same.
func Ranking(t *sparse.Vector) []int {
	entries := make([]sparse.Entry, len(t.Entries))
	copy(entries, t.Entries)
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Value != entries[j].Value {
			return entries[i].Value > entries[j].Value
		}
		return entries[i].Index < entries[j].Index
	})

	ranking := make([]int, len(entries))
	for i, e := range entries {
		ranking[i] = e.Index
	}
	return ranking
}

func equalRanking(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
