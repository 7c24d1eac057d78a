// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package sparse

import (
	"fmt"
	"math"
	"runtime"

	"github.com/sourcegraph/conc/pool"
)

// minRowsPerWorker keeps tiny products on the calling goroutine; below it
// scheduling costs more than the dot products.
const minRowsPerWorker = 256

// MulVec sets the receiver to m · v1 using up to runtime.GOMAXPROCS(0)
// workers.
func (v *Vector) MulVec(m *CSRMatrix, v1 *Vector) error {
	return v.MulVecWorkers(m, v1, 0)
}

// MulVecWorkers sets the receiver to m · v1, splitting rows into
// contiguous chunks computed by a bounded worker pool. If workers <= 0 it
// defaults to runtime.GOMAXPROCS(0).
//
// Each worker fills its own slice; the slices are concatenated and sorted
// by index, so the output order does not depend on which worker finishes
// first. A row whose product is NaN fails the whole multiply.
func (v *Vector) MulVecWorkers(m *CSRMatrix, v1 *Vector, workers int) error {
	dim, err := m.Dim()
	if err != nil {
		return err
	}
	if dim != v1.Dim {
		return fmt.Errorf("%w: matrix is %dx%d, vector has %d",
			ErrDimensionMismatch, dim, dim, v1.Dim)
	}

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if limit := dim / minRowsPerWorker; workers > limit {
		workers = max(limit, 1)
	}

	var entries []Entry
	if workers == 1 {
		entries, err = mulRows(m, v1, 0, dim)
		if err != nil {
			return err
		}
	} else {
		entries, err = mulRowsParallel(m, v1, dim, workers)
		if err != nil {
			return err
		}
	}

	v.Dim = dim
	v.Entries = entries
	return nil
}

func mulRowsParallel(m *CSRMatrix, v1 *Vector, dim, workers int) ([]Entry, error) {
	chunk := (dim + workers - 1) / workers

	p := pool.NewWithResults[[]Entry]().WithErrors().WithMaxGoroutines(workers)
	for lo := 0; lo < dim; lo += chunk {
		lo := lo
		hi := min(lo+chunk, dim)
		p.Go(func() ([]Entry, error) {
			return mulRows(m, v1, lo, hi)
		})
	}
	parts, err := p.Wait()
	if err != nil {
		return nil, err
	}

	total := 0
	for _, part := range parts {
		total += len(part)
	}
	entries := make([]Entry, 0, total)
	for _, part := range parts {
		entries = append(entries, part...)
	}
	sortEntriesByIndex(entries)
	return entries, nil
}

// mulRows computes rows [lo, hi) of m · v1, omitting zero products.
func mulRows(m *CSRMatrix, v1 *Vector, lo, hi int) ([]Entry, error) {
	var out []Entry
	for row := lo; row < hi; row++ {
		product := dotEntries(m.Entries[row], v1.Entries)
		if math.IsNaN(product) {
			return nil, fmt.Errorf("%w: product in row %d", ErrNaN, row)
		}
		if product != 0 {
			out = append(out, Entry{Index: row, Value: product})
		}
	}
	return out, nil
}
