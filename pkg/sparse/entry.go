// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package sparse provides the sparse vector and compressed sparse matrix
// types used by the EigenTrust solver.
//
// All structures keep their entries ordered by index with no duplicates
// and no stored zeros. Every mutating operation restores that ordering
// before it returns.
package sparse

import (
	"errors"
	"sort"
)

// Errors returned by sparse operations.
var (
	ErrDimensionMismatch = errors.New("dimension mismatch")
	ErrNaN               = errors.New("value is NaN")
	ErrIndexOutOfRange   = errors.New("index out of range")
)

// Entry is a single nonzero of a vector or a matrix row/column.
type Entry struct {
	Index int     `json:"index"`
	Value float64 `json:"value"`
}

// CooEntry is a coordinate-format triple used to assemble matrices.
type CooEntry struct {
	Row    int
	Column int
	Value  float64
}

func sortEntriesByIndex(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Index < entries[j].Index
	})
}

func entriesSorted(entries []Entry) bool {
	for i := 1; i < len(entries); i++ {
		if entries[i-1].Index > entries[i].Index {
			return false
		}
	}
	return true
}

// cloneEntries returns a copy of entries that never shares a backing
// array with the input. A nil or empty input yields nil.
func cloneEntries(entries []Entry) []Entry {
	if len(entries) == 0 {
		return nil
	}
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}
