// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package sparse

import (
	"fmt"
	"sort"
)

// CSMatrix is a compressed sparse matrix in major order. Entries[i] holds
// the nonzeros of major line i (a row for CSR, a column for CSC), sorted
// by minor index.
type CSMatrix struct {
	MajorDim int
	MinorDim int
	Entries  [][]Entry
}

// Reset empties the matrix and sets both dimensions to zero.
func (m *CSMatrix) Reset() {
	m.MajorDim = 0
	m.MinorDim = 0
	m.Entries = nil
}

// Dim returns the dimension of a square matrix.
func (m *CSMatrix) Dim() (int, error) {
	if m.MajorDim != m.MinorDim {
		return 0, fmt.Errorf("%w: matrix is %dx%d, not square",
			ErrDimensionMismatch, m.MajorDim, m.MinorDim)
	}
	return m.MajorDim, nil
}

// SetMajorDim grows the matrix with empty lines or truncates it.
func (m *CSMatrix) SetMajorDim(dim int) {
	switch {
	case dim < len(m.Entries):
		for i := dim; i < len(m.Entries); i++ {
			m.Entries[i] = nil
		}
		m.Entries = m.Entries[:dim]
	case dim > len(m.Entries):
		grown := make([][]Entry, dim)
		copy(grown, m.Entries)
		m.Entries = grown
	}
	m.MajorDim = dim
}

// SetMinorDim changes the minor dimension, dropping entries that fall
// outside the new bound.
func (m *CSMatrix) SetMinorDim(dim int) {
	if dim < m.MinorDim {
		for i, line := range m.Entries {
			cut := sort.Search(len(line), func(k int) bool {
				return line[k].Index >= dim
			})
			m.Entries[i] = line[:cut]
		}
	}
	m.MinorDim = dim
}

// NNZ returns the number of stored entries.
func (m *CSMatrix) NNZ() int {
	n := 0
	for _, line := range m.Entries {
		n += len(line)
	}
	return n
}

// Transpose returns a new matrix with major and minor swapped.
func (m *CSMatrix) Transpose() *CSMatrix {
	counts := make([]int, m.MinorDim)
	for _, line := range m.Entries {
		for _, e := range line {
			counts[e.Index]++
		}
	}

	out := make([][]Entry, m.MinorDim)
	for i, n := range counts {
		if n != 0 {
			out[i] = make([]Entry, 0, n)
		}
	}

	// Source lines are visited in ascending order, so each output line
	// receives its entries already sorted.
	for major, line := range m.Entries {
		for _, e := range line {
			out[e.Index] = append(out[e.Index], Entry{Index: major, Value: e.Value})
		}
	}

	return &CSMatrix{
		MajorDim: m.MinorDim,
		MinorDim: m.MajorDim,
		Entries:  out,
	}
}

// Merge unions other into m. Both dimensions grow to the larger of the
// two; where both matrices hold an entry, other's value wins. other is
// reset afterwards.
func (m *CSMatrix) Merge(other *CSMatrix) {
	m.SetMajorDim(max(m.MajorDim, other.MajorDim))
	m.SetMinorDim(max(m.MinorDim, other.MinorDim))
	for i, line := range other.Entries {
		m.Entries[i] = mergeSpan(m.Entries[i], line)
	}
	other.Reset()
}

func mergeSpan(s1, s2 []Entry) []Entry {
	s := make([]Entry, 0, len(s1)+len(s2))
	i, j := 0, 0
	for i < len(s1) || j < len(s2) {
		switch {
		case j >= len(s2) || (i < len(s1) && s1[i].Index < s2[j].Index):
			s = append(s, s1[i])
			i++
		case i >= len(s1) || s1[i].Index > s2[j].Index:
			s = append(s, s2[j])
			j++
		default:
			s = append(s, s2[j])
			i++
			j++
		}
	}
	if len(s) == 0 {
		return nil
	}
	return s
}

// CSRMatrix is a compressed sparse row matrix.
type CSRMatrix struct {
	CSMatrix
}

// NewCSRMatrix assembles a rows x cols matrix from coordinate triples.
// Zero values are dropped, and duplicate coordinates are summed (a sum
// of exactly zero is dropped too).
func NewCSRMatrix(rows, cols int, entries []CooEntry) (*CSRMatrix, error) {
	lines := make([][]Entry, rows)
	for _, e := range entries {
		if e.Row < 0 || e.Row >= rows || e.Column < 0 || e.Column >= cols {
			return nil, fmt.Errorf("%w: (%d, %d) in %dx%d matrix",
				ErrIndexOutOfRange, e.Row, e.Column, rows, cols)
		}
		if e.Value == 0 {
			continue
		}
		lines[e.Row] = append(lines[e.Row], Entry{Index: e.Column, Value: e.Value})
	}

	for i, line := range lines {
		if len(line) == 0 {
			continue
		}
		sortEntriesByIndex(line)
		lines[i] = sumDuplicates(line)
	}

	return &CSRMatrix{CSMatrix{MajorDim: rows, MinorDim: cols, Entries: lines}}, nil
}

// sumDuplicates folds runs of equal indices in a sorted line into one
// entry and drops the ones that cancel out.
func sumDuplicates(line []Entry) []Entry {
	out := line[:0]
	for _, e := range line {
		if n := len(out); n > 0 && out[n-1].Index == e.Index {
			out[n-1].Value += e.Value
			continue
		}
		if n := len(out); n > 0 && out[n-1].Value == 0 {
			out = out[:n-1]
		}
		out = append(out, e)
	}
	if n := len(out); n > 0 && out[n-1].Value == 0 {
		out = out[:n-1]
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Dims returns the number of rows and columns.
func (m *CSRMatrix) Dims() (rows, cols int) {
	return m.MajorDim, m.MinorDim
}

// SetDim resizes the matrix.
func (m *CSRMatrix) SetDim(rows, cols int) {
	m.SetMajorDim(rows)
	m.SetMinorDim(cols)
}

// Row returns a copy of row i as a vector of dimension cols.
func (m *CSRMatrix) Row(i int) *Vector {
	return &Vector{Dim: m.MinorDim, Entries: cloneEntries(m.Entries[i])}
}

// SetRow replaces row i with the entries of v.
func (m *CSRMatrix) SetRow(i int, v *Vector) {
	line := cloneEntries(v.Entries)
	if !entriesSorted(line) {
		sortEntriesByIndex(line)
	}
	m.Entries[i] = line
}

// Transpose returns the transpose as a new CSR matrix.
func (m *CSRMatrix) Transpose() *CSRMatrix {
	return &CSRMatrix{*m.CSMatrix.Transpose()}
}

// TransposeToCSC reinterprets the rows of m as the columns of its
// transpose. The row slices are shared, not copied.
func (m *CSRMatrix) TransposeToCSC() *CSCMatrix {
	return &CSCMatrix{CSMatrix{
		MajorDim: m.MajorDim,
		MinorDim: m.MinorDim,
		Entries:  m.Entries,
	}}
}

// CSCMatrix is a compressed sparse column matrix.
type CSCMatrix struct {
	CSMatrix
}

// Dims returns the number of rows and columns.
func (m *CSCMatrix) Dims() (rows, cols int) {
	return m.MinorDim, m.MajorDim
}

// SetDim resizes the matrix.
func (m *CSCMatrix) SetDim(rows, cols int) {
	m.SetMajorDim(cols)
	m.SetMinorDim(rows)
}

// Column returns a copy of column j as a vector of dimension rows.
func (m *CSCMatrix) Column(j int) *Vector {
	return &Vector{Dim: m.MinorDim, Entries: cloneEntries(m.Entries[j])}
}

// Transpose returns the transpose as a new CSC matrix.
func (m *CSCMatrix) Transpose() *CSCMatrix {
	return &CSCMatrix{*m.CSMatrix.Transpose()}
}

// TransposeToCSR reinterprets the columns of m as the rows of its
// transpose. The column slices are shared, not copied.
func (m *CSCMatrix) TransposeToCSR() *CSRMatrix {
	return &CSRMatrix{CSMatrix{
		MajorDim: m.MajorDim,
		MinorDim: m.MinorDim,
		Entries:  m.Entries,
	}}
}
