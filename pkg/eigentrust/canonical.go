// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package eigentrust

import (
	"fmt"

	"github.com/petar-djukic/go-eigentrust/pkg/sparse"
)

// Canonicalize scales entries in place so their values sum to one.
func Canonicalize(entries []sparse.Entry) error {
	var sum float64
	for _, e := range entries {
		sum += e.Value
	}
	if sum == 0 {
		return ErrZeroSum
	}
	for i := range entries {
		entries[i].Value /= sum
	}
	return nil
}

// CanonicalizeTrustVector scales v in place so it sums to one. A vector
// that sums to zero becomes the uniform distribution over all v.Dim
// peers.
func CanonicalizeTrustVector(v *sparse.Vector) error {
	err := Canonicalize(v.Entries)
	if err == nil {
		return nil
	}
	if v.Dim == 0 {
		return fmt.Errorf("%w: trust vector has no peers", ErrEmptyInput)
	}
	c := 1 / float64(v.Dim)
	v.Entries = make([]sparse.Entry, v.Dim)
	for i := range v.Entries {
		v.Entries[i] = sparse.Entry{Index: i, Value: c}
	}
	return nil
}

// CanonicalizeLocalTrust scales every row of c in place so it sums to one.
// Rows that sum to zero are replaced with the entries of p, or left empty
// when p is nil.
func CanonicalizeLocalTrust(c *sparse.CSRMatrix, p *sparse.Vector) error {
	n, err := c.Dim()
	if err != nil {
		return err
	}
	if p != nil && p.Dim != n {
		return fmt.Errorf("%w: pretrust has %d peers, local trust has %d",
			ErrDimensionMismatch, p.Dim, n)
	}

	for i := 0; i < n; i++ {
		if err := Canonicalize(c.Entries[i]); err == nil {
			continue
		}
		if p != nil {
			c.SetRow(i, p)
		} else {
			c.Entries[i] = nil
		}
	}
	return nil
}

// ExtractDistrust moves the negative entries of c into a new matrix of the
// same shape, holding their absolute values. Rows of c keep only their
// non-negative entries.
func ExtractDistrust(c *sparse.CSRMatrix) *sparse.CSRMatrix {
	rows, cols := c.Dims()
	distrust := &sparse.CSRMatrix{CSMatrix: sparse.CSMatrix{
		MajorDim: rows,
		MinorDim: cols,
		Entries:  make([][]sparse.Entry, rows),
	}}

	for i, row := range c.Entries {
		kept := row[:0]
		for _, e := range row {
			if e.Value < 0 {
				distrust.Entries[i] = append(distrust.Entries[i], sparse.Entry{Index: e.Index, Value: -e.Value})
				continue
			}
			kept = append(kept, e)
		}
		c.Entries[i] = kept
	}
	return distrust
}
