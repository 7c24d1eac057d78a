// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package sparse

import (
	"fmt"
	"math"
	"sort"
)

// Vector is a sparse vector. Entries are sorted by ascending index and
// hold no duplicate indices. Dim is the logical length; it may exceed the
// highest stored index plus one.
type Vector struct {
	Dim     int     `json:"dim"`
	Entries []Entry `json:"entries"`
}

// NewVector returns a vector of the given dimension holding entries,
// sorted by index. Duplicate indices are not merged; callers must not
// pass any.
func NewVector(dim int, entries []Entry) *Vector {
	v := &Vector{Dim: dim, Entries: entries}
	sortEntriesByIndex(v.Entries)
	return v
}

// NNZ returns the number of stored entries.
func (v *Vector) NNZ() int {
	return len(v.Entries)
}

// Assign replaces the receiver with a deep copy of other.
func (v *Vector) Assign(other *Vector) {
	v.Dim = other.Dim
	v.Entries = cloneEntries(other.Entries)
}

// Clone returns a deep copy of v.
func (v *Vector) Clone() *Vector {
	return &Vector{Dim: v.Dim, Entries: cloneEntries(v.Entries)}
}

// SetDim changes the dimension. Shrinking discards entries whose index
// no longer fits.
func (v *Vector) SetDim(dim int) {
	if dim < v.Dim {
		// Entries are sorted, so everything from the first index >= dim
		// onwards goes.
		cut := sort.Search(len(v.Entries), func(i int) bool {
			return v.Entries[i].Index >= dim
		})
		v.Entries = v.Entries[:cut]
	}
	v.Dim = dim
}

// At returns the value stored at index, or 0 if there is none.
func (v *Vector) At(index int) float64 {
	i := sort.Search(len(v.Entries), func(i int) bool {
		return v.Entries[i].Index >= index
	})
	if i < len(v.Entries) && v.Entries[i].Index == index {
		return v.Entries[i].Value
	}
	return 0
}

// Sum returns the plain sum of all entry values.
func (v *Vector) Sum() float64 {
	var sum float64
	for _, e := range v.Entries {
		sum += e.Value
	}
	return sum
}

// Norm2 returns the Euclidean norm of v using compensated summation.
func (v *Vector) Norm2() float64 {
	var s KBNSummer
	for _, e := range v.Entries {
		s.Add(e.Value * e.Value)
	}
	return math.Sqrt(s.Sum())
}

// Dense expands v into a slice of length Dim.
func (v *Vector) Dense() []float64 {
	out := make([]float64, v.Dim)
	for _, e := range v.Entries {
		if e.Index < v.Dim {
			out[e.Index] = e.Value
		}
	}
	return out
}

// AddVec sets the receiver to v1 + v2. The receiver may be one of the
// operands.
func (v *Vector) AddVec(v1, v2 *Vector) error {
	return v.mergeOp(v1, v2, func(x, y float64) float64 { return x + y })
}

// SubVec sets the receiver to v1 - v2. The receiver may be one of the
// operands.
func (v *Vector) SubVec(v1, v2 *Vector) error {
	return v.mergeOp(v1, v2, func(x, y float64) float64 { return x - y })
}

// ScaleVec sets the receiver to a * v1. A zero scalar yields an empty
// vector of v1's dimension. On error the receiver is left untouched.
func (v *Vector) ScaleVec(a float64, v1 *Vector) error {
	if math.IsNaN(a) {
		return ErrNaN
	}
	if a == 0 {
		v.Dim = v1.Dim
		v.Entries = nil
		return nil
	}
	if v != v1 {
		v.Assign(v1)
	}
	v.scale(a)
	return nil
}

// ScaleInPlace multiplies every entry of v by a.
func (v *Vector) ScaleInPlace(a float64) error {
	return v.ScaleVec(a, v)
}

func (v *Vector) scale(a float64) {
	kept := v.Entries[:0]
	for _, e := range v.Entries {
		e.Value *= a
		if e.Value != 0 {
			kept = append(kept, e)
		}
	}
	v.Entries = kept
}

// mergeOp runs a two-pointer merge over the sorted entries of v1 and v2.
// An index present in only one operand is combined with an implicit 0.
func (v *Vector) mergeOp(v1, v2 *Vector, op func(x, y float64) float64) error {
	if v1.Dim != v2.Dim {
		return fmt.Errorf("%w: %d != %d", ErrDimensionMismatch, v1.Dim, v2.Dim)
	}

	a, b := v1.Entries, v2.Entries
	entries := make([]Entry, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		var e Entry
		switch {
		case j >= len(b) || (i < len(a) && a[i].Index < b[j].Index):
			e = Entry{Index: a[i].Index, Value: op(a[i].Value, 0)}
			i++
		case i >= len(a) || a[i].Index > b[j].Index:
			e = Entry{Index: b[j].Index, Value: op(0, b[j].Value)}
			j++
		default:
			e = Entry{Index: a[i].Index, Value: op(a[i].Value, b[j].Value)}
			i++
			j++
		}
		if e.Value != 0 {
			entries = append(entries, e)
		}
	}

	v.Dim = v1.Dim
	v.Entries = entries
	return nil
}

// Dot returns the inner product of v1 and v2. Only indices present in
// both vectors contribute.
func Dot(v1, v2 *Vector) float64 {
	return dotEntries(v1.Entries, v2.Entries)
}

func dotEntries(a, b []Entry) float64 {
	var s KBNSummer
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].Index < b[j].Index:
			i++
		case a[i].Index > b[j].Index:
			j++
		default:
			s.Add(a[i].Value * b[j].Value)
			i++
			j++
		}
	}
	return s.Sum()
}
