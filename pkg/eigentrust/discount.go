// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package eigentrust

import (
	"fmt"

	"github.com/petar-djukic/go-eigentrust/pkg/sparse"
)

// DiscountTrustVector subtracts from t the distrust each peer expresses,
// weighted by that peer's own trust:
//
//	t -= Σ_i t[i] · discounts[i]
//
// Row i of discounts holds the canonical distrust of peer i. Weights are
// taken from t as it was on entry, and rows of peers with zero trust are
// skipped.
func DiscountTrustVector(t *sparse.Vector, discounts *sparse.CSRMatrix) error {
	if rows, cols := discounts.Dims(); rows != t.Dim || cols != t.Dim {
		return fmt.Errorf("%w: distrust is %dx%d, trust vector has %d",
			ErrDimensionMismatch, rows, cols, t.Dim)
	}
	snapshot := t.Clone().Entries

	i1 := 0
	for distruster, distrusts := range discounts.Entries {
		// Advance to the first trusted peer at or after distruster.
		for i1 < len(snapshot) && snapshot[i1].Index < distruster {
			i1++
		}
		if i1 >= len(snapshot) {
			// Everyone left has zero trust, so their distrust is moot.
			break
		}
		if snapshot[i1].Index > distruster || len(distrusts) == 0 {
			continue
		}

		var scaled sparse.Vector
		row := &sparse.Vector{Dim: discounts.MinorDim, Entries: distrusts}
		if err := scaled.ScaleVec(snapshot[i1].Value, row); err != nil {
			return fmt.Errorf("scaling distrust of peer %d: %w", distruster, err)
		}
		if err := t.SubVec(t, &scaled); err != nil {
			return fmt.Errorf("discounting distrust of peer %d: %w", distruster, err)
		}
		i1++
	}
	return nil
}
