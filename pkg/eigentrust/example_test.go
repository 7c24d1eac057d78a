// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package eigentrust_test

import (
	"context"
	"fmt"

	"github.com/petar-djukic/go-eigentrust/pkg/eigentrust"
	"github.com/petar-djukic/go-eigentrust/pkg/sparse"
)

func ExampleCompute() {
	c, err := sparse.NewCSRMatrix(4, 4, []sparse.CooEntry{
		{Row: 0, Column: 1, Value: 1},
		{Row: 1, Column: 2, Value: 1},
		{Row: 2, Column: 0, Value: 1},
		{Row: 3, Column: 0, Value: 1},
	})
	if err != nil {
		panic(err)
	}
	p := sparse.NewVector(4, []sparse.Entry{{Index: 3, Value: 1}})
	if err := eigentrust.CanonicalizeLocalTrust(c, p); err != nil {
		panic(err)
	}

	t, err := eigentrust.Compute(context.Background(), c, p, 0.5, 1e-9)
	if err != nil {
		panic(err)
	}
	for _, e := range t.Entries {
		fmt.Printf("%d %.4f\n", e.Index, e.Value)
	}
	// Output:
	// 0 0.2857
	// 1 0.1429
	// 2 0.0714
	// 3 0.5000
}
