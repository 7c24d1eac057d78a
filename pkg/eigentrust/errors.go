// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package eigentrust

import (
	"errors"

	"github.com/petar-djukic/go-eigentrust/pkg/sparse"
)

// Error kinds returned by the solver and its collaborators. Match them
// with errors.Is; returned errors usually wrap one of these with context.
var (
	ErrInvalidParameter  = errors.New("invalid parameter")
	ErrEmptyInput        = errors.New("empty local trust matrix")
	ErrDimensionMismatch = sparse.ErrDimensionMismatch
	ErrZeroSum           = errors.New("zero sum vector")
	ErrNonConvergence    = errors.New("reached maximum iterations without convergence")
)
