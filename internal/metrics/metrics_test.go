// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package metrics

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/go-eigentrust/pkg/eigentrust"
	"github.com/petar-djukic/go-eigentrust/pkg/sparse"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	r, err := New(reg)
	require.NoError(t, err)

	r.IterationDone(0, 0.5, 2*time.Millisecond)
	r.IterationDone(1, 0.25, 3*time.Millisecond)
	assert.Equal(t, 2.0, testutil.ToFloat64(r.iterations))
	assert.Equal(t, 0.25, testutil.ToFloat64(r.delta))
	assert.Equal(t, 1, testutil.CollectAndCount(r.iterationSeconds))

	r.ComputeDone(eigentrust.Stats{Dim: 7, NNZ: 11, Delta: 1e-8, Elapsed: time.Second, Converged: true})
	r.ComputeDone(eigentrust.Stats{Dim: 3, Converged: false})
	assert.Equal(t, 3.0, testutil.ToFloat64(r.peers))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.computations.WithLabelValues(ResultConverged)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.computations.WithLabelValues(ResultFailed)))

	problems, err := testutil.GatherAndLint(reg)
	require.NoError(t, err)
	assert.Empty(t, problems)
}

func TestNew_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg)
	require.NoError(t, err)

	_, err = New(reg)
	assert.Error(t, err)
}

func TestRecorder_ObservesCompute(t *testing.T) {
	reg := prometheus.NewRegistry()
	r, err := New(reg)
	require.NoError(t, err)

	c, err := sparse.NewCSRMatrix(2, 2, []sparse.CooEntry{
		{Row: 0, Column: 1, Value: 1},
		{Row: 1, Column: 0, Value: 1},
	})
	require.NoError(t, err)
	p := sparse.NewVector(2, []sparse.Entry{{Index: 0, Value: 1}})

	_, err = eigentrust.Compute(context.Background(), c, p, 0.5, 1e-9, eigentrust.WithObserver(r))
	require.NoError(t, err)

	assert.Greater(t, testutil.ToFloat64(r.iterations), 0.0)
	assert.Equal(t, 2.0, testutil.ToFloat64(r.peers))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.nnz))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.computations.WithLabelValues(ResultConverged)))
}

func TestWriteTextfile(t *testing.T) {
	reg := prometheus.NewRegistry()
	r, err := New(reg)
	require.NoError(t, err)
	r.IterationDone(0, 0.1, time.Millisecond)

	path := filepath.Join(t.TempDir(), "eigentrust.prom")
	require.NoError(t, WriteTextfile(path, reg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "eigentrust_iterations_total 1")
	assert.Contains(t, string(data), "# TYPE eigentrust_iteration_duration_seconds histogram")
}

func TestWriteTextfile_BadPath(t *testing.T) {
	err := WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom"), prometheus.NewRegistry())
	assert.Error(t, err)
}
