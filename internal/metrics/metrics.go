// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package metrics exports solver progress as Prometheus metrics.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/petar-djukic/go-eigentrust/pkg/eigentrust"
)

const namespace = "eigentrust"

// Result label values of the computations counter.
const (
	ResultConverged = "converged"
	ResultFailed    = "failed"
)

// Recorder is an eigentrust.Observer backed by Prometheus collectors.
type Recorder struct {
	iterations       prometheus.Counter
	iterationSeconds prometheus.Histogram
	delta            prometheus.Gauge
	computeSeconds   prometheus.Gauge
	peers            prometheus.Gauge
	nnz              prometheus.Gauge
	computations     *prometheus.CounterVec
}

var _ eigentrust.Observer = (*Recorder)(nil)

// New creates a Recorder and registers its collectors with reg.
func New(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		iterations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "iterations_total",
			Help:      "Power iterations performed.",
		}),
		iterationSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "iteration_duration_seconds",
			Help:      "Wall time of one power iteration.",
			Buckets:   prometheus.ExponentialBuckets(1e-5, 4, 10),
		}),
		delta: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "delta",
			Help:      "Norm of the difference between the last two checked iterates.",
		}),
		computeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "compute_duration_seconds",
			Help:      "Wall time of the last computation.",
		}),
		peers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "peers",
			Help:      "Peers in the last computation.",
		}),
		nnz: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "local_trust_nonzeros",
			Help:      "Stored entries of the local trust matrix in the last computation.",
		}),
		computations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "computations_total",
			Help:      "Finished computations by result.",
		}, []string{"result"}),
	}

	var err error
	for _, c := range []prometheus.Collector{
		r.iterations, r.iterationSeconds, r.delta, r.computeSeconds, r.peers, r.nnz, r.computations,
	} {
		err = multierr.Append(err, reg.Register(c))
	}
	if err != nil {
		return nil, fmt.Errorf("registering metrics: %w", err)
	}
	return r, nil
}

// IterationDone implements eigentrust.Observer.
func (r *Recorder) IterationDone(_ int, delta float64, elapsed time.Duration) {
	r.iterations.Inc()
	r.iterationSeconds.Observe(elapsed.Seconds())
	r.delta.Set(delta)
}

// ComputeDone implements eigentrust.Observer.
func (r *Recorder) ComputeDone(stats eigentrust.Stats) {
	r.delta.Set(stats.Delta)
	r.computeSeconds.Set(stats.Elapsed.Seconds())
	r.peers.Set(float64(stats.Dim))
	r.nnz.Set(float64(stats.NNZ))
	result := ResultFailed
	if stats.Converged {
		result = ResultConverged
	}
	r.computations.WithLabelValues(result).Inc()
}

// WriteTextfile writes everything g gathers to path in the text
// exposition format, for pickup by a node exporter textfile collector.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
