// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package trustcsv reads local trust and pretrust from CSV.
//
// Local trust records are "from,to[,value]" and pretrust records are
// "peer[,value]". A missing value means 1.0. Either input may start with
// a header row, which is detected and skipped.
package trustcsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/petar-djukic/go-eigentrust/internal/peers"
	"github.com/petar-djukic/go-eigentrust/pkg/sparse"
)

var (
	ErrMalformedRecord = errors.New("malformed CSV record")
	ErrUnknownPeer     = errors.New("unknown peer")
)

// Column names recognized in header rows.
var (
	LocalTrustColumns = []string{"from", "to", "i", "j", "truster", "trustee", "value", "level", "trust", "v"}
	PretrustColumns   = []string{"peer", "i", "id", "value", "level", "trust", "v"}
)

const (
	localTrustValueColumn = 2
	pretrustValueColumn   = 1
	defaultTrustLevel     = 1.0
)

// StripHeader returns records without their first row if that row is a
// header. A row is a header when its value column is present and does not
// parse as a number, or when every field is one of columns.
func StripHeader(records [][]string, valueColumn int, columns []string) [][]string {
	if len(records) == 0 || !isHeader(records[0], valueColumn, columns) {
		return records
	}
	return records[1:]
}

func isHeader(record []string, valueColumn int, columns []string) bool {
	if valueColumn < len(record) {
		if _, err := strconv.ParseFloat(strings.TrimSpace(record[valueColumn]), 64); err != nil {
			return true
		}
	}
	for _, field := range record {
		if !knownColumn(strings.TrimSpace(field), columns) {
			return false
		}
	}
	return len(record) > 0
}

func knownColumn(field string, columns []string) bool {
	for _, c := range columns {
		if strings.EqualFold(field, c) {
			return true
		}
	}
	return false
}

func readRecords(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	return records, nil
}

func parseLevel(record []string, column, n int) (float64, error) {
	if column >= len(record) {
		return defaultTrustLevel, nil
	}
	s := strings.TrimSpace(record[column])
	level, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w #%d: invalid trust level %q", ErrMalformedRecord, n, s)
	}
	if math.IsNaN(level) || math.IsInf(level, 0) {
		return 0, fmt.Errorf("%w #%d: trust level %q is not finite", ErrMalformedRecord, n, s)
	}
	return level, nil
}

// ReadLocalTrust reads local trust records from r. Peers are added to pm
// in order of first appearance, and the returned matrix is square over
// every peer pm knows afterwards. Repeated (from, to) pairs are summed.
func ReadLocalTrust(r io.Reader, pm *peers.Map) (*sparse.CSRMatrix, error) {
	records, err := readRecords(r)
	if err != nil {
		return nil, fmt.Errorf("reading local trust: %w", err)
	}
	records = StripHeader(records, localTrustValueColumn, LocalTrustColumns)

	triples := make([]sparse.CooEntry, 0, len(records))
	for i, record := range records {
		n := i + 1
		if len(record) < 2 {
			return nil, fmt.Errorf("reading local trust: %w #%d: want from,to[,value], got %d fields",
				ErrMalformedRecord, n, len(record))
		}
		from := strings.TrimSpace(record[0])
		to := strings.TrimSpace(record[1])
		if from == "" || to == "" {
			return nil, fmt.Errorf("reading local trust: %w #%d: empty peer", ErrMalformedRecord, n)
		}
		level, err := parseLevel(record, localTrustValueColumn, n)
		if err != nil {
			return nil, fmt.Errorf("reading local trust: %w", err)
		}
		triples = append(triples, sparse.CooEntry{
			Row:    pm.InsertOrGet(from),
			Column: pm.InsertOrGet(to),
			Value:  level,
		})
	}

	dim := pm.Len()
	return sparse.NewCSRMatrix(dim, dim, triples)
}

// ReadTrustVector reads pretrust records from r. Every peer must already
// be known to pm. A peer listed more than once gets the sum of its
// levels; the number of such repeats is logged as a warning.
func ReadTrustVector(r io.Reader, pm *peers.Map, logger *zap.Logger) (*sparse.Vector, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	records, err := readRecords(r)
	if err != nil {
		return nil, fmt.Errorf("reading pretrust: %w", err)
	}
	records = StripHeader(records, pretrustValueColumn, PretrustColumns)

	levels := make(map[int]float64, len(records))
	order := make([]int, 0, len(records))
	duplicates := 0
	for i, record := range records {
		n := i + 1
		name := strings.TrimSpace(record[0])
		peer, ok := pm.Index(name)
		if !ok {
			return nil, fmt.Errorf("reading pretrust: %w %q in record #%d", ErrUnknownPeer, name, n)
		}
		level, err := parseLevel(record, pretrustValueColumn, n)
		if err != nil {
			return nil, fmt.Errorf("reading pretrust: %w", err)
		}
		if _, seen := levels[peer]; seen {
			duplicates++
		} else {
			order = append(order, peer)
		}
		levels[peer] += level
	}

	if duplicates > 0 {
		logger.Warn("summed duplicate pretrusted peers", zap.Int("duplicates", duplicates))
	}

	entries := make([]sparse.Entry, 0, len(order))
	for _, peer := range order {
		if v := levels[peer]; v != 0 {
			entries = append(entries, sparse.Entry{Index: peer, Value: v})
		}
	}
	return sparse.NewVector(pm.Len(), entries), nil
}
