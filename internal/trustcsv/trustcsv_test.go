// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package trustcsv

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/petar-djukic/go-eigentrust/internal/peers"
	"github.com/petar-djukic/go-eigentrust/pkg/sparse"
)

func TestStripHeader(t *testing.T) {
	tests := []struct {
		name    string
		records [][]string
		column  int
		columns []string
		want    int
	}{
		{"named value column", [][]string{{"a", "b", "weight"}, {"x", "y", "1"}}, 2, LocalTrustColumns, 1},
		{"numeric value column", [][]string{{"a", "b", "0.5"}, {"x", "y", "1"}}, 2, LocalTrustColumns, 2},
		{"known names without value", [][]string{{"from", "to"}, {"x", "y"}}, 2, LocalTrustColumns, 1},
		{"unknown names without value", [][]string{{"alice", "bob"}, {"x", "y"}}, 2, LocalTrustColumns, 2},
		{"pretrust header", [][]string{{"peer", "value"}, {"x", "1"}}, 1, PretrustColumns, 1},
		{"pretrust single column", [][]string{{"Peer"}, {"x"}}, 1, PretrustColumns, 1},
		{"empty", nil, 2, LocalTrustColumns, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, StripHeader(tt.records, tt.column, tt.columns), tt.want)
		})
	}
}

func TestReadLocalTrust(t *testing.T) {
	input := `from,to,value
alice,bob,2
bob,carol
carol,alice,-1
alice,bob,3
`
	pm := peers.New()
	c, err := ReadLocalTrust(strings.NewReader(input), pm)
	require.NoError(t, err)

	assert.Equal(t, 3, pm.Len())
	assert.Equal(t, "alice", pm.Name(0))
	assert.Equal(t, "bob", pm.Name(1))
	assert.Equal(t, "carol", pm.Name(2))

	rows, cols := c.Dims()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 3, cols)
	assert.Equal(t, []sparse.Entry{{Index: 1, Value: 5}}, c.Entries[0], "repeated pairs are summed")
	assert.Equal(t, []sparse.Entry{{Index: 2, Value: 1}}, c.Entries[1], "missing value defaults to one")
	assert.Equal(t, []sparse.Entry{{Index: 0, Value: -1}}, c.Entries[2])
}

func TestReadLocalTrust_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"one field", "alice\n"},
		{"bad level", "alice,bob,1\nbob,alice,lots\n"},
		{"NaN level", "alice,bob,1\nbob,alice,NaN\n"},
		{"empty peer", "alice,,1\n"},
		{"unterminated quote", "\"alice,bob,1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadLocalTrust(strings.NewReader(tt.input), peers.New())
			assert.ErrorIs(t, err, ErrMalformedRecord)
		})
	}
}

func TestReadTrustVector(t *testing.T) {
	pm := peers.New()
	for _, name := range []string{"alice", "bob", "carol", "dave"} {
		pm.InsertOrGet(name)
	}
	core, logs := observer.New(zapcore.WarnLevel)

	v, err := ReadTrustVector(strings.NewReader("peer,value\ncarol,2\nalice\ncarol,1\n"), pm, zap.New(core))
	require.NoError(t, err)

	assert.Equal(t, 4, v.Dim)
	assert.Equal(t, []sparse.Entry{{Index: 0, Value: 1}, {Index: 2, Value: 3}}, v.Entries)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, int64(1), logs.All()[0].ContextMap()["duplicates"])
}

func TestReadTrustVector_UnknownPeer(t *testing.T) {
	pm := peers.New()
	pm.InsertOrGet("alice")

	_, err := ReadTrustVector(strings.NewReader("alice,1\nmallory,1\n"), pm, nil)
	assert.ErrorIs(t, err, ErrUnknownPeer)
	assert.Contains(t, err.Error(), "mallory")
}

func TestReadTrustVector_Empty(t *testing.T) {
	pm := peers.New()
	pm.InsertOrGet("alice")
	pm.InsertOrGet("bob")

	v, err := ReadTrustVector(strings.NewReader(""), pm, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, v.Dim)
	assert.Empty(t, v.Entries)
}
