// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/petar-djukic/go-eigentrust/internal/engine"
	"github.com/petar-djukic/go-eigentrust/pkg/eigentrust"
	"github.com/petar-djukic/go-eigentrust/pkg/types"
)

func sampleResult() *engine.Result {
	return &engine.Result{
		Scores: []types.PeerScore{
			{Peer: "bob", Index: 1, Score: 0.75},
			{Peer: "alice, jr", Index: 0, Score: 0.25},
		},
		Stats: eigentrust.Stats{Dim: 2, NNZ: 2, Iterations: 9, Alpha: 0.5, Epsilon: 1e-6, Converged: true},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", JSON, false},
		{"YAML", YAML, false},
		{"yml", YAML, false},
		{" csv ", CSV, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleResult(), JSON))

	var got engine.Result
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, sampleResult().Scores, got.Scores)
	assert.Equal(t, 9, got.Stats.Iterations)
	assert.Contains(t, buf.String(), `"peer": "bob"`)
}

func TestWrite_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleResult(), YAML))

	var got struct {
		Scores []types.PeerScore `yaml:"scores"`
		Stats  struct {
			Converged bool `yaml:"converged"`
		} `yaml:"stats"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, sampleResult().Scores, got.Scores)
	assert.True(t, got.Stats.Converged)
}

func TestWrite_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleResult(), CSV))
	assert.Equal(t, "peer,score\nbob,0.75\n\"alice, jr\",0.25\n", buf.String())
}

func TestWrite_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, sampleResult(), Format("xml"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
	assert.Empty(t, buf.String())
}
