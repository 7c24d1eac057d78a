// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package peers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap_InsertOrGet(t *testing.T) {
	m := New()
	assert.Equal(t, 0, m.Len())

	assert.Equal(t, 0, m.InsertOrGet("alice"))
	assert.Equal(t, 1, m.InsertOrGet("bob"))
	assert.Equal(t, 0, m.InsertOrGet("alice"), "known peers keep their index")
	assert.Equal(t, 2, m.InsertOrGet("carol"))
	assert.Equal(t, 3, m.Len())
}

func TestMap_Lookup(t *testing.T) {
	m := New()
	m.InsertOrGet("alice")
	m.InsertOrGet("bob")

	tests := []struct {
		name   string
		want   int
		wantOK bool
	}{
		{"alice", 0, true},
		{"bob", 1, true},
		{"mallory", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i, ok := m.Index(tt.name)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, i)
		})
	}

	assert.Equal(t, "bob", m.Name(1))
	assert.Equal(t, "", m.Name(2))
	assert.Equal(t, "", m.Name(-1))
}
