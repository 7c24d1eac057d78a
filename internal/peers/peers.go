// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package peers maps peer names to dense matrix indices.
package peers

// Map assigns consecutive indices to peer names in order of first
// insertion and resolves them in both directions.
type Map struct {
	index map[string]int
	names []string
}

// New returns an empty map.
func New() *Map {
	return &Map{index: make(map[string]int)}
}

// InsertOrGet returns the index of name, assigning the next free index if
// name has not been seen before.
func (m *Map) InsertOrGet(name string) int {
	if i, ok := m.index[name]; ok {
		return i
	}
	i := len(m.names)
	m.index[name] = i
	m.names = append(m.names, name)
	return i
}

// Index returns the index of name and whether it is known.
func (m *Map) Index(name string) (int, bool) {
	i, ok := m.index[name]
	return i, ok
}

// Name returns the name at index i, or "" when i is out of range.
func (m *Map) Name(i int) string {
	if i < 0 || i >= len(m.names) {
		return ""
	}
	return m.names[i]
}

// Len returns the number of known peers.
func (m *Map) Len() int {
	return len(m.names)
}
