// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package types defines shared types used across go-eigentrust packages.
package types

// PeerScore is the global trust of one named peer.
type PeerScore struct {
	Peer  string  `json:"peer" yaml:"peer"`   // Peer name as it appeared in the input
	Index int     `json:"index" yaml:"index"` // Dense index assigned to the peer
	Score float64 `json:"score" yaml:"score"` // Global trust after discounting
}
