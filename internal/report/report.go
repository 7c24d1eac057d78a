// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package report renders engine results.
package report

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/petar-djukic/go-eigentrust/internal/engine"
)

// Format names an output encoding.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
	CSV  Format = "csv"
)

var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat resolves a case-insensitive format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case JSON, YAML, CSV:
		return f, nil
	case "yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("%w: %q (want json, yaml or csv)", ErrUnknownFormat, s)
	}
}

// Write renders result to w. JSON and YAML carry the scores and the
// solver stats; CSV carries only "peer,score" rows in rank order.
func Write(w io.Writer, result *engine.Result, format Format) error {
	switch format {
	case JSON:
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling result: %w", err)
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("marshaling result: %w", err)
		}
		return enc.Close()
	case CSV:
		cw := csv.NewWriter(w)
		if err := cw.Write([]string{"peer", "score"}); err != nil {
			return err
		}
		for _, s := range result.Scores {
			if err := cw.Write([]string{s.Peer, strconv.FormatFloat(s.Score, 'g', -1, 64)}); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
