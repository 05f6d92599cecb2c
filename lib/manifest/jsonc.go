// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/jsonc"
)

// parseJSONC strips comments and trailing commas, then decodes strict
// JSON. Unknown top-level fields are rejected to catch typos.
func parseJSONC(data []byte) (*Manifest, error) {
	decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	decoder.DisallowUnknownFields()

	var manifest Manifest
	if err := decoder.Decode(&manifest); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	return &manifest, nil
}

// UnmarshalJSON accepts either a bare name ("DEBUG") or an object
// {"name": ..., "value": ...}. A value may be a string, number,
// boolean, or null; non-strings keep their JSON literal text.
func (d *Define) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var name string
		if err := json.Unmarshal(trimmed, &name); err != nil {
			return err
		}
		*d = Define{Name: name}
		return nil
	}

	var raw struct {
		Name  string          `json:"name"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return err
	}

	define := Define{Name: raw.Name}
	value := bytes.TrimSpace(raw.Value)
	switch {
	case len(value) == 0, bytes.Equal(value, []byte("null")):
	case value[0] == '"':
		var text string
		if err := json.Unmarshal(value, &text); err != nil {
			return fmt.Errorf("define %q: %w", raw.Name, err)
		}
		define.Value = &text
	case value[0] == '{' || value[0] == '[':
		return fmt.Errorf("define %q: value must be a string, number, boolean, or null", raw.Name)
	default:
		text := string(value)
		define.Value = &text
	}
	*d = define
	return nil
}
