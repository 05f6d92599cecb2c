// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package manifest reads declarative header descriptions and turns
// them into [cheader.Builder] values.
//
// Manifests are authored as YAML (.yaml, .yml) or JSONC (.json, .jsonc:
// JSON with // and /* */ comments and trailing commas). Both formats
// share one schema:
//
//	output: include/config.h
//	guard: CONFIG_H
//	strict_encoding: false
//	defines:
//	  - name: VERSION
//	    value: '"1.0"'
//	  - name: DEBUG
//	blocks:
//	  - "typedef int handle_t;\n"
//
// YAML manifests may also write defines as a mapping
// ("defines: {VERSION: 2, DEBUG: ~}"); document order is preserved.
// A define without a value, or with a null value, is a valueless macro.
// Non-string scalar values (numbers, booleans) keep their literal text.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bureau-foundation/hdrgen/lib/cheader"
)

// Format identifies the on-disk encoding of a manifest.
type Format string

const (
	// YAML manifests (.yaml, .yml).
	YAML Format = "yaml"
	// JSONC manifests (.json, .jsonc).
	JSONC Format = "jsonc"
)

// Manifest describes one header file.
type Manifest struct {
	// Output is the header path. Relative paths are resolved by the
	// caller; see [Manifest.Build].
	Output string `yaml:"output" json:"output"`

	// Guard, when set, wraps the header in an include guard.
	Guard string `yaml:"guard" json:"guard"`

	// StrictEncoding rejects blocks that are not valid UTF-8. JSON and
	// plain YAML strings are always valid UTF-8 once decoded, so this
	// only matters for YAML blocks tagged !!binary, whose decoded bytes
	// are passed through unchecked.
	StrictEncoding bool `yaml:"strict_encoding" json:"strict_encoding"`

	Defines DefineList `yaml:"defines" json:"defines"`

	// Blocks are emitted verbatim after all defines. Duplicates are
	// emitted once.
	Blocks []string `yaml:"blocks" json:"blocks"`
}

// Define is one macro entry. A nil Value is a valueless macro.
type Define struct {
	Name  string  `yaml:"name" json:"name"`
	Value *string `yaml:"value" json:"value"`
}

// DefineList is the ordered list of defines in a manifest.
type DefineList []Define

// FormatFromPath picks the manifest format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".json", ".jsonc":
		return JSONC, nil
	default:
		return "", fmt.Errorf("unrecognized manifest extension %q (want .yaml, .yml, .json, or .jsonc)", filepath.Ext(path))
	}
}

// Parse decodes a manifest in the given format and validates it.
func Parse(data []byte, format Format) (*Manifest, error) {
	var manifest *Manifest
	var err error
	switch format {
	case YAML:
		manifest, err = parseYAML(data)
	case JSONC:
		manifest, err = parseJSONC(data)
	default:
		return nil, fmt.Errorf("unknown manifest format %q", format)
	}
	if err != nil {
		return nil, err
	}

	if err := manifest.Validate(); err != nil {
		return nil, err
	}
	return manifest, nil
}

// ReadFile reads and parses the manifest at path, choosing the format
// from its extension.
func ReadFile(path string) (*Manifest, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	manifest, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return manifest, nil
}

// Validate checks that every define has a non-empty, unique name.
// Names are otherwise not checked against C identifier rules.
func (m *Manifest) Validate() error {
	var errs []error
	seen := make(map[string]int, len(m.Defines))

	for index, define := range m.Defines {
		if define.Name == "" {
			errs = append(errs, fmt.Errorf("defines[%d]: name is required", index))
			continue
		}
		if first, exists := seen[define.Name]; exists {
			errs = append(errs, fmt.Errorf("defines[%d]: %q already defined at defines[%d]", index, define.Name, first))
			continue
		}
		seen[define.Name] = index
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Build returns a builder populated from the manifest. The builder's
// path is outputOverride when non-empty, otherwise the manifest's
// Output. An error is returned if neither is set.
func (m *Manifest) Build(outputOverride string) (*cheader.Builder, error) {
	path := outputOverride
	if path == "" {
		path = m.Output
	}
	if path == "" {
		return nil, errors.New("no output path: set \"output\" in the manifest or pass one explicitly")
	}

	var options []cheader.Option
	if m.Guard != "" {
		options = append(options, cheader.WithIncludeGuard(m.Guard))
	}
	if m.StrictEncoding {
		options = append(options, cheader.WithStrictEncoding())
	}

	builder := cheader.New(path, options...)
	for _, define := range m.Defines {
		builder.Define(define.Name, define.Value)
	}
	for index, block := range m.Blocks {
		if _, err := builder.Ingest([]byte(block)); err != nil {
			return nil, fmt.Errorf("blocks[%d]: %w", index, err)
		}
	}
	return builder, nil
}
