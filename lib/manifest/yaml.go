// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// parseYAML decodes a single YAML document. Unknown fields are
// rejected, matching the JSONC path.
func parseYAML(data []byte) (*Manifest, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var manifest Manifest
	if err := decoder.Decode(&manifest); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	return &manifest, nil
}

// UnmarshalYAML accepts three spellings:
//
//	defines:            defines:           defines:
//	  - name: A           A: 1               - A
//	    value: 1          B: ~               - B
//	  - name: B
//
// Mapping keys are read from the node tree rather than a Go map so
// document order survives.
func (l *DefineList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.MappingNode:
		defines := make(DefineList, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i], node.Content[i+1]
			if key.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: define name must be a scalar", key.Line)
			}
			text, err := scalarValue(value)
			if err != nil {
				return err
			}
			defines = append(defines, Define{Name: key.Value, Value: text})
		}
		*l = defines
		return nil

	case yaml.SequenceNode:
		defines := make(DefineList, 0, len(node.Content))
		for _, item := range node.Content {
			switch item.Kind {
			case yaml.ScalarNode:
				defines = append(defines, Define{Name: item.Value})
			case yaml.MappingNode:
				define, err := defineFromMapping(item)
				if err != nil {
					return err
				}
				defines = append(defines, define)
			default:
				return fmt.Errorf("line %d: define must be a name or a {name, value} mapping", item.Line)
			}
		}
		*l = defines
		return nil

	case yaml.ScalarNode:
		if node.ShortTag() == "!!null" {
			*l = nil
			return nil
		}
	}
	return fmt.Errorf("line %d: defines must be a list or a mapping", node.Line)
}

func defineFromMapping(node *yaml.Node) (Define, error) {
	var define Define
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		switch key.Value {
		case "name":
			if value.Kind != yaml.ScalarNode {
				return Define{}, fmt.Errorf("line %d: define name must be a scalar", value.Line)
			}
			define.Name = value.Value
		case "value":
			text, err := scalarValue(value)
			if err != nil {
				return Define{}, err
			}
			define.Value = text
		default:
			return Define{}, fmt.Errorf("line %d: unknown define field %q", key.Line, key.Value)
		}
	}
	return define, nil
}

// scalarValue returns the literal text of a scalar, or nil for null.
// "value: 0x10" yields "0x10", not "16".
func scalarValue(node *yaml.Node) (*string, error) {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	if node.Kind != yaml.ScalarNode {
		return nil, fmt.Errorf("line %d: define value must be a scalar", node.Line)
	}
	if node.ShortTag() == "!!null" {
		return nil, nil
	}
	text := node.Value
	return &text, nil
}
