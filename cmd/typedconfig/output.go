// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/z5labs/typedconfig/config/tree"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	formatJson = "json"
	formatYaml = "yaml"
	formatToml = "toml"
)

// UnknownFormatError occurs when an output format is not supported.
type UnknownFormatError struct {
	Format string
}

// Error implements the error interface.
func (e UnknownFormatError) Error() string {
	return fmt.Sprintf("unknown output format: %s", e.Format)
}

// TomlRootError occurs when a non-mapping value is written as TOML.
type TomlRootError struct {
	Value any
}

// Error implements the error interface.
func (e TomlRootError) Error() string {
	return fmt.Sprintf("toml output requires a mapping but got %T", e.Value)
}

func writeValue(w io.Writer, format string, v any) error {
	switch format {
	case formatJson:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYaml:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		err := enc.Encode(v)
		if err != nil {
			return err
		}
		return enc.Close()
	case formatToml:
		m, ok := tree.AsMap(v)
		if !ok {
			return TomlRootError{Value: v}
		}
		return toml.NewEncoder(w).Encode(m)
	default:
		return UnknownFormatError{Format: format}
	}
}
