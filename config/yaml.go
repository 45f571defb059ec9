// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"context"

	"github.com/z5labs/typedconfig/config/tree"

	"gopkg.in/yaml.v3"
)

// Yaml represents a Reader where its underlying format is YAML.
type Yaml struct {
	src fileSource
}

// FromYamlFile returns a Reader which parses the YAML document in the
// file at path on every read. An empty document is read as an empty tree.
func FromYamlFile(path string, opts ...FileOption) Yaml {
	return Yaml{
		src: newFileSource(path, "yaml", parseYaml, opts),
	}
}

func parseYaml(b []byte) (any, error) {
	var v any
	err := yaml.Unmarshal(b, &v)
	return v, err
}

// ReadValues implements the [Reader] interface.
func (r Yaml) ReadValues(ctx context.Context) (tree.Tree, error) {
	return r.src.read(ctx, "Yaml.ReadValues")
}

// CastRules implements the [CastRuleProvider] interface.
func (r Yaml) CastRules() []CastRule {
	return r.src.castRules()
}
