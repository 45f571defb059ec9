// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"context"

	"github.com/z5labs/typedconfig/config/tree"

	"github.com/BurntSushi/toml"
)

// Toml represents a Reader where its underlying format is TOML.
type Toml struct {
	src fileSource
}

// FromTomlFile returns a Reader which parses the TOML document in the
// file at path on every read.
func FromTomlFile(path string, opts ...FileOption) Toml {
	return Toml{
		src: newFileSource(path, "toml", parseToml, opts),
	}
}

func parseToml(b []byte) (any, error) {
	m := make(map[string]any)
	_, err := toml.Decode(string(b), &m)
	return m, err
}

// ReadValues implements the [Reader] interface.
func (r Toml) ReadValues(ctx context.Context) (tree.Tree, error) {
	return r.src.read(ctx, "Toml.ReadValues")
}

// CastRules implements the [CastRuleProvider] interface.
func (r Toml) CastRules() []CastRule {
	return r.src.castRules()
}
