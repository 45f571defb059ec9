// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"context"
	"slices"

	"github.com/z5labs/typedconfig/config/tree"
)

// Map represents a Reader over an in-memory nested map. It is most
// useful as the first member of a [Chained] reader to supply defaults.
type Map struct {
	t    tree.Tree
	opts commonOptions
}

// FromMap returns a Reader which reads a copy of m on every read.
// The map is normalized and copied so later changes to m are not observed.
func FromMap(m map[string]any, opts ...Option) Map {
	co := defaultCommonOptions()
	for _, opt := range opts {
		opt.apply(&co)
	}

	t, _ := tree.FromValue(m)
	return Map{
		t:    t,
		opts: co,
	}
}

// ReadValues implements the [Reader] interface.
func (r Map) ReadValues(ctx context.Context) (tree.Tree, error) {
	return tree.Clone(r.t), nil
}

// CastRules implements the [CastRuleProvider] interface.
func (r Map) CastRules() []CastRule {
	return slices.Clone(r.opts.casts)
}
