// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"context"
	"slices"

	"github.com/z5labs/typedconfig/config/tree"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Viper represents a Reader over the settings of a [viper.Viper] instance.
// This allows any config source already wired into viper, including its
// flag bindings and defaults, to take part in a [Chained] reader.
type Viper struct {
	v    *viper.Viper
	opts commonOptions
}

// FromViper returns a Reader which reads all of v's settings on every read.
// Viper lower cases every key.
func FromViper(v *viper.Viper, opts ...Option) Viper {
	co := defaultCommonOptions()
	for _, opt := range opts {
		opt.apply(&co)
	}
	return Viper{
		v:    v,
		opts: co,
	}
}

// ReadValues implements the [Reader] interface.
func (r Viper) ReadValues(ctx context.Context) (tree.Tree, error) {
	_, span := startSpan(ctx, "Viper.ReadValues", "viper")
	defer span.End()

	t, _ := tree.FromValue(r.v.AllSettings())
	r.opts.logger.Debug(
		"read config values",
		zap.String("source", "viper"),
		zap.Int("keys", len(t)),
	)
	return t, nil
}

// CastRules implements the [CastRuleProvider] interface.
func (r Viper) CastRules() []CastRule {
	return slices.Clone(r.opts.casts)
}
