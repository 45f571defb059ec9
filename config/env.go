// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"context"
	"os"
	"slices"
	"strings"

	"github.com/z5labs/typedconfig/config/tree"

	"go.uber.org/zap"
)

// DefaultSeparator separates nesting levels in environment variable names.
const DefaultSeparator = "__"

// Env represents a Reader where its underlying values
// are extracted from environment variables.
type Env struct {
	prefix string
	opts   envOptions
}

// FromEnv returns a Reader which will read its config from the environment
// variables whose names start with prefix.
//
// Each name has the prefix, and then one leading separator, stripped before
// being lower cased and split on the separator into a nested path e.g. with
// prefix "APP" the variable APP__DB__HOST=x is read as {"db": {"host": "x"}}.
// Values are always strings. Variables without the prefix are ignored.
func FromEnv(prefix string, opts ...EnvOption) Env {
	eo := envOptions{
		commonOptions: defaultCommonOptions(),
		separator:     DefaultSeparator,
		environ:       os.Environ,
	}
	for _, opt := range opts {
		opt.applyEnv(&eo)
	}
	return Env{
		prefix: prefix,
		opts:   eo,
	}
}

// ReadValues implements the [Reader] interface. It never fails.
func (r Env) ReadValues(ctx context.Context) (tree.Tree, error) {
	_, span := startSpan(ctx, "Env.ReadValues", r.prefix)
	defer span.End()

	flat := make(map[string]any)
	for _, pair := range r.opts.environ() {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || !strings.HasPrefix(k, r.prefix) {
			continue
		}
		flat[r.trimKey(k)] = v
	}

	t := tree.Unflatten(flat, r.opts.separator)
	r.opts.logger.Debug(
		"read config values",
		zap.String("source", "env"),
		zap.String("prefix", r.prefix),
		zap.Int("variables", len(flat)),
	)
	return t, nil
}

func (r Env) trimKey(k string) string {
	k = strings.TrimPrefix(k, r.prefix)
	if r.opts.separator != "" {
		k = strings.TrimPrefix(k, r.opts.separator)
	}
	return strings.ToLower(k)
}

// CastRules implements the [CastRuleProvider] interface.
func (r Env) CastRules() []CastRule {
	return slices.Clone(r.opts.casts)
}
