// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"context"
	"slices"
	"strconv"

	"github.com/z5labs/typedconfig/config/tree"

	"go.uber.org/zap"
)

// Chained represents a Reader which merges the values of other readers.
type Chained struct {
	readers []Reader
	opts    chainOptions
}

// Chain returns a Reader which reads every reader in order and deep merges
// their trees, as [tree.Merge] does. Subsequent readers override previous
// readers. Only the cast rules given to Chain itself are used by
// [ReadConfig], the rules of the chained readers are not inherited.
func Chain(readers []Reader, opts ...ChainOption) Chained {
	co := chainOptions{
		commonOptions: defaultCommonOptions(),
	}
	for _, opt := range opts {
		opt.applyChain(&co)
	}
	return Chained{
		readers: slices.Clone(readers),
		opts:    co,
	}
}

// ReadValues implements the [Reader] interface. It fails with [ErrEmptyChain]
// if there are no readers and with a [ChainedReadError] as soon as any
// reader fails.
func (r Chained) ReadValues(ctx context.Context) (_ tree.Tree, err error) {
	spanCtx, span := startSpan(ctx, "Chained.ReadValues", "chain:"+strconv.Itoa(len(r.readers)))
	defer func() { endSpan(span, err) }()

	if len(r.readers) == 0 {
		return nil, ErrEmptyChain
	}

	trees := make([]tree.Tree, 0, len(r.readers))
	for i, reader := range r.readers {
		if err := spanCtx.Err(); err != nil {
			return nil, err
		}

		t, err := reader.ReadValues(spanCtx)
		if err != nil {
			return nil, ChainedReadError{Index: i, Cause: err}
		}
		trees = append(trees, t)
	}

	merged, err := tree.Merge(trees...)
	if err != nil {
		return nil, err
	}

	r.opts.logger.Debug(
		"merged config values",
		zap.Int("readers", len(r.readers)),
		zap.Int("keys", len(merged)),
	)
	return merged, nil
}

// CastRules implements the [CastRuleProvider] interface.
func (r Chained) CastRules() []CastRule {
	return slices.Clone(r.opts.casts)
}
