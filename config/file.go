// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"context"
	"io"
	"slices"

	"github.com/z5labs/typedconfig/config/tree"
	"github.com/z5labs/typedconfig/internal/try"

	"go.uber.org/zap"
)

// fileSource holds everything shared by the file backed readers. Only the
// format name and parse function differ between them.
type fileSource struct {
	path   string
	format string
	parse  func([]byte) (any, error)
	opts   fileOptions
}

func newFileSource(path, format string, parse func([]byte) (any, error), opts []FileOption) fileSource {
	fo := fileOptions{
		commonOptions: defaultCommonOptions(),
		open:          osOpen,
	}
	for _, opt := range opts {
		opt.applyFile(&fo)
	}
	return fileSource{
		path:   path,
		format: format,
		parse:  parse,
		opts:   fo,
	}
}

func (src fileSource) castRules() []CastRule {
	return slices.Clone(src.opts.casts)
}

func (src fileSource) read(ctx context.Context, spanName string) (_ tree.Tree, err error) {
	_, span := startSpan(ctx, spanName, src.path)
	defer func() { endSpan(span, err) }()

	b, err := src.readAll()
	if err != nil {
		return nil, err
	}

	if src.opts.template != nil {
		b, err = src.opts.template.render(src.path, b)
		if err != nil {
			return nil, err
		}
	}

	t, err := src.decode(b)
	if err != nil {
		return nil, err
	}

	src.opts.logger.Debug(
		"read config values",
		zap.String("source", src.path),
		zap.String("format", src.format),
		zap.Int("keys", len(t)),
	)
	return t, nil
}

func (src fileSource) decode(b []byte) (tree.Tree, error) {
	v, err := src.parse(b)
	if err != nil {
		return nil, ParseError{Source: src.path, Format: src.format, Cause: err}
	}

	t, ok := tree.FromValue(v)
	if !ok {
		return nil, ParseError{Source: src.path, Format: src.format, Cause: errNotMapping}
	}
	return t, nil
}

func (src fileSource) readAll() (_ []byte, err error) {
	f, err := src.opts.open(src.path)
	if err != nil {
		return nil, SourceUnreadableError{Source: src.path, Cause: err}
	}
	defer try.Close(&err, f)

	b, err := io.ReadAll(f)
	if err != nil {
		return nil, SourceUnreadableError{Source: src.path, Cause: err}
	}
	return b, nil
}
