// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"context"

	"github.com/z5labs/typedconfig/config/key"
	"github.com/z5labs/typedconfig/config/tree"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Reader represents a source of config values. Every call to ReadValues
// reads the underlying source again, nothing is cached between calls.
type Reader interface {
	ReadValues(context.Context) (tree.Tree, error)
}

// ReaderFunc is a functional implementation of the [Reader] interface.
type ReaderFunc func(context.Context) (tree.Tree, error)

// ReadValues implements the [Reader] interface.
func (f ReaderFunc) ReadValues(ctx context.Context) (tree.Tree, error) {
	return f(ctx)
}

// CastRuleProvider is implemented by readers which carry a cast rule set.
type CastRuleProvider interface {
	CastRules() []CastRule
}

// ReadConfig reads the values from r, selects the sub tree addressed by
// the dotted subPath, and maps it onto a new T. An empty subPath maps
// the whole tree. If r is a [CastRuleProvider] its rules are used
// while mapping.
func ReadConfig[T any](ctx context.Context, r Reader, subPath string) (T, error) {
	var zero T

	t, err := r.ReadValues(ctx)
	if err != nil {
		return zero, err
	}

	path := key.Parse(subPath)
	v, err := tree.Select(t, path)
	if err != nil {
		return zero, err
	}

	var casts []CastRule
	if p, ok := r.(CastRuleProvider); ok {
		casts = p.CastRules()
	}
	return decodeAt[T](path, v, casts)
}

const tracerName = "github.com/z5labs/typedconfig/config"

func startSpan(ctx context.Context, name, source string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, name, trace.WithAttributes(
		attribute.String("config.source", source),
	))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
