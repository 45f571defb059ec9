// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package configfx provides typed config values to a go.uber.org/fx application.
//
// Config is read once, while the fx graph is being built, so a missing or
// malformed source fails the application before it starts.
package configfx

import (
	"context"
	"errors"

	"github.com/z5labs/typedconfig/config"

	"go.uber.org/fx"
)

// ErrEmptyName is returned when a Module is given an empty name.
var ErrEmptyName = errors.New("configfx: module name must not be empty")

// Provide provides a T to the fx graph by mapping the values of r,
// selected by the dotted subPath, onto it.
func Provide[T any](r config.Reader, subPath string) fx.Option {
	return fx.Provide(func() (T, error) {
		return config.ReadConfig[T](context.Background(), r, subPath)
	})
}

// Module supplies r as the [config.Reader] of the application inside a
// named fx module. Typed sections of r are then provided with [Section],
// either as opts or anywhere else in the application.
func Module(name string, r config.Reader, opts ...fx.Option) fx.Option {
	if name == "" {
		return fx.Error(ErrEmptyName)
	}

	moduleOpts := make([]fx.Option, 0, len(opts)+1)
	moduleOpts = append(moduleOpts, fx.Provide(func() config.Reader {
		return r
	}))
	moduleOpts = append(moduleOpts, opts...)
	return fx.Module(name, moduleOpts...)
}

// Section provides a T to the fx graph by mapping the sub tree at subPath
// of the [config.Reader] in the graph onto it.
func Section[T any](subPath string) fx.Option {
	return fx.Provide(func(r config.Reader) (T, error) {
		return config.ReadConfig[T](context.Background(), r, subPath)
	})
}
