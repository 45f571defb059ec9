// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package configtmpl provides template functions for use in config source templates.
package configtmpl

import (
	"os"
	"reflect"
	"strings"
	"text/template"
)

// Funcs returns the template functions available to templated config files.
// The environment is snapshotted from environ once per call.
//
//	env KEY            the value of the environment variable KEY or ""
//	default DEF VALUE  DEF if VALUE is nil or its type's zero value
func Funcs(environ func() []string) template.FuncMap {
	if environ == nil {
		environ = os.Environ
	}
	env := mapEnv(environ())
	return template.FuncMap{
		"env": func(key string) string {
			return env[key]
		},
		"default": Default,
	}
}

func mapEnv(keyValues []string) map[string]string {
	m := make(map[string]string, len(keyValues))
	for _, s := range keyValues {
		key, value, ok := strings.Cut(s, "=")
		if !ok {
			continue
		}
		m[key] = value
	}
	return m
}

// Default returns the provided def value if v is either nil or the zero value for its type.
func Default(def, v any) any {
	if v == nil {
		return def
	}
	val := reflect.ValueOf(v)
	if val.IsZero() {
		return def
	}
	return v
}
