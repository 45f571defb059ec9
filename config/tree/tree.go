// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package tree implements the untyped, nested key value structure which
// every config source is resolved into before being mapped onto a typed value.
//
// A node of a Tree is either a scalar (string, bool, number, time.Time or nil),
// a sequence ([]any) or a mapping (map[string]any). Every operation in this
// package returns a new tree and never modifies its inputs.
package tree

import (
	"fmt"
	"reflect"
)

// Tree is the root mapping of a nested config structure.
type Tree map[string]any

// AsMap reports whether v is a mapping node and returns it as a plain map.
func AsMap(v any) (map[string]any, bool) {
	switch x := v.(type) {
	case map[string]any:
		return x, true
	case Tree:
		return map[string]any(x), true
	default:
		return nil, false
	}
}

// Clone returns a deep copy of t.
func Clone(t Tree) Tree {
	if t == nil {
		return nil
	}
	return Tree(cloneMap(t))
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	if m, ok := AsMap(v); ok {
		return cloneMap(m)
	}
	if s, ok := v.([]any); ok {
		out := make([]any, len(s))
		for i, x := range s {
			out[i] = cloneValue(x)
		}
		return out
	}
	return v
}

// Normalize converts the output of a parser into the canonical node shapes
// of a Tree. Maps of any key type become map[string]any, with keys formatted
// by [fmt.Sprint], and slices of any element type become []any. Scalars are
// returned unchanged.
func Normalize(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[k] = Normalize(val)
		}
		return out
	case Tree:
		return Normalize(map[string]any(x))
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = Normalize(val)
		}
		return out
	case []byte:
		return x
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[fmt.Sprint(iter.Key().Interface())] = Normalize(iter.Value().Interface())
		}
		return out
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = Normalize(rv.Index(i).Interface())
		}
		return out
	default:
		return v
	}
}

// FromValue normalizes v and returns it as a Tree. A nil value is an
// empty Tree. Any other non-mapping value is reported as not ok.
func FromValue(v any) (Tree, bool) {
	if v == nil {
		return Tree{}, true
	}
	m, ok := AsMap(Normalize(v))
	if !ok {
		return nil, false
	}
	return Tree(m), true
}
