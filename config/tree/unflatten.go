// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package tree

import (
	"sort"
	"strings"
)

// Unflatten builds a nested Tree from a flat key space whose keys encode
// nesting by joining path segments with sep e.g. "db__host" with sep "__"
// becomes {"db": {"host": ...}}.
//
// Keys are processed in ascending lexicographic order. When two keys resolve
// to the same location the key processed last wins, and a scalar found where
// a mapping is needed is replaced by a new mapping. As a result "a" is always
// shadowed by "a__b" because it sorts first. An empty sep performs no splitting.
func Unflatten(flat map[string]any, sep string) Tree {
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]any, len(flat))
	for _, k := range keys {
		setFlat(out, k, flat[k], sep)
	}
	return Tree(out)
}

func setFlat(m map[string]any, k string, v any, sep string) {
	if sep == "" {
		m[k] = cloneValue(v)
		return
	}

	head, rest, found := strings.Cut(k, sep)
	if !found {
		m[head] = cloneValue(v)
		return
	}

	sub, ok := AsMap(m[head])
	if !ok {
		sub = make(map[string]any)
		m[head] = sub
	}
	setFlat(sub, rest, v, sep)
}

// Flatten is the inverse of Unflatten. Every leaf of t, including sequences
// and empty mappings, is keyed by its path segments joined with sep.
func Flatten(t Tree, sep string) map[string]any {
	out := make(map[string]any)
	flattenInto(out, "", t, sep)
	return out
}

func flattenInto(out map[string]any, prefix string, m map[string]any, sep string) {
	for k, v := range m {
		path := k
		if prefix != "" {
			path = prefix + sep + k
		}

		sub, ok := AsMap(v)
		if !ok || len(sub) == 0 {
			out[path] = cloneValue(v)
			continue
		}
		flattenInto(out, path, sub, sep)
	}
}
