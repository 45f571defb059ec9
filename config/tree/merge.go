// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package tree

import "errors"

// ErrEmptyMerge is returned when Merge is called without any trees.
var ErrEmptyMerge = errors.New("tree: no trees to merge")

// Merge deep merges the given trees from left to right into a new Tree.
//
// When a key is present in both sides and both values are mappings, the
// mappings are merged recursively. In every other case the right hand
// value replaces the left hand value entirely, even when it is nil or of
// a different kind. Sequences are never merged element wise.
func Merge(trees ...Tree) (Tree, error) {
	if len(trees) == 0 {
		return nil, ErrEmptyMerge
	}

	acc := cloneMap(trees[0])
	for _, t := range trees[1:] {
		acc = mergeMaps(acc, t)
	}
	return Tree(acc), nil
}

func mergeMaps(left, right map[string]any) map[string]any {
	out := make(map[string]any, len(left)+len(right))
	for k, v := range left {
		out[k] = cloneValue(v)
	}
	for k, rv := range right {
		lm, lok := AsMap(out[k])
		rm, rok := AsMap(rv)
		if lok && rok {
			out[k] = mergeMaps(lm, rm)
			continue
		}
		out[k] = cloneValue(rv)
	}
	return out
}
