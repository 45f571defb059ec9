// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		Name     string
		In       any
		Expected any
	}{
		{
			Name:     "scalar",
			In:       "hello",
			Expected: "hello",
		},
		{
			Name:     "nil",
			In:       nil,
			Expected: nil,
		},
		{
			Name: "map with non string keys",
			In: map[any]any{
				1:      "one",
				"two":  map[any]any{true: "yes"},
				"list": []string{"a", "b"},
			},
			Expected: map[string]any{
				"1":    "one",
				"two":  map[string]any{"true": "yes"},
				"list": []any{"a", "b"},
			},
		},
		{
			Name: "slice of maps",
			In: []map[string]any{
				{"name": "a"},
			},
			Expected: []any{
				map[string]any{"name": "a"},
			},
		},
		{
			Name:     "nested tree",
			In:       Tree{"a": Tree{"b": 1}},
			Expected: map[string]any{"a": map[string]any{"b": 1}},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.Name, func(t *testing.T) {
			out := Normalize(testCase.In)
			if !assert.Equal(t, testCase.Expected, out) {
				return
			}
		})
	}
}

func TestFromValue(t *testing.T) {
	t.Run("will return an empty tree", func(t *testing.T) {
		t.Run("if the value is nil", func(t *testing.T) {
			out, ok := FromValue(nil)
			if !assert.True(t, ok) {
				return
			}
			if !assert.Equal(t, Tree{}, out) {
				return
			}
		})
	})

	t.Run("will not be ok", func(t *testing.T) {
		t.Run("if the value is not a mapping", func(t *testing.T) {
			_, ok := FromValue([]any{1, 2})
			if !assert.False(t, ok) {
				return
			}
		})
	})
}

func TestClone(t *testing.T) {
	t.Run("will deep copy nested nodes", func(t *testing.T) {
		in := Tree{"a": map[string]any{"b": []any{map[string]any{"c": 1}}}}

		out := Clone(in)
		out["a"].(map[string]any)["b"].([]any)[0].(map[string]any)["c"] = 2

		if !assert.Equal(t, 1, in["a"].(map[string]any)["b"].([]any)[0].(map[string]any)["c"]) {
			return
		}
	})
}
