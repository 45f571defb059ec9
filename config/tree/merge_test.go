// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package tree

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestMerge(t *testing.T) {
	t.Run("will return an error", func(t *testing.T) {
		t.Run("if no trees are given", func(t *testing.T) {
			merged, err := Merge()
			if !assert.ErrorIs(t, err, ErrEmptyMerge) {
				return
			}
			if !assert.Nil(t, merged) {
				return
			}
		})
	})

	t.Run("will return the same tree", func(t *testing.T) {
		t.Run("if only one tree is given", func(t *testing.T) {
			in := Tree{
				"host": "localhost",
				"db": map[string]any{
					"port":  5432,
					"hosts": []any{"a", "b"},
				},
			}

			merged, err := Merge(in)
			if !assert.Nil(t, err) {
				return
			}
			if diff := cmp.Diff(in, merged); !assert.Empty(t, diff) {
				return
			}
		})
	})

	t.Run("will let the later tree win", func(t *testing.T) {
		testCases := []struct {
			Name     string
			Trees    []Tree
			Expected Tree
		}{
			{
				Name: "if both values are scalars",
				Trees: []Tree{
					{"host": "a.example", "port": 80},
					{"port": 443},
				},
				Expected: Tree{"host": "a.example", "port": 443},
			},
			{
				Name: "if the later value is nil",
				Trees: []Tree{
					{"port": 80},
					{"port": nil},
				},
				Expected: Tree{"port": nil},
			},
			{
				Name: "if a mapping is replaced by a scalar",
				Trees: []Tree{
					{"db": map[string]any{"host": "x", "port": 1}},
					{"db": "postgres://x"},
				},
				Expected: Tree{"db": "postgres://x"},
			},
			{
				Name: "if a scalar is replaced by a mapping",
				Trees: []Tree{
					{"db": "postgres://x"},
					{"db": map[string]any{"host": "x"}},
				},
				Expected: Tree{"db": map[string]any{"host": "x"}},
			},
			{
				Name: "if both values are sequences",
				Trees: []Tree{
					{"hosts": []any{"a", "b", "c"}},
					{"hosts": []any{"d"}},
				},
				Expected: Tree{"hosts": []any{"d"}},
			},
		}

		for _, testCase := range testCases {
			t.Run(testCase.Name, func(t *testing.T) {
				merged, err := Merge(testCase.Trees...)
				if !assert.Nil(t, err) {
					return
				}
				if diff := cmp.Diff(testCase.Expected, merged); !assert.Empty(t, diff) {
					return
				}
			})
		}
	})

	t.Run("will recursively merge nested mappings", func(t *testing.T) {
		left := Tree{
			"db": map[string]any{
				"host": "localhost",
				"pool": map[string]any{"min": 1, "max": 10},
			},
			"name": "left",
		}
		right := Tree{
			"db": Tree{
				"pool": map[string]any{"max": 20},
				"user": "admin",
			},
		}

		merged, err := Merge(left, right)
		if !assert.Nil(t, err) {
			return
		}

		expected := Tree{
			"db": map[string]any{
				"host": "localhost",
				"pool": map[string]any{"min": 1, "max": 20},
				"user": "admin",
			},
			"name": "left",
		}
		if diff := cmp.Diff(expected, merged); !assert.Empty(t, diff) {
			return
		}
	})

	t.Run("will produce the same result regardless of grouping", func(t *testing.T) {
		t1 := Tree{"a": map[string]any{"x": 1, "y": 2}, "b": 1}
		t2 := Tree{"a": map[string]any{"y": 3}, "c": []any{1}}
		t3 := Tree{"a": map[string]any{"z": 4}, "b": map[string]any{"q": true}}

		all, err := Merge(t1, t2, t3)
		if !assert.Nil(t, err) {
			return
		}

		first, err := Merge(t1, t2)
		if !assert.Nil(t, err) {
			return
		}
		grouped, err := Merge(first, t3)
		if !assert.Nil(t, err) {
			return
		}

		if diff := cmp.Diff(all, grouped); !assert.Empty(t, diff) {
			return
		}
	})

	t.Run("will not modify its inputs", func(t *testing.T) {
		left := Tree{"db": map[string]any{"host": "a"}}
		right := Tree{"db": map[string]any{"port": 1}}

		merged, err := Merge(left, right)
		if !assert.Nil(t, err) {
			return
		}

		db, _ := AsMap(merged["db"])
		db["host"] = "changed"

		if !assert.Equal(t, Tree{"db": map[string]any{"host": "a"}}, left) {
			return
		}
		if !assert.Equal(t, Tree{"db": map[string]any{"port": 1}}, right) {
			return
		}
	})
}
