// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"context"
	"errors"
	"testing"

	"github.com/z5labs/typedconfig/config/tree"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestChained_ReadValues(t *testing.T) {
	t.Run("will return ErrEmptyChain", func(t *testing.T) {
		t.Run("if there are no readers", func(t *testing.T) {
			r := Chain(nil)

			out, err := r.ReadValues(context.Background())
			if !assert.ErrorIs(t, err, ErrEmptyChain) {
				return
			}
			if !assert.ErrorIs(t, err, tree.ErrEmptyMerge) {
				return
			}
			if !assert.Nil(t, out) {
				return
			}
		})
	})

	t.Run("will return a ChainedReadError", func(t *testing.T) {
		t.Run("if any reader fails", func(t *testing.T) {
			readErr := errors.New("failed to read")
			called := false
			r := Chain([]Reader{
				FromMap(map[string]any{"port": 80}),
				ReaderFunc(func(ctx context.Context) (tree.Tree, error) {
					return nil, readErr
				}),
				ReaderFunc(func(ctx context.Context) (tree.Tree, error) {
					called = true
					return tree.Tree{}, nil
				}),
			})

			out, err := r.ReadValues(context.Background())

			var cerr ChainedReadError
			if !assert.ErrorAs(t, err, &cerr) {
				return
			}
			if !assert.Equal(t, 1, cerr.Index) {
				return
			}
			if !assert.ErrorIs(t, err, readErr) {
				return
			}
			if !assert.Nil(t, out) {
				return
			}
			if !assert.False(t, called) {
				return
			}
		})
	})

	t.Run("will return the context error", func(t *testing.T) {
		t.Run("if the context is cancelled", func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			r := Chain([]Reader{FromMap(map[string]any{"port": 80})})

			_, err := r.ReadValues(ctx)
			if !assert.ErrorIs(t, err, context.Canceled) {
				return
			}
		})
	})

	t.Run("will let later readers override earlier readers", func(t *testing.T) {
		testCases := []struct {
			Name     string
			Readers  []Reader
			Expected tree.Tree
		}{
			{
				Name: "if they share a scalar key",
				Readers: []Reader{
					FromMap(map[string]any{"host": "a.example", "port": 80}),
					FromMap(map[string]any{"port": 443}),
				},
				Expected: tree.Tree{"host": "a.example", "port": 443},
			},
			{
				Name: "if they share a nested mapping",
				Readers: []Reader{
					FromMap(map[string]any{"db": map[string]any{"host": "x", "port": 1}}),
					FromEnv("APP", EnvVars(map[string]string{"APP__DB__PORT": "2"})),
				},
				Expected: tree.Tree{"db": map[string]any{"host": "x", "port": "2"}},
			},
			{
				Name: "if there is a single reader",
				Readers: []Reader{
					FromMap(map[string]any{"host": "a.example"}),
				},
				Expected: tree.Tree{"host": "a.example"},
			},
		}

		for _, testCase := range testCases {
			t.Run(testCase.Name, func(t *testing.T) {
				r := Chain(testCase.Readers)

				out, err := r.ReadValues(context.Background())
				if !assert.Nil(t, err) {
					return
				}
				if diff := cmp.Diff(testCase.Expected, out); !assert.Empty(t, diff) {
					return
				}
			})
		}
	})

	t.Run("will not inherit cast rules", func(t *testing.T) {
		t.Run("from the chained readers", func(t *testing.T) {
			r := Chain(
				[]Reader{
					FromMap(map[string]any{}, Casts(ParseStringCast())),
				},
				Casts(DurationCast()),
			)

			if !assert.Len(t, r.CastRules(), 1) {
				return
			}
		})
	})
}

func TestMap_ReadValues(t *testing.T) {
	t.Run("will not observe changes to the original map", func(t *testing.T) {
		m := map[string]any{"db": map[string]any{"host": "x"}}
		r := FromMap(m)

		m["db"].(map[string]any)["host"] = "y"

		out, err := r.ReadValues(context.Background())
		if !assert.Nil(t, err) {
			return
		}
		if !assert.Equal(t, tree.Tree{"db": map[string]any{"host": "x"}}, out) {
			return
		}
	})

	t.Run("will return a new tree", func(t *testing.T) {
		t.Run("on every read", func(t *testing.T) {
			r := FromMap(map[string]any{"db": map[string]any{"host": "x"}})

			first, err := r.ReadValues(context.Background())
			if !assert.Nil(t, err) {
				return
			}
			first["db"].(map[string]any)["host"] = "y"

			second, err := r.ReadValues(context.Background())
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Equal(t, tree.Tree{"db": map[string]any{"host": "x"}}, second) {
				return
			}
		})
	})
}
