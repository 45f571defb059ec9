// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"context"
	"testing"

	"github.com/z5labs/typedconfig/config/tree"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestEnv_ReadValues(t *testing.T) {
	testCases := []struct {
		Name     string
		Prefix   string
		Vars     map[string]string
		Opts     []EnvOption
		Expected tree.Tree
	}{
		{
			Name:   "will drop variables without the prefix",
			Prefix: "APP",
			Vars: map[string]string{
				"APP__DB__HOST": "x",
				"OTHER":         "y",
			},
			Expected: tree.Tree{
				"db": map[string]any{"host": "x"},
			},
		},
		{
			Name:   "will lower case the names",
			Prefix: "APP",
			Vars: map[string]string{
				"APP__Server__PORT": "8080",
			},
			Expected: tree.Tree{
				"server": map[string]any{"port": "8080"},
			},
		},
		{
			Name:   "will keep every variable if the prefix is empty",
			Prefix: "",
			Vars: map[string]string{
				"A__B": "1",
				"C":    "2",
			},
			Expected: tree.Tree{
				"a": map[string]any{"b": "1"},
				"c": "2",
			},
		},
		{
			Name:   "will split on a custom separator",
			Prefix: "APP_",
			Vars: map[string]string{
				"APP_DB_HOST": "x",
			},
			Opts: []EnvOption{Separator("_")},
			Expected: tree.Tree{
				"db": map[string]any{"host": "x"},
			},
		},
		{
			Name:   "will keep names sharing the prefix without a separator",
			Prefix: "APP",
			Vars: map[string]string{
				"APPLE": "red",
			},
			Expected: tree.Tree{
				"le": "red",
			},
		},
		{
			Name:   "will return an empty tree if no variables match",
			Prefix: "APP",
			Vars: map[string]string{
				"OTHER": "y",
			},
			Expected: tree.Tree{},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.Name, func(t *testing.T) {
			opts := append([]EnvOption{EnvVars(testCase.Vars)}, testCase.Opts...)
			r := FromEnv(testCase.Prefix, opts...)

			out, err := r.ReadValues(context.Background())
			if !assert.Nil(t, err) {
				return
			}
			if diff := cmp.Diff(testCase.Expected, out); !assert.Empty(t, diff) {
				return
			}
		})
	}

	t.Run("will read the process environment", func(t *testing.T) {
		t.Run("if no environment is configured", func(t *testing.T) {
			t.Setenv("TYPEDCONFIG_TEST__LEVEL", "debug")

			r := FromEnv("TYPEDCONFIG_TEST")

			out, err := r.ReadValues(context.Background())
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Equal(t, tree.Tree{"level": "debug"}, out) {
				return
			}
		})
	})

	t.Run("will ignore malformed pairs", func(t *testing.T) {
		t.Run("if they have no equals sign", func(t *testing.T) {
			r := FromEnv("APP", Environ(func() []string {
				return []string{"APP__BROKEN", "APP__OK=1"}
			}))

			out, err := r.ReadValues(context.Background())
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Equal(t, tree.Tree{"ok": "1"}, out) {
				return
			}
		})
	})
}
