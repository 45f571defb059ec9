// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFile(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "app.yaml"), []byte("host: x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(nested, "main.go"), []byte("package main"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(nested, "conf.yaml"), 0o755))

	t.Run("will find the file", func(t *testing.T) {
		testCases := []struct {
			Name  string
			Start string
		}{
			{
				Name:  "if it is in the start directory",
				Start: root,
			},
			{
				Name:  "if it is in a parent directory",
				Start: nested,
			},
			{
				Name:  "if the start is a file",
				Start: filepath.Join(nested, "main.go"),
			},
		}

		for _, testCase := range testCases {
			t.Run(testCase.Name, func(t *testing.T) {
				path, err := FindFile("app.yaml", testCase.Start)
				if !assert.Nil(t, err) {
					return
				}
				if !assert.Equal(t, filepath.Join(root, "app.yaml"), path) {
					return
				}
			})
		}
	})

	t.Run("will return a FileNotFoundError", func(t *testing.T) {
		t.Run("if no directory contains the file", func(t *testing.T) {
			_, err := FindFile("typedconfig-find-file-test.missing", nested)

			var ferr FileNotFoundError
			if !assert.ErrorAs(t, err, &ferr) {
				return
			}
			if !assert.Equal(t, nested, ferr.Start) {
				return
			}
			if !assert.ErrorIs(t, err, fs.ErrNotExist) {
				return
			}
		})

		t.Run("if the only match is a directory", func(t *testing.T) {
			_, err := FindFile("conf.yaml", nested)
			if !assert.ErrorIs(t, err, fs.ErrNotExist) {
				return
			}
		})
	})

	t.Run("will return an error", func(t *testing.T) {
		t.Run("if the start does not exist", func(t *testing.T) {
			_, err := FindFile("app.yaml", filepath.Join(root, "missing"))
			if !assert.ErrorIs(t, err, fs.ErrNotExist) {
				return
			}
		})
	})
}

func TestForEnv(t *testing.T) {
	testCases := []struct {
		Name     string
		Path     string
		Env      string
		Expected string
	}{
		{
			Name:     "will insert the env before the extension",
			Path:     filepath.Join("conf", "app.yaml"),
			Env:      "prod",
			Expected: filepath.Join("conf", "app.prod.yaml"),
		},
		{
			Name:     "will append the env if there is no extension",
			Path:     "app",
			Env:      "dev",
			Expected: "app.dev",
		},
		{
			Name:     "will append the env to a dotfile",
			Path:     filepath.Join("conf", ".env"),
			Env:      "prod",
			Expected: filepath.Join("conf", ".env.prod"),
		},
		{
			Name:     "will insert the env before the extension of a dotfile",
			Path:     ".app.yaml",
			Env:      "dev",
			Expected: ".app.dev.yaml",
		},
		{
			Name:     "will return the path if the env is empty",
			Path:     "app.toml",
			Env:      "",
			Expected: "app.toml",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.Name, func(t *testing.T) {
			if !assert.Equal(t, testCase.Expected, ForEnv(testCase.Path, testCase.Env)) {
				return
			}
		})
	}
}
