// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileNotFoundError occurs when FindFile reaches the filesystem root
// without finding the file.
type FileNotFoundError struct {
	Name  string
	Start string
}

// Error implements the error interface.
func (e FileNotFoundError) Error() string {
	return fmt.Sprintf("config file %s not found in %s or any parent directory", e.Name, e.Start)
}

// Is reports fs.ErrNotExist as the kind of this error.
func (e FileNotFoundError) Is(target error) bool {
	return target == fs.ErrNotExist
}

// FindFile searches for a file named name in start and then every parent
// of start, returning the path of the first match. An empty start searches
// from the working directory and a start naming a file searches from the
// directory containing it.
func FindFile(name, start string) (string, error) {
	if start == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		start = wd
	}

	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(dir)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		dir = filepath.Dir(dir)
	}

	for {
		candidate := filepath.Join(dir, name)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", FileNotFoundError{Name: name, Start: start}
		}
		dir = parent
	}
}

// ForEnv returns the environment specific variant of the config file at
// path e.g. ForEnv("conf/app.yaml", "prod") is "conf/app.prod.yaml".
// An empty env returns path unchanged.
func ForEnv(path, env string) string {
	if env == "" {
		return path
	}
	ext := filepath.Ext(path)
	if ext == filepath.Base(path) {
		// a dotfile, like ".env", has no extension
		ext = ""
	}
	return strings.TrimSuffix(path, ext) + "." + env + ext
}
