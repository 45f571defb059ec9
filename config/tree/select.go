// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package tree

import (
	"errors"
	"fmt"

	"github.com/z5labs/typedconfig/config/key"
)

// ErrPathNotFound is matched by every PathNotFoundError via errors.Is.
var ErrPathNotFound = errors.New("path not found")

// PathNotFoundError is returned by Select when a path segment is missing
// or when the value at a segment is not a mapping.
type PathNotFoundError struct {
	// Path is the full path that was being selected.
	Path key.Chain

	// Segment is the path up to and including the segment which could not
	// be resolved.
	Segment key.Chain
}

// Error implements the error interface.
func (e PathNotFoundError) Error() string {
	return fmt.Sprintf("config path not found: %s (failed at %s)", e.Path, e.Segment)
}

// Is implements the implicit interface used by errors.Is.
func (e PathNotFoundError) Is(target error) bool {
	return target == ErrPathNotFound
}

// Select returns a copy of the node addressed by path. The empty path
// returns t itself.
func Select(t Tree, path key.Chain) (any, error) {
	names := path.Names()
	if len(names) == 0 {
		return t, nil
	}

	var cur any = t
	for i, name := range names {
		m, ok := AsMap(cur)
		if !ok {
			return nil, PathNotFoundError{Path: path, Segment: segment(names[:i+1])}
		}
		cur, ok = m[string(name)]
		if !ok {
			return nil, PathNotFoundError{Path: path, Segment: segment(names[:i+1])}
		}
	}
	return cloneValue(cur), nil
}

func segment(names []key.Name) key.Chain {
	chain := make(key.Chain, len(names))
	for i, name := range names {
		chain[i] = name
	}
	return chain
}
