// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/z5labs/typedconfig/config/key"
	"github.com/z5labs/typedconfig/config/tree"
)

// ErrEmptyChain is returned when a Chained reader has no readers to read from.
// It wraps [tree.ErrEmptyMerge].
var ErrEmptyChain = fmt.Errorf("config: chained reader has no readers: %w", tree.ErrEmptyMerge)

var errNotMapping = errors.New("top level value is not a mapping")

// SourceUnreadableError occurs when a config source could not be opened or read.
type SourceUnreadableError struct {
	Source string
	Cause  error
}

// Error implements the error interface.
func (e SourceUnreadableError) Error() string {
	return fmt.Sprintf("failed to read config source %s: %s", e.Source, e.Cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e SourceUnreadableError) Unwrap() error {
	return e.Cause
}

// ParseError occurs if a config source contains content which is invalid
// for its format or whose top level value is not a mapping.
type ParseError struct {
	Source string
	Format string
	Cause  error
}

// Error implements the error interface.
func (e ParseError) Error() string {
	return fmt.Sprintf("invalid %s in config source %s: %s", e.Format, e.Source, e.Cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e ParseError) Unwrap() error {
	return e.Cause
}

// ChainedReadError occurs when one of the readers of a Chained reader fails.
type ChainedReadError struct {
	Index int
	Cause error
}

// Error implements the error interface.
func (e ChainedReadError) Error() string {
	return fmt.Sprintf("failed to read config from chained reader %d: %s", e.Index, e.Cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e ChainedReadError) Unwrap() error {
	return e.Cause
}

// MissingFieldError occurs when a required field has no value in the config tree.
// A field is required unless it is a pointer or carries a default tag.
type MissingFieldError struct {
	Path key.Chain
}

// Error implements the error interface.
func (e MissingFieldError) Error() string {
	return fmt.Sprintf("missing required config field: %s", e.Path)
}

// TypeMismatchError occurs when a config value can not be converted into the
// type of the field it is being mapped onto, even after applying cast rules.
type TypeMismatchError struct {
	Path  key.Chain
	From  reflect.Type
	To    reflect.Type
	Cause error
}

// Error implements the error interface.
func (e TypeMismatchError) Error() string {
	from := "nil"
	if e.From != nil {
		from = e.From.String()
	}
	path := e.Path.Key()
	if path == "" {
		path = "<root>"
	}
	if e.Cause == nil {
		return fmt.Sprintf("config field %s: can not map %s onto %s", path, from, e.To)
	}
	return fmt.Sprintf("config field %s: can not map %s onto %s: %s", path, from, e.To, e.Cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e TypeMismatchError) Unwrap() error {
	return e.Cause
}
