// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"context"
	"errors"
	"io/fs"

	"github.com/z5labs/typedconfig/config/tree"
)

// OptionalReader represents a Reader whose underlying source may not exist.
type OptionalReader struct {
	r Reader
}

// Optional wraps r so that a source which does not exist is read as an
// empty tree. Every other failure, including malformed content, is still
// returned.
func Optional(r Reader) OptionalReader {
	return OptionalReader{r: r}
}

// ReadValues implements the [Reader] interface.
func (o OptionalReader) ReadValues(ctx context.Context) (tree.Tree, error) {
	t, err := o.r.ReadValues(ctx)
	if err == nil {
		return t, nil
	}

	var serr SourceUnreadableError
	if errors.As(err, &serr) && errors.Is(serr.Cause, fs.ErrNotExist) {
		return tree.Tree{}, nil
	}
	return nil, err
}

// CastRules implements the [CastRuleProvider] interface by
// forwarding the rules of the wrapped reader.
func (o OptionalReader) CastRules() []CastRule {
	p, ok := o.r.(CastRuleProvider)
	if !ok {
		return nil
	}
	return p.CastRules()
}
