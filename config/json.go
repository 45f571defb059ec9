// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"context"
	"encoding/json"

	"github.com/z5labs/typedconfig/config/tree"
)

// Json represents a Reader where its underlying format is JSON.
type Json struct {
	src fileSource
}

// FromJsonFile returns a Reader which parses the JSON object
// in the file at path on every read.
func FromJsonFile(path string, opts ...FileOption) Json {
	return Json{
		src: newFileSource(path, "json", parseJson, opts),
	}
}

func parseJson(b []byte) (any, error) {
	var v any
	err := json.Unmarshal(b, &v)
	return v, err
}

// ReadValues implements the [Reader] interface.
func (r Json) ReadValues(ctx context.Context) (tree.Tree, error) {
	return r.src.read(ctx, "Json.ReadValues")
}

// CastRules implements the [CastRuleProvider] interface.
func (r Json) CastRules() []CastRule {
	return r.src.castRules()
}
