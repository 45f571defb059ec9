// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"context"
	"strings"

	"github.com/z5labs/typedconfig/config/key"
	"github.com/z5labs/typedconfig/config/tree"

	"gopkg.in/ini.v1"
)

// Ini represents a Reader where its underlying format is INI.
//
// Only section names are addressed by dots, so the sections "app" and
// "app.db" of a file read with section "app" produce the tree
// {..."app" keys..., "db": {..."app.db" keys...}}. Keys inside a section
// are kept as written, "server.port" stays a single key. Keys of the
// DEFAULT section are inherited by every selected section, key names are
// case insensitive and a "#" or ";" after a value is part of the value.
type Ini struct {
	src     fileSource
	section string
}

// FromIniFile returns a Reader which reads the given section, and its
// dotted sub sections, of the INI file at path. An empty section reads
// every section of the file.
func FromIniFile(path, section string, opts ...FileOption) Ini {
	return Ini{
		src:     newFileSource(path, "ini", parseIni(section), opts),
		section: section,
	}
}

func parseIni(section string) func([]byte) (any, error) {
	return func(b []byte) (any, error) {
		f, err := ini.LoadSources(ini.LoadOptions{
			InsensitiveKeys:     true,
			IgnoreInlineComment: true,
		}, b)
		if err != nil {
			return nil, err
		}

		defaults := f.Section(ini.DefaultSection).KeysHash()
		sections := make(map[string]any)
		for _, s := range f.Sections() {
			name := s.Name()
			if name == ini.DefaultSection || !inSection(name, section) {
				continue
			}
			values := make(map[string]any, len(defaults))
			for k, v := range defaults {
				values[k] = v
			}
			for k, v := range s.KeysHash() {
				values[k] = v
			}
			sections[name] = values
		}
		return tree.Unflatten(sections, key.Separator), nil
	}
}

func inSection(name, section string) bool {
	if section == "" || name == section {
		return true
	}
	return strings.HasPrefix(name, section+key.Separator)
}

// ReadValues implements the [Reader] interface. A PathNotFoundError
// is returned if the file has no section with the configured name.
func (r Ini) ReadValues(ctx context.Context) (tree.Tree, error) {
	t, err := r.src.read(ctx, "Ini.ReadValues")
	if err != nil {
		return nil, err
	}
	if r.section == "" {
		return t, nil
	}

	path := key.Parse(r.section)
	v, err := tree.Select(t, path)
	if err != nil {
		return nil, err
	}
	m, ok := tree.AsMap(v)
	if !ok {
		return nil, tree.PathNotFoundError{Path: path, Segment: path}
	}
	return tree.Tree(m), nil
}

// CastRules implements the [CastRuleProvider] interface.
func (r Ini) CastRules() []CastRule {
	return r.src.castRules()
}
