// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package key provides types for strongly typed keys in key value pairs.
//
// A [Chain] doubles as a dotted path into a nested config tree e.g.
// "dispatching.dispatcher" is the chain {"dispatching", "dispatcher"}.
package key

import (
	"strings"
)

// Separator joins the names of a [Chain] in its string form.
const Separator = "."

// Keyer is a common interface all value key types must implement.
type Keyer interface {
	Key() string
}

// Chain represents nested keys. The empty Chain addresses the root.
type Chain []Keyer

// Parse splits a dotted path into a Chain of [Name]s.
// The empty string yields the empty Chain.
func Parse(path string) Chain {
	if path == "" {
		return nil
	}
	parts := strings.Split(path, Separator)
	chain := make(Chain, len(parts))
	for i, part := range parts {
		chain[i] = Name(part)
	}
	return chain
}

// Key implements the [Keyer] interface.
func (k Chain) Key() string {
	ss := make([]string, len(k))
	for i := 0; i < len(k); i++ {
		ss[i] = k[i].Key()
	}
	return strings.Join(ss, Separator)
}

// String implements the [fmt.Stringer] interface.
func (k Chain) String() string {
	return k.Key()
}

// Append returns a new Chain with ks added to the end. The receiver
// is never modified so a Chain may be safely shared between branches.
func (k Chain) Append(ks ...Keyer) Chain {
	chain := make(Chain, 0, len(k)+len(ks))
	chain = append(chain, k...)
	return append(chain, ks...)
}

// Names flattens any nested Chains into their individual [Name]s.
func (k Chain) Names() []Name {
	names := make([]Name, 0, len(k))
	for _, keyer := range k {
		switch x := keyer.(type) {
		case Chain:
			names = append(names, x.Names()...)
		case Name:
			names = append(names, x)
		default:
			names = append(names, Name(x.Key()))
		}
	}
	return names
}

// Name represents a single key. Name can be used other keys.
type Name string

// Key implements the [Keyer] interface.
func (k Name) Key() string {
	return string(k)
}
