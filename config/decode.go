// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"errors"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/z5labs/typedconfig/config/key"
	"github.com/z5labs/typedconfig/config/tree"
	"github.com/z5labs/typedconfig/internal/try"

	"github.com/mitchellh/mapstructure"
)

// ErrInvalidTarget is returned by [Unmarshal] if its target is not a non-nil pointer.
var ErrInvalidTarget = errors.New("config: unmarshal target must be a non-nil pointer")

var (
	errNilValue   = errors.New("null value for non-optional field")
	errFractional = errors.New("number has a fractional part")
	errOverflow   = errors.New("number does not fit the field type")
	errLength     = errors.New("sequence is longer than array")
)

// TagName is the struct tag used to name the config key a field is mapped from.
// Besides the key name the tag accepts the "squash" option for embedding
// the fields of a struct into its parent. A tag of "-" skips the field.
const TagName = "config"

// DefaultTagName is the struct tag holding a string form of the value a
// field takes when its key is missing. Fields with a default are never required.
const DefaultTagName = "default"

// Decode maps the config value v onto a new T.
//
// Struct fields are matched to mapping keys by their [TagName] tag or
// by name, first exactly and then ignoring case. Pointer fields are
// optional and stay nil when their key is missing. All other fields are
// required unless they carry a [DefaultTagName] tag. The given cast rules are
// tried, in order, for every value before it is mapped onto its field.
func Decode[T any](v any, casts ...CastRule) (T, error) {
	return decodeAt[T](nil, v, casts)
}

// Unmarshal is like [Decode] but maps v onto the value target points to.
// target is only modified if mapping succeeds.
func Unmarshal(v any, target any, casts ...CastRule) (err error) {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return ErrInvalidTarget
	}
	defer try.Recover(&err)

	out := reflect.New(rv.Elem().Type())
	d := newDecoder(casts)
	err = d.decode(nil, v, out.Elem())
	if err != nil {
		return err
	}
	rv.Elem().Set(out.Elem())
	return nil
}

func decodeAt[T any](base key.Chain, v any, casts []CastRule) (_ T, err error) {
	defer try.Recover(&err)

	var zero T
	out := reflect.New(reflect.TypeOf((*T)(nil)).Elem())
	d := newDecoder(casts)
	err = d.decode(base, v, out.Elem())
	if err != nil {
		return zero, err
	}
	return *out.Interface().(*T), nil
}

type decoder struct {
	casts []CastRule
}

func newDecoder(casts []CastRule) decoder {
	all := make([]CastRule, 0, len(casts)+2)
	all = append(all, casts...)
	all = append(all, builtinCasts()...)
	return decoder{casts: all}
}

func (d decoder) withDefaultTagCasts() decoder {
	return decoder{casts: append(slices.Clone(d.casts), defaultTagCasts()...)}
}

func (d decoder) decode(path key.Chain, data any, out reflect.Value) error {
	if data == nil {
		return d.decodeValue(path, nil, out)
	}

	from := reflect.ValueOf(data)
	for _, rule := range d.casts {
		v, applied, err := rule.apply(from, out)
		if err != nil {
			return TypeMismatchError{Path: path, From: from.Type(), To: out.Type(), Cause: err}
		}
		if !applied {
			continue
		}

		cv := reflect.ValueOf(v)
		if v != nil && cv.Type().AssignableTo(out.Type()) {
			out.Set(cv)
			return nil
		}
		// The cast only changed the shape of the value e.g. a string
		// split into a sequence, so map it without casting it again.
		return d.decodeValue(path, v, out)
	}
	return d.decodeValue(path, data, out)
}

func (d decoder) decodeValue(path key.Chain, data any, out reflect.Value) error {
	if data == nil {
		switch out.Kind() {
		case reflect.Pointer, reflect.Interface:
			out.SetZero()
			return nil
		}
		return TypeMismatchError{Path: path, To: out.Type(), Cause: errNilValue}
	}

	switch out.Kind() {
	case reflect.Pointer:
		elem := reflect.New(out.Type().Elem())
		err := d.decode(path, data, elem.Elem())
		if err != nil {
			return err
		}
		out.Set(elem)
		return nil
	case reflect.Interface:
		dv := reflect.ValueOf(data)
		if !dv.Type().AssignableTo(out.Type()) {
			return TypeMismatchError{Path: path, From: dv.Type(), To: out.Type()}
		}
		out.Set(dv)
		return nil
	case reflect.Struct:
		return d.decodeStruct(path, data, out)
	case reflect.Map:
		return d.decodeMap(path, data, out)
	case reflect.Slice, reflect.Array:
		return d.decodeSequence(path, data, out)
	default:
		return decodeLeaf(path, data, out)
	}
}

func (d decoder) decodeStruct(path key.Chain, data any, out reflect.Value) error {
	m, ok := tree.AsMap(data)
	if !ok {
		// Some formats, like TOML, decode directly into structs e.g. time.Time.
		dv := reflect.ValueOf(data)
		if dv.Type().AssignableTo(out.Type()) {
			out.Set(dv)
			return nil
		}
		return TypeMismatchError{Path: path, From: dv.Type(), To: out.Type()}
	}

	for _, f := range structFields(out.Type()) {
		fv := out.FieldByIndex(f.index)
		fpath := path.Append(key.Name(f.name))

		val, found := lookup(m, f.name)
		if found {
			err := d.decode(fpath, val, fv)
			if err != nil {
				return err
			}
			continue
		}

		switch {
		case f.hasDefault:
			err := d.withDefaultTagCasts().decode(fpath, f.defaultValue, fv)
			if err != nil {
				return err
			}
		case fv.Kind() == reflect.Pointer:
		default:
			return MissingFieldError{Path: fpath}
		}
	}
	return nil
}

func (d decoder) decodeMap(path key.Chain, data any, out reflect.Value) error {
	m, ok := tree.AsMap(data)
	if !ok {
		return TypeMismatchError{Path: path, From: reflect.TypeOf(data), To: out.Type()}
	}

	mt := out.Type()
	result := reflect.MakeMapWithSize(mt, len(m))
	for _, k := range sortedKeys(m) {
		kpath := path.Append(key.Name(k))

		kv := reflect.New(mt.Key()).Elem()
		err := d.decode(kpath, k, kv)
		if err != nil {
			return err
		}

		vv := reflect.New(mt.Elem()).Elem()
		err = d.decode(kpath, m[k], vv)
		if err != nil {
			return err
		}
		result.SetMapIndex(kv, vv)
	}
	out.Set(result)
	return nil
}

func (d decoder) decodeSequence(path key.Chain, data any, out reflect.Value) error {
	dv := reflect.ValueOf(data)
	if dv.Kind() != reflect.Slice && dv.Kind() != reflect.Array {
		return TypeMismatchError{Path: path, From: dv.Type(), To: out.Type()}
	}

	n := dv.Len()
	var result reflect.Value
	switch out.Kind() {
	case reflect.Array:
		if n > out.Len() {
			return TypeMismatchError{Path: path, From: dv.Type(), To: out.Type(), Cause: errLength}
		}
		result = reflect.New(out.Type()).Elem()
	default:
		result = reflect.MakeSlice(out.Type(), n, n)
	}

	for i := 0; i < n; i++ {
		err := d.decode(path.Append(key.Name(strconv.Itoa(i))), dv.Index(i).Interface(), result.Index(i))
		if err != nil {
			return err
		}
	}
	out.Set(result)
	return nil
}

func decodeLeaf(path key.Chain, data any, out reflect.Value) error {
	dv := reflect.ValueOf(data)
	if isNumber(dv.Kind()) && isNumber(out.Kind()) {
		err := checkNumber(dv, out.Type())
		if err != nil {
			return TypeMismatchError{Path: path, From: dv.Type(), To: out.Type(), Cause: err}
		}
	}

	result := reflect.New(out.Type())
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  result.Interface(),
		TagName: TagName,
	})
	if err != nil {
		return err
	}
	err = dec.Decode(data)
	if err != nil {
		return TypeMismatchError{Path: path, From: dv.Type(), To: out.Type(), Cause: err}
	}
	out.Set(result.Elem())
	return nil
}

// checkNumber returns an error if the number held by v can not be
// represented by the numeric type to without losing more than float
// precision. Floats only fit integer types when they are integral.
func checkNumber(v reflect.Value, to reflect.Type) error {
	out := reflect.Zero(to)
	switch {
	case isFloat(to.Kind()):
		if isFloat(v.Kind()) && out.OverflowFloat(v.Float()) {
			return errOverflow
		}
		return nil
	case isSigned(to.Kind()):
		switch {
		case isSigned(v.Kind()):
			if out.OverflowInt(v.Int()) {
				return errOverflow
			}
		case isUnsigned(v.Kind()):
			if v.Uint() > math.MaxInt64 || out.OverflowInt(int64(v.Uint())) {
				return errOverflow
			}
		default:
			f := v.Float()
			if math.IsNaN(f) || f < -(1<<63) || f >= 1<<63 {
				return errOverflow
			}
			if f != math.Trunc(f) {
				return errFractional
			}
			if out.OverflowInt(int64(f)) {
				return errOverflow
			}
		}
	case isUnsigned(to.Kind()):
		switch {
		case isSigned(v.Kind()):
			if v.Int() < 0 || out.OverflowUint(uint64(v.Int())) {
				return errOverflow
			}
		case isUnsigned(v.Kind()):
			if out.OverflowUint(v.Uint()) {
				return errOverflow
			}
		default:
			f := v.Float()
			if math.IsNaN(f) || f < 0 || f >= 1<<64 {
				return errOverflow
			}
			if f != math.Trunc(f) {
				return errFractional
			}
			if out.OverflowUint(uint64(f)) {
				return errOverflow
			}
		}
	}
	return nil
}

func isSigned(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isUnsigned(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

func isFloat(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

func isNumber(k reflect.Kind) bool {
	return isSigned(k) || isUnsigned(k) || isFloat(k)
}

type structField struct {
	index        []int
	name         string
	hasDefault   bool
	defaultValue string
}

func structFields(t reflect.Type) []structField {
	var fields []structField
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)

		tag := f.Tag.Get(TagName)
		if tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")

		squash := opts == "squash" || (f.Anonymous && name == "")
		if squash && f.Type.Kind() == reflect.Struct {
			for _, sf := range structFields(f.Type) {
				sf.index = append([]int{i}, sf.index...)
				fields = append(fields, sf)
			}
			continue
		}
		if !f.IsExported() {
			continue
		}

		if name == "" {
			name = f.Name
		}
		def, hasDefault := f.Tag.Lookup(DefaultTagName)
		fields = append(fields, structField{
			index:        []int{i},
			name:         name,
			hasDefault:   hasDefault,
			defaultValue: def,
		})
	}
	return fields
}

func lookup(m map[string]any, name string) (any, bool) {
	if v, ok := m[name]; ok {
		return v, true
	}
	for _, k := range sortedKeys(m) {
		if strings.EqualFold(k, name) {
			return m[k], true
		}
	}
	return nil, false
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
