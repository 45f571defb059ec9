// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"encoding"
	"errors"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
)

var errCastNotApplicable = errors.New("cast rule not applicable")

// CastRule converts a config value into the type of the field it is
// being mapped onto. Rules are tried in order and the first rule which
// applies to a (value type, field type) pair is used.
type CastRule struct {
	hook mapstructure.DecodeHookFuncType
}

func (c CastRule) apply(from, to reflect.Value) (any, bool, error) {
	if c.hook == nil {
		return nil, false, nil
	}
	v, err := mapstructure.DecodeHookExec(c.hook, from, to)
	if errors.Is(err, errCastNotApplicable) {
		return nil, false, nil
	}
	if err != nil {
		return nil, true, err
	}
	return v, true, nil
}

// Cast returns a CastRule which applies f to values of type From
// when they are mapped onto fields of exactly type To.
func Cast[From, To any](f func(From) (To, error)) CastRule {
	toType := reflect.TypeOf((*To)(nil)).Elem()
	return CastRule{
		hook: func(_ reflect.Type, t reflect.Type, data any) (any, error) {
			from, ok := data.(From)
			if !ok || t != toType {
				return nil, errCastNotApplicable
			}
			return f(from)
		},
	}
}

var textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

// TextUnmarshalerCast casts strings onto any field type whose pointer
// implements [encoding.TextUnmarshaler] e.g. time.Time or net.IP.
func TextUnmarshalerCast() CastRule {
	return CastRule{
		hook: func(f reflect.Type, t reflect.Type, data any) (any, error) {
			if f.Kind() != reflect.String || !reflect.PointerTo(t).Implements(textUnmarshalerType) {
				return nil, errCastNotApplicable
			}
			result := reflect.New(t)
			u := result.Interface().(encoding.TextUnmarshaler)
			err := u.UnmarshalText([]byte(reflect.ValueOf(data).String()))
			if err != nil {
				return nil, err
			}
			return result.Elem().Interface(), nil
		},
	}
}

var durationType = reflect.TypeOf(time.Duration(0))

// DurationCast casts strings, parsed by [time.ParseDuration], and integral
// numbers, read as nanoseconds, onto [time.Duration] fields.
func DurationCast() CastRule {
	return CastRule{
		hook: func(f reflect.Type, t reflect.Type, data any) (any, error) {
			if t != durationType {
				return nil, errCastNotApplicable
			}

			v := reflect.ValueOf(data)
			switch f.Kind() {
			case reflect.String:
				return time.ParseDuration(v.String())
			case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
				return time.Duration(v.Int()), nil
			case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
				err := checkNumber(v, durationType)
				if err != nil {
					return nil, err
				}
				return time.Duration(v.Uint()), nil
			case reflect.Float32, reflect.Float64:
				err := checkNumber(v, durationType)
				if err != nil {
					return nil, err
				}
				return time.Duration(int64(v.Float())), nil
			default:
				return nil, errCastNotApplicable
			}
		},
	}
}

// ParseStringCast casts strings onto bool and numeric fields using the
// parsers of [strconv]. It is intended for sources, like environment
// variables and INI files, which only produce strings. [time.Duration]
// fields are left to [DurationCast].
func ParseStringCast() CastRule {
	return CastRule{
		hook: func(f reflect.Type, t reflect.Type, data any) (any, error) {
			if f.Kind() != reflect.String || t == durationType {
				return nil, errCastNotApplicable
			}

			s := strings.TrimSpace(reflect.ValueOf(data).String())
			out := reflect.New(t).Elem()
			switch t.Kind() {
			case reflect.Bool:
				b, err := strconv.ParseBool(s)
				if err != nil {
					return nil, err
				}
				out.SetBool(b)
			case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
				n, err := strconv.ParseInt(s, 0, t.Bits())
				if err != nil {
					return nil, err
				}
				out.SetInt(n)
			case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
				n, err := strconv.ParseUint(s, 0, t.Bits())
				if err != nil {
					return nil, err
				}
				out.SetUint(n)
			case reflect.Float32, reflect.Float64:
				n, err := strconv.ParseFloat(s, t.Bits())
				if err != nil {
					return nil, err
				}
				out.SetFloat(n)
			default:
				return nil, errCastNotApplicable
			}
			return out.Interface(), nil
		},
	}
}

// StringToSliceCast splits strings on sep when they are mapped onto slice
// fields. The elements are then mapped onto the slice's element type like
// any other value. An empty string is an empty slice.
func StringToSliceCast(sep string) CastRule {
	return CastRule{
		hook: func(f reflect.Type, t reflect.Type, data any) (any, error) {
			if f.Kind() != reflect.String || t.Kind() != reflect.Slice {
				return nil, errCastNotApplicable
			}

			s := reflect.ValueOf(data).String()
			if s == "" {
				return []any{}, nil
			}
			parts := strings.Split(s, sep)
			out := make([]any, len(parts))
			for i, part := range parts {
				out[i] = strings.TrimSpace(part)
			}
			return out, nil
		},
	}
}

// builtinCasts are always tried after the rules of a reader.
func builtinCasts() []CastRule {
	return []CastRule{
		TextUnmarshalerCast(),
		DurationCast(),
	}
}

// defaultTagCasts are used to map the string values of default struct tags.
func defaultTagCasts() []CastRule {
	return []CastRule{
		ParseStringCast(),
		StringToSliceCast(","),
	}
}
