// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"io"
	"io/fs"
	"os"

	"go.uber.org/zap"
)

type commonOptions struct {
	casts  []CastRule
	logger *zap.Logger
}

func defaultCommonOptions() commonOptions {
	return commonOptions{
		logger: zap.NewNop(),
	}
}

// Option configures readers which only support the options common to all readers.
type Option interface {
	apply(*commonOptions)
}

// CommonOption are options common to every reader in this package.
type CommonOption interface {
	Option
	FileOption
	EnvOption
	ChainOption
}

type commonOptionFunc func(*commonOptions)

func (f commonOptionFunc) apply(co *commonOptions) {
	f(co)
}

func (f commonOptionFunc) applyFile(fo *fileOptions) {
	f(&fo.commonOptions)
}

func (f commonOptionFunc) applyEnv(eo *envOptions) {
	f(&eo.commonOptions)
}

func (f commonOptionFunc) applyChain(co *chainOptions) {
	f(&co.commonOptions)
}

// Casts appends rules to the reader's cast rule set. The rules are
// forwarded to the typed mapper by [ReadConfig] in the order given.
func Casts(rules ...CastRule) CommonOption {
	return commonOptionFunc(func(co *commonOptions) {
		co.casts = append(co.casts, rules...)
	})
}

// Logger configures the logger a reader reports its reads to.
func Logger(logger *zap.Logger) CommonOption {
	return commonOptionFunc(func(co *commonOptions) {
		if logger == nil {
			logger = zap.NewNop()
		}
		co.logger = logger
	})
}

// OpenFunc opens a config file for reading.
type OpenFunc func(path string) (io.ReadCloser, error)

func osOpen(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

type fileOptions struct {
	commonOptions

	open     OpenFunc
	template *templateOptions
}

// FileOption configures readers of file based config sources.
type FileOption interface {
	applyFile(*fileOptions)
}

type fileOptionFunc func(*fileOptions)

func (f fileOptionFunc) applyFile(fo *fileOptions) {
	f(fo)
}

// OpenWith replaces the function used to open config files, which
// defaults to [os.Open].
func OpenWith(open OpenFunc) FileOption {
	return fileOptionFunc(func(fo *fileOptions) {
		fo.open = open
	})
}

// OpenFS opens config files from the given [fs.FS].
func OpenFS(fsys fs.FS) FileOption {
	return OpenWith(func(path string) (io.ReadCloser, error) {
		return fsys.Open(path)
	})
}

type envOptions struct {
	commonOptions

	separator string
	environ   func() []string
}

// EnvOption configures an [Env] reader.
type EnvOption interface {
	applyEnv(*envOptions)
}

type envOptionFunc func(*envOptions)

func (f envOptionFunc) applyEnv(eo *envOptions) {
	f(eo)
}

// Separator sets the string which separates nesting levels in
// environment variable names. The default is "__".
func Separator(sep string) EnvOption {
	return envOptionFunc(func(eo *envOptions) {
		eo.separator = sep
	})
}

// Environ sets the function used to snapshot the environment.
// It must return "key=value" pairs like [os.Environ], which is the default.
func Environ(environ func() []string) EnvOption {
	return envOptionFunc(func(eo *envOptions) {
		eo.environ = environ
	})
}

// EnvVars uses the given map as the environment snapshot.
func EnvVars(vars map[string]string) EnvOption {
	return Environ(func() []string {
		pairs := make([]string, 0, len(vars))
		for k, v := range vars {
			pairs = append(pairs, k+"="+v)
		}
		return pairs
	})
}

type chainOptions struct {
	commonOptions
}

// ChainOption configures a [Chained] reader.
type ChainOption interface {
	applyChain(*chainOptions)
}
