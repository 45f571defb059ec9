// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/z5labs/typedconfig/config/configtmpl"
)

type templateOptions struct {
	leftDelim  string
	rightDelim string
	funcs      template.FuncMap
	environ    func() []string
}

// TemplateOption configures how config files are rendered by [RenderTemplate].
type TemplateOption func(*templateOptions)

// TemplateFunc registers the given function, f, for use in the config
// template via the given name.
func TemplateFunc(name string, f any) TemplateOption {
	return func(to *templateOptions) {
		to.funcs[name] = f
	}
}

// TemplateDelims sets the action delimiters to the specified strings.
// Nested template definitions will inherit the settings. An empty delimiter
// stands for the corresponding default: {{ or }}.
func TemplateDelims(left, right string) TemplateOption {
	return func(to *templateOptions) {
		to.leftDelim = left
		to.rightDelim = right
	}
}

// TemplateEnviron sets the environment snapshot used by the "env" template
// function. It defaults to os.Environ.
func TemplateEnviron(environ func() []string) TemplateOption {
	return func(to *templateOptions) {
		to.environ = environ
	}
}

// RenderTemplate renders the content of config files as a [text/template]
// before it is parsed. Besides the functions registered with [TemplateFunc],
// templates may use the functions of [configtmpl.Funcs].
func RenderTemplate(opts ...TemplateOption) FileOption {
	to := &templateOptions{
		funcs: make(template.FuncMap),
	}
	for _, opt := range opts {
		opt(to)
	}
	return fileOptionFunc(func(fo *fileOptions) {
		fo.template = to
	})
}

// TextTemplateParseError occurs when the config template fails to be parsed.
type TextTemplateParseError struct {
	Cause error
}

// Error implements the error interface.
func (e TextTemplateParseError) Error() string {
	return fmt.Sprintf("failed to parse config template: %s", e.Cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e TextTemplateParseError) Unwrap() error {
	return e.Cause
}

// TextTemplateExecError occurs when a template fails to execute. Most
// likely cause is using template functions returning an error or panicing.
type TextTemplateExecError struct {
	Cause error
}

// Error implements the error interface.
func (e TextTemplateExecError) Error() string {
	return fmt.Sprintf("failed to exec config template: %s", e.Cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e TextTemplateExecError) Unwrap() error {
	return e.Cause
}

func (to *templateOptions) render(name string, b []byte) ([]byte, error) {
	funcs := configtmpl.Funcs(to.environ)
	for k, f := range to.funcs {
		funcs[k] = f
	}

	tmpl, err := template.New(name).
		Delims(to.leftDelim, to.rightDelim).
		Funcs(funcs).
		Option("missingkey=error").
		Parse(string(b))
	if err != nil {
		return nil, TextTemplateParseError{Cause: err}
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, struct{}{})
	if err != nil {
		return nil, TextTemplateExecError{Cause: err}
	}
	return buf.Bytes(), nil
}
