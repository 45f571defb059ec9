// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package config resolves configuration from multiple sources into a single
// nested tree and maps that tree onto typed Go values.
//
// A [Reader] produces a [tree.Tree] from one source: a JSON, YAML, TOML or
// INI file, a set of environment variables, an in-memory map or a viper
// instance. Readers are combined with [Chain], where later readers override
// earlier ones key by key, and the result is mapped onto a struct with
// [ReadConfig].
//
//	r := config.Chain([]config.Reader{
//		config.FromMap(defaults),
//		config.Optional(config.FromYamlFile("config.yaml")),
//		config.FromEnv("APP", config.Casts(config.ParseStringCast())),
//	}, config.Casts(config.ParseStringCast()))
//
//	cfg, err := config.ReadConfig[Config](ctx, r, "")
//
// Readers hold no state and read their source again on every call.
package config
