// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"context"

	"github.com/z5labs/typedconfig/config"
	"github.com/z5labs/typedconfig/config/key"
	"github.com/z5labs/typedconfig/config/tree"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

func newResolveCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Merge config sources and print the resulting tree",
		Long: `Merge config sources and print the resulting tree.

Sources are read and merged in the order: json, yaml, toml, ini and then
environment variables. Multiple files of the same kind are merged in the
order they are given. Later sources override earlier ones.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			logger, err := newLogger(v.GetString("log-level"), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer logger.Sync()

			shutdown, err := initTracing(v.GetBool("trace"), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() {
				serr := shutdown(context.Background())
				if err == nil {
					err = serr
				}
			}()

			ctx, span := otel.Tracer("github.com/z5labs/typedconfig/cmd/typedconfig").Start(cmd.Context(), "resolve")
			defer span.End()

			val, err := resolve(ctx, v, logger)
			if err != nil {
				logger.Error("failed to resolve config", zap.Error(err))
				return err
			}
			return writeValue(cmd.OutOrStdout(), v.GetString("format"), val)
		},
	}

	flags := cmd.Flags()
	flags.StringSlice("json", nil, "JSON config file, may be repeated.")
	flags.StringSlice("yaml", nil, "YAML config file, may be repeated.")
	flags.StringSlice("toml", nil, "TOML config file, may be repeated.")
	flags.StringSlice("ini", nil, "INI config file, may be repeated.")
	flags.String("ini-section", "", "Section of the INI files to read. Empty reads every section.")
	flags.String("env-prefix", "", "Read environment variables starting with this prefix.")
	flags.String("env-separator", config.DefaultSeparator, "Separator of nesting levels in environment variable names.")
	flags.String("path", "", "Dotted path of the sub tree to print.")
	flags.String("format", formatJson, "Output format: json, yaml or toml.")
	flags.Bool("flat", false, "Print the tree as dotted keys.")
	flags.Bool("optional", false, "Treat config files which do not exist as empty.")

	return cmd
}

func resolve(ctx context.Context, v *viper.Viper, logger *zap.Logger) (any, error) {
	r := config.Chain(readers(v, logger), config.Logger(logger))

	t, err := r.ReadValues(ctx)
	if err != nil {
		return nil, err
	}

	val, err := tree.Select(t, key.Parse(v.GetString("path")))
	if err != nil {
		return nil, err
	}
	if !v.GetBool("flat") {
		return val, nil
	}
	if m, ok := tree.AsMap(val); ok {
		return tree.Flatten(tree.Tree(m), key.Separator), nil
	}
	return val, nil
}

func readers(v *viper.Viper, logger *zap.Logger) []config.Reader {
	optional := v.GetBool("optional")
	file := func(r config.Reader) config.Reader {
		if optional {
			return config.Optional(r)
		}
		return r
	}

	var rs []config.Reader
	for _, path := range v.GetStringSlice("json") {
		rs = append(rs, file(config.FromJsonFile(path, config.Logger(logger))))
	}
	for _, path := range v.GetStringSlice("yaml") {
		rs = append(rs, file(config.FromYamlFile(path, config.Logger(logger))))
	}
	for _, path := range v.GetStringSlice("toml") {
		rs = append(rs, file(config.FromTomlFile(path, config.Logger(logger))))
	}
	for _, path := range v.GetStringSlice("ini") {
		rs = append(rs, file(config.FromIniFile(path, v.GetString("ini-section"), config.Logger(logger))))
	}
	if v.IsSet("env-prefix") {
		rs = append(rs, config.FromEnv(
			v.GetString("env-prefix"),
			config.Separator(v.GetString("env-separator")),
			config.Logger(logger),
		))
	}
	return rs
}
