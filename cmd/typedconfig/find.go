// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"fmt"

	"github.com/z5labs/typedconfig/config"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newFindCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find NAME",
		Short: "Print the path of the nearest config file named NAME",
		Long: `Print the path of the nearest config file named NAME.

The start directory and then each of its parents are searched. With --env
the environment specific variant of NAME is searched for instead e.g.
"app.yaml" with --env prod searches for "app.prod.yaml".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := config.ForEnv(args[0], v.GetString("env"))

			path, err := config.FindFile(name, v.GetString("start"))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}

	flags := cmd.Flags()
	flags.String("start", "", "Directory to start searching from. Defaults to the working directory.")
	flags.String("env", "", "Environment name inserted before the file extension.")

	return cmd
}
