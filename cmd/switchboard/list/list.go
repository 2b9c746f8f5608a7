// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package list implements the list command, which shows the registered commands.
package list

import (
	"context"

	"github.com/matt-FFFFFF/switchboard/cmd/cmdstate"
	"github.com/matt-FFFFFF/switchboard/internal/command"
	"github.com/matt-FFFFFF/switchboard/internal/manager"
	"github.com/matt-FFFFFF/switchboard/internal/output"
	"github.com/urfave/cli/v3"
)

const pluginsFlag = "plugins"

// ListCmd shows the registered commands or the plugins that own them.
var ListCmd = &cli.Command{
	Name:  "list",
	Usage: "List registered commands",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:        pluginsFlag,
			Aliases:     []string{"p"},
			Usage:       "List plugins and how many commands each owns",
			Value:       false,
			DefaultText: "false",
			OnlyOnce:    true,
		},
	},
	Action: func(ctx context.Context, cmd *cli.Command) error {
		st, err := cmdstate.Build(ctx, nil)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		defer st.Close()

		mappings := st.Manager.Mappings()

		if cmd.Bool(pluginsFlag) {
			output.WritePlugins(cmd.Writer, mappings)
			return nil
		}

		output.WriteMappings(cmd.Writer, mappings, Describe(ctx, st.Manager))

		return nil
	},
}

// Describe returns the short help of each mapping, as given by its registrar.
func Describe(ctx context.Context, m *manager.Manager) output.DescribeFunc {
	cause := command.NewCause(command.SystemSubject{}, nil)

	return func(mapping *command.Mapping) string {
		help, ok := m.Help(ctx, cause, mapping.PrimaryAlias())
		if !ok {
			return ""
		}

		return help.Short
	}
}
