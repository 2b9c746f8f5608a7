// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package repl implements the repl command, an interactive line based console.
package repl

import (
	"context"

	"github.com/matt-FFFFFF/switchboard/cmd/cmdstate"
	"github.com/matt-FFFFFF/switchboard/internal/console"
	"github.com/urfave/cli/v3"
)

// ReplCmd starts an interactive console with history and tab completion.
var ReplCmd = &cli.Command{
	Name:    "repl",
	Aliases: []string{"console"},
	Usage:   "Start an interactive console",
	Action: func(ctx context.Context, cmd *cli.Command) error {
		st, err := cmdstate.Build(ctx, nil)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		defer st.Close()

		return console.New(st.Manager, cmd.Writer).Run(ctx)
	},
}
