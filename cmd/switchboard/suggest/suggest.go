// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package suggest implements the suggest command, which prints completions for partial input.
package suggest

import (
	"context"
	"fmt"
	"strings"

	"github.com/matt-FFFFFF/switchboard/cmd/cmdstate"
	"github.com/matt-FFFFFF/switchboard/internal/command"
	"github.com/urfave/cli/v3"
)

// SuggestCmd prints one completion per line for partial input.
var SuggestCmd = &cli.Command{
	Name:  "suggest",
	Usage: "Print completions for partial input",
	Description: `Print completions for partial input, one per line.
The arguments are joined with spaces. While the alias is being typed every
matching alias is printed; quote the input with a trailing space to complete
the arguments of a command instead.

Example: switchboard suggest "help "`,
	ArgsUsage: "<partial input>",
	Action: func(ctx context.Context, cmd *cli.Command) error {
		st, err := cmdstate.Build(ctx, nil)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		defer st.Close()

		raw := strings.Join(cmd.Args().Slice(), " ")

		suggestions, err := st.Manager.Suggest(ctx, command.SystemSubject{}, nil, raw)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}

		for _, s := range suggestions {
			fmt.Fprintln(cmd.Writer, s) //nolint:errcheck
		}

		return nil
	},
}
