// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package run implements the run command, which dispatches a single command line.
package run

import (
	"context"
	"strings"

	"github.com/matt-FFFFFF/switchboard/cmd/cmdstate"
	"github.com/matt-FFFFFF/switchboard/internal/command"
	"github.com/matt-FFFFFF/switchboard/internal/ctxlog"
	"github.com/matt-FFFFFF/switchboard/internal/output"
	"github.com/urfave/cli/v3"
)

const cliExitStr = ""

// RunCmd is the command that dispatches its arguments as one command line.
var RunCmd = &cli.Command{
	Name:  "run",
	Usage: "Run a single command",
	Description: `Run a single command line against the registered commands.
The arguments are joined with spaces: the first word is the alias and the rest
is handed to the command that owns it.

Example: switchboard -f plugins.yaml run greet world`,
	ArgsUsage: "<alias> [arguments...]",
	Action:    actionFunc,
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	logger := ctxlog.Logger(ctx).With("command", cmd.Name)
	logger.Debug("Running run command")

	raw := strings.Join(cmd.Args().Slice(), " ")
	if strings.TrimSpace(raw) == "" {
		logger.Error("Please specify the command to run, for example: switchboard run help")
		return cli.Exit(cliExitStr, 1)
	}

	st, err := cmdstate.Build(ctx, nil)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer st.Close()

	res, err := st.Manager.Process(ctx, command.SystemSubject{}, command.NewWriterChannel(cmd.Writer), raw)
	output.WriteResult(cmd.Writer, res, err)

	switch {
	case err != nil:
		logger.Debug("command failed", "input", raw, "error", err)
		return cli.Exit(cliExitStr, 1)
	case res.Unknown:
		return cli.Exit(cliExitStr, 1)
	}

	return nil
}
