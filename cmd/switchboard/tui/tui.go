// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package tui implements the tui command, a full screen interactive console.
package tui

import (
	"bytes"
	"context"
	"fmt"

	"github.com/matt-FFFFFF/switchboard/cmd/cmdstate"
	"github.com/matt-FFFFFF/switchboard/internal/ctxlog"
	"github.com/matt-FFFFFF/switchboard/internal/tui"
	"github.com/urfave/cli/v3"
)

// TUICmd starts the Terminal User Interface (TUI).
var TUICmd = &cli.Command{
	Name:    "tui",
	Aliases: []string{"interactive"},
	Usage:   "Start the full screen Terminal User Interface (TUI)",
	Action:  actionFunc,
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	cfg, err := cmdstate.ConfigFrom(ctx)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	// Log to a buffer while the TUI owns the terminal.
	buf := new(bytes.Buffer)

	logger, err := ctxlog.NewLogger(cfg.LogFormat, buf)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	tuiCtx := ctxlog.New(ctx, logger)

	forwarder := &tui.Forwarder{}

	st, err := cmdstate.Build(tuiCtx, forwarder)
	if err != nil {
		buf.WriteTo(cmd.ErrWriter) //nolint:errcheck
		return cli.Exit(err.Error(), 1)
	}
	defer st.Close()

	runErr := tui.NewRunner(tuiCtx, st.Manager, forwarder).Run()

	buf.WriteTo(cmd.ErrWriter) //nolint:errcheck // Write any buffered log output to the command writer

	if runErr != nil {
		return cli.Exit(fmt.Sprintf("TUI execution error: %s", runErr.Error()), 1)
	}

	return nil
}
