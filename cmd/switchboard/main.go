// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main contains the switchboard command-line interface (CLI).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/matt-FFFFFF/switchboard"
	"github.com/matt-FFFFFF/switchboard/cmd/cmdstate"
	"github.com/matt-FFFFFF/switchboard/cmd/switchboard/list"
	"github.com/matt-FFFFFF/switchboard/cmd/switchboard/registrars"
	"github.com/matt-FFFFFF/switchboard/cmd/switchboard/repl"
	"github.com/matt-FFFFFF/switchboard/cmd/switchboard/run"
	"github.com/matt-FFFFFF/switchboard/cmd/switchboard/suggest"
	"github.com/matt-FFFFFF/switchboard/cmd/switchboard/tui"
	"github.com/matt-FFFFFF/switchboard/internal/ctxlog"
	"github.com/matt-FFFFFF/switchboard/internal/signalbroker"
	"github.com/urfave/cli/v3"
)

// rootCmd is the root command for the CLI.
var rootCmd = &cli.Command{
	Commands: []*cli.Command{
		run.RunCmd,
		suggest.SuggestCmd,
		list.ListCmd,
		registrars.RegistrarsCmd,
		repl.ReplCmd,
		tui.TUICmd,
	},
	Flags:     cmdstate.Flags,
	Before:    cmdstate.Before,
	Writer:    os.Stdout,
	ErrWriter: os.Stderr,
	Name:      "switchboard",
	Description: `Switchboard routes typed commands to the plugins that registered them.
Plugins declare commands in YAML, TOML or HCL manifests. Each command claims a
primary alias and optional secondary aliases; the first plugin to claim an alias
owns it. Commands are handled by registrars such as reply, shell and builtin.

Manifest sources use Hashicorp's go-getter syntax, which allows for fetching
files from various sources. See https://github.com/hashicorp/go-getter.

Send SIGHUP to rebuild every registrar and replay the registered commands.`,
	Usage:     "switchboard -f plugins.yaml repl",
	Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
	Authors: []any{
		"Matt White (matt-FFFFFF)",
	},
	EnableShellCompletion: true,
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)
	defer cancel()

	sigCh := signalbroker.New(ctx)

	go signalbroker.Watch(ctx, sigCh, cancel, cmdstate.Reload)

	rootCmd.Version = fmt.Sprintf("%s (commit: %s)", switchboard.Version, switchboard.Commit)

	err := rootCmd.Run(ctx, os.Args) // Err is handled by cli framework

	// Check if the context was cancelled (e.g., due to signals)
	if ctx.Err() != nil {
		ctxlog.Logger(ctx).Error("command terminated due to cancellation", "error", ctx.Err())
		os.Exit(1)
	}

	if err != nil {
		ctxlog.Logger(ctx).Error("command execution failed", "error", err)
		os.Exit(1)
	}

	ctxlog.Logger(ctx).Info("command completed successfully")
}
