// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package shell provides a registrar whose commands run a command line through
// the system shell. The typed arguments are appended to the command line.
package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/matt-FFFFFF/switchboard/internal/binder"
	"github.com/matt-FFFFFF/switchboard/internal/command"
	"github.com/matt-FFFFFF/switchboard/internal/ctxlog"
	"github.com/matt-FFFFFF/switchboard/internal/registrars"
	"github.com/matt-FFFFFF/switchboard/internal/registrartypes"
)

// TypeName is the registrar type name used in manifests.
const TypeName = "shell"

const (
	goosWindows          = "windows"
	commandSwitchWindows = "/C"
	commandSwitchUnix    = "-c"
	winSystem32          = "System32"
	cmdExe               = "cmd.exe"
	binSh                = "/bin/sh"
	winSystemRootEnv     = "SystemRoot"
)

// ErrEmptyCommandLine is returned when a command has no command line.
var ErrEmptyCommandLine = errors.New("command line is empty")

// PathKey is the binder key of the shell executable. When nothing is bound the
// platform default is used.
var PathKey = binder.Classified[string]("shell.path")

// Type creates shell registrars.
var Type = command.RegistrarTypeFunc{
	TypeName: TypeName,
	Factory: func(_ context.Context, deps command.Deps) (command.Registrar, error) {
		return New(deps), nil
	},
}

func init() {
	registrartypes.Register(Type)
}

// Command is the command object handled by the shell registrar.
type Command struct {
	Description      string
	CommandLine      string
	WorkingDirectory string
	Env              map[string]string
	Permission       string
}

var _ command.Registrar = (*Registrar)(nil)

// Registrar runs commands through the shell.
type Registrar struct {
	aliases command.AliasRegisterer
	binder  *binder.Binder
	cmds    *registrars.Store[Command]
}

// New creates a shell registrar.
func New(deps command.Deps) *Registrar {
	return &Registrar{
		aliases: deps.Aliases,
		binder:  deps.Binder,
		cmds:    registrars.NewStore[Command](),
	}
}

// TypeName implements command.Registrar.
func (r *Registrar) TypeName() string {
	return TypeName
}

// Register implements command.Registrar. cmd must be a Command.
func (r *Registrar) Register(
	ctx context.Context, owner command.PluginID, cmd any, primary string, secondary ...string,
) (*command.Mapping, error) {
	c, err := command.As[Command](cmd)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(c.CommandLine) == "" {
		return nil, fmt.Errorf("%w: %s", ErrEmptyCommandLine, primary)
	}

	m, err := r.aliases.RegisterAlias(ctx, r, owner, primary, secondary...)
	if err != nil {
		return nil, err
	}

	r.cmds.Put(primary, c)

	return m, nil
}

// Process implements command.Registrar. Each line of combined output is sent
// to the channel. A non-zero exit status is a command error.
func (r *Registrar) Process(
	ctx context.Context, cause command.Cause, primaryAlias, arguments string,
) (command.Result, error) {
	c, err := r.cmds.Lookup(primaryAlias)
	if err != nil {
		return command.Empty(), err
	}

	if err := registrars.CheckPermission(cause, c.Permission); err != nil {
		return command.Empty(), err
	}

	line := c.CommandLine
	if arguments != "" {
		line += " " + arguments
	}

	shell, switchArg := r.shell(ctx)
	log := ctxlog.Logger(ctx).With("registrar", TypeName, "alias", primaryAlias)
	log.Debug("running command", "shell", shell, "command_line", line, "cwd", c.WorkingDirectory)

	cmd := exec.CommandContext(ctx, shell, switchArg, line)
	cmd.Dir = c.WorkingDirectory

	cmd.Env = os.Environ()
	for k, v := range c.Env {
		cmd.Env = append(cmd.Env, k+"="+v)
	}

	out := &bytes.Buffer{}
	cmd.Stdout = out
	cmd.Stderr = out

	runErr := cmd.Run()

	for l := range strings.Lines(out.String()) {
		cause.Send(strings.TrimRight(l, "\r\n"))
	}

	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			log.Debug("command exited with error", "exit_code", exitErr.ExitCode())

			return command.Empty(), command.WrapError(
				fmt.Sprintf("%s exited with code %d", primaryAlias, exitErr.ExitCode()), runErr)
		}

		return command.Empty(), command.WrapError(fmt.Sprintf("could not run %s", primaryAlias), runErr)
	}

	return command.Success(), nil
}

// shell returns the shell executable and its command switch.
func (r *Registrar) shell(ctx context.Context) (string, string) {
	switchArg := commandSwitchUnix
	if runtime.GOOS == goosWindows {
		switchArg = commandSwitchWindows
	}

	if r.binder != nil {
		path, ok, err := binder.Resolve(ctx, r.binder, PathKey)
		if err != nil {
			ctxlog.Warn(ctx, "could not resolve shell path, using default", "error", err)
		}

		if ok && err == nil && path != "" {
			return path, switchArg
		}
	}

	return defaultShell(), switchArg
}

func defaultShell() string {
	if runtime.GOOS == goosWindows {
		systemRoot := os.Getenv(winSystemRootEnv)
		if systemRoot == "" {
			systemRoot = `C:\Windows`
		}

		return fmt.Sprintf(`%s\%s\%s`, systemRoot, winSystem32, cmdExe)
	}

	return binSh
}

// Suggestions implements command.Registrar. Shell commands offer no completions.
func (r *Registrar) Suggestions(context.Context, command.Cause, string, string) ([]string, error) {
	return []string{}, nil
}

// Help implements command.Registrar.
func (r *Registrar) Help(_ context.Context, _ command.Cause, primaryAlias string) (command.HelpText, bool) {
	c, ok := r.cmds.Get(primaryAlias)
	if !ok {
		return command.HelpText{}, false
	}

	short := c.Description
	if short == "" {
		short = "runs " + c.CommandLine
	}

	return command.HelpText{Short: short, Usage: "[arguments]"}, true
}
