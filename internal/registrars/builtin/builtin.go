// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package builtin provides the registrar of the switchboard system plugin:
// help, commands, plugins and reload. Its mappings are registered when the
// registrar is created and cannot be removed by plugin.
package builtin

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/matt-FFFFFF/switchboard/internal/binder"
	"github.com/matt-FFFFFF/switchboard/internal/command"
	"github.com/matt-FFFFFF/switchboard/internal/registrars"
	"github.com/matt-FFFFFF/switchboard/internal/registrartypes"
)

// TypeName is the registrar type name.
const TypeName = "builtin"

// Owner is the plugin that owns the builtin commands.
const Owner command.PluginID = "switchboard"

// PermissionReload is required to run the reload command.
const PermissionReload = "switchboard.reload"

// ErrNoHost is returned when no Host is bound.
var ErrNoHost = errors.New("no command host bound")

// Host is what the builtin commands operate on. The command manager implements it.
type Host interface {
	Mappings() []*command.Mapping
	Plugins() []command.PluginID
	Help(ctx context.Context, cause command.Cause, alias string) (command.HelpText, bool)
	Reload(ctx context.Context) error
}

// HostKey is the binder key the registrar resolves its Host from.
var HostKey = binder.KeyOf[Host]()

// Command names one of the builtin commands. It is also the command object
// accepted by Register to add extra aliases for a builtin.
type Command string

// Builtin commands.
const (
	Help     Command = "help"
	Commands Command = "commands"
	Plugins  Command = "plugins"
	Reload   Command = "reload"
)

type definition struct {
	secondary []string
	short     string
	usage     string
}

var definitions = map[Command]definition{
	Help:     {secondary: []string{"?"}, short: "Show help for a command", usage: "[alias]"},
	Commands: {secondary: []string{"cmds"}, short: "List registered commands"},
	Plugins:  {short: "List plugins owning commands"},
	Reload:   {short: "Recreate registrars and replay registrations"},
}

// Type creates builtin registrars.
var Type = command.RegistrarTypeFunc{
	TypeName: TypeName,
	Factory: func(ctx context.Context, deps command.Deps) (command.Registrar, error) {
		return New(ctx, deps)
	},
}

func init() {
	registrartypes.Register(Type)
}

var (
	_ command.Registrar     = (*Registrar)(nil)
	_ command.RemovalPolicy = (*Registrar)(nil)
)

// Registrar serves the builtin commands.
type Registrar struct {
	aliases command.AliasRegisterer
	binder  *binder.Binder
	cmds    *registrars.Store[Command]
}

// New creates the registrar and registers every builtin command under its
// default aliases.
func New(ctx context.Context, deps command.Deps) (*Registrar, error) {
	r := &Registrar{
		aliases: deps.Aliases,
		binder:  deps.Binder,
		cmds:    registrars.NewStore[Command](),
	}

	names := []Command{Help, Commands, Plugins, Reload}
	for _, name := range names {
		if _, err := r.Register(ctx, Owner, name, string(name), definitions[name].secondary...); err != nil {
			return nil, fmt.Errorf("registering builtin %q: %w", name, err)
		}
	}

	return r, nil
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

	if _, ok := definitions[c]; !ok {
		return nil, fmt.Errorf("%w: unknown builtin %q", command.ErrUnsupportedCommand, c)
	}

	m, err := r.aliases.RegisterAlias(ctx, r, owner, primary, secondary...)
	if err != nil {
		return nil, err
	}

	r.cmds.Put(primary, c)

	return m, nil
}

// Removable implements command.RemovalPolicy. Builtin mappings are never
// removed by plugin.
func (r *Registrar) Removable(*command.Mapping) bool {
	return false
}

func (r *Registrar) host(ctx context.Context) (Host, error) {
	if r.binder == nil {
		return nil, ErrNoHost
	}

	h, ok, err := binder.Resolve(ctx, r.binder, HostKey)
	if err != nil {
		return nil, err
	}

	if !ok || h == nil {
		return nil, ErrNoHost
	}

	return h, nil
}

// Process implements command.Registrar.
func (r *Registrar) Process(
	ctx context.Context, cause command.Cause, primaryAlias, arguments string,
) (command.Result, error) {
	c, err := r.cmds.Lookup(primaryAlias)
	if err != nil {
		return command.Empty(), err
	}

	h, err := r.host(ctx)
	if err != nil {
		return command.Empty(), command.WrapError("builtin commands are unavailable", err)
	}

	switch c {
	case Help:
		return help(ctx, h, cause, strings.TrimSpace(arguments))
	case Commands:
		return listCommands(h, cause), nil
	case Plugins:
		plugins := h.Plugins()
		for _, p := range plugins {
			cause.Send(string(p))
		}

		return command.Result{SuccessCount: 1, QueryResult: len(plugins)}, nil
	case Reload:
		if err := registrars.CheckPermission(cause, PermissionReload); err != nil {
			return command.Empty(), err
		}

		if err := h.Reload(ctx); err != nil {
			cause.Sendf("reload completed with errors: %v", err)
			return command.Empty(), command.WrapError("reload failed", err)
		}

		cause.Send("reload complete")

		return command.Success(), nil
	default:
		return command.Empty(), command.Errorf("unknown builtin %q", c)
	}
}

func help(ctx context.Context, h Host, cause command.Cause, alias string) (command.Result, error) {
	if alias != "" {
		text, ok := h.Help(ctx, cause, alias)
		if !ok {
			return command.Empty(), command.Errorf("no help for %q", alias)
		}

		cause.Send(strings.TrimSpace(alias + " " + text.Usage))

		if text.Short != "" {
			cause.Send("  " + text.Short)
		}

		if text.Long != "" {
			cause.Send(text.Long)
		}

		return command.Success(), nil
	}

	mappings := h.Mappings()
	for _, m := range mappings {
		text, _ := h.Help(ctx, cause, m.PrimaryAlias())
		cause.Sendf("%-16s %s", m.PrimaryAlias(), text.Short)
	}

	return command.Result{SuccessCount: 1, QueryResult: len(mappings)}, nil
}

func listCommands(h Host, cause command.Cause) command.Result {
	mappings := h.Mappings()
	for _, m := range mappings {
		others := slices.DeleteFunc(m.Aliases(), func(a string) bool {
			return a == command.NormalizeAlias(m.PrimaryAlias())
		})

		line := fmt.Sprintf("%s/%s", m.Owner(), m.PrimaryAlias())
		if len(others) > 0 {
			line += " (" + strings.Join(others, ", ") + ")"
		}

		cause.Send(line)
	}

	return command.Result{SuccessCount: 1, QueryResult: len(mappings)}
}

// Suggestions implements command.Registrar. help completes aliases.
func (r *Registrar) Suggestions(
	ctx context.Context, _ command.Cause, primaryAlias, arguments string,
) ([]string, error) {
	c, ok := r.cmds.Get(primaryAlias)
	if !ok || c != Help || strings.ContainsFunc(arguments, unicode.IsSpace) {
		return []string{}, nil
	}

	h, err := r.host(ctx)
	if err != nil {
		return []string{}, nil //nolint:nilerr
	}

	var aliases []string
	for _, m := range h.Mappings() {
		aliases = append(aliases, m.Aliases()...)
	}

	slices.Sort(aliases)

	return registrars.FilterPrefix(aliases, arguments), nil
}

// Help implements command.Registrar.
func (r *Registrar) Help(_ context.Context, _ command.Cause, primaryAlias string) (command.HelpText, bool) {
	c, ok := r.cmds.Get(primaryAlias)
	if !ok {
		return command.HelpText{}, false
	}

	def := definitions[c]

	return command.HelpText{Short: def.short, Usage: def.usage}, true
}
