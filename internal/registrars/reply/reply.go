// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package reply provides a registrar whose commands answer with a rendered
// text/template. Templates see the arguments, the primary alias, the subject
// identifier and the variables bound under VarsKey.
package reply

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/matt-FFFFFF/switchboard/internal/binder"
	"github.com/matt-FFFFFF/switchboard/internal/command"
	"github.com/matt-FFFFFF/switchboard/internal/ctxlog"
	"github.com/matt-FFFFFF/switchboard/internal/registrars"
	"github.com/matt-FFFFFF/switchboard/internal/registrartypes"
)

// TypeName is the registrar type name used in manifests.
const TypeName = "reply"

var (
	// ErrEmptyTemplate is returned when a command has no reply template.
	ErrEmptyTemplate = errors.New("reply template is empty")
	// ErrTemplate is returned when a reply template cannot be parsed.
	ErrTemplate = errors.New("invalid reply template")
)

// VarsKey is the binder key of the variables exposed to templates as .Vars.
var VarsKey = binder.Classified[map[string]string]("reply.vars")

// Type creates reply registrars.
var Type = command.RegistrarTypeFunc{
	TypeName: TypeName,
	Factory: func(_ context.Context, deps command.Deps) (command.Registrar, error) {
		return New(deps), nil
	},
}

func init() {
	registrartypes.Register(Type)
}

// Command is the command object handled by the reply registrar.
type Command struct {
	Description string
	Template    string
	Completions []string
	Permission  string
}

// Data is what a reply template is executed with.
type Data struct {
	Args    string
	Alias   string
	Subject string
	Vars    map[string]string
}

type entry struct {
	cmd  Command
	tmpl *template.Template
}

var _ command.Registrar = (*Registrar)(nil)

// Registrar answers commands with rendered text.
type Registrar struct {
	aliases command.AliasRegisterer
	binder  *binder.Binder
	cmds    *registrars.Store[entry]
}

// New creates a reply registrar.
func New(deps command.Deps) *Registrar {
	return &Registrar{
		aliases: deps.Aliases,
		binder:  deps.Binder,
		cmds:    registrars.NewStore[entry](),
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

	if strings.TrimSpace(c.Template) == "" {
		return nil, fmt.Errorf("%w: %s", ErrEmptyTemplate, primary)
	}

	tmpl, err := template.New(primary).Option("missingkey=zero").Parse(c.Template)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrTemplate, primary, err)
	}

	m, err := r.aliases.RegisterAlias(ctx, r, owner, primary, secondary...)
	if err != nil {
		return nil, err
	}

	r.cmds.Put(primary, entry{cmd: c, tmpl: tmpl})

	return m, nil
}

// Process implements command.Registrar.
func (r *Registrar) Process(
	ctx context.Context, cause command.Cause, primaryAlias, arguments string,
) (command.Result, error) {
	e, err := r.cmds.Lookup(primaryAlias)
	if err != nil {
		return command.Empty(), err
	}

	if err := registrars.CheckPermission(cause, e.cmd.Permission); err != nil {
		return command.Empty(), err
	}

	data := Data{
		Args:    arguments,
		Alias:   primaryAlias,
		Subject: cause.Subject.Identifier(),
		Vars:    r.vars(ctx),
	}

	buf := &bytes.Buffer{}
	if err := e.tmpl.Execute(buf, data); err != nil {
		return command.Empty(), command.WrapError(fmt.Sprintf("rendering reply for %q", primaryAlias), err)
	}

	cause.Send(buf.String())

	return command.Success(), nil
}

func (r *Registrar) vars(ctx context.Context) map[string]string {
	if r.binder == nil {
		return map[string]string{}
	}

	vars, ok, err := binder.Resolve(ctx, r.binder, VarsKey)
	if err != nil {
		ctxlog.Warn(ctx, "could not resolve reply variables", "error", err)
	}

	if !ok || vars == nil {
		return map[string]string{}
	}

	return vars
}

// Suggestions implements command.Registrar by filtering the command's completions
// with the argument being typed.
func (r *Registrar) Suggestions(
	_ context.Context, _ command.Cause, primaryAlias, arguments string,
) ([]string, error) {
	e, ok := r.cmds.Get(primaryAlias)
	if !ok {
		return []string{}, nil
	}

	return registrars.FilterPrefix(e.cmd.Completions, registrars.LastToken(arguments)), nil
}

// Help implements command.Registrar.
func (r *Registrar) Help(_ context.Context, _ command.Cause, primaryAlias string) (command.HelpText, bool) {
	e, ok := r.cmds.Get(primaryAlias)
	if !ok {
		return command.HelpText{}, false
	}

	return command.HelpText{
		Short: e.cmd.Description,
		Usage: "[text]",
	}, true
}
