// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"

	"github.com/matt-FFFFFF/switchboard/internal/binder"
)

// Registrar is a pluggable command framework. It owns a set of commands and is
// called back by the manager once alias ownership has been resolved.
//
// Process, Suggestions and Help are always called with the mapping's primary alias,
// never with the alias the user typed.
type Registrar interface {
	// TypeName returns the name of the RegistrarType that created this registrar.
	TypeName() string
	// Register registers a command object under the given aliases.
	// Implementations must claim the aliases through their AliasRegisterer.
	Register(ctx context.Context, owner PluginID, cmd any, primary string, secondary ...string) (*Mapping, error)
	// Process executes the command. arguments is the raw input with the alias removed.
	Process(ctx context.Context, cause Cause, primaryAlias, arguments string) (Result, error)
	// Suggestions returns completions for the partially typed arguments.
	Suggestions(ctx context.Context, cause Cause, primaryAlias, arguments string) ([]string, error)
	// Help returns help for the command, if the registrar has any.
	Help(ctx context.Context, cause Cause, primaryAlias string) (HelpText, bool)
}

// RemovalPolicy is implemented by registrars that protect some of their mappings
// from bulk removal by plugin.
type RemovalPolicy interface {
	Removable(m *Mapping) bool
}

// AliasRegisterer claims aliases in the shared alias table.
type AliasRegisterer interface {
	// RegisterAlias claims primary strictly and secondary aliases best-effort.
	// It fails with an AliasConflictError when primary is already owned.
	RegisterAlias(
		ctx context.Context, registrar Registrar, owner PluginID, primary string, secondary ...string,
	) (*Mapping, error)
}

// Deps are handed to a RegistrarType when it creates a registrar instance.
type Deps struct {
	Aliases AliasRegisterer
	Binder  *binder.Binder
}

// RegistrarType creates registrar instances. Registrars are recreated from their
// type whenever the manager reloads.
type RegistrarType interface {
	Name() string
	New(ctx context.Context, deps Deps) (Registrar, error)
}

// RegistrarTypeFunc adapts a function to the RegistrarType interface.
type RegistrarTypeFunc struct {
	TypeName string
	Factory  func(ctx context.Context, deps Deps) (Registrar, error)
}

// Name implements RegistrarType.
func (f RegistrarTypeFunc) Name() string {
	return f.TypeName
}

// New implements RegistrarType.
func (f RegistrarTypeFunc) New(ctx context.Context, deps Deps) (Registrar, error) {
	return f.Factory(ctx, deps)
}

// As converts an erased command object to the type a registrar handles.
func As[T any](cmd any) (T, error) {
	switch v := cmd.(type) {
	case T:
		return v, nil
	case *T:
		if v != nil {
			return *v, nil
		}
	}

	var zero T

	return zero, fmt.Errorf("%w: got %T, want %T", ErrUnsupportedCommand, cmd, zero)
}
