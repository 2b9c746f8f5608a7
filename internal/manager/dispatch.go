// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package manager

import (
	"context"
	"strings"
	"unicode"

	"github.com/matt-FFFFFF/switchboard/internal/command"
)

// splitInput splits raw input on the first run of whitespace into the alias token
// and the remainder. Leading whitespace is ignored. hasSpace reports whether the
// alias token was terminated by whitespace.
func splitInput(raw string) (alias, remainder string, hasSpace bool) {
	trimmed := strings.TrimLeftFunc(raw, unicode.IsSpace)

	i := strings.IndexFunc(trimmed, unicode.IsSpace)
	if i < 0 {
		return trimmed, "", false
	}

	return trimmed[:i], strings.TrimLeftFunc(trimmed[i:], unicode.IsSpace), true
}

// Process executes raw input on behalf of subject, sending messages to channel.
//
// An unknown alias is not an error: the result has zero successes and Unknown set.
// Errors raised by the owning registrar are returned unchanged.
func (m *Manager) Process(
	ctx context.Context,
	subject command.Subject,
	channel command.Channel,
	raw string,
) (command.Result, error) {
	alias, remainder, _ := splitInput(raw)
	if alias == "" {
		return command.Empty(), command.ErrNoCommand
	}

	mapping, ok := m.table.Snapshot().Get(alias)
	if !ok {
		logger(ctx).Debug("unknown command", "alias", alias)
		return command.UnknownCommand(alias), nil
	}

	logger(ctx).Debug("dispatching command",
		"alias", alias,
		"primary", mapping.PrimaryAlias(),
		"owner", mapping.Owner(),
		"registrar", mapping.Registrar().TypeName())

	return mapping.Registrar().Process(ctx, command.NewCause(subject, channel), mapping.PrimaryAlias(), remainder)
}

// Suggest returns completions for raw input.
//
// While the alias is still being typed, every known alias starting with it is
// returned in lexical order. Once the alias is complete the owning registrar is
// asked; an unknown alias yields no suggestions.
func (m *Manager) Suggest(
	ctx context.Context,
	subject command.Subject,
	channel command.Channel,
	raw string,
) ([]string, error) {
	alias, remainder, hasSpace := splitInput(raw)
	snap := m.table.Snapshot()

	if !hasSpace {
		return snap.WithPrefix(alias), nil
	}

	mapping, ok := snap.Get(alias)
	if !ok {
		return []string{}, nil
	}

	return mapping.Registrar().Suggestions(ctx, command.NewCause(subject, channel), mapping.PrimaryAlias(), remainder)
}

// Help returns the owning registrar's help for alias.
func (m *Manager) Help(ctx context.Context, cause command.Cause, alias string) (command.HelpText, bool) {
	mapping, ok := m.table.Snapshot().Get(alias)
	if !ok {
		return command.HelpText{}, false
	}

	return mapping.Registrar().Help(ctx, cause, mapping.PrimaryAlias())
}

// Mapping returns the mapping that owns alias.
func (m *Manager) Mapping(alias string) (*command.Mapping, bool) {
	return m.table.Snapshot().Get(alias)
}

// Mappings returns every mapping ordered by owner and primary alias.
func (m *Manager) Mappings() []*command.Mapping {
	return m.table.Snapshot().Mappings()
}

// KnownAliases returns every registered alias in lexical order.
func (m *Manager) KnownAliases() []string {
	return m.table.Snapshot().Aliases()
}

// Plugins returns the distinct owners of the registered mappings.
func (m *Manager) Plugins() []command.PluginID {
	return m.table.Snapshot().Owners()
}
