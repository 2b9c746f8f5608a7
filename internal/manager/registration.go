// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package manager

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/matt-FFFFFF/switchboard/internal/aliastable"
	"github.com/matt-FFFFFF/switchboard/internal/command"
	"github.com/matt-FFFFFF/switchboard/internal/events"
)

// RegisterAlias claims aliases for registrar on behalf of owner.
//
// The primary alias is claimed strictly: if it is already owned the call fails with
// a *command.AliasConflictError and the table is left untouched. Secondary aliases
// are claimed best-effort: owned or invalid ones are silently left out of the
// mapping. Ownership is first-claim-wins; there is no priority override.
func (m *Manager) RegisterAlias(
	ctx context.Context,
	registrar command.Registrar,
	owner command.PluginID,
	primary string,
	secondary ...string,
) (*command.Mapping, error) {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	return m.registerAlias(ctx, m.table, registrar, owner, primary, secondary)
}

// registerAlias claims aliases in table. The caller serializes access.
func (m *Manager) registerAlias(
	ctx context.Context,
	table *aliastable.Table,
	registrar command.Registrar,
	owner command.PluginID,
	primary string,
	secondary []string,
) (*command.Mapping, error) {
	log := logger(ctx).With("alias", primary, "owner", owner)

	if registrar == nil {
		return nil, ErrNilRegistrar
	}

	if err := command.ValidateAlias(primary); err != nil {
		return nil, err
	}

	log = log.With("registrar", registrar.TypeName())

	candidates := make([]string, 0, len(secondary)*2+1)

	for _, alias := range secondary {
		if err := command.ValidateAlias(alias); err != nil {
			log.Warn("ignoring secondary alias", "error", err)
			continue
		}

		candidates = append(candidates, alias)
	}

	if m.namespaced && owner != "" {
		plain := append([]string{primary}, candidates...)
		for _, alias := range plain {
			namespaced := command.NamespacedAlias(owner, alias)
			if err := command.ValidateAlias(namespaced); err != nil {
				log.Warn("ignoring namespaced alias", "namespaced", namespaced, "error", err)
				continue
			}

			candidates = append(candidates, namespaced)
		}
	}

	claim, err := table.Register(primary, candidates, func(claimed []string) *command.Mapping {
		return command.NewMapping(primary, claimed, owner, registrar)
	})
	if err != nil {
		var conflict *command.AliasConflictError
		if errors.As(err, &conflict) {
			log.Warn("primary alias already registered", "existing_owner", conflict.Owner())
			m.report(events.Conflict, primary, owner, conflict.Existing, err.Error())
		}

		return nil, err
	}

	for _, alias := range claim.Skipped {
		log.Debug("secondary alias already registered, skipping", "secondary", alias)
		m.report(events.AliasSkipped, alias, owner, claim.Mapping, "alias already registered")
	}

	log.Info("command registered", "mapping", claim.Mapping.ID(), "aliases", claim.Mapping.Aliases())
	m.report(events.Registered, primary, owner, claim.Mapping, "")

	return claim.Mapping, nil
}

// boundRegisterer is the AliasRegisterer handed to registrar instances.
// While a reload replays registrations it targets the staging table,
// afterwards it forwards to the manager.
type boundRegisterer struct {
	m       *Manager
	staging atomic.Pointer[aliastable.Table]
}

// RegisterAlias implements command.AliasRegisterer.
func (b *boundRegisterer) RegisterAlias(
	ctx context.Context,
	registrar command.Registrar,
	owner command.PluginID,
	primary string,
	secondary ...string,
) (*command.Mapping, error) {
	if staging := b.staging.Load(); staging != nil {
		// Reload holds writeMu for its whole duration.
		return b.m.registerAlias(ctx, staging, registrar, owner, primary, secondary)
	}

	return b.m.RegisterAlias(ctx, registrar, owner, primary, secondary...)
}

var _ command.Registrar = (*trackedRegistrar)(nil)

// trackedRegistrar forwards to the live registrar of a type and records
// successful registrations so reload can replay them.
type trackedRegistrar struct {
	m        *Manager
	typeName string
}

func (t *trackedRegistrar) inner() (command.Registrar, error) {
	r, ok := t.m.current(t.typeName)
	if !ok {
		return nil, command.Errorf("registrar %q is not available", t.typeName)
	}

	return r, nil
}

// TypeName implements command.Registrar.
func (t *trackedRegistrar) TypeName() string {
	return t.typeName
}

// Register implements command.Registrar.
func (t *trackedRegistrar) Register(
	ctx context.Context,
	owner command.PluginID,
	cmd any,
	primary string,
	secondary ...string,
) (*command.Mapping, error) {
	t.m.lifecycleMu.Lock()
	defer t.m.lifecycleMu.Unlock()

	r, err := t.inner()
	if err != nil {
		return nil, err
	}

	mapping, err := r.Register(ctx, owner, cmd, primary, secondary...)
	if err != nil {
		return nil, err
	}

	t.m.writeMu.Lock()
	defer t.m.writeMu.Unlock()

	// The mapping may already be gone, e.g. its owner was unregistered while
	// the registrar was still returning. Recording it would resurrect it on reload.
	if cur, ok := t.m.table.Snapshot().Get(mapping.PrimaryAlias()); !ok || cur != mapping {
		logger(ctx).Debug("mapping removed before it was recorded, not replaying",
			"alias", primary, "owner", owner, "mapping", mapping.ID())

		return mapping, nil
	}

	t.m.log = append(t.m.log, &registration{
		typeName:  t.typeName,
		owner:     owner,
		cmd:       cmd,
		primary:   primary,
		secondary: append([]string(nil), secondary...),
		mapping:   mapping,
	})

	return mapping, nil
}

// Process implements command.Registrar.
func (t *trackedRegistrar) Process(
	ctx context.Context, cause command.Cause, primaryAlias, arguments string,
) (command.Result, error) {
	r, err := t.inner()
	if err != nil {
		return command.Empty(), err
	}

	return r.Process(ctx, cause, primaryAlias, arguments)
}

// Suggestions implements command.Registrar.
func (t *trackedRegistrar) Suggestions(
	ctx context.Context, cause command.Cause, primaryAlias, arguments string,
) ([]string, error) {
	r, err := t.inner()
	if err != nil {
		return nil, err
	}

	return r.Suggestions(ctx, cause, primaryAlias, arguments)
}

// Help implements command.Registrar.
func (t *trackedRegistrar) Help(ctx context.Context, cause command.Cause, primaryAlias string) (command.HelpText, bool) {
	r, err := t.inner()
	if err != nil {
		return command.HelpText{}, false
	}

	return r.Help(ctx, cause, primaryAlias)
}
