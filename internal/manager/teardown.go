// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package manager

import (
	"context"
	"slices"

	"github.com/matt-FFFFFF/switchboard/internal/command"
	"github.com/matt-FFFFFF/switchboard/internal/events"
)

// Unregister removes every alias of mapping that still points at it.
// It returns the mapping and true if anything was removed; a mapping that is no
// longer in the table, for example after a reload, is a no-op.
func (m *Manager) Unregister(ctx context.Context, mapping *command.Mapping) (*command.Mapping, bool) {
	if mapping == nil {
		return nil, false
	}

	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	return m.unregister(ctx, mapping)
}

func (m *Manager) unregister(ctx context.Context, mapping *command.Mapping) (*command.Mapping, bool) {
	if !m.table.Remove(mapping) {
		logger(ctx).Debug("mapping not in table, nothing to unregister", "mapping", mapping.ID())
		return nil, false
	}

	m.log = slices.DeleteFunc(m.log, func(r *registration) bool {
		return r.mapping == mapping
	})

	logger(ctx).Info("command unregistered",
		"alias", mapping.PrimaryAlias(), "owner", mapping.Owner(), "mapping", mapping.ID())
	m.report(events.Unregistered, mapping.PrimaryAlias(), mapping.Owner(), mapping, "")

	return mapping, true
}

// UnregisterAll removes every mapping owned by owner. Mappings whose registrar
// marks them as not removable are skipped and not returned.
func (m *Manager) UnregisterAll(ctx context.Context, owner command.PluginID) []*command.Mapping {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	var removed []*command.Mapping

	for _, mapping := range m.table.Snapshot().OwnedBy(owner) {
		if policy, ok := mapping.Registrar().(command.RemovalPolicy); ok && !policy.Removable(mapping) {
			logger(ctx).Debug("mapping is not removable, skipping", "alias", mapping.PrimaryAlias(), "owner", owner)
			continue
		}

		if got, ok := m.unregister(ctx, mapping); ok {
			removed = append(removed, got)
		}
	}

	return removed
}
