// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package manager

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/switchboard/internal/aliastable"
	"github.com/matt-FFFFFF/switchboard/internal/command"
	"github.com/matt-FFFFFF/switchboard/internal/events"
)

var (
	// ErrReload is returned when a reload is aborted. The previous table stays live.
	ErrReload = errors.New("reload aborted")
	// ErrReplay wraps registrations that could not be replayed during a reload.
	ErrReplay = errors.New("failed to replay registration")
)

// Reload recreates every registrar from its type and replays the recorded
// registrations into a new alias table, which is then published atomically.
//
// Registration calls block until the reload completes. Dispatch keeps being
// answered from the previous table until the new one is published.
// Registrations that fail to replay are dropped and returned as a multierror
// wrapping ErrReplay; the reload itself still completes. If a registrar type
// fails to create its registrar the reload is aborted with ErrReload.
//
// Mappings claimed directly through RegisterAlias with a registrar that was not
// obtained from Registrar are not replayed.
func (m *Manager) Reload(ctx context.Context) error {
	m.lifecycleMu.Lock()
	defer m.lifecycleMu.Unlock()

	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	m.state.Store(int32(Reloading))
	defer m.state.Store(int32(Active))

	log := logger(ctx)
	log.Info("reload started", "registrar_types", len(m.typeOrder), "registrations", len(m.log)-len(m.typeOrder))
	m.report(events.ReloadStarted, "", "", nil, "")

	staging := aliastable.New()
	fresh := make(map[string]command.Registrar, len(m.typeOrder))
	bounds := make([]*boundRegisterer, 0, len(m.typeOrder))

	var result *multierror.Error

	kept := make([]*registration, 0, len(m.log))

	// Registrars are recreated where their type was added so the aliases they
	// claim on creation compete with tracked registrations in the original order.
	for _, reg := range m.log {
		if reg.typeAdded {
			b := &boundRegisterer{m: m}
			b.staging.Store(staging)

			inst, err := m.types[reg.typeName].New(ctx, command.Deps{Aliases: b, Binder: m.binder})
			if err != nil {
				err = fmt.Errorf("%w: %w: %s: %w", ErrReload, ErrCreateRegistrar, reg.typeName, err)
				log.Error("reload failed", "registrar", reg.typeName, "error", err)
				m.report(events.ReloadFailed, "", "", nil, err.Error())

				return err
			}

			fresh[reg.typeName] = inst
			bounds = append(bounds, b)
			kept = append(kept, reg)

			continue
		}

		inst, ok := fresh[reg.typeName]
		if !ok {
			result = multierror.Append(result, fmt.Errorf("%w: %s/%s: registrar %q is not available",
				ErrReplay, reg.owner, reg.primary, reg.typeName))

			continue
		}

		mapping, err := inst.Register(ctx, reg.owner, reg.cmd, reg.primary, reg.secondary...)
		if err != nil {
			log.Warn("registration dropped during reload", "alias", reg.primary, "owner", reg.owner, "error", err)
			result = multierror.Append(result, fmt.Errorf("%w: %s/%s: %w", ErrReplay, reg.owner, reg.primary, err))

			continue
		}

		replayed := *reg
		replayed.mapping = mapping
		kept = append(kept, &replayed)
	}

	m.table.Publish(staging.Snapshot())

	for _, b := range bounds {
		b.staging.Store(nil)
	}

	m.registrars.Store(&fresh)
	m.log = kept

	log.Info("reload completed", "aliases", m.table.Snapshot().Len(), "registrations", len(kept)-len(fresh))
	m.report(events.ReloadCompleted, "", "", nil, "")

	return result.ErrorOrNil()
}
