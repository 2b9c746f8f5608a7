// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package manifest

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/switchboard/internal/command"
	"github.com/matt-FFFFFF/switchboard/internal/ctxlog"
)

// Registerer registers a command object with the registrar of a type.
// The command manager implements it.
type Registerer interface {
	Register(
		ctx context.Context,
		typeName string,
		owner command.PluginID,
		cmd any,
		primary string,
		secondary ...string,
	) (*command.Mapping, error)
}

// Apply registers every command of m. A failing command does not stop the
// others; every failure is returned in a multierror.
func Apply(ctx context.Context, r Registerer, m *Manifest) ([]*command.Mapping, error) {
	var (
		mappings []*command.Mapping
		result   *multierror.Error
	)

	for _, p := range m.Plugins {
		for _, c := range p.Commands {
			mapping, err := r.Register(ctx, c.Registrar, p.Owner(), c.Object(), c.Primary, c.Aliases...)
			if err != nil {
				ctxlog.Warn(ctx, "could not register manifest command",
					"source", m.Source, "owner", p.ID, "alias", c.Primary, "error", err)
				result = multierror.Append(result, fmt.Errorf("%s: %s/%s: %w", m.Source, p.ID, c.Primary, err))

				continue
			}

			mappings = append(mappings, mapping)
		}
	}

	return mappings, result.ErrorOrNil()
}

// ApplyAll applies each manifest in order.
func ApplyAll(ctx context.Context, r Registerer, ms []*Manifest) ([]*command.Mapping, error) {
	var (
		mappings []*command.Mapping
		result   *multierror.Error
	)

	for _, m := range ms {
		got, err := Apply(ctx, r, m)
		if err != nil {
			result = multierror.Append(result, err)
		}

		mappings = append(mappings, got...)
	}

	return mappings, result.ErrorOrNil()
}
