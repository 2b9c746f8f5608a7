// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package command

import (
	"slices"

	"github.com/google/uuid"
)

// Mapping binds a primary alias, the aliases it actually claimed, its owning plugin
// and the live registrar instance that answers for it.
// A Mapping is immutable once constructed.
type Mapping struct {
	id        uuid.UUID
	primary   string
	aliases   []string // normalized, sorted, always contains the normalized primary
	owner     PluginID
	registrar Registrar
}

// NewMapping creates a Mapping. The claimed aliases are normalized and
// deduplicated; the primary alias is always part of the claimed set.
func NewMapping(primary string, claimed []string, owner PluginID, registrar Registrar) *Mapping {
	aliases := make([]string, 0, len(claimed)+1)
	aliases = append(aliases, NormalizeAlias(primary))

	for _, a := range claimed {
		aliases = append(aliases, NormalizeAlias(a))
	}

	slices.Sort(aliases)

	return &Mapping{
		id:        uuid.New(),
		primary:   primary,
		aliases:   slices.Compact(aliases),
		owner:     owner,
		registrar: registrar,
	}
}

// ID returns the unique identifier of this mapping.
func (m *Mapping) ID() uuid.UUID {
	return m.id
}

// PrimaryAlias returns the alias passed back to the registrar on every call.
func (m *Mapping) PrimaryAlias() string {
	return m.primary
}

// Aliases returns the normalized claimed aliases in lexical order.
func (m *Mapping) Aliases() []string {
	return slices.Clone(m.aliases)
}

// Has reports whether alias is one of the claimed aliases.
func (m *Mapping) Has(alias string) bool {
	_, found := slices.BinarySearch(m.aliases, NormalizeAlias(alias))
	return found
}

// Owner returns the plugin that registered the mapping.
func (m *Mapping) Owner() PluginID {
	return m.owner
}

// Registrar returns the registrar instance that owns the mapping.
func (m *Mapping) Registrar() Registrar {
	return m.registrar
}

// String implements fmt.Stringer.
func (m *Mapping) String() string {
	return string(m.owner) + "/" + m.primary
}
