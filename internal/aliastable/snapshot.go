// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package aliastable

import (
	"maps"
	"slices"
	"strings"

	"github.com/matt-FFFFFF/switchboard/internal/command"
)

// Snapshot is an immutable view of the table at one point in time.
type Snapshot struct {
	entries map[string]*command.Mapping
	version uint64
}

var emptySnapshot = &Snapshot{entries: map[string]*command.Mapping{}}

// Version increases by one with every published change.
func (s *Snapshot) Version() uint64 {
	return s.version
}

// Len returns the number of aliases in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.entries)
}

// Get returns the mapping that owns alias.
func (s *Snapshot) Get(alias string) (*command.Mapping, bool) {
	m, ok := s.entries[command.NormalizeAlias(alias)]
	return m, ok
}

// Aliases returns every alias in lexical order.
func (s *Snapshot) Aliases() []string {
	return slices.Sorted(maps.Keys(s.entries))
}

// WithPrefix returns the aliases starting with prefix in lexical order.
// The prefix is normalized before comparison.
func (s *Snapshot) WithPrefix(prefix string) []string {
	prefix = command.NormalizeAlias(prefix)
	out := make([]string, 0)

	for alias := range s.entries {
		if strings.HasPrefix(alias, prefix) {
			out = append(out, alias)
		}
	}

	slices.Sort(out)

	return out
}

// Mappings returns the distinct mappings ordered by owner then primary alias.
func (s *Snapshot) Mappings() []*command.Mapping {
	seen := make(map[*command.Mapping]struct{}, len(s.entries))
	out := make([]*command.Mapping, 0, len(s.entries))

	for _, m := range s.entries {
		if _, ok := seen[m]; ok {
			continue
		}

		seen[m] = struct{}{}
		out = append(out, m)
	}

	slices.SortFunc(out, compareMappings)

	return out
}

// Owners returns the distinct owning plugins in lexical order.
func (s *Snapshot) Owners() []command.PluginID {
	seen := make(map[command.PluginID]struct{})

	for _, m := range s.entries {
		seen[m.Owner()] = struct{}{}
	}

	return slices.Sorted(maps.Keys(seen))
}

// OwnedBy returns the mappings owned by owner, ordered by primary alias.
func (s *Snapshot) OwnedBy(owner command.PluginID) []*command.Mapping {
	return slices.DeleteFunc(s.Mappings(), func(m *command.Mapping) bool {
		return m.Owner() != owner
	})
}

func compareMappings(a, b *command.Mapping) int {
	if c := strings.Compare(string(a.Owner()), string(b.Owner())); c != 0 {
		return c
	}

	return strings.Compare(a.PrimaryAlias(), b.PrimaryAlias())
}
