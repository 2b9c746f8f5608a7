// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package aliastable

import (
	"maps"
	"sync"
	"sync/atomic"

	"github.com/matt-FFFFFF/switchboard/internal/command"
)

// Table maps normalized aliases to their owning mapping.
// The zero value is not usable, use New.
type Table struct {
	mu   sync.Mutex
	snap atomic.Pointer[Snapshot]
}

// New creates an empty table.
func New() *Table {
	t := &Table{}
	t.snap.Store(emptySnapshot)

	return t
}

// Snapshot returns the current published view.
func (t *Table) Snapshot() *Snapshot {
	return t.snap.Load()
}

// Publish replaces the table contents with s, as done at the end of a reload.
func (t *Table) Publish(s *Snapshot) {
	t.mu.Lock()
	defer t.mu.Unlock()

	next := &Snapshot{
		entries: s.entries,
		version: t.snap.Load().version + 1,
	}
	t.snap.Store(next)
}

// Claim is the result of a successful Register.
type Claim struct {
	Mapping *command.Mapping
	Skipped []string // secondary aliases that were already owned
}

// Register claims primary strictly and secondary best-effort, builds the mapping
// with build and publishes it. On conflict nothing is changed.
//
// Aliases must already be validated. Duplicates of the primary within secondary
// are ignored.
func (t *Table) Register(
	primary string,
	secondary []string,
	build func(claimed []string) *command.Mapping,
) (Claim, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	cur := t.snap.Load()
	key := command.NormalizeAlias(primary)

	if existing, ok := cur.entries[key]; ok {
		return Claim{}, command.NewAliasConflictError(primary, existing)
	}

	claimed := make([]string, 0, len(secondary))
	taken := map[string]struct{}{key: {}}

	var skipped []string

	for _, alias := range secondary {
		k := command.NormalizeAlias(alias)
		if _, dup := taken[k]; dup {
			continue
		}

		if _, owned := cur.entries[k]; owned {
			skipped = append(skipped, alias)
			continue
		}

		taken[k] = struct{}{}
		claimed = append(claimed, alias)
	}

	m := build(claimed)

	next := &Snapshot{
		entries: maps.Clone(cur.entries),
		version: cur.version + 1,
	}

	for _, alias := range m.Aliases() {
		next.entries[alias] = m
	}

	t.snap.Store(next)

	return Claim{Mapping: m, Skipped: skipped}, nil
}

// Remove deletes every alias of m that still points at m.
// Aliases now owned by another mapping are left alone. It reports whether
// anything was removed.
func (t *Table) Remove(m *command.Mapping) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	cur := t.snap.Load()

	var next *Snapshot

	for _, alias := range m.Aliases() {
		if cur.entries[alias] != m {
			continue
		}

		if next == nil {
			next = &Snapshot{
				entries: maps.Clone(cur.entries),
				version: cur.version + 1,
			}
		}

		delete(next.entries, alias)
	}

	if next == nil {
		return false
	}

	t.snap.Store(next)

	return true
}

// Reset empties the table.
func (t *Table) Reset() {
	t.Publish(emptySnapshot)
}
