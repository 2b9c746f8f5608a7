// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package aliastable

import (
	"fmt"
	"sync"
	"testing"

	"github.com/matt-FFFFFF/switchboard/internal/command"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func register(t *testing.T, tbl *Table, owner command.PluginID, primary string, secondary ...string) Claim {
	t.Helper()

	claim, err := tbl.Register(primary, secondary, func(claimed []string) *command.Mapping {
		return command.NewMapping(primary, claimed, owner, nil)
	})
	require.NoError(t, err)

	return claim
}

// assertConsistent checks that every claimed alias of every mapping points back at it
// and every entry is one of its mapping's claimed aliases.
func assertConsistent(t *testing.T, s *Snapshot) {
	t.Helper()

	for alias, m := range s.entries {
		assert.True(t, m.Has(alias), "alias %q not claimed by its mapping %s", alias, m)
	}

	for _, m := range s.Mappings() {
		for _, alias := range m.Aliases() {
			got, ok := s.Get(alias)
			if assert.True(t, ok, "claimed alias %q missing", alias) {
				assert.Same(t, m, got)
			}
		}
	}
}

func TestRegister_PrimaryConflict(t *testing.T) {
	tbl := New()
	register(t, tbl, "first", "foo", "f")

	before := tbl.Snapshot()

	_, err := tbl.Register("FOO", []string{"bar"}, func(claimed []string) *command.Mapping {
		t.Fatal("build must not be called on conflict")
		return nil
	})

	require.ErrorIs(t, err, command.ErrAliasConflict)

	var conflict *command.AliasConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, command.PluginID("first"), conflict.Owner())
	assert.Same(t, before, tbl.Snapshot(), "table must be unchanged after a conflict")

	_, ok := tbl.Snapshot().Get("bar")
	assert.False(t, ok)
}

func TestRegister_SecondaryBestEffort(t *testing.T) {
	tbl := New()
	register(t, tbl, "p1", "a", "b")

	claim := register(t, tbl, "p2", "c", "b")

	assert.Equal(t, []string{"c"}, claim.Mapping.Aliases())
	assert.Equal(t, []string{"b"}, claim.Skipped)

	owner, ok := tbl.Snapshot().Get("b")
	require.True(t, ok)
	assert.Equal(t, command.PluginID("p1"), owner.Owner())
	assertConsistent(t, tbl.Snapshot())
}

func TestRegister_DuplicateAliasesInOneCall(t *testing.T) {
	tbl := New()
	claim := register(t, tbl, "p", "Home", "home", "HOME", "h", "H")

	assert.Equal(t, []string{"h", "home"}, claim.Mapping.Aliases())
	assert.Empty(t, claim.Skipped)
	assert.Equal(t, 2, tbl.Snapshot().Len())
}

func TestRemove(t *testing.T) {
	tbl := New()
	m := register(t, tbl, "p", "tp", "teleport").Mapping

	assert.True(t, tbl.Remove(m))
	assert.Zero(t, tbl.Snapshot().Len())
	assert.False(t, tbl.Remove(m), "second removal is a no-op")
}

func TestRemove_StaleMapping(t *testing.T) {
	tbl := New()
	stale := register(t, tbl, "p", "tp", "teleport").Mapping

	// Simulate a reload that rebuilt the table with a new mapping for the same aliases.
	fresh := New()
	current := register(t, fresh, "p", "tp", "teleport").Mapping
	tbl.Publish(fresh.Snapshot())

	assert.False(t, tbl.Remove(stale), "stale mapping must not remove the current owner")

	got, ok := tbl.Snapshot().Get("tp")
	require.True(t, ok)
	assert.Same(t, current, got)
}

func TestSnapshot_Queries(t *testing.T) {
	tbl := New()
	register(t, tbl, "travel", "tp", "teleport", "tpa")
	register(t, tbl, "admin", "time", "t")
	register(t, tbl, "travel", "home")

	s := tbl.Snapshot()

	assert.Equal(t, []string{"home", "t", "teleport", "time", "tp", "tpa"}, s.Aliases())
	assert.Equal(t, []string{"tp", "tpa"}, s.WithPrefix("TP"))
	assert.Equal(t, []string{"t", "teleport", "time", "tp", "tpa"}, s.WithPrefix("t"))
	assert.Empty(t, s.WithPrefix("zzz"))
	assert.Equal(t, []command.PluginID{"admin", "travel"}, s.Owners())

	mappings := s.Mappings()
	require.Len(t, mappings, 3)
	assert.Equal(t, "time", mappings[0].PrimaryAlias())
	assert.Equal(t, "home", mappings[1].PrimaryAlias())
	assert.Equal(t, "tp", mappings[2].PrimaryAlias())

	owned := s.OwnedBy("travel")
	require.Len(t, owned, 2)
	assert.Equal(t, "home", owned[0].PrimaryAlias())
}

func TestSnapshot_IsImmutable(t *testing.T) {
	tbl := New()
	register(t, tbl, "p", "a")

	old := tbl.Snapshot()
	register(t, tbl, "p", "b")

	assert.Equal(t, 1, old.Len())
	assert.Equal(t, 2, tbl.Snapshot().Len())
	assert.Greater(t, tbl.Snapshot().Version(), old.Version())
}

func TestReset(t *testing.T) {
	tbl := New()
	register(t, tbl, "p", "a")
	tbl.Reset()
	assert.Zero(t, tbl.Snapshot().Len())
}

// Concurrent claims of the same aliases always leave exactly one owner per alias.
func TestRegister_ConcurrentUniqueness(t *testing.T) {
	tbl := New()

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		winners   int
		conflicts int
	)

	for i := 0; i < 32; i++ {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			owner := command.PluginID(fmt.Sprintf("p%d", i))
			_, err := tbl.Register("shared", []string{"s", fmt.Sprintf("own%d", i)}, func(claimed []string) *command.Mapping {
				return command.NewMapping("shared", claimed, owner, nil)
			})

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				conflicts++
				return
			}

			winners++
		}(i)

		wg.Add(1)

		go func() {
			defer wg.Done()
			assertConsistent(t, tbl.Snapshot())
		}()
	}

	wg.Wait()

	assert.Equal(t, 1, winners)
	assert.Equal(t, 31, conflicts)
	assertConsistent(t, tbl.Snapshot())
}
