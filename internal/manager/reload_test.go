// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package manager

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/matt-FFFFFF/switchboard/internal/command"
	"github.com/matt-FFFFFF/switchboard/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReloadReplaysRegistrations(t *testing.T) {
	rep := &recordingReporter{}
	m, typ := newTestManager(t, WithReporter(rep))
	ctx := context.Background()

	before := mustRegister(t, m, "alpha", fakeCommand{reply: "world"}, "hello", "hi")
	mustRegister(t, m, "beta", fakeCommand{}, "greet")

	require.NoError(t, m.Reload(ctx))
	assert.Equal(t, int32(2), typ.created.Load())
	assert.Equal(t, Active, m.State())

	after, ok := m.Mapping("hi")
	require.True(t, ok)
	assert.NotSame(t, before, after)
	assert.NotSame(t, before.Registrar(), after.Registrar())
	assert.Equal(t, before.Aliases(), after.Aliases())
	assert.Equal(t, []string{"greet", "hello", "hi"}, m.KnownAliases())

	ch := &command.BufferChannel{}
	_, err := m.Process(ctx, nil, ch, "hi")
	require.NoError(t, err)
	assert.Equal(t, []string{"hello world"}, ch.Messages())

	types := rep.types()
	assert.Contains(t, types, events.ReloadStarted)
	assert.Contains(t, types, events.ReloadCompleted)

	// Old mappings are stale after reload.
	_, removed := m.Unregister(ctx, before)
	assert.False(t, removed)

	// New mappings can be unregistered and are not replayed again.
	_, removed = m.Unregister(ctx, after)
	require.True(t, removed)
	require.NoError(t, m.Reload(ctx))
	assert.Equal(t, []string{"greet"}, m.KnownAliases())
}

func TestReloadDropsFailedReplays(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	mustRegister(t, m, "alpha", fakeCommand{}, "keep")
	mustRegister(t, m, "alpha", fakeCommand{rejectFrom: 2}, "drop")

	err := m.Reload(ctx)
	require.ErrorIs(t, err, ErrReplay)
	require.ErrorIs(t, err, errRejected)
	assert.Equal(t, []string{"keep"}, m.KnownAliases())

	// The dropped registration is gone from the log.
	require.NoError(t, m.Reload(ctx))
	assert.Equal(t, []string{"keep"}, m.KnownAliases())
}

func TestReloadAbortKeepsTable(t *testing.T) {
	rep := &recordingReporter{}
	typ := &fakeRegistrarType{failFrom: 2}
	m := New(WithReporter(rep))
	ctx := context.Background()
	require.NoError(t, m.RegisterType(ctx, typ))

	mapping := mustRegister(t, m, "alpha", fakeCommand{}, "hello")

	err := m.Reload(ctx)
	require.ErrorIs(t, err, ErrReload)
	require.ErrorIs(t, err, ErrCreateRegistrar)
	assert.Contains(t, rep.types(), events.ReloadFailed)
	assert.Equal(t, Active, m.State())

	got, ok := m.Mapping("hello")
	require.True(t, ok)
	assert.Same(t, mapping, got)
}

func TestReloadDiscardsDirectAliases(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	reg := &fakeRegistrar{cmds: map[string]fakeCommand{}}
	_, err := m.RegisterAlias(ctx, reg, "alpha", "direct")
	require.NoError(t, err)

	mustRegister(t, m, "alpha", fakeCommand{}, "tracked")

	require.NoError(t, m.Reload(ctx))
	assert.Equal(t, []string{"tracked"}, m.KnownAliases())
}

func TestReloadFirstClaimOrderPreserved(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	mustRegister(t, m, "alpha", fakeCommand{}, "one", "shared")
	mustRegister(t, m, "beta", fakeCommand{}, "two", "shared")

	require.NoError(t, m.Reload(ctx))

	owner, ok := m.Mapping("shared")
	require.True(t, ok)
	assert.Equal(t, command.PluginID("alpha"), owner.Owner())
}

func TestDispatchDuringReload(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	for _, alias := range []string{"a", "b", "c", "d"} {
		mustRegister(t, m, "alpha", fakeCommand{}, alias)
	}

	var (
		wg      sync.WaitGroup
		stop    atomic.Bool
		unknown atomic.Int32
	)

	for range 4 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for !stop.Load() {
				for _, alias := range []string{"a", "b", "c", "d"} {
					res, err := m.Process(ctx, nil, nil, alias)
					if err != nil || res.Unknown {
						unknown.Add(1)
					}
				}
			}
		}()
	}

	for range 20 {
		assert.NoError(t, m.Reload(ctx))
	}

	stop.Store(true)
	wg.Wait()

	assert.Zero(t, unknown.Load())
}

func TestConcurrentRegistration(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	var (
		wg   sync.WaitGroup
		wins atomic.Int32
	)

	for i := range 16 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			owner := command.PluginID(string(rune('a' + i)))
			if _, err := m.Register(ctx, fakeType, owner, fakeCommand{}, "contested"); err == nil {
				wins.Add(1)
			}
		}()
	}

	wg.Add(1)

	go func() {
		defer wg.Done()
		assert.NoError(t, m.Reload(ctx))
	}()

	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
	assert.Equal(t, []string{"contested"}, m.KnownAliases())
}

func TestReloadRecreatesRegistrarsInOrder(t *testing.T) {
	t.Run("registration before type", func(t *testing.T) {
		m, _ := newTestManager(t)
		ctx := context.Background()

		mustRegister(t, m, "alpha", fakeCommand{}, "x", "?")

		sys := &systemRegistrarType{}
		require.NoError(t, m.RegisterType(ctx, sys))

		require.NoError(t, m.Reload(ctx))
		assert.Equal(t, int32(2), sys.created.Load())
		assert.Equal(t, []string{fakeType, systemType}, m.Types())

		owner, ok := m.Mapping("?")
		require.True(t, ok)
		assert.Equal(t, command.PluginID("alpha"), owner.Owner())
		assert.Equal(t, []string{"?", "x"}, owner.Aliases())

		help, ok := m.Mapping("help")
		require.True(t, ok)
		assert.Equal(t, command.PluginID("system"), help.Owner())
		assert.Equal(t, []string{"help"}, help.Aliases())
	})

	t.Run("type before registration", func(t *testing.T) {
		m, _ := newTestManager(t)
		ctx := context.Background()

		require.NoError(t, m.RegisterType(ctx, &systemRegistrarType{}))
		x := mustRegister(t, m, "alpha", fakeCommand{}, "x", "?")
		assert.Equal(t, []string{"x"}, x.Aliases())

		require.NoError(t, m.Reload(ctx))

		help, ok := m.Mapping("?")
		require.True(t, ok)
		assert.Equal(t, command.PluginID("system"), help.Owner())

		x, ok = m.Mapping("x")
		require.True(t, ok)
		assert.Equal(t, []string{"x"}, x.Aliases())
	})
}

func TestReloadSkipsRegistrationUnregisteredWhileRegistering(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	var (
		once    sync.Once
		removed []*command.Mapping
	)

	cmd := fakeCommand{claimed: func() {
		once.Do(func() {
			removed = m.UnregisterAll(ctx, "alpha")
		})
	}}

	mapping, err := m.Register(ctx, fakeType, "alpha", cmd, "ghost")
	require.NoError(t, err)
	require.Len(t, removed, 1)
	assert.Same(t, mapping, removed[0])
	assert.Empty(t, m.KnownAliases())

	require.NoError(t, m.Reload(ctx))
	assert.Empty(t, m.KnownAliases())

	_, ok := m.Mapping("ghost")
	assert.False(t, ok)
}
