// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package manifest

import (
	"context"
	"testing"

	"github.com/matt-FFFFFF/switchboard/internal/command"
	"github.com/matt-FFFFFF/switchboard/internal/manager"
	"github.com/matt-FFFFFF/switchboard/internal/registrars/reply"
	"github.com/matt-FFFFFF/switchboard/internal/registrars/shell"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T) *manager.Manager {
	t.Helper()

	m := manager.New()
	require.NoError(t, m.RegisterType(context.Background(), reply.Type))
	require.NoError(t, m.RegisterType(context.Background(), shell.Type))

	return m
}

func TestApply(t *testing.T) {
	m := newManager(t)
	ctx := context.Background()

	man, err := Decode("greeter.yaml", []byte(yamlManifest))
	require.NoError(t, err)

	mappings, err := Apply(ctx, m, man)
	require.NoError(t, err)
	require.Len(t, mappings, 2)
	assert.Equal(t, []string{"hello", "hey", "hi", "uptime"}, m.KnownAliases())

	ch := &command.BufferChannel{}
	_, err = m.Process(ctx, nil, ch, "hey world")
	require.NoError(t, err)
	assert.Equal(t, []string{"Hello, world!"}, ch.Messages())
}

func TestApplyContinuesAfterFailure(t *testing.T) {
	m := newManager(t)
	ctx := context.Background()

	man := &Manifest{
		Source: "inline",
		Plugins: []Plugin{
			{ID: "first", Commands: []Command{{Registrar: "reply", Primary: "hello", Reply: "1"}}},
			{ID: "second", Commands: []Command{
				{Registrar: "reply", Primary: "hello", Reply: "2"},
				{Registrar: "missing", Primary: "other"},
				{Registrar: "reply", Primary: "bye", Reply: "bye"},
			}},
		},
	}

	mappings, err := Apply(ctx, m, man)
	require.Error(t, err)
	assert.ErrorIs(t, err, command.ErrAliasConflict)
	assert.Len(t, mappings, 2)
	assert.Equal(t, []string{"bye", "hello"}, m.KnownAliases())

	owner, ok := m.Mapping("hello")
	require.True(t, ok)
	assert.Equal(t, command.PluginID("first"), owner.Owner())
}

func TestApplyAll(t *testing.T) {
	m := newManager(t)

	a, err := Decode("a.toml", []byte(tomlManifest))
	require.NoError(t, err)

	b := &Manifest{Source: "b", Plugins: []Plugin{
		{ID: "other", Commands: []Command{{Registrar: "reply", Primary: "hi", Reply: "clash"}}},
	}}

	mappings, err := ApplyAll(context.Background(), m, []*Manifest{a, b})
	require.ErrorIs(t, err, command.ErrAliasConflict)
	assert.Len(t, mappings, 2)
}
