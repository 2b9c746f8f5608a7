// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package builtin

import (
	"context"
	"testing"

	"github.com/matt-FFFFFF/switchboard/internal/binder"
	"github.com/matt-FFFFFF/switchboard/internal/command"
	"github.com/matt-FFFFFF/switchboard/internal/manager"
	"github.com/matt-FFFFFF/switchboard/internal/registrars/reply"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T) *manager.Manager {
	t.Helper()

	ctx := context.Background()
	b := binder.New()
	m := manager.New(manager.WithBinder(b))
	binder.Bind(b, HostKey).ToInstance(m)

	require.NoError(t, m.RegisterType(ctx, Type))
	require.NoError(t, m.RegisterType(ctx, reply.Type))

	_, err := m.Register(ctx, reply.TypeName, "greeter", reply.Command{
		Description: "Say hello",
		Template:    "hello",
	}, "hello", "hi")
	require.NoError(t, err)

	return m
}

func TestBuiltinsRegisteredOnCreate(t *testing.T) {
	m := newManager(t)

	for _, alias := range []string{"help", "?", "commands", "cmds", "plugins", "reload"} {
		mapping, ok := m.Mapping(alias)
		require.True(t, ok, alias)
		assert.Equal(t, Owner, mapping.Owner())
	}
}

func TestBuiltinsNotRemovable(t *testing.T) {
	m := newManager(t)

	assert.Empty(t, m.UnregisterAll(context.Background(), Owner))
	_, ok := m.Mapping("help")
	assert.True(t, ok)
}

func TestHelp(t *testing.T) {
	m := newManager(t)
	ctx := context.Background()

	ch := &command.BufferChannel{}
	res, err := m.Process(ctx, nil, ch, "? hi")
	require.NoError(t, err)
	assert.True(t, res.Succeeded())
	assert.Equal(t, []string{"hi [text]", "  Say hello"}, ch.Messages())

	ch = &command.BufferChannel{}
	res, err = m.Process(ctx, nil, ch, "help")
	require.NoError(t, err)
	assert.Equal(t, 5, res.QueryResult)
	assert.Len(t, ch.Messages(), 5)

	_, err = m.Process(ctx, nil, ch, "help nope")
	assert.ErrorIs(t, err, command.ErrCommand)
}

func TestCommandsAndPlugins(t *testing.T) {
	m := newManager(t)
	ctx := context.Background()

	ch := &command.BufferChannel{}
	_, err := m.Process(ctx, nil, ch, "commands")
	require.NoError(t, err)
	assert.Contains(t, ch.Messages(), "greeter/hello (hi)")
	assert.Contains(t, ch.Messages(), "switchboard/help (?)")

	ch = &command.BufferChannel{}
	res, err := m.Process(ctx, nil, ch, "plugins")
	require.NoError(t, err)
	assert.Equal(t, 2, res.QueryResult)
	assert.Equal(t, []string{"greeter", "switchboard"}, ch.Messages())
}

func TestReload(t *testing.T) {
	m := newManager(t)
	ctx := context.Background()

	before, _ := m.Mapping("help")

	ch := &command.BufferChannel{}
	_, err := m.Process(ctx, nil, ch, "reload")
	require.NoError(t, err)
	assert.Equal(t, []string{"reload complete"}, ch.Messages())

	after, ok := m.Mapping("help")
	require.True(t, ok)
	assert.NotSame(t, before, after)

	_, ok = m.Mapping("hi")
	assert.True(t, ok)
}

type guest struct{}

func (guest) Identifier() string { return "guest" }

func (guest) HasPermission(string) bool { return false }

func TestReloadNeedsPermission(t *testing.T) {
	m := newManager(t)

	_, err := m.Process(context.Background(), guest{}, nil, "reload")
	assert.ErrorIs(t, err, command.ErrCommand)
}

func TestSuggestHelpArgument(t *testing.T) {
	m := newManager(t)

	got, err := m.Suggest(context.Background(), nil, nil, "help h")
	require.NoError(t, err)
	assert.Equal(t, []string{"hello", "help", "hi"}, got)
}

func TestExtraAliasForBuiltin(t *testing.T) {
	m := newManager(t)
	ctx := context.Background()

	_, err := m.Register(ctx, TypeName, "ops", Plugins, "owners")
	require.NoError(t, err)

	_, err = m.Register(ctx, TypeName, "ops", Command("explode"), "boom")
	require.ErrorIs(t, err, command.ErrUnsupportedCommand)

	ch := &command.BufferChannel{}
	_, err = m.Process(ctx, nil, ch, "owners")
	require.NoError(t, err)
	assert.Contains(t, ch.Messages(), "switchboard")
}

func TestNoHost(t *testing.T) {
	m := manager.New()
	require.NoError(t, m.RegisterType(context.Background(), Type))

	_, err := m.Process(context.Background(), nil, nil, "plugins")
	require.ErrorIs(t, err, ErrNoHost)
}
