// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package console

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/matt-FFFFFF/switchboard/internal/command"
	"github.com/matt-FFFFFF/switchboard/internal/manager"
	"github.com/matt-FFFFFF/switchboard/internal/registrars/reply"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConsole(t *testing.T) (*Console, *bytes.Buffer) {
	t.Helper()

	color.NoColor = true

	ctx := context.Background()
	m := manager.New()
	require.NoError(t, m.RegisterType(ctx, reply.Type))

	_, err := m.Register(ctx, reply.TypeName, "greeter", reply.Command{
		Template:    "Hello, {{ .Args }}!",
		Completions: []string{"world", "there"},
	}, "hello", "help-me")
	require.NoError(t, err)

	buf := &bytes.Buffer{}

	return New(m, buf), buf
}

func TestEval(t *testing.T) {
	c, buf := newConsole(t)
	ctx := context.Background()

	assert.True(t, c.Eval(ctx, "hello world"))
	assert.Equal(t, "Hello, world!\n", buf.String())

	buf.Reset()
	assert.True(t, c.Eval(ctx, "nope"))
	assert.Contains(t, buf.String(), "unknown command: nope")

	assert.True(t, c.Eval(ctx, "   "))
	assert.False(t, c.Eval(ctx, "quit"))
	assert.False(t, c.Eval(ctx, " exit "))
}

func TestCompleter(t *testing.T) {
	c, _ := newConsole(t)
	complete := c.Completer(context.Background())

	assert.Equal(t, []string{"hello", "help-me"}, complete("hel"))
	assert.Equal(t, []string{"  hello", "  help-me"}, complete("  he"))
	assert.Equal(t, []string{"hello there world"}, complete("hello there wo"))
	assert.Empty(t, complete("nope x"))
}

type failingDispatcher struct{}

func (failingDispatcher) Process(context.Context, command.Subject, command.Channel, string) (command.Result, error) {
	return command.Empty(), command.NewError("boom")
}

func (failingDispatcher) Suggest(context.Context, command.Subject, command.Channel, string) ([]string, error) {
	return nil, command.NewError("boom")
}

func TestFailures(t *testing.T) {
	buf := &bytes.Buffer{}
	c := New(failingDispatcher{}, buf)

	assert.True(t, c.Eval(context.Background(), "anything"))
	assert.Contains(t, buf.String(), "error: boom")
	assert.Nil(t, c.Completer(context.Background())("x"))
}
