// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package manager

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/matt-FFFFFF/switchboard/internal/command"
	"github.com/matt-FFFFFF/switchboard/internal/events"
	"github.com/stretchr/testify/require"
)

const fakeType = "fake"

var errRejected = errors.New("rejected by registrar")

// fakeCommand is the command object the fake registrar understands.
type fakeCommand struct {
	reply       string
	fail        bool
	suggestions []string
	// rejectFrom makes Register fail on registrar generations >= rejectFrom.
	rejectFrom int32
	pinned     bool
	// claimed runs after the aliases are claimed, before Register returns.
	claimed func()
}

type fakeRegistrar struct {
	aliases    command.AliasRegisterer
	generation int32

	mu   sync.Mutex
	cmds map[string]fakeCommand
}

func (r *fakeRegistrar) TypeName() string {
	return fakeType
}

func (r *fakeRegistrar) Register(
	ctx context.Context, owner command.PluginID, cmd any, primary string, secondary ...string,
) (*command.Mapping, error) {
	c, err := command.As[fakeCommand](cmd)
	if err != nil {
		return nil, err
	}

	if c.rejectFrom > 0 && r.generation >= c.rejectFrom {
		return nil, errRejected
	}

	m, err := r.aliases.RegisterAlias(ctx, r, owner, primary, secondary...)
	if err != nil {
		return nil, err
	}

	if c.claimed != nil {
		c.claimed()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.cmds[primary] = c

	return m, nil
}

func (r *fakeRegistrar) command(primary string) fakeCommand {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.cmds[primary]
}

func (r *fakeRegistrar) Process(
	_ context.Context, cause command.Cause, primary, args string,
) (command.Result, error) {
	c := r.command(primary)
	if c.fail {
		return command.Empty(), command.Errorf("%s failed", primary)
	}

	cause.Send(strings.TrimSpace(primary + " " + c.reply + " " + args))

	return command.Success(), nil
}

func (r *fakeRegistrar) Suggestions(_ context.Context, _ command.Cause, primary, _ string) ([]string, error) {
	return r.command(primary).suggestions, nil
}

func (r *fakeRegistrar) Help(_ context.Context, _ command.Cause, primary string) (command.HelpText, bool) {
	return command.HelpText{Short: "help for " + primary}, true
}

func (r *fakeRegistrar) Removable(m *command.Mapping) bool {
	return !r.command(m.PrimaryAlias()).pinned
}

// fakeRegistrarType counts the registrars it creates. failFrom makes New fail
// from that generation on.
type fakeRegistrarType struct {
	created  atomic.Int32
	failFrom int32
}

func (t *fakeRegistrarType) Name() string {
	return fakeType
}

func (t *fakeRegistrarType) New(_ context.Context, deps command.Deps) (command.Registrar, error) {
	gen := t.created.Add(1)
	if t.failFrom > 0 && gen >= t.failFrom {
		return nil, errors.New("cannot create registrar")
	}

	return &fakeRegistrar{aliases: deps.Aliases, generation: gen, cmds: map[string]fakeCommand{}}, nil
}

const systemType = "system"

// systemRegistrar claims its built-in "help" command when it is created.
type systemRegistrar struct {
	*fakeRegistrar
}

func (r *systemRegistrar) TypeName() string {
	return systemType
}

type systemRegistrarType struct {
	created atomic.Int32
}

func (t *systemRegistrarType) Name() string {
	return systemType
}

func (t *systemRegistrarType) New(ctx context.Context, deps command.Deps) (command.Registrar, error) {
	r := &systemRegistrar{&fakeRegistrar{
		aliases:    deps.Aliases,
		generation: t.created.Add(1),
		cmds:       map[string]fakeCommand{"help": {reply: "usage", pinned: true}},
	}}

	if _, err := deps.Aliases.RegisterAlias(ctx, r, "system", "help", "?"); err != nil {
		return nil, err
	}

	return r, nil
}

type recordingReporter struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recordingReporter) Report(e events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, e)
}

func (r *recordingReporter) Close() {}

func (r *recordingReporter) types() []events.Type {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]events.Type, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}

	return out
}

func newTestManager(t *testing.T, opts ...Option) (*Manager, *fakeRegistrarType) {
	t.Helper()

	typ := &fakeRegistrarType{}
	m := New(opts...)
	require.NoError(t, m.RegisterType(context.Background(), typ))

	return m, typ
}

func mustRegister(
	t *testing.T, m *Manager, owner command.PluginID, cmd fakeCommand, primary string, secondary ...string,
) *command.Mapping {
	t.Helper()

	mapping, err := m.Register(context.Background(), fakeType, owner, cmd, primary, secondary...)
	require.NoError(t, err)

	return mapping
}
