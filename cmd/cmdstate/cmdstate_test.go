// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package cmdstate

import (
	"context"
	"testing"
	"time"

	"github.com/matt-FFFFFF/switchboard/internal/command"
	"github.com/matt-FFFFFF/switchboard/internal/config"
	"github.com/matt-FFFFFF/switchboard/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testConfig(manifests ...string) config.Config {
	return config.Config{
		LogLevel:     "WARN",
		LogFormat:    "pretty",
		Manifests:    manifests,
		FetchTimeout: time.Second,
		EventBuffer:  64,
		ReplyVars:    map[string]string{"who": "world"},
	}
}

func withConfig(cfg config.Config) context.Context {
	return context.WithValue(context.Background(), configKey{}, cfg)
}

func TestBuild_RegistersManifestCommands(t *testing.T) {
	ctx := withConfig(testConfig("testdata/plugins.yaml"))

	st, err := Build(ctx, events.ListenerFunc(func(events.Event) {}))
	require.NoError(t, err)
	defer st.Close()

	ch := &command.BufferChannel{}
	res, err := st.Manager.Process(ctx, command.SystemSubject{}, ch, "hi")
	require.NoError(t, err)
	assert.True(t, res.Succeeded())
	assert.Equal(t, []string{"hello world"}, ch.Messages())

	mapping, ok := st.Manager.Mapping("greet")
	require.True(t, ok)
	assert.Equal(t, command.PluginID("greeter"), mapping.Owner(), "first claim wins")

	_, ok = st.Manager.Mapping("ping")
	assert.True(t, ok, "a conflicting command does not stop the rest of the manifest")
}

func TestBuild_RegistersBuiltins(t *testing.T) {
	ctx := withConfig(testConfig())

	st, err := Build(ctx, nil)
	require.NoError(t, err)
	defer st.Close()

	assert.Subset(t, st.Manager.Types(), []string{"builtin", "reply", "shell"})

	ch := &command.BufferChannel{}
	res, err := st.Manager.Process(ctx, command.SystemSubject{}, ch, "plugins")
	require.NoError(t, err)
	assert.True(t, res.Succeeded())
}

func TestBuild_MissingManifestFails(t *testing.T) {
	ctx := withConfig(testConfig("testdata/does-not-exist.yaml"))

	st, err := Build(ctx, nil)
	require.ErrorIs(t, err, ErrManifest)
	assert.Nil(t, st)
}

func TestReload(t *testing.T) {
	ctx := withConfig(testConfig("testdata/plugins.yaml"))

	require.NoError(t, Reload(ctx), "no active state")

	st, err := Build(ctx, nil)
	require.NoError(t, err)

	require.NoError(t, Reload(ctx))

	_, ok := st.Manager.Mapping("ping")
	assert.True(t, ok, "manifest commands survive a reload")

	st.Close()
	assert.Nil(t, active.Load())
	require.NoError(t, Reload(ctx))
}

func TestConfigFrom(t *testing.T) {
	cfg := testConfig("a.yaml")

	got, err := ConfigFrom(withConfig(cfg))
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
