// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package output

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/matt-FFFFFF/switchboard/internal/command"
	"github.com/stretchr/testify/assert"
)

type stubRegistrar struct{}

func (stubRegistrar) TypeName() string { return "stub" }

func (stubRegistrar) Register(context.Context, command.PluginID, any, string, ...string) (*command.Mapping, error) {
	return nil, nil
}

func (stubRegistrar) Process(context.Context, command.Cause, string, string) (command.Result, error) {
	return command.Success(), nil
}

func (stubRegistrar) Suggestions(context.Context, command.Cause, string, string) ([]string, error) {
	return nil, nil
}

func (stubRegistrar) Help(context.Context, command.Cause, string) (command.HelpText, bool) {
	return command.HelpText{}, false
}

func init() {
	color.NoColor = true
}

func TestWriteMappings(t *testing.T) {
	buf := &bytes.Buffer{}
	mappings := []*command.Mapping{
		command.NewMapping("Hello", []string{"hi", "hey"}, "greeter", stubRegistrar{}),
		command.NewMapping("uptime", nil, "tools", stubRegistrar{}),
	}

	WriteMappings(buf, mappings, func(m *command.Mapping) string {
		return "about " + m.PrimaryAlias()
	})

	out := buf.String()
	assert.Contains(t, out, "PLUGIN")
	assert.Contains(t, out, "greeter")
	assert.Contains(t, out, "hey, hi")
	assert.Contains(t, out, "about uptime")
	assert.Contains(t, out, "stub")
}

func TestWriteMappingsEmpty(t *testing.T) {
	buf := &bytes.Buffer{}
	WriteMappings(buf, nil, nil)
	assert.Contains(t, buf.String(), "No commands registered.")
}

func TestWritePlugins(t *testing.T) {
	buf := &bytes.Buffer{}
	WritePlugins(buf, []*command.Mapping{
		command.NewMapping("a", nil, "alpha", stubRegistrar{}),
		command.NewMapping("b", nil, "alpha", stubRegistrar{}),
		command.NewMapping("c", nil, "beta", stubRegistrar{}),
	})

	out := buf.String()
	assert.Contains(t, out, "alpha")
	assert.Contains(t, out, "2")
	assert.Contains(t, out, "beta")
}

func TestWriteResult(t *testing.T) {
	tests := []struct {
		name string
		res  command.Result
		err  error
		want string
	}{
		{name: "error", err: errors.New("boom"), want: "error: boom"},
		{name: "unknown", res: command.UnknownCommand("nope"), want: "unknown command: nope"},
		{name: "no success", res: command.Empty(), want: "no success"},
		{name: "success", res: command.Success(), want: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			WriteResult(buf, tc.res, tc.err)

			if tc.want == "" {
				assert.Empty(t, buf.String())
				return
			}

			assert.Contains(t, buf.String(), tc.want)
		})
	}
}
