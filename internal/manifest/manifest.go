// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package manifest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/matt-FFFFFF/switchboard/internal/command"
	"github.com/matt-FFFFFF/switchboard/internal/registrars/builtin"
	"github.com/matt-FFFFFF/switchboard/internal/registrars/reply"
	"github.com/matt-FFFFFF/switchboard/internal/registrars/shell"
)

// ErrInvalidManifest is returned when a manifest is missing required fields.
var ErrInvalidManifest = errors.New("invalid manifest")

// Manifest is a set of plugins and their commands.
type Manifest struct {
	Source  string   `yaml:"-" toml:"-"`
	Plugins []Plugin `yaml:"plugins" toml:"plugins"`
}

// Plugin is a named owner of commands.
type Plugin struct {
	ID       string    `yaml:"id" toml:"id"`
	Commands []Command `yaml:"commands" toml:"commands"`
}

// Command declares one command. Which fields apply depends on Registrar.
type Command struct {
	Registrar        string            `yaml:"registrar" toml:"registrar"`
	Primary          string            `yaml:"primary" toml:"primary"`
	Aliases          []string          `yaml:"aliases,omitempty" toml:"aliases"`
	Description      string            `yaml:"description,omitempty" toml:"description"`
	Permission       string            `yaml:"permission,omitempty" toml:"permission"`
	Reply            string            `yaml:"reply,omitempty" toml:"reply"`
	Completions      []string          `yaml:"completions,omitempty" toml:"completions"`
	CommandLine      string            `yaml:"command_line,omitempty" toml:"command_line"`
	WorkingDirectory string            `yaml:"working_directory,omitempty" toml:"working_directory"`
	Env              map[string]string `yaml:"env,omitempty" toml:"env"`
	Builtin          string            `yaml:"builtin,omitempty" toml:"builtin"`
}

// Object returns the command object handed to the command's registrar.
// Registrar types this package does not know receive the Command itself.
func (c Command) Object() any {
	switch c.Registrar {
	case reply.TypeName:
		return reply.Command{
			Description: c.Description,
			Template:    c.Reply,
			Completions: c.Completions,
			Permission:  c.Permission,
		}
	case shell.TypeName:
		return shell.Command{
			Description:      c.Description,
			CommandLine:      c.CommandLine,
			WorkingDirectory: c.WorkingDirectory,
			Env:              c.Env,
			Permission:       c.Permission,
		}
	case builtin.TypeName:
		return builtin.Command(c.Builtin)
	default:
		return c
	}
}

// Validate checks the required fields of every plugin and command.
func (m *Manifest) Validate() error {
	var errs []error

	seen := make(map[string]struct{}, len(m.Plugins))

	for i, p := range m.Plugins {
		if strings.TrimSpace(p.ID) == "" {
			errs = append(errs, fmt.Errorf("%w: plugin %d has no id", ErrInvalidManifest, i))
			continue
		}

		if _, dup := seen[p.ID]; dup {
			errs = append(errs, fmt.Errorf("%w: plugin %q declared twice", ErrInvalidManifest, p.ID))
		}

		seen[p.ID] = struct{}{}

		for j, c := range p.Commands {
			if c.Primary == "" {
				errs = append(errs, fmt.Errorf("%w: plugin %q command %d has no primary alias", ErrInvalidManifest, p.ID, j))
			}

			if c.Registrar == "" {
				errs = append(errs, fmt.Errorf("%w: plugin %q command %q has no registrar", ErrInvalidManifest, p.ID, c.Primary))
			}
		}
	}

	return errors.Join(errs...)
}

// Owner returns the plugin ID as a command owner.
func (p Plugin) Owner() command.PluginID {
	return command.PluginID(p.ID)
}
