// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

var (
	// ErrUnknownFormat is returned for files whose extension is not a manifest format.
	ErrUnknownFormat = errors.New("unknown manifest format")
	// ErrDecode is returned when a manifest cannot be decoded.
	ErrDecode = errors.New("failed to decode manifest")
)

// Format is a manifest encoding.
type Format string

// Supported formats.
const (
	FormatYAML Format = "yaml"
	FormatHCL  Format = "hcl"
	FormatTOML Format = "toml"
)

// FormatOf returns the format of a file name by extension.
func FormatOf(name string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".hcl":
		return FormatHCL, true
	case ".toml":
		return FormatTOML, true
	default:
		return "", false
	}
}

// Decode decodes a manifest. name selects the format and is used in error messages.
func Decode(name string, data []byte) (*Manifest, error) {
	format, ok := FormatOf(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, name)
	}

	var (
		m   *Manifest
		err error
	)

	switch format {
	case FormatYAML:
		m, err = decodeYAML(data)
	case FormatHCL:
		m, err = decodeHCL(name, data)
	case FormatTOML:
		m, err = decodeTOML(data)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, name, err)
	}

	m.Source = name

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return m, nil
}

func decodeYAML(data []byte) (*Manifest, error) {
	m := new(Manifest)
	if len(bytes.TrimSpace(data)) == 0 {
		return m, nil
	}

	if err := yaml.UnmarshalWithOptions(data, m, yaml.Strict()); err != nil {
		return nil, err
	}

	return m, nil
}

func decodeTOML(data []byte) (*Manifest, error) {
	m := new(Manifest)

	md, err := toml.Decode(string(data), m)
	if err != nil {
		return nil, err
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown keys: %v", undecoded)
	}

	return m, nil
}

type hclFile struct {
	Plugins []hclPlugin `hcl:"plugin,block"`
}

type hclPlugin struct {
	ID       string       `hcl:"id,label"`
	Commands []hclCommand `hcl:"command,block"`
}

type hclCommand struct {
	Registrar        string            `hcl:"registrar,attr"`
	Primary          string            `hcl:"primary,label"`
	Aliases          []string          `hcl:"aliases,optional"`
	Description      string            `hcl:"description,optional"`
	Permission       string            `hcl:"permission,optional"`
	Reply            string            `hcl:"reply,optional"`
	Completions      []string          `hcl:"completions,optional"`
	CommandLine      string            `hcl:"command_line,optional"`
	WorkingDirectory string            `hcl:"working_directory,optional"`
	Env              map[string]string `hcl:"env,optional"`
	Builtin          string            `hcl:"builtin,optional"`
}

func decodeHCL(name string, data []byte) (*Manifest, error) {
	file, diags := hclsyntax.ParseConfig(data, name, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, diags
	}

	var f hclFile
	if diags := gohcl.DecodeBody(file.Body, evalContext(), &f); diags.HasErrors() {
		return nil, diags
	}

	m := &Manifest{Plugins: make([]Plugin, 0, len(f.Plugins))}

	for _, p := range f.Plugins {
		plugin := Plugin{ID: p.ID, Commands: make([]Command, 0, len(p.Commands))}

		for _, c := range p.Commands {
			plugin.Commands = append(plugin.Commands, Command(c))
		}

		m.Plugins = append(m.Plugins, plugin)
	}

	return m, nil
}

// evalContext exposes the process environment as env.NAME and a few string functions.
func evalContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value)

	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || !hclsyntax.ValidIdentifier(k) {
			continue
		}

		vars[k] = cty.StringVal(v)
	}

	env := cty.EmptyObjectVal
	if len(vars) > 0 {
		env = cty.ObjectVal(vars)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": env,
		},
		Functions: map[string]function.Function{
			"upper":  stdlib.UpperFunc,
			"lower":  stdlib.LowerFunc,
			"trim":   stdlib.TrimSpaceFunc,
			"join":   stdlib.JoinFunc,
			"format": stdlib.FormatFunc,
		},
	}
}
