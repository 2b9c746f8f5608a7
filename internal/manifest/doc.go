// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package manifest reads declarative plugin manifests and registers their commands
// with the command manager.
//
// A manifest lists plugins and, per plugin, the commands it owns. Each command names
// the registrar type that serves it. Manifests can be written in YAML, HCL or TOML;
// the format is chosen by file extension. HCL manifests may reference environment
// variables as env.NAME.
package manifest
