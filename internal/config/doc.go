// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config reads the process configuration from SWITCHBOARD_* environment
// variables. Command line flags are applied on top by the cmd package.
package config
