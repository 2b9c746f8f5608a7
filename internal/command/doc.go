// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package command defines the contract shared by the command manager and the
// pluggable command frameworks (registrars) that register commands with it.
//
// A registrar claims aliases through an AliasRegisterer and receives a Mapping in return.
// The manager later routes execution, completion and help requests to the registrar
// that owns an alias, always passing the mapping's primary alias.
package command
