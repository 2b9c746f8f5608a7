// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package events carries notifications about changes to the alias table:
// registrations, conflicts, removals and reloads.
// Front ends such as the TUI listen to them to keep their views current.
package events
