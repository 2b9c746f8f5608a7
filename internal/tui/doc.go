// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package tui provides a full screen Terminal User Interface (TUI) over the
// command manager. Commands are typed in an input line and their output is
// appended to a scrolling log. A side pane lists the registered aliases and is
// refreshed from alias table events, so registrations made by other goroutines
// or a reload show up live.
package tui
