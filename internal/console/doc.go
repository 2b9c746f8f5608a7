// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package console is a line editing prompt over the command manager with
// history and tab completion.
package console
