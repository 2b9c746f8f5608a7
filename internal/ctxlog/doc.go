// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog carries a *slog.Logger in a context.Context.
//
// Every package logs through Logger(ctx) or the Debug, Info, Warn and Error
// shortcuts. The level is shared through LevelVar. Two output formats exist:
// a pretty single line console format, coloured on terminals, and JSON.
package ctxlog
