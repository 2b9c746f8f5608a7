// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package output

import "github.com/fatih/color"

// Terminal colours, disabled automatically when output is not a terminal.
var (
	InfoColor    = color.New(color.FgCyan).SprintFunc()
	SuccessColor = color.New(color.FgGreen).SprintFunc()
	WarningColor = color.New(color.FgYellow).SprintFunc()
	ErrorColor   = color.New(color.FgRed).SprintFunc()
	HeaderColor  = color.New(color.FgGreen, color.Bold).SprintFunc()
	AliasColor   = color.New(color.FgYellow).SprintFunc()
	DetailColor  = color.New(color.FgHiBlack).SprintFunc()
)
