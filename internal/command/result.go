// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package command

// Result is the outcome of processing a command.
type Result struct {
	SuccessCount int    // Number of successful invocations.
	QueryResult  int    // Command specific query value, zero if unused.
	Unknown      bool   // True when no registered command matched the input.
	Message      string // Optional short summary for front ends.
}

// Empty returns a result with zero successes.
func Empty() Result {
	return Result{}
}

// Success returns a result with a single success.
func Success() Result {
	return Result{SuccessCount: 1}
}

// Successes returns a result with n successes.
func Successes(n int) Result {
	return Result{SuccessCount: n}
}

// UnknownCommand returns the result for input that did not resolve to a command.
func UnknownCommand(alias string) Result {
	return Result{Unknown: true, Message: "unknown command: " + alias}
}

// Succeeded reports whether at least one invocation succeeded.
func (r Result) Succeeded() bool {
	return r.SuccessCount > 0
}

// HelpText is the help a registrar provides for one of its commands.
type HelpText struct {
	Short string // One line description.
	Usage string // Usage line, without the alias.
	Long  string // Extended help, may be empty.
}
