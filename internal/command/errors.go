// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package command

import (
	"errors"
	"fmt"
)

var (
	// ErrCommand matches every error raised while parsing or executing a command.
	ErrCommand = errors.New("command failed")
	// ErrAliasConflict is returned when a primary alias is already owned by another mapping.
	ErrAliasConflict = errors.New("alias already registered")
	// ErrInvalidAlias is returned for empty aliases or aliases containing whitespace.
	ErrInvalidAlias = errors.New("invalid alias")
	// ErrUnsupportedCommand is returned when a registrar is given a command object it cannot handle.
	ErrUnsupportedCommand = errors.New("unsupported command object")
	// ErrNoCommand is returned when processing empty input.
	ErrNoCommand = NewError("no command")
)

// Error is raised by registrars while parsing or executing a command.
// It is propagated unchanged to the caller of the manager.
type Error struct {
	Message string
	Err     error
}

// NewError creates a command error with the given message.
func NewError(msg string) *Error {
	return &Error{Message: msg}
}

// Errorf creates a command error with a formatted message.
// A %w verb wraps the underlying error as usual.
func Errorf(format string, args ...any) *Error {
	wrapped := fmt.Errorf(format, args...)

	return &Error{Message: wrapped.Error(), Err: errors.Unwrap(wrapped)}
}

// WrapError creates a command error around err.
func WrapError(msg string, err error) *Error {
	return &Error{Message: msg, Err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}

	return e.Message
}

// Unwrap allows errors.Is(err, ErrCommand) and exposes the wrapped error.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrCommand}
	}

	return []error{ErrCommand, e.Err}
}

// AliasConflictError reports that a primary alias is already owned.
type AliasConflictError struct {
	Alias    string
	Existing *Mapping
}

// NewAliasConflictError creates a new AliasConflictError.
func NewAliasConflictError(alias string, existing *Mapping) *AliasConflictError {
	return &AliasConflictError{Alias: alias, Existing: existing}
}

// Error implements the error interface.
func (e *AliasConflictError) Error() string {
	if e.Existing == nil {
		return fmt.Sprintf("%s: %q", ErrAliasConflict.Error(), e.Alias)
	}

	return fmt.Sprintf("%s: %q is owned by plugin %q (primary alias %q)",
		ErrAliasConflict.Error(), e.Alias, e.Existing.Owner(), e.Existing.PrimaryAlias())
}

// Is allows errors.Is(err, ErrAliasConflict).
func (e *AliasConflictError) Is(target error) bool {
	return target == ErrAliasConflict
}

// Owner returns the plugin that owns the conflicting alias.
func (e *AliasConflictError) Owner() PluginID {
	if e.Existing == nil {
		return ""
	}

	return e.Existing.Owner()
}

// InvalidAliasError reports an alias that cannot be registered.
type InvalidAliasError struct {
	Alias  string
	Reason string
}

// NewInvalidAliasError creates a new InvalidAliasError.
func NewInvalidAliasError(alias, reason string) *InvalidAliasError {
	return &InvalidAliasError{Alias: alias, Reason: reason}
}

// Error implements the error interface.
func (e *InvalidAliasError) Error() string {
	return fmt.Sprintf("%s %q: %s", ErrInvalidAlias.Error(), e.Alias, e.Reason)
}

// Is allows errors.Is(err, ErrInvalidAlias).
func (e *InvalidAliasError) Is(target error) bool {
	return target == ErrInvalidAlias
}
