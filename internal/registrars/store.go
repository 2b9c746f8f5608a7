// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package registrars

import (
	"strings"
	"sync"
	"unicode"

	"github.com/matt-FFFFFF/switchboard/internal/command"
)

// Store keeps the commands of a registrar keyed by primary alias.
type Store[T any] struct {
	mu   sync.RWMutex
	cmds map[string]T
}

// NewStore creates an empty store.
func NewStore[T any]() *Store[T] {
	return &Store[T]{cmds: make(map[string]T)}
}

// Put stores v under primary.
func (s *Store[T]) Put(primary string, v T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cmds[primary] = v
}

// Get returns the value stored under primary.
func (s *Store[T]) Get(primary string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.cmds[primary]

	return v, ok
}

// Lookup is Get returning a command error for unknown primary aliases.
func (s *Store[T]) Lookup(primary string) (T, error) {
	v, ok := s.Get(primary)
	if !ok {
		return v, command.Errorf("no command registered for %q", primary)
	}

	return v, nil
}

// Len returns the number of stored commands.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.cmds)
}

// LastToken returns the argument being typed: the text after the last space,
// or "" when arguments ends with whitespace.
func LastToken(arguments string) string {
	i := strings.LastIndexFunc(arguments, unicode.IsSpace)
	return arguments[i+1:]
}

// FilterPrefix returns the candidates starting with prefix, compared case-insensitively.
// The result is never nil.
func FilterPrefix(candidates []string, prefix string) []string {
	prefix = command.NormalizeAlias(prefix)
	out := make([]string, 0, len(candidates))

	for _, c := range candidates {
		if strings.HasPrefix(command.NormalizeAlias(c), prefix) {
			out = append(out, c)
		}
	}

	return out
}

// CheckPermission returns a command error when the cause's subject lacks permission.
// An empty permission is always granted.
func CheckPermission(cause command.Cause, permission string) error {
	if permission == "" || cause.Subject == nil || cause.Subject.HasPermission(permission) {
		return nil
	}

	return command.Errorf("%s does not have permission %q", cause.Subject.Identifier(), permission)
}
