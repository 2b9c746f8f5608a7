// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package registrartypes

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"
	"sync"

	"github.com/matt-FFFFFF/switchboard/internal/command"
)

var (
	// ErrUnknownRegistrarType is returned when a registrar type is not registered.
	ErrUnknownRegistrarType = errors.New("unknown registrar type")
	// ErrDuplicateRegistrarType is returned when a registrar type name is registered twice.
	ErrDuplicateRegistrarType = errors.New("registrar type already registered")
	// ErrEmptyRegistrarTypeName is returned when a registrar type has no name.
	ErrEmptyRegistrarTypeName = errors.New("registrar type name is empty")
)

// Registry holds registrar types keyed by name.
type Registry struct {
	mu    sync.RWMutex
	types map[string]command.RegistrarType
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{types: make(map[string]command.RegistrarType)}
}

// DefaultRegistry is the registry registrar packages add themselves to.
var DefaultRegistry = New()

// Register adds a registrar type to DefaultRegistry. It panics on invalid or
// duplicate names since it is meant to be called from init.
func Register(t command.RegistrarType) {
	if err := DefaultRegistry.Add(t); err != nil {
		panic(err)
	}
}

// Add adds a registrar type to the registry.
func (r *Registry) Add(t command.RegistrarType) error {
	name := t.Name()
	if name == "" {
		return ErrEmptyRegistrarTypeName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.types[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateRegistrarType, name)
	}

	r.types[name] = t

	return nil
}

// Get returns the registrar type with the given name.
func (r *Registry) Get(name string) (command.RegistrarType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, exists := r.types[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRegistrarType, name)
	}

	return t, nil
}

// Names returns the registered type names in lexical order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Sorted(maps.Keys(r.types))
}

// Iter iterates over the registrar types in name order.
func (r *Registry) Iter() iter.Seq2[string, command.RegistrarType] {
	return func(yield func(string, command.RegistrarType) bool) {
		for _, name := range r.Names() {
			t, err := r.Get(name)
			if err != nil {
				continue
			}

			if !yield(name, t) {
				return
			}
		}
	}
}
