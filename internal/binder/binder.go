// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package binder

import (
	"context"
	"reflect"
	"sync"
)

// Provider supplies values of type T.
type Provider[T any] interface {
	Get(ctx context.Context) (T, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc[T any] func(ctx context.Context) (T, error)

// Get implements Provider.
func (f ProviderFunc[T]) Get(ctx context.Context) (T, error) {
	return f(ctx)
}

type instanceProvider[T any] struct {
	value T
}

func (p instanceProvider[T]) Get(context.Context) (T, error) {
	return p.value, nil
}

// Instance returns a provider that always supplies v.
func Instance[T any](v T) Provider[T] {
	return instanceProvider[T]{value: v}
}

// Binding pairs a key with its provider.
type Binding[T any] struct {
	key      Key[T]
	provider Provider[T]
}

// Key returns the key the binding was registered under.
func (b Binding[T]) Key() Key[T] {
	return b.key
}

// Provider returns the binding's provider.
func (b Binding[T]) Provider() Provider[T] {
	return b.provider
}

// Get is a shortcut for b.Provider().Get(ctx).
func (b Binding[T]) Get(ctx context.Context) (T, error) {
	return b.provider.Get(ctx)
}

// entry is the type-erased form of a Binding kept in the table.
type entry struct {
	classifier string
	classified bool
	binding    any
}

// Binder stores bindings in a multimap keyed by raw type.
// It is safe for concurrent use.
type Binder struct {
	mu       sync.RWMutex
	bindings map[reflect.Type][]entry
}

// New creates an empty Binder.
func New() *Binder {
	return &Binder{
		bindings: make(map[reflect.Type][]entry),
	}
}

// Len returns the total number of bindings.
func (b *Binder) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	n := 0
	for _, entries := range b.bindings {
		n += len(entries)
	}

	return n
}

// add inserts e ahead of every entry that is not more specific than it,
// so a newer binding shadows an older one with the same key.
func (b *Binder) add(t reflect.Type, e entry) {
	b.mu.Lock()
	defer b.mu.Unlock()

	entries := b.bindings[t]

	pos := len(entries)

	for i, existing := range entries {
		if compareSpecificity(e.classified, e.classifier, existing.classified, existing.classifier) <= 0 {
			pos = i
			break
		}
	}

	entries = append(entries, entry{})
	copy(entries[pos+1:], entries[pos:])
	entries[pos] = e
	b.bindings[t] = entries
}

func (b *Binder) entries(t reflect.Type) []entry {
	b.mu.RLock()
	defer b.mu.RUnlock()

	src := b.bindings[t]
	out := make([]entry, len(src))
	copy(out, src)

	return out
}

// Builder completes a binding started with Bind.
type Builder[T any] struct {
	binder *Binder
	key    Key[T]
}

// Bind starts a binding of key in b.
func Bind[T any](b *Binder, key Key[T]) *Builder[T] {
	return &Builder[T]{binder: b, key: key}
}

// ToProvider registers p under the builder's key.
func (bb *Builder[T]) ToProvider(p Provider[T]) Binding[T] {
	binding := Binding[T]{key: bb.key, provider: p}
	bb.binder.add(bb.key.Type(), entry{
		classifier: bb.key.classifier,
		classified: bb.key.classified,
		binding:    binding,
	})

	return binding
}

// ToInstance registers a provider that always returns v.
func (bb *Builder[T]) ToInstance(v T) Binding[T] {
	return bb.ToProvider(Instance(v))
}

// Get returns the first binding, in specificity order, whose key satisfies key.
// It returns false when no provider is available.
func Get[T any](b *Binder, key Key[T]) (Binding[T], bool) {
	if b == nil {
		return Binding[T]{}, false
	}

	for _, e := range b.entries(key.Type()) {
		binding, ok := e.binding.(Binding[T])
		if !ok {
			continue
		}

		if binding.key.Test(key) {
			return binding, true
		}
	}

	return Binding[T]{}, false
}

// Resolve looks up key and calls its provider. The boolean is false when
// nothing is bound for key.
func Resolve[T any](ctx context.Context, b *Binder, key Key[T]) (T, bool, error) {
	binding, ok := Get(b, key)
	if !ok {
		var zero T
		return zero, false, nil
	}

	v, err := binding.Get(ctx)

	return v, true, err
}
