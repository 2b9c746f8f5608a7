// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package manager

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"
	"sync/atomic"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/switchboard/internal/aliastable"
	"github.com/matt-FFFFFF/switchboard/internal/binder"
	"github.com/matt-FFFFFF/switchboard/internal/command"
	"github.com/matt-FFFFFF/switchboard/internal/events"
	"github.com/matt-FFFFFF/switchboard/internal/registrartypes"
)

var _ command.AliasRegisterer = (*Manager)(nil)

var (
	// ErrNilRegistrar is returned when registering aliases without a registrar.
	ErrNilRegistrar = errors.New("registrar is nil")
	// ErrCreateRegistrar is returned when a registrar type fails to create a registrar.
	ErrCreateRegistrar = errors.New("failed to create registrar")
)

// State is the macro state of the manager.
type State int32

const (
	// Active is normal registration and dispatch.
	Active State = iota
	// Reloading means registrars are being recreated and their registrations replayed.
	Reloading
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case Reloading:
		return "reloading"
	default:
		return "unknown"
	}
}

// Option configures a Manager.
type Option func(*Manager)

// WithReporter sets the reporter that receives alias table events.
func WithReporter(r events.Reporter) Option {
	return func(m *Manager) {
		if r != nil {
			m.reporter = r
		}
	}
}

// WithBinder sets the binder handed to registrar types.
func WithBinder(b *binder.Binder) Option {
	return func(m *Manager) {
		if b != nil {
			m.binder = b
		}
	}
}

// WithNamespacedAliases makes every registration also offer "<plugin>:<alias>"
// for each of its aliases. Namespaced aliases are claimed best-effort.
func WithNamespacedAliases(enabled bool) Option {
	return func(m *Manager) {
		m.namespaced = enabled
	}
}

// registration is a successful tracked Register call, kept for reload replay.
// Entries with typeAdded set mark where a registrar type was added, so reload
// recreates that type's registrar at the same point of the replay.
type registration struct {
	typeName  string
	typeAdded bool
	owner     command.PluginID
	cmd       any
	primary   string
	secondary []string
	mapping   *command.Mapping
}

// Manager is the command manager. It is safe for concurrent use.
type Manager struct {
	// lifecycleMu serializes registrar type changes, tracked registrations and reload.
	// It is always taken before writeMu.
	lifecycleMu sync.Mutex
	// writeMu serializes alias table mutation and guards log.
	writeMu sync.Mutex

	table      *aliastable.Table
	types      map[string]command.RegistrarType
	typeOrder  []string
	registrars atomic.Pointer[map[string]command.Registrar]
	log        []*registration
	state      atomic.Int32

	reporter   events.Reporter
	binder     *binder.Binder
	namespaced bool
}

// New creates a Manager with an empty alias table.
func New(opts ...Option) *Manager {
	m := &Manager{
		table:    aliastable.New(),
		types:    make(map[string]command.RegistrarType),
		reporter: events.NullReporter{},
		binder:   binder.New(),
	}

	empty := make(map[string]command.Registrar)
	m.registrars.Store(&empty)

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// State returns the current macro state.
func (m *Manager) State() State {
	return State(m.state.Load())
}

// Binder returns the binder handed to registrar types.
func (m *Manager) Binder() *binder.Binder {
	return m.binder
}

// RegisterType adds a registrar type and creates its registrar instance.
func (m *Manager) RegisterType(ctx context.Context, t command.RegistrarType) error {
	m.lifecycleMu.Lock()
	defer m.lifecycleMu.Unlock()

	name := t.Name()
	if name == "" {
		return registrartypes.ErrEmptyRegistrarTypeName
	}

	if _, exists := m.types[name]; exists {
		return fmt.Errorf("%w: %s", registrartypes.ErrDuplicateRegistrarType, name)
	}

	inst, err := t.New(ctx, command.Deps{Aliases: &boundRegisterer{m: m}, Binder: m.binder})
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrCreateRegistrar, name, err)
	}

	m.types[name] = t
	m.typeOrder = append(m.typeOrder, name)

	next := maps.Clone(*m.registrars.Load())
	next[name] = inst
	m.registrars.Store(&next)

	m.writeMu.Lock()
	m.log = append(m.log, &registration{typeName: name, typeAdded: true})
	m.writeMu.Unlock()

	logger(ctx).Debug("registrar type added", "registrar", name)

	return nil
}

// RegisterTypes adds every type of reg. Failures are collected and returned together.
func (m *Manager) RegisterTypes(ctx context.Context, reg *registrartypes.Registry) error {
	var result *multierror.Error

	for _, t := range reg.Iter() {
		if err := m.RegisterType(ctx, t); err != nil {
			result = multierror.Append(result, err)
		}
	}

	return result.ErrorOrNil()
}

// Types returns the names of the known registrar types in the order they were added.
func (m *Manager) Types() []string {
	m.lifecycleMu.Lock()
	defer m.lifecycleMu.Unlock()

	out := make([]string, len(m.typeOrder))
	copy(out, m.typeOrder)

	return out
}

// Registrar returns the registrar for a type. Registrations made through it are
// recorded and replayed on reload against the type's fresh registrar.
func (m *Manager) Registrar(typeName string) (command.Registrar, error) {
	if _, ok := m.current(typeName); !ok {
		return nil, fmt.Errorf("%w: %s", registrartypes.ErrUnknownRegistrarType, typeName)
	}

	return &trackedRegistrar{m: m, typeName: typeName}, nil
}

// Register registers cmd with the registrar of typeName.
func (m *Manager) Register(
	ctx context.Context,
	typeName string,
	owner command.PluginID,
	cmd any,
	primary string,
	secondary ...string,
) (*command.Mapping, error) {
	r, err := m.Registrar(typeName)
	if err != nil {
		return nil, err
	}

	return r.Register(ctx, owner, cmd, primary, secondary...)
}

// current returns the live registrar instance for a type.
func (m *Manager) current(typeName string) (command.Registrar, bool) {
	r, ok := (*m.registrars.Load())[typeName]
	return r, ok
}

func (m *Manager) report(t events.Type, alias string, owner command.PluginID, mapping *command.Mapping, msg string) {
	id := ""
	if mapping != nil {
		id = mapping.ID().String()
	}

	m.reporter.Report(events.New(t, alias, string(owner), id, msg))
}
