// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/matt-FFFFFF/switchboard/internal/events"
)

var _ events.Listener = (*Forwarder)(nil)

// Forwarder forwards alias table events to the TUI program.
// Events received before a program is attached are dropped.
type Forwarder struct {
	program *tea.Program
	closed  bool
	mutex   sync.RWMutex
}

// Attach sets the program events are sent to.
func (f *Forwarder) Attach(p *tea.Program) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	f.program = p
}

// OnEvent implements events.Listener.
func (f *Forwarder) OnEvent(event events.Event) {
	f.mutex.RLock()
	defer f.mutex.RUnlock()

	if f.closed || f.program == nil {
		return
	}

	f.program.Send(EventMsg{Event: event})
}

// Close stops forwarding.
func (f *Forwarder) Close() {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	f.closed = true
}

// Runner manages the TUI application.
type Runner struct {
	program   *tea.Program
	forwarder *Forwarder
}

// NewRunner creates a new TUI runner over host. Events passed to forwarder
// are shown once the runner exists.
func NewRunner(ctx context.Context, host Host, forwarder *Forwarder, opts ...tea.ProgramOption) *Runner {
	if forwarder == nil {
		forwarder = &Forwarder{}
	}

	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	program := tea.NewProgram(NewModel(ctx, host), opts...)
	forwarder.Attach(program)

	return &Runner{
		program:   program,
		forwarder: forwarder,
	}
}

// Run blocks until the user quits or the context is done.
func (r *Runner) Run() error {
	defer r.forwarder.Close()

	_, err := r.program.Run()

	return err
}
