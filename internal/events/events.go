// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package events

import (
	"time"
)

// Event is a single change to the alias table.
type Event struct {
	Type      Type      // What happened.
	Alias     string    // Alias concerned, primary alias for mapping level events.
	Owner     string    // Owning plugin, if any.
	MappingID string    // Identifier of the mapping concerned, if any.
	Message   string    // Human-readable detail.
	Timestamp time.Time // When the event occurred.
}

// Type is the kind of an Event.
type Type int

const (
	// Registered indicates a new mapping was added to the table.
	Registered Type = iota
	// Unregistered indicates a mapping was removed from the table.
	Unregistered
	// Conflict indicates a registration failed because its primary alias was taken.
	Conflict
	// AliasSkipped indicates a secondary alias was already owned and was not claimed.
	AliasSkipped
	// ReloadStarted indicates the manager entered the reloading state.
	ReloadStarted
	// ReloadCompleted indicates a new table was published.
	ReloadCompleted
	// ReloadFailed indicates a reload was aborted and the previous table kept.
	ReloadFailed
)

// String implements the Stringer interface for Type.
func (t Type) String() string {
	switch t {
	case Registered:
		return "registered"
	case Unregistered:
		return "unregistered"
	case Conflict:
		return "conflict"
	case AliasSkipped:
		return "alias-skipped"
	case ReloadStarted:
		return "reload-started"
	case ReloadCompleted:
		return "reload-completed"
	case ReloadFailed:
		return "reload-failed"
	default:
		return "unknown"
	}
}

// New creates an event stamped with the current time.
func New(t Type, alias, owner, mappingID, msg string) Event {
	return Event{
		Type:      t,
		Alias:     alias,
		Owner:     owner,
		MappingID: mappingID,
		Message:   msg,
		Timestamp: time.Now(),
	}
}

// Reporter is the interface for sending events.
type Reporter interface {
	// Report sends an event. Implementations must not block the caller,
	// which may be holding the alias table's writer lock.
	Report(event Event)
	// Close signals that no more events will be sent.
	Close()
}

// Listener receives events.
type Listener interface {
	OnEvent(event Event)
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(Event)

// OnEvent implements Listener.
func (f ListenerFunc) OnEvent(event Event) {
	f(event)
}

// NullReporter discards every event.
type NullReporter struct{}

// Report implements Reporter by doing nothing.
func (NullReporter) Report(Event) {}

// Close implements Reporter by doing nothing.
func (NullReporter) Close() {}
