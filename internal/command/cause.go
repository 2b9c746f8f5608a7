// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package command

import (
	"fmt"
	"io"
	"sync"
)

// Subject is whoever invoked a command. Permission semantics belong to the caller.
type Subject interface {
	// Identifier returns a stable identifier for the subject.
	Identifier() string
	// HasPermission reports whether the subject holds the named permission.
	HasPermission(permission string) bool
}

// Channel receives the messages a command produces.
type Channel interface {
	Send(msg string)
}

// Cause bundles the subject and the channel of an invocation.
type Cause struct {
	Subject Subject
	Channel Channel
}

// NewCause creates a Cause. A nil channel is replaced by a channel that discards messages.
func NewCause(subject Subject, channel Channel) Cause {
	if subject == nil {
		subject = SystemSubject{}
	}

	if channel == nil {
		channel = WriterChannel{W: io.Discard}
	}

	return Cause{Subject: subject, Channel: channel}
}

// Send is a shortcut for c.Channel.Send.
func (c Cause) Send(msg string) {
	if c.Channel == nil {
		return
	}

	c.Channel.Send(msg)
}

// Sendf formats and sends a message to the channel.
func (c Cause) Sendf(format string, args ...any) {
	c.Send(fmt.Sprintf(format, args...))
}

// SystemSubject is the console subject. It holds every permission.
type SystemSubject struct{}

// Identifier implements Subject.
func (SystemSubject) Identifier() string {
	return "console"
}

// HasPermission implements Subject.
func (SystemSubject) HasPermission(string) bool {
	return true
}

// WriterChannel writes each message as a line to W.
type WriterChannel struct {
	W  io.Writer
	mu *sync.Mutex
}

// NewWriterChannel returns a channel that serializes writes to w.
func NewWriterChannel(w io.Writer) WriterChannel {
	return WriterChannel{W: w, mu: &sync.Mutex{}}
}

// Send implements Channel.
func (c WriterChannel) Send(msg string) {
	if c.W == nil {
		return
	}

	if c.mu != nil {
		c.mu.Lock()
		defer c.mu.Unlock()
	}

	_, _ = fmt.Fprintln(c.W, msg)
}

// BufferChannel collects messages in memory.
type BufferChannel struct {
	mu   sync.Mutex
	msgs []string
}

// Send implements Channel.
func (b *BufferChannel) Send(msg string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.msgs = append(b.msgs, msg)
}

// Messages returns a copy of the collected messages.
func (b *BufferChannel) Messages() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]string, len(b.msgs))
	copy(out, b.msgs)

	return out
}
