// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package signalbroker listens for OS signals. Termination signals cancel the
// running command; SIGHUP asks the command manager to reload its registrars.
package signalbroker

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/matt-FFFFFF/switchboard/internal/ctxlog"
)

// TermSignals end the process.
var TermSignals = []os.Signal{
	syscall.SIGINT,
	syscall.SIGTERM,
	syscall.SIGQUIT,
	os.Interrupt,
}

// ReloadSignals trigger a reload.
var ReloadSignals = []os.Signal{
	syscall.SIGHUP,
}

// New creates a channel notified of sigs. With no sigs it is notified of
// TermSignals and ReloadSignals.
func New(ctx context.Context, sigs ...os.Signal) chan os.Signal {
	ch := make(chan os.Signal, 1)

	if len(sigs) == 0 {
		sigs = append(append([]os.Signal{}, TermSignals...), ReloadSignals...)
	}

	ctxlog.Debug(ctx, "creating signal broker", "signals", sigs)
	signal.Notify(ch, sigs...)

	return ch
}

// Stop stops delivery to ch.
func Stop(ch chan os.Signal) {
	signal.Stop(ch)
}
