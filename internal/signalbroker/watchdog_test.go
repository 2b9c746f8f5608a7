// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"errors"
	"os"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestWatchTermSignalCancels(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	done := make(chan struct{})

	go func() {
		defer close(done)
		Watch(ctx, sigCh, cancel, nil)
	}()

	sigCh <- os.Interrupt

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watch did not return")
	}

	assert.Error(t, ctx.Err())
}

func TestWatchReloadSignal(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32

	reload := func(context.Context) error {
		if calls.Add(1) == 1 {
			return errors.New("bad manifest")
		}

		return nil
	}

	sigCh := make(chan os.Signal, 2)
	done := make(chan struct{})

	go func() {
		defer close(done)
		Watch(ctx, sigCh, cancel, reload)
	}()

	sigCh <- syscall.SIGHUP
	sigCh <- syscall.SIGHUP

	assert.Eventually(t, func() bool { return calls.Load() == 2 }, time.Second, 5*time.Millisecond)
	assert.NoError(t, ctx.Err(), "reload must not cancel")

	close(sigCh)
	<-done
}

func TestWatchStopsOnContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal)
	done := make(chan struct{})

	go func() {
		defer close(done)
		Watch(ctx, sigCh, cancel, nil)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watch did not return")
	}
}
