// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"
	"slices"

	"github.com/matt-FFFFFF/switchboard/internal/ctxlog"
)

// ReloadFunc is called for every reload signal.
type ReloadFunc func(ctx context.Context) error

// Watch handles signals from sigCh until ctx is done or the channel is closed.
// A reload signal calls reload; a reload error is logged and watching continues.
// Any other signal calls cancel and returns.
func Watch(ctx context.Context, sigCh <-chan os.Signal, cancel context.CancelFunc, reload ReloadFunc) {
	for {
		select {
		case <-ctx.Done():
			return
		case sig, ok := <-sigCh:
			if !ok {
				return
			}

			if slices.Contains(ReloadSignals, sig) && reload != nil {
				ctxlog.Info(ctx, "received reload signal", "signal", sig.String())

				if err := reload(ctx); err != nil {
					ctxlog.Error(ctx, "reload failed", "error", err)
				}

				continue
			}

			ctxlog.Info(ctx, "received signal, stopping", "signal", sig.String())
			cancel()

			return
		}
	}
}
