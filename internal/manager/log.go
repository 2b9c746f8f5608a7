// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package manager

import (
	"context"
	"log/slog"

	"github.com/matt-FFFFFF/switchboard/internal/ctxlog"
)

func logger(ctx context.Context) *slog.Logger {
	return ctxlog.Logger(ctx).With("component", "manager")
}
