// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package aliastable holds the process-wide map from normalized alias to the
// command mapping that owns it.
//
// Writers are serialized and work copy-on-write: every mutation builds a new
// Snapshot and publishes it atomically. Readers take a Snapshot and never observe
// a half-applied change.
package aliastable
