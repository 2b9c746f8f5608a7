// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package binder provides a small type-and-classifier keyed lookup table that
// command frameworks use to resolve providers for their dependencies.
//
// Bindings for the same type are kept so that classified keys are tried before
// the unclassified default. Binding the same key twice is allowed: the most recent
// binding shadows the earlier one.
package binder
