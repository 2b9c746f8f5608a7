// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package manager arbitrates a shared command namespace between independent
// command frameworks (registrars).
//
// Registration resolves alias collisions first-claim-wins: the primary alias is
// claimed strictly, secondary aliases best-effort. Dispatch splits off the leading
// word of the input, resolves its owner and forwards the remainder to the owning
// registrar together with the mapping's primary alias.
//
// Registration, unregistration and reload are serialized. Dispatch and suggestion
// read an immutable snapshot of the alias table and never block on writers; while
// a reload is in progress they are answered from the table that was live when the
// reload started.
package manager
