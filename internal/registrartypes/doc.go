// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package registrartypes provides a registry of registrar types by name.
// Registrar packages add themselves to DefaultRegistry from their init function.
package registrartypes
