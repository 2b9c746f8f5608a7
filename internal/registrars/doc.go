// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package registrars holds helpers shared by the registrar implementations in
// its sub packages. Each sub package registers its registrar type with
// registrartypes.DefaultRegistry from init; import allregistrars to get them all.
package registrars
