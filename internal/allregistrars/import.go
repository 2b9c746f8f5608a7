// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package allregistrars imports every registrar package so their registrar
// types are added to registrartypes.DefaultRegistry.
package allregistrars

import (
	// Import all registrar packages to trigger their init() functions.
	_ "github.com/matt-FFFFFF/switchboard/internal/registrars/builtin"
	_ "github.com/matt-FFFFFF/switchboard/internal/registrars/reply"
	_ "github.com/matt-FFFFFF/switchboard/internal/registrars/shell"
)
