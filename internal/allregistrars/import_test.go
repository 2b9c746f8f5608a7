// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package allregistrars

import (
	"testing"

	"github.com/matt-FFFFFF/switchboard/internal/registrartypes"
	"github.com/stretchr/testify/assert"
)

func TestAllRegistrarTypesRegistered(t *testing.T) {
	names := registrartypes.DefaultRegistry.Names()
	assert.Subset(t, names, []string{"builtin", "reply", "shell"})
}
