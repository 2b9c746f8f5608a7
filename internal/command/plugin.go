// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package command

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// PluginID is the opaque identity of the plugin that owns a registration.
type PluginID string

// String implements fmt.Stringer.
func (p PluginID) String() string {
	return string(p)
}

// NormalizeAlias returns the lookup form of an alias.
// Aliases are compared case-insensitively using Unicode case folding.
func NormalizeAlias(alias string) string {
	// A Caser is stateful, so one is created per call.
	return cases.Fold().String(alias)
}

// ValidateAlias checks that an alias is non-empty and contains no whitespace.
func ValidateAlias(alias string) error {
	if alias == "" {
		return NewInvalidAliasError(alias, "alias is empty")
	}

	if strings.IndexFunc(alias, unicode.IsSpace) >= 0 {
		return NewInvalidAliasError(alias, "alias contains whitespace")
	}

	return nil
}

// NamespacedAlias returns the plugin-qualified form of an alias, e.g. "greeter:hello".
func NamespacedAlias(owner PluginID, alias string) string {
	return string(owner) + ":" + alias
}
