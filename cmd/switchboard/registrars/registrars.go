// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package registrars implements the registrars command, which lists the registrar types.
package registrars

import (
	"context"

	"github.com/matt-FFFFFF/switchboard/cmd/cmdstate"
	"github.com/matt-FFFFFF/switchboard/internal/output"
	"github.com/urfave/cli/v3"
)

// RegistrarsCmd lists the registrar types manifests may use.
var RegistrarsCmd = &cli.Command{
	Name:  "registrars",
	Usage: "List registrar types available to manifests",
	Action: func(ctx context.Context, cmd *cli.Command) error {
		st, err := cmdstate.Build(ctx, nil)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		defer st.Close()

		output.WriteNames(cmd.Writer, "Registrar", st.Manager.Types())

		return nil
	},
}
