// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/matt-FFFFFF/switchboard/internal/command"
	"github.com/olekukonko/tablewriter"
)

// DescribeFunc returns the one line description of a mapping.
type DescribeFunc func(m *command.Mapping) string

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetBorder(true)
	table.SetAutoWrapText(false)

	align := make([]int, len(header))
	for i := range align {
		align[i] = tablewriter.ALIGN_LEFT
	}

	table.SetColumnAlignment(align)

	return table
}

// WriteMappings renders one row per mapping. describe may be nil.
func WriteMappings(w io.Writer, mappings []*command.Mapping, describe DescribeFunc) {
	if len(mappings) == 0 {
		fmt.Fprintln(w, InfoColor("No commands registered.")) //nolint:errcheck
		return
	}

	table := newTable(w, []string{"Plugin", "Command", "Aliases", "Registrar", "Description"})

	for _, m := range mappings {
		primary := command.NormalizeAlias(m.PrimaryAlias())

		others := make([]string, 0, len(m.Aliases()))
		for _, a := range m.Aliases() {
			if a != primary {
				others = append(others, a)
			}
		}

		desc := ""
		if describe != nil {
			desc = describe(m)
		}

		table.Append([]string{
			string(m.Owner()),
			m.PrimaryAlias(),
			strings.Join(others, ", "),
			m.Registrar().TypeName(),
			desc,
		})
	}

	table.Render()
}

// WritePlugins renders each plugin with the number of mappings it owns.
func WritePlugins(w io.Writer, mappings []*command.Mapping) {
	counts := make(map[command.PluginID]int)
	order := make([]command.PluginID, 0)

	for _, m := range mappings {
		if _, seen := counts[m.Owner()]; !seen {
			order = append(order, m.Owner())
		}

		counts[m.Owner()]++
	}

	if len(order) == 0 {
		fmt.Fprintln(w, InfoColor("No plugins own commands.")) //nolint:errcheck
		return
	}

	table := newTable(w, []string{"Plugin", "Commands"})
	for _, p := range order {
		table.Append([]string{string(p), strconv.Itoa(counts[p])})
	}

	table.Render()
}

// WriteNames renders a single column table.
func WriteNames(w io.Writer, header string, names []string) {
	table := newTable(w, []string{header})
	for _, n := range names {
		table.Append([]string{n})
	}

	table.Render()
}

// WriteResult prints a one line summary of a processed command.
func WriteResult(w io.Writer, res command.Result, err error) {
	switch {
	case err != nil:
		fmt.Fprintln(w, ErrorColor("error: "+err.Error())) //nolint:errcheck
	case res.Unknown:
		fmt.Fprintln(w, WarningColor(res.Message)) //nolint:errcheck
	case !res.Succeeded():
		fmt.Fprintln(w, WarningColor("command reported no success")) //nolint:errcheck
	}
}
