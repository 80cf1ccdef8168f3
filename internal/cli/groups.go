/*
 * groups.go, part of molmod.
 *
 * Copyright 2024 Raul Mera <rmera{at}usachDOTcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func newGroupsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "groups",
		Short: "List the functional groups available for substitutions and additions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := GetApp(cmd)
			if err != nil {
				return err
			}
			cats := app.Catalog.Categories()
			if app.Options.OutputFormat == OutputJSON {
				return printJSON(cmd.OutOrStdout(), cats)
			}
			var rows [][]string
			for _, c := range cats {
				for _, g := range c.Groups {
					rows = append(rows, []string{c.Name, g.Name, strings.Join(g.Symbols, " ")})
				}
			}
			return printTable(cmd.OutOrStdout(), []string{"Category", "Group", "Atoms"}, rows)
		},
	}
}
