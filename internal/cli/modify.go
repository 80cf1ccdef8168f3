/*
 * modify.go, part of molmod.
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
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	chem "github.com/rmera/molmod"
	"github.com/rmera/molmod/chemjson"
	"github.com/rmera/molmod/edit"
	"github.com/rmera/molmod/internal/logging"
	"github.com/spf13/cobra"
)

//opFlag is a repeatable flag that adds operations of one kind to a list
//shared by all the operation flags, so the list follows the order of
//the command line.
type opFlag struct {
	kind edit.Kind
	ops  *[]chemjson.Operation
}

func (f *opFlag) String() string { return "" }

func (f *opFlag) Type() string {
	if f.kind == edit.KindDeletion {
		return "atom"
	}
	return "atom:group"
}

func (f *opFlag) Set(s string) error {
	jo, err := parseOperation(f.kind, s)
	if err != nil {
		return err
	}
	*f.ops = append(*f.ops, jo)
	return nil
}

//parseOperation reads "ATOM" for deletions and "ATOM:GROUP" or
//"ATOM:CATEGORY/GROUP" for the rest. ATOM is 1-based.
func parseOperation(kind edit.Kind, s string) (chemjson.Operation, error) {
	jo := chemjson.Operation{Type: kind.String()}
	atom := s
	if kind != edit.KindDeletion {
		var group string
		var ok bool
		atom, group, ok = strings.Cut(s, ":")
		group = strings.TrimSpace(group)
		if !ok || group == "" {
			return jo, fmt.Errorf("expected ATOM:GROUP, got %q", s)
		}
		jo.Group = group
		if cat, g, ok := strings.Cut(group, "/"); ok {
			jo.Category, jo.Group = strings.TrimSpace(cat), strings.TrimSpace(g)
		}
	}
	n, err := strconv.Atoi(strings.TrimSpace(atom))
	if err != nil {
		return jo, fmt.Errorf("expected an atom number, got %q", atom)
	}
	jo.Atom = n
	return jo, nil
}

//readOperations reads a JSON list of operations from the file name.
func readOperations(name string) ([]chemjson.Operation, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	var jops []chemjson.Operation
	if err := json.Unmarshal(data, &jops); err != nil {
		return nil, fmt.Errorf("%s: can't decode operations: %w", name, err)
	}
	return jops, nil
}

//numberedFromOne rewrites index errors with atoms and operations numbered
//from 1, as the user gave them.
func numberedFromOne(err error) error {
	var ierr *chem.IndexError
	if !errors.As(err, &ierr) {
		return err
	}
	var msg string
	if ierr.Removed() {
		msg = fmt.Sprintf("atom %d was already removed by a previous operation", ierr.Index+1)
	} else {
		msg = fmt.Sprintf("there is no atom %d, the molecule has %d atoms", ierr.Index+1, ierr.Length)
	}
	if ierr.Operation >= 0 {
		msg = fmt.Sprintf("operation %d: %s", ierr.Operation+1, msg)
	}
	return errors.New(msg)
}

type modifyResult struct {
	File       string `json:"file"`
	Operations int    `json:"operations"`
	Atoms      int    `json:"atoms"`
	Formula    string `json:"formula"`
}

func newModifyCommand() *cobra.Command {
	var flagOps []chemjson.Operation
	var opsFile, outFile string
	var sequential bool
	cmd := &cobra.Command{
		Use:   "modify FILE",
		Short: "Substitute, add and delete functional groups and write the new geometry",
		Long: "modify applies the operations given with --sub, --add and --del, in that\n" +
			"order of appearance, after the ones in the --ops file. Atoms are numbered\n" +
			"from 1, as in the input file, and deletions are applied after everything\n" +
			"else. With --sequential, each number refers instead to the molecule as left\n" +
			"by the previous operation.",
		Example: "  molmod modify ethanol.xyz --sub 4:Methyl --add 3:Hydroxyl --del 9 -o new.xyz",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := GetApp(cmd)
			if err != nil {
				return err
			}
			var jops []chemjson.Operation
			if opsFile != "" {
				if jops, err = readOperations(opsFile); err != nil {
					return err
				}
			}
			jops = append(jops, flagOps...)
			if len(jops) == 0 {
				return fmt.Errorf("no operations given, use --sub, --add, --del or --ops")
			}
			ops, jerr := chemjson.Operations(jops, app.Catalog)
			if jerr != nil {
				return jerr
			}
			mol, err := readMolecule(args[0])
			if err != nil {
				return err
			}
			apply := edit.ApplyOriginal
			if sequential {
				apply = edit.Apply
			}
			res, err := apply(mol, ops)
			if err != nil {
				return numberedFromOne(err)
			}
			if outFile == "" {
				outFile = app.Config.Export.FileName
			}
			if outFile == "-" {
				return chem.XYZWrite(cmd.OutOrStdout(), res)
			}
			if err := chem.XYZFileWrite(outFile, res); err != nil {
				return err
			}
			app.Logger.Debug("molecule modified",
				logging.String("input", args[0]),
				logging.String("output", outFile),
				logging.Int("operations", len(ops)),
				logging.Int("atoms", res.Len()),
			)
			r := modifyResult{File: outFile, Operations: len(ops), Atoms: res.Len(), Formula: res.Formula()}
			if app.Options.OutputFormat == OutputJSON {
				return printJSON(cmd.OutOrStdout(), r)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d atoms, %s, after %d operations\n", r.File, r.Atoms, r.Formula, r.Operations)
			return err
		},
	}
	f := cmd.Flags()
	f.Var(&opFlag{kind: edit.KindSubstitution, ops: &flagOps}, "sub", "replace an atom by a group, e.g. 4:Methyl (repeatable)")
	f.Var(&opFlag{kind: edit.KindAddition, ops: &flagOps}, "add", "attach a group to an atom, e.g. 3:Hydroxyl (repeatable)")
	f.Var(&opFlag{kind: edit.KindDeletion, ops: &flagOps}, "del", "delete an atom (repeatable)")
	f.StringVar(&opsFile, "ops", "", "JSON file with a list of operations")
	f.StringVarP(&outFile, "out", "o", "", "output XYZ file, - for the standard output; .gz and .zst compress (default from the configuration)")
	f.BoolVar(&sequential, "sequential", false, "number the atoms of each operation after the previous ones are applied")
	return cmd
}
