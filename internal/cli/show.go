/*
 * show.go, part of molmod.
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
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	chem "github.com/rmera/molmod"
	"github.com/rmera/molmod/chemjson"
	"github.com/rmera/molmod/chemplot"
	"github.com/rmera/molmod/internal/logging"
	"github.com/spf13/cobra"
)

//readMolecule reads an XYZ file, possibly compressed, or a JSON molecule
//if the name ends in .json.
func readMolecule(name string) (*chem.Molecule, error) {
	if !strings.HasSuffix(strings.ToLower(name), ".json") {
		return chem.XYZFileRead(name)
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	mol, jerr := chemjson.DecodeMolecule(f)
	if jerr != nil {
		return nil, fmt.Errorf("%s: %w", name, jerr)
	}
	return mol, nil
}

func newShowCommand() *cobra.Command {
	var plotFile, plane string
	cmd := &cobra.Command{
		Use:   "show FILE",
		Short: "Print the atoms, formula and mass of a molecule",
		Long: "show prints the numbered atoms of the file, with the formula and mass of\n" +
			"the molecule. Files ending in .json are read as molecules in JSON format,\n" +
			"the rest as XYZ files, compressed if they end in .gz or .zst.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := GetApp(cmd)
			if err != nil {
				return err
			}
			if plane == "" {
				plane = app.Config.Export.Plane
			}
			pl, err := chemplot.ParsePlane(plane)
			if err != nil {
				return err
			}
			mol, err := readMolecule(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if app.Options.OutputFormat == OutputJSON {
				if jerr := chemjson.SendMolecule(mol, out); jerr != nil {
					return jerr
				}
			} else if err := showText(out, args[0], mol); err != nil {
				return err
			}
			if plotFile != "" {
				if err := chemplot.Save(plotFile, mol, pl, mol.Formula()); err != nil {
					return fmt.Errorf("can't plot %s: %w", args[0], err)
				}
				app.Logger.Debug("projection written", logging.String("file", plotFile), logging.String("plane", pl.String()))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&plotFile, "plot", "", "also draw the molecule to this image file (png, svg or pdf)")
	cmd.Flags().StringVar(&plane, "plane", "", "projection plane of the drawing: best, xy, xz or yz (default from the configuration)")
	return cmd
}

func showText(out io.Writer, name string, mol *chem.Molecule) error {
	mass, unknown := mol.Mass()
	fmt.Fprintf(out, "%s: %s\n", name, mol.Comment)
	fmt.Fprintf(out, "Formula: %s  Mass: %.3f", mol.Formula(), mass)
	if unknown > 0 {
		fmt.Fprintf(out, " (%d atoms of unknown mass)", unknown)
	}
	fmt.Fprintln(out)
	rows := make([][]string, mol.Len())
	for i, at := range mol.Atoms {
		rows[i] = []string{strconv.Itoa(i + 1), at.Symbol}
		for j := 0; j < 3; j++ {
			rows[i] = append(rows[i], strconv.FormatFloat(mol.Coords.At(i, j), 'f', 5, 64))
		}
	}
	return printTable(out, []string{"#", "Symbol", "X", "Y", "Z"}, rows)
}
