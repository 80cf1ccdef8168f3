/*
 * files.go, part of molmod.
 *
 *
 * Copyright 2024 Raul Mera <rmera{at}usachDOTcl>
 *
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU Lesser General Public License as published by
    the Free Software Foundation, either version 2.1 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU Lesser General Public License
    along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 *
*/

package chem

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	v3 "github.com/rmera/molmod/v3"
)

//XYZPrecision is the number of decimals used for coordinates when writing XYZ files.
//8 decimals keep read/write round trips well under 1e-6.
const XYZPrecision = 8

//ErrNoAtoms is returned when writing a molecule without atoms.
var ErrNoAtoms = errors.New("the molecule has no atoms")

//XYZRead reads a single-frame XYZ file from r and returns a molecule.
//The first non-empty line must be the (positive) number of atoms, the next
//line is the comment line, and each of the following lines must contain
//exactly a symbol and 3 coordinates. Lines after the last atom are ignored.
//If the data can't be parsed, a *FormatError is returned, and no molecule.
func XYZRead(r io.Reader) (*Molecule, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineno := 0
	next := func() (string, bool) {
		if !sc.Scan() {
			return "", false
		}
		lineno++
		return strings.TrimRight(sc.Text(), "\r"), true
	}
	var line string
	var ok bool
	for {
		line, ok = next()
		if !ok {
			if err := sc.Err(); err != nil {
				return nil, fmt.Errorf("XYZRead: %w", err)
			}
			return nil, errDecorate(NewFormatError(0, "no atom count found"), "XYZRead")
		}
		if strings.TrimSpace(line) != "" {
			break
		}
	}
	natoms, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || natoms <= 0 {
		return nil, errDecorate(NewFormatError(lineno, "expected a positive number of atoms, got %q", strings.TrimSpace(line)), "XYZRead")
	}
	comment, ok := next()
	if !ok {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("XYZRead: %w", err)
		}
		return nil, errDecorate(NewFormatError(0, "%d atoms declared, 0 found", natoms), "XYZRead")
	}
	symbols := make([]string, 0, natoms)
	coords := make([]float64, 0, natoms*3)
	for i := 0; i < natoms; i++ {
		line, ok = next()
		if !ok {
			if err := sc.Err(); err != nil {
				return nil, fmt.Errorf("XYZRead: %w", err)
			}
			return nil, errDecorate(NewFormatError(0, "%d atoms declared, %d found", natoms, i), "XYZRead")
		}
		fields := strings.Fields(line)
		if len(fields) != 4 {
			return nil, errDecorate(NewFormatError(lineno, "expected a symbol and 3 coordinates, got %d fields", len(fields)), "XYZRead")
		}
		symbols = append(symbols, fields[0])
		for _, f := range fields[1:] {
			c, err := strconv.ParseFloat(f, 64)
			if err != nil || math.IsNaN(c) || math.IsInf(c, 0) {
				return nil, errDecorate(NewFormatError(lineno, "can't parse coordinate %q as a finite number", f), "XYZRead")
			}
			coords = append(coords, c)
		}
	}
	mcoords, err := v3.NewMatrix(coords)
	if err != nil {
		return nil, errDecorate(err, "XYZRead") //can't happen, we always add coordinates in 3s.
	}
	mol, err := NewMolecule(symbols, mcoords)
	if err != nil {
		return nil, errDecorate(err, "XYZRead")
	}
	mol.Comment = strings.TrimSpace(comment)
	return mol, nil
}

//XYZWrite writes mol to out in XYZ format. The comment line is the molecule's
//Comment, with any newline replaced by a space. A molecule without atoms is
//not written, since it could not be read back.
func XYZWrite(out io.Writer, mol *Molecule) error {
	if err := mol.Corrupted(); err != nil {
		return errDecorate(err, "XYZWrite")
	}
	if mol.Len() == 0 {
		return errDecorate(ErrNoAtoms, "XYZWrite")
	}
	w := bufio.NewWriter(out)
	comment := strings.NewReplacer("\r", " ", "\n", " ").Replace(mol.Comment)
	if _, err := fmt.Fprintf(w, "%d\n%s\n", mol.Len(), comment); err != nil {
		return errDecorate(err, "XYZWrite")
	}
	for i, at := range mol.Atoms {
		c := mol.Coords
		_, err := fmt.Fprintf(w, "%-2s  %14.*f  %14.*f  %14.*f\n", at.Symbol,
			XYZPrecision, c.At(i, 0), XYZPrecision, c.At(i, 1), XYZPrecision, c.At(i, 2))
		if err != nil {
			return errDecorate(err, "XYZWrite")
		}
	}
	return w.Flush()
}

//XYZStringWrite returns a string with mol in XYZ format.
func XYZStringWrite(mol *Molecule) (string, error) {
	var b strings.Builder
	if err := XYZWrite(&b, mol); err != nil {
		return "", errDecorate(err, "XYZStringWrite")
	}
	return b.String(), nil
}

//XYZFileRead reads an XYZ file. Files with the .zst and .gz extensions
//are decompressed with zstd and gzip, respectively.
func XYZFileRead(name string) (*Molecule, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var r io.Reader = f
	switch {
	case strings.HasSuffix(strings.ToLower(name), ".zst"):
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("XYZFileRead: %s: %w", name, err)
		}
		defer dec.Close()
		r = dec
	case strings.HasSuffix(strings.ToLower(name), ".gz"):
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("XYZFileRead: %s: %w", name, err)
		}
		defer gz.Close()
		r = gz
	}
	mol, err := XYZRead(r)
	if err != nil {
		return nil, errDecorate(err, "XYZFileRead")
	}
	return mol, nil
}

//XYZFileWrite writes mol to the file name, which is created or
//overwritten. The .zst and .gz extensions produce compressed files.
func XYZFileWrite(name string, mol *Molecule) error {
	if mol.Len() == 0 {
		return errDecorate(ErrNoAtoms, "XYZFileWrite")
	}
	out, err := os.Create(name)
	if err != nil {
		return err
	}
	var w io.WriteCloser
	switch {
	case strings.HasSuffix(strings.ToLower(name), ".zst"):
		w, err = zstd.NewWriter(out, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
		if err != nil {
			out.Close()
			return fmt.Errorf("XYZFileWrite: %s: %w", name, err)
		}
	case strings.HasSuffix(strings.ToLower(name), ".gz"):
		w = gzip.NewWriter(out)
	}
	if w == nil {
		err = XYZWrite(out, mol)
	} else {
		err = XYZWrite(w, mol)
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	return errDecorate(err, "XYZFileWrite")
}
