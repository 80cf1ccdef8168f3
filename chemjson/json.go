/*
 * json.go, part of molmod.
 *
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
 *
 */

package chemjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	chem "github.com/rmera/molmod"
	"github.com/rmera/molmod/edit"
	"github.com/rmera/molmod/groups"
	v3 "github.com/rmera/molmod/v3"
)

//A ready-to-serialize container for an atom.
type Atom struct {
	Label  int        `json:"label"` //1-based
	Symbol string     `json:"symbol"`
	Coords [3]float64 `json:"coords"`
}

//A ready-to-serialize container for a molecule.
type Molecule struct {
	Comment     string  `json:"comment"`
	Formula     string  `json:"formula"`
	Mass        float64 `json:"mass"`
	UnknownMass int     `json:"unknown_mass,omitempty"` //atoms with no known mass
	Atoms       []Atom  `json:"atoms"`
}

//Operation is the JSON form of an edit operation, as sent by a client.
type Operation struct {
	Type     string `json:"type"`
	Atom     int    `json:"atom"` //1-based
	Category string `json:"category,omitempty"`
	Group    string `json:"group,omitempty"`
}

//Error kinds.
const (
	KindFormat   = "format"   //the geometry can't be parsed
	KindIndex    = "index"    //an operation refers to an atom that doesn't exist
	KindGroup    = "group"    //unknown or empty functional group
	KindRequest  = "request"  //malformed operations or request
	KindInternal = "internal" //anything else
)

//An easily JSON-serializable error type.
type Error struct {
	deco      []string
	Kind      string `json:"kind"`
	Line      int    `json:"line,omitempty"`      //for format errors, 1-based
	Atom      int    `json:"atom,omitempty"`      //for index errors, 1-based
	Operation int    `json:"operation,omitempty"` //for index errors, 1-based position in the batch
	Function  string `json:"function"`            //which go function gave the error
	Message   string `json:"message"`             //the error itself
}

//Error implements the error interface
func (J *Error) Error() string {
	return J.Message
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (J *Error) Decorate(dec string) []string {
	if dec == "" {
		return J.deco
	}
	J.deco = append(J.deco, dec)
	return J.deco
}

//Critical returns true for everything but request errors, which the
//client can fix.
func (J *Error) Critical() bool {
	return J.Kind != KindRequest
}

//Serializes the error. Panics on failure.
func (J *Error) Marshal() []byte {
	ret, err2 := json.Marshal(J)
	if err2 != nil {
		panic(strings.Join([]string{J.Error(), err2.Error()}, " - "))
	}
	return ret
}

//NewError takes an error and the name of the function that got it and
//creates a json-marshal-able error, classifying it by its type.
func NewError(function string, err error) *Error {
	jerr := &Error{Kind: KindInternal, Function: function, Message: err.Error()}
	var ferr *chem.FormatError
	var ierr *chem.IndexError
	var rerr *Error
	switch {
	case errors.As(err, &rerr):
		ret := *rerr
		ret.Function = function
		return &ret
	case errors.As(err, &ferr):
		jerr.Kind = KindFormat
		jerr.Line = ferr.Line()
	case errors.As(err, &ierr):
		jerr.Kind = KindIndex
		jerr.Atom = ierr.Index + 1
		if ierr.Operation >= 0 {
			jerr.Operation = ierr.Operation + 1
		}
	case errors.Is(err, groups.ErrUnknownGroup), errors.Is(err, edit.ErrEmptyGroup):
		jerr.Kind = KindGroup
	case errors.Is(err, edit.ErrEmptyMolecule), errors.Is(err, chem.ErrNoAtoms):
		jerr.Kind = KindRequest
	}
	return jerr
}

func requestError(function, format string, args ...any) *Error {
	return &Error{Kind: KindRequest, Function: function, Message: fmt.Sprintf(format, args...)}
}

//EncodeMolecule returns the JSON-ready form of mol.
func EncodeMolecule(mol *chem.Molecule) (*Molecule, *Error) {
	if err := mol.Corrupted(); err != nil {
		return nil, NewError("EncodeMolecule", err)
	}
	m, unknown := mol.Mass()
	ret := &Molecule{
		Comment:     mol.Comment,
		Formula:     mol.Formula(),
		Mass:        m,
		UnknownMass: unknown,
		Atoms:       make([]Atom, mol.Len()),
	}
	for i, at := range mol.Atoms {
		ret.Atoms[i] = Atom{Label: i + 1, Symbol: at.Symbol}
		for j := 0; j < 3; j++ {
			ret.Atoms[i].Coords[j] = mol.Coords.At(i, j)
		}
	}
	return ret, nil
}

//SendMolecule encodes mol and writes it to out.
func SendMolecule(mol *chem.Molecule, out io.Writer) *Error {
	const funcname = "SendMolecule"
	jm, jerr := EncodeMolecule(mol)
	if jerr != nil {
		jerr.Function = funcname
		return jerr
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(jm); err != nil {
		return NewError(funcname, err)
	}
	return nil
}

//DecodeMolecule reads a JSON molecule from in. Atoms are placed in the order of their labels,
//which must go from 1 to the number of atoms, with no repetitions.
//Formula and mass, if present, are ignored.
func DecodeMolecule(in io.Reader) (*chem.Molecule, *Error) {
	const funcname = "DecodeMolecule"
	jm := new(Molecule)
	if err := json.NewDecoder(in).Decode(jm); err != nil {
		return nil, requestError(funcname, "can't decode molecule: %s", err)
	}
	n := len(jm.Atoms)
	symbols := make([]string, n)
	raw := make([]float64, 3*n)
	seen := make([]bool, n)
	for _, at := range jm.Atoms {
		i := at.Label - 1
		if i < 0 || i >= n || seen[i] {
			return nil, requestError(funcname, "atom label %d repeated or out of range 1-%d", at.Label, n)
		}
		seen[i] = true
		if at.Symbol == "" {
			return nil, requestError(funcname, "atom %d has no symbol", at.Label)
		}
		symbols[i] = at.Symbol
		copy(raw[3*i:], at.Coords[:])
	}
	coords, err := v3.NewMatrix(raw)
	if err != nil {
		return nil, NewError(funcname, err)
	}
	mol, err := chem.NewMolecule(symbols, coords)
	if err != nil {
		return nil, NewError(funcname, err)
	}
	mol.Comment = jm.Comment
	return mol, nil
}

//DecodeOperations reads a JSON array of operations from in and returns them as
//edit operations, with 0-based indexes. Groups are looked up in cat, by category
//and name if a category is given, or by name only otherwise.
func DecodeOperations(in io.Reader, cat *groups.Catalog) ([]edit.Operation, *Error) {
	const funcname = "DecodeOperations"
	var jops []Operation
	if err := json.NewDecoder(in).Decode(&jops); err != nil {
		return nil, requestError(funcname, "can't decode operations: %s", err)
	}
	return Operations(jops, cat)
}

//Operations converts JSON operations into edit operations. See DecodeOperations.
func Operations(jops []Operation, cat *groups.Catalog) ([]edit.Operation, *Error) {
	const funcname = "Operations"
	ops := make([]edit.Operation, 0, len(jops))
	for n, jo := range jops {
		kind, err := edit.ParseKind(jo.Type)
		if err != nil {
			return nil, requestError(funcname, "operation %d: %s", n+1, err)
		}
		if jo.Atom < 1 {
			return nil, requestError(funcname, "operation %d: atoms are numbered from 1, got %d", n+1, jo.Atom)
		}
		op := edit.Operation{Kind: kind, Index: jo.Atom - 1}
		if kind != edit.KindDeletion {
			if jo.Category != "" {
				op.Group, err = cat.Lookup(jo.Category, jo.Group)
			} else {
				var g groups.Group
				g, _, err = cat.Find(jo.Group)
				op.Group = g.Symbols
			}
			if err != nil {
				jerr := NewError(funcname, err)
				jerr.Operation = n + 1
				return nil, jerr
			}
		}
		ops = append(ops, op)
	}
	return ops, nil
}
