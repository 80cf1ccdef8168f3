/*
 * chem.go, part of molmod.
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

package chem

import (
	"fmt"
	"sort"
	"strings"

	v3 "github.com/rmera/molmod/v3"
)

//Atom contains the information about one atom, except for the coordinates, which are
//kept in a v3.Matrix.
type Atom struct {
	Symbol string
	ID     int //1-based position of the atom in its molecule. Informational only.
}

//Copy returns a copy of the Atom object.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("Attempted to copy a nil atom")
	}
	ret := *A
	return &ret
}

/*****Topology type***/

//Topology contains the atoms of a molecule in order. The position of an atom in the
//slice is its identity. No bonds are kept.
type Topology struct {
	Atoms []*Atom
}

//NewTopology returns a topology with atoms with the given symbols, in order.
func NewTopology(symbols []string) *Topology {
	T := &Topology{Atoms: make([]*Atom, 0, len(symbols))}
	for i, s := range symbols {
		T.Atoms = append(T.Atoms, &Atom{Symbol: s, ID: i + 1})
	}
	return T
}

//Atom returns the Atom corresponding to the index i
//of the Atom slice in the Topology. Panics if
//out of range.
func (T *Topology) Atom(i int) *Atom {
	if i < 0 || i >= T.Len() {
		panic("Topology: Requested Atom out of bounds")
	}
	return T.Atoms[i]
}

//Len returns the number of atoms in the topology.
func (T *Topology) Len() int {
	if T == nil {
		return 0
	}
	return len(T.Atoms)
}

//Symbols returns a new slice with the symbols of all atoms, in order.
func (T *Topology) Symbols() []string {
	ret := make([]string, T.Len())
	for i, v := range T.Atoms {
		ret[i] = v.Symbol
	}
	return ret
}

//renumber sets the ID of each atom to its 1-based position.
func (T *Topology) renumber() {
	for i, at := range T.Atoms {
		at.ID = i + 1
	}
}

//CopyAtoms returns a deep copy of the topology.
func (T *Topology) CopyAtoms() *Topology {
	top := &Topology{Atoms: make([]*Atom, T.Len())}
	for key, val := range T.Atoms {
		top.Atoms[key] = val.Copy()
	}
	return top
}

/**Type Molecule**/

//Molecule is an ordered set of atoms and their cartesian coordinates. The number of
//atoms and coordinates always match (see Corrupted).
type Molecule struct {
	*Topology
	Coords  *v3.Matrix
	Comment string //the title/comment line of the file the molecule was read from.
}

//NewMolecule builds a molecule from a slice of symbols and a set of coordinates, which
//are used directly, not copied. It returns an error if the numbers of symbols and
//coordinates differ.
func NewMolecule(symbols []string, coords *v3.Matrix) (*Molecule, error) {
	if coords == nil {
		coords = v3.Zeros(0)
	}
	mol := &Molecule{Topology: NewTopology(symbols), Coords: coords}
	if err := mol.Corrupted(); err != nil {
		return nil, errDecorate(err, "NewMolecule")
	}
	return mol, nil
}

//Corrupted checks whether the molecule is corrupted, i.e. the
//coordinates don't match the number of atoms.
func (M *Molecule) Corrupted() error {
	if M == nil || M.Coords == nil {
		return fmt.Errorf("nil molecule or coordinates")
	}
	if M.Len() != M.Coords.NVecs() {
		return fmt.Errorf("inconsistent coordinates/atoms: Atoms %d, coords: %d", M.Len(), M.Coords.NVecs())
	}
	return nil
}

//Copy returns a deep copy of the molecule, including coordinates.
func (M *Molecule) Copy() *Molecule {
	if err := M.Corrupted(); err != nil {
		panic(err.Error()) //copying a corrupted molecule means that the program is wrong.
	}
	return &Molecule{
		Topology: M.CopyAtoms(),
		Coords:   v3.Clone(M.Coords),
		Comment:  M.Comment,
	}
}

//Coord returns a view of the coordinates of atom i. Changes to the view
//change the molecule. Panics if i is out of range.
func (M *Molecule) Coord(i int) *v3.Matrix {
	if i < 0 || i >= M.Coords.NVecs() {
		panic(fmt.Sprintf("Requested coordinate (%d) out of bounds (%d)", i, M.Coords.NVecs()))
	}
	return M.Coords.VecView(i)
}

//Without returns a new molecule equal to M minus the atom i.
//M is not modified.
func (M *Molecule) Without(i int) (*Molecule, error) {
	if err := CheckIndex(i, M.Len()); err != nil {
		return nil, errDecorate(err, "Without")
	}
	top := &Topology{Atoms: make([]*Atom, 0, M.Len()-1)}
	for k, at := range M.Atoms {
		if k != i {
			top.Atoms = append(top.Atoms, at.Copy())
		}
	}
	top.renumber()
	coords := v3.Zeros(M.Len() - 1)
	coords.DelVec(M.Coords, i)
	return &Molecule{Topology: top, Coords: coords, Comment: M.Comment}, nil
}

//Append returns a new molecule with the atoms of M followed by atoms with the given
//symbols and coordinates. M is not modified.
func (M *Molecule) Append(symbols []string, coords *v3.Matrix) (*Molecule, error) {
	if len(symbols) != coords.NVecs() {
		return nil, fmt.Errorf("Append: %d symbols but %d coordinates", len(symbols), coords.NVecs())
	}
	top := M.CopyAtoms()
	for _, s := range symbols {
		top.Atoms = append(top.Atoms, &Atom{Symbol: s})
	}
	top.renumber()
	c := v3.Zeros(M.Len() + len(symbols))
	c.Stack(M.Coords, coords)
	return &Molecule{Topology: top, Coords: c, Comment: M.Comment}, nil
}

//Mass returns the sum of the masses of the atoms in M. Atoms with elements for which the
//mass is not known are counted in the second return value, and do not contribute to the mass.
func (M *Molecule) Mass() (float64, int) {
	var mass float64
	var unknown int
	for _, at := range M.Atoms {
		m, ok := AtomicMass(at.Symbol)
		if !ok {
			unknown++
			continue
		}
		mass += m
	}
	return mass, unknown
}

//Formula returns the molecular formula of M in Hill order (C, H, then the
//rest alphabetically; alphabetically for everything if there is no C).
func (M *Molecule) Formula() string {
	count := make(map[string]int)
	for _, at := range M.Atoms {
		count[at.Symbol]++
	}
	keys := make([]string, 0, len(count))
	for k := range count {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if count["C"] > 0 {
		ordered := []string{"C"}
		if count["H"] > 0 {
			ordered = append(ordered, "H")
		}
		for _, k := range keys {
			if k != "C" && k != "H" {
				ordered = append(ordered, k)
			}
		}
		keys = ordered
	}
	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		if count[k] > 1 {
			fmt.Fprintf(&b, "%d", count[k])
		}
	}
	return b.String()
}
