/*
 * engine.go, part of molmod.
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

package edit

import (
	"errors"
	"fmt"

	chem "github.com/rmera/molmod"
)

//ErrEmptyGroup is returned when a substitution or addition is requested with a
//group without atoms.
var ErrEmptyGroup = errors.New("empty functional group")

//ErrEmptyMolecule is returned when a deletion would remove the only atom of
//a molecule. A molecule without atoms can't be written as XYZ.
var ErrEmptyMolecule = errors.New("can't delete the only atom of the molecule")

func errDecorate(err error, caller string) error {
	if err2, ok := err.(chem.Error); ok {
		err2.Decorate(caller)
	}
	return err
}

func check(mol *chem.Molecule, i int, group []string, needGroup bool) error {
	if err := mol.Corrupted(); err != nil {
		return err
	}
	if err := chem.CheckIndex(i, mol.Len()); err != nil {
		return err
	}
	if needGroup && len(group) == 0 {
		return ErrEmptyGroup
	}
	return nil
}

//Deletion returns a new molecule equal to mol without the atom i. The only
//atom of a molecule can't be deleted.
func Deletion(mol *chem.Molecule, i int) (*chem.Molecule, error) {
	if err := check(mol, i, nil, false); err != nil {
		return nil, errDecorate(err, "Deletion")
	}
	if mol.Len() == 1 {
		return nil, ErrEmptyMolecule
	}
	ret, err := mol.Without(i)
	return ret, errDecorate(err, "Deletion")
}

//Substitution returns a new molecule where the atom i of mol has been replaced
//by group. The atoms of the group are appended at the end of the molecule,
//the first one in the position of the replaced atom.
func Substitution(mol *chem.Molecule, i int, group []string) (*chem.Molecule, error) {
	if err := check(mol, i, group, true); err != nil {
		return nil, errDecorate(err, "Substitution")
	}
	pos := place(mol.Coord(i), openDirection(mol, i), mol.Atom(i).Symbol, group, true)
	without, err := mol.Without(i)
	if err != nil {
		return nil, errDecorate(err, "Substitution")
	}
	ret, err := without.Append(group, pos)
	return ret, errDecorate(err, "Substitution")
}

//Addition returns a new molecule where group has been bonded to the atom i of mol.
//The atoms of the group are appended at the end of the molecule. The atom i is
//not changed.
func Addition(mol *chem.Molecule, i int, group []string) (*chem.Molecule, error) {
	if err := check(mol, i, group, true); err != nil {
		return nil, errDecorate(err, "Addition")
	}
	pos := place(mol.Coord(i), openDirection(mol, i), mol.Atom(i).Symbol, group, false)
	ret, err := mol.Append(group, pos)
	return ret, errDecorate(err, "Addition")
}

func (O Operation) apply(mol *chem.Molecule) (*chem.Molecule, error) {
	switch O.Kind {
	case KindSubstitution:
		return Substitution(mol, O.Index, O.Group)
	case KindAddition:
		return Addition(mol, O.Index, O.Group)
	case KindDeletion:
		return Deletion(mol, O.Index)
	}
	return nil, fmt.Errorf("unknown operation kind %d", int(O.Kind))
}

//batchError records in err the position k of the failing operation.
func batchError(err error, k int, op Operation, caller string) error {
	var ierr *chem.IndexError
	if errors.As(err, &ierr) {
		ierr.Operation = k
		return errDecorate(err, caller)
	}
	if _, ok := err.(chem.Error); ok {
		return errDecorate(err, caller)
	}
	return fmt.Errorf("%s: operation %d (%s): %w", caller, k, op.Kind, err)
}

//Apply applies ops to mol, in order. The index of each operation refers to the
//molecule as left by the previous operations. The first operation that fails
//stops the process, and its error is returned with no molecule. mol is not modified.
func Apply(mol *chem.Molecule, ops []Operation) (*chem.Molecule, error) {
	if err := mol.Corrupted(); err != nil {
		return nil, errDecorate(err, "Apply")
	}
	cur := mol
	for k, op := range ops {
		next, err := op.apply(cur)
		if err != nil {
			return nil, batchError(err, k, op, "Apply")
		}
		cur = next
	}
	if cur == mol {
		cur = mol.Copy()
	}
	return cur, nil
}

//ApplyOriginal applies ops to mol, where the indexes of all operations refer
//to the atoms of mol, as they are before any operation is applied.
//The operations are applied in the order given by Schedule, and each index is
//translated to the current position of its atom. An operation on an atom
//removed by a previous substitution or deletion fails with a *chem.IndexError.
//As with Apply, the first failure stops the process, and mol is not modified.
func ApplyOriginal(mol *chem.Molecule, ops []Operation) (*chem.Molecule, error) {
	if err := mol.Corrupted(); err != nil {
		return nil, errDecorate(err, "ApplyOriginal")
	}
	n := mol.Len()
	//current position of each original atom, -1 for removed atoms.
	current := make([]int, n)
	for i := range current {
		current[i] = i
	}
	cur := mol
	for _, k := range schedule(ops) {
		op := ops[k]
		if err := chem.CheckIndex(op.Index, n); err != nil {
			return nil, batchError(err, k, op, "ApplyOriginal")
		}
		at := current[op.Index]
		if at < 0 {
			return nil, batchError(chem.NewRemovedAtomError(op.Index, n), k, op, "ApplyOriginal")
		}
		translated := op
		translated.Index = at
		next, err := translated.apply(cur)
		if err != nil {
			return nil, batchError(err, k, op, "ApplyOriginal")
		}
		if op.removes() {
			current[op.Index] = -1
			for o, c := range current {
				if c > at {
					current[o] = c - 1
				}
			}
		}
		cur = next
	}
	if cur == mol {
		cur = mol.Copy()
	}
	return cur, nil
}
