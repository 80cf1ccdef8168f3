/*
 * handy.go, part of molmod.
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

package chem

import "math"

//BondFactor multiplies the sum of the covalent radii of two atoms to obtain
//the largest distance at which they are considered bonded.
const BondFactor = 1.3

//Deg2Rad converts f from degrees to radians.
func Deg2Rad(f float64) float64 {
	return f * math.Pi / 180
}

//Bonded returns the indexes of the atoms in mol that are closer to atom i than
//BondFactor times the sum of their covalent radii, in increasing order. No
//bond information is kept in a molecule, so this is only a distance criterion.
//Panics if i is out of range.
func Bonded(mol *Molecule, i int) []int {
	ri := CovRadius(mol.Atom(i).Symbol)
	ret := make([]int, 0, 4)
	for j, at := range mol.Atoms {
		if j == i {
			continue
		}
		cutoff := BondFactor * (ri + CovRadius(at.Symbol))
		if mol.Coords.Distance(i, mol.Coords, j) < cutoff {
			ret = append(ret, j)
		}
	}
	return ret
}
