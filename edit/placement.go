/*
 * placement.go, part of molmod.
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
	"math"

	chem "github.com/rmera/molmod"
	v3 "github.com/rmera/molmod/v3"
	"gonum.org/v1/gonum/mat"
)

const (
	//distances below this are considered zero.
	appzero = 1e-6
	//two atoms of a group closer than this are moved apart.
	minSeparation = 0.1
	//the angle between the incoming bond axis of an atom and each of its
	//substituents, 180 minus the tetrahedral angle.
	coneAngle = 180 - 109.4712
	//each set of 3 substituents beyond the first is rotated this much.
	ringPhase = 40.0
)

//vec returns a 1-vector Matrix with the given components.
func vec(x, y, z float64) *v3.Matrix {
	v, _ := v3.NewMatrix([]float64{x, y, z})
	return v
}

//along returns a new vector p+s*d.
func along(p *v3.Matrix, s float64, d *v3.Matrix) *v3.Matrix {
	ret := v3.Zeros(1)
	ret.Scale(s, d)
	ret.AddVec(ret, p)
	return ret
}

//unit returns a new unit vector parallel to v, or nil if v is (almost)
//a zero vector.
func unit(v *v3.Matrix) *v3.Matrix {
	n := v.Norm2()
	if n < appzero || math.IsNaN(n) || math.IsInf(n, 0) {
		return nil
	}
	ret := v3.Zeros(1)
	ret.Unit(v)
	return ret
}

//perpendicular returns a unit vector orthogonal to the unit vector a.
func perpendicular(a *v3.Matrix) *v3.Matrix {
	ref := vec(1, 0, 0)
	if math.Abs(a.At(0, 0)) > 0.9 {
		ref = vec(0, 1, 0)
	}
	c := v3.Zeros(1)
	c.Cross(a, ref)
	return unit(c)
}

//openDirection returns the unit vector along which a new group should
//leave atom i of mol. It points away from the atoms bonded to i. If i has
//no bonded atoms, it points away from the rest of the molecule, and +z is
//used for a lonely atom.
func openDirection(mol *chem.Molecule, i int) *v3.Matrix {
	anchor := mol.Coord(i)
	sum := v3.Zeros(1)
	var first *v3.Matrix
	for _, j := range chem.Bonded(mol, i) {
		d := v3.Zeros(1)
		d.SubVec(mol.Coord(j), anchor)
		if d = unit(d); d == nil {
			continue //an atom on top of the anchor doesn't give a direction.
		}
		if first == nil {
			first = d
		}
		sum.AddVec(sum, d)
	}
	if first != nil {
		out := v3.Zeros(1)
		out.Scale(-1, sum)
		if d := unit(out); d != nil {
			return d
		}
		//The bonds cancel each other, as in a linear molecule.
		return perpendicular(first)
	}
	if mol.Len() > 1 {
		others, err := mol.Without(i)
		if err == nil {
			d := v3.Zeros(1)
			d.SubVec(anchor, others.Coords.Centroid())
			if d = unit(d); d != nil {
				return d
			}
		}
	}
	return vec(0, 0, 1)
}

//substituentDirection returns the direction of the kth substituent of an atom
//whose bond to its parent points along the unit vector axis. The first 3
//substituents lie on a cone of coneAngle around the axis, 120 degrees apart.
//Further substituents go on narrower cones, rotated by ringPhase each time.
func substituentDirection(axis *v3.Matrix, k int) *v3.Matrix {
	u := perpendicular(axis)
	v := v3.Zeros(1)
	v.Cross(axis, u)
	ring := k / 3
	theta := chem.Deg2Rad(coneAngle / float64(ring+1))
	phi := chem.Deg2Rad(float64(k%3)*120 + float64(ring)*ringPhase)
	d := along(v3.Zeros(1), math.Cos(theta), axis)
	d = along(d, math.Sin(theta)*math.Cos(phi), u)
	return along(d, math.Sin(theta)*math.Sin(phi), v)
}

//place returns coordinates for the atoms of group, attached to the anchor atom
//(with the given symbol and position) along the unit vector axis. If onAnchor
//is true, the first atom of the group takes the position of the anchor, otherwise
//it is bonded to it. The result is deterministic. The first atom is always the closest
//to the anchor, and no two atoms of the group are closer than minSeparation.
//anchor is not modified.
func place(anchor, axis *v3.Matrix, anchorSymbol string, group []string, onAnchor bool) *v3.Matrix {
	n := len(group)
	pos := make([]*v3.Matrix, n)
	pos[0] = v3.Clone(anchor)
	if !onAnchor {
		pos[0] = along(anchor, chem.CovRadius(anchorSymbol)+chem.CovRadius(group[0]), axis)
	}
	parent, paxis, k := 0, axis, 0
	for j := 1; j < n; j++ {
		d := substituentDirection(paxis, k)
		bond := chem.CovRadius(group[parent]) + chem.CovRadius(group[j])
		pos[j] = along(pos[parent], bond, d)
		k++
		//A heavy atom followed by hydrogens or carbons carries them.
		if group[j] != "H" && j+1 < n && (group[j+1] == "H" || group[j+1] == "C") {
			parent, paxis, k = j, d, 0
		}
	}
	spread(anchor, axis, pos)
	ret := v3.Zeros(n)
	for i, p := range pos {
		ret.SetRow(i, mat.Row(nil, 0, p))
	}
	return ret
}

//spread moves atoms of a group along axis, the direction in which the group
//leaves the anchor, until each of them is farther from the anchor than the first
//one, and at least minSeparation away from the atoms before it.
//The first atom is never moved.
func spread(anchor, axis *v3.Matrix, pos []*v3.Matrix) {
	r0 := pos[0].Distance(0, anchor, 0)
	rmin := r0 + minSeparation
	rel := v3.Zeros(1)
	for j := 1; j < len(pos); j++ {
		for moved := true; moved; {
			moved = false
			rel.SubVec(pos[j], anchor)
			if r := rel.Norm2(); r <= r0+appzero {
				//the point of the axis line through pos[j] that is rmin away
				//from the anchor, on the outer side.
				pa := rel.Dot(axis)
				pos[j] = along(pos[j], -pa+math.Sqrt(pa*pa-r*r+rmin*rmin), axis)
			}
			for i := 0; i < j; i++ {
				if pos[i].Distance(0, pos[j], 0) < minSeparation {
					pos[j] = along(pos[j], minSeparation, axis)
					moved = true
					break
				}
			}
		}
	}
}
