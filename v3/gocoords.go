/*
 * gocoords.go, part of molmod.
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

package v3

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const appzero float64 = 0.000000000001 //used to correct floating point
//errors. Everything equal or less than this is considered zero.

//NVecs returns the number of vecs in F.
func (F *Matrix) NVecs() int {
	if F == nil || F.Dense == nil || F.IsEmpty() {
		return 0
	}
	r, c := F.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return r
}

//Len is the same as NVecs.
func (F *Matrix) Len() int {
	return F.NVecs()
}

//Clone returns a new Matrix with the same values as A, not sharing memory with it.
func Clone(A *Matrix) *Matrix {
	ret := Zeros(A.NVecs())
	if ret.NVecs() > 0 {
		ret.Copy(A.Dense)
	}
	return ret
}

//AddVec adds the vector vec to each vector of A, putting the result on the receiver.
func (F *Matrix) AddVec(A, vec *Matrix) {
	ar := A.NVecs()
	if vec.NVecs() != 1 || F.NVecs() != ar {
		panic(ErrShape)
	}
	v := mat.Row(nil, 0, vec) //vec could be a view of A or F.
	for i := 0; i < ar; i++ {
		f := F.RawRowView(i)
		floats.AddTo(f, A.RawRowView(i), v)
	}
}

//SubVec subtracts the vector vec from each vector of A, putting
//the result on the receiver.
func (F *Matrix) SubVec(A, vec *Matrix) {
	ar := A.NVecs()
	if vec.NVecs() != 1 || F.NVecs() != ar {
		panic(ErrShape)
	}
	v := mat.Row(nil, 0, vec)
	for i := 0; i < ar; i++ {
		f := F.RawRowView(i)
		floats.SubTo(f, A.RawRowView(i), v)
	}
}

//DelVec puts in F a copy of A without the ith vector.
//F must have exactly one vector less than A.
func (F *Matrix) DelVec(A *Matrix, i int) {
	ar := A.NVecs()
	if i < 0 || i >= ar || F.NVecs() != ar-1 {
		panic(ErrShape)
	}
	row := make([]float64, 3)
	j := 0
	for k := 0; k < ar; k++ {
		if k == i {
			continue
		}
		F.SetRow(j, mat.Row(row, k, A))
		j++
	}
}

//Stack puts in F the vectors of A followed by those of B.
//F must have room for at least A.NVecs()+B.NVecs() vectors.
func (F *Matrix) Stack(A, B *Matrix) {
	ar := A.NVecs()
	br := B.NVecs()
	if F.NVecs() < ar+br {
		panic(ErrShape)
	}
	row := make([]float64, 3)
	for i := 0; i < ar; i++ {
		F.SetRow(i, mat.Row(row, i, A))
	}
	for i := 0; i < br; i++ {
		F.SetRow(ar+i, mat.Row(row, i, B))
	}
}

//Cross puts the cross product of the first vecs of a and b in the first vec of F. Panics if error.
func (F *Matrix) Cross(a, b *Matrix) {
	if a.NVecs() < 1 || b.NVecs() < 1 || F.NVecs() < 1 {
		panic(ErrNoCrossProduct)
	}
	x := a.At(0, 1)*b.At(0, 2) - a.At(0, 2)*b.At(0, 1)
	y := a.At(0, 2)*b.At(0, 0) - a.At(0, 0)*b.At(0, 2)
	z := a.At(0, 0)*b.At(0, 1) - a.At(0, 1)*b.At(0, 0)
	F.Set(0, 0, x)
	F.Set(0, 1, y)
	F.Set(0, 2, z)
}

//Dot returns the dot product of the first vectors of F and A.
func (F *Matrix) Dot(A *Matrix) float64 {
	return floats.Dot(mat.Row(nil, 0, F), mat.Row(nil, 0, A))
}

//Norm2 returns the euclidean norm of the first vector of F.
func (F *Matrix) Norm2() float64 {
	return floats.Norm(mat.Row(nil, 0, F), 2)
}

//Unit puts in the receiver the first vector of A, normalized.
//Panics if A is (approximately) a zero vector.
func (F *Matrix) Unit(A *Matrix) {
	v := mat.Row(nil, 0, A)
	norm := floats.Norm(v, 2)
	if norm <= appzero {
		panic(ErrZeroVector)
	}
	floats.Scale(1/norm, v)
	F.SetRow(0, v)
}

//Distance returns the euclidean distance between the vector i of F and the vector j of A.
func (F *Matrix) Distance(i int, A *Matrix, j int) float64 {
	return floats.Distance(mat.Row(nil, i, F), mat.Row(nil, j, A), 2)
}

//Centroid returns the geometric center of the vectors in F, as a 1-vector Matrix.
//The centroid of an empty matrix is the origin.
func (F *Matrix) Centroid() *Matrix {
	ret := Zeros(1)
	n := F.NVecs()
	if n == 0 {
		return ret
	}
	col := make([]float64, n)
	for j := 0; j < 3; j++ {
		mat.Col(col, j, F)
		ret.Set(0, j, floats.Sum(col)/float64(n))
	}
	return ret
}
