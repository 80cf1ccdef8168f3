/*
 * v3_test.go
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
 */

package v3

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMatrix(Te *testing.T) {
	A, err := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	require.NoError(Te, err)
	assert.Equal(Te, 2, A.NVecs())
	_, err = NewMatrix([]float64{1, 2, 3, 4})
	require.Error(Te, err)
	var e Error
	require.ErrorAs(Te, err, &e)
	assert.True(Te, e.Critical())
	assert.Equal(Te, 0, Zeros(0).NVecs())
	assert.Equal(Te, 0, Zeros(0).Len())
}

func TestViewShares(Te *testing.T) {
	A, _ := NewMatrix([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9})
	View := A.VecView(1)
	View.Set(0, 0, 100)
	assert.Equal(Te, 100.0, A.At(1, 0))
	C := Clone(A)
	C.Set(0, 0, -1)
	assert.Equal(Te, 1.0, A.At(0, 0))
}

func TestDelAndStack(Te *testing.T) {
	a := []float64{1.0, 2.0, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	A, _ := NewMatrix(a)
	B := Zeros(3)
	B.DelVec(A, 1)
	assert.Equal(Te, 1.0, B.At(0, 0))
	assert.Equal(Te, 7.0, B.At(1, 0))
	assert.Equal(Te, 10.0, B.At(2, 0))
	S := Zeros(A.NVecs() + B.NVecs())
	S.Stack(A, B)
	assert.Equal(Te, 7, S.NVecs())
	assert.Equal(Te, 10.0, S.At(3, 0))
	assert.Equal(Te, 7.0, S.At(5, 0))
	One := Zeros(0)
	Single, _ := NewMatrix([]float64{1, 1, 1})
	One.DelVec(Single, 0)
	assert.Equal(Te, 0, One.NVecs())
	assert.Panics(Te, func() { B.DelVec(A, 7) })
}

func TestVecOps(Te *testing.T) {
	A, _ := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	row, _ := NewMatrix([]float64{10, 20, 30})
	A.AddVec(A, row)
	assert.Equal(Te, 11.0, A.At(0, 0))
	assert.Equal(Te, 36.0, A.At(1, 2))
	A.SubVec(A, row)
	assert.Equal(Te, 1.0, A.At(0, 0))
	x, _ := NewMatrix([]float64{1, 0, 0})
	y, _ := NewMatrix([]float64{0, 1, 0})
	z := Zeros(1)
	z.Cross(x, y)
	assert.InDelta(Te, 1.0, z.At(0, 2), 1e-12)
	assert.InDelta(Te, 0.0, z.Dot(x), 1e-12)
	u := Zeros(1)
	v, _ := NewMatrix([]float64{2, 2, 1})
	u.Unit(v)
	assert.InDelta(Te, 1.0, u.Norm2(), 1e-12)
	assert.InDelta(Te, 3.0, v.Distance(0, Zeros(1), 0), 1e-12)
	assert.Panics(Te, func() { u.Unit(Zeros(1)) })
}

func TestCentroid(Te *testing.T) {
	A, _ := NewMatrix([]float64{0, 0, 0, 2, 0, 0, 0, 4, 0, 2, 4, 8})
	c := A.Centroid()
	assert.InDelta(Te, 1.0, c.At(0, 0), 1e-12)
	assert.InDelta(Te, 2.0, c.At(0, 1), 1e-12)
	assert.InDelta(Te, 2.0, c.At(0, 2), 1e-12)
	assert.Equal(Te, 0.0, Zeros(0).Centroid().Norm2())
	assert.False(Te, math.IsNaN(c.Norm2()))
}
