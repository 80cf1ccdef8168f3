/*
 * json_test.go, part of molmod.
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

package chemjson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	chem "github.com/rmera/molmod"
	"github.com/rmera/molmod/edit"
	"github.com/rmera/molmod/groups"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

const water = "3\nwater-like\nO 0.0 0.0 0.0\nH 0.9 0.0 0.0\nH -0.2 0.9 0.0\n"

func TestSendAndDecodeMolecule(Te *testing.T) {
	mol, err := chem.XYZRead(strings.NewReader(water))
	require.NoError(Te, err)
	var buf bytes.Buffer
	require.Nil(Te, SendMolecule(mol, &buf))

	var raw map[string]any
	require.NoError(Te, json.Unmarshal(buf.Bytes(), &raw))
	assert.Equal(Te, "H2O", raw["formula"])
	atoms := raw["atoms"].([]any)
	require.Len(Te, atoms, 3)
	assert.Equal(Te, 1.0, atoms[0].(map[string]any)["label"])
	assert.Equal(Te, "H", atoms[2].(map[string]any)["symbol"])

	back, jerr := DecodeMolecule(&buf)
	require.Nil(Te, jerr)
	assert.Equal(Te, mol.Symbols(), back.Symbols())
	assert.True(Te, mat.EqualApprox(mol.Coords, back.Coords, 1e-12))
	assert.Equal(Te, "water-like", back.Comment)
}

func TestDecodeMoleculeOrder(Te *testing.T) {
	in := `{"atoms":[{"label":2,"symbol":"H","coords":[1,0,0]},{"label":1,"symbol":"Cl","coords":[0,0,0]}]}`
	mol, jerr := DecodeMolecule(strings.NewReader(in))
	require.Nil(Te, jerr)
	assert.Equal(Te, []string{"Cl", "H"}, mol.Symbols())
	assert.Equal(Te, 1.0, mol.Coords.At(1, 0))

	for _, bad := range []string{
		`{"atoms":[{"label":1,"symbol":"H"},{"label":1,"symbol":"H"}]}`,
		`{"atoms":[{"label":3,"symbol":"H"}]}`,
		`{"atoms":[{"label":1}]}`,
		`{"atoms":`,
	} {
		_, jerr := DecodeMolecule(strings.NewReader(bad))
		require.NotNil(Te, jerr, bad)
		assert.Equal(Te, KindRequest, jerr.Kind)
		assert.False(Te, jerr.Critical())
	}
}

func TestDecodeOperations(Te *testing.T) {
	in := `[
		{"type":"Substitution","atom":2,"category":"Alkyl Groups","group":"Methyl (-CH3)"},
		{"type":"addition","atom":1,"group":"hydroxyl"},
		{"type":"deletion","atom":3}
	]`
	ops, jerr := DecodeOperations(strings.NewReader(in), groups.Default())
	require.Nil(Te, jerr)
	assert.Equal(Te, []edit.Operation{
		edit.Substitute(1, []string{"C", "H", "H", "H"}),
		edit.Add(0, []string{"O", "H"}),
		edit.Delete(2),
	}, ops)

	bad := []struct{ in, kind string }{
		{`[{"type":"rotation","atom":1}]`, KindRequest},
		{`[{"type":"deletion","atom":0}]`, KindRequest},
		{`[{"type":"addition","atom":1,"group":"Benzyl"}]`, KindGroup},
		{`[{"type":"addition","atom":1,"category":"Halogen Groups","group":"Methyl"}]`, KindGroup},
		{`{"type":"deletion"}`, KindRequest},
	}
	for _, c := range bad {
		_, jerr := DecodeOperations(strings.NewReader(c.in), groups.Default())
		require.NotNil(Te, jerr, c.in)
		assert.Equal(Te, c.kind, jerr.Kind, c.in)
	}
}

func TestNewError(Te *testing.T) {
	_, err := chem.XYZRead(strings.NewReader("2\n\nC 0.0 0.0\n"))
	jerr := NewError("parse", err)
	assert.Equal(Te, KindFormat, jerr.Kind)
	assert.Equal(Te, 3, jerr.Line)
	assert.Equal(Te, "parse", jerr.Function)

	mol, _ := chem.XYZRead(strings.NewReader(water))
	_, err = edit.ApplyOriginal(mol, []edit.Operation{edit.Delete(0), edit.Delete(5)})
	jerr = NewError("modify", err)
	assert.Equal(Te, KindIndex, jerr.Kind)
	assert.Equal(Te, 6, jerr.Atom)
	assert.Equal(Te, 2, jerr.Operation)

	jerr = NewError("x", fmt.Errorf("wrapped: %w", groups.ErrUnknownGroup))
	assert.Equal(Te, KindGroup, jerr.Kind)
	jerr = NewError("x", fmt.Errorf("disk on fire"))
	assert.Equal(Te, KindInternal, jerr.Kind)
	assert.True(Te, jerr.Critical())
	assert.Contains(Te, string(jerr.Marshal()), `"kind":"internal"`)

	again := NewError("y", requestError("z", "bad"))
	assert.Equal(Te, KindRequest, again.Kind)
	assert.Equal(Te, "y", again.Function)
}
