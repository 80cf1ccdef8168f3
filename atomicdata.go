/*
 * atomicdata.go, part of molmod.
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

//DefaultCovRadius is the covalent radius, in A, used for elements not in the table.
const DefaultCovRadius = 0.75

//DefaultVdwRadius is the van der Waals radius, in A, used for elements not in the table.
const DefaultVdwRadius = 1.70

//A map for assigning mass to elements.
//Note that just common elements are present
var symbolMass = map[string]float64{
	"H":  1.008,
	"B":  10.81,
	"C":  12.01,
	"N":  14.01,
	"O":  16.00,
	"F":  18.998,
	"Na": 22.99,
	"Mg": 24.30,
	"Si": 28.08,
	"P":  30.97,
	"S":  32.06,
	"Cl": 35.45,
	"K":  39.1,
	"Ca": 40.08,
	"Cr": 51.996,
	"Mn": 54.94,
	"Fe": 55.84,
	"Co": 58.93,
	"Ni": 58.69,
	"Cu": 63.55,
	"Zn": 65.38,
	"Se": 78.96,
	"Br": 79.904,
	"Be": 9.012,
	"I":  126.90,
}

//A map for assigning covalent radii to elements
//Values from Cordero et al., 2008 (DOI:10.1039/B801115J)
var symbolCovrad = map[string]float64{
	"H":  0.31,
	"B":  0.84,
	"C":  0.76, //the sp3 radius
	"N":  0.71,
	"O":  0.66,
	"F":  0.57,
	"Na": 1.66,
	"Mg": 1.41,
	"Si": 1.11,
	"P":  1.07,
	"S":  1.05,
	"Cl": 1.02,
	"K":  2.03,
	"Ca": 1.76,
	"Cr": 1.39,
	"Mn": 1.61, //hs
	"Fe": 1.52, //hs
	"Co": 1.5,  //hs
	"Ni": 1.24,
	"Cu": 1.32,
	"Zn": 1.22,
	"Se": 1.2,
	"Br": 1.2,
	"Be": 0.96,
	"I":  1.39,
}

//A map for assigning van der Waals radii to elements
//Values from 10.1021/j100785a001 and 10.1021/jp8111556
//metal radii from 10.1023/A:1011625728803
var symbolVdwrad = map[string]float64{
	"H":  1.10,
	"B":  1.92,
	"C":  1.70,
	"N":  1.55,
	"O":  1.52,
	"F":  1.47,
	"Na": 2.27,
	"Mg": 1.73,
	"Si": 2.10,
	"P":  1.80,
	"S":  1.80,
	"Cl": 1.75,
	"K":  2.75,
	"Ca": 2.31,
	"Cr": 1.97,
	"Mn": 1.96,
	"Fe": 1.96,
	"Co": 1.95,
	"Ni": 1.63,
	"Cu": 2.00,
	"Zn": 2.02,
	"Se": 1.90,
	"Br": 1.83,
	"Be": 1.53,
	"I":  1.98,
}

//CovRadius returns the covalent radius for the element symbol, or DefaultCovRadius
//if the element is not in the table.
func CovRadius(symbol string) float64 {
	if r, ok := symbolCovrad[symbol]; ok {
		return r
	}
	return DefaultCovRadius
}

//VdwRadius returns the van der Waals radius for the element symbol, or DefaultVdwRadius
//if the element is not in the table.
func VdwRadius(symbol string) float64 {
	if r, ok := symbolVdwrad[symbol]; ok {
		return r
	}
	return DefaultVdwRadius
}

//AtomicMass returns the mass of the element symbol, and false if it is not known.
func AtomicMass(symbol string) (float64, bool) {
	m, ok := symbolMass[symbol]
	return m, ok
}
